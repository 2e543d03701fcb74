// Package configuration models the configuration documents that confcheck
// validates and loads them from an application tree.
//
// A [Document] is the merged data for one ([Context], [Type]) pair. The
// [Loader] interface produces documents; [FileLoader] implements it for the
// layout below, where every package and context layer overrides the previous
// one:
//
//	<root>/Configuration/<Type>.yaml
//	<root>/Configuration/<Context>/<Type>.yaml
//	<root>/Packages/<Key>/Configuration/<Type>.yaml
//	<root>/Packages/<Key>/Configuration/<Context>/<Type>.yaml
//
// Mapping types (Caches, Objects, Policy, Settings) merge recursively. Routes
// documents are lists and are concatenated, most specific layer first.
package configuration
