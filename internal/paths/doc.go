// Package paths resolves the filesystem locations confcheck reads from.
//
// The package wraps github.com/adrg/xdg for the tool's own configuration
// directory and locates the application root (the directory that holds the
// global Configuration/ directory) when --root is not given.
//
//	paths.AppConfigDir()             // ~/.config/confcheck
//	root, err := paths.FindRoot(".") // nearest ancestor with Configuration/
package paths
