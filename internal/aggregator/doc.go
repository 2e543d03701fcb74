// Package aggregator runs schema validation over every configured context
// and configuration type and collects the results fail-slow.
//
// Every (context, type) pair yields a [validation.Result]; problems with one
// pair (a document that cannot be loaded, a type without schema) are
// recorded in that pair's result and never affect the others.
//
//	agg := aggregator.New(loader, registry, aggregator.WithWorkers(4))
//	sweep := agg.RunAll(ctx, configuration.DefaultContexts(), configuration.Types())
//	if sweep.HasErrors() {
//		...
//	}
package aggregator
