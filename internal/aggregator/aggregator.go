package aggregator

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/confcheck/internal/configuration"
	"github.com/thoreinstein/confcheck/internal/errors"
	"github.com/thoreinstein/confcheck/internal/logging"
	"github.com/thoreinstein/confcheck/internal/schema"
	"github.com/thoreinstein/confcheck/internal/validation"
)

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithContexts sets the application contexts that may be validated.
func WithContexts(contexts []configuration.Context) Option {
	return func(a *Aggregator) {
		a.contexts = slices.Clone(contexts)
	}
}

// WithTypes sets the configuration types that may be validated.
func WithTypes(types []configuration.Type) Option {
	return func(a *Aggregator) {
		a.types = slices.Clone(types)
	}
}

// WithWorkers sets how many pairs RunAll validates at once. Values below 1
// mean 1.
func WithWorkers(n int) Option {
	return func(a *Aggregator) {
		a.workers = max(n, 1)
	}
}

// WithLogger sets the logger. Without it the logger is taken from the
// context passed to Validate and RunAll.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// Aggregator validates configuration documents against their schemas.
// It holds no per-run state and is safe for concurrent use as long as its
// loader and registry are.
type Aggregator struct {
	loader   configuration.Loader
	registry schema.Registry
	contexts []configuration.Context
	types    []configuration.Type
	workers  int
	logger   *slog.Logger
}

// New creates an Aggregator over the default contexts and all types.
func New(loader configuration.Loader, registry schema.Registry, opts ...Option) *Aggregator {
	a := &Aggregator{
		loader:   loader,
		registry: registry,
		contexts: configuration.DefaultContexts(),
		types:    configuration.Types(),
		workers:  1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Contexts returns the configured contexts.
func (a *Aggregator) Contexts() []configuration.Context {
	return slices.Clone(a.contexts)
}

// Types returns the configured types.
func (a *Aggregator) Types() []configuration.Type {
	return slices.Clone(a.types)
}

// Validate validates the document for one context and type. It always
// returns a result; loader failures, missing schemas and unknown inputs are
// recorded as root-level errors.
func (a *Aggregator) Validate(ctx context.Context, appCtx configuration.Context, t configuration.Type) *validation.Result {
	return a.validate(ctx, a.loggerFor(ctx), appCtx, t)
}

func (a *Aggregator) validate(ctx context.Context, logger *slog.Logger, appCtx configuration.Context, t configuration.Type) (result *validation.Result) {
	logger = logger.With(logging.PairContextKey, appCtx.String(), logging.PairTypeKey, t.String())
	result = validation.NewResult()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("validation panicked", "panic", r)
			result = validation.NewResult()
			result.Add(validation.LoaderFailure(errors.Newf("panic: %v", r)))
		}
	}()

	if appCtx.Validate() != nil || !slices.Contains(a.contexts, appCtx) {
		result.Add(validation.UnknownContext(appCtx.String()))
		return result
	}
	if !t.Valid() || !slices.Contains(a.types, t) {
		result.Add(validation.UnknownType(t.String()))
		return result
	}

	doc, err := a.loader.Load(appCtx, t)
	if err == nil && doc == nil {
		err = errors.New("loader returned no document")
	}
	if err != nil {
		logger.Warn("configuration could not be loaded", "error", err)
		result.Add(validation.LoaderFailure(err))
		return result
	}

	schemas := a.registry.SchemasFor(t)
	if len(schemas) == 0 {
		logger.Debug("no schema registered")
		result.Add(validation.SchemaMissing(t.String()))
		return result
	}

	var mismatches []validation.Error
	for _, s := range schemas {
		value, ok := doc.Lookup(s.Path)
		if !ok {
			logger.Debug("schema path not present, skipping", "schema", s.String(), "package", s.Package)
			continue
		}
		mismatches = append(mismatches, s.Validate(value)...)
	}
	// Sub-path schemas report into the middle of the tree.
	validation.SortErrors(mismatches)
	result.AddAll(mismatches)

	logger.Log(ctx, logging.LevelTrace, "validated",
		"schemas", len(schemas), "errors", result.Len(), "sources", len(doc.Sources))
	return result
}

// RunAll validates every pair of the Cartesian product contexts x types.
// The sweep has exactly len(contexts)*len(types) entries, context-major in
// input order, whatever the outcome of each pair.
func (a *Aggregator) RunAll(ctx context.Context, contexts []configuration.Context, types []configuration.Type) *validation.Sweep {
	sweep := validation.NewSweep(len(contexts) * len(types))
	logger := a.loggerFor(ctx).With("run_id", sweep.RunID)
	logger.Debug("starting sweep", "contexts", len(contexts), "types", len(types), "workers", a.workers)

	var g errgroup.Group
	g.SetLimit(a.workers)
	for i, c := range contexts {
		for j, t := range types {
			slot := i*len(types) + j
			g.Go(func() error {
				sweep.Entries[slot] = validation.Entry{
					Context: c,
					Type:    t,
					Result:  a.validate(ctx, logger, c, t),
				}
				return nil
			})
		}
	}
	// Validate records failures in results; Wait cannot return an error.
	_ = g.Wait()

	sweep.Duration = time.Since(sweep.StartedAt)
	logger.Info("sweep finished",
		"pairs", sweep.Len(),
		"failed", len(sweep.Failed()),
		"errors", sweep.ErrorCount(),
		"duration", sweep.Duration)
	return sweep
}

func (a *Aggregator) loggerFor(ctx context.Context) *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return logging.FromContext(ctx)
}
