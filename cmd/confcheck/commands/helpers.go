package commands

import (
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/confcheck/internal/config"
	"github.com/thoreinstein/confcheck/internal/configuration"
	"github.com/thoreinstein/confcheck/internal/errors"
	"github.com/thoreinstein/confcheck/internal/logging"
	"github.com/thoreinstein/confcheck/internal/schema"
)

// workspace bundles what commands need to read one application.
type workspace struct {
	cfg      *config.Config
	root     string
	loader   *configuration.FileLoader
	registry *schema.MemoryRegistry
	logger   *slog.Logger
}

// openWorkspace resolves the application root and packages and builds the
// loader and schema registry.
func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	cfg := loadedConfig
	if cfg == nil {
		cfg = config.Default()
	}
	logger := logging.FromContext(cmd.Context())

	root, err := cfg.ResolveRoot(rootFlag)
	if err != nil {
		return nil, errors.NewUserError(err, "Pass --root or run confcheck inside a Flow application")
	}
	logger.Debug("application root", "root", root)

	keys := orderedUnion(cfg.ConfigurationPackages, cfg.SchemaPackages)
	packages, err := configuration.ResolvePackages(cfg.PackagesPath(root), keys)
	if err != nil {
		return nil, errors.NewUserError(err,
			"Check configuration_packages and schema_packages in the confcheck config")
	}

	var configPackages []configuration.Package
	for _, p := range packages {
		if slices.Contains(cfg.ConfigurationPackages, p.Key) {
			configPackages = append(configPackages, p)
		}
	}

	registry, err := schema.Discover(packages, cfg.SchemaPackages, schema.WithLogger(logger))
	if err != nil {
		return nil, errors.NewUserError(err, "Fix or remove the schema files named above")
	}

	return &workspace{
		cfg:      cfg,
		root:     root,
		loader:   configuration.NewFileLoader(cfg.ConfigurationPath(root), configPackages, configuration.WithLogger(logger)),
		registry: registry,
		logger:   logger,
	}, nil
}

// load returns the merged document, or the value at path within it.
func (w *workspace) load(appCtx configuration.Context, t configuration.Type, path string) (any, error) {
	doc, err := w.loader.Load(appCtx, t)
	if err != nil {
		return nil, errors.NewUserError(errors.Wrapf(err, "loading %s %s", appCtx, t), "")
	}
	w.logger.Debug("loaded configuration", logging.PairContextKey, appCtx.String(), logging.PairTypeKey, t.String(), "sources", doc.Sources)

	value, ok := doc.Lookup(path)
	if !ok {
		return nil, errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "path %q in %s %s", path, appCtx, t),
			"Paths are dotted keys, e.g. TYPO3.Flow.persistence")
	}
	return value, nil
}

// parseContexts parses context flags, returning fallback when none are given.
func parseContexts(values []string, fallback []configuration.Context) ([]configuration.Context, error) {
	if len(values) == 0 {
		return fallback, nil
	}
	out := make([]configuration.Context, 0, len(values))
	for _, v := range values {
		c, err := configuration.ParseContext(v)
		if err != nil {
			return nil, errors.NewUserError(err, "Contexts start with Development, Production or Testing, e.g. Production/Live")
		}
		out = append(out, c)
	}
	return out, nil
}

// parseTypes parses type flags, returning fallback when none are given.
func parseTypes(values []string, fallback []configuration.Type) ([]configuration.Type, error) {
	if len(values) == 0 {
		return fallback, nil
	}
	out := make([]configuration.Type, 0, len(values))
	for _, v := range values {
		t, err := configuration.ParseType(v)
		if err != nil {
			return nil, errors.NewUserError(err, "Run: confcheck types")
		}
		out = append(out, t)
	}
	return out, nil
}

// parseContext parses a single context.
func parseContext(value string) (configuration.Context, error) {
	out, err := parseContexts([]string{value}, nil)
	if err != nil {
		return "", err
	}
	return out[0], nil
}

// parseType parses a single type.
func parseType(value string) (configuration.Type, error) {
	out, err := parseTypes([]string{value}, nil)
	if err != nil {
		return "", err
	}
	return out[0], nil
}

// orderedUnion concatenates lists, dropping repeated entries.
func orderedUnion[T comparable](lists ...[]T) []T {
	seen := make(map[T]bool)
	var out []T
	for _, list := range lists {
		for _, v := range list {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}
