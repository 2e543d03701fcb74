package schema

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoreinstein/confcheck/internal/configuration"
	"github.com/thoreinstein/confcheck/internal/errors"
	"github.com/thoreinstein/confcheck/internal/logging"
	"github.com/thoreinstein/confcheck/pkg/fileutil"
)

// SchemaDir is the schema directory relative to a package root.
const SchemaDir = "Resources/Private/Schema"

var schemaSuffixes = []string{".schema.yaml", ".schema.yml", ".schema.json"}

// DiscoverOption configures Discover.
type DiscoverOption func(*discoverer)

type discoverer struct {
	logger *slog.Logger
}

// WithLogger sets the logger for skipped files.
func WithLogger(logger *slog.Logger) DiscoverOption {
	return func(d *discoverer) {
		d.logger = logger
	}
}

// Discover builds a registry from the schema files of the provider packages.
// Packages not named in providers are not read. Every malformed schema file
// is reported; the returned registry still holds the well-formed ones.
func Discover(packages []configuration.Package, providers []string, opts ...DiscoverOption) (*MemoryRegistry, error) {
	d := &discoverer{logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}

	registry := NewRegistry(providers...)
	var errs []error

	for _, pkg := range packages {
		if !registry.IsProvider(pkg.Key) {
			continue
		}
		schemas, err := d.discoverPackage(pkg)
		if err != nil {
			errs = append(errs, err)
		}
		for _, s := range schemas {
			if err := registry.Register(s); err != nil {
				errs = append(errs, errors.Wrapf(err, "registering %s", s.Source))
			}
		}
	}

	return registry, errors.Join(errs...)
}

func (d *discoverer) discoverPackage(pkg configuration.Package) ([]*Schema, error) {
	root := filepath.Join(pkg.Path, filepath.FromSlash(SchemaDir))
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading schema directory of %s", pkg.Key)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && schemaName(entry.Name()) != "" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking schema directory of %s", pkg.Key)
	}
	sort.Strings(files)

	var schemas []*Schema
	var errs []error
	for _, file := range files {
		rel, _ := filepath.Rel(root, file)
		t, path, ok := classify(filepath.ToSlash(rel))
		if !ok {
			d.logger.Debug("ignoring schema file", "package", pkg.Key, "file", rel)
			continue
		}

		data, err := fileutil.ReadFileWithLimit(file)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "reading schema %s", file))
			continue
		}
		s, err := CompileBytes(t, path, data)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "schema %s", file))
			continue
		}
		s.Package = pkg.Key
		s.Source = file
		d.logger.Log(context.Background(), logging.LevelTrace, "registered schema",
			"package", pkg.Key, "schema", s.String(), "file", file)
		schemas = append(schemas, s)
	}

	return schemas, errors.Join(errs...)
}

// classify maps a slash-separated path relative to the schema directory to
// the type and sub-path it governs: "Settings.schema.yaml" is the whole
// Settings document, "Settings/Acme.Shop.schema.yaml" is Settings at
// "Acme.Shop".
func classify(rel string) (configuration.Type, string, bool) {
	dir, file := "", rel
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		dir, file = rel[:i], rel[i+1:]
	}
	name := schemaName(file)

	var typeName, path string
	switch {
	case dir == "":
		typeName = name
	case !strings.Contains(dir, "/"):
		typeName, path = dir, name
	default:
		return "", "", false
	}

	t := configuration.Type(typeName)
	if !t.Valid() {
		return "", "", false
	}
	return t, path, true
}

// schemaName strips a schema suffix, returning "" for other files.
func schemaName(file string) string {
	for _, suffix := range schemaSuffixes {
		if name, ok := strings.CutSuffix(file, suffix); ok && name != "" {
			return name
		}
	}
	return ""
}
