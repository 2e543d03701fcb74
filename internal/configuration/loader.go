package configuration

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/confcheck/internal/errors"
	"github.com/thoreinstein/confcheck/internal/logging"
	"github.com/thoreinstein/confcheck/pkg/fileutil"
)

// LoaderOption configures a FileLoader.
type LoaderOption func(*FileLoader)

// WithLogger sets the logger used for per-file trace output.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *FileLoader) {
		l.logger = logger
	}
}

// FileLoader loads documents from a global configuration directory and an
// ordered list of packages. Parsed files are cached for the loader's lifetime.
type FileLoader struct {
	configDir string
	packages  []Package
	logger    *slog.Logger

	mu    sync.Mutex
	cache map[string]parsedFile
}

type parsedFile struct {
	data   any
	exists bool
	err    error
}

var _ Loader = (*FileLoader)(nil)

// NewFileLoader creates a loader reading global files from configDir
// (usually <root>/Configuration) and package files from packages, in order.
func NewFileLoader(configDir string, packages []Package, opts ...LoaderOption) *FileLoader {
	l := &FileLoader{
		configDir: configDir,
		packages:  slices.Clone(packages),
		logger:    slog.Default(),
		cache:     make(map[string]parsedFile),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Layers returns the candidate files for a pair, least specific first.
// Files that do not exist are included; Load skips them.
func (l *FileLoader) Layers(appCtx Context, t Type) []string {
	name := t.FileName()
	var layers []string

	for _, p := range l.packages {
		layers = append(layers, filepath.Join(p.ConfigurationDir(), name))
	}
	layers = append(layers, filepath.Join(l.configDir, name))

	for _, c := range appCtx.Hierarchy() {
		sub := filepath.FromSlash(string(c))
		for _, p := range l.packages {
			layers = append(layers, filepath.Join(p.ConfigurationDir(), sub, name))
		}
		layers = append(layers, filepath.Join(l.configDir, sub, name))
	}
	return layers
}

// listLayers orders the files of a list type for concatenation: global
// files from the most specific context down to the base file, then the
// package files in the same order. Packages keep their declared order
// within each level.
func (l *FileLoader) listLayers(appCtx Context, t Type) []string {
	name := t.FileName()
	hierarchy := appCtx.Hierarchy()
	dirs := make([]string, 0, len(hierarchy)+1)
	for i := len(hierarchy) - 1; i >= 0; i-- {
		dirs = append(dirs, filepath.FromSlash(string(hierarchy[i])))
	}
	dirs = append(dirs, "")

	layers := make([]string, 0, len(dirs)*(len(l.packages)+1))
	for _, sub := range dirs {
		layers = append(layers, filepath.Join(l.configDir, sub, name))
	}
	for _, sub := range dirs {
		for _, p := range l.packages {
			layers = append(layers, filepath.Join(p.ConfigurationDir(), sub, name))
		}
	}
	return layers
}

// Load merges every existing layer for the pair.
func (l *FileLoader) Load(appCtx Context, t Type) (*Document, error) {
	if !t.Valid() {
		return nil, errors.Wrapf(errors.ErrUnknownType, "%q", string(t))
	}
	if err := appCtx.Validate(); err != nil {
		return nil, err
	}

	layers := l.Layers(appCtx, t)
	if t.IsList() {
		layers = l.listLayers(appCtx, t)
	}

	doc := &Document{Context: appCtx, Type: t, Data: t.empty(), Sources: []string{}}
	for _, path := range layers {
		pf := l.read(path, t)
		if pf.err != nil {
			return nil, pf.err
		}
		if !pf.exists || pf.data == nil {
			continue
		}

		l.logger.Log(context.Background(), logging.LevelTrace, "merging configuration layer",
			"context", appCtx.String(), "type", t.String(), "file", path)

		if t.IsList() {
			doc.Data = append(slices.Clone(doc.Data.([]any)), pf.data.([]any)...)
		} else {
			doc.Data = Merge(doc.Data, pf.data)
		}
		doc.Sources = append(doc.Sources, path)
	}
	return doc, nil
}

func (l *FileLoader) read(path string, t Type) parsedFile {
	l.mu.Lock()
	defer l.mu.Unlock()

	if pf, ok := l.cache[path]; ok {
		return pf
	}
	pf := parseFile(path, t)
	l.cache[path] = pf
	return pf
}

func parseFile(path string, t Type) parsedFile {
	content, found, err := fileutil.ReadOptional(path)
	if err != nil {
		return parsedFile{err: errors.Wrapf(err, "reading %s", path)}
	}
	if !found {
		return parsedFile{}
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return parsedFile{exists: true}
	}

	var raw any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return parsedFile{err: errors.Wrapf(err, "parsing %s", path)}
	}
	data := Normalize(raw)
	if data == nil {
		return parsedFile{exists: true}
	}

	switch data.(type) {
	case []any:
		if !t.IsList() {
			return parsedFile{err: errors.Newf("%s: expected a mapping at top level, got a list", path)}
		}
	case map[string]any:
		if t.IsList() {
			return parsedFile{err: errors.Newf("%s: expected a list at top level, got a mapping", path)}
		}
	default:
		return parsedFile{err: errors.Newf("%s: expected a %s at top level, got %T", path, kindName(t), data)}
	}
	return parsedFile{data: data, exists: true}
}

func kindName(t Type) string {
	if t.IsList() {
		return "list"
	}
	return "mapping"
}
