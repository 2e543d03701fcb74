package configuration

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/confcheck/internal/errors"
	"github.com/thoreinstein/confcheck/internal/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fixture builds an application tree with one package and returns the loader.
func fixture(t *testing.T, files map[string]string) (*FileLoader, string) {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		writeFile(t, filepath.Join(root, filepath.FromSlash(rel)), content)
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Packages", "Framework", "Acme.Core"), 0o755))

	pkgs, err := ResolvePackages(filepath.Join(root, "Packages"), []string{"Acme.Core"})
	require.NoError(t, err)

	return NewFileLoader(filepath.Join(root, "Configuration"), pkgs, WithLogger(logging.ForTest(t))), root
}

func TestFileLoader_MergeOrder(t *testing.T) {
	loader, root := fixture(t, map[string]string{
		"Packages/Framework/Acme.Core/Configuration/Settings.yaml":            "Acme:\n  a: 1\n  b: 1\n",
		"Configuration/Settings.yaml":                                        "Acme:\n  b: 2\n",
		"Packages/Framework/Acme.Core/Configuration/Production/Settings.yaml": "Acme:\n  c: 3\n",
		"Configuration/Production/Live/Settings.yaml":                        "Acme:\n  c: 4\n",
	})

	doc, err := loader.Load("Production/Live", Settings)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"Acme": map[string]any{"a": 1, "b": 2, "c": 4}}, doc.Data)
	assert.Equal(t, []string{
		filepath.Join(root, "Packages/Framework/Acme.Core/Configuration/Settings.yaml"),
		filepath.Join(root, "Configuration/Settings.yaml"),
		filepath.Join(root, "Packages/Framework/Acme.Core/Configuration/Production/Settings.yaml"),
		filepath.Join(root, "Configuration/Production/Live/Settings.yaml"),
	}, doc.Sources)
	assert.Equal(t, Context("Production/Live"), doc.Context)
	assert.Equal(t, Settings, doc.Type)
}

func TestFileLoader_ContextIsolation(t *testing.T) {
	loader, _ := fixture(t, map[string]string{
		"Configuration/Settings.yaml":             "Acme:\n  debug: false\n",
		"Configuration/Development/Settings.yaml": "Acme:\n  debug: true\n",
	})

	dev, err := loader.Load(Development, Settings)
	require.NoError(t, err)
	prod, err := loader.Load(Production, Settings)
	require.NoError(t, err)

	v, _ := dev.Lookup("Acme.debug")
	assert.Equal(t, true, v)
	v, _ = prod.Lookup("Acme.debug")
	assert.Equal(t, false, v)
}

func TestFileLoader_RoutesConcatenateMostSpecificFirst(t *testing.T) {
	loader, _ := fixture(t, map[string]string{
		"Packages/Framework/Acme.Core/Configuration/Routes.yaml": "- name: pkg\n",
		"Configuration/Routes.yaml":                              "- name: base\n",
		"Configuration/Development/Routes.yaml":                  "- name: dev\n",
	})

	doc, err := loader.Load(Development, Routes)
	require.NoError(t, err)

	routes, ok := doc.Data.([]any)
	require.True(t, ok)
	var names []any
	for _, r := range routes {
		names = append(names, r.(map[string]any)["name"])
	}
	assert.Equal(t, []any{"dev", "base", "pkg"}, names)
}

func TestFileLoader_RoutesKeepPackageOrder(t *testing.T) {
	root := t.TempDir()
	for rel, content := range map[string]string{
		"Packages/Application/Acme.A/Configuration/Routes.yaml":             "- name: a\n",
		"Packages/Application/Acme.B/Configuration/Routes.yaml":             "- name: b\n",
		"Packages/Application/Acme.B/Configuration/Development/Routes.yaml": "- name: b-dev\n",
		"Configuration/Routes.yaml":                                         "- name: base\n",
	} {
		writeFile(t, filepath.Join(root, filepath.FromSlash(rel)), content)
	}
	pkgs, err := ResolvePackages(filepath.Join(root, "Packages"), []string{"Acme.A", "Acme.B"})
	require.NoError(t, err)
	loader := NewFileLoader(filepath.Join(root, "Configuration"), pkgs, WithLogger(logging.ForTest(t)))

	doc, err := loader.Load(Development, Routes)
	require.NoError(t, err)

	var names []any
	for _, r := range doc.Data.([]any) {
		names = append(names, r.(map[string]any)["name"])
	}
	assert.Equal(t, []any{"base", "b-dev", "a", "b"}, names)
}

func TestFileLoader_NoFiles(t *testing.T) {
	loader, _ := fixture(t, nil)

	doc, err := loader.Load(Testing, Caches)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, doc.Data)
	assert.Empty(t, doc.Sources)

	routes, err := loader.Load(Testing, Routes)
	require.NoError(t, err)
	assert.Equal(t, []any{}, routes.Data)
}

func TestFileLoader_EmptyFileContributesNothing(t *testing.T) {
	loader, _ := fixture(t, map[string]string{
		"Configuration/Caches.yaml": "\n# nothing configured\n",
	})

	doc, err := loader.Load(Development, Caches)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, doc.Data)
	assert.Empty(t, doc.Sources)
}

func TestFileLoader_Failures(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		typ     Type
		wantErr string
	}{
		{
			name:    "malformed YAML",
			files:   map[string]string{"Configuration/Settings.yaml": "Acme: [unclosed\n"},
			typ:     Settings,
			wantErr: "parsing",
		},
		{
			name:    "mapping expected",
			files:   map[string]string{"Configuration/Policy.yaml": "- a\n- b\n"},
			typ:     Policy,
			wantErr: "expected a mapping at top level",
		},
		{
			name:    "list expected",
			files:   map[string]string{"Configuration/Routes.yaml": "name: home\n"},
			typ:     Routes,
			wantErr: "expected a list at top level",
		},
		{
			name:    "scalar document",
			files:   map[string]string{"Configuration/Objects.yaml": "just a string\n"},
			typ:     Objects,
			wantErr: "expected a mapping at top level, got string",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := fixture(t, tt.files)
			_, err := loader.Load(Development, tt.typ)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFileLoader_InvalidInputs(t *testing.T) {
	loader, _ := fixture(t, nil)

	_, err := loader.Load("Staging", Settings)
	assert.True(t, errors.Is(err, errors.ErrUnknownContext))

	_, err = loader.Load(Development, "Views")
	assert.True(t, errors.Is(err, errors.ErrUnknownType))
}

func TestFileLoader_CachesParsedFiles(t *testing.T) {
	loader, root := fixture(t, map[string]string{
		"Configuration/Settings.yaml": "Acme:\n  v: 1\n",
	})

	first, err := loader.Load(Development, Settings)
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "Configuration", "Settings.yaml"), "Acme:\n  v: 2\n")

	second, err := loader.Load(Development, Settings)
	require.NoError(t, err)
	assert.Equal(t, first.Data, second.Data)
}

func TestFileLoader_ConcurrentLoads(t *testing.T) {
	loader, _ := fixture(t, map[string]string{
		"Configuration/Settings.yaml":             "Acme:\n  a: 1\n",
		"Configuration/Development/Settings.yaml": "Acme:\n  b: 2\n",
		"Configuration/Routes.yaml":               "- name: base\n",
	})

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for _, c := range DefaultContexts() {
				for _, typ := range Types() {
					if _, err := loader.Load(c, typ); err != nil {
						t.Errorf("Load(%s, %s) error: %v", c, typ, err)
					}
				}
			}
		})
	}
	wg.Wait()
}

func TestResolvePackages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Acme.Direct"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Framework", "Acme.Grouped"), 0o755))

	pkgs, err := ResolvePackages(dir, []string{"Acme.Grouped", "Acme.Direct"})
	require.NoError(t, err)
	require.Len(t, pkgs, 2)
	assert.Equal(t, "Acme.Grouped", pkgs[0].Key)
	assert.Equal(t, filepath.Join(dir, "Framework", "Acme.Grouped"), pkgs[0].Path)
	assert.Equal(t, filepath.Join(dir, "Acme.Direct"), pkgs[1].Path)

	_, err = ResolvePackages(dir, []string{"Acme.Direct", "Acme.Gone", "Acme.Lost"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Contains(t, err.Error(), "Acme.Gone, Acme.Lost")
}
