package configuration

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/confcheck/internal/errors"
)

// Package is a named directory that contributes configuration and, when it
// is a schema provider, schema files.
type Package struct {
	Key  string `json:"key"`
	Path string `json:"path"`
}

// ConfigurationDir returns the package's Configuration/ directory.
func (p Package) ConfigurationDir() string {
	return filepath.Join(p.Path, "Configuration")
}

// ResolvePackages locates each key below packagesDir, either directly
// (<dir>/<key>) or one grouping level down (<dir>/<group>/<key>).
// The result keeps the order of keys. All missing keys are reported together.
func ResolvePackages(packagesDir string, keys []string) ([]Package, error) {
	packages := make([]Package, 0, len(keys))
	var missing []string

	for _, key := range keys {
		dir, ok := locatePackage(packagesDir, key)
		if !ok {
			missing = append(missing, key)
			continue
		}
		packages = append(packages, Package{Key: key, Path: dir})
	}

	if len(missing) > 0 {
		return packages, errors.Wrapf(errors.ErrNotFound,
			"packages %s in %s", strings.Join(missing, ", "), packagesDir)
	}
	return packages, nil
}

func locatePackage(packagesDir, key string) (string, bool) {
	direct := filepath.Join(packagesDir, key)
	if isDir(direct) {
		return direct, true
	}

	matches, err := filepath.Glob(filepath.Join(packagesDir, "*", key))
	if err != nil {
		return "", false
	}
	for _, m := range matches {
		if isDir(m) {
			return m, true
		}
	}
	return "", false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
