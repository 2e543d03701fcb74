package schema

import (
	"cmp"
	"slices"
	"sync"

	"github.com/thoreinstein/confcheck/internal/configuration"
	"github.com/thoreinstein/confcheck/internal/errors"
)

// Registry answers which schemas govern a configuration type.
type Registry interface {
	// SchemasFor returns the schemas for t, whole-document schemas first,
	// then sub-path schemas by path. An empty result means t has no schema.
	SchemasFor(t configuration.Type) []*Schema
}

// MemoryRegistry is a Registry restricted to a set of provider packages.
type MemoryRegistry struct {
	providers map[string]bool

	mu      sync.RWMutex
	schemas []*Schema
}

var _ Registry = (*MemoryRegistry)(nil)

// NewRegistry creates a registry that serves schemas declared by the given
// provider packages. With no providers, schemas from any package are served.
func NewRegistry(providers ...string) *MemoryRegistry {
	r := &MemoryRegistry{}
	if len(providers) > 0 {
		r.providers = make(map[string]bool, len(providers))
		for _, p := range providers {
			r.providers[p] = true
		}
	}
	return r
}

// Register adds a schema.
func (r *MemoryRegistry) Register(s *Schema) error {
	if s == nil || s.compiled == nil {
		return errors.New("registering uncompiled schema")
	}
	if !s.Type.Valid() {
		return errors.Wrapf(errors.ErrUnknownType, "registering schema for %q", s.Type)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas = append(r.schemas, s)
	return nil
}

// IsProvider reports whether the package's schemas are served.
func (r *MemoryRegistry) IsProvider(pkg string) bool {
	return r.providers == nil || r.providers[pkg]
}

// SchemasFor implements Registry.
func (r *MemoryRegistry) SchemasFor(t configuration.Type) []*Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Schema
	for _, s := range r.schemas {
		if s.Type == t && r.IsProvider(s.Package) {
			out = append(out, s)
		}
	}
	sortSchemas(out)
	return out
}

// All returns every served schema, grouped by type in canonical type order.
func (r *MemoryRegistry) All() []*Schema {
	var out []*Schema
	for _, t := range configuration.Types() {
		out = append(out, r.SchemasFor(t)...)
	}
	return out
}

func sortSchemas(schemas []*Schema) {
	// Path "" sorts first, so whole-document schemas lead.
	slices.SortStableFunc(schemas, func(a, b *Schema) int {
		return cmp.Or(
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(a.Package, b.Package),
		)
	})
}
