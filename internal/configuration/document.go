package configuration

// Document is the merged configuration for one context and type.
// It is read-only once loaded.
type Document struct {
	Context Context  `json:"context"`
	Type    Type     `json:"type"`
	Data    any      `json:"data"`
	Sources []string `json:"sources"`
}

// Lookup returns the value at a dotted path. The empty path is the whole document.
func (d *Document) Lookup(path string) (any, bool) {
	if d == nil {
		return nil, false
	}
	return ValueAt(d.Data, path)
}

// Loader produces merged documents. Implementations must be safe for
// concurrent use; the aggregator may call Load from several goroutines.
type Loader interface {
	Load(appCtx Context, t Type) (*Document, error)
}
