package validation

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/thoreinstein/confcheck/internal/configuration"
	"github.com/thoreinstein/confcheck/internal/errors"
	"github.com/thoreinstein/confcheck/internal/logging"
)

// Codes recorded for violations that do not come from the schema validator.
const (
	CodeSchemaMissing  = "schema_missing"
	CodeLoaderFailure  = "loader_failure"
	CodeUnknownContext = "unknown_context"
	CodeUnknownType    = "unknown_type"
)

// rootLabel is how the root path is displayed.
const rootLabel = "(root)"

// Error is a single violation within a document.
type Error struct {
	// Path is the dotted pointer to the offending value; empty for the root.
	Path string `json:"path"`
	// Message is a human-readable description of the violation.
	Message string `json:"message"`
	// Code is a stable machine identifier, e.g. "invalid_type".
	Code string `json:"code,omitempty"`
	// Value is the offending value when known. Values under secret-looking
	// keys are masked.
	Value any `json:"value,omitempty"`
	// Err classifies the violation (errors.ErrStructuralMismatch, ...).
	Err error `json:"-"`
}

// Error renders the report line for the violation.
func (e Error) Error() string {
	return DisplayPath(e.Path) + " -> " + e.Message
}

// Unwrap exposes the classification sentinel to errors.Is.
func (e Error) Unwrap() error {
	return e.Err
}

// DisplayPath renders a document path, showing the root as "(root)".
func DisplayPath(path string) string {
	if path == "" {
		return rootLabel
	}
	return path
}

// Mismatch builds a structural violation reported by a schema.
func Mismatch(path, code, message string, value any) Error {
	return Error{Path: path, Code: code, Message: message, Value: redact(path, value), Err: errors.ErrStructuralMismatch}
}

// redact masks value when the last path segment names a credential or the
// value looks like a token.
func redact(path string, value any) any {
	key := path[strings.LastIndex(path, ".")+1:]
	if value != nil && logging.ShouldMask(key) {
		return logging.MaskValue(fmt.Sprint(value))
	}
	if s, ok := value.(string); ok && logging.ContainsTokenPrefix(s) {
		return logging.MaskValue(s)
	}
	return value
}

// SortErrors orders errs in document-tree traversal order (see
// configuration.ComparePaths), then by code and message. The sort is stable.
func SortErrors(errs []Error) {
	slices.SortStableFunc(errs, func(a, b Error) int {
		return cmp.Or(
			configuration.ComparePaths(a.Path, b.Path),
			cmp.Compare(a.Code, b.Code),
			cmp.Compare(a.Message, b.Message),
		)
	})
}

// SchemaMissing builds the root violation recorded when a type has no schema.
func SchemaMissing(typeName string) Error {
	return Error{
		Code:    CodeSchemaMissing,
		Message: fmt.Sprintf("no schema found for configuration type %q", typeName),
		Err:     errors.ErrSchemaMissing,
	}
}

// LoaderFailure builds the root violation recorded when a document cannot be loaded.
func LoaderFailure(cause error) Error {
	return Error{
		Code:    CodeLoaderFailure,
		Message: "configuration could not be loaded: " + cause.Error(),
		Err:     errors.ErrLoaderFailure,
	}
}

// UnknownContext builds the root violation for a context outside the configured set.
func UnknownContext(name string) Error {
	return Error{
		Code:    CodeUnknownContext,
		Message: fmt.Sprintf("context %q is not configured", name),
		Err:     errors.ErrUnknownContext,
	}
}

// UnknownType builds the root violation for a type outside the configured set.
func UnknownType(name string) Error {
	return Error{
		Code:    CodeUnknownType,
		Message: fmt.Sprintf("configuration type %q is not configured", name),
		Err:     errors.ErrUnknownType,
	}
}

// Result maps document paths to their violations, in first-seen path order.
// The zero value is not usable; call NewResult.
type Result struct {
	order  []string
	byPath map[string][]Error
}

// NewResult returns an empty result.
func NewResult() *Result {
	return &Result{byPath: make(map[string][]Error)}
}

// Add appends e under its path.
func (r *Result) Add(e Error) {
	if _, seen := r.byPath[e.Path]; !seen {
		r.order = append(r.order, e.Path)
	}
	r.byPath[e.Path] = append(r.byPath[e.Path], e)
}

// AddAll appends every error in order.
func (r *Result) AddAll(errs []Error) {
	for _, e := range errs {
		r.Add(e)
	}
}

// Merge appends all errors of other, keeping other's order.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.AddAll(other.Flattened())
}

// HasErrors reports whether any violation was recorded.
func (r *Result) HasErrors() bool {
	return r != nil && len(r.order) > 0
}

// Len returns the number of violations.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, errs := range r.byPath {
		n += len(errs)
	}
	return n
}

// Paths returns the paths with violations in first-seen order.
func (r *Result) Paths() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// At returns the violations recorded under path.
func (r *Result) At(path string) []Error {
	if r == nil {
		return nil
	}
	errs := r.byPath[path]
	out := make([]Error, len(errs))
	copy(out, errs)
	return out
}

// Flattened returns every violation, grouped by path in first-seen order.
func (r *Result) Flattened() []Error {
	if r == nil {
		return nil
	}
	out := make([]Error, 0, r.Len())
	for _, p := range r.order {
		out = append(out, r.byPath[p]...)
	}
	return out
}

type pathErrors struct {
	Path   string  `json:"path"`
	Errors []Error `json:"errors"`
}

// MarshalJSON encodes the result as an ordered list of {path, errors}.
func (r *Result) MarshalJSON() ([]byte, error) {
	groups := make([]pathErrors, 0, len(r.order))
	for _, p := range r.order {
		groups = append(groups, pathErrors{Path: p, Errors: r.byPath[p]})
	}
	return json.Marshal(groups)
}

// UnmarshalJSON decodes the ordered list form produced by MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var groups []pathErrors
	if err := json.Unmarshal(data, &groups); err != nil {
		return errors.Wrap(err, "decoding validation result")
	}
	*r = *NewResult()
	for _, g := range groups {
		r.AddAll(g.Errors)
	}
	return nil
}
