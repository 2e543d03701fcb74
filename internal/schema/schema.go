package schema

import (
	"bytes"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/confcheck/internal/configuration"
	"github.com/thoreinstein/confcheck/internal/errors"
	"github.com/thoreinstein/confcheck/internal/validation"
)

// rootField is how gojsonschema names the validated value itself.
const rootField = "(root)"

// CodeValidatorFailure marks a validation that could not run at all.
const CodeValidatorFailure = "validator_failure"

// Schema is a compiled JSON Schema governing one configuration type, either
// the whole document (Path == "") or the value at Path.
type Schema struct {
	Type    configuration.Type `json:"type"`
	Path    string             `json:"path,omitempty"`
	Package string             `json:"package,omitempty"`
	Source  string             `json:"source,omitempty"`

	compiled *gojsonschema.Schema
}

// Compile compiles doc as the schema for the value at path of type t.
// A nil or empty document is the schema that accepts anything.
func Compile(t configuration.Type, path string, doc any) (*Schema, error) {
	if !t.Valid() {
		return nil, errors.Wrapf(errors.ErrUnknownType, "compiling schema for %q", t)
	}

	doc = configuration.Normalize(doc)
	if doc == nil {
		doc = map[string]any{}
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, errors.Newf("schema must be a mapping, got %T", doc)
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, errors.Wrap(err, "compiling schema")
	}

	return &Schema{Type: t, Path: path, compiled: compiled}, nil
}

// CompileBytes parses data as YAML (which includes JSON) and compiles it.
func CompileBytes(t configuration.Type, path string, data []byte) (*Schema, error) {
	var doc any
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "parsing schema")
		}
	}
	return Compile(t, path, doc)
}

// Validate checks data (the whole document) against the schema. When the
// schema governs a sub-path, the caller passes the value at that path and
// the returned paths are prefixed with it. All
// mismatches are returned, depth-first by path.
func (s *Schema) Validate(data any) []validation.Error {
	res, err := s.compiled.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return []validation.Error{{
			Path:    s.Path,
			Code:    CodeValidatorFailure,
			Message: err.Error(),
			Err:     errors.ErrStructuralMismatch,
		}}
	}
	if res.Valid() {
		return nil
	}

	out := make([]validation.Error, 0, len(res.Errors()))
	for _, re := range res.Errors() {
		field := re.Field()
		if field == rootField {
			field = ""
		}
		out = append(out, validation.Mismatch(
			configuration.JoinPath(s.Path, field),
			re.Type(),
			re.Description(),
			re.Value(),
		))
	}

	// gojsonschema walks object properties in map order.
	validation.SortErrors(out)
	return out
}

// String identifies the schema in logs and listings.
func (s *Schema) String() string {
	return s.Type.String() + ":" + validation.DisplayPath(s.Path)
}
