package configuration

import (
	"bytes"
	"encoding/json"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/confcheck/internal/errors"
)

// Output formats accepted by Encode.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Encode renders data in the given format. TOML requires a mapping.
func Encode(data any, format string) ([]byte, error) {
	switch format {
	case FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return nil, errors.Wrap(err, "encoding YAML")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "encoding YAML")
		}
		return buf.Bytes(), nil

	case FormatJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encoding JSON")
		}
		return append(out, '\n'), nil

	case FormatTOML:
		if _, ok := data.(map[string]any); !ok {
			return nil, errors.Newf("toml output requires a mapping, got %T", data)
		}
		out, err := toml.Marshal(data)
		if err != nil {
			return nil, errors.Wrap(err, "encoding TOML")
		}
		return out, nil

	default:
		return nil, errors.Newf("unsupported format %q (valid: yaml, json, toml)", format)
	}
}
