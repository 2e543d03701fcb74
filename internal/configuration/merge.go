package configuration

import (
	"fmt"
	"time"
)

// Merge overlays override on base the way Flow merges configuration:
// mappings merge key by key and lists merge index by index, both
// recursively; any other override value (scalar, nil) replaces the base
// value. Base list items past the end of the override list are kept.
// Neither input is modified; untouched subtrees are shared with the inputs.
func Merge(base, override any) any {
	switch over := override.(type) {
	case map[string]any:
		baseMap, ok := base.(map[string]any)
		if !ok {
			return override
		}
		out := make(map[string]any, len(baseMap)+len(over))
		for k, v := range baseMap {
			out[k] = v
		}
		for k, v := range over {
			if existing, ok := out[k]; ok {
				out[k] = Merge(existing, v)
				continue
			}
			out[k] = v
		}
		return out

	case []any:
		baseList, ok := base.([]any)
		if !ok {
			return override
		}
		out := make([]any, max(len(baseList), len(over)))
		copy(out, baseList)
		for i, v := range over {
			if i < len(baseList) {
				out[i] = Merge(baseList[i], v)
				continue
			}
			out[i] = v
		}
		return out

	default:
		return override
	}
}

// Normalize converts decoded YAML into JSON-compatible values: mapping keys
// become strings and timestamps become RFC 3339 strings.
func Normalize(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[k] = Normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[fmt.Sprint(k)] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, val := range node {
			out[i] = Normalize(val)
		}
		return out
	case time.Time:
		return node.Format(time.RFC3339)
	default:
		return v
	}
}
