package schema

import (
	"math"
)

// Generate infers a schema document from data. Objects list their
// properties, arrays take their item schema from the first element and
// scalars get their JSON type. The result is a starting point for a
// hand-maintained schema, not a tight description of every value.
func Generate(data any) map[string]any {
	switch v := data.(type) {
	case map[string]any:
		props := make(map[string]any, len(v))
		for key, value := range v {
			props[key] = Generate(value)
		}
		return map[string]any{"type": "object", "properties": props}
	case []any:
		out := map[string]any{"type": "array"}
		if len(v) > 0 {
			out["items"] = Generate(v[0])
		}
		return out
	case string:
		return map[string]any{"type": "string"}
	case bool:
		return map[string]any{"type": "boolean"}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return map[string]any{"type": "integer"}
	case float32:
		return generateFloat(float64(v))
	case float64:
		return generateFloat(v)
	case nil:
		return map[string]any{"type": "null"}
	default:
		return map[string]any{}
	}
}

func generateFloat(f float64) map[string]any {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return map[string]any{"type": "integer"}
	}
	return map[string]any{"type": "number"}
}
