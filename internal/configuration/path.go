package configuration

import (
	"cmp"
	"strconv"
	"strings"
)

// RootPath addresses the whole document.
const RootPath = ""

// PathSeparator separates segments of a document path.
const PathSeparator = "."

// ValueAt walks data along a dotted path. Numeric segments index lists.
func ValueAt(data any, path string) (any, bool) {
	if path == RootPath {
		return data, true
	}

	current := data
	for _, seg := range strings.Split(path, PathSeparator) {
		switch node := current.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			current = node[i]
		default:
			return nil, false
		}
	}
	return current, true
}

// JoinPath joins path segments, skipping empty ones.
func JoinPath(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, PathSeparator)
}

// ComparePaths orders paths depth-first: a path precedes its descendants,
// siblings compare by key, and numeric segments compare as list indices.
func ComparePaths(a, b string) int {
	if a == b {
		return 0
	}
	if a == RootPath {
		return -1
	}
	if b == RootPath {
		return 1
	}

	as, bs := strings.Split(a, PathSeparator), strings.Split(b, PathSeparator)
	for i := range min(len(as), len(bs)) {
		if c := compareSegments(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(as), len(bs))
}

func compareSegments(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return cmp.Compare(ai, bi)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
