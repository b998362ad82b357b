package tree

import (
	"fmt"
	"strings"
)

// IsEmpty reports whether v is a falsy value: nil, "", 0, false, or an empty
// list or map.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case int64:
		return t == 0
	case int:
		return t == 0
	case float64:
		return t == 0
	case []any:
		return len(t) == 0
	case *Map:
		return t.Len() == 0
	default:
		return false
	}
}

// Strings normalises a string-or-list value into trimmed strings. Non-string
// scalars are formatted with %v.
func Strings(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{strings.TrimSpace(t)}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			switch s := item.(type) {
			case string:
				out = append(out, strings.TrimSpace(s))
			case *Map, []any:
				return nil, fmt.Errorf("expected a string, got %T", item)
			default:
				out = append(out, fmt.Sprint(s))
			}
		}
		return out, nil
	case *Map:
		return nil, fmt.Errorf("expected a string or list of strings, got a table")
	default:
		return []string{fmt.Sprint(t)}, nil
	}
}

// String returns v as a string; non-strings are formatted with %v.
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
