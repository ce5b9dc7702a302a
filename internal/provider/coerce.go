package provider

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID is a provider identifier that may arrive as a JSON string or number.
// Several providers are inconsistent about this across endpoints.
type ID string

// UnmarshalJSON accepts strings, numbers, and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	*id = ID(string(b))
	return nil
}

// Float normalizes a numeric value from loosely typed API responses.
//
// Some providers return numbers, some quoted strings, some nested objects
// like {"total": 15}. Returns 0 when the value is absent or not numeric.
func Float(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		return 0
	case map[string]any:
		for _, key := range []string{"total", "value", "amount"} {
			if inner, exists := v[key]; exists && inner != nil {
				return Float(inner)
			}
		}
		return 0
	default:
		return 0
	}
}

// Int is Float truncated to an integer.
func Int(val any) int {
	return int(Float(val))
}

// String normalizes a string value, turning absent or non-string data
// into the empty string.
func String(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Bool normalizes a boolean-ish value (true/false, 0/1, "true").
func Bool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	default:
		return false
	}
}

// JoinNonEmpty joins the non-empty parts with sep.
func JoinNonEmpty(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
