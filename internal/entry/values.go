package entry

import (
	"math"
	"strconv"
	"strings"
)

// IsHash reports whether v is a string-keyed map.
func IsHash(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// IsString reports whether v is a string.
func IsString(v any) bool {
	_, ok := v.(string)
	return ok
}

// IsBool reports whether v is a boolean.
func IsBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

// IsArray reports whether v is a sequence.
func IsArray(v any) bool {
	switch v.(type) {
	case []any, []string:
		return true
	}
	return false
}

// IsNumber reports whether v is any numeric scalar.
func IsNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}

// IsStrings reports whether v is a sequence made only of strings.
func IsStrings(v any) bool {
	switch t := v.(type) {
	case []string:
		return true
	case []any:
		for _, item := range t {
			if !IsString(item) {
				return false
			}
		}
		return true
	}
	return false
}

// IsStringOrStrings reports whether v is a string or a sequence of strings.
func IsStringOrStrings(v any) bool {
	return IsString(v) || IsStrings(v)
}

// Items returns the elements of a sequence, or nil.
func Items(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	}
	return nil
}

// Strings returns a string or sequence of strings as a slice. Non-string
// items are skipped.
func Strings(v any) []string {
	if s, ok := v.(string); ok {
		return []string{s}
	}
	items := Items(v)
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// AsInt converts an integral number to int.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

// Blank reports whether v is nil, an empty or whitespace-only string, or an
// empty collection.
func Blank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// Scalar renders a scalar value the way it reads in a document.
func Scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	if n, ok := AsInt(v); ok {
		return strconv.Itoa(n), true
	}
	return "", false
}

// Humanize turns a key into the words used in messages: `expose_as`
// becomes `expose as`.
func Humanize(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
