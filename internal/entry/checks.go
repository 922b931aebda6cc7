package entry

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

// Shape returns a check that passes when any predicate accepts the value
// and otherwise reports msg.
func Shape(msg string, preds ...func(any) bool) Check {
	return func(v any) []string {
		for _, p := range preds {
			if p(v) {
				return nil
			}
		}
		return []string{msg}
	}
}

// Common shape checks.
var (
	HashShape            = Shape("config should be a hash", IsHash)
	StringShape          = Shape("config should be a string", IsString)
	BoolShape            = Shape("config should be a boolean value", IsBool)
	ArrayShape           = Shape("config should be an array", IsArray)
	StringsShape         = Shape("config should be an array of strings", IsStrings)
	StringOrStringsShape = Shape("config should be a string or an array of strings", IsStringOrStrings)
	HashOrStringShape    = Shape("config should be a hash or a string", IsHash, IsString)
)

// AllowedKeys reports every key of a hash that is not in keys, as a single
// message with the offending keys sorted.
func AllowedKeys(keys []string) Check {
	return func(v any) []string {
		m, _ := v.(map[string]any)
		var unknown []string
		for k := range m {
			if !slices.Contains(keys, k) {
				unknown = append(unknown, k)
			}
		}
		if len(unknown) == 0 {
			return nil
		}
		slices.Sort(unknown)
		return []string{"config contains unknown keys: " + strings.Join(unknown, ", ")}
	}
}

// Required reports each field of a hash that is missing or blank.
func Required(fields ...string) Check {
	return func(v any) []string {
		m, _ := v.(map[string]any)
		var out []string
		for _, f := range fields {
			if Blank(m[f]) {
				out = append(out, Humanize(f)+" can't be blank")
			}
		}
		return out
	}
}

// Exclusive reports, one message per key, every key of a hash present
// alongside anchor. A key counts as present even when its value is null.
func Exclusive(anchor string, keys ...string) Check {
	return func(v any) []string {
		m, _ := v.(map[string]any)
		if _, ok := m[anchor]; !ok {
			return nil
		}
		var out []string
		for _, k := range keys {
			if _, ok := m[k]; ok {
				out = append(out, fmt.Sprintf("key may not be used with '%s': %s", anchor, k))
			}
		}
		return out
	}
}

// Field runs checks against the named field of a hash when it holds a
// value, prefixing each message with the humanized field name.
func Field(name string, checks ...Check) Check {
	return func(v any) []string {
		m, _ := v.(map[string]any)
		fv, ok := m[name]
		if !ok || fv == nil {
			return nil
		}
		var out []string
		for _, c := range checks {
			for _, msg := range c(fv) {
				out = append(out, Humanize(name)+" "+msg)
			}
		}
		return out
	}
}

// When runs checks only when cond holds for the hash.
func When(cond func(m map[string]any) bool, checks ...Check) Check {
	return func(v any) []string {
		m, _ := v.(map[string]any)
		if !cond(m) {
			return nil
		}
		var out []string
		for _, c := range checks {
			out = append(out, c(v)...)
		}
		return out
	}
}

// All runs every check and concatenates their messages.
func All(checks ...Check) Check {
	return func(v any) []string {
		var out []string
		for _, c := range checks {
			out = append(out, c(v)...)
		}
		return out
	}
}

// Absent reports the named field when it is present.
func Absent(name string) Check {
	return func(v any) []string {
		m, _ := v.(map[string]any)
		if _, ok := m[name]; ok {
			return []string{Humanize(name) + " must be blank"}
		}
		return nil
	}
}

// Is returns a value check that reports msg when pred rejects the value.
func Is(pred func(any) bool, msg string) Check {
	return func(v any) []string {
		if pred(v) {
			return nil
		}
		return []string{msg}
	}
}

// Common value checks for use with Field.
var (
	StringValue          = Is(IsString, "should be a string")
	BoolValue            = Is(IsBool, "should be a boolean value")
	StringsValue         = Is(IsStrings, "should be an array of strings")
	StringOrStringsValue = Is(IsStringOrStrings, "should be a string or an array of strings")
	HashValue            = Is(IsHash, "should be a hash")
)

// Length bounds the rune length of a string value.
func Length(minLen, maxLen int) Check {
	return func(v any) []string {
		s, ok := v.(string)
		if !ok {
			return nil
		}
		n := len([]rune(s))
		switch {
		case n < minLen:
			return []string{fmt.Sprintf("is too short (minimum is %d %s)", minLen, plural(minLen, "character"))}
		case maxLen > 0 && n > maxLen:
			return []string{fmt.Sprintf("is too long (maximum is %d %s)", maxLen, plural(maxLen, "character"))}
		}
		return nil
	}
}

// Matches reports msg when a string value does not match re.
func Matches(re *regexp.Regexp, msg string) Check {
	return func(v any) []string {
		s, ok := v.(string)
		if !ok || re.MatchString(s) {
			return nil
		}
		return []string{msg}
	}
}

// OneOf requires a string value to be one of values.
func OneOf(values ...string) Check {
	return func(v any) []string {
		s, ok := v.(string)
		if ok && slices.Contains(values, s) {
			return nil
		}
		return []string{"should be one of: " + strings.Join(values, ", ")}
	}
}

// EachOneOf requires a string or every string of a sequence to be one of
// values.
func EachOneOf(values ...string) Check {
	return func(v any) []string {
		for _, s := range Strings(v) {
			if !slices.Contains(values, s) {
				return []string{"should be one of: " + strings.Join(values, ", ")}
			}
		}
		return nil
	}
}

// IntRange requires an integer within [lo, hi].
func IntRange(lo, hi int) Check {
	return func(v any) []string {
		if !IsNumber(v) {
			return []string{"is not a number"}
		}
		n, ok := AsInt(v)
		if !ok {
			return []string{"must be an integer"}
		}
		if n < lo {
			return []string{fmt.Sprintf("must be greater than or equal to %d", lo)}
		}
		if n > hi {
			return []string{fmt.Sprintf("must be less than or equal to %d", hi)}
		}
		return nil
	}
}

// DurationValue requires a duration string, no longer than limit when limit
// is positive.
func DurationValue(limit time.Duration) Check {
	return func(v any) []string {
		s, ok := v.(string)
		if !ok {
			return []string{"should be a duration"}
		}
		d, err := ParseDuration(s)
		if err != nil {
			return []string{"should be a duration"}
		}
		if limit > 0 && d > limit {
			return []string{"should not exceed the limit"}
		}
		return nil
	}
}

// RegexpValue requires a `/pattern/` string that compiles.
func RegexpValue(v any) []string {
	s, ok := v.(string)
	if !ok {
		return []string{"should be a regular expression"}
	}
	if _, err := CompileSlashed(s); err != nil {
		return []string{"should be a regular expression"}
	}
	return nil
}

// CompileSlashed compiles a `/pattern/flags` literal. The only supported
// flag is `i`.
func CompileSlashed(s string) (*regexp.Regexp, error) {
	if len(s) < 2 || s[0] != '/' {
		return nil, fmt.Errorf("%q is not enclosed in slashes", s)
	}
	end := strings.LastIndexByte(s, '/')
	if end == 0 {
		return nil, fmt.Errorf("%q is not enclosed in slashes", s)
	}
	pattern, flags := s[1:end], s[end+1:]
	switch flags {
	case "":
	case "i":
		pattern = "(?i)" + pattern
	default:
		return nil, fmt.Errorf("unsupported flags %q", flags)
	}
	return regexp.Compile(pattern)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
