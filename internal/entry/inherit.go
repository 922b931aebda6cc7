package entry

import "slices"

// Mode is how a job consumes one global source.
type Mode int

const (
	// InheritAll takes every global key.
	InheritAll Mode = iota
	// InheritNone takes nothing.
	InheritNone
	// InheritListed takes only the keys named in the directive.
	InheritListed
)

// Directive is a parsed `inherit:` setting for one source.
type Directive struct {
	Mode Mode
	Keys []string
}

// ParseDirective reads a boolean or list form. Anything else inherits all.
func ParseDirective(v any) Directive {
	switch t := v.(type) {
	case bool:
		if t {
			return Directive{Mode: InheritAll}
		}
		return Directive{Mode: InheritNone}
	case []any, []string:
		return Directive{Mode: InheritListed, Keys: Strings(t)}
	}
	return Directive{Mode: InheritAll}
}

// Allows reports whether key may flow in from the global source.
func (d Directive) Allows(key string) bool {
	switch d.Mode {
	case InheritNone:
		return false
	case InheritListed:
		return slices.Contains(d.Keys, key)
	}
	return true
}

// Fallback resolves a scalar-like field. A defined local value always wins;
// otherwise the global value is used if present and allowed.
func Fallback(key string, local any, localDefined bool, global any, globalDefined bool, d Directive) any {
	if localDefined {
		return local
	}
	if globalDefined && d.Allows(key) {
		return global
	}
	return nil
}

// MergeVariables merges global variables under local ones. Local keys win;
// global keys are added only when the directive allows them. The inputs are
// not modified.
func MergeVariables(local, global map[string]string, d Directive) map[string]string {
	out := make(map[string]string, len(local)+len(global))
	for k, v := range global {
		if d.Allows(k) {
			out[k] = v
		}
	}
	for k, v := range local {
		out[k] = v
	}
	return out
}
