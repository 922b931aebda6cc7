package ci

import "github.com/specialistvlad/ciconfig/internal/entry"

// Variables is a map of variable names to scalar values. A value may also be
// written as a hash carrying `value`, `description` and `expand`.
type Variables struct {
	entry.Base
}

func NewVariables(raw any, m entry.Meta) entry.Node {
	return &Variables{Base: entry.NewBase("variables", raw, m)}
}

var variablesChain = entry.Chain{
	Shape: entry.Shape("config should be a hash of key value pairs, value can be a hash", isVariables),
}

func isVariables(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, val := range m {
		if !isVariableValue(val) {
			return false
		}
	}
	return true
}

func isVariableValue(v any) bool {
	if v == nil {
		return true
	}
	if _, ok := entry.Scalar(v); ok {
		return true
	}
	h, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for k, field := range h {
		switch k {
		case "value", "description":
			if _, ok := entry.Scalar(field); !ok && field != nil {
				return false
			}
		case "expand":
			if !entry.IsBool(field) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (n *Variables) Compose(*entry.Deps) {
	n.Begin(variablesChain)
}

// Map returns the variables as plain strings, or nil when the node is
// absent or invalid.
func (n *Variables) Map() map[string]string {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	out := make(map[string]string, len(n.Hash()))
	for k, v := range n.Hash() {
		if h, ok := v.(map[string]any); ok {
			v = h["value"]
		}
		s, _ := entry.Scalar(v)
		out[k] = s
	}
	return out
}

func (n *Variables) Value() any {
	m := n.Map()
	if m == nil {
		return nil
	}
	return m
}
