package ci

import (
	"strings"

	"github.com/specialistvlad/ciconfig/internal/entry"
)

var policyTable = entry.Table{
	{Key: "refs", Check: refsValue, Norm: toStrings},
	{Key: "variables", Check: entry.StringsValue, Norm: toStrings},
	{Key: "changes", Check: entry.StringsValue, Norm: toStrings},
	{Key: "kubernetes", Check: entry.OneOf("active")},
}

var defaultRefs = []string{"branches", "tags"}

// defaultOnly is the filter applied to jobs that choose none of `rules`,
// `only` or workflow rules.
func defaultOnly() map[string]any {
	return map[string]any{"refs": append([]string(nil), defaultRefs...)}
}

// Policy is an `only` or `except` ref filter, written as a list of refs or
// as a hash of filter kinds.
type Policy struct {
	entry.Base
}

func NewPolicy(raw any, m entry.Meta) entry.Node {
	return &Policy{Base: entry.NewBase("policy", raw, m)}
}

var policyShape = entry.Shape("config should be an array of strings or a hash", entry.IsStrings, entry.IsHash)

func (n *Policy) Compose(*entry.Deps) {
	if n.Hash() != nil {
		chain := policyTable.Chain(n.Settings().Features)
		chain.Shape = policyShape
		n.Begin(chain)
		return
	}
	n.Begin(entry.Chain{Shape: policyShape, Checks: []entry.Check{prefixed("config", refsValue)}})
}

func (n *Policy) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	if n.Hash() == nil {
		return map[string]any{"refs": toStrings(n.Raw())}
	}
	return n.Values(policyTable)
}

// refsValue accepts ref names and `/regexp/` patterns.
func refsValue(v any) []string {
	const msg = "should be an array of strings or regular expressions"
	if !entry.IsStrings(v) {
		return []string{msg}
	}
	for _, ref := range entry.Strings(v) {
		if !strings.HasPrefix(ref, "/") {
			continue
		}
		if _, err := entry.CompileSlashed(ref); err != nil {
			return []string{msg}
		}
	}
	return nil
}
