package ci

import "github.com/specialistvlad/ciconfig/internal/entry"

var triggerTable = entry.Table{
	{Key: "project", Check: entry.StringValue},
	{Key: "branch", Check: entry.StringValue},
	{Key: "strategy", Check: entry.OneOf("depend")},
	{Key: "forward", Check: forwardValue},
}

var forwardValue = entry.All(entry.HashValue, func(v any) []string {
	m, _ := v.(map[string]any)
	for k, val := range m {
		if (k != "yaml_variables" && k != "pipeline_variables") || !entry.IsBool(val) {
			return []string{"should only contain boolean yaml_variables and pipeline_variables"}
		}
	}
	return nil
})

// Trigger names the downstream project a bridge job starts.
type Trigger struct {
	entry.Base
}

func NewTrigger(raw any, m entry.Meta) entry.Node {
	return &Trigger{Base: entry.NewBase("trigger", raw, m)}
}

func (n *Trigger) Compose(*entry.Deps) {
	if s, ok := n.Raw().(string); ok {
		chain := entry.Chain{Shape: entry.HashOrStringShape}
		if entry.Blank(s) {
			chain.Checks = []entry.Check{blank}
		}
		n.Begin(chain)
		return
	}
	chain := triggerTable.Chain(n.Settings().Features, entry.Required("project"))
	chain.Shape = entry.HashOrStringShape
	n.Begin(chain)
}

func (n *Trigger) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	if s, ok := n.Raw().(string); ok {
		return map[string]any{"project": s}
	}
	return n.Values(triggerTable)
}
