package ci

import (
	"regexp"

	"github.com/specialistvlad/ciconfig/internal/entry"
)

var environmentName = regexp.MustCompile(`^[a-zA-Z0-9 \-_/${}.]+$`)

var environmentTable = entry.Table{
	{Key: "name", Check: entry.All(
		entry.StringValue,
		entry.Length(1, 255),
		entry.Matches(environmentName, "can contain only letters, digits, '-', '_', '/', '$', '{', '}', '.', and spaces"),
	)},
	{Key: "url", Check: entry.All(entry.StringValue, entry.Length(1, 255))},
	{Key: "action", Check: entry.OneOf("start", "prepare", "stop", "verify", "access")},
	{Key: "on_stop", Check: entry.StringValue},
	{Key: "auto_stop_in", Check: entry.DurationValue(0)},
	{Key: "deployment_tier", Check: entry.OneOf("production", "staging", "testing", "development", "other")},
}

// Environment is the deployment target of a job.
type Environment struct {
	entry.Base
}

func NewEnvironment(raw any, m entry.Meta) entry.Node {
	return &Environment{Base: entry.NewBase("environment", raw, m)}
}

func (n *Environment) Compose(*entry.Deps) {
	if s, ok := n.Raw().(string); ok {
		checks := []entry.Check{prefixed("config", environmentTable[0].Check)}
		if entry.Blank(s) {
			checks = []entry.Check{blank}
		}
		n.Begin(entry.Chain{Shape: entry.HashOrStringShape, Checks: checks})
		return
	}
	chain := environmentTable.Chain(n.Settings().Features, entry.Required("name"))
	chain.Shape = entry.HashOrStringShape
	n.Begin(chain)
}

func (n *Environment) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	out := map[string]any{"action": "start"}
	if s, ok := n.Raw().(string); ok {
		out["name"] = s
		return out
	}
	for k, v := range n.Values(environmentTable) {
		out[k] = v
	}
	return out
}
