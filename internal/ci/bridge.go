package ci

import "github.com/specialistvlad/ciconfig/internal/entry"

var bridgeTable = concat(processableSpecs, entry.Table{
	{Key: "trigger", New: NewTrigger},
	{Key: "needs", New: NewBridgeNeeds},
	{Key: "when", Check: entry.OneOf("on_success", "on_failure", "always", "manual")},
})

// Bridge is a job that triggers a downstream pipeline instead of running a
// script.
type Bridge struct {
	processable
}

func NewBridge(raw any, m entry.Meta) entry.Node {
	return &Bridge{processable: newProcessable("bridge", bridgeTable, raw, m)}
}

func (n *Bridge) Compose(deps *entry.Deps) {
	if n.compose(deps, entry.Required("trigger")) {
		n.value = n.resolve(deps)
	}
}
