package ci

import "github.com/specialistvlad/ciconfig/internal/entry"

var workflowTable = entry.Table{
	{Key: "name", Check: entry.All(entry.StringValue, entry.Length(1, 255))},
	{Key: "rules", New: NewWorkflowRules},
}

// Workflow decides whether a pipeline is created at all.
type Workflow struct {
	entry.Base
}

func NewWorkflow(raw any, m entry.Meta) entry.Node {
	return &Workflow{Base: entry.NewBase("workflow", raw, m)}
}

func (n *Workflow) Compose(deps *entry.Deps) {
	if !n.Begin(workflowTable.Chain(n.Settings().Features)) {
		return
	}
	n.Build(workflowTable)
	n.ComposeChildren(deps)
}

// HasRules reports whether the section declares `rules`, valid or not.
func (n *Workflow) HasRules() bool {
	_, ok := n.Hash()["rules"]
	return ok
}

func (n *Workflow) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	return n.Values(workflowTable)
}
