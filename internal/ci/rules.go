package ci

import (
	"slices"
	"time"

	"github.com/specialistvlad/ciconfig/internal/entry"
)

const maxStartIn = 24 * time.Hour

var (
	jobWhen      = []string{"on_success", "on_failure", "always", "manual", "delayed"}
	ruleJobWhen  = append(slices.Clone(jobWhen), "never")
	workflowWhen = []string{"always", "never"}
)

// ruleKind is the flavour of a rule list: job rules may delay a job,
// workflow rules only decide whether a pipeline runs.
type ruleKind struct {
	table entry.Table
	extra []entry.Check
}

var jobRules = ruleKind{
	table: entry.Table{
		{Key: "if", Check: entry.StringValue},
		{Key: "changes", Check: entry.StringsValue, Norm: toStrings},
		{Key: "exists", Check: entry.StringsValue, Norm: toStrings},
		{Key: "when", Check: entry.OneOf(ruleJobWhen...)},
		{Key: "start_in", Check: entry.DurationValue(maxStartIn)},
		{Key: "allow_failure", Check: entry.BoolValue},
		{Key: "needs", Check: entry.StringsValue, Norm: toStrings},
		{Key: "variables", New: NewVariables},
	},
	extra: []entry.Check{
		entry.When(isDelayed, entry.Required("start_in")),
		entry.When(notDelayed, entry.Absent("start_in")),
	},
}

var workflowRules = ruleKind{
	table: entry.Table{
		{Key: "if", Check: entry.StringValue},
		{Key: "changes", Check: entry.StringsValue, Norm: toStrings},
		{Key: "exists", Check: entry.StringsValue, Norm: toStrings},
		{Key: "when", Check: entry.OneOf(workflowWhen...)},
		{Key: "variables", New: NewVariables},
	},
}

func isDelayed(m map[string]any) bool { return m["when"] == "delayed" }
func notDelayed(m map[string]any) bool { return !isDelayed(m) }

// Rule is one conditional clause of a rule list.
type Rule struct {
	entry.Base
	kind ruleKind
}

func (n *Rule) Compose(deps *entry.Deps) {
	if !n.Begin(n.kind.table.Chain(n.Settings().Features, n.kind.extra...)) {
		return
	}
	n.Build(n.kind.table)
	n.ComposeChildren(deps)
}

func (n *Rule) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	return n.Values(n.kind.table)
}

// Rules is an ordered list of rules, evaluated top to bottom by the
// scheduler.
type Rules struct {
	entry.Base
	kind ruleKind
}

func newRules(kind ruleKind) entry.Factory {
	return func(raw any, m entry.Meta) entry.Node {
		return &Rules{Base: entry.NewBase("rules", raw, m), kind: kind}
	}
}

// NewJobRules builds the `rules` of a job.
var NewJobRules = newRules(jobRules)

// NewWorkflowRules builds the `rules` of the workflow section.
var NewWorkflowRules = newRules(workflowRules)

var rulesChain = entry.Chain{Shape: entry.Shape("config should be an array of hashes", entry.IsArray)}

func (n *Rules) Compose(deps *entry.Deps) {
	if !n.Begin(rulesChain) {
		return
	}
	for i, item := range entry.Items(n.Raw()) {
		n.Attach(&Rule{Base: entry.NewBase("rule", item, n.ItemMeta(i)), kind: n.kind})
	}
	n.ComposeChildren(deps)
}

func (n *Rules) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	out := make([]any, 0, len(n.Children()))
	for _, c := range n.Children() {
		out = append(out, c.Value())
	}
	return out
}
