package ci

import (
	"github.com/specialistvlad/ciconfig/internal/entry"
)

const (
	minParallel = 2
	maxParallel = 50
)

var jobTable = concat(processableSpecs, inheritableSpecs, entry.Table{
	{Key: "script", New: NewCommands},
	{Key: "when", Check: entry.OneOf(jobWhen...)},
	{Key: "start_in", Check: entry.DurationValue(maxStartIn)},
	{Key: "needs", New: NewNeeds},
	{Key: "dependencies", Check: entry.StringsValue, Norm: toStrings},
	{Key: "environment", New: NewEnvironment},
	{Key: "coverage", Check: entry.RegexpValue},
	{Key: "parallel", Check: entry.IntRange(minParallel, maxParallel)},
})

var jobChecks = []entry.Check{
	entry.Required("script"),
	entry.When(isDelayed, entry.Required("start_in")),
	entry.When(notDelayed, entry.Absent("start_in")),
}

// Job is a regular job that runs a script.
type Job struct {
	processable
}

func NewJob(raw any, m entry.Meta) entry.Node {
	return &Job{processable: newProcessable("job", jobTable, raw, m)}
}

func (n *Job) Compose(deps *entry.Deps) {
	if n.compose(deps, jobChecks...) {
		n.value = n.resolve(deps)
	}
}

// Needs returns the valid entries of the job's `needs`.
func (n *Job) Needs() []*Need {
	if needs, ok := n.Child("needs").(*Needs); ok {
		return needs.Items()
	}
	return nil
}

// Dependencies returns the jobs whose artifacts this job downloads.
func (n *Job) Dependencies() []string {
	return entry.Strings(n.Hash()["dependencies"])
}
