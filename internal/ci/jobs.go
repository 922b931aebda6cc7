package ci

import (
	"slices"
	"strings"

	"github.com/specialistvlad/ciconfig/internal/entry"
)

// Kind is the variant a job entry is composed as.
type Kind int

const (
	KindJob Kind = iota
	KindBridge
	KindHidden
)

func (k Kind) String() string {
	switch k {
	case KindBridge:
		return "bridge"
	case KindHidden:
		return "hidden"
	}
	return "job"
}

func isHidden(name string, _ any) bool { return strings.HasPrefix(name, ".") }

func isBridge(name string, raw any) bool {
	m, ok := raw.(map[string]any)
	if !ok || isHidden(name, raw) {
		return false
	}
	_, ok = m["trigger"]
	return ok
}

func isJob(name string, raw any) bool {
	return !isHidden(name, raw) && !isBridge(name, raw)
}

var jobKinds = entry.Candidates[Kind]{
	{Kind: KindHidden, Match: isHidden, New: NewHidden},
	{Kind: KindBridge, Match: isBridge, New: NewBridge},
	{Kind: KindJob, Match: isJob, New: NewJob},
}

// Classify returns the variant a job named name with body raw is composed
// as. It depends on the name and shape alone.
func Classify(name string, raw any) Kind {
	return jobKinds.Classify(name, raw, KindJob).Kind
}

// Jobs is the collection of every non-reserved top-level key.
type Jobs struct {
	entry.Base
}

func NewJobs(raw any, m entry.Meta) entry.Node {
	return &Jobs{Base: entry.NewBase("jobs", raw, m)}
}

var jobsChain = entry.Chain{
	Shape:  entry.HashShape,
	Checks: []entry.Check{hasVisibleJob},
}

func hasVisibleJob(v any) []string {
	for name := range v.(map[string]any) {
		if !isHidden(name, nil) {
			return nil
		}
	}
	return []string{"config should contain at least one visible job"}
}

func (n *Jobs) Compose(deps *entry.Deps) {
	if !n.BeginRequired(jobsChain) {
		return
	}
	raw := n.Hash()
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		c := jobKinds.Classify(name, raw[name], KindJob)
		n.Attach(c.New(raw[name], n.ChildMeta(name, true)))
	}
	n.ComposeChildren(deps)
}

// Runnable is a job or a bridge: anything that ends up in a pipeline.
type Runnable interface {
	entry.Node
	Stage() string
}

// Runnables returns the visible jobs in name order.
func (n *Jobs) Runnables() []Runnable {
	var out []Runnable
	for _, c := range n.Children() {
		if r, ok := c.(Runnable); ok {
			out = append(out, r)
		}
	}
	return out
}

func (n *Jobs) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	out := make(map[string]any)
	for _, r := range n.Runnables() {
		out[r.Key()] = r.Value()
	}
	return out
}
