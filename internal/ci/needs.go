package ci

import (
	"fmt"

	"github.com/specialistvlad/ciconfig/internal/entry"
)

const maxNeeds = 50

var needTable = entry.Table{
	{Key: "job", Check: entry.StringValue},
	{Key: "artifacts", Check: entry.BoolValue},
	{Key: "optional", Check: entry.BoolValue},
}

// Need is one job dependency: a job name, or a hash with `job`,
// `artifacts` and `optional`.
type Need struct {
	entry.Base
}

func NewNeed(raw any, m entry.Meta) entry.Node {
	return &Need{Base: entry.NewBase("need", raw, m)}
}

func (n *Need) Compose(*entry.Deps) {
	if s, ok := n.Raw().(string); ok {
		chain := entry.Chain{Shape: entry.HashOrStringShape}
		if entry.Blank(s) {
			chain.Checks = []entry.Check{blank}
		}
		n.Begin(chain)
		return
	}
	chain := needTable.Chain(n.Settings().Features, entry.Required("job"))
	chain.Shape = entry.HashOrStringShape
	n.Begin(chain)
}

// Job returns the name of the needed job.
func (n *Need) Job() string {
	if s, ok := n.Raw().(string); ok {
		return s
	}
	s, _ := n.Hash()["job"].(string)
	return s
}

// Optional reports whether the needed job may be absent from the pipeline.
func (n *Need) Optional() bool {
	v, _ := n.Get(needTable, "optional")
	b, _ := v.(bool)
	return b
}

func (n *Need) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	out := map[string]any{"name": n.Job(), "artifacts": true, "optional": false}
	for _, k := range []string{"artifacts", "optional"} {
		if v, ok := n.Get(needTable, k); ok {
			out[k] = v
		}
	}
	return out
}

// Needs is the list of jobs a job waits for, regardless of stage order.
type Needs struct {
	entry.Base
}

func NewNeeds(raw any, m entry.Meta) entry.Node {
	return &Needs{Base: entry.NewBase("needs", raw, m)}
}

var needsChain = entry.Chain{
	Shape: entry.Shape("config should be an array of strings or hashes", isNeedList),
	Checks: []entry.Check{func(v any) []string {
		if len(entry.Items(v)) > maxNeeds {
			return []string{fmt.Sprintf("config can only have up to %d needs", maxNeeds)}
		}
		return nil
	}},
}

func isNeedList(v any) bool {
	if !entry.IsArray(v) {
		return false
	}
	for _, item := range entry.Items(v) {
		if !entry.IsString(item) && !entry.IsHash(item) {
			return false
		}
	}
	return true
}

func (n *Needs) Compose(deps *entry.Deps) {
	if !n.Begin(needsChain) {
		return
	}
	for i, item := range entry.Items(n.Raw()) {
		n.Attach(NewNeed(item, n.ItemMeta(i)))
	}
	n.ComposeChildren(deps)
}

// Items returns the valid needs in declaration order.
func (n *Needs) Items() []*Need {
	var out []*Need
	for _, c := range n.Children() {
		if need, ok := c.(*Need); ok && need.Valid() {
			out = append(out, need)
		}
	}
	return out
}

// Jobs returns the names of the needed jobs, in declaration order.
func (n *Needs) Jobs() []string {
	var out []string
	for _, need := range n.Items() {
		out = append(out, need.Job())
	}
	return out
}

func (n *Needs) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	out := make([]any, 0, len(n.Children()))
	for _, c := range n.Children() {
		out = append(out, c.Value())
	}
	return out
}

// BridgeNeeds is the `needs` of a trigger job, which may only name an
// upstream pipeline.
type BridgeNeeds struct {
	entry.Base
}

func NewBridgeNeeds(raw any, m entry.Meta) entry.Node {
	return &BridgeNeeds{Base: entry.NewBase("needs", raw, m)}
}

var bridgeNeedsTable = entry.Table{
	{Key: "pipeline", Check: entry.StringValue},
}

func (n *BridgeNeeds) Compose(*entry.Deps) {
	n.Begin(bridgeNeedsTable.Chain(n.Settings().Features, entry.Required("pipeline")))
}

func (n *BridgeNeeds) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	return n.Values(bridgeNeedsTable)
}
