package ci

import "github.com/specialistvlad/ciconfig/internal/entry"

var imageTable = entry.Table{
	{Key: "name", Check: entry.StringValue},
	{Key: "entrypoint", Check: entry.StringsValue, Norm: toStrings},
	{Key: "ports", New: NewPorts, Gate: entry.ImagePortsEnabled},
	{Key: "pull_policy", New: NewPullPolicy, Gate: entry.PullPolicyEnabled},
}

// Image is a container image, written either as its name or as a hash.
type Image struct {
	entry.Base
}

func NewImage(raw any, m entry.Meta) entry.Node {
	return &Image{Base: entry.NewBase("image", raw, m)}
}

func (n *Image) Compose(deps *entry.Deps) {
	if !n.Begin(imageChain(n.Raw(), imageTable, n.Settings().Features)) {
		return
	}
	if n.Hash() != nil {
		n.Build(imageTable)
		n.ComposeChildren(deps)
	}
}

func (n *Image) Value() any {
	return imageValue(&n.Base, imageTable)
}

// imageChain selects the checks for the string or hash form of an image.
func imageChain(raw any, t entry.Table, f entry.Features, extra ...entry.Check) entry.Chain {
	if s, ok := raw.(string); ok {
		if entry.Blank(s) {
			return entry.Chain{Shape: entry.HashOrStringShape, Checks: []entry.Check{blank}}
		}
		return entry.Chain{Shape: entry.HashOrStringShape}
	}
	chain := t.Chain(f, append([]entry.Check{entry.Required("name")}, extra...)...)
	chain.Shape = entry.HashOrStringShape
	return chain
}

func imageValue(b *entry.Base, t entry.Table) any {
	if !b.Defined() || !b.Valid() {
		return nil
	}
	if s, ok := b.Raw().(string); ok {
		return map[string]any{"name": s}
	}
	return b.Values(t)
}

func blank(any) []string {
	return []string{"config can't be blank"}
}
