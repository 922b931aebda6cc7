package ci

import "github.com/specialistvlad/ciconfig/internal/entry"

// inheritableSpecs are the keys a job may take from the `default` section.
var inheritableSpecs = entry.Table{
	{Key: "before_script", New: NewCommands, Inherit: true},
	{Key: "after_script", New: NewCommands, Inherit: true},
	{Key: "image", New: NewImage, Inherit: true},
	{Key: "services", New: NewServices, Inherit: true},
	{Key: "cache", New: NewCache, Inherit: true},
	{Key: "tags", New: NewTags, Inherit: true},
	{Key: "artifacts", New: NewArtifacts, Inherit: true},
	{Key: "retry", New: NewRetry, Inherit: true},
	{Key: "timeout", Check: entry.DurationValue(0), Inherit: true},
	{Key: "interruptible", Check: entry.BoolValue, Inherit: true},
}

var defaultTable = inheritableSpecs

// Default holds the values every job falls back to.
type Default struct {
	entry.Base
}

func NewDefault(raw any, m entry.Meta) entry.Node {
	return &Default{Base: entry.NewBase("default", raw, m)}
}

func (n *Default) Compose(deps *entry.Deps) {
	if !n.Begin(defaultTable.Chain(n.Settings().Features)) {
		return
	}
	n.Build(defaultTable)
	n.ComposeChildren(deps)
}

func (n *Default) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	return n.Values(defaultTable)
}
