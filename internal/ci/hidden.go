package ci

import "github.com/specialistvlad/ciconfig/internal/entry"

// Hidden is a job whose name starts with a dot. It is never run and only
// serves as an `extends` template, so its content is not validated.
type Hidden struct {
	entry.Base
}

func NewHidden(raw any, m entry.Meta) entry.Node {
	return &Hidden{Base: entry.NewBase("hidden", raw, m)}
}

func (n *Hidden) Compose(*entry.Deps) {
	n.BeginRequired(entry.Chain{})
}

func (n *Hidden) Value() any { return nil }
