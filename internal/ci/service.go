package ci

import (
	"slices"

	"github.com/specialistvlad/ciconfig/internal/entry"
)

var serviceTable = append(slices.Clone(imageTable),
	entry.Spec{Key: "alias", Check: entry.StringValue},
	entry.Spec{Key: "command", Check: entry.StringsValue, Norm: toStrings},
)

// Service is a sidecar container. It accepts every image key plus `alias`
// and `command`; exposing ports requires an alias.
type Service struct {
	entry.Base
}

func NewService(raw any, m entry.Meta) entry.Node {
	return &Service{Base: entry.NewBase("service", raw, m)}
}

func hasPorts(m map[string]any) bool {
	_, ok := m["ports"]
	return ok
}

func (n *Service) Compose(deps *entry.Deps) {
	f := n.Settings().Features
	var extra []entry.Check
	if f.ImagePorts {
		extra = append(extra, entry.When(hasPorts, entry.Required("alias")))
	}
	if !n.Begin(imageChain(n.Raw(), serviceTable, f, extra...)) {
		return
	}
	if n.Hash() != nil {
		n.Build(serviceTable)
		n.ComposeChildren(deps)
	}
}

func (n *Service) Value() any {
	return imageValue(&n.Base, serviceTable)
}

// Services is the ordered list of sidecars of a job.
type Services struct {
	entry.Base
}

func NewServices(raw any, m entry.Meta) entry.Node {
	return &Services{Base: entry.NewBase("services", raw, m)}
}

var servicesChain = entry.Chain{
	Shape: entry.Shape("config should be an array of strings or hashes", isServiceList),
}

func isServiceList(v any) bool {
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

func (n *Services) Compose(deps *entry.Deps) {
	if !n.Begin(servicesChain) {
		return
	}
	for i, item := range entry.Items(n.Raw()) {
		n.Attach(NewService(item, n.ItemMeta(i)))
	}
	n.ComposeChildren(deps)
}

func (n *Services) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	out := make([]any, 0, len(n.Children()))
	for _, c := range n.Children() {
		out = append(out, c.Value())
	}
	return out
}
