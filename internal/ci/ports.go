package ci

import (
	"fmt"

	"github.com/specialistvlad/ciconfig/internal/entry"
)

const (
	defaultPortProtocol = "http"
	defaultPortName     = "default_port"
)

var portTable = entry.Table{
	{Key: "number", Check: entry.IntRange(1, 65535)},
	{Key: "protocol", Check: entry.OneOf("http", "https")},
	{Key: "name", Check: entry.StringValue},
}

// Port is a single exposed port: a number, or a hash with `number`,
// `protocol` and `name`.
type Port struct {
	entry.Base
}

func NewPort(raw any, m entry.Meta) entry.Node {
	return &Port{Base: entry.NewBase("port", raw, m)}
}

var portShape = entry.Shape("config should be an integer or a hash", entry.IsHash, entry.IsNumber)

func (n *Port) Compose(*entry.Deps) {
	if n.Hash() != nil {
		chain := portTable.Chain(n.Settings().Features, entry.Required("number"))
		chain.Shape = portShape
		n.Begin(chain)
		return
	}
	n.Begin(entry.Chain{Shape: portShape, Checks: []entry.Check{prefixed("config", entry.IntRange(1, 65535))}})
}

func (n *Port) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	out := map[string]any{"protocol": defaultPortProtocol, "name": defaultPortName}
	if n.Hash() == nil {
		num, _ := entry.AsInt(n.Raw())
		out["number"] = num
		return out
	}
	for k, v := range n.Values(portTable) {
		out[k] = v
	}
	num, _ := entry.AsInt(out["number"])
	out["number"] = num
	return out
}

// Ports is the list of ports an image or service exposes. Numbers and
// explicit names must be unique within the list.
type Ports struct {
	entry.Base
}

func NewPorts(raw any, m entry.Meta) entry.Node {
	return &Ports{Base: entry.NewBase("ports", raw, m)}
}

var portsChain = entry.Chain{
	Shape:  entry.ArrayShape,
	Checks: []entry.Check{uniquePorts},
}

func uniquePorts(v any) []string {
	numbers := make(map[int]bool)
	names := make(map[string]bool)
	var out []string
	for _, item := range entry.Items(v) {
		var num any = item
		if h, ok := item.(map[string]any); ok {
			num = h["number"]
			if name, ok := h["name"].(string); ok {
				if names[name] {
					out = append(out, fmt.Sprintf("config has duplicate port names: %s", name))
				}
				names[name] = true
			}
		}
		if n, ok := entry.AsInt(num); ok {
			if numbers[n] {
				out = append(out, fmt.Sprintf("config has duplicate port numbers: %d", n))
			}
			numbers[n] = true
		}
	}
	return out
}

func (n *Ports) Compose(deps *entry.Deps) {
	if !n.Begin(portsChain) {
		return
	}
	for i, item := range entry.Items(n.Raw()) {
		n.Attach(NewPort(item, n.ItemMeta(i)))
	}
	n.ComposeChildren(deps)
}

func (n *Ports) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	out := make([]any, 0, len(n.Children()))
	for _, c := range n.Children() {
		out = append(out, c.Value())
	}
	return out
}

// prefixed labels the messages of a value check with word.
func prefixed(word string, c entry.Check) entry.Check {
	return func(v any) []string {
		msgs := c(v)
		for i, m := range msgs {
			msgs[i] = word + " " + m
		}
		return msgs
	}
}
