package ci

import (
	"slices"
	"strings"

	"github.com/specialistvlad/ciconfig/internal/entry"
)

var inheritTable = entry.Table{
	{Key: "default", Check: directiveValue(func() []string { return defaultTable.Keys(allFeatures) })},
	{Key: "variables", Check: directiveValue(nil)},
}

var allFeatures = entry.Features{ImagePorts: true, PullPolicy: true}

// directiveValue accepts a boolean or a list of names. When known is set,
// listed names must be among its result.
func directiveValue(known func() []string) entry.Check {
	return func(v any) []string {
		if entry.IsBool(v) {
			return nil
		}
		if !entry.IsStrings(v) {
			return []string{"should be a boolean value or an array of strings"}
		}
		if known == nil {
			return nil
		}
		allowed := known()
		var unknown []string
		for _, s := range entry.Strings(v) {
			if !slices.Contains(allowed, s) {
				unknown = append(unknown, s)
			}
		}
		if len(unknown) == 0 {
			return nil
		}
		return []string{"contains unknown values: " + strings.Join(unknown, ", ")}
	}
}

// Inherit controls which global defaults and variables a job takes.
type Inherit struct {
	entry.Base
}

func NewInherit(raw any, m entry.Meta) entry.Node {
	return &Inherit{Base: entry.NewBase("inherit", raw, m)}
}

func (n *Inherit) Compose(*entry.Deps) {
	n.Begin(inheritTable.Chain(n.Settings().Features))
}

// Directives returns the parsed `default` and `variables` settings. An
// absent or invalid node inherits everything.
func (n *Inherit) Directives() (defaults, variables entry.Directive) {
	all := entry.Directive{Mode: entry.InheritAll}
	if !n.Defined() || !n.Valid() {
		return all, all
	}
	return entry.ParseDirective(n.Hash()["default"]), entry.ParseDirective(n.Hash()["variables"])
}

func (n *Inherit) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	return n.Values(inheritTable)
}
