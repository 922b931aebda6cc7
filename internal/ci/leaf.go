package ci

import (
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/ciconfig/internal/entry"
)

// Leaf is a node whose composed value is derived from its raw value alone.
type Leaf struct {
	entry.Base
	chain entry.Chain
	norm  func(any) any
	def   func() any
}

func newLeaf(name string, chain entry.Chain, norm func(any) any, def func() any) entry.Factory {
	return func(raw any, m entry.Meta) entry.Node {
		return &Leaf{Base: entry.NewBase(name, raw, m), chain: chain, norm: norm, def: def}
	}
}

func (n *Leaf) Compose(*entry.Deps) {
	n.Begin(n.chain)
}

func (n *Leaf) Value() any {
	switch {
	case !n.Composed():
		return nil
	case !n.Defined():
		if n.def != nil {
			return n.def()
		}
		return nil
	case !n.Valid():
		return nil
	case n.norm != nil:
		return n.norm(n.Raw())
	}
	return n.Raw()
}

const (
	maxTags           = 50
	maxCommandNesting = 10
)

var defaultStages = []string{"build", "test", "deploy"}

// NewStages builds the `stages` list.
var NewStages = newLeaf("stages",
	entry.Chain{Shape: entry.StringsShape},
	toStrings,
	func() any { return slices.Clone(defaultStages) },
)

// NewTags builds a runner `tags` list.
var NewTags = newLeaf("tags",
	entry.Chain{Shape: entry.StringsShape, Checks: []entry.Check{tagLimit}},
	toStrings,
	nil,
)

// NewCommands builds `script`, `before_script` and `after_script`.
var NewCommands = newLeaf("script",
	entry.Chain{Shape: entry.Shape(
		fmt.Sprintf("config should be a string or a nested array of strings up to %d levels deep", maxCommandNesting),
		isCommands,
	)},
	flattenCommands,
	nil,
)

var pullPolicies = []string{"always", "never", "if-not-present"}

// NewPullPolicy builds an image `pull_policy`.
var NewPullPolicy = newLeaf("pull_policy",
	entry.Chain{Shape: entry.StringOrStringsShape, Checks: []entry.Check{knownValues(pullPolicies)}},
	toStrings,
	nil,
)

func tagLimit(v any) []string {
	if n := len(entry.Items(v)); n > maxTags {
		return []string{fmt.Sprintf("config must be less than the limit of %d tags", maxTags)}
	}
	return nil
}

func knownValues(allowed []string) entry.Check {
	return func(v any) []string {
		var unknown []string
		for _, s := range entry.Strings(v) {
			if !slices.Contains(allowed, s) {
				unknown = append(unknown, s)
			}
		}
		if len(unknown) == 0 {
			return nil
		}
		return []string{"config contains unknown values: " + strings.Join(unknown, ", ")}
	}
}

func isCommands(v any) bool {
	return entry.IsString(v) || nestedStrings(v, 1)
}

func nestedStrings(v any, depth int) bool {
	if depth > maxCommandNesting || !entry.IsArray(v) {
		return false
	}
	for _, item := range entry.Items(v) {
		if entry.IsString(item) {
			continue
		}
		if !nestedStrings(item, depth+1) {
			return false
		}
	}
	return true
}

func flattenCommands(v any) any {
	var out []string
	var walk func(any)
	walk = func(v any) {
		if s, ok := v.(string); ok {
			out = append(out, s)
			return
		}
		for _, item := range entry.Items(v) {
			walk(item)
		}
	}
	walk(v)
	if out == nil {
		out = []string{}
	}
	return out
}

func toStrings(v any) any {
	out := entry.Strings(v)
	if out == nil {
		out = []string{}
	}
	return out
}
