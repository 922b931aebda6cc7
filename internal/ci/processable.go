package ci

import (
	"slices"

	"github.com/specialistvlad/ciconfig/internal/entry"
)

const defaultStage = "test"

// processableSpecs are the keys shared by every runnable job kind.
var processableSpecs = entry.Table{
	{Key: "stage", Check: entry.All(entry.StringValue, entry.Length(1, 0))},
	{Key: "extends", Check: entry.StringOrStringsValue, Norm: toStrings},
	{Key: "rules", New: NewJobRules},
	{Key: "only", New: NewPolicy},
	{Key: "except", New: NewPolicy},
	{Key: "variables", New: NewVariables},
	{Key: "inherit", New: NewInherit},
	{Key: "allow_failure", Check: entry.BoolValue},
	{Key: "resource_group", Check: entry.StringValue},
}

var processableChecks = []entry.Check{
	entry.Exclusive("rules", "when", "only", "except"),
}

// composedSeparately lists keys whose value is resolved by the job rather
// than copied from its child.
var composedSeparately = []string{"only", "except", "variables", "inherit"}

func concat(tables ...entry.Table) entry.Table {
	var out entry.Table
	for _, t := range tables {
		out = append(out, t...)
	}
	return out
}

// processable is the part of a job and a bridge that takes part in pipeline
// scheduling: stage, filters, variables and defaults.
type processable struct {
	entry.Base
	table entry.Table
	value map[string]any
}

func newProcessable(name string, table entry.Table, raw any, m entry.Meta) processable {
	return processable{Base: entry.NewBase(name, raw, m), table: table}
}

// compose runs the own checks and the children. It reports whether the
// whole subtree is valid.
func (p *processable) compose(deps *entry.Deps, extra ...entry.Check) bool {
	p.value = nil
	checks := append(slices.Clone(processableChecks), extra...)
	if !p.BeginRequired(p.table.Chain(p.Settings().Features, checks...)) {
		return false
	}
	p.Build(p.table)
	p.ComposeChildren(deps)
	return p.Valid()
}

// Stage returns the declared stage, or the default one.
func (p *processable) Stage() string {
	if s, ok := p.Hash()["stage"].(string); ok && s != "" {
		return s
	}
	return defaultStage
}

func (p *processable) directives() (defaults, variables entry.Directive) {
	if in, ok := p.Child("inherit").(*Inherit); ok {
		return in.Directives()
	}
	all := entry.Directive{Mode: entry.InheritAll}
	return all, all
}

// resolve builds the composed value from the local children and deps.
func (p *processable) resolve(deps *entry.Deps) map[string]any {
	defaults, variables := p.directives()
	out := map[string]any{
		"name":  p.Key(),
		"stage": p.Stage(),
		"when":  "on_success",
	}
	for k, v := range p.Values(p.table) {
		if !slices.Contains(composedSeparately, k) {
			out[k] = v
		}
	}
	for _, key := range p.table.Inheritable() {
		local, ok := p.Get(p.table, key)
		global, gok := deps.Default(key)
		if v := entry.Fallback(key, local, ok, global, gok, defaults); v != nil {
			out[key] = v
		}
	}
	only, except := p.filters(deps)
	if only != nil {
		out["only"] = only
	}
	if except != nil {
		out["except"] = except
	}
	var global map[string]string
	if deps != nil {
		global = deps.Variables
	}
	var local map[string]string
	if v, ok := p.Child("variables").(*Variables); ok {
		local = v.Map()
	}
	if merged := entry.MergeVariables(local, global, variables); len(merged) > 0 {
		out["variables"] = merged
	}
	return out
}

// filters returns the composed `only` and `except` values. A job that picks
// none of `rules`, `only` and `except`, in a document without workflow
// rules, runs for branches and tags.
func (p *processable) filters(deps *entry.Deps) (only, except any) {
	only, _ = p.Get(p.table, "only")
	except, _ = p.Get(p.table, "except")
	raw := p.Hash()
	_, hasRules := raw["rules"]
	_, hasOnly := raw["only"]
	_, hasExcept := raw["except"]
	if hasRules || hasOnly || hasExcept || (deps != nil && deps.WorkflowRules) {
		return only, except
	}
	return defaultOnly(), except
}

func (p *processable) Value() any {
	if p.value == nil {
		return nil
	}
	return p.value
}
