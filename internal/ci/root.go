package ci

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/ciconfig/internal/entry"
)

// reservedKeys are the top-level keys that are not jobs.
var reservedKeys = []string{
	"stages", "types", "default", "variables", "workflow",
	"image", "services", "cache", "before_script", "after_script",
}

// legacyKeys may still be written at the top level instead of under
// `default`.
var legacyKeys = []string{"image", "services", "cache", "before_script", "after_script"}

var rootTable = entry.Table{
	{Key: "stages", New: NewStages},
	{Key: "types", New: NewStages},
	{Key: "default", New: NewDefault},
	{Key: "variables", New: NewVariables},
	{Key: "workflow", New: NewWorkflow},
	{Key: "image", New: NewImage},
	{Key: "services", New: NewServices},
	{Key: "cache", New: NewCache},
	{Key: "before_script", New: NewCommands},
	{Key: "after_script", New: NewCommands},
}

// bookendStages are always available, before and after the declared ones.
const (
	preStage  = ".pre"
	postStage = ".post"
)

// InvalidError carries every message of a document that failed to compose.
type InvalidError struct {
	Messages []string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Messages, "; "))
}

// Root is a whole pipeline document.
type Root struct {
	entry.Base
	value    map[string]any
	warnings []string
}

// NewRoot wraps a decoded document. A nil s selects the default settings.
func NewRoot(raw any, s *entry.Settings) *Root {
	if s == nil {
		s = entry.DefaultSettings()
	}
	return &Root{Base: entry.NewBase("root", raw, entry.Root("", s))}
}

func (r *Root) chain() entry.Chain {
	limits := r.Settings().Limits
	return entry.Chain{
		Shape: entry.HashShape,
		Checks: []entry.Check{
			func(v any) []string { return entry.CheckLimits(v, limits) },
		},
	}
}

// Compose validates the document and resolves every job. The deps argument
// is ignored: the root builds the context its jobs see.
func (r *Root) Compose(*entry.Deps) {
	r.value = nil
	r.warnings = nil
	if !r.BeginRequired(r.chain()) {
		return
	}
	r.Build(rootTable)
	r.ComposeChildren(nil)
	r.checkLegacy()

	jobs := NewJobs(r.jobsRaw(), r.ChildMeta("jobs", true))
	r.Attach(jobs)
	jobs.Compose(r.deps())
	r.checkStages(jobs.(*Jobs))

	if r.Valid() {
		r.value = r.resolve(jobs)
	}
}

func (r *Root) jobsRaw() map[string]any {
	out := make(map[string]any)
	for k, v := range r.Hash() {
		if !slices.Contains(reservedKeys, k) {
			out[k] = v
		}
	}
	return out
}

func (r *Root) checkLegacy() {
	if r.Child("types").Defined() {
		r.warnings = append(r.warnings, "root `types` is deprecated, use `stages` instead")
	}
	defaults := r.Child("default").(*Default).Hash()
	for _, key := range legacyKeys {
		if !r.Child(key).Specified() {
			continue
		}
		if _, ok := defaults[key]; ok {
			r.AddError(fmt.Sprintf("%s is defined both globally and in 'default'", key))
			continue
		}
		r.warnings = append(r.warnings, fmt.Sprintf("root `%s` is deprecated, use `default:%s` instead", key, key))
	}
}

// deps collects the context handed to jobs. Invalid sections contribute
// nothing.
func (r *Root) deps() *entry.Deps {
	d := &entry.Deps{}
	defaults := make(map[string]any)
	if def := r.Child("default").(*Default); def.Valid() && def.Defined() {
		for k, v := range def.Values(defaultTable) {
			defaults[k] = v
		}
	}
	for _, key := range legacyKeys {
		c := r.Child(key)
		if !c.Defined() || !c.Valid() {
			continue
		}
		if _, ok := defaults[key]; !ok {
			defaults[key] = c.Value()
		}
	}
	if len(defaults) > 0 {
		d.Defaults = defaults
	}
	d.Variables = r.Child("variables").(*Variables).Map()
	d.WorkflowRules = r.Child("workflow").(*Workflow).HasRules()
	return d
}

// Stages returns the declared stages, or the default list.
func (r *Root) Stages() []string {
	if s := r.Child("stages"); s != nil && s.Defined() {
		return entry.Strings(s.Value())
	}
	if t := r.Child("types"); t != nil && t.Defined() {
		return entry.Strings(t.Value())
	}
	return slices.Clone(defaultStages)
}

// checkStages verifies every job's stage and its references to other jobs.
func (r *Root) checkStages(jobs *Jobs) {
	for _, name := range []string{"stages", "types"} {
		if c := r.Child(name); c.Defined() && !c.Valid() {
			return
		}
	}
	stages := append([]string{preStage}, r.Stages()...)
	stages = append(stages, postStage)
	index := make(map[string]int, len(stages))
	for i, s := range stages {
		if _, ok := index[s]; !ok {
			index[s] = i
		}
	}

	runnables := jobs.Runnables()
	position := make(map[string]int, len(runnables))
	for _, job := range runnables {
		if i, ok := index[job.Stage()]; ok {
			position[job.Key()] = i
		}
	}

	for _, job := range runnables {
		if !job.Valid() {
			continue
		}
		at, ok := position[job.Key()]
		if !ok {
			r.Report(job.Location(), "chosen stage does not exist; available stages are "+strings.Join(stages, ", "))
			continue
		}
		j, ok := job.(*Job)
		if !ok {
			continue
		}
		for _, need := range j.Needs() {
			p, ok := position[need.Job()]
			if !ok && need.Optional() {
				continue
			}
			if !ok || p >= at {
				r.Report(job.Location(), fmt.Sprintf("needs '%s' is not defined in prior stages", need.Job()))
			}
		}
		for _, dep := range j.Dependencies() {
			if p, ok := position[dep]; !ok || p > at {
				r.Report(job.Location(), fmt.Sprintf("dependencies '%s' is not defined in current or prior stages", dep))
			}
		}
	}
}

func (r *Root) resolve(jobs entry.Node) map[string]any {
	out := map[string]any{
		"stages": r.Stages(),
		"jobs":   jobs.Value(),
	}
	if v := r.Child("variables").(*Variables).Map(); len(v) > 0 {
		out["variables"] = v
	}
	if w := r.Child("workflow"); w.Defined() {
		out["workflow"] = w.Value()
	}
	return out
}

func (r *Root) Value() any {
	if r.value == nil {
		return nil
	}
	return r.value
}

// Warnings returns the deprecation notices of the last composition.
func (r *Root) Warnings() []string { return r.warnings }

// Result returns the composed document, an *InvalidError listing every
// message, or ErrNotComposed when Compose has not run.
func (r *Root) Result() (map[string]any, error) {
	if !r.Composed() {
		return nil, entry.ErrNotComposed
	}
	if errs := r.Errors(); len(errs) > 0 {
		return nil, &InvalidError{Messages: errs}
	}
	return r.value, nil
}

// Process composes raw with s and returns its result.
func Process(raw any, s *entry.Settings) (*Root, error) {
	root := NewRoot(raw, s)
	root.Compose(nil)
	_, err := root.Result()
	return root, err
}

// IsLimitError reports whether err was caused by a document exceeding the
// configured limits.
func IsLimitError(err error) bool {
	var invalid *InvalidError
	if !errors.As(err, &invalid) {
		return errors.Is(err, entry.ErrLimitExceeded)
	}
	for _, m := range invalid.Messages {
		if strings.Contains(m, "config exceeds the maximum") {
			return true
		}
	}
	return false
}

// ReservedKeys returns the top-level keys that are not jobs.
func ReservedKeys() []string { return slices.Clone(reservedKeys) }
