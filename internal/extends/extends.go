// Package extends expands the `extends` keyword of a decoded pipeline
// document. Every job that extends one or more templates is replaced by the
// deep merge of those templates and its own keys.
package extends

import (
	"fmt"
	"slices"
	"strings"
)

// MaxNesting bounds how many templates may be chained through `extends`.
const MaxNesting = 10

// Resolve returns a copy of doc in which every top-level hash carrying
// `extends` has been merged with its templates. Keys in reserved are not
// jobs and are neither resolved nor usable as templates.
//
// Templates are merged in the order listed and the job's own keys win. Hashes
// merge key by key; any other value replaces the inherited one. Jobs that
// cannot be resolved are kept unchanged and reported in the returned
// messages. doc is never modified; the result shares unchanged subtrees
// with it.
func Resolve(doc map[string]any, reserved []string) (map[string]any, []string) {
	r := &resolver{
		doc:      doc,
		reserved: reserved,
		resolved: make(map[string]map[string]any),
		failed:   make(map[string]bool),
	}
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make(map[string]any, len(doc))
	for _, name := range names {
		out[name] = doc[name]
		if slices.Contains(reserved, name) {
			continue
		}
		if job, ok := r.resolve(name, nil); ok {
			out[name] = job
		}
	}
	return out, r.errs
}

type resolver struct {
	doc      map[string]any
	reserved []string
	resolved map[string]map[string]any
	failed   map[string]bool
	errs     []string
}

func (r *resolver) fail(name, msg string) (map[string]any, bool) {
	r.failed[name] = true
	r.errs = append(r.errs, fmt.Sprintf("%s: %s", name, msg))
	return nil, false
}

func (r *resolver) resolve(name string, chain []string) (map[string]any, bool) {
	if job, ok := r.resolved[name]; ok {
		return job, true
	}
	if r.failed[name] {
		return nil, false
	}
	job, ok := r.doc[name].(map[string]any)
	if !ok {
		return nil, false
	}
	raw, ok := job["extends"]
	if !ok {
		r.resolved[name] = job
		return job, true
	}
	bases, ok := names(raw)
	if !ok {
		// Left for entry validation to report.
		return nil, false
	}
	if slices.Contains(chain, name) {
		return r.fail(name, "circular dependency detected in `extends`")
	}
	if len(chain) >= MaxNesting {
		return r.fail(name, "nesting too deep in `extends`")
	}

	var unknown, invalid []string
	for _, base := range bases {
		v, exists := r.doc[base]
		switch {
		case !exists || slices.Contains(r.reserved, base):
			unknown = append(unknown, base)
		case !isHash(v):
			invalid = append(invalid, base)
		}
	}
	if len(unknown) > 0 {
		return r.fail(name, fmt.Sprintf("unknown keys in `extends` (%s)", strings.Join(unknown, ", ")))
	}
	if len(invalid) > 0 {
		return r.fail(name, fmt.Sprintf("invalid base hash in `extends` (%s)", strings.Join(invalid, ", ")))
	}

	next := append(slices.Clone(chain), name)
	merged := map[string]any{}
	for _, base := range bases {
		resolved, ok := r.resolve(base, next)
		if !ok {
			r.failed[name] = true
			return nil, false
		}
		merged = Merge(merged, resolved)
	}
	merged = Merge(merged, job)
	r.resolved[name] = merged
	return merged, true
}

// Merge deep merges over into base and returns the result. Neither input is
// modified.
func Merge(base, over map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		if bv, ok := out[k].(map[string]any); ok {
			if ov, ok := v.(map[string]any); ok {
				out[k] = Merge(bv, ov)
				continue
			}
		}
		out[k] = v
	}
	return out
}

func names(v any) ([]string, bool) {
	switch t := v.(type) {
	case string:
		return []string{t}, true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case []string:
		return t, true
	}
	return nil, false
}

func isHash(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}
