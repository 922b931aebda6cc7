package entry

// Factory builds a node for a raw value.
type Factory func(raw any, m Meta) Node

// Spec registers one permitted key of a hash node. A spec either builds a
// child node (New) or describes an attribute validated in place by the
// parent (Check, Norm).
type Spec struct {
	Key string
	New Factory
	// Check validates an attribute value. Its messages are prefixed with
	// the humanized key and reported at the parent's location.
	Check Check
	// Norm converts a valid attribute value into its composed form.
	Norm func(any) any
	// Inherit marks keys that fall back to the `default` section.
	Inherit bool
	// Gate, when set, must approve the key for it to be accepted.
	Gate func(Features) bool
}

// Table is the ordered registration of a hash node's keys.
type Table []Spec

// Enabled returns the specs accepted under f.
func (t Table) Enabled(f Features) Table {
	out := make(Table, 0, len(t))
	for _, s := range t {
		if s.Gate == nil || s.Gate(f) {
			out = append(out, s)
		}
	}
	return out
}

// Keys returns the keys accepted under f.
func (t Table) Keys(f Features) []string {
	enabled := t.Enabled(f)
	keys := make([]string, len(enabled))
	for i, s := range enabled {
		keys[i] = s.Key
	}
	return keys
}

// Checks returns the attribute checks of the specs accepted under f.
func (t Table) Checks(f Features) []Check {
	var out []Check
	for _, s := range t.Enabled(f) {
		if s.New == nil && s.Check != nil {
			out = append(out, Field(s.Key, s.Check))
		}
	}
	return out
}

// Chain returns the standard chain of a hash node: hash shape, allowlist,
// attribute checks, then extra.
func (t Table) Chain(f Features, extra ...Check) Chain {
	checks := []Check{AllowedKeys(t.Keys(f))}
	checks = append(checks, t.Checks(f)...)
	checks = append(checks, extra...)
	return Chain{Shape: HashShape, Checks: checks}
}

// Inheritable returns the keys that fall back to the `default` section.
func (t Table) Inheritable() []string {
	var keys []string
	for _, s := range t {
		if s.Inherit {
			keys = append(keys, s.Key)
		}
	}
	return keys
}

// Lookup finds the spec for key.
func (t Table) Lookup(key string) (Spec, bool) {
	for _, s := range t {
		if s.Key == key {
			return s, true
		}
	}
	return Spec{}, false
}

// ImagePortsEnabled gates `ports`.
func ImagePortsEnabled(f Features) bool { return f.ImagePorts }

// PullPolicyEnabled gates `pull_policy`.
func PullPolicyEnabled(f Features) bool { return f.PullPolicy }
