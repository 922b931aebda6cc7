package entry

// Check inspects a raw value and returns location-free messages, one per
// violation. Checks must not modify the value.
type Check func(v any) []string

// Chain is an ordered list of checks guarded by a shape check.
type Chain struct {
	// Shape rejects values of the wrong type. When it reports anything no
	// other check runs.
	Shape Check
	// Checks run in order once the shape matched. All of them run and all
	// messages are kept.
	Checks []Check
}

// Run evaluates the chain against v.
func (c Chain) Run(v any) []string {
	if c.Shape != nil {
		if msgs := c.Shape(v); len(msgs) > 0 {
			return msgs
		}
	}
	var out []string
	for _, check := range c.Checks {
		out = append(out, check(v)...)
	}
	return out
}

// With returns a copy of c with more checks appended.
func (c Chain) With(checks ...Check) Chain {
	all := make([]Check, 0, len(c.Checks)+len(checks))
	all = append(all, c.Checks...)
	all = append(all, checks...)
	return Chain{Shape: c.Shape, Checks: all}
}
