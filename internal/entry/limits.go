package entry

import "fmt"

// CheckLimits walks raw without recursion and reports an exceeded limit as
// a message for the root location. The element limit takes precedence.
func CheckLimits(raw any, l Limits) []string {
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	if l.MaxElements <= 0 {
		l.MaxElements = DefaultMaxElements
	}

	type frame struct {
		v     any
		depth int
	}
	stack := []frame{{v: raw, depth: 1}}
	count, deepest := 0, 0
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		if count > l.MaxElements {
			return []string{fmt.Sprintf("config exceeds the maximum number of elements (%d)", l.MaxElements)}
		}
		deepest = max(deepest, f.depth)
		switch t := f.v.(type) {
		case map[string]any:
			for _, child := range t {
				stack = append(stack, frame{v: child, depth: f.depth + 1})
			}
		case []any:
			for _, child := range t {
				stack = append(stack, frame{v: child, depth: f.depth + 1})
			}
		}
	}
	if deepest > l.MaxDepth {
		return []string{fmt.Sprintf("config exceeds the maximum nesting depth of %d", l.MaxDepth)}
	}
	return nil
}

// LimitError wraps msg so callers can match ErrLimitExceeded.
func LimitError(msg string) error {
	return fmt.Errorf("%w: %s", ErrLimitExceeded, msg)
}
