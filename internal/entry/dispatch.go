package entry

// Candidate pairs a matching predicate with the constructor used when it
// matches. K tags the chosen variant so callers can switch over it.
type Candidate[K comparable] struct {
	Kind  K
	Match func(name string, raw any) bool
	New   Factory
}

// Candidates is an ordered dispatch list. The first matching candidate wins.
type Candidates[K comparable] []Candidate[K]

// Classify returns the first candidate matching name and raw, or fallback
// when none does. Classification depends only on the raw shape.
func (cs Candidates[K]) Classify(name string, raw any, fallback K) Candidate[K] {
	for _, c := range cs {
		if c.Match(name, raw) {
			return c
		}
	}
	for _, c := range cs {
		if c.Kind == fallback {
			return c
		}
	}
	return Candidate[K]{Kind: fallback}
}
