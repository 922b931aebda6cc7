package entry

import "errors"

var (
	// ErrNotComposed is returned when a composed result is requested from a
	// node that has not been composed yet.
	ErrNotComposed = errors.New("entry: node has not been composed")

	// ErrLimitExceeded marks input rejected by a resource limit.
	ErrLimitExceeded = errors.New("entry: resource limit exceeded")
)
