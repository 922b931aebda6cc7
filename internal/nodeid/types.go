// internal/nodeid/types.go
package nodeid

// PathSegment represents a single component of an address path, e.g., `name[index]`.
type PathSegment struct {
	Name  string
	Index int // -1 indicates no index is present.
}

// NewPathSegment creates a new path segment without an index.
func NewPathSegment(name string) PathSegment {
	return PathSegment{Name: name, Index: -1}
}

// NewPathSegmentWithIndex creates a new path segment that includes an index.
func NewPathSegmentWithIndex(name string, index int) PathSegment {
	return PathSegment{Name: name, Index: index}
}

// HasIndex returns true if the path segment has an explicit index.
func (ps PathSegment) HasIndex() bool {
	return ps.Index != -1
}

// Address is the structured representation of a position in a configuration
// tree. The zero value addresses the document root.
type Address struct {
	Path []PathSegment
}

// Child returns a new address one key below a.
func (a Address) Child(name string) Address {
	return Address{Path: append(a.clone(), NewPathSegment(name))}
}

// Index returns a new address for the i-th element of the array at a. When
// the last segment already carries an index, a nameless segment is appended.
func (a Address) Index(i int) Address {
	path := a.clone()
	if n := len(path); n > 0 && !path[n-1].HasIndex() {
		path[n-1].Index = i
		return Address{Path: path}
	}
	return Address{Path: append(path, NewPathSegmentWithIndex("", i))}
}

// IsRoot reports whether a has no segments.
func (a Address) IsRoot() bool {
	return len(a.Path) == 0
}

func (a Address) clone() []PathSegment {
	out := make([]PathSegment, len(a.Path), len(a.Path)+1)
	copy(out, a.Path)
	return out
}

