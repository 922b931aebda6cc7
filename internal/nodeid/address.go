// internal/nodeid/address.go
package nodeid

import (
	"fmt"
	"reflect"
	"strings"
)

// String serializes the Address into its canonical path string representation.
func (a Address) String() string {
	var sb strings.Builder
	for i, segment := range a.Path {
		if i > 0 && segment.Name != "" {
			sb.WriteRune(':')
		}
		sb.WriteString(segment.Name)
		if segment.HasIndex() {
			sb.WriteString(fmt.Sprintf("[%d]", segment.Index))
		}
	}
	return sb.String()
}

// Equal checks for deep equality between two addresses.
func (a Address) Equal(other Address) bool {
	if len(a.Path) == 0 || len(other.Path) == 0 {
		return len(a.Path) == len(other.Path)
	}
	return reflect.DeepEqual(a.Path, other.Path)
}

// Lookup walks a composed value along the address. Names select map keys,
// indices select slice elements.
func (a Address) Lookup(v any) (any, bool) {
	cur := v
	for _, segment := range a.Path {
		if segment.Name != "" {
			m, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			if cur, ok = m[segment.Name]; !ok {
				return nil, false
			}
		}
		if !segment.HasIndex() {
			continue
		}
		rv := reflect.ValueOf(cur)
		if rv.Kind() != reflect.Slice || segment.Index >= rv.Len() {
			return nil, false
		}
		cur = rv.Index(segment.Index).Interface()
	}
	return cur, true
}
