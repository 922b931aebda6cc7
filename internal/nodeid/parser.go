// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// segmentRegex is used to parse a single segment of a path, e.g., `name` or `name[1]`.
var segmentRegex = regexp.MustCompile(`^([^\[\]]*)(?:\[(\d+)\])?$`)

// Parse creates a new Address by parsing its canonical string representation.
// Job names containing a colon cannot be addressed.
func Parse(rawID string) (Address, error) {
	if rawID == "" {
		return Address{}, fmt.Errorf("identifier cannot be empty")
	}

	var addr Address
	for _, segmentStr := range strings.Split(rawID, ":") {
		if segmentStr == "" {
			return Address{}, fmt.Errorf("identifier path contains empty segment")
		}

		matches := segmentRegex.FindStringSubmatch(segmentStr)
		if matches == nil {
			return Address{}, fmt.Errorf("invalid path segment format: %q", segmentStr)
		}

		name := matches[1]
		if name == "" && len(addr.Path) == 0 {
			return Address{}, fmt.Errorf("first segment must have a name: %q", segmentStr)
		}

		segment := NewPathSegment(name)
		if matches[2] != "" {
			index, err := strconv.Atoi(matches[2])
			if err != nil {
				return Address{}, fmt.Errorf("invalid index in segment %q: %w", segmentStr, err)
			}
			segment.Index = index
		}
		addr.Path = append(addr.Path, segment)
	}

	return addr, nil
}
