package entry

const (
	// DefaultMaxDepth bounds how deeply a raw document may nest.
	DefaultMaxDepth = 64
	// DefaultMaxElements bounds the total number of values in a raw document.
	DefaultMaxElements = 100000
)

// Features toggles keys that are only accepted when enabled. A disabled
// feature behaves exactly like a key missing from the allowlist.
type Features struct {
	// ImagePorts enables `ports` on image and service entries.
	ImagePorts bool
	// PullPolicy enables `pull_policy` on image and service entries.
	PullPolicy bool
}

// Limits caps the size of documents accepted by the engine.
type Limits struct {
	MaxDepth    int
	MaxElements int
}

// Settings holds everything shared by the nodes of one tree.
type Settings struct {
	Features Features
	Limits   Limits
}

// DefaultSettings returns settings with every feature disabled and the
// default limits.
func DefaultSettings() *Settings {
	return &Settings{
		Limits: Limits{MaxDepth: DefaultMaxDepth, MaxElements: DefaultMaxElements},
	}
}
