package config

// Format names the syntax a document was written in.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// Document is one decoded pipeline file.
type Document struct {
	Path   string
	Format Format
	// Raw is the decoded tree. It is nil for an empty file.
	Raw any
}

// Hash returns the top level of the document when it is a map.
func (d *Document) Hash() (map[string]any, bool) {
	m, ok := d.Raw.(map[string]any)
	return m, ok
}
