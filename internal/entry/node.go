package entry

import (
	"github.com/specialistvlad/ciconfig/internal/nodeid"
)

// Node is a single unit of the configuration tree.
type Node interface {
	// Key is the name this node was registered under in its parent.
	Key() string
	// Location identifies the node in user-facing messages.
	Location() string
	// Specified reports whether the key was present in the parent map, even
	// when its value is null.
	Specified() bool
	// Defined reports whether the node holds a non-null value.
	Defined() bool
	// Compose validates the node and its children and resolves its value
	// against deps. It may be called repeatedly; each call starts afresh.
	Compose(deps *Deps)
	// Composed reports whether Compose has run.
	Composed() bool
	// Valid reports whether the node was composed without errors. It is
	// false for a node that was never composed.
	Valid() bool
	// Errors returns the node's own messages followed by its children's.
	Errors() []string
	// Value returns the composed semantic value. It is nil before
	// composition.
	Value() any
}

// Deps is the read-only context a parent hands to the nodes it composes.
type Deps struct {
	// Defaults holds the defined values of a valid `default` section keyed
	// by entry name. It is nil when the section is absent or invalid.
	Defaults map[string]any
	// Variables holds the valid global variables, or nil.
	Variables map[string]string
	// WorkflowRules is true when the document declares `workflow: rules`.
	WorkflowRules bool
}

// Default returns the default value registered for key.
func (d *Deps) Default(key string) (any, bool) {
	if d == nil || d.Defaults == nil {
		return nil, false
	}
	v, ok := d.Defaults[key]
	return v, ok
}

// Meta describes where a node sits in the tree.
type Meta struct {
	Key       string
	Path      nodeid.Address
	Specified bool
	Settings  *Settings
}

// Root returns metadata for a node without a parent.
func Root(key string, s *Settings) Meta {
	m := Meta{Key: key, Specified: true, Settings: s}
	if key != "" {
		m.Path = nodeid.Address{}.Child(key)
	}
	return m
}

// Base implements the bookkeeping shared by every node type. Concrete
// nodes embed it and implement Compose and Value.
type Base struct {
	raw      any
	name     string
	meta     Meta
	errs     []string
	children []Node
	index    map[string]Node
	composed bool
}

// NewBase wraps raw. The name labels the node in messages when it was built
// without a key.
func NewBase(name string, raw any, m Meta) Base {
	if m.Settings == nil {
		m.Settings = DefaultSettings()
	}
	return Base{raw: raw, name: name, meta: m}
}

// Raw returns the unvalidated value.
func (b *Base) Raw() any { return b.raw }

// Hash returns the raw value as a map when it is one.
func (b *Base) Hash() map[string]any {
	m, _ := b.raw.(map[string]any)
	return m
}

func (b *Base) Key() string { return b.meta.Key }
func (b *Base) Path() nodeid.Address { return b.meta.Path }
func (b *Base) Settings() *Settings { return b.meta.Settings }
func (b *Base) Specified() bool { return b.meta.Specified }
func (b *Base) Defined() bool { return b.meta.Specified && b.raw != nil }
func (b *Base) Composed() bool { return b.composed }
func (b *Base) Children() []Node { return b.children }

func (b *Base) Location() string {
	if len(b.meta.Path.Path) == 0 {
		return b.name
	}
	return b.meta.Path.String()
}

func (b *Base) Valid() bool {
	return b.composed && len(b.Errors()) == 0
}

func (b *Base) Errors() []string {
	out := make([]string, 0, len(b.errs))
	out = append(out, b.errs...)
	for _, c := range b.children {
		out = append(out, c.Errors()...)
	}
	return out
}

// AddError records msg against this node's location.
func (b *Base) AddError(msg string) {
	b.errs = append(b.errs, b.Location()+" "+msg)
}

// Report records msg against an arbitrary location, for checks a parent
// runs across several of its children.
func (b *Base) Report(location, msg string) {
	b.errs = append(b.errs, location+" "+msg)
}

// OwnValid reports whether the node itself, ignoring children, is error free.
func (b *Base) OwnValid() bool { return len(b.errs) == 0 }

// Begin resets the node for a composition pass and runs chain against the
// raw value. It returns true when the node is defined and passed every check,
// which is the condition for building children.
func (b *Base) Begin(chain Chain) bool {
	b.errs = nil
	b.children = nil
	b.index = nil
	b.composed = true
	if !b.Defined() {
		return false
	}
	for _, msg := range chain.Run(b.raw) {
		b.AddError(msg)
	}
	return len(b.errs) == 0
}

// BeginRequired is Begin for nodes that must hold a value: a null value is
// reported as blank.
func (b *Base) BeginRequired(chain Chain) bool {
	ok := b.Begin(chain)
	if b.raw == nil {
		b.AddError("config can't be blank")
	}
	return ok
}

// Child returns the child registered under key, or nil.
func (b *Base) Child(key string) Node {
	return b.index[key]
}

// Attach adds n as a child. Children keep insertion order.
func (b *Base) Attach(n Node) {
	if b.index == nil {
		b.index = make(map[string]Node)
	}
	b.children = append(b.children, n)
	b.index[n.Key()] = n
}

// ChildMeta builds metadata for a child stored under key.
func (b *Base) ChildMeta(key string, specified bool) Meta {
	return Meta{
		Key:       key,
		Path:      b.meta.Path.Child(key),
		Specified: specified,
		Settings:  b.meta.Settings,
	}
}

// ItemMeta builds metadata for the i-th element of an array node.
func (b *Base) ItemMeta(i int) Meta {
	return Meta{
		Key:       b.meta.Key,
		Path:      b.meta.Path.Index(i),
		Specified: true,
		Settings:  b.meta.Settings,
	}
}

// ComposeChildren composes every attached child with deps.
func (b *Base) ComposeChildren(deps *Deps) {
	for _, c := range b.children {
		c.Compose(deps)
	}
}

// Build instantiates a child for every enabled node spec in t and attaches
// it. Children are not composed.
func (b *Base) Build(t Table) {
	raw := b.Hash()
	for _, s := range t.Enabled(b.meta.Settings.Features) {
		if s.New == nil {
			continue
		}
		v, ok := raw[s.Key]
		b.Attach(s.New(v, b.ChildMeta(s.Key, ok)))
	}
}

// Get returns the composed value registered under key and whether it was
// defined locally. Attributes come from the raw hash, nodes from children.
func (b *Base) Get(t Table, key string) (any, bool) {
	s, ok := t.Lookup(key)
	if !ok {
		return nil, false
	}
	if s.New != nil {
		c := b.Child(key)
		if c == nil || !c.Defined() {
			return nil, false
		}
		return c.Value(), true
	}
	v, ok := b.Hash()[key]
	if !ok || v == nil {
		return nil, false
	}
	if s.Norm != nil {
		v = s.Norm(v)
	}
	return v, true
}

// Values collects every defined key of t into a map.
func (b *Base) Values(t Table) map[string]any {
	out := make(map[string]any)
	for _, s := range t.Enabled(b.meta.Settings.Features) {
		if v, ok := b.Get(t, s.Key); ok && v != nil {
			out[s.Key] = v
		}
	}
	return out
}
