package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNode is a hash node with one attribute and one child built from
// testTable.
type testNode struct {
	Base
}

func newTestNode(name string, raw any, m Meta) Node {
	return &testNode{Base: NewBase(name, raw, m)}
}

var testTable = Table{
	{Key: "name", Check: StringValue},
	{Key: "size", Check: IntRange(1, 10), Inherit: true},
	{Key: "child", New: func(raw any, m Meta) Node { return newTestLeaf(raw, m) }},
	{Key: "gated", Check: BoolValue, Gate: ImagePortsEnabled},
}

func (n *testNode) Compose(deps *Deps) {
	if !n.BeginRequired(testTable.Chain(n.Settings().Features, Required("name"))) {
		return
	}
	n.Build(testTable)
	n.ComposeChildren(deps)
}

func (n *testNode) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	return n.Values(testTable)
}

type testLeaf struct {
	Base
}

func newTestLeaf(raw any, m Meta) Node {
	return &testLeaf{Base: NewBase("leaf", raw, m)}
}

func (n *testLeaf) Compose(*Deps) { n.Begin(Chain{Shape: StringsShape}) }

func (n *testLeaf) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	return Strings(n.Raw())
}

func TestBase_Lifecycle(t *testing.T) {
	n := newTestNode("thing", map[string]any{"name": "a", "child": []any{"x"}}, Root("", nil))

	assert.False(t, n.Composed())
	assert.False(t, n.Valid())
	assert.Nil(t, n.Value())

	n.Compose(nil)
	require.True(t, n.Composed())
	require.True(t, n.Valid())
	assert.Equal(t, map[string]any{"name": "a", "child": []string{"x"}}, n.Value())
}

func TestBase_Errors(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		settings *Settings
		want     []string
	}{
		{name: "null", raw: nil, want: []string{"thing config can't be blank"}},
		{name: "wrong shape", raw: []any{}, want: []string{"thing config should be a hash"}},
		{name: "own checks stop children", raw: map[string]any{"child": 1}, want: []string{"thing name can't be blank"}},
		{name: "child errors carry the path", raw: map[string]any{"name": "a", "child": 1}, want: []string{"child config should be an array of strings"}},
		{name: "gated key is unknown", raw: map[string]any{"name": "a", "gated": true}, want: []string{"thing config contains unknown keys: gated"}},
		{
			name:     "enabled gate",
			raw:      map[string]any{"name": "a", "gated": true},
			settings: &Settings{Features: Features{ImagePorts: true}},
		},
		{name: "attribute check", raw: map[string]any{"name": "a", "size": 11}, want: []string{"thing size must be less than or equal to 10"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := newTestNode("thing", tc.raw, Root("", tc.settings))
			n.Compose(nil)
			if tc.want == nil {
				assert.Empty(t, n.Errors())
				return
			}
			assert.Equal(t, tc.want, n.Errors())
		})
	}
}

func TestBase_Locations(t *testing.T) {
	n := newTestNode("thing", map[string]any{"name": "a", "child": 1}, Root("jobs", nil))
	n.Compose(nil)

	assert.Equal(t, "jobs", n.Location())
	assert.Equal(t, []string{"jobs:child config should be an array of strings"}, n.Errors())
}

func TestBase_SpecifiedAndDefined(t *testing.T) {
	n := newTestNode("thing", map[string]any{"name": "a", "child": nil}, Root("", nil))
	n.Compose(nil)
	require.Empty(t, n.Errors())

	child := n.(*testNode).Child("child")
	assert.True(t, child.Specified())
	assert.False(t, child.Defined())

	missing := newTestNode("thing", map[string]any{"name": "a"}, Root("", nil))
	missing.Compose(nil)
	child = missing.(*testNode).Child("child")
	assert.False(t, child.Specified())
	assert.False(t, child.Defined())
}

func TestBase_Get(t *testing.T) {
	n := newTestNode("thing", map[string]any{"name": "a", "size": 3}, Root("", nil))
	n.Compose(nil)
	base := &n.(*testNode).Base

	v, ok := base.Get(testTable, "size")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = base.Get(testTable, "child")
	assert.False(t, ok)

	_, ok = base.Get(testTable, "unknown")
	assert.False(t, ok)
	assert.Equal(t, []string{"size"}, testTable.Inheritable())
}

func TestDeps_Default(t *testing.T) {
	var nilDeps *Deps
	_, ok := nilDeps.Default("image")
	assert.False(t, ok)

	d := &Deps{Defaults: map[string]any{"image": "ruby"}}
	v, ok := d.Default("image")
	assert.True(t, ok)
	assert.Equal(t, "ruby", v)
}
