package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	format Format
	exts   []string
}

func (s stubLoader) Load(_ context.Context, path string) (*Document, error) {
	return &Document{Path: path, Format: s.format}, nil
}

func (s stubLoader) Extensions() []string { return s.exts }

func TestLoaders_Dispatch(t *testing.T) {
	loaders := Loaders{
		stubLoader{format: FormatYAML, exts: []string{".yml", ".yaml"}},
		stubLoader{format: FormatHCL, exts: []string{".hcl"}},
	}

	tests := []struct {
		path string
		want Format
	}{
		{path: ".gitlab-ci.yml", want: FormatYAML},
		{path: "ci/pipeline.YAML", want: FormatYAML},
		{path: "pipeline.hcl", want: FormatHCL},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			doc, err := loaders.Load(context.Background(), tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, doc.Format)
			assert.Equal(t, tc.path, doc.Path)
		})
	}

	_, err := loaders.For("pipeline.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Equal(t, []string{".yml", ".yaml", ".hcl"}, loaders.Extensions())
}

func TestDocument_Hash(t *testing.T) {
	doc := &Document{Raw: map[string]any{"rspec": map[string]any{}}}
	m, ok := doc.Hash()
	assert.True(t, ok)
	assert.Contains(t, m, "rspec")

	_, ok = (&Document{Raw: []any{}}).Hash()
	assert.False(t, ok)
}
