package ci

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/ciconfig/internal/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot_MinimalDocument(t *testing.T) {
	root := compose(t, map[string]any{
		"rspec": map[string]any{"script": "rake spec"},
	})

	value, err := root.Result()
	require.NoError(t, err)

	want := map[string]any{
		"stages": []string{"build", "test", "deploy"},
		"jobs": map[string]any{
			"rspec": map[string]any{
				"name":   "rspec",
				"stage":  "test",
				"when":   "on_success",
				"script": []string{"rake spec"},
				"only":   map[string]any{"refs": []string{"branches", "tags"}},
			},
		},
	}
	if diff := cmp.Diff(want, value); diff != "" {
		t.Errorf("composed value mismatch (-want +got):\n%s", diff)
	}
}

func TestRoot_ComposeIsIdempotent(t *testing.T) {
	raw := map[string]any{
		"variables": map[string]any{"A": "1"},
		"default":   map[string]any{"image": "ruby:3"},
		"rspec":     map[string]any{"script": "x", "bogus": true},
		"lint":      map[string]any{"script": "y"},
		"deploy":    map[string]any{"trigger": "group/project"},
	}
	root := NewRoot(raw, nil)

	root.Compose(nil)
	firstErrs, firstValue := root.Errors(), root.Value()
	root.Compose(nil)

	assert.Equal(t, firstErrs, root.Errors())
	assert.Equal(t, firstValue, root.Value())
	assert.NotEmpty(t, firstErrs)
}

func TestRoot_ResultBeforeCompose(t *testing.T) {
	root := NewRoot(map[string]any{"rspec": map[string]any{"script": "x"}}, nil)

	_, err := root.Result()
	assert.ErrorIs(t, err, entry.ErrNotComposed)
	assert.Nil(t, root.Value())
	assert.False(t, root.Valid())
}

func TestRoot_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{
			name: "null document",
			raw:  nil,
			want: []string{"root config can't be blank"},
		},
		{
			name: "not a hash",
			raw:  "script: x",
			want: []string{"root config should be a hash"},
		},
		{
			name: "only hidden jobs",
			raw:  map[string]any{".tmpl": map[string]any{"script": "x"}},
			want: []string{"jobs config should contain at least one visible job"},
		},
		{
			name: "blank hidden job",
			raw: map[string]any{
				".tmpl": nil,
				"rspec": map[string]any{"script": "x"},
			},
			want: []string{"jobs:.tmpl config can't be blank"},
		},
		{
			name: "legacy key also in default",
			raw: map[string]any{
				"image":   "ruby",
				"default": map[string]any{"image": "golang"},
				"rspec":   map[string]any{"script": "x"},
			},
			want: []string{"root image is defined both globally and in 'default'"},
		},
		{
			name: "undeclared stage",
			raw: map[string]any{
				"stages": []any{"build"},
				"rspec":  map[string]any{"script": "x"},
			},
			want: []string{"jobs:rspec chosen stage does not exist; available stages are .pre, build, .post"},
		},
		{
			name: "needs a job of the same stage",
			raw: map[string]any{
				"build": map[string]any{"stage": "build", "script": "b"},
				"lint":  map[string]any{"script": "l"},
				"rspec": map[string]any{"script": "x", "needs": []any{"build", "lint"}},
			},
			want: []string{"jobs:rspec needs 'lint' is not defined in prior stages"},
		},
		{
			name: "dependencies on a later stage",
			raw: map[string]any{
				"package": map[string]any{"stage": "deploy", "script": "p"},
				"rspec":   map[string]any{"script": "x", "dependencies": []any{"package"}},
			},
			want: []string{"jobs:rspec dependencies 'package' is not defined in current or prior stages"},
		},
		{
			name: "invalid stages list",
			raw: map[string]any{
				"stages": "build",
				"rspec":  map[string]any{"script": "x"},
			},
			want: []string{"stages config should be an array of strings"},
		},
		{
			name: "invalid global variables",
			raw: map[string]any{
				"variables": map[string]any{"A": []any{"x"}},
				"rspec":     map[string]any{"script": "x"},
			},
			want: []string{"variables config should be a hash of key value pairs, value can be a hash"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := NewRoot(tc.raw, nil)
			root.Compose(nil)

			assert.Equal(t, tc.want, root.Errors())
			_, err := root.Result()
			var invalid *InvalidError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tc.want, invalid.Messages)
		})
	}
}

func TestRoot_Warnings(t *testing.T) {
	root := compose(t, map[string]any{
		"types": []any{"build", "test"},
		"image": "ruby:3",
		"rspec": map[string]any{"script": "x"},
	})

	require.Empty(t, root.Errors())
	assert.Equal(t, []string{
		"root `types` is deprecated, use `stages` instead",
		"root `image` is deprecated, use `default:image` instead",
	}, root.Warnings())
	assert.Equal(t, []string{"build", "test"}, root.Stages())
	assert.Equal(t, map[string]any{"name": "ruby:3"}, composedJob(t, root, "rspec")["image"])
}

func TestRoot_LimitsAreCheckedFirst(t *testing.T) {
	s := entry.DefaultSettings()
	s.Limits.MaxDepth = 3
	root := composeWith(t, map[string]any{
		"rspec": map[string]any{"script": map[string]any{"a": "b"}},
	}, s)

	assert.Equal(t, []string{"root config exceeds the maximum nesting depth of 3"}, root.Errors())
	_, err := root.Result()
	assert.True(t, IsLimitError(err))
}

func TestRoot_WorkflowAndVariables(t *testing.T) {
	root := compose(t, map[string]any{
		"variables": map[string]any{"A": "1", "B": 2},
		"workflow": map[string]any{
			"name":  "pipeline",
			"rules": []any{map[string]any{"if": "$CI_COMMIT_TAG", "when": "never"}},
		},
		"rspec": map[string]any{"script": "x"},
	})

	value, err := root.Result()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, value["variables"])
	assert.Equal(t, map[string]any{
		"name":  "pipeline",
		"rules": []any{map[string]any{"if": "$CI_COMMIT_TAG", "when": "never"}},
	}, value["workflow"])
}
