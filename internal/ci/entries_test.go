package ci

import (
	"fmt"
	"testing"

	"github.com/specialistvlad/ciconfig/internal/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage_Value(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want any
	}{
		{name: "string form", raw: "ruby:3", want: map[string]any{"name": "ruby:3"}},
		{name: "hash with name only", raw: map[string]any{"name": "ruby:3"}, want: map[string]any{"name": "ruby:3"}},
		{
			name: "hash with entrypoint",
			raw:  map[string]any{"name": "ruby:3", "entrypoint": []any{"/bin/sh", "-c"}},
			want: map[string]any{"name": "ruby:3", "entrypoint": []string{"/bin/sh", "-c"}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			image := standalone(NewImage, tc.raw)
			require.Empty(t, image.Errors())
			assert.Equal(t, tc.want, image.Value())
		})
	}
}

func TestImage_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{name: "wrong type", raw: 3, want: []string{"image config should be a hash or a string"}},
		{name: "blank string", raw: " ", want: []string{"image config can't be blank"}},
		{name: "missing name", raw: map[string]any{"entrypoint": []any{"sh"}}, want: []string{"image name can't be blank"}},
		{name: "gated ports", raw: map[string]any{"name": "x", "ports": []any{80}}, want: []string{"image config contains unknown keys: ports"}},
		{name: "gated pull policy", raw: map[string]any{"name": "x", "pull_policy": "always"}, want: []string{"image config contains unknown keys: pull_policy"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			image := standalone(NewImage, tc.raw)
			assert.Equal(t, tc.want, image.Errors())
			assert.Nil(t, image.Value())
		})
	}
}

func TestImage_EnabledFeatures(t *testing.T) {
	s := withFeatures(entry.Features{ImagePorts: true, PullPolicy: true})
	image := NewImage(map[string]any{
		"name":        "nginx",
		"ports":       []any{80, map[string]any{"number": 443, "protocol": "https", "name": "tls"}},
		"pull_policy": []any{"always", "if-not-present"},
	}, entry.Root("image", s))
	image.Compose(nil)

	require.Empty(t, image.Errors())
	assert.Equal(t, map[string]any{
		"name": "nginx",
		"ports": []any{
			map[string]any{"number": 80, "protocol": "http", "name": "default_port"},
			map[string]any{"number": 443, "protocol": "https", "name": "tls"},
		},
		"pull_policy": []string{"always", "if-not-present"},
	}, image.Value())
}

func TestPorts_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{name: "duplicate numbers", raw: []any{80, map[string]any{"number": 80}}, want: []string{"ports config has duplicate port numbers: 80"}},
		{name: "out of range", raw: []any{70000}, want: []string{"ports[0] config must be less than or equal to 65535"}},
		{name: "bad protocol", raw: []any{map[string]any{"number": 80, "protocol": "ftp"}}, want: []string{"ports[0] protocol should be one of: http, https"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ports := NewPorts(tc.raw, entry.Root("ports", nil))
			ports.Compose(nil)
			assert.Equal(t, tc.want, ports.Errors())
		})
	}
}

func TestArtifacts(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want []string
	}{
		{
			name: "expose_as with plain paths",
			raw:  map[string]any{"expose_as": "Coverage report", "paths": []any{"coverage/index.html"}},
		},
		{
			name: "expose_as with wildcard",
			raw:  map[string]any{"expose_as": "Report", "paths": []any{"out/*.html"}},
			want: []string{"artifacts paths can't contain '*' when used with 'expose_as'"},
		},
		{
			name: "expose_as without paths",
			raw:  map[string]any{"expose_as": "Report"},
			want: []string{"artifacts paths can't be blank"},
		},
		{
			name: "expose_as with punctuation",
			raw:  map[string]any{"expose_as": "report!", "paths": []any{"a"}},
			want: []string{"artifacts expose as can contain only letters, digits, '-', '_' and spaces"},
		},
		{
			name: "empty expose_as",
			raw:  map[string]any{"expose_as": "", "paths": []any{"a"}},
			want: []string{"artifacts expose as is too short (minimum is 1 character)"},
		},
		{
			name: "expire_in never",
			raw:  map[string]any{"paths": []any{"a"}, "expire_in": "never"},
		},
		{
			name: "expire_in garbage",
			raw:  map[string]any{"paths": []any{"a"}, "expire_in": "soon"},
			want: []string{"artifacts expire in should be a duration"},
		},
		{
			name: "unknown report kind",
			raw:  map[string]any{"reports": map[string]any{"junit": "report.xml", "nope": "x"}},
			want: []string{"reports config contains unknown keys: nope"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			artifacts := standalone(NewArtifacts, tc.raw)
			assert.Equal(t, tc.want, nilIfEmpty(artifacts.Errors()))
			assert.Equal(t, len(tc.want) == 0, artifacts.Valid())
		})
	}
}

func TestArtifacts_Value(t *testing.T) {
	artifacts := standalone(NewArtifacts, map[string]any{
		"paths":   []any{"dist/"},
		"when":    "always",
		"reports": map[string]any{"junit": "rspec.xml"},
	})

	require.Empty(t, artifacts.Errors())
	assert.Equal(t, map[string]any{
		"paths":   []string{"dist/"},
		"when":    "always",
		"reports": map[string]any{"junit": []string{"rspec.xml"}},
	}, artifacts.Value())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Kind
	}{
		{name: "rspec", raw: map[string]any{"script": "x"}, want: KindJob},
		{name: "deploy", raw: map[string]any{"trigger": "group/project"}, want: KindBridge},
		{name: "deploy", raw: map[string]any{"trigger": nil}, want: KindBridge},
		{name: ".template", raw: map[string]any{"trigger": "group/project"}, want: KindHidden},
		{name: ".template", raw: nil, want: KindHidden},
		{name: "broken", raw: "not a hash", want: KindJob},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s as %s", tc.name, tc.want), func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.name, tc.raw))
		})
	}
}

func TestBridge(t *testing.T) {
	t.Run("composed value", func(t *testing.T) {
		root := compose(t, map[string]any{
			"deploy": map[string]any{
				"stage":   "deploy",
				"trigger": map[string]any{"project": "group/app", "strategy": "depend"},
				"needs":   map[string]any{"pipeline": "$PARENT_PIPELINE_ID"},
			},
		})
		job := composedJob(t, root, "deploy")
		assert.Equal(t, map[string]any{"project": "group/app", "strategy": "depend"}, job["trigger"])
		assert.Equal(t, map[string]any{"pipeline": "$PARENT_PIPELINE_ID"}, job["needs"])
		assert.Equal(t, "deploy", job["stage"])
	})

	tests := []struct {
		name string
		raw  map[string]any
		want []string
	}{
		{
			name: "job only keys",
			raw:  map[string]any{"trigger": "group/app", "script": "x"},
			want: []string{"jobs:deploy config contains unknown keys: script"},
		},
		{
			name: "needs list form",
			raw:  map[string]any{"trigger": "group/app", "needs": []any{"build"}},
			want: []string{"jobs:deploy:needs config should be a hash"},
		},
		{
			name: "blank trigger",
			raw:  map[string]any{"trigger": nil},
			want: []string{"jobs:deploy trigger can't be blank"},
		},
		{
			name: "trigger without project",
			raw:  map[string]any{"trigger": map[string]any{"branch": "main"}},
			want: []string{"jobs:deploy:trigger project can't be blank"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := compose(t, map[string]any{"deploy": tc.raw})
			assert.Equal(t, tc.want, root.Errors())
		})
	}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    any
		wantErr []string
	}{
		{name: "integer", raw: 2, want: map[string]any{"max": 2}},
		{name: "hash", raw: map[string]any{"max": 1, "when": "script_failure"}, want: map[string]any{"max": 1, "when": []string{"script_failure"}}},
		{name: "too many", raw: 3, wantErr: []string{"retry config must be less than or equal to 2"}},
		{name: "fractional", raw: 1.5, wantErr: []string{"retry config must be an integer"}},
		{name: "wrong type", raw: "twice", wantErr: []string{"retry config should be an integer or a hash"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			retry := standalone(NewRetry, tc.raw)
			assert.Equal(t, tc.wantErr, nilIfEmpty(retry.Errors()))
			assert.Equal(t, tc.want, retry.Value())
		})
	}
}

func TestPolicy(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    any
		wantErr []string
	}{
		{name: "ref list", raw: []any{"main", "/^release/i"}, want: map[string]any{"refs": []string{"main", "/^release/i"}}},
		{name: "hash", raw: map[string]any{"refs": []any{"tags"}, "kubernetes": "active"}, want: map[string]any{"refs": []string{"tags"}, "kubernetes": "active"}},
		{name: "bad regexp", raw: []any{"/ma(in/"}, wantErr: []string{"policy config should be an array of strings or regular expressions"}},
		{name: "bad kubernetes", raw: map[string]any{"kubernetes": "on"}, wantErr: []string{"policy kubernetes should be one of: active"}},
		{name: "wrong type", raw: true, wantErr: []string{"policy config should be an array of strings or a hash"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			policy := standalone(NewPolicy, tc.raw)
			assert.Equal(t, tc.wantErr, nilIfEmpty(policy.Errors()))
			assert.Equal(t, tc.want, policy.Value())
		})
	}
}

func TestInherit_UnknownDefaultKeys(t *testing.T) {
	inherit := standalone(NewInherit, map[string]any{"default": []any{"image", "stage"}, "variables": "yes"})

	assert.Equal(t, []string{
		"inherit default contains unknown values: stage",
		"inherit variables should be a boolean value or an array of strings",
	}, inherit.Errors())
}

func TestTags_Limit(t *testing.T) {
	tags := make([]any, maxTags+1)
	for i := range tags {
		tags[i] = fmt.Sprintf("runner-%d", i)
	}

	node := standalone(NewTags, tags)
	assert.Equal(t, []string{"tags config must be less than the limit of 50 tags"}, node.Errors())
	assert.Empty(t, standalone(NewTags, tags[:maxTags]).Errors())
}

func TestRules_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{name: "not an array", raw: map[string]any{"if": "$CI"}, want: []string{"rules config should be an array of hashes"}},
		{name: "item not a hash", raw: []any{"always"}, want: []string{"rules[0] config should be a hash"}},
		{name: "delayed without start_in", raw: []any{map[string]any{"when": "delayed"}}, want: []string{"rules[0] start in can't be blank"}},
		{name: "unknown key", raw: []any{map[string]any{"if": "$CI", "unless": "x"}}, want: []string{"rules[0] config contains unknown keys: unless"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rules := NewJobRules(tc.raw, entry.Root("rules", nil))
			rules.Compose(nil)
			assert.Equal(t, tc.want, rules.Errors())
		})
	}
}

func TestWorkflowRules_RejectJobOnlyWhen(t *testing.T) {
	wf := NewWorkflow(map[string]any{"rules": []any{map[string]any{"when": "manual"}}}, entry.Root("workflow", nil))
	wf.Compose(nil)

	assert.Equal(t, []string{"workflow:rules[0] when should be one of: always, never"}, wf.Errors())
	assert.True(t, wf.(*Workflow).HasRules())
}

func TestEnvironment(t *testing.T) {
	env := standalone(NewEnvironment, "review/$CI_COMMIT_REF_SLUG")
	require.Empty(t, env.Errors())
	assert.Equal(t, map[string]any{"name": "review/$CI_COMMIT_REF_SLUG", "action": "start"}, env.Value())

	env = standalone(NewEnvironment, map[string]any{"name": "production", "action": "stop", "url": "https://example.com"})
	require.Empty(t, env.Errors())
	assert.Equal(t, map[string]any{"name": "production", "action": "stop", "url": "https://example.com"}, env.Value())

	env = standalone(NewEnvironment, "prod!")
	assert.Equal(t, []string{"environment config can contain only letters, digits, '-', '_', '/', '$', '{', '}', '.', and spaces"}, env.Errors())
}

func TestCache_Defaults(t *testing.T) {
	cache := standalone(NewCache, map[string]any{"paths": []any{"vendor/"}})

	require.Empty(t, cache.Errors())
	assert.Equal(t, map[string]any{
		"key":       "default",
		"paths":     []string{"vendor/"},
		"untracked": false,
		"policy":    "pull-push",
		"when":      "on_success",
	}, cache.Value())
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
