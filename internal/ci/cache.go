package ci

import "github.com/specialistvlad/ciconfig/internal/entry"

var cacheTable = entry.Table{
	{Key: "key", Check: cacheKey, Norm: normCacheKey},
	{Key: "paths", Check: entry.StringsValue, Norm: toStrings},
	{Key: "untracked", Check: entry.BoolValue},
	{Key: "policy", Check: entry.OneOf("pull", "push", "pull-push")},
	{Key: "when", Check: entry.OneOf("on_success", "on_failure", "always")},
	{Key: "fallback_keys", Check: entry.StringsValue, Norm: toStrings},
}

var cacheDefaults = map[string]any{
	"key":       "default",
	"untracked": false,
	"policy":    "pull-push",
	"when":      "on_success",
}

// Cache lists the paths kept between pipeline runs.
type Cache struct {
	entry.Base
}

func NewCache(raw any, m entry.Meta) entry.Node {
	return &Cache{Base: entry.NewBase("cache", raw, m)}
}

func (n *Cache) Compose(*entry.Deps) {
	n.Begin(cacheTable.Chain(n.Settings().Features))
}

func (n *Cache) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	out := make(map[string]any, len(cacheDefaults)+2)
	for k, v := range cacheDefaults {
		out[k] = v
	}
	for k, v := range n.Values(cacheTable) {
		out[k] = v
	}
	return out
}

// cacheKey accepts a plain key or a `{files, prefix}` hash.
func cacheKey(v any) []string {
	switch t := v.(type) {
	case string:
		return nil
	case map[string]any:
		var out []string
		for k := range t {
			if k != "files" && k != "prefix" {
				out = append(out, "should only contain files and prefix")
				break
			}
		}
		if files := t["files"]; !entry.IsStrings(files) || len(entry.Items(files)) == 0 || len(entry.Items(files)) > 2 {
			out = append(out, "files should be an array of one or two file paths")
		}
		if p, ok := t["prefix"]; ok && !entry.IsString(p) {
			out = append(out, "prefix should be a string")
		}
		return out
	}
	return []string{"should be a string or a hash"}
}

func normCacheKey(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := map[string]any{"files": toStrings(m["files"])}
	if p, ok := m["prefix"]; ok {
		out["prefix"] = p
	}
	return out
}
