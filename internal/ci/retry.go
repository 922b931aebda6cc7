package ci

import "github.com/specialistvlad/ciconfig/internal/entry"

const maxRetries = 2

var retryWhen = []string{
	"always", "unknown_failure", "script_failure", "api_failure",
	"stuck_or_timeout_failure", "runner_system_failure", "runner_unsupported",
	"stale_schedule", "job_execution_timeout", "archived_failure",
	"unmet_prerequisites", "scheduler_failure", "data_integrity_failure",
}

var retryTable = entry.Table{
	{Key: "max", Check: entry.IntRange(0, maxRetries)},
	{Key: "when", Check: entry.All(entry.StringOrStringsValue, entry.EachOneOf(retryWhen...)), Norm: toStrings},
}

// Retry is how many times a failed job is retried, and on which failures.
type Retry struct {
	entry.Base
}

func NewRetry(raw any, m entry.Meta) entry.Node {
	return &Retry{Base: entry.NewBase("retry", raw, m)}
}

var retryShape = entry.Shape("config should be an integer or a hash", entry.IsHash, entry.IsNumber)

func (n *Retry) Compose(*entry.Deps) {
	if n.Hash() != nil {
		chain := retryTable.Chain(n.Settings().Features)
		chain.Shape = retryShape
		n.Begin(chain)
		return
	}
	n.Begin(entry.Chain{Shape: retryShape, Checks: []entry.Check{prefixed("config", entry.IntRange(0, maxRetries))}})
}

func (n *Retry) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	if n.Hash() == nil {
		count, _ := entry.AsInt(n.Raw())
		return map[string]any{"max": count}
	}
	out := n.Values(retryTable)
	if v, ok := out["max"]; ok {
		out["max"], _ = entry.AsInt(v)
	}
	return out
}
