package ci

import (
	"regexp"
	"strings"

	"github.com/specialistvlad/ciconfig/internal/entry"
)

const exposeAsMaxLength = 100

var (
	exposeAsPattern = regexp.MustCompile(`^[A-Za-z0-9_\- ]*$`)
	artifactsWhen   = []string{"on_success", "on_failure", "always"}
)

var artifactsTable = entry.Table{
	{Key: "name", Check: entry.StringValue},
	{Key: "untracked", Check: entry.BoolValue},
	{Key: "paths", Check: entry.StringsValue, Norm: toStrings},
	{Key: "exclude", Check: entry.StringsValue, Norm: toStrings},
	{Key: "when", Check: entry.OneOf(artifactsWhen...)},
	{Key: "expire_in", Check: expireIn},
	{Key: "expose_as", Check: entry.All(
		entry.StringValue,
		entry.Length(1, exposeAsMaxLength),
		entry.Matches(exposeAsPattern, "can contain only letters, digits, '-', '_' and spaces"),
	)},
	{Key: "public", Check: entry.BoolValue},
	{Key: "reports", New: NewReports},
}

// Artifacts describes the files a job uploads when it finishes.
type Artifacts struct {
	entry.Base
}

func NewArtifacts(raw any, m entry.Meta) entry.Node {
	return &Artifacts{Base: entry.NewBase("artifacts", raw, m)}
}

func hasExposeAs(m map[string]any) bool {
	_, ok := m["expose_as"]
	return ok
}

func (n *Artifacts) Compose(deps *entry.Deps) {
	chain := artifactsTable.Chain(n.Settings().Features,
		entry.When(hasExposeAs, entry.Required("paths"), exposedWildcards),
	)
	if !n.Begin(chain) {
		return
	}
	n.Build(artifactsTable)
	n.ComposeChildren(deps)
}

func (n *Artifacts) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	return n.Values(artifactsTable)
}

func exposedWildcards(v any) []string {
	m, _ := v.(map[string]any)
	for _, p := range entry.Strings(m["paths"]) {
		if strings.Contains(p, "*") {
			return []string{"paths can't contain '*' when used with 'expose_as'"}
		}
	}
	return nil
}

var expireIn = entry.Is(func(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	if s == "never" {
		return true
	}
	_, err := entry.ParseDuration(s)
	return err == nil
}, "should be a duration")

var reportKinds = []string{
	"junit", "coverage_report", "codequality", "sast", "secret_detection",
	"dependency_scanning", "container_scanning", "dast", "license_scanning",
	"performance", "metrics", "terraform", "dotenv", "cyclonedx", "annotations",
}

var reportsTable = func() entry.Table {
	t := make(entry.Table, 0, len(reportKinds))
	for _, k := range reportKinds {
		check, norm := entry.StringOrStringsValue, toStrings
		if k == "coverage_report" {
			check, norm = coverageReport, nil
		}
		t = append(t, entry.Spec{Key: k, Check: check, Norm: norm})
	}
	return t
}()

var coverageReport = entry.All(
	entry.HashValue,
	func(v any) []string {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		var out []string
		if f, ok := m["coverage_format"].(string); !ok || (f != "cobertura" && f != "jacoco") {
			out = append(out, "coverage format should be one of: cobertura, jacoco")
		}
		if p, ok := m["path"].(string); !ok || entry.Blank(p) {
			out = append(out, "path can't be blank")
		}
		return out
	},
)

// Reports maps report kinds to the files that hold them.
type Reports struct {
	entry.Base
}

func NewReports(raw any, m entry.Meta) entry.Node {
	return &Reports{Base: entry.NewBase("reports", raw, m)}
}

func (n *Reports) Compose(*entry.Deps) {
	n.Begin(reportsTable.Chain(n.Settings().Features))
}

func (n *Reports) Value() any {
	if !n.Defined() || !n.Valid() {
		return nil
	}
	return n.Values(reportsTable)
}
