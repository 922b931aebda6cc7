package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/specialistvlad/ciconfig/internal/nodeid"
	"github.com/specialistvlad/ciconfig/internal/yaml_adapter"
)

// result is the machine readable form of a Report.
type result struct {
	Path     string   `json:"path" yaml:"path"`
	Valid    bool     `json:"valid" yaml:"valid"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Value    any      `json:"value,omitempty" yaml:"value,omitempty"`
}

func (a *App) render(reports []*Report) error {
	switch a.config.Output {
	case OutputJSON, OutputYAML:
		results, err := a.results(reports)
		if err != nil {
			return err
		}
		return a.encode(results)
	}
	return writeText(a.outW, reports)
}

func (a *App) results(reports []*Report) ([]result, error) {
	var sel *nodeid.Address
	if a.config.Select != "" {
		addr, err := nodeid.Parse(a.config.Select)
		if err != nil {
			return nil, fmt.Errorf("invalid select path: %w", err)
		}
		sel = &addr
	}

	out := make([]result, 0, len(reports))
	for _, r := range reports {
		res := result{Path: r.Path, Valid: r.Valid(), Errors: r.Errors, Warnings: r.Warnings}
		if r.Err != nil {
			res.Errors = append([]string{r.Err.Error()}, res.Errors...)
		}
		if r.Value != nil {
			res.Value = r.Value
			if sel != nil {
				v, ok := sel.Lookup(r.Value)
				if !ok {
					res.Errors = append(res.Errors, fmt.Sprintf("%s is not present in the composed document", sel))
				}
				res.Value = v
			}
		}
		out = append(out, res)
	}
	return out, nil
}

func (a *App) encode(results []result) error {
	if a.config.Output == OutputYAML {
		data, err := yaml_adapter.Marshal(results)
		if err != nil {
			return err
		}
		_, err = a.outW.Write(data)
		return err
	}
	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeText(w io.Writer, reports []*Report) error {
	for _, r := range reports {
		status := "valid"
		if !r.Valid() {
			status = "invalid"
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", r.Path, status); err != nil {
			return err
		}
		if r.Err != nil {
			if _, err := fmt.Fprintf(w, "  error: %v\n", r.Err); err != nil {
				return err
			}
		}
		for _, msg := range r.Errors {
			if _, err := fmt.Fprintf(w, "  error: %s\n", msg); err != nil {
				return err
			}
		}
		for _, msg := range r.Warnings {
			if _, err := fmt.Fprintf(w, "  warning: %s\n", msg); err != nil {
				return err
			}
		}
	}
	return nil
}
