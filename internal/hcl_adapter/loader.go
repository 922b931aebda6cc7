// Package hcl_adapter reads HCL pipeline documents into the raw tree defined
// by the config package.
//
// Top-level attributes map to top-level keys. A `job "name" { ... }` block
// defines the job called name; any other block becomes a hash under its type,
// nested by its labels. Repeating an unlabelled block turns the key into a
// list of hashes.
package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/ciconfig/internal/config"
	"github.com/specialistvlad/ciconfig/internal/ctxlog"
	"github.com/specialistvlad/ciconfig/internal/entry"
)

// jobBlock is the block type that declares a job.
const jobBlock = "job"

// Loader implements config.Loader for `.hcl` files.
type Loader struct {
	maxDepth int
}

// NewLoader returns a loader that rejects documents nested deeper than
// maxDepth. A non-positive maxDepth selects the engine default.
func NewLoader(maxDepth int) *Loader {
	if maxDepth <= 0 {
		maxDepth = entry.DefaultMaxDepth
	}
	return &Loader{maxDepth: maxDepth}
}

func (l *Loader) Extensions() []string { return []string{".hcl"} }

func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading HCL document.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	raw, err := l.Decode(data, path)
	if err != nil {
		return nil, err
	}
	return &config.Document{Path: path, Format: config.FormatHCL, Raw: raw}, nil
}

// Decode parses src and converts its body. filename is used in diagnostics.
func (l *Loader) Decode(src []byte, filename string) (map[string]any, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("failed to parse HCL file %s: unexpected body type %T", filename, file.Body)
	}
	out, err := l.convertBody(body, 1, true)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, err)
	}
	return out, nil
}

func (l *Loader) convertBody(body *hclsyntax.Body, depth int, top bool) (map[string]any, error) {
	if depth > l.maxDepth {
		return nil, entry.LimitError(fmt.Sprintf("document nests deeper than %d levels", l.maxDepth))
	}
	out := make(map[string]any, len(body.Attributes)+len(body.Blocks))
	names := make([]string, 0, len(body.Attributes))
	for name := range body.Attributes {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		attr := body.Attributes[name]
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		native, err := ctyToNative(val, depth+1, l.maxDepth)
		if err != nil {
			return nil, fmt.Errorf("in attribute '%s': %w", name, err)
		}
		out[name] = native
	}

	for _, block := range body.Blocks {
		content, err := l.convertBody(block.Body, depth+1, false)
		if err != nil {
			return nil, err
		}
		if top && block.Type == jobBlock {
			if len(block.Labels) != 1 {
				return nil, blockError(block, "a job block needs exactly one label, the job name")
			}
			if _, dup := out[block.Labels[0]]; dup {
				return nil, blockError(block, fmt.Sprintf("job %q is defined more than once", block.Labels[0]))
			}
			out[block.Labels[0]] = content
			continue
		}
		if err := place(out, block, content); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// place stores a converted block under its type and labels.
func place(out map[string]any, block *hclsyntax.Block, content map[string]any) error {
	if len(block.Labels) == 0 {
		switch existing := out[block.Type].(type) {
		case nil:
			if _, isAttr := out[block.Type]; isAttr {
				return blockError(block, fmt.Sprintf("%q is already defined as an attribute", block.Type))
			}
			out[block.Type] = content
		case map[string]any:
			out[block.Type] = []any{existing, content}
		case []any:
			out[block.Type] = append(existing, content)
		default:
			return blockError(block, fmt.Sprintf("%q is already defined as an attribute", block.Type))
		}
		return nil
	}

	cur := out
	path := append([]string{block.Type}, block.Labels[:len(block.Labels)-1]...)
	for _, key := range path {
		next, ok := cur[key].(map[string]any)
		if !ok {
			if _, taken := cur[key]; taken {
				return blockError(block, fmt.Sprintf("%q is already defined", key))
			}
			next = make(map[string]any)
			cur[key] = next
		}
		cur = next
	}
	last := block.Labels[len(block.Labels)-1]
	if _, dup := cur[last]; dup {
		return blockError(block, fmt.Sprintf("%s %q is defined more than once", block.Type, last))
	}
	cur[last] = content
	return nil
}

func blockError(block *hclsyntax.Block, detail string) error {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid block",
		Detail:   detail,
		Subject:  block.DefRange().Ptr(),
	}}
}
