// Package yaml_adapter reads YAML pipeline documents into the raw tree
// defined by the config package.
package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/ciconfig/internal/config"
	"github.com/specialistvlad/ciconfig/internal/ctxlog"
	"github.com/specialistvlad/ciconfig/internal/entry"
	"gopkg.in/yaml.v3"
)

// Loader implements config.Loader for `.yml` and `.yaml` files.
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

func (l *Loader) Extensions() []string { return []string{".yml", ".yaml"} }

func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading YAML document.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	raw, err := l.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", path, err)
	}
	return &config.Document{Path: path, Format: config.FormatYAML, Raw: raw}, nil
}

// Decode converts the first document of a YAML stream. Anchors, aliases and
// merge keys are expanded; keys that are not strings are formatted as
// strings.
func (l *Loader) Decode(data []byte) (any, error) {
	var raw any
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return normalize(raw, 1, l.maxDepth)
}

func normalize(v any, depth, maxDepth int) (any, error) {
	if depth > maxDepth {
		return nil, entry.LimitError(fmt.Sprintf("document nests deeper than %d levels", maxDepth))
	}
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			n, err := normalize(item, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			n, err := normalize(item, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			n, err := normalize(item, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}
	return v, nil
}

// Marshal renders a composed value as YAML.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
