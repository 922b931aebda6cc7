package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ErrUnsupportedFormat is returned when no loader handles a file extension.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Loader is the interface for a format-specific document loader.
type Loader interface {
	// Load reads the file at path and converts it into a Document.
	Load(ctx context.Context, path string) (*Document, error)
	// Extensions lists the file extensions the loader handles, with the
	// leading dot.
	Extensions() []string
}

// Loaders dispatches documents to a Loader by file extension.
type Loaders []Loader

// For returns the loader handling path.
func (ls Loaders) For(path string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, l := range ls {
		if slices.Contains(l.Extensions(), ext) {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// Extensions returns every extension handled by the set.
func (ls Loaders) Extensions() []string {
	var out []string
	for _, l := range ls {
		out = append(out, l.Extensions()...)
	}
	return out
}

// Load reads path with the matching loader.
func (ls Loaders) Load(ctx context.Context, path string) (*Document, error) {
	l, err := ls.For(path)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, path)
}
