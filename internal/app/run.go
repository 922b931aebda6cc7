package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/ciconfig/internal/ci"
	"github.com/specialistvlad/ciconfig/internal/ctxlog"
	"github.com/specialistvlad/ciconfig/internal/extends"
	"github.com/specialistvlad/ciconfig/internal/fsutil"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidDocuments is returned by Run when at least one document failed
// to load or compose.
var ErrInvalidDocuments = errors.New("invalid pipeline documents")

// Report is the outcome of linting one document.
type Report struct {
	Path     string
	Value    map[string]any
	Errors   []string
	Warnings []string
	// Err is set when the document could not be read or parsed.
	Err error
}

// Valid reports whether the document loaded and composed without errors.
func (r *Report) Valid() bool {
	return r.Err == nil && len(r.Errors) == 0
}

// Run lints every document under the configured path and renders the
// reports in path order.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.", "path", a.config.Path)

	files, err := fsutil.FindFilesByExtension(a.config.Path, a.loaders.Extensions()...)
	if err != nil {
		return fmt.Errorf("failed to find pipeline documents in %s: %w", a.config.Path, err)
	}
	if len(files) == 0 {
		a.logger.Warn("No pipeline documents found.", "path", a.config.Path)
		return nil
	}

	reports, err := a.LintAll(ctx, files)
	if err != nil {
		return err
	}
	if err := a.render(reports); err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}

	invalid := 0
	for _, r := range reports {
		if !r.Valid() {
			invalid++
		}
	}
	a.logger.Info("Lint finished.", "documents", len(reports), "invalid", invalid)
	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d", ErrInvalidDocuments, invalid, len(reports))
	}
	return nil
}

// LintAll lints files concurrently, bounded by the worker count. Reports are
// returned in the order of files.
func (a *App) LintAll(ctx context.Context, files []string) ([]*Report, error) {
	ctx = a.context(ctx)
	reports := make([]*Report, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.WorkerCount)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = a.Lint(ctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Lint loads, expands and composes a single document.
func (a *App) Lint(ctx context.Context, path string) *Report {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx).With("path", path)
	report := &Report{Path: path}

	doc, err := a.loaders.Load(ctx, path)
	if err != nil {
		logger.Error("Failed to load document.", "error", err)
		report.Err = err
		return report
	}

	raw := doc.Raw
	if hash, ok := doc.Hash(); ok {
		expanded, msgs := extends.Resolve(hash, ci.ReservedKeys())
		raw = expanded
		report.Errors = append(report.Errors, msgs...)
	}

	root, err := ci.Process(raw, a.config.Settings())
	report.Errors = append(report.Errors, root.Errors()...)
	report.Warnings = root.Warnings()
	for _, w := range report.Warnings {
		logger.Warn(w)
	}
	if err == nil && len(report.Errors) == 0 {
		report.Value, _ = root.Result()
	}

	logger.Debug("Document composed.", "errors", len(report.Errors), "warnings", len(report.Warnings))
	return report
}
