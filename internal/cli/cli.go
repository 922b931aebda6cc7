package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/ciconfig/internal/app"
	"github.com/specialistvlad/ciconfig/internal/entry"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated AppConfig,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("ciconfig", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
ciconfig - Validates and composes CI pipeline configuration documents.

Usage:
  ciconfig [options] [PATH]

Arguments:
  PATH
    Path to a single .yml, .yaml or .hcl document or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	fileFlag := flagSet.String("file", "", "Path to the pipeline document or directory.")
	fFlag := flagSet.String("f", "", "Path to the pipeline document or directory (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	outputFlag := flagSet.String("output", app.OutputText, "Result format. Options: 'text', 'json' or 'yaml'.")
	workersFlag := flagSet.Int("workers", 4, "Number of documents linted concurrently.")
	selectFlag := flagSet.String("select", "", "Render only this path of each composed document, e.g. 'jobs:rspec'.")
	portsFlag := flagSet.Bool("enable-image-ports", false, "Accept 'ports' on images and services.")
	pullPolicyFlag := flagSet.Bool("enable-pull-policy", false, "Accept 'pull_policy' on images and services.")
	maxDepthFlag := flagSet.Int("max-depth", entry.DefaultMaxDepth, "Maximum nesting depth of a document.")
	maxElementsFlag := flagSet.Int("max-elements", entry.DefaultMaxElements, "Maximum number of values in a document.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *fileFlag != "" {
		path = *fileFlag
	} else if *fFlag != "" {
		path = *fFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Document path determined.", "path", path)

	if path == "" {
		slog.Debug("No document path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		Path:        path,
		LogFormat:   strings.ToLower(*logFormatFlag),
		LogLevel:    strings.ToLower(*logLevelFlag),
		Output:      strings.ToLower(*outputFlag),
		WorkerCount: *workersFlag,
		Select:      *selectFlag,
		Features: entry.Features{
			ImagePorts: *portsFlag,
			PullPolicy: *pullPolicyFlag,
		},
		MaxDepth:    *maxDepthFlag,
		MaxElements: *maxElementsFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
