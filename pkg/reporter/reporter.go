// Package reporter writes the results of a conversion run, and dumps the
// token sequence or tree of a single document.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdlite/pkg/runner"
)

// Reporter formats and writes conversion results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of files that failed and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func failures(result *runner.Result) int {
	if result == nil {
		return 0
	}
	return result.Stats.FilesErrored
}
