package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdlite/internal/ui/pretty"
	"github.com/yaklabco/mdlite/pkg/runner"
)

// TextReporter writes one styled line per file followed by a one-line
// summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No Markdown files found."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		if r.opts.Quiet && file.Error == nil && file.Result != nil && file.Result.Unchanged {
			continue
		}
		fmt.Fprint(r.bw, r.styles.FormatOutcome(file, r.opts.WorkingDir, r.opts.ShowMetrics))
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failures(result), nil
}
