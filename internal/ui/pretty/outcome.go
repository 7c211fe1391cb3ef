package pretty

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdlite/pkg/convert"
	"github.com/yaklabco/mdlite/pkg/runner"
)

// RelPath returns path relative to workDir when it lies beneath it, and
// path unchanged otherwise.
func RelPath(workDir, path string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// FormatStatus returns the styled status word for a conversion result.
func (s *Styles) FormatStatus(res *convert.Result) string {
	if res == nil {
		return s.Error.Render("failed")
	}

	summary := res.Summary()
	switch {
	case res.Unchanged:
		return s.Unchanged.Render(summary)
	case res.Written:
		return s.Converted.Render(summary)
	default:
		return s.DryRun.Render(summary)
	}
}

// FormatOutcome formats a single file outcome as one line:
//
//	docs/intro.md → docs/intro.html  converted  (41 tokens, 17 nodes, 812 B)
func (s *Styles) FormatOutcome(outcome runner.FileOutcome, workDir string, showMetrics bool) string {
	path := s.FilePath.Render(RelPath(workDir, outcome.Path))

	if outcome.Error != nil {
		return fmt.Sprintf("  %s  %s\n", path, s.Error.Render(fmt.Sprintf("error: %v", outcome.Error)))
	}
	res := outcome.Result
	if res == nil {
		return fmt.Sprintf("  %s\n", path)
	}

	var builder strings.Builder
	builder.WriteString("  " + path)
	if res.OutputPath != "" {
		builder.WriteString(" " + s.Arrow.Render("→") + " " + s.OutputPath.Render(RelPath(workDir, res.OutputPath)))
	}
	builder.WriteString("  " + s.FormatStatus(res))

	if showMetrics {
		builder.WriteString("  " + s.Metric.Render(fmt.Sprintf("(%d tokens, %d nodes, %s)",
			res.Tokens, res.Nodes, FormatBytes(len(res.Output)))))
	}
	if res.BackupPath != "" {
		builder.WriteString("\n    " + s.Dim.Render("backup: "+RelPath(workDir, res.BackupPath)))
	}

	builder.WriteString("\n")
	return builder.String()
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
