package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/mdlite/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files converted (2 written, 1 unchanged), 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	var parts []string

	converted := fmt.Sprintf("%d %s converted", stats.FilesConverted, plural(stats.FilesConverted, wordFile, wordFiles))
	if stats.FilesErrored == 0 {
		converted = s.Success.Render(converted)
	}

	var detail []string
	if stats.FilesWritten > 0 {
		detail = append(detail, fmt.Sprintf("%d written", stats.FilesWritten))
	}
	if stats.FilesUnchanged > 0 {
		detail = append(detail, fmt.Sprintf("%d unchanged", stats.FilesUnchanged))
	}
	if len(detail) > 0 {
		converted += " (" + strings.Join(detail, ", ") + ")"
	}
	parts = append(parts, converted)

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if stats.BackupsCreated > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d %s", stats.BackupsCreated, plural(stats.BackupsCreated, "backup", "backups"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files discovered", s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)))
	row("Files converted", s.SummaryValue.Render(strconv.Itoa(stats.FilesConverted)))
	if stats.FilesWritten > 0 {
		row("Files written", s.Success.Render(strconv.Itoa(stats.FilesWritten)))
	}
	if stats.FilesUnchanged > 0 {
		row("Files unchanged", s.Dim.Render(strconv.Itoa(stats.FilesUnchanged)))
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	if stats.BackupsCreated > 0 {
		row("Backups created", s.SummaryValue.Render(strconv.Itoa(stats.BackupsCreated)))
	}

	builder.WriteString("\n")

	row("Tokens", s.SummaryValue.Render(strconv.Itoa(stats.Tokens)))
	row("Nodes", s.SummaryValue.Render(strconv.Itoa(stats.Nodes)))
	row("HTML", s.SummaryValue.Render(FormatBytes(stats.BytesRendered)))
	if stats.Duration > 0 {
		row("Duration", s.Dim.Render(stats.Duration.Round(time.Millisecond).String()))
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render(fmt.Sprintf("Conversion failed for %d %s",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	case stats.FilesDiscovered == 0:
		builder.WriteString(s.Dim.Render("Nothing to convert"))
	default:
		builder.WriteString(s.Success.Render("Conversion complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
