package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdlite/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 6 // FILE, OUTPUT, TOKENS, NODES, SIZE, STATUS
	minFileWidth     = 16
	minOutputWidth   = 16
	numberWidth      = 7
	sizeWidth        = 9
	statusWidth      = 10
	heavySeparator   = "="
	defaultTermWidth = 100
	ellipsis         = "..."
)

// TableRow represents a single row in the conversion table.
type TableRow struct {
	File   string
	Output string
	Tokens int
	Nodes  int
	Bytes  int
	Status string
	Failed bool
}

// TableFormatter formats conversion outcomes as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

type columnWidths struct {
	file   int
	output int
}

// FormatTable formats runner results as a styled table, one row per file in
// discovery order. Paths are shown relative to workDir.
func (t *TableFormatter) FormatTable(result *runner.Result, workDir string) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := CollectRows(result, workDir)
	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	return builder.String()
}

// CollectRows converts runner outcomes into table rows.
func CollectRows(result *runner.Result, workDir string) []TableRow {
	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		row := TableRow{File: RelPath(workDir, file.Path)}
		switch {
		case file.Error != nil:
			row.Output = "-"
			row.Status = "failed"
			row.Failed = true
		case file.Result != nil:
			row.Output = RelPath(workDir, file.Result.OutputPath)
			row.Tokens = file.Result.Tokens
			row.Nodes = file.Result.Nodes
			row.Bytes = len(file.Result.Output)
			row.Status = file.Result.Summary()
		}
		rows = append(rows, row)
	}
	return rows
}

// calculateColumnWidths sizes the path columns to their content, then
// shrinks them until the table fits the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{file: minFileWidth, output: minOutputWidth}

	for _, row := range rows {
		widths.file = max(widths.file, runewidth.StringWidth(row.File))
		widths.output = max(widths.output, runewidth.StringWidth(row.Output))
	}

	if excess := t.calculateTotalWidth(widths) - t.termWidth; excess > 0 {
		widths.output = max(minOutputWidth, widths.output-excess)
	}
	if excess := t.calculateTotalWidth(widths) - t.termWidth; excess > 0 {
		widths.file = max(minFileWidth, widths.file-excess)
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.output + 2*numberWidth + sizeWidth + statusWidth +
		tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := " " + strings.Join([]string{
		runewidth.FillRight("FILE", widths.file),
		runewidth.FillRight("OUTPUT", widths.output),
		runewidth.FillLeft("TOKENS", numberWidth),
		runewidth.FillLeft("NODES", numberWidth),
		runewidth.FillLeft("SIZE", sizeWidth),
		runewidth.FillRight("STATUS", statusWidth),
	}, "  ")
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.calculateTotalWidth(widths)))
}

// formatRow pads every cell before styling; ANSI sequences would otherwise
// count toward the width.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	tokens, nodes, size := "", "", ""
	if !row.Failed {
		tokens = strconv.Itoa(row.Tokens)
		nodes = strconv.Itoa(row.Nodes)
		size = FormatBytes(row.Bytes)
	}

	content := " " + strings.Join([]string{
		runewidth.FillRight(truncateFilePath(row.File, widths.file), widths.file),
		runewidth.FillRight(truncateFilePath(row.Output, widths.output), widths.output),
		runewidth.FillLeft(tokens, numberWidth),
		runewidth.FillLeft(nodes, numberWidth),
		runewidth.FillLeft(size, sizeWidth),
		row.Status,
	}, "  ")

	if row.Failed {
		return t.styles.TableFailRow.Render(content)
	}
	return content
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d files converted", stats.FilesConverted)}

	if stats.FilesWritten > 0 {
		parts = append(parts, t.styles.Converted.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesUnchanged > 0 {
		parts = append(parts, t.styles.Unchanged.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateFilePath shortens a path to maxWidth cells, keeping the end (the
// file name) rather than the beginning.
func truncateFilePath(path string, maxWidth int) string {
	if runewidth.StringWidth(path) <= maxWidth {
		return path
	}
	if maxWidth <= len(ellipsis) {
		return runewidth.Truncate(path, maxWidth, "")
	}

	runes := []rune(path)
	budget := maxWidth - len(ellipsis)
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if w > budget {
			break
		}
		budget -= w
		start--
	}
	return ellipsis + string(runes[start:])
}
