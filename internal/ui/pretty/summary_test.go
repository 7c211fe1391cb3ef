package pretty_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdlite/internal/ui/pretty"
	"github.com/yaklabco/mdlite/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered: 10,
		FilesConverted:  10,
		FilesWritten:    7,
		FilesUnchanged:  3,
		Tokens:          420,
		Nodes:           96,
		BytesRendered:   2048,
		Duration:        1500 * time.Microsecond,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files discovered:  10")
	assert.Contains(t, result, "Files written:     7")
	assert.Contains(t, result, "Files unchanged:   3")
	assert.Contains(t, result, "Tokens:            420")
	assert.Contains(t, result, "HTML:              2.0 KiB")
	assert.Contains(t, result, "Duration:          2ms")
	assert.Contains(t, result, "Conversion complete")
	assert.NotContains(t, result, "Files failed:")
}

func TestFormatSummary_WithFailures(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered: 3,
		FilesConverted:  2,
		FilesErrored:    1,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Files failed:      1")
	assert.Contains(t, result, "Conversion failed for 1 file")
}

func TestFormatSummary_Empty(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{})

	assert.Contains(t, result, "Nothing to convert")
	assert.NotContains(t, result, "Duration:")
}

func TestFormatSummaryOneLine(t *testing.T) {
	tests := []struct {
		name     string
		stats    runner.Stats
		contains []string
		excludes []string
	}{
		{
			name:     "no files",
			stats:    runner.Stats{},
			contains: []string{"No Markdown files found"},
		},
		{
			name:     "single file",
			stats:    runner.Stats{FilesDiscovered: 1, FilesConverted: 1, FilesWritten: 1},
			contains: []string{"1 file converted (1 written)"},
			excludes: []string{"failed", "backup"},
		},
		{
			name: "mixed",
			stats: runner.Stats{
				FilesDiscovered: 4,
				FilesConverted:  3,
				FilesWritten:    2,
				FilesUnchanged:  1,
				FilesErrored:    1,
				BackupsCreated:  2,
			},
			contains: []string{"3 files converted (2 written, 1 unchanged)", "1 failed", "2 backups"},
		},
		{
			name:     "dry run",
			stats:    runner.Stats{FilesDiscovered: 2, FilesConverted: 2},
			contains: []string{"2 files converted\n"},
			excludes: []string{"written"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pretty.NewStyles(false).FormatSummaryOneLine(tt.stats)
			for _, want := range tt.contains {
				assert.Contains(t, result, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, result, unwanted)
			}
		})
	}
}
