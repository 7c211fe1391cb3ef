package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdlite/internal/ui/pretty"
	"github.com/yaklabco/mdlite/pkg/runner"
)

// JSONSchemaVersion is the version of the JSON report layout.
const JSONSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path       string `json:"path"`
	OutputPath string `json:"outputPath,omitempty"`
	Engine     string `json:"engine,omitempty"`
	Status     string `json:"status"`
	Tokens     int    `json:"tokens"`
	Nodes      int    `json:"nodes"`
	Bytes      int    `json:"bytes"`
	Written    bool   `json:"written"`
	Unchanged  bool   `json:"unchanged,omitempty"`
	BackupPath string `json:"backupPath,omitempty"`
	DurationMS int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int   `json:"filesDiscovered"`
	FilesConverted  int   `json:"filesConverted"`
	FilesWritten    int   `json:"filesWritten"`
	FilesUnchanged  int   `json:"filesUnchanged"`
	FilesErrored    int   `json:"filesErrored"`
	BackupsCreated  int   `json:"backupsCreated"`
	Tokens          int   `json:"tokens"`
	Nodes           int   `json:"nodes"`
	BytesRendered   int   `json:"bytesRendered"`
	DurationMS      int64 `json:"durationMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesErrored, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: JSONSchemaVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{Path: pretty.RelPath(r.opts.WorkingDir, file.Path)}

		switch {
		case file.Error != nil:
			fileResult.Status = "failed"
			fileResult.Error = file.Error.Error()
		case file.Result != nil:
			res := file.Result
			fileResult.OutputPath = pretty.RelPath(r.opts.WorkingDir, res.OutputPath)
			fileResult.Engine = res.Engine
			fileResult.Status = res.Summary()
			fileResult.Tokens = res.Tokens
			fileResult.Nodes = res.Nodes
			fileResult.Bytes = len(res.Output)
			fileResult.Written = res.Written
			fileResult.Unchanged = res.Unchanged
			if res.BackupPath != "" {
				fileResult.BackupPath = pretty.RelPath(r.opts.WorkingDir, res.BackupPath)
			}
			fileResult.DurationMS = res.Duration.Milliseconds()
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesConverted:  stats.FilesConverted,
		FilesWritten:    stats.FilesWritten,
		FilesUnchanged:  stats.FilesUnchanged,
		FilesErrored:    stats.FilesErrored,
		BackupsCreated:  stats.BackupsCreated,
		Tokens:          stats.Tokens,
		Nodes:           stats.Nodes,
		BytesRendered:   stats.BytesRendered,
		DurationMS:      stats.Duration.Milliseconds(),
	}

	return output
}
