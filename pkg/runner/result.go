package runner

import (
	"time"

	"github.com/yaklabco/mdlite/pkg/convert"
)

// FileOutcome pairs a discovered file with its conversion result.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil if the file could not be converted.
	Result *convert.Result

	// Error is set if the file could not be converted.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesConverted is the number of files converted without error.
	FilesConverted int

	// FilesWritten is the number of output files created or replaced.
	FilesWritten int

	// FilesUnchanged is the number of outputs that already matched.
	FilesUnchanged int

	// FilesErrored is the number of files that could not be converted.
	FilesErrored int

	// BackupsCreated is the number of previous outputs backed up.
	BackupsCreated int

	// Tokens is the total token count across converted files.
	Tokens int

	// Nodes is the total node count across converted files.
	Nodes int

	// BytesRendered is the total size of the rendered HTML.
	BytesRendered int

	// Duration is the wall time of the whole run.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each discovered file, in discovery
	// order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to convert.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Errors returns the per-file errors in discovery order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}

	var errs []error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errs = append(errs, outcome.Error)
		}
	}
	return errs
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesConverted++
	r.Stats.Tokens += outcome.Result.Tokens
	r.Stats.Nodes += outcome.Result.Nodes
	r.Stats.BytesRendered += len(outcome.Result.Output)

	if outcome.Result.Written {
		r.Stats.FilesWritten++
	}
	if outcome.Result.Unchanged {
		r.Stats.FilesUnchanged++
	}
	if outcome.Result.BackupPath != "" {
		r.Stats.BackupsCreated++
	}
}
