// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldBackup     = "backup"

	// Configuration fields.
	FieldEngine     = "engine"
	FieldFlavor     = "flavor"
	FieldStandalone = "standalone"
	FieldDryRun     = "dry_run"
	FieldJobs       = "jobs"
	FieldConfig     = "config"

	// Pipeline fields.
	FieldBytes    = "bytes"
	FieldTokens   = "tokens"
	FieldNodes    = "nodes"
	FieldDuration = "duration"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesUnchanged  = "files_unchanged"
	FieldFilesFailed     = "files_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
