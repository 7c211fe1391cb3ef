package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdlite/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "backups.mode").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Engine != "" && !cfg.Engine.IsValid() {
		result.fail("engine", cfg.Engine, "invalid engine %q; must be one of: native, goldmark", cfg.Engine)
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.fail("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}

	if cfg.Flavor == config.FlavorGFM && cfg.Engine != config.EngineGoldmark {
		result.warn("flavor", cfg.Flavor, "flavor only applies to the goldmark engine")
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, table, json, summary", cfg.Format)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.MaxTokens < 0 {
		result.fail("max_tokens", cfg.MaxTokens, "max_tokens must be >= 0 (0 means unbounded)")
	}

	if cfg.Extension != "" && strings.ContainsAny(cfg.Extension, `/\`) {
		result.fail("extension", cfg.Extension, "extension must not contain path separators")
	}

	switch cfg.Backups.Mode {
	case "", config.BackupModeSidecar, config.BackupModeNone:
	default:
		result.fail("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	validateIgnorePatterns(cfg, result)

	return result
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
