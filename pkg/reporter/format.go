package reporter

import (
	"fmt"

	"github.com/yaklabco/mdlite/pkg/config"
)

// Format represents an output format for run reports.
type Format = config.OutputFormat

// Output formats supported by the reporter.
const (
	FormatText    = config.FormatText
	FormatTable   = config.FormatTable
	FormatJSON    = config.FormatJSON
	FormatSummary = config.FormatSummary
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatText, nil
	}
	format := Format(formatStr)
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: text, table, json, summary", formatStr)
	}
	return format, nil
}

// ParseDumpFormat parses a dump format string for token and tree dumps.
func ParseDumpFormat(formatStr string) (config.DumpFormat, error) {
	if formatStr == "" {
		return config.DumpText, nil
	}
	format := config.DumpFormat(formatStr)
	if !format.IsValid() {
		return "", fmt.Errorf("unknown dump format %q; valid formats: text, json, msgpack", formatStr)
	}
	return format, nil
}
