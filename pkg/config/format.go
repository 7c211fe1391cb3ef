package config

import (
	"path/filepath"
	"strings"
)

// OutputFormat specifies the format of the run summary.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the summary format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// DumpFormat specifies the encoding of a token dump.
type DumpFormat string

const (
	DumpText    DumpFormat = "text"
	DumpJSON    DumpFormat = "json"
	DumpMsgpack DumpFormat = "msgpack"
)

// IsValid returns true if the dump format is known.
func (f DumpFormat) IsValid() bool {
	switch f {
	case DumpText, DumpJSON, DumpMsgpack:
		return true
	default:
		return false
	}
}

// OutputPath returns where the converted form of src is written.
// The source extension is replaced with the configured one. When OutputDir
// is set, the path of src relative to SourceRoot (or as given, if relative)
// is kept beneath it; a source outside that tree keeps only its base name.
func (c *Config) OutputPath(src string) string {
	ext := c.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	out := strings.TrimSuffix(src, filepath.Ext(src)) + ext
	if c.OutputDir == "" {
		return out
	}

	rel := out
	if c.SourceRoot != "" {
		if r, err := filepath.Rel(c.SourceRoot, out); err == nil {
			rel = r
		}
	}
	if !filepath.IsLocal(rel) {
		rel = filepath.Base(rel)
	}
	return filepath.Join(c.OutputDir, rel)
}
