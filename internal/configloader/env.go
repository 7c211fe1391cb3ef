package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/mdlite/pkg/config"
)

// envVarPrefix is the prefix for all mdlite environment variables.
const envVarPrefix = "MDLITE_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"ENGINE":          {field: "engine", typ: envTypeString, description: "Parser engine: native or goldmark"},
	"FLAVOR":          {field: "flavor", typ: envTypeString, description: "Goldmark flavor: commonmark or gfm"},
	"TITLE":           {field: "title", typ: envTypeString, description: "Page title"},
	"CSS":             {field: "css", typ: envTypeString, description: "Stylesheet href for standalone pages"},
	"INLINE_CSS":      {field: "inline_css", typ: envTypeString, description: "Stylesheet file to embed"},
	"OUTPUT_DIR":      {field: "output_dir", typ: envTypeString, description: "Directory for converted files"},
	"EXTENSION":       {field: "extension", typ: envTypeString, description: "Extension of converted files"},
	"STANDALONE":      {field: "standalone", typ: envTypeBool, description: "Write complete HTML pages: true or false"},
	"MAX_TOKENS":      {field: "max_tokens", typ: envTypeInt, description: "Maximum tokens per document (0 = unbounded)"},
	"JOBS":            {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"FORMAT":          {field: "format", typ: envTypeString, description: "Summary format: text, table, json or summary"},
	"IGNORE":          {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"BACKUPS_ENABLED": {field: "backups.enabled", typ: envTypeBool, description: "Back up replaced output: true or false"},
	"BACKUPS_MODE":    {field: "backups.mode", typ: envTypeString, description: "Backup mode: sidecar or none"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDLITE_ (e.g., MDLITE_ENGINE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "engine":
		cfg.Engine = config.Engine(value)
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "title":
		cfg.Title = value
	case "css":
		cfg.CSS = value
	case "inline_css":
		cfg.InlineCSS = value
	case "output_dir":
		cfg.OutputDir = value
	case "extension":
		cfg.Extension = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = config.BackupMode(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "standalone":
		cfg.Standalone = config.Bool(value)
	case "backups.enabled":
		cfg.Backups.Enabled = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "max_tokens":
		cfg.MaxTokens = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool {
		return vars[i].Name < vars[j].Name
	})
	return vars
}
