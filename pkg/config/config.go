// Package config defines core configuration types for mdlite.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

// Engine selects the parser implementation.
type Engine string

const (
	// EngineNative is the restricted-dialect tokenizer and parser.
	EngineNative Engine = "native"

	// EngineGoldmark parses with goldmark and maps its AST onto mdast.
	EngineGoldmark Engine = "goldmark"
)

// IsValid returns true if the engine is known.
func (e Engine) IsValid() bool {
	switch e {
	case EngineNative, EngineGoldmark:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor used by the goldmark engine.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// BackupMode controls how an existing output file is preserved.
type BackupMode string

const (
	BackupModeSidecar BackupMode = "sidecar"
	BackupModeNone    BackupMode = "none"
)

// BackupsConfig controls backup behavior when an output file is replaced.
type BackupsConfig struct {
	Enabled *bool      `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Mode    BackupMode `yaml:"mode,omitempty" toml:"mode,omitempty"`
}

// IsEnabled reports whether backups should be written.
func (b BackupsConfig) IsEnabled() bool {
	if b.Mode == BackupModeNone {
		return false
	}
	return b.Enabled != nil && *b.Enabled
}

// Config is the root configuration structure for mdlite.
type Config struct {
	// Engine selects the parser ("native" or "goldmark").
	Engine Engine `yaml:"engine,omitempty" toml:"engine,omitempty"`

	// Flavor is passed to the goldmark engine.
	Flavor Flavor `yaml:"flavor,omitempty" toml:"flavor,omitempty"`

	// Title overrides the page title. Empty derives it from the file name.
	Title string `yaml:"title,omitempty" toml:"title,omitempty"`

	// CSS is a stylesheet href linked from standalone pages.
	CSS string `yaml:"css,omitempty" toml:"css,omitempty"`

	// InlineCSS is a stylesheet file whose content is embedded in
	// standalone pages.
	InlineCSS string `yaml:"inline_css,omitempty" toml:"inline_css,omitempty"`

	// OutputDir is where converted files are written. Empty writes next to
	// the source.
	OutputDir string `yaml:"output_dir,omitempty" toml:"output_dir,omitempty"`

	// Extension is the output file extension, including the dot.
	Extension string `yaml:"extension,omitempty" toml:"extension,omitempty"`

	// Standalone wraps output in a full HTML page.
	Standalone *bool `yaml:"standalone,omitempty" toml:"standalone,omitempty"`

	// MaxTokens caps the token sequence per document. 0 is unbounded.
	MaxTokens int `yaml:"max_tokens,omitempty" toml:"max_tokens,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Backups configures backup behavior when replacing output.
	Backups BackupsConfig `yaml:"backups,omitempty" toml:"backups,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the summary output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// DryRun converts without writing any files.
	DryRun bool `yaml:"-" toml:"-"`

	// Output is an explicit output path for single-file conversion.
	Output string `yaml:"-" toml:"-"`

	// SourceRoot is the directory whose layout is mirrored under OutputDir.
	SourceRoot string `yaml:"-" toml:"-"`
}

// DefaultExtension is the output extension used when none is configured.
const DefaultExtension = ".html"

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Engine:     EngineNative,
		Flavor:     FlavorCommonMark,
		Extension:  DefaultExtension,
		Standalone: Bool(true),
		Ignore:     nil,
		Backups: BackupsConfig{
			Enabled: Bool(true),
			Mode:    BackupModeSidecar,
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// IsStandalone reports whether output is a full HTML page.
func (c *Config) IsStandalone() bool {
	return c.Standalone == nil || *c.Standalone
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}
