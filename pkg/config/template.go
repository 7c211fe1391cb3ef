package config

import (
	"bytes"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateFormat is the syntax of a generated config file.
type TemplateFormat string

const (
	TemplateYAML TemplateFormat = "yaml"
	TemplateTOML TemplateFormat = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" (default) or "toml".
	Format TemplateFormat

	// Full writes every setting with its default value. If false, the
	// settings are written as comments.
	Full bool
}

// FileName returns the project config file name for the format.
func (f TemplateFormat) FileName() string {
	if f == TemplateTOML {
		return ".mdlite.toml"
	}
	return ".mdlite.yml"
}

type fieldDoc struct {
	key         string
	description string
	yaml        string
	toml        string
}

//nolint:gochecknoglobals // Read-only lookup table.
var templateFields = []fieldDoc{
	{
		key:         "engine",
		description: "Parser engine: native (restricted dialect) or goldmark (CommonMark)",
		yaml:        "engine: native",
		toml:        `engine = "native"`,
	},
	{
		key:         "flavor",
		description: "Markdown flavor for the goldmark engine: commonmark or gfm",
		yaml:        "flavor: commonmark",
		toml:        `flavor = "commonmark"`,
	},
	{
		key:         "title",
		description: "Page title; empty derives it from the file name",
		yaml:        `title: ""`,
		toml:        `title = ""`,
	},
	{
		key:         "css",
		description: "Stylesheet linked from standalone pages",
		yaml:        "css: style.css",
		toml:        `css = "style.css"`,
	},
	{
		key:         "inline_css",
		description: "Stylesheet file embedded into standalone pages",
		yaml:        "inline_css: theme.css",
		toml:        `inline_css = "theme.css"`,
	},
	{
		key:         "output_dir",
		description: "Directory for converted files; empty writes next to each source",
		yaml:        "output_dir: public",
		toml:        `output_dir = "public"`,
	},
	{
		key:         "extension",
		description: "Extension of converted files",
		yaml:        "extension: .html",
		toml:        `extension = ".html"`,
	},
	{
		key:         "standalone",
		description: "Wrap output in a complete HTML page",
		yaml:        "standalone: true",
		toml:        "standalone = true",
	},
	{
		key:         "max_tokens",
		description: "Maximum tokens per document (0 = unbounded); larger documents fail instead of being truncated",
		yaml:        "max_tokens: 0",
		toml:        "max_tokens = 0",
	},
	{
		key:         "ignore",
		description: "File patterns to ignore (glob patterns)",
		yaml:        "ignore:\n  - \"vendor/**\"\n  - \"node_modules/**\"",
		toml:        `ignore = ["vendor/**", "node_modules/**"]`,
	},
	{
		key:         "backups",
		description: "Keep a sidecar copy of an output file before replacing it",
		yaml:        "backups:\n  enabled: true\n  mode: sidecar",
		toml:        "[backups]\nenabled = true\nmode = \"sidecar\"",
	},
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML, TemplateTOML:
	default:
		return nil, fmt.Errorf("unknown template format %q", opts.Format)
	}

	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate(opts), nil
}

// generateMinimalTemplate lists every setting, commented out.
func generateMinimalTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n")

	for _, field := range templateFields {
		example := field.yaml
		if opts.Format == TemplateTOML {
			example = field.toml
		}

		buf.WriteString("\n# ")
		buf.WriteString(wrapComment(field.description, commentWrapWidth))
		buf.WriteString("\n")
		for line := range strings.SplitSeq(example, "\n") {
			buf.WriteString("# " + line + "\n")
		}
	}

	return buf.Bytes()
}

// generateFullTemplate writes the default configuration.
func generateFullTemplate(opts TemplateOptions) ([]byte, error) {
	header := DefaultTemplateHeader() + "\n#\n# All settings are shown with their default values."

	if opts.Format == TemplateTOML {
		return NewConfig().ToTOMLWithHeader(header)
	}
	return NewConfig().ToYAMLWithHeader(header)
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdlite configuration
# See: https://github.com/yaklabco/mdlite`
}
