package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdlite/internal/configloader"
	"github.com/yaklabco/mdlite/internal/ui/pretty"
)

// helpStyles colors the parts of a help page.
type helpStyles struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{command: plain, heading: plain, name: plain, flag: plain, dim: plain}
	}

	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return helpStyles{
		command: fg("14").Bold(true),
		heading: fg("11").Bold(true),
		name:    fg("10"),
		flag:    fg("12"),
		dim:     fg("8"),
	}
}

const helpText = `{{command .CommandPath}}{{with .Version}} {{dim .}}{{end}}
{{with or .Long .Short}}
{{trimRight .}}
{{end}}
{{template "usage" .}}`

const usageText = `{{heading "Usage:"}}{{if .Runnable}}
  {{command .UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}{{if .Aliases}}

{{heading "Aliases:"}}
  {{dim (join .Aliases ", ")}}{{end}}{{if .HasExample}}

{{heading "Examples:"}}
{{dim .Example}}{{end}}{{if .HasAvailableSubCommands}}

{{heading "Commands:"}}
{{commands .Commands}}{{end}}{{if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags}}{{end}}{{if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags}}{{end}}{{if not .HasParent}}

{{heading "Environment:"}}
{{env}}{{end}}{{if .HasAvailableSubCommands}}

Run "{{command (print .CommandPath " [command] --help")}}" for details on a command.{{end}}
`

// HelpFormatter renders colored help and usage pages for cobra commands.
type HelpFormatter struct {
	styles helpStyles
	tmpl   *template.Template
}

// NewHelpFormatter builds a formatter whose colors follow colorMode for writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	h := &HelpFormatter{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}

	funcs := template.FuncMap{
		"command":   h.styles.command.Render,
		"heading":   h.styles.heading.Render,
		"dim":       h.styles.dim.Render,
		"join":      strings.Join,
		"trimRight": trimRightLines,
		"commands":  h.commandList,
		"flags":     h.flagList,
		"env":       h.envList,
	}
	h.tmpl = template.Must(template.New("help").Funcs(funcs).Parse(helpText))
	template.Must(h.tmpl.New("usage").Parse(usageText))

	return h
}

// ApplyToCommand installs the help and usage pages on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.render(c.OutOrStdout(), "usage", c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.render(c.OutOrStdout(), "help", c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) render(w io.Writer, page string, cmd *cobra.Command) error {
	if err := h.tmpl.ExecuteTemplate(w, page, cmd); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	return nil
}

// columns aligns left cells and joins each row with its description.
// Padding is measured on the plain text so styles do not skew it.
func columns(left, styledLeft, right []string) string {
	width := 0
	for _, cell := range left {
		width = max(width, runewidth.StringWidth(cell))
	}

	rows := make([]string, len(left))
	for i := range left {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(left[i]))
		rows[i] = strings.TrimRight("  "+styledLeft[i]+pad+"   "+right[i], " ")
	}
	return strings.Join(rows, "\n")
}

func (h *HelpFormatter) commandList(cmds []*cobra.Command) string {
	var names, styled, shorts []string
	for _, c := range cmds {
		if !c.IsAvailableCommand() && c.Name() != "help" {
			continue
		}
		names = append(names, c.Name())
		styled = append(styled, h.styles.name.Render(c.Name()))
		shorts = append(shorts, c.Short)
	}
	return columns(names, styled, shorts)
}

// flagList lays out visible flags as "-s, --name type   usage (default x)".
func (h *HelpFormatter) flagList(fs *pflag.FlagSet) string {
	var plain, styled, usages []string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		names := "    --" + f.Name
		if f.Shorthand != "" && f.ShorthandDeprecated == "" {
			names = "-" + f.Shorthand + ", --" + f.Name
		}
		argType, usage := pflag.UnquoteUsage(f)

		left, leftStyled := names, h.styles.flag.Render(names)
		if argType != "" {
			left += " " + argType
			leftStyled += " " + h.styles.dim.Render(argType)
		}
		if def := defaultText(f); def != "" {
			usage += " " + h.styles.dim.Render("(default "+def+")")
		}

		plain = append(plain, left)
		styled = append(styled, leftStyled)
		usages = append(usages, usage)
	})
	return columns(plain, styled, usages)
}

// defaultText returns the default worth showing for f, or "".
func defaultText(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "0", "[]":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

// envList lists the MDLITE_* variables for the root page.
func (h *HelpFormatter) envList() string {
	vars := configloader.ListEnvVars()
	names := make([]string, len(vars))
	styled := make([]string, len(vars))
	descs := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
		styled[i] = h.styles.flag.Render(v.Name)
		descs[i] = v.Description
	}
	return columns(names, styled, descs)
}

func trimRightLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
