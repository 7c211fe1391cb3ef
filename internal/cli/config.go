package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlite/internal/configloader"
	"github.com/yaklabco/mdlite/internal/ui/pretty"
	"github.com/yaklabco/mdlite/pkg/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
		Long: `Inspect configuration as mdlite resolves it from system, user and project
files, MDLITE_* environment variables and the --config flag.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigPathsCommand())
	cmd.AddCommand(newConfigEnvCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)

			loadResult, _, err := loadConfig(ctx, cmd, nil)
			if err != nil {
				return err
			}

			var out []byte
			switch config.TemplateFormat(format) {
			case config.TemplateYAML:
				out, err = loadResult.Config.ToYAML()
			case config.TemplateTOML:
				out, err = loadResult.Config.ToTOML()
			default:
				return fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrInvalidUsage, format)
			}
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml, toml")

	return cmd
}

func newConfigPathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List the configuration files that were loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)

			loadResult, _, err := loadConfig(ctx, cmd, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(loadResult.LoadedFrom) == 0 {
				_, err = fmt.Fprintln(out, "No configuration files loaded; using defaults")
				return err
			}
			for _, path := range loadResult.LoadedFrom {
				if _, err := fmt.Fprintln(out, path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newConfigEnvCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "env",
		Short: "List supported environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars := configloader.ListEnvVars()
			switch format {
			case "text":
				styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))
				return writeEnvText(cmd.OutOrStdout(), vars, styles)
			case "json":
				return writeEnvJSON(cmd.OutOrStdout(), vars)
			default:
				return fmt.Errorf("%w: invalid format %q: must be text or json", ErrInvalidUsage, format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")

	return cmd
}

func writeEnvText(w io.Writer, vars []configloader.EnvVar, styles *pretty.Styles) error {
	width := 0
	for _, v := range vars {
		width = max(width, runewidth.StringWidth(v.Name))
	}

	var sb strings.Builder
	for _, v := range vars {
		sb.WriteString(styles.Bold.Render(runewidth.FillRight(v.Name, width)))
		sb.WriteString("  ")
		sb.WriteString(styles.Dim.Render(v.Description))
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

type envVarJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func writeEnvJSON(w io.Writer, vars []configloader.EnvVar) error {
	out := make([]envVarJSON, len(vars))
	for i, v := range vars {
		out[i] = envVarJSON{Name: v.Name, Description: v.Description}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
