// Package cli provides the Cobra command structure for mdlite.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlite/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdlite command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdlite",
		Short: "A small, predictable Markdown to HTML converter",
		Long: `mdlite converts a restricted Markdown dialect into HTML.

It understands headers, paragraphs, emphasis, blockquotes, ordered and
unordered lists, links and images. Documents are tokenized and parsed into
a syntax tree that can be inspected with the tokens and tree commands, or
rendered to HTML fragments and standalone pages with convert.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newTreeCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
