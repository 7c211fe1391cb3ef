package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlite/internal/logging"
	"github.com/yaklabco/mdlite/pkg/config"
	"github.com/yaklabco/mdlite/pkg/mdast"
	"github.com/yaklabco/mdlite/pkg/reporter"
)

// dumpFlags holds the flags shared by the tokens and tree commands.
type dumpFlags struct {
	format    string
	engine    string
	flavor    string
	maxTokens int
	width     int
	compact   bool
}

func (f *dumpFlags) register(cmd *cobra.Command, withEngine bool) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "output format: text, json, msgpack")
	cmd.Flags().IntVar(&f.maxTokens, "max-tokens", 0, "maximum tokens per document (0 = unbounded)")
	cmd.Flags().IntVar(&f.width, "width", 0, "truncate quoted text to this many cells (0 = 48, -1 = never)")
	cmd.Flags().BoolVar(&f.compact, "compact", false, "compact JSON output")
	if withEngine {
		cmd.Flags().StringVar(&f.engine, "engine", "", "parser engine: native, goldmark")
		cmd.Flags().StringVar(&f.flavor, "flavor", "", "goldmark flavor: commonmark, gfm")
	}
}

type encodeFunc func(cmd *cobra.Command, doc *mdast.Document, format config.DumpFormat, opts reporter.DumpOptions) error

func newTokensCommand() *cobra.Command {
	flags := &dumpFlags{}

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token sequence of a Markdown file",
		Long: `Tokenize a Markdown file and print every token with its kind, position
and source text. Use "-" to read from standard input.`,
		Example: `  mdlite tokens README.md
  mdlite tokens README.md --format json
  echo "# Hi" | mdlite tokens -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Tokens always come from the native tokenizer.
			flags.engine = string(config.EngineNative)
			return runDump(cmd, args[0], flags, func(cmd *cobra.Command, doc *mdast.Document, format config.DumpFormat, opts reporter.DumpOptions) error {
				return reporter.EncodeTokens(cmd.OutOrStdout(), doc, format, opts)
			})
		},
	}
	flags.register(cmd, false)

	return cmd
}

func newTreeCommand() *cobra.Command {
	flags := &dumpFlags{}

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the syntax tree of a Markdown file",
		Long: `Parse a Markdown file and print its syntax tree. Each node shows its
kind, header depth, text and source position. Use "-" to read from
standard input.`,
		Example: `  mdlite tree README.md
  mdlite tree README.md --engine goldmark
  mdlite tree README.md --format msgpack > tree.msgpack`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args[0], flags, func(cmd *cobra.Command, doc *mdast.Document, format config.DumpFormat, opts reporter.DumpOptions) error {
				return reporter.EncodeTree(cmd.OutOrStdout(), doc, format, opts)
			})
		},
	}
	flags.register(cmd, true)

	return cmd
}

func runDump(cmd *cobra.Command, path string, flags *dumpFlags, encode encodeFunc) error {
	ctx := commandContext(cmd)

	format, err := reporter.ParseDumpFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	loadResult, _, err := loadConfig(ctx, cmd, &config.Config{
		Engine:    config.Engine(flags.engine),
		Flavor:    config.Flavor(flags.flavor),
		MaxTokens: flags.maxTokens,
	})
	if err != nil {
		return err
	}

	doc, engine, err := parseInput(ctx, cmd, path, loadResult.Config)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug("parsed",
		logging.FieldPath, path,
		logging.FieldEngine, engine,
		logging.FieldTokens, len(doc.Tokens),
		logging.FieldNodes, mdast.CountNodes(doc.Root),
	)

	return encode(cmd, doc, format, reporter.DumpOptions{
		Engine:    engine,
		Color:     colorMode(cmd),
		TextWidth: flags.width,
		Compact:   flags.compact,
	})
}
