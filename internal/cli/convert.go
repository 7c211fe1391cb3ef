package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlite/internal/logging"
	"github.com/yaklabco/mdlite/pkg/config"
	"github.com/yaklabco/mdlite/pkg/convert"
	"github.com/yaklabco/mdlite/pkg/fsutil"
	"github.com/yaklabco/mdlite/pkg/reporter"
	"github.com/yaklabco/mdlite/pkg/runner"
)

// convertFlags holds the flags for the convert command.
type convertFlags struct {
	output     string
	outputDir  string
	extension  string
	title      string
	css        string
	embedCSS   string
	engine     string
	flavor     string
	standalone bool
	maxTokens  int
	format     string
	jobs       int
	dryRun     bool
	ignore     []string
	extensions []string
	noBackups  bool
	quiet      bool
	metrics    bool
	compact    bool
	follow     bool
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Convert Markdown files to HTML",
		Long: `Convert Markdown files and directories to HTML.

Directories are walked recursively for Markdown files. Hidden and vendored
directories are skipped. Each file is written next to its source with the
configured extension unless --output-dir or --output is given. Use "-" to
read from standard input and write to standard output.`,
		Example: `  mdlite convert README.md
  mdlite convert docs --output-dir site --css style.css
  mdlite convert notes.md -o notes.html --standalone=false
  cat notes.md | mdlite convert - > notes.html
  mdlite convert . --format table --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file for a single input (\"-\" for stdout)")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "directory to write converted files into")
	cmd.Flags().StringVar(&flags.extension, "ext", "", "output file extension (default: .html)")
	cmd.Flags().StringVar(&flags.title, "title", "", "page title for standalone output")
	cmd.Flags().StringVar(&flags.css, "css", "", "stylesheet href linked from standalone pages")
	cmd.Flags().StringVar(&flags.embedCSS, "embed-css", "", "stylesheet file embedded in standalone pages")
	cmd.Flags().StringVar(&flags.engine, "engine", "", "parser engine: native, goldmark")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "goldmark flavor: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.standalone, "standalone", true, "wrap output in a complete HTML page")
	cmd.Flags().IntVar(&flags.maxTokens, "max-tokens", 0, "maximum tokens per document (0 = unbounded)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "summary format: text, table, json, summary")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "convert without writing files")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().StringSliceVar(&flags.extensions, "include-ext", nil, "only convert files with these extensions when walking directories")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "do not back up replaced output files")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "only report files that changed or failed")
	cmd.Flags().BoolVar(&flags.metrics, "metrics", false, "show token, node and size counts per file")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "follow directory symlinks")

	return cmd
}

// cliConfig converts explicitly set flags into a config overlay.
func (f *convertFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{
		Engine:    config.Engine(f.engine),
		Flavor:    config.Flavor(f.flavor),
		Title:     f.title,
		CSS:       f.css,
		InlineCSS: f.embedCSS,
		OutputDir: f.outputDir,
		Extension: f.extension,
		MaxTokens: f.maxTokens,
		Ignore:    f.ignore,
		Format:    config.OutputFormat(f.format),
		Jobs:      f.jobs,
		DryRun:    f.dryRun,
		Output:    f.output,
	}
	if cmd.Flags().Changed("standalone") {
		cfg.Standalone = config.Bool(f.standalone)
	}
	if f.noBackups {
		cfg.Backups.Enabled = config.Bool(false)
	}
	return cfg
}

func runConvert(cmd *cobra.Command, args []string, flags *convertFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if flags.output != "" && len(args) != 1 {
		return fmt.Errorf("%w: --output requires exactly one input, got %d", ErrInvalidUsage, len(args))
	}
	for _, arg := range args {
		if arg == fsutil.StdioPath && len(args) > 1 {
			return fmt.Errorf("%w: standard input cannot be combined with other paths", ErrInvalidUsage)
		}
	}
	if flags.output != "" && args[0] != fsutil.StdioPath {
		if info, statErr := os.Stat(args[0]); statErr == nil && info.IsDir() {
			return fmt.Errorf("%w: --output cannot be used with directory %s", ErrInvalidUsage, args[0])
		}
	}

	loadResult, workDir, err := loadConfig(ctx, cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}
	cfg := loadResult.Config

	pipeline, err := convert.NewPipeline(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	logger.Debug("starting conversion",
		logging.FieldPaths, args,
		logging.FieldEngine, cfg.Engine,
		logging.FieldStandalone, cfg.IsStandalone(),
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	if len(args) == 1 && (args[0] == fsutil.StdioPath || cfg.Output == fsutil.StdioPath) {
		return convertSingle(ctx, cmd, pipeline, args[0], cfg)
	}

	run := runner.New(pipeline)
	result, err := run.Run(ctx, runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     normalizeExtensions(flags.extensions),
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.follow,
		Jobs:           cfg.Jobs,
		Config:         cfg,
	})
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      cfg.Format,
		Color:       colorMode(cmd),
		ShowSummary: true,
		ShowMetrics: flags.metrics,
		Quiet:       flags.quiet,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	failed, err := rep.Report(ctx, result)
	if err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("conversion complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesConverted, result.Stats.FilesConverted,
		logging.FieldFilesUnchanged, result.Stats.FilesUnchanged,
		logging.FieldFilesFailed, failed,
		logging.FieldDuration, result.Stats.Duration,
	)

	if failed > 0 {
		return errors.Join(append([]error{ErrConversionFailed}, result.Errors()...)...)
	}
	return nil
}

// convertSingle renders one input, which may be standard input, to stdout
// or to --output when it names a file.
func convertSingle(ctx context.Context, cmd *cobra.Command, pipeline *convert.Pipeline, path string, cfg *config.Config) error {
	content, err := readInput(ctx, cmd, path)
	if err != nil {
		return err
	}

	result, err := pipeline.ConvertBytes(ctx, path, content, cfg)
	if err != nil {
		return err
	}

	if cfg.Output == "" || cfg.Output == fsutil.StdioPath || cfg.DryRun {
		if _, err := cmd.OutOrStdout().Write(result.Output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if err := fsutil.WriteAtomic(ctx, cfg.Output, result.Output, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %w", convert.ErrWriteFailure, err)
	}
	logging.FromContext(ctx).Debug("output written", logging.FieldOutput, cfg.Output)
	return nil
}

// normalizeExtensions lowercases extensions and adds a leading dot.
func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return nil
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
