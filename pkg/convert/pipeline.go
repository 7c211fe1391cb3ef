// Package convert runs one document through the whole conversion:
// read, parse, render, and write the HTML next to (or away from) the source.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yaklabco/mdlite/internal/logging"
	"github.com/yaklabco/mdlite/pkg/config"
	"github.com/yaklabco/mdlite/pkg/fsutil"
	"github.com/yaklabco/mdlite/pkg/mdast"
	"github.com/yaklabco/mdlite/pkg/render"
)

// Pipeline error types for categorization.
var (
	// ErrEmptySource indicates the input holds no bytes at all.
	ErrEmptySource = errors.New("empty source")

	// ErrUnknownEngine indicates the configured engine does not exist.
	ErrUnknownEngine = errors.New("unknown engine")

	// ErrParseFailure indicates the parser rejected the document.
	ErrParseFailure = errors.New("parse failure")

	// ErrRenderFailure indicates HTML rendering failed.
	ErrRenderFailure = errors.New("render failure")

	// ErrWriteFailure indicates the output could not be written.
	ErrWriteFailure = errors.New("write failure")

	// ErrOutputIsSource indicates the output path resolves to the source.
	ErrOutputIsSource = errors.New("output would overwrite source")
)

// Result describes the conversion of a single document.
type Result struct {
	// Path is the source path ("-" for standard input).
	Path string

	// OutputPath is where the HTML was (or would be) written. Empty for
	// in-memory conversion.
	OutputPath string

	// Engine is the name of the parser that produced the tree.
	Engine string

	// Tokens is the length of the token sequence, Eof included.
	Tokens int

	// Nodes is the number of nodes in the tree, root included.
	Nodes int

	// Output is the rendered HTML.
	Output []byte

	// Written is true if the output file was replaced.
	Written bool

	// Unchanged is true if the output file already held identical HTML.
	Unchanged bool

	// BackupPath is the backup taken of the previous output, if any.
	BackupPath string

	// Duration is the wall time spent on the document.
	Duration time.Duration
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	switch {
	case r.Unchanged:
		return "unchanged"
	case r.Written && r.BackupPath != "":
		return "converted (backup created)"
	case r.Written:
		return "converted"
	case r.OutputPath != "":
		return "dry run"
	default:
		return "rendered"
	}
}

// Pipeline converts documents with one parser and one stylesheet.
// It is safe for concurrent use.
type Pipeline struct {
	// Parser builds the tree.
	Parser Parser

	// InlineCSS is the normalized stylesheet embedded in standalone pages.
	InlineCSS string
}

// NewPipeline builds a pipeline for cfg: it selects the parser engine and
// loads the embedded stylesheet, if any.
func NewPipeline(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	p, err := NewParser(cfg)
	if err != nil {
		return nil, err
	}

	pipeline := &Pipeline{Parser: p}

	if cfg.InlineCSS != "" {
		content, _, err := fsutil.ReadFile(ctx, cfg.InlineCSS)
		if err != nil {
			return nil, fmt.Errorf("read stylesheet: %w", err)
		}
		css, err := render.ParseStylesheet(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.InlineCSS, err)
		}
		pipeline.InlineCSS = css
	}

	return pipeline, nil
}

// ConvertFile converts the Markdown file at path and writes the HTML to
// cfg.Output, or to cfg.OutputPath(path) when no explicit output is set.
//
// The steps are:
//  1. Read the source and reject empty input.
//  2. Parse and render in memory.
//  3. Refuse an output path that names the source itself.
//  4. Stop here in dry-run mode.
//  5. Back up the previous output (if enabled and it differs).
//  6. Write the output atomically, skipping identical content.
func (p *Pipeline) ConvertFile(ctx context.Context, path string, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	result, err := p.ConvertBytes(ctx, path, content, cfg)
	if err != nil {
		return nil, err
	}

	result.OutputPath = cfg.Output
	if result.OutputPath == "" {
		result.OutputPath = cfg.OutputPath(path)
	}
	if samePath(path, result.OutputPath) {
		return nil, fmt.Errorf("%w: %s", ErrOutputIsSource, path)
	}

	if cfg.DryRun {
		return result, nil
	}

	start := time.Now()
	if err := p.write(ctx, result, cfg); err != nil {
		return nil, err
	}
	result.Duration += time.Since(start)

	return result, nil
}

// samePath reports whether a and b name the same file. Paths that cannot
// be resolved are compared lexically.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	if absA == absB {
		return true
	}

	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

func (p *Pipeline) write(ctx context.Context, result *Result, cfg *config.Config) error {
	logger := logging.FromContext(ctx)

	existing, err := os.ReadFile(result.OutputPath)
	switch {
	case err == nil && bytes.Equal(existing, result.Output):
		result.Unchanged = true
		logger.Debug("output unchanged", logging.FieldOutput, result.OutputPath)
		return nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	backup, err := fsutil.CreateBackup(ctx, result.OutputPath, BackupConfigFromConfig(cfg))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.BackupPath = backup
	if backup != "" {
		logger.Debug("backup created", logging.FieldBackup, backup)
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, result.OutputPath, result.Output, fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = written
	result.Unchanged = !written

	logger.Debug("output written", logging.FieldOutput, result.OutputPath, logging.FieldBytes, len(result.Output))
	return nil
}

// ConvertBytes parses and renders content without touching the file
// system. path names the document for titles and logs; "-" is standard
// input.
func (p *Pipeline) ConvertBytes(ctx context.Context, path string, content []byte, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	start := time.Now()

	if len(content) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySource, path)
	}

	doc, err := p.Parser.Parse(ctx, path, content)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("conversion cancelled: %w", ctxErr)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailure, path, err)
	}

	result := &Result{
		Path:   path,
		Engine: p.Parser.Name(),
		Tokens: len(doc.Tokens),
		Nodes:  mdast.CountNodes(doc.Root),
	}

	logging.FromContext(ctx).Debug("parsed",
		logging.FieldPath, path,
		logging.FieldEngine, result.Engine,
		logging.FieldTokens, result.Tokens,
		logging.FieldNodes, result.Nodes,
	)

	var buf bytes.Buffer
	if cfg.IsStandalone() {
		title := cfg.Title
		if title == "" {
			title = render.TitleFromPath(path)
		}
		err = render.RenderPage(&buf, doc, render.Options{
			Title:     title,
			CSS:       cfg.CSS,
			InlineCSS: p.InlineCSS,
		})
	} else {
		err = render.Render(&buf, doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailure, path, err)
	}

	result.Output = buf.Bytes()
	result.Duration = time.Since(start)

	return result, nil
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrEmptySource) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrRenderFailure) ||
		errors.Is(err, ErrWriteFailure) ||
		errors.Is(err, ErrOutputIsSource) ||
		errors.Is(err, fsutil.ErrNotFound) ||
		errors.Is(err, fsutil.ErrPermissionDenied) ||
		errors.Is(err, fsutil.ErrIsDirectory)
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.IsEnabled(),
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}
