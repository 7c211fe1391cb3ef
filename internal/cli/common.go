package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlite/internal/configloader"
	"github.com/yaklabco/mdlite/internal/logging"
	"github.com/yaklabco/mdlite/pkg/config"
	"github.com/yaklabco/mdlite/pkg/convert"
	"github.com/yaklabco/mdlite/pkg/fsutil"
	"github.com/yaklabco/mdlite/pkg/mdast"
)

// commandContext returns the command's context carrying the default logger.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// colorMode reads the persistent --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil || mode == "" {
		return "auto"
	}
	return mode
}

// loadConfig resolves the layered configuration with cliCfg on top and
// returns it with the working directory it was resolved from.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, string, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}

	return loadResult, workDir, nil
}

// readInput reads a named file, or standard input for "-".
func readInput(ctx context.Context, cmd *cobra.Command, path string) ([]byte, error) {
	if path == fsutil.StdioPath {
		content, _, err := fsutil.ReadAll(ctx, cmd.InOrStdin())
		return content, err
	}
	content, _, err := fsutil.ReadFile(ctx, path)
	return content, err
}

// parseInput reads and parses one document with the configured engine.
func parseInput(ctx context.Context, cmd *cobra.Command, path string, cfg *config.Config) (*mdast.Document, string, error) {
	content, err := readInput(ctx, cmd, path)
	if err != nil {
		return nil, "", err
	}
	if len(content) == 0 {
		return nil, "", fmt.Errorf("%w: %s", convert.ErrEmptySource, path)
	}

	p, err := convert.NewParser(cfg)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrConfig, err)
	}

	doc, err := p.Parse(ctx, path, content)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %w", convert.ErrParseFailure, path, err)
	}
	return doc, p.Name(), nil
}
