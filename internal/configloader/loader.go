// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/mdlite/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// It is merged on top of the discovered files.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (MDLITE_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.mdlite.yml / .mdlite.toml upward search)
//  5. User config ($XDG_CONFIG_HOME/mdlite/config.yaml)
//  6. System config (/etc/mdlite/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		skipped bool
	}{
		{name: "system", path: paths.System, skipped: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skipped: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skipped: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit},
	}

	for _, layer := range layers {
		if layer.skipped || layer.path == "" {
			continue
		}

		fileCfg, err := LoadFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}

		for _, w := range Validate(fileCfg).Warnings {
			w.FilePath = layer.path
			result.Warnings = append(result.Warnings, w.Error())
		}

		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads a single configuration file. The syntax is chosen by
// extension: ".toml" is TOML, anything else is YAML. A relative inline_css
// path is resolved against the file's directory.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg *config.Config
	if IsTOMLConfig(path) {
		cfg, err = config.FromTOML(content)
	} else {
		cfg, err = config.FromYAML(content)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if cfg.InlineCSS != "" && !filepath.IsAbs(cfg.InlineCSS) {
		cfg.InlineCSS = filepath.Join(filepath.Dir(path), cfg.InlineCSS)
	}

	return cfg, nil
}
