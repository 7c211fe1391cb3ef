package configloader

import "github.com/yaklabco/mdlite/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer values: override overwrites base if override is non-nil,
//     so an explicit false in a file still wins
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Engine != "" {
		result.Engine = override.Engine
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Title != "" {
		result.Title = override.Title
	}
	if override.CSS != "" {
		result.CSS = override.CSS
	}
	if override.InlineCSS != "" {
		result.InlineCSS = override.InlineCSS
	}
	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}
	if override.Extension != "" {
		result.Extension = override.Extension
	}
	if override.MaxTokens != 0 {
		result.MaxTokens = override.MaxTokens
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	// DryRun is CLI-only and can only be switched on.
	if override.DryRun {
		result.DryRun = true
	}

	if override.Standalone != nil {
		result.Standalone = override.Standalone
	}

	if override.Backups.Enabled != nil {
		result.Backups.Enabled = override.Backups.Enabled
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
