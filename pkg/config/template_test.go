package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlite/pkg/config"
)

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opts   config.TemplateOptions
		parse  func([]byte) (*config.Config, error)
		engine config.Engine
	}{
		{name: "minimal yaml", opts: config.TemplateOptions{}, parse: config.FromYAML},
		{name: "minimal toml", opts: config.TemplateOptions{Format: config.TemplateTOML}, parse: config.FromTOML},
		{
			name:   "full yaml",
			opts:   config.TemplateOptions{Full: true},
			parse:  config.FromYAML,
			engine: config.EngineNative,
		},
		{
			name:   "full toml",
			opts:   config.TemplateOptions{Format: config.TemplateTOML, Full: true},
			parse:  config.FromTOML,
			engine: config.EngineNative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := config.GenerateTemplate(tt.opts)
			require.NoError(t, err)
			assert.Contains(t, string(data), "# mdlite configuration")

			cfg, err := tt.parse(data)
			require.NoError(t, err)
			assert.Equal(t, tt.engine, cfg.Engine)
		})
	}
}

func TestGenerateTemplate_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := config.GenerateTemplate(config.TemplateOptions{Format: "ini"})
	require.Error(t, err)
}

func TestTemplateFormat_FileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".mdlite.yml", config.TemplateYAML.FileName())
	assert.Equal(t, ".mdlite.toml", config.TemplateTOML.FileName())
}
