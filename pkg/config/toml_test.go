package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlite/pkg/config"
)

func TestTOMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Engine = config.EngineGoldmark
	original.CSS = "style.css"
	original.MaxTokens = 4096
	original.Ignore = []string{"vendor/**", "node_modules/**"}

	data, err := original.ToTOML()
	require.NoError(t, err)
	assert.Contains(t, string(data), `engine = "goldmark"`)
	assert.Contains(t, string(data), "[backups]")

	parsed, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, config.EngineGoldmark, parsed.Engine)
	assert.Equal(t, "style.css", parsed.CSS)
	assert.Equal(t, 4096, parsed.MaxTokens)
	assert.Equal(t, original.Ignore, parsed.Ignore)
	assert.Equal(t, config.BackupModeSidecar, parsed.Backups.Mode)
	assert.True(t, parsed.Backups.IsEnabled())
}

func TestFromTOML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "empty", input: ""},
		{name: "scalars", input: "title = \"Guide\"\nstandalone = false\n"},
		{name: "unknown key", input: "titel = \"Guide\"\n", wantErr: true},
		{name: "unknown nested key", input: "[backups]\nmood = \"none\"\n", wantErr: true},
		{name: "malformed", input: "title = \n", wantErr: true},
		{name: "wrong type", input: "max_tokens = \"many\"\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.FromTOML([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
		})
	}
}
