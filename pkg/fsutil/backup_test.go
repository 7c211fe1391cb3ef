package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlite/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.html"+fsutil.BackupSuffix, fsutil.BackupPath("a.html", fsutil.BackupModeSidecar))
	assert.Equal(t, "a.html"+fsutil.BackupSuffix, fsutil.BackupPath("a.html", "unknown"))
	assert.Empty(t, fsutil.BackupPath("a.html", fsutil.BackupModeNone))
}

func TestDefaultBackupConfig(t *testing.T) {
	t.Parallel()

	cfg := fsutil.DefaultBackupConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, fsutil.BackupModeSidecar, cfg.Mode)
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	enabled := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("copies existing file once", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "a.html")
		require.NoError(t, os.WriteFile(path, []byte("first"), 0o600))

		backup, err := fsutil.CreateBackup(ctx, path, enabled)
		require.NoError(t, err)
		assert.Equal(t, path+fsutil.BackupSuffix, backup)
		assert.True(t, fsutil.BackupExists(path, fsutil.BackupModeSidecar))

		require.NoError(t, os.WriteFile(path, []byte("second"), 0o600))
		backup, err = fsutil.CreateBackup(ctx, path, enabled)
		require.NoError(t, err)
		assert.Empty(t, backup, "existing backup is kept")

		got, err := os.ReadFile(path + fsutil.BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, "first", string(got))

		stat, err := os.Stat(path + fsutil.BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.html")
		backup, err := fsutil.CreateBackup(context.Background(), path, enabled)
		require.NoError(t, err)
		assert.Empty(t, backup)
		assert.False(t, fsutil.BackupExists(path, fsutil.BackupModeSidecar))
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.html")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		for _, cfg := range []fsutil.BackupConfig{
			fsutil.DefaultBackupConfig(),
			{Enabled: true, Mode: fsutil.BackupModeNone},
		} {
			backup, err := fsutil.CreateBackup(context.Background(), path, cfg)
			require.NoError(t, err)
			assert.Empty(t, backup)
		}
		assert.False(t, fsutil.BackupExists(path, fsutil.BackupModeSidecar))
		assert.False(t, fsutil.BackupExists(path, fsutil.BackupModeNone))
	})
}
