package runner_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlite/pkg/config"
	"github.com/yaklabco/mdlite/pkg/convert"
	"github.com/yaklabco/mdlite/pkg/runner"
)

func newRunner(t *testing.T, cfg *config.Config) *runner.Runner {
	t.Helper()
	pipeline, err := convert.NewPipeline(context.Background(), cfg)
	require.NoError(t, err)
	return runner.New(pipeline)
}

func fragmentConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Standalone = config.Bool(false)
	return cfg
}

func TestNew(t *testing.T) {
	t.Parallel()

	pipeline, err := convert.NewPipeline(context.Background(), config.NewConfig())
	require.NoError(t, err)

	r := runner.New(pipeline)
	require.NotNil(t, r)
	assert.Same(t, pipeline, r.Pipeline)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := fragmentConfig()

	result, err := newRunner(t, cfg).Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "readme.md")
	cfg := fragmentConfig()

	result, err := newRunner(t, cfg).Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	outcome := result.Files[0]
	require.NoError(t, outcome.Error)
	require.NotNil(t, outcome.Result)
	assert.True(t, outcome.Result.Written)
	assert.Equal(t, filepath.Join(dir, "readme.html"), outcome.Result.OutputPath)

	got, err := os.ReadFile(filepath.Join(dir, "readme.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1 id=\"hello\">Hello</h1>\n", string(got))

	assert.Equal(t, 1, result.Stats.FilesConverted)
	assert.Equal(t, 1, result.Stats.FilesWritten)
	assert.Equal(t, len(got), result.Stats.BytesRendered)
	assert.Positive(t, result.Stats.Tokens)
	assert.Positive(t, result.Stats.Nodes)
}

func TestRunner_Run_OutputDirMirrorsTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a/index.md", "b/index.md", "readme.md")
	site := filepath.Join(dir, "site")
	cfg := fragmentConfig()
	cfg.OutputDir = site

	result, err := newRunner(t, cfg).Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)
	require.False(t, result.HasFailures())
	require.Len(t, result.Files, 3)

	for _, rel := range []string{"a/index.html", "b/index.html", "readme.html"} {
		assert.FileExists(t, filepath.Join(site, filepath.FromSlash(rel)))
	}
	assert.Empty(t, cfg.SourceRoot, "caller config must not be modified")
}

func TestRunner_Run_OrderMatchesDiscovery(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var names []string
	for i := range 12 {
		name := fmt.Sprintf("doc%02d.md", i)
		names = append(names, name)
	}
	writeTree(t, dir, names...)

	for _, jobs := range []int{1, 4, 0} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			t.Parallel()

			cfg := fragmentConfig()
			cfg.DryRun = true

			result, err := newRunner(t, cfg).Run(context.Background(), runner.Options{
				Paths:      []string{"."},
				WorkingDir: dir,
				Jobs:       jobs,
				Config:     cfg,
			})
			require.NoError(t, err)
			require.Len(t, result.Files, len(names))

			for i, outcome := range result.Files {
				assert.Equal(t, filepath.Join(dir, names[i]), outcome.Path)
				require.NotNil(t, outcome.Result)
				assert.False(t, outcome.Result.Written)
			}
			assert.Equal(t, len(names), result.Stats.FilesConverted)
			assert.Zero(t, result.Stats.FilesWritten)
		})
	}
}

func TestRunner_Run_FailuresDoNotStopRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md", "c.md")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), nil, 0o644))

	cfg := fragmentConfig()
	result, err := newRunner(t, cfg).Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Jobs:       2,
		Config:     cfg,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 3)

	assert.NoError(t, result.Files[0].Error)
	require.Error(t, result.Files[1].Error)
	assert.ErrorIs(t, result.Files[1].Error, convert.ErrEmptySource)
	assert.Contains(t, result.Files[1].Error.Error(), "b.md")
	assert.NoError(t, result.Files[2].Error)

	assert.True(t, result.HasFailures())
	assert.Len(t, result.Errors(), 1)
	assert.Equal(t, 2, result.Stats.FilesConverted)
	assert.Equal(t, 1, result.Stats.FilesErrored)
}

func TestRunner_Run_UnchangedAndBackups(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md")
	cfg := fragmentConfig()
	r := newRunner(t, cfg)
	opts := runner.Options{Paths: []string{"a.md"}, WorkingDir: dir, Config: cfg}

	_, err := r.Run(context.Background(), opts)
	require.NoError(t, err)

	result, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesUnchanged)
	assert.Zero(t, result.Stats.BackupsCreated)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("changed\n"), 0o644))
	result, err = r.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesWritten)
	assert.Equal(t, 1, result.Stats.BackupsCreated)
}

func TestRunner_Run_NilConfigUsesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "page.md")

	result, err := newRunner(t, config.NewConfig()).Run(context.Background(), runner.Options{
		Paths:      []string{"page.md"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.NoError(t, result.Files[0].Error)

	got, err := os.ReadFile(filepath.Join(dir, "page.html"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "<!DOCTYPE html>")
	assert.Contains(t, string(got), "<title>Page</title>")
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md", "b.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := fragmentConfig()
	_, err := newRunner(t, cfg).Run(ctx, runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_DiscoveryError(t *testing.T) {
	t.Parallel()

	cfg := fragmentConfig()
	_, err := newRunner(t, cfg).Run(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
		Config:     cfg,
	})
	require.Error(t, err)
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var r *runner.Result
	assert.False(t, r.HasFailures())
	assert.Nil(t, r.Errors())
}
