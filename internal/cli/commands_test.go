package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/mdlite/internal/cli"
	"github.com/yaklabco/mdlite/internal/configloader"
	"github.com/yaklabco/mdlite/pkg/config"
	"github.com/yaklabco/mdlite/pkg/convert"
	"github.com/yaklabco/mdlite/pkg/fsutil"
	"github.com/yaklabco/mdlite/pkg/reporter"
	"github.com/yaklabco/mdlite/pkg/runner"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestConvert_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "readme.md")
	writeFile(t, src, "# Hello\n")

	stdout, _, err := execute(t, "", "convert", src, "--standalone=false")
	require.NoError(t, err)
	assert.Contains(t, stdout, "converted")
	assert.Contains(t, stdout, "1 file converted")

	got, err := os.ReadFile(filepath.Join(dir, "readme.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1 id=\"hello\">Hello</h1>\n", string(got))
}

func TestConvert_StandalonePage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "notes.md")
	out := filepath.Join(dir, "site", "index.html")
	writeFile(t, src, "Some *text*\n")
	require.NoError(t, os.MkdirAll(filepath.Dir(out), 0o755))

	_, _, err := execute(t, "", "convert", src, "-o", out, "--standalone", "--title", "Notes", "--css", "style.css")
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	page := string(got)
	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "<title>Notes</title>")
	assert.Contains(t, page, `href="style.css"`)
	assert.Contains(t, page, "<em>text</em>")
}

func TestConvert_Stdin(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "# Hi\n", "convert", "-", "--standalone=false")
	require.NoError(t, err)
	assert.Equal(t, "<h1 id=\"hi\">Hi</h1>\n", stdout)
}

func TestConvert_FileToStdout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.md")
	writeFile(t, src, "# Hi\n")

	stdout, _, err := execute(t, "", "convert", src, "-o", "-", "--standalone=false")
	require.NoError(t, err)
	assert.Equal(t, "<h1 id=\"hi\">Hi</h1>\n", stdout)

	_, err = os.Stat(filepath.Join(dir, "a.html"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConvert_StdinToFile(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out.html")

	stdout, _, err := execute(t, "# Hi\n", "convert", "-", "-o", out, "--standalone=false")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "<h1 id=\"hi\">Hi</h1>\n", string(got))
}

func TestConvert_JSONDryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "# A\n")
	writeFile(t, filepath.Join(dir, "docs", "b.md"), "- item\n")

	stdout, _, err := execute(t, "", "convert", dir, "--format", "json", "--dry-run")
	require.NoError(t, err)

	var report reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	assert.Equal(t, reporter.JSONSchemaVersion, report.Version)
	require.Len(t, report.Files, 2)
	for _, file := range report.Files {
		assert.Equal(t, "dry run", file.Status)
		assert.False(t, file.Written)
		assert.Positive(t, file.Tokens)
	}
	assert.Equal(t, 2, report.Summary.FilesConverted)
	assert.Zero(t, report.Summary.FilesWritten)

	_, err = os.Stat(filepath.Join(dir, "a.html"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConvert_OutputDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outDir := t.TempDir()
	src := filepath.Join(dir, "page.md")
	writeFile(t, src, "text\n")

	_, _, err := execute(t, "", "convert", src, "--output-dir", outDir, "--ext", ".htm", "--standalone=false")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(outDir, "page.htm"))
	require.NoError(t, err)
	assert.Equal(t, "<p>text</p>\n", string(got))
}

func TestConvert_Failures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.md"), "# Good\n")
	writeFile(t, filepath.Join(dir, "empty.md"), "")

	stdout, _, err := execute(t, "", "convert", dir, "--standalone=false")
	require.ErrorIs(t, err, cli.ErrConversionFailed)
	assert.Equal(t, cli.ExitConversionFailed, cli.ExitCodeFromError(err))
	assert.Contains(t, stdout, "empty.md")
	assert.Contains(t, stdout, "1 failed")

	_, err = os.Stat(filepath.Join(dir, "good.html"))
	assert.NoError(t, err)
}

func TestConvert_InvalidUsage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	writeFile(t, a, "a\n")
	writeFile(t, b, "b\n")
	out := filepath.Join(dir, "out.html")

	tests := []struct {
		name string
		args []string
	}{
		{name: "output with two inputs", args: []string{"convert", a, b, "-o", "x.html"}},
		{name: "stdin with other paths", args: []string{"convert", "-", a}},
		{name: "output with directory input", args: []string{"convert", dir, "-o", out}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := execute(t, "", tt.args...)
			require.ErrorIs(t, err, cli.ErrInvalidUsage)
			assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
			assert.NoFileExists(t, out)
		})
	}
}

func TestConvert_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.md")
	writeFile(t, src, "a\n")

	_, _, err := execute(t, "", "convert", src, "--engine", "pandoc")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestConvert_EmptyStdin(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "convert", "-", "--standalone=false")
	require.ErrorIs(t, err, convert.ErrEmptySource)
}

func TestConvert_MissingPath(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "convert", filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
}

func TestTokens(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.md")
	writeFile(t, src, "# Hi\n")

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		stdout, _, err := execute(t, "", "tokens", src)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Header")
		assert.Contains(t, stdout, `"#"`)
		assert.Contains(t, stdout, `"Hi"`)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		stdout, _, err := execute(t, "", "tokens", src, "--format", "json")
		require.NoError(t, err)

		var dump reporter.TokenDump
		require.NoError(t, json.Unmarshal([]byte(stdout), &dump))
		assert.Equal(t, src, dump.Path)
		require.NotEmpty(t, dump.Tokens)
		assert.Equal(t, "Header", dump.Tokens[0].Kind)
		assert.Equal(t, "#", dump.Tokens[0].Text)
		assert.Equal(t, 1, dump.Tokens[0].Line)
	})

	t.Run("msgpack", func(t *testing.T) {
		t.Parallel()
		stdout, _, err := execute(t, "", "tokens", src, "--format", "msgpack")
		require.NoError(t, err)

		var dump reporter.TokenDump
		dec := msgpack.NewDecoder(strings.NewReader(stdout))
		dec.SetCustomStructTag("json")
		require.NoError(t, dec.Decode(&dump))
		require.NotEmpty(t, dump.Tokens)
		assert.Equal(t, "Header", dump.Tokens[0].Kind)
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()
		stdout, _, err := execute(t, "> quote\n", "tokens", "-")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Blockquote")
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		_, _, err := execute(t, "", "tokens", src, "--format", "xml")
		require.ErrorIs(t, err, cli.ErrInvalidUsage)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, _, err := execute(t, "", "tokens", filepath.Join(dir, "nope.md"))
		require.Error(t, err)
		assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
	})
}

func TestTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.md")
	writeFile(t, src, "## Title\n\nSome **bold** text\n")

	for _, engine := range []string{"native", "goldmark"} {
		t.Run(engine, func(t *testing.T) {
			t.Parallel()
			stdout, _, err := execute(t, "", "tree", src, "--engine", engine, "--format", "json")
			require.NoError(t, err)

			var dump reporter.TreeDump
			require.NoError(t, json.Unmarshal([]byte(stdout), &dump))
			assert.Equal(t, engine, dump.Engine)
			require.NotNil(t, dump.Root)
			assert.Equal(t, "Root", dump.Root.Kind)
			require.NotEmpty(t, dump.Root.Children)
			assert.Equal(t, "Header", dump.Root.Children[0].Kind)
			assert.Equal(t, 2, dump.Root.Children[0].Depth)
		})
	}

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		stdout, _, err := execute(t, "", "tree", src)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "Root"), stdout)
		assert.Contains(t, stdout, "Bold")
		assert.Contains(t, stdout, "Paragraph")
	})
}

func TestInit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		full   bool
		parse  func([]byte) (*config.Config, error)
	}{
		{name: "yaml minimal", format: "yaml", parse: config.FromYAML},
		{name: "yaml full", format: "yaml", full: true, parse: config.FromYAML},
		{name: "toml full", format: "toml", full: true, parse: config.FromTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := filepath.Join(t.TempDir(), "mdlite."+tt.format)
			args := []string{"init", "--format", tt.format, "-o", out}
			if tt.full {
				args = append(args, "--full")
			}

			_, _, err := execute(t, "", args...)
			require.NoError(t, err)

			content, err := os.ReadFile(out)
			require.NoError(t, err)
			cfg, err := tt.parse(content)
			require.NoError(t, err)
			if tt.full {
				assert.Equal(t, config.EngineNative, cfg.Engine)
			}
		})
	}
}

func TestInit_ExistingFile(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), ".mdlite.yml")
	writeFile(t, out, "engine: goldmark\n")

	_, _, err := execute(t, "", "init", "-o", out)
	require.ErrorIs(t, err, cli.ErrInvalidUsage)

	_, _, err = execute(t, "", "init", "-o", out, "--force", "--full")
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "engine: goldmark")
}

func TestInit_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "init", "--format", "json", "-o", filepath.Join(t.TempDir(), "x.json"))
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "custom.yml")
	writeFile(t, cfgPath, "engine: goldmark\ntitle: Handbook\n")

	stdout, _, err := execute(t, "", "--config", cfgPath, "config", "show")
	require.NoError(t, err)

	cfg, err := config.FromYAML([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, config.EngineGoldmark, cfg.Engine)
	assert.Equal(t, "Handbook", cfg.Title)

	stdout, _, err = execute(t, "", "--config", cfgPath, "config", "show", "--format", "toml")
	require.NoError(t, err)
	cfg, err = config.FromTOML([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, "Handbook", cfg.Title)

	stdout, _, err = execute(t, "", "--config", cfgPath, "config", "paths")
	require.NoError(t, err)
	assert.Contains(t, stdout, cfgPath)
}

func TestConfigShow_InvalidFile(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "bad.yml")
	writeFile(t, cfgPath, "engine: pandoc\n")

	_, _, err := execute(t, "", "--config", cfgPath, "config", "show")
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestConfigEnv(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "config", "env")
	require.NoError(t, err)
	for _, v := range configloader.ListEnvVars() {
		assert.Contains(t, stdout, v.Name)
	}

	stdout, _, err = execute(t, "", "config", "env", "--format", "json")
	require.NoError(t, err)
	var vars []map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &vars))
	assert.Len(t, vars, len(configloader.ListEnvVars()))
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "conversion failed", err: cli.ErrConversionFailed, want: cli.ExitConversionFailed},
		{name: "usage", err: fmt.Errorf("%w: bad", cli.ErrInvalidUsage), want: cli.ExitInvalidUsage},
		{name: "config", err: fmt.Errorf("%w: bad", cli.ErrConfig), want: cli.ExitConfigError},
		{name: "not found", err: fmt.Errorf("read: %w", fsutil.ErrNotFound), want: cli.ExitIOError},
		{name: "permission", err: fsutil.ErrPermissionDenied, want: cli.ExitIOError},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(&runner.Result{}))

	failed := &runner.Result{Stats: runner.Stats{FilesErrored: 1}}
	assert.Equal(t, cli.ExitConversionFailed, cli.ExitCodeFromResult(failed))
}
