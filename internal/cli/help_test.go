package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainFormatter() *HelpFormatter {
	return NewHelpFormatter("never", &bytes.Buffer{})
}

func TestHelpFormatter_FlagList(t *testing.T) {
	t.Parallel()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("output", "o", "", "write HTML to `file`")
	fs.Bool("dry-run", false, "convert without writing")
	fs.String("engine", "native", "parser engine")
	fs.Int("jobs", 0, "parallel workers")
	fs.String("secret", "", "hidden flag")
	require.NoError(t, fs.MarkHidden("secret"))

	got := plainFormatter().flagList(fs)

	assert.Equal(t, strings.Join([]string{
		"      --dry-run         convert without writing",
		`      --engine string   parser engine (default "native")`,
		"      --jobs int        parallel workers",
		"  -o, --output file     write HTML to file",
	}, "\n"), got)
}

func TestDefaultText(t *testing.T) {
	t.Parallel()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("empty", "", "")
	fs.String("name", "x", "")
	fs.Bool("on", true, "")
	fs.Bool("off", false, "")
	fs.Int("zero", 0, "")
	fs.Int("four", 4, "")
	fs.StringSlice("list", nil, "")

	tests := []struct {
		flag string
		want string
	}{
		{flag: "empty", want: ""},
		{flag: "name", want: `"x"`},
		{flag: "on", want: "true"},
		{flag: "off", want: ""},
		{flag: "zero", want: ""},
		{flag: "four", want: "4"},
		{flag: "list", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, defaultText(fs.Lookup(tt.flag)))
		})
	}
}

func TestHelpFormatter_CommandList(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "app"}
	root.AddCommand(
		&cobra.Command{Use: "convert", Short: "Convert files", Run: func(*cobra.Command, []string) {}},
		&cobra.Command{Use: "tree", Short: "Dump a tree", Run: func(*cobra.Command, []string) {}},
		&cobra.Command{Use: "old", Short: "Gone", Hidden: true, Run: func(*cobra.Command, []string) {}},
	)

	got := plainFormatter().commandList(root.Commands())

	assert.Equal(t, "  convert   Convert files\n  tree      Dump a tree", got)
}

func TestHelpFormatter_Pages(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "app", Short: "Does things", Version: "1.2.3"}
	root.Flags().Bool("quiet", false, "say less")
	sub := &cobra.Command{Use: "run <path>", Short: "Run it", Example: "  app run x", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(sub)
	plainFormatter().ApplyToCommand(root)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name:    "root help",
			args:    []string{"--help"},
			want:    []string{"app 1.2.3\n\nDoes things\n\nUsage:", "Commands:\n  ", "--quiet", "Environment:\n  MDLITE_"},
			notWant: []string{"Examples:"},
		},
		{
			name:    "subcommand help",
			args:    []string{"run", "--help"},
			want:    []string{"Usage:\n  app run <path>", "Examples:\n  app run x"},
			notWant: []string{"Environment:", "Commands:"},
		},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(tt.args)

		require.NoError(t, root.Execute(), tt.name)
		for _, want := range tt.want {
			assert.Contains(t, out.String(), want, tt.name)
		}
		for _, notWant := range tt.notWant {
			assert.NotContains(t, out.String(), notWant, tt.name)
		}
	}
}
