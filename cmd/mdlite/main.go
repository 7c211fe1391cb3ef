// Package main is the entry point for the mdlite CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/mdlite/internal/cli"
	"github.com/yaklabco/mdlite/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Per-file failures were already reported.
		if !errors.Is(err, cli.ErrConversionFailed) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return cli.ExitSuccess
}
