package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/mdlite/pkg/fsutil"
	"github.com/yaklabco/mdlite/pkg/runner"
)

// Exit codes for mdlite.
const (
	// ExitSuccess indicates every file was converted.
	ExitSuccess = 0

	// ExitConversionFailed indicates the run completed but some files failed.
	ExitConversionFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that select an exit code.
var (
	// ErrConversionFailed is returned when at least one file failed.
	// The failures themselves have already been reported.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrInvalidUsage marks flag and argument combinations that cannot work.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig marks configuration loading and validation failures.
	ErrConfig = errors.New("configuration error")
)

// ExitCodeFromResult determines the exit code of a conversion run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitConversionFailed
	}
	return ExitSuccess
}

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConversionFailed):
		return ExitConversionFailed
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
