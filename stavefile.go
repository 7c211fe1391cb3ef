//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/mdlite"
	mainPkg = "./cmd/mdlite"
)

// releasePlatforms are the GOOS/GOARCH pairs CI cross-compiles.
var releasePlatforms = []string{
	"linux/amd64", "linux/arm64",
	"darwin/amd64", "darwin/arm64",
	"windows/amd64", "windows/arm64",
	"freebsd/amd64",
}

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"l":    Lint.Default,
	"c":    Check,
	"cmp":  Bench.Compare,
	"cmpf": Bench.Fast,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/mdlite with version info when any source changed.
func Build() error {
	stale, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Install runs go install with version info.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Coverage writes coverage.html from a full test run.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs the race-enabled suite with coverage, reporting failures only.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails")
}

// Verbose runs the suite listing every test.
func (Test) Verbose() error {
	return gotestsum("standard-verbose")
}

// gotestsum runs the whole suite in the given gotestsum format.
// STAVE_NUM_PROCESSORS bounds package and test parallelism.
func gotestsum(format string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go", "tool", "gotestsum", "-f", format, "--",
		"-race", "-p", procs, "-parallel", procs,
		"-coverprofile=coverage.out", "-covermode=atomic",
		"./...")
}

// Default runs golangci-lint and applies its fixes.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint read-only.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt rewrites Go files with gofmt.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when gofmt would change any file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("needs gofmt:\n%s", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs every check CI requires, cheapest first.
func (CI) Gate() {
	st.SerialDeps(Lint.FmtCheck, Lint.Vet, Lint.CI, Build, Test.Default, CI.ModTidy, CI.Cross)
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
func (CI) ModTidy() error {
	files := []string{"go.mod", "go.sum"}
	before := make([][]byte, len(files))
	for i, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		before[i] = data
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for i, name := range files {
		after, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if !bytes.Equal(before[i], after) {
			return errors.New(name + " is not tidy; commit the result of go mod tidy")
		}
	}
	return nil
}

// Cross builds the binary for every release platform without cgo.
func (CI) Cross() error {
	for _, platform := range releasePlatforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs every benchmark with allocation stats.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Compare converts BENCH_DIR (default ".") in dry-run mode with each parser
// engine and prints both summaries.
func (Bench) Compare() error {
	st.Deps(Build)
	dir := cmp.Or(os.Getenv("BENCH_DIR"), ".")
	for _, engine := range []string{"native", "goldmark"} {
		fmt.Printf("%s engine:\n", engine)
		if err := sh.RunV(binary, "convert", dir,
			"--engine", engine, "--dry-run", "--format", "summary"); err != nil {
			return fmt.Errorf("%s engine: %w", engine, err)
		}
	}
	return nil
}

// Fast runs the tokenizer, parser and renderer benchmarks.
func (Bench) Fast() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem",
		"./pkg/parser/...", "./pkg/render/...")
}

// ldflags injects the version, commit and build date into main.
func ldflags() string {
	git := func(args ...string) string {
		out, err := sh.Output("git", args...)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(out)
	}

	return strings.Join([]string{
		"-X main.version=" + cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		"-X main.commit=" + cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		"-X main.date=" + time.Now().UTC().Format(time.RFC3339),
	}, " ")
}
