package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/yaklabco/mdlite/pkg/langdetect"
)

// Discover finds Markdown files for opts.Paths under the working directory.
//
// Files are returned as absolute paths in argument order: each directory
// contributes its files in lexical walk order, and a file reached twice
// keeps its first position. A file named explicitly is always included
// unless an exclude pattern matches it; files found by walking must also
// be Markdown.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	seen := linkedhashset.New()

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if !matchesExcludePattern(relativeTo(workDir, absPath), opts.ExcludeGlobs) {
				seen.Add(absPath)
			}
			continue
		}

		discovered, err := walkDirectory(ctx, absPath, workDir, opts)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			seen.Add(f)
		}
	}

	files := make([]string, 0, seen.Size())
	for _, v := range seen.Values() {
		if s, ok := v.(string); ok {
			files = append(files, s)
		}
	}

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func relativeTo(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// walkDirectory recursively walks a directory and returns matching Markdown files.
func walkDirectory(ctx context.Context, root, workDir string, opts Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		relPath := relativeTo(workDir, path)

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") ||
				langdetect.IsVendored(relPath+"/") ||
				matchesExcludePattern(relPath, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible symlink targets are skipped
			}
			if info.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}
				// Walk the target; WalkDir uses Lstat on its root.
				subFiles, err := walkDirectory(ctx, realPath, workDir, opts)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if isMarkdownFile(path, opts.Extensions) && !matchesExcludePattern(relPath, opts.ExcludeGlobs) {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// isMarkdownFile checks the extension list when one is given, and asks
// linguist otherwise.
func isMarkdownFile(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return langdetect.IsMarkdown(path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// matchesExcludePattern checks if the path matches any exclude pattern.
func matchesExcludePattern(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a path against a glob pattern.
// It supports patterns like "*.md", "docs/**" and "**/drafts".
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchDoubleStarPattern(path, pattern)
	}

	if matched, err := filepath.Match(pattern, path); err == nil && matched {
		return true
	}

	// Bare patterns also match the file name alone.
	matched, err := filepath.Match(pattern, filepath.Base(path))
	return err == nil && matched
}

// matchDoubleStarPattern handles the "**/x", "x/**" and "a/**/b" forms.
func matchDoubleStarPattern(path, pattern string) bool {
	prefix, suffix, _ := strings.Cut(pattern, "**")
	prefix = strings.TrimSuffix(prefix, "/")
	suffix = strings.TrimPrefix(suffix, "/")

	if prefix != "" && path != prefix && !strings.HasPrefix(path, prefix+"/") {
		return false
	}
	if suffix == "" {
		return true
	}

	rest := strings.TrimPrefix(strings.TrimPrefix(path, prefix), "/")
	parts := strings.Split(rest, "/")
	for i := range parts {
		tail := strings.Join(parts[i:], "/")
		if matched, err := filepath.Match(suffix, tail); err == nil && matched {
			return true
		}
		if matched, err := filepath.Match(suffix, parts[i]); err == nil && matched {
			return true
		}
	}
	return false
}
