// Package langdetect recognizes Markdown sources using go-enry's linguist
// data, so that every extension and well-known file name linguist maps to
// Markdown is picked up during discovery.
package langdetect

import (
	"path/filepath"
	"slices"

	"github.com/go-enry/go-enry/v2"
)

// Markdown is the linguist language name for Markdown.
const Markdown = "Markdown"

// IsMarkdown reports whether path names a Markdown file, judged by its
// extension or well-known file name.
func IsMarkdown(path string) bool {
	base := filepath.Base(path)

	if slices.Contains(enry.GetLanguagesByExtension(base, nil, nil), Markdown) {
		return true
	}
	return slices.Contains(enry.GetLanguagesByFilename(base, nil, nil), Markdown)
}

// IsVendored reports whether path lies in a vendored or dependency
// directory (vendor/, node_modules/, ...), which discovery skips.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}
