package render

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleFromPath derives a page title from a file name:
// "docs/getting_started.md" becomes "Getting Started".
// It returns DefaultTitle for an empty path or stdin ("-").
func TitleFromPath(path string) string {
	if path == "" || path == "-" {
		return DefaultTitle
	}

	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	if len(words) == 0 {
		return DefaultTitle
	}

	return cases.Title(language.English).String(strings.Join(words, " "))
}
