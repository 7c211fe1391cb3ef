package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aymerick/douceur/parser"
)

// ErrInvalidStylesheet is returned when embedded CSS cannot be used.
var ErrInvalidStylesheet = errors.New("invalid stylesheet")

// ParseStylesheet validates CSS source for embedding and returns it in
// normalized form.
func ParseStylesheet(src []byte) (string, error) {
	sheet, err := parser.Parse(string(src))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidStylesheet, err)
	}

	out := sheet.String()
	if strings.Contains(strings.ToLower(out), "</style") {
		return "", fmt.Errorf("%w: contains a closing style tag", ErrInvalidStylesheet)
	}

	return out, nil
}
