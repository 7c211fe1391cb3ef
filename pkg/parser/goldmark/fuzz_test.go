package goldmark

import (
	"context"
	"testing"

	"github.com/yaklabco/mdlite/pkg/mdast"
)

// FuzzParse fuzzes the goldmark mapping with random input.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"# Heading",
		"- list item",
		"1. ordered item",
		"> blockquote",
		"```go\nfunc main() {}\n```",
		"*emphasis* **strong** ***both***",
		"`code`",
		"[link](url) <https://auto.link>",
		"![image](src)",
		"<div>html</div>",
		"| a | b |\n|---|---|\n| 1 | 2 |",
		"line1\r\nline2",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	p := New(FlavorGFM)

	f.Fuzz(func(t *testing.T, data []byte) {
		doc, err := p.Parse(context.Background(), "fuzz.md", data)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		//nolint:errcheck,revive // callback never fails
		mdast.Walk(doc.Root, func(n *mdast.Node) error {
			if n.HasText && n.Text.Bytes(doc.Source) == nil {
				t.Errorf("%s span %+v out of range for %d bytes", n.Kind, n.Text, len(doc.Source))
			}
			return nil
		})
	})
}
