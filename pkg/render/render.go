// Package render turns an mdast document into HTML.
//
// Each node kind has one fixed template. Text is always escaped; raw HTML in
// the source is never passed through.
package render

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/shurcooL/sanitized_anchor_name"

	"github.com/yaklabco/mdlite/pkg/mdast"
)

// bufWriterSize is the buffer size for the output writer (64 KiB).
const bufWriterSize = 64 * 1024

// DefaultTitle is the page title used when none is configured and none can
// be derived from the document path.
const DefaultTitle = "Markdown"

// Options controls page rendering.
type Options struct {
	// Title is the page <title>. Empty means DefaultTitle.
	Title string

	// CSS is a stylesheet href linked from the page head. Optional.
	CSS string

	// InlineCSS is stylesheet content embedded in a <style> element.
	// Use ParseStylesheet to normalize it first.
	InlineCSS string
}

// Render writes the HTML fragment for doc (the body content only).
func Render(w io.Writer, doc *mdast.Document) (err error) {
	hw := newHTMLWriter(w, doc)
	defer func() {
		if flushErr := hw.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	hw.node(doc.Root)
	return hw.err
}

// RenderPage writes a standalone HTML5 page wrapping the fragment.
func RenderPage(w io.Writer, doc *mdast.Document, opts Options) (err error) {
	hw := newHTMLWriter(w, doc)
	defer func() {
		if flushErr := hw.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	hw.raw("<!DOCTYPE html>\n")
	hw.raw("<html lang=\"en\">\n")
	hw.raw("<head>\n")
	hw.raw("\t<meta charset=\"UTF-8\">\n")
	hw.raw("\t<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	hw.raw("\t<title>" + html.EscapeString(title) + "</title>\n")
	if opts.CSS != "" {
		hw.raw("\t<link rel=\"stylesheet\" href=\"" + html.EscapeString(opts.CSS) + "\">\n")
	}
	if opts.InlineCSS != "" {
		hw.raw("\t<style>\n" + opts.InlineCSS + "\n\t</style>\n")
	}
	hw.raw("</head>\n")
	hw.raw("<body>\n")
	hw.node(doc.Root)
	hw.raw("</body>\n")
	hw.raw("</html>\n")

	return hw.err
}

// htmlWriter walks the tree. The first write error is kept and later
// writes become no-ops.
type htmlWriter struct {
	bw  *bufio.Writer
	doc *mdast.Document
	ids map[string]int
	err error
}

func newHTMLWriter(w io.Writer, doc *mdast.Document) *htmlWriter {
	return &htmlWriter{
		bw:  bufio.NewWriterSize(w, bufWriterSize),
		doc: doc,
		ids: make(map[string]int),
	}
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = hw.bw.WriteString(s)
}

func (hw *htmlWriter) text(b []byte) {
	hw.raw(html.EscapeString(string(b)))
}

func (hw *htmlWriter) children(n *mdast.Node) {
	for _, child := range n.Children {
		hw.node(child)
	}
}

func (hw *htmlWriter) wrap(openTag, closeTag string, n *mdast.Node) {
	hw.raw(openTag)
	hw.children(n)
	hw.raw(closeTag)
}

// emphasisTags holds the open and close tags of each emphasis kind.
var emphasisTags = map[mdast.NodeKind][2]string{
	mdast.NodeItalic:     {"<em>", "</em>"},
	mdast.NodeBold:       {"<strong>", "</strong>"},
	mdast.NodeItalicBold: {"<em><strong>", "</strong></em>"},
}

//nolint:cyclop // one case per node kind
func (hw *htmlWriter) node(n *mdast.Node) {
	if n == nil {
		return
	}

	if n.IsEmphasis() {
		tags := emphasisTags[n.Kind]
		hw.wrap(tags[0], tags[1], n)
		return
	}

	switch n.Kind {
	case mdast.NodeRoot:
		hw.children(n)

	case mdast.NodeHeader:
		level := strconv.Itoa(int(n.Depth))
		hw.raw("<h" + level + " id=\"" + html.EscapeString(hw.headingID(n)) + "\">")
		hw.children(n)
		hw.raw("</h" + level + ">\n")

	case mdast.NodeParagraph:
		hw.wrap("<p>", "</p>\n", n)

	case mdast.NodeBlockquote:
		hw.wrap("<blockquote>\n", "</blockquote>\n", n)

	case mdast.NodeUnorderedList:
		hw.wrap("<ul>\n", "</ul>\n", n)

	case mdast.NodeOrderedList:
		hw.wrap("<ol>\n", "</ol>\n", n)

	case mdast.NodeListItem:
		hw.wrap("<li>", "</li>\n", n)

	case mdast.NodeLinebreak:
		hw.raw("<br>\n")

	case mdast.NodeLink:
		hw.raw("<a href=\"" + html.EscapeString(hw.url(n)) + "\">")
		if title := titleOf(n); title != nil {
			hw.children(title)
		}
		hw.raw("</a>")

	case mdast.NodeImage:
		alt := ""
		if title := titleOf(n); title != nil {
			alt = hw.doc.PlainText(title)
		}
		hw.raw(fmt.Sprintf("<img src=\"%s\" alt=\"%s\">",
			html.EscapeString(hw.url(n)), html.EscapeString(alt)))

	case mdast.NodeTitle:
		hw.children(n)

	case mdast.NodeInnerText, mdast.NodeURL:
		hw.text(hw.doc.Text(n))
	}
}

// headingID returns a unique anchor slug for a header, numbering repeats
// the way GitHub does ("intro", "intro-1", ...).
func (hw *htmlWriter) headingID(n *mdast.Node) string {
	slug := sanitized_anchor_name.Create(hw.doc.PlainText(n))
	if slug == "" {
		slug = "section"
	}

	seen := hw.ids[slug]
	hw.ids[slug] = seen + 1
	if seen == 0 {
		return slug
	}
	return slug + "-" + strconv.Itoa(seen)
}

func (hw *htmlWriter) url(n *mdast.Node) string {
	for _, child := range n.Children {
		if child.Kind == mdast.NodeURL {
			return string(hw.doc.Text(child))
		}
	}
	return ""
}

func titleOf(n *mdast.Node) *mdast.Node {
	for _, child := range n.Children {
		if child.Kind == mdast.NodeTitle {
			return child
		}
	}
	return nil
}
