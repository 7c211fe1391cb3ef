package goldmark

import (
	"bytes"

	"fortio.org/safecast"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdlite/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree. Every text node it
// produces is a span into content, exactly like the native engine's.
type mapper struct {
	content []byte
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	root := mdast.NewRoot()
	m.mapChildren(gmDoc, root)
	return root
}

// mapChildren maps all children of a goldmark node into parent.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapNode(child, parent)
	}
}

// mapNode appends the mdast form of gmNode to parent. A goldmark node may
// map to zero, one or several mdast nodes.
func (m *mapper) mapNode(gmNode ast.Node, parent *mdast.Node) {
	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node := parent.AppendChild(mdast.NewNode(mdast.NodeHeader))
		if depth, err := safecast.Conv[uint8](gmn.Level); err == nil {
			node.Depth = depth
		}
		m.mapChildren(gmn, node)

	case *ast.Paragraph:
		if parent.Kind == mdast.NodeListItem {
			// List items hold their inline content directly.
			m.mapChildren(gmn, parent)
			return
		}
		m.mapChildren(gmn, parent.AppendChild(mdast.NewNode(mdast.NodeParagraph)))

	case *ast.TextBlock:
		m.mapChildren(gmn, parent)

	case *ast.List:
		kind := mdast.NodeUnorderedList
		if gmn.IsOrdered() {
			kind = mdast.NodeOrderedList
		}
		m.mapChildren(gmn, parent.AppendChild(mdast.NewNode(kind)))

	case *ast.ListItem:
		m.mapChildren(gmn, parent.AppendChild(mdast.NewNode(mdast.NodeListItem)))

	case *ast.Blockquote:
		m.mapChildren(gmn, parent.AppendChild(mdast.NewNode(mdast.NodeBlockquote)))

	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		m.mapLines(gmNode.Lines(), parent)

	case *ast.ThematicBreak:
		// No counterpart in the tree.

	// Inline-level nodes.
	case *ast.Text:
		m.mapText(gmn, parent)

	case *ast.Emphasis:
		m.mapEmphasis(gmn, parent)

	case *ast.CodeSpan:
		m.mapChildren(gmn, parent)

	case *ast.Link:
		m.mapLink(gmn, gmn.Destination, mdast.NodeLink, parent)

	case *ast.Image:
		m.mapLink(gmn, gmn.Destination, mdast.NodeImage, parent)

	case *ast.AutoLink:
		m.mapAutoLink(gmn, parent)

	case *ast.RawHTML:
		for i := range gmn.Segments.Len() {
			m.appendSegment(gmn.Segments.At(i), parent)
		}

	case *ast.String:
		// Generated text without a source position.

	// GFM extension nodes.
	case *east.Table:
		m.mapChildren(gmn, parent)

	case *east.TableHeader, *east.TableRow:
		m.mapTableRow(gmNode, parent)

	case *east.TaskCheckBox:
		// Rendered from the item text alone.

	default:
		// Strikethrough, table cells and unknown inline containers keep
		// only their content.
		m.mapChildren(gmNode, parent)
	}
}

// mapText appends a text segment, followed by a Linebreak node when the
// source line ends there.
func (m *mapper) mapText(textNode *ast.Text, parent *mdast.Node) {
	m.appendSegment(textNode.Segment, parent)

	if textNode.SoftLineBreak() || textNode.HardLineBreak() {
		parent.AppendChild(mdast.NewNode(mdast.NodeLinebreak))
	}
}

func (m *mapper) appendSegment(seg text.Segment, parent *mdast.Node) {
	if seg.Stop <= seg.Start {
		return
	}
	parent.AppendChild(mdast.NewTextNode(mdast.NodeInnerText, mdast.Span{
		Offset: seg.Start,
		Length: seg.Stop - seg.Start,
	}))
}

// mapLines turns a literal block into a paragraph of its lines.
func (m *mapper) mapLines(lines *text.Segments, parent *mdast.Node) {
	if lines == nil || lines.Len() == 0 {
		return
	}

	para := parent.AppendChild(mdast.NewNode(mdast.NodeParagraph))
	for i := range lines.Len() {
		seg := lines.At(i)
		// Lines include their newline.
		if seg.Stop > seg.Start && m.content[seg.Stop-1] == '\n' {
			seg = seg.TrimRightSpace(m.content)
		}
		if i > 0 {
			para.AppendChild(mdast.NewNode(mdast.NodeLinebreak))
		}
		m.appendSegment(seg, para)
	}
}

// mapEmphasis maps goldmark levels 1 and 2, collapsing an emphasis whose
// only child is an emphasis of the other level into ItalicBold.
func (m *mapper) mapEmphasis(emphasis *ast.Emphasis, parent *mdast.Node) {
	if inner, ok := emphasis.FirstChild().(*ast.Emphasis); ok &&
		emphasis.ChildCount() == 1 && inner.Level+emphasis.Level == 3 {
		node := parent.AppendChild(mdast.NewNode(mdast.NodeItalicBold))
		node.Depth = 3
		m.mapChildren(inner, node)
		return
	}

	level := emphasis.Level
	if level > 2 {
		level = 2
	}
	kind, _ := mdast.EmphasisKind(level)
	node := parent.AppendChild(mdast.NewNode(kind))
	if depth, err := safecast.Conv[uint8](level); err == nil {
		node.Depth = depth
	}
	m.mapChildren(emphasis, node)
}

// mapLink builds Link/Image{Title, Url}. goldmark keeps the destination as
// bytes, so its span is located in the source after the link text.
func (m *mapper) mapLink(gmNode ast.Node, destination []byte, kind mdast.NodeKind, parent *mdast.Node) {
	node := parent.AppendChild(mdast.NewNode(kind))
	title := node.AppendChild(mdast.NewNode(mdast.NodeTitle))
	m.mapChildren(gmNode, title)

	node.AppendChild(mdast.NewTextNode(mdast.NodeURL, m.locate(destination, lastSpanEnd(title))))
}

func (m *mapper) mapAutoLink(al *ast.AutoLink, parent *mdast.Node) {
	span := m.locate(al.URL(m.content), lastSpanEnd(parent))

	node := parent.AppendChild(mdast.NewNode(mdast.NodeLink))
	title := node.AppendChild(mdast.NewNode(mdast.NodeTitle))
	title.AppendChild(mdast.NewTextNode(mdast.NodeInnerText, span))
	node.AppendChild(mdast.NewTextNode(mdast.NodeURL, span))
}

// mapTableRow flattens a table row into a paragraph, one cell per line.
func (m *mapper) mapTableRow(row ast.Node, parent *mdast.Node) {
	para := parent.AppendChild(mdast.NewNode(mdast.NodeParagraph))
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if cell != row.FirstChild() {
			para.AppendChild(mdast.NewNode(mdast.NodeLinebreak))
		}
		m.mapChildren(cell, para)
	}
}

// locate finds needle in the source at or after from, falling back to the
// whole source. A missing needle yields an empty span at from.
func (m *mapper) locate(needle []byte, from int) mdast.Span {
	if len(needle) == 0 || from > len(m.content) {
		return mdast.Span{Offset: min(from, len(m.content))}
	}
	if idx := bytes.Index(m.content[from:], needle); idx >= 0 {
		return mdast.Span{Offset: from + idx, Length: len(needle)}
	}
	if idx := bytes.Index(m.content, needle); idx >= 0 {
		return mdast.Span{Offset: idx, Length: len(needle)}
	}
	return mdast.Span{Offset: from}
}

// lastSpanEnd returns the end offset of the last text span below n, or 0.
func lastSpanEnd(n *mdast.Node) int {
	end := 0
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	mdast.Walk(n, func(node *mdast.Node) error {
		if node.HasText && node.Text.End() > end {
			end = node.Text.End()
		}
		return nil
	})
	return end
}
