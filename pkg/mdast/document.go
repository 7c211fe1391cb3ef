// Package mdast provides the core data model of mdlite.
// It defines the token stream, the document tree and the Document that ties
// both to the immutable source buffer they borrow from:
//   - Token: a classified (kind, span) run of source bytes
//   - Node: a tree node whose text is a span, never a copy
//   - Document: source, line index, tokens and tree with one shared lifetime
package mdast

import "bytes"

// Document is an immutable view of one converted source.
// It holds the buffer that every Token and Node span refers to, so the
// tree can never outlive the bytes it points into.
type Document struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Source is the full input. It must not be mutated after creation.
	Source []byte

	// LineStarts holds the byte offset at which each line begins.
	LineStarts []int

	// Tokens is the token stream (empty for engines that do not tokenize).
	Tokens []Token

	// Root is the tree root (NodeRoot).
	Root *Node
}

// NewDocument creates a Document shell for content with its line index
// built. Tokens and Root are filled in by a parser.
func NewDocument(path string, content []byte) *Document {
	return &Document{
		Path:       path,
		Source:     content,
		LineStarts: LineStarts(content),
	}
}

// Text returns the source bytes of a node's text span, or nil when the node
// carries no text.
func (d *Document) Text(n *Node) []byte {
	if n == nil || !n.HasText {
		return nil
	}
	return n.Text.Bytes(d.Source)
}

// PlainText concatenates the text of every InnerText node below n, in
// document order.
func (d *Document) PlainText(n *Node) string {
	var buf bytes.Buffer

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(n, func(node *Node) error {
		if node.Kind == NodeInnerText {
			buf.Write(d.Text(node))
		}
		return nil
	})

	return buf.String()
}

// TokenText returns the source text of a token.
func (d *Document) TokenText(tok Token) []byte {
	return tok.Text(d.Source)
}
