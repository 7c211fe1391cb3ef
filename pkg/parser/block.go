package parser

import (
	"fortio.org/safecast"

	"github.com/yaklabco/mdlite/pkg/mdast"
)

const maxHeaderLevel = 6

// parseBlock dispatches on the token at the cursor. Speculative forms are
// checked with pure lookahead first; when a check fails nothing has been
// attached and the tokens are parsed as a paragraph instead.
func (b *treeBuilder) parseBlock(parent *mdast.Node) {
	switch b.kindAt(b.pos) {
	case mdast.TokLinebreak, mdast.TokWhitespace, mdast.TokEOF:
		b.pos++
		return

	case mdast.TokHeader:
		if b.isHeader(b.pos) {
			b.parseHeader(parent)
			return
		}

	case mdast.TokList:
		if b.isListItem(b.pos, mdast.TokList) {
			b.parseList(parent, mdast.NodeUnorderedList, mdast.TokList)
			return
		}

	case mdast.TokNumerical:
		if b.isListItem(b.pos, mdast.TokNumerical) {
			b.parseList(parent, mdast.NodeOrderedList, mdast.TokNumerical)
			return
		}

	case mdast.TokBlockquote:
		if b.isQuoteLine(b.pos) {
			b.parseBlockquote(parent)
			return
		}
	}

	para := parent.AppendChild(mdast.NewNode(mdast.NodeParagraph))
	b.parseInline(para, len(b.toks), modeParagraph)
}

// isHeader reports whether token i opens a header: a run of 1-6 '#'
// followed by whitespace.
func (b *treeBuilder) isHeader(i int) bool {
	n := b.lenAt(i)
	return b.kindAt(i) == mdast.TokHeader &&
		n >= 1 && n <= maxHeaderLevel &&
		b.kindAt(i+1) == mdast.TokWhitespace
}

func (b *treeBuilder) parseHeader(parent *mdast.Node) {
	header := parent.AppendChild(mdast.NewNode(mdast.NodeHeader))
	if depth, err := safecast.Conv[uint8](b.lenAt(b.pos)); err == nil {
		header.Depth = depth
	}

	b.pos += 2
	b.parseInline(header, len(b.toks), modeLine)
}

// isListItem reports whether token i starts a list item of the given marker
// kind: a valid marker, whitespace, then content on the same line.
func (b *treeBuilder) isListItem(i int, marker mdast.TokenKind) bool {
	if b.kindAt(i) != marker || b.kindAt(i+1) != mdast.TokWhitespace {
		return false
	}

	switch marker {
	case mdast.TokList:
		if b.lenAt(i) != 1 {
			return false
		}
	case mdast.TokNumerical:
		if !isOrdinal(b.textAt(i)) {
			return false
		}
	default:
		return false
	}

	next := b.kindAt(i + 2)
	return next != mdast.TokLinebreak && next != mdast.TokEOF
}

// isOrdinal reports whether text is one or more digits followed by a
// single '.'.
func isOrdinal(text []byte) bool {
	if len(text) < 2 || text[len(text)-1] != '.' {
		return false
	}
	for _, c := range text[:len(text)-1] {
		if !isDigit(c) {
			return false
		}
	}
	return true
}

// parseList builds a list whose items are one line each. The list continues
// while a single linebreak is followed by another valid item.
func (b *treeBuilder) parseList(parent *mdast.Node, kind mdast.NodeKind, marker mdast.TokenKind) {
	list := parent.AppendChild(mdast.NewNode(kind))

	for {
		b.pos += 2
		item := list.AppendChild(mdast.NewNode(mdast.NodeListItem))
		b.parseInline(item, len(b.toks), modeLine)

		if !b.continuesWith(b.pos, func(i int) bool { return b.isListItem(i, marker) }) {
			return
		}
		b.pos++
	}
}

// isQuoteLine reports whether token i opens a blockquote line.
// Nested markers ('>>') are not blockquotes.
func (b *treeBuilder) isQuoteLine(i int) bool {
	return b.kindAt(i) == mdast.TokBlockquote && b.lenAt(i) == 1
}

// parseBlockquote joins consecutive quoted lines into one paragraph,
// separated by linebreak nodes.
func (b *treeBuilder) parseBlockquote(parent *mdast.Node) {
	quote := parent.AppendChild(mdast.NewNode(mdast.NodeBlockquote))
	para := quote.AppendChild(mdast.NewNode(mdast.NodeParagraph))

	for {
		b.pos++
		if b.kindAt(b.pos) == mdast.TokWhitespace {
			b.pos++
		}
		b.parseInline(para, len(b.toks), modeLine)

		if !b.continuesWith(b.pos, b.isQuoteLine) {
			return
		}
		para.AppendChild(mdast.NewNode(mdast.NodeLinebreak))
		b.pos++
	}
}

// continuesWith reports whether token i is a single linebreak followed by a
// line that satisfies starts.
func (b *treeBuilder) continuesWith(i int, starts func(int) bool) bool {
	return b.kindAt(i) == mdast.TokLinebreak && b.lenAt(i) == 1 && starts(i+1)
}
