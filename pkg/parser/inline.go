package parser

import (
	"fortio.org/safecast"

	"github.com/yaklabco/mdlite/pkg/mdast"
)

type inlineMode uint8

const (
	// modeParagraph lets single linebreaks continue the block as soft breaks.
	modeParagraph inlineMode = iota

	// modeLine stops at any linebreak.
	modeLine
)

const maxEmphasisRun = 3

// parseInline appends inline children to parent from the cursor until a
// termination condition, the limit index or EOF. Stopping tokens are left
// unconsumed.
func (b *treeBuilder) parseInline(parent *mdast.Node, limit int, mode inlineMode) {
	for b.pos < limit {
		switch b.kindAt(b.pos) {
		case mdast.TokEOF:
			return

		case mdast.TokLinebreak:
			if mode == modeLine || !b.isSoftBreak(b.pos) {
				return
			}
			parent.AppendChild(mdast.NewNode(mdast.NodeLinebreak))
			b.pos++

		case mdast.TokEmphasis:
			b.parseEmphasis(parent, limit)

		case mdast.TokBracketOpen:
			if !b.parseLink(parent, limit, b.pos, mdast.NodeLink) {
				b.literal(parent)
			}

		case mdast.TokExclamation:
			if !b.parseLink(parent, limit, b.pos+1, mdast.NodeImage) {
				b.literal(parent)
			}

		default:
			b.literal(parent)
		}
	}
}

// isSoftBreak reports whether the linebreak at i stays inside the paragraph.
// Blank lines end it, and so does a single newline before a token that can
// open a block, or before the end of input.
func (b *treeBuilder) isSoftBreak(i int) bool {
	if b.lenAt(i) >= 2 {
		return false
	}

	switch b.kindAt(i + 1) {
	case mdast.TokHeader, mdast.TokEmphasis, mdast.TokList,
		mdast.TokNumerical, mdast.TokBlockquote, mdast.TokEOF:
		return false
	default:
		return true
	}
}

// parseEmphasis resolves the emphasis run at the cursor. A rejected run is
// kept as literal text and its interior is parsed normally afterwards.
func (b *treeBuilder) parseEmphasis(parent *mdast.Node, limit int) {
	open := b.pos

	closer, ok := b.matchEmphasis(open, limit)
	if !ok {
		b.literal(parent)
		return
	}

	n := b.lenAt(open)
	kind, _ := mdast.EmphasisKind(n)
	node := parent.AppendChild(mdast.NewNode(kind))
	if depth, err := safecast.Conv[uint8](n); err == nil {
		node.Depth = depth
	}

	b.pos = open + 1
	b.parseInline(node, closer, modeLine)
	b.pos = closer + 1
}

// matchEmphasis looks for the closer of the emphasis run at i without
// moving the cursor. The opener must be at most three markers long and be
// followed by text; the closer is the first run on the same line that
// mirrors the opener byte for byte ("*_" closes with "_*").
func (b *treeBuilder) matchEmphasis(i, limit int) (int, bool) {
	if b.lenAt(i) > maxEmphasisRun || b.kindAt(i+1) != mdast.TokText {
		return 0, false
	}

	opener := b.textAt(i)
	for j := i + 2; j < limit; j++ {
		switch b.kindAt(j) {
		case mdast.TokLinebreak, mdast.TokEOF:
			return 0, false
		case mdast.TokEmphasis:
			if mirrors(opener, b.textAt(j)) {
				return j, true
			}
		}
	}

	return 0, false
}

func mirrors(opener, closer []byte) bool {
	if len(opener) != len(closer) {
		return false
	}
	for k := range opener {
		if closer[k] != opener[len(opener)-1-k] {
			return false
		}
	}
	return true
}

// parseLink commits a [title](url) construct whose '[' is token at. kind is
// NodeLink, or NodeImage when the cursor is on the preceding '!'. It returns
// false, with nothing attached, when the construct does not match.
func (b *treeBuilder) parseLink(parent *mdast.Node, limit, at int, kind mdast.NodeKind) bool {
	closeBracket, closeParen, ok := b.matchLink(at, limit)
	if !ok {
		return false
	}

	node := parent.AppendChild(mdast.NewNode(kind))
	title := node.AppendChild(mdast.NewNode(mdast.NodeTitle))

	b.pos = at + 1
	b.parseInline(title, closeBracket, modeLine)

	urlStart := b.toks[closeBracket+1].Span.End()
	urlEnd := b.toks[closeParen].Span.Offset
	node.AppendChild(mdast.NewTextNode(mdast.NodeURL, mdast.Span{Offset: urlStart, Length: urlEnd - urlStart}))

	b.pos = closeParen + 1
	return true
}

// matchLink returns the indexes of the ']' and ')' that complete the link
// opened at i. All of it must sit on one line and before limit.
func (b *treeBuilder) matchLink(i, limit int) (int, int, bool) {
	if b.kindAt(i) != mdast.TokBracketOpen || b.lenAt(i) != 1 {
		return 0, 0, false
	}

	closeBracket := b.scanLine(i+1, limit, mdast.TokBracketClose)
	if closeBracket < 0 || b.lenAt(closeBracket) != 1 {
		return 0, 0, false
	}

	openParen := closeBracket + 1
	if b.kindAt(openParen) != mdast.TokParenOpen || b.lenAt(openParen) != 1 {
		return 0, 0, false
	}

	closeParen := b.scanLine(openParen+1, limit, mdast.TokParenClose)
	if closeParen < 0 {
		return 0, 0, false
	}

	return closeBracket, closeParen, true
}

// scanLine returns the index of the first token of kind want in [from,
// limit) before the end of the line, or -1.
func (b *treeBuilder) scanLine(from, limit int, want mdast.TokenKind) int {
	for j := from; j < limit; j++ {
		switch b.kindAt(j) {
		case want:
			return j
		case mdast.TokLinebreak, mdast.TokEOF:
			return -1
		}
	}
	return -1
}
