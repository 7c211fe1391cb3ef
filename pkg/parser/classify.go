package parser

import "github.com/yaklabco/mdlite/pkg/mdast"

// state is the context a byte is classified against. It is threaded through
// the tokenizer explicitly and only changes between classifications.
type state struct {
	// prev is the kind of the last completed run (TokNone at document start).
	prev mdast.TokenKind

	// open is the kind of the most recent bracket or paren that is still
	// relevant for pairing ')' with '('.
	open mdast.TokenKind

	// line and col are 1-based; col counts bytes.
	line int
	col  int
}

func newState() state {
	return state{
		prev: mdast.TokNone,
		open: mdast.TokNone,
		line: 1,
		col:  1,
	}
}

// afterLinebreak reports whether the previous run ended a line or the
// document has just started.
func (s state) afterLinebreak() bool {
	return s.prev == mdast.TokLinebreak || s.prev == mdast.TokNone
}

// atLineStart is afterLinebreak relaxed to any byte in the first column.
func (s state) atLineStart() bool {
	return s.afterLinebreak() || s.col <= 1
}

// advance returns the state after consuming byte c classified as kind.
func (s state) advance(c byte, kind mdast.TokenKind) state {
	switch kind {
	case mdast.TokBracketOpen, mdast.TokBracketClose, mdast.TokParenOpen:
		s.open = kind
	case mdast.TokParenClose:
		s.open = mdast.TokNone
	}

	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	return s
}

// classify returns the kind of the byte at src[pos] under state s.
// Tabs classify as TokNone: they belong to no run.
func classify(src []byte, pos int, s state) mdast.TokenKind {
	c := src[pos]

	switch {
	case c == '\n':
		return mdast.TokLinebreak
	case c == '\t':
		return mdast.TokNone
	case c == '#':
		if s.atLineStart() {
			return mdast.TokHeader
		}
	case c == '-' || c == '+':
		if s.afterLinebreak() {
			return mdast.TokList
		}
	case c == '*' || c == '_':
		return mdast.TokEmphasis
	case c == '[':
		return mdast.TokBracketOpen
	case c == ']':
		return mdast.TokBracketClose
	case c == '(':
		if s.prev == mdast.TokBracketClose {
			return mdast.TokParenOpen
		}
	case c == ')':
		if s.open == mdast.TokParenOpen {
			return mdast.TokParenClose
		}
	case c == '!':
		if pos+1 < len(src) && src[pos+1] == '[' {
			return mdast.TokExclamation
		}
	case c == '>':
		if s.atLineStart() {
			return mdast.TokBlockquote
		}
	case c == ' ':
		if s.prev != mdast.TokText {
			return mdast.TokWhitespace
		}
	case isDigit(c) || c == '.':
		if s.afterLinebreak() {
			return mdast.TokNumerical
		}
	}

	return mdast.TokText
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
