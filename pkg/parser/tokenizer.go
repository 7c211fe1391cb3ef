package parser

import (
	"errors"

	"github.com/yaklabco/mdlite/pkg/mdast"
)

// ErrTokenLimit is returned when a configured token ceiling is reached.
var ErrTokenLimit = errors.New("token limit exceeded")

// Tokenizer scans a source buffer once, left to right, and appends one
// token per successful Advance call.
type Tokenizer struct {
	src []byte
	pos int
	st  state

	// pending is the run being extended; Kind is TokNone when there is none.
	pending mdast.Token

	tokens    []mdast.Token
	maxTokens int
	done      bool
	err       error
}

// NewTokenizer creates a tokenizer over src. src must not be modified while
// the tokenizer or any token it produced is in use.
func NewTokenizer(src []byte, opts ...Option) *Tokenizer {
	o := buildOptions(opts)

	capHint := len(src)/4 + 1
	if o.maxTokens > 0 && capHint > o.maxTokens {
		capHint = o.maxTokens
	}

	return &Tokenizer{
		src:       src,
		st:        newState(),
		pending:   mdast.Token{Kind: mdast.TokNone},
		tokens:    make([]mdast.Token, 0, capHint),
		maxTokens: o.maxTokens,
	}
}

// Advance produces the next token. It returns false once the EOF token has
// been appended, or after an error (see Err).
func (t *Tokenizer) Advance() bool {
	if t.done {
		return false
	}

	for t.pos < len(t.src) {
		c := t.src[t.pos]

		if c == '\t' {
			if t.pending.Kind != mdast.TokNone {
				return t.flush()
			}
			t.pos++
			t.st.col++
			continue
		}

		kind := classify(t.src, t.pos, t.st)
		if t.pending.Kind != mdast.TokNone && t.pending.Kind != kind {
			return t.flush()
		}

		if t.pending.Kind == mdast.TokNone {
			t.pending = mdast.Token{Kind: kind, Span: mdast.Span{Offset: t.pos}}
		}

		// Extend the run. t.st.prev still holds the kind from before this
		// segment, so every byte is judged by the same context.
		t.consume(kind)
		for t.pos < len(t.src) && classify(t.src, t.pos, t.st) == kind {
			t.consume(kind)
		}

		t.st.prev = kind
	}

	if t.pending.Kind != mdast.TokNone {
		return t.flush()
	}

	t.done = true
	return t.emit(mdast.Token{Kind: mdast.TokEOF, Span: mdast.Span{Offset: len(t.src)}})
}

// Tokens returns the tokens produced so far.
func (t *Tokenizer) Tokens() []mdast.Token {
	return t.tokens
}

// Err returns the error that stopped the tokenizer, if any.
func (t *Tokenizer) Err() error {
	return t.err
}

// Line returns the current 1-based line.
func (t *Tokenizer) Line() int {
	return t.st.line
}

// Column returns the current 1-based byte column.
func (t *Tokenizer) Column() int {
	return t.st.col
}

func (t *Tokenizer) consume(kind mdast.TokenKind) {
	t.st = t.st.advance(t.src[t.pos], kind)
	t.pos++
	t.pending.Span.Length++
}

func (t *Tokenizer) flush() bool {
	tok := t.pending
	t.pending = mdast.Token{Kind: mdast.TokNone}
	return t.emit(tok)
}

func (t *Tokenizer) emit(tok mdast.Token) bool {
	if t.maxTokens > 0 && len(t.tokens) >= t.maxTokens {
		t.err = ErrTokenLimit
		t.done = true
		return false
	}
	t.tokens = append(t.tokens, tok)
	return true
}

// Tokenize runs a tokenizer over src to completion and returns every token,
// ending with EOF.
func Tokenize(src []byte) []mdast.Token {
	tz := NewTokenizer(src)
	for tz.Advance() {
	}
	return tz.Tokens()
}
