// Package parser implements the native mdlite engine: a context-sensitive
// tokenizer with run coalescing, and a recursive-descent parser that turns
// the token sequence into an mdast tree.
package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdlite/pkg/mdast"
)

// EngineName identifies the native engine in configuration.
const EngineName = "native"

// Option configures a Parser or Tokenizer.
type Option func(*options)

type options struct {
	maxTokens int
}

// WithMaxTokens sets an explicit token ceiling. Zero means unbounded.
func WithMaxTokens(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxTokens = n
		}
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Parser converts raw Markdown bytes into an mdast.Document using the native
// tokenizer and tree builder.
type Parser struct {
	opts []Option
}

// New creates a native parser.
func New(opts ...Option) *Parser {
	return &Parser{opts: opts}
}

// Name returns the engine name.
func (p *Parser) Name() string {
	return EngineName
}

// Parse tokenizes and parses content into a fully-populated Document.
// The content is copied so the document owns its source buffer.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc := mdast.NewDocument(path, copyContent(content))

	tz := NewTokenizer(doc.Source, p.opts...)
	for tz.Advance() {
	}
	if err := tz.Err(); err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	doc.Tokens = tz.Tokens()

	if !mdast.ValidateTokens(doc.Tokens, doc.Source) {
		return nil, errors.New("invalid token stream: tokens do not cover content")
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc.Root = Parse(doc.Source, doc.Tokens)

	return doc, nil
}

// Parse builds the document tree for a token sequence over src.
// The cursor advances at least one token per block, so Parse always
// terminates, and it never fails: ambiguous markup degrades to text.
func Parse(src []byte, tokens []mdast.Token) *mdast.Node {
	b := &treeBuilder{src: src, toks: tokens}
	root := mdast.NewRoot()

	for b.pos < len(b.toks) {
		start := b.pos
		b.parseBlock(root)
		if b.pos <= start {
			b.pos = start + 1
		}
	}

	return root
}

// treeBuilder holds the cursor over the token sequence.
type treeBuilder struct {
	src  []byte
	toks []mdast.Token
	pos  int
}

// kindAt returns the kind of token i, treating anything past the end as EOF.
func (b *treeBuilder) kindAt(i int) mdast.TokenKind {
	if i < 0 || i >= len(b.toks) {
		return mdast.TokEOF
	}
	return b.toks[i].Kind
}

func (b *treeBuilder) lenAt(i int) int {
	if i < 0 || i >= len(b.toks) {
		return 0
	}
	return b.toks[i].Span.Length
}

func (b *treeBuilder) textAt(i int) []byte {
	if i < 0 || i >= len(b.toks) {
		return nil
	}
	return b.toks[i].Text(b.src)
}

// literal emits the token at the cursor as plain text and advances.
func (b *treeBuilder) literal(parent *mdast.Node) {
	parent.AppendChild(mdast.NewTextNode(mdast.NodeInnerText, b.toks[b.pos].Span))
	b.pos++
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
