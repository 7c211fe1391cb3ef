// Package goldmark provides an alternate engine that parses with the goldmark
// CommonMark library and maps its AST onto the mdast tree.
package goldmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdlite/pkg/mdast"
	native "github.com/yaklabco/mdlite/pkg/parser"
)

// EngineName identifies the goldmark engine in configuration.
const EngineName = "goldmark"

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser parses Markdown with goldmark.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Name returns the engine name.
func (p *Parser) Name() string {
	return EngineName
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts raw Markdown bytes into a fully-populated Document.
//
// The method:
//  1. Checks for context cancellation.
//  2. Builds a Document shell with path, content, and lines.
//  3. Parses content with goldmark.
//  4. Maps the goldmark AST onto an mdast tree of source spans.
//  5. Tokenizes the content with the native tokenizer, so token dumps work
//     the same for both engines.
//
// Returns nil and an error if parsing fails or context is cancelled.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc := mdast.NewDocument(path, copyContent(content))

	reader := text.NewReader(doc.Source)
	gmDoc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc.Root = newMapper(doc.Source).mapDocument(gmDoc)
	doc.Tokens = native.Tokenize(doc.Source)

	if !mdast.ValidateTokens(doc.Tokens, doc.Source) {
		return nil, errors.New("invalid token stream: tokens do not cover content")
	}

	return doc, nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
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
