package mdast

// TokenKind classifies a run of source bytes.
type TokenKind uint8

// Token kinds produced by the tokenizer.
const (
	TokHeader       TokenKind = iota // '#' run at line start
	TokLinebreak                     // run of '\n'
	TokList                          // '-' or '+' at line start
	TokWhitespace                    // spaces not following text
	TokEmphasis                      // run of '*' / '_'
	TokParenOpen                     // '(' right after ']'
	TokParenClose                    // ')' closing an open '('
	TokBracketOpen                   // '['
	TokBracketClose                  // ']'
	TokExclamation                   // '!' before '['
	TokBackslash                     // reserved, never produced by the classifier
	TokNumerical                     // digits and '.' at line start
	TokBlockquote                    // '>' at line start
	TokText
	TokEOF

	// TokNone is the internal "no pending run" sentinel. It is never emitted.
	TokNone
)

//nolint:gochecknoglobals // Read-only lookup table.
var tokenKindNames = [...]string{
	TokHeader:       "Header",
	TokLinebreak:    "Linebreak",
	TokList:         "List",
	TokWhitespace:   "Whitespace",
	TokEmphasis:     "Emphasis",
	TokParenOpen:    "ParenOpen",
	TokParenClose:   "ParenClose",
	TokBracketOpen:  "BracketOpen",
	TokBracketClose: "BracketClose",
	TokExclamation:  "Exclamation",
	TokBackslash:    "Backslash",
	TokNumerical:    "Numerical",
	TokBlockquote:   "Blockquote",
	TokText:         "Text",
	TokEOF:          "EOF",
	TokNone:         "None",
}

// String returns the name of the token kind.
func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(?)"
}

// Span is a borrowed (offset, length) region of a source buffer.
// It never copies data.
type Span struct {
	Offset int
	Length int
}

// End returns the exclusive end offset of the span.
func (s Span) End() int {
	return s.Offset + s.Length
}

// IsEmpty returns true if the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Length == 0
}

// Bytes returns the bytes the span refers to, or nil if it is out of range.
func (s Span) Bytes(content []byte) []byte {
	if s.Offset < 0 || s.Length < 0 || s.End() > len(content) {
		return nil
	}
	return content[s.Offset:s.End()]
}

// Token is a classified run of bytes in the source buffer.
// Tokens are immutable once produced and only valid while the buffer is.
type Token struct {
	Kind TokenKind
	Span Span
}

// Text returns the source text of this token from the given content.
func (t Token) Text(content []byte) []byte {
	return t.Span.Bytes(content)
}

// ValidateTokens checks that a token stream is well formed for content:
// spans are in order and non-overlapping, every gap between them holds only
// tab bytes, and the stream ends with a single zero-length EOF token at
// len(content).
func ValidateTokens(tokens []Token, content []byte) bool {
	if len(tokens) == 0 {
		return false
	}

	last := tokens[len(tokens)-1]
	if last.Kind != TokEOF || last.Span.Offset != len(content) || !last.Span.IsEmpty() {
		return false
	}

	pos := 0
	for i, tok := range tokens {
		if tok.Kind == TokNone || (tok.Kind == TokEOF && i != len(tokens)-1) {
			return false
		}
		if tok.Span.Offset < pos || tok.Span.End() > len(content) {
			return false
		}
		for _, b := range content[pos:tok.Span.Offset] {
			if b != '\t' {
				return false
			}
		}
		pos = tok.Span.End()
	}

	return true
}
