package reporter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/mdlite/internal/ui/pretty"
	"github.com/yaklabco/mdlite/pkg/config"
	"github.com/yaklabco/mdlite/pkg/mdast"
)

// defaultTextWidth caps quoted source text in text dumps, in cells.
const defaultTextWidth = 48

// DumpOptions configures token and tree dumps.
type DumpOptions struct {
	// Engine names the parser that built the document.
	Engine string

	// Color controls colorized text dumps ("auto", "always", "never").
	Color string

	// TextWidth caps quoted text in text dumps. Zero means 48 cells;
	// negative disables truncation.
	TextWidth int

	// Compact disables JSON indentation.
	Compact bool
}

// TokenRecord is one token of a dump. Line and Column are 1-based.
type TokenRecord struct {
	Index  int    `json:"index"`
	Kind   string `json:"kind"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Text   string `json:"text"`
}

// TokenDump is the JSON and msgpack form of a token sequence.
type TokenDump struct {
	Path   string        `json:"path"`
	Engine string        `json:"engine,omitempty"`
	Tokens []TokenRecord `json:"tokens"`
}

// TreeNode is one node of a tree dump.
type TreeNode struct {
	Kind     string      `json:"kind"`
	Depth    int         `json:"depth,omitempty"`
	Text     *string     `json:"text,omitempty"`
	Line     int         `json:"line,omitempty"`
	Column   int         `json:"column,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// TreeDump is the JSON and msgpack form of a document tree.
type TreeDump struct {
	Path   string    `json:"path"`
	Engine string    `json:"engine,omitempty"`
	Nodes  int       `json:"nodes"`
	Root   *TreeNode `json:"root"`
}

// BuildTokenDump collects the tokens of doc with their positions.
func BuildTokenDump(doc *mdast.Document, engine string) *TokenDump {
	dump := &TokenDump{
		Path:   doc.Path,
		Engine: engine,
		Tokens: make([]TokenRecord, 0, len(doc.Tokens)),
	}
	for i, tok := range doc.Tokens {
		line, col := doc.LineAt(tok.Span.Offset)
		dump.Tokens = append(dump.Tokens, TokenRecord{
			Index:  i,
			Kind:   tok.Kind.String(),
			Offset: tok.Span.Offset,
			Length: tok.Span.Length,
			Line:   line,
			Column: col,
			Text:   string(doc.TokenText(tok)),
		})
	}
	return dump
}

// BuildTreeDump converts the tree of doc into its dump form.
func BuildTreeDump(doc *mdast.Document, engine string) *TreeDump {
	dump := &TreeDump{
		Path:   doc.Path,
		Engine: engine,
		Nodes:  mdast.CountNodes(doc.Root),
	}

	// open[d] is the dump node entered most recently at depth d.
	var open []*TreeNode
	_ = mdast.WalkWithContext(doc.Root, func(n *mdast.Node, depth int) error {
		node := treeNode(doc, n)
		open = append(open[:depth], node)
		if depth == 0 {
			dump.Root = node
		} else {
			parent := open[depth-1]
			parent.Children = append(parent.Children, node)
		}
		return nil
	}, nil)

	return dump
}

func treeNode(doc *mdast.Document, n *mdast.Node) *TreeNode {
	node := &TreeNode{Kind: n.Kind.String(), Depth: int(n.Depth)}
	if n.HasText {
		text := string(doc.Text(n))
		node.Text = &text
		node.Line, node.Column = doc.LineAt(n.Text.Offset)
	}
	return node
}

// EncodeTokens writes the token sequence of doc in the given format.
func EncodeTokens(w io.Writer, doc *mdast.Document, format config.DumpFormat, opts DumpOptions) error {
	dump := BuildTokenDump(doc, opts.Engine)
	if format == config.DumpText {
		return writeBuffered(w, func(bw *bufio.Writer) {
			writeTokenText(bw, dump, dumpStyles(opts, w), textWidth(opts))
		})
	}
	return encodeStructured(w, dump, format, opts)
}

// EncodeTree writes the tree of doc in the given format.
func EncodeTree(w io.Writer, doc *mdast.Document, format config.DumpFormat, opts DumpOptions) error {
	dump := BuildTreeDump(doc, opts.Engine)
	if format == config.DumpText {
		return writeBuffered(w, func(bw *bufio.Writer) {
			writeTreeText(bw, dump.Root, 0, dumpStyles(opts, w), textWidth(opts))
		})
	}
	return encodeStructured(w, dump, format, opts)
}

func encodeStructured(w io.Writer, v any, format config.DumpFormat, opts DumpOptions) error {
	switch format {
	case config.DumpJSON:
		encoder := json.NewEncoder(w)
		if !opts.Compact {
			encoder.SetIndent("", "  ")
		}
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	case config.DumpMsgpack:
		encoder := msgpack.NewEncoder(w)
		encoder.SetCustomStructTag("json")
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encode msgpack: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported dump format: %s", format)
	}
}

func writeBuffered(w io.Writer, fill func(bw *bufio.Writer)) error {
	bw := bufio.NewWriterSize(w, bufWriterSize)
	fill(bw)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	return nil
}

func dumpStyles(opts DumpOptions, w io.Writer) *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(opts.Color, w))
}

func textWidth(opts DumpOptions) int {
	if opts.TextWidth == 0 {
		return defaultTextWidth
	}
	return opts.TextWidth
}

// quote renders text as a Go string literal cut to width cells.
func quote(text string, width int) string {
	quoted := strconv.Quote(text)
	if width < 0 || runewidth.StringWidth(quoted) <= width {
		return quoted
	}
	return runewidth.Truncate(quoted, width, "…")
}

// writeTokenText writes one token per line:
//
//	  0  Header      1:1  "#"
//	  1  Whitespace  1:2  " "
func writeTokenText(bw *bufio.Writer, dump *TokenDump, styles *pretty.Styles, width int) {
	indexWidth := len(strconv.Itoa(max(len(dump.Tokens)-1, 0)))
	kindWidth, locWidth := 0, 0
	locs := make([]string, len(dump.Tokens))
	for i, tok := range dump.Tokens {
		kindWidth = max(kindWidth, runewidth.StringWidth(tok.Kind))
		locs[i] = fmt.Sprintf("%d:%d", tok.Line, tok.Column)
		locWidth = max(locWidth, len(locs[i]))
	}

	for i, tok := range dump.Tokens {
		fmt.Fprintf(bw, "%s  %s  %s  %s\n",
			runewidth.FillLeft(strconv.Itoa(tok.Index), indexWidth),
			styles.TokenKind.Render(runewidth.FillRight(tok.Kind, kindWidth)),
			styles.Location.Render(runewidth.FillRight(locs[i], locWidth)),
			styles.Literal.Render(quote(tok.Text, width)),
		)
	}
}

// writeTreeText writes the tree indented two spaces per level:
//
//	Root
//	  Header depth=1
//	    InnerText "Title"  1:3
func writeTreeText(bw *bufio.Writer, node *TreeNode, level int, styles *pretty.Styles, width int) {
	if node == nil {
		return
	}

	var line strings.Builder
	line.WriteString(strings.Repeat("  ", level))
	line.WriteString(styles.NodeKind.Render(node.Kind))
	if node.Depth > 0 {
		line.WriteString(styles.Dim.Render(fmt.Sprintf(" depth=%d", node.Depth)))
	}
	if node.Text != nil {
		line.WriteString(" " + styles.Literal.Render(quote(*node.Text, width)))
		line.WriteString("  " + styles.Location.Render(fmt.Sprintf("%d:%d", node.Line, node.Column)))
	}
	fmt.Fprintln(bw, line.String())

	for _, child := range node.Children {
		writeTreeText(bw, child, level+1, styles, width)
	}
}
