package mdast

// NodeKind classifies a node of the document tree.
type NodeKind uint8

// Node kinds for block-level and inline-level elements.
const (
	NodeHeader NodeKind = iota
	NodeParagraph
	NodeItalic
	NodeBold
	NodeItalicBold
	NodeLinebreak
	NodeBlockquote
	NodeOrderedList
	NodeUnorderedList
	NodeListItem
	NodeLink
	NodeImage
	NodeURL
	NodeTitle
	NodeInnerText
	NodeRoot
)

//nolint:gochecknoglobals // Read-only lookup table.
var nodeKindNames = [...]string{
	NodeHeader:        "Header",
	NodeParagraph:     "Paragraph",
	NodeItalic:        "Italic",
	NodeBold:          "Bold",
	NodeItalicBold:    "ItalicBold",
	NodeLinebreak:     "Linebreak",
	NodeBlockquote:    "Blockquote",
	NodeOrderedList:   "OrderedList",
	NodeUnorderedList: "UnorderedList",
	NodeListItem:      "ListItem",
	NodeLink:          "Link",
	NodeImage:         "Image",
	NodeURL:           "Url",
	NodeTitle:         "Title",
	NodeInnerText:     "InnerText",
	NodeRoot:          "Root",
}

// String returns the name of the node kind.
func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

// EmphasisKind returns the emphasis node kind for a marker run of the given
// length, and false if the length has no emphasis meaning.
func EmphasisKind(depth int) (NodeKind, bool) {
	switch depth {
	case 1:
		return NodeItalic, true
	case 2:
		return NodeBold, true
	case 3:
		return NodeItalicBold, true
	default:
		return NodeRoot, false
	}
}

// Node is a single node of the document tree.
// A node exclusively owns its children; there is no sharing and no cycles.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Text is a borrowed view into the document source.
	// Only meaningful when HasText is true.
	Text    Span
	HasText bool

	// Depth is the heading level (1-6) for NodeHeader and the emphasis
	// strength (1-3) for the emphasis kinds. Zero otherwise.
	Depth uint8

	// Children are the ordered child nodes.
	Children []*Node
}

// NewNode creates a node of the specified kind with no text and no children.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewRoot creates a new document root node.
func NewRoot() *Node {
	return NewNode(NodeRoot)
}

// NewTextNode creates a node carrying a span of the source.
func NewTextNode(kind NodeKind, span Span) *Node {
	return &Node{Kind: kind, Text: span, HasText: true}
}

// AppendChild attaches child as the last child of n and returns child.
func (n *Node) AppendChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// IsEmphasis returns true for the italic, bold and italic-bold kinds.
func (n *Node) IsEmphasis() bool {
	return n.Kind == NodeItalic || n.Kind == NodeBold || n.Kind == NodeItalicBold
}
