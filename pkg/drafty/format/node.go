// Package format renders Drafty documents through tag visitors.
//
// A Visitor has one method per tag. Apply walks the document tree bottom up and calls
// the visitor for every node, handing it the already formatted children. The result
// is a tree of output nodes carrying symbolic styles; a Decorator supplied by the host
// turns those styles into concrete visuals.
package format

import (
	"strings"
	"unicode/utf16"
)

// Style is a symbolic decoration of an output node.
type Style string

// Output styles.
const (
	StyleNone      Style = ""
	StyleBold      Style = "bold"
	StyleItalic    Style = "italic"
	StyleStrike    Style = "strike"
	StyleMono      Style = "mono"
	StyleLink      Style = "link"
	StyleColor     Style = "color"
	StyleQuote     Style = "quote"
	StyleButton    Style = "button"
	StyleIcon      Style = "icon"
	StyleImage     Style = "image"
	StyleThumbnail Style = "thumbnail"
	StyleMuted     Style = "muted"
)

// Attribute keys set on output nodes.
const (
	AttrURL    = "url"
	AttrColor  = "color"
	AttrIcon   = "icon"
	AttrWidth  = "width"
	AttrHeight = "height"
	AttrName   = "name"
	AttrKind   = "kind"
)

// Node is formatted output: either a run of text or a list of children, with an
// optional style applied to the whole node.
type Node struct {
	Style    Style
	Attr     map[string]any
	Text     string
	Children []*Node
}

// Text returns an unstyled run of text.
func Text(text string) *Node {
	return &Node{Text: text}
}

// Join groups nodes without styling them. Nil nodes are skipped. It returns nil when
// nothing is left and the node itself when only one is left.
func Join(nodes ...*Node) *Node {
	var kept []*Node
	for _, n := range nodes {
		if n != nil {
			kept = append(kept, n)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return &Node{Children: kept}
}

// Styled wraps content in a style. It returns nil when there is no content.
func Styled(style Style, attr map[string]any, content ...*Node) *Node {
	inner := Join(content...)
	if inner == nil {
		return nil
	}
	if inner.Style == StyleNone && inner.Attr == nil {
		return &Node{Style: style, Attr: attr, Text: inner.Text, Children: inner.Children}
	}
	return &Node{Style: style, Attr: attr, Children: []*Node{inner}}
}

// icon returns a placeholder for an icon. The host decorator draws the icon itself.
func icon(name string) *Node {
	return &Node{Style: StyleIcon, Attr: map[string]any{AttrIcon: name}, Text: " "}
}

// Length returns the length of the node text in UTF-16 units.
func (n *Node) Length() int {
	if n == nil {
		return 0
	}
	if len(n.Children) == 0 {
		return len(utf16.Encode([]rune(n.Text)))
	}
	total := 0
	for _, c := range n.Children {
		total += c.Length()
	}
	return total
}

// String returns the node text without decorations.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	if len(n.Children) == 0 {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.String())
	}
	return b.String()
}

// Decorator turns a styled run into its visual form.
type Decorator interface {
	Decorate(style Style, attr map[string]any, text string) string
}

// PlainDecorator leaves text as it is.
type PlainDecorator struct{}

// Decorate returns text unchanged.
func (PlainDecorator) Decorate(_ Style, _ map[string]any, text string) string {
	return text
}

// Render decorates the node and its children with d, innermost first.
func (n *Node) Render(d Decorator) string {
	if n == nil {
		return ""
	}
	text := n.Text
	if len(n.Children) > 0 {
		var b strings.Builder
		for _, c := range n.Children {
			b.WriteString(c.Render(d))
		}
		text = b.String()
	}
	if n.Style == StyleNone {
		return text
	}
	return d.Decorate(n.Style, n.Attr, text)
}
