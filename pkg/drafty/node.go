package drafty

import (
	"maps"
	"slices"
	"strings"
)

// Node is one scope of a document tree. A leaf carries Text; an inner node carries
// Children. Tag is empty for unstyled text.
type Node struct {
	Tag      Tag
	Data     Data
	Text     string
	Children []*Node

	// Attachment marks an entity that has no place in the text.
	Attachment bool

	parent *Node
	// key is the index of the source entity or -1 for inline styles and new nodes.
	key int
}

// NewText returns an unstyled leaf.
func NewText(text string) *Node {
	return &Node{Text: text, key: -1}
}

// NewStyled returns a node with the given tag and data wrapping children.
// Non-empty data or an entity tag makes the node an entity when converted back
// into a document.
func NewStyled(tp Tag, data Data, children ...*Node) *Node {
	n := &Node{Tag: tp, Data: data, key: -1}
	for _, c := range children {
		n.Append(c)
	}
	return n
}

// NewAttachment returns an out-of-band attachment node.
func NewAttachment(tp Tag, data Data) *Node {
	return &Node{Tag: tp, Data: data, Attachment: true, key: -1}
}

// Append adds a child. Text held by the node itself moves into a leading leaf.
func (n *Node) Append(child *Node) *Node {
	if child == nil {
		return n
	}
	if n.Text != "" {
		leaf := NewText(n.Text)
		leaf.parent = n
		n.Children = append(n.Children, leaf)
		n.Text = ""
	}
	child.parent = n
	n.Children = append(n.Children, child)
	return n
}

// Parent returns the enclosing node or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsUnstyled reports whether the node has no tag.
func (n *Node) IsUnstyled() bool {
	return n.Tag == ""
}

// Len returns the length of the text under the node in UTF-16 units.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	if len(n.Children) == 0 {
		return utf16Len(n.Text)
	}
	total := 0
	for _, c := range n.Children {
		total += c.Len()
	}
	return total
}

// PlainText returns the text under the node without markup.
func (n *Node) PlainText() string {
	if n == nil {
		return ""
	}
	if len(n.Children) == 0 {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.PlainText())
	}
	return b.String()
}

func (n *Node) putData(key string, value any) {
	n.Data = n.Data.put(key, value)
}

// treeSpan is a validated style range used while building the tree.
// Offsets are UTF-16 units.
type treeSpan struct {
	start int
	end   int
	tp    Tag
	data  Data
	key   int
	ref   bool
}

// Tree regroups the flat styles of the document into nested scopes.
//
// Invalid styles are dropped: negative lengths, dangling entity keys and ranges past
// the end of the text. Ranges sort by start, longer first, quotes outermost on ties.
// Partially overlapping ranges are dropped. Attachments go last. Entity references
// that resolve to an entity without a type become hidden text.
func (d *Document) Tree() *Node {
	if d == nil {
		return NewText("")
	}
	units := encodeUnits(d.Txt)

	styles := d.Fmt
	if len(styles) == 0 {
		if len(d.Ent) != 1 {
			return NewText(d.Txt)
		}
		styles = []Style{{}}
	}

	var spans, attachments []*treeSpan
	for _, s := range styles {
		if s.Len < 0 {
			continue
		}
		ref := s.IsUnstyled()
		if ref && (s.Key < 0 || s.Key >= len(d.Ent)) {
			continue
		}

		if s.At <= -1 {
			if ref {
				attachments = append(attachments, &treeSpan{start: -1, end: 0, key: s.Key, ref: true})
			}
			continue
		}
		if s.At > len(units) || s.Len > len(units)-s.At {
			continue
		}

		if ref {
			spans = append(spans, &treeSpan{start: s.At, end: s.At + s.Len, key: s.Key, ref: true})
		} else {
			spans = append(spans, &treeSpan{start: s.At, end: s.At + s.Len, tp: s.Tp, key: -1})
		}
	}

	slices.SortStableFunc(spans, func(a, b *treeSpan) int {
		if a.start != b.start {
			return a.start - b.start
		}
		if a.end != b.end {
			return b.end - a.end
		}
		return b.tp.weight() - a.tp.weight()
	})
	spans = append(spans, attachments...)

	for _, sp := range spans {
		if sp.ref {
			ent := d.Ent[sp.key]
			sp.tp = ent.Tp
			sp.data = maps.Clone(ent.Data)
		}
		if sp.tp == "" {
			sp.tp = TagHidden
		}
	}

	root := spansToTree(&Node{key: -1}, units, 0, len(units), spans)

	return TopDown(root, func(node *Node) *Node {
		if len(node.Children) == 1 && node.IsUnstyled() {
			child := node.Children[0]
			child.parent = node.parent
			node = child
		}
		if len(node.Children) == 1 && !node.IsUnstyled() {
			if child := node.Children[0]; child.IsUnstyled() && len(child.Children) == 0 {
				node.Text = child.Text
				node.Children = nil
			}
		}
		if node.Tag == TagButton {
			node.putData("title", node.Text)
		}
		return node
	})
}

func spansToTree(parent *Node, units []uint16, start, end int, spans []*treeSpan) *Node {
	end = min(end, len(units))

	if len(spans) == 0 {
		if start < end {
			parent.Append(NewText(sliceUnits(units, start, end)))
		}
		return parent
	}

	for i := 0; i < len(spans); i++ {
		sp := spans[i]

		if sp.start < 0 {
			parent.Append(&Node{Tag: sp.tp, Data: sp.data, key: sp.key, Attachment: true})
			continue
		}

		if start < sp.start {
			parent.Append(NewText(sliceUnits(units, start, sp.start)))
			start = sp.start
		}

		var inner []*treeSpan
		for i+1 < len(spans) {
			next := spans[i+1]
			if next.start < 0 || next.start >= sp.end {
				break
			}
			i++
			if next.end <= sp.end && (next.start < next.end || next.tp.Void()) {
				inner = append(inner, next)
			}
		}

		node := &Node{Tag: sp.tp, Data: sp.data, key: sp.key}
		parent.Append(spansToTree(node, units, start, sp.end, inner))

		start = sp.end
	}

	if start < end {
		parent.Append(NewText(sliceUnits(units, start, end)))
	}
	return parent
}

// Document flattens the tree back into a document. Entities shared by several nodes
// of the source document stay shared.
func (n *Node) Document() *Document {
	if n == nil {
		return &Document{}
	}
	var b docBuilder
	n.appendTo(&b)
	doc := &Document{Txt: b.txt.String(), Fmt: b.fmt}
	if len(b.fmt) > 0 {
		doc.Ent = b.ent
	}
	return doc
}

type docBuilder struct {
	txt    strings.Builder
	length int
	fmt    []Style
	ent    []Entity
	keymap map[int]int
}

func (b *docBuilder) entity(key int, ent Entity) int {
	if key >= 0 {
		if idx, ok := b.keymap[key]; ok {
			return idx
		}
	}
	idx := len(b.ent)
	b.ent = append(b.ent, ent)
	if key >= 0 {
		if b.keymap == nil {
			b.keymap = make(map[int]int)
		}
		b.keymap[key] = idx
	}
	return idx
}

func (n *Node) appendTo(b *docBuilder) {
	start := b.length
	if len(n.Children) == 0 {
		b.txt.WriteString(n.Text)
		b.length += utf16Len(n.Text)
	} else {
		for _, c := range n.Children {
			c.appendTo(b)
		}
	}

	if n.Tag == "" {
		return
	}
	length := b.length - start
	if n.key < 0 && len(n.Data) == 0 && !n.Tag.isEntity() {
		b.fmt = append(b.fmt, Style{Tp: n.Tag, At: start, Len: length})
		return
	}

	var data Data
	if len(n.Data) > 0 {
		data = n.Data
	}
	key := b.entity(n.key, Entity{Tp: n.Tag, Data: data})
	if n.Attachment {
		b.fmt = append(b.fmt, Style{At: -1, Key: key})
	} else {
		b.fmt = append(b.fmt, Style{At: start, Len: length, Key: key})
	}
}
