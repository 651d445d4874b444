package drafty

import (
	"strings"
	"unicode"

	"github.com/samber/lo"
)

const (
	// maxPreviewDataSize is the longest string or byte value kept by light entities.
	maxPreviewDataSize = 64
	// maxPreviewAttachments is how many attachments a preview keeps.
	maxPreviewAttachments = 3
	// forwardMarker starts the mention that labels forwarded content.
	forwardMarker = "➦"
)

// dataFields lists the entity fields light entities may keep.
//
//nolint:gochecknoglobals // Read-only lookup table
var dataFields = []string{
	"act", "duration", "height", "incoming", "mime", "name", "premime", "preref", "preview", "ref",
	"size", "state", "title", "url", "val", "width",
}

// Transform applies tr to every node of the document tree and flattens the result.
func (d *Document) Transform(tr Transformer) *Document {
	return TopDown(d.Tree(), tr).Document()
}

// Shorten cuts the document to at most length UTF-16 units. Text is clipped on
// grapheme cluster boundaries. With light set, entity data is reduced to short
// known fields.
func (d *Document) Shorten(length int, light bool) *Document {
	tree := shortenTree(d.Tree(), length, "")
	if light {
		tree = lightEntity(tree)
	}
	return tree.Document()
}

// Preview returns a short single-line version of the document: attachments are moved
// to the end (at most three, form responses dropped), quotes and line breaks become
// spaces, a forwarded-from mention shrinks to its marker and entity data is lightened.
func (d *Document) Preview(length int) *Document {
	tree := d.Tree()
	tree = attachmentsToEnd(tree, maxPreviewAttachments)
	tree = TopDown(tree, func(node *Node) *Node {
		switch node.Tag {
		case TagMention:
			if isForwardMention(node) {
				node.Text = forwardMarker
				node.Children = nil
			}
		case TagQuote:
			node.Text = " "
			node.Children = nil
		case TagLineBreak:
			node.Text = " "
			node.Children = nil
			node.Tag = ""
		}
		return node
	})
	tree = shortenTree(tree, length, "")
	return lightEntity(tree).Document()
}

// ReplyContent returns the part of the document quoted in a reply: nested quotes are
// removed, line breaks become spaces, images and videos lose their out-of-band
// references and at most maxAttachments attachments are kept.
func (d *Document) ReplyContent(length, maxAttachments int) *Document {
	tree := TopDown(d.Tree(), func(node *Node) *Node {
		switch node.Tag {
		case TagQuote:
			return nil
		case TagMention:
			if isForwardMention(node) {
				node.Text = forwardMarker
				node.Children = nil
				node.Data = nil
			}
		case TagLineBreak:
			node.Text = " "
			node.Children = nil
			node.Tag = ""
		case TagImage, TagVideo:
			delete(node.Data, "ref")
			delete(node.Data, "preref")
		}
		return node
	})
	tree = attachmentsToEnd(tree, maxAttachments)
	tree = shortenTree(tree, length, "")
	tree = TopDown(tree, func(node *Node) *Node {
		var allow []string
		switch node.Tag {
		case TagImage:
			allow = []string{"val"}
		case TagVideo:
			allow = []string{"preview"}
		}
		node.Data = copyEntData(node.Data, maxPreviewDataSize, allow)
		return node
	})
	return tree.Document()
}

// ForwardedContent strips the leading forwarded-from mention and the whitespace
// after it.
func (d *Document) ForwardedContent() *Document {
	tree := TopDown(d.Tree(), func(node *Node) *Node {
		if node.Tag == TagMention && (node.parent == nil || node.parent.IsUnstyled()) {
			return nil
		}
		return node
	})
	if tree == nil {
		return &Document{}
	}
	tree.lTrim()
	return tree.Document()
}

func isForwardMention(node *Node) bool {
	return strings.HasPrefix(node.Text, forwardMarker) && (node.parent == nil || node.parent.IsUnstyled())
}

// lTrim removes a leading line break or leading whitespace.
func (n *Node) lTrim() {
	switch {
	case n.Tag == TagLineBreak:
		n.Text = ""
		n.Tag = ""
		n.Children = nil
		n.Data = nil
	case n.IsUnstyled():
		if len(n.Children) == 0 {
			n.Text = trimLeft(n.Text)
		} else {
			n.Children[0].lTrim()
		}
	}
}

// trimLeft drops leading whitespace but always keeps the last character.
func trimLeft(s string) string {
	runes := []rune(s)
	start := 0
	for start < len(runes)-1 && unicode.IsSpace(runes[start]) {
		start++
	}
	return string(runes[start:])
}

// shortenTree keeps at most length UTF-16 units of text, including tail. Once the
// budget is used up every following node is dropped.
func shortenTree(tree *Node, length int, tail string) *Node {
	if tail != "" {
		length -= utf16Len(tail)
	}
	limit := length
	return TopDown(tree, func(node *Node) *Node {
		if limit <= -1 {
			return nil
		}
		if node.Attachment {
			return node
		}
		if limit == 0 {
			limit = -1
			if tail == "" {
				return nil
			}
			node.Text = tail
			node.Children = nil
			return node
		}
		if len(node.Children) == 0 {
			n := utf16Len(node.Text)
			if n > limit {
				node.Text = clipUnits(node.Text, limit) + tail
				limit = -1
			} else {
				limit -= n
			}
		}
		return node
	})
}

// attachmentsToEnd turns up to maxCount attachments into single-space inline nodes placed
// after the rest of the content. Form responses are dropped.
func attachmentsToEnd(tree *Node, maxCount int) *Node {
	if tree == nil {
		return nil
	}
	if tree.Attachment {
		tree.Text = " "
		tree.Attachment = false
		tree.Children = nil
		return tree
	}
	if len(tree.Children) == 0 {
		return tree
	}

	var children, attachments []*Node
	for _, c := range tree.Children {
		if !c.Attachment {
			children = append(children, c)
			continue
		}
		if len(attachments) == maxCount || IsFormResponseType(c.Data["mime"]) {
			continue
		}
		c.Attachment = false
		c.Children = nil
		c.Text = " "
		attachments = append(attachments, c)
	}
	tree.Children = append(children, attachments...)
	return tree
}

// lightEntity reduces entity data to short values of known fields.
func lightEntity(tree *Node) *Node {
	return TopDown(tree, func(node *Node) *Node {
		node.Data = copyEntData(node.Data, maxPreviewDataSize, nil)
		return node
	})
}

// copyEntData copies known fields of data. Strings and byte slices longer than
// maxLength are dropped unless the field is in allow; numbers and booleans are kept.
// A maxLength of zero or less keeps every known field.
func copyEntData(data Data, maxLength int, allow []string) Data {
	if len(data) == 0 {
		return nil
	}

	out := Data{}
	for _, key := range dataFields {
		value, ok := data[key]
		if !ok || value == nil {
			continue
		}
		if maxLength <= 0 || lo.Contains(allow, key) {
			out[key] = value
			continue
		}
		switch v := value.(type) {
		case string:
			if utf16Len(v) <= maxLength {
				out[key] = v
			}
		case []byte:
			if len(v) <= maxLength {
				out[key] = v
			}
		case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			out[key] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
