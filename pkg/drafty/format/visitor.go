package format

import (
	"github.com/yaklabco/drafty/pkg/drafty"
)

// Visitor formats one node per call. content holds the already formatted children.
// A nil result suppresses the node.
type Visitor interface {
	Strong(content []*Node) *Node
	Emphasized(content []*Node) *Node
	Deleted(content []*Node) *Node
	Code(content []*Node) *Node
	Hidden(content []*Node) *Node
	LineBreak() *Node
	Link(content []*Node, data drafty.Data) *Node
	Mention(content []*Node, data drafty.Data) *Node
	Hashtag(content []*Node, data drafty.Data) *Node
	Audio(content []*Node, data drafty.Data) *Node
	Image(content []*Node, data drafty.Data) *Node
	Video(content []*Node, data drafty.Data) *Node
	// Attachment has no content: attachments cannot have sub-elements.
	Attachment(data drafty.Data) *Node
	Button(content []*Node, data drafty.Data) *Node
	FormRow(content []*Node, data drafty.Data) *Node
	Form(content []*Node, data drafty.Data) *Node
	Quote(content []*Node, data drafty.Data) *Node
	VideoCall(content []*Node, data drafty.Data) *Node
	Unknown(content []*Node, data drafty.Data) *Node
	// Plain formats unstyled content.
	Plain(content []*Node) *Node
	// Text wraps a run of plain text.
	Text(text string) *Node
}

// Scoper is implemented by visitors that hand some subtrees to another visitor.
// Scope receives the tags of the enclosing nodes, outermost first.
type Scoper interface {
	Scope(context []drafty.Tag) Visitor
}

// Dispatch calls the method of v matching tp.
func Dispatch(v Visitor, tp drafty.Tag, data drafty.Data, content []*Node) *Node {
	switch tp {
	case "":
		return v.Plain(content)
	case drafty.TagStrong:
		return v.Strong(content)
	case drafty.TagEmphasized:
		return v.Emphasized(content)
	case drafty.TagDeleted:
		return v.Deleted(content)
	case drafty.TagCode:
		return v.Code(content)
	case drafty.TagHidden:
		return v.Hidden(content)
	case drafty.TagLineBreak:
		return v.LineBreak()
	case drafty.TagLink:
		return v.Link(content, data)
	case drafty.TagMention:
		return v.Mention(content, data)
	case drafty.TagHashtag:
		return v.Hashtag(content, data)
	case drafty.TagAudio:
		return v.Audio(content, data)
	case drafty.TagImage:
		return v.Image(content, data)
	case drafty.TagVideo:
		return v.Video(content, data)
	case drafty.TagAttachment:
		return v.Attachment(data)
	case drafty.TagButton:
		return v.Button(content, data)
	case drafty.TagForm:
		return v.Form(content, data)
	case drafty.TagFormRow:
		return v.FormRow(content, data)
	case drafty.TagQuote:
		return v.Quote(content, data)
	case drafty.TagVideoCall:
		return v.VideoCall(content, data)
	default:
		return v.Unknown(content, data)
	}
}

// Apply formats doc with v in a single walk of the document tree. It returns nil when
// nothing is left to show.
func Apply(doc *drafty.Document, v Visitor) *Node {
	n, _ := drafty.Format[*Node](doc, walker{v: v})
	return n
}

// walker adapts a Visitor to the generic tree walk.
type walker struct {
	v Visitor
}

func (w walker) Text(text string) *Node {
	return w.v.Text(text)
}

func (w walker) Apply(tp drafty.Tag, data drafty.Data, content []*Node, context []drafty.Tag) (*Node, bool) {
	v := w.v
	if s, ok := v.(Scoper); ok {
		v = s.Scope(context)
	}
	n := Dispatch(v, tp, data, content)
	return n, n != nil
}
