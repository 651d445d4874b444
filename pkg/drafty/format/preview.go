package format

import (
	"errors"
	"math"
	"unicode/utf16"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/drafty/pkg/drafty"
)

// Ellipsis marks truncated output.
const Ellipsis = "…"

// ErrMaxLengthTooSmall is returned for a length limit that leaves no room for text
// next to the ellipsis.
var ErrMaxLengthTooSmall = errors.New("max length must be greater than 1")

// Result is the output of a length-limited formatter. When Truncated is set, Node holds
// the part that fit followed by Ellipsis.
type Result struct {
	Node      *Node
	Truncated bool
}

// Text returns the result without decorations.
func (r Result) Text() string {
	return r.Node.String()
}

// Preview renders a one-line summary of a document limited to a number of UTF-16
// units. Quoted blocks and hidden text are left out, media become an icon and a label.
type Preview struct {
	maxLength int
}

// NewPreview returns a preview formatter. A maxLength of zero or less means no limit.
func NewPreview(maxLength int) (*Preview, error) {
	if maxLength <= 0 {
		maxLength = math.MaxInt
	}
	if maxLength == 1 {
		return nil, ErrMaxLengthTooSmall
	}
	return &Preview{maxLength: maxLength}, nil
}

// Format renders doc.
func (p *Preview) Format(doc *drafty.Document) Result {
	return p.format(doc, p)
}

func (p *Preview) format(doc *drafty.Document, v Visitor) Result {
	if doc == nil {
		return Result{}
	}
	if doc.IsPlain() {
		text := doc.String()
		if len(utf16.Encode([]rune(text))) > p.maxLength-1 {
			return Result{Node: Join(Text(clipText(text, p.maxLength-1)), Text(Ellipsis)), Truncated: true}
		}
		return Result{Node: Text(text)}
	}
	return p.clip(Apply(doc, v))
}

// clip cuts n down to the length limit.
func (p *Preview) clip(n *Node) Result {
	if p.maxLength == math.MaxInt {
		return Result{Node: n}
	}
	part, exceeded := truncate(n, p.maxLength)
	if !exceeded {
		return Result{Node: n}
	}
	return Result{Node: Join(part, Text(Ellipsis)), Truncated: true}
}

// truncate keeps the part of n that fits into limit units. Once a leaf does not fit it
// is cut one unit short to leave room for the ellipsis and the rest of the tree is
// skipped. Styles of the enclosing nodes are kept on the part that fits.
func truncate(n *Node, limit int) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	if limit <= 0 {
		return nil, true
	}

	if len(n.Children) == 0 {
		if n.Length() <= limit {
			return n, false
		}
		text := clipText(n.Text, limit-1)
		if text == "" {
			return nil, true
		}
		return &Node{Style: n.Style, Attr: n.Attr, Text: text}, true
	}

	var kept []*Node
	used := 0
	for _, c := range n.Children {
		part, exceeded := truncate(c, limit-used)
		if part != nil {
			kept = append(kept, part)
			used += part.Length()
		}
		if exceeded {
			if len(kept) == 0 {
				return nil, true
			}
			return &Node{Style: n.Style, Attr: n.Attr, Children: kept}, true
		}
	}
	return n, false
}

// clipText returns the longest prefix of s not longer than limit UTF-16 units that
// does not split a grapheme cluster.
func clipText(s string, limit int) string {
	cut, units := 0, 0
	state := -1
	rest := s
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		n := len(utf16.Encode([]rune(cluster)))
		if units+n > limit {
			break
		}
		units += n
		cut += len(cluster)
	}
	return s[:cut]
}

// shortenMiddle replaces the middle of names longer than limit runes with an ellipsis,
// keeping head runes in front and tail runes at the end.
func shortenMiddle(name string, limit, head, tail int) string {
	runes := []rune(name)
	if len(runes) <= limit {
		return name
	}
	return string(runes[:head]) + Ellipsis + string(runes[len(runes)-tail:])
}

// annotated is an icon followed by a label.
func annotated(iconName, label string) *Node {
	return Join(icon(iconName), Text(" "+label))
}

func (p *Preview) Strong(content []*Node) *Node     { return Styled(StyleBold, nil, content...) }
func (p *Preview) Emphasized(content []*Node) *Node { return Styled(StyleItalic, nil, content...) }
func (p *Preview) Deleted(content []*Node) *Node    { return Styled(StyleStrike, nil, content...) }
func (p *Preview) Code(content []*Node) *Node       { return Styled(StyleMono, nil, content...) }
func (p *Preview) Hidden([]*Node) *Node             { return nil }
func (p *Preview) LineBreak() *Node                 { return Text(" ") }
func (p *Preview) Plain(content []*Node) *Node      { return Join(content...) }
func (p *Preview) Text(text string) *Node           { return Text(text) }

func (p *Preview) Link(content []*Node, data drafty.Data) *Node {
	return Styled(StyleLink, map[string]any{AttrURL: data.String("url")}, content...)
}

func (p *Preview) Mention(content []*Node, _ drafty.Data) *Node { return Join(content...) }
func (p *Preview) Hashtag(content []*Node, _ drafty.Data) *Node { return Join(content...) }

func (p *Preview) Audio([]*Node, drafty.Data) *Node { return annotated(IconAudio, "Voice message") }
func (p *Preview) Video([]*Node, drafty.Data) *Node { return annotated(IconVideo, "Video") }

func (p *Preview) Image(_ []*Node, data drafty.Data) *Node {
	if data == nil || drafty.IsFormResponseType(data["mime"]) {
		return nil
	}
	return annotated(IconImage, "Picture")
}

func (p *Preview) Attachment(data drafty.Data) *Node {
	if data != nil && drafty.IsFormResponseType(data["mime"]) {
		return nil
	}
	return annotated(IconFile, "Attachment")
}

func (p *Preview) Button(content []*Node, _ drafty.Data) *Node {
	return Styled(StyleButton, nil, content...)
}

func (p *Preview) FormRow(content []*Node, _ drafty.Data) *Node {
	return Join(Text(" "), Join(content...))
}

func (p *Preview) Form(content []*Node, _ drafty.Data) *Node {
	return Join(annotated(IconForm, "Form"), Text(": "), Join(content...))
}

func (p *Preview) Quote([]*Node, drafty.Data) *Node { return nil }

func (p *Preview) VideoCall(_ []*Node, data drafty.Data) *Node {
	if data != nil && data.Bool("incoming") {
		return annotated(IconCall, "Incoming call")
	}
	return annotated(IconCall, "Outgoing call")
}

func (p *Preview) Unknown([]*Node, drafty.Data) *Node {
	return annotated(IconUnknown, "Unsupported")
}
