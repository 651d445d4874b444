package format

import (
	"encoding/base64"
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/drafty/pkg/drafty"
)

const (
	// maxFileNameLength is the longest attachment name shown before it is shortened.
	maxFileNameLength = 18

	thinSpace = "\u2009"
)

// Icon names set in the AttrIcon attribute.
const (
	IconFile     = "file"
	IconImage    = "image"
	IconAudio    = "audio"
	IconVideo    = "video"
	IconCall     = "call"
	IconForm     = "form"
	IconUnknown  = "unknown"
	IconIncoming = "incoming"
	IconOutgoing = "outgoing"
	IconFailed   = "failed"
)

// Full renders every node of a document. It never truncates.
type Full struct {
	palette []string
	quote   *Quote
}

// NewFull returns a formatter coloring mentions from palette. An empty palette uses
// DefaultPalette.
func NewFull(palette []string) *Full {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &Full{palette: palette}
}

// WithQuote makes f render the content of quoted blocks with q.
func (f *Full) WithQuote(q *Quote) *Full {
	f.quote = q
	return f
}

// Format renders doc.
func (f *Full) Format(doc *drafty.Document) *Node {
	return Apply(doc, f)
}

// Scope hands nodes inside a quoted block to the quote formatter.
func (f *Full) Scope(context []drafty.Tag) Visitor {
	if f.quote != nil && slices.Contains(context, drafty.TagQuote) {
		return f.quote
	}
	return f
}

func (f *Full) Strong(content []*Node) *Node     { return Styled(StyleBold, nil, content...) }
func (f *Full) Emphasized(content []*Node) *Node { return Styled(StyleItalic, nil, content...) }
func (f *Full) Deleted(content []*Node) *Node    { return Styled(StyleStrike, nil, content...) }
func (f *Full) Code(content []*Node) *Node       { return Styled(StyleMono, nil, content...) }
func (f *Full) Hidden([]*Node) *Node             { return nil }
func (f *Full) LineBreak() *Node                 { return Text("\n") }
func (f *Full) Plain(content []*Node) *Node      { return Join(content...) }
func (f *Full) Text(text string) *Node           { return Text(text) }

func (f *Full) Link(content []*Node, data drafty.Data) *Node {
	return Styled(StyleLink, map[string]any{AttrURL: data.String("url")}, content...)
}

func (f *Full) Mention(content []*Node, data drafty.Data) *Node {
	return mention(content, data, f.palette)
}

func (f *Full) Hashtag(content []*Node, _ drafty.Data) *Node {
	return Join(content...)
}

func (f *Full) Audio(_ []*Node, data drafty.Data) *Node {
	if data == nil {
		return nil
	}
	label := "unavailable"
	if d := data.Int("duration"); d > 0 {
		label = millisToTime(d, false)
	}
	return Join(icon(IconAudio), Text(" "+label))
}

func (f *Full) Image(content []*Node, data drafty.Data) *Node {
	if data == nil {
		return nil
	}
	return Styled(StyleImage, mediaAttr(data, IconImage, "ref"), placeholder(content)...)
}

func (f *Full) Video(content []*Node, data drafty.Data) *Node {
	if data == nil {
		return nil
	}
	attr := mediaAttr(data, IconVideo, "preref")
	return Join(
		Styled(StyleImage, attr, placeholder(content)...),
		Text(" "+millisToTime(data.Int("duration"), false)),
	)
}

// Attachment shows a file icon, the shortened file name and the size when known.
// Form responses are not meant to be seen and render as nothing.
func (f *Full) Attachment(data drafty.Data) *Node {
	if data == nil || drafty.IsFormResponseType(data["mime"]) {
		return nil
	}

	name := data.String("name")
	if name == "" {
		name = "attachment"
	}
	nodes := []*Node{icon(IconFile), Styled(StyleMono, nil, Text(shortenMiddle(name, maxFileNameLength, maxFileNameLength/2-1, maxFileNameLength/2)))}

	if data.String("mime") == "" {
		if lang, _ := enry.GetLanguageByExtension(name); lang != "" {
			nodes = append(nodes, Styled(StyleMuted, nil, Text(" "+lang)))
		}
	}
	if size := attachmentSize(data); size > 0 {
		nodes = append(nodes, Styled(StyleMuted, nil, Text(thinSpace+"("+humanize.IBytes(uint64(size))+")")))
	}
	return Join(nodes...)
}

func (f *Full) Button(content []*Node, data drafty.Data) *Node {
	attr := map[string]any{}
	for _, k := range []string{"act", "name", "val", "ref"} {
		if v := data.String(k); v != "" {
			attr[k] = v
		}
	}
	btn := Styled(StyleButton, attr, content...)
	if btn == nil {
		return nil
	}
	return Join(btn, Text(thinSpace))
}

func (f *Full) FormRow(content []*Node, _ drafty.Data) *Node {
	return Join(content...)
}

// Form puts every form element on its own line.
func (f *Full) Form(content []*Node, _ drafty.Data) *Node {
	if len(content) == 0 {
		return nil
	}
	rows := make([]*Node, 0, 2*len(content))
	for _, c := range content {
		rows = append(rows, c, Text("\n"))
	}
	return Join(rows...)
}

func (f *Full) Quote(content []*Node, _ drafty.Data) *Node {
	inner := Join(content...)
	if f.quote != nil {
		inner = f.quote.clip(inner).Node
	}
	block := Styled(StyleQuote, nil, inner)
	if block == nil {
		return nil
	}
	return Join(block, Text("\n"))
}

// VideoCall shows the call direction on the first line and the duration or the
// final state of the call on the second.
func (f *Full) VideoCall(content []*Node, data drafty.Data) *Node {
	if data == nil {
		return f.Unknown(content, nil)
	}

	incoming := data.Bool("incoming")
	title := "Outgoing call"
	if incoming {
		title = "Incoming call"
	}

	state := data.String("state")
	failed := slices.Contains([]string{"busy", "declined", "disconnected", "missed"}, state)
	arrow := IconOutgoing
	switch {
	case failed:
		arrow = IconFailed
	case incoming:
		arrow = IconIncoming
	}

	status := CallStatus(incoming, state)
	if d := data.Int("duration"); d > 0 {
		status = millisToTime(d, false)
	}
	return Join(icon(IconCall), Text(title), Text("\n"), icon(arrow), Text(" "+status))
}

// Unknown renders an unsupported element as an attachment, or as a placeholder of the
// declared size when the element has dimensions.
func (f *Full) Unknown(content []*Node, data drafty.Data) *Node {
	if data == nil {
		label := Join(content...)
		if label == nil {
			label = Text("Unknown")
		}
		return Join(icon(IconUnknown), Text(" "), label)
	}
	if data.Int("width") <= 0 || data.Int("height") <= 0 {
		return f.Attachment(data)
	}
	return Styled(StyleImage, mediaAttr(data, IconUnknown, ""), placeholder(content)...)
}

// CallStatus describes the final state of a video call.
func CallStatus(incoming bool, state string) string {
	switch state {
	case "busy":
		return "Busy"
	case "declined":
		return "Declined"
	case "missed":
		if incoming {
			return "Missed call"
		}
		return "Cancelled call"
	case "started":
		return "Connecting…"
	case "accepted":
		return "In progress"
	default:
		return "Disconnected"
	}
}

func mediaAttr(data drafty.Data, kind, refKey string) map[string]any {
	attr := map[string]any{
		AttrKind:   kind,
		AttrWidth:  data.Int("width"),
		AttrHeight: data.Int("height"),
	}
	if name := data.String("name"); name != "" {
		attr[AttrName] = name
	}
	if refKey != "" {
		if ref := data.String(refKey); ref != "" {
			attr[AttrURL] = ref
		}
	}
	return attr
}

// placeholder keeps at least one character for media drawn by the host.
func placeholder(content []*Node) []*Node {
	if Join(content...) == nil {
		return []*Node{Text(" ")}
	}
	return content
}

// attachmentSize returns the declared size or the length of the inline bits.
func attachmentSize(data drafty.Data) int {
	if size := data.Int("size"); size > 0 {
		return size
	}
	switch v := data["val"].(type) {
	case []byte:
		return len(v)
	case string:
		bits, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return 0
		}
		return len(bits)
	}
	return 0
}

// millisToTime formats a duration as [h:]m:ss, or [h:]mm:ss with fixedMin.
func millisToTime(millis int, fixedMin bool) string {
	total := millis / 1000
	hours, mins, secs := total/3600, total/60%60, total%60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
	}
	if fixedMin {
		return fmt.Sprintf("%02d:%02d", mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}
