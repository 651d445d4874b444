package format

import (
	"strings"
	"unicode/utf16"

	"github.com/yaklabco/drafty/pkg/drafty"
)

// maxQuotedNameLength is the longest image name shown in a quote before it is shortened.
const maxQuotedNameLength = 16

const forwardMarker = "➦"

// DefaultPalette colors mentions when no palette is configured.
//
//nolint:gochecknoglobals // Read-only lookup table
var DefaultPalette = []string{
	"#C62828", "#AD1457", "#6A1B9A", "#4527A0",
	"#283593", "#1565C0", "#0277BD", "#00838F",
	"#00695C", "#2E7D32", "#558B2F", "#9E9D24",
	"#F9A825", "#FF8F00", "#EF6C00", "#D84315",
}

// Quote renders the content of a reply quote: a preview with line breaks kept, image
// thumbnails, colored mentions and muted text. Quotes inside quotes are left out.
type Quote struct {
	*Preview

	palette []string
}

// NewQuote returns a quote formatter limited to maxLength units. An empty palette
// uses DefaultPalette.
func NewQuote(maxLength int, palette []string) (*Quote, error) {
	p, err := NewPreview(maxLength)
	if err != nil {
		return nil, err
	}
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &Quote{Preview: p, palette: palette}, nil
}

// Format renders doc.
func (q *Quote) Format(doc *drafty.Document) Result {
	return q.format(doc, q)
}

func (q *Quote) LineBreak() *Node { return Text("\n") }

func (q *Quote) Mention(content []*Node, data drafty.Data) *Node {
	if strings.HasPrefix(Join(content...).String(), forwardMarker) {
		content = []*Node{Text(forwardMarker)}
	}
	return mention(content, data, q.palette)
}

// Image shows a thumbnail and the shortened file name.
func (q *Quote) Image(_ []*Node, data drafty.Data) *Node {
	if data == nil {
		return nil
	}

	name := data.String("name")
	if name == "" {
		name = "Picture"
	} else {
		name = shortenMiddle(name, maxQuotedNameLength, maxQuotedNameLength/2-1, maxQuotedNameLength/2-1)
	}

	var thumb *Node
	switch {
	case data["val"] != nil:
		thumb = &Node{Style: StyleThumbnail, Attr: map[string]any{AttrKind: IconImage}, Text: " "}
	case data.String("ref") != "":
		thumb = &Node{Style: StyleThumbnail, Attr: map[string]any{AttrKind: IconImage, AttrURL: data.String("ref")}, Text: " "}
	}
	return Join(thumb, Text(" "+name))
}

// Plain mutes runs of text.
func (q *Quote) Plain(content []*Node) *Node {
	if len(content) == 1 && content[0].Style == StyleNone && len(content[0].Children) == 0 {
		return Styled(StyleMuted, nil, content...)
	}
	return Join(content...)
}

// MentionColor picks the palette entry for a user id. Every client hashing the id the
// same way shows the user in the same color. It returns "" for an empty id or palette.
func MentionColor(uid string, palette []string) string {
	if uid == "" || len(palette) == 0 {
		return ""
	}
	h := int64(polyHash(uid))
	if h < 0 {
		h = -h
	}
	return palette[h%int64(len(palette))]
}

// polyHash is the 32-bit polynomial string hash s[0]*31^(n-1) + ... + s[n-1] over
// UTF-16 units.
func polyHash(s string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(u)
	}
	return h
}

func mention(content []*Node, data drafty.Data, palette []string) *Node {
	color := MentionColor(data.String("val"), palette)
	if color == "" {
		return Join(content...)
	}
	return Styled(StyleColor, map[string]any{AttrColor: color}, content...)
}
