package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/yaklabco/drafty/pkg/drafty/format"
)

const (
	quoteBar       = "▌ "
	thumbnailGlyph = "▣"
)

// iconGlyphs maps formatter icon names to terminal glyphs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var iconGlyphs = map[string]string{
	format.IconFile:     "📎",
	format.IconImage:    "🖼",
	format.IconAudio:    "🎤",
	format.IconVideo:    "🎬",
	format.IconCall:     "📞",
	format.IconForm:     "📝",
	format.IconUnknown:  "❓",
	format.IconIncoming: "↙",
	format.IconOutgoing: "↗",
	format.IconFailed:   "✗",
}

// Decorator draws formatter output nodes on a terminal.
type Decorator struct {
	styles *Styles
}

// NewDecorator returns a decorator drawing with styles.
func NewDecorator(styles *Styles) *Decorator {
	return &Decorator{styles: styles}
}

// Decorate implements format.Decorator.
func (d *Decorator) Decorate(style format.Style, attr map[string]any, text string) string {
	s := d.styles
	switch style {
	case format.StyleBold:
		return s.Bold.Render(text)
	case format.StyleItalic:
		return s.Italic.Render(text)
	case format.StyleStrike:
		return s.Strike.Render(text)
	case format.StyleMono:
		return s.Mono.Render(text)
	case format.StyleLink:
		out := s.Link.Render(text)
		if url := attrString(attr, format.AttrURL); url != "" && url != text {
			out += s.Dim.Render(" <" + url + ">")
		}
		return out
	case format.StyleColor:
		return s.Colored(s.Mention, attrString(attr, format.AttrColor)).Render(text)
	case format.StyleQuote:
		return d.quote(text)
	case format.StyleButton:
		return s.Button.Render("[ " + text + " ]")
	case format.StyleIcon:
		if glyph, ok := iconGlyphs[attrString(attr, format.AttrIcon)]; ok {
			return glyph
		}
		return text
	case format.StyleImage:
		return s.Image.Render(imageLabel(attr, text))
	case format.StyleThumbnail:
		return s.Image.Render(thumbnailGlyph)
	case format.StyleMuted:
		return s.Muted.Render(text)
	default:
		return text
	}
}

// quote prefixes every line with a bar.
func (d *Decorator) quote(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = d.styles.Quote.Render(quoteBar) + line
	}
	return strings.Join(lines, "\n")
}

// imageLabel describes media the terminal cannot draw, e.g. "[image cat.jpg 640×480]".
func imageLabel(attr map[string]any, text string) string {
	kind := attrString(attr, format.AttrKind)
	if kind == "" {
		kind = format.IconImage
	}

	parts := []string{kind}
	label := strings.TrimSpace(text)
	if label == "" {
		label = attrString(attr, format.AttrName)
	}
	if label != "" {
		parts = append(parts, label)
	}

	width, _ := attr[format.AttrWidth].(int)
	height, _ := attr[format.AttrHeight].(int)
	if width > 0 && height > 0 {
		parts = append(parts, fmt.Sprintf("%d×%d", width, height))
	}

	return "[" + strings.Join(parts, " ") + "]"
}

func attrString(attr map[string]any, key string) string {
	s, _ := attr[key].(string)
	return s
}

// Wrap word-wraps rendered output to width cells, keeping ANSI sequences intact.
// A width of zero or less leaves text unchanged.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}
