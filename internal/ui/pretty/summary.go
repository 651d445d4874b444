package pretty

import (
	"slices"
	"strings"
	"unicode/utf16"

	"github.com/dustin/go-humanize/english"

	"github.com/yaklabco/drafty/pkg/drafty"
)

// FormatSummaryOneLine describes a document in a single line.
// Example: "24 chars, 3 styles, 2 entities (LN, MN)".
func (s *Styles) FormatSummaryOneLine(doc *drafty.Document) string {
	length := 0
	if doc != nil {
		length = len(utf16.Encode([]rune(doc.Txt)))
	}
	chars := english.Plural(length, "char", "")

	if doc.IsPlain() {
		return chars + ", " + s.Dim.Render("plain text") + "\n"
	}

	parts := []string{
		chars,
		english.Plural(len(doc.Fmt), "style", ""),
		english.Plural(len(doc.Ent), "entity", "entities"),
	}

	var kinds []string
	for _, ent := range doc.Ent {
		if !slices.Contains(kinds, string(ent.Tp)) {
			kinds = append(kinds, string(ent.Tp))
		}
	}
	line := strings.Join(parts, ", ")
	if len(kinds) > 0 {
		line += " (" + s.TableKey.Render(strings.Join(kinds, ", ")) + ")"
	}
	return line + "\n"
}
