package goldmark

import (
	"context"
	"testing"
	"unicode/utf16"
)

// FuzzParse fuzzes the importer with random input.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"# Heading",
		"## Heading 2",
		"- list\n- items",
		"1. ordered item",
		"> blockquote",
		"```\ncode\n```",
		"```go\nfunc main() {}\n```",
		"*emphasis* and **strong**",
		"`code`",
		"[link](url) and ![image](src)",
		"<https://example.com>",
		"~~gone~~",
		"- [x] done\n- [ ] todo",
		"| a | b |\n|---|---|\n| 1 | 2 |",
		"---",
		"\\*escaped\\*",
		"<div>html</div>",
		"line1\nline2",
		"line1\r\nline2",
		"# Title\n\nParagraph.\n\n- item\n\n> quote\n",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	p := New(FlavorGFM)
	f.Fuzz(func(t *testing.T, data []byte) {
		doc, err := p.Parse(context.Background(), data)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		length := len(utf16.Encode([]rune(doc.Txt)))
		for _, s := range doc.Fmt {
			if s.At < -1 || s.Len < 0 || s.At+s.Len > length {
				t.Errorf("style %v out of bounds for text of length %d", s, length)
			}
			if s.IsUnstyled() && (s.Key < 0 || s.Key >= len(doc.Ent)) {
				t.Errorf("style %v references missing entity", s)
			}
		}

		// The tree must be buildable from whatever was produced.
		_ = doc.Tree()
	})
}
