package drafty

import "strings"

// Parse converts source text with markup into a document.
//
// Markup never crosses a line break. Lines are parsed one at a time and joined with a
// single space covered by a BR style. Links, mentions and hashtags are detected in the
// text after markup removal and stored as entities; repeated values share one entity.
func Parse(content string) *Document {
	if content == "" {
		return &Document{}
	}
	content = normalize(content)

	var (
		blocks   []block
		ents     []Entity
		entIndex = make(map[string]int)
	)
	for _, line := range splitLines(content) {
		blk := parseLine([]rune(line))

		for _, ex := range extractEntities(blk.txt) {
			idx, ok := entIndex[ex.value]
			if !ok {
				idx = len(ents)
				entIndex[ex.value] = idx
				ents = append(ents, Entity{Tp: ex.tp, Data: ex.data})
			}
			blk.fmt = append(blk.fmt, Style{At: ex.at, Len: ex.length, Key: idx})
		}

		blocks = append(blocks, blk)
	}

	doc := &Document{Ent: ents}
	var (
		txt    strings.Builder
		length int
	)
	for i, blk := range blocks {
		if i > 0 {
			doc.Fmt = append(doc.Fmt, Style{Tp: TagLineBreak, At: length, Len: 1})
			txt.WriteByte(' ')
			length++
		}
		for _, s := range blk.fmt {
			s.At += length
			doc.Fmt = append(doc.Fmt, s)
		}
		txt.WriteString(blk.txt)
		length += utf16Len(blk.txt)
	}
	doc.Txt = txt.String()
	return doc
}

// parseLine removes inline markup from a single line.
func parseLine(line []rune) block {
	spans := scanLine(line)
	if len(spans) == 0 {
		return block{txt: string(line)}
	}
	sortSpans(spans)
	return draftify(chunkify(line, 0, len(line), spanTree(spans)), 0)
}

// splitLines breaks content on \n or \r\n. Trailing empty lines are dropped.
func splitLines(content string) []string {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
