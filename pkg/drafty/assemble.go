package drafty

import "strings"

// chunk is a run of text with at most one style. Styled chunks either carry their
// text directly or nested chunks.
type chunk struct {
	tp       Tag
	text     string
	children []*chunk
}

// block is one assembled line: text with markup removed and its styles.
type block struct {
	txt string
	fmt []Style
}

// chunkify splits line[start:end] into plain and styled chunks following the span
// tree. Delimiter characters are skipped.
func chunkify(line []rune, start, end int, spans []*span) []*chunk {
	if len(spans) == 0 {
		return nil
	}

	var chunks []*chunk
	for _, sp := range spans {
		if sp.start > start {
			chunks = append(chunks, &chunk{text: string(line[start:sp.start])})
		}

		c := &chunk{tp: sp.tp}
		if children := chunkify(line, sp.start+1, sp.end, sp.children); children != nil {
			c.children = children
		} else {
			c.text = sp.text
		}
		chunks = append(chunks, c)

		start = sp.end + 1
	}

	if start < end {
		chunks = append(chunks, &chunk{text: string(line[start:end])})
	}
	return chunks
}

// draftify concatenates chunks into a block. Style offsets are UTF-16 units relative
// to the block start plus startAt. Nested styles are recorded before their parent.
func draftify(chunks []*chunk, startAt int) block {
	var (
		b      block
		txt    strings.Builder
		length int
	)
	for _, c := range chunks {
		text := c.text
		if c.children != nil {
			inner := draftify(c.children, length+startAt)
			text = inner.txt
			b.fmt = append(b.fmt, inner.fmt...)
		}

		n := utf16Len(text)
		if c.tp != "" {
			b.fmt = append(b.fmt, Style{Tp: c.tp, At: length + startAt, Len: n})
		}
		txt.WriteString(text)
		length += n
	}
	b.txt = txt.String()
	return b
}
