package drafty

import "slices"

// span is a piece of styled markup in one line of source text.
// start and end are rune indexes of the opening and closing delimiters.
type span struct {
	start    int
	end      int
	text     string
	tp       Tag
	children []*span
}

// spanTree arranges spans sorted by start into a forest. Spans that begin after the
// previous kept span are siblings, spans that end inside it become its children and
// partially overlapping spans are dropped.
func spanTree(spans []*span) []*span {
	if len(spans) == 0 {
		return nil
	}

	last := spans[0]
	tree := []*span{last}
	for _, curr := range spans[1:] {
		switch {
		case curr.start > last.end:
			tree = append(tree, curr)
			last = curr
		case curr.end < last.end:
			last.children = append(last.children, curr)
		}
	}

	for _, s := range tree {
		s.children = spanTree(s.children)
	}
	return tree
}

// sortSpans orders spans by start. Ties keep detection order.
func sortSpans(spans []*span) {
	slices.SortStableFunc(spans, func(a, b *span) int {
		return a.start - b.start
	})
}
