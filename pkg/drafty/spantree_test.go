package drafty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpanTree_DropsPartialOverlap(t *testing.T) {
	t.Parallel()

	spans := []*span{
		{start: 0, end: 10, tp: "A"},
		{start: 5, end: 15, tp: "B"},
	}
	tree := spanTree(spans)

	require.Len(t, tree, 1)
	assert.Equal(t, Tag("A"), tree[0].tp)
	assert.Empty(t, tree[0].children)
}

func TestSpanTree_NestsAndChains(t *testing.T) {
	t.Parallel()

	spans := []*span{
		{start: 0, end: 20, tp: "A"},
		{start: 2, end: 8, tp: "B"},
		{start: 3, end: 5, tp: "C"},
		{start: 10, end: 12, tp: "D"},
		{start: 21, end: 25, tp: "E"},
	}
	tree := spanTree(spans)

	require.Len(t, tree, 2)
	assert.Equal(t, Tag("A"), tree[0].tp)
	assert.Equal(t, Tag("E"), tree[1].tp)

	children := tree[0].children
	require.Len(t, children, 2)
	assert.Equal(t, Tag("B"), children[0].tp)
	assert.Equal(t, Tag("D"), children[1].tp)
	require.Len(t, children[0].children, 1)
	assert.Equal(t, Tag("C"), children[0].children[0].tp)
}

func TestSortSpans_KeepsDetectionOrderOnTies(t *testing.T) {
	t.Parallel()

	spans := []*span{
		{start: 4, end: 9, tp: TagStrong},
		{start: 0, end: 3, tp: TagCode},
		{start: 4, end: 6, tp: TagEmphasized},
	}
	sortSpans(spans)

	assert.Equal(t, []Tag{TagCode, TagStrong, TagEmphasized},
		[]Tag{spans[0].tp, spans[1].tp, spans[2].tp})
}

func TestScanLine(t *testing.T) {
	t.Parallel()

	spans := scanLine([]rune("hello *world* and `x`"))

	require.Len(t, spans, 2)
	assert.Equal(t, span{start: 6, end: 12, text: "world", tp: TagStrong}, *spans[0])
	assert.Equal(t, span{start: 18, end: 20, text: "x", tp: TagCode}, *spans[1])
}

func TestExtractEntities_UTF16Offsets(t *testing.T) {
	t.Parallel()

	found := extractEntities("𝄞 #tag")

	require.Len(t, found, 1)
	assert.Equal(t, 3, found[0].at)
	assert.Equal(t, 4, found[0].length)
	assert.Equal(t, Data{"val": "#tag"}, found[0].data)
}

func TestClipUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{"ascii", "abcdef", 3, "abc"},
		{"whole text fits", "abc", 10, "abc"},
		{"zero", "abc", 0, ""},
		{"keeps surrogate pair whole", "ab😀cd", 3, "ab"},
		{"keeps emoji modifier sequence whole", "ab👍🏽cd", 5, "ab"},
		{"sequence fits", "ab👍🏽cd", 6, "ab👍🏽"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, clipUnits(tt.text, tt.limit))
		})
	}
}
