package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolyHash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int32
	}{
		{"", 0},
		{"a", 97},
		{"Aa", 2112},
		{"BB", 2112},
		{"hello", 99162322},
		{"polygenelubricants", -2147483648},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, polyHash(tt.in), tt.in)
	}
}

func TestMillisToTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		millis   int
		fixedMin bool
		want     string
	}{
		{0, false, "0:00"},
		{999, false, "0:00"},
		{65000, false, "1:05"},
		{65000, true, "01:05"},
		{600000, false, "10:00"},
		{3723000, false, "1:02:03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, millisToTime(tt.millis, tt.fixedMin))
	}
}

func TestClipText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello", 3, "hel"},
		{"hello", 10, "hello"},
		{"a😀b", 2, "a"},
		{"a😀b", 3, "a😀"},
		{"e\u0301x", 1, ""},
		{"e\u0301x", 2, "e\u0301"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clipText(tt.in, tt.limit), "%q/%d", tt.in, tt.limit)
	}
}

func TestShortenMiddle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short.txt", shortenMiddle("short.txt", 18, 8, 9))
	assert.Equal(t, "abcdefgh…vwxyz.txt", shortenMiddle("abcdefghijklmnopqrstuvwxyz.txt", 18, 8, 9))
	assert.Equal(t, "abcdefg…yz.jpeg", shortenMiddle("abcdefghijklmnopqrstuvwxyz.jpeg", 16, 7, 7))
}
