package drafty

import (
	"sync"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single regular expression match on hostile input.
const matchTimeout = 250 * time.Millisecond

// ASCII word and space classes. Other clients of the format treat only ASCII
// letters and digits as word characters.
const (
	nonWord  = `[^A-Za-z0-9_]`
	nonAlnum = `[^A-Za-z0-9]`
	space    = ` \t\n\v\f\r`
)

type inlinePattern struct {
	tp Tag
	re *regexp2.Regexp
}

type entityPattern struct {
	tp   Tag
	re   *regexp2.Regexp
	pack func(m *regexp2.Match) Data
}

// Patterns are listed in priority order: when two spans start at the same place the
// earlier pattern wins.
//
//nolint:gochecknoglobals // Compiled patterns are shared read-only state
var (
	inlinePatterns = sync.OnceValue(func() []inlinePattern {
		return []inlinePattern{
			{TagStrong, compile(`(?<=^|`+nonAlnum+`)\*([^*]+[^*`+space+`])\*(?=$|`+nonAlnum+`)`, regexp2.None)},
			{TagEmphasized, compile(`(?<=^|`+nonWord+`)_([^_]+[^_`+space+`])_(?=$|`+nonWord+`)`, regexp2.None)},
			{TagDeleted, compile(`(?<=^|`+nonAlnum+`)~([^~]+[^~`+space+`])~(?=$|`+nonAlnum+`)`, regexp2.None)},
			{TagCode, compile("(?<=^|"+nonWord+")`([^`]+)`(?=$|"+nonWord+")", regexp2.None)},
		}
	})

	entityPatterns = sync.OnceValue(func() []entityPattern {
		return []entityPattern{
			{
				tp: TagLink,
				re: compile(`(?<=^|`+nonAlnum+`)(https?://)?(?:www\.)?(?:[a-z0-9][-a-z0-9]*[a-z0-9]\.){1,5}`+
					`[a-z]{2,6}(?:[/?#:][-a-z0-9@:%_+.~#?&/=]*)?`, regexp2.IgnoreCase),
				pack: func(m *regexp2.Match) Data {
					if len(m.GroupByNumber(1).Captures) == 0 {
						return Data{"url": "http://" + m.String()}
					}
					return Data{"url": m.String()}
				},
			},
			{
				tp:   TagMention,
				re:   compile(`(?<=^|`+nonAlnum+`)@([\p{L}\p{N}][._\p{L}\p{N}]*[\p{L}\p{N}])`, regexp2.None),
				pack: packValue,
			},
			{
				tp:   TagHashtag,
				re:   compile(`(?<=^|`+nonAlnum+`)#([\p{L}\p{N}][._\p{L}\p{N}]*[\p{L}\p{N}])`, regexp2.None),
				pack: packValue,
			},
		}
	})
)

func compile(expr string, opts regexp2.RegexOptions) *regexp2.Regexp {
	re := regexp2.MustCompile(expr, opts)
	re.MatchTimeout = matchTimeout
	return re
}

func packValue(m *regexp2.Match) Data {
	return Data{"val": m.String()}
}

// eachMatch calls fn for every match of re in runes. A timed out match ends the scan.
func eachMatch(re *regexp2.Regexp, runes []rune, fn func(m *regexp2.Match)) {
	m, err := re.FindRunesMatch(runes)
	for err == nil && m != nil {
		fn(m)
		m, err = re.FindNextMatch(m)
	}
}

// scanLine finds inline styled spans in one line of text. Offsets are rune indexes:
// start is the opening delimiter and end the closing one.
func scanLine(line []rune) []*span {
	var spans []*span
	for _, p := range inlinePatterns() {
		eachMatch(p.re, line, func(m *regexp2.Match) {
			inner := m.GroupByNumber(1)
			spans = append(spans, &span{
				start: m.Index,
				end:   inner.Index + inner.Length,
				text:  inner.String(),
				tp:    p.tp,
			})
		})
	}
	return spans
}

// extracted is an entity found in text already cleared of markup.
// Offsets are UTF-16 units.
type extracted struct {
	at     int
	length int
	value  string
	tp     Tag
	data   Data
}

// extractEntities finds links, mentions and hashtags in text.
func extractEntities(text string) []extracted {
	runes := []rune(text)
	var found []extracted
	for _, p := range entityPatterns() {
		eachMatch(p.re, runes, func(m *regexp2.Match) {
			value := m.String()
			found = append(found, extracted{
				at:     unitsBefore(runes, m.Index),
				length: utf16Len(value),
				value:  value,
				tp:     p.tp,
				data:   p.pack(m),
			})
		})
	}
	return found
}
