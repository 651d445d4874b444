package drafty

import (
	"fmt"
	"strings"
)

// ToMarkdown renders the document with markdown-style markup. Elements that have no
// markdown form are written as plain text. With plainLink set, links are written
// as their text only.
func (d *Document) ToMarkdown(plainLink bool) string {
	out, _ := Format[string](d, markdownFormatter{plainLink: plainLink})
	return out
}

type markdownFormatter struct {
	plainLink bool
}

func (markdownFormatter) Text(text string) string {
	return text
}

func (m markdownFormatter) Apply(tp Tag, data Data, content []string, _ []Tag) (string, bool) {
	res := strings.Join(content, "")

	switch tp {
	case TagLineBreak:
		res = "\n"
	case TagHashtag:
		res = withSigil("#", res)
	case TagMention:
		res = withSigil("@", res)
	case TagStrong:
		res = "*" + res + "*"
	case TagEmphasized:
		res = "_" + res + "_"
	case TagDeleted:
		res = "~" + res + "~"
	case TagCode:
		res = "`" + res + "`"
	case TagLink:
		if !m.plainLink {
			res = fmt.Sprintf("[%s](%s)", res, data.String("url"))
		}
	}
	return res, true
}

// withSigil prefixes text with sigil unless the parsed text already carries it.
func withSigil(sigil, text string) string {
	if strings.HasPrefix(text, sigil) {
		return text
	}
	return sigil + text
}
