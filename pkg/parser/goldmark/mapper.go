package goldmark

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/drafty/pkg/drafty"
)

const (
	bulletMarker   = "• "
	cellSeparator  = " | "
	checkedMarker  = "☑ "
	uncheckMarker  = "☐ "
	imageTextShown = " "
)

// mapper converts a goldmark AST into a Drafty node tree.
type mapper struct {
	source []byte
}

// newMapper creates a new mapper for the given content.
func newMapper(source []byte) *mapper {
	return &mapper{source: source}
}

// mapDocument converts a goldmark document node. It returns nil for an empty document.
func (m *mapper) mapDocument(gmDoc ast.Node) *drafty.Node {
	return m.blocks(gmDoc)
}

// blocks maps the block children of parent, separated by line breaks.
func (m *mapper) blocks(parent ast.Node) *drafty.Node {
	var out *drafty.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		node := m.mapBlock(child)
		if node == nil {
			continue
		}
		if out == nil {
			out = drafty.NewStyled("", nil)
		} else {
			out.Append(lineBreak())
		}
		out.Append(node)
	}
	return out
}

// mapBlock converts a single block node.
func (m *mapper) mapBlock(gmNode ast.Node) *drafty.Node {
	switch gmn := gmNode.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return m.inlines(gmNode)

	case *ast.Heading:
		return wrap(drafty.TagStrong, nil, m.inlines(gmn))

	case *ast.Blockquote:
		return wrap(drafty.TagQuote, nil, m.blocks(gmn))

	case *ast.List:
		return m.mapList(gmn)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return m.mapCodeBlock(gmNode)

	case *east.Table:
		return m.mapTable(gmn)

	case *ast.ThematicBreak, *ast.HTMLBlock:
		return nil

	default:
		return m.blocks(gmNode)
	}
}

// mapList prefixes every item with its bullet or number.
func (m *mapper) mapList(list *ast.List) *drafty.Node {
	var out *drafty.Node
	num := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := bulletMarker
		if list.IsOrdered() {
			marker = strconv.Itoa(num) + string(list.Marker) + " "
			num++
		}

		if out == nil {
			out = drafty.NewStyled("", nil)
		} else {
			out.Append(lineBreak())
		}
		out.Append(drafty.NewText(marker))
		out.Append(m.blocks(item))
	}
	return out
}

// mapCodeBlock keeps the lines of a code block as they are.
func (m *mapper) mapCodeBlock(block ast.Node) *drafty.Node {
	lines := block.Lines()
	if lines.Len() == 0 {
		return nil
	}

	code := drafty.NewStyled(drafty.TagCode, nil)
	for i := range lines.Len() {
		if i > 0 {
			code.Append(lineBreak())
		}
		seg := lines.At(i)
		code.Append(drafty.NewText(strings.TrimRight(string(seg.Value(m.source)), "\r\n")))
	}
	return code
}

// mapTable puts every row on its own line with cells separated by a bar.
func (m *mapper) mapTable(table *east.Table) *drafty.Node {
	var out *drafty.Node
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		line := drafty.NewStyled("", nil)
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if cell != row.FirstChild() {
				line.Append(drafty.NewText(cellSeparator))
			}
			line.Append(m.inlines(cell))
		}

		if out == nil {
			out = drafty.NewStyled("", nil)
		} else {
			out.Append(lineBreak())
		}
		out.Append(line)
	}
	return out
}

// inlines maps the inline children of parent. It returns nil when nothing is left.
func (m *mapper) inlines(parent ast.Node) *drafty.Node {
	out := drafty.NewStyled("", nil)
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		m.appendInline(out, child)
	}
	if len(out.Children) == 0 {
		return nil
	}
	return out
}

// appendInline converts a single inline node and adds it to out.
func (m *mapper) appendInline(out *drafty.Node, gmNode ast.Node) {
	switch gmn := gmNode.(type) {
	case *ast.Text:
		out.Append(drafty.NewText(string(gmn.Segment.Value(m.source))))
		if gmn.SoftLineBreak() || gmn.HardLineBreak() {
			out.Append(lineBreak())
		}

	case *ast.String:
		out.Append(drafty.NewText(string(gmn.Value)))

	case *ast.CodeSpan:
		out.Append(drafty.NewStyled(drafty.TagCode, nil, drafty.NewText(m.text(gmn))))

	case *ast.Emphasis:
		tp := drafty.TagEmphasized
		if gmn.Level >= 2 {
			tp = drafty.TagStrong
		}
		out.Append(wrap(tp, nil, m.inlines(gmn)))

	case *east.Strikethrough:
		out.Append(wrap(drafty.TagDeleted, nil, m.inlines(gmn)))

	case *ast.Link:
		url := string(gmn.Destination)
		content := m.inlines(gmn)
		if content == nil {
			content = drafty.NewText(url)
		}
		out.Append(drafty.NewStyled(drafty.TagLink, drafty.Data{"url": url}, content))

	case *ast.AutoLink:
		url := string(gmn.URL(m.source))
		out.Append(drafty.NewStyled(drafty.TagLink, drafty.Data{"url": url},
			drafty.NewText(string(gmn.Label(m.source)))))

	case *ast.Image:
		data := drafty.Data{"ref": string(gmn.Destination)}
		if alt := m.text(gmn); alt != "" {
			data["name"] = alt
		}
		out.Append(drafty.NewStyled(drafty.TagImage, data, drafty.NewText(imageTextShown)))

	case *east.TaskCheckBox:
		if gmn.IsChecked {
			out.Append(drafty.NewText(checkedMarker))
		} else {
			out.Append(drafty.NewText(uncheckMarker))
		}

	case *ast.RawHTML:
		// Dropped.

	default:
		out.Append(m.inlines(gmNode))
	}
}

// text returns the plain text below n.
func (m *mapper) text(n ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(m.source))
			if v.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// wrap styles inner with tp. It returns nil when there is nothing to style.
func wrap(tp drafty.Tag, data drafty.Data, inner *drafty.Node) *drafty.Node {
	if inner == nil {
		return nil
	}
	return drafty.NewStyled(tp, data, inner)
}

// lineBreak is a line break covering a single space.
func lineBreak() *drafty.Node {
	return drafty.NewStyled(drafty.TagLineBreak, nil, drafty.NewText(" "))
}
