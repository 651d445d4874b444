package pretty

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/yaklabco/drafty/pkg/drafty"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minDataWidth     = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	truncationTail   = "…"
	entityArrow      = "→"
)

// TableFormatter lays out the styles and entities of a document as tables.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatDocument renders the style table followed by the entity table.
// A plain document renders as nothing.
func (t *TableFormatter) FormatDocument(doc *drafty.Document) string {
	if doc.IsPlain() {
		return ""
	}

	var builder strings.Builder
	if len(doc.Fmt) > 0 {
		builder.WriteString(t.formatStyles(doc))
	}
	if len(doc.Ent) > 0 {
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(t.formatEntities(doc.Ent))
	}
	return builder.String()
}

// formatStyles renders one row per style: index, range, type and covered text.
func (t *TableFormatter) formatStyles(doc *drafty.Document) string {
	header := []string{"#", "AT", "LEN", "TP", "TEXT"}
	rows := make([][]string, 0, len(doc.Fmt))
	for i, st := range doc.Fmt {
		tp := string(st.Tp)
		if tp == "" {
			tp = entityArrow + strconv.Itoa(st.Key)
			if st.Key >= 0 && st.Key < len(doc.Ent) {
				tp += " " + string(doc.Ent[st.Key].Tp)
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(st.At),
			strconv.Itoa(st.Len),
			tp,
			coveredText(doc.Txt, st),
		})
	}
	return t.formatTable(header, rows)
}

// formatEntities renders one row per entity with its data flattened.
func (t *TableFormatter) formatEntities(ents []drafty.Entity) string {
	header := []string{"KEY", "TP", "DATA"}
	rows := make([][]string, 0, len(ents))
	for i, ent := range ents {
		rows = append(rows, []string{strconv.Itoa(i), string(ent.Tp), formatData(ent.Data)})
	}
	return t.formatTable(header, rows)
}

// formatTable pads every column to its widest cell. The last column is truncated
// so rows fit the terminal.
func (t *TableFormatter) formatTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = ansi.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], ansi.StringWidth(cell))
		}
	}

	last := len(widths) - 1
	fixed := 0
	for _, w := range widths[:last] {
		fixed += w + tablePadding
	}
	widths[last] = max(minDataWidth, min(widths[last], t.termWidth-fixed-1))
	total := fixed + widths[last] + 1

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(t.formatRow(header, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, total)))
	builder.WriteString("\n")
	return builder.String()
}

func (t *TableFormatter) formatRow(cells []string, widths []int) string {
	var builder strings.Builder
	builder.WriteString(" ")
	for i, cell := range cells {
		cell = ansi.Truncate(cell, widths[i], truncationTail)
		builder.WriteString(cell)
		if i < len(cells)-1 {
			builder.WriteString(strings.Repeat(" ", widths[i]-ansi.StringWidth(cell)+tablePadding))
		}
	}
	return strings.TrimRight(builder.String(), " ")
}

// coveredText returns the quoted text under a style, or "(attachment)".
func coveredText(txt string, st drafty.Style) string {
	if st.At < 0 {
		return "(attachment)"
	}
	runes := []rune(txt)
	units := 0
	var builder strings.Builder
	for _, r := range runes {
		width := 1
		if r > 0xFFFF {
			width = 2
		}
		if units >= st.At && units-st.At < st.Len {
			builder.WriteRune(r)
		}
		units += width
	}
	return strconv.Quote(builder.String())
}

// formatData flattens entity data as sorted key=value pairs. Binary values show
// their size instead of their content.
func formatData(data drafty.Data) string {
	keys := slices.Sorted(maps.Keys(data))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+formatValue(data[k]))
	}
	return strings.Join(parts, " ")
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []byte:
		return "<" + humanize.IBytes(uint64(len(val))) + ">"
	case string:
		if strings.ContainsAny(val, " \t\n\"") {
			return strconv.Quote(val)
		}
		return val
	default:
		return fmt.Sprint(val)
	}
}
