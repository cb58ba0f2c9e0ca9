package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const defaultGap = 2

// Table lays rows out in aligned columns. Cells may carry ANSI styling;
// widths are measured on the visible text.
type Table struct {
	Header []string
	Rows   [][]string
	Align  []Alignment
	Gap    int
}

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	return Table{Rows: rows, Align: alignments}.Lines()
}

// Lines renders the table. A header, when present, is followed by a rule
// spanning the full table width. Short rows are padded with empty cells.
func (t Table) Lines() []string {
	if len(t.Rows) == 0 && len(t.Header) == 0 {
		return nil
	}
	gap := t.Gap
	if gap <= 0 {
		gap = defaultGap
	}
	all := t.Rows
	if len(t.Header) > 0 {
		all = append([][]string{t.Header}, t.Rows...)
	}
	widths := columnWidths(all)
	out := make([]string, 0, len(all)+1)
	for i, row := range all {
		out = append(out, t.renderRow(row, widths, gap))
		if i == 0 && len(t.Header) > 0 {
			out = append(out, strings.Repeat("─", totalWidth(widths, gap)))
		}
	}
	return out
}

func (t Table) renderRow(row []string, widths []int, gap int) string {
	var b strings.Builder
	for c, width := range widths {
		if c > 0 {
			b.WriteString(strings.Repeat(" ", gap))
		}
		cell := ""
		if c < len(row) {
			cell = row[c]
		}
		pad := width - ansi.StringWidth(cell)
		if pad < 0 {
			pad = 0
		}
		if c < len(t.Align) && t.Align[c] == AlignRight {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
			continue
		}
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", pad))
	}
	return strings.TrimRight(b.String(), " ")
}

func columnWidths(rows [][]string) []int {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	widths := make([]int, cols)
	for _, row := range rows {
		for c, cell := range row {
			if w := ansi.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}

func totalWidth(widths []int, gap int) int {
	total := 0
	for i, w := range widths {
		if i > 0 {
			total += gap
		}
		total += w
	}
	return total
}
