package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = "  "

// Table renders rows under a styled header. Cells may contain styled text;
// widths are measured on the visible characters. Numeric columns can be
// right-aligned with AlignRight.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
	right   map[int]bool
}

// NewTable creates a new table with the given column headers.
func NewTable(headers ...string) *Table {
	t := &Table{headers: headers, widths: make([]int, len(headers)), right: map[int]bool{}}
	for i, h := range headers {
		t.widths[i] = visualLen(h)
	}
	return t
}

// AlignRight right-aligns the given zero-based columns. Out-of-range
// indexes are ignored.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		if c >= 0 && c < len(t.headers) {
			t.right[c] = true
		}
	}
	return t
}

// AddRow adds a row of values to the table. Missing values render empty
// and extra values are dropped.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	copy(row, values)
	for i, cell := range row {
		t.widths[i] = max(t.widths[i], visualLen(cell))
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render returns the formatted table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	var sb strings.Builder
	t.writeRow(&sb, t.headers, StyleHeader.Render)

	rules := make([]string, len(t.widths))
	for i, w := range t.widths {
		rules[i] = strings.Repeat("─", w)
	}
	t.writeRow(&sb, rules, StyleMuted.Render)

	for _, row := range t.rows {
		t.writeRow(&sb, row, nil)
	}
	return sb.String()
}

func (t *Table) writeRow(sb *strings.Builder, cells []string, style func(...string) string) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString(columnGap)
		}
		if t.right[i] {
			cell = padLeft(cell, t.widths[i])
		} else {
			cell = pad(cell, t.widths[i])
		}
		if style != nil {
			cell = style(cell)
		}
		sb.WriteString(cell)
	}
	sb.WriteByte('\n')
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.Render()
}

// Fprint writes the table to w.
func (t *Table) Fprint(w io.Writer) error {
	_, err := fmt.Fprint(w, t.Render())
	return err
}

// visualLen returns the printed width of s, ignoring ANSI escapes.
func visualLen(s string) int {
	return lipgloss.Width(s)
}

// pad right-pads s to the given visible width.
func pad(s string, width int) string {
	if n := visualLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// padLeft left-pads s to the given visible width.
func padLeft(s string, width int) string {
	if n := visualLen(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
