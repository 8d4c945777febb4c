// Package pod prints plain tables of decoded records for the command line tools.
package pod

import (
	"fmt"
	"io"
	"strings"
)

// FormatFunc colours a padded cell
type FormatFunc func(value string) string

// ColumnSpec defines a column's properties
type ColumnSpec struct {
	Header     string
	BlankValue string     // shown for empty cells, "-" by default
	FormatFunc FormatFunc // optional, applied before padding
	MinWidth   int
	AlignRight bool
}

type rowKind int

const (
	dataRow rowKind = iota
	separatorRow
)

type row struct {
	kind  rowKind
	cells []string
}

// Table collects rows and renders them with aligned columns
type Table struct {
	columns   []ColumnSpec
	rows      []row
	widths    []int
	separator string
}

func NewTable(cols ...ColumnSpec) *Table {
	t := &Table{
		columns:   cols,
		widths:    make([]int, len(cols)),
		separator: "-",
	}
	for i := range t.columns {
		if t.columns[i].BlankValue == "" {
			t.columns[i].BlankValue = "-"
		}
		t.widths[i] = max(t.columns[i].MinWidth, VisibleLength(t.columns[i].Header))
	}
	return t
}

// AddRow adds one row; missing and empty cells get the column's BlankValue
func (t *Table) AddRow(data ...string) {
	cells := make([]string, len(t.columns))
	for i := range cells {
		v := ""
		if i < len(data) {
			v = data[i]
		}
		if v == "" {
			v = t.columns[i].BlankValue
		}
		cells[i] = v
		t.widths[i] = max(t.widths[i], VisibleLength(v))
	}
	t.rows = append(t.rows, row{kind: dataRow, cells: cells})
}

// AddRowf adds a row from values formatted with %v
func (t *Table) AddRowf(values ...any) {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = fmt.Sprint(v)
	}
	t.AddRow(cells...)
}

// AddSeparator adds a rule spanning every column
func (t *Table) AddSeparator() {
	t.rows = append(t.rows, row{kind: separatorRow})
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the header, a rule and every row
func (t *Table) Render(w io.Writer) error {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = t.pad(i, col.Header)
	}
	if err := writeLine(w, headers); err != nil {
		return err
	}
	if err := writeLine(w, t.rule("-")); err != nil {
		return err
	}

	for _, r := range t.rows {
		if r.kind == separatorRow {
			if err := writeLine(w, t.rule(t.separator)); err != nil {
				return err
			}
			continue
		}
		cells := make([]string, len(r.cells))
		for i, v := range r.cells {
			if f := t.columns[i].FormatFunc; f != nil && v != t.columns[i].BlankValue {
				v = f(v)
			}
			cells[i] = t.pad(i, v)
		}
		if err := writeLine(w, cells); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) rule(char string) []string {
	out := make([]string, len(t.columns))
	for i := range out {
		out[i] = strings.Repeat(char, t.widths[i])
	}
	return out
}

func (t *Table) pad(col int, s string) string {
	n := t.widths[col] - VisibleLength(s)
	if n <= 0 {
		return s
	}
	if t.columns[col].AlignRight {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

func writeLine(w io.Writer, cells []string) error {
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " "))
	return err
}

// VisibleLength counts runes outside ANSI colour sequences
func VisibleLength(s string) int {
	length := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			length++
		}
	}
	return length
}
