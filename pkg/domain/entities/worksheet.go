package entities

import "strings"

// Cell is one worksheet cell. Processed mirrors the black fill the Excel
// layer uses to mark rows consumed by the replacement stage.
type Cell struct {
	Value     string
	Processed bool
}

// Sheet is an in-memory worksheet: rows of untyped cell values. Rows[0] is
// the header row when one exists.
type Sheet struct {
	Name string
	Rows [][]Cell
}

// NewSheet builds a sheet from plain string rows.
func NewSheet(name string, rows [][]string) *Sheet {
	s := &Sheet{Name: name}
	for _, row := range rows {
		cells := make([]Cell, len(row))
		for i, v := range row {
			cells[i] = Cell{Value: v}
		}
		s.Rows = append(s.Rows, cells)
	}
	return s
}

// MaxColumns returns the widest row length.
func (s *Sheet) MaxColumns() int {
	max := 0
	for _, row := range s.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Value returns the trimmed cell value at (row, col), or "" when the
// coordinates fall outside the sheet.
func (s *Sheet) Value(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	cells := s.Rows[row]
	if col < 0 || col >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col].Value)
}

// MarkRowProcessed flags every cell of a row.
func (s *Sheet) MarkRowProcessed(row int) {
	if row < 0 || row >= len(s.Rows) {
		return
	}
	for i := range s.Rows[row] {
		s.Rows[row][i].Processed = true
	}
}

// AppendCells extends a row with new trailing cells.
func (s *Sheet) AppendCells(row int, values ...string) {
	if row < 0 || row >= len(s.Rows) {
		return
	}
	for _, v := range values {
		s.Rows[row] = append(s.Rows[row], Cell{Value: v})
	}
}

// Dataset is the full tabular input of one engine invocation: the data
// sheets of one workbook, in workbook order.
type Dataset struct {
	Sheets []*Sheet
}
