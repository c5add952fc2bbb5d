// Package excel adapts xlsx workbooks to the engine's in-memory dataset
// model. Solid black cell fill marks rows the replacement stage has
// processed; the mapping is applied in both directions so repeated runs on
// a saved workbook stay idempotent.
package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/songka/bomcheck/pkg/domain/entities"
)

const (
	// SummarySheetName and RemainderSheetName are the report sheets the
	// engine owns; they are rebuilt on save and never fed back as data.
	SummarySheetName   = "执行统计"
	RemainderSheetName = "剩余物料"
)

// Workbook wraps an open xlsx file together with the dataset loaded from
// it. Save writes the dataset mutations and report sheets back to disk.
type Workbook struct {
	file       *excelize.File
	path       string
	dataset    *entities.Dataset
	snapshot   map[string][][]entities.Cell
	blackStyle int
	styleCache map[int]bool
}

// OpenWorkbook loads every data sheet of an xlsx file into a dataset,
// mapping black fill to the processed flag.
func OpenWorkbook(path string) (*Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	w := &Workbook{
		file:       file,
		path:       path,
		dataset:    &entities.Dataset{},
		snapshot:   make(map[string][][]entities.Cell),
		blackStyle: -1,
		styleCache: make(map[int]bool),
	}

	for _, name := range file.GetSheetList() {
		if name == SummarySheetName || name == RemainderSheetName {
			continue
		}
		sheet, err := w.loadSheet(name)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to load sheet %s: %w", name, err)
		}
		w.dataset.Sheets = append(w.dataset.Sheets, sheet)
		w.snapshot[name] = copyRows(sheet.Rows)
	}

	return w, nil
}

// Dataset returns the loaded dataset. The engine mutates it in place.
func (w *Workbook) Dataset() *entities.Dataset {
	return w.dataset
}

// Close releases the underlying file without saving.
func (w *Workbook) Close() error {
	return w.file.Close()
}

func (w *Workbook) loadSheet(name string) (*entities.Sheet, error) {
	rows, err := w.file.GetRows(name)
	if err != nil {
		return nil, err
	}
	sheet := &entities.Sheet{Name: name}
	for rowIdx, values := range rows {
		cells := make([]entities.Cell, len(values))
		for colIdx, value := range values {
			processed, err := w.isBlackFill(name, colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cells[colIdx] = entities.Cell{Value: value, Processed: processed}
		}
		sheet.Rows = append(sheet.Rows, cells)
	}
	return sheet, nil
}

func (w *Workbook) isBlackFill(sheet string, col, row int) (bool, error) {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false, err
	}
	styleID, err := w.file.GetCellStyle(sheet, ref)
	if err != nil {
		return false, err
	}
	if black, ok := w.styleCache[styleID]; ok {
		return black, nil
	}
	style, err := w.file.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	black := false
	if style != nil && style.Fill.Type == "pattern" && style.Fill.Pattern == 1 {
		for _, color := range style.Fill.Color {
			switch strings.ToUpper(color) {
			case "000000", "FF000000", "#000000":
				black = true
			}
		}
	}
	w.styleCache[styleID] = black
	return black, nil
}

// Save writes dataset mutations (newly processed rows, appended cells,
// changed values) and the report sheets, then persists the file in place.
func (w *Workbook) Save(result *entities.ExecutionResult) error {
	for _, sheet := range w.dataset.Sheets {
		if err := w.applySheet(sheet); err != nil {
			return fmt.Errorf("failed to apply sheet %s: %w", sheet.Name, err)
		}
	}
	if result != nil {
		if err := w.writeReport(result); err != nil {
			return fmt.Errorf("failed to write report sheets: %w", err)
		}
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}
	return nil
}

func (w *Workbook) applySheet(sheet *entities.Sheet) error {
	before := w.snapshot[sheet.Name]
	for rowIdx, row := range sheet.Rows {
		var snapRow []entities.Cell
		if rowIdx < len(before) {
			snapRow = before[rowIdx]
		}
		for colIdx, cell := range row {
			ref, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return err
			}
			var prev entities.Cell
			if colIdx < len(snapRow) {
				prev = snapRow[colIdx]
			}
			if cell.Value != prev.Value {
				if err := w.file.SetCellValue(sheet.Name, ref, cell.Value); err != nil {
					return err
				}
			}
			if cell.Processed && !prev.Processed {
				styleID, err := w.ensureBlackStyle()
				if err != nil {
					return err
				}
				if err := w.file.SetCellStyle(sheet.Name, ref, ref, styleID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (w *Workbook) ensureBlackStyle() (int, error) {
	if w.blackStyle >= 0 {
		return w.blackStyle, nil
	}
	styleID, err := w.file.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"000000"}},
	})
	if err != nil {
		return 0, err
	}
	w.blackStyle = styleID
	return styleID, nil
}

func copyRows(rows [][]entities.Cell) [][]entities.Cell {
	out := make([][]entities.Cell, len(rows))
	for i, row := range rows {
		out[i] = append([]entities.Cell(nil), row...)
	}
	return out
}
