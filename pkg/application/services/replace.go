package services

import (
	"fmt"

	"github.com/songka/bomcheck/pkg/domain/entities"
	"github.com/songka/bomcheck/pkg/domain/services/textnorm"
)

// ApplyReplacements walks every data sheet, looks up each part cell in the
// invalid-part directory, flags matched rows as processed, and appends the
// replacement part and description in new trailing cells. Rows that were
// already handled in an earlier run are counted but left untouched, which
// keeps the stage idempotent across repeated runs on a once-processed
// workbook.
func (e *Engine) ApplyReplacements(dataset *entities.Dataset, directory entities.InvalidPartDirectory) (entities.ReplacementSummary, []string) {
	var summary entities.ReplacementSummary
	var trace []string

	if len(directory) == 0 {
		return summary, trace
	}

	for _, sheet := range dataset.Sheets {
		partCol, ok := InferPartColumn(sheet, e.config.PartMarkerPrefix)
		trace = append(trace, fmt.Sprintf("[%s] 识别料号列: %s", sheet.Name, formatColumnTrace(partCol, ok)))
		if !ok {
			continue
		}

		for rowIdx := 1; rowIdx < len(sheet.Rows); rowIdx++ {
			row := sheet.Rows[rowIdx]
			if partCol >= len(row) {
				continue
			}
			partNo := sheet.Value(rowIdx, partCol)
			if partNo == "" {
				continue
			}
			entry, ok := directory[textnorm.Key(partNo)]
			if !ok {
				continue
			}

			summary.TotalInvalidFound++
			if rowAlreadyReplaced(row, partCol, entry.ReplacementNo) {
				summary.TotalPreviouslyMarked++
				trace = append(trace, fmt.Sprintf("[%s] 行%d 失效料号 %s 已标记替换，跳过", sheet.Name, rowIdx+1, partNo))
				continue
			}

			sheet.MarkRowProcessed(rowIdx)
			if entry.ReplacementNo != "" {
				sheet.AppendCells(rowIdx, entry.ReplacementNo, entry.ReplacementDesc)
				summary.TotalReplaced++
			}

			summary.Records = append(summary.Records, entities.ReplacementRecord{
				InvalidPartNo:   entry.InvalidPartNo,
				InvalidDesc:     entry.InvalidDesc,
				ReplacementNo:   entry.ReplacementNo,
				ReplacementDesc: entry.ReplacementDesc,
				SheetName:       sheet.Name,
				RowIndex:        rowIdx + 1,
			})
			target := entry.ReplacementNo
			if target == "" {
				target = "无替换"
			}
			trace = append(trace, fmt.Sprintf("[%s] 行%d 命中失效料号 %s -> %s", sheet.Name, rowIdx+1, partNo, target))
		}
	}

	return summary, trace
}

// rowAlreadyReplaced detects rows handled in a prior run: the recorded
// replacement already sits in some other cell, or the part cell is flagged
// and either the whole row is flagged too or there is no replacement to
// apply.
func rowAlreadyReplaced(row []entities.Cell, partCol int, replacementNo string) bool {
	if replacementNo != "" && rowContainsPart(row, partCol, replacementNo) {
		return true
	}
	if row[partCol].Processed {
		if !rowHasUnprocessedValue(row, partCol) {
			return true
		}
		if replacementNo == "" {
			return true
		}
	}
	return false
}

func rowContainsPart(row []entities.Cell, ignoreCol int, partNo string) bool {
	if partNo == "" {
		return false
	}
	target := textnorm.Key(partNo)
	for idx, cell := range row {
		if idx == ignoreCol || cell.Value == "" {
			continue
		}
		if textnorm.Key(cell.Value) == target {
			return true
		}
	}
	return false
}

func rowHasUnprocessedValue(row []entities.Cell, ignoreCol int) bool {
	for idx, cell := range row {
		if idx == ignoreCol {
			continue
		}
		if cell.Value != "" && !cell.Processed {
			return true
		}
	}
	return false
}
