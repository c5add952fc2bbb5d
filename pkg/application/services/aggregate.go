package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/songka/bomcheck/pkg/domain/entities"
	"github.com/songka/bomcheck/pkg/domain/services/quantity"
	"github.com/songka/bomcheck/pkg/domain/services/textnorm"
)

var partNoPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9._/-]*$`)

// isProbablePartNumber filters free text down to plausible part numbers:
// the normalized form must match the part charset and mix letters with
// digits.
func isProbablePartNumber(value string) bool {
	normalized := string(textnorm.Key(value))
	if normalized == "" || !partNoPattern.MatchString(normalized) {
		return false
	}
	hasDigit := strings.ContainsFunc(normalized, unicode.IsDigit)
	hasLetter := strings.ContainsFunc(normalized, unicode.IsLetter)
	return hasDigit && hasLetter
}

// resolvedPart is the effective part of one worksheet row.
type resolvedPart struct {
	key          entities.PartKey
	displayNo    string
	overrideDesc string // description carried next to an appended replacement
}

// resolveRowPart determines which part a row contributes to aggregation.
// Rows flagged by the replacement stage contribute their appended
// replacement part instead of the original key.
func resolveRowPart(sheet *entities.Sheet, rowIdx, partCol int) (resolvedPart, bool) {
	row := sheet.Rows[rowIdx]
	cell := row[partCol]
	text := strings.TrimSpace(cell.Value)

	if text != "" && !cell.Processed && isProbablePartNumber(text) {
		return resolvedPart{key: textnorm.Key(text), displayNo: text}, true
	}

	if replacement, ok := findReplacementInRow(row, partCol); ok {
		return replacement, true
	}

	if text != "" && !isProbablePartNumber(text) {
		return resolvedPart{}, false
	}
	if cell.Processed {
		return resolvedPart{}, false
	}
	if text != "" {
		return resolvedPart{key: textnorm.Key(text), displayNo: text}, true
	}
	return resolvedPart{}, false
}

// findReplacementInRow scans a flagged row for the unflagged part number
// the replacement stage appended, taking the neighbouring cell as its
// description.
func findReplacementInRow(row []entities.Cell, partCol int) (resolvedPart, bool) {
	for idx, cell := range row {
		if idx == partCol || cell.Processed {
			continue
		}
		text := strings.TrimSpace(cell.Value)
		if text == "" || !isProbablePartNumber(text) {
			continue
		}
		resolved := resolvedPart{key: textnorm.Key(text), displayNo: text}
		if idx+1 < len(row) {
			resolved.overrideDesc = strings.TrimSpace(row[idx+1].Value)
		}
		return resolved, true
	}
	return resolvedPart{}, false
}

// AggregateQuantities consolidates every row into one record per effective
// part key, summing quantities and keeping first-seen display text and
// description. Unparsable quantity cells count as 0 and leave a trace
// entry.
func (e *Engine) AggregateQuantities(dataset *entities.Dataset) (*entities.PartIndex, []string) {
	index := entities.NewPartIndex()
	var trace []string

	for _, sheet := range dataset.Sheets {
		partCol, partOK := InferPartColumn(sheet, e.config.PartMarkerPrefix)
		qtyCol := InferQuantityColumn(sheet, e.config.PartMarkerPrefix, e.config.FallbackQuantityColumn)
		descCol, descOK := InferDescriptionColumn(sheet, partCol)
		trace = append(trace, fmt.Sprintf(
			"[%s] 数量列: %s, 料号列: %s, 描述列: %s",
			sheet.Name,
			formatColumnTrace(qtyCol, true),
			formatColumnTrace(partCol, partOK),
			formatColumnTrace(descCol, descOK),
		))
		if !partOK {
			continue
		}

		for rowIdx := 1; rowIdx < len(sheet.Rows); rowIdx++ {
			row := sheet.Rows[rowIdx]
			if partCol >= len(row) {
				continue
			}

			resolved, ok := resolveRowPart(sheet, rowIdx, partCol)
			if !ok {
				continue
			}

			description := resolved.overrideDesc
			if description == "" && descOK && descCol < len(row) {
				description = sheet.Value(rowIdx, descCol)
			}

			qty := 0.0
			if qtyCol < len(row) {
				raw := sheet.Value(rowIdx, qtyCol)
				if parsed, ok := quantity.Parse(raw); ok {
					qty = parsed
				} else if raw != "" {
					trace = append(trace, fmt.Sprintf("[%s] 行%d 数量列值 %q 无法解析，按0处理", sheet.Name, rowIdx+1, raw))
				}
			}

			index.Add(resolved.key, resolved.displayNo, description, qty)
		}
	}

	return index, trace
}
