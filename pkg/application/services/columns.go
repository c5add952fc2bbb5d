package services

import (
	"sort"
	"strings"

	"github.com/songka/bomcheck/pkg/domain/entities"
	"github.com/songka/bomcheck/pkg/domain/services/quantity"
)

// Column inference works on per-column content statistics so the scoring is
// a pure function of the sheet and unit-testable with synthetic data.

const headerScanRows = 5

var quantityHeaderKeywords = []string{"数量", "數量", "qty", "quantity"}
var descriptionHeaderKeywords = []string{"desc", "描述"}

type columnStats struct {
	index        int
	markerCount  int // non-empty values starting with the part marker prefix
	textCount    int // non-empty values
	integerCount int // values parsing to a whole number
	numericCount int // values parsing to any number
	failureCount int // non-empty values that fail to parse
}

func collectColumnStats(sheet *entities.Sheet, markerPrefix string) []columnStats {
	cols := sheet.MaxColumns()
	stats := make([]columnStats, cols)
	for i := range stats {
		stats[i].index = i
	}
	for rowIdx := 1; rowIdx < len(sheet.Rows); rowIdx++ {
		for colIdx := range sheet.Rows[rowIdx] {
			text := sheet.Value(rowIdx, colIdx)
			if text == "" {
				continue
			}
			s := &stats[colIdx]
			s.textCount++
			if strings.HasPrefix(strings.ToUpper(text), markerPrefix) {
				s.markerCount++
			}
			if value, ok := quantity.Parse(text); ok {
				s.numericCount++
				if quantity.IsIntegral(value) {
					s.integerCount++
				}
			} else {
				s.failureCount++
			}
		}
	}
	return stats
}

// InferPartColumn picks the column maximizing the marker-prefix count,
// tie-breaking on total non-empty count, then lowest index. The second
// return is false when the sheet has no non-empty column at all.
func InferPartColumn(sheet *entities.Sheet, markerPrefix string) (int, bool) {
	stats := collectColumnStats(sheet, markerPrefix)
	candidates := stats[:0:0]
	for _, s := range stats {
		if s.textCount > 0 {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].markerCount != candidates[j].markerCount {
			return candidates[i].markerCount > candidates[j].markerCount
		}
		if candidates[i].textCount != candidates[j].textCount {
			return candidates[i].textCount > candidates[j].textCount
		}
		return candidates[i].index < candidates[j].index
	})
	return candidates[0].index, true
}

// InferQuantityColumn picks the quantity column. Header keywords restrict
// the candidate set when present; otherwise every column past the first two
// is considered. Candidates rank by whole-number count, then parseable
// count, then fewest failures, then lowest index. When nothing scores the
// fixed fallback index is returned.
func InferQuantityColumn(sheet *entities.Sheet, markerPrefix string, fallback int) int {
	var headerCandidates []int
	for colIdx := 2; colIdx < sheet.MaxColumns(); colIdx++ {
		header := strings.ToLower(sheet.Value(0, colIdx))
		if header == "" {
			continue
		}
		for _, keyword := range quantityHeaderKeywords {
			if strings.Contains(header, keyword) {
				headerCandidates = append(headerCandidates, colIdx)
				break
			}
		}
	}

	stats := collectColumnStats(sheet, markerPrefix)
	var scored []columnStats
	for _, s := range stats {
		if s.index < 2 || s.numericCount == 0 {
			continue
		}
		scored = append(scored, s)
	}

	selectBest := func(candidates []columnStats) (int, bool) {
		if len(candidates) == 0 {
			return 0, false
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].integerCount != candidates[j].integerCount {
				return candidates[i].integerCount > candidates[j].integerCount
			}
			if candidates[i].numericCount != candidates[j].numericCount {
				return candidates[i].numericCount > candidates[j].numericCount
			}
			if candidates[i].failureCount != candidates[j].failureCount {
				return candidates[i].failureCount < candidates[j].failureCount
			}
			return candidates[i].index < candidates[j].index
		})
		return candidates[0].index, true
	}

	if len(headerCandidates) > 0 {
		inHeader := make(map[int]bool, len(headerCandidates))
		for _, idx := range headerCandidates {
			inHeader[idx] = true
		}
		var restricted []columnStats
		for _, s := range scored {
			if inHeader[s.index] {
				restricted = append(restricted, s)
			}
		}
		if idx, ok := selectBest(restricted); ok {
			return idx
		}
		// Header names a quantity column but its data never parses; trust
		// the header.
		return headerCandidates[0]
	}

	if idx, ok := selectBest(scored); ok {
		return idx
	}
	return fallback
}

// InferDescriptionColumn looks for a description keyword in the first few
// rows, falling back to the column right after the part column. The second
// return is false when neither resolves.
func InferDescriptionColumn(sheet *entities.Sheet, partCol int) (int, bool) {
	limit := len(sheet.Rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for rowIdx := 0; rowIdx < limit; rowIdx++ {
		for colIdx := range sheet.Rows[rowIdx] {
			text := strings.ToLower(sheet.Value(rowIdx, colIdx))
			if text == "" {
				continue
			}
			for _, keyword := range descriptionHeaderKeywords {
				if strings.Contains(text, keyword) {
					return colIdx, true
				}
			}
		}
	}
	if partCol >= 0 && partCol+1 < sheet.MaxColumns() {
		return partCol + 1, true
	}
	return 0, false
}
