package services

import (
	"sort"

	"github.com/songka/bomcheck/pkg/domain/entities"
)

// ComputeRemainder lists the inventory left over after reconciliation:
// every aggregated key the binding evaluator never touched, plus every key
// flagged important (shown even when partially consumed). Quantities are
// the untouched aggregate totals, not pool leftovers. Rows sort by display
// text for stable reports.
func ComputeRemainder(
	index *entities.PartIndex,
	usedParts map[entities.PartKey]struct{},
	importantParts map[entities.PartKey]struct{},
) []entities.RemainderItem {
	var keys []entities.PartKey
	for _, key := range index.Keys() {
		if _, used := usedParts[key]; used {
			if _, important := importantParts[key]; !important {
				continue
			}
		}
		keys = append(keys, key)
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return index.DisplayNo(keys[i]) < index.DisplayNo(keys[j])
	})

	items := make([]entities.RemainderItem, 0, len(keys))
	for _, key := range keys {
		items = append(items, entities.RemainderItem{
			PartNo:   index.DisplayNo(key),
			Desc:     index.Description(key),
			Quantity: index.Quantity(key),
		})
	}
	return items
}
