package services

import (
	"fmt"

	"github.com/songka/bomcheck/pkg/domain/entities"
	"github.com/songka/bomcheck/pkg/domain/services/quantity"
	"github.com/songka/bomcheck/pkg/domain/services/textnorm"
)

// ScanImportantMaterials matches every keyword against the aggregated parts
// using script-insensitive variants of display text, normalized key, and
// description. Matching is independent of binding consumption: important
// totals always reflect the full aggregated quantity. Returns the hits, the
// set of matched part keys, and the trace.
func ScanImportantMaterials(index *entities.PartIndex, keywords []string) ([]entities.ImportantMaterialHit, map[entities.PartKey]struct{}, []string) {
	var hits []entities.ImportantMaterialHit
	matchedParts := make(map[entities.PartKey]struct{})
	var trace []string

	if len(keywords) == 0 {
		return hits, matchedParts, trace
	}

	variantCache := make(map[entities.PartKey][]string, index.Len())

	for _, keyword := range keywords {
		keywordVariants := textnorm.Variants(keyword)
		converted := textnorm.Normalize(keyword)

		totalQty := 0.0
		matched := make(map[string]float64)
		var matchedOrder []string

		for _, key := range index.Keys() {
			variants, ok := variantCache[key]
			if !ok {
				variants = collectPartVariants(index, key)
				variantCache[key] = variants
			}
			if !textnorm.Match(keywordVariants, variants) {
				continue
			}

			qty := index.Quantity(key)
			displayNo := index.DisplayNo(key)
			totalQty += qty
			if _, seen := matched[displayNo]; !seen {
				matchedOrder = append(matchedOrder, displayNo)
			}
			matched[displayNo] += qty
			matchedParts[key] = struct{}{}
		}

		if totalQty != 0 {
			hits = append(hits, entities.ImportantMaterialHit{
				Keyword:          keyword,
				ConvertedKeyword: converted,
				TotalQuantity:    totalQty,
				MatchedParts:     matched,
				MatchedOrder:     matchedOrder,
			})
			trace = append(trace, fmt.Sprintf("[重要物料] %s 命中 %d 项，数量 %s", keyword, len(matched), quantity.Format(totalQty)))
		} else {
			trace = append(trace, fmt.Sprintf("[重要物料] %s 未命中", keyword))
		}
	}

	return hits, matchedParts, trace
}

func collectPartVariants(index *entities.PartIndex, key entities.PartKey) []string {
	var variants []string
	seen := make(map[string]struct{})
	add := func(values []string) {
		for _, v := range values {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			variants = append(variants, v)
		}
	}
	add(textnorm.Variants(index.DisplayNo(key)))
	add(textnorm.Variants(string(key)))
	if desc := index.Description(key); desc != "" {
		add(textnorm.Variants(desc))
	}
	return variants
}
