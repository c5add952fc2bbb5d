package services

import (
	"fmt"
	"sort"

	"github.com/songka/bomcheck/pkg/application/services/shared"
	"github.com/songka/bomcheck/pkg/domain/entities"
	"github.com/songka/bomcheck/pkg/domain/services/quantity"
	"github.com/songka/bomcheck/pkg/domain/services/textnorm"
)

// EvaluateBindings evaluates every binding project, in declared order,
// against a single depletable inventory pool. Projects sharing an index
// part compete for the same pool: first iterated wins. Returns the
// per-project results, the globally merged missing items, the set of part
// keys that received any allocation, and the trace.
func EvaluateBindings(
	index *entities.PartIndex,
	pool shared.InventoryPool,
	library *entities.BindingLibrary,
) ([]entities.BindingProjectResult, []entities.MissingItem, map[entities.PartKey]struct{}, []string) {
	var results []entities.BindingProjectResult
	missingByKey := make(map[entities.PartKey]*entities.MissingItem)
	var missingOrder []entities.PartKey
	usedParts := make(map[entities.PartKey]struct{})
	var trace []string

	for _, project := range library.Projects {
		indexKey := textnorm.Key(project.IndexPartNo)
		totalQty := index.Quantity(indexKey)
		if totalQty <= 0 {
			continue
		}
		availableQty := pool.Balance(indexKey)
		if availableQty <= 0 {
			continue
		}

		consumedQty := totalQty
		if availableQty < consumedQty {
			consumedQty = availableQty
		}
		pool.Consume(indexKey, consumedQty)
		usedParts[indexKey] = struct{}{}

		trace = append(trace, fmt.Sprintf(
			"[绑定]%s(%s) 主料需求: %s 可用: %s",
			project.ProjectDesc, project.IndexPartNo,
			quantity.Format(totalQty), quantity.Format(availableQty),
		))

		var groupResults []entities.RequirementGroupResult
		for _, group := range project.RequiredGroups {
			groupResult := evaluateGroup(group, consumedQty, pool, index)
			groupResults = append(groupResults, groupResult)

			if groupResult.MissingQty > 0 {
				for _, partNo := range groupResult.MissingChoices {
					key := textnorm.Key(partNo)
					item, ok := missingByKey[key]
					if !ok {
						desc := index.Description(key)
						if desc == "" {
							desc = lookupChoiceDesc(group, partNo)
						}
						item = &entities.MissingItem{PartNo: index.DisplayNo(key), Desc: desc}
						if index.Get(key) == nil {
							item.PartNo = partNo
						}
						missingByKey[key] = item
						missingOrder = append(missingOrder, key)
					}
					if item.Desc == "" {
						if desc := lookupChoiceDesc(group, partNo); desc != "" {
							item.Desc = desc
						}
					}
					item.MissingQty += groupResult.MissingQty
				}
			}

			for _, matchedNo := range groupResult.MatchedOrder {
				usedParts[textnorm.Key(matchedNo)] = struct{}{}
			}
		}

		results = append(results, entities.BindingProjectResult{
			ProjectDesc:        project.ProjectDesc,
			IndexPartNo:        project.IndexPartNo,
			MatchedQuantity:    consumedQty,
			RequirementResults: groupResults,
		})
	}

	missing := make([]entities.MissingItem, 0, len(missingOrder))
	for _, key := range missingOrder {
		missing = append(missing, *missingByKey[key])
	}
	return results, missing, usedParts, trace
}

type applicableChoice struct {
	order  int
	choice entities.BindingChoice
	key    entities.PartKey
	stock  float64 // pool balance snapshot used for the allocation sort
}

// evaluateGroup computes the group requirement from the consumed index
// quantity, filters the choices by their condition modes, and greedily
// allocates from the pool, highest current balance first. The stable sort
// keeps declaration order as the tie-break for equal balances.
func evaluateGroup(
	group entities.BindingGroup,
	consumedIndexQty float64,
	pool shared.InventoryPool,
	index *entities.PartIndex,
) entities.RequirementGroupResult {
	multiplier := group.Number
	requiredQty := consumedIndexQty * multiplier

	var applicable []applicableChoice
	availableQty := 0.0
	firstApplicable := ""
	for idx, choice := range group.Choices {
		if choice.PartNo == "" {
			continue
		}
		if !choiceApplicable(choice, index) {
			continue
		}
		key := textnorm.Key(choice.PartNo)
		if total := index.Quantity(key); total > 0 {
			availableQty += total
		}
		applicable = append(applicable, applicableChoice{
			order:  idx,
			choice: choice,
			key:    key,
			stock:  pool.Balance(key),
		})
		if firstApplicable == "" {
			firstApplicable = choice.PartNo
		}
	}

	if len(applicable) == 0 {
		// Nothing can satisfy the group; the whole requirement is missing
		// under a synthetic label so the shortage still surfaces.
		return entities.RequirementGroupResult{
			GroupName:      group.GroupName,
			RequiredQty:    requiredQty,
			MissingQty:     requiredQty,
			MissingChoices: []string{fmt.Sprintf("%s(无适用料号)", group.GroupName)},
			MatchedDetails: map[string]float64{},
		}
	}

	sort.SliceStable(applicable, func(i, j int) bool {
		if applicable[i].stock != applicable[j].stock {
			return applicable[i].stock > applicable[j].stock
		}
		return applicable[i].order < applicable[j].order
	})

	fulfilledQty := 0.0
	matchedDetails := make(map[string]float64)
	var matchedOrder []string
	for _, candidate := range applicable {
		remaining := requiredQty - fulfilledQty
		if remaining <= 0 {
			break
		}
		take := pool.Consume(candidate.key, remaining)
		if take <= 0 {
			continue
		}
		displayNo := index.DisplayNo(candidate.key)
		if _, seen := matchedDetails[displayNo]; !seen {
			matchedOrder = append(matchedOrder, displayNo)
		}
		matchedDetails[displayNo] += take
		fulfilledQty += take
	}

	missingQty := requiredQty - fulfilledQty
	if missingQty < 0 {
		missingQty = 0
	}
	var missingChoices []string
	if missingQty > 0 {
		missingChoices = []string{firstApplicable}
	}

	return entities.RequirementGroupResult{
		GroupName:      group.GroupName,
		RequiredQty:    requiredQty,
		AvailableQty:   availableQty,
		MissingQty:     missingQty,
		MissingChoices: missingChoices,
		MatchedDetails: matchedDetails,
		MatchedOrder:   matchedOrder,
	}
}

// choiceApplicable evaluates the choice's condition mode against aggregated
// quantities. ALL/ANY with an empty condition set can never hold; NOTANY
// with an empty set holds vacuously.
func choiceApplicable(choice entities.BindingChoice, index *entities.PartIndex) bool {
	if choice.ConditionMode == entities.ConditionNone {
		return true
	}

	var keys []entities.PartKey
	for _, partNo := range choice.ConditionPartNos {
		if key := textnorm.Key(partNo); key != "" {
			keys = append(keys, key)
		}
	}
	present := func(key entities.PartKey) bool {
		return index.Quantity(key) > 0
	}

	switch choice.ConditionMode {
	case entities.ConditionAll:
		if len(keys) == 0 {
			return false
		}
		for _, key := range keys {
			if !present(key) {
				return false
			}
		}
		return true
	case entities.ConditionAny:
		for _, key := range keys {
			if present(key) {
				return true
			}
		}
		return false
	case entities.ConditionNotAny:
		for _, key := range keys {
			if present(key) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func lookupChoiceDesc(group entities.BindingGroup, partNo string) string {
	for _, choice := range group.Choices {
		if choice.PartNo == partNo && choice.Desc != "" {
			return choice.Desc
		}
	}
	return ""
}
