package services

import (
	"strings"
	"testing"

	"github.com/songka/bomcheck/pkg/domain/entities"
	"github.com/songka/bomcheck/pkg/domain/services/textnorm"
)

// buildSheet creates a worksheet from plain string rows.
func buildSheet(name string, rows ...[]string) *entities.Sheet {
	return entities.NewSheet(name, rows)
}

// buildIndex creates a part index from (partNo, desc, qty) triples.
func buildIndex(t *testing.T, parts ...struct {
	PartNo string
	Desc   string
	Qty    float64
}) *entities.PartIndex {
	t.Helper()
	index := entities.NewPartIndex()
	for _, p := range parts {
		index.Add(textnorm.Key(p.PartNo), p.PartNo, p.Desc, p.Qty)
	}
	return index
}

type testPart = struct {
	PartNo string
	Desc   string
	Qty    float64
}

// group builds a single-group binding project.
func singleGroupProject(indexPartNo, groupName string, multiplier float64, choices ...entities.BindingChoice) entities.BindingProject {
	return entities.BindingProject{
		ProjectDesc: groupName + " project",
		IndexPartNo: indexPartNo,
		RequiredGroups: []entities.BindingGroup{
			{GroupName: groupName, Number: multiplier, Choices: choices},
		},
	}
}

func choice(partNo string) entities.BindingChoice {
	return entities.BindingChoice{PartNo: partNo}
}

func traceContains(trace []string, substr string) bool {
	for _, line := range trace {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
