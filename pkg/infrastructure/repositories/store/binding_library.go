// Package store persists the reference data sets kept outside the BOM
// workbook: the JSON binding library and the important-material keyword
// list.
package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/songka/bomcheck/pkg/domain/entities"
)

// The JSON layout mirrors the persisted binding file; the string-typed
// condition mode is converted to the closed enum here, at the load
// boundary.

type bindingChoiceJSON struct {
	PartNo           string   `json:"partNo"`
	Desc             string   `json:"desc"`
	ConditionMode    string   `json:"conditionMode,omitempty"`
	ConditionPartNos []string `json:"conditionPartNos,omitempty"`
	Number           *float64 `json:"number,omitempty"`
}

type bindingGroupJSON struct {
	GroupName string              `json:"groupName"`
	Number    *float64            `json:"number,omitempty"`
	Choices   []bindingChoiceJSON `json:"choices"`
}

type bindingProjectJSON struct {
	ProjectDesc    string             `json:"projectDesc"`
	IndexPartNo    string             `json:"indexPartNo"`
	IndexPartDesc  string             `json:"indexPartDesc"`
	RequiredGroups []bindingGroupJSON `json:"requiredGroups"`
}

// LoadBindingLibrary reads the ordered project list. A missing file
// degrades to an empty library; an unreadable one fails the invocation.
func LoadBindingLibrary(path string) (*entities.BindingLibrary, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &entities.BindingLibrary{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read binding library %s: %w", path, err)
	}

	var projects []bindingProjectJSON
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("failed to parse binding library %s: %w", path, err)
	}

	library := &entities.BindingLibrary{}
	for _, p := range projects {
		project := entities.BindingProject{
			ProjectDesc:   p.ProjectDesc,
			IndexPartNo:   p.IndexPartNo,
			IndexPartDesc: p.IndexPartDesc,
		}
		for _, g := range p.RequiredGroups {
			group := entities.BindingGroup{
				GroupName: g.GroupName,
				Number:    1.0,
			}
			if g.Number != nil {
				group.Number = *g.Number
			}
			for _, c := range g.Choices {
				group.Choices = append(group.Choices, entities.BindingChoice{
					PartNo:           c.PartNo,
					Desc:             c.Desc,
					ConditionMode:    entities.ParseConditionMode(c.ConditionMode),
					ConditionPartNos: c.ConditionPartNos,
					Number:           c.Number,
				})
			}
			project.RequiredGroups = append(project.RequiredGroups, group)
		}
		library.Projects = append(library.Projects, project)
	}
	return library, nil
}

// SaveBindingLibrary writes the library back in the same JSON layout.
func SaveBindingLibrary(library *entities.BindingLibrary, path string) error {
	projects := make([]bindingProjectJSON, 0, len(library.Projects))
	for _, p := range library.Projects {
		project := bindingProjectJSON{
			ProjectDesc:   p.ProjectDesc,
			IndexPartNo:   p.IndexPartNo,
			IndexPartDesc: p.IndexPartDesc,
		}
		for _, g := range p.RequiredGroups {
			number := g.Number
			group := bindingGroupJSON{
				GroupName: g.GroupName,
				Number:    &number,
				Choices:   []bindingChoiceJSON{},
			}
			for _, c := range g.Choices {
				group.Choices = append(group.Choices, bindingChoiceJSON{
					PartNo:           c.PartNo,
					Desc:             c.Desc,
					ConditionMode:    c.ConditionMode.String(),
					ConditionPartNos: c.ConditionPartNos,
					Number:           c.Number,
				})
			}
			project.RequiredGroups = append(project.RequiredGroups, group)
		}
		projects = append(projects, project)
	}

	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode binding library: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write binding library %s: %w", path, err)
	}
	return nil
}
