package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/songka/bomcheck/pkg/domain/entities"
	"github.com/songka/bomcheck/pkg/domain/services/quantity"
)

const bindingSheetName = "绑定料号"

var bindingHeader = []string{
	"项目描述", "索引料号", "索引描述", "分组名称", "分组数量",
	"料号", "描述", "条件模式", "条件料号", "数量",
}

// ExportBindingLibrary writes the library as a flattened one-choice-per-row
// sheet so it can be reviewed and edited outside the tool.
func ExportBindingLibrary(library *entities.BindingLibrary, path string) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	if err := file.SetSheetName(sheet, bindingSheetName); err != nil {
		return fmt.Errorf("failed to name binding sheet: %w", err)
	}
	sw := &sheetWriter{file: file, sheet: bindingSheetName}

	header := make([]interface{}, len(bindingHeader))
	for i, h := range bindingHeader {
		header[i] = h
	}
	if err := sw.append(header...); err != nil {
		return err
	}

	for _, project := range library.Projects {
		for _, group := range project.RequiredGroups {
			choices := group.Choices
			if len(choices) == 0 {
				choices = []entities.BindingChoice{{}}
			}
			for _, choice := range choices {
				number := ""
				if choice.Number != nil {
					number = quantity.Format(*choice.Number)
				}
				if err := sw.append(
					project.ProjectDesc,
					project.IndexPartNo,
					project.IndexPartDesc,
					group.GroupName,
					quantity.Format(group.Number),
					choice.PartNo,
					choice.Desc,
					choice.ConditionMode.String(),
					strings.Join(choice.ConditionPartNos, ","),
					number,
				); err != nil {
					return err
				}
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save binding export %s: %w", path, err)
	}
	return nil
}

// ImportBindingLibrary reads a flattened binding sheet back into an ordered
// library, merging rows into projects by (project desc, index part) and
// into groups by name. Column positions fall back to the canonical order
// when the header is missing a name.
func ImportBindingLibrary(path string) (*entities.BindingLibrary, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open binding import %s: %w", path, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return &entities.BindingLibrary{}, nil
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read binding import %s: %w", path, err)
	}
	if len(rows) == 0 {
		return &entities.BindingLibrary{}, nil
	}

	columns := make(map[string]int)
	for idx, name := range rows[0] {
		columns[strings.TrimSpace(name)] = idx
	}
	cell := func(row []string, name string, fallback int) string {
		idx, ok := columns[name]
		if !ok {
			idx = fallback
		}
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	library := &entities.BindingLibrary{}
	projectIndex := make(map[string]int)

	for _, row := range rows[1:] {
		projectDesc := cell(row, "项目描述", 0)
		indexPartNo := cell(row, "索引料号", 1)
		key := projectDesc + "::" + indexPartNo
		idx, ok := projectIndex[key]
		if !ok {
			library.Projects = append(library.Projects, entities.BindingProject{
				ProjectDesc:   projectDesc,
				IndexPartNo:   indexPartNo,
				IndexPartDesc: cell(row, "索引描述", 2),
			})
			idx = len(library.Projects) - 1
			projectIndex[key] = idx
		}
		project := &library.Projects[idx]

		groupName := cell(row, "分组名称", 3)
		if groupName == "" {
			continue
		}
		groupNumber := 1.0
		if parsed, ok := quantity.Parse(cell(row, "分组数量", 4)); ok {
			groupNumber = parsed
		}
		group := findOrCreateGroup(project, groupName, groupNumber)

		partNo := cell(row, "料号", 5)
		if partNo == "" {
			continue
		}
		choice := entities.BindingChoice{
			PartNo:        partNo,
			Desc:          cell(row, "描述", 6),
			ConditionMode: entities.ParseConditionMode(cell(row, "条件模式", 7)),
		}
		if raw := cell(row, "条件料号", 8); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				if part = strings.TrimSpace(part); part != "" {
					choice.ConditionPartNos = append(choice.ConditionPartNos, part)
				}
			}
		}
		if parsed, ok := quantity.Parse(cell(row, "数量", 9)); ok {
			choice.Number = &parsed
		}
		group.Choices = append(group.Choices, choice)
	}

	return library, nil
}

func findOrCreateGroup(project *entities.BindingProject, name string, number float64) *entities.BindingGroup {
	for i := range project.RequiredGroups {
		if project.RequiredGroups[i].GroupName == name {
			return &project.RequiredGroups[i]
		}
	}
	project.RequiredGroups = append(project.RequiredGroups, entities.BindingGroup{
		GroupName: name,
		Number:    number,
	})
	return &project.RequiredGroups[len(project.RequiredGroups)-1]
}
