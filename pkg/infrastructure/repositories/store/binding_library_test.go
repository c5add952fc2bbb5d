package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/songka/bomcheck/pkg/domain/entities"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoadBindingLibrary(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bindings.js", `[
  {
    "projectDesc": "主板配件",
    "indexPartNo": "U100",
    "indexPartDesc": "主板",
    "requiredGroups": [
      {
        "groupName": "螺丝组",
        "number": 4,
        "choices": [
          {"partNo": "U200", "desc": "螺丝"},
          {"partNo": "U201", "conditionMode": "NOTANY", "conditionPartNos": ["U300"]}
        ]
      },
      {
        "groupName": "垫片组",
        "choices": [
          {"partNo": "U400", "number": 2}
        ]
      }
    ]
  }
]`)

	library, err := LoadBindingLibrary(path)
	if err != nil {
		t.Fatalf("LoadBindingLibrary: %v", err)
	}
	if len(library.Projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(library.Projects))
	}

	project := library.Projects[0]
	if project.IndexPartNo != "U100" || project.ProjectDesc != "主板配件" {
		t.Errorf("project = %+v", project)
	}
	if len(project.RequiredGroups) != 2 {
		t.Fatalf("got %d groups, want 2", len(project.RequiredGroups))
	}

	screws := project.RequiredGroups[0]
	if screws.Number != 4 {
		t.Errorf("group number = %v, want 4", screws.Number)
	}
	if screws.Choices[1].ConditionMode != entities.ConditionNotAny {
		t.Errorf("condition mode = %v, want NOTANY", screws.Choices[1].ConditionMode)
	}
	if got := screws.Choices[1].ConditionPartNos; len(got) != 1 || got[0] != "U300" {
		t.Errorf("condition parts = %v", got)
	}

	washers := project.RequiredGroups[1]
	if washers.Number != 1.0 {
		t.Errorf("unspecified group number = %v, want default 1.0", washers.Number)
	}
	if washers.Choices[0].Number == nil || *washers.Choices[0].Number != 2 {
		t.Errorf("choice number not carried through: %+v", washers.Choices[0])
	}
}

func TestLoadBindingLibrary_UnknownConditionModeCollapsesToNone(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bindings.js", `[
  {
    "projectDesc": "p",
    "indexPartNo": "U100",
    "requiredGroups": [
      {"groupName": "g", "choices": [{"partNo": "U200", "conditionMode": "SOMEDAY"}]}
    ]
  }
]`)

	library, err := LoadBindingLibrary(path)
	if err != nil {
		t.Fatalf("LoadBindingLibrary: %v", err)
	}
	mode := library.Projects[0].RequiredGroups[0].Choices[0].ConditionMode
	if mode != entities.ConditionNone {
		t.Errorf("mode = %v, want ConditionNone", mode)
	}
}

func TestLoadBindingLibrary_MissingFile(t *testing.T) {
	library, err := LoadBindingLibrary(filepath.Join(t.TempDir(), "absent.js"))
	if err != nil {
		t.Fatalf("missing file must degrade to empty: %v", err)
	}
	if len(library.Projects) != 0 {
		t.Errorf("projects = %+v, want none", library.Projects)
	}
}

func TestLoadBindingLibrary_MalformedFileFails(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bindings.js", `{not json`)

	if _, err := LoadBindingLibrary(path); err == nil {
		t.Fatalf("malformed file must fail the load")
	}
}

func TestSaveBindingLibrary_RoundTrip(t *testing.T) {
	number := 2.0
	library := &entities.BindingLibrary{
		Projects: []entities.BindingProject{
			{
				ProjectDesc: "p",
				IndexPartNo: "U100",
				RequiredGroups: []entities.BindingGroup{
					{
						GroupName: "g",
						Number:    4,
						Choices: []entities.BindingChoice{
							{PartNo: "U200", Desc: "螺丝", ConditionMode: entities.ConditionAny, ConditionPartNos: []string{"U300"}, Number: &number},
						},
					},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "bindings.js")
	if err := SaveBindingLibrary(library, path); err != nil {
		t.Fatalf("SaveBindingLibrary: %v", err)
	}

	loaded, err := LoadBindingLibrary(path)
	if err != nil {
		t.Fatalf("LoadBindingLibrary: %v", err)
	}
	if len(loaded.Projects) != 1 {
		t.Fatalf("projects = %+v", loaded.Projects)
	}
	group := loaded.Projects[0].RequiredGroups[0]
	if group.Number != 4 {
		t.Errorf("group number = %v, want 4", group.Number)
	}
	choice := group.Choices[0]
	if choice.ConditionMode != entities.ConditionAny || choice.Desc != "螺丝" {
		t.Errorf("choice = %+v", choice)
	}
	if choice.Number == nil || *choice.Number != 2 {
		t.Errorf("choice number lost in round trip: %+v", choice)
	}
}

func TestLoadKeywords(t *testing.T) {
	path := writeFile(t, t.TempDir(), "keywords.txt", "电容\n\n  電阻  \n\n连接器\n")

	keywords, err := LoadKeywords(path)
	if err != nil {
		t.Fatalf("LoadKeywords: %v", err)
	}
	want := []string{"电容", "電阻", "连接器"}
	if len(keywords) != len(want) {
		t.Fatalf("keywords = %v, want %v", keywords, want)
	}
	for i := range want {
		if keywords[i] != want[i] {
			t.Errorf("keywords[%d] = %q, want %q", i, keywords[i], want[i])
		}
	}
}

func TestLoadKeywords_MissingFile(t *testing.T) {
	keywords, err := LoadKeywords(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil || keywords != nil {
		t.Errorf("missing file must mean no keywords: %v %v", keywords, err)
	}
}
