package entities

import "strings"

// ConditionMode gates a binding choice on the presence or absence of other
// parts in the aggregated BOM.
type ConditionMode int

const (
	// ConditionNone means the choice is always applicable.
	ConditionNone ConditionMode = iota
	// ConditionAll requires every condition part to be present.
	ConditionAll
	// ConditionAny requires at least one condition part to be present.
	ConditionAny
	// ConditionNotAny requires none of the condition parts to be present.
	ConditionNotAny
)

// ParseConditionMode maps the string-typed mode of the persisted binding
// data onto the closed enum. Unrecognized values collapse to ConditionNone.
func ParseConditionMode(s string) ConditionMode {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ALL":
		return ConditionAll
	case "ANY":
		return ConditionAny
	case "NOTANY":
		return ConditionNotAny
	default:
		return ConditionNone
	}
}

func (m ConditionMode) String() string {
	switch m {
	case ConditionAll:
		return "ALL"
	case ConditionAny:
		return "ANY"
	case ConditionNotAny:
		return "NOTANY"
	default:
		return ""
	}
}

// BindingChoice is one interchangeable component satisfying a group
// requirement. A choice with an empty PartNo is an inert placeholder.
type BindingChoice struct {
	PartNo           string
	Desc             string
	ConditionMode    ConditionMode
	ConditionPartNos []string
	// Number is an optional per-choice multiplier carried through from the
	// binding data for editors and exports; the evaluator does not use it.
	Number *float64
}

// BindingGroup is a named requirement within a project. Choice order is the
// allocation tie-break and must be preserved.
type BindingGroup struct {
	GroupName string
	Number    float64 // requirement multiplier, 1.0 when unspecified
	Choices   []BindingChoice
}

// BindingProject describes the auxiliary components that must accompany an
// index part.
type BindingProject struct {
	ProjectDesc    string
	IndexPartNo    string
	IndexPartDesc  string
	RequiredGroups []BindingGroup
}

// BindingLibrary is the ordered project list. Projects sharing an index part
// compete for the same inventory pool in declaration order.
type BindingLibrary struct {
	Projects []BindingProject
}
