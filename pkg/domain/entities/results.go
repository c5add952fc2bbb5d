package entities

// ReplacementRecord logs one substitution performed by the replacement stage.
type ReplacementRecord struct {
	InvalidPartNo   string
	InvalidDesc     string
	ReplacementNo   string // empty when the invalid part had no replacement
	ReplacementDesc string
	SheetName       string
	RowIndex        int // 1-based worksheet row
}

// ReplacementSummary totals the replacement stage across all sheets.
type ReplacementSummary struct {
	TotalInvalidFound     int
	TotalPreviouslyMarked int
	TotalReplaced         int
	Records               []ReplacementRecord
}

// RequirementGroupResult is the evaluation of one binding group.
type RequirementGroupResult struct {
	GroupName    string
	RequiredQty  float64
	AvailableQty float64 // informational: aggregate stock across applicable choices
	MissingQty   float64
	// MissingChoices names a representative part still short, or a synthetic
	// label when the group had no applicable choice at all.
	MissingChoices []string
	// MatchedDetails maps display part numbers to consumed quantities;
	// MatchedOrder preserves allocation order for deterministic rendering.
	MatchedDetails map[string]float64
	MatchedOrder   []string
}

// BindingProjectResult is the evaluation of one binding project.
type BindingProjectResult struct {
	ProjectDesc        string
	IndexPartNo        string
	MatchedQuantity    float64 // index quantity consumed from the pool
	RequirementResults []RequirementGroupResult
}

// HasMissing reports whether any group of the project is short.
func (r BindingProjectResult) HasMissing() bool {
	for _, group := range r.RequirementResults {
		if group.MissingQty > 0 {
			return true
		}
	}
	return false
}

// MissingItem is a shortage merged across all groups and projects that
// reported the same part key.
type MissingItem struct {
	PartNo     string
	Desc       string
	MissingQty float64
}

// ImportantMaterialHit is one keyword with its matched inventory.
type ImportantMaterialHit struct {
	Keyword          string
	ConvertedKeyword string
	TotalQuantity    float64
	MatchedParts     map[string]float64
	MatchedOrder     []string
}

// RemainderItem is one untouched or specially-flagged inventory line.
type RemainderItem struct {
	PartNo   string
	Desc     string
	Quantity float64
}

// ExecutionResult is the complete output of one engine invocation.
type ExecutionResult struct {
	ReplacementSummary ReplacementSummary
	BindingResults     []BindingProjectResult
	ImportantHits      []ImportantMaterialHit
	MissingItems       []MissingItem
	Remainder          []RemainderItem
	// Trace is the ordered diagnostic log; row- and cell-level problems
	// surface here instead of failing the run.
	Trace []string
}

// HasMissing reports whether the run found any shortage.
func (r *ExecutionResult) HasMissing() bool {
	if len(r.MissingItems) > 0 {
		return true
	}
	for _, result := range r.BindingResults {
		if result.HasMissing() {
			return true
		}
	}
	return false
}
