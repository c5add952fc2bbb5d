// Package services implements the BOM reconciliation pipeline: column
// inference, invalid-part replacement, quantity aggregation, binding
// requirement evaluation, important-material scanning, and remainder
// calculation.
package services

import (
	"fmt"

	"github.com/songka/bomcheck/pkg/application/services/shared"
	"github.com/songka/bomcheck/pkg/domain/entities"
)

// Config holds the engine heuristics' tunable constants.
type Config struct {
	// PartMarkerPrefix distinguishes part-number cells during column
	// inference (reference designators in these BOMs start with "U").
	PartMarkerPrefix string
	// FallbackQuantityColumn is used when no column scores as a quantity
	// column.
	FallbackQuantityColumn int
}

// Engine runs the reconciliation pipeline. It holds no per-invocation
// state; every Execute call works on its own dataset and pool.
type Engine struct {
	config Config
}

// NewEngine creates an engine with the default heuristics.
func NewEngine() *Engine {
	return NewEngineWithConfig(Config{})
}

// NewEngineWithConfig creates an engine, defaulting any zero config fields.
func NewEngineWithConfig(config Config) *Engine {
	if config.PartMarkerPrefix == "" {
		config.PartMarkerPrefix = "U"
	}
	if config.FallbackQuantityColumn <= 0 {
		config.FallbackQuantityColumn = 3
	}
	return &Engine{config: config}
}

// References bundles the reference data sets consumed by one invocation.
// Missing data degrades to empty collections, never to a failure.
type References struct {
	InvalidParts entities.InvalidPartDirectory
	Bindings     *entities.BindingLibrary
	Keywords     []string
}

// Execute runs the full pipeline over a loaded dataset and returns the
// execution result. The dataset is mutated in place by the replacement
// stage (processed flags and appended replacement cells).
func (e *Engine) Execute(dataset *entities.Dataset, refs References) *entities.ExecutionResult {
	result := &entities.ExecutionResult{}

	summary, trace := e.ApplyReplacements(dataset, refs.InvalidParts)
	result.ReplacementSummary = summary
	result.Trace = append(result.Trace, trace...)

	index, trace := e.AggregateQuantities(dataset)
	result.Trace = append(result.Trace, trace...)

	pool := shared.NewInventoryPool(index)

	bindings := refs.Bindings
	if bindings == nil {
		bindings = &entities.BindingLibrary{}
	}
	bindingResults, missing, usedParts, trace := EvaluateBindings(index, pool, bindings)
	result.BindingResults = bindingResults
	result.MissingItems = missing
	result.Trace = append(result.Trace, trace...)

	hits, importantParts, trace := ScanImportantMaterials(index, refs.Keywords)
	result.ImportantHits = hits
	result.Trace = append(result.Trace, trace...)

	result.Remainder = ComputeRemainder(index, usedParts, importantParts)

	return result
}

func formatColumnTrace(col int, ok bool) string {
	if !ok {
		return "未识别"
	}
	return fmt.Sprintf("第%d列", col+1)
}
