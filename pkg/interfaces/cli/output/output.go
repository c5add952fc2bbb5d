// Package output renders an execution result as a human-readable summary.
package output

import (
	"fmt"
	"io"

	"github.com/songka/bomcheck/pkg/domain/entities"
	"github.com/songka/bomcheck/pkg/domain/services/quantity"
)

// Config holds configuration for summary output.
type Config struct {
	Verbose bool
}

// PrintSummary writes the reconciliation summary to w.
func PrintSummary(w io.Writer, result *entities.ExecutionResult, config Config) {
	fmt.Fprintf(w, "BOM Reconciliation Summary\n")
	fmt.Fprintf(w, "==========================\n\n")

	summary := result.ReplacementSummary
	fmt.Fprintf(w, "Invalid parts found:      %d\n", summary.TotalInvalidFound)
	fmt.Fprintf(w, "Previously marked:        %d\n", summary.TotalPreviouslyMarked)
	fmt.Fprintf(w, "Replaced:                 %d\n", summary.TotalReplaced)
	fmt.Fprintf(w, "Binding projects:         %d\n", len(result.BindingResults))
	fmt.Fprintf(w, "Important material hits:  %d\n", len(result.ImportantHits))
	fmt.Fprintf(w, "Remainder lines:          %d\n\n", len(result.Remainder))

	if len(result.MissingItems) > 0 {
		fmt.Fprintf(w, "Missing materials:\n")
		fmt.Fprintf(w, "%-20s %-12s %s\n", "Part Number", "Missing", "Description")
		fmt.Fprintf(w, "%-20s %-12s %s\n", "--------------------", "------------", "-----------")
		for _, item := range result.MissingItems {
			fmt.Fprintf(w, "%-20s %-12s %s\n", item.PartNo, quantity.Format(item.MissingQty), item.Desc)
		}
		fmt.Fprintln(w)
	}

	if len(result.ImportantHits) > 0 {
		fmt.Fprintf(w, "Important materials:\n")
		fmt.Fprintf(w, "%-20s %-12s %s\n", "Keyword", "Quantity", "Matched Parts")
		fmt.Fprintf(w, "%-20s %-12s %s\n", "--------------------", "------------", "-------------")
		for _, hit := range result.ImportantHits {
			fmt.Fprintf(w, "%-20s %-12s %d\n", hit.Keyword, quantity.Format(hit.TotalQuantity), len(hit.MatchedParts))
		}
		fmt.Fprintln(w)
	}

	if config.Verbose && len(result.Trace) > 0 {
		fmt.Fprintf(w, "Trace:\n")
		for _, line := range result.Trace {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
