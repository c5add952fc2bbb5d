package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/songka/bomcheck/pkg/interfaces/cli/commands"
)

func main() {
	var (
		workbook = flag.String("workbook", "", "Path to the BOM workbook to reconcile")
		cfgPath  = flag.String("config", "config.json", "Path to the app config file")
		invalid  = flag.String("invalid", "", "Invalid-part directory override")
		bindings = flag.String("bindings", "", "Binding library override")
		keywords = flag.String("keywords", "", "Keyword list override")
		dryRun   = flag.Bool("dry-run", false, "Run the engine without saving the workbook")
		verbose  = flag.Bool("verbose", false, "Print the diagnostic trace")
		help     = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		WorkbookPath:    *workbook,
		ConfigPath:      *cfgPath,
		InvalidPartFile: *invalid,
		BindingFile:     *bindings,
		KeywordFile:     *keywords,
		Verbose:         *verbose,
		DryRun:          *dryRun,
		Help:            *help,
	}

	cmd := commands.NewCheckCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
