// Package commands wires the reconciliation pipeline to its inputs: the
// BOM workbook, the app config, and the three reference data sets.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/songka/bomcheck/pkg/application/services"
	"github.com/songka/bomcheck/pkg/infrastructure/config"
	"github.com/songka/bomcheck/pkg/infrastructure/repositories/excel"
	"github.com/songka/bomcheck/pkg/infrastructure/repositories/store"
	"github.com/songka/bomcheck/pkg/interfaces/cli/output"
)

// Config holds configuration for the check command.
type Config struct {
	WorkbookPath    string
	ConfigPath      string
	InvalidPartFile string // overrides the config entry when set
	BindingFile     string
	KeywordFile     string
	Verbose         bool
	DryRun          bool // run the engine but do not save the workbook
	Help            bool
}

// CheckCommand runs one reconciliation over a BOM workbook.
type CheckCommand struct {
	config Config
}

// NewCheckCommand creates a check command with the given configuration.
func NewCheckCommand(config Config) *CheckCommand {
	return &CheckCommand{config: config}
}

// Execute loads the inputs, runs the engine, writes the report sheets back
// into the workbook, and prints a summary.
func (c *CheckCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.WorkbookPath == "" {
		c.showHelp()
		return fmt.Errorf("no workbook specified")
	}

	appCfg, err := config.Load(c.config.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	invalidPath := firstNonEmpty(c.config.InvalidPartFile, appCfg.InvalidPartDB)
	bindingPath := firstNonEmpty(c.config.BindingFile, appCfg.BindingLibrary)
	keywordPath := firstNonEmpty(c.config.KeywordFile, appCfg.ImportantMaterials)

	invalidParts, err := excel.LoadInvalidParts(invalidPath)
	if err != nil {
		return fmt.Errorf("failed to load invalid-part directory: %w", err)
	}
	bindings, err := store.LoadBindingLibrary(bindingPath)
	if err != nil {
		return fmt.Errorf("failed to load binding library: %w", err)
	}
	keywords, err := store.LoadKeywords(keywordPath)
	if err != nil {
		return fmt.Errorf("failed to load keyword list: %w", err)
	}

	workbook, err := excel.OpenWorkbook(c.config.WorkbookPath)
	if err != nil {
		return err
	}

	engine := services.NewEngine()
	result := engine.Execute(workbook.Dataset(), services.References{
		InvalidParts: invalidParts,
		Bindings:     bindings,
		Keywords:     keywords,
	})

	if c.config.DryRun {
		if err := workbook.Close(); err != nil {
			return fmt.Errorf("failed to close workbook: %w", err)
		}
	} else if err := workbook.Save(result); err != nil {
		return err
	}

	output.PrintSummary(os.Stdout, result, output.Config{Verbose: c.config.Verbose})
	return nil
}

func (c *CheckCommand) showHelp() {
	fmt.Println("bomcheck - reconcile a BOM workbook against reference data")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  bomcheck -workbook <file.xlsx> [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -workbook string   Path to the BOM workbook (required)")
	fmt.Println("  -config string     Path to the app config (default config.json)")
	fmt.Println("  -invalid string    Invalid-part directory override")
	fmt.Println("  -bindings string   Binding library override")
	fmt.Println("  -keywords string   Keyword list override")
	fmt.Println("  -dry-run           Run without saving the workbook")
	fmt.Println("  -verbose           Print the diagnostic trace")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
