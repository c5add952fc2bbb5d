package excel

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/songka/bomcheck/pkg/domain/entities"
	"github.com/songka/bomcheck/pkg/domain/services/textnorm"
)

// LoadInvalidParts reads the deprecated-part directory from the first sheet
// of an xlsx file: (invalid part, invalid desc, replacement part,
// replacement desc), header row skipped. A missing file degrades to an
// empty directory.
func LoadInvalidParts(path string) (entities.InvalidPartDirectory, error) {
	directory := make(entities.InvalidPartDirectory)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return directory, nil
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open invalid-part directory %s: %w", path, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return directory, nil
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read invalid-part directory %s: %w", path, err)
	}

	column := func(row []string, idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		invalidNo := column(row, 0)
		if invalidNo == "" {
			continue
		}
		directory[textnorm.Key(invalidNo)] = entities.InvalidPartEntry{
			InvalidPartNo:   invalidNo,
			InvalidDesc:     column(row, 1),
			ReplacementNo:   column(row, 2),
			ReplacementDesc: column(row, 3),
		}
	}
	return directory, nil
}
