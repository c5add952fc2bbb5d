package store

import (
	"fmt"
	"os"
	"strings"
)

// LoadKeywords reads the newline-delimited important-material keyword list,
// dropping blank lines and preserving order. A missing file means no
// keywords.
func LoadKeywords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword list %s: %w", path, err)
	}

	var keywords []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			keywords = append(keywords, line)
		}
	}
	return keywords, nil
}
