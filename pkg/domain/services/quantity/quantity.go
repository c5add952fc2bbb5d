// Package quantity parses and renders the loosely-typed quantity cells of
// BOM worksheets. Parsing tolerates thousands separators and embedded
// remarks by extracting the first numeric token; rendering keeps integral
// quantities free of fractional noise.
package quantity

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var numericToken = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// Parse extracts the first numeric token from a cell value. The second
// return is false when no number can be found.
func Parse(raw string) (float64, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, false
	}
	text = strings.ReplaceAll(text, ",", "")
	text = strings.ReplaceAll(text, "，", "")
	token := numericToken.FindString(text)
	if token == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(token)
	if err != nil {
		return 0, false
	}
	value, _ := d.Float64()
	return value, true
}

// IsIntegral reports whether a quantity is a whole number within rounding
// tolerance.
func IsIntegral(value float64) bool {
	d := decimal.NewFromFloat(value)
	return d.Sub(d.Round(0)).Abs().LessThanOrEqual(decimal.New(1, -6))
}

// Format renders a quantity for reports: integral values without a
// fractional part, others rounded to four places.
func Format(value float64) string {
	d := decimal.NewFromFloat(value)
	rounded := d.Round(0)
	if d.Sub(rounded).Abs().LessThanOrEqual(decimal.New(1, -6)) {
		return rounded.String()
	}
	return d.Round(4).String()
}
