// Package textnorm canonicalizes part numbers and free text and produces
// script-insensitive variants for fuzzy keyword matching. Variants cover
// Simplified and Traditional Chinese renderings in both directions, so a
// keyword written in one script matches descriptions written in the other.
package textnorm

import (
	"strings"
	"sync"

	"github.com/longbridgeapp/opencc"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/songka/bomcheck/pkg/domain/entities"
)

var (
	converterOnce sync.Once
	t2s           *opencc.OpenCC
	s2t           *opencc.OpenCC
)

// converters initializes the OpenCC converters once. A converter that fails
// to initialize stays nil and variant generation degrades to the base form.
func converters() (*opencc.OpenCC, *opencc.OpenCC) {
	converterOnce.Do(func() {
		if c, err := opencc.New("t2s"); err == nil {
			t2s = c
		}
		if c, err := opencc.New("s2t"); err == nil {
			s2t = c
		}
	})
	return t2s, s2t
}

func convert(c *opencc.OpenCC, value string) string {
	if c == nil || value == "" {
		return ""
	}
	out, err := c.Convert(value)
	if err != nil {
		return ""
	}
	return out
}

// Key returns the normalized part key: trimmed, upper-cased, with all
// interior whitespace removed.
func Key(value string) entities.PartKey {
	return entities.PartKey(strings.Join(strings.Fields(strings.ToUpper(value)), ""))
}

// prepare is the case/width canonical form shared by Normalize and Variants:
// trim, NFKC, full-width to half-width, lower.
func prepare(value string) string {
	folded := width.Fold.String(norm.NFKC.String(value))
	return strings.ToLower(strings.TrimSpace(folded))
}

// Normalize returns the canonical Simplified-script rendering of a value.
// Normalize is idempotent.
func Normalize(value string) string {
	base := prepare(value)
	toSimplified, _ := converters()
	if converted := convert(toSimplified, base); converted != "" {
		return strings.ToLower(strings.TrimSpace(converted))
	}
	return base
}

// Variants returns every distinct normalized rendering of a value: the
// prepared base plus its conversions in both script directions.
func Variants(value string) []string {
	var variants []string
	seen := make(map[string]struct{})
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}

	base := prepare(value)
	add(base)
	toSimplified, toTraditional := converters()
	add(prepare(convert(toSimplified, base)))
	add(prepare(convert(toTraditional, base)))
	return variants
}

// Match reports whether any keyword variant is a substring of any value
// variant, or vice versa. The bidirectional containment tolerates partial
// keyword hits and cross-script spelling differences.
func Match(keywordVariants, valueVariants []string) bool {
	for _, kw := range keywordVariants {
		if kw == "" {
			continue
		}
		for _, val := range valueVariants {
			if val == "" {
				continue
			}
			if strings.Contains(val, kw) || strings.Contains(kw, val) {
				return true
			}
		}
	}
	return false
}
