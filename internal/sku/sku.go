// Package sku builds human-readable stock keeping unit codes from a
// per-prefix sequence. The sequence itself is owned by the store so that
// allocation survives restarts and concurrent instances.
package sku

import (
	"fmt"
	"strings"
)

// Prefix derives the counter prefix from a product name: surrounding
// whitespace trimmed, first three characters, uppercased. Names shorter than
// three characters are used as-is without padding.
func Prefix(name string) string {
	trimmed := strings.TrimSpace(name)
	runes := []rune(trimmed)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// Format renders the final code, e.g. Format("RED", 7) == "RED-000007".
func Format(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%06d", prefix, seq)
}
