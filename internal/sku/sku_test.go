package sku

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefix(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"basic", "Red Shoe", "RED"},
		{"lowercase", "canvas tote", "CAN"},
		{"surrounding whitespace", "  Red Shoe  ", "RED"},
		{"shorter than three", "Ox", "OX"},
		{"single rune", "a", "A"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"multibyte runes", "Ärmel", "ÄRM"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Prefix(tc.in))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "RED-000007", Format("RED", 7))
	assert.Equal(t, "CAN-000001", Format("CAN", 1))
	assert.Equal(t, "OX-123456", Format("OX", 123456))
	// Sequences beyond six digits widen rather than truncate.
	assert.Equal(t, "RED-1000000", Format("RED", 1000000))
}
