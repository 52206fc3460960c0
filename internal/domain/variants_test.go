package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeVariantAggregates(t *testing.T) {
	p := Product{
		Stock:  999, // stale, must be overwritten
		Colors: []string{"stale"},
		Sizes:  []string{"stale"},
		Variants: []Variant{
			{ID: "v1", Color: "Black", Size: "M", Stock: 40},
			{ID: "v2", Color: "Black", Size: "L", Stock: 35},
			{ID: "v3", Color: "White", Size: "M", Stock: 25},
		},
	}
	p.RecomputeVariantAggregates()

	assert.Equal(t, 100, p.Stock)
	assert.Equal(t, []string{"Black", "White"}, p.Colors)
	assert.Equal(t, []string{"M", "L"}, p.Sizes)
}

func TestRecomputeVariantAggregatesSkipsNegativeAndEmpty(t *testing.T) {
	p := Product{
		Variants: []Variant{
			{ID: "v1", Color: "Black", Size: "M", Stock: 10},
			{ID: "v2", Color: "", Size: "", Stock: -5},
		},
	}
	p.RecomputeVariantAggregates()

	assert.Equal(t, 10, p.Stock)
	assert.Equal(t, []string{"Black"}, p.Colors)
	assert.Equal(t, []string{"M"}, p.Sizes)
}

func TestRecomputeVariantAggregatesEmptyList(t *testing.T) {
	p := Product{Stock: 42, Colors: []string{"Black"}, Sizes: []string{"M"}}
	p.RecomputeVariantAggregates()

	// Flat-stock products keep their count; only the projections are cleared.
	assert.Equal(t, 42, p.Stock)
	assert.Nil(t, p.Colors)
	assert.Nil(t, p.Sizes)
}

func TestFindVariant(t *testing.T) {
	p := Product{
		Variants: []Variant{
			{ID: "v1", Color: "Black", Size: "M", Stock: 10},
			{ID: "v2", Color: "White", Size: "L", Stock: 5},
		},
	}

	v, ok := p.FindVariant("White", "L")
	require.True(t, ok)
	assert.Equal(t, "v2", v.ID)

	// Returned pointer aliases the slice so in-place edits stick.
	v.Stock = 7
	assert.Equal(t, 7, p.Variants[1].Stock)

	_, ok = p.FindVariant("White", "M")
	assert.False(t, ok)
}

func TestFindVariantByID(t *testing.T) {
	p := Product{
		Variants: []Variant{{ID: "v1", Color: "Black", Size: "M", Stock: 10}},
	}

	v, ok := p.FindVariantByID("v1")
	require.True(t, ok)
	assert.Equal(t, "Black", v.Color)

	_, ok = p.FindVariantByID("missing")
	assert.False(t, ok)
}

func TestEnumMembership(t *testing.T) {
	for _, s := range []string{FulfillmentPending, FulfillmentProcessing, FulfillmentShipped, FulfillmentDelivered, FulfillmentCancelled} {
		assert.True(t, IsFulfillmentStatus(s), s)
	}
	assert.False(t, IsFulfillmentStatus("Returned"))
	assert.False(t, IsFulfillmentStatus(""))

	for _, m := range []string{PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCashOnDelivery} {
		assert.True(t, IsPaymentMethod(m), m)
	}
	assert.False(t, IsPaymentMethod("Card"))
	assert.False(t, IsPaymentMethod(""))
}
