package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsufficientStockErrorUnwraps(t *testing.T) {
	err := &InsufficientStockError{ProductName: "Classic Tee", Requested: 5, Available: 2}

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, "insufficient stock for Classic Tee: requested 5, available 2", err.Error())

	// Wrapping survives another layer, as the service does on order create.
	wrapped := fmt.Errorf("order ORD-1 saved but stock update failed: %w", err)
	assert.ErrorIs(t, wrapped, ErrInsufficientStock)

	var target *InsufficientStockError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, 2, target.Available)
}
