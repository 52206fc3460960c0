package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rezainiet/inventory-backend/internal/domain"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnavailable       = errors.New("store unavailable")
)

// InsufficientStockError names the product and the quantity actually
// available so the caller can report a useful message.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.ProductName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Repository is the persistence contract consumed by the service layer.
//
// Every method is an independent write or read; there is no cross-entity
// transaction. Writes that touch a single product (its flat stock or one of
// its variants plus the derived aggregate) are atomic per product.
type Repository interface {
	// NextSKUSequence atomically increments and returns the counter for the
	// given prefix, creating it at 1 on first use. Two concurrent calls for
	// the same prefix must never observe the same value.
	NextSKUSequence(ctx context.Context, prefix string) (int64, error)

	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetProductsByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	// FindProductByVariantID locates the product owning the given variant id.
	FindProductByVariantID(ctx context.Context, variantID string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// AdjustProductStock applies a delta to a flat product's stock.
	// AdjustVariantStock applies a delta to the (color, size) variant and the
	// product's aggregate stock in one step. Both fail with an
	// InsufficientStockError when the delta would push a count below zero.
	AdjustProductStock(ctx context.Context, productID string, delta int) error
	AdjustVariantStock(ctx context.Context, productID string, color string, size string, delta int) error

	CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	// ListOrdersBetween returns orders whose orderDate falls inside the
	// window. A zero `from` means unbounded history.
	ListOrdersBetween(ctx context.Context, from time.Time, to time.Time) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error

	CreateSupplier(ctx context.Context, supplier domain.Supplier) (*domain.Supplier, error)
	GetSupplier(ctx context.Context, id string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	// Attach/Detach are idempotent set-membership updates; detaching a
	// non-member is a no-op.
	AttachSupplierProduct(ctx context.Context, supplierID string, productID string) error
	DetachSupplierProduct(ctx context.Context, supplierID string, productID string) error

	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) (*domain.User, error)

	TrendingProducts(ctx context.Context, since time.Time, limit int) ([]domain.ProductSales, error)
	TopSellingProducts(ctx context.Context, limit int) ([]domain.ProductSales, error)
}
