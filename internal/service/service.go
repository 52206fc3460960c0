// Package service holds the inventory/order consistency core: SKU
// allocation, variant-aware stock bookkeeping, the order lifecycle and
// supplier linkage. The HTTP layer above it is a thin adapter; the store
// below it is a plain document repository.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rezainiet/inventory-backend/internal/cache"
	"github.com/rezainiet/inventory-backend/internal/domain"
	"github.com/rezainiet/inventory-backend/internal/sku"
	"github.com/rezainiet/inventory-backend/internal/store"
	"github.com/rezainiet/inventory-backend/internal/token"
)

type Service struct {
	repo       store.Repository
	salesCache cache.SalesCache
	cacheTTL   time.Duration
}

func New(repo store.Repository, salesCache cache.SalesCache, cacheTTL time.Duration) *Service {
	if salesCache == nil {
		salesCache = cache.NoopSalesCache{}
	}
	return &Service{
		repo:       repo,
		salesCache: salesCache,
		cacheTTL:   cacheTTL,
	}
}

// AllocateSKU issues the next code for the product name's prefix. The
// increment is atomic in the store, so two concurrent allocations for the
// same prefix always yield distinct codes. Calling twice with the same name
// yields different SKUs; allocation is a side effect, not a pure function.
func (s *Service) AllocateSKU(ctx context.Context, name string) (string, error) {
	prefix := sku.Prefix(name)
	if prefix == "" {
		return "", fmt.Errorf("%w: product name is required", store.ErrInvalidInput)
	}
	seq, err := s.repo.NextSKUSequence(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("allocate sku for prefix %s: %w", prefix, err)
	}
	return sku.Format(prefix, seq), nil
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	return *p, nil
}

func validateVariants(variants []domain.Variant) error {
	for _, v := range variants {
		if v.Stock < 0 {
			return fmt.Errorf("%w: variant stock must not be negative", store.ErrInvalidInput)
		}
	}
	return nil
}

func (s *Service) CreateProduct(ctx context.Context, req domain.ProductCreateRequest) (domain.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)

	if req.Name == "" {
		return domain.Product{}, fmt.Errorf("%w: name is required", store.ErrInvalidInput)
	}
	if req.Category == "" {
		return domain.Product{}, fmt.Errorf("%w: category is required", store.ErrInvalidInput)
	}
	if req.Price < 0 {
		return domain.Product{}, fmt.Errorf("%w: price must not be negative", store.ErrInvalidInput)
	}
	if req.ProductionCost != nil && *req.ProductionCost < 0 {
		return domain.Product{}, fmt.Errorf("%w: production cost must not be negative", store.ErrInvalidInput)
	}
	if req.Status == "" {
		req.Status = domain.ProductStatusInStock
	}
	if err := validateVariants(req.Variants); err != nil {
		return domain.Product{}, err
	}
	if len(req.Variants) == 0 && req.Stock < 0 {
		return domain.Product{}, fmt.Errorf("%w: stock must not be negative", store.ErrInvalidInput)
	}

	// The SKU must exist before the product does; a counter failure aborts
	// the whole creation.
	code, err := s.AllocateSKU(ctx, req.Name)
	if err != nil {
		return domain.Product{}, err
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:             uuid.NewString(),
		SKU:            code,
		Name:           req.Name,
		Price:          req.Price,
		ProductionCost: req.ProductionCost,
		Stock:          req.Stock,
		Category:       req.Category,
		Status:         req.Status,
		Description:    req.Description,
		Image:          req.Image,
		SupplierID:     req.SupplierID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if len(req.Variants) > 0 {
		product.Variants = make([]domain.Variant, len(req.Variants))
		copy(product.Variants, req.Variants)
		for i := range product.Variants {
			if product.Variants[i].ID == "" {
				product.Variants[i].ID = uuid.NewString()
			}
		}
		product.RecomputeVariantAggregates()
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	// Supplier linkage is a secondary, non-transactional write: the product
	// exists even when this fails.
	if created.SupplierID != "" {
		if err := s.repo.AttachSupplierProduct(ctx, created.SupplierID, created.ID); err != nil {
			log.Printf("[service] WARN: failed to attach product %s to supplier %s: %v", created.ID, created.SupplierID, err)
		}
	}

	return *created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, req domain.ProductUpdateRequest) (domain.Product, error) {
	existing, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	updated := *existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Product{}, fmt.Errorf("%w: name must not be empty", store.ErrInvalidInput)
		}
		updated.Name = name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return domain.Product{}, fmt.Errorf("%w: price must not be negative", store.ErrInvalidInput)
		}
		updated.Price = *req.Price
	}
	if req.ProductionCost != nil {
		if *req.ProductionCost < 0 {
			return domain.Product{}, fmt.Errorf("%w: production cost must not be negative", store.ErrInvalidInput)
		}
		updated.ProductionCost = req.ProductionCost
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Image != nil {
		updated.Image = *req.Image
	}
	if req.SupplierID != nil {
		updated.SupplierID = *req.SupplierID
	}

	switch {
	case req.Variants != nil:
		// Replacing the variant list recomputes every derived field; the
		// caller never supplies aggregates.
		if err := validateVariants(*req.Variants); err != nil {
			return domain.Product{}, err
		}
		updated.Variants = make([]domain.Variant, len(*req.Variants))
		copy(updated.Variants, *req.Variants)
		for i := range updated.Variants {
			if updated.Variants[i].ID == "" {
				updated.Variants[i].ID = uuid.NewString()
			}
		}
		updated.RecomputeVariantAggregates()
	case req.Stock != nil:
		if updated.HasVariants() {
			return domain.Product{}, fmt.Errorf("%w: stock is derived from variants for this product", store.ErrInvalidInput)
		}
		if *req.Stock < 0 {
			return domain.Product{}, fmt.Errorf("%w: stock must not be negative", store.ErrInvalidInput)
		}
		updated.Stock = *req.Stock
	}

	updated.UpdatedAt = time.Now().UTC()
	saved, err := s.repo.UpdateProduct(ctx, updated)
	if err != nil {
		return domain.Product{}, err
	}
	return *saved, nil
}

// UpdateVariant edits one variant by its internal id, then restores the
// derived aggregates from the full variant list.
func (s *Service) UpdateVariant(ctx context.Context, variantID string, req domain.VariantUpdateRequest) (domain.Product, error) {
	if req.Stock < 0 {
		return domain.Product{}, fmt.Errorf("%w: variant stock must not be negative", store.ErrInvalidInput)
	}

	product, err := s.repo.FindProductByVariantID(ctx, variantID)
	if err != nil {
		return domain.Product{}, err
	}

	variant, ok := product.FindVariantByID(variantID)
	if !ok {
		return domain.Product{}, store.ErrNotFound
	}
	variant.Color = req.Color
	variant.Size = req.Size
	variant.Stock = req.Stock

	product.RecomputeVariantAggregates()
	product.UpdatedAt = time.Now().UTC()

	saved, err := s.repo.UpdateProduct(ctx, *product)
	if err != nil {
		return domain.Product{}, err
	}
	return *saved, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	if product.SupplierID != "" {
		if err := s.repo.DetachSupplierProduct(ctx, product.SupplierID, id); err != nil {
			log.Printf("[service] WARN: failed to detach product %s from supplier %s: %v", id, product.SupplierID, err)
		}
	}
	return nil
}

func (s *Service) CreateOrder(ctx context.Context, req domain.OrderCreateRequest) (domain.Order, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.ShippingAddress = strings.TrimSpace(req.ShippingAddress)

	if req.CustomerName == "" {
		return domain.Order{}, fmt.Errorf("%w: customer name is required", store.ErrInvalidInput)
	}
	if req.CustomerPhone == "" {
		return domain.Order{}, fmt.Errorf("%w: customer phone is required", store.ErrInvalidInput)
	}
	if len(req.Products) == 0 {
		return domain.Order{}, fmt.Errorf("%w: at least one line item is required", store.ErrInvalidInput)
	}
	if req.ShippingAddress == "" {
		return domain.Order{}, fmt.Errorf("%w: shipping address is required", store.ErrInvalidInput)
	}
	if !domain.IsPaymentMethod(req.PaymentMethod) {
		return domain.Order{}, fmt.Errorf("%w: payment method is required", store.ErrInvalidInput)
	}
	for _, item := range req.Products {
		if item.ProductID == "" {
			return domain.Order{}, fmt.Errorf("%w: line item product reference is required", store.ErrInvalidInput)
		}
		if item.Quantity < 1 {
			return domain.Order{}, fmt.Errorf("%w: line item quantity must be at least 1", store.ErrInvalidInput)
		}
	}

	ids := make([]string, 0, len(req.Products))
	for _, item := range req.Products {
		ids = append(ids, item.ProductID)
	}
	products, err := s.repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return domain.Order{}, err
	}

	// Validate every line item before touching any stock. A later item with
	// insufficient stock must not leave earlier decrements behind.
	for _, item := range req.Products {
		product, ok := products[item.ProductID]
		if !ok {
			return domain.Order{}, fmt.Errorf("product %s: %w", item.ProductID, store.ErrNotFound)
		}
		if product.HasVariants() {
			variant, ok := product.FindVariant(item.Color, item.Size)
			if !ok {
				return domain.Order{}, &store.InsufficientStockError{
					ProductName: product.Name,
					Requested:   item.Quantity,
					Available:   0,
				}
			}
			if variant.Stock < item.Quantity {
				return domain.Order{}, &store.InsufficientStockError{
					ProductName: product.Name,
					Requested:   item.Quantity,
					Available:   variant.Stock,
				}
			}
		} else if product.Stock < item.Quantity {
			return domain.Order{}, &store.InsufficientStockError{
				ProductName: product.Name,
				Requested:   item.Quantity,
				Available:   product.Stock,
			}
		}
	}

	// Totals use the caller-supplied line prices: an order is a snapshot of
	// what the customer agreed to pay, not of the current catalog price.
	totalAmount := 0.0
	for _, item := range req.Products {
		totalAmount += item.Price * float64(item.Quantity)
	}
	finalAmount := totalAmount - req.Discount + req.Tax

	now := time.Now().UTC()
	order := domain.Order{
		ID:                uuid.NewString(),
		OrderNumber:       token.New("ORD"),
		CustomerName:      req.CustomerName,
		CustomerPhone:     req.CustomerPhone,
		CustomerEmail:     req.CustomerEmail,
		Products:          req.Products,
		TotalAmount:       totalAmount,
		Discount:          req.Discount,
		Tax:               req.Tax,
		FinalAmount:       finalAmount,
		OrderDate:         now,
		PaymentStatus:     domain.PaymentStatusPending,
		PaymentMethod:     req.PaymentMethod,
		FulfillmentStatus: domain.FulfillmentPending,
		ShippingAddress:   req.ShippingAddress,
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}

	// Decrement follows persistence. Each product write stands alone: a
	// failure here leaves the order saved and earlier decrements applied.
	// There is no compensation; the error is surfaced for manual re-drive.
	for _, item := range created.Products {
		product := products[item.ProductID]
		if product.HasVariants() {
			err = s.repo.AdjustVariantStock(ctx, item.ProductID, item.Color, item.Size, -item.Quantity)
		} else {
			err = s.repo.AdjustProductStock(ctx, item.ProductID, -item.Quantity)
		}
		if err != nil {
			log.Printf("[service] WARN: order %s saved but stock decrement failed for product %s: %v", created.OrderNumber, item.ProductID, err)
			return domain.Order{}, fmt.Errorf("order %s saved but stock update failed: %w", created.OrderNumber, err)
		}
	}

	return *created, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	return *o, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

// UpdateOrderStatus sets the fulfillment state directly. Transitions are not
// validated and stock is untouched: only creation and deletion move stock.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status string) (domain.Order, error) {
	if !domain.IsFulfillmentStatus(status) {
		return domain.Order{}, fmt.Errorf("%w: unknown fulfillment status %q", store.ErrInvalidInput, status)
	}
	updated, err := s.repo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return domain.Order{}, err
	}
	return *updated, nil
}

// DeleteOrder restores stock for every line item, then removes the order.
// Restoration runs first and fails fast: when it stops partway the order is
// kept and earlier restores remain applied. There is no compensation.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(order.Products))
	for _, item := range order.Products {
		ids = append(ids, item.ProductID)
	}
	products, err := s.repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, item := range order.Products {
		product, ok := products[item.ProductID]
		if !ok {
			// Product deleted since the order was placed; nothing to restore.
			continue
		}
		if product.HasVariants() {
			err = s.repo.AdjustVariantStock(ctx, item.ProductID, item.Color, item.Size, item.Quantity)
		} else {
			err = s.repo.AdjustProductStock(ctx, item.ProductID, item.Quantity)
		}
		if err != nil {
			return fmt.Errorf("restore stock for product %s: %w", item.ProductID, err)
		}
	}

	return s.repo.DeleteOrder(ctx, id)
}

func (s *Service) CreateSupplier(ctx context.Context, req domain.SupplierCreateRequest) (domain.Supplier, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.ContactPerson = strings.TrimSpace(req.ContactPerson)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)

	if req.Name == "" || req.ContactPerson == "" || req.Email == "" || req.Phone == "" || req.Address == "" {
		return domain.Supplier{}, fmt.Errorf("%w: name, contact person, email, phone and address are required", store.ErrInvalidInput)
	}
	if !strings.Contains(req.Email, "@") {
		return domain.Supplier{}, fmt.Errorf("%w: invalid email address", store.ErrInvalidInput)
	}
	if req.Status == "" {
		req.Status = domain.SupplierStatusActive
	}

	now := time.Now().UTC()
	supplier := domain.Supplier{
		ID:               uuid.NewString(),
		Name:             req.Name,
		ContactPerson:    req.ContactPerson,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		ProductsSupplied: []string{},
		Status:           req.Status,
		LastOrderDate:    &now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.repo.CreateSupplier(ctx, supplier)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.Supplier{}, fmt.Errorf("supplier with this email already exists: %w", store.ErrConflict)
		}
		return domain.Supplier{}, err
	}
	return *created, nil
}

func (s *Service) GetSupplier(ctx context.Context, id string) (domain.Supplier, error) {
	sp, err := s.repo.GetSupplier(ctx, id)
	if err != nil {
		return domain.Supplier{}, err
	}
	return *sp, nil
}

func (s *Service) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

func (s *Service) CreateUser(ctx context.Context, req domain.UserCreateRequest) (domain.User, error) {
	if req.GoogleID == "" || req.Name == "" || req.Email == "" {
		return domain.User{}, fmt.Errorf("%w: googleId, name and email are required", store.ErrInvalidInput)
	}
	if req.Role == "" {
		req.Role = domain.RoleUser
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:             uuid.NewString(),
		GoogleID:       req.GoogleID,
		Name:           req.Name,
		Email:          req.Email,
		Role:           req.Role,
		ProfilePicture: req.ProfilePicture,
		LastLogin:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return domain.User{}, err
	}
	return *created, nil
}

func (s *Service) GetUserByGoogleID(ctx context.Context, googleID string) (domain.User, error) {
	u, err := s.repo.GetUserByGoogleID(ctx, googleID)
	if err != nil {
		return domain.User{}, err
	}
	return *u, nil
}

func (s *Service) UpdateUser(ctx context.Context, googleID string, req domain.UserUpdateRequest) (domain.User, error) {
	existing, err := s.repo.GetUserByGoogleID(ctx, googleID)
	if err != nil {
		return domain.User{}, err
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.Role != nil {
		updated.Role = *req.Role
	}
	if req.ProfilePicture != nil {
		updated.ProfilePicture = *req.ProfilePicture
	}
	updated.UpdatedAt = time.Now().UTC()

	saved, err := s.repo.UpdateUser(ctx, updated)
	if err != nil {
		return domain.User{}, err
	}
	return *saved, nil
}
