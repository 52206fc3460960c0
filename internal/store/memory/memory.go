// Package memory implements store.Repository with in-process maps. It backs
// the dev server when DATABASE_URL is unset and all service-level tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rezainiet/inventory-backend/internal/domain"
	"github.com/rezainiet/inventory-backend/internal/store"
)

type Store struct {
	mu           sync.RWMutex
	skuCounters  map[string]int64
	products     map[string]domain.Product
	productBySKU map[string]string
	orders       map[string]domain.Order
	suppliers    map[string]domain.Supplier
	users        map[string]domain.User
	userByGoogle map[string]string
}

func New() *Store {
	return &Store{
		skuCounters:  make(map[string]int64),
		products:     make(map[string]domain.Product),
		productBySKU: make(map[string]string),
		orders:       make(map[string]domain.Order),
		suppliers:    make(map[string]domain.Supplier),
		users:        make(map[string]domain.User),
		userByGoogle: make(map[string]string),
	}
}

// NewSeeded returns a store preloaded with a small catalog for dev/demo mode.
func NewSeeded() *Store {
	s := New()
	now := time.Now().UTC()

	supplier := domain.Supplier{
		ID:               uuid.NewString(),
		Name:             "Northline Textiles",
		ContactPerson:    "R. Chowdhury",
		Email:            "orders@northline.example",
		Phone:            "+8801700000001",
		Address:          "Plot 12, Tejgaon I/A, Dhaka",
		ProductsSupplied: []string{},
		Status:           domain.SupplierStatusActive,
		LastOrderDate:    &now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.suppliers[supplier.ID] = supplier

	cost := 240.0
	seeds := []domain.Product{
		{
			ID: uuid.NewString(), SKU: "CLA-000001", Name: "Classic Tee",
			Price: 499, ProductionCost: &cost, Category: "apparel",
			Status: domain.ProductStatusInStock, SupplierID: supplier.ID,
			Variants: []domain.Variant{
				{ID: uuid.NewString(), Color: "Black", Size: "M", Stock: 40},
				{ID: uuid.NewString(), Color: "Black", Size: "L", Stock: 35},
				{ID: uuid.NewString(), Color: "White", Size: "M", Stock: 25},
			},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), SKU: "CAN-000001", Name: "Canvas Tote",
			Price: 799, Category: "accessories", Stock: 60,
			Status: domain.ProductStatusInStock, SupplierID: supplier.ID,
			CreatedAt: now, UpdatedAt: now,
		},
	}
	s.skuCounters["CLA"] = 1
	s.skuCounters["CAN"] = 1
	for i := range seeds {
		p := seeds[i]
		if p.HasVariants() {
			p.RecomputeVariantAggregates()
		}
		s.products[p.ID] = p
		s.productBySKU[p.SKU] = p.ID
		supplier.ProductsSupplied = append(supplier.ProductsSupplied, p.ID)
	}
	s.suppliers[supplier.ID] = supplier

	return s
}

func (s *Store) NextSKUSequence(_ context.Context, prefix string) (int64, error) {
	if strings.TrimSpace(prefix) == "" {
		return 0, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.skuCounters[prefix]++
	return s.skuCounters[prefix], nil
}

func cloneProduct(p domain.Product) domain.Product {
	out := p
	out.Colors = slices.Clone(p.Colors)
	out.Sizes = slices.Clone(p.Sizes)
	out.Variants = slices.Clone(p.Variants)
	if p.ProductionCost != nil {
		cost := *p.ProductionCost
		out.ProductionCost = &cost
	}
	return out
}

func cloneOrder(o domain.Order) domain.Order {
	out := o
	out.Products = slices.Clone(o.Products)
	if o.DeliveryDate != nil {
		d := *o.DeliveryDate
		out.DeliveryDate = &d
	}
	return out
}

func cloneSupplier(sp domain.Supplier) domain.Supplier {
	out := sp
	out.ProductsSupplied = slices.Clone(sp.ProductsSupplied)
	if sp.LastOrderDate != nil {
		d := *sp.LastOrderDate
		out.LastOrderDate = &d
	}
	return out
}

func (s *Store) CreateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	if product.ID == "" || product.SKU == "" {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; exists {
		return nil, store.ErrConflict
	}
	if _, exists := s.productBySKU[product.SKU]; exists {
		return nil, store.ErrConflict
	}

	s.products[product.ID] = cloneProduct(product)
	s.productBySKU[product.SKU] = product.ID

	created := cloneProduct(product)
	return &created, nil
}

func (s *Store) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := cloneProduct(p)
	return &out, nil
}

func (s *Store) GetProductsByIDs(_ context.Context, ids []string) (map[string]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(map[string]domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			found[id] = cloneProduct(p)
		}
	}
	return found, nil
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, cloneProduct(p))
	}
	slices.SortFunc(products, func(a, b domain.Product) int {
		if a.Category == b.Category {
			return strings.Compare(a.Name, b.Name)
		}
		return strings.Compare(a.Category, b.Category)
	})
	return products, nil
}

func (s *Store) UpdateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[product.ID]
	if !ok {
		return nil, store.ErrNotFound
	}
	// SKU is immutable once assigned.
	product.SKU = existing.SKU
	product.CreatedAt = existing.CreatedAt

	s.products[product.ID] = cloneProduct(product)

	saved := cloneProduct(product)
	return &saved, nil
}

func (s *Store) FindProductByVariantID(_ context.Context, variantID string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		for _, v := range p.Variants {
			if v.ID == variantID {
				out := cloneProduct(p)
				return &out, nil
			}
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.products, id)
	delete(s.productBySKU, p.SKU)
	return nil
}

func (s *Store) AdjustProductStock(_ context.Context, productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return store.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return &store.InsufficientStockError{ProductName: p.Name, Requested: -delta, Available: p.Stock}
	}
	p.Stock += delta
	p.UpdatedAt = time.Now().UTC()
	s.products[productID] = p
	return nil
}

func (s *Store) AdjustVariantStock(_ context.Context, productID string, color string, size string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return store.ErrNotFound
	}
	p = cloneProduct(p)

	variant, ok := p.FindVariant(color, size)
	if !ok {
		return store.ErrNotFound
	}
	if variant.Stock+delta < 0 {
		return &store.InsufficientStockError{ProductName: p.Name, Requested: -delta, Available: variant.Stock}
	}
	variant.Stock += delta
	p.Stock += delta
	p.UpdatedAt = time.Now().UTC()
	s.products[productID] = p
	return nil
}

func (s *Store) CreateOrder(_ context.Context, order domain.Order) (*domain.Order, error) {
	if order.ID == "" || order.OrderNumber == "" {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return nil, store.ErrConflict
	}
	for _, existing := range s.orders {
		if existing.OrderNumber == order.OrderNumber {
			return nil, store.ErrConflict
		}
	}

	s.orders[order.ID] = cloneOrder(order)
	created := cloneOrder(order)
	return &created, nil
}

func (s *Store) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := cloneOrder(o)
	return &out, nil
}

func (s *Store) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.ListOrdersBetween(ctx, time.Time{}, time.Time{})
}

func (s *Store) ListOrdersBetween(_ context.Context, from time.Time, to time.Time) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if !from.IsZero() && o.OrderDate.Before(from) {
			continue
		}
		if !to.IsZero() && o.OrderDate.After(to) {
			continue
		}
		orders = append(orders, cloneOrder(o))
	}
	slices.SortFunc(orders, func(a, b domain.Order) int {
		return b.OrderDate.Compare(a.OrderDate)
	})
	return orders, nil
}

func (s *Store) UpdateOrderStatus(_ context.Context, id string, status string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	o.FulfillmentStatus = status
	o.UpdatedAt = time.Now().UTC()
	s.orders[id] = o

	updated := cloneOrder(o)
	return &updated, nil
}

func (s *Store) DeleteOrder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *Store) CreateSupplier(_ context.Context, supplier domain.Supplier) (*domain.Supplier, error) {
	if supplier.ID == "" || supplier.Email == "" {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.suppliers {
		if strings.EqualFold(existing.Email, supplier.Email) {
			return nil, store.ErrConflict
		}
	}
	s.suppliers[supplier.ID] = cloneSupplier(supplier)

	created := cloneSupplier(supplier)
	return &created, nil
}

func (s *Store) GetSupplier(_ context.Context, id string) (*domain.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sp, ok := s.suppliers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := cloneSupplier(sp)
	return &out, nil
}

func (s *Store) ListSuppliers(_ context.Context) ([]domain.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	suppliers := make([]domain.Supplier, 0, len(s.suppliers))
	for _, sp := range s.suppliers {
		suppliers = append(suppliers, cloneSupplier(sp))
	}
	slices.SortFunc(suppliers, func(a, b domain.Supplier) int {
		return strings.Compare(a.Name, b.Name)
	})
	return suppliers, nil
}

func (s *Store) AttachSupplierProduct(_ context.Context, supplierID string, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.suppliers[supplierID]
	if !ok {
		return store.ErrNotFound
	}
	if slices.Contains(sp.ProductsSupplied, productID) {
		return nil
	}
	sp.ProductsSupplied = append(slices.Clone(sp.ProductsSupplied), productID)
	sp.UpdatedAt = time.Now().UTC()
	s.suppliers[supplierID] = sp
	return nil
}

func (s *Store) DetachSupplierProduct(_ context.Context, supplierID string, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.suppliers[supplierID]
	if !ok {
		return store.ErrNotFound
	}
	idx := slices.Index(sp.ProductsSupplied, productID)
	if idx < 0 {
		// Detaching a non-member is a no-op; tolerates the non-transactional
		// create path having failed after the product write.
		return nil
	}
	sp.ProductsSupplied = slices.Delete(slices.Clone(sp.ProductsSupplied), idx, idx+1)
	sp.UpdatedAt = time.Now().UTC()
	s.suppliers[supplierID] = sp
	return nil
}

func (s *Store) CreateUser(_ context.Context, user domain.User) (*domain.User, error) {
	if user.ID == "" || user.GoogleID == "" {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.userByGoogle[user.GoogleID]; exists {
		return nil, store.ErrConflict
	}
	s.users[user.ID] = user
	s.userByGoogle[user.GoogleID] = user.ID

	created := user
	return &created, nil
}

func (s *Store) GetUserByGoogleID(_ context.Context, googleID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.userByGoogle[googleID]
	if !ok {
		return nil, store.ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) UpdateUser(_ context.Context, user domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return nil, store.ErrNotFound
	}
	user.GoogleID = existing.GoogleID
	user.CreatedAt = existing.CreatedAt
	s.users[user.ID] = user

	updated := user
	return &updated, nil
}

type productTally struct {
	quantity   int
	revenue    float64
	recentDate time.Time
}

func (s *Store) tallyOrders(from time.Time) map[string]productTally {
	tally := make(map[string]productTally)
	for _, o := range s.orders {
		if !from.IsZero() && o.OrderDate.Before(from) {
			continue
		}
		for _, item := range o.Products {
			t := tally[item.ProductID]
			t.quantity += item.Quantity
			t.revenue += float64(item.Quantity) * item.Price
			if o.OrderDate.After(t.recentDate) {
				t.recentDate = o.OrderDate
			}
			tally[item.ProductID] = t
		}
	}
	return tally
}

func (s *Store) rankedSales(from time.Time, limit int, byQuantity bool) []domain.ProductSales {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tally := s.tallyOrders(from)
	ranked := make([]domain.ProductSales, 0, len(tally))
	for productID, t := range tally {
		p, ok := s.products[productID]
		if !ok {
			// Product deleted since the order was placed; nothing to join.
			continue
		}
		ranked = append(ranked, domain.ProductSales{
			ProductID:       productID,
			Name:            p.Name,
			Description:     p.Description,
			Price:           p.Price,
			Image:           p.Image,
			TotalQuantity:   t.quantity,
			TotalRevenue:    t.revenue,
			RecentOrderDate: t.recentDate,
		})
	}

	if byQuantity {
		slices.SortFunc(ranked, func(a, b domain.ProductSales) int {
			return b.TotalQuantity - a.TotalQuantity
		})
	} else {
		slices.SortFunc(ranked, func(a, b domain.ProductSales) int {
			return b.RecentOrderDate.Compare(a.RecentOrderDate)
		})
	}
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (s *Store) TrendingProducts(_ context.Context, since time.Time, limit int) ([]domain.ProductSales, error) {
	return s.rankedSales(since, limit, false), nil
}

func (s *Store) TopSellingProducts(_ context.Context, limit int) ([]domain.ProductSales, error) {
	return s.rankedSales(time.Time{}, limit, true), nil
}
