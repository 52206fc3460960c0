// Package postgres implements store.Repository on PostgreSQL through the
// database/sql interface with the pgx stdlib driver.
//
// Products are stored as one row each with variants, colors and sizes held in
// jsonb columns, so a stock mutation touching a variant and the derived
// aggregate stays a single-row update under a row lock. Cross-entity writes
// (order + product stock, product + supplier linkage) are issued as
// independent statements by the service layer and are not transactional.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rezainiet/inventory-backend/internal/domain"
	"github.com/rezainiet/inventory-backend/internal/store"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) NextSKUSequence(ctx context.Context, prefix string) (int64, error) {
	if prefix == "" {
		return 0, store.ErrInvalidInput
	}

	// Single-statement increment-and-fetch: concurrent callers serialize on
	// the counter row and can never observe the same value.
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO sku_counters (prefix, seq)
		VALUES ($1, 1)
		ON CONFLICT (prefix)
		DO UPDATE SET seq = sku_counters.seq + 1
		RETURNING seq
	`, prefix).Scan(&seq)
	if err != nil {
		return 0, err
	}
	return seq, nil
}

const productColumns = `
	id, sku, name, price, production_cost, stock, category, status,
	description, image, supplier_id, colors, sizes, variants,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var productionCost sql.NullFloat64
	var supplierID sql.NullString
	var colorsJSON, sizesJSON, variantsJSON []byte

	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Price, &productionCost, &p.Stock,
		&p.Category, &p.Status, &p.Description, &p.Image, &supplierID,
		&colorsJSON, &sizesJSON, &variantsJSON, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if productionCost.Valid {
		cost := productionCost.Float64
		p.ProductionCost = &cost
	}
	if supplierID.Valid {
		p.SupplierID = supplierID.String
	}
	if err := json.Unmarshal(colorsJSON, &p.Colors); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sizesJSON, &p.Sizes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(variantsJSON, &p.Variants); err != nil {
		return nil, err
	}
	return &p, nil
}

func productJSONColumns(p domain.Product) (colors, sizes, variants []byte, err error) {
	if p.Colors == nil {
		p.Colors = []string{}
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if p.Variants == nil {
		p.Variants = []domain.Variant{}
	}
	if colors, err = json.Marshal(p.Colors); err != nil {
		return nil, nil, nil, err
	}
	if sizes, err = json.Marshal(p.Sizes); err != nil {
		return nil, nil, nil, err
	}
	if variants, err = json.Marshal(p.Variants); err != nil {
		return nil, nil, nil, err
	}
	return colors, sizes, variants, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func (s *Store) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if product.ID == "" || product.SKU == "" {
		return nil, store.ErrInvalidInput
	}

	colors, sizes, variants, err := productJSONColumns(product)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (
			id, sku, name, price, production_cost, stock, category, status,
			description, image, supplier_id, colors, sizes, variants,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`, product.ID, product.SKU, product.Name, product.Price,
		nullableFloat(product.ProductionCost), product.Stock, product.Category,
		product.Status, product.Description, product.Image,
		nullableString(product.SupplierID), colors, sizes, variants,
		product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}

	created := product
	return &created, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT`+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return p, err
}

func (s *Store) GetProductsByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	found := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT`+productColumns+` FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		found[p.ID] = *p
	}
	return found, rows.Err()
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT`+productColumns+` FROM products ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 128)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *Store) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if product.ID == "" {
		return nil, store.ErrInvalidInput
	}

	colors, sizes, variants, err := productJSONColumns(product)
	if err != nil {
		return nil, err
	}

	// SKU is immutable: deliberately absent from the SET list.
	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, price = $3, production_cost = $4, stock = $5,
			category = $6, status = $7, description = $8, image = $9,
			supplier_id = $10, colors = $11, sizes = $12, variants = $13,
			updated_at = now()
		WHERE id = $1
	`, product.ID, product.Name, product.Price,
		nullableFloat(product.ProductionCost), product.Stock, product.Category,
		product.Status, product.Description, product.Image,
		nullableString(product.SupplierID), colors, sizes, variants)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	return s.GetProduct(ctx, product.ID)
}

func (s *Store) FindProductByVariantID(ctx context.Context, variantID string) (*domain.Product, error) {
	needle, err := json.Marshal([]map[string]string{{"id": variantID}})
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT`+productColumns+` FROM products WHERE variants @> $1`, needle)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return p, err
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) AdjustProductStock(ctx context.Context, productID string, delta int) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var name string
	var stock int
	err = tx.QueryRowContext(ctx, `
		SELECT name, stock FROM products WHERE id = $1 FOR UPDATE
	`, productID).Scan(&name, &stock)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	if stock+delta < 0 {
		return &store.InsufficientStockError{ProductName: name, Requested: -delta, Available: stock}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1
	`, productID, delta); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) AdjustVariantStock(ctx context.Context, productID string, color string, size string, delta int) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var name string
	var stock int
	var variantsJSON []byte
	err = tx.QueryRowContext(ctx, `
		SELECT name, stock, variants FROM products WHERE id = $1 FOR UPDATE
	`, productID).Scan(&name, &stock, &variantsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}

	var variants []domain.Variant
	if err := json.Unmarshal(variantsJSON, &variants); err != nil {
		return err
	}

	idx := -1
	for i := range variants {
		if variants[i].Color == color && variants[i].Size == size {
			idx = i
			break
		}
	}
	if idx < 0 {
		return store.ErrNotFound
	}
	if variants[idx].Stock+delta < 0 {
		return &store.InsufficientStockError{ProductName: name, Requested: -delta, Available: variants[idx].Stock}
	}

	variants[idx].Stock += delta
	updated, err := json.Marshal(variants)
	if err != nil {
		return err
	}

	// Variant stock and the derived aggregate move together in one row write.
	if _, err := tx.ExecContext(ctx, `
		UPDATE products SET variants = $2, stock = stock + $3, updated_at = now() WHERE id = $1
	`, productID, updated, delta); err != nil {
		return err
	}
	return tx.Commit()
}

const orderColumns = `
	id, order_number, customer_name, customer_phone, customer_email, products,
	total_amount, discount, tax, final_amount, order_date, payment_status,
	payment_method, fulfillment_status, shipping_address, delivery_date,
	tracking_number, notes, created_at, updated_at`

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var itemsJSON []byte
	var deliveryDate sql.NullTime

	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerPhone,
		&o.CustomerEmail, &itemsJSON, &o.TotalAmount, &o.Discount, &o.Tax,
		&o.FinalAmount, &o.OrderDate, &o.PaymentStatus, &o.PaymentMethod,
		&o.FulfillmentStatus, &o.ShippingAddress, &deliveryDate,
		&o.TrackingNumber, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if deliveryDate.Valid {
		d := deliveryDate.Time
		o.DeliveryDate = &d
	}
	if err := json.Unmarshal(itemsJSON, &o.Products); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	if order.ID == "" || order.OrderNumber == "" {
		return nil, store.ErrInvalidInput
	}

	itemsJSON, err := json.Marshal(order.Products)
	if err != nil {
		return nil, err
	}

	var deliveryDate any
	if order.DeliveryDate != nil {
		deliveryDate = *order.DeliveryDate
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO orders (
			id, order_number, customer_name, customer_phone, customer_email,
			products, total_amount, discount, tax, final_amount, order_date,
			payment_status, payment_method, fulfillment_status,
			shipping_address, delivery_date, tracking_number, notes,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	`, order.ID, order.OrderNumber, order.CustomerName, order.CustomerPhone,
		order.CustomerEmail, itemsJSON, order.TotalAmount, order.Discount,
		order.Tax, order.FinalAmount, order.OrderDate, order.PaymentStatus,
		order.PaymentMethod, order.FulfillmentStatus, order.ShippingAddress,
		deliveryDate, order.TrackingNumber, order.Notes, order.CreatedAt,
		order.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}

	created := order
	return &created, nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	row := s.db.QueryRowContext(ctx, `SELECT`+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return o, err
}

func (s *Store) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.ListOrdersBetween(ctx, time.Time{}, time.Time{})
}

func (s *Store) ListOrdersBetween(ctx context.Context, from time.Time, to time.Time) ([]domain.Order, error) {
	query := `SELECT` + orderColumns + ` FROM orders`
	args := make([]any, 0, 2)
	switch {
	case !from.IsZero() && !to.IsZero():
		query += ` WHERE order_date >= $1 AND order_date <= $2`
		args = append(args, from, to)
	case !from.IsZero():
		query += ` WHERE order_date >= $1`
		args = append(args, from)
	case !to.IsZero():
		query += ` WHERE order_date <= $1`
		args = append(args, to)
	}
	query += ` ORDER BY order_date DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, 64)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status string) (*domain.Order, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders SET fulfillment_status = $2, updated_at = now() WHERE id = $1
	`, id, status)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}
	return s.GetOrder(ctx, id)
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateSupplier(ctx context.Context, supplier domain.Supplier) (*domain.Supplier, error) {
	if supplier.ID == "" || supplier.Email == "" {
		return nil, store.ErrInvalidInput
	}

	var lastOrderDate any
	if supplier.LastOrderDate != nil {
		lastOrderDate = *supplier.LastOrderDate
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO suppliers (
			id, name, contact_person, email, phone, address, status,
			last_order_date, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, supplier.ID, supplier.Name, supplier.ContactPerson, supplier.Email,
		supplier.Phone, supplier.Address, supplier.Status, lastOrderDate,
		supplier.CreatedAt, supplier.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}

	created := supplier
	if created.ProductsSupplied == nil {
		created.ProductsSupplied = []string{}
	}
	return &created, nil
}

func (s *Store) supplierProducts(ctx context.Context, supplierID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id FROM supplier_products
		WHERE supplier_id = $1
		ORDER BY attached_at
	`, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0, 8)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanSupplier(row rowScanner) (*domain.Supplier, error) {
	var sp domain.Supplier
	var lastOrderDate sql.NullTime

	err := row.Scan(
		&sp.ID, &sp.Name, &sp.ContactPerson, &sp.Email, &sp.Phone,
		&sp.Address, &sp.Status, &lastOrderDate, &sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastOrderDate.Valid {
		d := lastOrderDate.Time
		sp.LastOrderDate = &d
	}
	return &sp, nil
}

const supplierColumns = `
	id, name, contact_person, email, phone, address, status,
	last_order_date, created_at, updated_at`

func (s *Store) GetSupplier(ctx context.Context, id string) (*domain.Supplier, error) {
	row := s.db.QueryRowContext(ctx, `SELECT`+supplierColumns+` FROM suppliers WHERE id = $1`, id)
	sp, err := scanSupplier(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sp.ProductsSupplied, err = s.supplierProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *Store) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT`+supplierColumns+` FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suppliers := make([]domain.Supplier, 0, 32)
	for rows.Next() {
		sp, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, *sp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range suppliers {
		suppliers[i].ProductsSupplied, err = s.supplierProducts(ctx, suppliers[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return suppliers, nil
}

func (s *Store) AttachSupplierProduct(ctx context.Context, supplierID string, productID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO supplier_products (supplier_id, product_id, attached_at)
		VALUES ($1, $2, now())
		ON CONFLICT (supplier_id, product_id) DO NOTHING
	`, supplierID, productID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return store.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Store) DetachSupplierProduct(ctx context.Context, supplierID string, productID string) error {
	// Removing a non-member is a no-op by design.
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM supplier_products WHERE supplier_id = $1 AND product_id = $2
	`, supplierID, productID)
	return err
}

const userColumns = `
	id, google_id, name, email, role, profile_picture, last_login,
	created_at, updated_at`

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.GoogleID, &u.Name, &u.Email, &u.Role, &u.ProfilePicture,
		&u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.ID == "" || user.GoogleID == "" {
		return nil, store.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (
			id, google_id, name, email, role, profile_picture, last_login,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, user.ID, user.GoogleID, user.Name, user.Email, user.Role,
		user.ProfilePicture, user.LastLogin, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}

	created := user
	return &created, nil
}

func (s *Store) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT`+userColumns+` FROM users WHERE google_id = $1`, googleID)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return u, err
}

func (s *Store) UpdateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = $2, email = $3, role = $4, profile_picture = $5,
			last_login = $6, updated_at = now()
		WHERE id = $1
	`, user.ID, user.Name, user.Email, user.Role, user.ProfilePicture, user.LastLogin)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	row := s.db.QueryRowContext(ctx, `SELECT`+userColumns+` FROM users WHERE id = $1`, user.ID)
	return scanUser(row)
}

func (s *Store) rankedSales(ctx context.Context, since time.Time, limit int, orderBy string) ([]domain.ProductSales, error) {
	query := `
		SELECT item->>'product',
			p.name, p.description, p.price, p.image,
			SUM((item->>'quantity')::int) AS total_quantity,
			SUM((item->>'quantity')::int * (item->>'price')::float8) AS total_revenue,
			MAX(o.order_date) AS recent_order_date
		FROM orders o
		CROSS JOIN LATERAL jsonb_array_elements(o.products) AS item
		JOIN products p ON p.id = item->>'product'`
	args := []any{limit}
	if !since.IsZero() {
		query += ` WHERE o.order_date >= $2`
		args = append(args, since)
	}
	query += `
		GROUP BY item->>'product', p.name, p.description, p.price, p.image
		ORDER BY ` + orderBy + `
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ranked := make([]domain.ProductSales, 0, limit)
	for rows.Next() {
		var ps domain.ProductSales
		if err := rows.Scan(&ps.ProductID, &ps.Name, &ps.Description, &ps.Price,
			&ps.Image, &ps.TotalQuantity, &ps.TotalRevenue, &ps.RecentOrderDate); err != nil {
			return nil, err
		}
		ranked = append(ranked, ps)
	}
	return ranked, rows.Err()
}

func (s *Store) TrendingProducts(ctx context.Context, since time.Time, limit int) ([]domain.ProductSales, error) {
	return s.rankedSales(ctx, since, limit, "recent_order_date DESC")
}

func (s *Store) TopSellingProducts(ctx context.Context, limit int) ([]domain.ProductSales, error) {
	return s.rankedSales(ctx, time.Time{}, limit, "total_quantity DESC")
}
