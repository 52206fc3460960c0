package domain

import "time"

// Product status values. Status is caller-supplied and never recomputed from
// stock levels.
const (
	ProductStatusInStock    = "In Stock"
	ProductStatusOutOfStock = "Out of Stock"
	ProductStatusLowStock   = "Low Stock"
)

const (
	FulfillmentPending    = "Pending"
	FulfillmentProcessing = "Processing"
	FulfillmentShipped    = "Shipped"
	FulfillmentDelivered  = "Delivered"
	FulfillmentCancelled  = "Cancelled"
)

const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusFailed  = "Failed"
)

const (
	PaymentMethodCash           = "Cash"
	PaymentMethodBankTransfer   = "Bank Transfer"
	PaymentMethodCashOnDelivery = "Cash on Delivery"
)

const (
	SupplierStatusActive   = "Active"
	SupplierStatusInactive = "Inactive"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// Variant is a (color, size) combination of a product with its own stock
// count. It has no identity outside the product that owns it.
type Variant struct {
	ID    string `json:"id"`
	Color string `json:"color"`
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// Product carries inventory in one of two mutually exclusive shapes: a flat
// Stock count, or a Variants list where Stock, Colors and Sizes are derived.
// Historical records exist in both shapes, so both must round-trip.
type Product struct {
	ID             string    `json:"id"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	ProductionCost *float64  `json:"productionCost,omitempty"`
	Stock          int       `json:"stock"`
	Category       string    `json:"category"`
	Status         string    `json:"status"`
	Description    string    `json:"description,omitempty"`
	Image          string    `json:"image,omitempty"`
	SupplierID     string    `json:"supplier,omitempty"`
	Colors         []string  `json:"colors,omitempty"`
	Sizes          []string  `json:"sizes,omitempty"`
	Variants       []Variant `json:"variants,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// HasVariants reports whether inventory is tracked per variant. When true,
// Stock is a derived aggregate, not an authoritative field.
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

type ProductCreateRequest struct {
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	ProductionCost *float64  `json:"productionCost,omitempty"`
	Stock          int       `json:"stock"`
	Category       string    `json:"category"`
	Status         string    `json:"status,omitempty"`
	Description    string    `json:"description,omitempty"`
	Image          string    `json:"image,omitempty"`
	SupplierID     string    `json:"supplier,omitempty"`
	Variants       []Variant `json:"variants,omitempty"`
}

type ProductUpdateRequest struct {
	Name           *string    `json:"name,omitempty"`
	Price          *float64   `json:"price,omitempty"`
	ProductionCost *float64   `json:"productionCost,omitempty"`
	Stock          *int       `json:"stock,omitempty"`
	Category       *string    `json:"category,omitempty"`
	Status         *string    `json:"status,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Image          *string    `json:"image,omitempty"`
	SupplierID     *string    `json:"supplier,omitempty"`
	Variants       *[]Variant `json:"variants,omitempty"`
}

type VariantUpdateRequest struct {
	Color string `json:"color"`
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// OrderLineItem is a snapshot of a product reference and its price at order
// time. Price is deliberately not re-read from the product on fulfilment.
type OrderLineItem struct {
	ProductID string  `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
}

type Order struct {
	ID                string          `json:"id"`
	OrderNumber       string          `json:"orderNumber"`
	CustomerName      string          `json:"customerName"`
	CustomerPhone     string          `json:"customerPhone"`
	CustomerEmail     string          `json:"customerEmail,omitempty"`
	Products          []OrderLineItem `json:"products"`
	TotalAmount       float64         `json:"totalAmount"`
	Discount          float64         `json:"discount"`
	Tax               float64         `json:"tax"`
	FinalAmount       float64         `json:"finalAmount"`
	OrderDate         time.Time       `json:"orderDate"`
	PaymentStatus     string          `json:"paymentStatus"`
	PaymentMethod     string          `json:"paymentMethod"`
	FulfillmentStatus string          `json:"fulfillmentStatus"`
	ShippingAddress   string          `json:"shippingAddress"`
	DeliveryDate      *time.Time      `json:"deliveryDate,omitempty"`
	TrackingNumber    string          `json:"trackingNumber,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type OrderCreateRequest struct {
	CustomerName    string          `json:"customerName"`
	CustomerPhone   string          `json:"customerPhone"`
	CustomerEmail   string          `json:"customerEmail,omitempty"`
	Products        []OrderLineItem `json:"products"`
	Discount        float64         `json:"discount"`
	Tax             float64         `json:"tax"`
	PaymentMethod   string          `json:"paymentMethod"`
	ShippingAddress string          `json:"shippingAddress"`
	Notes           string          `json:"notes,omitempty"`
}

type OrderStatusUpdateRequest struct {
	FulfillmentStatus string `json:"fulfillmentStatus"`
}

type Supplier struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	ContactPerson    string     `json:"contactPerson"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Address          string     `json:"address"`
	ProductsSupplied []string   `json:"productsSupplied"`
	Status           string     `json:"status"`
	LastOrderDate    *time.Time `json:"lastOrderDate,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type SupplierCreateRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Status        string `json:"status,omitempty"`
}

type User struct {
	ID             string    `json:"id"`
	GoogleID       string    `json:"googleId"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	LastLogin      time.Time `json:"lastLogin"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type UserCreateRequest struct {
	GoogleID       string `json:"googleId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type UserUpdateRequest struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Role           *string `json:"role,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// SalesSummary aggregates orders over a time window. TotalProfit covers only
// line items whose product still exists and carries a production cost.
type SalesSummary struct {
	TotalSales  float64 `json:"totalSales"`
	TotalProfit float64 `json:"totalProfit"`
	Sales       []Order `json:"sales"`
}

type ProductSales struct {
	ProductID       string    `json:"productId"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           float64   `json:"price"`
	Image           string    `json:"image,omitempty"`
	TotalQuantity   int       `json:"totalQuantity"`
	TotalRevenue    float64   `json:"totalRevenue"`
	RecentOrderDate time.Time `json:"recentOrderDate"`
}

// IsFulfillmentStatus reports enum membership. Transitions between states are
// deliberately not validated; only order create and delete touch stock.
func IsFulfillmentStatus(status string) bool {
	switch status {
	case FulfillmentPending, FulfillmentProcessing, FulfillmentShipped, FulfillmentDelivered, FulfillmentCancelled:
		return true
	}
	return false
}

func IsPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCashOnDelivery:
		return true
	}
	return false
}
