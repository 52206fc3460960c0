package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezainiet/inventory-backend/internal/domain"
	"github.com/rezainiet/inventory-backend/internal/service"
	"github.com/rezainiet/inventory-backend/internal/store/memory"
)

func newTestServer(t *testing.T) (*httptest.Server, *service.Service) {
	t.Helper()
	svc := service.New(memory.New(), nil, time.Minute)
	api := New(svc, "http://localhost:3000")
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return srv, svc
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestCORSHeaders(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/products", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestProductLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/products", map[string]any{
		"name":     "Classic Tee",
		"price":    499,
		"category": "apparel",
		"variants": []map[string]any{
			{"color": "Black", "size": "M", "stock": 40},
			{"color": "White", "size": "M", "stock": 25},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Product domain.Product `json:"product"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, "CLA-000001", created.Product.SKU)
	assert.Equal(t, 65, created.Product.Stock)
	require.Len(t, created.Product.Variants, 2)

	resp, err := http.Get(srv.URL + "/api/v1/products/" + created.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched domain.Product
	decodeBody(t, resp, &fetched)
	assert.Equal(t, created.Product.ID, fetched.ID)

	// Variant edit through its own route.
	variantID := created.Product.Variants[0].ID
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/products/variants/"+variantID, map[string]any{
		"color": "Black", "size": "M", "stock": 10,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated struct {
		Product domain.Product `json:"product"`
	}
	decodeBody(t, resp, &updated)
	assert.Equal(t, 35, updated.Product.Stock)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/products/"+created.Product.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/v1/products/" + created.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateProductRejectsBadJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/products", bytes.NewBufferString(`{"name":`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateProductRejectsUnknownFields(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/products", map[string]any{
		"name": "X", "price": 1, "category": "misc", "bogus": true,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateProductValidationError(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/products", map[string]any{
		"name": "", "price": 10, "category": "misc",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrderRoutes(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, domain.ProductCreateRequest{
		Name: "Widget", Price: 100, Category: "misc", Stock: 10,
	})
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", map[string]any{
		"customerName":    "Rahim",
		"customerPhone":   "+8801700000000",
		"products":        []map[string]any{{"product": product.ID, "quantity": 4, "price": 100}},
		"paymentMethod":   "Cash",
		"shippingAddress": "House 1, Road 2, Dhaka",
		"discount":        50,
		"tax":             10,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Order domain.Order `json:"order"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, 360.0, created.Order.FinalAmount)

	// Over-ordering surfaces as a conflict.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", map[string]any{
		"customerName":    "Rahim",
		"customerPhone":   "+8801700000000",
		"products":        []map[string]any{{"product": product.ID, "quantity": 100, "price": 100}},
		"paymentMethod":   "Cash",
		"shippingAddress": "House 1, Road 2, Dhaka",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPatch, srv.URL+"/api/v1/orders/"+created.Order.ID+"/status", map[string]any{
		"fulfillmentStatus": "Shipped",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var patched struct {
		Order domain.Order `json:"order"`
	}
	decodeBody(t, resp, &patched)
	assert.Equal(t, domain.FulfillmentShipped, patched.Order.FulfillmentStatus)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/orders/"+created.Order.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Deletion restored the decremented stock.
	restored, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, restored.Stock)
}

func TestSupplierRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/suppliers", map[string]any{
		"name":          "Acme",
		"contactPerson": "Jo",
		"email":         "acme@example.com",
		"phone":         "1",
		"address":       "somewhere",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Duplicate email is a conflict.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/suppliers", map[string]any{
		"name":          "Other",
		"contactPerson": "Jo",
		"email":         "acme@example.com",
		"phone":         "1",
		"address":       "elsewhere",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/v1/suppliers")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var suppliers []domain.Supplier
	decodeBody(t, resp, &suppliers)
	assert.Len(t, suppliers, 1)
}

func TestUserRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/users", map[string]any{
		"googleId": "g1", "name": "Ada", "email": "ada@example.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/v1/users/g1")
	require.NoError(t, err)
	var user domain.User
	decodeBody(t, resp, &user)
	assert.Equal(t, domain.RoleUser, user.Role)

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/users/g1", map[string]any{"role": "manager"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &user)
	assert.Equal(t, domain.RoleManager, user.Role)

	resp, err = http.Get(srv.URL + "/api/v1/users/missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestSalesRoutes(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, domain.ProductCreateRequest{
		Name: "Widget", Price: 100, Category: "misc", Stock: 100,
	})
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, domain.OrderCreateRequest{
		CustomerName:  "Rahim",
		CustomerPhone: "+8801700000000",
		Products: []domain.OrderLineItem{
			{ProductID: product.ID, Quantity: 3, Price: 100},
		},
		PaymentMethod:   domain.PaymentMethodCash,
		ShippingAddress: "House 1, Road 2, Dhaka",
	})
	require.NoError(t, err)

	for _, path := range []string{"/api/v1/sales/today", "/api/v1/sales/last7days", "/api/v1/sales/lastmonth", "/api/v1/sales/total"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		var summary domain.SalesSummary
		decodeBody(t, resp, &summary)
		assert.Equal(t, 300.0, summary.TotalSales, path)
	}

	resp, err := http.Get(srv.URL + "/api/v1/sales/top-selling")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var top struct {
		TopSellingProducts []domain.ProductSales `json:"topSellingProducts"`
	}
	decodeBody(t, resp, &top)
	require.Len(t, top.TopSellingProducts, 1)
	assert.Equal(t, 3, top.TopSellingProducts[0].TotalQuantity)
}
