package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukerupert/vendas/internal/domain"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Mock Implementations
// ============================================================================

type mockProductService struct {
	getProductFunc    func(ctx context.Context, id int64) (*domain.Product, error)
	listProductsFunc  func(ctx context.Context) ([]domain.Product, error)
	createProductFunc func(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error)
}

func (m *mockProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if m.getProductFunc != nil {
		return m.getProductFunc(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if m.listProductsFunc != nil {
		return m.listProductsFunc(ctx)
	}
	return nil, nil
}

func (m *mockProductService) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	if m.createProductFunc != nil {
		return m.createProductFunc(ctx, params)
	}
	return nil, nil
}

type mockCartService struct {
	getCartFunc        func(ctx context.Context, userID int64) (*domain.CartProjection, error)
	addToCartFunc      func(ctx context.Context, userID, productID int64, quantity int) (*domain.CartProjection, error)
	removeFromCartFunc func(ctx context.Context, userID, productID int64, quantity *int) (*domain.CartProjection, error)
}

func (m *mockCartService) GetCart(ctx context.Context, userID int64) (*domain.CartProjection, error) {
	if m.getCartFunc != nil {
		return m.getCartFunc(ctx, userID)
	}
	return domain.EmptyCart(userID), nil
}

func (m *mockCartService) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*domain.CartProjection, error) {
	if m.addToCartFunc != nil {
		return m.addToCartFunc(ctx, userID, productID, quantity)
	}
	return nil, nil
}

func (m *mockCartService) RemoveFromCart(ctx context.Context, userID, productID int64, quantity *int) (*domain.CartProjection, error) {
	if m.removeFromCartFunc != nil {
		return m.removeFromCartFunc(ctx, userID, productID, quantity)
	}
	return nil, nil
}

// ============================================================================
// Helpers
// ============================================================================

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withUser mimics middleware.RequireUserID.
func withUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(domain.NewContextWithUserID(req.Context(), userID))
}
