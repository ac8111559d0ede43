// Package api holds the JSON handlers of the catalog and cart endpoints.
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dukerupert/vendas/internal/domain"
	"github.com/dukerupert/vendas/internal/handler"
	"github.com/dukerupert/vendas/internal/middleware"
	"github.com/dukerupert/vendas/internal/telemetry"
)

// ProductHandler serves the catalog endpoints.
type ProductHandler struct {
	products domain.ProductService
	metrics  *telemetry.BusinessMetrics
}

// NewProductHandler creates a product handler. metrics may be nil.
func NewProductHandler(products domain.ProductService, metrics *telemetry.BusinessMetrics) *ProductHandler {
	return &ProductHandler{
		products: products,
		metrics:  metrics,
	}
}

// List handles GET /produtos
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	data := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		data = append(data, newProductResponse(p))
	}

	handler.OK(w, r, http.StatusOK, data, "")
}

// Get handles GET /produtos/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		handler.BadRequestResponse(w, r, "ID de produto inválido.")
		return
	}

	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.OK(w, r, http.StatusOK, newProductResponse(*product), "")
}

// Create handles POST /produtos
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "product.create"

	var req CreateProductRequest
	if err := decodeJSON(r, &req, op, domain.ErrProductNameReq.Message); err != nil {
		handler.ValidationErrorResponse(w, r, invalidBody(err, op, domain.ErrProductNameReq.Message))
		return
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		handler.ErrorResponse(w, r, domain.WithOp(err, op))
		return
	}

	product, err := h.products.CreateProduct(r.Context(), domain.CreateProductParams{
		Name:        req.Name,
		Price:       *req.Price,
		Category:    category,
		Description: req.Description,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ProductsCreated.WithLabelValues(product.Category.Wire()).Inc()
	}
	middleware.GetLogger(r.Context()).Info("product created",
		"product_id", product.ID,
		"category", product.Category,
	)

	message := fmt.Sprintf("Produto do tipo %s criado com sucesso!", product.Category.Wire())
	handler.OK(w, r, http.StatusCreated, newProductResponse(*product), message)
}
