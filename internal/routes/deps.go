package routes

import (
	"net/http"

	"github.com/dukerupert/vendas/internal/handler"
	"github.com/dukerupert/vendas/internal/handler/api"
)

// APIDeps contains dependencies for the vendas API routes
type APIDeps struct {
	// Catalog
	ProductHandler *api.ProductHandler

	// Cart (all routes require X-User-ID)
	CartHandler *api.CartHandler

	// Operations
	HealthHandler  *handler.HealthHandler
	MetricsHandler http.Handler
}
