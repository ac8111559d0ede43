package routes

import (
	"net/http"

	"github.com/dukerupert/vendas/internal/handler"
	"github.com/dukerupert/vendas/internal/middleware"
	"github.com/dukerupert/vendas/internal/router"
)

// RegisterAPIRoutes registers the catalog, cart and operational routes.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	r.Get("/{$}", handler.Banner)
	r.Get("/health", deps.HealthHandler.ServeHTTP)
	if deps.MetricsHandler != nil {
		r.Handle(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// Catalog
	r.Get("/produtos", deps.ProductHandler.List)
	r.Get("/produtos/{id}", deps.ProductHandler.Get)
	r.Post("/produtos", deps.ProductHandler.Create)

	// Cart
	cart := r.Group(middleware.RequireUserID)
	cart.Get("/carrinho", deps.CartHandler.Get)
	cart.Post("/carrinho/adicionar", deps.CartHandler.Add)
	cart.Post("/carrinho/remover", deps.CartHandler.Remove)

	// CORS preflight. Registered per path so unknown paths still 404;
	// the CORS middleware in the global chain writes the response.
	for _, path := range []string{"/produtos", "/produtos/{id}", "/carrinho", "/carrinho/adicionar", "/carrinho/remover"} {
		r.Options(path, preflight)
	}
}

func preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
