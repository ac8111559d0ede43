package api

import (
	"net/http"

	"github.com/dukerupert/vendas/internal/domain"
	"github.com/dukerupert/vendas/internal/handler"
)

const (
	msgEmptyCart     = "Carrinho vazio ou não encontrado para este cliente."
	msgItemAdded     = "Produto adicionado/atualizado no carrinho!"
	msgItemRemoved   = "Produto removido/atualizado do carrinho!"
	msgInvalidAdd    = "idProduto e quantidade válidos são obrigatórios."
	msgInvalidRemove = "Dados inválidos na requisição."
)

// CartHandler serves the cart endpoints. Every route expects
// middleware.RequireUserID to have put the caller in the context.
type CartHandler struct {
	carts domain.CartService
}

// NewCartHandler creates a cart handler.
func NewCartHandler(carts domain.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get handles GET /carrinho
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := domain.UserIDFromContext(r.Context())
	if !ok {
		handler.UnauthorizedResponse(w, r)
		return
	}

	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	message := ""
	if cart.IsEmptySentinel() {
		message = msgEmptyCart
	}
	handler.OK(w, r, http.StatusOK, newCartResponse(cart), message)
}

// Add handles POST /carrinho/adicionar
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	const op = "cart.add"

	userID, ok := domain.UserIDFromContext(r.Context())
	if !ok {
		handler.UnauthorizedResponse(w, r)
		return
	}

	var req AddToCartRequest
	if err := decodeJSON(r, &req, op, msgInvalidAdd); err != nil {
		handler.ValidationErrorResponse(w, r, invalidBody(err, op, msgInvalidAdd))
		return
	}

	cart, err := h.carts.AddToCart(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.OK(w, r, http.StatusOK, newCartResponse(cart), msgItemAdded)
}

// Remove handles POST /carrinho/remover
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	const op = "cart.remove"

	userID, ok := domain.UserIDFromContext(r.Context())
	if !ok {
		handler.UnauthorizedResponse(w, r)
		return
	}

	var req RemoveFromCartRequest
	if err := decodeJSON(r, &req, op, msgInvalidRemove); err != nil {
		switch {
		case hasFieldError(err, "idProduto"):
			err = domain.WithOp(domain.ErrInvalidProductRef, op)
		case hasFieldError(err, "quantidade"):
			err = domain.WithOp(domain.ErrInvalidQuantity, op)
		default:
			err = invalidBody(err, op, msgInvalidRemove)
		}
		handler.ValidationErrorResponse(w, r, err)
		return
	}

	cart, err := h.carts.RemoveFromCart(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.OK(w, r, http.StatusOK, newCartResponse(cart), msgItemRemoved)
}
