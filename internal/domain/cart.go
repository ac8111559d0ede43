package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrCartNotFound      = &Error{Code: ENOTFOUND, Message: "Carrinho não encontrado."}
	ErrProductNotInCart  = &Error{Code: ENOTFOUND, Message: "Produto não encontrado no carrinho."}
	ErrInvalidQuantity   = &Error{Code: EINVALID, Message: "Quantidade deve ser um inteiro maior que zero."}
	ErrInvalidUser       = &Error{Code: EUNAUTHORIZED, Message: "Usuário não autenticado."}
	ErrInvalidProductRef = &Error{Code: EINVALID, Message: "idProduto é obrigatório."}
	ErrCartTotalTooLarge = &Error{Code: EINVALID, Message: "Total do carrinho excede o limite permitido."}
)

// Cart is the per-user cart header.
type Cart struct {
	ID             int64
	UserID         int64
	Total          decimal.Decimal
	CreatedAt      time.Time
	LastModifiedAt time.Time
}

// IsNew reports whether the header was created by the same mutation that
// last modified it. Both timestamps come from the transaction clock.
func (c *Cart) IsNew() bool {
	return c.CreatedAt.Equal(c.LastModifiedAt)
}

// CartLine is one product-quantity pairing joined with live catalog data.
type CartLine struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
	Quantity  int32
}

// CartProjection is the response-ready view of a cart.
// Cart is nil for the empty-cart sentinel: a user who never added anything.
type CartProjection struct {
	UserID int64
	Cart   *Cart
	Items  []CartLine
}

// EmptyCart returns the sentinel projection for a user without a cart.
func EmptyCart(userID int64) *CartProjection {
	return &CartProjection{UserID: userID, Items: []CartLine{}}
}

// IsEmptySentinel reports whether the projection stands for "no cart yet".
func (p *CartProjection) IsEmptySentinel() bool {
	return p.Cart == nil
}

// Total returns the persisted cart total, zero for the sentinel.
func (p *CartProjection) Total() decimal.Decimal {
	if p.Cart == nil {
		return decimal.Zero
	}
	return p.Cart.Total
}

// ItemCount returns the sum of line quantities.
func (p *CartProjection) ItemCount() int {
	n := 0
	for _, l := range p.Items {
		n += int(l.Quantity)
	}
	return n
}

// Line returns the line for productID, if present.
func (p *CartProjection) Line(productID int64) (CartLine, bool) {
	for _, l := range p.Items {
		if l.ProductID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}

// LineTotal returns quantity * price for a line.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt32(l.Quantity))
}

// CartService provides the cart mutation engine and projection.
// Every mutation executes in a single transaction.
type CartService interface {
	// GetCart returns the projection for userID, or EmptyCart when the user
	// has no cart. It never returns ErrCartNotFound.
	GetCart(ctx context.Context, userID int64) (*CartProjection, error)

	// AddToCart creates the cart on first use, merges quantity into an
	// existing line and recomputes the total.
	AddToCart(ctx context.Context, userID, productID int64, quantity int) (*CartProjection, error)

	// RemoveFromCart deletes the line when quantity is nil or >= the current
	// quantity, otherwise decrements it, then recomputes the total.
	RemoveFromCart(ctx context.Context, userID, productID int64, quantity *int) (*CartProjection, error)
}
