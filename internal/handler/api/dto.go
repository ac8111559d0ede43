package api

import (
	"encoding/json"
	"time"

	"github.com/dukerupert/vendas/internal/domain"
	"github.com/shopspring/decimal"
)

// money renders a decimal as a JSON number with two decimal places.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

// ProductResponse is the wire form of a catalog product.
type ProductResponse struct {
	ID          int64       `json:"id"`
	Name        string      `json:"nome"`
	Price       json.Number `json:"preco"`
	Category    string      `json:"tipo"`
	Description *string     `json:"descricao"`
}

func newProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       money(p.Price),
		Category:    p.Category.Wire(),
		Description: p.Description,
	}
}

// CreateProductRequest is the body of POST /produtos.
type CreateProductRequest struct {
	Name        string           `json:"nome" validate:"required"`
	Price       *decimal.Decimal `json:"preco" validate:"required"`
	Category    string           `json:"tipo" validate:"required"`
	Description *string          `json:"descricao"`
}

// AddToCartRequest is the body of POST /carrinho/adicionar.
type AddToCartRequest struct {
	ProductID int64 `json:"idProduto" validate:"required,gt=0"`
	Quantity  int   `json:"quantidade" validate:"required,gt=0"`
}

// RemoveFromCartRequest is the body of POST /carrinho/remover.
// A missing quantidade removes the whole line.
type RemoveFromCartRequest struct {
	ProductID int64 `json:"idProduto" validate:"required,gt=0"`
	Quantity  *int  `json:"quantidade" validate:"omitempty,gt=0"`
}

// CartItemResponse is one line of a cart.
type CartItemResponse struct {
	ProductID int64       `json:"idProduto"`
	Name      string      `json:"nome"`
	Price     json.Number `json:"preco"`
	Quantity  int32       `json:"quantidade"`
}

// CartResponse is the wire form of a cart projection. The empty-cart
// sentinel carries null id and timestamps.
type CartResponse struct {
	CartID         *int64             `json:"idCarrinho"`
	UserID         int64              `json:"idUsuario"`
	Total          json.Number        `json:"total"`
	CreatedAt      *time.Time         `json:"dataCriacao"`
	LastModifiedAt *time.Time         `json:"dataUltimaModificacao"`
	Items          []CartItemResponse `json:"itens"`
}

func newCartResponse(p *domain.CartProjection) CartResponse {
	resp := CartResponse{
		UserID: p.UserID,
		Total:  json.Number("0"),
		Items:  make([]CartItemResponse, 0, len(p.Items)),
	}

	if c := p.Cart; c != nil {
		id := c.ID
		created, modified := c.CreatedAt, c.LastModifiedAt
		resp.CartID = &id
		resp.Total = money(c.Total)
		resp.CreatedAt = &created
		resp.LastModifiedAt = &modified
	}

	for _, l := range p.Items {
		resp.Items = append(resp.Items, CartItemResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     money(l.Price),
			Quantity:  l.Quantity,
		})
	}

	return resp
}
