package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PRODUCT DOMAIN ERRORS
// =============================================================================

var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Produto não encontrado."}
	ErrInvalidCategory = &Error{Code: EINVALID, Message: "Tipo de produto inválido."}
	ErrNegativePrice   = &Error{Code: EINVALID, Message: "Preço não pode ser negativo."}
	ErrPriceTooLarge   = &Error{Code: EINVALID, Message: "Preço excede o limite permitido."}
	ErrProductNameReq  = &Error{Code: EINVALID, Message: "Nome, preço e tipo são campos obrigatórios."}
)

// MaxPrice is the exclusive upper bound of a product price (NUMERIC(10,2)).
var MaxPrice = decimal.New(1, 8)

// Category classifies a catalog product.
type Category string

const (
	CategoryMedicine Category = "MEDICINE"
	CategoryToy      Category = "TOY"
	CategoryFeed     Category = "FEED"
)

// wireCategories maps the API vocabulary onto categories.
var wireCategories = map[string]Category{
	"REMEDIO":   CategoryMedicine,
	"BRINQUEDO": CategoryToy,
	"RACAO":     CategoryFeed,
}

// ParseCategory converts an API category name (REMEDIO, BRINQUEDO, RACAO)
// into a Category.
func ParseCategory(s string) (Category, error) {
	c, ok := wireCategories[s]
	if !ok {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Wire returns the API name of the category.
func (c Category) Wire() string {
	for name, cat := range wireCategories {
		if cat == c {
			return name
		}
	}
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMedicine, CategoryToy, CategoryFeed:
		return true
	}
	return false
}

// Product is a catalog entry. Prices are read live by the cart on every
// recompute; carts never snapshot them.
type Product struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Category    Category
	Description *string
}

// CreateProductParams holds the input for CreateProduct.
type CreateProductParams struct {
	Name        string
	Price       decimal.Decimal
	Category    Category
	Description *string
}

// Validate checks the product invariants enforced at creation.
func (p CreateProductParams) Validate() error {
	if p.Name == "" {
		return WithOp(ErrProductNameReq, "product.create")
	}
	if p.Price.IsNegative() {
		return WithOp(ErrNegativePrice, "product.create")
	}
	if p.Price.Round(2).GreaterThanOrEqual(MaxPrice) {
		return WithOp(ErrPriceTooLarge, "product.create")
	}
	if !p.Category.Valid() {
		return WithOp(ErrInvalidCategory, "product.create")
	}
	return nil
}

// ProductService is the catalog store contract used by the HTTP layer.
type ProductService interface {
	// GetProduct returns ErrProductNotFound when id does not exist.
	GetProduct(ctx context.Context, id int64) (*Product, error)

	// ListProducts returns every product ordered by name ascending.
	ListProducts(ctx context.Context) ([]Product, error)

	// CreateProduct validates and persists a product together with its
	// category detail row.
	CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error)
}
