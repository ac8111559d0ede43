package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

type Querier interface {
	// Catalog
	GetProduct(ctx context.Context, id int64) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error)
	CreateProductDetail(ctx context.Context, arg CreateProductDetailParams) error

	// Cart header
	GetCartByOwner(ctx context.Context, userID int64) (Cart, error)
	GetCartByOwnerForUpdate(ctx context.Context, userID int64) (Cart, error)
	GetCartByID(ctx context.Context, id int64) (Cart, error)
	CreateCart(ctx context.Context, userID int64) (Cart, error)
	RecomputeCartTotal(ctx context.Context, cartID int64) (decimal.Decimal, error)

	// Cart lines
	UpsertCartLine(ctx context.Context, arg UpsertCartLineParams) (int32, error)
	GetCartLineQuantity(ctx context.Context, arg CartLineKey) (int32, error)
	SetCartLineQuantity(ctx context.Context, arg SetCartLineQuantityParams) error
	DeleteCartLine(ctx context.Context, arg CartLineKey) error
	ListCartLines(ctx context.Context, cartID int64) ([]ListCartLinesRow, error)
}

var _ Querier = (*Queries)(nil)
