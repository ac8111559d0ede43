package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

const getProduct = `-- name: GetProduct :one
SELECT id, name, price, category, description, created_at
FROM products
WHERE id = $1
`

func (q *Queries) GetProduct(ctx context.Context, id int64) (Product, error) {
	row := q.db.QueryRow(ctx, getProduct, id)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Price,
		&i.Category,
		&i.Description,
		&i.CreatedAt,
	)
	return i, err
}

const listProducts = `-- name: ListProducts :many
SELECT id, name, price, category, description, created_at
FROM products
ORDER BY name ASC, id ASC
`

func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.Query(ctx, listProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		var i Product
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Price,
			&i.Category,
			&i.Description,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createProduct = `-- name: CreateProduct :one
INSERT INTO products (name, price, category, description)
VALUES ($1, $2, $3, $4)
RETURNING id, name, price, category, description, created_at
`

type CreateProductParams struct {
	Name        string
	Price       decimal.Decimal
	Category    string
	Description *string
}

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, createProduct,
		arg.Name,
		arg.Price,
		arg.Category,
		arg.Description,
	)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Price,
		&i.Category,
		&i.Description,
		&i.CreatedAt,
	)
	return i, err
}

const createMedicineDetail = `-- name: CreateMedicineDetail :exec
INSERT INTO medicines (product_id) VALUES ($1)
`

const createToyDetail = `-- name: CreateToyDetail :exec
INSERT INTO toys (product_id) VALUES ($1)
`

const createFeedDetail = `-- name: CreateFeedDetail :exec
INSERT INTO feeds (product_id) VALUES ($1)
`

type CreateProductDetailParams struct {
	ProductID int64
	Category  string
}

// CreateProductDetail inserts the row in the category-specific detail table.
func (q *Queries) CreateProductDetail(ctx context.Context, arg CreateProductDetailParams) error {
	var query string
	switch arg.Category {
	case "MEDICINE":
		query = createMedicineDetail
	case "TOY":
		query = createToyDetail
	case "FEED":
		query = createFeedDetail
	default:
		return fmt.Errorf("unknown product category %q", arg.Category)
	}
	_, err := q.db.Exec(ctx, query, arg.ProductID)
	return err
}
