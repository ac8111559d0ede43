package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

const getCartByOwner = `-- name: GetCartByOwner :one
SELECT id, user_id, total, created_at, updated_at
FROM carts
WHERE user_id = $1
FOR SHARE
`

// GetCartByOwner takes a share lock on the header so a projection read in
// the same transaction waits for in-flight mutations and sees their lines.

func (q *Queries) GetCartByOwner(ctx context.Context, userID int64) (Cart, error) {
	row := q.db.QueryRow(ctx, getCartByOwner, userID)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Total,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getCartByOwnerForUpdate = `-- name: GetCartByOwnerForUpdate :one
SELECT id, user_id, total, created_at, updated_at
FROM carts
WHERE user_id = $1
FOR UPDATE
`

// GetCartByOwnerForUpdate locks the cart header until the surrounding
// transaction ends. All mutations of one user's cart serialize on this lock.
func (q *Queries) GetCartByOwnerForUpdate(ctx context.Context, userID int64) (Cart, error) {
	row := q.db.QueryRow(ctx, getCartByOwnerForUpdate, userID)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Total,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getCartByID = `-- name: GetCartByID :one
SELECT id, user_id, total, created_at, updated_at
FROM carts
WHERE id = $1
`

func (q *Queries) GetCartByID(ctx context.Context, id int64) (Cart, error) {
	row := q.db.QueryRow(ctx, getCartByID, id)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Total,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// The no-op DO UPDATE makes a concurrent first add return (and lock) the
// winner's row instead of failing on the unique constraint.
const createCart = `-- name: CreateCart :one
INSERT INTO carts (user_id, total)
VALUES ($1, 0)
ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING id, user_id, total, created_at, updated_at
`

func (q *Queries) CreateCart(ctx context.Context, userID int64) (Cart, error) {
	row := q.db.QueryRow(ctx, createCart, userID)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Total,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const recomputeCartTotal = `-- name: RecomputeCartTotal :one
UPDATE carts
SET total = (
        SELECT COALESCE(SUM(l.quantity * p.price), 0)
        FROM cart_lines l
        JOIN products p ON p.id = l.product_id
        WHERE l.cart_id = $1
    ),
    updated_at = now()
WHERE id = $1
RETURNING total
`

// RecomputeCartTotal revalues every line at the current catalog price and
// stores the sum on the header.
func (q *Queries) RecomputeCartTotal(ctx context.Context, cartID int64) (decimal.Decimal, error) {
	row := q.db.QueryRow(ctx, recomputeCartTotal, cartID)
	var total decimal.Decimal
	err := row.Scan(&total)
	return total, err
}

const upsertCartLine = `-- name: UpsertCartLine :one
INSERT INTO cart_lines (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
RETURNING quantity
`

type UpsertCartLineParams struct {
	CartID    int64
	ProductID int64
	Quantity  int32
}

// UpsertCartLine inserts the line or increments its quantity by arg.Quantity.
// It returns the resulting quantity.
func (q *Queries) UpsertCartLine(ctx context.Context, arg UpsertCartLineParams) (int32, error) {
	row := q.db.QueryRow(ctx, upsertCartLine, arg.CartID, arg.ProductID, arg.Quantity)
	var quantity int32
	err := row.Scan(&quantity)
	return quantity, err
}

const getCartLineQuantity = `-- name: GetCartLineQuantity :one
SELECT quantity
FROM cart_lines
WHERE cart_id = $1 AND product_id = $2
FOR UPDATE
`

type CartLineKey struct {
	CartID    int64
	ProductID int64
}

func (q *Queries) GetCartLineQuantity(ctx context.Context, arg CartLineKey) (int32, error) {
	row := q.db.QueryRow(ctx, getCartLineQuantity, arg.CartID, arg.ProductID)
	var quantity int32
	err := row.Scan(&quantity)
	return quantity, err
}

const setCartLineQuantity = `-- name: SetCartLineQuantity :exec
UPDATE cart_lines
SET quantity = $3
WHERE cart_id = $1 AND product_id = $2
`

type SetCartLineQuantityParams struct {
	CartID    int64
	ProductID int64
	Quantity  int32
}

func (q *Queries) SetCartLineQuantity(ctx context.Context, arg SetCartLineQuantityParams) error {
	_, err := q.db.Exec(ctx, setCartLineQuantity, arg.CartID, arg.ProductID, arg.Quantity)
	return err
}

const deleteCartLine = `-- name: DeleteCartLine :exec
DELETE FROM cart_lines
WHERE cart_id = $1 AND product_id = $2
`

func (q *Queries) DeleteCartLine(ctx context.Context, arg CartLineKey) error {
	_, err := q.db.Exec(ctx, deleteCartLine, arg.CartID, arg.ProductID)
	return err
}

const listCartLines = `-- name: ListCartLines :many
SELECT l.product_id, p.name, p.price, l.quantity
FROM cart_lines l
JOIN products p ON p.id = l.product_id
WHERE l.cart_id = $1
ORDER BY p.name ASC, l.product_id ASC
`

type ListCartLinesRow struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
	Quantity  int32
}

func (q *Queries) ListCartLines(ctx context.Context, cartID int64) ([]ListCartLinesRow, error) {
	rows, err := q.db.Query(ctx, listCartLines, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListCartLinesRow{}
	for rows.Next() {
		var i ListCartLinesRow
		if err := rows.Scan(
			&i.ProductID,
			&i.Name,
			&i.Price,
			&i.Quantity,
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
