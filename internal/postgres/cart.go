package postgres

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"github.com/dukerupert/vendas/internal/domain"
	"github.com/dukerupert/vendas/internal/repository"
)

// CartService implements domain.CartService using PostgreSQL.
//
// Each mutation runs in one transaction: the cart header row is locked
// first, so concurrent mutations of the same user's cart are applied one
// after another and the total is always recomputed from the lines the
// transaction itself wrote.
type CartService struct {
	store repository.Store
}

// Compile-time check that CartService implements domain.CartService.
var _ domain.CartService = (*CartService)(nil)

// NewCartService creates a new PostgreSQL-backed cart service.
func NewCartService(store repository.Store) *CartService {
	return &CartService{
		store: store,
	}
}

// GetCart returns the cart projection, or the empty-cart sentinel when the
// user has never added anything.
func (s *CartService) GetCart(ctx context.Context, userID int64) (*domain.CartProjection, error) {
	const op = "cart.get"

	if userID <= 0 {
		return nil, domain.WithOp(domain.ErrInvalidUser, op)
	}

	var projection *domain.CartProjection
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		cart, err := q.GetCartByOwner(ctx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				projection = domain.EmptyCart(userID)
				return nil
			}
			return domain.Internal(err, op, "failed to get cart")
		}

		projection, err = project(ctx, q, cart, op)
		return err
	})
	if err != nil {
		return nil, txError(err, op)
	}

	return projection, nil
}

// AddToCart adds quantity units of productID to the user's cart, creating
// the cart on first use.
func (s *CartService) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*domain.CartProjection, error) {
	const op = "cart.add"

	if userID <= 0 {
		return nil, domain.WithOp(domain.ErrInvalidUser, op)
	}
	if quantity <= 0 || quantity > math.MaxInt32 {
		return nil, domain.WithOp(domain.ErrInvalidQuantity, op)
	}

	var projection *domain.CartProjection
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.GetProduct(ctx, productID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.WithOp(domain.ErrProductNotFound, op)
			}
			return domain.Internal(err, op, "failed to get product")
		}

		cart, err := q.GetCartByOwnerForUpdate(ctx, userID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return domain.Internal(err, op, "failed to lock cart")
			}
			cart, err = q.CreateCart(ctx, userID)
			if err != nil {
				return domain.Internal(err, op, "failed to create cart")
			}
		}

		current, err := q.GetCartLineQuantity(ctx, repository.CartLineKey{CartID: cart.ID, ProductID: productID})
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return domain.Internal(err, op, "failed to get cart line")
		}
		if int64(current)+int64(quantity) > math.MaxInt32 {
			return domain.WithOp(domain.ErrInvalidQuantity, op)
		}

		if _, err := q.UpsertCartLine(ctx, repository.UpsertCartLineParams{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  int32(quantity),
		}); err != nil {
			if isOutOfRange(err) {
				return domain.WithOp(domain.ErrInvalidQuantity, op)
			}
			return domain.Internal(err, op, "failed to upsert cart line")
		}

		if _, err := q.RecomputeCartTotal(ctx, cart.ID); err != nil {
			if isOutOfRange(err) {
				return domain.WithOp(domain.ErrCartTotalTooLarge, op)
			}
			return domain.Internal(err, op, "failed to recompute cart total")
		}

		projection, err = reproject(ctx, q, cart.ID, op)
		return err
	})
	if err != nil {
		return nil, txError(err, op)
	}

	return projection, nil
}

// RemoveFromCart removes quantity units of productID from the user's cart.
// A nil quantity, or one at least as large as the line, deletes the line.
// The cart header is kept even when no lines remain.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID int64, quantity *int) (*domain.CartProjection, error) {
	const op = "cart.remove"

	if userID <= 0 {
		return nil, domain.WithOp(domain.ErrInvalidUser, op)
	}
	if quantity != nil && *quantity <= 0 {
		return nil, domain.WithOp(domain.ErrInvalidQuantity, op)
	}

	var projection *domain.CartProjection
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		cart, err := q.GetCartByOwnerForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.WithOp(domain.ErrCartNotFound, op)
			}
			return domain.Internal(err, op, "failed to lock cart")
		}

		key := repository.CartLineKey{CartID: cart.ID, ProductID: productID}
		current, err := q.GetCartLineQuantity(ctx, key)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.WithOp(domain.ErrProductNotInCart, op)
			}
			return domain.Internal(err, op, "failed to get cart line")
		}

		if quantity == nil || int64(*quantity) >= int64(current) {
			if err := q.DeleteCartLine(ctx, key); err != nil {
				return domain.Internal(err, op, "failed to delete cart line")
			}
		} else {
			if err := q.SetCartLineQuantity(ctx, repository.SetCartLineQuantityParams{
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  current - int32(*quantity),
			}); err != nil {
				return domain.Internal(err, op, "failed to update cart line")
			}
		}

		if _, err := q.RecomputeCartTotal(ctx, cart.ID); err != nil {
			return domain.Internal(err, op, "failed to recompute cart total")
		}

		projection, err = reproject(ctx, q, cart.ID, op)
		return err
	})
	if err != nil {
		return nil, txError(err, op)
	}

	return projection, nil
}

// reproject re-reads the header after a recompute and builds the projection.
func reproject(ctx context.Context, q repository.Querier, cartID int64, op string) (*domain.CartProjection, error) {
	cart, err := q.GetCartByID(ctx, cartID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to reload cart")
	}
	return project(ctx, q, cart, op)
}

func project(ctx context.Context, q repository.Querier, cart repository.Cart, op string) (*domain.CartProjection, error) {
	rows, err := q.ListCartLines(ctx, cart.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list cart lines")
	}

	items := make([]domain.CartLine, len(rows))
	for i, row := range rows {
		items[i] = domain.CartLine{
			ProductID: row.ProductID,
			Name:      row.Name,
			Price:     row.Price,
			Quantity:  row.Quantity,
		}
	}

	return &domain.CartProjection{
		UserID: cart.UserID,
		Cart: &domain.Cart{
			ID:             cart.ID,
			UserID:         cart.UserID,
			Total:          cart.Total,
			CreatedAt:      cart.CreatedAt,
			LastModifiedAt: cart.UpdatedAt,
		},
		Items: items,
	}, nil
}
