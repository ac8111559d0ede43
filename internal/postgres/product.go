package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dukerupert/vendas/internal/domain"
	"github.com/dukerupert/vendas/internal/repository"
)

// ProductService implements domain.ProductService using PostgreSQL.
type ProductService struct {
	store repository.Store
}

// Compile-time check that ProductService implements domain.ProductService.
var _ domain.ProductService = (*ProductService)(nil)

// NewProductService creates a new PostgreSQL-backed product service.
func NewProductService(store repository.Store) *ProductService {
	return &ProductService{
		store: store,
	}
}

// GetProduct returns a single product by id.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	row, err := s.store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WithOp(domain.ErrProductNotFound, "product.get")
		}
		return nil, domain.Internal(err, "product.get", "failed to get product")
	}

	p := toDomainProduct(row)
	return &p, nil
}

// ListProducts returns all products ordered by name.
func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, domain.Internal(err, "product.list", "failed to list products")
	}

	products := make([]domain.Product, len(rows))
	for i, row := range rows {
		products[i] = toDomainProduct(row)
	}
	return products, nil
}

// CreateProduct inserts the product and its category detail row in one
// transaction.
func (s *ProductService) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	const op = "product.create"

	if err := params.Validate(); err != nil {
		return nil, err
	}

	var created repository.Product
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		row, err := q.CreateProduct(ctx, repository.CreateProductParams{
			Name:        params.Name,
			Price:       params.Price.Round(2),
			Category:    string(params.Category),
			Description: params.Description,
		})
		if err != nil {
			return domain.Internal(err, op, "failed to insert product")
		}

		if err := q.CreateProductDetail(ctx, repository.CreateProductDetailParams{
			ProductID: row.ID,
			Category:  row.Category,
		}); err != nil {
			return domain.Internal(err, op, "failed to insert product category detail")
		}

		created = row
		return nil
	})
	if err != nil {
		return nil, txError(err, op)
	}

	p := toDomainProduct(created)
	return &p, nil
}

func toDomainProduct(row repository.Product) domain.Product {
	return domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Price:       row.Price,
		Category:    domain.Category(row.Category),
		Description: row.Description,
	}
}
