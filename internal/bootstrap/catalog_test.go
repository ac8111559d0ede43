package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dukerupert/vendas/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	products  []domain.Product
	listErr   error
	createErr error
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return f.products, f.listErr
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p := domain.Product{
		ID:          int64(len(f.products) + 1),
		Name:        params.Name,
		Price:       params.Price,
		Category:    params.Category,
		Description: params.Description,
	}
	f.products = append(f.products, p)
	return &p, nil
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

const seedJSON = `[
	{"nome": "Ração X", "preco": 49.90, "tipo": "RACAO", "descricao": "15kg"},
	{"nome": "Bola", "preco": "12.5", "tipo": "BRINQUEDO"},
	{"nome": "Vermífugo", "preco": 32, "tipo": "REMEDIO"}
]`

func TestEnsureCatalog(t *testing.T) {
	seed, err := decodeCatalogSeed(strings.NewReader(seedJSON))
	require.NoError(t, err)
	require.Len(t, seed, 3)

	t.Run("seeds an empty catalog", func(t *testing.T) {
		catalog := &fakeCatalog{}

		n, err := EnsureCatalog(context.Background(), catalog, seed, discard)

		require.NoError(t, err)
		assert.Equal(t, 3, n)
		require.Len(t, catalog.products, 3)
		assert.Equal(t, domain.CategoryFeed, catalog.products[0].Category)
		assert.Equal(t, "49.9", catalog.products[0].Price.String())
		assert.Equal(t, domain.CategoryToy, catalog.products[1].Category)
	})

	t.Run("idempotent", func(t *testing.T) {
		catalog := &fakeCatalog{}
		_, err := EnsureCatalog(context.Background(), catalog, seed, discard)
		require.NoError(t, err)

		n, err := EnsureCatalog(context.Background(), catalog, seed, discard)

		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Len(t, catalog.products, 3)
	})

	t.Run("invalid entry writes nothing", func(t *testing.T) {
		bad, err := decodeCatalogSeed(strings.NewReader(`[
			{"nome": "Ok", "preco": 1, "tipo": "RACAO"},
			{"nome": "Ruim", "preco": 1, "tipo": "COMIDA"}
		]`))
		require.NoError(t, err)
		catalog := &fakeCatalog{}

		_, err = EnsureCatalog(context.Background(), catalog, bad, discard)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidCategory)
		assert.Empty(t, catalog.products)
	})

	t.Run("list failure", func(t *testing.T) {
		catalog := &fakeCatalog{listErr: errors.New("db down")}

		_, err := EnsureCatalog(context.Background(), catalog, seed, discard)

		require.Error(t, err)
	})
}

func TestDecodeCatalogSeed_UnknownField(t *testing.T) {
	_, err := decodeCatalogSeed(strings.NewReader(`[{"nome":"x","preco":1,"tipo":"RACAO","estoque":2}]`))
	assert.Error(t, err)
}

func TestSeedFromFile(t *testing.T) {
	_, err := SeedFromFile(context.Background(), &fakeCatalog{}, "", discard)
	assert.ErrorIs(t, err, ErrNoSeedFile)

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(seedJSON), 0o600))

	catalog := &fakeCatalog{}
	n, err := SeedFromFile(context.Background(), catalog, path, discard)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
