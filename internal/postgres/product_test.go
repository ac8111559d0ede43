package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/dukerupert/vendas/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_CreateProduct(t *testing.T) {
	store := newFakeStore()
	svc := NewProductService(store)
	desc := "Ração premium para cães adultos"

	p, err := svc.CreateProduct(context.Background(), domain.CreateProductParams{
		Name:        "Ração X",
		Price:       dec("49.899"),
		Category:    domain.CategoryFeed,
		Description: &desc,
	})
	require.NoError(t, err)

	assert.NotZero(t, p.ID)
	assert.Equal(t, "49.90", p.Price.StringFixed(2), "price is rounded to cents")
	assert.Equal(t, domain.CategoryFeed, p.Category)
	require.NotNil(t, p.Description)
	assert.Equal(t, desc, *p.Description)
	assert.Equal(t, "FEED", store.details[p.ID], "category detail row is written")
}

func TestProductService_CreateProduct_Invalid(t *testing.T) {
	store := newFakeStore()
	svc := NewProductService(store)

	_, err := svc.CreateProduct(context.Background(), domain.CreateProductParams{
		Name:     "Coleira",
		Price:    dec("-1"),
		Category: domain.CategoryToy,
	})
	assert.ErrorIs(t, err, domain.ErrNegativePrice)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Empty(t, store.products)
}

func TestProductService_CreateProduct_DetailFailureRollsBack(t *testing.T) {
	store := newFakeStore()
	store.faults["CreateProductDetail"] = errors.New("insert failed")
	svc := NewProductService(store)

	_, err := svc.CreateProduct(context.Background(), domain.CreateProductParams{
		Name:     "Vermífugo",
		Price:    dec("27.10"),
		Category: domain.CategoryMedicine,
	})
	require.Error(t, err)
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
	assert.Empty(t, store.products)
	assert.Empty(t, store.details)
}

func TestProductService_GetProduct(t *testing.T) {
	store := newFakeStore()
	store.seedProduct(7, "Ração X", "49.90")
	svc := NewProductService(store)
	ctx := context.Background()

	p, err := svc.GetProduct(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Ração X", p.Name)

	_, err = svc.GetProduct(ctx, 8)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))

	store.faults["GetProduct"] = errors.New("boom")
	_, err = svc.GetProduct(ctx, 7)
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
}

func TestProductService_ListProducts(t *testing.T) {
	store := newFakeStore()
	store.seedProduct(1, "Vermífugo", "27.10")
	store.seedProduct(2, "Bolinha", "12.35")
	store.seedProduct(3, "Ração X", "49.90")
	svc := NewProductService(store)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)

	names := []string{products[0].Name, products[1].Name, products[2].Name}
	assert.Equal(t, []string{"Bolinha", "Ração X", "Vermífugo"}, names)
}

func TestProductService_ListProducts_Empty(t *testing.T) {
	products, err := NewProductService(newFakeStore()).ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}
