// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dukerupert/vendas/internal/domain"
	"github.com/shopspring/decimal"
)

// SeedProduct is one entry of a catalog seed file. Field names follow the
// API so a seed file can be built from a GET /produtos response.
type SeedProduct struct {
	Name        string          `json:"nome"`
	Price       decimal.Decimal `json:"preco"`
	Category    string          `json:"tipo"`
	Description *string         `json:"descricao"`
}

// LoadCatalogSeed reads a JSON array of SeedProduct from path.
func LoadCatalogSeed(path string) ([]SeedProduct, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog seed: %w", err)
	}
	defer f.Close()

	return decodeCatalogSeed(f)
}

func decodeCatalogSeed(r io.Reader) ([]SeedProduct, error) {
	var seed []SeedProduct
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("failed to decode catalog seed: %w", err)
	}
	return seed, nil
}

// EnsureCatalog creates the seed products when the catalog is empty.
// This function is idempotent - safe to call on every startup.
//
// If the catalog already has products, it returns without error.
// Every seed entry is validated before anything is written, so a bad
// file never leaves a partial catalog behind.
func EnsureCatalog(
	ctx context.Context,
	products domain.ProductService,
	seed []SeedProduct,
	logger *slog.Logger,
) (int, error) {
	if len(seed) == 0 {
		return 0, nil
	}

	existing, err := products.ListProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing catalog: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("bootstrap: catalog already populated, skipping seed",
			"products", len(existing),
		)
		return 0, nil
	}

	params := make([]domain.CreateProductParams, 0, len(seed))
	for i, s := range seed {
		category, err := domain.ParseCategory(s.Category)
		if err != nil {
			return 0, fmt.Errorf("seed entry %d (%q): %w", i, s.Name, err)
		}
		p := domain.CreateProductParams{
			Name:        s.Name,
			Price:       s.Price,
			Category:    category,
			Description: s.Description,
		}
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("seed entry %d (%q): %w", i, s.Name, err)
		}
		params = append(params, p)
	}

	created := 0
	for _, p := range params {
		product, err := products.CreateProduct(ctx, p)
		if err != nil {
			return created, fmt.Errorf("failed to create seed product %q: %w", p.Name, err)
		}
		created++
		logger.Debug("bootstrap: seed product created",
			"product_id", product.ID,
			"name", product.Name,
		)
	}

	logger.Info("bootstrap: catalog seeded", "products", created)
	return created, nil
}

// ErrNoSeedFile is returned by SeedFromFile when path is empty.
var ErrNoSeedFile = errors.New("no catalog seed file configured")

// SeedFromFile loads path and runs EnsureCatalog.
func SeedFromFile(ctx context.Context, products domain.ProductService, path string, logger *slog.Logger) (int, error) {
	if path == "" {
		return 0, ErrNoSeedFile
	}
	seed, err := LoadCatalogSeed(path)
	if err != nil {
		return 0, err
	}
	return EnsureCatalog(ctx, products, seed, logger)
}
