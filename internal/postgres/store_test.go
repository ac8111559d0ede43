package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/dukerupert/vendas/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// maxCartTotal is the exclusive bound of carts.total NUMERIC(12,2).
var maxCartTotal = decimal.New(1, 10)

// fakeStore is an in-memory repository.Store. ExecTx runs transactions one
// at a time (standing in for the cart header row lock), snapshots the state
// first and restores it when fn fails or panics.
type fakeStore struct {
	mu sync.Mutex

	products map[int64]repository.Product
	details  map[int64]string
	carts    map[int64]repository.Cart
	lines    map[repository.CartLineKey]int32

	nextProductID int64
	nextCartID    int64
	clock         time.Time

	// faults maps a Querier method name to the error it returns.
	faults map[string]error

	commits   int
	rollbacks int
}

var _ repository.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: map[int64]repository.Product{},
		details:  map[int64]string{},
		carts:    map[int64]repository.Cart{},
		lines:    map[repository.CartLineKey]int32{},
		clock:    time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		faults:   map[string]error{},
	}
}

type fakeSnapshot struct {
	products      map[int64]repository.Product
	details       map[int64]string
	carts         map[int64]repository.Cart
	lines         map[repository.CartLineKey]int32
	nextProductID int64
	nextCartID    int64
}

func (s *fakeStore) snapshot() fakeSnapshot {
	snap := fakeSnapshot{
		products:      make(map[int64]repository.Product, len(s.products)),
		details:       make(map[int64]string, len(s.details)),
		carts:         make(map[int64]repository.Cart, len(s.carts)),
		lines:         make(map[repository.CartLineKey]int32, len(s.lines)),
		nextProductID: s.nextProductID,
		nextCartID:    s.nextCartID,
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.details {
		snap.details[k] = v
	}
	for k, v := range s.carts {
		snap.carts[k] = v
	}
	for k, v := range s.lines {
		snap.lines[k] = v
	}
	return snap
}

func (s *fakeStore) restore(snap fakeSnapshot) {
	s.products = snap.products
	s.details = snap.details
	s.carts = snap.carts
	s.lines = snap.lines
	s.nextProductID = snap.nextProductID
	s.nextCartID = snap.nextCartID
}

func (s *fakeStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// now() is constant inside a PostgreSQL transaction.
	s.clock = s.clock.Add(time.Second)
	snap := s.snapshot()

	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			s.rollbacks++
			panic(p)
		}
		if err != nil {
			s.restore(snap)
			s.rollbacks++
			return
		}
		s.commits++
	}()

	return fn(s)
}

func (s *fakeStore) fault(method string) error {
	return s.faults[method]
}

// seedProduct adds a catalog row directly, bypassing the service.
func (s *fakeStore) seedProduct(id int64, name, price string) {
	s.products[id] = repository.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: "FEED",
	}
	if id > s.nextProductID {
		s.nextProductID = id
	}
}

func (s *fakeStore) setPrice(id int64, price string) {
	p := s.products[id]
	p.Price = decimal.RequireFromString(price)
	s.products[id] = p
}

func (s *fakeStore) cartOf(userID int64) (repository.Cart, bool) {
	for _, c := range s.carts {
		if c.UserID == userID {
			return c, true
		}
	}
	return repository.Cart{}, false
}

// Catalog

func (s *fakeStore) GetProduct(ctx context.Context, id int64) (repository.Product, error) {
	if err := s.fault("GetProduct"); err != nil {
		return repository.Product{}, err
	}
	p, ok := s.products[id]
	if !ok {
		return repository.Product{}, sql.ErrNoRows
	}
	return p, nil
}

func (s *fakeStore) ListProducts(ctx context.Context) ([]repository.Product, error) {
	if err := s.fault("ListProducts"); err != nil {
		return nil, err
	}
	out := make([]repository.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *fakeStore) CreateProduct(ctx context.Context, arg repository.CreateProductParams) (repository.Product, error) {
	if err := s.fault("CreateProduct"); err != nil {
		return repository.Product{}, err
	}
	s.nextProductID++
	p := repository.Product{
		ID:          s.nextProductID,
		Name:        arg.Name,
		Price:       arg.Price,
		Category:    arg.Category,
		Description: arg.Description,
		CreatedAt:   s.clock,
	}
	s.products[p.ID] = p
	return p, nil
}

func (s *fakeStore) CreateProductDetail(ctx context.Context, arg repository.CreateProductDetailParams) error {
	if err := s.fault("CreateProductDetail"); err != nil {
		return err
	}
	if _, ok := s.products[arg.ProductID]; !ok {
		return fmt.Errorf("foreign key violation: product %d", arg.ProductID)
	}
	s.details[arg.ProductID] = arg.Category
	return nil
}

// Cart header

func (s *fakeStore) GetCartByOwner(ctx context.Context, userID int64) (repository.Cart, error) {
	if err := s.fault("GetCartByOwner"); err != nil {
		return repository.Cart{}, err
	}
	c, ok := s.cartOf(userID)
	if !ok {
		return repository.Cart{}, sql.ErrNoRows
	}
	return c, nil
}

func (s *fakeStore) GetCartByOwnerForUpdate(ctx context.Context, userID int64) (repository.Cart, error) {
	if err := s.fault("GetCartByOwnerForUpdate"); err != nil {
		return repository.Cart{}, err
	}
	c, ok := s.cartOf(userID)
	if !ok {
		return repository.Cart{}, sql.ErrNoRows
	}
	return c, nil
}

func (s *fakeStore) GetCartByID(ctx context.Context, id int64) (repository.Cart, error) {
	if err := s.fault("GetCartByID"); err != nil {
		return repository.Cart{}, err
	}
	c, ok := s.carts[id]
	if !ok {
		return repository.Cart{}, sql.ErrNoRows
	}
	return c, nil
}

func (s *fakeStore) CreateCart(ctx context.Context, userID int64) (repository.Cart, error) {
	if err := s.fault("CreateCart"); err != nil {
		return repository.Cart{}, err
	}
	if c, ok := s.cartOf(userID); ok {
		return c, nil
	}
	s.nextCartID++
	c := repository.Cart{
		ID:        s.nextCartID,
		UserID:    userID,
		Total:     decimal.Zero,
		CreatedAt: s.clock,
		UpdatedAt: s.clock,
	}
	s.carts[c.ID] = c
	return c, nil
}

func (s *fakeStore) RecomputeCartTotal(ctx context.Context, cartID int64) (decimal.Decimal, error) {
	if err := s.fault("RecomputeCartTotal"); err != nil {
		return decimal.Zero, err
	}
	c, ok := s.carts[cartID]
	if !ok {
		return decimal.Zero, sql.ErrNoRows
	}
	total := decimal.Zero
	for k, q := range s.lines {
		if k.CartID != cartID {
			continue
		}
		total = total.Add(s.products[k.ProductID].Price.Mul(decimal.NewFromInt32(q)))
	}
	if total.GreaterThanOrEqual(maxCartTotal) {
		return decimal.Zero, &pgconn.PgError{Code: numericValueOutOfRange, Message: "numeric field overflow"}
	}
	c.Total = total
	c.UpdatedAt = s.clock
	s.carts[cartID] = c
	return total, nil
}

// Cart lines

func (s *fakeStore) UpsertCartLine(ctx context.Context, arg repository.UpsertCartLineParams) (int32, error) {
	if err := s.fault("UpsertCartLine"); err != nil {
		return 0, err
	}
	key := repository.CartLineKey{CartID: arg.CartID, ProductID: arg.ProductID}
	if int64(s.lines[key])+int64(arg.Quantity) > math.MaxInt32 {
		return 0, &pgconn.PgError{Code: numericValueOutOfRange, Message: "integer out of range"}
	}
	s.lines[key] += arg.Quantity
	return s.lines[key], nil
}

func (s *fakeStore) GetCartLineQuantity(ctx context.Context, arg repository.CartLineKey) (int32, error) {
	if err := s.fault("GetCartLineQuantity"); err != nil {
		return 0, err
	}
	q, ok := s.lines[arg]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return q, nil
}

func (s *fakeStore) SetCartLineQuantity(ctx context.Context, arg repository.SetCartLineQuantityParams) error {
	if err := s.fault("SetCartLineQuantity"); err != nil {
		return err
	}
	key := repository.CartLineKey{CartID: arg.CartID, ProductID: arg.ProductID}
	if _, ok := s.lines[key]; ok {
		s.lines[key] = arg.Quantity
	}
	return nil
}

func (s *fakeStore) DeleteCartLine(ctx context.Context, arg repository.CartLineKey) error {
	if err := s.fault("DeleteCartLine"); err != nil {
		return err
	}
	delete(s.lines, arg)
	return nil
}

func (s *fakeStore) ListCartLines(ctx context.Context, cartID int64) ([]repository.ListCartLinesRow, error) {
	if err := s.fault("ListCartLines"); err != nil {
		return nil, err
	}
	out := []repository.ListCartLinesRow{}
	for k, q := range s.lines {
		if k.CartID != cartID {
			continue
		}
		p := s.products[k.ProductID]
		out = append(out, repository.ListCartLinesRow{
			ProductID: k.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  q,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out, nil
}
