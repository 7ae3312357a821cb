package store

import (
	"context"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"invtrack/internal/domain"
)

// MemoryStore is an in-memory implementation of Store.
// It keeps insertion order and assigns sequential integer ids.
type MemoryStore struct {
	mu       sync.RWMutex
	products []domain.Product
	nextID   int
}

// NewMemoryStore creates a new memory-based product store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// NewDemoStore creates a memory store seeded with sample products
func NewDemoStore() *MemoryStore {
	s := NewMemoryStore()
	s.Seed(DemoProducts()...)
	return s
}

// DemoProducts returns the sample inventory used by --demo
func DemoProducts() []domain.Product {
	return []domain.Product{
		{Name: "Apple", Description: "red fruit", Price: decimal.RequireFromString("1.5"), Quantity: 10},
		{Name: "Banana", Description: "", Price: decimal.RequireFromString("0.5"), Quantity: 20},
		{Name: "Cordless Drill", Description: "18V with two batteries", Price: decimal.RequireFromString("89.99"), Quantity: 4},
		{Name: "Desk Lamp", Description: "LED, warm white", Price: decimal.RequireFromString("24.00"), Quantity: 12},
		{Name: "Espresso Beans", Description: "dark roast, 1kg", Price: decimal.RequireFromString("17.25"), Quantity: 30},
	}
}

// Seed adds products as-is. Products without an id get the next sequential one.
func (s *MemoryStore) Seed(products ...domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range products {
		if p.ID == "" {
			p.ID = s.assignID()
		} else if n, err := strconv.Atoi(p.ID.String()); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
		s.products = append(s.products, p)
	}
}

func (s *MemoryStore) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make([]domain.Product, len(s.products))
	copy(result, s.products)
	return result, nil
}

func (s *MemoryStore) Create(ctx context.Context, p domain.NewProduct) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := domain.Product{
		ID:          s.assignID(),
		Name:        p.Name,
		Description: p.Description,
		Price:       decimal.NewFromFloat(p.Price),
		Quantity:    p.Quantity,
	}
	s.products = append(s.products, created)
	return &created, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id domain.ProductID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return errors.Wrapf(ErrNotFound, "product %s", id)
}

// Len returns the number of stored products
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// assignID must be called with the lock held
func (s *MemoryStore) assignID() domain.ProductID {
	id := domain.ProductID(strconv.Itoa(s.nextID))
	s.nextID++
	return id
}
