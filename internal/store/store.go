package store

import (
	"context"

	"invtrack/internal/domain"
)

// Store is the remote system of record for products
type Store interface {
	// List returns the full collection in the store's order
	List(ctx context.Context) ([]domain.Product, error)
	// Create asks the store to add a product. The returned product is nil
	// when the store's response did not describe one.
	Create(ctx context.Context, p domain.NewProduct) (*domain.Product, error)
	Delete(ctx context.Context, id domain.ProductID) error
}
