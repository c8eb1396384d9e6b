package repository

import (
	"context"

	"github.com/rindi230/angelsfitnesgym/internal/product/domain"
)

// ProductRepository defines the interface for product catalog persistence.
type ProductRepository interface {
	// List returns a page of products ordered by name.
	List(ctx context.Context, limit, offset int) ([]domain.Product, error)

	// Count returns the total number of products.
	Count(ctx context.Context) (int, error)

	// GetByID retrieves a product by its ID.
	GetByID(ctx context.Context, id int) (*domain.Product, error)
}
