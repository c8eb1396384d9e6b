package repository

import (
	"context"

	"github.com/rindi230/angelsfitnesgym/internal/classes/domain"
)

// ClassRepository defines the interface for class catalog persistence.
type ClassRepository interface {
	// ListActive returns all active classes ordered by name.
	ListActive(ctx context.Context) ([]domain.Class, error)

	// GetByID retrieves a class by its ID.
	GetByID(ctx context.Context, id int) (*domain.Class, error)
}
