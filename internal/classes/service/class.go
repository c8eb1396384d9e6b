package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rindi230/angelsfitnesgym/internal/classes/domain"
	"github.com/rindi230/angelsfitnesgym/internal/classes/repository"
	apperrors "github.com/rindi230/angelsfitnesgym/pkg/errors"
)

// ClassService implements the business logic for the class catalog.
type ClassService struct {
	repo   repository.ClassRepository
	logger *slog.Logger
}

// NewClassService creates a new class service.
func NewClassService(repo repository.ClassRepository, logger *slog.Logger) *ClassService {
	return &ClassService{
		repo:   repo,
		logger: logger,
	}
}

// ListClasses returns all active classes.
func (s *ClassService) ListClasses(ctx context.Context) ([]domain.Class, error) {
	classes, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	if classes == nil {
		classes = []domain.Class{}
	}
	return classes, nil
}

// GetClass retrieves a single class by ID.
func (s *ClassService) GetClass(ctx context.Context, id int) (*domain.Class, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("class id is required")
	}

	class, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}
	return class, nil
}
