package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rindi230/angelsfitnesgym/internal/product/domain"
	"github.com/rindi230/angelsfitnesgym/internal/product/repository"
	apperrors "github.com/rindi230/angelsfitnesgym/pkg/errors"
	"github.com/rindi230/angelsfitnesgym/pkg/pagination"
)

// ProductService implements the business logic for the shop catalog.
type ProductService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// ListProducts returns a page of shop products.
func (s *ProductService) ListProducts(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Product], error) {
	products, err := s.repo.List(ctx, params.PerPage, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	result := pagination.NewResult(products, total, params)
	return &result, nil
}

// GetProduct retrieves a single product by ID.
func (s *ProductService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}
