package service

import (
	"context"
	"fmt"
	"strings"

	"roastery/internal/model"
	"roastery/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	repo   repository.ProductRepository
	logger zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		repo:   repo,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

// ListActive retrieves active products for the public listing.
func (s *productService) ListActive(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetActiveByID retrieves a single active product by ID.
func (s *productService) GetActiveByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ListAll retrieves every product including inactive ones.
func (s *productService) ListAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Create adds a new product. New products are always active regardless
// of the input flag.
func (s *productService) Create(ctx context.Context, in *model.ProductInput) (*model.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	product := productFromInput(in)
	product.IsActive = true

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("product created")
	return product, nil
}

// Update overwrites an existing product. Setting isActive to false hides
// the product from the storefront without breaking historical orders.
func (s *productService) Update(ctx context.Context, id int64, in *model.ProductInput) (*model.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	product := productFromInput(in)
	product.ID = id
	product.IsActive = in.IsActive == nil || *in.IsActive

	found, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if !found {
		return nil, nil
	}

	s.logger.Info().Int64("product_id", id).Bool("is_active", product.IsActive).Msg("product updated")
	return product, nil
}

// Delete removes a product permanently. Prefer deactivation via Update
// for products that appear in historical orders.
func (s *productService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	if deleted {
		s.logger.Info().Int64("product_id", id).Msg("product deleted")
	}
	return deleted, nil
}

func validateProductInput(in *model.ProductInput) error {
	if in == nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "Product payload is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "Product name is required")
	}
	if strings.TrimSpace(in.Origin) == "" {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "Product origin is required")
	}
	if strings.TrimSpace(in.RoastLevel) == "" {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "Roast level is required")
	}
	if in.Price12oz < 0 || in.Price2lb < 0 {
		return model.NewDomainError(model.ErrCodeInvalidPrice, "Prices must be non-negative")
	}
	return nil
}

func productFromInput(in *model.ProductInput) *model.Product {
	return &model.Product{
		Name:         strings.TrimSpace(in.Name),
		Origin:       strings.TrimSpace(in.Origin),
		TastingNotes: strings.TrimSpace(in.TastingNotes),
		RoastLevel:   strings.TrimSpace(in.RoastLevel),
		ImageURL:     strings.TrimSpace(in.ImageURL),
		Price12oz:    in.Price12oz,
		Price2lb:     in.Price2lb,
	}
}
