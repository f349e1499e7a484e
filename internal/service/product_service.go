package service

import (
	"context"
	"strings"

	"github.com/jaideep-27/shophub/internal/models"
	"github.com/jaideep-27/shophub/internal/repository"
)

// ProductService handles business logic for products
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts returns every product, or only those in category when one is given
func (s *ProductService) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return s.repo.GetAll(ctx)
	}
	return s.repo.GetByCategory(ctx, category)
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Categories returns every category name in catalog order
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// SearchCategories returns the categories whose name contains term, ignoring
// case. An empty term matches every category.
func (s *ProductService) SearchCategories(ctx context.Context, term string) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	matches := make([]string, 0, len(categories))
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c), term) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}
