package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/domain"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/repository"
	"github.com/gosimple/slug"
)

// NewProductTag marks freshly created products; the tag reaper strips it
// after NewProductMaxAge.
const (
	NewProductTag    = "new"
	NewProductMaxAge = 7 * 24 * time.Hour
)

type CreateProductInput struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Retail         float64  `json:"retail"`
	Wholesale      float64  `json:"wholesale"`
	CategoryTitles []string `json:"category_titles"`
	Tags           []string `json:"tags"`
}

type ProductService struct {
	products repository.ProductRepository
	logger   *slog.Logger
}

func NewProductService(products repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{products: products, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (string, error) {
	if err := validateProduct(input); err != nil {
		return "", err
	}

	categories, err := s.products.CategoriesByTitle(ctx, input.CategoryTitles)
	if err != nil {
		return "", err
	}

	tags := input.Tags
	if !containsTag(tags, NewProductTag) {
		tags = append(tags, NewProductTag)
	}

	product := &domain.Product{
		Title:       input.Title,
		Description: input.Description,
		Slug:        slug.Make(input.Title),
		Price:       domain.Price{Retail: input.Retail, Wholesale: input.Wholesale},
		Categories:  categories,
		Tags:        tags,
		CreatedAt:   time.Now(),
	}

	return s.products.Create(ctx, product)
}

func (s *ProductService) Get(ctx context.Context, productSlug string) (*domain.Product, error) {
	return s.products.BySlug(ctx, productSlug)
}

func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *ProductService) Update(ctx context.Context, productSlug string, patch domain.ProductPatch) (*domain.Product, error) {
	if patch.IsEmpty() {
		verr := newValidationError()
		verr.add("patch", "no fields to update")
		return nil, verr
	}
	return s.products.Update(ctx, productSlug, patch)
}

func (s *ProductService) Comment(ctx context.Context, productSlug, text string) (*domain.Product, error) {
	if strings.TrimSpace(text) == "" {
		verr := newValidationError()
		verr.add("text", "is required")
		return nil, verr
	}

	comment := domain.Comment{Text: text, Date: time.Now()}
	return s.products.AddComment(ctx, productSlug, comment)
}

func (s *ProductService) Delete(ctx context.Context, productSlug string) error {
	return s.products.Delete(ctx, productSlug)
}

func validateProduct(input CreateProductInput) error {
	verr := newValidationError()
	if strings.TrimSpace(input.Title) == "" {
		verr.add("title", "is required")
	}
	if input.Retail <= 0 {
		verr.add("retail", "must be positive")
	}
	if input.Wholesale <= 0 {
		verr.add("wholesale", "must be positive")
	}
	if input.Wholesale > input.Retail {
		verr.add("wholesale", "must not exceed the retail price")
	}
	return verr.orNil()
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
