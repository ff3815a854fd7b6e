package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/stockroom/stockroom/internal/model"
	"github.com/stockroom/stockroom/internal/repository"
)

// Product service errors.
var (
	ErrInvalidID       = errors.New("invalid product ID")
	ErrProductNotFound = errors.New("product not found")
)

const (
	minDescriptionLength = 10
	maxPrice             = 1_000_000
)

// ProductService handles product catalog business logic.
type ProductService struct {
	repo *repository.Repository
}

// NewProductService creates a new ProductService.
func NewProductService(repo *repository.Repository) *ProductService {
	return &ProductService{repo: repo}
}

// ParseProductFilter builds a typed filter from raw query parameters.
// Only category, minPrice, maxPrice, and name are recognized; anything
// else is ignored silently. Malformed price bounds are a validation error
// rather than being coerced.
func ParseProductFilter(query url.Values) (repository.ProductFilter, error) {
	filter := repository.ProductFilter{
		Category: query.Get("category"),
		Name:     query.Get("name"),
	}

	verr := &ValidationError{}

	if raw := query.Get("minPrice"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			verr.add("minPrice", "must be a number")
		} else {
			filter.MinPrice = &min
		}
	}

	if raw := query.Get("maxPrice"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			verr.add("maxPrice", "must be a number")
		} else {
			filter.MaxPrice = &max
		}
	}

	if err := verr.orNil(); err != nil {
		return repository.ProductFilter{}, err
	}

	return filter, nil
}

// List retrieves all products matching the filter.
// No match yields an empty collection, not an error.
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]*model.Product, error) {
	products, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Get retrieves a product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	if !validID(id) {
		return nil, ErrInvalidID
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return product, nil
}

// CreateProductInput defines input for creating a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
}

// Create validates the input and persists a new product.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*model.Product, error) {
	verr := &ValidationError{}
	validateName(verr, input.Name)
	validateDescription(verr, input.Description)
	validatePrice(verr, input.Price)
	validateStock(verr, input.Stock)
	validateCategory(verr, input.Category)
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:          newID(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// UpdateProductInput defines a partial update; nil fields are left unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	Category    *string
}

// Update applies a partial update to a product. Any field present must
// satisfy the same constraints as creation. Returns the post-update record.
func (s *ProductService) Update(ctx context.Context, id string, input UpdateProductInput) (*model.Product, error) {
	if !validID(id) {
		return nil, ErrInvalidID
	}

	verr := &ValidationError{}
	if input.Name != nil {
		validateName(verr, *input.Name)
	}
	if input.Description != nil {
		validateDescription(verr, *input.Description)
	}
	if input.Price != nil {
		validatePrice(verr, *input.Price)
	}
	if input.Stock != nil {
		validateStock(verr, *input.Stock)
	}
	if input.Category != nil {
		validateCategory(verr, *input.Category)
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// Delete permanently removes a product and returns its prior state.
func (s *ProductService) Delete(ctx context.Context, id string) (*model.Product, error) {
	if !validID(id) {
		return nil, ErrInvalidID
	}

	product, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	return product, nil
}

func validateName(verr *ValidationError, name string) {
	if name == "" {
		verr.add("name", "is required")
	}
}

func validateDescription(verr *ValidationError, description string) {
	if len(description) < minDescriptionLength {
		verr.add("description", fmt.Sprintf("must be at least %d characters", minDescriptionLength))
	}
}

func validatePrice(verr *ValidationError, price float64) {
	if price < 0 {
		verr.add("price", "must not be negative")
	} else if price > maxPrice {
		verr.add("price", fmt.Sprintf("must not exceed %d", maxPrice))
	}
}

func validateStock(verr *ValidationError, stock int) {
	if stock < 0 {
		verr.add("stock", "must not be negative")
	}
}

func validateCategory(verr *ValidationError, category string) {
	if category == "" {
		verr.add("category", "is required")
	}
}
