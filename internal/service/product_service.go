package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"storeapi/internal/cache"
	"storeapi/internal/errors"
	"storeapi/internal/model"
	"storeapi/internal/repository"
)

const productCacheTTL = 5 * time.Minute

// ProductInput carries the mutable product fields from a request.
// Availability is optional on create and defaults to true.
type ProductInput struct {
	Name         string
	Price        float64
	Availability *bool
}

// ProductService exposes the product operations, one per HTTP verb.
type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
	Create(ctx context.Context, input ProductInput) (*model.Product, error)
	Replace(ctx context.Context, id uint, input ProductInput) (*model.Product, error)
	ToggleAvailability(ctx context.Context, id uint) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	products  repository.ProductRepository
	cache     *cache.Client
	listOrder string
}

// NewProductService builds a ProductService with repository and cache.
func NewProductService(products repository.ProductRepository, cache *cache.Client, listOrder string) ProductService {
	return &productService{
		products:  products,
		cache:     cache,
		listOrder: listOrder,
	}
}

func (s *productService) cacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.products.List(ctx, s.listOrder)
}

func (s *productService) Get(ctx context.Context, id uint) (*model.Product, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, productCacheTTL)
	}
	return product, nil
}

func (s *productService) Create(ctx context.Context, input ProductInput) (*model.Product, error) {
	availability := true
	if input.Availability != nil {
		availability = *input.Availability
	}

	product := &model.Product{
		Name:         input.Name,
		Price:        input.Price,
		Availability: availability,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *productService) Replace(ctx context.Context, id uint, input ProductInput) (*model.Product, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Price = input.Price
	if input.Availability != nil {
		product.Availability = *input.Availability
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return product, nil
}

func (s *productService) ToggleAvailability(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Availability = !product.Availability

	if err := s.products.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// find looks a product up directly in the store, translating the missing-row
// error into the domain sentinel.
func (s *productService) find(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}
