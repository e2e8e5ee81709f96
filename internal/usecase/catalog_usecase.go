package usecase

import (
	"context"
	"fmt"
	"time"

	"velora-backend/internal/domain"
	"velora-backend/pkg/cache"
	"velora-backend/pkg/logger"
	"velora-backend/pkg/utils"

	"github.com/google/uuid"
)

const (
	featuredCacheKey = "products:featured"
	featuredLimit    = 8
)

type CatalogUsecase struct {
	productRepo domain.ProductRepository
	cache       cache.CacheService
	featuredTTL time.Duration
}

func NewCatalogUsecase(productRepo domain.ProductRepository, cacheService cache.CacheService, featuredTTL time.Duration) *CatalogUsecase {
	return &CatalogUsecase{
		productRepo: productRepo,
		cache:       cacheService,
		featuredTTL: featuredTTL,
	}
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return u.productRepo.GetProducts(ctx, filter)
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return u.productRepo.GetProductByID(ctx, id)
}

// GetFeatured returns up to 8 featured products, falling back to the 8
// newest when nothing is flagged. Results are cached.
func (u *CatalogUsecase) GetFeatured(ctx context.Context) ([]domain.Product, error) {
	if cached, found := u.cache.Get(featuredCacheKey); found {
		if products, ok := cached.([]domain.Product); ok {
			return products, nil
		}
	}

	products, err := u.productRepo.GetFeatured(ctx, featuredLimit)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		products, err = u.productRepo.GetNewest(ctx, featuredLimit)
		if err != nil {
			return nil, err
		}
	}

	u.cache.Set(featuredCacheKey, products, u.featuredTTL)
	return products, nil
}

func (u *CatalogUsecase) validate(p *domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidInput)
	}
	if p.ReturnPeriodDays < 0 {
		return fmt.Errorf("%w: return period cannot be negative", domain.ErrInvalidInput)
	}
	return nil
}

func (u *CatalogUsecase) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := u.validate(product); err != nil {
		return nil, err
	}
	product.ID = uuid.NewString()
	product.Slug = utils.GenerateSlug(product.Name)
	if product.Sizes == nil {
		product.Sizes = []string{}
	}
	if product.Colors == nil {
		product.Colors = []string{}
	}

	if err := u.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	u.cache.Delete(featuredCacheKey)

	logger.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("Product created")
	return product, nil
}

func (u *CatalogUsecase) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := u.validate(product); err != nil {
		return nil, err
	}
	existing, err := u.productRepo.GetProductByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if product.Name != existing.Name {
		product.Slug = utils.GenerateSlug(product.Name)
	} else {
		product.Slug = existing.Slug
	}
	if product.Sizes == nil {
		product.Sizes = existing.Sizes
	}
	if product.Colors == nil {
		product.Colors = existing.Colors
	}

	if err := u.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	u.cache.Delete(featuredCacheKey)
	return u.productRepo.GetProductByID(ctx, product.ID)
}

func (u *CatalogUsecase) DeleteProduct(ctx context.Context, id string) error {
	if err := u.productRepo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	u.cache.Delete(featuredCacheKey)
	return nil
}
