package usecase

import (
	"context"
	"errors"
	"fmt"

	"velora-backend/internal/domain"

	"github.com/google/uuid"
)

type CartUsecase struct {
	cartRepo    domain.CartRepository
	productRepo domain.ProductRepository
	maxQuantity int
}

func NewCartUsecase(cartRepo domain.CartRepository, productRepo domain.ProductRepository, maxQuantity int) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		maxQuantity: maxQuantity,
	}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (u *CartUsecase) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := u.cartRepo.GetByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	cart = &domain.Cart{
		ID:     uuid.NewString(),
		UserID: userID,
		Items:  []domain.CartItem{},
	}
	if err := u.cartRepo.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem adds quantity of a product+size to the cart; an existing line for
// the same product+size merges quantities.
func (u *CartUsecase) AddItem(ctx context.Context, userID, productID, size string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	if quantity > u.maxQuantity {
		return nil, fmt.Errorf("%w: quantity exceeds maximum limit", domain.ErrInvalidInput)
	}
	if _, err := u.productRepo.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}
	if size == "" {
		size = "M"
	}

	cart, err := u.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.cartRepo.UpsertItem(ctx, cart.ID, productID, size, quantity); err != nil {
		return nil, err
	}
	return u.cartRepo.GetByUserID(ctx, userID)
}

func (u *CartUsecase) RemoveItem(ctx context.Context, userID, productID, size string) (*domain.Cart, error) {
	cart, err := u.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if size == "" {
		size = "M"
	}
	if err := u.cartRepo.RemoveItem(ctx, cart.ID, productID, size); err != nil {
		return nil, err
	}
	return u.cartRepo.GetByUserID(ctx, userID)
}

func (u *CartUsecase) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := u.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return u.GetCart(ctx, userID)
		}
		return nil, err
	}
	if err := u.cartRepo.Clear(ctx, cart.ID); err != nil {
		return nil, err
	}
	return u.cartRepo.GetByUserID(ctx, userID)
}
