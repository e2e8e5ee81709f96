package domain

import (
	"context"
	"time"
)

type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ID        string  `json:"id"`
	CartID    string  `json:"cartId"`
	ProductID string  `json:"productId"`
	Product   Product `json:"product"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
}

type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Cart, error)
	Create(ctx context.Context, cart *Cart) error
	UpsertItem(ctx context.Context, cartID, productID, size string, quantity int) error
	RemoveItem(ctx context.Context, cartID, productID, size string) error
	Clear(ctx context.Context, cartID string) error
}
