package domain

import (
	"context"
	"time"
)

type OrderFilter struct {
	Page   int
	Limit  int
	Status string
	UserID string
}

// ShippingAddress is stored as a JSONB sub-document on the order. All five
// fields are required at order creation.
type ShippingAddress struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Complete reports whether every required field is present.
func (a ShippingAddress) Complete() bool {
	return a.Name != "" && a.Street != "" && a.City != "" && a.Zip != "" && a.Country != ""
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	Total           float64         `json:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type OrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"orderId"`
	ProductID string  `json:"productId"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Price     float64 `json:"price"` // unit price at time of purchase
}

// SalesFact is the minimal projection of an order used by analytics.
type SalesFact struct {
	CreatedAt time.Time
	Total     float64
}

// MonthlySales is one calendar-month analytics bucket.
type MonthlySales struct {
	Month      string  `json:"month"` // YYYY-MM
	TotalSales float64 `json:"totalSales"`
	OrderCount int64   `json:"orderCount"`
}

type Analytics struct {
	TotalOrders  int64          `json:"totalOrders"`
	TotalSales   float64        `json:"totalSales"`
	TotalUsers   int64          `json:"totalUsers"`
	SalesByMonth []MonthlySales `json:"salesByMonth"`
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByUserID(ctx context.Context, userID string) ([]Order, error)
	GetAll(ctx context.Context, filter OrderFilter) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	GetSalesFacts(ctx context.Context) ([]SalesFact, error)
}
