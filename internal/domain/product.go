package domain

import (
	"context"
	"time"
)

// --- Interfaces ---

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors"`
	Featured    bool      `json:"featured"`
	IsNew       bool      `json:"new"`
	Stock       int       `json:"stock"`

	// Return policy
	ReturnAvailable  bool `json:"returnAvailable"`
	ReturnPeriodDays int  `json:"returnPeriodDays"`

	// Rating is kept as a running aggregate so review writes stay O(1):
	// Rating = RatingSum / RatingCount, maintained transactionally with
	// each review insert/update/delete.
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"ratingCount"`
	RatingSum   float64 `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProductFilter struct {
	Query    string
	Category string
	MinPrice float64
	MaxPrice float64
	Sort     string // newest, price_asc, price_desc, rating
	Limit    int
	Offset   int
}

type ProductRepository interface {
	GetProducts(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	GetFeatured(ctx context.Context, limit int) ([]Product, error)
	GetNewest(ctx context.Context, limit int) ([]Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, product *Product) error
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, id string) error

	// DecrementStock performs a conditional decrement: it succeeds only if
	// the product exists and has at least quantity units in stock, so stock
	// can never be driven negative even under concurrent order creation.
	// Returns ErrNotFound or ErrInsufficientStock otherwise.
	DecrementStock(ctx context.Context, productID string, quantity int) error

	// RestoreStock adds quantity back to the product's stock. Missing
	// products return ErrNotFound so callers can decide whether that is
	// fatal (order create) or skippable (cancel restore).
	RestoreStock(ctx context.Context, productID string, quantity int) error

	// ApplyRatingDelta shifts the product's running rating aggregate by
	// countDelta reviews summing to sumDelta, recomputing the mean.
	ApplyRatingDelta(ctx context.Context, productID string, sumDelta float64, countDelta int) error
}

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	GetByProductAndUser(ctx context.Context, productID, userID string) (*Review, error)
	GetByProduct(ctx context.Context, productID string) ([]Review, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id string) error
}
