package domain

import (
	"context"
	"time"
)

// HeroSlide is a promotional banner shown on the storefront landing page.
type HeroSlide struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Subtitle            string    `json:"subtitle"`
	Description         string    `json:"description,omitempty"`
	Image               string    `json:"image"`
	ButtonText          string    `json:"buttonText"`
	ButtonLink          string    `json:"buttonLink"`
	SecondaryButtonText string    `json:"secondaryButtonText"`
	SecondaryButtonLink string    `json:"secondaryButtonLink"`
	IsActive            bool      `json:"isActive"`
	Position            int       `json:"position"`
	BackgroundColor     string    `json:"backgroundColor"`
	TextColor           string    `json:"textColor"`
	OverlayOpacity      float64   `json:"overlayOpacity"` // 0..1
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// SlideOrder is one entry of a bulk reorder request.
type SlideOrder struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

type HeroSlideRepository interface {
	GetActive(ctx context.Context) ([]HeroSlide, error)
	GetAll(ctx context.Context) ([]HeroSlide, error)
	GetByID(ctx context.Context, id string) (*HeroSlide, error)
	Create(ctx context.Context, slide *HeroSlide) error
	Update(ctx context.Context, slide *HeroSlide) error
	Delete(ctx context.Context, id string) error
	UpdatePosition(ctx context.Context, id string, position int) error
}

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type ContactRepository interface {
	Create(ctx context.Context, msg *ContactMessage) error
	GetAll(ctx context.Context) ([]ContactMessage, error)
	GetByID(ctx context.Context, id string) (*ContactMessage, error)
	Delete(ctx context.Context, id string) error
}
