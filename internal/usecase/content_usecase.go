package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"velora-backend/internal/domain"
	"velora-backend/pkg/cache"

	"github.com/google/uuid"
)

const slidesCacheKey = "content:hero-slides"

type ContentUsecase struct {
	slideRepo   domain.HeroSlideRepository
	contactRepo domain.ContactRepository
	txManager   domain.TransactionManager
	cache       cache.CacheService
	slidesTTL   time.Duration
}

func NewContentUsecase(slideRepo domain.HeroSlideRepository, contactRepo domain.ContactRepository, txManager domain.TransactionManager, cacheService cache.CacheService, slidesTTL time.Duration) *ContentUsecase {
	return &ContentUsecase{
		slideRepo:   slideRepo,
		contactRepo: contactRepo,
		txManager:   txManager,
		cache:       cacheService,
		slidesTTL:   slidesTTL,
	}
}

// --- Hero slides ---

func (u *ContentUsecase) GetActiveSlides(ctx context.Context) ([]domain.HeroSlide, error) {
	if cached, found := u.cache.Get(slidesCacheKey); found {
		if slides, ok := cached.([]domain.HeroSlide); ok {
			return slides, nil
		}
	}
	slides, err := u.slideRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	u.cache.Set(slidesCacheKey, slides, u.slidesTTL)
	return slides, nil
}

func (u *ContentUsecase) GetAllSlides(ctx context.Context) ([]domain.HeroSlide, error) {
	return u.slideRepo.GetAll(ctx)
}

func (u *ContentUsecase) CreateSlide(ctx context.Context, slide *domain.HeroSlide) (*domain.HeroSlide, error) {
	if slide.Title == "" || slide.Subtitle == "" || slide.Image == "" {
		return nil, fmt.Errorf("%w: title, subtitle and image are required", domain.ErrInvalidInput)
	}
	if slide.OverlayOpacity < 0 || slide.OverlayOpacity > 1 {
		return nil, fmt.Errorf("%w: overlay opacity must be between 0 and 1", domain.ErrInvalidInput)
	}

	slide.ID = uuid.NewString()
	applySlideDefaults(slide)

	// New slides go to the end of the carousel.
	existing, err := u.slideRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	slide.Position = len(existing)

	if err := u.slideRepo.Create(ctx, slide); err != nil {
		return nil, err
	}
	u.cache.Delete(slidesCacheKey)
	return slide, nil
}

func applySlideDefaults(slide *domain.HeroSlide) {
	if slide.ButtonText == "" {
		slide.ButtonText = "Shop Now"
	}
	if slide.ButtonLink == "" {
		slide.ButtonLink = "/products"
	}
	if slide.SecondaryButtonText == "" {
		slide.SecondaryButtonText = "Learn More"
	}
	if slide.SecondaryButtonLink == "" {
		slide.SecondaryButtonLink = "/about"
	}
	if slide.BackgroundColor == "" {
		slide.BackgroundColor = "#000000"
	}
	if slide.TextColor == "" {
		slide.TextColor = "#ffffff"
	}
}

func (u *ContentUsecase) UpdateSlide(ctx context.Context, slide *domain.HeroSlide) (*domain.HeroSlide, error) {
	if slide.OverlayOpacity < 0 || slide.OverlayOpacity > 1 {
		return nil, fmt.Errorf("%w: overlay opacity must be between 0 and 1", domain.ErrInvalidInput)
	}
	existing, err := u.slideRepo.GetByID(ctx, slide.ID)
	if err != nil {
		return nil, err
	}
	if slide.Title == "" {
		slide.Title = existing.Title
	}
	if slide.Subtitle == "" {
		slide.Subtitle = existing.Subtitle
	}
	if slide.Image == "" {
		slide.Image = existing.Image
	}
	applySlideDefaults(slide)

	if err := u.slideRepo.Update(ctx, slide); err != nil {
		return nil, err
	}
	u.cache.Delete(slidesCacheKey)
	return u.slideRepo.GetByID(ctx, slide.ID)
}

func (u *ContentUsecase) DeleteSlide(ctx context.Context, id string) error {
	if err := u.slideRepo.Delete(ctx, id); err != nil {
		return err
	}
	u.cache.Delete(slidesCacheKey)
	return nil
}

// ToggleSlide flips a slide's active flag.
func (u *ContentUsecase) ToggleSlide(ctx context.Context, id string) (*domain.HeroSlide, error) {
	slide, err := u.slideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	slide.IsActive = !slide.IsActive
	if err := u.slideRepo.Update(ctx, slide); err != nil {
		return nil, err
	}
	u.cache.Delete(slidesCacheKey)
	return slide, nil
}

// ReorderSlides applies a bulk position update atomically: a bad entry
// leaves every position as it was.
func (u *ContentUsecase) ReorderSlides(ctx context.Context, order []domain.SlideOrder) error {
	if len(order) == 0 {
		return fmt.Errorf("%w: empty reorder request", domain.ErrInvalidInput)
	}
	err := u.txManager.Do(ctx, func(ctx context.Context) error {
		for _, entry := range order {
			if err := u.slideRepo.UpdatePosition(ctx, entry.ID, entry.Position); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	u.cache.Delete(slidesCacheKey)
	return nil
}

// --- Contact messages ---

func (u *ContentUsecase) SubmitMessage(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return nil, fmt.Errorf("%w: name, email and message are required", domain.ErrInvalidInput)
	}
	msg.ID = uuid.NewString()
	if err := u.contactRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (u *ContentUsecase) ListMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	return u.contactRepo.GetAll(ctx)
}

func (u *ContentUsecase) GetMessage(ctx context.Context, id string) (*domain.ContactMessage, error) {
	return u.contactRepo.GetByID(ctx, id)
}

func (u *ContentUsecase) DeleteMessage(ctx context.Context, id string) error {
	return u.contactRepo.Delete(ctx, id)
}
