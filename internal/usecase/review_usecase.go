package usecase

import (
	"context"
	"fmt"

	"velora-backend/internal/domain"
	"velora-backend/pkg/logger"

	"github.com/google/uuid"
)

type ReviewUsecase struct {
	reviewRepo  domain.ReviewRepository
	productRepo domain.ProductRepository
	txManager   domain.TransactionManager
}

func NewReviewUsecase(reviewRepo domain.ReviewRepository, productRepo domain.ProductRepository, txManager domain.TransactionManager) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		txManager:   txManager,
	}
}

func validRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}
	return nil
}

// AddReview inserts a review and bumps the product's running rating
// aggregate in the same transaction, so the stored mean never drifts from
// the underlying reviews.
func (u *ReviewUsecase) AddReview(ctx context.Context, user *domain.User, productID string, rating int, comment string) (*domain.Review, error) {
	if err := validRating(rating); err != nil {
		return nil, err
	}
	if _, err := u.productRepo.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}
	if _, err := u.reviewRepo.GetByProductAndUser(ctx, productID, user.ID); err == nil {
		return nil, fmt.Errorf("%w: product already reviewed", domain.ErrDuplicate)
	}

	review := &domain.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    user.ID,
		UserName:  user.Name,
		Rating:    rating,
		Comment:   comment,
	}

	err := u.txManager.Do(ctx, func(ctx context.Context) error {
		if err := u.reviewRepo.Create(ctx, review); err != nil {
			return err
		}
		return u.productRepo.ApplyRatingDelta(ctx, productID, float64(rating), 1)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("product_id", productID).Str("user_id", user.ID).Int("rating", rating).Msg("Review added")
	return review, nil
}

func (u *ReviewUsecase) GetReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	return u.reviewRepo.GetByProduct(ctx, productID)
}

func (u *ReviewUsecase) UpdateReview(ctx context.Context, user *domain.User, reviewID string, rating int, comment string) (*domain.Review, error) {
	if err := validRating(rating); err != nil {
		return nil, err
	}
	review, err := u.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != user.ID {
		return nil, fmt.Errorf("%w: not your review", domain.ErrForbidden)
	}

	delta := float64(rating - review.Rating)
	review.Rating = rating
	review.Comment = comment

	err = u.txManager.Do(ctx, func(ctx context.Context) error {
		if err := u.reviewRepo.Update(ctx, review); err != nil {
			return err
		}
		if delta != 0 {
			return u.productRepo.ApplyRatingDelta(ctx, review.ProductID, delta, 0)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (u *ReviewUsecase) DeleteReview(ctx context.Context, user *domain.User, reviewID string) error {
	review, err := u.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != user.ID && !user.IsAdmin() {
		return fmt.Errorf("%w: not your review", domain.ErrForbidden)
	}

	return u.txManager.Do(ctx, func(ctx context.Context) error {
		if err := u.reviewRepo.Delete(ctx, reviewID); err != nil {
			return err
		}
		return u.productRepo.ApplyRatingDelta(ctx, review.ProductID, -float64(review.Rating), -1)
	})
}
