package usecase

import (
	"context"
	"fmt"
	"time"

	"velora-backend/internal/domain"
	"velora-backend/pkg/logger"

	"github.com/google/uuid"
)

type ReturnUsecase struct {
	returnRepo  domain.ReturnRepository
	orderRepo   domain.OrderRepository
	productRepo domain.ProductRepository
	txManager   domain.TransactionManager
	now         func() time.Time
}

func NewReturnUsecase(returnRepo domain.ReturnRepository, orderRepo domain.OrderRepository, productRepo domain.ProductRepository, txManager domain.TransactionManager) *ReturnUsecase {
	return &ReturnUsecase{
		returnRepo:  returnRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		txManager:   txManager,
		now:         time.Now,
	}
}

type ReturnItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Reason    string `json:"reason"`
}

type CreateReturnInput struct {
	OrderID string            `json:"orderId"`
	Items   []ReturnItemInput `json:"items"`
	Reason  string            `json:"reason"`
	Images  []string          `json:"images"`
}

// CreateReturn validates eligibility for every requested item: the order
// must be delivered and owned by the caller, each item must match an order
// line, the product must allow returns, and the request must fall within
// the product's return window counted from order creation. The window
// boundary is inclusive: a request made exactly at expiry still passes.
func (u *ReturnUsecase) CreateReturn(ctx context.Context, user *domain.User, input CreateReturnInput) (*domain.ReturnRequest, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: no items to return", domain.ErrInvalidInput)
	}
	if input.Reason == "" {
		return nil, fmt.Errorf("%w: reason is required", domain.ErrInvalidInput)
	}

	order, err := u.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID {
		return nil, fmt.Errorf("%w: not your order", domain.ErrForbidden)
	}
	if order.Status != domain.OrderStatusDelivered {
		return nil, fmt.Errorf("%w: only delivered orders can be returned", domain.ErrNotEligible)
	}

	orderedQty := map[string]int{}
	for _, it := range order.Items {
		orderedQty[it.ProductID] += it.Quantity
	}

	now := u.now()
	ret := &domain.ReturnRequest{
		ID:             uuid.NewString(),
		OrderID:        order.ID,
		UserID:         user.ID,
		Reason:         input.Reason,
		Status:         domain.ReturnStatusPending,
		Images:         input.Images,
		ReturnDeadline: now.AddDate(0, 0, domain.ReturnShipBackDays),
	}
	if ret.Images == nil {
		ret.Images = []string{}
	}

	for _, it := range input.Items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
		}
		if orderedQty[it.ProductID] < it.Quantity {
			return nil, fmt.Errorf("%w: item not in order or quantity too large", domain.ErrInvalidInput)
		}

		product, err := u.productRepo.GetProductByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.ReturnAvailable {
			return nil, fmt.Errorf("%w: %s is not returnable", domain.ErrNotEligible, product.Name)
		}
		expiry := order.CreatedAt.AddDate(0, 0, product.ReturnPeriodDays)
		if now.After(expiry) {
			return nil, fmt.Errorf("%w: return period for %s ended %s", domain.ErrExpiredWindow, product.Name, expiry.Format("2006-01-02"))
		}

		ret.RefundAmount += product.Price * float64(it.Quantity)
		ret.Items = append(ret.Items, domain.ReturnItem{
			ID:        uuid.NewString(),
			ReturnID:  ret.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Reason:    it.Reason,
		})
	}

	// The request row and its items land together or not at all.
	err = u.txManager.Do(ctx, func(ctx context.Context) error {
		return u.returnRepo.Create(ctx, ret)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("return_id", ret.ID).Str("order_id", order.ID).Float64("refund", ret.RefundAmount).Msg("Return request created")
	return u.returnRepo.GetByID(ctx, ret.ID)
}

func (u *ReturnUsecase) GetMyReturns(ctx context.Context, userID string) ([]domain.ReturnRequest, error) {
	return u.returnRepo.GetByUserID(ctx, userID)
}

func (u *ReturnUsecase) GetReturn(ctx context.Context, user *domain.User, id string) (*domain.ReturnRequest, error) {
	ret, err := u.returnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret.UserID != user.ID && !user.IsAdmin() {
		return nil, fmt.Errorf("%w: not your return request", domain.ErrForbidden)
	}
	if order, err := u.orderRepo.GetByID(ctx, ret.OrderID); err == nil {
		ret.Order = order
	}
	return ret, nil
}

func (u *ReturnUsecase) ListReturns(ctx context.Context) ([]domain.ReturnRequest, error) {
	return u.returnRepo.GetAll(ctx)
}

// UpdateStatus applies an admin status change through the return FSM.
func (u *ReturnUsecase) UpdateStatus(ctx context.Context, id, status, adminNotes string) (*domain.ReturnRequest, error) {
	if !domain.ValidReturnStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	ret, err := u.returnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionReturn(ret.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, ret.Status, status)
	}

	if err := u.returnRepo.UpdateStatus(ctx, id, status, adminNotes); err != nil {
		return nil, err
	}
	return u.returnRepo.GetByID(ctx, id)
}
