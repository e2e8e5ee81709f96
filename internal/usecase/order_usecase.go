package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"velora-backend/internal/domain"
	"velora-backend/pkg/cache"
	"velora-backend/pkg/logger"

	"github.com/google/uuid"
)

const analyticsCacheKey = "admin:analytics"

// totalTolerance absorbs float rounding between client and server totals.
const totalTolerance = 0.01

type OrderUsecase struct {
	orderRepo    domain.OrderRepository
	productRepo  domain.ProductRepository
	cartRepo     domain.CartRepository
	userRepo     domain.UserRepository
	txManager    domain.TransactionManager
	cache        cache.CacheService
	analyticsTTL time.Duration
}

func NewOrderUsecase(
	orderRepo domain.OrderRepository,
	productRepo domain.ProductRepository,
	cartRepo domain.CartRepository,
	userRepo domain.UserRepository,
	txManager domain.TransactionManager,
	cacheService cache.CacheService,
	analyticsTTL time.Duration,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		cartRepo:     cartRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		cache:        cacheService,
		analyticsTTL: analyticsTTL,
	}
}

type OrderItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

type CreateOrderInput struct {
	Items           []OrderItemInput       `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	Total           float64                `json:"total"`
}

// CreateOrder reserves stock for every line inside a single transaction: a
// conditional decrement per item, so either the whole order is reserved or
// no stock moves at all. Unit prices are snapshot at order time and the
// total is recomputed server-side.
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID string, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", domain.ErrInvalidInput)
	}
	if !input.ShippingAddress.Complete() {
		return nil, fmt.Errorf("%w: incomplete shipping address", domain.ErrInvalidInput)
	}
	if !domain.ValidPaymentMethod(input.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrInvalidInput, input.PaymentMethod)
	}
	for _, it := range input.Items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
		}
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		Status:          domain.OrderStatusPending,
	}

	err := u.txManager.Do(ctx, func(ctx context.Context) error {
		var total float64
		for _, it := range input.Items {
			product, err := u.productRepo.GetProductByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if err := u.productRepo.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
			total += product.Price * float64(it.Quantity)
			order.Items = append(order.Items, domain.OrderItem{
				ID:        uuid.NewString(),
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Size:      it.Size,
				Price:     product.Price,
			})
		}

		if input.Total > 0 && math.Abs(input.Total-total) > totalTolerance {
			return fmt.Errorf("%w: order total mismatch", domain.ErrInvalidInput)
		}
		order.Total = total

		if err := u.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		// Checkout empties the cart as part of the same transaction.
		if cart, err := u.cartRepo.GetByUserID(ctx, userID); err == nil {
			if err := u.cartRepo.Clear(ctx, cart.ID); err != nil {
				return err
			}
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.cache.Delete(analyticsCacheKey)
	logger.Info().Str("order_id", order.ID).Str("user_id", userID).Float64("total", order.Total).Msg("Order created")
	return u.orderRepo.GetByID(ctx, order.ID)
}

func (u *OrderUsecase) GetMyOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return u.orderRepo.GetByUserID(ctx, userID)
}

func (u *OrderUsecase) GetOrder(ctx context.Context, user *domain.User, orderID string) (*domain.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID && !user.IsAdmin() {
		return nil, fmt.Errorf("%w: not your order", domain.ErrForbidden)
	}
	return order, nil
}

// CancelOrder moves the order to cancelled and restores the stock it had
// reserved, in one transaction. Delivered and already-cancelled orders
// cannot be cancelled.
func (u *OrderUsecase) CancelOrder(ctx context.Context, user *domain.User, orderID string) (*domain.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID && !user.IsAdmin() {
		return nil, fmt.Errorf("%w: not your order", domain.ErrForbidden)
	}
	if !domain.CanTransitionOrder(order.Status, domain.OrderStatusCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel a %s order", domain.ErrInvalidTransition, order.Status)
	}

	if err := u.cancelTx(ctx, order); err != nil {
		return nil, err
	}
	u.cache.Delete(analyticsCacheKey)
	return u.orderRepo.GetByID(ctx, orderID)
}

func (u *OrderUsecase) cancelTx(ctx context.Context, order *domain.Order) error {
	return u.txManager.Do(ctx, func(ctx context.Context) error {
		if err := u.orderRepo.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled); err != nil {
			return err
		}
		for _, it := range order.Items {
			err := u.productRepo.RestoreStock(ctx, it.ProductID, it.Quantity)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			// A product deleted since purchase just loses its restock.
		}
		return nil
	})
}

// --- Admin ---

func (u *OrderUsecase) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	if filter.Status != "" && !domain.ValidOrderStatus(filter.Status) {
		return nil, 0, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, filter.Status)
	}
	return u.orderRepo.GetAll(ctx, filter)
}

// UpdateStatus applies an admin status change through the order FSM.
// Cancelling through this route restores stock like CancelOrder does.
func (u *OrderUsecase) UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionOrder(order.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, status)
	}

	if status == domain.OrderStatusCancelled {
		err = u.cancelTx(ctx, order)
	} else {
		err = u.orderRepo.UpdateStatus(ctx, orderID, status)
	}
	if err != nil {
		return nil, err
	}

	u.cache.Delete(analyticsCacheKey)
	return u.orderRepo.GetByID(ctx, orderID)
}

func (u *OrderUsecase) DeleteOrder(ctx context.Context, orderID string) error {
	if err := u.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}
	u.cache.Delete(analyticsCacheKey)
	return nil
}

// GetAnalytics aggregates order totals into calendar-month buckets, in
// chronological order, plus overall counts. Cached briefly.
func (u *OrderUsecase) GetAnalytics(ctx context.Context) (*domain.Analytics, error) {
	if cached, found := u.cache.Get(analyticsCacheKey); found {
		if analytics, ok := cached.(*domain.Analytics); ok {
			return analytics, nil
		}
	}

	facts, err := u.orderRepo.GetSalesFacts(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := u.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	analytics := &domain.Analytics{
		TotalOrders:  int64(len(facts)),
		TotalUsers:   totalUsers,
		SalesByMonth: bucketByMonth(facts),
	}
	for _, f := range facts {
		analytics.TotalSales += f.Total
	}

	u.cache.Set(analyticsCacheKey, analytics, u.analyticsTTL)
	return analytics, nil
}

func bucketByMonth(facts []domain.SalesFact) []domain.MonthlySales {
	buckets := map[string]*domain.MonthlySales{}
	for _, f := range facts {
		month := f.CreatedAt.UTC().Format("2006-01")
		b, ok := buckets[month]
		if !ok {
			b = &domain.MonthlySales{Month: month}
			buckets[month] = b
		}
		b.TotalSales += f.Total
		b.OrderCount++
	}

	months := make([]domain.MonthlySales, 0, len(buckets))
	for _, b := range buckets {
		months = append(months, *b)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	return months
}
