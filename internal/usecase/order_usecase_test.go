package usecase

import (
	"context"
	"testing"
	"time"

	"velora-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderTestEnv(products ...*domain.Product) (*OrderUsecase, *fakeProductRepo, *fakeOrderRepo, *fakeCartRepo, *fakeUserRepo) {
	productRepo := newFakeProductRepo(products...)
	orderRepo := newFakeOrderRepo()
	cartRepo := newFakeCartRepo()
	userRepo := newFakeUserRepo()
	tx := &fakeTxManager{products: productRepo, orders: orderRepo}
	uc := NewOrderUsecase(orderRepo, productRepo, cartRepo, userRepo, tx, newFakeCache(), time.Minute)
	return uc, productRepo, orderRepo, cartRepo, userRepo
}

func shippingAddr() domain.ShippingAddress {
	return domain.ShippingAddress{
		Name:    "Jane Doe",
		Street:  "1 Main St",
		City:    "Springfield",
		Zip:     "12345",
		Country: "US",
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	uc, products, _, _, _ := newOrderTestEnv(
		&domain.Product{ID: "p1", Name: "Tee", Price: 20, Stock: 10},
		&domain.Product{ID: "p2", Name: "Hoodie", Price: 50, Stock: 3},
	)

	order, err := uc.CreateOrder(ctx, "u1", CreateOrderInput{
		Items: []OrderItemInput{
			{ProductID: "p1", Quantity: 2, Size: "M"},
			{ProductID: "p2", Quantity: 1, Size: "L"},
		},
		ShippingAddress: shippingAddr(),
		PaymentMethod:   domain.PaymentMethodCOD,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, 90.0, order.Total)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 20.0, order.Items[0].Price)
	assert.Equal(t, 8, products.products["p1"].Stock)
	assert.Equal(t, 2, products.products["p2"].Stock)
}

func TestCreateOrderInsufficientStockLeavesAllStockUntouched(t *testing.T) {
	ctx := context.Background()
	uc, products, orders, _, _ := newOrderTestEnv(
		&domain.Product{ID: "p1", Name: "Tee", Price: 20, Stock: 10},
		&domain.Product{ID: "p2", Name: "Hoodie", Price: 50, Stock: 1},
	)

	_, err := uc.CreateOrder(ctx, "u1", CreateOrderInput{
		Items: []OrderItemInput{
			{ProductID: "p1", Quantity: 5},
			{ProductID: "p2", Quantity: 2},
		},
		ShippingAddress: shippingAddr(),
		PaymentMethod:   domain.PaymentMethodCard,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// First line had already been decremented inside the transaction; the
	// rollback must undo it.
	assert.Equal(t, 10, products.products["p1"].Stock)
	assert.Equal(t, 1, products.products["p2"].Stock)
	assert.Empty(t, orders.orders)
}

func TestCreateOrderValidation(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _, _ := newOrderTestEnv(&domain.Product{ID: "p1", Price: 20, Stock: 10})

	cases := []struct {
		name  string
		input CreateOrderInput
	}{
		{"no items", CreateOrderInput{ShippingAddress: shippingAddr(), PaymentMethod: "cod"}},
		{"incomplete address", CreateOrderInput{
			Items:           []OrderItemInput{{ProductID: "p1", Quantity: 1}},
			ShippingAddress: domain.ShippingAddress{Name: "Jane Doe"},
			PaymentMethod:   "cod",
		}},
		{"bad payment method", CreateOrderInput{
			Items:           []OrderItemInput{{ProductID: "p1", Quantity: 1}},
			ShippingAddress: shippingAddr(),
			PaymentMethod:   "bitcoin",
		}},
		{"zero quantity", CreateOrderInput{
			Items:           []OrderItemInput{{ProductID: "p1", Quantity: 0}},
			ShippingAddress: shippingAddr(),
			PaymentMethod:   "cod",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateOrder(ctx, "u1", tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateOrderTotalMismatch(t *testing.T) {
	ctx := context.Background()
	uc, products, _, _, _ := newOrderTestEnv(&domain.Product{ID: "p1", Price: 20, Stock: 10})

	_, err := uc.CreateOrder(ctx, "u1", CreateOrderInput{
		Items:           []OrderItemInput{{ProductID: "p1", Quantity: 2}},
		ShippingAddress: shippingAddr(),
		PaymentMethod:   "cod",
		Total:           35, // server computes 40
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, products.products["p1"].Stock)

	// A matching client total within tolerance is accepted.
	order, err := uc.CreateOrder(ctx, "u1", CreateOrderInput{
		Items:           []OrderItemInput{{ProductID: "p1", Quantity: 2}},
		ShippingAddress: shippingAddr(),
		PaymentMethod:   "cod",
		Total:           40.001,
	})
	require.NoError(t, err)
	assert.Equal(t, 40.0, order.Total)
}

func TestCreateOrderClearsCart(t *testing.T) {
	ctx := context.Background()
	uc, _, _, carts, _ := newOrderTestEnv(&domain.Product{ID: "p1", Price: 20, Stock: 10})

	require.NoError(t, carts.Create(ctx, &domain.Cart{ID: "c1", UserID: "u1"}))
	require.NoError(t, carts.UpsertItem(ctx, "c1", "p1", "M", 2))

	_, err := uc.CreateOrder(ctx, "u1", CreateOrderInput{
		Items:           []OrderItemInput{{ProductID: "p1", Quantity: 2}},
		ShippingAddress: shippingAddr(),
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)

	cart, err := carts.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	ctx := context.Background()
	uc, products, orders, _, _ := newOrderTestEnv(&domain.Product{ID: "p1", Price: 20, Stock: 5})
	owner := &domain.User{ID: "u1", Role: domain.RoleUser}

	require.NoError(t, orders.Create(ctx, &domain.Order{
		ID:     "o1",
		UserID: "u1",
		Status: domain.OrderStatusProcessing,
		Items:  []domain.OrderItem{{ProductID: "p1", Quantity: 3}},
	}))

	order, err := uc.CancelOrder(ctx, owner, "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, order.Status)
	assert.Equal(t, 8, products.products["p1"].Stock)
}

func TestCancelOrderRules(t *testing.T) {
	ctx := context.Background()
	uc, _, orders, _, _ := newOrderTestEnv()
	owner := &domain.User{ID: "u1", Role: domain.RoleUser}
	stranger := &domain.User{ID: "u2", Role: domain.RoleUser}

	require.NoError(t, orders.Create(ctx, &domain.Order{ID: "o1", UserID: "u1", Status: domain.OrderStatusDelivered}))

	_, err := uc.CancelOrder(ctx, stranger, "o1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.CancelOrder(ctx, owner, "o1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestGetOrderOwnership(t *testing.T) {
	ctx := context.Background()
	uc, _, orders, _, _ := newOrderTestEnv()
	require.NoError(t, orders.Create(ctx, &domain.Order{ID: "o1", UserID: "u1", Status: domain.OrderStatusPending}))

	_, err := uc.GetOrder(ctx, &domain.User{ID: "u2", Role: domain.RoleUser}, "o1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	order, err := uc.GetOrder(ctx, &domain.User{ID: "admin", Role: domain.RoleAdmin}, "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	uc, products, orders, _, _ := newOrderTestEnv(&domain.Product{ID: "p1", Price: 20, Stock: 5})

	require.NoError(t, orders.Create(ctx, &domain.Order{
		ID:     "o1",
		UserID: "u1",
		Status: domain.OrderStatusPending,
		Items:  []domain.OrderItem{{ProductID: "p1", Quantity: 2}},
	}))

	order, err := uc.UpdateStatus(ctx, "o1", domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, order.Status)

	_, err = uc.UpdateStatus(ctx, "o1", domain.OrderStatusProcessing)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.UpdateStatus(ctx, "o1", "refunded")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cancelling through the admin route restores stock too.
	order, err = uc.UpdateStatus(ctx, "o1", domain.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, order.Status)
	assert.Equal(t, 7, products.products["p1"].Stock)
}

func TestGetAnalytics(t *testing.T) {
	ctx := context.Background()
	uc, _, orders, _, users := newOrderTestEnv()

	users.users["u1"] = &domain.User{ID: "u1"}
	users.users["u2"] = &domain.User{ID: "u2"}

	jan := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, orders.Create(ctx, &domain.Order{ID: "o1", Total: 100, CreatedAt: mar}))
	require.NoError(t, orders.Create(ctx, &domain.Order{ID: "o2", Total: 40, CreatedAt: jan}))
	require.NoError(t, orders.Create(ctx, &domain.Order{ID: "o3", Total: 60, CreatedAt: jan}))

	analytics, err := uc.GetAnalytics(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), analytics.TotalOrders)
	assert.Equal(t, 200.0, analytics.TotalSales)
	assert.Equal(t, int64(2), analytics.TotalUsers)

	require.Len(t, analytics.SalesByMonth, 2)
	assert.Equal(t, "2025-01", analytics.SalesByMonth[0].Month)
	assert.Equal(t, 100.0, analytics.SalesByMonth[0].TotalSales)
	assert.Equal(t, int64(2), analytics.SalesByMonth[0].OrderCount)
	assert.Equal(t, "2025-03", analytics.SalesByMonth[1].Month)
	assert.Equal(t, 100.0, analytics.SalesByMonth[1].TotalSales)
}

func TestGetAnalyticsCached(t *testing.T) {
	ctx := context.Background()
	uc, _, orders, _, _ := newOrderTestEnv()

	first, err := uc.GetAnalytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), first.TotalOrders)

	// New orders are invisible until the cache entry is invalidated.
	require.NoError(t, orders.Create(ctx, &domain.Order{ID: "o1", Total: 10, CreatedAt: time.Now()}))
	cached, err := uc.GetAnalytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cached.TotalOrders)

	uc.cache.Delete(analyticsCacheKey)
	fresh, err := uc.GetAnalytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fresh.TotalOrders)
}
