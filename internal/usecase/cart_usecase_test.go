package usecase

import (
	"context"
	"testing"

	"velora-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartTestEnv(products ...*domain.Product) *CartUsecase {
	return NewCartUsecase(newFakeCartRepo(), newFakeProductRepo(products...), 1000)
}

func TestGetCartCreatesEmptyCart(t *testing.T) {
	ctx := context.Background()
	uc := newCartTestEnv()

	cart, err := uc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", cart.UserID)
	assert.Empty(t, cart.Items)

	again, err := uc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestAddItemMergesSameProductAndSize(t *testing.T) {
	ctx := context.Background()
	uc := newCartTestEnv(&domain.Product{ID: "p1", Stock: 10})

	_, err := uc.AddItem(ctx, "u1", "p1", "M", 2)
	require.NoError(t, err)
	cart, err := uc.AddItem(ctx, "u1", "p1", "M", 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// A different size is a separate line.
	cart, err = uc.AddItem(ctx, "u1", "p1", "L", 1)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestAddItemValidation(t *testing.T) {
	ctx := context.Background()
	uc := newCartTestEnv(&domain.Product{ID: "p1"})

	_, err := uc.AddItem(ctx, "u1", "p1", "M", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddItem(ctx, "u1", "p1", "M", 1001)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddItem(ctx, "u1", "missing", "M", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItemDefaultsSize(t *testing.T) {
	ctx := context.Background()
	uc := newCartTestEnv(&domain.Product{ID: "p1"})

	cart, err := uc.AddItem(ctx, "u1", "p1", "", 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "M", cart.Items[0].Size)
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	uc := newCartTestEnv(&domain.Product{ID: "p1"}, &domain.Product{ID: "p2"})

	_, err := uc.AddItem(ctx, "u1", "p1", "M", 1)
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, "u1", "p2", "M", 2)
	require.NoError(t, err)

	cart, err := uc.RemoveItem(ctx, "u1", "p1", "M")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)

	_, err = uc.RemoveItem(ctx, "u1", "p1", "M")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cart, err = uc.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
