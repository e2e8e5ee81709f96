package usecase

import (
	"context"
	"testing"
	"time"

	"velora-backend/internal/domain"
	"velora-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestEnv() (*AuthUsecase, *fakeUserRepo) {
	utils.SetSecret("test-secret")
	userRepo := newFakeUserRepo()
	return NewAuthUsecase(userRepo, &fakeTxManager{}, time.Hour), userRepo
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	uc, repo := newAuthTestEnv()

	user, token, err := uc.Signup(ctx, "  Alice  ", "Alice@Example.COM", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.Len(t, repo.users, 1)

	_, _, err = uc.Signup(ctx, "Alice Again", "alice@example.com", "hunter22")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuthTestEnv()

	_, _, err := uc.Signup(ctx, "", "alice@example.com", "hunter22")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = uc.Signup(ctx, "Alice", "not-an-email", "hunter22")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = uc.Signup(ctx, "Alice", "alice@example.com", "short")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSignin(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuthTestEnv()

	_, _, err := uc.Signup(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	user, token, err := uc.Signin(ctx, "ALICE@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", user.Email)

	// Wrong password and unknown account both come back as the same error.
	_, _, err = uc.Signin(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, _, err = uc.Signin(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuthTestEnv()

	user, _, err := uc.Signup(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	oldHash := user.PasswordHash

	updated, err := uc.UpdateProfile(ctx, user.ID, "Alice B", "newpassword")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.NotEqual(t, oldHash, updated.PasswordHash)

	_, err = uc.UpdateProfile(ctx, user.ID, "", "tiny")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddAddressDefaults(t *testing.T) {
	ctx := context.Background()
	uc, repo := newAuthTestEnv()

	first, err := uc.AddAddress(ctx, "u1", domain.Address{Street: "1 Main St", City: "Springfield", Country: "US"})
	require.NoError(t, err)
	assert.True(t, first.IsDefault, "first address becomes the default")

	second, err := uc.AddAddress(ctx, "u1", domain.Address{Street: "2 Oak Ave", City: "Springfield", Country: "US"})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	// An explicit new default unsets the old one.
	third, err := uc.AddAddress(ctx, "u1", domain.Address{Street: "3 Elm Rd", City: "Springfield", Country: "US", IsDefault: true})
	require.NoError(t, err)
	assert.True(t, third.IsDefault)

	addresses, err := repo.GetAddresses(ctx, "u1")
	require.NoError(t, err)
	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestAddAddressValidation(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuthTestEnv()

	_, err := uc.AddAddress(ctx, "u1", domain.Address{City: "Springfield", Country: "US"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateUserRole(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuthTestEnv()

	user, _, err := uc.Signup(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	updated, err := uc.UpdateUser(ctx, user.ID, "", "", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	_, err = uc.UpdateUser(ctx, user.ID, "", "", "superuser")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
