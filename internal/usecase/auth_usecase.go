package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"velora-backend/internal/domain"
	"velora-backend/pkg/logger"
	"velora-backend/pkg/utils"

	"github.com/google/uuid"
)

type AuthUsecase struct {
	userRepo    domain.UserRepository
	txManager   domain.TransactionManager
	tokenExpiry time.Duration
}

func NewAuthUsecase(userRepo domain.UserRepository, txManager domain.TransactionManager, tokenExpiry time.Duration) *AuthUsecase {
	return &AuthUsecase{
		userRepo:    userRepo,
		txManager:   txManager,
		tokenExpiry: tokenExpiry,
	}
}

func (u *AuthUsecase) Signup(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("%w: name and valid email are required", domain.ErrInvalidInput)
	}
	if len(password) < 6 {
		return nil, "", fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Addresses:    []domain.Address{},
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	logger.Info().Str("user_id", user.ID).Msg("User registered")

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role, u.tokenExpiry)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (u *AuthUsecase) Signin(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Don't leak whether the account exists.
		return nil, "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role, u.tokenExpiry)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (u *AuthUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// UpdateProfile updates the caller's name and, when non-empty, password.
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID, name, password string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	if password != "" {
		if len(password) < 6 {
			return nil, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
		}
		hash, err := utils.HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *AuthUsecase) DeleteAccount(ctx context.Context, userID string) error {
	return u.userRepo.Delete(ctx, userID)
}

// --- Address Management ---

func (u *AuthUsecase) AddAddress(ctx context.Context, userID string, req domain.Address) (*domain.Address, error) {
	req.ID = uuid.NewString()
	req.UserID = userID
	if req.Street == "" || req.City == "" || req.Country == "" {
		return nil, fmt.Errorf("%w: street, city and country are required", domain.ErrInvalidInput)
	}

	err := u.txManager.Do(ctx, func(ctx context.Context) error {
		existing, err := u.userRepo.GetAddresses(ctx, userID)
		if err != nil {
			return err
		}
		// First address becomes the default; an explicit default unsets the rest.
		if len(existing) == 0 {
			req.IsDefault = true
		} else if req.IsDefault {
			if err := u.userRepo.ClearDefaultAddress(ctx, userID); err != nil {
				return err
			}
		}
		return u.userRepo.AddAddress(ctx, &req)
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (u *AuthUsecase) UpdateAddress(ctx context.Context, userID string, req domain.Address) (*domain.Address, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("%w: address ID required", domain.ErrInvalidInput)
	}
	// Ownership is enforced by the repository WHERE user_id clause.
	req.UserID = userID

	err := u.txManager.Do(ctx, func(ctx context.Context) error {
		if req.IsDefault {
			if err := u.userRepo.ClearDefaultAddress(ctx, userID); err != nil {
				return err
			}
		}
		return u.userRepo.UpdateAddress(ctx, &req)
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (u *AuthUsecase) GetAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	return u.userRepo.GetAddresses(ctx, userID)
}

func (u *AuthUsecase) DeleteAddress(ctx context.Context, id, userID string) error {
	return u.userRepo.DeleteAddress(ctx, id, userID)
}

// --- Admin user management ---

func (u *AuthUsecase) GetAllUsers(ctx context.Context, limit, offset int) ([]*domain.User, int64, error) {
	return u.userRepo.GetAll(ctx, limit, offset)
}

func (u *AuthUsecase) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func (u *AuthUsecase) UpdateUser(ctx context.Context, id, name, email, role string) (*domain.User, error) {
	if role != "" && role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		user.Email = email
	}
	if role != "" {
		user.Role = role
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *AuthUsecase) DeleteUser(ctx context.Context, id string) error {
	return u.userRepo.Delete(ctx, id)
}
