package domain

import "errors"

// Sentinel errors for the domain rule taxonomy. Usecases wrap these with
// fmt.Errorf("...: %w", ...) so handlers can map them to HTTP codes with
// errors.Is while keeping a human-readable message.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicate         = errors.New("already exists")
	ErrConflict          = errors.New("conflicts with existing data")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotEligible       = errors.New("not eligible for return")
	ErrExpiredWindow     = errors.New("return window expired")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnauthorized      = errors.New("unauthorized")
)
