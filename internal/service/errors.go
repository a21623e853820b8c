package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation")   // 400
	ErrUnauthorized = errors.New("unauthorized") // 401
	ErrForbidden    = errors.New("forbidden")    // 403
	ErrNotFound     = errors.New("not found")    // 404
	ErrConflict     = errors.New("conflict")     // 409
	ErrUnavailable  = errors.New("unavailable")  // 503
)

var (
	ErrEmptyCart           = fmt.Errorf("Cart is empty: %w", ErrValidation)
	ErrInvalidCredentials  = fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	ErrInvalidRefreshToken = fmt.Errorf("invalid refresh token: %w", ErrUnauthorized)
	ErrSearchUnavailable   = fmt.Errorf("search is not configured: %w", ErrUnavailable)
)
