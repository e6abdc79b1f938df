// Package common defines shared constants and sentinel errors used across
// the server and client layers of siteauth. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorValidation   = errors.New("validation error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorUnavailable  = errors.New("service unavailable")
	ErrorInternal     = errors.New("internal error")

	// ErrorPasswordTooLong is a validation error for passwords bcrypt cannot
	// hash (over 72 bytes).
	ErrorPasswordTooLong = fmt.Errorf("password too long: %w", ErrorValidation)

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
