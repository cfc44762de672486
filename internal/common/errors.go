// Package common defines shared constants and sentinel errors used across
// client and server layers of ResumeCraft. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors. The client and the server run the same field
	// checks; both report failures through this sentinel.
	ErrorValidation = errors.New("validation failed")

	// Transport errors (no response or malformed response).
	ErrorTransport = errors.New("transport error")

	// Account errors.
	ErrorEmailTaken = errors.New("email already registered")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
