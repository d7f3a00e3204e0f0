package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidScene    = errors.New("invalid scene")
	ErrQuotaExceeded   = errors.New("quota exceeded")
	ErrProviderFailure = errors.New("provider failure")
)
