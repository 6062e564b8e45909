package service

import "errors"

// Sentinel errors handlers translate to HTTP status codes. Validation
// failures are detected before any state mutation.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)
