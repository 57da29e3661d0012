package domain

import "errors"

var (
	// ErrNotFound indicates the resource does not exist or is not owned by the caller
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest indicates invalid request
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized indicates no authenticated user
	ErrUnauthorized = errors.New("authentication required")
)

// Error codes returned in the API error envelope.
const (
	CodeAuthRequired = "AUTH_REQUIRED"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeConfig       = "CONFIG_ERROR"
	CodeChat         = "CHAT_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// APIError is the stable {code, message} error shape surfaced to callers.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
