// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for Pizza Noir.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a [Kind], a machine-readable code, and a client-safe message.
  - Kind: A closed taxonomy so call sites branch on what happened, not on message text.
  - Mapping: Every constructor fixes the HTTP status for its kind.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.

# Status Mapping

	Kind                  Status
	ValidationFailed      400
	AuthenticationFailed  401 (409 for duplicate registration)
	TokenInvalid          401
	NotFound              404
	UserNotFound          404
	RateLimited           429
	StoreUnavailable      503
	Internal              500
*/
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an [AppError].
type Kind string

const (
	KindValidationFailed     Kind = "ValidationFailed"
	KindAuthenticationFailed Kind = "AuthenticationFailed"
	KindNotFound             Kind = "NotFound"
	KindTokenInvalid         Kind = "TokenInvalid"
	KindUserNotFound         Kind = "UserNotFound"
	KindStoreUnavailable     Kind = "StoreUnavailable"
	KindRateLimited          Kind = "RateLimited"
	KindInternal             Kind = "Internal"
)

// AppError is the canonical error type for the Pizza Noir API.
//
// It carries an error kind, an HTTP status code, a client-safe message, and an
// optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Kind is the taxonomy bucket, rendered as the "exception" field.
	Kind Kind `json:"exception"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for ValidationFailed responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another [*AppError] of the same kind, so sentinel values can be
// compared with [errors.Is].
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// WithCause returns a copy of the error carrying cause for server-side logs.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// # Client Errors (4xx)

// ValidationFailed creates a 400 [AppError] with optional per-field details.
func ValidationFailed(msg string, details ...FieldError) *AppError {
	return &AppError{
		Kind:       KindValidationFailed,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// AuthenticationFailed creates a 401 [AppError].
func AuthenticationFailed(msg string) *AppError {
	return &AppError{
		Kind:       KindAuthenticationFailed,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// DuplicateRegistration is an AuthenticationFailed error rendered as 409,
// used when sign-up collides with an existing identity.
func DuplicateRegistration(msg string) *AppError {
	return &AppError{
		Kind:       KindAuthenticationFailed,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// TokenInvalid creates a 401 [AppError] for malformed, unsigned, or expired tokens.
func TokenInvalid(cause error) *AppError {
	return &AppError{
		Kind:       KindTokenInvalid,
		Message:    "Access token is invalid or expired",
		HTTPStatus: http.StatusUnauthorized,
		Cause:      cause,
	}
}

// NotFound creates a 404 [AppError] with the given message.
//
// Example:
//
//	apperr.NotFound("Unable to find pizza with id 7")
func NotFound(msg string) *AppError {
	return &AppError{
		Kind:       KindNotFound,
		Message:    msg,
		HTTPStatus: http.StatusNotFound,
	}
}

// UserNotFound creates a 404 [AppError] raised by principal resolution.
func UserNotFound(msg string) *AppError {
	return &AppError{
		Kind:       KindUserNotFound,
		Message:    msg,
		HTTPStatus: http.StatusNotFound,
	}
}

// RateLimited creates a 429 [AppError] for clients over their request budget.
func RateLimited() *AppError {
	return &AppError{
		Kind:       KindRateLimited,
		Message:    "Rate limit exceeded",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// StoreUnavailable creates a 503 [AppError] for an unreachable backing store.
func StoreUnavailable(store string, cause error) *AppError {
	return &AppError{
		Kind:       KindStoreUnavailable,
		Message:    store + " is temporarily unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Kind:       KindInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsKind reports whether err carries an [*AppError] of the given kind.
func IsKind(err error, kind Kind) bool {
	ae := As(err)
	return ae != nil && ae.Kind == kind
}
