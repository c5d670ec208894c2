package domain

import "errors"

// ============================================================================
// Client-side Errors
// ============================================================================

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotAuthenticated = errors.New("sign in to continue")
	ErrUnknownCategory  = errors.New("unknown catalog category")
	ErrStaleResponse    = errors.New("response superseded by a newer catalog query")
)

// ============================================================================
// Backend Errors
// ============================================================================

// Transport and decoding failures
var (
	ErrNetwork           = errors.New("network request failed")
	ErrMalformedResponse = errors.New("malformed response from backend")
	ErrProtocolViolation = errors.New("backend response violates the catalog contract")
)

// Status-derived errors, matched by *ServerError.Is
var (
	ErrUnauthorized = errors.New("session expired or invalid")
	ErrNotFound     = errors.New("resource not found")
)
