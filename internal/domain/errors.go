package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service and engine functions when input fails
// business rule validation (e.g. end date before start date, a single trip
// longer than 90 days, yellow threshold >= red threshold).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrPermission is returned when the caller lacks an entitlement — an
// ownership mismatch or a premium-only feature requested by a free-tier user.
// Handlers should map this to HTTP 403.
var ErrPermission = errors.New("permission denied")

// ErrDispatch is returned by notification dispatchers when a send fails.
// It is logged and swallowed by the alert cycle (state is left untouched so
// the next daily tick retries); it is never surfaced to the end user.
var ErrDispatch = errors.New("dispatch failed")
