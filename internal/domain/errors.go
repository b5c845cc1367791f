package domain

import "errors"

// ErrValidation is returned when input fails a business rule: a missing
// required field, an unparseable identifier, an illegal category value, or
// an end date before the start date.
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrNotFound is returned by repo and service functions when the requested
// resource (or a resource it references) does not exist in the database.
// Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write violates a uniqueness or referential
// constraint, e.g. a duplicate skill name or deleting a guide that still
// leads trips. Handlers map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrStorage wraps any other persistence failure. The underlying driver error
// stays in the chain for logging but is never shown to clients.
// Handlers map this to HTTP 500.
var ErrStorage = errors.New("storage error")

// ErrExternalService is returned when an outbound dependency is unreachable
// or returns a body that cannot be decoded.
// Handlers map this to HTTP 502 Bad Gateway.
var ErrExternalService = errors.New("external service error")

// ErrUnauthorized is returned when a request carries no identity, or one
// that cannot be verified. Handlers map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when a verified identity lacks the role required
// for an operation. Handlers map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidCredentials is returned by login when the username is unknown or
// the password does not match. Both cases share this one error.
var ErrInvalidCredentials = errors.New("invalid username or password")
