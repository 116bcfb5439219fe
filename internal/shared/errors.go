package shared

import "errors"

var (
	// ErrNotFound indicates the addressed record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates malformed or incomplete input.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized indicates no authenticated principal on the request.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates an authenticated principal without an eligible role.
	ErrForbidden = errors.New("forbidden")
	// ErrConfiguration indicates a missing required secret or base URL.
	ErrConfiguration = errors.New("configuration missing")
	// ErrBadGateway indicates a downstream function call failed.
	ErrBadGateway = errors.New("bad gateway")
)
