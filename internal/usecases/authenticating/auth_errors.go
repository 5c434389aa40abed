package authenticating

import "errors"

// Errors for the login gate.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrMissingRequiredData = errors.New("username and password are required")
	ErrInvalidToken        = errors.New("invalid token")
)
