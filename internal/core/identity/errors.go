package identity

import "errors"

// Sentinel errors for identity verification
var (
	// ErrInvalidToken is returned when a bearer token fails verification
	// (expired, malformed signature, wrong issuer, revoked)
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrAccountNotFound is returned when ResolveEmail finds no account
	// for the subject id
	ErrAccountNotFound = errors.New("account not found")
)
