package identity

import "context"

// Verifier defines the identity-provider contract the service depends on.
// Implemented by the idp client in production and by in-memory fakes in tests.
type Verifier interface {
	// VerifyToken verifies a bearer token and returns the identity it
	// asserts. Returns ErrInvalidToken for expired, malformed, or revoked
	// tokens.
	VerifyToken(ctx context.Context, token string) (*Identity, error)

	// ResolveEmail looks up the account's current email by subject id.
	// This is a live lookup against the provider, not a read of token
	// claims - the account record is authoritative for authorization
	// checks because the two can diverge (e.g. email change after the
	// token was issued).
	ResolveEmail(ctx context.Context, subjectID string) (string, error)
}
