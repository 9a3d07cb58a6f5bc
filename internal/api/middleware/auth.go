package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"Ripple/internal/core/identity"
)

// Context keys for storing user information
type contextKey string

const identityKey contextKey = "verified_identity"

// AuthMiddleware enforces bearer-credential authentication for protected
// routes. Every request is independently verified against the identity
// provider; verified identities are never cached across requests.
type AuthMiddleware struct {
	verifier identity.Verifier
}

// NewAuthMiddleware creates a new auth middleware backed by the given verifier
func NewAuthMiddleware(verifier identity.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth ensures the request carries a valid bearer credential.
// If not authenticated, returns 401 before any business logic runs.
// If authenticated, injects the verified identity into the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "MissingCredential", "No authorization token provided")
			return
		}

		// Token is the segment after the first space ("Bearer <token>").
		// No scheme validation beyond presence of a token; an absent or
		// empty token is rejected by the verifier.
		var token string
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 {
			token = strings.TrimSpace(parts[1])
		}

		ident, err := m.verifier.VerifyToken(r.Context(), token)
		if err != nil {
			log.Printf("[AUTH_FAILURE] ip=%s method=%s path=%s error=%v",
				r.RemoteAddr, r.Method, r.URL.Path, err)
			writeAuthError(w, "InvalidCredential", "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentity extracts the verified identity from the request context.
// Returns nil if not authenticated.
func GetIdentity(r *http.Request) *identity.Identity {
	return GetAuthenticatedIdentity(r.Context())
}

// GetAuthenticatedIdentity extracts the verified identity from the context.
// This is used by service layers for defense-in-depth validation.
// Returns nil if not authenticated.
func GetAuthenticatedIdentity(ctx context.Context) *identity.Identity {
	ident, _ := ctx.Value(identityKey).(*identity.Identity)
	return ident
}

// SetTestIdentity sets the verified identity in the context for testing
// purposes. This function should ONLY be used in tests to mock
// authenticated users.
func SetTestIdentity(ctx context.Context, ident *identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   errorType,
		"message": message,
	}); err != nil {
		log.Printf("Failed to write auth error response: %v", err)
	}
}
