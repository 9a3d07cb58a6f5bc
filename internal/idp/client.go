// Package idp implements identity.Verifier against a JWKS-publishing
// identity provider: bearer tokens are verified locally against the
// provider's signing keys, account lookups go over HTTP.
package idp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"

	"Ripple/internal/core/identity"
)

// Client verifies bearer tokens and resolves account records for a single
// identity provider. Safe for concurrent use.
type Client struct {
	providerURL string
	issuer      string
	jwksURL     string
	keys        *jwk.Cache
	httpClient  *http.Client
}

var _ identity.Verifier = (*Client)(nil)

// NewClient creates an identity-provider client.
// providerURL is the provider's base URL; its JWKS is expected at
// {providerURL}/.well-known/jwks.json and account records at
// {providerURL}/v1/accounts/{subjectId}. issuer is the expected `iss` claim.
// The JWKS is cached and refreshed in the background for the lifetime of ctx.
func NewClient(ctx context.Context, providerURL, issuer string) (*Client, error) {
	if providerURL == "" {
		return nil, fmt.Errorf("provider URL is required")
	}
	if issuer == "" {
		return nil, fmt.Errorf("issuer is required")
	}

	base := strings.TrimSuffix(providerURL, "/")
	jwksURL := base + "/.well-known/jwks.json"

	cache := jwk.NewCache(ctx)
	if err := cache.Register(jwksURL, jwk.WithMinRefreshInterval(15*time.Minute)); err != nil {
		return nil, fmt.Errorf("failed to register JWKS URL: %w", err)
	}

	return &Client{
		providerURL: base,
		issuer:      issuer,
		jwksURL:     jwksURL,
		keys:        cache,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// tokenClaims are the claims the service cares about
type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// VerifyToken verifies a bearer token against the provider's published keys
// and returns the identity it asserts. All failures (malformed token, bad
// signature, wrong issuer, expired) map to identity.ErrInvalidToken; the
// underlying cause is wrapped for logs.
func (c *Client) VerifyToken(ctx context.Context, token string) (*identity.Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", identity.ErrInvalidToken)
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, c.keyfunc(ctx),
		jwt.WithValidMethods([]string{"RS256", "ES256"}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", identity.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, identity.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub claim", identity.ErrInvalidToken)
	}

	return &identity.Identity{
		SubjectID: claims.Subject,
		Email:     claims.Email,
	}, nil
}

// keyfunc resolves the signing key for a token by `kid` from the cached JWKS
func (c *Client) keyfunc(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token header missing kid")
		}

		set, err := c.keys.Get(ctx, c.jwksURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
		}

		key, ok := set.LookupKeyID(kid)
		if !ok {
			return nil, fmt.Errorf("signing key %q not found in JWKS", kid)
		}

		var pubKey interface{}
		if err := key.Raw(&pubKey); err != nil {
			return nil, fmt.Errorf("failed to materialize signing key: %w", err)
		}

		return pubKey, nil
	}
}

// accountRecord is the provider's account-lookup response
type accountRecord struct {
	SubjectID string `json:"subjectId"`
	Email     string `json:"email"`
}

// ResolveEmail looks up the account's current email by subject id.
// This is a live provider lookup, independent of any token claims.
func (c *Client) ResolveEmail(ctx context.Context, subjectID string) (string, error) {
	if subjectID == "" {
		return "", fmt.Errorf("subject id is required")
	}

	endpoint := c.providerURL + "/v1/accounts/" + url.PathEscape(subjectID)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create account lookup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("account lookup failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return "", identity.ErrAccountNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("account lookup returned status %d", resp.StatusCode)
	}

	var record accountRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return "", fmt.Errorf("failed to decode account record: %w", err)
	}

	if record.Email == "" {
		return "", fmt.Errorf("account %s has no email on record", subjectID)
	}

	return record.Email, nil
}
