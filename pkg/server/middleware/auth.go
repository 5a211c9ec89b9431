package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/openagri/aegis/pkg/token"
)

type contextKey string

const (
	claimsContextKey contextKey = "tokenClaims"
	holderContextKey contextKey = "tokenClaimsHolder"
)

// claimsHolder lets an outer middleware observe claims established by an
// inner one after the handler chain returns.
type claimsHolder struct {
	claims *token.Claims
}

// TokenAuthenticator is middleware that validates bearer access tokens
type TokenAuthenticator struct {
	Validator *token.Validator
}

// NewTokenAuthenticator creates a new bearer token authenticator middleware
func NewTokenAuthenticator(validator *token.Validator) *TokenAuthenticator {
	return &TokenAuthenticator{Validator: validator}
}

// ClaimsFromContext returns the validated claims stored by the middleware.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*token.Claims)
	return claims, ok
}

// WithClaims returns a context carrying validated claims. Exposed for
// handler tests that bypass the middleware.
func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// Middleware returns an HTTP middleware that validates bearer tokens.
// Invalid and revoked tokens both get the same 401 so a caller cannot
// probe the denylist. A denylist outage is a 503, never a silent accept.
func (a *TokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		raw, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || raw == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		claims, err := a.Validator.Validate(r.Context(), raw)
		if err != nil {
			if errors.Is(err, token.ErrRevocationCheckFailed) {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("Token validation unavailable"))
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid or revoked token"))
			return
		}

		ctx := WithClaims(r.Context(), claims)
		if holder, ok := ctx.Value(holderContextKey).(*claimsHolder); ok {
			holder.claims = claims
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
