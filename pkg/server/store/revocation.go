package store

import (
	"context"
	"time"
)

// RevocationStore abstracts the two credential denylists. Revocations are
// idempotent: revoking an already-revoked identifier is a no-op success.
// The storage layer is the single source of truth; there is no in-process
// cache, so a revocation is visible to the very next validation.
type RevocationStore interface {
	// RevokeAccess denylists an access token by jti. expiresAt is the
	// token's natural expiry, kept so the row can be pruned later.
	RevokeAccess(ctx context.Context, jti string, expiresAt time.Time) error

	// RevokeRefresh denylists a refresh token by rjti, which implicitly
	// revokes every access token minted from it.
	RevokeRefresh(ctx context.Context, rjti string, expiresAt time.Time) error

	// IsAccessRevoked reports whether an access jti is denylisted.
	IsAccessRevoked(ctx context.Context, jti string) (bool, error)

	// IsRefreshRevoked reports whether a refresh rjti is denylisted.
	IsRefreshRevoked(ctx context.Context, rjti string) (bool, error)

	// Prune hard-deletes entries whose natural expiry has passed and
	// returns how many rows were removed. Safe because an expired token is
	// rejected by signature checking regardless of denylist state.
	Prune(ctx context.Context, now time.Time) (int64, error)
}
