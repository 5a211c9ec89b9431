package token

import "errors"

var (
	// ErrAuthenticationFailed is returned for any issuance failure caused by
	// the supplied credentials. The message is deliberately uniform: callers
	// must not be able to distinguish an unknown identifier from a wrong
	// password.
	ErrAuthenticationFailed = errors.New("no active account found with the given credentials")

	// ErrInvalidToken covers malformed tokens, bad signatures and natural
	// expiry. It is decided before any denylist lookup.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenRevoked marks a structurally valid token found on a denylist,
	// either its own jti or the rjti of its parent refresh token.
	ErrTokenRevoked = errors.New("token has been revoked")

	// ErrRevocationCheckFailed signals that the denylist could not be
	// consulted. Validation fails closed; callers should surface this as a
	// transient condition, distinct from a revocation.
	ErrRevocationCheckFailed = errors.New("revocation check failed")
)
