// Package token mints and validates the two-tier bearer credentials.
//
// An issuance produces a long-lived refresh token and a short-lived access
// token. The access token carries the refresh token's jti as its rjti claim,
// which is the hook the revocation store uses to invalidate a whole token
// family at once.
package token
