package token

import "github.com/golang-jwt/jwt/v5"

// Token type claim values.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims is the claim set carried by both credential kinds. Access tokens
// additionally carry RJTI, the jti of the refresh token they were minted
// from; revoking that refresh token invalidates every access token in the
// family without enumerating them.
//
// The display claims (username, names, email) are denormalized for
// downstream convenience only. The stable subject identifier is UUID,
// mirrored in the registered sub claim.
type Claims struct {
	TokenType string `json:"token_type"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	UUID      string `json:"uuid,omitempty"`
	RJTI      string `json:"rjti,omitempty"`
	jwt.RegisteredClaims
}
