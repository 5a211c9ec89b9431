package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/openagri/aegis/pkg/model"
)

// Pair is the result of one issuance call: a refresh token and an access
// token bound to it.
type Pair struct {
	Access        string
	Refresh       string
	AccessClaims  *Claims
	RefreshClaims *Claims
}

// Issuer mints signed token pairs for authenticated users.
type Issuer struct {
	signingKey []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration

	// now is swappable for tests
	now func() time.Time
}

// NewIssuer creates an issuer. The signing key and TTLs come from the
// process configuration.
func NewIssuer(signingKey []byte, issuer string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		signingKey: signingKey,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Issue mints a refresh token and a linked access token for the user. The
// access token's rjti claim equals the refresh token's jti, so revoking the
// refresh token invalidates the access token too.
func (i *Issuer) Issue(user *model.User) (*Pair, error) {
	now := i.now().UTC()
	rjti := uuid.NewString()

	refreshClaims := i.baseClaims(user, now)
	refreshClaims.TokenType = TypeRefresh
	refreshClaims.ID = rjti
	refreshClaims.ExpiresAt = jwt.NewNumericDate(now.Add(i.refreshTTL))

	refresh, err := i.sign(refreshClaims)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	accessClaims, access, err := i.mintAccess(user, rjti, now)
	if err != nil {
		return nil, err
	}

	return &Pair{
		Access:        access,
		Refresh:       refresh,
		AccessClaims:  accessClaims,
		RefreshClaims: refreshClaims,
	}, nil
}

// Refresh mints a new access token from a validated refresh claim set. The
// new token stays bound to the original refresh token's jti, so a later
// revocation of the refresh token catches it as well.
func (i *Issuer) Refresh(refreshClaims *Claims, user *model.User) (string, *Claims, error) {
	if refreshClaims.TokenType != TypeRefresh {
		return "", nil, fmt.Errorf("%w: not a refresh token", ErrInvalidToken)
	}
	claims, access, err := i.mintAccess(user, refreshClaims.ID, i.now().UTC())
	if err != nil {
		return "", nil, err
	}
	return access, claims, nil
}

func (i *Issuer) mintAccess(user *model.User, rjti string, now time.Time) (*Claims, string, error) {
	claims := i.baseClaims(user, now)
	claims.TokenType = TypeAccess
	claims.ID = uuid.NewString()
	claims.RJTI = rjti
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.accessTTL))

	access, err := i.sign(claims)
	if err != nil {
		return nil, "", fmt.Errorf("sign access token: %w", err)
	}
	return claims, access, nil
}

func (i *Issuer) baseClaims(user *model.User, now time.Time) *Claims {
	return &Claims{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		UUID:      user.UUID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   i.issuer,
			Subject:  user.UUID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
}

func (i *Issuer) sign(claims *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.signingKey)
}
