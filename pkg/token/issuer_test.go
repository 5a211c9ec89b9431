package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openagri/aegis/pkg/model"
)

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

func testUser() *model.User {
	return &model.User{
		ID:        1,
		UUID:      "2b8e7fd2-54c9-4f4e-8a96-74e6acd1b0c3",
		Username:  "alice",
		Email:     "alice@example.org",
		FirstName: "Alice",
		LastName:  "Smith",
	}
}

func newTestIssuer() *Issuer {
	return NewIssuer(testSigningKey, "aegis", 15*time.Minute, 168*time.Hour)
}

func TestIssuePair(t *testing.T) {
	issuer := newTestIssuer()

	pair, err := issuer.Issue(testUser())
	require.NoError(t, err)

	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.Equal(t, TypeAccess, pair.AccessClaims.TokenType)
	assert.Equal(t, TypeRefresh, pair.RefreshClaims.TokenType)

	// The access token's rjti must equal the refresh token's jti, which is
	// what lets one refresh revocation kill the whole family.
	assert.Equal(t, pair.RefreshClaims.ID, pair.AccessClaims.RJTI)
	assert.NotEqual(t, pair.AccessClaims.ID, pair.RefreshClaims.ID)

	// Identity claims mirror the user record.
	assert.Equal(t, "alice", pair.AccessClaims.Username)
	assert.Equal(t, "alice@example.org", pair.AccessClaims.Email)
	assert.Equal(t, testUser().UUID, pair.AccessClaims.UUID)
	assert.Equal(t, testUser().UUID, pair.AccessClaims.Subject)
}

func TestIssueDistinctIdentifiers(t *testing.T) {
	issuer := newTestIssuer()

	first, err := issuer.Issue(testUser())
	require.NoError(t, err)
	second, err := issuer.Issue(testUser())
	require.NoError(t, err)

	assert.NotEqual(t, first.AccessClaims.ID, second.AccessClaims.ID)
	assert.NotEqual(t, first.RefreshClaims.ID, second.RefreshClaims.ID)
}

func TestIssueTTLs(t *testing.T) {
	issuer := newTestIssuer()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return now }

	pair, err := issuer.Issue(testUser())
	require.NoError(t, err)

	assert.Equal(t, now.Add(15*time.Minute), pair.AccessClaims.ExpiresAt.Time)
	assert.Equal(t, now.Add(168*time.Hour), pair.RefreshClaims.ExpiresAt.Time)
}

func TestRefreshKeepsBinding(t *testing.T) {
	issuer := newTestIssuer()

	pair, err := issuer.Issue(testUser())
	require.NoError(t, err)

	access, claims, err := issuer.Refresh(pair.RefreshClaims, testUser())
	require.NoError(t, err)

	assert.NotEmpty(t, access)
	assert.Equal(t, TypeAccess, claims.TokenType)
	// Renewal stays bound to the original refresh token.
	assert.Equal(t, pair.RefreshClaims.ID, claims.RJTI)
	assert.NotEqual(t, pair.AccessClaims.ID, claims.ID)
}

func TestRefreshRejectsAccessClaims(t *testing.T) {
	issuer := newTestIssuer()

	pair, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, _, err = issuer.Refresh(pair.AccessClaims, testUser())
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuedTokensAreHS256(t *testing.T) {
	issuer := newTestIssuer()

	pair, err := issuer.Issue(testUser())
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(pair.Access, &Claims{}, func(tk *jwt.Token) (interface{}, error) {
		assert.Equal(t, jwt.SigningMethodHS256, tk.Method)
		return testSigningKey, nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
}
