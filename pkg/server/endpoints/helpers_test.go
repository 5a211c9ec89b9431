package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/openagri/aegis/pkg/config"
	"github.com/openagri/aegis/pkg/model"
	"github.com/openagri/aegis/pkg/server"
	"github.com/openagri/aegis/pkg/server/middleware"
	"github.com/openagri/aegis/pkg/token"
)

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

const testSubjectUUID = "2b8e7fd2-9f41-4c38-a6c1-0d6a3c1f5a77"

func testConfig() *config.Config {
	return &config.Config{
		Issuer:                "aegis",
		AccessTokenTTLMinutes: 15,
		RefreshTokenTTLHours:  168,
	}
}

// testServer wires mocks into a server the handler factories can consume.
// The issuer and validator are real; only storage is mocked.
func testServer(denylist token.Denylist) (*server.Server, *MockUserStore, *MockRegistryStore, *MockResolverStore, *MockRevocationStore) {
	cfg := testConfig()
	users := NewMockUserStore()
	registry := NewMockRegistryStore()
	resolver := NewMockResolverStore()
	revocations := NewMockRevocationStore()

	if denylist == nil {
		denylist = revocations
	}

	srv := &server.Server{
		Config:      cfg,
		Issuer:      token.NewIssuer(testSigningKey, cfg.Issuer, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL()),
		Validator:   token.NewValidator(testSigningKey, cfg.Issuer, denylist),
		Users:       users,
		Registry:    registry,
		Resolver:    resolver,
		Revocations: revocations,
	}
	return srv, users, registry, resolver, revocations
}

func testUser(t *testing.T) *model.User {
	t.Helper()
	user := &model.User{
		ID:        7,
		UUID:      testSubjectUUID,
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Doe",
		Email:     "alice@example.com",
		Lifecycle: model.Lifecycle{Status: model.StatusActive},
	}
	require.NoError(t, user.SetPassword("s3cret"))
	return user
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// authenticatedRequest carries validated claims in the request context, the
// way the token middleware leaves them for handlers.
func authenticatedRequest(t *testing.T, method, target string, payload interface{}, claims *token.Claims) *http.Request {
	t.Helper()
	req := jsonRequest(t, method, target, payload)
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

func testClaims() *token.Claims {
	now := time.Now()
	return &token.Claims{
		TokenType: token.TypeAccess,
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Doe",
		Email:     "alice@example.com",
		UUID:      testSubjectUUID,
		RJTI:      "11111111-2222-3333-4444-555555555555",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
			Subject:   testSubjectUUID,
			Issuer:    "aegis",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
		},
	}
}
