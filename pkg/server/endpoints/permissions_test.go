package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/openagri/aegis/pkg/authz"
	"github.com/openagri/aegis/pkg/model"
)

func grantedSet(grants ...authz.Grant) *authz.PermissionSet {
	set := authz.NewPermissionSet()
	for _, g := range grants {
		set.Add(g)
	}
	return set
}

func TestAuthorize(t *testing.T) {
	t.Run("granted action returns 204", func(t *testing.T) {
		srv, _, _, resolver, _ := testServer(nil)
		claims := testClaims()

		resolver.On("GroupIDsForSubject", mock.Anything, claims.UUID).Return([]uint{3}, nil)
		resolver.On("EffectivePermissions", mock.Anything, claims.UUID, []uint{3}).
			Return(grantedSet(authz.Grant{Service: "farm_calendar", Action: model.ActionView}), nil)

		w := httptest.NewRecorder()
		req := authenticatedRequest(t, "GET", "/authorize?service=farm_calendar&action=view", nil, claims)
		handleAuthorize(srv)(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("ungranted action returns 403", func(t *testing.T) {
		srv, _, _, resolver, _ := testServer(nil)
		claims := testClaims()

		resolver.On("GroupIDsForSubject", mock.Anything, claims.UUID).Return([]uint(nil), nil)
		resolver.On("EffectivePermissions", mock.Anything, claims.UUID, []uint(nil)).
			Return(grantedSet(), nil)

		w := httptest.NewRecorder()
		req := authenticatedRequest(t, "GET", "/authorize?service=farm_calendar&action=delete", nil, claims)
		handleAuthorize(srv)(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"detail":"NotAuthorized"}`, w.Body.String())
	})

	t.Run("virtual grant never authorizes", func(t *testing.T) {
		srv, _, _, resolver, _ := testServer(nil)
		claims := testClaims()

		resolver.On("GroupIDsForSubject", mock.Anything, claims.UUID).Return([]uint(nil), nil)
		resolver.On("EffectivePermissions", mock.Anything, claims.UUID, []uint(nil)).
			Return(grantedSet(authz.Grant{Service: "farm_calendar", Action: model.ActionView, Virtual: true}), nil)

		w := httptest.NewRecorder()
		req := authenticatedRequest(t, "GET", "/authorize?service=farm_calendar&action=view", nil, claims)
		handleAuthorize(srv)(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown action is a bad request", func(t *testing.T) {
		srv, _, _, resolver, _ := testServer(nil)

		w := httptest.NewRecorder()
		req := authenticatedRequest(t, "GET", "/authorize?service=farm_calendar&action=frobnicate", nil, testClaims())
		handleAuthorize(srv)(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resolver.AssertNotCalled(t, "EffectivePermissions", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing action is a bad request", func(t *testing.T) {
		srv, _, _, _, _ := testServer(nil)

		w := httptest.NewRecorder()
		req := authenticatedRequest(t, "GET", "/authorize?service=farm_calendar", nil, testClaims())
		handleAuthorize(srv)(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing claims yield 401", func(t *testing.T) {
		srv, _, _, _, _ := testServer(nil)

		w := httptest.NewRecorder()
		handleAuthorize(srv)(w, jsonRequest(t, "GET", "/authorize?service=x&action=view", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestEffectivePermissions(t *testing.T) {
	srv, _, _, resolver, _ := testServer(nil)
	claims := testClaims()

	resolver.On("GroupIDsForSubject", mock.Anything, claims.UUID).Return([]uint{3, 8}, nil)
	resolver.On("EffectivePermissions", mock.Anything, claims.UUID, []uint{3, 8}).
		Return(grantedSet(
			authz.Grant{Service: "farm_calendar", Action: model.ActionView},
			authz.Grant{Service: "irrigation", Action: model.ActionEdit, Virtual: true},
		), nil)

	w := httptest.NewRecorder()
	req := authenticatedRequest(t, "GET", "/effective-permissions", nil, claims)
	handleEffectivePermissions(srv)(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp EffectivePermissionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, claims.UUID, resp.Subject)
	assert.Len(t, resp.Permissions, 2)
}
