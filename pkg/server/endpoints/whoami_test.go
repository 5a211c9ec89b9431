package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhoami(t *testing.T) {
	t.Run("echoes the validated claims", func(t *testing.T) {
		claims := testClaims()

		w := httptest.NewRecorder()
		handleWhoami()(w, authenticatedRequest(t, "GET", "/whoami", nil, claims))

		require.Equal(t, http.StatusOK, w.Code)

		var resp WhoamiResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, claims.UUID, resp.UUID)
		assert.Equal(t, claims.ID, resp.TokenID)
		assert.Equal(t, claims.RJTI, resp.RefreshID)
	})

	t.Run("missing claims yield 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		handleWhoami()(w, jsonRequest(t, "GET", "/whoami", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
