package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/openagri/aegis/pkg/audit"
	"github.com/openagri/aegis/pkg/server"
	"github.com/openagri/aegis/pkg/server/middleware"
	"github.com/openagri/aegis/pkg/server/store"
	"github.com/openagri/aegis/pkg/token"
)

// failedAuthDetail is returned verbatim for every credential failure so a
// caller cannot tell an unknown login from a wrong password or an inactive
// account.
const failedAuthDetail = "No active account found with the given credentials"

// TokenRequest is the credential payload for POST /auth/token
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the success payload for POST /auth/token
type TokenResponse struct {
	Success bool   `json:"success"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest is the payload for POST /auth/token/refresh
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse is the success payload for POST /auth/token/refresh
type RefreshResponse struct {
	Success bool   `json:"success"`
	Access  string `json:"access"`
}

// LogoutRequest optionally carries the refresh token for POST /auth/logout
type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

// RegisterAuthenticateEndpoints registers the token issuance, refresh and
// logout endpoints
func RegisterAuthenticateEndpoints(s *server.Server) {
	s.Router.HandleFunc("/auth/token", handleObtainToken(s)).Methods("POST")
	s.Router.HandleFunc("/auth/token/refresh", handleRefreshToken(s)).Methods("POST")

	authn := middleware.NewTokenAuthenticator(s.Validator)
	logoutRouter := s.Router.PathPrefix("/auth/logout").Subrouter()
	logoutRouter.Use(authn.Middleware)
	logoutRouter.HandleFunc("", handleLogout(s)).Methods("POST")
}

func handleObtainToken(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithJSON(w, http.StatusBadRequest, map[string]string{"detail": "malformed request body"})
			return
		}
		defer r.Body.Close()

		ip := clientIP(s.Config, r)

		failAuth := func(reason string) {
			audit.Log(audit.AuthenticateEvent{
				Login:        req.Username,
				ClientIP:     ip,
				GrantType:    "password",
				Success:      false,
				ErrorMessage: reason,
			})
			respondWithJSON(w, http.StatusUnauthorized, map[string]string{"detail": failedAuthDetail})
		}

		if req.Username == "" || req.Password == "" {
			failAuth("missing credentials")
			return
		}

		user, err := s.Users.FindActiveByLogin(req.Username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				failAuth("account not found")
				return
			}
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}

		if !user.CheckPassword(req.Password) {
			failAuth("invalid credentials")
			return
		}

		pair, err := s.Issuer.Issue(user)
		if err != nil {
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}

		audit.Log(audit.AuthenticateEvent{
			Login:     user.Username,
			ClientIP:  ip,
			GrantType: "password",
			Success:   true,
		})

		respondWithJSON(w, http.StatusOK, TokenResponse{
			Success: true,
			Access:  pair.Access,
			Refresh: pair.Refresh,
		})
	}
}

func handleRefreshToken(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
			respondWithJSON(w, http.StatusBadRequest, map[string]string{"detail": "refresh token is required"})
			return
		}
		defer r.Body.Close()

		ip := clientIP(s.Config, r)

		claims, err := s.Validator.ValidateRefresh(r.Context(), req.Refresh)
		if err != nil {
			if errors.Is(err, token.ErrRevocationCheckFailed) {
				respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"detail": "token validation unavailable"})
				return
			}
			audit.Log(audit.AuthenticateEvent{
				ClientIP:     ip,
				GrantType:    "refresh",
				Success:      false,
				ErrorMessage: "invalid or revoked refresh token",
			})
			respondWithJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired"})
			return
		}

		// The subject must still be an active account at refresh time.
		user, err := s.Users.FindActiveByUUID(claims.UUID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				audit.Log(audit.AuthenticateEvent{
					Login:        claims.Username,
					ClientIP:     ip,
					GrantType:    "refresh",
					Success:      false,
					ErrorMessage: "account no longer active",
				})
				respondWithJSON(w, http.StatusUnauthorized, map[string]string{"detail": failedAuthDetail})
				return
			}
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}

		access, _, err := s.Issuer.Refresh(claims, user)
		if err != nil {
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}

		audit.Log(audit.AuthenticateEvent{
			Login:     user.Username,
			ClientIP:  ip,
			GrantType: "refresh",
			Success:   true,
		})

		respondWithJSON(w, http.StatusOK, RefreshResponse{
			Success: true,
			Access:  access,
		})
	}
}

func handleLogout(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req LogoutRequest
		// Body is optional; ignore decode failures.
		_ = json.NewDecoder(r.Body).Decode(&req)
		defer r.Body.Close()

		ctx := r.Context()

		accessExpiry := time.Now().Add(s.Config.AccessTokenTTL())
		if claims.ExpiresAt != nil {
			accessExpiry = claims.ExpiresAt.Time
		}
		if claims.ID != "" {
			if err := s.Revocations.RevokeAccess(ctx, claims.ID, accessExpiry); err != nil {
				respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
				return
			}
		}

		if claims.RJTI != "" {
			// Without the refresh token in hand the exact expiry is unknown;
			// the row is kept for a full refresh lifetime to be safe.
			refreshExpiry := time.Now().Add(s.Config.RefreshTokenTTL())
			if req.Refresh != "" {
				if rc, err := s.Validator.ValidateRefresh(ctx, req.Refresh); err == nil &&
					rc.ID == claims.RJTI && rc.ExpiresAt != nil {
					refreshExpiry = rc.ExpiresAt.Time
				}
			}
			if err := s.Revocations.RevokeRefresh(ctx, claims.RJTI, refreshExpiry); err != nil {
				respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
				return
			}
		}

		audit.Log(audit.RevokeEvent{
			Subject:  claims.Username,
			ClientIP: clientIP(s.Config, r),
			JTI:      claims.ID,
			RJTI:     claims.RJTI,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}
