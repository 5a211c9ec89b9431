package endpoints

import (
	"net/http"

	"github.com/openagri/aegis/pkg/audit"
	"github.com/openagri/aegis/pkg/authz"
	"github.com/openagri/aegis/pkg/model"
	"github.com/openagri/aegis/pkg/server"
	"github.com/openagri/aegis/pkg/server/middleware"
)

// EffectivePermissionsResponse lists the resolved grants of the caller
type EffectivePermissionsResponse struct {
	Subject     string        `json:"subject"`
	Permissions []authz.Grant `json:"permissions"`
}

// RegisterPermissionsEndpoints registers the resolver-backed endpoints
func RegisterPermissionsEndpoints(s *server.Server) {
	authn := middleware.NewTokenAuthenticator(s.Validator)

	effRouter := s.Router.PathPrefix("/effective-permissions").Subrouter()
	effRouter.Use(authn.Middleware)
	effRouter.HandleFunc("", handleEffectivePermissions(s)).Methods("GET")

	authzRouter := s.Router.PathPrefix("/authorize").Subrouter()
	authzRouter.Use(authn.Middleware)
	authzRouter.HandleFunc("", handleAuthorize(s)).Methods("GET")
}

// resolve computes the caller's permission set from the validated claims.
func resolve(s *server.Server, r *http.Request, subjectUUID string) (*authz.PermissionSet, error) {
	groupIDs, err := s.Resolver.GroupIDsForSubject(r.Context(), subjectUUID)
	if err != nil {
		return nil, err
	}
	return s.Resolver.EffectivePermissions(r.Context(), subjectUUID, groupIDs)
}

func handleEffectivePermissions(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			http.Error(w, "Unable to determine identity", http.StatusUnauthorized)
			return
		}

		set, err := resolve(s, r, claims.UUID)
		if err != nil {
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}

		respondWithJSON(w, http.StatusOK, EffectivePermissionsResponse{
			Subject:     claims.UUID,
			Permissions: set.Grants(),
		})
	}
}

func handleAuthorize(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			http.Error(w, "Unable to determine identity", http.StatusUnauthorized)
			return
		}

		service := r.URL.Query().Get("service")
		actionParam := r.URL.Query().Get("action")
		if actionParam == "" {
			respondWithJSON(w, http.StatusBadRequest, map[string]string{"detail": "action is required"})
			return
		}
		action, err := model.ActionString(actionParam)
		if err != nil {
			respondWithJSON(w, http.StatusBadRequest, map[string]string{"detail": "unknown action"})
			return
		}

		set, err := resolve(s, r, claims.UUID)
		if err != nil {
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}

		allowed := set.Allows(service, action)

		audit.Log(audit.AuthorizeEvent{
			Subject:  claims.Username,
			ClientIP: clientIP(s.Config, r),
			Service:  service,
			Action:   action.String(),
			Allowed:  allowed,
		})

		if !allowed {
			respondWithJSON(w, http.StatusForbidden, map[string]string{"detail": "NotAuthorized"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
