package endpoints

import (
	"net/http"

	"github.com/openagri/aegis/pkg/server"
	"github.com/openagri/aegis/pkg/server/middleware"
)

// WhoamiResponse represents the response from the /whoami endpoint
type WhoamiResponse struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	UUID      string `json:"uuid"`
	TokenID   string `json:"jti"`
	RefreshID string `json:"rjti,omitempty"`
}

// RegisterWhoamiEndpoint registers the /whoami endpoint
func RegisterWhoamiEndpoint(s *server.Server) {
	authn := middleware.NewTokenAuthenticator(s.Validator)

	whoamiRouter := s.Router.PathPrefix("/whoami").Subrouter()
	whoamiRouter.Use(authn.Middleware)

	whoamiRouter.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			http.Error(w, "Unable to determine identity", http.StatusUnauthorized)
			return
		}

		respondWithJSON(w, http.StatusOK, WhoamiResponse{
			Username:  claims.Username,
			FirstName: claims.FirstName,
			LastName:  claims.LastName,
			Email:     claims.Email,
			UUID:      claims.UUID,
			TokenID:   claims.ID,
			RefreshID: claims.RJTI,
		})
	}
}
