package endpoints

import (
	"net/http"
	"os"

	"github.com/openagri/aegis/pkg/server"
)

// StatusResponse represents the response from the status endpoint
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RegisterStatusEndpoint registers the root status endpoint
func RegisterStatusEndpoint(s *server.Server) {
	s.Router.HandleFunc("/", handleStatus(s)).Methods("GET")
}

func handleStatus(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("AEGIS_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		if err := s.Health.CheckConnectivity(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
				Status:  "error",
				Version: version,
			})
			return
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{
			Status:  "ok",
			Version: version,
		})
	}
}
