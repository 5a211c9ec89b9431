package endpoints

import (
	"github.com/openagri/aegis/pkg/server"
	"github.com/openagri/aegis/pkg/server/middleware"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	// Activity logging wraps every route.
	logger := middleware.NewRequestLogger(srv.DB, srv.Config)
	srv.Router.Use(logger.Middleware)

	RegisterAuthenticateEndpoints(srv)
	RegisterWhoamiEndpoint(srv)
	RegisterPermissionsEndpoints(srv)
	RegisterRegistryEndpoints(srv)
	RegisterStatusEndpoint(srv)
}
