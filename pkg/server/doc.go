// Package server provides the HTTP server for the identity and access API.
//
// This package implements the core HTTP server that handles token
// issuance, validation, revocation and permission resolution requests. It
// uses gorilla/mux for routing and provides middleware for bearer token
// authentication and activity logging.
//
// # Server Setup
//
//	srv, err := server.NewServer(cfg, db)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	endpoints.RegisterAll(srv)
//	log.Fatal(srv.Start())
//
// # Components
//
// The Server struct holds:
//
//   - Issuer: signs access/refresh token pairs
//   - Validator: verifies tokens against the two-tier denylist
//   - Users, Registry, Resolver, Revocations, Health: storage interfaces
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
//
// This registers the standard API surface including:
//
//   - POST /auth/token - credential authentication
//   - POST /auth/token/refresh - access token renewal
//   - POST /auth/logout - token pair revocation
//   - GET /whoami - token introspection
//   - GET /effective-permissions - resolved grants for the caller
//   - GET /authorize - point permission check
//   - /services, /permissions, /grants/* - registry administration
package server
