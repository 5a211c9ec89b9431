// Package aegis provides the identity and access-control core of the
// OpenAgri API gateway.
//
// Aegis issues JWT access/refresh token pairs, revokes them through a
// two-tier denylist, and resolves per-subject permissions from a
// soft-deleting registry of services, permissions and grants.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/token: token issuance and validation
//   - pkg/authz: effective permission sets
//   - pkg/model: database models
//   - pkg/db: database connection utilities
//   - pkg/audit: audit logging
//   - pkg/config: configuration management
//
// # Quick Start
//
// The server is run via the aegisctl CLI:
//
//	# Generate a token signing key
//	export AEGIS_SIGNING_KEY="$(aegisctl signing-key generate)"
//
//	# Run database migrations
//	aegisctl db migrate
//
//	# Create a user
//	aegisctl user create admin admin@example.org
//
//	# Start the server
//	aegisctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - AEGIS_SIGNING_KEY: Base64-encoded 256-bit HMAC token signing key
//   - AEGIS_LOG_LEVEL: Log level (debug for SQL logging)
//   - AEGIS_PORT: Server port (default: 8000)
package main
