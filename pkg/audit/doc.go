// Package audit provides audit logging for identity operations.
//
// This package implements structured audit logging for security-relevant
// operations such as authentication attempts, permission checks, and
// token revocations.
//
// # Event Types
//
// The package defines event types for various operations:
//
//   - Authentication events (password and refresh grants)
//   - Permission check events
//   - Token revocation events
//   - Denylist prune events
//
// # Usage
//
//	audit.Log(audit.AuthenticateEvent{Login: login, Success: true})
//
// Events are emitted in RFC5424 syslog format and, when AUDIT_DATABASE_URL
// is set, persisted to the audit_messages table as well.
package audit
