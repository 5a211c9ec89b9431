// Package store provides storage abstractions for the Aegis server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database
// implementation. This enables easier testing with mocks and potential
// support for different storage backends.
//
// # Available Stores
//
//   - UserStore: principal lookups and creation
//   - RevocationStore: the two credential denylists
//   - RegistryStore: services, permissions and grants with shared lifecycle
//   - ResolverStore: effective-permission computation
package store
