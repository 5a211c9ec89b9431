// Package authz holds the effective-permission set semantics.
//
// Authorization is a pure union: no grant can subtract from another, and
// absence of a tuple means not authorized. Coarse group-to-service grants
// widen deliberately to every action on the service; that is policy, not an
// oversight.
package authz
