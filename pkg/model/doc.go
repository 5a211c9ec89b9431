// Package model contains the database models for the Aegis identity core.
//
// Every governed entity embeds Lifecycle, which carries the shared
// status/soft-delete columns. Rows are never physically removed by normal
// operation; soft-deleted rows stay in place and are excluded from queries
// by the store layer. The only sanctioned hard delete is denylist pruning,
// which removes rows for credentials that have already expired.
package model
