package store

import "github.com/openagri/aegis/pkg/model"

// UserStore abstracts principal storage operations
type UserStore interface {
	// FindActiveByLogin finds an Active user whose username or email matches
	// the login identifier, case-insensitively. Returns ErrNotFound for
	// unknown, inactive and soft-deleted users alike.
	FindActiveByLogin(login string) (*model.User, error)

	// FindActiveByUUID finds an Active user by stable subject identifier.
	FindActiveByUUID(uuid string) (*model.User, error)

	// CreateUser persists a new user.
	CreateUser(user *model.User) error

	// SoftDeleteUser soft-deletes a user by username.
	SoftDeleteUser(username string) error
}
