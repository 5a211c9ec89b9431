package store

import (
	"context"

	"github.com/openagri/aegis/pkg/authz"
	"github.com/openagri/aegis/pkg/model"
)

// RegistryStore abstracts the permission registry: services, action-level
// permissions, direct and group grants, and coarse group-service access.
// Deletes are soft throughout; soft-deleted rows drop out of every read.
type RegistryStore interface {
	// CreateService registers a backend service. ErrConflict when the code
	// or name is taken.
	CreateService(svc *model.Service) error

	// FindServiceByCode returns a service that is not soft-deleted.
	FindServiceByCode(code string) (*model.Service, error)

	// ListServices returns all services that are not soft-deleted.
	ListServices() ([]model.Service, error)

	// SoftDeleteService soft-deletes a service by code.
	SoftDeleteService(code string) error

	// RestoreService reverts a soft delete.
	RestoreService(code string) error

	// CreatePermission records an allowed (service, action) pair.
	// When rejectDuplicates is set, an existing live row with the same pair
	// yields ErrConflict; otherwise duplicates are legal.
	CreatePermission(p *model.Permission, rejectDuplicates bool) error

	// SoftDeletePermission soft-deletes a permission by id.
	SoftDeletePermission(id uint) error

	// GrantUserPermission links a user directly to a permission.
	// ErrConflict when the (user, permission) pair already has a live row;
	// a soft-deleted row is restored instead.
	GrantUserPermission(userID, permissionID uint) error

	// RevokeUserPermission soft-deletes a direct grant.
	RevokeUserPermission(userID, permissionID uint) error

	// SetGroupPermissions replaces the permission set of a group's grant
	// row, creating the row if needed.
	SetGroupPermissions(groupID uint, permissionIDs []uint) error

	// GrantGroupService records coarse access from a group to a service.
	GrantGroupService(groupID, serviceID uint) error

	// RevokeGroupService soft-deletes a coarse grant.
	RevokeGroupService(groupID, serviceID uint) error
}

// ResolverStore computes effective authorizations for a validated principal.
type ResolverStore interface {
	// GroupIDsForSubject returns the ids of the Active groups the user
	// identified by subjectUUID belongs to.
	GroupIDsForSubject(ctx context.Context, subjectUUID string) ([]uint, error)

	// EffectivePermissions unions direct grants, group grants and coarse
	// group-service grants into one set. Soft-deleted rows on any side of a
	// join are excluded.
	EffectivePermissions(ctx context.Context, subjectUUID string, groupIDs []uint) (*authz.PermissionSet, error)
}
