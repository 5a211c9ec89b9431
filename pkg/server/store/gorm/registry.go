package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/openagri/aegis/pkg/model"
	"github.com/openagri/aegis/pkg/server/store"
)

// Ensure RegistryStore implements store.RegistryStore
var _ store.RegistryStore = (*RegistryStore)(nil)

// RegistryStore implements store.RegistryStore using GORM
type RegistryStore struct {
	db *gorm.DB
}

// NewRegistryStore creates a new RegistryStore
func NewRegistryStore(db *gorm.DB) *RegistryStore {
	return &RegistryStore{db: db}
}

// CreateService registers a backend service.
func (s *RegistryStore) CreateService(svc *model.Service) error {
	svc.Status = model.StatusActive
	err := s.db.Create(svc).Error
	if isUniqueViolation(err) {
		return store.ErrConflict
	}
	return err
}

// FindServiceByCode returns a service that is not soft-deleted.
func (s *RegistryStore) FindServiceByCode(code string) (*model.Service, error) {
	var svc model.Service
	tx := s.db.
		Where("service_code = ? AND status <> ?", code, model.StatusDeleted).
		First(&svc)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &svc, nil
}

// ListServices returns all services that are not soft-deleted, ordered by
// code.
func (s *RegistryStore) ListServices() ([]model.Service, error) {
	var services []model.Service
	err := s.db.
		Where("status <> ?", model.StatusDeleted).
		Order("service_code").
		Find(&services).Error
	return services, err
}

// SoftDeleteService soft-deletes a service by code. Dependent permission
// and grant rows are untouched; the resolver excludes them structurally.
func (s *RegistryStore) SoftDeleteService(code string) error {
	return softDelete(s.db, &model.Service{}, "service_code = ?", code)
}

// RestoreService reverts a soft delete.
func (s *RegistryStore) RestoreService(code string) error {
	return restore(s.db, &model.Service{}, "service_code = ?", code)
}

// CreatePermission records an allowed (service, action) pair. Duplicate
// pairs are legal unless rejectDuplicates is set; the choice is surfaced
// through configuration rather than assumed.
func (s *RegistryStore) CreatePermission(p *model.Permission, rejectDuplicates bool) error {
	if rejectDuplicates {
		var count int64
		q := s.db.Model(&model.Permission{}).
			Where("action = ? AND status <> ?", p.Action, model.StatusDeleted)
		if p.ServiceID != nil {
			q = q.Where("service_id = ?", *p.ServiceID)
		} else {
			q = q.Where("service_id IS NULL")
		}
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return store.ErrConflict
		}
	}

	p.Status = model.StatusActive
	return s.db.Create(p).Error
}

// SoftDeletePermission soft-deletes a permission by id.
func (s *RegistryStore) SoftDeletePermission(id uint) error {
	return softDelete(s.db, &model.Permission{}, "id = ?", id)
}

// GrantUserPermission links a user directly to a permission. A soft-deleted
// grant for the same pair is restored rather than duplicated.
func (s *RegistryStore) GrantUserPermission(userID, permissionID uint) error {
	var existing model.UserPermission
	tx := s.db.
		Where("user_id = ? AND permission_name_id = ?", userID, permissionID).
		First(&existing)
	if tx.Error == nil {
		if !existing.IsDeleted() {
			return store.ErrConflict
		}
		return restore(s.db, &model.UserPermission{}, "id = ?", existing.ID)
	}
	if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return tx.Error
	}

	grant := model.UserPermission{
		UserID:       userID,
		PermissionID: permissionID,
		Lifecycle:    model.Lifecycle{Status: model.StatusActive},
	}
	err := s.db.Create(&grant).Error
	if isUniqueViolation(err) {
		// Lost a race with a concurrent identical grant.
		return store.ErrConflict
	}
	return err
}

// RevokeUserPermission soft-deletes a direct grant.
func (s *RegistryStore) RevokeUserPermission(userID, permissionID uint) error {
	return softDelete(s.db, &model.UserPermission{},
		"user_id = ? AND permission_name_id = ?", userID, permissionID)
}

// SetGroupPermissions replaces the permission set of a group's grant row,
// creating the row if needed.
func (s *RegistryStore) SetGroupPermissions(groupID uint, permissionIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var grant model.GroupPermission
		res := tx.Where("group_id = ? AND status <> ?", groupID, model.StatusDeleted).
			First(&grant)
		if res.Error != nil {
			if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return res.Error
			}
			grant = model.GroupPermission{
				GroupID:   groupID,
				Lifecycle: model.Lifecycle{Status: model.StatusActive},
			}
			if err := tx.Create(&grant).Error; err != nil {
				return err
			}
		}

		var perms []model.Permission
		if len(permissionIDs) > 0 {
			if err := tx.Where("id IN ? AND status <> ?", permissionIDs, model.StatusDeleted).
				Find(&perms).Error; err != nil {
				return err
			}
			if len(perms) != len(permissionIDs) {
				return store.ErrNotFound
			}
		}

		return tx.Model(&grant).Association("Permissions").Replace(perms)
	})
}

// GrantGroupService records coarse access from a group to a service,
// restoring a soft-deleted grant for the same pair.
func (s *RegistryStore) GrantGroupService(groupID, serviceID uint) error {
	var existing model.GroupServiceAccess
	tx := s.db.
		Where("group_id = ? AND service_id = ?", groupID, serviceID).
		First(&existing)
	if tx.Error == nil {
		if !existing.IsDeleted() {
			return store.ErrConflict
		}
		return restore(s.db, &model.GroupServiceAccess{}, "id = ?", existing.ID)
	}
	if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return tx.Error
	}

	grant := model.GroupServiceAccess{
		GroupID:   groupID,
		ServiceID: serviceID,
		Lifecycle: model.Lifecycle{Status: model.StatusActive},
	}
	err := s.db.Create(&grant).Error
	if isUniqueViolation(err) {
		return store.ErrConflict
	}
	return err
}

// RevokeGroupService soft-deletes a coarse grant.
func (s *RegistryStore) RevokeGroupService(groupID, serviceID uint) error {
	return softDelete(s.db, &model.GroupServiceAccess{},
		"group_id = ? AND service_id = ?", groupID, serviceID)
}
