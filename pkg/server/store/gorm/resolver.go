package gorm

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/openagri/aegis/pkg/authz"
	"github.com/openagri/aegis/pkg/model"
	"github.com/openagri/aegis/pkg/server/store"
)

// Ensure ResolverStore implements store.ResolverStore
var _ store.ResolverStore = (*ResolverStore)(nil)

// ResolverStore implements store.ResolverStore using GORM.
//
// Resolution is three point queries unioned in memory. Soft-deleted rows on
// any side of a join are excluded in the query itself, so a delete
// propagates structurally with no cascading writes.
type ResolverStore struct {
	db *gorm.DB
}

// NewResolverStore creates a new ResolverStore
func NewResolverStore(db *gorm.DB) *ResolverStore {
	return &ResolverStore{db: db}
}

// grantRow is the shared scan target for the three grant queries.
// ServiceCode is NULL for global permissions.
type grantRow struct {
	ServiceCode sql.NullString
	Action      model.Action
	IsVirtual   bool
}

// GroupIDsForSubject returns the Active groups of the Active user
// identified by subjectUUID.
func (s *ResolverStore) GroupIDsForSubject(ctx context.Context, subjectUUID string) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Table("auth_user_groups ug").
		Select("g.id").
		Joins("JOIN auth_user_extend u ON u.id = ug.user_id AND u.status = ?", model.StatusActive).
		Joins("JOIN auth_group g ON g.id = ug.group_id AND g.status = ?", model.StatusActive).
		Where("u.uuid = ?", subjectUUID).
		Scan(&ids).Error
	return ids, err
}

// EffectivePermissions computes the pure union of direct grants, group
// grants and coarse group-service grants.
func (s *ResolverStore) EffectivePermissions(ctx context.Context, subjectUUID string, groupIDs []uint) (*authz.PermissionSet, error) {
	set := authz.NewPermissionSet()

	direct, err := s.directGrants(ctx, subjectUUID)
	if err != nil {
		return nil, err
	}
	addRows(set, direct)

	if len(groupIDs) > 0 {
		group, err := s.groupGrants(ctx, groupIDs)
		if err != nil {
			return nil, err
		}
		addRows(set, group)

		coarse, err := s.coarseServiceCodes(ctx, groupIDs)
		if err != nil {
			return nil, err
		}
		for _, code := range coarse {
			// Coarse grants are action-agnostic by policy: access to the
			// service implies every action on it.
			set.AddAllActions(code)
		}
	}

	return set, nil
}

func (s *ResolverStore) directGrants(ctx context.Context, subjectUUID string) ([]grantRow, error) {
	var rows []grantRow
	err := s.db.WithContext(ctx).
		Table("custom_permissions cp").
		Select("sm.service_code, pm.action, pm.is_virtual").
		Joins("JOIN auth_user_extend u ON u.id = cp.user_id AND u.status = ?", model.StatusActive).
		Joins("JOIN permission_master pm ON pm.id = cp.permission_name_id AND pm.status = ?", model.StatusActive).
		Joins("LEFT JOIN service_master sm ON sm.id = pm.service_id").
		Where("cp.status = ? AND u.uuid = ?", model.StatusActive, subjectUUID).
		Where("pm.service_id IS NULL OR sm.status = ?", model.StatusActive).
		Scan(&rows).Error
	return rows, err
}

func (s *ResolverStore) groupGrants(ctx context.Context, groupIDs []uint) ([]grantRow, error) {
	var rows []grantRow
	err := s.db.WithContext(ctx).
		Table("custom_group_permissions gp").
		Select("sm.service_code, pm.action, pm.is_virtual").
		Joins("JOIN custom_group_permissions_permissions gpp ON gpp.group_permission_id = gp.id").
		Joins("JOIN permission_master pm ON pm.id = gpp.permission_id AND pm.status = ?", model.StatusActive).
		Joins("LEFT JOIN service_master sm ON sm.id = pm.service_id").
		Where("gp.status = ? AND gp.group_id IN ?", model.StatusActive, groupIDs).
		Where("pm.service_id IS NULL OR sm.status = ?", model.StatusActive).
		Scan(&rows).Error
	return rows, err
}

func (s *ResolverStore) coarseServiceCodes(ctx context.Context, groupIDs []uint) ([]string, error) {
	var codes []string
	err := s.db.WithContext(ctx).
		Table("group_service_access gsa").
		Select("DISTINCT sm.service_code").
		Joins("JOIN service_master sm ON sm.id = gsa.service_id AND sm.status = ?", model.StatusActive).
		Where("gsa.status = ? AND gsa.group_id IN ?", model.StatusActive, groupIDs).
		Scan(&codes).Error
	return codes, err
}

func addRows(set *authz.PermissionSet, rows []grantRow) {
	for _, row := range rows {
		set.Add(authz.Grant{
			Service: row.ServiceCode.String, // empty for global permissions
			Action:  row.Action,
			Virtual: row.IsVirtual,
		})
	}
}
