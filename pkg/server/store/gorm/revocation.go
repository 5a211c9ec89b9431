package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openagri/aegis/pkg/model"
	"github.com/openagri/aegis/pkg/server/store"
)

// Ensure RevocationStore implements store.RevocationStore
var _ store.RevocationStore = (*RevocationStore)(nil)

// RevocationStore implements store.RevocationStore using GORM.
//
// Idempotency comes from the unique index on jti/rjti plus
// INSERT ... ON CONFLICT DO NOTHING: concurrent duplicate revokes of the
// same credential both succeed and leave exactly one row, with no lock.
type RevocationStore struct {
	db *gorm.DB
}

// NewRevocationStore creates a new RevocationStore
func NewRevocationStore(db *gorm.DB) *RevocationStore {
	return &RevocationStore{db: db}
}

// RevokeAccess denylists an access token by jti.
func (s *RevocationStore) RevokeAccess(ctx context.Context, jti string, expiresAt time.Time) error {
	entry := model.BlacklistedAccess{
		JTI:       jti,
		ExpiresAt: expiresAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "jti"}}, DoNothing: true}).
		Create(&entry).Error
}

// RevokeRefresh denylists a refresh token by rjti.
func (s *RevocationStore) RevokeRefresh(ctx context.Context, rjti string, expiresAt time.Time) error {
	entry := model.BlacklistedRefresh{
		RJTI:      rjti,
		ExpiresAt: expiresAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "rjti"}}, DoNothing: true}).
		Create(&entry).Error
}

// IsAccessRevoked reports whether an access jti is denylisted. Row presence
// is the whole answer; denylist entries have no soft-delete state.
// A point lookup against the unique index, not a scan.
func (s *RevocationStore) IsAccessRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.BlacklistedAccess{}).
		Where("jti = ?", jti).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsRefreshRevoked reports whether a refresh rjti is denylisted.
func (s *RevocationStore) IsRefreshRevoked(ctx context.Context, rjti string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.BlacklistedRefresh{}).
		Where("rjti = ?", rjti).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Prune hard-deletes denylist entries for tokens that have expired
// naturally. This is the one sanctioned hard delete: the rows are
// unreachable because signature checking rejects the tokens anyway.
func (s *RevocationStore) Prune(ctx context.Context, now time.Time) (int64, error) {
	var removed int64

	tx := s.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.BlacklistedAccess{})
	if tx.Error != nil {
		return removed, tx.Error
	}
	removed += tx.RowsAffected

	tx = s.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.BlacklistedRefresh{})
	if tx.Error != nil {
		return removed, tx.Error
	}
	removed += tx.RowsAffected

	return removed, nil
}
