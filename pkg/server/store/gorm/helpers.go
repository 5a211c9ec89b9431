package gorm

import (
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	"github.com/openagri/aegis/pkg/model"
	"github.com/openagri/aegis/pkg/server/store"
)

const pgErrUniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}

// softDelete flips matching live rows to Deleted and stamps deleted_at.
// Returns store.ErrNotFound when no live row matched.
func softDelete(db *gorm.DB, m interface{}, query string, args ...interface{}) error {
	now := time.Now().UTC()
	tx := db.Model(m).
		Where(query, args...).
		Where("status <> ?", model.StatusDeleted).
		Updates(map[string]interface{}{
			"status":     model.StatusDeleted,
			"deleted_at": now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// restore reverts soft-deleted rows to Active and clears deleted_at.
func restore(db *gorm.DB, m interface{}, query string, args ...interface{}) error {
	tx := db.Model(m).
		Where(query, args...).
		Where("status = ?", model.StatusDeleted).
		Updates(map[string]interface{}{
			"status":     model.StatusActive,
			"deleted_at": nil,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
