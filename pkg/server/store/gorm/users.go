package gorm

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/openagri/aegis/pkg/model"
	"github.com/openagri/aegis/pkg/server/store"
)

// Ensure UserStore implements store.UserStore
var _ store.UserStore = (*UserStore)(nil)

// UserStore implements store.UserStore using GORM
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindActiveByLogin finds an Active user by username or email,
// case-insensitively. Inactive and soft-deleted users are indistinguishable
// from unknown ones; the caller surfaces a uniform failure either way.
func (s *UserStore) FindActiveByLogin(login string) (*model.User, error) {
	login = strings.ToLower(strings.TrimSpace(login))

	var user model.User
	tx := s.db.
		Where("(LOWER(username) = ? OR LOWER(email) = ?) AND status = ?",
			login, login, model.StatusActive).
		First(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// FindActiveByUUID finds an Active user by stable subject identifier.
func (s *UserStore) FindActiveByUUID(uuid string) (*model.User, error) {
	var user model.User
	tx := s.db.
		Where("uuid = ? AND status = ?", uuid, model.StatusActive).
		First(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// CreateUser persists a new user. Callers decide the initial status;
// aegisctl creates users as Active.
func (s *UserStore) CreateUser(user *model.User) error {
	err := s.db.Create(user).Error
	if isUniqueViolation(err) {
		return store.ErrConflict
	}
	return err
}

// SoftDeleteUser soft-deletes a user by username.
func (s *UserStore) SoftDeleteUser(username string) error {
	return softDelete(s.db, &model.User{}, "LOWER(username) = ?", strings.ToLower(username))
}
