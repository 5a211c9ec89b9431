package gorm

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type RevocationSuite struct {
	suite.Suite
	DB    *gorm.DB
	mock  sqlmock.Sqlmock
	store *RevocationStore
}

func (s *RevocationSuite) SetupSuite() {
	var (
		db  *sql.DB
		err error
	)

	db, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	s.DB, err = gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(s.T(), err)

	s.store = NewRevocationStore(s.DB)
}

func (s *RevocationSuite) AfterTest(_, _ string) {
	require.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func TestRevocationStore(t *testing.T) {
	suite.Run(t, new(RevocationSuite))
}

func (s *RevocationSuite) TestRevokeAccessUsesOnConflict() {
	expiry := time.Now().Add(15 * time.Minute)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`INSERT INTO "blacklisted_access_tokens" .* ON CONFLICT \("jti"\) DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	s.mock.ExpectCommit()

	err := s.store.RevokeAccess(context.Background(), "6f1c9a52-7e0d-4c88-a7a3-52f2e2f7bb1f", expiry)
	assert.NoError(s.T(), err)
}

func (s *RevocationSuite) TestRevokeRefreshUsesOnConflict() {
	expiry := time.Now().Add(168 * time.Hour)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`INSERT INTO "blacklisted_refresh_tokens" .* ON CONFLICT \("rjti"\) DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	s.mock.ExpectCommit()

	err := s.store.RevokeRefresh(context.Background(), "0b9a7c1e-33d2-4a4e-9c44-d2b61f8e2ab0", expiry)
	assert.NoError(s.T(), err)
}

func (s *RevocationSuite) TestIsAccessRevoked() {
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "blacklisted_access_tokens"`).
		WithArgs("known-jti").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	revoked, err := s.store.IsAccessRevoked(context.Background(), "known-jti")
	assert.NoError(s.T(), err)
	assert.True(s.T(), revoked)

	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "blacklisted_access_tokens"`).
		WithArgs("unknown-jti").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	revoked, err = s.store.IsAccessRevoked(context.Background(), "unknown-jti")
	assert.NoError(s.T(), err)
	assert.False(s.T(), revoked)
}

func (s *RevocationSuite) TestIsRefreshRevoked() {
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "blacklisted_refresh_tokens"`).
		WithArgs("known-rjti").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	revoked, err := s.store.IsRefreshRevoked(context.Background(), "known-rjti")
	assert.NoError(s.T(), err)
	assert.True(s.T(), revoked)
}

func (s *RevocationSuite) TestPruneSumsBothTables() {
	now := time.Now()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(`DELETE FROM "blacklisted_access_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	s.mock.ExpectCommit()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(`DELETE FROM "blacklisted_refresh_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	s.mock.ExpectCommit()

	removed, err := s.store.Prune(context.Background(), now)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(5), removed)
}
