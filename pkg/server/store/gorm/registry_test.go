package gorm

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openagri/aegis/pkg/model"
	"github.com/openagri/aegis/pkg/server/store"
)

type RegistrySuite struct {
	suite.Suite
	DB    *gorm.DB
	mock  sqlmock.Sqlmock
	store *RegistryStore
}

func (s *RegistrySuite) SetupSuite() {
	var (
		db  *sql.DB
		err error
	)

	db, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	s.DB, err = gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(s.T(), err)

	s.store = NewRegistryStore(s.DB)
}

func (s *RegistrySuite) AfterTest(_, _ string) {
	require.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func TestRegistryStore(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) TestFindServiceByCodeExcludesDeleted() {
	rows := sqlmock.NewRows([]string{"id", "service_code", "service_name", "status"}).
		AddRow(4, "farm_calendar", "Farm Calendar", int(model.StatusActive))

	s.mock.ExpectQuery(`SELECT \* FROM "service_master"`).
		WithArgs("farm_calendar", model.StatusDeleted).
		WillReturnRows(rows)

	svc, err := s.store.FindServiceByCode("farm_calendar")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint(4), svc.ID)
	assert.Equal(s.T(), "farm_calendar", svc.Code)
}

func (s *RegistrySuite) TestFindServiceByCodeNotFound() {
	s.mock.ExpectQuery(`SELECT \* FROM "service_master"`).
		WithArgs("missing", model.StatusDeleted).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc, err := s.store.FindServiceByCode("missing")
	assert.Nil(s.T(), svc)
	assert.ErrorIs(s.T(), err, store.ErrNotFound)
}

func (s *RegistrySuite) TestListServicesOrdersByCode() {
	rows := sqlmock.NewRows([]string{"id", "service_code", "status"}).
		AddRow(2, "billing", int(model.StatusActive)).
		AddRow(4, "farm_calendar", int(model.StatusActive))

	s.mock.ExpectQuery(`SELECT \* FROM "service_master" .* ORDER BY service_code`).
		WithArgs(model.StatusDeleted).
		WillReturnRows(rows)

	services, err := s.store.ListServices()
	require.NoError(s.T(), err)
	require.Len(s.T(), services, 2)
	assert.Equal(s.T(), "billing", services[0].Code)
}

func (s *RegistrySuite) TestCreatePermissionRejectsDuplicateWhenConfigured() {
	serviceID := uint(4)

	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "permission_master"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := s.store.CreatePermission(&model.Permission{
		ServiceID: &serviceID,
		Action:    model.ActionView,
	}, true)
	assert.ErrorIs(s.T(), err, store.ErrConflict)
}

func (s *RegistrySuite) TestCreatePermissionAllowsDuplicateByDefault() {
	serviceID := uint(4)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`INSERT INTO "permission_master"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	s.mock.ExpectCommit()

	err := s.store.CreatePermission(&model.Permission{
		ServiceID: &serviceID,
		Action:    model.ActionView,
	}, false)
	assert.NoError(s.T(), err)
}

func (s *RegistrySuite) TestGrantUserPermissionRestoresSoftDeletedGrant() {
	rows := sqlmock.NewRows([]string{"id", "user_id", "permission_name_id", "status"}).
		AddRow(9, 7, 11, int(model.StatusDeleted))

	s.mock.ExpectQuery(`SELECT \* FROM "custom_permissions"`).
		WithArgs(7, 11).
		WillReturnRows(rows)

	s.mock.ExpectBegin()
	s.mock.ExpectExec(`UPDATE "custom_permissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.store.GrantUserPermission(7, 11)
	assert.NoError(s.T(), err)
}

func (s *RegistrySuite) TestGrantUserPermissionConflictsOnLiveGrant() {
	rows := sqlmock.NewRows([]string{"id", "user_id", "permission_name_id", "status"}).
		AddRow(9, 7, 11, int(model.StatusActive))

	s.mock.ExpectQuery(`SELECT \* FROM "custom_permissions"`).
		WithArgs(7, 11).
		WillReturnRows(rows)

	err := s.store.GrantUserPermission(7, 11)
	assert.ErrorIs(s.T(), err, store.ErrConflict)
}

func (s *RegistrySuite) TestRevokeGroupServiceNotFound() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`UPDATE "group_service_access" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.store.RevokeGroupService(3, 4)
	assert.ErrorIs(s.T(), err, store.ErrNotFound)
}
