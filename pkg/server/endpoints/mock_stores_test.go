package endpoints

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/openagri/aegis/pkg/authz"
	"github.com/openagri/aegis/pkg/model"
	"github.com/openagri/aegis/pkg/server/store"
)

// MockUserStore implements store.UserStore for testing using testify/mock
type MockUserStore struct {
	mock.Mock
}

func NewMockUserStore() *MockUserStore {
	return &MockUserStore{}
}

func (m *MockUserStore) FindActiveByLogin(login string) (*model.User, error) {
	args := m.Called(login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) FindActiveByUUID(uuid string) (*model.User, error) {
	args := m.Called(uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserStore) SoftDeleteUser(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

// MockRevocationStore implements store.RevocationStore for testing using
// testify/mock
type MockRevocationStore struct {
	mock.Mock
}

func NewMockRevocationStore() *MockRevocationStore {
	return &MockRevocationStore{}
}

func (m *MockRevocationStore) RevokeAccess(ctx context.Context, jti string, expiresAt time.Time) error {
	args := m.Called(ctx, jti, expiresAt)
	return args.Error(0)
}

func (m *MockRevocationStore) RevokeRefresh(ctx context.Context, rjti string, expiresAt time.Time) error {
	args := m.Called(ctx, rjti, expiresAt)
	return args.Error(0)
}

func (m *MockRevocationStore) IsAccessRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevocationStore) IsRefreshRevoked(ctx context.Context, rjti string) (bool, error) {
	args := m.Called(ctx, rjti)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevocationStore) Prune(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockRegistryStore implements store.RegistryStore for testing using
// testify/mock
type MockRegistryStore struct {
	mock.Mock
}

func NewMockRegistryStore() *MockRegistryStore {
	return &MockRegistryStore{}
}

func (m *MockRegistryStore) CreateService(svc *model.Service) error {
	args := m.Called(svc)
	return args.Error(0)
}

func (m *MockRegistryStore) FindServiceByCode(code string) (*model.Service, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockRegistryStore) ListServices() ([]model.Service, error) {
	args := m.Called()
	return args.Get(0).([]model.Service), args.Error(1)
}

func (m *MockRegistryStore) SoftDeleteService(code string) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockRegistryStore) RestoreService(code string) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockRegistryStore) CreatePermission(p *model.Permission, rejectDuplicates bool) error {
	args := m.Called(p, rejectDuplicates)
	return args.Error(0)
}

func (m *MockRegistryStore) SoftDeletePermission(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRegistryStore) GrantUserPermission(userID, permissionID uint) error {
	args := m.Called(userID, permissionID)
	return args.Error(0)
}

func (m *MockRegistryStore) RevokeUserPermission(userID, permissionID uint) error {
	args := m.Called(userID, permissionID)
	return args.Error(0)
}

func (m *MockRegistryStore) SetGroupPermissions(groupID uint, permissionIDs []uint) error {
	args := m.Called(groupID, permissionIDs)
	return args.Error(0)
}

func (m *MockRegistryStore) GrantGroupService(groupID, serviceID uint) error {
	args := m.Called(groupID, serviceID)
	return args.Error(0)
}

func (m *MockRegistryStore) RevokeGroupService(groupID, serviceID uint) error {
	args := m.Called(groupID, serviceID)
	return args.Error(0)
}

// MockResolverStore implements store.ResolverStore for testing using
// testify/mock
type MockResolverStore struct {
	mock.Mock
}

func NewMockResolverStore() *MockResolverStore {
	return &MockResolverStore{}
}

func (m *MockResolverStore) GroupIDsForSubject(ctx context.Context, subjectUUID string) ([]uint, error) {
	args := m.Called(ctx, subjectUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockResolverStore) EffectivePermissions(ctx context.Context, subjectUUID string, groupIDs []uint) (*authz.PermissionSet, error) {
	args := m.Called(ctx, subjectUUID, groupIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authz.PermissionSet), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}

var (
	_ store.UserStore       = (*MockUserStore)(nil)
	_ store.RevocationStore = (*MockRevocationStore)(nil)
	_ store.RegistryStore   = (*MockRegistryStore)(nil)
	_ store.ResolverStore   = (*MockResolverStore)(nil)
	_ store.HealthStore     = (*MockHealthStore)(nil)
)
