package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockUserProfileRepository is a mock implementation of UserProfileRepository
type MockUserProfileRepository struct {
	mock.Mock
}

func (m *MockUserProfileRepository) Save(ctx context.Context, profile *identity.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserProfileRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockUserProfileRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.UserProfile, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.UserProfile, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) FindByEmailGlobal(ctx context.Context, email string) (*identity.UserProfile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter identity.UserProfileFilter) ([]*identity.UserProfile, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*identity.UserProfile), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserProfileRepository) FindByArea(ctx context.Context, tenantID, areaID uuid.UUID) ([]*identity.UserProfile, error) {
	args := m.Called(ctx, tenantID, areaID)
	return args.Get(0).([]*identity.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserProfileRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

var _ identity.UserProfileRepository = (*MockUserProfileRepository)(nil)

// MockTenantRepository is a mock implementation of TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindBySlug(ctx context.Context, slug string) (*identity.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByStatus(ctx context.Context, status identity.TenantStatus, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindTrialExpiring(ctx context.Context, withinDays int) ([]identity.Tenant, error) {
	args := m.Called(ctx, withinDays)
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

var _ identity.TenantRepository = (*MockTenantRepository)(nil)

// MockInvitationRepository is a mock implementation of InvitationRepository
type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) Save(ctx context.Context, invitation *identity.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockInvitationRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.Invitation, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) FindByToken(ctx context.Context, token string) (*identity.Invitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*identity.Invitation, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*identity.Invitation), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvitationRepository) FindPendingByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.Invitation, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) FindExpired(ctx context.Context, before time.Time, limit int) ([]*identity.Invitation, error) {
	args := m.Called(ctx, before, limit)
	return args.Get(0).([]*identity.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) ExistsPendingByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvitationRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

var _ identity.InvitationRepository = (*MockInvitationRepository)(nil)
