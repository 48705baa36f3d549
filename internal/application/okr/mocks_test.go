package okr

import (
	"context"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockAreaRepository struct {
	mock.Mock
}

var _ okr.AreaRepository = (*MockAreaRepository)(nil)

func (m *MockAreaRepository) Save(ctx context.Context, area *okr.Area) error {
	args := m.Called(ctx, area)
	return args.Error(0)
}

func (m *MockAreaRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*okr.Area, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*okr.Area), args.Error(1)
}

func (m *MockAreaRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*okr.Area, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*okr.Area), args.Error(1)
}

func (m *MockAreaRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*okr.Area, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*okr.Area), args.Get(1).(int64), args.Error(2)
}

func (m *MockAreaRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]*okr.Area, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*okr.Area), args.Error(1)
}

func (m *MockAreaRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockAreaRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAreaRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockObjectiveRepository struct {
	mock.Mock
}

var _ okr.ObjectiveRepository = (*MockObjectiveRepository)(nil)

func (m *MockObjectiveRepository) Save(ctx context.Context, objective *okr.Objective) error {
	args := m.Called(ctx, objective)
	return args.Error(0)
}

func (m *MockObjectiveRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*okr.Objective, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*okr.Objective), args.Error(1)
}

func (m *MockObjectiveRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter okr.ObjectiveFilter) ([]*okr.Objective, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*okr.Objective), args.Get(1).(int64), args.Error(2)
}

func (m *MockObjectiveRepository) FindByArea(ctx context.Context, tenantID, areaID uuid.UUID) ([]*okr.Objective, error) {
	args := m.Called(ctx, tenantID, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*okr.Objective), args.Error(1)
}

func (m *MockObjectiveRepository) CountByArea(ctx context.Context, tenantID, areaID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, areaID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockObjectiveRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockInitiativeRepository struct {
	mock.Mock
}

var _ okr.InitiativeRepository = (*MockInitiativeRepository)(nil)

func (m *MockInitiativeRepository) Save(ctx context.Context, initiative *okr.Initiative) error {
	args := m.Called(ctx, initiative)
	return args.Error(0)
}

func (m *MockInitiativeRepository) SaveWithProgress(ctx context.Context, initiative *okr.Initiative, entry *okr.ProgressEntry) error {
	args := m.Called(ctx, initiative, entry)
	return args.Error(0)
}

func (m *MockInitiativeRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*okr.Initiative, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*okr.Initiative), args.Error(1)
}

func (m *MockInitiativeRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter okr.InitiativeFilter) ([]*okr.Initiative, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*okr.Initiative), args.Get(1).(int64), args.Error(2)
}

func (m *MockInitiativeRepository) FindByObjective(ctx context.Context, tenantID, objectiveID uuid.UUID) ([]*okr.Initiative, error) {
	args := m.Called(ctx, tenantID, objectiveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*okr.Initiative), args.Error(1)
}

func (m *MockInitiativeRepository) FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID) ([]*okr.Initiative, error) {
	args := m.Called(ctx, tenantID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*okr.Initiative), args.Error(1)
}

func (m *MockInitiativeRepository) SearchByTitle(ctx context.Context, tenantID uuid.UUID, term string, limit int) ([]*okr.Initiative, error) {
	args := m.Called(ctx, tenantID, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*okr.Initiative), args.Error(1)
}

func (m *MockInitiativeRepository) StatsForTenant(ctx context.Context, tenantID uuid.UUID) (*okr.InitiativeStats, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*okr.InitiativeStats), args.Error(1)
}

func (m *MockInitiativeRepository) StatsForArea(ctx context.Context, tenantID, areaID uuid.UUID) (*okr.InitiativeStats, error) {
	args := m.Called(ctx, tenantID, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*okr.InitiativeStats), args.Error(1)
}

func (m *MockInitiativeRepository) CountByArea(ctx context.Context, tenantID, areaID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, areaID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInitiativeRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInitiativeRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockActivityRepository struct {
	mock.Mock
}

var _ okr.ActivityRepository = (*MockActivityRepository)(nil)

func (m *MockActivityRepository) Save(ctx context.Context, activity *okr.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*okr.Activity, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*okr.Activity), args.Error(1)
}

func (m *MockActivityRepository) FindByInitiative(ctx context.Context, tenantID, initiativeID uuid.UUID, filter shared.Filter) ([]*okr.Activity, int64, error) {
	args := m.Called(ctx, tenantID, initiativeID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*okr.Activity), args.Get(1).(int64), args.Error(2)
}

func (m *MockActivityRepository) FindByAssignee(ctx context.Context, tenantID, assigneeID uuid.UUID) ([]*okr.Activity, error) {
	args := m.Called(ctx, tenantID, assigneeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*okr.Activity), args.Error(1)
}

func (m *MockActivityRepository) CountByInitiative(ctx context.Context, tenantID, initiativeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, initiativeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActivityRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockProgressEntryRepository struct {
	mock.Mock
}

var _ okr.ProgressEntryRepository = (*MockProgressEntryRepository)(nil)

func (m *MockProgressEntryRepository) Save(ctx context.Context, entry *okr.ProgressEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockProgressEntryRepository) FindByInitiative(ctx context.Context, tenantID, initiativeID uuid.UUID, filter shared.Filter) ([]*okr.ProgressEntry, int64, error) {
	args := m.Called(ctx, tenantID, initiativeID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*okr.ProgressEntry), args.Get(1).(int64), args.Error(2)
}

type MockTenantRepository struct {
	mock.Mock
}

var _ identity.TenantRepository = (*MockTenantRepository)(nil)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByStatus(ctx context.Context, status identity.TenantStatus, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindTrialExpiring(ctx context.Context, withinDays int) ([]identity.Tenant, error) {
	args := m.Called(ctx, withinDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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
