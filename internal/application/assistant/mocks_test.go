package assistant

import (
	"context"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

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

type MockUserProfileRepository struct {
	mock.Mock
}

var _ identity.UserProfileRepository = (*MockUserProfileRepository)(nil)

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
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*identity.UserProfile), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserProfileRepository) FindByArea(ctx context.Context, tenantID, areaID uuid.UUID) ([]*identity.UserProfile, error) {
	args := m.Called(ctx, tenantID, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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
