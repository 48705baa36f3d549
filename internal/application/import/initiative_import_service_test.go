package importapp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	csvimport "github.com/stratix/backend/internal/infrastructure/import"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockInitiativeRepository is a mock implementation of okr.InitiativeRepository
type MockInitiativeRepository struct {
	mock.Mock
}

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

// MockAreaRepository is a mock implementation of okr.AreaRepository
type MockAreaRepository struct {
	mock.Mock
}

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

// MockUserProfileRepository is a mock implementation of identity.UserProfileRepository
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

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// Test helpers
func newTestTenantID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newTestUserID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func newValidatedSession(tenantID, userID uuid.UUID, entityType csvimport.EntityType) *csvimport.ImportSession {
	session := csvimport.NewImportSession(tenantID, userID, entityType, "import.csv", 1024)
	session.UpdateState(csvimport.StateValidating)
	session.TotalRows = 2
	session.ValidRows = 2
	session.ErrorRows = 0
	session.UpdateState(csvimport.StateValidated)
	return session
}

func newTestRow(lineNum int, data map[string]string) *csvimport.Row {
	return &csvimport.Row{
		LineNumber: lineNum,
		Data:       data,
	}
}

func newTestArea(t *testing.T, tenantID uuid.UUID, name string) *okr.Area {
	t.Helper()
	area, err := okr.NewArea(tenantID, name, "")
	require.NoError(t, err)
	area.ClearDomainEvents()
	return area
}

// Tests for validateInitiativeImportStatus
func TestValidateInitiativeImportStatus(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"empty is valid", "", false},
		{"planning is valid", "planning", false},
		{"in_progress is valid", "in_progress", false},
		{"completed is valid", "completed", false},
		{"on_hold is valid", "on_hold", false},
		{"PLANNING uppercase is valid", "PLANNING", false},
		{"cancelled is invalid", "cancelled", true},
		{"unknown is invalid", "unknown", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInitiativeImportStatus(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Tests for validateImportPriority
func TestValidateImportPriority(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"empty is valid", "", false},
		{"low is valid", "low", false},
		{"medium is valid", "medium", false},
		{"high is valid", "high", false},
		{"critical is valid", "critical", false},
		{"Critical mixed case is valid", "Critical", false},
		{"urgent is invalid", "urgent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateImportPriority(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Tests for normalizePriority
func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected okr.Priority
	}{
		{"low", "low", okr.PriorityLow},
		{"HIGH", "HIGH", okr.PriorityHigh},
		{"critical", "critical", okr.PriorityCritical},
		{"empty defaults to medium", "", okr.PriorityMedium},
		{"unknown defaults to medium", "whatever", okr.PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizePriority(tt.input))
		})
	}
}

func TestParseImportDate(t *testing.T) {
	t.Run("empty returns nil", func(t *testing.T) {
		d, err := parseImportDate("")
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("valid date", func(t *testing.T) {
		d, err := parseImportDate("2026-03-15")
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, 2026, d.Year())
		assert.Equal(t, time.March, d.Month())
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := parseImportDate("15/03/2026")
		assert.Error(t, err)
	})
}

// Tests for GetValidationRules
func TestInitiativeImportService_GetValidationRules(t *testing.T) {
	service := NewInitiativeImportService(new(MockInitiativeRepository), new(MockAreaRepository), new(MockUserProfileRepository), nil)

	rules := service.GetValidationRules()

	requiredFields := map[string]bool{
		"title":     false,
		"area_name": false,
	}
	for _, rule := range rules {
		if _, ok := requiredFields[rule.Column]; ok {
			requiredFields[rule.Column] = rule.Required
		}
	}
	for field, required := range requiredFields {
		assert.True(t, required, "field %s should be required", field)
	}

	referenceFields := map[string]string{
		"area_name":   "area",
		"owner_email": "user",
	}
	for _, rule := range rules {
		if expectedRef, ok := referenceFields[rule.Column]; ok {
			assert.Equal(t, expectedRef, rule.Reference, "field %s should have reference %s", rule.Column, expectedRef)
		}
	}
}

// Tests for LookupReference
func TestInitiativeImportService_LookupReference(t *testing.T) {
	ctx := context.Background()
	tenantID := newTestTenantID()

	t.Run("empty value returns true", func(t *testing.T) {
		service := NewInitiativeImportService(new(MockInitiativeRepository), new(MockAreaRepository), new(MockUserProfileRepository), nil)

		exists, err := service.LookupReference(ctx, tenantID, "area", "")
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("existing area returns true", func(t *testing.T) {
		areaRepo := new(MockAreaRepository)
		service := NewInitiativeImportService(new(MockInitiativeRepository), areaRepo, new(MockUserProfileRepository), nil)

		areaRepo.On("ExistsByName", ctx, tenantID, "Engineering").Return(true, nil)

		exists, err := service.LookupReference(ctx, tenantID, "area", "Engineering")
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("user lookup lowercases email", func(t *testing.T) {
		profileRepo := new(MockUserProfileRepository)
		service := NewInitiativeImportService(new(MockInitiativeRepository), new(MockAreaRepository), profileRepo, nil)

		profileRepo.On("ExistsByEmail", ctx, tenantID, "owner@acme.test").Return(true, nil)

		exists, err := service.LookupReference(ctx, tenantID, "user", "Owner@Acme.Test")
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("non-existing area returns false", func(t *testing.T) {
		areaRepo := new(MockAreaRepository)
		service := NewInitiativeImportService(new(MockInitiativeRepository), areaRepo, new(MockUserProfileRepository), nil)

		areaRepo.On("ExistsByName", ctx, tenantID, "Nonexistent").Return(false, nil)

		exists, err := service.LookupReference(ctx, tenantID, "area", "Nonexistent")
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("unknown reference type returns true", func(t *testing.T) {
		service := NewInitiativeImportService(new(MockInitiativeRepository), new(MockAreaRepository), new(MockUserProfileRepository), nil)

		exists, err := service.LookupReference(ctx, tenantID, "department", "D01")
		assert.NoError(t, err)
		assert.True(t, exists)
	})
}

// Tests for Import
func TestInitiativeImportService_Import(t *testing.T) {
	ctx := context.Background()
	tenantID := newTestTenantID()
	userID := newTestUserID()

	t.Run("invalid session state returns error", func(t *testing.T) {
		service := NewInitiativeImportService(new(MockInitiativeRepository), new(MockAreaRepository), new(MockUserProfileRepository), nil)

		session := csvimport.NewImportSession(tenantID, userID, csvimport.EntityInitiatives, "initiatives.csv", 1024)
		// Session is in "created" state, not "validated"

		_, err := service.Import(ctx, tenantID, userID, session, nil, ConflictModeSkip)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "validated state")
	})

	t.Run("session with errors returns error", func(t *testing.T) {
		service := NewInitiativeImportService(new(MockInitiativeRepository), new(MockAreaRepository), new(MockUserProfileRepository), nil)

		session := newValidatedSession(tenantID, userID, csvimport.EntityInitiatives)
		session.ErrorRows = 1

		_, err := service.Import(ctx, tenantID, userID, session, nil, ConflictModeSkip)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "validation errors")
	})

	t.Run("cancels import when context is cancelled", func(t *testing.T) {
		service := NewInitiativeImportService(new(MockInitiativeRepository), new(MockAreaRepository), new(MockUserProfileRepository), nil)

		session := newValidatedSession(tenantID, userID, csvimport.EntityInitiatives)
		rows := []*csvimport.Row{
			newTestRow(2, map[string]string{"title": "Launch onboarding", "area_name": "Engineering"}),
		}

		cancelledCtx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := service.Import(cancelledCtx, tenantID, userID, session, rows, ConflictModeSkip)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, csvimport.StateCancelled, session.State)
	})

	t.Run("successful import creates initiatives", func(t *testing.T) {
		initiativeRepo := new(MockInitiativeRepository)
		areaRepo := new(MockAreaRepository)
		profileRepo := new(MockUserProfileRepository)
		eventBus := new(MockEventPublisher)
		service := NewInitiativeImportService(initiativeRepo, areaRepo, profileRepo, eventBus)

		session := newValidatedSession(tenantID, userID, csvimport.EntityInitiatives)
		area := newTestArea(t, tenantID, "Engineering")

		rows := []*csvimport.Row{
			newTestRow(2, map[string]string{
				"title":       "Launch onboarding",
				"description": "Rework the signup flow",
				"area_name":   "Engineering",
				"priority":    "high",
				"budget":      "15000",
				"start_date":  "2026-01-01",
				"target_date": "2026-06-30",
			}),
		}

		areaRepo.On("FindByName", mock.Anything, tenantID, "Engineering").Return(area, nil)
		initiativeRepo.On("SearchByTitle", mock.Anything, tenantID, "Launch onboarding", 10).Return([]*okr.Initiative{}, nil)
		initiativeRepo.On("Save", mock.Anything, mock.AnythingOfType("*okr.Initiative")).Return(nil)
		eventBus.On("Publish", mock.Anything, mock.Anything).Return(nil)

		result, err := service.Import(ctx, tenantID, userID, session, rows, ConflictModeSkip)

		require.NoError(t, err)
		assert.Equal(t, 1, result.TotalRows)
		assert.Equal(t, 1, result.ImportedRows)
		assert.Equal(t, 0, result.ErrorRows)
		assert.Equal(t, csvimport.StateCompleted, session.State)
	})

	t.Run("row with progress saves a history entry", func(t *testing.T) {
		initiativeRepo := new(MockInitiativeRepository)
		areaRepo := new(MockAreaRepository)
		eventBus := new(MockEventPublisher)
		service := NewInitiativeImportService(initiativeRepo, areaRepo, new(MockUserProfileRepository), eventBus)

		session := newValidatedSession(tenantID, userID, csvimport.EntityInitiatives)
		area := newTestArea(t, tenantID, "Sales")

		rows := []*csvimport.Row{
			newTestRow(2, map[string]string{
				"title":     "Expand into EMEA",
				"area_name": "Sales",
				"progress":  "40",
			}),
		}

		var saved *okr.Initiative
		areaRepo.On("FindByName", mock.Anything, tenantID, "Sales").Return(area, nil)
		initiativeRepo.On("SearchByTitle", mock.Anything, tenantID, "Expand into EMEA", 10).Return([]*okr.Initiative{}, nil)
		initiativeRepo.On("SaveWithProgress", mock.Anything, mock.AnythingOfType("*okr.Initiative"), mock.AnythingOfType("*okr.ProgressEntry")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*okr.Initiative)
			}).Return(nil)
		eventBus.On("Publish", mock.Anything, mock.Anything).Return(nil)

		result, err := service.Import(ctx, tenantID, userID, session, rows, ConflictModeSkip)

		require.NoError(t, err)
		assert.Equal(t, 1, result.ImportedRows)
		require.NotNil(t, saved)
		assert.Equal(t, 40, saved.Progress)
		// Progress moves a planning initiative forward
		assert.Equal(t, okr.InitiativeStatusInProgress, saved.Status)
	})

	t.Run("unknown area reports reference error", func(t *testing.T) {
		initiativeRepo := new(MockInitiativeRepository)
		areaRepo := new(MockAreaRepository)
		service := NewInitiativeImportService(initiativeRepo, areaRepo, new(MockUserProfileRepository), nil)

		session := newValidatedSession(tenantID, userID, csvimport.EntityInitiatives)

		rows := []*csvimport.Row{
			newTestRow(2, map[string]string{"title": "Orphan", "area_name": "Ghost"}),
		}

		areaRepo.On("FindByName", mock.Anything, tenantID, "Ghost").Return(nil, shared.ErrNotFound)

		result, err := service.Import(ctx, tenantID, userID, session, rows, ConflictModeSkip)

		require.NoError(t, err)
		assert.Equal(t, 1, result.ErrorRows)
		assert.Len(t, result.Errors, 1)
		assert.Equal(t, "area_name", result.Errors[0].Column)
		assert.Equal(t, csvimport.StateFailed, session.State)
	})

	t.Run("skip mode skips existing initiatives", func(t *testing.T) {
		initiativeRepo := new(MockInitiativeRepository)
		areaRepo := new(MockAreaRepository)
		service := NewInitiativeImportService(initiativeRepo, areaRepo, new(MockUserProfileRepository), nil)

		session := newValidatedSession(tenantID, userID, csvimport.EntityInitiatives)
		area := newTestArea(t, tenantID, "Engineering")

		rows := []*csvimport.Row{
			newTestRow(2, map[string]string{"title": "Launch onboarding", "area_name": "Engineering"}),
		}

		existing, _ := okr.NewInitiative(tenantID, area.ID, "Launch Onboarding", "", okr.PriorityMedium)
		areaRepo.On("FindByName", mock.Anything, tenantID, "Engineering").Return(area, nil)
		initiativeRepo.On("SearchByTitle", mock.Anything, tenantID, "Launch onboarding", 10).Return([]*okr.Initiative{existing}, nil)

		result, err := service.Import(ctx, tenantID, userID, session, rows, ConflictModeSkip)

		require.NoError(t, err)
		assert.Equal(t, 0, result.ImportedRows)
		assert.Equal(t, 1, result.SkippedRows)
	})

	t.Run("fail mode reports error on existing initiatives", func(t *testing.T) {
		initiativeRepo := new(MockInitiativeRepository)
		areaRepo := new(MockAreaRepository)
		service := NewInitiativeImportService(initiativeRepo, areaRepo, new(MockUserProfileRepository), nil)

		session := newValidatedSession(tenantID, userID, csvimport.EntityInitiatives)
		area := newTestArea(t, tenantID, "Engineering")

		rows := []*csvimport.Row{
			newTestRow(2, map[string]string{"title": "Launch onboarding", "area_name": "Engineering"}),
		}

		existing, _ := okr.NewInitiative(tenantID, area.ID, "Launch onboarding", "", okr.PriorityMedium)
		areaRepo.On("FindByName", mock.Anything, tenantID, "Engineering").Return(area, nil)
		initiativeRepo.On("SearchByTitle", mock.Anything, tenantID, "Launch onboarding", 10).Return([]*okr.Initiative{existing}, nil)

		result, err := service.Import(ctx, tenantID, userID, session, rows, ConflictModeFail)

		require.NoError(t, err)
		assert.Equal(t, 1, result.ErrorRows)
		assert.Contains(t, result.Errors[0].Message, "already exists")
	})

	t.Run("update mode updates existing initiatives", func(t *testing.T) {
		initiativeRepo := new(MockInitiativeRepository)
		areaRepo := new(MockAreaRepository)
		eventBus := new(MockEventPublisher)
		service := NewInitiativeImportService(initiativeRepo, areaRepo, new(MockUserProfileRepository), eventBus)

		session := newValidatedSession(tenantID, userID, csvimport.EntityInitiatives)
		area := newTestArea(t, tenantID, "Engineering")

		rows := []*csvimport.Row{
			newTestRow(2, map[string]string{
				"title":     "Launch onboarding",
				"area_name": "Engineering",
				"priority":  "critical",
				"budget":    "20000",
			}),
		}

		existing, _ := okr.NewInitiative(tenantID, area.ID, "Launch onboarding", "Old description", okr.PriorityMedium)
		existing.ClearDomainEvents()

		areaRepo.On("FindByName", mock.Anything, tenantID, "Engineering").Return(area, nil)
		initiativeRepo.On("SearchByTitle", mock.Anything, tenantID, "Launch onboarding", 10).Return([]*okr.Initiative{existing}, nil)
		initiativeRepo.On("Save", mock.Anything, existing).Return(nil)
		eventBus.On("Publish", mock.Anything, mock.Anything).Return(nil)

		result, err := service.Import(ctx, tenantID, userID, session, rows, ConflictModeUpdate)

		require.NoError(t, err)
		assert.Equal(t, 1, result.UpdatedRows)
		assert.Equal(t, okr.PriorityCritical, existing.Priority)
		// Empty description keeps the existing one
		assert.Equal(t, "Old description", existing.Description)
		assert.True(t, decimal.NewFromInt(20000).Equal(existing.Budget))
	})

	t.Run("repository error aborts the import", func(t *testing.T) {
		initiativeRepo := new(MockInitiativeRepository)
		areaRepo := new(MockAreaRepository)
		service := NewInitiativeImportService(initiativeRepo, areaRepo, new(MockUserProfileRepository), nil)

		session := newValidatedSession(tenantID, userID, csvimport.EntityInitiatives)

		rows := []*csvimport.Row{
			newTestRow(2, map[string]string{"title": "Launch onboarding", "area_name": "Engineering"}),
		}

		areaRepo.On("FindByName", mock.Anything, tenantID, "Engineering").Return(nil, errors.New("db down"))

		_, err := service.Import(ctx, tenantID, userID, session, rows, ConflictModeSkip)

		assert.Error(t, err)
		assert.Equal(t, csvimport.StateFailed, session.State)
	})

	t.Run("completed status walks through in_progress", func(t *testing.T) {
		initiativeRepo := new(MockInitiativeRepository)
		areaRepo := new(MockAreaRepository)
		eventBus := new(MockEventPublisher)
		service := NewInitiativeImportService(initiativeRepo, areaRepo, new(MockUserProfileRepository), eventBus)

		session := newValidatedSession(tenantID, userID, csvimport.EntityInitiatives)
		area := newTestArea(t, tenantID, "Engineering")

		rows := []*csvimport.Row{
			newTestRow(2, map[string]string{
				"title":     "Ship v2",
				"area_name": "Engineering",
				"status":    "completed",
			}),
		}

		var saved *okr.Initiative
		areaRepo.On("FindByName", mock.Anything, tenantID, "Engineering").Return(area, nil)
		initiativeRepo.On("SearchByTitle", mock.Anything, tenantID, "Ship v2", 10).Return([]*okr.Initiative{}, nil)
		initiativeRepo.On("Save", mock.Anything, mock.AnythingOfType("*okr.Initiative")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*okr.Initiative)
			}).Return(nil)
		eventBus.On("Publish", mock.Anything, mock.Anything).Return(nil)

		result, err := service.Import(ctx, tenantID, userID, session, rows, ConflictModeSkip)

		require.NoError(t, err)
		assert.Equal(t, 1, result.ImportedRows)
		require.NotNil(t, saved)
		assert.Equal(t, okr.InitiativeStatusCompleted, saved.Status)
		// Completion forces progress to 100
		assert.Equal(t, 100, saved.Progress)
	})
}
