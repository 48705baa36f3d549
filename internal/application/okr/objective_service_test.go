package okr

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newObjectiveTestService(
	objectiveRepo *MockObjectiveRepository,
	areaRepo *MockAreaRepository,
	initiativeRepo *MockInitiativeRepository,
) *ObjectiveService {
	return NewObjectiveService(objectiveRepo, areaRepo, initiativeRepo, zap.NewNop())
}

func createTestObjective(t *testing.T, tenantID, areaID uuid.UUID, title string) *okr.Objective {
	t.Helper()
	objective, err := okr.NewObjective(tenantID, areaID, title, "", okr.PriorityMedium)
	require.NoError(t, err)
	objective.ClearDomainEvents()
	return objective
}

func createTestInitiative(t *testing.T, tenantID, areaID uuid.UUID, title string) *okr.Initiative {
	t.Helper()
	initiative, err := okr.NewInitiative(tenantID, areaID, title, "", okr.PriorityMedium)
	require.NoError(t, err)
	initiative.ClearDomainEvents()
	return initiative
}

func TestObjectiveService_Create_Success(t *testing.T) {
	objectiveRepo := new(MockObjectiveRepository)
	areaRepo := new(MockAreaRepository)
	initiativeRepo := new(MockInitiativeRepository)
	service := newObjectiveTestService(objectiveRepo, areaRepo, initiativeRepo)

	ctx := context.Background()
	tenantID := uuid.New()
	area := createTestArea(t, tenantID, "Engineering")

	areaRepo.On("FindByID", ctx, tenantID, area.ID).Return(area, nil)
	objectiveRepo.On("Save", ctx, mock.AnythingOfType("*okr.Objective")).Return(nil)

	result, err := service.CreateObjective(ctx, tenantID, CreateObjectiveRequest{
		AreaID:   area.ID,
		Title:    "Ship the new platform",
		Priority: "high",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "Ship the new platform", result.Title)
	assert.Equal(t, okr.PriorityHigh, result.Priority)
	assert.Equal(t, okr.ObjectiveStatusDraft, result.Status)
	objectiveRepo.AssertExpectations(t)
}

func TestObjectiveService_Create_ArchivedAreaRejected(t *testing.T) {
	objectiveRepo := new(MockObjectiveRepository)
	areaRepo := new(MockAreaRepository)
	initiativeRepo := new(MockInitiativeRepository)
	service := newObjectiveTestService(objectiveRepo, areaRepo, initiativeRepo)

	ctx := context.Background()
	tenantID := uuid.New()
	area := createTestArea(t, tenantID, "Engineering")
	require.NoError(t, area.Archive())

	areaRepo.On("FindByID", ctx, tenantID, area.ID).Return(area, nil)

	result, err := service.CreateObjective(ctx, tenantID, CreateObjectiveRequest{
		AreaID:   area.ID,
		Title:    "Ship the new platform",
		Priority: "high",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "AREA_ARCHIVED", domainErr.Code)
}

func TestObjectiveService_Update(t *testing.T) {
	objectiveRepo := new(MockObjectiveRepository)
	areaRepo := new(MockAreaRepository)
	initiativeRepo := new(MockInitiativeRepository)
	service := newObjectiveTestService(objectiveRepo, areaRepo, initiativeRepo)

	ctx := context.Background()
	tenantID := uuid.New()
	objective := createTestObjective(t, tenantID, uuid.New(), "Ship v1")

	objectiveRepo.On("FindByID", ctx, tenantID, objective.ID).Return(objective, nil)
	objectiveRepo.On("Save", ctx, objective).Return(nil)

	title := "Ship v2"
	priority := "critical"
	result, err := service.UpdateObjective(ctx, tenantID, objective.ID, UpdateObjectiveRequest{
		Title:    &title,
		Priority: &priority,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Ship v2", result.Title)
	assert.Equal(t, okr.PriorityCritical, result.Priority)
}

func TestObjectiveService_ChangeStatus(t *testing.T) {
	objectiveRepo := new(MockObjectiveRepository)
	areaRepo := new(MockAreaRepository)
	initiativeRepo := new(MockInitiativeRepository)
	service := newObjectiveTestService(objectiveRepo, areaRepo, initiativeRepo)

	ctx := context.Background()
	tenantID := uuid.New()
	objective := createTestObjective(t, tenantID, uuid.New(), "Ship v1")

	objectiveRepo.On("FindByID", ctx, tenantID, objective.ID).Return(objective, nil)
	objectiveRepo.On("Save", ctx, objective).Return(nil)

	result, err := service.ChangeObjectiveStatus(ctx, tenantID, objective.ID, ChangeObjectiveStatusRequest{Status: "active"})

	assert.NoError(t, err)
	assert.Equal(t, okr.ObjectiveStatusActive, result.Status)
}

func TestObjectiveService_Delete_BlockedByLinkedInitiatives(t *testing.T) {
	objectiveRepo := new(MockObjectiveRepository)
	areaRepo := new(MockAreaRepository)
	initiativeRepo := new(MockInitiativeRepository)
	service := newObjectiveTestService(objectiveRepo, areaRepo, initiativeRepo)

	ctx := context.Background()
	tenantID := uuid.New()
	areaID := uuid.New()
	objective := createTestObjective(t, tenantID, areaID, "Ship v1")
	linked := createTestInitiative(t, tenantID, areaID, "Build the pipeline")

	objectiveRepo.On("FindByID", ctx, tenantID, objective.ID).Return(objective, nil)
	initiativeRepo.On("FindByObjective", ctx, tenantID, objective.ID).
		Return([]*okr.Initiative{linked}, nil)

	err := service.DeleteObjective(ctx, tenantID, objective.ID)

	assert.Error(t, err)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "OBJECTIVE_HAS_INITIATIVES", domainErr.Code)
	objectiveRepo.AssertNotCalled(t, "Delete", ctx, tenantID, objective.ID)
}

func TestObjectiveService_RecalculateProgress_AveragesCountingInitiatives(t *testing.T) {
	objectiveRepo := new(MockObjectiveRepository)
	areaRepo := new(MockAreaRepository)
	initiativeRepo := new(MockInitiativeRepository)
	service := newObjectiveTestService(objectiveRepo, areaRepo, initiativeRepo)

	ctx := context.Background()
	tenantID := uuid.New()
	areaID := uuid.New()
	objective := createTestObjective(t, tenantID, areaID, "Ship v1")

	first := createTestInitiative(t, tenantID, areaID, "First")
	_, err := first.UpdateProgress(40, "", uuid.New())
	require.NoError(t, err)

	second := createTestInitiative(t, tenantID, areaID, "Second")
	_, err = second.UpdateProgress(80, "", uuid.New())
	require.NoError(t, err)

	cancelled := createTestInitiative(t, tenantID, areaID, "Cancelled")
	_, err = cancelled.UpdateProgress(100, "", uuid.New())
	require.NoError(t, err)
	require.NoError(t, cancelled.Cancel())

	objectiveRepo.On("FindByID", ctx, tenantID, objective.ID).Return(objective, nil)
	initiativeRepo.On("FindByObjective", ctx, tenantID, objective.ID).
		Return([]*okr.Initiative{first, second, cancelled}, nil)
	objectiveRepo.On("Save", ctx, objective).Return(nil)

	result, err := service.RecalculateObjectiveProgress(ctx, tenantID, objective.ID)

	assert.NoError(t, err)
	assert.Equal(t, 60, result.Progress)
}

func TestObjectiveService_RecalculateProgress_NoInitiativesIsZero(t *testing.T) {
	objectiveRepo := new(MockObjectiveRepository)
	areaRepo := new(MockAreaRepository)
	initiativeRepo := new(MockInitiativeRepository)
	service := newObjectiveTestService(objectiveRepo, areaRepo, initiativeRepo)

	ctx := context.Background()
	tenantID := uuid.New()
	objective := createTestObjective(t, tenantID, uuid.New(), "Ship v1")
	objective.RecalculateProgress(55)

	objectiveRepo.On("FindByID", ctx, tenantID, objective.ID).Return(objective, nil)
	initiativeRepo.On("FindByObjective", ctx, tenantID, objective.ID).
		Return([]*okr.Initiative{}, nil)
	objectiveRepo.On("Save", ctx, objective).Return(nil)

	result, err := service.RecalculateObjectiveProgress(ctx, tenantID, objective.ID)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Progress)
}
