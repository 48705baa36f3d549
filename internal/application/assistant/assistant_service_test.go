package assistant

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type assistantTestMocks struct {
	initiativeRepo *MockInitiativeRepository
	areaRepo       *MockAreaRepository
	objectiveRepo  *MockObjectiveRepository
	profileRepo    *MockUserProfileRepository
}

func newAssistantTestService() (*AssistantService, *assistantTestMocks) {
	m := &assistantTestMocks{
		initiativeRepo: new(MockInitiativeRepository),
		areaRepo:       new(MockAreaRepository),
		objectiveRepo:  new(MockObjectiveRepository),
		profileRepo:    new(MockUserProfileRepository),
	}
	service := NewAssistantService(m.initiativeRepo, m.areaRepo, m.objectiveRepo, m.profileRepo,
		"https://app.stratix.io", zap.NewNop())
	return service, m
}

func newAssistantInitiative(t *testing.T, tenantID, areaID uuid.UUID, title string, progress int) *okr.Initiative {
	t.Helper()
	initiative, err := okr.NewInitiative(tenantID, areaID, title, "", okr.PriorityMedium)
	require.NoError(t, err)
	if progress > 0 {
		_, err = initiative.UpdateProgress(progress, "", uuid.New())
		require.NoError(t, err)
	}
	initiative.ClearDomainEvents()
	return initiative
}

func TestResolveAction(t *testing.T) {
	cases := []struct {
		name   string
		params map[string]interface{}
		action string
	}{
		{"initiative by name", map[string]interface{}{"initiative_name": "pipeline"}, ActionInitiativeStatus},
		{"initiative by id", map[string]interface{}{"initiative_id": uuid.New().String()}, ActionInitiativeStatus},
		{"area by name", map[string]interface{}{"area_name": "Engineering"}, ActionAreaKPIs},
		{"user initiatives", map[string]interface{}{"user_email": "one@acme.com"}, ActionUserInitiatives},
		{"search", map[string]interface{}{"query": "pipeline"}, ActionSearchInitiatives},
		{"overview", map[string]interface{}{"action": "company_overview"}, ActionCompanyOverview},
		{"suggestions", map[string]interface{}{"action": "suggestions"}, ActionInitiativeSuggestions},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			action, _, err := ResolveAction(tc.params)
			assert.NoError(t, err)
			assert.Equal(t, tc.action, action)
		})
	}

	t.Run("no match", func(t *testing.T) {
		_, _, err := ResolveAction(map[string]interface{}{"unrelated": true})
		assert.Error(t, err)
	})
}

func TestAssistantService_InitiativeStatus_ByName(t *testing.T) {
	service, m := newAssistantTestService()

	ctx := context.Background()
	tenantID := uuid.New()
	area, err := okr.NewArea(tenantID, "Engineering", "")
	require.NoError(t, err)
	initiative := newAssistantInitiative(t, tenantID, area.ID, "Data pipeline", 70)

	m.initiativeRepo.On("SearchByTitle", ctx, tenantID, "Data pipeline", 1).
		Return([]*okr.Initiative{initiative}, nil)
	m.areaRepo.On("FindByID", ctx, tenantID, area.ID).Return(area, nil)

	result, err := service.Execute(ctx, tenantID, ActionInitiativeStatus,
		map[string]interface{}{"initiative_name": "Data pipeline"})

	assert.NoError(t, err)
	assert.Contains(t, result.Summary, "Data pipeline")
	assert.Contains(t, result.Summary, "70%")
	assert.Contains(t, result.Summary, "Engineering")
	assert.Equal(t, "https://app.stratix.io/initiatives/"+initiative.ID.String(), result.Link)
}

func TestAssistantService_InitiativeStatus_NotFound(t *testing.T) {
	service, m := newAssistantTestService()

	ctx := context.Background()
	tenantID := uuid.New()

	m.initiativeRepo.On("SearchByTitle", ctx, tenantID, "ghost", 1).
		Return([]*okr.Initiative{}, nil)

	result, err := service.Execute(ctx, tenantID, ActionInitiativeStatus,
		map[string]interface{}{"initiative_name": "ghost"})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INITIATIVE_NOT_FOUND", domainErr.Code)
}

func TestAssistantService_AreaKPIs(t *testing.T) {
	service, m := newAssistantTestService()

	ctx := context.Background()
	tenantID := uuid.New()
	area, err := okr.NewArea(tenantID, "Engineering", "")
	require.NoError(t, err)

	m.areaRepo.On("FindByName", ctx, tenantID, "Engineering").Return(area, nil)
	m.initiativeRepo.On("StatsForArea", ctx, tenantID, area.ID).Return(&okr.InitiativeStats{
		Total: 4,
		ByStatus: map[okr.InitiativeStatus]int64{
			okr.InitiativeStatusCompleted: 1,
		},
		AverageProgress: 62.5,
		TotalBudget:     decimal.NewFromInt(1000),
		TotalActualCost: decimal.NewFromInt(500),
	}, nil)
	m.objectiveRepo.On("CountByArea", ctx, tenantID, area.ID).Return(int64(2), nil)

	result, err := service.Execute(ctx, tenantID, ActionAreaKPIs,
		map[string]interface{}{"area_name": "Engineering"})

	assert.NoError(t, err)
	assert.Contains(t, result.Summary, "4 initiatives")
	assert.Contains(t, result.Summary, "62.5%")
	assert.Contains(t, result.Summary, "50.0%")
	assert.Equal(t, "https://app.stratix.io/areas/"+area.ID.String(), result.Link)
}

func TestAssistantService_CompanyOverview(t *testing.T) {
	service, m := newAssistantTestService()

	ctx := context.Background()
	tenantID := uuid.New()
	area, err := okr.NewArea(tenantID, "Engineering", "")
	require.NoError(t, err)

	m.initiativeRepo.On("StatsForTenant", ctx, tenantID).Return(&okr.InitiativeStats{
		Total: 7,
		ByStatus: map[okr.InitiativeStatus]int64{
			okr.InitiativeStatusCompleted: 2,
		},
		AverageProgress: 48.0,
	}, nil)
	m.areaRepo.On("FindActive", ctx, tenantID).Return([]*okr.Area{area}, nil)

	result, err := service.Execute(ctx, tenantID, ActionCompanyOverview, nil)

	assert.NoError(t, err)
	assert.Contains(t, result.Summary, "7 initiatives")
	assert.Contains(t, result.Summary, "1 areas")
	assert.Equal(t, "https://app.stratix.io/dashboard", result.Link)
}

func TestAssistantService_UserInitiatives_ByEmail(t *testing.T) {
	service, m := newAssistantTestService()

	ctx := context.Background()
	tenantID := uuid.New()
	profile, err := identity.NewActiveUserProfile(tenantID, "one@acme.com", "One Person", "Password1", identity.RoleManager)
	require.NoError(t, err)
	initiative := newAssistantInitiative(t, tenantID, uuid.New(), "Data pipeline", 30)

	m.profileRepo.On("FindByEmail", ctx, tenantID, "one@acme.com").Return(profile, nil)
	m.initiativeRepo.On("FindByOwner", ctx, tenantID, profile.ID).
		Return([]*okr.Initiative{initiative}, nil)

	result, err := service.Execute(ctx, tenantID, ActionUserInitiatives,
		map[string]interface{}{"user_email": "one@acme.com"})

	assert.NoError(t, err)
	assert.Contains(t, result.Summary, "One Person")
	assert.Contains(t, result.Summary, "Data pipeline")
}

func TestAssistantService_Suggestions_FlagsStalledInitiatives(t *testing.T) {
	service, m := newAssistantTestService()

	ctx := context.Background()
	tenantID := uuid.New()
	areaID := uuid.New()

	stalled := newAssistantInitiative(t, tenantID, areaID, "Never started", 0)
	healthy := newAssistantInitiative(t, tenantID, areaID, "Cruising along", 50)

	m.initiativeRepo.On("FindAll", ctx, tenantID, mock.AnythingOfType("okr.InitiativeFilter")).
		Return([]*okr.Initiative{stalled, healthy}, int64(2), nil)

	result, err := service.Execute(ctx, tenantID, ActionInitiativeSuggestions, nil)

	assert.NoError(t, err)
	assert.Contains(t, result.Summary, "1 initiatives need attention")
	assert.Contains(t, result.Summary, "Never started")
	suggestions := result.Data["suggestions"].([]map[string]interface{})
	assert.Len(t, suggestions, 1)
	assert.Equal(t, "still in planning with no progress", suggestions[0]["reason"])
}

func TestAssistantService_HandleWebhook_CompanyOverview(t *testing.T) {
	service, m := newAssistantTestService()

	ctx := context.Background()
	tenantID := uuid.New()
	profile, err := identity.NewActiveUserProfile(tenantID, "one@acme.com", "One Person", "Password1", identity.RoleAdmin)
	require.NoError(t, err)

	m.profileRepo.On("FindByEmailGlobal", ctx, "one@acme.com").Return(profile, nil)
	m.initiativeRepo.On("StatsForTenant", ctx, tenantID).Return(&okr.InitiativeStats{Total: 3}, nil)
	m.areaRepo.On("FindActive", ctx, tenantID).Return([]*okr.Area{}, nil)

	resp := service.HandleWebhook(ctx, WebhookRequest{
		FulfillmentInfo: FulfillmentInfo{Tag: "company_overview"},
		SessionInfo: SessionInfo{
			Parameters: map[string]interface{}{"user_email": "one@acme.com"},
		},
	})

	require.Len(t, resp.FulfillmentResponse.Messages, 1)
	require.Len(t, resp.FulfillmentResponse.Messages[0].Text.Text, 1)
	assert.Contains(t, resp.FulfillmentResponse.Messages[0].Text.Text[0], "3 initiatives")
}

func TestAssistantService_HandleWebhook_UnknownUser(t *testing.T) {
	service, m := newAssistantTestService()

	ctx := context.Background()
	m.profileRepo.On("FindByEmailGlobal", ctx, "ghost@acme.com").Return(nil, shared.ErrNotFound)

	resp := service.HandleWebhook(ctx, WebhookRequest{
		FulfillmentInfo: FulfillmentInfo{Tag: "company_overview"},
		SessionInfo: SessionInfo{
			Parameters: map[string]interface{}{"user_email": "ghost@acme.com"},
		},
	})

	require.Len(t, resp.FulfillmentResponse.Messages, 1)
	assert.Contains(t, resp.FulfillmentResponse.Messages[0].Text.Text[0], "could not identify")
}

func TestAssistantService_HandleToolCall_Search(t *testing.T) {
	service, m := newAssistantTestService()

	ctx := context.Background()
	tenantID := uuid.New()
	initiative := newAssistantInitiative(t, tenantID, uuid.New(), "Data pipeline", 40)

	m.initiativeRepo.On("SearchByTitle", ctx, tenantID, "pipeline", 20).
		Return([]*okr.Initiative{initiative}, nil)

	resp, err := service.HandleToolCall(ctx, tenantID, ToolRequest{
		Tool:           "projects/x/tools/stratix",
		ToolParameters: map[string]interface{}{"query": "pipeline"},
	})

	require.NoError(t, err)
	require.Len(t, resp.ToolOutput, 1)
	assert.Equal(t, "projects/x/tools/stratix", resp.ToolOutput[0].Tool)
	result := resp.ToolOutput[0].Output.(*ActionResult)
	assert.Contains(t, result.Summary, "Data pipeline")
}

func TestAssistantService_HandleToolCall_UnknownParamsRejected(t *testing.T) {
	service, _ := newAssistantTestService()

	ctx := context.Background()
	_, err := service.HandleToolCall(ctx, uuid.New(), ToolRequest{
		Tool:           "projects/x/tools/stratix",
		ToolParameters: map[string]interface{}{},
	})

	assert.Error(t, err)
}
