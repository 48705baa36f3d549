package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubInvitationRepo serves a fixed batch of expired invitations
type stubInvitationRepo struct {
	identity.InvitationRepository
	expired []*identity.Invitation
	saved   []*identity.Invitation
}

func (s *stubInvitationRepo) FindExpired(ctx context.Context, before time.Time, limit int) ([]*identity.Invitation, error) {
	return s.expired, nil
}

func (s *stubInvitationRepo) Save(ctx context.Context, invitation *identity.Invitation) error {
	s.saved = append(s.saved, invitation)
	return nil
}

// stubTenantRepo serves tenants with expiring trials
type stubTenantRepo struct {
	identity.TenantRepository
	expiring []identity.Tenant
	saved    []*identity.Tenant
}

func (s *stubTenantRepo) FindTrialExpiring(ctx context.Context, withinDays int) ([]identity.Tenant, error) {
	return s.expiring, nil
}

func (s *stubTenantRepo) Save(ctx context.Context, tenant *identity.Tenant) error {
	s.saved = append(s.saved, tenant)
	return nil
}

// stubObjectiveRepo serves one page of objectives
type stubObjectiveRepo struct {
	okr.ObjectiveRepository
	objectives []*okr.Objective
	saved      []*okr.Objective
}

func (s *stubObjectiveRepo) FindAll(ctx context.Context, tenantID uuid.UUID, filter okr.ObjectiveFilter) ([]*okr.Objective, int64, error) {
	if filter.Page > 1 {
		return nil, int64(len(s.objectives)), nil
	}
	return s.objectives, int64(len(s.objectives)), nil
}

func (s *stubObjectiveRepo) Save(ctx context.Context, objective *okr.Objective) error {
	s.saved = append(s.saved, objective)
	return nil
}

// stubInitiativeRepo maps objective IDs to initiatives
type stubInitiativeRepo struct {
	okr.InitiativeRepository
	byObjective map[uuid.UUID][]*okr.Initiative
}

func (s *stubInitiativeRepo) FindByObjective(ctx context.Context, tenantID, objectiveID uuid.UUID) ([]*okr.Initiative, error) {
	return s.byObjective[objectiveID], nil
}

func newExpiredInvitation(t *testing.T) *identity.Invitation {
	t.Helper()
	invitation, err := identity.NewInvitation(uuid.New(), uuid.New(), "pending@example.com", identity.RoleAdmin, nil)
	require.NoError(t, err)
	invitation.ExpiresAt = time.Now().Add(-time.Hour)
	return invitation
}

func newInitiativeWithProgress(t *testing.T, tenantID, areaID, objectiveID uuid.UUID, progress int) *okr.Initiative {
	t.Helper()
	initiative, err := okr.NewInitiative(tenantID, areaID, "Improve signup conversion", "", okr.PriorityMedium)
	require.NoError(t, err)
	initiative.ObjectiveID = &objectiveID
	if progress > 0 {
		_, err = initiative.UpdateProgress(progress, "", uuid.New())
		require.NoError(t, err)
	}
	return initiative
}

func TestMaintenanceExecutor_SweepInvitations(t *testing.T) {
	invitations := &stubInvitationRepo{
		expired: []*identity.Invitation{newExpiredInvitation(t), newExpiredInvitation(t)},
	}
	executor := NewMaintenanceExecutor(invitations, &stubTenantRepo{}, &stubObjectiveRepo{}, &stubInitiativeRepo{}, zap.NewNop())

	err := executor.Execute(context.Background(), NewJob(nil, MaintenanceInvitationSweep, 0))

	require.NoError(t, err)
	require.Len(t, invitations.saved, 2)
	for _, invitation := range invitations.saved {
		assert.Equal(t, identity.InvitationStatusExpired, invitation.Status)
	}
}

func TestMaintenanceExecutor_ExpireTrials(t *testing.T) {
	expired, err := identity.NewTenant("acme", "Acme Inc")
	require.NoError(t, err)
	past := time.Now().Add(-24 * time.Hour)
	expired.TrialEndsAt = &past

	stillRunning, err := identity.NewTenant("globex", "Globex")
	require.NoError(t, err)

	tenants := &stubTenantRepo{expiring: []identity.Tenant{*expired, *stillRunning}}
	executor := NewMaintenanceExecutor(&stubInvitationRepo{}, tenants, &stubObjectiveRepo{}, &stubInitiativeRepo{}, zap.NewNop())

	err = executor.Execute(context.Background(), NewJob(nil, MaintenanceTrialExpiry, 0))

	require.NoError(t, err)
	require.Len(t, tenants.saved, 1)
	assert.Equal(t, "acme", tenants.saved[0].Slug)
	assert.Equal(t, identity.TenantStatusSuspended, tenants.saved[0].Status)
}

func TestMaintenanceExecutor_ReconcileProgress(t *testing.T) {
	tenantID := uuid.New()
	areaID := uuid.New()

	objective, err := okr.NewObjective(tenantID, areaID, "Grow self-serve revenue", "", okr.PriorityHigh)
	require.NoError(t, err)
	objective.ClearDomainEvents()

	initiatives := &stubInitiativeRepo{
		byObjective: map[uuid.UUID][]*okr.Initiative{
			objective.ID: {
				newInitiativeWithProgress(t, tenantID, areaID, objective.ID, 40),
				newInitiativeWithProgress(t, tenantID, areaID, objective.ID, 60),
			},
		},
	}
	objectives := &stubObjectiveRepo{objectives: []*okr.Objective{objective}}
	executor := NewMaintenanceExecutor(&stubInvitationRepo{}, &stubTenantRepo{}, objectives, initiatives, zap.NewNop())

	err = executor.Execute(context.Background(), NewJob(&tenantID, MaintenanceProgressReconcile, 0))

	require.NoError(t, err)
	require.Len(t, objectives.saved, 1)
	assert.Equal(t, 50, objectives.saved[0].Progress)
}

func TestMaintenanceExecutor_ReconcileProgress_SkipsCancelled(t *testing.T) {
	tenantID := uuid.New()
	areaID := uuid.New()

	objective, err := okr.NewObjective(tenantID, areaID, "Reduce churn", "", okr.PriorityHigh)
	require.NoError(t, err)

	counting := newInitiativeWithProgress(t, tenantID, areaID, objective.ID, 80)
	cancelled := newInitiativeWithProgress(t, tenantID, areaID, objective.ID, 20)
	require.NoError(t, cancelled.Cancel())

	initiatives := &stubInitiativeRepo{
		byObjective: map[uuid.UUID][]*okr.Initiative{
			objective.ID: {counting, cancelled},
		},
	}
	objectives := &stubObjectiveRepo{objectives: []*okr.Objective{objective}}
	executor := NewMaintenanceExecutor(&stubInvitationRepo{}, &stubTenantRepo{}, objectives, initiatives, zap.NewNop())

	err = executor.Execute(context.Background(), NewJob(&tenantID, MaintenanceProgressReconcile, 0))

	require.NoError(t, err)
	require.Len(t, objectives.saved, 1)
	assert.Equal(t, 80, objectives.saved[0].Progress)
}

func TestMaintenanceExecutor_ReconcileProgress_NoChangeNoSave(t *testing.T) {
	tenantID := uuid.New()
	areaID := uuid.New()

	objective, err := okr.NewObjective(tenantID, areaID, "Ship mobile app", "", okr.PriorityMedium)
	require.NoError(t, err)

	// No initiatives linked: the rollup must not touch the objective
	initiatives := &stubInitiativeRepo{byObjective: map[uuid.UUID][]*okr.Initiative{}}
	objectives := &stubObjectiveRepo{objectives: []*okr.Objective{objective}}
	executor := NewMaintenanceExecutor(&stubInvitationRepo{}, &stubTenantRepo{}, objectives, initiatives, zap.NewNop())

	err = executor.Execute(context.Background(), NewJob(&tenantID, MaintenanceProgressReconcile, 0))

	require.NoError(t, err)
	assert.Empty(t, objectives.saved)
}

func TestMaintenanceExecutor_ReconcileRequiresTenant(t *testing.T) {
	executor := NewMaintenanceExecutor(&stubInvitationRepo{}, &stubTenantRepo{}, &stubObjectiveRepo{}, &stubInitiativeRepo{}, zap.NewNop())

	err := executor.Execute(context.Background(), NewJob(nil, MaintenanceProgressReconcile, 0))

	assert.ErrorIs(t, err, ErrTenantRequired)
}

func TestMaintenanceExecutor_UnknownType(t *testing.T) {
	executor := NewMaintenanceExecutor(&stubInvitationRepo{}, &stubTenantRepo{}, &stubObjectiveRepo{}, &stubInitiativeRepo{}, zap.NewNop())

	err := executor.Execute(context.Background(), NewJob(nil, MaintenanceType("BOGUS"), 0))

	assert.ErrorIs(t, err, ErrUnknownMaintenanceType)
}
