package scheduler

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/okr"
	"go.uber.org/zap"
)

const (
	invitationSweepBatchSize = 100
	reconcilePageSize        = 100
)

// MaintenanceExecutor runs the background maintenance jobs: invitation
// sweeps, trial expiry checks, and objective progress reconciliation
type MaintenanceExecutor struct {
	invitations identity.InvitationRepository
	tenants     identity.TenantRepository
	objectives  okr.ObjectiveRepository
	initiatives okr.InitiativeRepository
	logger      *zap.Logger
}

// NewMaintenanceExecutor creates a new maintenance executor
func NewMaintenanceExecutor(
	invitations identity.InvitationRepository,
	tenants identity.TenantRepository,
	objectives okr.ObjectiveRepository,
	initiatives okr.InitiativeRepository,
	logger *zap.Logger,
) *MaintenanceExecutor {
	return &MaintenanceExecutor{
		invitations: invitations,
		tenants:     tenants,
		objectives:  objectives,
		initiatives: initiatives,
		logger:      logger,
	}
}

// Execute runs the maintenance job
func (e *MaintenanceExecutor) Execute(ctx context.Context, job *Job) error {
	switch job.Type {
	case MaintenanceInvitationSweep:
		return e.sweepInvitations(ctx)
	case MaintenanceTrialExpiry:
		return e.expireTrials(ctx)
	case MaintenanceProgressReconcile:
		if job.TenantID == nil {
			return ErrTenantRequired
		}
		return e.reconcileProgress(ctx, *job.TenantID)
	default:
		return ErrUnknownMaintenanceType
	}
}

// sweepInvitations marks every pending invitation past its expiry as expired
func (e *MaintenanceExecutor) sweepInvitations(ctx context.Context) error {
	now := time.Now()
	var swept int

	for {
		expired, err := e.invitations.FindExpired(ctx, now, invitationSweepBatchSize)
		if err != nil {
			return err
		}
		if len(expired) == 0 {
			break
		}

		for _, invitation := range expired {
			invitation.MarkExpired()
			if err := e.invitations.Save(ctx, invitation); err != nil {
				e.logger.Error("Failed to mark invitation as expired",
					zap.String("invitation_id", invitation.ID.String()),
					zap.Error(err),
				)
				continue
			}
			swept++
		}

		if len(expired) < invitationSweepBatchSize {
			break
		}
	}

	if swept > 0 {
		e.logger.Info("Swept expired invitations", zap.Int("count", swept))
	}
	return nil
}

// expireTrials suspends tenants whose trial period has ended
func (e *MaintenanceExecutor) expireTrials(ctx context.Context) error {
	tenants, err := e.tenants.FindTrialExpiring(ctx, 0)
	if err != nil {
		return err
	}

	var suspended int
	for i := range tenants {
		tenant := &tenants[i]
		if !tenant.IsTrialExpired() {
			continue
		}

		if err := tenant.Suspend(); err != nil {
			e.logger.Warn("Failed to suspend trial-expired tenant",
				zap.String("tenant_id", tenant.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if err := e.tenants.Save(ctx, tenant); err != nil {
			e.logger.Error("Failed to save suspended tenant",
				zap.String("tenant_id", tenant.ID.String()),
				zap.Error(err),
			)
			continue
		}
		suspended++
	}

	if suspended > 0 {
		e.logger.Info("Suspended trial-expired tenants", zap.Int("count", suspended))
	}
	return nil
}

// reconcileProgress recomputes the rolled-up progress of every objective
// in the tenant from its linked initiatives. This is a safety net: the
// rollup normally updates synchronously when initiative progress changes.
func (e *MaintenanceExecutor) reconcileProgress(ctx context.Context, tenantID uuid.UUID) error {
	filter := okr.NewObjectiveFilter()
	filter.PageSize = reconcilePageSize

	var reconciled int
	for page := 1; ; page++ {
		filter.Page = page
		objectives, total, err := e.objectives.FindAll(ctx, tenantID, filter)
		if err != nil {
			return err
		}

		for _, objective := range objectives {
			if objective.IsArchived() {
				continue
			}

			changed, err := e.reconcileObjective(ctx, tenantID, objective)
			if err != nil {
				e.logger.Error("Failed to reconcile objective progress",
					zap.String("tenant_id", tenantID.String()),
					zap.String("objective_id", objective.ID.String()),
					zap.Error(err),
				)
				continue
			}
			if changed {
				reconciled++
			}
		}

		if int64(page*reconcilePageSize) >= total {
			break
		}
	}

	if reconciled > 0 {
		e.logger.Info("Reconciled objective progress",
			zap.String("tenant_id", tenantID.String()),
			zap.Int("updated", reconciled),
		)
	}
	return nil
}

// reconcileObjective recomputes one objective's rollup. Returns true if
// the stored progress changed.
func (e *MaintenanceExecutor) reconcileObjective(ctx context.Context, tenantID uuid.UUID, objective *okr.Objective) (bool, error) {
	initiatives, err := e.initiatives.FindByObjective(ctx, tenantID, objective.ID)
	if err != nil {
		return false, err
	}

	var sum, counted int
	for _, initiative := range initiatives {
		if !initiative.CountsTowardObjective() {
			continue
		}
		sum += initiative.Progress
		counted++
	}

	// Objectives with no counting initiatives keep their progress
	if counted == 0 {
		return false, nil
	}

	rollup := int(math.Round(float64(sum) / float64(counted)))
	before := objective.Progress
	objective.RecalculateProgress(rollup)
	if objective.Progress == before {
		return false, nil
	}

	if err := e.objectives.Save(ctx, objective); err != nil {
		return false, err
	}
	return true, nil
}

// Ensure MaintenanceExecutor implements JobExecutor
var _ JobExecutor = (*MaintenanceExecutor)(nil)
