package okr

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InitiativeService handles initiative use cases. Mutations that change
// progress or status recompute the parent objective's rollup in the same
// call.
type InitiativeService struct {
	initiativeRepo okr.InitiativeRepository
	objectiveRepo  okr.ObjectiveRepository
	areaRepo       okr.AreaRepository
	progressRepo   okr.ProgressEntryRepository
	tenantRepo     identity.TenantRepository
	invalidator    DashboardInvalidator
	logger         *zap.Logger
}

// NewInitiativeService creates a new initiative service
func NewInitiativeService(
	initiativeRepo okr.InitiativeRepository,
	objectiveRepo okr.ObjectiveRepository,
	areaRepo okr.AreaRepository,
	progressRepo okr.ProgressEntryRepository,
	tenantRepo identity.TenantRepository,
	logger *zap.Logger,
) *InitiativeService {
	return &InitiativeService{
		initiativeRepo: initiativeRepo,
		objectiveRepo:  objectiveRepo,
		areaRepo:       areaRepo,
		progressRepo:   progressRepo,
		tenantRepo:     tenantRepo,
		logger:         logger,
	}
}

// SetDashboardInvalidator wires cache invalidation for dashboard snapshots
func (s *InitiativeService) SetDashboardInvalidator(invalidator DashboardInvalidator) {
	s.invalidator = invalidator
}

// CreateInitiative creates a new initiative, enforcing the tenant's
// initiative quota. A linked objective must belong to the same area.
func (s *InitiativeService) CreateInitiative(ctx context.Context, tenantID uuid.UUID, req CreateInitiativeRequest) (*InitiativeResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Workspace not found")
	}

	count, err := s.initiativeRepo.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.CanAddInitiative(int(count)) {
		return nil, shared.NewDomainError("INITIATIVE_QUOTA_EXCEEDED", "Initiative limit reached for the current plan")
	}

	area, err := s.areaRepo.FindByID(ctx, tenantID, req.AreaID)
	if err != nil {
		return nil, shared.NewDomainError("AREA_NOT_FOUND", "Area not found")
	}
	if !area.IsActive() {
		return nil, shared.NewDomainError("AREA_ARCHIVED", "Cannot create an initiative in an archived area")
	}

	if req.ObjectiveID != nil {
		if err := s.checkObjectiveArea(ctx, tenantID, *req.ObjectiveID, req.AreaID); err != nil {
			return nil, err
		}
	}

	initiative, err := okr.NewInitiative(tenantID, req.AreaID, req.Title, req.Description, okr.Priority(req.Priority))
	if err != nil {
		return nil, err
	}
	if req.ObjectiveID != nil {
		initiative.LinkObjective(req.ObjectiveID)
	}
	if req.OwnerID != nil {
		initiative.AssignOwner(req.OwnerID)
	}
	if req.StartDate != nil || req.TargetDate != nil {
		if err := initiative.SetDates(req.StartDate, req.TargetDate); err != nil {
			return nil, err
		}
	}
	if req.Budget != nil {
		if err := initiative.SetBudget(*req.Budget); err != nil {
			return nil, err
		}
	}

	if err := s.initiativeRepo.Save(ctx, initiative); err != nil {
		s.logger.Error("failed to save initiative", zap.Error(err), zap.String("tenant_id", tenantID.String()))
		return nil, err
	}

	if initiative.ObjectiveID != nil {
		s.recomputeObjective(ctx, tenantID, *initiative.ObjectiveID)
	}
	s.invalidateDashboard(ctx, tenantID)

	s.logger.Info("initiative created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("initiative_id", initiative.ID.String()),
		zap.String("area_id", req.AreaID.String()))

	resp := ToInitiativeResponse(initiative)
	return &resp, nil
}

// GetInitiative returns a single initiative
func (s *InitiativeService) GetInitiative(ctx context.Context, tenantID, initiativeID uuid.UUID) (*InitiativeResponse, error) {
	initiative, err := s.initiativeRepo.FindByID(ctx, tenantID, initiativeID)
	if err != nil {
		return nil, shared.NewDomainError("INITIATIVE_NOT_FOUND", "Initiative not found")
	}
	resp := ToInitiativeResponse(initiative)
	return &resp, nil
}

// ListInitiatives returns a paginated list of initiatives
func (s *InitiativeService) ListInitiatives(ctx context.Context, tenantID uuid.UUID, filter ListInitiativesFilter) (*InitiativeListResponse, error) {
	f, err := buildInitiativeFilter(filter)
	if err != nil {
		return nil, err
	}

	initiatives, total, err := s.initiativeRepo.FindAll(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}

	responses := make([]InitiativeResponse, 0, len(initiatives))
	for _, initiative := range initiatives {
		responses = append(responses, ToInitiativeResponse(initiative))
	}
	return &InitiativeListResponse{
		Initiatives: responses,
		Total:       total,
		Page:        f.Page,
		PageSize:    f.Limit(),
	}, nil
}

// SearchInitiatives finds initiatives by title, case-insensitively
func (s *InitiativeService) SearchInitiatives(ctx context.Context, tenantID uuid.UUID, term string, limit int) ([]InitiativeResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	initiatives, err := s.initiativeRepo.SearchByTitle(ctx, tenantID, term, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]InitiativeResponse, 0, len(initiatives))
	for _, initiative := range initiatives {
		responses = append(responses, ToInitiativeResponse(initiative))
	}
	return responses, nil
}

// GetInitiativesByOwner returns all initiatives owned by a user
func (s *InitiativeService) GetInitiativesByOwner(ctx context.Context, tenantID, ownerID uuid.UUID) ([]InitiativeResponse, error) {
	initiatives, err := s.initiativeRepo.FindByOwner(ctx, tenantID, ownerID)
	if err != nil {
		return nil, err
	}
	responses := make([]InitiativeResponse, 0, len(initiatives))
	for _, initiative := range initiatives {
		responses = append(responses, ToInitiativeResponse(initiative))
	}
	return responses, nil
}

// UpdateInitiative updates an initiative's editable fields. Relinking to a
// different objective recomputes both the old and the new rollup.
func (s *InitiativeService) UpdateInitiative(ctx context.Context, tenantID, initiativeID uuid.UUID, req UpdateInitiativeRequest) (*InitiativeResponse, error) {
	initiative, err := s.initiativeRepo.FindByID(ctx, tenantID, initiativeID)
	if err != nil {
		return nil, shared.NewDomainError("INITIATIVE_NOT_FOUND", "Initiative not found")
	}

	previousObjective := initiative.ObjectiveID

	title := initiative.Title
	description := initiative.Description
	priority := initiative.Priority
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Priority != nil {
		priority = okr.Priority(*req.Priority)
	}
	if err := initiative.Update(title, description, priority); err != nil {
		return nil, err
	}
	if req.ObjectiveID != nil {
		if err := s.checkObjectiveArea(ctx, tenantID, *req.ObjectiveID, initiative.AreaID); err != nil {
			return nil, err
		}
		initiative.LinkObjective(req.ObjectiveID)
	}
	if req.OwnerID != nil {
		initiative.AssignOwner(req.OwnerID)
	}
	if req.StartDate != nil || req.TargetDate != nil {
		startDate := initiative.StartDate
		targetDate := initiative.TargetDate
		if req.StartDate != nil {
			startDate = req.StartDate
		}
		if req.TargetDate != nil {
			targetDate = req.TargetDate
		}
		if err := initiative.SetDates(startDate, targetDate); err != nil {
			return nil, err
		}
	}
	if req.Budget != nil {
		if err := initiative.SetBudget(*req.Budget); err != nil {
			return nil, err
		}
	}
	if req.ActualCost != nil {
		if err := initiative.RecordCost(*req.ActualCost); err != nil {
			return nil, err
		}
	}

	if err := s.initiativeRepo.Save(ctx, initiative); err != nil {
		return nil, err
	}

	s.recomputeRelinked(ctx, tenantID, previousObjective, initiative.ObjectiveID)
	s.invalidateDashboard(ctx, tenantID)

	resp := ToInitiativeResponse(initiative)
	return &resp, nil
}

// LinkObjective links or unlinks the initiative's parent objective
func (s *InitiativeService) LinkObjective(ctx context.Context, tenantID, initiativeID uuid.UUID, objectiveID *uuid.UUID) (*InitiativeResponse, error) {
	initiative, err := s.initiativeRepo.FindByID(ctx, tenantID, initiativeID)
	if err != nil {
		return nil, shared.NewDomainError("INITIATIVE_NOT_FOUND", "Initiative not found")
	}

	previousObjective := initiative.ObjectiveID
	if objectiveID != nil {
		if err := s.checkObjectiveArea(ctx, tenantID, *objectiveID, initiative.AreaID); err != nil {
			return nil, err
		}
	}
	initiative.LinkObjective(objectiveID)

	if err := s.initiativeRepo.Save(ctx, initiative); err != nil {
		return nil, err
	}

	s.recomputeRelinked(ctx, tenantID, previousObjective, initiative.ObjectiveID)
	s.invalidateDashboard(ctx, tenantID)

	resp := ToInitiativeResponse(initiative)
	return &resp, nil
}

// UpdateProgress records a progress change and appends a history entry in
// the same transaction, then recomputes the parent objective's rollup
func (s *InitiativeService) UpdateProgress(ctx context.Context, tenantID, initiativeID, recordedBy uuid.UUID, req UpdateProgressRequest) (*InitiativeResponse, error) {
	initiative, err := s.initiativeRepo.FindByID(ctx, tenantID, initiativeID)
	if err != nil {
		return nil, shared.NewDomainError("INITIATIVE_NOT_FOUND", "Initiative not found")
	}

	entry, err := initiative.UpdateProgress(req.Progress, req.Note, recordedBy)
	if err != nil {
		return nil, err
	}

	if err := s.initiativeRepo.SaveWithProgress(ctx, initiative, entry); err != nil {
		s.logger.Error("failed to save progress update",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
			zap.String("initiative_id", initiativeID.String()))
		return nil, err
	}

	if initiative.ObjectiveID != nil {
		s.recomputeObjective(ctx, tenantID, *initiative.ObjectiveID)
	}
	s.invalidateDashboard(ctx, tenantID)

	s.logger.Info("initiative progress updated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("initiative_id", initiativeID.String()),
		zap.Int("progress", initiative.Progress))

	resp := ToInitiativeResponse(initiative)
	return &resp, nil
}

// ChangeStatus moves an initiative through its lifecycle and recomputes
// the parent objective's rollup
func (s *InitiativeService) ChangeStatus(ctx context.Context, tenantID, initiativeID uuid.UUID, req ChangeInitiativeStatusRequest) (*InitiativeResponse, error) {
	initiative, err := s.initiativeRepo.FindByID(ctx, tenantID, initiativeID)
	if err != nil {
		return nil, shared.NewDomainError("INITIATIVE_NOT_FOUND", "Initiative not found")
	}

	if err := initiative.ChangeStatus(okr.InitiativeStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.initiativeRepo.Save(ctx, initiative); err != nil {
		return nil, err
	}

	if initiative.ObjectiveID != nil {
		s.recomputeObjective(ctx, tenantID, *initiative.ObjectiveID)
	}
	s.invalidateDashboard(ctx, tenantID)

	resp := ToInitiativeResponse(initiative)
	return &resp, nil
}

// CancelInitiative cancels an initiative and recomputes the parent
// objective's rollup
func (s *InitiativeService) CancelInitiative(ctx context.Context, tenantID, initiativeID uuid.UUID) (*InitiativeResponse, error) {
	initiative, err := s.initiativeRepo.FindByID(ctx, tenantID, initiativeID)
	if err != nil {
		return nil, shared.NewDomainError("INITIATIVE_NOT_FOUND", "Initiative not found")
	}

	if err := initiative.Cancel(); err != nil {
		return nil, err
	}
	if err := s.initiativeRepo.Save(ctx, initiative); err != nil {
		return nil, err
	}

	if initiative.ObjectiveID != nil {
		s.recomputeObjective(ctx, tenantID, *initiative.ObjectiveID)
	}
	s.invalidateDashboard(ctx, tenantID)

	resp := ToInitiativeResponse(initiative)
	return &resp, nil
}

// DeleteInitiative deletes an initiative and recomputes the parent
// objective's rollup
func (s *InitiativeService) DeleteInitiative(ctx context.Context, tenantID, initiativeID uuid.UUID) error {
	initiative, err := s.initiativeRepo.FindByID(ctx, tenantID, initiativeID)
	if err != nil {
		return shared.NewDomainError("INITIATIVE_NOT_FOUND", "Initiative not found")
	}

	if err := s.initiativeRepo.Delete(ctx, tenantID, initiativeID); err != nil {
		return err
	}

	if initiative.ObjectiveID != nil {
		s.recomputeObjective(ctx, tenantID, *initiative.ObjectiveID)
	}
	s.invalidateDashboard(ctx, tenantID)
	return nil
}

// GetProgressHistory returns the progress history of an initiative,
// newest first
func (s *InitiativeService) GetProgressHistory(ctx context.Context, tenantID, initiativeID uuid.UUID, page, pageSize int) (*ProgressHistoryResponse, error) {
	if _, err := s.initiativeRepo.FindByID(ctx, tenantID, initiativeID); err != nil {
		return nil, shared.NewDomainError("INITIATIVE_NOT_FOUND", "Initiative not found")
	}

	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}
	f.OrderBy = "recorded_at"

	entries, total, err := s.progressRepo.FindByInitiative(ctx, tenantID, initiativeID, f)
	if err != nil {
		return nil, err
	}

	responses := make([]ProgressEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToProgressEntryResponse(entry))
	}
	return &ProgressHistoryResponse{
		Entries:  responses,
		Total:    total,
		Page:     f.Page,
		PageSize: f.PageSize,
	}, nil
}

// checkObjectiveArea verifies the objective exists, is not archived, and
// belongs to the given area
func (s *InitiativeService) checkObjectiveArea(ctx context.Context, tenantID, objectiveID, areaID uuid.UUID) error {
	objective, err := s.objectiveRepo.FindByID(ctx, tenantID, objectiveID)
	if err != nil {
		return shared.NewDomainError("OBJECTIVE_NOT_FOUND", "Objective not found")
	}
	if objective.IsArchived() {
		return shared.NewDomainError("OBJECTIVE_ARCHIVED", "Cannot link to an archived objective")
	}
	if objective.AreaID != areaID {
		return shared.NewDomainError("OBJECTIVE_AREA_MISMATCH", "Objective belongs to a different area")
	}
	return nil
}

// recomputeObjective refreshes an objective's progress rollup. Rollup
// failures are logged, not returned: the initiative mutation has already
// been persisted.
func (s *InitiativeService) recomputeObjective(ctx context.Context, tenantID, objectiveID uuid.UUID) {
	objective, err := s.objectiveRepo.FindByID(ctx, tenantID, objectiveID)
	if err != nil {
		s.logger.Warn("rollup skipped, objective not found",
			zap.String("tenant_id", tenantID.String()),
			zap.String("objective_id", objectiveID.String()))
		return
	}

	initiatives, err := s.initiativeRepo.FindByObjective(ctx, tenantID, objectiveID)
	if err != nil {
		s.logger.Error("rollup failed to load initiatives",
			zap.Error(err), zap.String("objective_id", objectiveID.String()))
		return
	}

	objective.RecalculateProgress(rollupProgress(initiatives))
	if err := s.objectiveRepo.Save(ctx, objective); err != nil {
		s.logger.Error("rollup failed to save objective",
			zap.Error(err), zap.String("objective_id", objectiveID.String()))
	}
}

func (s *InitiativeService) recomputeRelinked(ctx context.Context, tenantID uuid.UUID, previous, current *uuid.UUID) {
	if previous != nil && (current == nil || *previous != *current) {
		s.recomputeObjective(ctx, tenantID, *previous)
	}
	if current != nil {
		s.recomputeObjective(ctx, tenantID, *current)
	}
}

func buildInitiativeFilter(filter ListInitiativesFilter) (okr.InitiativeFilter, error) {
	f := okr.NewInitiativeFilter()
	if filter.AreaID != "" {
		areaID, err := uuid.Parse(filter.AreaID)
		if err != nil {
			return f, shared.NewDomainError("INVALID_AREA_ID", "Invalid area ID")
		}
		f.AreaID = &areaID
	}
	if filter.ObjectiveID != "" {
		objectiveID, err := uuid.Parse(filter.ObjectiveID)
		if err != nil {
			return f, shared.NewDomainError("INVALID_OBJECTIVE_ID", "Invalid objective ID")
		}
		f.ObjectiveID = &objectiveID
	}
	if filter.OwnerID != "" {
		ownerID, err := uuid.Parse(filter.OwnerID)
		if err != nil {
			return f, shared.NewDomainError("INVALID_OWNER_ID", "Invalid owner ID")
		}
		f.OwnerID = &ownerID
	}
	if filter.Status != "" {
		status := okr.InitiativeStatus(filter.Status)
		f.Status = &status
	}
	if filter.Priority != "" {
		priority := okr.Priority(filter.Priority)
		f.Priority = &priority
	}
	f.Search = filter.Search
	if filter.TargetFrom != "" {
		from, err := time.Parse(time.RFC3339, filter.TargetFrom)
		if err != nil {
			return f, shared.NewDomainError("INVALID_DATE", "Invalid target_from date")
		}
		f.TargetFrom = &from
	}
	if filter.TargetTo != "" {
		to, err := time.Parse(time.RFC3339, filter.TargetTo)
		if err != nil {
			return f, shared.NewDomainError("INVALID_DATE", "Invalid target_to date")
		}
		f.TargetTo = &to
	}
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		f.SortBy = filter.SortBy
	}
	if filter.SortOrder != "" {
		f.SortOrder = filter.SortOrder
	}
	return f, nil
}

func (s *InitiativeService) invalidateDashboard(ctx context.Context, tenantID uuid.UUID) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateTenant(ctx, tenantID); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache",
			zap.Error(err), zap.String("tenant_id", tenantID.String()))
	}
}
