package okr

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ObjectiveService handles objective use cases
type ObjectiveService struct {
	objectiveRepo  okr.ObjectiveRepository
	areaRepo       okr.AreaRepository
	initiativeRepo okr.InitiativeRepository
	invalidator    DashboardInvalidator
	logger         *zap.Logger
}

// NewObjectiveService creates a new objective service
func NewObjectiveService(
	objectiveRepo okr.ObjectiveRepository,
	areaRepo okr.AreaRepository,
	initiativeRepo okr.InitiativeRepository,
	logger *zap.Logger,
) *ObjectiveService {
	return &ObjectiveService{
		objectiveRepo:  objectiveRepo,
		areaRepo:       areaRepo,
		initiativeRepo: initiativeRepo,
		logger:         logger,
	}
}

// SetDashboardInvalidator wires cache invalidation for dashboard snapshots
func (s *ObjectiveService) SetDashboardInvalidator(invalidator DashboardInvalidator) {
	s.invalidator = invalidator
}

// CreateObjective creates a new objective in an active area
func (s *ObjectiveService) CreateObjective(ctx context.Context, tenantID uuid.UUID, req CreateObjectiveRequest) (*ObjectiveResponse, error) {
	area, err := s.areaRepo.FindByID(ctx, tenantID, req.AreaID)
	if err != nil {
		return nil, shared.NewDomainError("AREA_NOT_FOUND", "Area not found")
	}
	if !area.IsActive() {
		return nil, shared.NewDomainError("AREA_ARCHIVED", "Cannot create an objective in an archived area")
	}

	objective, err := okr.NewObjective(tenantID, req.AreaID, req.Title, req.Description, okr.Priority(req.Priority))
	if err != nil {
		return nil, err
	}
	if req.TargetDate != nil {
		objective.SetTargetDate(req.TargetDate)
	}

	if err := s.objectiveRepo.Save(ctx, objective); err != nil {
		s.logger.Error("failed to save objective", zap.Error(err), zap.String("tenant_id", tenantID.String()))
		return nil, err
	}

	s.invalidateDashboard(ctx, tenantID)

	s.logger.Info("objective created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("objective_id", objective.ID.String()),
		zap.String("area_id", req.AreaID.String()))

	resp := ToObjectiveResponse(objective)
	return &resp, nil
}

// GetObjective returns a single objective
func (s *ObjectiveService) GetObjective(ctx context.Context, tenantID, objectiveID uuid.UUID) (*ObjectiveResponse, error) {
	objective, err := s.objectiveRepo.FindByID(ctx, tenantID, objectiveID)
	if err != nil {
		return nil, shared.NewDomainError("OBJECTIVE_NOT_FOUND", "Objective not found")
	}
	resp := ToObjectiveResponse(objective)
	return &resp, nil
}

// ListObjectives returns a paginated list of objectives
func (s *ObjectiveService) ListObjectives(ctx context.Context, tenantID uuid.UUID, filter ListObjectivesFilter) (*ObjectiveListResponse, error) {
	f, err := buildObjectiveFilter(filter)
	if err != nil {
		return nil, err
	}

	objectives, total, err := s.objectiveRepo.FindAll(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}

	responses := make([]ObjectiveResponse, 0, len(objectives))
	for _, objective := range objectives {
		responses = append(responses, ToObjectiveResponse(objective))
	}
	return &ObjectiveListResponse{
		Objectives: responses,
		Total:      total,
		Page:       f.Page,
		PageSize:   f.Limit(),
	}, nil
}

// UpdateObjective updates an objective's editable fields
func (s *ObjectiveService) UpdateObjective(ctx context.Context, tenantID, objectiveID uuid.UUID, req UpdateObjectiveRequest) (*ObjectiveResponse, error) {
	objective, err := s.objectiveRepo.FindByID(ctx, tenantID, objectiveID)
	if err != nil {
		return nil, shared.NewDomainError("OBJECTIVE_NOT_FOUND", "Objective not found")
	}

	title := objective.Title
	description := objective.Description
	priority := objective.Priority
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Priority != nil {
		priority = okr.Priority(*req.Priority)
	}
	if err := objective.Update(title, description, priority); err != nil {
		return nil, err
	}
	if req.TargetDate != nil {
		objective.SetTargetDate(req.TargetDate)
	}

	if err := s.objectiveRepo.Save(ctx, objective); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, tenantID)

	resp := ToObjectiveResponse(objective)
	return &resp, nil
}

// ChangeObjectiveStatus moves an objective through its lifecycle
func (s *ObjectiveService) ChangeObjectiveStatus(ctx context.Context, tenantID, objectiveID uuid.UUID, req ChangeObjectiveStatusRequest) (*ObjectiveResponse, error) {
	objective, err := s.objectiveRepo.FindByID(ctx, tenantID, objectiveID)
	if err != nil {
		return nil, shared.NewDomainError("OBJECTIVE_NOT_FOUND", "Objective not found")
	}
	if err := objective.ChangeStatus(okr.ObjectiveStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.objectiveRepo.Save(ctx, objective); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, tenantID)

	resp := ToObjectiveResponse(objective)
	return &resp, nil
}

// ArchiveObjective archives an objective
func (s *ObjectiveService) ArchiveObjective(ctx context.Context, tenantID, objectiveID uuid.UUID) (*ObjectiveResponse, error) {
	objective, err := s.objectiveRepo.FindByID(ctx, tenantID, objectiveID)
	if err != nil {
		return nil, shared.NewDomainError("OBJECTIVE_NOT_FOUND", "Objective not found")
	}
	if err := objective.Archive(); err != nil {
		return nil, err
	}
	if err := s.objectiveRepo.Save(ctx, objective); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, tenantID)

	resp := ToObjectiveResponse(objective)
	return &resp, nil
}

// DeleteObjective deletes an objective that has no linked initiatives
func (s *ObjectiveService) DeleteObjective(ctx context.Context, tenantID, objectiveID uuid.UUID) error {
	if _, err := s.objectiveRepo.FindByID(ctx, tenantID, objectiveID); err != nil {
		return shared.NewDomainError("OBJECTIVE_NOT_FOUND", "Objective not found")
	}

	linked, err := s.initiativeRepo.FindByObjective(ctx, tenantID, objectiveID)
	if err != nil {
		return err
	}
	if len(linked) > 0 {
		return shared.NewDomainError("OBJECTIVE_HAS_INITIATIVES", "Objective still has linked initiatives")
	}

	if err := s.objectiveRepo.Delete(ctx, tenantID, objectiveID); err != nil {
		return err
	}

	s.invalidateDashboard(ctx, tenantID)
	return nil
}

// RecalculateObjectiveProgress recomputes the objective's progress as the
// average over its counting initiatives and persists the result
func (s *ObjectiveService) RecalculateObjectiveProgress(ctx context.Context, tenantID, objectiveID uuid.UUID) (*ObjectiveResponse, error) {
	objective, err := s.objectiveRepo.FindByID(ctx, tenantID, objectiveID)
	if err != nil {
		return nil, shared.NewDomainError("OBJECTIVE_NOT_FOUND", "Objective not found")
	}

	initiatives, err := s.initiativeRepo.FindByObjective(ctx, tenantID, objectiveID)
	if err != nil {
		return nil, err
	}

	objective.RecalculateProgress(rollupProgress(initiatives))
	if err := s.objectiveRepo.Save(ctx, objective); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, tenantID)

	resp := ToObjectiveResponse(objective)
	return &resp, nil
}

// rollupProgress averages progress over initiatives that count toward the
// objective. Cancelled initiatives are excluded; no counting initiatives
// means zero progress.
func rollupProgress(initiatives []*okr.Initiative) int {
	sum := 0
	n := 0
	for _, initiative := range initiatives {
		if !initiative.CountsTowardObjective() {
			continue
		}
		sum += initiative.Progress
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / n
}

func buildObjectiveFilter(filter ListObjectivesFilter) (okr.ObjectiveFilter, error) {
	f := okr.NewObjectiveFilter()
	if filter.AreaID != "" {
		areaID, err := uuid.Parse(filter.AreaID)
		if err != nil {
			return f, shared.NewDomainError("INVALID_AREA_ID", "Invalid area ID")
		}
		f.AreaID = &areaID
	}
	if filter.Status != "" {
		status := okr.ObjectiveStatus(filter.Status)
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

func (s *ObjectiveService) invalidateDashboard(ctx context.Context, tenantID uuid.UUID) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateTenant(ctx, tenantID); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache",
			zap.Error(err), zap.String("tenant_id", tenantID.String()))
	}
}
