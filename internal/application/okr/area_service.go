package okr

import (
	"context"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DashboardInvalidator drops cached dashboard snapshots after a mutation.
// A nil invalidator disables invalidation.
type DashboardInvalidator interface {
	InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error
}

// AreaService handles area use cases
type AreaService struct {
	areaRepo       okr.AreaRepository
	initiativeRepo okr.InitiativeRepository
	objectiveRepo  okr.ObjectiveRepository
	tenantRepo     identity.TenantRepository
	invalidator    DashboardInvalidator
	logger         *zap.Logger
}

// NewAreaService creates a new area service
func NewAreaService(
	areaRepo okr.AreaRepository,
	initiativeRepo okr.InitiativeRepository,
	objectiveRepo okr.ObjectiveRepository,
	tenantRepo identity.TenantRepository,
	logger *zap.Logger,
) *AreaService {
	return &AreaService{
		areaRepo:       areaRepo,
		initiativeRepo: initiativeRepo,
		objectiveRepo:  objectiveRepo,
		tenantRepo:     tenantRepo,
		logger:         logger,
	}
}

// SetDashboardInvalidator wires cache invalidation for dashboard snapshots
func (s *AreaService) SetDashboardInvalidator(invalidator DashboardInvalidator) {
	s.invalidator = invalidator
}

// CreateArea creates a new area, enforcing the tenant's area quota
func (s *AreaService) CreateArea(ctx context.Context, tenantID uuid.UUID, req CreateAreaRequest) (*AreaResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Workspace not found")
	}

	count, err := s.areaRepo.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.CanAddArea(int(count)) {
		return nil, shared.NewDomainError("AREA_QUOTA_EXCEEDED", "Area limit reached for the current plan")
	}

	exists, err := s.areaRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An area with this name already exists")
	}

	area, err := okr.NewArea(tenantID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if req.Color != "" {
		if err := area.SetColor(req.Color); err != nil {
			return nil, err
		}
	}
	if req.ManagerID != nil {
		area.AssignManager(req.ManagerID)
	}

	if err := s.areaRepo.Save(ctx, area); err != nil {
		s.logger.Error("failed to save area", zap.Error(err), zap.String("tenant_id", tenantID.String()))
		return nil, err
	}

	s.invalidateDashboard(ctx, tenantID)

	s.logger.Info("area created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("area_id", area.ID.String()),
		zap.String("name", area.Name))

	resp := ToAreaResponse(area)
	return &resp, nil
}

// GetArea returns a single area
func (s *AreaService) GetArea(ctx context.Context, tenantID, areaID uuid.UUID) (*AreaResponse, error) {
	area, err := s.areaRepo.FindByID(ctx, tenantID, areaID)
	if err != nil {
		return nil, shared.NewDomainError("AREA_NOT_FOUND", "Area not found")
	}
	resp := ToAreaResponse(area)
	return &resp, nil
}

// ListAreas returns a paginated list of areas
func (s *AreaService) ListAreas(ctx context.Context, tenantID uuid.UUID, filter ListAreasFilter) (*AreaListResponse, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		f.OrderBy = filter.SortBy
	}
	if filter.SortOrder != "" {
		f.OrderDir = filter.SortOrder
	}
	f.Search = filter.Search
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}

	areas, total, err := s.areaRepo.FindAll(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}

	responses := make([]AreaResponse, 0, len(areas))
	for _, area := range areas {
		responses = append(responses, ToAreaResponse(area))
	}
	return &AreaListResponse{
		Areas:    responses,
		Total:    total,
		Page:     f.Page,
		PageSize: f.PageSize,
	}, nil
}

// ListActiveAreas returns all active areas without pagination
func (s *AreaService) ListActiveAreas(ctx context.Context, tenantID uuid.UUID) ([]AreaResponse, error) {
	areas, err := s.areaRepo.FindActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]AreaResponse, 0, len(areas))
	for _, area := range areas {
		responses = append(responses, ToAreaResponse(area))
	}
	return responses, nil
}

// UpdateArea updates an area's editable fields
func (s *AreaService) UpdateArea(ctx context.Context, tenantID, areaID uuid.UUID, req UpdateAreaRequest) (*AreaResponse, error) {
	area, err := s.areaRepo.FindByID(ctx, tenantID, areaID)
	if err != nil {
		return nil, shared.NewDomainError("AREA_NOT_FOUND", "Area not found")
	}

	name := area.Name
	description := area.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if name != area.Name {
		exists, err := s.areaRepo.ExistsByName(ctx, tenantID, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An area with this name already exists")
		}
	}
	if err := area.Update(name, description); err != nil {
		return nil, err
	}
	if req.Color != nil {
		if err := area.SetColor(*req.Color); err != nil {
			return nil, err
		}
	}
	if req.ManagerID != nil {
		area.AssignManager(req.ManagerID)
	}

	if err := s.areaRepo.Save(ctx, area); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, tenantID)

	resp := ToAreaResponse(area)
	return &resp, nil
}

// ArchiveArea archives an area. An area with non-cancelled initiatives
// cannot be archived.
func (s *AreaService) ArchiveArea(ctx context.Context, tenantID, areaID uuid.UUID) (*AreaResponse, error) {
	area, err := s.areaRepo.FindByID(ctx, tenantID, areaID)
	if err != nil {
		return nil, shared.NewDomainError("AREA_NOT_FOUND", "Area not found")
	}

	activeInitiatives, err := s.initiativeRepo.CountByArea(ctx, tenantID, areaID)
	if err != nil {
		return nil, err
	}
	if activeInitiatives > 0 {
		return nil, shared.NewDomainError("AREA_NOT_EMPTY", "Area still has active initiatives")
	}

	if err := area.Archive(); err != nil {
		return nil, err
	}
	if err := s.areaRepo.Save(ctx, area); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, tenantID)

	s.logger.Info("area archived",
		zap.String("tenant_id", tenantID.String()),
		zap.String("area_id", areaID.String()))

	resp := ToAreaResponse(area)
	return &resp, nil
}

// RestoreArea restores an archived area
func (s *AreaService) RestoreArea(ctx context.Context, tenantID, areaID uuid.UUID) (*AreaResponse, error) {
	area, err := s.areaRepo.FindByID(ctx, tenantID, areaID)
	if err != nil {
		return nil, shared.NewDomainError("AREA_NOT_FOUND", "Area not found")
	}
	if err := area.Restore(); err != nil {
		return nil, err
	}
	if err := s.areaRepo.Save(ctx, area); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, tenantID)

	resp := ToAreaResponse(area)
	return &resp, nil
}

// DeleteArea deletes an area that has no objectives and no initiatives
func (s *AreaService) DeleteArea(ctx context.Context, tenantID, areaID uuid.UUID) error {
	if _, err := s.areaRepo.FindByID(ctx, tenantID, areaID); err != nil {
		return shared.NewDomainError("AREA_NOT_FOUND", "Area not found")
	}

	objectives, err := s.objectiveRepo.CountByArea(ctx, tenantID, areaID)
	if err != nil {
		return err
	}
	if objectives > 0 {
		return shared.NewDomainError("AREA_NOT_EMPTY", "Area still has objectives")
	}
	initiatives, err := s.initiativeRepo.CountByArea(ctx, tenantID, areaID)
	if err != nil {
		return err
	}
	if initiatives > 0 {
		return shared.NewDomainError("AREA_NOT_EMPTY", "Area still has active initiatives")
	}

	if err := s.areaRepo.Delete(ctx, tenantID, areaID); err != nil {
		return err
	}

	s.invalidateDashboard(ctx, tenantID)
	return nil
}

// GetAreaKPIs returns aggregate numbers for one area
func (s *AreaService) GetAreaKPIs(ctx context.Context, tenantID, areaID uuid.UUID) (*AreaKPIResponse, error) {
	area, err := s.areaRepo.FindByID(ctx, tenantID, areaID)
	if err != nil {
		return nil, shared.NewDomainError("AREA_NOT_FOUND", "Area not found")
	}

	stats, err := s.initiativeRepo.StatsForArea(ctx, tenantID, areaID)
	if err != nil {
		return nil, err
	}
	objectiveCount, err := s.objectiveRepo.CountByArea(ctx, tenantID, areaID)
	if err != nil {
		return nil, err
	}

	return &AreaKPIResponse{
		Area:            ToAreaResponse(area),
		ObjectiveCount:  objectiveCount,
		InitiativeCount: stats.Total,
		ByStatus:        stats.ByStatus,
		AverageProgress: stats.AverageProgress,
		TotalBudget:     stats.TotalBudget,
		TotalActualCost: stats.TotalActualCost,
	}, nil
}

func (s *AreaService) invalidateDashboard(ctx context.Context, tenantID uuid.UUID) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateTenant(ctx, tenantID); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache",
			zap.Error(err), zap.String("tenant_id", tenantID.String()))
	}
}
