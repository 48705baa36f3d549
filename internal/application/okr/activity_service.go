package okr

import (
	"context"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ActivityService handles activity use cases
type ActivityService struct {
	activityRepo   okr.ActivityRepository
	initiativeRepo okr.InitiativeRepository
	logger         *zap.Logger
}

// NewActivityService creates a new activity service
func NewActivityService(
	activityRepo okr.ActivityRepository,
	initiativeRepo okr.InitiativeRepository,
	logger *zap.Logger,
) *ActivityService {
	return &ActivityService{
		activityRepo:   activityRepo,
		initiativeRepo: initiativeRepo,
		logger:         logger,
	}
}

// CreateActivity creates a new activity under an initiative
func (s *ActivityService) CreateActivity(ctx context.Context, tenantID, initiativeID uuid.UUID, req CreateActivityRequest) (*ActivityResponse, error) {
	initiative, err := s.initiativeRepo.FindByID(ctx, tenantID, initiativeID)
	if err != nil {
		return nil, shared.NewDomainError("INITIATIVE_NOT_FOUND", "Initiative not found")
	}
	if initiative.Status == okr.InitiativeStatusCancelled {
		return nil, shared.NewDomainError("INITIATIVE_CANCELLED", "Cannot add activities to a cancelled initiative")
	}

	activity, err := okr.NewActivity(tenantID, initiativeID, req.Title, req.Description)
	if err != nil {
		return nil, err
	}
	if req.AssigneeID != nil {
		activity.Assign(req.AssigneeID)
	}
	if req.DueDate != nil {
		activity.SetDueDate(req.DueDate)
	}

	if err := s.activityRepo.Save(ctx, activity); err != nil {
		s.logger.Error("failed to save activity", zap.Error(err), zap.String("tenant_id", tenantID.String()))
		return nil, err
	}

	s.logger.Info("activity created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("activity_id", activity.ID.String()),
		zap.String("initiative_id", initiativeID.String()))

	resp := ToActivityResponse(activity)
	return &resp, nil
}

// GetActivity returns a single activity
func (s *ActivityService) GetActivity(ctx context.Context, tenantID, activityID uuid.UUID) (*ActivityResponse, error) {
	activity, err := s.activityRepo.FindByID(ctx, tenantID, activityID)
	if err != nil {
		return nil, shared.NewDomainError("ACTIVITY_NOT_FOUND", "Activity not found")
	}
	resp := ToActivityResponse(activity)
	return &resp, nil
}

// ListActivities returns a paginated list of an initiative's activities
func (s *ActivityService) ListActivities(ctx context.Context, tenantID, initiativeID uuid.UUID, filter ListActivitiesFilter) (*ActivityListResponse, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}

	activities, total, err := s.activityRepo.FindByInitiative(ctx, tenantID, initiativeID, f)
	if err != nil {
		return nil, err
	}

	responses := make([]ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, ToActivityResponse(activity))
	}
	return &ActivityListResponse{
		Activities: responses,
		Total:      total,
		Page:       f.Page,
		PageSize:   f.PageSize,
	}, nil
}

// GetActivitiesByAssignee returns all activities assigned to a user
func (s *ActivityService) GetActivitiesByAssignee(ctx context.Context, tenantID, assigneeID uuid.UUID) ([]ActivityResponse, error) {
	activities, err := s.activityRepo.FindByAssignee(ctx, tenantID, assigneeID)
	if err != nil {
		return nil, err
	}
	responses := make([]ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, ToActivityResponse(activity))
	}
	return responses, nil
}

// UpdateActivity updates an activity's editable fields
func (s *ActivityService) UpdateActivity(ctx context.Context, tenantID, activityID uuid.UUID, req UpdateActivityRequest) (*ActivityResponse, error) {
	activity, err := s.activityRepo.FindByID(ctx, tenantID, activityID)
	if err != nil {
		return nil, shared.NewDomainError("ACTIVITY_NOT_FOUND", "Activity not found")
	}

	title := activity.Title
	description := activity.Description
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := activity.Update(title, description); err != nil {
		return nil, err
	}
	if req.AssigneeID != nil {
		activity.Assign(req.AssigneeID)
	}
	if req.DueDate != nil {
		activity.SetDueDate(req.DueDate)
	}

	if err := s.activityRepo.Save(ctx, activity); err != nil {
		return nil, err
	}

	resp := ToActivityResponse(activity)
	return &resp, nil
}

// AssignActivity assigns or unassigns an activity
func (s *ActivityService) AssignActivity(ctx context.Context, tenantID, activityID uuid.UUID, assigneeID *uuid.UUID) (*ActivityResponse, error) {
	activity, err := s.activityRepo.FindByID(ctx, tenantID, activityID)
	if err != nil {
		return nil, shared.NewDomainError("ACTIVITY_NOT_FOUND", "Activity not found")
	}

	activity.Assign(assigneeID)
	if err := s.activityRepo.Save(ctx, activity); err != nil {
		return nil, err
	}

	resp := ToActivityResponse(activity)
	return &resp, nil
}

// ChangeActivityStatus moves an activity through its lifecycle
func (s *ActivityService) ChangeActivityStatus(ctx context.Context, tenantID, activityID uuid.UUID, req ChangeActivityStatusRequest) (*ActivityResponse, error) {
	activity, err := s.activityRepo.FindByID(ctx, tenantID, activityID)
	if err != nil {
		return nil, shared.NewDomainError("ACTIVITY_NOT_FOUND", "Activity not found")
	}

	if err := activity.ChangeStatus(okr.ActivityStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.activityRepo.Save(ctx, activity); err != nil {
		return nil, err
	}

	resp := ToActivityResponse(activity)
	return &resp, nil
}

// DeleteActivity deletes an activity
func (s *ActivityService) DeleteActivity(ctx context.Context, tenantID, activityID uuid.UUID) error {
	if _, err := s.activityRepo.FindByID(ctx, tenantID, activityID); err != nil {
		return shared.NewDomainError("ACTIVITY_NOT_FOUND", "Activity not found")
	}
	return s.activityRepo.Delete(ctx, tenantID, activityID)
}
