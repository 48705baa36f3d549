package okr

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stratix/backend/internal/domain/okr"
)

// CreateAreaRequest creates a new organizational area
type CreateAreaRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Description string     `json:"description" binding:"omitempty,max=2000"`
	Color       string     `json:"color" binding:"omitempty,hexcolor"`
	ManagerID   *uuid.UUID `json:"manager_id"`
}

// UpdateAreaRequest updates an area's editable fields
type UpdateAreaRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Color       *string    `json:"color" binding:"omitempty,hexcolor"`
	ManagerID   *uuid.UUID `json:"manager_id"`
}

// ListAreasFilter contains query parameters for listing areas
type ListAreasFilter struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// AreaResponse is the API representation of an area
type AreaResponse struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Color       string         `json:"color,omitempty"`
	ManagerID   *uuid.UUID     `json:"manager_id,omitempty"`
	Status      okr.AreaStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Version     int            `json:"version"`
}

// AreaListResponse is a paginated list of areas
type AreaListResponse struct {
	Areas    []AreaResponse `json:"areas"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// AreaKPIResponse carries the aggregate numbers for one area
type AreaKPIResponse struct {
	Area            AreaResponse                   `json:"area"`
	ObjectiveCount  int64                          `json:"objective_count"`
	InitiativeCount int64                          `json:"initiative_count"`
	ByStatus        map[okr.InitiativeStatus]int64 `json:"by_status"`
	AverageProgress float64                        `json:"average_progress"`
	TotalBudget     decimal.Decimal                `json:"total_budget"`
	TotalActualCost decimal.Decimal                `json:"total_actual_cost"`
}

// CreateObjectiveRequest creates a new objective
type CreateObjectiveRequest struct {
	AreaID      uuid.UUID  `json:"area_id" binding:"required"`
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"omitempty,max=2000"`
	Priority    string     `json:"priority" binding:"required,oneof=low medium high critical"`
	TargetDate  *time.Time `json:"target_date"`
}

// UpdateObjectiveRequest updates an objective's editable fields
type UpdateObjectiveRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	TargetDate  *time.Time `json:"target_date"`
}

// ChangeObjectiveStatusRequest moves an objective to a new status
type ChangeObjectiveStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft active completed archived"`
}

// ListObjectivesFilter contains query parameters for listing objectives
type ListObjectivesFilter struct {
	AreaID     string `form:"area_id"`
	Status     string `form:"status"`
	Priority   string `form:"priority"`
	Search     string `form:"search"`
	TargetFrom string `form:"target_from"`
	TargetTo   string `form:"target_to"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
}

// ObjectiveResponse is the API representation of an objective
type ObjectiveResponse struct {
	ID          uuid.UUID           `json:"id"`
	AreaID      uuid.UUID           `json:"area_id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Status      okr.ObjectiveStatus `json:"status"`
	Priority    okr.Priority        `json:"priority"`
	Progress    int                 `json:"progress"`
	TargetDate  *time.Time          `json:"target_date,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Version     int                 `json:"version"`
}

// ObjectiveListResponse is a paginated list of objectives
type ObjectiveListResponse struct {
	Objectives []ObjectiveResponse `json:"objectives"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
}

// CreateInitiativeRequest creates a new initiative
type CreateInitiativeRequest struct {
	AreaID      uuid.UUID        `json:"area_id" binding:"required"`
	ObjectiveID *uuid.UUID       `json:"objective_id"`
	Title       string           `json:"title" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"omitempty,max=2000"`
	Priority    string           `json:"priority" binding:"required,oneof=low medium high critical"`
	OwnerID     *uuid.UUID       `json:"owner_id"`
	StartDate   *time.Time       `json:"start_date"`
	TargetDate  *time.Time       `json:"target_date"`
	Budget      *decimal.Decimal `json:"budget"`
}

// UpdateInitiativeRequest updates an initiative's editable fields
type UpdateInitiativeRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Priority    *string          `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	ObjectiveID *uuid.UUID       `json:"objective_id"`
	OwnerID     *uuid.UUID       `json:"owner_id"`
	StartDate   *time.Time       `json:"start_date"`
	TargetDate  *time.Time       `json:"target_date"`
	Budget      *decimal.Decimal `json:"budget"`
	ActualCost  *decimal.Decimal `json:"actual_cost"`
}

// UpdateProgressRequest records a progress change on an initiative
type UpdateProgressRequest struct {
	Progress int    `json:"progress" binding:"min=0,max=100"`
	Note     string `json:"note" binding:"omitempty,max=1000"`
}

// ChangeInitiativeStatusRequest moves an initiative to a new status
type ChangeInitiativeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=planning in_progress completed on_hold cancelled"`
}

// ListInitiativesFilter contains query parameters for listing initiatives
type ListInitiativesFilter struct {
	AreaID      string `form:"area_id"`
	ObjectiveID string `form:"objective_id"`
	Status      string `form:"status"`
	Priority    string `form:"priority"`
	OwnerID     string `form:"owner_id"`
	Search      string `form:"search"`
	TargetFrom  string `form:"target_from"`
	TargetTo    string `form:"target_to"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	SortBy      string `form:"sort_by"`
	SortOrder   string `form:"sort_order"`
}

// InitiativeResponse is the API representation of an initiative
type InitiativeResponse struct {
	ID           uuid.UUID            `json:"id"`
	AreaID       uuid.UUID            `json:"area_id"`
	ObjectiveID  *uuid.UUID           `json:"objective_id,omitempty"`
	Title        string               `json:"title"`
	Description  string               `json:"description,omitempty"`
	Status       okr.InitiativeStatus `json:"status"`
	Priority     okr.Priority         `json:"priority"`
	Progress     int                  `json:"progress"`
	Budget       decimal.Decimal      `json:"budget"`
	ActualCost   decimal.Decimal      `json:"actual_cost"`
	OwnerID      *uuid.UUID           `json:"owner_id,omitempty"`
	StartDate    *time.Time           `json:"start_date,omitempty"`
	TargetDate   *time.Time           `json:"target_date,omitempty"`
	CompletedAt  *time.Time           `json:"completed_at,omitempty"`
	IsOverdue    bool                 `json:"is_overdue"`
	IsOverBudget bool                 `json:"is_over_budget"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	Version      int                  `json:"version"`
}

// InitiativeListResponse is a paginated list of initiatives
type InitiativeListResponse struct {
	Initiatives []InitiativeResponse `json:"initiatives"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
}

// CreateActivityRequest creates a new activity under an initiative
type CreateActivityRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"omitempty,max=2000"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateActivityRequest updates an activity's editable fields
type UpdateActivityRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

// ChangeActivityStatusRequest moves an activity to a new status
type ChangeActivityStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=todo in_progress done blocked"`
}

// ListActivitiesFilter contains query parameters for listing activities
type ListActivitiesFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ActivityResponse is the API representation of an activity
type ActivityResponse struct {
	ID           uuid.UUID          `json:"id"`
	InitiativeID uuid.UUID          `json:"initiative_id"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	Status       okr.ActivityStatus `json:"status"`
	AssigneeID   *uuid.UUID         `json:"assignee_id,omitempty"`
	DueDate      *time.Time         `json:"due_date,omitempty"`
	CompletedAt  *time.Time         `json:"completed_at,omitempty"`
	IsOverdue    bool               `json:"is_overdue"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	Version      int                `json:"version"`
}

// ActivityListResponse is a paginated list of activities
type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
}

// ProgressEntryResponse is the API representation of a progress history entry
type ProgressEntryResponse struct {
	ID               uuid.UUID `json:"id"`
	InitiativeID     uuid.UUID `json:"initiative_id"`
	PreviousProgress int       `json:"previous_progress"`
	NewProgress      int       `json:"new_progress"`
	Delta            int       `json:"delta"`
	Note             string    `json:"note,omitempty"`
	RecordedBy       uuid.UUID `json:"recorded_by"`
	RecordedAt       time.Time `json:"recorded_at"`
}

// ProgressHistoryResponse is a paginated progress history
type ProgressHistoryResponse struct {
	Entries  []ProgressEntryResponse `json:"entries"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
}

// ToAreaResponse converts a domain area to its API representation
func ToAreaResponse(area *okr.Area) AreaResponse {
	return AreaResponse{
		ID:          area.ID,
		Name:        area.Name,
		Description: area.Description,
		Color:       area.Color,
		ManagerID:   area.ManagerID,
		Status:      area.Status,
		CreatedAt:   area.CreatedAt,
		UpdatedAt:   area.UpdatedAt,
		Version:     area.Version,
	}
}

// ToObjectiveResponse converts a domain objective to its API representation
func ToObjectiveResponse(objective *okr.Objective) ObjectiveResponse {
	return ObjectiveResponse{
		ID:          objective.ID,
		AreaID:      objective.AreaID,
		Title:       objective.Title,
		Description: objective.Description,
		Status:      objective.Status,
		Priority:    objective.Priority,
		Progress:    objective.Progress,
		TargetDate:  objective.TargetDate,
		CreatedAt:   objective.CreatedAt,
		UpdatedAt:   objective.UpdatedAt,
		Version:     objective.Version,
	}
}

// ToInitiativeResponse converts a domain initiative to its API representation
func ToInitiativeResponse(initiative *okr.Initiative) InitiativeResponse {
	return InitiativeResponse{
		ID:           initiative.ID,
		AreaID:       initiative.AreaID,
		ObjectiveID:  initiative.ObjectiveID,
		Title:        initiative.Title,
		Description:  initiative.Description,
		Status:       initiative.Status,
		Priority:     initiative.Priority,
		Progress:     initiative.Progress,
		Budget:       initiative.Budget,
		ActualCost:   initiative.ActualCost,
		OwnerID:      initiative.OwnerID,
		StartDate:    initiative.StartDate,
		TargetDate:   initiative.TargetDate,
		CompletedAt:  initiative.CompletedAt,
		IsOverdue:    initiative.IsOverdue(),
		IsOverBudget: initiative.IsOverBudget(),
		CreatedAt:    initiative.CreatedAt,
		UpdatedAt:    initiative.UpdatedAt,
		Version:      initiative.Version,
	}
}

// ToActivityResponse converts a domain activity to its API representation
func ToActivityResponse(activity *okr.Activity) ActivityResponse {
	return ActivityResponse{
		ID:           activity.ID,
		InitiativeID: activity.InitiativeID,
		Title:        activity.Title,
		Description:  activity.Description,
		Status:       activity.Status,
		AssigneeID:   activity.AssigneeID,
		DueDate:      activity.DueDate,
		CompletedAt:  activity.CompletedAt,
		IsOverdue:    activity.IsOverdue(),
		CreatedAt:    activity.CreatedAt,
		UpdatedAt:    activity.UpdatedAt,
		Version:      activity.Version,
	}
}

// ToProgressEntryResponse converts a domain progress entry to its API representation
func ToProgressEntryResponse(entry *okr.ProgressEntry) ProgressEntryResponse {
	return ProgressEntryResponse{
		ID:               entry.ID,
		InitiativeID:     entry.InitiativeID,
		PreviousProgress: entry.PreviousProgress,
		NewProgress:      entry.NewProgress,
		Delta:            entry.Delta(),
		Note:             entry.Note,
		RecordedBy:       entry.RecordedBy,
		RecordedAt:       entry.RecordedAt,
	}
}
