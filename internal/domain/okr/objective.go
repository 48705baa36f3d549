package okr

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/shared"
)

// ObjectiveStatus represents the status of an objective
type ObjectiveStatus string

const (
	ObjectiveStatusDraft     ObjectiveStatus = "draft"
	ObjectiveStatusActive    ObjectiveStatus = "active"
	ObjectiveStatusCompleted ObjectiveStatus = "completed"
	ObjectiveStatusArchived  ObjectiveStatus = "archived"
)

// Priority is shared by objectives and initiatives
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Objective represents a top-level organizational goal.
// Its progress is rolled up from the progress of its initiatives.
type Objective struct {
	shared.TenantAggregateRoot
	AreaID      uuid.UUID
	Title       string
	Description string
	Status      ObjectiveStatus
	Priority    Priority
	Progress    int // 0-100, derived from initiatives
	TargetDate  *time.Time
}

// NewObjective creates a new draft objective
func NewObjective(tenantID, areaID uuid.UUID, title, description string, priority Priority) (*Objective, error) {
	if areaID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AREA", "Objective must belong to an area")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if err := validatePriority(priority); err != nil {
		return nil, err
	}

	objective := &Objective{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		AreaID:              areaID,
		Title:               strings.TrimSpace(title),
		Description:         description,
		Status:              ObjectiveStatusDraft,
		Priority:            priority,
		Progress:            0,
	}

	objective.AddDomainEvent(NewObjectiveCreatedEvent(objective))

	return objective, nil
}

// Update updates the objective's basic information
func (o *Objective) Update(title, description string, priority Priority) error {
	if o.Status == ObjectiveStatusArchived {
		return shared.NewDomainError("OBJECTIVE_ARCHIVED", "Archived objectives cannot be modified")
	}
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateDescription(description); err != nil {
		return err
	}
	if err := validatePriority(priority); err != nil {
		return err
	}

	o.Title = strings.TrimSpace(title)
	o.Description = description
	o.Priority = priority
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewObjectiveUpdatedEvent(o))

	return nil
}

// SetTargetDate sets or clears the target date
func (o *Objective) SetTargetDate(targetDate *time.Time) {
	o.TargetDate = targetDate
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// objectiveTransitions defines the allowed status transitions
var objectiveTransitions = map[ObjectiveStatus][]ObjectiveStatus{
	ObjectiveStatusDraft:     {ObjectiveStatusActive, ObjectiveStatusArchived},
	ObjectiveStatusActive:    {ObjectiveStatusCompleted, ObjectiveStatusArchived},
	ObjectiveStatusCompleted: {ObjectiveStatusActive, ObjectiveStatusArchived},
	ObjectiveStatusArchived:  {},
}

// ChangeStatus transitions the objective to a new status
func (o *Objective) ChangeStatus(newStatus ObjectiveStatus) error {
	if o.Status == newStatus {
		return shared.NewDomainError("SAME_STATUS", "Objective is already in this status")
	}

	allowed := objectiveTransitions[o.Status]
	valid := false
	for _, s := range allowed {
		if s == newStatus {
			valid = true
			break
		}
	}
	if !valid {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Cannot transition objective from "+string(o.Status)+" to "+string(newStatus))
	}

	oldStatus := o.Status
	o.Status = newStatus
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewObjectiveStatusChangedEvent(o, oldStatus, newStatus))

	return nil
}

// Archive soft-deletes the objective
func (o *Objective) Archive() error {
	if o.Status == ObjectiveStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Objective is already archived")
	}
	return o.ChangeStatus(ObjectiveStatusArchived)
}

// RecalculateProgress sets the rolled-up progress from initiatives.
// Values are clamped to [0,100]; a change raises a progress event.
func (o *Objective) RecalculateProgress(progress int) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	if o.Progress == progress {
		return
	}

	oldProgress := o.Progress
	o.Progress = progress
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewObjectiveProgressChangedEvent(o, oldProgress, progress))
}

// IsArchived returns true if the objective is archived
func (o *Objective) IsArchived() bool {
	return o.Status == ObjectiveStatusArchived
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	return nil
}

func validatePriority(priority Priority) error {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return nil
	default:
		return shared.NewDomainError("INVALID_PRIORITY", "Priority must be low, medium, high, or critical")
	}
}
