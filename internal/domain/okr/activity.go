package okr

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/shared"
)

// ActivityStatus represents the status of an activity
type ActivityStatus string

const (
	ActivityStatusTodo       ActivityStatus = "todo"
	ActivityStatusInProgress ActivityStatus = "in_progress"
	ActivityStatusDone       ActivityStatus = "done"
	ActivityStatusBlocked    ActivityStatus = "blocked"
)

// Activity represents a task within an initiative
type Activity struct {
	shared.TenantAggregateRoot
	InitiativeID uuid.UUID
	Title        string
	Description  string
	Status       ActivityStatus
	AssigneeID   *uuid.UUID
	DueDate      *time.Time
	CompletedAt  *time.Time
}

// NewActivity creates a new activity in todo status
func NewActivity(tenantID, initiativeID uuid.UUID, title, description string) (*Activity, error) {
	if initiativeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INITIATIVE", "Activity must belong to an initiative")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	activity := &Activity{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InitiativeID:        initiativeID,
		Title:               strings.TrimSpace(title),
		Description:         description,
		Status:              ActivityStatusTodo,
	}

	activity.AddDomainEvent(NewActivityCreatedEvent(activity))

	return activity, nil
}

// Update updates the activity's basic information
func (a *Activity) Update(title, description string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateDescription(description); err != nil {
		return err
	}

	a.Title = strings.TrimSpace(title)
	a.Description = description
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewActivityUpdatedEvent(a))

	return nil
}

// Assign assigns the activity to a user
func (a *Activity) Assign(assigneeID *uuid.UUID) {
	a.AssigneeID = assigneeID
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// SetDueDate sets or clears the due date
func (a *Activity) SetDueDate(dueDate *time.Time) {
	a.DueDate = dueDate
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// ChangeStatus transitions the activity to a new status.
// Activities move freely between statuses; done stamps a completion time.
func (a *Activity) ChangeStatus(newStatus ActivityStatus) error {
	if err := validateActivityStatus(newStatus); err != nil {
		return err
	}
	if a.Status == newStatus {
		return shared.NewDomainError("SAME_STATUS", "Activity is already in this status")
	}

	oldStatus := a.Status
	a.Status = newStatus
	now := time.Now()
	a.UpdatedAt = now
	a.IncrementVersion()

	if newStatus == ActivityStatusDone {
		a.CompletedAt = &now
	} else {
		a.CompletedAt = nil
	}

	a.AddDomainEvent(NewActivityStatusChangedEvent(a, oldStatus, newStatus))

	return nil
}

// IsDone returns true if the activity is completed
func (a *Activity) IsDone() bool {
	return a.Status == ActivityStatusDone
}

// IsOverdue returns true if the due date has passed without completion
func (a *Activity) IsOverdue() bool {
	if a.DueDate == nil || a.Status == ActivityStatusDone {
		return false
	}
	return time.Now().After(*a.DueDate)
}

func validateActivityStatus(status ActivityStatus) error {
	switch status {
	case ActivityStatusTodo, ActivityStatusInProgress, ActivityStatusDone, ActivityStatusBlocked:
		return nil
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid activity status")
	}
}
