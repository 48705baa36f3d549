package okr

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stratix/backend/internal/domain/shared"
)

// InitiativeStatus represents the status of an initiative
type InitiativeStatus string

const (
	InitiativeStatusPlanning   InitiativeStatus = "planning"
	InitiativeStatusInProgress InitiativeStatus = "in_progress"
	InitiativeStatusCompleted  InitiativeStatus = "completed"
	InitiativeStatusOnHold     InitiativeStatus = "on_hold"
	InitiativeStatusCancelled  InitiativeStatus = "cancelled"
)

// Initiative represents a concrete piece of work driving an objective.
// Progress is a percentage in [0,100]; every change is recorded in the
// progress history.
type Initiative struct {
	shared.TenantAggregateRoot
	ObjectiveID *uuid.UUID // Optional: standalone initiatives are allowed
	AreaID      uuid.UUID
	Title       string
	Description string
	Status      InitiativeStatus
	Priority    Priority
	Progress    int
	Budget      decimal.Decimal
	ActualCost  decimal.Decimal
	OwnerID     *uuid.UUID
	StartDate   *time.Time
	TargetDate  *time.Time
	CompletedAt *time.Time
}

// NewInitiative creates a new initiative in planning status
func NewInitiative(tenantID, areaID uuid.UUID, title, description string, priority Priority) (*Initiative, error) {
	if areaID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AREA", "Initiative must belong to an area")
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

	initiative := &Initiative{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		AreaID:              areaID,
		Title:               strings.TrimSpace(title),
		Description:         description,
		Status:              InitiativeStatusPlanning,
		Priority:            priority,
		Progress:            0,
		Budget:              decimal.Zero,
		ActualCost:          decimal.Zero,
	}

	initiative.AddDomainEvent(NewInitiativeCreatedEvent(initiative))

	return initiative, nil
}

// Update updates the initiative's basic information
func (i *Initiative) Update(title, description string, priority Priority) error {
	if i.isTerminal() {
		return shared.NewDomainError("INITIATIVE_CLOSED", "Completed or cancelled initiatives cannot be modified")
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

	i.Title = strings.TrimSpace(title)
	i.Description = description
	i.Priority = priority
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInitiativeUpdatedEvent(i))

	return nil
}

// LinkObjective links the initiative to an objective
func (i *Initiative) LinkObjective(objectiveID *uuid.UUID) {
	i.ObjectiveID = objectiveID
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// AssignOwner assigns an owner to the initiative
func (i *Initiative) AssignOwner(ownerID *uuid.UUID) {
	i.OwnerID = ownerID
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// SetDates sets the start and target dates
func (i *Initiative) SetDates(startDate, targetDate *time.Time) error {
	if startDate != nil && targetDate != nil && targetDate.Before(*startDate) {
		return shared.NewDomainError("INVALID_DATES", "Target date cannot be before start date")
	}

	i.StartDate = startDate
	i.TargetDate = targetDate
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetBudget sets the planned budget
func (i *Initiative) SetBudget(budget decimal.Decimal) error {
	if budget.IsNegative() {
		return shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}

	i.Budget = budget
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// RecordCost sets the actual cost spent so far
func (i *Initiative) RecordCost(actualCost decimal.Decimal) error {
	if actualCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Actual cost cannot be negative")
	}

	i.ActualCost = actualCost
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// UpdateProgress sets a new progress value and returns the history entry
// recording the change. Progress outside [0,100] is rejected.
func (i *Initiative) UpdateProgress(newProgress int, note string, recordedBy uuid.UUID) (*ProgressEntry, error) {
	if newProgress < 0 || newProgress > 100 {
		return nil, shared.NewDomainError("INVALID_PROGRESS", "Progress must be between 0 and 100")
	}
	if i.isTerminal() {
		return nil, shared.NewDomainError("INITIATIVE_CLOSED", "Completed or cancelled initiatives cannot be modified")
	}
	if newProgress == i.Progress {
		return nil, shared.NewDomainError("SAME_PROGRESS", "Progress is unchanged")
	}
	if len(note) > 1000 {
		return nil, shared.NewDomainError("INVALID_NOTE", "Note cannot exceed 1000 characters")
	}

	oldProgress := i.Progress
	i.Progress = newProgress
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	// Moving off zero from planning implies work has started
	if i.Status == InitiativeStatusPlanning && newProgress > 0 {
		i.Status = InitiativeStatusInProgress
	}

	entry := NewProgressEntry(i.TenantID, i.ID, oldProgress, newProgress, note, recordedBy)

	i.AddDomainEvent(NewInitiativeProgressUpdatedEvent(i, oldProgress, newProgress, note))

	return entry, nil
}

// initiativeTransitions defines the allowed status transitions
var initiativeTransitions = map[InitiativeStatus][]InitiativeStatus{
	InitiativeStatusPlanning:   {InitiativeStatusInProgress, InitiativeStatusCancelled},
	InitiativeStatusInProgress: {InitiativeStatusCompleted, InitiativeStatusOnHold, InitiativeStatusCancelled},
	InitiativeStatusOnHold:     {InitiativeStatusInProgress, InitiativeStatusCancelled},
	InitiativeStatusCompleted:  {InitiativeStatusInProgress},
	InitiativeStatusCancelled:  {},
}

// ChangeStatus transitions the initiative to a new status.
// Completing an initiative forces progress to 100.
func (i *Initiative) ChangeStatus(newStatus InitiativeStatus) error {
	if i.Status == newStatus {
		return shared.NewDomainError("SAME_STATUS", "Initiative is already in this status")
	}

	allowed := initiativeTransitions[i.Status]
	valid := false
	for _, s := range allowed {
		if s == newStatus {
			valid = true
			break
		}
	}
	if !valid {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Cannot transition initiative from "+string(i.Status)+" to "+string(newStatus))
	}

	oldStatus := i.Status
	i.Status = newStatus
	now := time.Now()
	i.UpdatedAt = now
	i.IncrementVersion()

	switch newStatus {
	case InitiativeStatusCompleted:
		i.Progress = 100
		i.CompletedAt = &now
	case InitiativeStatusInProgress:
		i.CompletedAt = nil
	}

	i.AddDomainEvent(NewInitiativeStatusChangedEvent(i, oldStatus, newStatus))

	return nil
}

// Cancel soft-deletes the initiative
func (i *Initiative) Cancel() error {
	if i.Status == InitiativeStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Initiative is already cancelled")
	}
	if i.Status == InitiativeStatusCompleted {
		return shared.NewDomainError("INITIATIVE_COMPLETED", "Completed initiatives cannot be cancelled")
	}
	return i.ChangeStatus(InitiativeStatusCancelled)
}

// IsOverBudget returns true when actual cost exceeds the planned budget
func (i *Initiative) IsOverBudget() bool {
	if i.Budget.IsZero() {
		return false
	}
	return i.ActualCost.GreaterThan(i.Budget)
}

// IsOverdue returns true if the target date has passed without completion
func (i *Initiative) IsOverdue() bool {
	if i.TargetDate == nil || i.Status == InitiativeStatusCompleted || i.Status == InitiativeStatusCancelled {
		return false
	}
	return time.Now().After(*i.TargetDate)
}

// CountsTowardObjective returns true if this initiative participates in
// the objective progress rollup
func (i *Initiative) CountsTowardObjective() bool {
	return i.Status != InitiativeStatusCancelled
}

func (i *Initiative) isTerminal() bool {
	return i.Status == InitiativeStatusCompleted || i.Status == InitiativeStatusCancelled
}

func validateInitiativeStatus(status InitiativeStatus) error {
	switch status {
	case InitiativeStatusPlanning, InitiativeStatusInProgress, InitiativeStatusCompleted,
		InitiativeStatusOnHold, InitiativeStatusCancelled:
		return nil
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid initiative status")
	}
}
