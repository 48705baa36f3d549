package okr

import (
	"github.com/stratix/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeObjective = "Objective"

// Event type constants
const (
	EventTypeObjectiveCreated         = "ObjectiveCreated"
	EventTypeObjectiveUpdated         = "ObjectiveUpdated"
	EventTypeObjectiveStatusChanged   = "ObjectiveStatusChanged"
	EventTypeObjectiveProgressChanged = "ObjectiveProgressChanged"
)

// ObjectiveCreatedEvent is published when a new objective is created
type ObjectiveCreatedEvent struct {
	shared.BaseDomainEvent
	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
}

// NewObjectiveCreatedEvent creates a new ObjectiveCreatedEvent
func NewObjectiveCreatedEvent(objective *Objective) *ObjectiveCreatedEvent {
	return &ObjectiveCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeObjectiveCreated, AggregateTypeObjective, objective.ID, objective.TenantID),
		Title:           objective.Title,
		Priority:        objective.Priority,
	}
}

// ObjectiveUpdatedEvent is published when an objective is updated
type ObjectiveUpdatedEvent struct {
	shared.BaseDomainEvent
	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
}

// NewObjectiveUpdatedEvent creates a new ObjectiveUpdatedEvent
func NewObjectiveUpdatedEvent(objective *Objective) *ObjectiveUpdatedEvent {
	return &ObjectiveUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeObjectiveUpdated, AggregateTypeObjective, objective.ID, objective.TenantID),
		Title:           objective.Title,
		Priority:        objective.Priority,
	}
}

// ObjectiveStatusChangedEvent is published when an objective's status changes
type ObjectiveStatusChangedEvent struct {
	shared.BaseDomainEvent
	Title     string          `json:"title"`
	OldStatus ObjectiveStatus `json:"old_status"`
	NewStatus ObjectiveStatus `json:"new_status"`
}

// NewObjectiveStatusChangedEvent creates a new ObjectiveStatusChangedEvent
func NewObjectiveStatusChangedEvent(objective *Objective, oldStatus, newStatus ObjectiveStatus) *ObjectiveStatusChangedEvent {
	return &ObjectiveStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeObjectiveStatusChanged, AggregateTypeObjective, objective.ID, objective.TenantID),
		Title:           objective.Title,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// ObjectiveProgressChangedEvent is published when the rolled-up progress changes
type ObjectiveProgressChangedEvent struct {
	shared.BaseDomainEvent
	Title       string `json:"title"`
	OldProgress int    `json:"old_progress"`
	NewProgress int    `json:"new_progress"`
}

// NewObjectiveProgressChangedEvent creates a new ObjectiveProgressChangedEvent
func NewObjectiveProgressChangedEvent(objective *Objective, oldProgress, newProgress int) *ObjectiveProgressChangedEvent {
	return &ObjectiveProgressChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeObjectiveProgressChanged, AggregateTypeObjective, objective.ID, objective.TenantID),
		Title:           objective.Title,
		OldProgress:     oldProgress,
		NewProgress:     newProgress,
	}
}
