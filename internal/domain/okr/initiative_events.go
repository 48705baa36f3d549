package okr

import (
	"github.com/shopspring/decimal"
	"github.com/stratix/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeInitiative = "Initiative"

// Event type constants
const (
	EventTypeInitiativeCreated         = "InitiativeCreated"
	EventTypeInitiativeUpdated         = "InitiativeUpdated"
	EventTypeInitiativeStatusChanged   = "InitiativeStatusChanged"
	EventTypeInitiativeProgressUpdated = "InitiativeProgressUpdated"
)

// InitiativeCreatedEvent is published when a new initiative is created
type InitiativeCreatedEvent struct {
	shared.BaseDomainEvent
	Title    string           `json:"title"`
	Status   InitiativeStatus `json:"status"`
	Priority Priority         `json:"priority"`
}

// NewInitiativeCreatedEvent creates a new InitiativeCreatedEvent
func NewInitiativeCreatedEvent(initiative *Initiative) *InitiativeCreatedEvent {
	return &InitiativeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInitiativeCreated, AggregateTypeInitiative, initiative.ID, initiative.TenantID),
		Title:           initiative.Title,
		Status:          initiative.Status,
		Priority:        initiative.Priority,
	}
}

// InitiativeUpdatedEvent is published when an initiative is updated
type InitiativeUpdatedEvent struct {
	shared.BaseDomainEvent
	Title      string          `json:"title"`
	Priority   Priority        `json:"priority"`
	Budget     decimal.Decimal `json:"budget"`
	ActualCost decimal.Decimal `json:"actual_cost"`
}

// NewInitiativeUpdatedEvent creates a new InitiativeUpdatedEvent
func NewInitiativeUpdatedEvent(initiative *Initiative) *InitiativeUpdatedEvent {
	return &InitiativeUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInitiativeUpdated, AggregateTypeInitiative, initiative.ID, initiative.TenantID),
		Title:           initiative.Title,
		Priority:        initiative.Priority,
		Budget:          initiative.Budget,
		ActualCost:      initiative.ActualCost,
	}
}

// InitiativeStatusChangedEvent is published when an initiative's status changes
type InitiativeStatusChangedEvent struct {
	shared.BaseDomainEvent
	Title     string           `json:"title"`
	OldStatus InitiativeStatus `json:"old_status"`
	NewStatus InitiativeStatus `json:"new_status"`
}

// NewInitiativeStatusChangedEvent creates a new InitiativeStatusChangedEvent
func NewInitiativeStatusChangedEvent(initiative *Initiative, oldStatus, newStatus InitiativeStatus) *InitiativeStatusChangedEvent {
	return &InitiativeStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInitiativeStatusChanged, AggregateTypeInitiative, initiative.ID, initiative.TenantID),
		Title:           initiative.Title,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// InitiativeProgressUpdatedEvent is published when an initiative's progress changes
type InitiativeProgressUpdatedEvent struct {
	shared.BaseDomainEvent
	Title       string `json:"title"`
	OldProgress int    `json:"old_progress"`
	NewProgress int    `json:"new_progress"`
	Note        string `json:"note,omitempty"`
}

// NewInitiativeProgressUpdatedEvent creates a new InitiativeProgressUpdatedEvent
func NewInitiativeProgressUpdatedEvent(initiative *Initiative, oldProgress, newProgress int, note string) *InitiativeProgressUpdatedEvent {
	return &InitiativeProgressUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInitiativeProgressUpdated, AggregateTypeInitiative, initiative.ID, initiative.TenantID),
		Title:           initiative.Title,
		OldProgress:     oldProgress,
		NewProgress:     newProgress,
		Note:            note,
	}
}
