package okr

import (
	"github.com/stratix/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeArea = "Area"

// Event type constants
const (
	EventTypeAreaCreated  = "AreaCreated"
	EventTypeAreaUpdated  = "AreaUpdated"
	EventTypeAreaArchived = "AreaArchived"
)

// AreaCreatedEvent is published when a new area is created
type AreaCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewAreaCreatedEvent creates a new AreaCreatedEvent
func NewAreaCreatedEvent(area *Area) *AreaCreatedEvent {
	return &AreaCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAreaCreated, AggregateTypeArea, area.ID, area.TenantID),
		Name:            area.Name,
	}
}

// AreaUpdatedEvent is published when an area is updated
type AreaUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewAreaUpdatedEvent creates a new AreaUpdatedEvent
func NewAreaUpdatedEvent(area *Area) *AreaUpdatedEvent {
	return &AreaUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAreaUpdated, AggregateTypeArea, area.ID, area.TenantID),
		Name:            area.Name,
	}
}

// AreaArchivedEvent is published when an area is archived
type AreaArchivedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewAreaArchivedEvent creates a new AreaArchivedEvent
func NewAreaArchivedEvent(area *Area) *AreaArchivedEvent {
	return &AreaArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAreaArchived, AggregateTypeArea, area.ID, area.TenantID),
		Name:            area.Name,
	}
}
