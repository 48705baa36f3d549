package okr

import (
	"github.com/stratix/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeActivity = "Activity"

// Event type constants
const (
	EventTypeActivityCreated       = "ActivityCreated"
	EventTypeActivityUpdated       = "ActivityUpdated"
	EventTypeActivityStatusChanged = "ActivityStatusChanged"
)

// ActivityCreatedEvent is published when a new activity is created
type ActivityCreatedEvent struct {
	shared.BaseDomainEvent
	Title string `json:"title"`
}

// NewActivityCreatedEvent creates a new ActivityCreatedEvent
func NewActivityCreatedEvent(activity *Activity) *ActivityCreatedEvent {
	return &ActivityCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeActivityCreated, AggregateTypeActivity, activity.ID, activity.TenantID),
		Title:           activity.Title,
	}
}

// ActivityUpdatedEvent is published when an activity is updated
type ActivityUpdatedEvent struct {
	shared.BaseDomainEvent
	Title string `json:"title"`
}

// NewActivityUpdatedEvent creates a new ActivityUpdatedEvent
func NewActivityUpdatedEvent(activity *Activity) *ActivityUpdatedEvent {
	return &ActivityUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeActivityUpdated, AggregateTypeActivity, activity.ID, activity.TenantID),
		Title:           activity.Title,
	}
}

// ActivityStatusChangedEvent is published when an activity's status changes
type ActivityStatusChangedEvent struct {
	shared.BaseDomainEvent
	Title     string         `json:"title"`
	OldStatus ActivityStatus `json:"old_status"`
	NewStatus ActivityStatus `json:"new_status"`
}

// NewActivityStatusChangedEvent creates a new ActivityStatusChangedEvent
func NewActivityStatusChangedEvent(activity *Activity, oldStatus, newStatus ActivityStatus) *ActivityStatusChangedEvent {
	return &ActivityStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeActivityStatusChanged, AggregateTypeActivity, activity.ID, activity.TenantID),
		Title:           activity.Title,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
