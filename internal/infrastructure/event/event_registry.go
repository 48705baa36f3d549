package event

import (
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/okr"
)

// RegisterAllEvents registers all domain event types with the serializer
// This is required for the OutboxProcessor to deserialize events from the outbox table
func RegisterAllEvents(serializer *EventSerializer) {
	// Identity domain - Tenant events
	serializer.Register(identity.EventTypeTenantCreated, &identity.TenantCreatedEvent{})
	serializer.Register(identity.EventTypeTenantUpdated, &identity.TenantUpdatedEvent{})
	serializer.Register(identity.EventTypeTenantStatusChanged, &identity.TenantStatusChangedEvent{})
	serializer.Register(identity.EventTypeTenantPlanChanged, &identity.TenantPlanChangedEvent{})

	// Identity domain - User Profile events
	serializer.Register(identity.EventTypeUserProfileCreated, &identity.UserProfileCreatedEvent{})
	serializer.Register(identity.EventTypeUserProfileUpdated, &identity.UserProfileUpdatedEvent{})
	serializer.Register(identity.EventTypeUserRoleChanged, &identity.UserRoleChangedEvent{})
	serializer.Register(identity.EventTypeUserStatusChanged, &identity.UserStatusChangedEvent{})

	// Identity domain - Invitation events
	serializer.Register(identity.EventTypeInvitationCreated, &identity.InvitationCreatedEvent{})
	serializer.Register(identity.EventTypeInvitationAccepted, &identity.InvitationAcceptedEvent{})
	serializer.Register(identity.EventTypeInvitationRevoked, &identity.InvitationRevokedEvent{})

	// OKR domain - Area events
	serializer.Register(okr.EventTypeAreaCreated, &okr.AreaCreatedEvent{})
	serializer.Register(okr.EventTypeAreaUpdated, &okr.AreaUpdatedEvent{})
	serializer.Register(okr.EventTypeAreaArchived, &okr.AreaArchivedEvent{})

	// OKR domain - Objective events
	serializer.Register(okr.EventTypeObjectiveCreated, &okr.ObjectiveCreatedEvent{})
	serializer.Register(okr.EventTypeObjectiveUpdated, &okr.ObjectiveUpdatedEvent{})
	serializer.Register(okr.EventTypeObjectiveStatusChanged, &okr.ObjectiveStatusChangedEvent{})
	serializer.Register(okr.EventTypeObjectiveProgressChanged, &okr.ObjectiveProgressChangedEvent{})

	// OKR domain - Initiative events
	serializer.Register(okr.EventTypeInitiativeCreated, &okr.InitiativeCreatedEvent{})
	serializer.Register(okr.EventTypeInitiativeUpdated, &okr.InitiativeUpdatedEvent{})
	serializer.Register(okr.EventTypeInitiativeStatusChanged, &okr.InitiativeStatusChangedEvent{})
	serializer.Register(okr.EventTypeInitiativeProgressUpdated, &okr.InitiativeProgressUpdatedEvent{})

	// OKR domain - Activity events
	serializer.Register(okr.EventTypeActivityCreated, &okr.ActivityCreatedEvent{})
	serializer.Register(okr.EventTypeActivityUpdated, &okr.ActivityUpdatedEvent{})
	serializer.Register(okr.EventTypeActivityStatusChanged, &okr.ActivityStatusChangedEvent{})
}
