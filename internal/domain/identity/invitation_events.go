package identity

import (
	"github.com/stratix/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeInvitation = "Invitation"

// Event type constants
const (
	EventTypeInvitationCreated  = "InvitationCreated"
	EventTypeInvitationAccepted = "InvitationAccepted"
	EventTypeInvitationRevoked  = "InvitationRevoked"
)

// InvitationCreatedEvent is published when a new invitation is created
type InvitationCreatedEvent struct {
	shared.BaseDomainEvent
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// NewInvitationCreatedEvent creates a new InvitationCreatedEvent
func NewInvitationCreatedEvent(invitation *Invitation) *InvitationCreatedEvent {
	return &InvitationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvitationCreated, AggregateTypeInvitation, invitation.ID, invitation.TenantID),
		Email:           invitation.Email,
		Role:            invitation.Role,
	}
}

// InvitationAcceptedEvent is published when an invitation is accepted
type InvitationAcceptedEvent struct {
	shared.BaseDomainEvent
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// NewInvitationAcceptedEvent creates a new InvitationAcceptedEvent
func NewInvitationAcceptedEvent(invitation *Invitation) *InvitationAcceptedEvent {
	return &InvitationAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvitationAccepted, AggregateTypeInvitation, invitation.ID, invitation.TenantID),
		Email:           invitation.Email,
		Role:            invitation.Role,
	}
}

// InvitationRevokedEvent is published when an invitation is revoked
type InvitationRevokedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewInvitationRevokedEvent creates a new InvitationRevokedEvent
func NewInvitationRevokedEvent(invitation *Invitation) *InvitationRevokedEvent {
	return &InvitationRevokedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvitationRevoked, AggregateTypeInvitation, invitation.ID, invitation.TenantID),
		Email:           invitation.Email,
	}
}
