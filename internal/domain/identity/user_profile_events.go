package identity

import (
	"github.com/stratix/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeUserProfile = "UserProfile"

// Event type constants
const (
	EventTypeUserProfileCreated = "UserProfileCreated"
	EventTypeUserProfileUpdated = "UserProfileUpdated"
	EventTypeUserRoleChanged    = "UserRoleChanged"
	EventTypeUserStatusChanged  = "UserStatusChanged"
)

// UserProfileCreatedEvent is published when a new user profile is created
type UserProfileCreatedEvent struct {
	shared.BaseDomainEvent
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role"`
}

// NewUserProfileCreatedEvent creates a new UserProfileCreatedEvent
func NewUserProfileCreatedEvent(profile *UserProfile) *UserProfileCreatedEvent {
	return &UserProfileCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserProfileCreated, AggregateTypeUserProfile, profile.ID, profile.TenantID),
		Email:           profile.Email,
		FullName:        profile.FullName,
		Role:            profile.Role,
	}
}

// UserProfileUpdatedEvent is published when a user profile is updated
type UserProfileUpdatedEvent struct {
	shared.BaseDomainEvent
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// NewUserProfileUpdatedEvent creates a new UserProfileUpdatedEvent
func NewUserProfileUpdatedEvent(profile *UserProfile) *UserProfileUpdatedEvent {
	return &UserProfileUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserProfileUpdated, AggregateTypeUserProfile, profile.ID, profile.TenantID),
		Email:           profile.Email,
		FullName:        profile.FullName,
	}
}

// UserRoleChangedEvent is published when a user's role changes
type UserRoleChangedEvent struct {
	shared.BaseDomainEvent
	Email   string   `json:"email"`
	OldRole UserRole `json:"old_role"`
	NewRole UserRole `json:"new_role"`
}

// NewUserRoleChangedEvent creates a new UserRoleChangedEvent
func NewUserRoleChangedEvent(profile *UserProfile, oldRole, newRole UserRole) *UserRoleChangedEvent {
	return &UserRoleChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRoleChanged, AggregateTypeUserProfile, profile.ID, profile.TenantID),
		Email:           profile.Email,
		OldRole:         oldRole,
		NewRole:         newRole,
	}
}

// UserStatusChangedEvent is published when a user's status changes
type UserStatusChangedEvent struct {
	shared.BaseDomainEvent
	Email     string     `json:"email"`
	OldStatus UserStatus `json:"old_status"`
	NewStatus UserStatus `json:"new_status"`
}

// NewUserStatusChangedEvent creates a new UserStatusChangedEvent
func NewUserStatusChangedEvent(profile *UserProfile, oldStatus, newStatus UserStatus) *UserStatusChangedEvent {
	return &UserStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserStatusChanged, AggregateTypeUserProfile, profile.ID, profile.TenantID),
		Email:           profile.Email,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
