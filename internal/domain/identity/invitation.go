package identity

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/shared"
)

// InvitationStatus represents the status of an invitation
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRevoked  InvitationStatus = "revoked"
	InvitationStatusExpired  InvitationStatus = "expired"
)

// DefaultInvitationTTL is how long an invitation stays valid
const DefaultInvitationTTL = 7 * 24 * time.Hour

// Invitation represents an invitation for a user to join a tenant
type Invitation struct {
	shared.TenantAggregateRoot
	Email      string
	Role       UserRole
	AreaID     *uuid.UUID // Pre-assigned area scope for manager invitations
	Token      string
	Status     InvitationStatus
	InvitedBy  uuid.UUID
	ExpiresAt  time.Time
	AcceptedAt *time.Time
}

// NewInvitation creates a new pending invitation with a fresh token
func NewInvitation(tenantID, invitedBy uuid.UUID, email string, role UserRole, areaID *uuid.UUID) (*Invitation, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}
	if areaID != nil && role != RoleManager {
		return nil, shared.NewDomainError("AREA_SCOPE_NOT_ALLOWED", "Only manager invitations can carry an area scope")
	}
	if invitedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVITER", "Inviter cannot be empty")
	}

	token, err := generateInvitationToken()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_GENERATION_ERROR", "Failed to generate invitation token")
	}

	invitation := &Invitation{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, invitedBy),
		Email:               strings.ToLower(strings.TrimSpace(email)),
		Role:                role,
		AreaID:              areaID,
		Token:               token,
		Status:              InvitationStatusPending,
		InvitedBy:           invitedBy,
		ExpiresAt:           time.Now().Add(DefaultInvitationTTL),
	}

	invitation.AddDomainEvent(NewInvitationCreatedEvent(invitation))

	return invitation, nil
}

// Accept marks the invitation as accepted.
// Expired invitations are flipped to expired and rejected.
func (i *Invitation) Accept() error {
	switch i.Status {
	case InvitationStatusAccepted:
		return shared.NewDomainError("ALREADY_ACCEPTED", "Invitation has already been accepted")
	case InvitationStatusRevoked:
		return shared.NewDomainError("INVITATION_REVOKED", "Invitation has been revoked")
	case InvitationStatusExpired:
		return shared.NewDomainError("INVITATION_EXPIRED", "Invitation has expired")
	}

	if i.IsExpired() {
		i.MarkExpired()
		return shared.NewDomainError("INVITATION_EXPIRED", "Invitation has expired")
	}

	now := time.Now()
	i.Status = InvitationStatusAccepted
	i.AcceptedAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewInvitationAcceptedEvent(i))

	return nil
}

// Revoke revokes a pending invitation
func (i *Invitation) Revoke() error {
	if i.Status != InvitationStatusPending {
		return shared.NewDomainError("NOT_PENDING", "Only pending invitations can be revoked")
	}

	i.Status = InvitationStatusRevoked
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInvitationRevokedEvent(i))

	return nil
}

// MarkExpired flips a stale pending invitation to expired
func (i *Invitation) MarkExpired() {
	if i.Status != InvitationStatusPending {
		return
	}

	i.Status = InvitationStatusExpired
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// IsExpired returns true if the expiry window has passed
func (i *Invitation) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// IsPending returns true if the invitation can still be accepted
func (i *Invitation) IsPending() bool {
	return i.Status == InvitationStatusPending && !i.IsExpired()
}

// generateInvitationToken returns a 64-character hex token
func generateInvitationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
