package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/shared"
)

// InvitationRepository defines the interface for invitation persistence
type InvitationRepository interface {
	// Save creates or updates an invitation with optimistic locking
	Save(ctx context.Context, invitation *Invitation) error

	// FindByID finds an invitation by ID within the tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Invitation, error)

	// FindByToken finds an invitation by its opaque token.
	// Token lookup is global: the acceptor is not yet authenticated.
	FindByToken(ctx context.Context, token string) (*Invitation, error)

	// FindAll finds all invitations for the tenant matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Invitation, int64, error)

	// FindPendingByEmail finds a pending invitation for an email within the tenant
	FindPendingByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*Invitation, error)

	// FindExpired finds pending invitations whose expiry has passed
	FindExpired(ctx context.Context, before time.Time, limit int) ([]*Invitation, error)

	// ExistsPendingByEmail checks if a pending invitation exists for an email
	ExistsPendingByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)

	// Delete deletes an invitation
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
