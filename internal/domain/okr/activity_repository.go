package okr

import (
	"context"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/shared"
)

// ActivityRepository defines the interface for activity persistence
type ActivityRepository interface {
	// Save creates or updates an activity with optimistic locking
	Save(ctx context.Context, activity *Activity) error

	// FindByID finds an activity by ID within the tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Activity, error)

	// FindByInitiative finds all activities of an initiative
	FindByInitiative(ctx context.Context, tenantID, initiativeID uuid.UUID, filter shared.Filter) ([]*Activity, int64, error)

	// FindByAssignee finds all activities assigned to a user
	FindByAssignee(ctx context.Context, tenantID, assigneeID uuid.UUID) ([]*Activity, error)

	// CountByInitiative counts activities of an initiative
	CountByInitiative(ctx context.Context, tenantID, initiativeID uuid.UUID) (int64, error)

	// Delete deletes an activity
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// ProgressEntryRepository defines the interface for progress history persistence
type ProgressEntryRepository interface {
	// Save appends a progress entry
	Save(ctx context.Context, entry *ProgressEntry) error

	// FindByInitiative returns the history of an initiative, newest first
	FindByInitiative(ctx context.Context, tenantID, initiativeID uuid.UUID, filter shared.Filter) ([]*ProgressEntry, int64, error)
}
