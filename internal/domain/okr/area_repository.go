package okr

import (
	"context"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/shared"
)

// AreaRepository defines the interface for area persistence
type AreaRepository interface {
	// Save creates or updates an area with optimistic locking
	Save(ctx context.Context, area *Area) error

	// FindByID finds an area by ID within the tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Area, error)

	// FindByName finds an area by exact name within the tenant
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Area, error)

	// FindAll finds all areas for the tenant matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Area, int64, error)

	// FindActive finds all active areas for the tenant
	FindActive(ctx context.Context, tenantID uuid.UUID) ([]*Area, error)

	// ExistsByName checks if an area with the given name exists in the tenant
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)

	// Count counts areas for the tenant
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// Delete deletes an area
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
