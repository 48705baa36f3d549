package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/shared"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByID finds a tenant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindBySlug finds a tenant by its unique slug
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)

	// FindAll finds all tenants matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)

	// FindByStatus finds tenants by status
	FindByStatus(ctx context.Context, status TenantStatus, filter shared.Filter) ([]Tenant, error)

	// FindTrialExpiring finds tenants whose trial is expiring within the given days
	FindTrialExpiring(ctx context.Context, withinDays int) ([]Tenant, error)

	// Save creates or updates a tenant
	Save(ctx context.Context, tenant *Tenant) error

	// Delete deletes a tenant
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts tenants matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsBySlug checks if a tenant with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
