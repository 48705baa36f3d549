package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserProfileRepository defines the interface for user profile persistence
type UserProfileRepository interface {
	// Save creates or updates a user profile with optimistic locking
	Save(ctx context.Context, profile *UserProfile) error

	// Delete deletes a user profile by ID within the tenant
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// FindByID finds a user profile by ID within the tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*UserProfile, error)

	// FindByEmail finds a user profile by email within the tenant
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*UserProfile, error)

	// FindByEmailGlobal finds a user profile by email across tenants.
	// Used for tenant resolution during login and assistant webhook calls.
	FindByEmailGlobal(ctx context.Context, email string) (*UserProfile, error)

	// FindAll returns all profiles for the tenant matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter UserProfileFilter) ([]*UserProfile, int64, error)

	// FindByArea finds all profiles scoped to a specific area
	FindByArea(ctx context.Context, tenantID, areaID uuid.UUID) ([]*UserProfile, error)

	// ExistsByEmail checks if an email already exists within the tenant
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)

	// Count returns the total number of profiles for the tenant
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// UserProfileFilter contains filter options for querying user profiles
type UserProfileFilter struct {
	// Search keyword for email or full name
	Keyword string

	// Filter by status
	Status *UserStatus

	// Filter by role
	Role *UserRole

	// Filter by area scope
	AreaID *uuid.UUID

	// Pagination
	Page     int
	PageSize int

	// Sorting
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// NewUserProfileFilter creates a new filter with default values
func NewUserProfileFilter() UserProfileFilter {
	return UserProfileFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// WithKeyword sets the search keyword
func (f UserProfileFilter) WithKeyword(keyword string) UserProfileFilter {
	f.Keyword = keyword
	return f
}

// WithStatus sets the status filter
func (f UserProfileFilter) WithStatus(status UserStatus) UserProfileFilter {
	f.Status = &status
	return f
}

// WithRole sets the role filter
func (f UserProfileFilter) WithRole(role UserRole) UserProfileFilter {
	f.Role = &role
	return f
}

// WithPagination sets pagination parameters
func (f UserProfileFilter) WithPagination(page, pageSize int) UserProfileFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f UserProfileFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f UserProfileFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
