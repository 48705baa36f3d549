package okr

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ObjectiveFilter contains filter options for querying objectives.
// Set fields are combined: results match every populated predicate.
type ObjectiveFilter struct {
	AreaID     *uuid.UUID
	Status     *ObjectiveStatus
	Priority   *Priority
	Search     string // case-insensitive title match
	TargetFrom *time.Time
	TargetTo   *time.Time

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// NewObjectiveFilter creates a filter with default values
func NewObjectiveFilter() ObjectiveFilter {
	return ObjectiveFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// Offset returns the offset for pagination
func (f ObjectiveFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f ObjectiveFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// ObjectiveRepository defines the interface for objective persistence
type ObjectiveRepository interface {
	// Save creates or updates an objective with optimistic locking
	Save(ctx context.Context, objective *Objective) error

	// FindByID finds an objective by ID within the tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Objective, error)

	// FindAll finds all objectives for the tenant matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter ObjectiveFilter) ([]*Objective, int64, error)

	// FindByArea finds all objectives in an area
	FindByArea(ctx context.Context, tenantID, areaID uuid.UUID) ([]*Objective, error)

	// CountByArea counts objectives in an area
	CountByArea(ctx context.Context, tenantID, areaID uuid.UUID) (int64, error)

	// Delete deletes an objective
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
