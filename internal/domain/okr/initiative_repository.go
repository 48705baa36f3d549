package okr

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InitiativeFilter contains filter options for querying initiatives.
// Set fields are combined: results are the intersection of every
// populated predicate.
type InitiativeFilter struct {
	AreaID      *uuid.UUID
	ObjectiveID *uuid.UUID
	Status      *InitiativeStatus
	Priority    *Priority
	OwnerID     *uuid.UUID
	Search      string // case-insensitive title match
	TargetFrom  *time.Time
	TargetTo    *time.Time

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// NewInitiativeFilter creates a filter with default values
func NewInitiativeFilter() InitiativeFilter {
	return InitiativeFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// WithArea sets the area filter
func (f InitiativeFilter) WithArea(areaID uuid.UUID) InitiativeFilter {
	f.AreaID = &areaID
	return f
}

// WithStatus sets the status filter
func (f InitiativeFilter) WithStatus(status InitiativeStatus) InitiativeFilter {
	f.Status = &status
	return f
}

// WithOwner sets the owner filter
func (f InitiativeFilter) WithOwner(ownerID uuid.UUID) InitiativeFilter {
	f.OwnerID = &ownerID
	return f
}

// WithSearch sets the title search term
func (f InitiativeFilter) WithSearch(search string) InitiativeFilter {
	f.Search = search
	return f
}

// Offset returns the offset for pagination
func (f InitiativeFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f InitiativeFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// InitiativeStats holds aggregate numbers used by dashboard KPIs
type InitiativeStats struct {
	Total           int64
	ByStatus        map[InitiativeStatus]int64
	AverageProgress float64
	TotalBudget     decimal.Decimal
	TotalActualCost decimal.Decimal
}

// InitiativeRepository defines the interface for initiative persistence
type InitiativeRepository interface {
	// Save creates or updates an initiative with optimistic locking
	Save(ctx context.Context, initiative *Initiative) error

	// SaveWithProgress atomically saves the initiative and appends a
	// progress history entry in the same transaction
	SaveWithProgress(ctx context.Context, initiative *Initiative, entry *ProgressEntry) error

	// FindByID finds an initiative by ID within the tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Initiative, error)

	// FindAll finds all initiatives for the tenant matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter InitiativeFilter) ([]*Initiative, int64, error)

	// FindByObjective finds all initiatives linked to an objective
	FindByObjective(ctx context.Context, tenantID, objectiveID uuid.UUID) ([]*Initiative, error)

	// FindByOwner finds all initiatives owned by a user
	FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID) ([]*Initiative, error)

	// SearchByTitle finds initiatives whose title matches the term,
	// case-insensitively
	SearchByTitle(ctx context.Context, tenantID uuid.UUID, term string, limit int) ([]*Initiative, error)

	// StatsForTenant computes aggregate stats across the tenant
	StatsForTenant(ctx context.Context, tenantID uuid.UUID) (*InitiativeStats, error)

	// StatsForArea computes aggregate stats for one area
	StatsForArea(ctx context.Context, tenantID, areaID uuid.UUID) (*InitiativeStats, error)

	// CountByArea counts non-cancelled initiatives in an area
	CountByArea(ctx context.Context, tenantID, areaID uuid.UUID) (int64, error)

	// Count counts all initiatives for the tenant
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// Delete deletes an initiative
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
