package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	"github.com/stratix/backend/internal/infrastructure/persistence/models"
	"github.com/stratix/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormInitiativeRepository implements InitiativeRepository using GORM
type GormInitiativeRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormInitiativeRepository creates a new GormInitiativeRepository
func NewGormInitiativeRepository(db *gorm.DB) *GormInitiativeRepository {
	return &GormInitiativeRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormInitiativeRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// Save creates or updates an initiative. Pending domain events are persisted
// to the outbox in the same transaction as the row change.
func (r *GormInitiativeRepository) Save(ctx context.Context, initiative *okr.Initiative) error {
	events := initiative.GetDomainEvents()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.InitiativeModelFromDomain(initiative)
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if r.outboxSaver != nil && len(events) > 0 {
			return r.outboxSaver.SaveEvents(ctx, tx, events...)
		}
		return nil
	})
	if err != nil {
		return err
	}
	initiative.ClearDomainEvents()
	return nil
}

// SaveWithProgress atomically saves the initiative and appends a progress
// history entry in the same transaction. The history append must never be
// visible without the initiative update.
func (r *GormInitiativeRepository) SaveWithProgress(ctx context.Context, initiative *okr.Initiative, entry *okr.ProgressEntry) error {
	events := initiative.GetDomainEvents()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.InitiativeModelFromDomain(initiative)
		result := tx.Model(model).
			Where("id = ? AND version = ?", initiative.ID, initiative.Version-1).
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The initiative has been modified by another transaction")
		}

		entryModel := models.ProgressEntryModelFromDomain(entry)
		if err := tx.Create(entryModel).Error; err != nil {
			return err
		}

		if r.outboxSaver != nil && len(events) > 0 {
			return r.outboxSaver.SaveEvents(ctx, tx, events...)
		}
		return nil
	})
	if err != nil {
		return err
	}
	initiative.ClearDomainEvents()
	return nil
}

// FindByID finds an initiative by ID within the tenant
func (r *GormInitiativeRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*okr.Initiative, error) {
	var model models.InitiativeModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all initiatives for the tenant matching the filter
func (r *GormInitiativeRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter okr.InitiativeFilter) ([]*okr.Initiative, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InitiativeModel{}).Scopes(tenant.TenantScope(tenantID)), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.SortBy, InitiativeSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.SortOrder)

	var initiativeModels []models.InitiativeModel
	if err := query.
		Order(sortField + " " + sortOrder).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&initiativeModels).Error; err != nil {
		return nil, 0, err
	}

	initiatives := make([]*okr.Initiative, len(initiativeModels))
	for i := range initiativeModels {
		initiatives[i] = initiativeModels[i].ToDomain()
	}

	return initiatives, total, nil
}

// FindByObjective finds all initiatives linked to an objective
func (r *GormInitiativeRepository) FindByObjective(ctx context.Context, tenantID, objectiveID uuid.UUID) ([]*okr.Initiative, error) {
	var initiativeModels []models.InitiativeModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND objective_id = ?", tenantID, objectiveID).
		Order("created_at ASC").
		Find(&initiativeModels).Error; err != nil {
		return nil, err
	}

	initiatives := make([]*okr.Initiative, len(initiativeModels))
	for i := range initiativeModels {
		initiatives[i] = initiativeModels[i].ToDomain()
	}

	return initiatives, nil
}

// FindByOwner finds all initiatives owned by a user
func (r *GormInitiativeRepository) FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID) ([]*okr.Initiative, error) {
	var initiativeModels []models.InitiativeModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND owner_id = ?", tenantID, ownerID).
		Order("created_at DESC").
		Find(&initiativeModels).Error; err != nil {
		return nil, err
	}

	initiatives := make([]*okr.Initiative, len(initiativeModels))
	for i := range initiativeModels {
		initiatives[i] = initiativeModels[i].ToDomain()
	}

	return initiatives, nil
}

// SearchByTitle finds initiatives whose title matches the term, case-insensitively
func (r *GormInitiativeRepository) SearchByTitle(ctx context.Context, tenantID uuid.UUID, term string, limit int) ([]*okr.Initiative, error) {
	if limit <= 0 {
		limit = 20
	}

	var initiativeModels []models.InitiativeModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND title ILIKE ?", tenantID, "%"+term+"%").
		Order("updated_at DESC").
		Limit(limit).
		Find(&initiativeModels).Error; err != nil {
		return nil, err
	}

	initiatives := make([]*okr.Initiative, len(initiativeModels))
	for i := range initiativeModels {
		initiatives[i] = initiativeModels[i].ToDomain()
	}

	return initiatives, nil
}

// initiativeStatsRow is the scan target for aggregate stats queries
type initiativeStatsRow struct {
	Status          okr.InitiativeStatus
	Count           int64
	AverageProgress float64
	TotalBudget     decimal.Decimal
	TotalActualCost decimal.Decimal
}

// StatsForTenant computes aggregate stats across the tenant
func (r *GormInitiativeRepository) StatsForTenant(ctx context.Context, tenantID uuid.UUID) (*okr.InitiativeStats, error) {
	return r.stats(ctx, r.db.WithContext(ctx).
		Model(&models.InitiativeModel{}).
		Scopes(tenant.TenantScope(tenantID)))
}

// StatsForArea computes aggregate stats for one area
func (r *GormInitiativeRepository) StatsForArea(ctx context.Context, tenantID, areaID uuid.UUID) (*okr.InitiativeStats, error) {
	return r.stats(ctx, r.db.WithContext(ctx).
		Model(&models.InitiativeModel{}).
		Where("tenant_id = ? AND area_id = ?", tenantID, areaID))
}

func (r *GormInitiativeRepository) stats(ctx context.Context, query *gorm.DB) (*okr.InitiativeStats, error) {
	var rows []initiativeStatsRow
	if err := query.
		Select("status, COUNT(*) as count, COALESCE(AVG(progress), 0) as average_progress, " +
			"COALESCE(SUM(budget), 0) as total_budget, COALESCE(SUM(actual_cost), 0) as total_actual_cost").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &okr.InitiativeStats{
		ByStatus:        make(map[okr.InitiativeStatus]int64),
		TotalBudget:     decimal.Zero,
		TotalActualCost: decimal.Zero,
	}

	// Average progress is computed over non-cancelled initiatives, matching
	// the objective rollup rule.
	var progressSum float64
	var counted int64
	for _, row := range rows {
		stats.Total += row.Count
		stats.ByStatus[row.Status] = row.Count
		stats.TotalBudget = stats.TotalBudget.Add(row.TotalBudget)
		stats.TotalActualCost = stats.TotalActualCost.Add(row.TotalActualCost)
		if row.Status != okr.InitiativeStatusCancelled {
			progressSum += row.AverageProgress * float64(row.Count)
			counted += row.Count
		}
	}
	if counted > 0 {
		stats.AverageProgress = progressSum / float64(counted)
	}

	return stats, nil
}

// CountByArea counts non-cancelled initiatives in an area
func (r *GormInitiativeRepository) CountByArea(ctx context.Context, tenantID, areaID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InitiativeModel{}).
		Where("tenant_id = ? AND area_id = ? AND status <> ?", tenantID, areaID, okr.InitiativeStatusCancelled).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count counts all initiatives for the tenant
func (r *GormInitiativeRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InitiativeModel{}).
		Scopes(tenant.TenantScope(tenantID)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes an initiative
func (r *GormInitiativeRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InitiativeModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies every populated predicate to the query
func (r *GormInitiativeRepository) applyFilter(query *gorm.DB, filter okr.InitiativeFilter) *gorm.DB {
	if filter.AreaID != nil {
		query = query.Where("area_id = ?", *filter.AreaID)
	}
	if filter.ObjectiveID != nil {
		query = query.Where("objective_id = ?", *filter.ObjectiveID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.TargetFrom != nil {
		query = query.Where("target_date >= ?", *filter.TargetFrom)
	}
	if filter.TargetTo != nil {
		query = query.Where("target_date <= ?", *filter.TargetTo)
	}
	return query
}

// Ensure GormInitiativeRepository implements InitiativeRepository
var _ okr.InitiativeRepository = (*GormInitiativeRepository)(nil)
