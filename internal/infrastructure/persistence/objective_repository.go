package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	"github.com/stratix/backend/internal/infrastructure/persistence/models"
	"github.com/stratix/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormObjectiveRepository implements ObjectiveRepository using GORM
type GormObjectiveRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormObjectiveRepository creates a new GormObjectiveRepository
func NewGormObjectiveRepository(db *gorm.DB) *GormObjectiveRepository {
	return &GormObjectiveRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormObjectiveRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// Save creates or updates an objective
func (r *GormObjectiveRepository) Save(ctx context.Context, objective *okr.Objective) error {
	events := objective.GetDomainEvents()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.ObjectiveModelFromDomain(objective)
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
	objective.ClearDomainEvents()
	return nil
}

// FindByID finds an objective by ID within the tenant
func (r *GormObjectiveRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*okr.Objective, error) {
	var model models.ObjectiveModel
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

// FindAll finds all objectives for the tenant matching the filter
func (r *GormObjectiveRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter okr.ObjectiveFilter) ([]*okr.Objective, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ObjectiveModel{}).Scopes(tenant.TenantScope(tenantID)), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.SortBy, ObjectiveSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.SortOrder)

	var objectiveModels []models.ObjectiveModel
	if err := query.
		Order(sortField + " " + sortOrder).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&objectiveModels).Error; err != nil {
		return nil, 0, err
	}

	objectives := make([]*okr.Objective, len(objectiveModels))
	for i := range objectiveModels {
		objectives[i] = objectiveModels[i].ToDomain()
	}

	return objectives, total, nil
}

// FindByArea finds all objectives in an area
func (r *GormObjectiveRepository) FindByArea(ctx context.Context, tenantID, areaID uuid.UUID) ([]*okr.Objective, error) {
	var objectiveModels []models.ObjectiveModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND area_id = ?", tenantID, areaID).
		Order("created_at DESC").
		Find(&objectiveModels).Error; err != nil {
		return nil, err
	}

	objectives := make([]*okr.Objective, len(objectiveModels))
	for i := range objectiveModels {
		objectives[i] = objectiveModels[i].ToDomain()
	}

	return objectives, nil
}

// CountByArea counts objectives in an area
func (r *GormObjectiveRepository) CountByArea(ctx context.Context, tenantID, areaID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ObjectiveModel{}).
		Where("tenant_id = ? AND area_id = ?", tenantID, areaID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes an objective
func (r *GormObjectiveRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ObjectiveModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies every populated predicate to the query
func (r *GormObjectiveRepository) applyFilter(query *gorm.DB, filter okr.ObjectiveFilter) *gorm.DB {
	if filter.AreaID != nil {
		query = query.Where("area_id = ?", *filter.AreaID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
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

// Ensure GormObjectiveRepository implements ObjectiveRepository
var _ okr.ObjectiveRepository = (*GormObjectiveRepository)(nil)
