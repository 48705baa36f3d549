package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	"github.com/stratix/backend/internal/infrastructure/persistence/models"
	"github.com/stratix/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormAreaRepository implements AreaRepository using GORM
type GormAreaRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormAreaRepository creates a new GormAreaRepository
func NewGormAreaRepository(db *gorm.DB) *GormAreaRepository {
	return &GormAreaRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormAreaRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// Save creates or updates an area. Pending domain events are persisted to
// the outbox in the same transaction as the row change.
func (r *GormAreaRepository) Save(ctx context.Context, area *okr.Area) error {
	events := area.GetDomainEvents()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.AreaModelFromDomain(area)
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
	area.ClearDomainEvents()
	return nil
}

// FindByID finds an area by ID within the tenant
func (r *GormAreaRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*okr.Area, error) {
	var model models.AreaModel
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

// FindByName finds an area by exact name within the tenant
func (r *GormAreaRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*okr.Area, error) {
	var model models.AreaModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name = ?", tenantID, strings.TrimSpace(name)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all areas for the tenant matching the filter
func (r *GormAreaRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*okr.Area, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AreaModel{}).Scopes(tenant.TenantScope(tenantID))

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.OrderBy, AreaSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var areaModels []models.AreaModel
	if err := query.Find(&areaModels).Error; err != nil {
		return nil, 0, err
	}

	areas := make([]*okr.Area, len(areaModels))
	for i := range areaModels {
		areas[i] = areaModels[i].ToDomain()
	}

	return areas, total, nil
}

// FindActive finds all active areas for the tenant
func (r *GormAreaRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]*okr.Area, error) {
	var areaModels []models.AreaModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, okr.AreaStatusActive).
		Order("name ASC").
		Find(&areaModels).Error; err != nil {
		return nil, err
	}

	areas := make([]*okr.Area, len(areaModels))
	for i := range areaModels {
		areas[i] = areaModels[i].ToDomain()
	}

	return areas, nil
}

// ExistsByName checks if an area with the given name exists in the tenant
func (r *GormAreaRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AreaModel{}).
		Where("tenant_id = ? AND name = ?", tenantID, strings.TrimSpace(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts areas for the tenant
func (r *GormAreaRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AreaModel{}).
		Scopes(tenant.TenantScope(tenantID)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes an area
func (r *GormAreaRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AreaModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormAreaRepository implements AreaRepository
var _ okr.AreaRepository = (*GormAreaRepository)(nil)
