package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/shared"
	"github.com/stratix/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormTenantRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a tenant by its unique slug
func (r *GormTenantRepository) FindBySlug(ctx context.Context, slug string) (*identity.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(slug)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all tenants matching the filter
func (r *GormTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	var tenantModels []models.TenantModel
	query := r.db.WithContext(ctx).Model(&models.TenantModel{})

	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR slug ILIKE ?", keyword, keyword)
	}

	// Whitelist-validated sorting to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, TenantSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	offset := (filter.Page - 1) * filter.PageSize
	if offset < 0 {
		offset = 0
	}
	limit := filter.PageSize
	if limit <= 0 {
		limit = 20
	}
	query = query.Offset(offset).Limit(limit)

	if err := query.Find(&tenantModels).Error; err != nil {
		return nil, err
	}

	tenants := make([]identity.Tenant, len(tenantModels))
	for i, model := range tenantModels {
		tenants[i] = *model.ToDomain()
	}

	return tenants, nil
}

// FindByStatus finds tenants by status
func (r *GormTenantRepository) FindByStatus(ctx context.Context, status identity.TenantStatus, filter shared.Filter) ([]identity.Tenant, error) {
	var tenantModels []models.TenantModel
	query := r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Where("status = ?", status)

	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR slug ILIKE ?", keyword, keyword)
	}

	sortField := ValidateSortField(filter.OrderBy, TenantSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&tenantModels).Error; err != nil {
		return nil, err
	}

	tenants := make([]identity.Tenant, len(tenantModels))
	for i, model := range tenantModels {
		tenants[i] = *model.ToDomain()
	}

	return tenants, nil
}

// FindTrialExpiring finds trial tenants whose trial ends within the given days
func (r *GormTenantRepository) FindTrialExpiring(ctx context.Context, withinDays int) ([]identity.Tenant, error) {
	cutoff := time.Now().AddDate(0, 0, withinDays)

	var tenantModels []models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND trial_ends_at IS NOT NULL AND trial_ends_at <= ?", identity.TenantStatusTrial, cutoff).
		Order("trial_ends_at ASC").
		Find(&tenantModels).Error; err != nil {
		return nil, err
	}

	tenants := make([]identity.Tenant, len(tenantModels))
	for i, model := range tenantModels {
		tenants[i] = *model.ToDomain()
	}

	return tenants, nil
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	events := tenant.GetDomainEvents()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.TenantModelFromDomain(tenant)
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
	tenant.ClearDomainEvents()
	return nil
}

// Delete deletes a tenant
func (r *GormTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TenantModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts tenants matching the filter
func (r *GormTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TenantModel{})

	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR slug ILIKE ?", keyword, keyword)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySlug checks if a tenant with the given slug exists
func (r *GormTenantRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TenantModel{}).
		Where("slug = ?", strings.ToLower(slug)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormTenantRepository implements TenantRepository
var _ identity.TenantRepository = (*GormTenantRepository)(nil)
