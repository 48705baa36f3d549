package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/shared"
	"github.com/stratix/backend/internal/infrastructure/persistence/models"
	"github.com/stratix/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormUserProfileRepository implements UserProfileRepository using GORM
type GormUserProfileRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormUserProfileRepository creates a new GormUserProfileRepository
func NewGormUserProfileRepository(db *gorm.DB) *GormUserProfileRepository {
	return &GormUserProfileRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormUserProfileRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// Save creates or updates a user profile
func (r *GormUserProfileRepository) Save(ctx context.Context, profile *identity.UserProfile) error {
	events := profile.GetDomainEvents()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.UserProfileModelFromDomain(profile)
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
	profile.ClearDomainEvents()
	return nil
}

// Delete deletes a user profile within the tenant
func (r *GormUserProfileRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UserProfileModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a user profile by ID within the tenant
func (r *GormUserProfileRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.UserProfile, error) {
	var model models.UserProfileModel
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

// FindByEmail finds a user profile by email within the tenant
func (r *GormUserProfileRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.UserProfile, error) {
	var model models.UserProfileModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND email = ?", tenantID, strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmailGlobal finds a user profile by email across tenants
func (r *GormUserProfileRepository) FindByEmailGlobal(ctx context.Context, email string) (*identity.UserProfile, error) {
	var model models.UserProfileModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all profiles for the tenant matching the filter
func (r *GormUserProfileRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter identity.UserProfileFilter) ([]*identity.UserProfile, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UserProfileModel{}).Scopes(tenant.TenantScope(tenantID))

	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		query = query.Where("email ILIKE ? OR full_name ILIKE ?", keyword, keyword)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.AreaID != nil {
		query = query.Where("area_id = ?", *filter.AreaID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.SortBy, UserProfileSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.SortOrder)

	var profileModels []models.UserProfileModel
	if err := query.
		Order(sortField + " " + sortOrder).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&profileModels).Error; err != nil {
		return nil, 0, err
	}

	profiles := make([]*identity.UserProfile, len(profileModels))
	for i := range profileModels {
		profiles[i] = profileModels[i].ToDomain()
	}

	return profiles, total, nil
}

// FindByArea finds all profiles scoped to a specific area
func (r *GormUserProfileRepository) FindByArea(ctx context.Context, tenantID, areaID uuid.UUID) ([]*identity.UserProfile, error) {
	var profileModels []models.UserProfileModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND area_id = ?", tenantID, areaID).
		Order("full_name ASC").
		Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]*identity.UserProfile, len(profileModels))
	for i := range profileModels {
		profiles[i] = profileModels[i].ToDomain()
	}

	return profiles, nil
}

// ExistsByEmail checks if an email already exists within the tenant
func (r *GormUserProfileRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserProfileModel{}).
		Where("tenant_id = ? AND email = ?", tenantID, strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the total number of profiles for the tenant
func (r *GormUserProfileRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserProfileModel{}).
		Scopes(tenant.TenantScope(tenantID)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormUserProfileRepository implements UserProfileRepository
var _ identity.UserProfileRepository = (*GormUserProfileRepository)(nil)
