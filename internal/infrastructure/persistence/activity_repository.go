package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	"github.com/stratix/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormActivityRepository implements ActivityRepository using GORM
type GormActivityRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormActivityRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// Save creates or updates an activity
func (r *GormActivityRepository) Save(ctx context.Context, activity *okr.Activity) error {
	events := activity.GetDomainEvents()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.ActivityModelFromDomain(activity)
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
	activity.ClearDomainEvents()
	return nil
}

// FindByID finds an activity by ID within the tenant
func (r *GormActivityRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*okr.Activity, error) {
	var model models.ActivityModel
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

// FindByInitiative finds all activities of an initiative
func (r *GormActivityRepository) FindByInitiative(ctx context.Context, tenantID, initiativeID uuid.UUID, filter shared.Filter) ([]*okr.Activity, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityModel{}).
		Where("tenant_id = ? AND initiative_id = ?", tenantID, initiativeID)

	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.OrderBy, ActivitySortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var activityModels []models.ActivityModel
	if err := query.Find(&activityModels).Error; err != nil {
		return nil, 0, err
	}

	activities := make([]*okr.Activity, len(activityModels))
	for i := range activityModels {
		activities[i] = activityModels[i].ToDomain()
	}

	return activities, total, nil
}

// FindByAssignee finds all activities assigned to a user
func (r *GormActivityRepository) FindByAssignee(ctx context.Context, tenantID, assigneeID uuid.UUID) ([]*okr.Activity, error) {
	var activityModels []models.ActivityModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND assignee_id = ?", tenantID, assigneeID).
		Order("due_date ASC NULLS LAST").
		Find(&activityModels).Error; err != nil {
		return nil, err
	}

	activities := make([]*okr.Activity, len(activityModels))
	for i := range activityModels {
		activities[i] = activityModels[i].ToDomain()
	}

	return activities, nil
}

// CountByInitiative counts activities of an initiative
func (r *GormActivityRepository) CountByInitiative(ctx context.Context, tenantID, initiativeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ActivityModel{}).
		Where("tenant_id = ? AND initiative_id = ?", tenantID, initiativeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes an activity
func (r *GormActivityRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ActivityModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormActivityRepository implements ActivityRepository
var _ okr.ActivityRepository = (*GormActivityRepository)(nil)

// GormProgressEntryRepository implements ProgressEntryRepository using GORM
type GormProgressEntryRepository struct {
	db *gorm.DB
}

// NewGormProgressEntryRepository creates a new GormProgressEntryRepository
func NewGormProgressEntryRepository(db *gorm.DB) *GormProgressEntryRepository {
	return &GormProgressEntryRepository{db: db}
}

// Save appends a progress entry
func (r *GormProgressEntryRepository) Save(ctx context.Context, entry *okr.ProgressEntry) error {
	model := models.ProgressEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByInitiative returns the history of an initiative, newest first
func (r *GormProgressEntryRepository) FindByInitiative(ctx context.Context, tenantID, initiativeID uuid.UUID, filter shared.Filter) ([]*okr.ProgressEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProgressEntryModel{}).
		Where("tenant_id = ? AND initiative_id = ?", tenantID, initiativeID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("recorded_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var entryModels []models.ProgressEntryModel
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*okr.ProgressEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}

	return entries, total, nil
}

// Ensure GormProgressEntryRepository implements ProgressEntryRepository
var _ okr.ProgressEntryRepository = (*GormProgressEntryRepository)(nil)
