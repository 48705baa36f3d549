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
	"github.com/stratix/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormInvitationRepository implements InvitationRepository using GORM
type GormInvitationRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormInvitationRepository creates a new GormInvitationRepository
func NewGormInvitationRepository(db *gorm.DB) *GormInvitationRepository {
	return &GormInvitationRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormInvitationRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// Save creates or updates an invitation
func (r *GormInvitationRepository) Save(ctx context.Context, invitation *identity.Invitation) error {
	events := invitation.GetDomainEvents()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.InvitationModelFromDomain(invitation)
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
	invitation.ClearDomainEvents()
	return nil
}

// FindByID finds an invitation by ID within the tenant
func (r *GormInvitationRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.Invitation, error) {
	var model models.InvitationModel
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

// FindByToken finds an invitation by its opaque token
func (r *GormInvitationRepository) FindByToken(ctx context.Context, token string) (*identity.Invitation, error) {
	if token == "" {
		return nil, shared.ErrNotFound
	}
	var model models.InvitationModel
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all invitations for the tenant matching the filter
func (r *GormInvitationRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*identity.Invitation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InvitationModel{}).Scopes(tenant.TenantScope(tenantID))

	if filter.Search != "" {
		query = query.Where("email ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.OrderBy, InvitationSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var invitationModels []models.InvitationModel
	if err := query.Find(&invitationModels).Error; err != nil {
		return nil, 0, err
	}

	invitations := make([]*identity.Invitation, len(invitationModels))
	for i := range invitationModels {
		invitations[i] = invitationModels[i].ToDomain()
	}

	return invitations, total, nil
}

// FindPendingByEmail finds a pending invitation for an email within the tenant
func (r *GormInvitationRepository) FindPendingByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.Invitation, error) {
	var model models.InvitationModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND email = ? AND status = ?", tenantID, strings.ToLower(email), identity.InvitationStatusPending).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindExpired finds pending invitations whose expiry has passed
func (r *GormInvitationRepository) FindExpired(ctx context.Context, before time.Time, limit int) ([]*identity.Invitation, error) {
	if limit <= 0 {
		limit = 100
	}

	var invitationModels []models.InvitationModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", identity.InvitationStatusPending, before).
		Order("expires_at ASC").
		Limit(limit).
		Find(&invitationModels).Error; err != nil {
		return nil, err
	}

	invitations := make([]*identity.Invitation, len(invitationModels))
	for i := range invitationModels {
		invitations[i] = invitationModels[i].ToDomain()
	}

	return invitations, nil
}

// ExistsPendingByEmail checks if a pending invitation exists for an email
func (r *GormInvitationRepository) ExistsPendingByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvitationModel{}).
		Where("tenant_id = ? AND email = ? AND status = ?", tenantID, strings.ToLower(email), identity.InvitationStatusPending).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete deletes an invitation
func (r *GormInvitationRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvitationModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormInvitationRepository implements InvitationRepository
var _ identity.InvitationRepository = (*GormInvitationRepository)(nil)
