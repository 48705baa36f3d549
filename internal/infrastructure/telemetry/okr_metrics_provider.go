// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOKRMetricsProvider implements OKRMetricsProvider using GORM.
// It queries the initiatives and objectives tables directly for aggregated metrics.
type GormOKRMetricsProvider struct {
	db *gorm.DB
}

// NewGormOKRMetricsProvider creates a new GormOKRMetricsProvider.
func NewGormOKRMetricsProvider(db *gorm.DB) *GormOKRMetricsProvider {
	return &GormOKRMetricsProvider{db: db}
}

// GetActiveInitiativeCountByArea returns the count of non-terminal initiatives per area for a tenant.
func (p *GormOKRMetricsProvider) GetActiveInitiativeCountByArea(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]int64, error) {
	type result struct {
		AreaID uuid.UUID `gorm:"column:area_id"`
		Count  int64     `gorm:"column:count"`
	}

	var results []result
	err := p.db.WithContext(ctx).
		Table("initiatives").
		Select("area_id, COUNT(*) as count").
		Where("tenant_id = ? AND status NOT IN ?", tenantID, []string{"completed", "cancelled"}).
		Group("area_id").
		Find(&results).Error

	if err != nil {
		return nil, err
	}

	m := make(map[uuid.UUID]int64, len(results))
	for _, r := range results {
		m[r.AreaID] = r.Count
	}

	return m, nil
}

// GetAverageObjectiveProgress returns the mean progress across active objectives for a tenant.
func (p *GormOKRMetricsProvider) GetAverageObjectiveProgress(ctx context.Context, tenantID uuid.UUID) (float64, error) {
	var avg *float64
	err := p.db.WithContext(ctx).
		Table("objectives").
		Select("AVG(progress)").
		Where("tenant_id = ? AND status = ?", tenantID, "active").
		Scan(&avg).Error

	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}

	return *avg, nil
}

// GormTenantProvider implements TenantProvider using GORM.
type GormTenantProvider struct {
	db *gorm.DB
}

// NewGormTenantProvider creates a new GormTenantProvider.
func NewGormTenantProvider(db *gorm.DB) *GormTenantProvider {
	return &GormTenantProvider{db: db}
}

// GetActiveTenantIDs returns all active tenant IDs.
func (p *GormTenantProvider) GetActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := p.db.WithContext(ctx).
		Table("tenants").
		Select("id").
		Where("status IN ?", []string{"active", "trial"}).
		Find(&ids).Error

	return ids, err
}

// GetAllActiveTenantIDs returns all active tenant IDs. It satisfies the
// scheduler's tenant provider contract with the same query.
func (p *GormTenantProvider) GetAllActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	return p.GetActiveTenantIDs(ctx)
}
