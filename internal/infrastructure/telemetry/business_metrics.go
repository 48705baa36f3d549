// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the OKR platform.
// It tracks initiative activity, progress updates, and invitation flow.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	initiativeCreatedTotal  *Counter
	progressUpdateTotal     *Counter
	invitationAcceptedTotal *Counter

	// Gauge metrics (point-in-time values)
	activeInitiativeCount *Gauge
	objectiveProgressAvg  *FloatGauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data providers for periodic collection
	okrProvider OKRMetricsProvider
}

// OKRMetricsProvider provides OKR data for periodic metrics collection.
// This interface allows the telemetry layer to query aggregate state without
// depending on the domain layer directly.
type OKRMetricsProvider interface {
	// GetActiveInitiativeCountByArea returns the count of non-terminal initiatives per area for a tenant
	GetActiveInitiativeCountByArea(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]int64, error)

	// GetAverageObjectiveProgress returns the mean progress across active objectives for a tenant
	GetAverageObjectiveProgress(ctx context.Context, tenantID uuid.UUID) (float64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	OKRProvider     OKRMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:       cfg.Meter,
		logger:      logger,
		stopChan:    make(chan struct{}),
		okrProvider: cfg.OKRProvider,
	}

	// Initialize counter metrics
	var err error

	// Initiative metrics
	bm.initiativeCreatedTotal, err = NewCounter(
		cfg.Meter,
		"okr_initiative_created_total",
		"Total number of initiatives created",
		"{initiatives}",
	)
	if err != nil {
		return nil, err
	}

	bm.progressUpdateTotal, err = NewCounter(
		cfg.Meter,
		"okr_progress_update_total",
		"Total number of initiative progress updates",
		"{updates}",
	)
	if err != nil {
		return nil, err
	}

	// Invitation metrics
	bm.invitationAcceptedTotal, err = NewCounter(
		cfg.Meter,
		"okr_invitation_accepted_total",
		"Total number of accepted invitations",
		"{invitations}",
	)
	if err != nil {
		return nil, err
	}

	// OKR gauge metrics
	bm.activeInitiativeCount, err = NewGauge(
		cfg.Meter,
		"okr_active_initiative_count",
		"Current number of non-terminal initiatives",
		"{initiatives}",
	)
	if err != nil {
		return nil, err
	}

	bm.objectiveProgressAvg, err = NewFloatGauge(
		cfg.Meter,
		"okr_objective_progress_avg",
		"Average progress across active objectives",
		"{percent}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Initiative Metrics
// =============================================================================

// RecordInitiativeCreated records an initiative creation event.
// This should be called from the application layer when an initiative is created.
func (bm *BusinessMetrics) RecordInitiativeCreated(ctx context.Context, tenantID, areaID uuid.UUID) {
	bm.initiativeCreatedTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrAreaID.String(areaID.String()),
	)
}

// ProgressDirection labels whether a progress update moved forward or backward.
type ProgressDirection string

const (
	ProgressDirectionForward  ProgressDirection = "forward"
	ProgressDirectionBackward ProgressDirection = "backward"
)

// RecordProgressUpdate records an initiative progress update.
func (bm *BusinessMetrics) RecordProgressUpdate(ctx context.Context, tenantID uuid.UUID, direction ProgressDirection) {
	bm.progressUpdateTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrProgressDirection.String(string(direction)),
	)
}

// =============================================================================
// Invitation Metrics
// =============================================================================

// RecordInvitationAccepted records an accepted invitation.
// This should be called when an invitation acceptance completes.
func (bm *BusinessMetrics) RecordInvitationAccepted(ctx context.Context, tenantID uuid.UUID, role string) {
	bm.invitationAcceptedTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrUserRole.String(role),
	)
}

// =============================================================================
// OKR Gauge Metrics
// =============================================================================

// RecordActiveInitiativeCount records the current non-terminal initiative count for an area.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordActiveInitiativeCount(ctx context.Context, tenantID, areaID uuid.UUID, count int64) {
	bm.activeInitiativeCount.Record(ctx, count,
		AttrTenantID.String(tenantID.String()),
		AttrAreaID.String(areaID.String()),
	)
}

// RecordObjectiveProgressAvg records the average objective progress for a tenant.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordObjectiveProgressAvg(ctx context.Context, tenantID uuid.UUID, avg float64) {
	bm.objectiveProgressAvg.Record(ctx, avg,
		AttrTenantID.String(tenantID.String()),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// TenantProvider provides tenant IDs for periodic metrics collection.
type TenantProvider interface {
	GetActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects OKR metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, tenantProvider TenantProvider, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, tenantProvider, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, tenantProvider TenantProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectOKRMetrics(ctx, tenantProvider)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectOKRMetrics(ctx, tenantProvider)
		}
	}
}

// collectOKRMetrics collects OKR gauge metrics for all tenants.
func (bm *BusinessMetrics) collectOKRMetrics(ctx context.Context, tenantProvider TenantProvider) {
	if bm.okrProvider == nil {
		bm.logger.Debug("No OKR provider configured, skipping OKR metrics collection")
		return
	}

	tenantIDs, err := tenantProvider.GetActiveTenantIDs(ctx)
	if err != nil {
		bm.logger.Error("Failed to get tenant IDs for metrics collection", zap.Error(err))
		return
	}

	for _, tenantID := range tenantIDs {
		bm.collectTenantOKRMetrics(ctx, tenantID)
	}
}

// collectTenantOKRMetrics collects OKR metrics for a single tenant.
func (bm *BusinessMetrics) collectTenantOKRMetrics(ctx context.Context, tenantID uuid.UUID) {
	// Collect active initiative counts by area
	countByArea, err := bm.okrProvider.GetActiveInitiativeCountByArea(ctx, tenantID)
	if err != nil {
		bm.logger.Warn("Failed to get active initiative counts for tenant",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	} else {
		for areaID, count := range countByArea {
			bm.RecordActiveInitiativeCount(ctx, tenantID, areaID, count)
		}
	}

	// Collect average objective progress
	avgProgress, err := bm.okrProvider.GetAverageObjectiveProgress(ctx, tenantID)
	if err != nil {
		bm.logger.Warn("Failed to get average objective progress for tenant",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	} else {
		bm.RecordObjectiveProgressAvg(ctx, tenantID, avgProgress)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// =============================================================================
// Attribute Key Constants
// =============================================================================

// Business metrics attribute keys not already defined in metrics.go
var (
	AttrAreaID            = attribute.Key("area_id")
	AttrUserRole          = attribute.Key("user_role")
	AttrProgressDirection = attribute.Key("progress_direction")
)
