package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantProvider provides a list of tenants for scheduling
type TenantProvider interface {
	GetAllActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

// CronTriggerConfig holds configuration for the cron trigger
type CronTriggerConfig struct {
	// SweepInterval is how often the invitation sweep and trial expiry
	// check run. These jobs are global, not per-tenant.
	SweepInterval time.Duration

	// ReconcileHour/ReconcileMinute is the daily time for the per-tenant
	// progress reconciliation (24h format)
	ReconcileHour   int
	ReconcileMinute int

	// CheckInterval is how often to check if it's time to run
	CheckInterval time.Duration
}

// DefaultCronTriggerConfig returns default cron trigger configuration
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		SweepInterval:   time.Hour,
		ReconcileHour:   2, // 2am
		ReconcileMinute: 0,
		CheckInterval:   time.Minute,
	}
}

// CronTrigger triggers scheduled maintenance jobs
type CronTrigger struct {
	config         CronTriggerConfig
	scheduler      *Scheduler
	tenantProvider TenantProvider
	logger         *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string // Track which date we last reconciled for
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(
	config CronTriggerConfig,
	scheduler *Scheduler,
	tenantProvider TenantProvider,
	logger *zap.Logger,
) *CronTrigger {
	return &CronTrigger{
		config:         config,
		scheduler:      scheduler,
		tenantProvider: tenantProvider,
		logger:         logger,
	}
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Cron trigger started",
		zap.Duration("sweep_interval", c.config.SweepInterval),
		zap.Int("reconcile_hour", c.config.ReconcileHour),
		zap.Int("reconcile_minute", c.config.ReconcileMinute),
		zap.Duration("check_interval", c.config.CheckInterval),
	)

	return nil
}

// Stop stops the cron trigger
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop drives both the periodic sweep and the daily reconciliation
func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	sweepTicker := time.NewTicker(c.config.SweepInterval)
	defer sweepTicker.Stop()

	checkTicker := time.NewTicker(c.config.CheckInterval)
	defer checkTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sweepTicker.C:
			c.triggerSweep()
		case <-checkTicker.C:
			c.checkAndTriggerReconcile(ctx)
		}
	}
}

// triggerSweep submits the global sweep jobs
func (c *CronTrigger) triggerSweep() {
	c.logger.Debug("Triggering invitation sweep and trial expiry check")

	if err := c.scheduler.ScheduleMaintenance(nil, MaintenanceInvitationSweep); err != nil {
		c.logger.Error("Failed to schedule invitation sweep", zap.Error(err))
	}
	if err := c.scheduler.ScheduleMaintenance(nil, MaintenanceTrialExpiry); err != nil {
		c.logger.Error("Failed to schedule trial expiry check", zap.Error(err))
	}
}

// checkAndTriggerReconcile checks if it's time for the daily reconciliation
func (c *CronTrigger) checkAndTriggerReconcile(ctx context.Context) {
	now := time.Now()
	currentDate := now.Format("2006-01-02")

	// Skip if we already ran today
	c.mu.Lock()
	if c.lastRunDate == currentDate {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	// Check if it's the right time
	if now.Hour() != c.config.ReconcileHour || now.Minute() != c.config.ReconcileMinute {
		return
	}

	// It's time to run!
	c.mu.Lock()
	c.lastRunDate = currentDate
	c.mu.Unlock()

	c.logger.Info("Triggering daily progress reconciliation")
	c.triggerReconciliation(ctx)
}

// triggerReconciliation submits a reconciliation job for every active tenant
func (c *CronTrigger) triggerReconciliation(ctx context.Context) {
	tenantIDs, err := c.tenantProvider.GetAllActiveTenantIDs(ctx)
	if err != nil {
		c.logger.Error("Failed to get tenant IDs for reconciliation", zap.Error(err))
		return
	}

	c.logger.Info("Scheduling progress reconciliation for tenants",
		zap.Int("tenant_count", len(tenantIDs)),
	)

	for _, tenantID := range tenantIDs {
		tid := tenantID // Capture for closure
		if err := c.scheduler.ScheduleMaintenance(&tid, MaintenanceProgressReconcile); err != nil {
			c.logger.Error("Failed to schedule reconciliation for tenant",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
		}
	}
}

// TriggerManualRun allows manual triggering of maintenance jobs
func (c *CronTrigger) TriggerManualRun(ctx context.Context, tenantID *uuid.UUID, maintenanceType *MaintenanceType) error {
	if maintenanceType != nil {
		return c.scheduler.ScheduleMaintenance(tenantID, *maintenanceType)
	}

	return c.scheduler.ScheduleAllMaintenance(tenantID)
}
