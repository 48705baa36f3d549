package scheduler

import "errors"

var (
	// ErrSchedulerNotRunning is returned when trying to submit a job to a stopped scheduler
	ErrSchedulerNotRunning = errors.New("scheduler is not running")

	// ErrJobQueueFull is returned when the job queue is full
	ErrJobQueueFull = errors.New("job queue is full")

	// ErrUnknownMaintenanceType is returned for unknown maintenance types
	ErrUnknownMaintenanceType = errors.New("unknown maintenance type")

	// ErrTenantRequired is returned when a per-tenant job is submitted without a tenant
	ErrTenantRequired = errors.New("maintenance job requires a tenant")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid scheduler configuration")
)
