package identity

import (
	"github.com/stratix/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeTenant = "Tenant"

// Event type constants
const (
	EventTypeTenantCreated       = "TenantCreated"
	EventTypeTenantUpdated       = "TenantUpdated"
	EventTypeTenantStatusChanged = "TenantStatusChanged"
	EventTypeTenantPlanChanged   = "TenantPlanChanged"
)

// TenantCreatedEvent is published when a new tenant is created
type TenantCreatedEvent struct {
	shared.BaseDomainEvent
	Slug   string       `json:"slug"`
	Name   string       `json:"name"`
	Status TenantStatus `json:"status"`
	Plan   TenantPlan   `json:"plan"`
}

// NewTenantCreatedEvent creates a new TenantCreatedEvent
func NewTenantCreatedEvent(tenant *Tenant) *TenantCreatedEvent {
	return &TenantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantCreated, AggregateTypeTenant, tenant.ID, tenant.ID),
		Slug:            tenant.Slug,
		Name:            tenant.Name,
		Status:          tenant.Status,
		Plan:            tenant.Plan,
	}
}

// TenantUpdatedEvent is published when a tenant is updated
type TenantUpdatedEvent struct {
	shared.BaseDomainEvent
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// NewTenantUpdatedEvent creates a new TenantUpdatedEvent
func NewTenantUpdatedEvent(tenant *Tenant) *TenantUpdatedEvent {
	return &TenantUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantUpdated, AggregateTypeTenant, tenant.ID, tenant.ID),
		Slug:            tenant.Slug,
		Name:            tenant.Name,
		ContactName:     tenant.ContactName,
		ContactEmail:    tenant.ContactEmail,
	}
}

// TenantStatusChangedEvent is published when a tenant's status changes
type TenantStatusChangedEvent struct {
	shared.BaseDomainEvent
	Slug      string       `json:"slug"`
	OldStatus TenantStatus `json:"old_status"`
	NewStatus TenantStatus `json:"new_status"`
}

// NewTenantStatusChangedEvent creates a new TenantStatusChangedEvent
func NewTenantStatusChangedEvent(tenant *Tenant, oldStatus, newStatus TenantStatus) *TenantStatusChangedEvent {
	return &TenantStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantStatusChanged, AggregateTypeTenant, tenant.ID, tenant.ID),
		Slug:            tenant.Slug,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// TenantPlanChangedEvent is published when a tenant's subscription plan changes
type TenantPlanChangedEvent struct {
	shared.BaseDomainEvent
	Slug    string     `json:"slug"`
	OldPlan TenantPlan `json:"old_plan"`
	NewPlan TenantPlan `json:"new_plan"`
}

// NewTenantPlanChangedEvent creates a new TenantPlanChangedEvent
func NewTenantPlanChangedEvent(tenant *Tenant, oldPlan, newPlan TenantPlan) *TenantPlanChangedEvent {
	return &TenantPlanChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantPlanChanged, AggregateTypeTenant, tenant.ID, tenant.ID),
		Slug:            tenant.Slug,
		OldPlan:         oldPlan,
		NewPlan:         newPlan,
	}
}
