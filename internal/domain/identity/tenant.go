package identity

import (
	"strings"
	"time"

	"github.com/stratix/backend/internal/domain/shared"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusInactive  TenantStatus = "inactive"
	TenantStatusSuspended TenantStatus = "suspended" // Suspended due to payment/violation issues
	TenantStatusTrial     TenantStatus = "trial"
)

// TenantPlan represents the subscription plan of a tenant
type TenantPlan string

const (
	TenantPlanFree       TenantPlan = "free"
	TenantPlanStarter    TenantPlan = "starter"
	TenantPlanBusiness   TenantPlan = "business"
	TenantPlanEnterprise TenantPlan = "enterprise"
)

// TenantSettings holds configurable limits and options for a tenant
type TenantSettings struct {
	MaxUsers       int    `json:"max_users"`
	MaxAreas       int    `json:"max_areas"`
	MaxInitiatives int    `json:"max_initiatives"`
	Features       string `json:"features"` // JSON object of enabled features
	Timezone       string `json:"timezone"`
	Locale         string `json:"locale"`
}

// DefaultTenantSettings returns the settings applied to a new tenant
func DefaultTenantSettings() TenantSettings {
	return TenantSettings{
		MaxUsers:       10,
		MaxAreas:       5,
		MaxInitiatives: 200,
		Features:       "{}",
		Timezone:       "UTC",
		Locale:         "en-US",
	}
}

// Tenant represents an organization in the multi-tenant system.
// All business data is isolated per tenant.
type Tenant struct {
	shared.BaseAggregateRoot
	Slug         string
	Name         string
	Status       TenantStatus
	Plan         TenantPlan
	ContactName  string
	ContactEmail string
	LogoURL      string
	TrialEndsAt  *time.Time
	Settings     TenantSettings
}

// NewTenant creates a new active tenant on the free plan
func NewTenant(slug, name string) (*Tenant, error) {
	if err := validateTenantSlug(slug); err != nil {
		return nil, err
	}
	if err := validateTenantName(name); err != nil {
		return nil, err
	}

	tenant := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Slug:              strings.ToLower(slug),
		Name:              name,
		Status:            TenantStatusActive,
		Plan:              TenantPlanFree,
		Settings:          DefaultTenantSettings(),
	}

	tenant.AddDomainEvent(NewTenantCreatedEvent(tenant))

	return tenant, nil
}

// NewTrialTenant creates a new tenant in trial status
func NewTrialTenant(slug, name string, trialDays int) (*Tenant, error) {
	if trialDays <= 0 {
		return nil, shared.NewDomainError("INVALID_TRIAL_DAYS", "Trial days must be positive")
	}

	tenant, err := NewTenant(slug, name)
	if err != nil {
		return nil, err
	}

	tenant.Status = TenantStatusTrial
	trialEnds := time.Now().AddDate(0, 0, trialDays)
	tenant.TrialEndsAt = &trialEnds

	return tenant, nil
}

// Update updates the tenant's basic information
func (t *Tenant) Update(name string) error {
	if err := validateTenantName(name); err != nil {
		return err
	}

	t.Name = name
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantUpdatedEvent(t))

	return nil
}

// SetContact sets the tenant's contact information
func (t *Tenant) SetContact(contactName, email string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if email != "" && len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	t.ContactName = contactName
	t.ContactEmail = email
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetLogoURL sets the tenant's logo URL
func (t *Tenant) SetLogoURL(url string) error {
	if url != "" && len(url) > 500 {
		return shared.NewDomainError("INVALID_URL", "Logo URL cannot exceed 500 characters")
	}

	t.LogoURL = url
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetPlan sets the tenant's subscription plan
func (t *Tenant) SetPlan(plan TenantPlan) error {
	if err := validateTenantPlan(plan); err != nil {
		return err
	}

	oldPlan := t.Plan
	t.Plan = plan
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	// Upgrading from trial clears the trial window
	if t.Status == TenantStatusTrial && plan != TenantPlanFree {
		t.Status = TenantStatusActive
		t.TrialEndsAt = nil
	}

	t.updateSettingsForPlan(plan)

	t.AddDomainEvent(NewTenantPlanChangedEvent(t, oldPlan, plan))

	return nil
}

// updateSettingsForPlan updates limits based on the plan
func (t *Tenant) updateSettingsForPlan(plan TenantPlan) {
	switch plan {
	case TenantPlanFree:
		t.Settings.MaxUsers = 10
		t.Settings.MaxAreas = 5
		t.Settings.MaxInitiatives = 200
	case TenantPlanStarter:
		t.Settings.MaxUsers = 25
		t.Settings.MaxAreas = 10
		t.Settings.MaxInitiatives = 1000
	case TenantPlanBusiness:
		t.Settings.MaxUsers = 100
		t.Settings.MaxAreas = 50
		t.Settings.MaxInitiatives = 10000
	case TenantPlanEnterprise:
		t.Settings.MaxUsers = 9999
		t.Settings.MaxAreas = 999
		t.Settings.MaxInitiatives = 999999
	}
}

// UpdateSettings updates the tenant's settings
func (t *Tenant) UpdateSettings(settings TenantSettings) error {
	if settings.MaxUsers < 0 {
		return shared.NewDomainError("INVALID_MAX_USERS", "Max users cannot be negative")
	}
	if settings.MaxAreas < 0 {
		return shared.NewDomainError("INVALID_MAX_AREAS", "Max areas cannot be negative")
	}
	if settings.MaxInitiatives < 0 {
		return shared.NewDomainError("INVALID_MAX_INITIATIVES", "Max initiatives cannot be negative")
	}

	t.Settings = settings
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Activate activates the tenant
func (t *Tenant) Activate() error {
	if t.Status == TenantStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Tenant is already active")
	}

	oldStatus := t.Status
	t.Status = TenantStatusActive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusActive))

	return nil
}

// Deactivate deactivates the tenant
func (t *Tenant) Deactivate() error {
	if t.Status == TenantStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Tenant is already inactive")
	}

	oldStatus := t.Status
	t.Status = TenantStatusInactive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusInactive))

	return nil
}

// Suspend suspends the tenant
func (t *Tenant) Suspend() error {
	if t.Status == TenantStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Tenant is already suspended")
	}

	oldStatus := t.Status
	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusSuspended))

	return nil
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// IsTrial returns true if the tenant is in trial period
func (t *Tenant) IsTrial() bool {
	return t.Status == TenantStatusTrial
}

// IsTrialExpired returns true if the trial window has passed
func (t *Tenant) IsTrialExpired() bool {
	if t.Status != TenantStatusTrial || t.TrialEndsAt == nil {
		return false
	}
	return time.Now().After(*t.TrialEndsAt)
}

// CanAddUser returns true if the tenant can add more users
func (t *Tenant) CanAddUser(currentUserCount int) bool {
	return currentUserCount < t.Settings.MaxUsers
}

// CanAddArea returns true if the tenant can add more areas
func (t *Tenant) CanAddArea(currentAreaCount int) bool {
	return currentAreaCount < t.Settings.MaxAreas
}

// CanAddInitiative returns true if the tenant can add more initiatives
func (t *Tenant) CanAddInitiative(currentInitiativeCount int) bool {
	return currentInitiativeCount < t.Settings.MaxInitiatives
}

// Validation functions

func validateTenantSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Tenant slug cannot be empty")
	}
	if len(slug) > 50 {
		return shared.NewDomainError("INVALID_SLUG", "Tenant slug cannot exceed 50 characters")
	}
	for _, r := range slug {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SLUG", "Tenant slug can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateTenantName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot exceed 200 characters")
	}
	return nil
}

func validateTenantPlan(plan TenantPlan) error {
	switch plan {
	case TenantPlanFree, TenantPlanStarter, TenantPlanBusiness, TenantPlanEnterprise:
		return nil
	default:
		return shared.NewDomainError("INVALID_PLAN", "Invalid tenant plan")
	}
}
