package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/shared"
)

// TenantModel is the persistence model for the Tenant domain entity.
type TenantModel struct {
	AggregateModel
	Slug         string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string                `gorm:"type:varchar(200);not null"`
	Status       identity.TenantStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Plan         identity.TenantPlan   `gorm:"type:varchar(20);not null;default:'free'"`
	ContactName  string                `gorm:"type:varchar(100)"`
	ContactEmail string                `gorm:"type:varchar(200)"`
	LogoURL      string                `gorm:"type:varchar(500)"`
	TrialEndsAt  *time.Time            `gorm:"index"`
	// Embedded settings fields
	SettingsMaxUsers       int    `gorm:"column:settings_max_users;not null;default:10"`
	SettingsMaxAreas       int    `gorm:"column:settings_max_areas;not null;default:5"`
	SettingsMaxInitiatives int    `gorm:"column:settings_max_initiatives;not null;default:200"`
	SettingsFeatures       string `gorm:"column:settings_features;type:jsonb;default:'{}'"`
	SettingsTimezone       string `gorm:"column:settings_timezone;type:varchar(50);default:'UTC'"`
	SettingsLocale         string `gorm:"column:settings_locale;type:varchar(20);default:'en-US'"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Slug:         m.Slug,
		Name:         m.Name,
		Status:       m.Status,
		Plan:         m.Plan,
		ContactName:  m.ContactName,
		ContactEmail: m.ContactEmail,
		LogoURL:      m.LogoURL,
		TrialEndsAt:  m.TrialEndsAt,
		Settings: identity.TenantSettings{
			MaxUsers:       m.SettingsMaxUsers,
			MaxAreas:       m.SettingsMaxAreas,
			MaxInitiatives: m.SettingsMaxInitiatives,
			Features:       m.SettingsFeatures,
			Timezone:       m.SettingsTimezone,
			Locale:         m.SettingsLocale,
		},
	}
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *identity.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Slug = t.Slug
	m.Name = t.Name
	m.Status = t.Status
	m.Plan = t.Plan
	m.ContactName = t.ContactName
	m.ContactEmail = t.ContactEmail
	m.LogoURL = t.LogoURL
	m.TrialEndsAt = t.TrialEndsAt
	m.SettingsMaxUsers = t.Settings.MaxUsers
	m.SettingsMaxAreas = t.Settings.MaxAreas
	m.SettingsMaxInitiatives = t.Settings.MaxInitiatives
	m.SettingsFeatures = t.Settings.Features
	m.SettingsTimezone = t.Settings.Timezone
	m.SettingsLocale = t.Settings.Locale
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant entity.
func TenantModelFromDomain(t *identity.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// UserProfileModel is the persistence model for the UserProfile domain entity.
type UserProfileModel struct {
	TenantAggregateModel
	Email          string              `gorm:"type:varchar(200);not null;uniqueIndex:idx_user_profiles_tenant_email,priority:2"`
	FullName       string              `gorm:"type:varchar(200);not null"`
	PasswordHash   string              `gorm:"type:varchar(255);not null"`
	Role           identity.UserRole   `gorm:"type:varchar(20);not null;default:'manager'"`
	Status         identity.UserStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	AreaID         *uuid.UUID          `gorm:"type:uuid;index"`
	AvatarURL      string              `gorm:"type:varchar(500)"`
	LastLoginAt    *time.Time          `gorm:"index"`
	LastLoginIP    string              `gorm:"type:varchar(45)"`
	FailedAttempts int                 `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (UserProfileModel) TableName() string {
	return "user_profiles"
}

// ToDomain converts the persistence model to a domain UserProfile entity.
func (m *UserProfileModel) ToDomain() *identity.UserProfile {
	return &identity.UserProfile{
		TenantAggregateRoot: shared.TenantAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			TenantID:  m.TenantID,
			CreatedBy: m.CreatedBy,
		},
		Email:          m.Email,
		FullName:       m.FullName,
		PasswordHash:   m.PasswordHash,
		Role:           m.Role,
		Status:         m.Status,
		AreaID:         m.AreaID,
		AvatarURL:      m.AvatarURL,
		LastLoginAt:    m.LastLoginAt,
		LastLoginIP:    m.LastLoginIP,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
	}
}

// FromDomain populates the persistence model from a domain UserProfile entity.
func (m *UserProfileModel) FromDomain(p *identity.UserProfile) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Email = p.Email
	m.FullName = p.FullName
	m.PasswordHash = p.PasswordHash
	m.Role = p.Role
	m.Status = p.Status
	m.AreaID = p.AreaID
	m.AvatarURL = p.AvatarURL
	m.LastLoginAt = p.LastLoginAt
	m.LastLoginIP = p.LastLoginIP
	m.FailedAttempts = p.FailedAttempts
	m.LockedUntil = p.LockedUntil
}

// UserProfileModelFromDomain creates a new persistence model from a domain UserProfile entity.
func UserProfileModelFromDomain(p *identity.UserProfile) *UserProfileModel {
	m := &UserProfileModel{}
	m.FromDomain(p)
	return m
}

// InvitationModel is the persistence model for the Invitation domain entity.
type InvitationModel struct {
	TenantAggregateModel
	Email      string                    `gorm:"type:varchar(200);not null;index"`
	Role       identity.UserRole         `gorm:"type:varchar(20);not null"`
	AreaID     *uuid.UUID                `gorm:"type:uuid"`
	Token      string                    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status     identity.InvitationStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	InvitedBy  uuid.UUID                 `gorm:"type:uuid;not null"`
	ExpiresAt  time.Time                 `gorm:"not null;index"`
	AcceptedAt *time.Time
}

// TableName returns the table name for GORM
func (InvitationModel) TableName() string {
	return "invitations"
}

// ToDomain converts the persistence model to a domain Invitation entity.
func (m *InvitationModel) ToDomain() *identity.Invitation {
	return &identity.Invitation{
		TenantAggregateRoot: shared.TenantAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			TenantID:  m.TenantID,
			CreatedBy: m.CreatedBy,
		},
		Email:      m.Email,
		Role:       m.Role,
		AreaID:     m.AreaID,
		Token:      m.Token,
		Status:     m.Status,
		InvitedBy:  m.InvitedBy,
		ExpiresAt:  m.ExpiresAt,
		AcceptedAt: m.AcceptedAt,
	}
}

// FromDomain populates the persistence model from a domain Invitation entity.
func (m *InvitationModel) FromDomain(i *identity.Invitation) {
	m.FromDomainTenantAggregateRoot(i.TenantAggregateRoot)
	m.Email = i.Email
	m.Role = i.Role
	m.AreaID = i.AreaID
	m.Token = i.Token
	m.Status = i.Status
	m.InvitedBy = i.InvitedBy
	m.ExpiresAt = i.ExpiresAt
	m.AcceptedAt = i.AcceptedAt
}

// InvitationModelFromDomain creates a new persistence model from a domain Invitation entity.
func InvitationModelFromDomain(i *identity.Invitation) *InvitationModel {
	m := &InvitationModel{}
	m.FromDomain(i)
	return m
}
