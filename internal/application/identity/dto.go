package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned by auth operations
type UserInfo struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Email       string
	FullName    string
	Role        identity.UserRole
	Status      identity.UserStatus
	AreaID      *uuid.UUID
	AvatarURL   string
	LastLoginAt *time.Time
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	TokenJTI string        // JWT ID for blacklisting
	TokenTTL time.Duration // Remaining lifetime of the access token
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	TenantID    uuid.UUID
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// GetCurrentUserInput contains the input for getting current user info
type GetCurrentUserInput struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
}

// ForceLogoutInput contains the input for the force logout operation
type ForceLogoutInput struct {
	AdminUserID  uuid.UUID
	TargetUserID uuid.UUID
	TenantID     uuid.UUID
	Reason       string
}

// UpdateUserRequest contains the fields a user can change on a profile
type UpdateUserRequest struct {
	FullName  string  `json:"full_name" binding:"required,min=1,max=100"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,max=500"`
}

// SetUserRoleRequest changes a user's platform role
type SetUserRoleRequest struct {
	Role   string     `json:"role" binding:"required,oneof=ceo admin manager"`
	AreaID *uuid.UUID `json:"area_id"`
}

// AssignAreaRequest scopes a manager to an area
type AssignAreaRequest struct {
	AreaID *uuid.UUID `json:"area_id"`
}

// ResetPasswordRequest sets a new password for a user (admin operation)
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// ListUsersFilter contains query parameters for listing users
type ListUsersFilter struct {
	Keyword   string `form:"keyword"`
	Status    string `form:"status"`
	Role      string `form:"role"`
	AreaID    string `form:"area_id"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// UserResponse is the API representation of a user profile
type UserResponse struct {
	ID             uuid.UUID           `json:"id"`
	Email          string              `json:"email"`
	FullName       string              `json:"full_name"`
	Role           identity.UserRole   `json:"role"`
	Status         identity.UserStatus `json:"status"`
	AreaID         *uuid.UUID          `json:"area_id,omitempty"`
	AvatarURL      string              `json:"avatar_url,omitempty"`
	LastLoginAt    *time.Time          `json:"last_login_at,omitempty"`
	FailedAttempts int                 `json:"failed_attempts,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Version        int                 `json:"version"`
}

// UserListResponse is a paginated list of users
type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// RegisterTenantRequest creates a new tenant together with its first CEO user
type RegisterTenantRequest struct {
	Slug      string `json:"slug" binding:"required,min=1,max=50"`
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Email     string `json:"email" binding:"required,email,max=200"`
	FullName  string `json:"full_name" binding:"required,min=1,max=100"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	TrialDays int    `json:"trial_days" binding:"omitempty,min=1,max=90"`
}

// RegisterTenantResult contains the newly created tenant and CEO
type RegisterTenantResult struct {
	Tenant TenantResponse `json:"tenant"`
	User   UserResponse   `json:"user"`
}

// UpdateTenantRequest contains the editable tenant fields
type UpdateTenantRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=100"`
	ContactName  *string `json:"contact_name" binding:"omitempty,max=100"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,max=200"`
	LogoURL      *string `json:"logo_url" binding:"omitempty,max=500"`
	Timezone     *string `json:"timezone" binding:"omitempty,max=50"`
	Locale       *string `json:"locale" binding:"omitempty,max=10"`
}

// ChangePlanRequest changes the tenant's subscription plan
type ChangePlanRequest struct {
	Plan string `json:"plan" binding:"required,oneof=free starter business enterprise"`
}

// TenantResponse is the API representation of a tenant
type TenantResponse struct {
	ID           uuid.UUID               `json:"id"`
	Slug         string                  `json:"slug"`
	Name         string                  `json:"name"`
	Status       identity.TenantStatus   `json:"status"`
	Plan         identity.TenantPlan     `json:"plan"`
	ContactName  string                  `json:"contact_name,omitempty"`
	ContactEmail string                  `json:"contact_email,omitempty"`
	LogoURL      string                  `json:"logo_url,omitempty"`
	TrialEndsAt  *time.Time              `json:"trial_ends_at,omitempty"`
	Settings     identity.TenantSettings `json:"settings"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// CreateInvitationRequest invites a user to join the tenant
type CreateInvitationRequest struct {
	Email  string     `json:"email" binding:"required,email,max=200"`
	Role   string     `json:"role" binding:"required,oneof=ceo admin manager"`
	AreaID *uuid.UUID `json:"area_id"`
}

// AcceptInvitationRequest completes an invitation by creating the user profile
type AcceptInvitationRequest struct {
	Token    string `json:"token" binding:"required,len=64"`
	FullName string `json:"full_name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// ListInvitationsFilter contains query parameters for listing invitations
type ListInvitationsFilter struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// InvitationResponse is the API representation of an invitation
type InvitationResponse struct {
	ID         uuid.UUID                 `json:"id"`
	Email      string                    `json:"email"`
	Role       identity.UserRole         `json:"role"`
	AreaID     *uuid.UUID                `json:"area_id,omitempty"`
	Token      string                    `json:"token,omitempty"`
	Status     identity.InvitationStatus `json:"status"`
	InvitedBy  uuid.UUID                 `json:"invited_by"`
	ExpiresAt  time.Time                 `json:"expires_at"`
	AcceptedAt *time.Time                `json:"accepted_at,omitempty"`
	CreatedAt  time.Time                 `json:"created_at"`
}

// InvitationListResponse is a paginated list of invitations
type InvitationListResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
}

// ToUserResponse converts a domain user profile to its API representation
func ToUserResponse(profile *identity.UserProfile) UserResponse {
	return UserResponse{
		ID:             profile.ID,
		Email:          profile.Email,
		FullName:       profile.FullName,
		Role:           profile.Role,
		Status:         profile.Status,
		AreaID:         profile.AreaID,
		AvatarURL:      profile.AvatarURL,
		LastLoginAt:    profile.LastLoginAt,
		FailedAttempts: profile.FailedAttempts,
		CreatedAt:      profile.CreatedAt,
		UpdatedAt:      profile.UpdatedAt,
		Version:        profile.Version,
	}
}

// ToUserInfo converts a domain user profile to the auth UserInfo shape
func ToUserInfo(profile *identity.UserProfile) UserInfo {
	return UserInfo{
		ID:          profile.ID,
		TenantID:    profile.TenantID,
		Email:       profile.Email,
		FullName:    profile.FullName,
		Role:        profile.Role,
		Status:      profile.Status,
		AreaID:      profile.AreaID,
		AvatarURL:   profile.AvatarURL,
		LastLoginAt: profile.LastLoginAt,
	}
}

// ToTenantResponse converts a domain tenant to its API representation
func ToTenantResponse(tenant *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:           tenant.ID,
		Slug:         tenant.Slug,
		Name:         tenant.Name,
		Status:       tenant.Status,
		Plan:         tenant.Plan,
		ContactName:  tenant.ContactName,
		ContactEmail: tenant.ContactEmail,
		LogoURL:      tenant.LogoURL,
		TrialEndsAt:  tenant.TrialEndsAt,
		Settings:     tenant.Settings,
		CreatedAt:    tenant.CreatedAt,
		UpdatedAt:    tenant.UpdatedAt,
	}
}

// ToInvitationResponse converts a domain invitation to its API representation.
// The token is only included when includeToken is true (on creation).
func ToInvitationResponse(invitation *identity.Invitation, includeToken bool) InvitationResponse {
	resp := InvitationResponse{
		ID:         invitation.ID,
		Email:      invitation.Email,
		Role:       invitation.Role,
		AreaID:     invitation.AreaID,
		Status:     invitation.Status,
		InvitedBy:  invitation.InvitedBy,
		ExpiresAt:  invitation.ExpiresAt,
		AcceptedAt: invitation.AcceptedAt,
		CreatedAt:  invitation.CreatedAt,
	}
	if includeToken {
		resp.Token = invitation.Token
	}
	return resp
}
