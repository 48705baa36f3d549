package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserRole represents the platform role of a user within a tenant
type UserRole string

const (
	RoleCEO     UserRole = "ceo"
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
)

// UserStatus represents the status of a user profile
type UserStatus string

const (
	UserStatusPending     UserStatus = "pending"     // Invited, awaiting first login
	UserStatusActive      UserStatus = "active"      // Normal active status
	UserStatusLocked      UserStatus = "locked"      // Locked due to failed attempts
	UserStatusDeactivated UserStatus = "deactivated" // Manually deactivated
)

// Password cost for bcrypt
const bcryptCost = 12

// UserProfile represents a user within a tenant.
// Exactly one profile exists per user per tenant (email is unique per tenant).
type UserProfile struct {
	shared.TenantAggregateRoot
	Email          string
	FullName       string
	PasswordHash   string
	Role           UserRole
	Status         UserStatus
	AreaID         *uuid.UUID // Managers are scoped to a single area
	AvatarURL      string
	LastLoginAt    *time.Time
	LastLoginIP    string
	FailedAttempts int
	LockedUntil    *time.Time
}

// NewUserProfile creates a new user profile in pending status
func NewUserProfile(tenantID uuid.UUID, email, fullName, password string, role UserRole) (*UserProfile, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateFullName(fullName); err != nil {
		return nil, err
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	profile := &UserProfile{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               strings.ToLower(strings.TrimSpace(email)),
		FullName:            strings.TrimSpace(fullName),
		PasswordHash:        passwordHash,
		Role:                role,
		Status:              UserStatusPending,
	}

	profile.AddDomainEvent(NewUserProfileCreatedEvent(profile))

	return profile, nil
}

// NewActiveUserProfile creates a profile that is immediately active
func NewActiveUserProfile(tenantID uuid.UUID, email, fullName, password string, role UserRole) (*UserProfile, error) {
	profile, err := NewUserProfile(tenantID, email, fullName, password, role)
	if err != nil {
		return nil, err
	}

	profile.Status = UserStatusActive
	return profile, nil
}

// Update updates the profile's basic information
func (u *UserProfile) Update(fullName string) error {
	if err := validateFullName(fullName); err != nil {
		return err
	}

	u.FullName = strings.TrimSpace(fullName)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserProfileUpdatedEvent(u))

	return nil
}

// SetAvatarURL sets the profile's avatar URL
func (u *UserProfile) SetAvatarURL(url string) error {
	if url != "" && len(url) > 500 {
		return shared.NewDomainError("INVALID_AVATAR", "Avatar URL cannot exceed 500 characters")
	}

	u.AvatarURL = url
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetRole changes the profile's role
func (u *UserProfile) SetRole(role UserRole) error {
	if err := validateRole(role); err != nil {
		return err
	}
	if u.Role == role {
		return shared.NewDomainError("SAME_ROLE", "User already has this role")
	}

	oldRole := u.Role
	u.Role = role

	// Area scoping only applies to managers
	if role != RoleManager {
		u.AreaID = nil
	}

	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserRoleChangedEvent(u, oldRole, role))

	return nil
}

// AssignArea scopes a manager to an area
func (u *UserProfile) AssignArea(areaID *uuid.UUID) error {
	if areaID != nil && u.Role != RoleManager {
		return shared.NewDomainError("AREA_SCOPE_NOT_ALLOWED", "Only managers can be scoped to an area")
	}

	u.AreaID = areaID
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// ChangePassword changes the password after verifying the current one
func (u *UserProfile) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	return u.SetPassword(newPassword)
}

// SetPassword sets a new password (admin reset, no old password check)
func (u *UserProfile) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *UserProfile) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Activate activates the profile
func (u *UserProfile) Activate() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	oldStatus := u.Status
	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, oldStatus, UserStatusActive))

	return nil
}

// Deactivate deactivates the profile
func (u *UserProfile) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "User is already deactivated")
	}

	oldStatus := u.Status
	u.Status = UserStatusDeactivated
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, oldStatus, UserStatusDeactivated))

	return nil
}

// Lock locks the profile
func (u *UserProfile) Lock(duration time.Duration) error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("USER_DEACTIVATED", "Cannot lock a deactivated user")
	}

	oldStatus := u.Status
	u.Status = UserStatusLocked
	if duration > 0 {
		lockedUntil := time.Now().Add(duration)
		u.LockedUntil = &lockedUntil
	}
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, oldStatus, UserStatusLocked))

	return nil
}

// Unlock unlocks the profile
func (u *UserProfile) Unlock() error {
	if u.Status != UserStatusLocked {
		return shared.NewDomainError("NOT_LOCKED", "User is not locked")
	}

	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, UserStatusLocked, UserStatusActive))

	return nil
}

// RecordLoginSuccess records a successful login
func (u *UserProfile) RecordLoginSuccess(ip string) {
	now := time.Now()
	u.LastLoginAt = &now
	u.LastLoginIP = ip
	u.FailedAttempts = 0
	if u.Status == UserStatusPending {
		u.Status = UserStatusActive
	}
	u.UpdatedAt = now
	u.IncrementVersion()
}

// RecordLoginFailure records a failed login attempt.
// Returns true if the account was locked.
func (u *UserProfile) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	if u.FailedAttempts >= maxAttempts {
		_ = u.Lock(lockDuration)
		return true
	}

	return false
}

// IsActive returns true if the profile is active
func (u *UserProfile) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsLocked returns true if the profile is locked and the lock has not expired
func (u *UserProfile) IsLocked() bool {
	if u.Status != UserStatusLocked {
		return false
	}
	if u.LockedUntil != nil && time.Now().After(*u.LockedUntil) {
		return false
	}
	return true
}

// CanLogin returns true if the profile may authenticate
func (u *UserProfile) CanLogin() bool {
	if u.Status == UserStatusDeactivated {
		return false
	}
	return !u.IsLocked()
}

// IsAdmin returns true for tenant-wide roles (admin and CEO)
func (u *UserProfile) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleCEO
}

// CanAccessArea returns true if the profile may mutate data in the given area
func (u *UserProfile) CanAccessArea(areaID uuid.UUID) bool {
	if u.IsAdmin() {
		return true
	}
	return u.AreaID != nil && *u.AreaID == areaID
}

// Validation functions

func validateFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot exceed 200 characters")
	}
	return nil
}

func validateRole(role UserRole) error {
	switch role {
	case RoleCEO, RoleAdmin, RoleManager:
		return nil
	default:
		return shared.NewDomainError("INVALID_ROLE", "Role must be ceo, admin, or manager")
	}
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
