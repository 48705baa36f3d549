package identity

import (
	"context"
	"time"

	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/shared"
	"github.com/stratix/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles authentication operations
type AuthService struct {
	profileRepo identity.UserProfileRepository
	tenantRepo  identity.TenantRepository
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	config      AuthServiceConfig
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	profileRepo identity.UserProfileRepository,
	tenantRepo identity.TenantRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		profileRepo: profileRepo,
		tenantRepo:  tenantRepo,
		jwtService:  jwtService,
		blacklist:   blacklist,
		config:      config,
		logger:      logger,
	}
}

// Login authenticates a user by email and returns a token pair.
// The tenant is resolved from the profile; email is globally unique.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("email", input.Email))

	profile, err := s.profileRepo.FindByEmailGlobal(ctx, input.Email)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !profile.CanLogin() {
		if profile.IsLocked() {
			s.logger.Warn("Login attempt for locked account", zap.String("email", input.Email))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later or contact support")
		}
		s.logger.Warn("Login attempt for deactivated account", zap.String("email", input.Email))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	// The tenant must still be able to use the platform
	tenant, err := s.tenantRepo.FindByID(ctx, profile.TenantID)
	if err != nil {
		s.logger.Error("Tenant not found during login", zap.String("tenant_id", profile.TenantID.String()))
		return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Workspace not found")
	}
	if tenant.Status == identity.TenantStatusSuspended || tenant.Status == identity.TenantStatusInactive {
		s.logger.Warn("Login attempt for suspended tenant", zap.String("slug", tenant.Slug))
		return nil, shared.NewDomainError("TENANT_SUSPENDED", "This workspace is not active")
	}
	if tenant.IsTrialExpired() {
		s.logger.Warn("Login attempt for expired trial", zap.String("slug", tenant.Slug))
		return nil, shared.NewDomainError("TRIAL_EXPIRED", "The trial period for this workspace has ended")
	}

	if !profile.VerifyPassword(input.Password) {
		locked := profile.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.profileRepo.Save(ctx, profile); err != nil {
			s.logger.Error("Failed to save profile after login failure", zap.Error(err))
		}

		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("email", input.Email),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		s.logger.Warn("Invalid password attempt",
			zap.String("email", input.Email),
			zap.Int("failed_attempts", profile.FailedAttempts))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: profile.TenantID,
		UserID:   profile.ID,
		Email:    profile.Email,
		Role:     string(profile.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	// A pending profile becomes active on its first successful login
	profile.RecordLoginSuccess(input.IP)
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		// Don't fail the login, the tokens are already issued
		s.logger.Error("Failed to save profile after successful login", zap.Error(err))
	}

	s.logger.Info("User logged in successfully",
		zap.String("email", input.Email),
		zap.String("user_id", profile.ID.String()),
		zap.String("tenant_id", profile.TenantID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  ToUserInfo(profile),
	}, nil
}

// RefreshToken refreshes the access token using a valid refresh token.
// Email and role are re-read from the profile so a role change takes
// effect on the next refresh.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	refreshClaims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	tenantID, err := refreshClaims.GetTenantUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid tenant ID in token")
	}
	userID, err := refreshClaims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	profile, err := s.profileRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		s.logger.Warn("User not found during token refresh", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if !profile.CanLogin() {
		s.logger.Warn("Token refresh for inactive user", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, profile.Email, string(profile.Role))
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed successfully", zap.String("user_id", userID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the current access token by blacklisting its JTI
// for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	s.logger.Info("User logout",
		zap.String("user_id", input.UserID.String()),
		zap.String("tenant_id", input.TenantID.String()))

	if s.blacklist == nil || input.TokenJTI == "" {
		return nil
	}

	ttl := input.TokenTTL
	if ttl <= 0 {
		ttl = s.jwtService.GetAccessTokenExpiration()
	}

	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, ttl); err != nil {
		s.logger.Error("Failed to blacklist token on logout", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}

	return nil
}

// ForceLogout revokes every outstanding token for a user. Admin only.
func (s *AuthService) ForceLogout(ctx context.Context, input ForceLogoutInput) error {
	admin, err := s.profileRepo.FindByID(ctx, input.TenantID, input.AdminUserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if !admin.IsAdmin() {
		return shared.NewDomainError("FORBIDDEN", "Only admins can force logout users")
	}

	if _, err := s.profileRepo.FindByID(ctx, input.TenantID, input.TargetUserID); err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "Target user not found")
	}

	if s.blacklist != nil {
		ttl := s.jwtService.GetRefreshTokenExpiration()
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, input.TargetUserID.String(), ttl); err != nil {
			s.logger.Error("Failed to invalidate user tokens", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke user tokens")
		}
	}

	s.logger.Info("User force logged out",
		zap.String("admin_id", input.AdminUserID.String()),
		zap.String("target_user_id", input.TargetUserID.String()),
		zap.String("reason", input.Reason))

	return nil
}

// GetCurrentUser retrieves the current user's information
func (s *AuthService) GetCurrentUser(ctx context.Context, input GetCurrentUserInput) (*UserInfo, error) {
	profile, err := s.profileRepo.FindByID(ctx, input.TenantID, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	info := ToUserInfo(profile)
	return &info, nil
}

// ChangePassword changes the current user's password after verifying the old one
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	profile, err := s.profileRepo.FindByID(ctx, input.TenantID, input.UserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := profile.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		s.logger.Error("Failed to save profile after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	s.logger.Info("User password changed", zap.String("user_id", input.UserID.String()))

	return nil
}

// mapTokenError translates JWT validation errors into domain errors
func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case auth.ErrInvalidToken:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}
