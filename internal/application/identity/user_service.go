package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles user profile management within a tenant
type UserService struct {
	profileRepo identity.UserProfileRepository
	logger      *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(profileRepo identity.UserProfileRepository, logger *zap.Logger) *UserService {
	return &UserService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// ListUsers returns a paginated list of users for the tenant
func (s *UserService) ListUsers(ctx context.Context, tenantID uuid.UUID, filter ListUsersFilter) (*UserListResponse, error) {
	profileFilter := identity.NewUserProfileFilter()

	if filter.Keyword != "" {
		profileFilter.Keyword = filter.Keyword
	}
	if filter.Status != "" {
		status := identity.UserStatus(filter.Status)
		profileFilter.Status = &status
	}
	if filter.Role != "" {
		role := identity.UserRole(filter.Role)
		profileFilter.Role = &role
	}
	if filter.AreaID != "" {
		areaID, err := uuid.Parse(filter.AreaID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_AREA_ID", "Invalid area ID")
		}
		profileFilter.AreaID = &areaID
	}
	if filter.Page > 0 {
		profileFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		profileFilter.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		profileFilter.SortBy = filter.SortBy
	}
	if filter.SortOrder != "" {
		profileFilter.SortOrder = filter.SortOrder
	}

	profiles, total, err := s.profileRepo.FindAll(ctx, tenantID, profileFilter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]UserResponse, len(profiles))
	for i, profile := range profiles {
		users[i] = ToUserResponse(profile)
	}

	return &UserListResponse{
		Users:    users,
		Total:    total,
		Page:     profileFilter.Page,
		PageSize: profileFilter.PageSize,
	}, nil
}

// GetUser returns a single user by ID
func (s *UserService) GetUser(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	resp := ToUserResponse(profile)
	return &resp, nil
}

// GetUsersByArea returns all users scoped to an area
func (s *UserService) GetUsersByArea(ctx context.Context, tenantID, areaID uuid.UUID) ([]UserResponse, error) {
	profiles, err := s.profileRepo.FindByArea(ctx, tenantID, areaID)
	if err != nil {
		return nil, err
	}

	users := make([]UserResponse, len(profiles))
	for i, profile := range profiles {
		users[i] = ToUserResponse(profile)
	}
	return users, nil
}

// UpdateUser updates a user's basic information
func (s *UserService) UpdateUser(ctx context.Context, tenantID, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if err := profile.Update(req.FullName); err != nil {
		return nil, err
	}
	if req.AvatarURL != nil {
		if err := profile.SetAvatarURL(*req.AvatarURL); err != nil {
			return nil, err
		}
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, err
	}

	resp := ToUserResponse(profile)
	return &resp, nil
}

// SetUserRole changes a user's platform role. A manager role may carry
// an area scope; any other role clears it.
func (s *UserService) SetUserRole(ctx context.Context, tenantID, userID uuid.UUID, req SetUserRoleRequest) (*UserResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if err := profile.SetRole(identity.UserRole(req.Role)); err != nil {
		return nil, err
	}
	if req.AreaID != nil {
		if err := profile.AssignArea(req.AreaID); err != nil {
			return nil, err
		}
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		s.logger.Error("Failed to save user after role change", zap.Error(err))
		return nil, err
	}

	s.logger.Info("User role changed",
		zap.String("user_id", userID.String()),
		zap.String("role", req.Role))

	resp := ToUserResponse(profile)
	return &resp, nil
}

// AssignArea scopes a manager to an area, or clears the scope with a nil area
func (s *UserService) AssignArea(ctx context.Context, tenantID, userID uuid.UUID, req AssignAreaRequest) (*UserResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if err := profile.AssignArea(req.AreaID); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		s.logger.Error("Failed to save user after area assignment", zap.Error(err))
		return nil, err
	}

	resp := ToUserResponse(profile)
	return &resp, nil
}

// ActivateUser activates a pending, locked or deactivated user
func (s *UserService) ActivateUser(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	return s.changeStatus(ctx, tenantID, userID, func(p *identity.UserProfile) error {
		return p.Activate()
	})
}

// DeactivateUser deactivates a user, blocking logins until reactivated
func (s *UserService) DeactivateUser(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	return s.changeStatus(ctx, tenantID, userID, func(p *identity.UserProfile) error {
		return p.Deactivate()
	})
}

// UnlockUser clears a lock applied after failed login attempts
func (s *UserService) UnlockUser(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	return s.changeStatus(ctx, tenantID, userID, func(p *identity.UserProfile) error {
		return p.Unlock()
	})
}

func (s *UserService) changeStatus(ctx context.Context, tenantID, userID uuid.UUID, change func(*identity.UserProfile) error) (*UserResponse, error) {
	profile, err := s.profileRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if err := change(profile); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		s.logger.Error("Failed to save user after status change", zap.Error(err))
		return nil, err
	}

	s.logger.Info("User status changed",
		zap.String("user_id", userID.String()),
		zap.String("status", string(profile.Status)))

	resp := ToUserResponse(profile)
	return &resp, nil
}

// ResetPassword sets a new password without requiring the old one. Admin only.
func (s *UserService) ResetPassword(ctx context.Context, tenantID, userID uuid.UUID, req ResetPasswordRequest) error {
	profile, err := s.profileRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	if err := profile.SetPassword(req.NewPassword); err != nil {
		return err
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		s.logger.Error("Failed to save user after password reset", zap.Error(err))
		return err
	}

	s.logger.Info("User password reset", zap.String("user_id", userID.String()))

	return nil
}

// DeleteUser removes a user profile. The last CEO of a tenant cannot be deleted.
func (s *UserService) DeleteUser(ctx context.Context, tenantID, userID uuid.UUID) error {
	profile, err := s.profileRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	if profile.Role == identity.RoleCEO {
		ceoRole := identity.RoleCEO
		filter := identity.NewUserProfileFilter()
		filter.Role = &ceoRole
		_, total, err := s.profileRepo.FindAll(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		if total <= 1 {
			return shared.NewDomainError("LAST_CEO", "Cannot delete the last CEO of a workspace")
		}
	}

	if err := s.profileRepo.Delete(ctx, tenantID, userID); err != nil {
		return err
	}

	s.logger.Info("User deleted", zap.String("user_id", userID.String()))

	return nil
}
