package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvitationService handles inviting users into a tenant
type InvitationService struct {
	invitationRepo identity.InvitationRepository
	profileRepo    identity.UserProfileRepository
	tenantRepo     identity.TenantRepository
	logger         *zap.Logger
}

// NewInvitationService creates a new invitation service
func NewInvitationService(
	invitationRepo identity.InvitationRepository,
	profileRepo identity.UserProfileRepository,
	tenantRepo identity.TenantRepository,
	logger *zap.Logger,
) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		profileRepo:    profileRepo,
		tenantRepo:     tenantRepo,
		logger:         logger,
	}
}

// CreateInvitation invites a user to join the tenant. Only admins and the
// CEO can invite; the tenant's user quota is checked up front.
func (s *InvitationService) CreateInvitation(ctx context.Context, tenantID, invitedBy uuid.UUID, req CreateInvitationRequest) (*InvitationResponse, error) {
	inviter, err := s.profileRepo.FindByID(ctx, tenantID, invitedBy)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Inviting user not found")
	}
	if !inviter.IsAdmin() {
		return nil, shared.NewDomainError("FORBIDDEN", "Only admins can invite users")
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	userCount, err := s.profileRepo.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.CanAddUser(int(userCount)) {
		return nil, shared.NewDomainError("USER_QUOTA_EXCEEDED", "The workspace has reached its user limit")
	}

	exists, err := s.profileRepo.ExistsByEmail(ctx, tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "A user with this email already exists in the workspace")
	}

	pending, err := s.invitationRepo.ExistsPendingByEmail(ctx, tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, shared.NewDomainError("INVITATION_PENDING", "A pending invitation already exists for this email")
	}

	invitation, err := identity.NewInvitation(tenantID, invitedBy, req.Email, identity.UserRole(req.Role), req.AreaID)
	if err != nil {
		return nil, err
	}

	if err := s.invitationRepo.Save(ctx, invitation); err != nil {
		s.logger.Error("Failed to save invitation", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Invitation created",
		zap.String("invitation_id", invitation.ID.String()),
		zap.String("email", invitation.Email),
		zap.String("role", string(invitation.Role)))

	// The token is returned once, on creation
	resp := ToInvitationResponse(invitation, true)
	return &resp, nil
}

// AcceptInvitation completes an invitation. The invited user picks their
// name and password and receives an immediately active profile with the
// role and area scope the invitation carries.
func (s *InvitationService) AcceptInvitation(ctx context.Context, req AcceptInvitationRequest) (*UserResponse, error) {
	invitation, err := s.invitationRepo.FindByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVITATION_NOT_FOUND", "Invitation not found")
		}
		return nil, err
	}

	if err := invitation.Accept(); err != nil {
		// Accept flips a stale pending invitation to expired; persist that
		if invitation.Status == identity.InvitationStatusExpired {
			if saveErr := s.invitationRepo.Save(ctx, invitation); saveErr != nil {
				s.logger.Error("Failed to save expired invitation", zap.Error(saveErr))
			}
		}
		return nil, err
	}

	if _, err := s.profileRepo.FindByEmailGlobal(ctx, invitation.Email); err == nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "A user with this email already exists")
	}

	profile, err := identity.NewActiveUserProfile(invitation.TenantID, invitation.Email, req.FullName, req.Password, invitation.Role)
	if err != nil {
		return nil, err
	}
	if invitation.AreaID != nil {
		if err := profile.AssignArea(invitation.AreaID); err != nil {
			return nil, err
		}
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		s.logger.Error("Failed to save profile from invitation", zap.Error(err))
		return nil, err
	}
	if err := s.invitationRepo.Save(ctx, invitation); err != nil {
		s.logger.Error("Failed to save accepted invitation", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Invitation accepted",
		zap.String("invitation_id", invitation.ID.String()),
		zap.String("user_id", profile.ID.String()),
		zap.String("tenant_id", invitation.TenantID.String()))

	resp := ToUserResponse(profile)
	return &resp, nil
}

// RevokeInvitation revokes a pending invitation
func (s *InvitationService) RevokeInvitation(ctx context.Context, tenantID, invitationID, revokedBy uuid.UUID) error {
	revoker, err := s.profileRepo.FindByID(ctx, tenantID, revokedBy)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if !revoker.IsAdmin() {
		return shared.NewDomainError("FORBIDDEN", "Only admins can revoke invitations")
	}

	invitation, err := s.invitationRepo.FindByID(ctx, tenantID, invitationID)
	if err != nil {
		return err
	}

	if err := invitation.Revoke(); err != nil {
		return err
	}

	if err := s.invitationRepo.Save(ctx, invitation); err != nil {
		s.logger.Error("Failed to save revoked invitation", zap.Error(err))
		return err
	}

	s.logger.Info("Invitation revoked",
		zap.String("invitation_id", invitationID.String()),
		zap.String("revoked_by", revokedBy.String()))

	return nil
}

// GetInvitation returns a single invitation by ID
func (s *InvitationService) GetInvitation(ctx context.Context, tenantID, invitationID uuid.UUID) (*InvitationResponse, error) {
	invitation, err := s.invitationRepo.FindByID(ctx, tenantID, invitationID)
	if err != nil {
		return nil, err
	}

	resp := ToInvitationResponse(invitation, false)
	return &resp, nil
}

// ListInvitations returns a paginated list of invitations for the tenant
func (s *InvitationService) ListInvitations(ctx context.Context, tenantID uuid.UUID, filter ListInvitationsFilter) (*InvitationListResponse, error) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		Search:   filter.Search,
		Filters:  map[string]interface{}{},
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	invitations, total, err := s.invitationRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		s.logger.Error("Failed to list invitations", zap.Error(err))
		return nil, err
	}

	items := make([]InvitationResponse, len(invitations))
	for i, invitation := range invitations {
		items[i] = ToInvitationResponse(invitation, false)
	}

	return &InvitationListResponse{
		Invitations: items,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}

// ExpireInvitations marks stale pending invitations as expired.
// Called by the maintenance scheduler.
func (s *InvitationService) ExpireInvitations(ctx context.Context, limit int) (int, error) {
	invitations, err := s.invitationRepo.FindExpired(ctx, time.Now(), limit)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, invitation := range invitations {
		invitation.MarkExpired()
		if err := s.invitationRepo.Save(ctx, invitation); err != nil {
			s.logger.Error("Failed to save expired invitation",
				zap.String("invitation_id", invitation.ID.String()),
				zap.Error(err))
			continue
		}
		expired++
	}

	if expired > 0 {
		s.logger.Info("Stale invitations expired", zap.Int("count", expired))
	}

	return expired, nil
}
