package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TenantService handles tenant lifecycle operations
type TenantService struct {
	tenantRepo  identity.TenantRepository
	profileRepo identity.UserProfileRepository
	logger      *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo identity.TenantRepository,
	profileRepo identity.UserProfileRepository,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo:  tenantRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// RegisterTenant creates a new tenant together with its first CEO user.
// The CEO profile is created active so the founder can log in right away.
func (s *TenantService) RegisterTenant(ctx context.Context, req RegisterTenantRequest) (*RegisterTenantResult, error) {
	exists, err := s.tenantRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		s.logger.Error("Failed to check tenant slug", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("SLUG_TAKEN", "A workspace with this slug already exists")
	}

	// Emails are globally unique across tenants
	if _, err := s.profileRepo.FindByEmailGlobal(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "A user with this email already exists")
	}

	var tenant *identity.Tenant
	if req.TrialDays > 0 {
		tenant, err = identity.NewTrialTenant(req.Slug, req.Name, req.TrialDays)
	} else {
		tenant, err = identity.NewTenant(req.Slug, req.Name)
	}
	if err != nil {
		return nil, err
	}

	ceo, err := identity.NewActiveUserProfile(tenant.ID, req.Email, req.FullName, req.Password, identity.RoleCEO)
	if err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to save tenant", zap.Error(err))
		return nil, err
	}
	if err := s.profileRepo.Save(ctx, ceo); err != nil {
		s.logger.Error("Failed to save CEO profile, rolling back tenant", zap.Error(err))
		if delErr := s.tenantRepo.Delete(ctx, tenant.ID); delErr != nil {
			s.logger.Error("Failed to roll back tenant", zap.Error(delErr))
		}
		return nil, err
	}

	s.logger.Info("Tenant registered",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("slug", tenant.Slug),
		zap.String("ceo_id", ceo.ID.String()))

	return &RegisterTenantResult{
		Tenant: ToTenantResponse(tenant),
		User:   ToUserResponse(ceo),
	}, nil
}

// GetTenant returns the tenant by ID
func (s *TenantService) GetTenant(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// GetTenantBySlug returns the tenant by its slug
func (s *TenantService) GetTenantBySlug(ctx context.Context, slug string) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// UpdateTenant updates the tenant's editable fields
func (s *TenantService) UpdateTenant(ctx context.Context, tenantID uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := tenant.Update(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ContactName != nil || req.ContactEmail != nil {
		contactName := tenant.ContactName
		contactEmail := tenant.ContactEmail
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		if req.ContactEmail != nil {
			contactEmail = *req.ContactEmail
		}
		if err := tenant.SetContact(contactName, contactEmail); err != nil {
			return nil, err
		}
	}
	if req.LogoURL != nil {
		if err := tenant.SetLogoURL(*req.LogoURL); err != nil {
			return nil, err
		}
	}
	if req.Timezone != nil || req.Locale != nil {
		settings := tenant.Settings
		if req.Timezone != nil {
			settings.Timezone = *req.Timezone
		}
		if req.Locale != nil {
			settings.Locale = *req.Locale
		}
		if err := tenant.UpdateSettings(settings); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to save tenant", zap.Error(err))
		return nil, err
	}

	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// ChangePlan moves the tenant to a different subscription plan.
// Upgrading a trial tenant to a paid plan activates it.
func (s *TenantService) ChangePlan(ctx context.Context, tenantID uuid.UUID, req ChangePlanRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := tenant.SetPlan(identity.TenantPlan(req.Plan)); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to save tenant after plan change", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Tenant plan changed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("plan", req.Plan))

	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// SuspendTenant suspends the tenant, blocking all logins
func (s *TenantService) SuspendTenant(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	return s.changeStatus(ctx, tenantID, func(t *identity.Tenant) error {
		return t.Suspend()
	})
}

// ActivateTenant reactivates a suspended or inactive tenant
func (s *TenantService) ActivateTenant(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	return s.changeStatus(ctx, tenantID, func(t *identity.Tenant) error {
		return t.Activate()
	})
}

// DeactivateTenant deactivates the tenant
func (s *TenantService) DeactivateTenant(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	return s.changeStatus(ctx, tenantID, func(t *identity.Tenant) error {
		return t.Deactivate()
	})
}

func (s *TenantService) changeStatus(ctx context.Context, tenantID uuid.UUID, change func(*identity.Tenant) error) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := change(tenant); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to save tenant after status change", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Tenant status changed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("status", string(tenant.Status)))

	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// ExpireTrials suspends trial tenants whose trial period has ended.
// Called by the maintenance scheduler.
func (s *TenantService) ExpireTrials(ctx context.Context) (int, error) {
	tenants, err := s.tenantRepo.FindTrialExpiring(ctx, 0)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range tenants {
		tenant := &tenants[i]
		if !tenant.IsTrialExpired() {
			continue
		}
		if err := tenant.Suspend(); err != nil {
			s.logger.Warn("Failed to suspend expired trial",
				zap.String("tenant_id", tenant.ID.String()),
				zap.Error(err))
			continue
		}
		if err := s.tenantRepo.Save(ctx, tenant); err != nil {
			s.logger.Error("Failed to save suspended trial tenant",
				zap.String("tenant_id", tenant.ID.String()),
				zap.Error(err))
			continue
		}
		expired++
	}

	if expired > 0 {
		s.logger.Info("Expired trial tenants suspended", zap.Int("count", expired))
	}

	return expired, nil
}
