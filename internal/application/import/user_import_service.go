package importapp

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	csvimport "github.com/stratix/backend/internal/infrastructure/import"
)

// UserImportRow represents a row from the user backfill CSV import
type UserImportRow struct {
	Email    string `csv:"email"`
	FullName string `csv:"full_name"`
	Role     string `csv:"role"`
	AreaName string `csv:"area_name"`
}

// UserImportResult represents the result of a user import operation.
// Missing users are not created directly; an invitation is generated
// for each and counted as imported.
type UserImportResult struct {
	TotalRows          int                  `json:"total_rows"`
	InvitationsCreated int                  `json:"invitations_created"`
	UpdatedRows        int                  `json:"updated_rows"`
	SkippedRows        int                  `json:"skipped_rows"`
	ErrorRows          int                  `json:"error_rows"`
	Errors             []csvimport.RowError `json:"errors,omitempty"`
	IsTruncated        bool                 `json:"is_truncated,omitempty"`
	TotalErrors        int                  `json:"total_errors,omitempty"`
}

// UserImportService handles user backfill import operations
type UserImportService struct {
	profileRepo    identity.UserProfileRepository
	invitationRepo identity.InvitationRepository
	areaRepo       okr.AreaRepository
	eventBus       shared.EventPublisher
}

// NewUserImportService creates a new UserImportService
func NewUserImportService(
	profileRepo identity.UserProfileRepository,
	invitationRepo identity.InvitationRepository,
	areaRepo okr.AreaRepository,
	eventBus shared.EventPublisher,
) *UserImportService {
	return &UserImportService{
		profileRepo:    profileRepo,
		invitationRepo: invitationRepo,
		areaRepo:       areaRepo,
		eventBus:       eventBus,
	}
}

// GetValidationRules returns the validation rules for user import
func (s *UserImportService) GetValidationRules() []csvimport.FieldRule {
	return []csvimport.FieldRule{
		csvimport.Field("email").Required().String().Email().MaxLength(255).Build(),
		csvimport.Field("full_name").String().MaxLength(100).Build(),
		csvimport.Field("role").Required().String().Custom(validateImportRole).Build(),
		csvimport.Field("area_name").String().MaxLength(100).Reference("area").Build(),
	}
}

// validateImportRole validates the role field
func validateImportRole(value string) error {
	if value == "" {
		return nil // will be caught by required check
	}
	switch identity.UserRole(strings.ToLower(value)) {
	case identity.RoleAdmin, identity.RoleManager:
		return nil
	case identity.RoleCEO:
		return fmt.Errorf("ceo accounts cannot be created by import")
	default:
		return fmt.Errorf("role must be 'admin' or 'manager'")
	}
}

// LookupReference checks if a referenced area exists
func (s *UserImportService) LookupReference(ctx context.Context, tenantID uuid.UUID, refType, value string) (bool, error) {
	if value == "" {
		return true, nil
	}
	if refType == "area" {
		return s.areaRepo.ExistsByName(ctx, tenantID, value)
	}
	return true, nil
}

// Import backfills users from validated rows. Existing users are
// resolved by email and handled per the conflict mode; missing users
// get a pending invitation.
func (s *UserImportService) Import(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	session *csvimport.ImportSession,
	validRows []*csvimport.Row,
	conflictMode ConflictMode,
) (*UserImportResult, error) {
	if session.State != csvimport.StateValidated {
		return nil, shared.NewDomainError("INVALID_STATE", "Import session must be in validated state")
	}

	if !session.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERRORS", "Cannot import session with validation errors")
	}

	session.UpdateState(csvimport.StateImporting)

	result := &UserImportResult{
		TotalRows: len(validRows),
	}
	errors := csvimport.NewErrorCollection(100)

	for _, row := range validRows {
		select {
		case <-ctx.Done():
			session.UpdateState(csvimport.StateCancelled)
			return nil, ctx.Err()
		default:
		}

		err := s.importRow(ctx, tenantID, userID, row, conflictMode, result, errors)
		if err != nil {
			session.UpdateState(csvimport.StateFailed)
			return nil, err
		}
	}

	result.Errors = errors.Errors()
	result.IsTruncated = errors.IsTruncated()
	result.TotalErrors = errors.TotalCount()

	if result.ErrorRows > 0 {
		session.UpdateState(csvimport.StateFailed)
	} else {
		session.UpdateState(csvimport.StateCompleted)
	}

	return result, nil
}

// importRow processes a single user row
func (s *UserImportService) importRow(
	ctx context.Context,
	tenantID, importedBy uuid.UUID,
	row *csvimport.Row,
	conflictMode ConflictMode,
	result *UserImportResult,
	errors *csvimport.ErrorCollection,
) error {
	email := strings.ToLower(strings.TrimSpace(row.Get("email")))
	fullName := strings.TrimSpace(row.Get("full_name"))
	role := identity.UserRole(strings.ToLower(strings.TrimSpace(row.Get("role"))))
	areaName := strings.TrimSpace(row.Get("area_name"))

	// Resolve optional area scope
	var areaID *uuid.UUID
	if areaName != "" {
		area, err := s.areaRepo.FindByName(ctx, tenantID, areaName)
		if err != nil {
			if err == shared.ErrNotFound {
				errors.Add(csvimport.NewRowErrorWithValue(row.LineNumber, "area_name", csvimport.ErrCodeImportReferenceNotFound,
					fmt.Sprintf("area '%s' not found", areaName), areaName))
				result.ErrorRows++
				return nil
			}
			return fmt.Errorf("failed to look up area: %w", err)
		}
		areaID = &area.ID
	}

	// Area scope only applies to managers
	if areaID != nil && role != identity.RoleManager {
		errors.Add(csvimport.NewRowError(row.LineNumber, "area_name", csvimport.ErrCodeImportValidation,
			"only manager rows can carry an area"))
		result.ErrorRows++
		return nil
	}

	existing, err := s.profileRepo.FindByEmail(ctx, tenantID, email)
	if err != nil && err != shared.ErrNotFound {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	if existing != nil {
		switch conflictMode {
		case ConflictModeSkip:
			result.SkippedRows++
			return nil
		case ConflictModeFail:
			errors.Add(csvimport.NewRowErrorWithValue(row.LineNumber, "email", csvimport.ErrCodeImportDuplicateInDB,
				fmt.Sprintf("user with email '%s' already exists", email), email))
			result.ErrorRows++
			return nil
		case ConflictModeUpdate:
			return s.updateExistingUser(ctx, existing, row, fullName, role, areaID, result, errors)
		}
	}

	// A pending invitation already covers this email
	pending, err := s.invitationRepo.ExistsPendingByEmail(ctx, tenantID, email)
	if err != nil {
		return fmt.Errorf("failed to check pending invitations: %w", err)
	}
	if pending {
		result.SkippedRows++
		return nil
	}

	invitation, err := identity.NewInvitation(tenantID, importedBy, email, role, areaID)
	if err != nil {
		errors.Add(csvimport.NewRowError(row.LineNumber, "", csvimport.ErrCodeImportValidation, err.Error()))
		result.ErrorRows++
		return nil
	}

	if err := s.invitationRepo.Save(ctx, invitation); err != nil {
		errors.Add(csvimport.NewRowError(row.LineNumber, "", csvimport.ErrCodeImportValidation, "failed to save invitation: "+err.Error()))
		result.ErrorRows++
		return nil
	}

	if s.eventBus != nil {
		events := invitation.GetDomainEvents()
		if len(events) > 0 {
			if err := s.eventBus.Publish(ctx, events...); err != nil {
				log.Printf("WARNING: failed to publish domain events for invitation %s: %v", email, err)
			}
		}
		invitation.ClearDomainEvents()
	}

	result.InvitationsCreated++
	return nil
}

// updateExistingUser updates an existing user's name, role and area scope
func (s *UserImportService) updateExistingUser(
	ctx context.Context,
	profile *identity.UserProfile,
	row *csvimport.Row,
	fullName string,
	role identity.UserRole,
	areaID *uuid.UUID,
	result *UserImportResult,
	errors *csvimport.ErrorCollection,
) error {
	if fullName != "" && fullName != profile.FullName {
		if err := profile.Update(fullName); err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "full_name", csvimport.ErrCodeImportValidation, err.Error()))
			result.ErrorRows++
			return nil
		}
	}

	// The last CEO cannot be demoted through an import
	if profile.Role == identity.RoleCEO {
		errors.Add(csvimport.NewRowError(row.LineNumber, "role", csvimport.ErrCodeImportValidation,
			"ceo accounts cannot be modified by import"))
		result.ErrorRows++
		return nil
	}

	if profile.Role != role {
		if err := profile.SetRole(role); err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "role", csvimport.ErrCodeImportValidation, err.Error()))
			result.ErrorRows++
			return nil
		}
	}

	if role == identity.RoleManager {
		if err := profile.AssignArea(areaID); err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "area_name", csvimport.ErrCodeImportValidation, err.Error()))
			result.ErrorRows++
			return nil
		}
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		errors.Add(csvimport.NewRowError(row.LineNumber, "", csvimport.ErrCodeImportValidation, "failed to save user: "+err.Error()))
		result.ErrorRows++
		return nil
	}

	if s.eventBus != nil {
		events := profile.GetDomainEvents()
		if len(events) > 0 {
			if err := s.eventBus.Publish(ctx, events...); err != nil {
				log.Printf("WARNING: failed to publish domain events for user %s: %v", profile.Email, err)
			}
		}
		profile.ClearDomainEvents()
	}

	result.UpdatedRows++
	return nil
}
