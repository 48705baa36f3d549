package importapp

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	csvimport "github.com/stratix/backend/internal/infrastructure/import"
)

const importDateFormat = "2006-01-02"

// InitiativeImportRow represents a row from the initiative CSV import
type InitiativeImportRow struct {
	Title       string `csv:"title"`
	Description string `csv:"description"`
	AreaName    string `csv:"area_name"`
	OwnerEmail  string `csv:"owner_email"`
	Status      string `csv:"status"`
	Priority    string `csv:"priority"`
	Progress    string `csv:"progress"`
	Budget      string `csv:"budget"`
	StartDate   string `csv:"start_date"`
	TargetDate  string `csv:"target_date"`
}

// InitiativeImportResult represents the result of an initiative import operation
type InitiativeImportResult struct {
	TotalRows    int                  `json:"total_rows"`
	ImportedRows int                  `json:"imported_rows"`
	UpdatedRows  int                  `json:"updated_rows"`
	SkippedRows  int                  `json:"skipped_rows"`
	ErrorRows    int                  `json:"error_rows"`
	Errors       []csvimport.RowError `json:"errors,omitempty"`
	IsTruncated  bool                 `json:"is_truncated,omitempty"`
	TotalErrors  int                  `json:"total_errors,omitempty"`
}

// InitiativeImportService handles initiative bulk import operations
type InitiativeImportService struct {
	initiativeRepo okr.InitiativeRepository
	areaRepo       okr.AreaRepository
	profileRepo    identity.UserProfileRepository
	eventBus       shared.EventPublisher
}

// NewInitiativeImportService creates a new InitiativeImportService
func NewInitiativeImportService(
	initiativeRepo okr.InitiativeRepository,
	areaRepo okr.AreaRepository,
	profileRepo identity.UserProfileRepository,
	eventBus shared.EventPublisher,
) *InitiativeImportService {
	return &InitiativeImportService{
		initiativeRepo: initiativeRepo,
		areaRepo:       areaRepo,
		profileRepo:    profileRepo,
		eventBus:       eventBus,
	}
}

// GetValidationRules returns the validation rules for initiative import
func (s *InitiativeImportService) GetValidationRules() []csvimport.FieldRule {
	zero := decimal.Zero
	hundred := decimal.NewFromInt(100)
	return []csvimport.FieldRule{
		csvimport.Field("title").Required().String().MinLength(1).MaxLength(200).Build(),
		csvimport.Field("description").String().MaxLength(2000).Build(),
		csvimport.Field("area_name").Required().String().MaxLength(100).Reference("area").Build(),
		csvimport.Field("owner_email").String().Email().Reference("user").Build(),
		csvimport.Field("status").String().Custom(validateInitiativeImportStatus).Build(),
		csvimport.Field("priority").String().Custom(validateImportPriority).Build(),
		csvimport.Field("progress").Int().Range(zero, hundred).Build(),
		csvimport.Field("budget").Decimal().MinValue(zero).Build(),
		csvimport.Field("start_date").DateFormat(importDateFormat).Build(),
		csvimport.Field("target_date").DateFormat(importDateFormat).Build(),
	}
}

// validateInitiativeImportStatus validates the status field
func validateInitiativeImportStatus(value string) error {
	if value == "" {
		return nil // empty defaults to planning
	}
	switch okr.InitiativeStatus(strings.ToLower(value)) {
	case okr.InitiativeStatusPlanning, okr.InitiativeStatusInProgress,
		okr.InitiativeStatusCompleted, okr.InitiativeStatusOnHold:
		return nil
	default:
		return fmt.Errorf("status must be one of 'planning', 'in_progress', 'completed', 'on_hold'")
	}
}

// validateImportPriority validates the priority field
func validateImportPriority(value string) error {
	if value == "" {
		return nil // empty defaults to medium
	}
	switch okr.Priority(strings.ToLower(value)) {
	case okr.PriorityLow, okr.PriorityMedium, okr.PriorityHigh, okr.PriorityCritical:
		return nil
	default:
		return fmt.Errorf("priority must be one of 'low', 'medium', 'high', 'critical'")
	}
}

// LookupReference checks if a referenced area or user exists
func (s *InitiativeImportService) LookupReference(ctx context.Context, tenantID uuid.UUID, refType, value string) (bool, error) {
	if value == "" {
		return true, nil
	}
	switch refType {
	case "area":
		return s.areaRepo.ExistsByName(ctx, tenantID, value)
	case "user":
		return s.profileRepo.ExistsByEmail(ctx, tenantID, strings.ToLower(value))
	default:
		return true, nil
	}
}

// Import imports initiatives from validated rows
func (s *InitiativeImportService) Import(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	session *csvimport.ImportSession,
	validRows []*csvimport.Row,
	conflictMode ConflictMode,
) (*InitiativeImportResult, error) {
	if session.State != csvimport.StateValidated {
		return nil, shared.NewDomainError("INVALID_STATE", "Import session must be in validated state")
	}

	if !session.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERRORS", "Cannot import session with validation errors")
	}

	session.UpdateState(csvimport.StateImporting)

	result := &InitiativeImportResult{
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
			// Critical error - stop import
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

// importRow imports a single initiative row
func (s *InitiativeImportService) importRow(
	ctx context.Context,
	tenantID, userID uuid.UUID,
	row *csvimport.Row,
	conflictMode ConflictMode,
	result *InitiativeImportResult,
	errors *csvimport.ErrorCollection,
) error {
	title := strings.TrimSpace(row.Get("title"))
	description := strings.TrimSpace(row.Get("description"))
	areaName := strings.TrimSpace(row.Get("area_name"))
	ownerEmail := strings.ToLower(strings.TrimSpace(row.Get("owner_email")))
	statusStr := strings.ToLower(strings.TrimSpace(row.Get("status")))
	priorityStr := strings.ToLower(strings.TrimSpace(row.Get("priority")))
	progressStr := strings.TrimSpace(row.Get("progress"))
	budgetStr := strings.TrimSpace(row.Get("budget"))
	startDateStr := strings.TrimSpace(row.Get("start_date"))
	targetDateStr := strings.TrimSpace(row.Get("target_date"))

	// Resolve area by name
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

	// Parse progress
	progress := 0
	if progressStr != "" {
		parsed, err := decimal.NewFromString(progressStr)
		if err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "progress", csvimport.ErrCodeImportInvalidType, "invalid integer value"))
			result.ErrorRows++
			return nil
		}
		progress = int(parsed.IntPart())
	}

	// Parse budget
	var budget decimal.Decimal
	if budgetStr != "" {
		budget, err = decimal.NewFromString(budgetStr)
		if err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "budget", csvimport.ErrCodeImportInvalidType, "invalid decimal value"))
			result.ErrorRows++
			return nil
		}
	}

	// Parse dates
	startDate, err := parseImportDate(startDateStr)
	if err != nil {
		errors.Add(csvimport.NewRowError(row.LineNumber, "start_date", csvimport.ErrCodeImportInvalidType, "invalid date, expected YYYY-MM-DD"))
		result.ErrorRows++
		return nil
	}
	targetDate, err := parseImportDate(targetDateStr)
	if err != nil {
		errors.Add(csvimport.NewRowError(row.LineNumber, "target_date", csvimport.ErrCodeImportInvalidType, "invalid date, expected YYYY-MM-DD"))
		result.ErrorRows++
		return nil
	}

	// Resolve optional owner
	var ownerID *uuid.UUID
	if ownerEmail != "" {
		profile, err := s.profileRepo.FindByEmail(ctx, tenantID, ownerEmail)
		if err != nil {
			if err == shared.ErrNotFound {
				errors.Add(csvimport.NewRowErrorWithValue(row.LineNumber, "owner_email", csvimport.ErrCodeImportReferenceNotFound,
					fmt.Sprintf("user '%s' not found", ownerEmail), ownerEmail))
				result.ErrorRows++
				return nil
			}
			return fmt.Errorf("failed to look up owner: %w", err)
		}
		ownerID = &profile.ID
	}

	// Check for an existing initiative with the same title
	existing, err := s.findByExactTitle(ctx, tenantID, title)
	if err != nil {
		return fmt.Errorf("failed to check existing initiative: %w", err)
	}

	if existing != nil {
		switch conflictMode {
		case ConflictModeSkip:
			result.SkippedRows++
			return nil
		case ConflictModeFail:
			errors.Add(csvimport.NewRowErrorWithValue(row.LineNumber, "title", csvimport.ErrCodeImportDuplicateInDB,
				fmt.Sprintf("initiative with title '%s' already exists", title), title))
			result.ErrorRows++
			return nil
		case ConflictModeUpdate:
			return s.updateExistingInitiative(ctx, userID, existing, row, description, priorityStr, progress, budget, startDate, targetDate, ownerID, result, errors)
		}
	}

	priority := normalizePriority(priorityStr)

	initiative, err := okr.NewInitiative(tenantID, area.ID, title, description, priority)
	if err != nil {
		errors.Add(csvimport.NewRowError(row.LineNumber, "", csvimport.ErrCodeImportValidation, err.Error()))
		result.ErrorRows++
		return nil
	}

	if ownerID != nil {
		initiative.AssignOwner(ownerID)
	}

	if startDate != nil || targetDate != nil {
		if err := initiative.SetDates(startDate, targetDate); err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "target_date", csvimport.ErrCodeImportValidation, err.Error()))
			result.ErrorRows++
			return nil
		}
	}

	if !budget.IsZero() {
		if err := initiative.SetBudget(budget); err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "budget", csvimport.ErrCodeImportValidation, err.Error()))
			result.ErrorRows++
			return nil
		}
	}

	// Record initial progress; this moves planning initiatives to in_progress
	var entry *okr.ProgressEntry
	if progress > 0 {
		entry, err = initiative.UpdateProgress(progress, "Imported", userID)
		if err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "progress", csvimport.ErrCodeImportValidation, err.Error()))
			result.ErrorRows++
			return nil
		}
	}

	// Walk the status machine to the requested state
	if statusStr != "" {
		if err := applyImportStatus(initiative, okr.InitiativeStatus(statusStr)); err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "status", csvimport.ErrCodeImportValidation, err.Error()))
			result.ErrorRows++
			return nil
		}
	}

	if entry != nil {
		err = s.initiativeRepo.SaveWithProgress(ctx, initiative, entry)
	} else {
		err = s.initiativeRepo.Save(ctx, initiative)
	}
	if err != nil {
		errors.Add(csvimport.NewRowError(row.LineNumber, "", csvimport.ErrCodeImportValidation, "failed to save initiative: "+err.Error()))
		result.ErrorRows++
		return nil
	}

	s.publishEvents(ctx, initiative, title)

	result.ImportedRows++
	return nil
}

// updateExistingInitiative updates an existing initiative with import data
func (s *InitiativeImportService) updateExistingInitiative(
	ctx context.Context,
	userID uuid.UUID,
	initiative *okr.Initiative,
	row *csvimport.Row,
	description, priorityStr string,
	progress int,
	budget decimal.Decimal,
	startDate, targetDate *time.Time,
	ownerID *uuid.UUID,
	result *InitiativeImportResult,
	errors *csvimport.ErrorCollection,
) error {
	priority := initiative.Priority
	if priorityStr != "" {
		priority = normalizePriority(priorityStr)
	}
	if description == "" {
		description = initiative.Description
	}

	if err := initiative.Update(initiative.Title, description, priority); err != nil {
		errors.Add(csvimport.NewRowError(row.LineNumber, "", csvimport.ErrCodeImportValidation, err.Error()))
		result.ErrorRows++
		return nil
	}

	if ownerID != nil {
		initiative.AssignOwner(ownerID)
	}

	if startDate != nil || targetDate != nil {
		if err := initiative.SetDates(startDate, targetDate); err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "target_date", csvimport.ErrCodeImportValidation, err.Error()))
			result.ErrorRows++
			return nil
		}
	}

	if !budget.IsZero() {
		if err := initiative.SetBudget(budget); err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "budget", csvimport.ErrCodeImportValidation, err.Error()))
			result.ErrorRows++
			return nil
		}
	}

	var entry *okr.ProgressEntry
	if progress != initiative.Progress && progress > 0 {
		var err error
		entry, err = initiative.UpdateProgress(progress, "Imported", userID)
		if err != nil {
			errors.Add(csvimport.NewRowError(row.LineNumber, "progress", csvimport.ErrCodeImportValidation, err.Error()))
			result.ErrorRows++
			return nil
		}
	}

	var err error
	if entry != nil {
		err = s.initiativeRepo.SaveWithProgress(ctx, initiative, entry)
	} else {
		err = s.initiativeRepo.Save(ctx, initiative)
	}
	if err != nil {
		errors.Add(csvimport.NewRowError(row.LineNumber, "", csvimport.ErrCodeImportValidation, "failed to save initiative: "+err.Error()))
		result.ErrorRows++
		return nil
	}

	s.publishEvents(ctx, initiative, initiative.Title)

	result.UpdatedRows++
	return nil
}

// findByExactTitle finds an initiative whose title matches exactly,
// case-insensitively
func (s *InitiativeImportService) findByExactTitle(ctx context.Context, tenantID uuid.UUID, title string) (*okr.Initiative, error) {
	matches, err := s.initiativeRepo.SearchByTitle(ctx, tenantID, title, 10)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if strings.EqualFold(m.Title, title) {
			return m, nil
		}
	}
	return nil, nil
}

func (s *InitiativeImportService) publishEvents(ctx context.Context, initiative *okr.Initiative, title string) {
	if s.eventBus == nil {
		return
	}
	events := initiative.GetDomainEvents()
	if len(events) > 0 {
		if err := s.eventBus.Publish(ctx, events...); err != nil {
			log.Printf("WARNING: failed to publish domain events for initiative %s: %v", title, err)
		}
	}
	initiative.ClearDomainEvents()
}

// normalizePriority normalizes the priority input, defaulting to medium
func normalizePriority(value string) okr.Priority {
	switch okr.Priority(strings.ToLower(value)) {
	case okr.PriorityLow:
		return okr.PriorityLow
	case okr.PriorityHigh:
		return okr.PriorityHigh
	case okr.PriorityCritical:
		return okr.PriorityCritical
	default:
		return okr.PriorityMedium
	}
}

// parseImportDate parses an optional YYYY-MM-DD date field
func parseImportDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(importDateFormat, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// applyImportStatus walks the status machine from the initiative's
// current state to the requested one, one allowed transition at a time
func applyImportStatus(initiative *okr.Initiative, target okr.InitiativeStatus) error {
	if initiative.Status == target {
		return nil
	}
	// A row with progress already moved off planning; leave it there
	if target == okr.InitiativeStatusPlanning {
		return nil
	}
	// Everything reachable from planning goes through in_progress
	if initiative.Status == okr.InitiativeStatusPlanning && target != okr.InitiativeStatusInProgress {
		if err := initiative.ChangeStatus(okr.InitiativeStatusInProgress); err != nil {
			return err
		}
	}
	if initiative.Status == target {
		return nil
	}
	return initiative.ChangeStatus(target)
}
