package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"slug":          true,
	"name":          true,
	"status":        true,
	"plan":          true,
	"trial_ends_at": true,
}

// UserProfileSortFields contains allowed sort fields for user profiles
var UserProfileSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"full_name":     true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}

// InvitationSortFields contains allowed sort fields for invitations
var InvitationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"email":      true,
	"role":       true,
	"status":     true,
	"expires_at": true,
}

// AreaSortFields contains allowed sort fields for areas
var AreaSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"status":     true,
}

// ObjectiveSortFields contains allowed sort fields for objectives
var ObjectiveSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"title":       true,
	"status":      true,
	"priority":    true,
	"progress":    true,
	"target_date": true,
}

// InitiativeSortFields contains allowed sort fields for initiatives
var InitiativeSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"title":        true,
	"status":       true,
	"priority":     true,
	"progress":     true,
	"budget":       true,
	"actual_cost":  true,
	"start_date":   true,
	"target_date":  true,
	"completed_at": true,
}

// ActivitySortFields contains allowed sort fields for activities
var ActivitySortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"title":        true,
	"status":       true,
	"due_date":     true,
	"completed_at": true,
}
