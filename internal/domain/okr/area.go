package okr

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/shared"
)

// AreaStatus represents the status of an area
type AreaStatus string

const (
	AreaStatusActive   AreaStatus = "active"
	AreaStatusArchived AreaStatus = "archived"
)

// Area represents an organizational area (department, business unit).
// Objectives and initiatives are grouped under areas; managers can be
// scoped to a single area.
type Area struct {
	shared.TenantAggregateRoot
	Name        string
	Description string
	Color       string // Hex color used by dashboard charts
	ManagerID   *uuid.UUID
	Status      AreaStatus
}

// NewArea creates a new active area
func NewArea(tenantID uuid.UUID, name, description string) (*Area, error) {
	if err := validateAreaName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	area := &Area{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		Description:         description,
		Status:              AreaStatusActive,
	}

	area.AddDomainEvent(NewAreaCreatedEvent(area))

	return area, nil
}

// Update updates the area's basic information
func (a *Area) Update(name, description string) error {
	if a.Status == AreaStatusArchived {
		return shared.NewDomainError("AREA_ARCHIVED", "Archived areas cannot be modified")
	}
	if err := validateAreaName(name); err != nil {
		return err
	}
	if err := validateDescription(description); err != nil {
		return err
	}

	a.Name = strings.TrimSpace(name)
	a.Description = description
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAreaUpdatedEvent(a))

	return nil
}

// SetColor sets the dashboard color for the area
func (a *Area) SetColor(color string) error {
	if color != "" && !isHexColor(color) {
		return shared.NewDomainError("INVALID_COLOR", "Color must be a hex value like #1a2b3c")
	}

	a.Color = strings.ToLower(color)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// AssignManager assigns a manager to the area
func (a *Area) AssignManager(managerID *uuid.UUID) {
	a.ManagerID = managerID
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// Archive soft-deletes the area
func (a *Area) Archive() error {
	if a.Status == AreaStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Area is already archived")
	}

	a.Status = AreaStatusArchived
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAreaArchivedEvent(a))

	return nil
}

// Restore re-activates an archived area
func (a *Area) Restore() error {
	if a.Status != AreaStatusArchived {
		return shared.NewDomainError("NOT_ARCHIVED", "Area is not archived")
	}

	a.Status = AreaStatusActive
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// IsActive returns true if the area is active
func (a *Area) IsActive() bool {
	return a.Status == AreaStatusActive
}

func validateAreaName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Area name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Area name cannot exceed 100 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 2000 characters")
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return true
}
