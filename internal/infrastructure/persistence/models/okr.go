package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
)

// AreaModel is the persistence model for the Area domain entity.
type AreaModel struct {
	TenantAggregateModel
	Name        string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_areas_tenant_name,priority:2"`
	Description string         `gorm:"type:text"`
	Color       string         `gorm:"type:varchar(7)"`
	ManagerID   *uuid.UUID     `gorm:"type:uuid;index"`
	Status      okr.AreaStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (AreaModel) TableName() string {
	return "areas"
}

// ToDomain converts the persistence model to a domain Area entity.
func (m *AreaModel) ToDomain() *okr.Area {
	area := &okr.Area{
		Name:        m.Name,
		Description: m.Description,
		Color:       m.Color,
		ManagerID:   m.ManagerID,
		Status:      m.Status,
	}
	m.PopulateTenantAggregateRoot(&area.TenantAggregateRoot)
	return area
}

// FromDomain populates the persistence model from a domain Area entity.
func (m *AreaModel) FromDomain(a *okr.Area) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.Name = a.Name
	m.Description = a.Description
	m.Color = a.Color
	m.ManagerID = a.ManagerID
	m.Status = a.Status
}

// AreaModelFromDomain creates a new persistence model from a domain Area entity.
func AreaModelFromDomain(a *okr.Area) *AreaModel {
	m := &AreaModel{}
	m.FromDomain(a)
	return m
}

// ObjectiveModel is the persistence model for the Objective domain entity.
type ObjectiveModel struct {
	TenantAggregateModel
	AreaID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	Title       string              `gorm:"type:varchar(200);not null"`
	Description string              `gorm:"type:text"`
	Status      okr.ObjectiveStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Priority    okr.Priority        `gorm:"type:varchar(20);not null;default:'medium'"`
	Progress    int                 `gorm:"not null;default:0"`
	TargetDate  *time.Time          `gorm:"index"`
}

// TableName returns the table name for GORM
func (ObjectiveModel) TableName() string {
	return "objectives"
}

// ToDomain converts the persistence model to a domain Objective entity.
func (m *ObjectiveModel) ToDomain() *okr.Objective {
	objective := &okr.Objective{
		AreaID:      m.AreaID,
		Title:       m.Title,
		Description: m.Description,
		Status:      m.Status,
		Priority:    m.Priority,
		Progress:    m.Progress,
		TargetDate:  m.TargetDate,
	}
	m.PopulateTenantAggregateRoot(&objective.TenantAggregateRoot)
	return objective
}

// FromDomain populates the persistence model from a domain Objective entity.
func (m *ObjectiveModel) FromDomain(o *okr.Objective) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.AreaID = o.AreaID
	m.Title = o.Title
	m.Description = o.Description
	m.Status = o.Status
	m.Priority = o.Priority
	m.Progress = o.Progress
	m.TargetDate = o.TargetDate
}

// ObjectiveModelFromDomain creates a new persistence model from a domain Objective entity.
func ObjectiveModelFromDomain(o *okr.Objective) *ObjectiveModel {
	m := &ObjectiveModel{}
	m.FromDomain(o)
	return m
}

// InitiativeModel is the persistence model for the Initiative domain entity.
type InitiativeModel struct {
	TenantAggregateModel
	ObjectiveID *uuid.UUID           `gorm:"type:uuid;index"`
	AreaID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	Title       string               `gorm:"type:varchar(200);not null;index"`
	Description string               `gorm:"type:text"`
	Status      okr.InitiativeStatus `gorm:"type:varchar(20);not null;default:'planning';index"`
	Priority    okr.Priority         `gorm:"type:varchar(20);not null;default:'medium'"`
	Progress    int                  `gorm:"not null;default:0"`
	Budget      decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	ActualCost  decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	OwnerID     *uuid.UUID           `gorm:"type:uuid;index"`
	StartDate   *time.Time
	TargetDate  *time.Time `gorm:"index"`
	CompletedAt *time.Time
}

// TableName returns the table name for GORM
func (InitiativeModel) TableName() string {
	return "initiatives"
}

// ToDomain converts the persistence model to a domain Initiative entity.
func (m *InitiativeModel) ToDomain() *okr.Initiative {
	initiative := &okr.Initiative{
		ObjectiveID: m.ObjectiveID,
		AreaID:      m.AreaID,
		Title:       m.Title,
		Description: m.Description,
		Status:      m.Status,
		Priority:    m.Priority,
		Progress:    m.Progress,
		Budget:      m.Budget,
		ActualCost:  m.ActualCost,
		OwnerID:     m.OwnerID,
		StartDate:   m.StartDate,
		TargetDate:  m.TargetDate,
		CompletedAt: m.CompletedAt,
	}
	m.PopulateTenantAggregateRoot(&initiative.TenantAggregateRoot)
	return initiative
}

// FromDomain populates the persistence model from a domain Initiative entity.
func (m *InitiativeModel) FromDomain(i *okr.Initiative) {
	m.FromDomainTenantAggregateRoot(i.TenantAggregateRoot)
	m.ObjectiveID = i.ObjectiveID
	m.AreaID = i.AreaID
	m.Title = i.Title
	m.Description = i.Description
	m.Status = i.Status
	m.Priority = i.Priority
	m.Progress = i.Progress
	m.Budget = i.Budget
	m.ActualCost = i.ActualCost
	m.OwnerID = i.OwnerID
	m.StartDate = i.StartDate
	m.TargetDate = i.TargetDate
	m.CompletedAt = i.CompletedAt
}

// InitiativeModelFromDomain creates a new persistence model from a domain Initiative entity.
func InitiativeModelFromDomain(i *okr.Initiative) *InitiativeModel {
	m := &InitiativeModel{}
	m.FromDomain(i)
	return m
}

// ActivityModel is the persistence model for the Activity domain entity.
type ActivityModel struct {
	TenantAggregateModel
	InitiativeID uuid.UUID          `gorm:"type:uuid;not null;index"`
	Title        string             `gorm:"type:varchar(200);not null"`
	Description  string             `gorm:"type:text"`
	Status       okr.ActivityStatus `gorm:"type:varchar(20);not null;default:'todo';index"`
	AssigneeID   *uuid.UUID         `gorm:"type:uuid;index"`
	DueDate      *time.Time
	CompletedAt  *time.Time
}

// TableName returns the table name for GORM
func (ActivityModel) TableName() string {
	return "activities"
}

// ToDomain converts the persistence model to a domain Activity entity.
func (m *ActivityModel) ToDomain() *okr.Activity {
	activity := &okr.Activity{
		InitiativeID: m.InitiativeID,
		Title:        m.Title,
		Description:  m.Description,
		Status:       m.Status,
		AssigneeID:   m.AssigneeID,
		DueDate:      m.DueDate,
		CompletedAt:  m.CompletedAt,
	}
	m.PopulateTenantAggregateRoot(&activity.TenantAggregateRoot)
	return activity
}

// FromDomain populates the persistence model from a domain Activity entity.
func (m *ActivityModel) FromDomain(a *okr.Activity) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.InitiativeID = a.InitiativeID
	m.Title = a.Title
	m.Description = a.Description
	m.Status = a.Status
	m.AssigneeID = a.AssigneeID
	m.DueDate = a.DueDate
	m.CompletedAt = a.CompletedAt
}

// ActivityModelFromDomain creates a new persistence model from a domain Activity entity.
func ActivityModelFromDomain(a *okr.Activity) *ActivityModel {
	m := &ActivityModel{}
	m.FromDomain(a)
	return m
}

// ProgressEntryModel is the persistence model for initiative progress history.
// Rows are append-only.
type ProgressEntryModel struct {
	BaseModel
	TenantID         uuid.UUID `gorm:"type:uuid;not null;index:idx_progress_history_tenant_initiative,priority:1"`
	InitiativeID     uuid.UUID `gorm:"type:uuid;not null;index:idx_progress_history_tenant_initiative,priority:2"`
	PreviousProgress int       `gorm:"not null"`
	NewProgress      int       `gorm:"not null"`
	Note             string    `gorm:"type:varchar(1000)"`
	RecordedBy       uuid.UUID `gorm:"type:uuid;not null"`
	RecordedAt       time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ProgressEntryModel) TableName() string {
	return "progress_history"
}

// ToDomain converts the persistence model to a domain ProgressEntry.
func (m *ProgressEntryModel) ToDomain() *okr.ProgressEntry {
	return &okr.ProgressEntry{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TenantID:         m.TenantID,
		InitiativeID:     m.InitiativeID,
		PreviousProgress: m.PreviousProgress,
		NewProgress:      m.NewProgress,
		Note:             m.Note,
		RecordedBy:       m.RecordedBy,
		RecordedAt:       m.RecordedAt,
	}
}

// FromDomain populates the persistence model from a domain ProgressEntry.
func (m *ProgressEntryModel) FromDomain(e *okr.ProgressEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.TenantID = e.TenantID
	m.InitiativeID = e.InitiativeID
	m.PreviousProgress = e.PreviousProgress
	m.NewProgress = e.NewProgress
	m.Note = e.Note
	m.RecordedBy = e.RecordedBy
	m.RecordedAt = e.RecordedAt
}

// ProgressEntryModelFromDomain creates a new persistence model from a domain ProgressEntry.
func ProgressEntryModelFromDomain(e *okr.ProgressEntry) *ProgressEntryModel {
	m := &ProgressEntryModel{}
	m.FromDomain(e)
	return m
}
