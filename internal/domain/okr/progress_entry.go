package okr

import (
	"time"

	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/shared"
)

// ProgressEntry is an append-only record of an initiative progress change.
// Entries are created by Initiative.UpdateProgress and never modified.
type ProgressEntry struct {
	shared.BaseEntity
	TenantID         uuid.UUID
	InitiativeID     uuid.UUID
	PreviousProgress int
	NewProgress      int
	Note             string
	RecordedBy       uuid.UUID
	RecordedAt       time.Time
}

// NewProgressEntry creates a history entry for a progress change
func NewProgressEntry(tenantID, initiativeID uuid.UUID, previousProgress, newProgress int, note string, recordedBy uuid.UUID) *ProgressEntry {
	return &ProgressEntry{
		BaseEntity:       shared.NewBaseEntity(),
		TenantID:         tenantID,
		InitiativeID:     initiativeID,
		PreviousProgress: previousProgress,
		NewProgress:      newProgress,
		Note:             note,
		RecordedBy:       recordedBy,
		RecordedAt:       time.Now(),
	}
}

// Delta returns the signed progress change
func (e *ProgressEntry) Delta() int {
	return e.NewProgress - e.PreviousProgress
}
