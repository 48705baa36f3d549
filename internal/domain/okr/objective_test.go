package okr

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestObjective(t *testing.T) *Objective {
	t.Helper()
	objective, err := NewObjective(uuid.New(), uuid.New(), "Grow recurring revenue", "", PriorityMedium)
	require.NoError(t, err)
	objective.ClearDomainEvents()
	return objective
}

func TestNewObjective(t *testing.T) {
	tenantID := uuid.New()
	areaID := uuid.New()

	t.Run("creates draft objective", func(t *testing.T) {
		objective, err := NewObjective(tenantID, areaID, "Grow recurring revenue", "Target 20% YoY", PriorityMedium)

		require.NoError(t, err)
		assert.Equal(t, ObjectiveStatusDraft, objective.Status)
		assert.Equal(t, 0, objective.Progress)
		assert.Len(t, objective.GetDomainEvents(), 1)
	})

	t.Run("fails without area", func(t *testing.T) {
		objective, err := NewObjective(tenantID, uuid.Nil, "Grow", "", PriorityMedium)

		assert.Error(t, err)
		assert.Nil(t, objective)
	})

	t.Run("fails with title exceeding max length", func(t *testing.T) {
		objective, err := NewObjective(tenantID, areaID, strings.Repeat("a", 201), "", PriorityMedium)

		assert.Error(t, err)
		assert.Nil(t, objective)
	})
}

func TestObjective_ChangeStatus(t *testing.T) {
	t.Run("draft to active to completed", func(t *testing.T) {
		objective := newTestObjective(t)

		require.NoError(t, objective.ChangeStatus(ObjectiveStatusActive))
		require.NoError(t, objective.ChangeStatus(ObjectiveStatusCompleted))

		assert.Equal(t, ObjectiveStatusCompleted, objective.Status)
	})

	t.Run("completed can be reactivated", func(t *testing.T) {
		objective := newTestObjective(t)
		require.NoError(t, objective.ChangeStatus(ObjectiveStatusActive))
		require.NoError(t, objective.ChangeStatus(ObjectiveStatusCompleted))

		require.NoError(t, objective.ChangeStatus(ObjectiveStatusActive))
		assert.Equal(t, ObjectiveStatusActive, objective.Status)
	})

	t.Run("draft cannot complete directly", func(t *testing.T) {
		objective := newTestObjective(t)

		err := objective.ChangeStatus(ObjectiveStatusCompleted)

		assert.Error(t, err)
	})

	t.Run("archived is terminal", func(t *testing.T) {
		objective := newTestObjective(t)
		require.NoError(t, objective.Archive())

		err := objective.ChangeStatus(ObjectiveStatusActive)

		assert.Error(t, err)
		assert.True(t, objective.IsArchived())
	})
}

func TestObjective_Update(t *testing.T) {
	t.Run("archived objectives cannot be modified", func(t *testing.T) {
		objective := newTestObjective(t)
		require.NoError(t, objective.Archive())

		err := objective.Update("New title", "", PriorityHigh)

		assert.Error(t, err)
	})
}

func TestObjective_RecalculateProgress(t *testing.T) {
	t.Run("sets rolled-up progress and raises event", func(t *testing.T) {
		objective := newTestObjective(t)

		objective.RecalculateProgress(45)

		assert.Equal(t, 45, objective.Progress)
		assert.Len(t, objective.GetDomainEvents(), 1)
	})

	t.Run("clamps out-of-range values", func(t *testing.T) {
		objective := newTestObjective(t)

		objective.RecalculateProgress(130)
		assert.Equal(t, 100, objective.Progress)

		objective.RecalculateProgress(-10)
		assert.Equal(t, 0, objective.Progress)
	})

	t.Run("unchanged progress raises no event", func(t *testing.T) {
		objective := newTestObjective(t)
		objective.RecalculateProgress(45)
		objective.ClearDomainEvents()
		version := objective.Version

		objective.RecalculateProgress(45)

		assert.Empty(t, objective.GetDomainEvents())
		assert.Equal(t, version, objective.Version)
	})
}
