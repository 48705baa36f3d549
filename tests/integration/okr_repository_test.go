package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	"github.com/stratix/backend/internal/infrastructure/persistence"
)

// TestAreaRepository_Integration tests the AreaRepository against a real PostgreSQL database
func TestAreaRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := persistence.NewGormAreaRepository(testDB.DB)
	ctx := context.Background()
	tenantID := uuid.New()

	testDB.CreateTestTenantWithUUID(tenantID)

	t.Run("Save and FindByID", func(t *testing.T) {
		area, err := okr.NewArea(tenantID, "Engineering", "Product engineering group")
		require.NoError(t, err)
		area.ClearDomainEvents()

		err = repo.Save(ctx, area)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, tenantID, area.ID)
		require.NoError(t, err)
		assert.Equal(t, area.ID, found.ID)
		assert.Equal(t, "Engineering", found.Name)
		assert.Equal(t, tenantID, found.TenantID)
		assert.Equal(t, okr.AreaStatusActive, found.Status)
	})

	t.Run("FindByName is case-insensitive", func(t *testing.T) {
		area, err := okr.NewArea(tenantID, "Marketing", "")
		require.NoError(t, err)
		area.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, area))

		found, err := repo.FindByName(ctx, tenantID, "marketing")
		require.NoError(t, err)
		assert.Equal(t, area.ID, found.ID)
	})

	t.Run("ExistsByName", func(t *testing.T) {
		area, err := okr.NewArea(tenantID, "Sales", "")
		require.NoError(t, err)
		area.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, area))

		exists, err := repo.ExistsByName(ctx, tenantID, "Sales")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByName(ctx, tenantID, "Nonexistent")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Update reflects in store", func(t *testing.T) {
		area, err := okr.NewArea(tenantID, "Support", "")
		require.NoError(t, err)
		area.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, area))

		require.NoError(t, area.Update("Customer Success", "Renamed group"))
		area.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, area))

		found, err := repo.FindByID(ctx, tenantID, area.ID)
		require.NoError(t, err)
		assert.Equal(t, "Customer Success", found.Name)
		assert.Equal(t, "Renamed group", found.Description)
	})

	t.Run("Archive excludes from FindActive", func(t *testing.T) {
		activeArea, err := okr.NewArea(tenantID, "Finance", "")
		require.NoError(t, err)
		activeArea.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, activeArea))

		archivedArea, err := okr.NewArea(tenantID, "Legacy Ops", "")
		require.NoError(t, err)
		require.NoError(t, archivedArea.Archive())
		archivedArea.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, archivedArea))

		active, err := repo.FindActive(ctx, tenantID)
		require.NoError(t, err)

		ids := make(map[uuid.UUID]bool, len(active))
		for _, a := range active {
			ids[a.ID] = true
		}
		assert.True(t, ids[activeArea.ID])
		assert.False(t, ids[archivedArea.ID])
	})

	t.Run("FindAll with pagination", func(t *testing.T) {
		pageTenant := uuid.New()
		testDB.CreateTestTenantWithUUID(pageTenant)

		for i := range 8 {
			area, err := okr.NewArea(pageTenant, fmt.Sprintf("Area %02d", i), "")
			require.NoError(t, err)
			area.ClearDomainEvents()
			require.NoError(t, repo.Save(ctx, area))
		}

		filter := shared.Filter{Page: 1, PageSize: 5}
		areas, total, err := repo.FindAll(ctx, pageTenant, filter)
		require.NoError(t, err)
		assert.Len(t, areas, 5)
		assert.Equal(t, int64(8), total)

		filter.Page = 2
		page2, _, err := repo.FindAll(ctx, pageTenant, filter)
		require.NoError(t, err)
		assert.Len(t, page2, 3)
	})
}

// TestInitiativeRepository_Integration tests the InitiativeRepository with progress history
func TestInitiativeRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := persistence.NewGormInitiativeRepository(testDB.DB)
	progressRepo := persistence.NewGormProgressEntryRepository(testDB.DB)
	ctx := context.Background()

	tenantID := uuid.New()
	areaID := uuid.New()
	testDB.CreateTestTenantWithUUID(tenantID)
	testDB.CreateTestArea(tenantID, areaID)

	t.Run("Save and FindByID", func(t *testing.T) {
		initiative, err := okr.NewInitiative(tenantID, areaID, "Migrate billing pipeline", "Move invoicing off the legacy stack", okr.PriorityHigh)
		require.NoError(t, err)
		initiative.ClearDomainEvents()

		err = repo.Save(ctx, initiative)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, tenantID, initiative.ID)
		require.NoError(t, err)
		assert.Equal(t, initiative.ID, found.ID)
		assert.Equal(t, "Migrate billing pipeline", found.Title)
		assert.Equal(t, okr.PriorityHigh, found.Priority)
		assert.Equal(t, okr.InitiativeStatusPlanning, found.Status)
		assert.Equal(t, 0, found.Progress)
	})

	t.Run("SaveWithProgress persists entry atomically", func(t *testing.T) {
		initiative, err := okr.NewInitiative(tenantID, areaID, "Quarterly hiring push", "", okr.PriorityMedium)
		require.NoError(t, err)
		initiative.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, initiative))

		recorder := uuid.New()
		entry, err := initiative.UpdateProgress(40, "Four offers accepted", recorder)
		require.NoError(t, err)
		initiative.ClearDomainEvents()

		err = repo.SaveWithProgress(ctx, initiative, entry)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, tenantID, initiative.ID)
		require.NoError(t, err)
		assert.Equal(t, 40, found.Progress)
		// Moving off zero promotes planning to in_progress
		assert.Equal(t, okr.InitiativeStatusInProgress, found.Status)

		entries, total, err := progressRepo.FindByInitiative(ctx, tenantID, initiative.ID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, entries, 1)
		assert.Equal(t, 0, entries[0].PreviousProgress)
		assert.Equal(t, 40, entries[0].NewProgress)
		assert.Equal(t, "Four offers accepted", entries[0].Note)
		assert.Equal(t, recorder, entries[0].RecordedBy)
	})

	t.Run("FindAll filters by status", func(t *testing.T) {
		filterTenant := uuid.New()
		filterArea := uuid.New()
		testDB.CreateTestTenantWithUUID(filterTenant)
		testDB.CreateTestArea(filterTenant, filterArea)

		planning, err := okr.NewInitiative(filterTenant, filterArea, "Still planning", "", okr.PriorityLow)
		require.NoError(t, err)
		planning.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, planning))

		running, err := okr.NewInitiative(filterTenant, filterArea, "Already running", "", okr.PriorityLow)
		require.NoError(t, err)
		require.NoError(t, running.ChangeStatus(okr.InitiativeStatusInProgress))
		running.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, running))

		status := okr.InitiativeStatusInProgress
		results, total, err := repo.FindAll(ctx, filterTenant, okr.InitiativeFilter{Status: &status, Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, results, 1)
		assert.Equal(t, running.ID, results[0].ID)
	})

	t.Run("SearchByTitle matches partial case-insensitive", func(t *testing.T) {
		initiative, err := okr.NewInitiative(tenantID, areaID, "Observability rollout", "", okr.PriorityCritical)
		require.NoError(t, err)
		initiative.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, initiative))

		results, err := repo.SearchByTitle(ctx, tenantID, "observ", 10)
		require.NoError(t, err)
		require.NotEmpty(t, results)

		var hit bool
		for _, r := range results {
			if r.ID == initiative.ID {
				hit = true
			}
		}
		assert.True(t, hit)
	})

	t.Run("StatsForArea aggregates counts and progress", func(t *testing.T) {
		statsTenant := uuid.New()
		statsArea := uuid.New()
		testDB.CreateTestTenantWithUUID(statsTenant)
		testDB.CreateTestArea(statsTenant, statsArea)

		first, err := okr.NewInitiative(statsTenant, statsArea, "First effort", "", okr.PriorityMedium)
		require.NoError(t, err)
		_, err = first.UpdateProgress(50, "", uuid.New())
		require.NoError(t, err)
		first.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, first))

		second, err := okr.NewInitiative(statsTenant, statsArea, "Second effort", "", okr.PriorityMedium)
		require.NoError(t, err)
		require.NoError(t, second.ChangeStatus(okr.InitiativeStatusInProgress))
		require.NoError(t, second.ChangeStatus(okr.InitiativeStatusCompleted))
		second.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, second))

		stats, err := repo.StatsForArea(ctx, statsTenant, statsArea)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.Total)
		assert.Equal(t, int64(1), stats.ByStatus[okr.InitiativeStatusCompleted])
		assert.InDelta(t, 75.0, stats.AverageProgress, 0.01)
	})

	t.Run("Delete removes the row", func(t *testing.T) {
		initiative, err := okr.NewInitiative(tenantID, areaID, "Short-lived effort", "", okr.PriorityLow)
		require.NoError(t, err)
		initiative.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, initiative))

		require.NoError(t, repo.Delete(ctx, tenantID, initiative.ID))

		_, err = repo.FindByID(ctx, tenantID, initiative.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

// TestObjectiveRepository_Integration tests objective persistence and area linkage
func TestObjectiveRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := persistence.NewGormObjectiveRepository(testDB.DB)
	ctx := context.Background()

	tenantID := uuid.New()
	areaID := uuid.New()
	testDB.CreateTestTenantWithUUID(tenantID)
	testDB.CreateTestArea(tenantID, areaID)

	t.Run("Save and FindByID", func(t *testing.T) {
		objective, err := okr.NewObjective(tenantID, areaID, "Grow recurring revenue", "Double ARR by year end", okr.PriorityHigh)
		require.NoError(t, err)
		objective.ClearDomainEvents()

		require.NoError(t, repo.Save(ctx, objective))

		found, err := repo.FindByID(ctx, tenantID, objective.ID)
		require.NoError(t, err)
		assert.Equal(t, objective.ID, found.ID)
		assert.Equal(t, "Grow recurring revenue", found.Title)
		assert.Equal(t, areaID, found.AreaID)
	})

	t.Run("FindByArea returns only that area's objectives", func(t *testing.T) {
		otherArea := uuid.New()
		testDB.CreateTestArea(tenantID, otherArea)

		inArea, err := okr.NewObjective(tenantID, otherArea, "Area-local objective", "", okr.PriorityMedium)
		require.NoError(t, err)
		inArea.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, inArea))

		results, err := repo.FindByArea(ctx, tenantID, otherArea)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, inArea.ID, results[0].ID)
	})

	t.Run("CountByArea", func(t *testing.T) {
		countArea := uuid.New()
		testDB.CreateTestArea(tenantID, countArea)

		for i := range 3 {
			objective, err := okr.NewObjective(tenantID, countArea, fmt.Sprintf("Objective %d", i), "", okr.PriorityLow)
			require.NoError(t, err)
			objective.ClearDomainEvents()
			require.NoError(t, repo.Save(ctx, objective))
		}

		count, err := repo.CountByArea(ctx, tenantID, countArea)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}
