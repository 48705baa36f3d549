package okr

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stratix/backend/internal/domain/okr"
	"github.com/stratix/backend/internal/domain/shared"
	"github.com/stratix/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// OverviewSnapshot is the company-wide dashboard payload
type OverviewSnapshot struct {
	TotalAreas      int64                   `json:"total_areas"`
	TotalObjectives int64                   `json:"total_objectives"`
	Initiatives     InitiativeStatsSnapshot `json:"initiatives"`
	Areas           []AreaSummarySnapshot   `json:"areas"`
	GeneratedAt     time.Time               `json:"generated_at"`
}

// InitiativeStatsSnapshot carries aggregate initiative numbers
type InitiativeStatsSnapshot struct {
	Total           int64                          `json:"total"`
	ByStatus        map[okr.InitiativeStatus]int64 `json:"by_status"`
	AverageProgress float64                        `json:"average_progress"`
	TotalBudget     decimal.Decimal                `json:"total_budget"`
	TotalActualCost decimal.Decimal                `json:"total_actual_cost"`
}

// AreaSummarySnapshot is one area's row on the overview dashboard
type AreaSummarySnapshot struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Color           string    `json:"color,omitempty"`
	InitiativeCount int64     `json:"initiative_count"`
	AverageProgress float64   `json:"average_progress"`
}

// AreaSnapshot is the per-area dashboard payload
type AreaSnapshot struct {
	Area        AreaResponse            `json:"area"`
	Objectives  []ObjectiveResponse     `json:"objectives"`
	Stats       InitiativeStatsSnapshot `json:"stats"`
	GeneratedAt time.Time               `json:"generated_at"`
}

// DashboardService builds dashboard snapshots, caching them in the
// snapshot cache. Concurrent requests for the same key are deduplicated
// so a cold cache triggers a single rebuild.
type DashboardService struct {
	areaRepo       okr.AreaRepository
	objectiveRepo  okr.ObjectiveRepository
	initiativeRepo okr.InitiativeRepository
	snapshotCache  cache.SnapshotCache
	config         cache.SnapshotCacheConfig
	flight         singleflight.Group
	logger         *zap.Logger
}

// NewDashboardService creates a new dashboard service. A nil cache
// disables caching and every call rebuilds the snapshot.
func NewDashboardService(
	areaRepo okr.AreaRepository,
	objectiveRepo okr.ObjectiveRepository,
	initiativeRepo okr.InitiativeRepository,
	snapshotCache cache.SnapshotCache,
	config cache.SnapshotCacheConfig,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		areaRepo:       areaRepo,
		objectiveRepo:  objectiveRepo,
		initiativeRepo: initiativeRepo,
		snapshotCache:  snapshotCache,
		config:         config,
		logger:         logger,
	}
}

// GetOverview returns the company-wide dashboard snapshot
func (s *DashboardService) GetOverview(ctx context.Context, tenantID uuid.UUID) (*OverviewSnapshot, error) {
	key := cache.OverviewKey(tenantID)

	if cached := s.readCache(ctx, key); cached != nil {
		var snapshot OverviewSnapshot
		if err := json.Unmarshal(cached, &snapshot); err == nil {
			return &snapshot, nil
		}
		s.logger.Warn("discarding unreadable overview snapshot", zap.String("key", key))
	}

	result, err, _ := s.flight.Do(key, func() (interface{}, error) {
		snapshot, err := s.buildOverview(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		s.writeCache(ctx, key, snapshot)
		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*OverviewSnapshot), nil
}

// GetAreaDashboard returns one area's dashboard snapshot
func (s *DashboardService) GetAreaDashboard(ctx context.Context, tenantID, areaID uuid.UUID) (*AreaSnapshot, error) {
	key := cache.AreaKey(tenantID, areaID)

	if cached := s.readCache(ctx, key); cached != nil {
		var snapshot AreaSnapshot
		if err := json.Unmarshal(cached, &snapshot); err == nil {
			return &snapshot, nil
		}
		s.logger.Warn("discarding unreadable area snapshot", zap.String("key", key))
	}

	result, err, _ := s.flight.Do(key, func() (interface{}, error) {
		snapshot, err := s.buildAreaDashboard(ctx, tenantID, areaID)
		if err != nil {
			return nil, err
		}
		s.writeCache(ctx, key, snapshot)
		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*AreaSnapshot), nil
}

func (s *DashboardService) buildOverview(ctx context.Context, tenantID uuid.UUID) (*OverviewSnapshot, error) {
	areas, err := s.areaRepo.FindActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	stats, err := s.initiativeRepo.StatsForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	totalObjectives := int64(0)
	summaries := make([]AreaSummarySnapshot, 0, len(areas))
	for _, area := range areas {
		objectiveCount, err := s.objectiveRepo.CountByArea(ctx, tenantID, area.ID)
		if err != nil {
			return nil, err
		}
		totalObjectives += objectiveCount

		areaStats, err := s.initiativeRepo.StatsForArea(ctx, tenantID, area.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, AreaSummarySnapshot{
			ID:              area.ID,
			Name:            area.Name,
			Color:           area.Color,
			InitiativeCount: areaStats.Total,
			AverageProgress: areaStats.AverageProgress,
		})
	}

	return &OverviewSnapshot{
		TotalAreas:      int64(len(areas)),
		TotalObjectives: totalObjectives,
		Initiatives:     toStatsSnapshot(stats),
		Areas:           summaries,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

func (s *DashboardService) buildAreaDashboard(ctx context.Context, tenantID, areaID uuid.UUID) (*AreaSnapshot, error) {
	area, err := s.areaRepo.FindByID(ctx, tenantID, areaID)
	if err != nil {
		return nil, shared.NewDomainError("AREA_NOT_FOUND", "Area not found")
	}

	objectives, err := s.objectiveRepo.FindByArea(ctx, tenantID, areaID)
	if err != nil {
		return nil, err
	}

	stats, err := s.initiativeRepo.StatsForArea(ctx, tenantID, areaID)
	if err != nil {
		return nil, err
	}

	objectiveResponses := make([]ObjectiveResponse, 0, len(objectives))
	for _, objective := range objectives {
		objectiveResponses = append(objectiveResponses, ToObjectiveResponse(objective))
	}

	return &AreaSnapshot{
		Area:        ToAreaResponse(area),
		Objectives:  objectiveResponses,
		Stats:       toStatsSnapshot(stats),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (s *DashboardService) readCache(ctx context.Context, key string) []byte {
	if s.snapshotCache == nil {
		return nil
	}
	data, err := s.snapshotCache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("snapshot cache read failed", zap.Error(err), zap.String("key", key))
		return nil
	}
	return data
}

func (s *DashboardService) writeCache(ctx context.Context, key string, snapshot interface{}) {
	if s.snapshotCache == nil {
		return
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.Warn("failed to serialize snapshot", zap.Error(err), zap.String("key", key))
		return
	}
	if err := s.snapshotCache.Set(ctx, key, data, s.config.SnapshotTTL); err != nil {
		s.logger.Warn("snapshot cache write failed", zap.Error(err), zap.String("key", key))
	}
}

func toStatsSnapshot(stats *okr.InitiativeStats) InitiativeStatsSnapshot {
	return InitiativeStatsSnapshot{
		Total:           stats.Total,
		ByStatus:        stats.ByStatus,
		AverageProgress: stats.AverageProgress,
		TotalBudget:     stats.TotalBudget,
		TotalActualCost: stats.TotalActualCost,
	}
}
