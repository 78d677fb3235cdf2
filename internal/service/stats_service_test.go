package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pricing-sim/internal/model"
	"go-pricing-sim/internal/period"
	"go-pricing-sim/internal/permission"
)

func seededSimulation(author uuid.UUID, clientTypeName string, price float64, createdAt time.Time) model.Simulation {
	return model.Simulation{
		BaseModel:  model.BaseModel{ID: uuid.New(), CreatedAt: createdAt},
		ClientName: "Client",
		ClientType: model.ClientTypeSnapshot{Name: clientTypeName, Coefficient: 1},
		WorkItems: model.WorkItems{
			{RoleName: "Développeur", Days: 5, DailyRate: price / 5},
		},
		MarginPercent:    30,
		InternalCost:     price,
		RecommendedPrice: price,
		CreatedByID:      &author,
	}
}

func TestDashboard_AggregatesVisibleSimulations(t *testing.T) {
	repo := &stubSimulationRepo{}
	author := uuid.New()
	now := time.Now()
	repo.records = []model.Simulation{
		seededSimulation(author, "PME Locale", 1000000, now.AddDate(0, 0, -1)),
		seededSimulation(author, "PME Locale", 3000000, now.AddDate(0, 0, -2)),
	}

	svc := NewStatsService(repo, &stubUsageRepo{})
	viewer := model.User{BaseModel: model.BaseModel{ID: author}}

	dashboard, err := svc.Dashboard(&viewer, permission.Set{}, period.KindAll, period.Range{})
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.TotalSimulations)
	assert.InDelta(t, 4000000, dashboard.TotalRevenue, 1e-9)
	assert.InDelta(t, 2000000, dashboard.AveragePrice, 1e-9)
	assert.Equal(t, 10.0, dashboard.TotalDays)
	assert.Len(t, dashboard.RecentSimulations, 2)
}

func TestDashboard_AppliesPeriodWindow(t *testing.T) {
	repo := &stubSimulationRepo{}
	author := uuid.New()
	now := time.Now()
	repo.records = []model.Simulation{
		seededSimulation(author, "PME Locale", 1000000, now.AddDate(0, 0, -2)),
		seededSimulation(author, "PME Locale", 5000000, now.AddDate(0, 0, -60)),
	}

	svc := NewStatsService(repo, &stubUsageRepo{})
	viewer := model.User{BaseModel: model.BaseModel{ID: author}}

	dashboard, err := svc.Dashboard(&viewer, permission.Set{}, period.KindMonth, period.Range{})
	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.TotalSimulations, "the 60-day-old record falls outside the trailing month")
	assert.InDelta(t, 1000000, dashboard.TotalRevenue, 1e-9)
}

func TestDashboard_ScopedToOwnRecordsWithoutViewAll(t *testing.T) {
	repo := &stubSimulationRepo{}
	mine := uuid.New()
	other := uuid.New()
	now := time.Now()
	repo.records = []model.Simulation{
		seededSimulation(mine, "PME Locale", 1000000, now),
		seededSimulation(other, "PME Locale", 9000000, now),
	}

	svc := NewStatsService(repo, &stubUsageRepo{})
	viewer := model.User{BaseModel: model.BaseModel{ID: mine}}

	dashboard, err := svc.Dashboard(&viewer, permission.Set{}, period.KindAll, period.Range{})
	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.TotalSimulations)

	dashboard, err = svc.Dashboard(&viewer, permission.Set{model.PermViewAllSimulations: true}, period.KindAll, period.Range{})
	require.NoError(t, err)
	assert.Equal(t, 2, dashboard.TotalSimulations)
}

func TestAnalytics_BucketsByClientTypeAndMonth(t *testing.T) {
	repo := &stubSimulationRepo{}
	author := uuid.New()
	jan := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 5, 12, 0, 0, 0, time.UTC)
	repo.records = []model.Simulation{
		seededSimulation(author, "PME Locale", 1000000, jan),
		seededSimulation(author, "PME Locale", 2000000, jan),
		seededSimulation(author, "Grande Entreprise", 4000000, feb),
	}

	svc := NewStatsService(repo, &stubUsageRepo{})
	analytics, err := svc.Analytics(period.KindAll, period.Range{})
	require.NoError(t, err)

	assert.Equal(t, 3, analytics.Summary.SimulationCount)
	assert.InDelta(t, 7000000, analytics.Summary.TotalRevenue, 1e-9)
	assert.InDelta(t, 30, analytics.Summary.AverageMargin, 1e-9)

	require.Len(t, analytics.ByClientType, 2)
	assert.Equal(t, "Grande Entreprise", analytics.ByClientType[0].Name, "sorted by revenue descending")
	assert.Equal(t, 2, analytics.ByClientType[1].Count)

	require.Len(t, analytics.ByMonth, 2)
	assert.Equal(t, "2026-01", analytics.ByMonth[0].Month)
	assert.InDelta(t, 3000000, analytics.ByMonth[0].TotalRevenue, 1e-9)
	assert.Equal(t, "2026-02", analytics.ByMonth[1].Month)
}

func TestAnalytics_EmptyWindow(t *testing.T) {
	svc := NewStatsService(&stubSimulationRepo{}, &stubUsageRepo{})

	analytics, err := svc.Analytics(period.KindToday, period.Range{})
	require.NoError(t, err)
	assert.Zero(t, analytics.Summary.SimulationCount)
	assert.Zero(t, analytics.Summary.AveragePrice)
	assert.Empty(t, analytics.ByClientType)
}
