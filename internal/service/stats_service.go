package service

import (
	"sort"
	"time"

	"go-pricing-sim/internal/model"
	"go-pricing-sim/internal/period"
	"go-pricing-sim/internal/permission"
	"go-pricing-sim/internal/repository"
)

type StatsService interface {
	Dashboard(viewer *model.User, perms permission.Set, kind period.Kind, custom period.Range) (*DashboardResponse, error)
	Analytics(kind period.Kind, custom period.Range) (*AnalyticsResponse, error)
	UsageHistory(limit int) ([]model.UsageEntry, error)
}

// DashboardResponse feeds the landing page stat cards.
type DashboardResponse struct {
	TotalSimulations  int                `json:"total_simulations"`
	TotalRevenue      float64            `json:"total_revenue"`
	AveragePrice      float64            `json:"average_price"`
	TotalDays         float64            `json:"total_days"`
	RecentSimulations []model.Simulation `json:"recent_simulations"`
}

// AnalyticsResponse aggregates committed simulations over a window.
type AnalyticsResponse struct {
	Period       period.Kind        `json:"period"`
	Summary      AnalyticsSummary   `json:"summary"`
	ByClientType []ClientTypeBucket `json:"by_client_type"`
	ByMonth      []MonthBucket      `json:"by_month"`
}

type AnalyticsSummary struct {
	SimulationCount int     `json:"simulation_count"`
	TotalRevenue    float64 `json:"total_revenue"`
	AveragePrice    float64 `json:"average_price"`
	AverageMargin   float64 `json:"average_margin"`
	TotalDays       float64 `json:"total_days"`
}

type ClientTypeBucket struct {
	Name         string  `json:"name"`
	Count        int     `json:"count"`
	TotalRevenue float64 `json:"total_revenue"`
}

type MonthBucket struct {
	Month        string  `json:"month"` // YYYY-MM
	Count        int     `json:"count"`
	TotalRevenue float64 `json:"total_revenue"`
}

type statsService struct {
	simulationRepo repository.SimulationRepository
	usageRepo      repository.UsageRepository
}

func NewStatsService(simulationRepo repository.SimulationRepository, usageRepo repository.UsageRepository) StatsService {
	return &statsService{simulationRepo: simulationRepo, usageRepo: usageRepo}
}

// Dashboard summarizes the simulations the viewer is allowed to see.
func (s *statsService) Dashboard(viewer *model.User, perms permission.Set, kind period.Kind, custom period.Range) (*DashboardResponse, error) {
	filter := repository.SimulationFilter{
		IsAdmin: perms.Has(model.PermViewAllSimulations),
	}
	if viewer != nil {
		id := viewer.ID
		filter.AuthorID = &id
	}
	simulations, err := s.simulationRepo.List(filter)
	if err != nil {
		return nil, err
	}

	simulations = period.Filter(simulations, simulationDate, kind, custom, time.Now())

	resp := &DashboardResponse{RecentSimulations: recentOf(simulations, 5)}
	resp.TotalSimulations = len(simulations)
	for i := range simulations {
		resp.TotalRevenue += simulations[i].RecommendedPrice
		resp.TotalDays += simulations[i].TotalDays()
	}
	if resp.TotalSimulations > 0 {
		resp.AveragePrice = resp.TotalRevenue / float64(resp.TotalSimulations)
	}
	return resp, nil
}

// Analytics aggregates across all authors. Access is gated by the
// analytics capability at the route level.
func (s *statsService) Analytics(kind period.Kind, custom period.Range) (*AnalyticsResponse, error) {
	simulations, err := s.simulationRepo.List(repository.SimulationFilter{IsAdmin: true})
	if err != nil {
		return nil, err
	}
	simulations = period.Filter(simulations, simulationDate, kind, custom, time.Now())

	resp := &AnalyticsResponse{Period: kind}
	clientBuckets := map[string]*ClientTypeBucket{}
	monthBuckets := map[string]*MonthBucket{}

	for i := range simulations {
		sim := &simulations[i]
		resp.Summary.SimulationCount++
		resp.Summary.TotalRevenue += sim.RecommendedPrice
		resp.Summary.AverageMargin += sim.MarginPercent
		resp.Summary.TotalDays += sim.TotalDays()

		name := sim.ClientType.Name
		if _, ok := clientBuckets[name]; !ok {
			clientBuckets[name] = &ClientTypeBucket{Name: name}
		}
		clientBuckets[name].Count++
		clientBuckets[name].TotalRevenue += sim.RecommendedPrice

		month := sim.CreatedAt.Format("2006-01")
		if _, ok := monthBuckets[month]; !ok {
			monthBuckets[month] = &MonthBucket{Month: month}
		}
		monthBuckets[month].Count++
		monthBuckets[month].TotalRevenue += sim.RecommendedPrice
	}

	if resp.Summary.SimulationCount > 0 {
		resp.Summary.AveragePrice = resp.Summary.TotalRevenue / float64(resp.Summary.SimulationCount)
		resp.Summary.AverageMargin /= float64(resp.Summary.SimulationCount)
	}

	for _, bucket := range clientBuckets {
		resp.ByClientType = append(resp.ByClientType, *bucket)
	}
	sort.Slice(resp.ByClientType, func(i, j int) bool {
		return resp.ByClientType[i].TotalRevenue > resp.ByClientType[j].TotalRevenue
	})

	for _, bucket := range monthBuckets {
		resp.ByMonth = append(resp.ByMonth, *bucket)
	}
	sort.Slice(resp.ByMonth, func(i, j int) bool {
		return resp.ByMonth[i].Month < resp.ByMonth[j].Month
	})

	return resp, nil
}

func (s *statsService) UsageHistory(limit int) ([]model.UsageEntry, error) {
	return s.usageRepo.FindRecent(limit)
}

func simulationDate(s model.Simulation) time.Time { return s.CreatedAt }

// recentOf returns the newest n entries; the repo already orders by
// created_at descending.
func recentOf(simulations []model.Simulation, n int) []model.Simulation {
	if len(simulations) < n {
		n = len(simulations)
	}
	return simulations[:n]
}
