package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-pricing-sim/internal/model"
	"go-pricing-sim/internal/period"
	"go-pricing-sim/internal/permission"
	"go-pricing-sim/internal/pricing"
	"go-pricing-sim/internal/repository"
	"go-pricing-sim/internal/ws"
)

var (
	ErrClientNameRequired  = errors.New("client name is required")
	ErrClientTypeRequired  = errors.New("a client type must be selected")
	ErrProjectTypeRequired = errors.New("a project type must be selected")
	ErrNothingToPrice      = errors.New("at least one role with a positive workload is required")
	ErrSimulationNotFound  = errors.New("simulation not found")
	ErrSimulationForbidden = errors.New("you are not allowed to view this simulation")
	ErrClientTypeNotFound  = errors.New("selected client type does not exist")
	ErrProjectTypeNotFound = errors.New("selected project type does not exist")
	ErrMarginRequired      = errors.New("a margin must be selected")
	ErrMarginUnavailable   = errors.New("selected margin does not exist or is inactive")
)

type SimulationService interface {
	Preview(req CalculationRequest) (*PreviewResponse, error)
	Commit(author *model.User, req CalculationRequest) (*model.Simulation, error)
	List(viewer *model.User, perms permission.Set, req HistoryRequest) ([]model.Simulation, error)
	Get(viewer *model.User, perms permission.Set, id uuid.UUID) (*model.Simulation, error)
}

// CalculationRequest carries the calculator's current state. Units are
// keyed by rate id and expressed in Mode units (days or hours).
//
// MarginID selects a margin catalog row; previews fall back to
// MarginPercent (or zero) when none is selected yet, commits require
// one.
type CalculationRequest struct {
	ClientName    string                `json:"client_name"`
	Units         map[uuid.UUID]float64 `json:"units"`
	Mode          pricing.Mode          `json:"mode"`
	ClientTypeID  *uuid.UUID            `json:"client_type_id"`
	ProjectTypeID *uuid.UUID            `json:"project_type_id"`
	MarginID      *uuid.UUID            `json:"margin_id"`
	MarginPercent float64               `json:"margin_percent"`
}

// PreviewResponse is a live calculation: never persisted, never
// rejected. Missing selections simply fall back to neutral values.
type PreviewResponse struct {
	Result        pricing.Result `json:"result"`
	TotalDays     float64        `json:"total_days"`
	Justification []string       `json:"justification,omitempty"`
}

// HistoryRequest narrows the listing. Period and custom range follow
// the shared date filter semantics.
type HistoryRequest struct {
	Period       period.Kind
	CustomRange  period.Range
	ClientTypeID *uuid.UUID
	Search       string
	Limit        int
}

type simulationService struct {
	simulationRepo  repository.SimulationRepository
	rateRepo        repository.RateRepository
	clientTypeRepo  repository.ClientTypeRepository
	marginRepo      repository.MarginRepository
	projectTypeRepo repository.ProjectTypeRepository
	usageRepo       repository.UsageRepository
	wsHub           *ws.Hub
}

func NewSimulationService(
	simulationRepo repository.SimulationRepository,
	rateRepo repository.RateRepository,
	clientTypeRepo repository.ClientTypeRepository,
	marginRepo repository.MarginRepository,
	projectTypeRepo repository.ProjectTypeRepository,
	usageRepo repository.UsageRepository,
	hub *ws.Hub,
) SimulationService {
	return &simulationService{
		simulationRepo:  simulationRepo,
		rateRepo:        rateRepo,
		clientTypeRepo:  clientTypeRepo,
		marginRepo:      marginRepo,
		projectTypeRepo: projectTypeRepo,
		usageRepo:       usageRepo,
		wsHub:           hub,
	}
}

// Preview runs the engine over the current calculator state. It cannot
// fail on business grounds: an empty selection yields a zero-valued
// result with no justification.
func (s *simulationService) Preview(req CalculationRequest) (*PreviewResponse, error) {
	// 1. Load the active rate catalog
	rates, err := s.rateRepo.FindActive()
	if err != nil {
		return nil, err
	}

	// 2. Resolve optional selections; nil means neutral
	var clientType *model.ClientType
	if req.ClientTypeID != nil {
		clientType, err = s.clientTypeRepo.FindByID(*req.ClientTypeID)
		if err != nil {
			return nil, ErrClientTypeNotFound
		}
	}
	var projectType *model.ProjectType
	if req.ProjectTypeID != nil {
		projectType, err = s.projectTypeRepo.FindByID(*req.ProjectTypeID)
		if err != nil {
			return nil, ErrProjectTypeNotFound
		}
	}
	marginPercent := req.MarginPercent
	if req.MarginID != nil {
		margin, err := s.marginRepo.FindByID(*req.MarginID)
		if err != nil || !margin.IsActive {
			return nil, ErrMarginUnavailable
		}
		marginPercent = float64(margin.Percentage)
	}

	// 3. Compute and build the argumentaire
	mode := normalizeMode(req.Mode)
	result := pricing.Compute(pricing.Input{
		Rates:         rates,
		Units:         req.Units,
		Mode:          mode,
		ClientType:    clientType,
		MarginPercent: marginPercent,
	})

	return &PreviewResponse{
		Result:        result,
		TotalDays:     pricing.DaysOf(result.TotalUnits, mode),
		Justification: pricing.Justification(result, clientType, projectType, rates, req.Units, mode),
	}, nil
}

// Commit validates the calculator state, computes the price and writes
// the immutable simulation record. The returned record is the one the
// store confirmed; a failed insert returns the error and nothing else.
func (s *simulationService) Commit(author *model.User, req CalculationRequest) (*model.Simulation, error) {
	// 1. Validate the inputs a preview would tolerate
	clientName := strings.TrimSpace(req.ClientName)
	if clientName == "" {
		return nil, ErrClientNameRequired
	}
	if req.ClientTypeID == nil {
		return nil, ErrClientTypeRequired
	}
	if req.ProjectTypeID == nil {
		return nil, ErrProjectTypeRequired
	}
	if req.MarginID == nil {
		return nil, ErrMarginRequired
	}

	// 2. Resolve selections against the live catalogs
	rates, err := s.rateRepo.FindActive()
	if err != nil {
		return nil, err
	}
	clientType, err := s.clientTypeRepo.FindByID(*req.ClientTypeID)
	if err != nil {
		return nil, ErrClientTypeNotFound
	}
	projectType, err := s.projectTypeRepo.FindByID(*req.ProjectTypeID)
	if err != nil {
		return nil, ErrProjectTypeNotFound
	}
	margin, err := s.marginRepo.FindByID(*req.MarginID)
	if err != nil || !margin.IsActive {
		return nil, ErrMarginUnavailable
	}

	// 3. Compute; a zero-cost simulation is not worth saving
	mode := normalizeMode(req.Mode)
	result := pricing.Compute(pricing.Input{
		Rates:         rates,
		Units:         req.Units,
		Mode:          mode,
		ClientType:    clientType,
		MarginPercent: float64(margin.Percentage),
	})
	if result.InternalCost <= 0 {
		return nil, ErrNothingToPrice
	}

	// 4. Snapshot by value. Days is the canonical unit at rest, so hour
	// entries are converted before storage.
	workItems := make(model.WorkItems, 0)
	for _, rate := range rates {
		if !rate.IsActive {
			continue
		}
		units := req.Units[rate.ID]
		if units <= 0 {
			continue
		}
		workItems = append(workItems, model.WorkItem{
			RoleID:    rate.ID,
			RoleName:  rate.RoleName,
			Days:      pricing.DaysOf(units, mode),
			DailyRate: rate.DailyRate,
		})
	}

	simulation := &model.Simulation{
		ClientName: clientName,
		ClientType: model.ClientTypeSnapshot{
			ID:          clientType.ID,
			Name:        clientType.Name,
			Coefficient: clientType.Coefficient,
			Description: clientType.Description,
		},
		ProjectType: model.ProjectTypeSnapshot{
			ID:              projectType.ID,
			Name:            projectType.Name,
			Description:     projectType.Description,
			ComplexityLevel: projectType.ComplexityLevel,
		},
		WorkItems:            workItems,
		MarginPercent:        result.MarginPercent,
		InternalCost:         result.InternalCost,
		CostAfterCoefficient: result.CostAfterCoefficient,
		RecommendedPrice:     result.RecommendedPrice,
	}
	if author != nil {
		id := author.ID
		simulation.CreatedByID = &id
		simulation.CreatedByName = author.FullName
		simulation.CreatedBy = author.ID.String()
	}

	// 5. Persist. Only a store-confirmed record leaves this function.
	if err := s.simulationRepo.Create(simulation); err != nil {
		return nil, err
	}

	// 6. Activity log and live broadcast, both best-effort
	if author != nil {
		s.trackUsage(author.ID, "simulation_created", model.UsageDetails{
			"simulation_id":     simulation.ID.String(),
			"client_name":       simulation.ClientName,
			"recommended_price": simulation.RecommendedPrice,
		})
	}
	if s.wsHub != nil {
		s.wsHub.Publish(ws.Event{Type: "simulation_created", Payload: simulation})
	}

	return simulation, nil
}

// List returns the history visible to the viewer. Without the view-all
// capability the query is restricted to the viewer's own records.
func (s *simulationService) List(viewer *model.User, perms permission.Set, req HistoryRequest) ([]model.Simulation, error) {
	filter := repository.SimulationFilter{
		IsAdmin:      perms.Has(model.PermViewAllSimulations),
		ClientTypeID: req.ClientTypeID,
		Search:       strings.TrimSpace(req.Search),
		Limit:        req.Limit,
	}
	if viewer != nil {
		id := viewer.ID
		filter.AuthorID = &id
	}
	if start, end, ok := period.Bounds(req.Period, req.CustomRange, time.Now()); ok {
		filter.StartDate = &start
		filter.EndDate = &end
	}
	return s.simulationRepo.List(filter)
}

func (s *simulationService) Get(viewer *model.User, perms permission.Set, id uuid.UUID) (*model.Simulation, error) {
	simulation, err := s.simulationRepo.FindByID(id)
	if err != nil {
		return nil, ErrSimulationNotFound
	}
	if perms.Has(model.PermViewAllSimulations) {
		return simulation, nil
	}
	if viewer != nil && simulation.CreatedByID != nil && *simulation.CreatedByID == viewer.ID {
		return simulation, nil
	}
	return nil, ErrSimulationForbidden
}

func (s *simulationService) trackUsage(userID uuid.UUID, action string, details model.UsageDetails) {
	entry := &model.UsageEntry{UserID: userID, Action: action, Details: details}
	if err := s.usageRepo.Create(entry); err != nil {
		log.Printf("usage: failed to record %q for user %s: %v", action, userID, err)
	}
}

func normalizeMode(mode pricing.Mode) pricing.Mode {
	if mode == pricing.ModeHourly {
		return pricing.ModeHourly
	}
	return pricing.ModeDaily
}
