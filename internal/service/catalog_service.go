package service

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"

	"go-pricing-sim/internal/model"
	"go-pricing-sim/internal/repository"
)

var (
	ErrRateNotFound        = errors.New("rate not found")
	ErrClientTypeMissing   = errors.New("client type not found")
	ErrMarginNotFound      = errors.New("margin not found")
	ErrProjectTypeMissing  = errors.New("project type not found")
	ErrDuplicateMargin     = errors.New("a margin with this percentage already exists")
	ErrInvalidComplexity   = errors.New("complexity level must be low, medium or high")
	ErrCatalogNameRequired = errors.New("name is required")
)

// CatalogService manages the four pricing catalogs. Writes only touch
// the catalogs themselves; committed simulations keep their snapshots.
type CatalogService interface {
	ListRates(activeOnly bool) ([]model.DailyRate, error)
	CreateRate(req RateRequest) (*model.DailyRate, error)
	UpdateRate(id uuid.UUID, req RateRequest) (*model.DailyRate, error)
	DeleteRate(id uuid.UUID) error

	ListClientTypes() ([]model.ClientType, error)
	CreateClientType(req ClientTypeRequest) (*model.ClientType, error)
	UpdateClientType(id uuid.UUID, req ClientTypeRequest) (*model.ClientType, error)
	DeleteClientType(id uuid.UUID) error

	ListMargins(activeOnly bool) ([]model.Margin, error)
	CreateMargin(req MarginRequest) (*model.Margin, error)
	UpdateMargin(id uuid.UUID, req MarginRequest) (*model.Margin, error)
	DeleteMargin(id uuid.UUID) error

	ListProjectTypes() ([]model.ProjectType, error)
	CreateProjectType(req ProjectTypeRequest) (*model.ProjectType, error)
	UpdateProjectType(id uuid.UUID, req ProjectTypeRequest) (*model.ProjectType, error)
	DeleteProjectType(id uuid.UUID) error
}

// RateRequest creates or updates a daily rate. HourlyRate is optional:
// when nil the hourly rate is derived as round(daily / 8). An explicit
// value is stored as-is and survives later daily edits.
type RateRequest struct {
	RoleName   string   `json:"role_name" validate:"required"`
	DailyRate  float64  `json:"daily_rate" validate:"required,gt=0"`
	HourlyRate *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
	IsActive   *bool    `json:"is_active"`
}

type ClientTypeRequest struct {
	Name        string  `json:"name" validate:"required"`
	Coefficient float64 `json:"coefficient" validate:"required,gt=0"`
	Description string  `json:"description"`
}

type MarginRequest struct {
	Percentage int   `json:"percentage" validate:"required,gt=0,lte=100"`
	IsActive   *bool `json:"is_active"`
}

type ProjectTypeRequest struct {
	Name            string                `json:"name" validate:"required"`
	Description     string                `json:"description"`
	ComplexityLevel model.ComplexityLevel `json:"complexity_level" validate:"required,oneof=low medium high"`
}

type catalogService struct {
	rateRepo        repository.RateRepository
	clientTypeRepo  repository.ClientTypeRepository
	marginRepo      repository.MarginRepository
	projectTypeRepo repository.ProjectTypeRepository
}

func NewCatalogService(
	rateRepo repository.RateRepository,
	clientTypeRepo repository.ClientTypeRepository,
	marginRepo repository.MarginRepository,
	projectTypeRepo repository.ProjectTypeRepository,
) CatalogService {
	return &catalogService{
		rateRepo:        rateRepo,
		clientTypeRepo:  clientTypeRepo,
		marginRepo:      marginRepo,
		projectTypeRepo: projectTypeRepo,
	}
}

// --- Daily rates ---

func (s *catalogService) ListRates(activeOnly bool) ([]model.DailyRate, error) {
	if activeOnly {
		return s.rateRepo.FindActive()
	}
	return s.rateRepo.FindAll()
}

func (s *catalogService) CreateRate(req RateRequest) (*model.DailyRate, error) {
	name := strings.TrimSpace(req.RoleName)
	if name == "" {
		return nil, ErrCatalogNameRequired
	}

	rate := &model.DailyRate{
		RoleName:   name,
		DailyRate:  req.DailyRate,
		HourlyRate: derivedHourly(req.DailyRate, req.HourlyRate),
		IsActive:   true,
	}
	if req.IsActive != nil {
		rate.IsActive = *req.IsActive
	}
	if err := s.rateRepo.Create(rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *catalogService) UpdateRate(id uuid.UUID, req RateRequest) (*model.DailyRate, error) {
	rate, err := s.rateRepo.FindByID(id)
	if err != nil {
		return nil, ErrRateNotFound
	}

	if name := strings.TrimSpace(req.RoleName); name != "" {
		rate.RoleName = name
	}
	rate.DailyRate = req.DailyRate
	if req.HourlyRate != nil {
		rate.HourlyRate = *req.HourlyRate
	} else if rate.HourlyRate == 0 {
		rate.HourlyRate = derivedHourly(req.DailyRate, nil)
	}
	if req.IsActive != nil {
		rate.IsActive = *req.IsActive
	}

	if err := s.rateRepo.Update(rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *catalogService) DeleteRate(id uuid.UUID) error {
	if _, err := s.rateRepo.FindByID(id); err != nil {
		return ErrRateNotFound
	}
	return s.rateRepo.Delete(id)
}

// derivedHourly fills the hourly rate when the caller did not set one.
func derivedHourly(daily float64, explicit *float64) float64 {
	if explicit != nil {
		return *explicit
	}
	return math.Round(daily / 8)
}

// --- Client types ---

func (s *catalogService) ListClientTypes() ([]model.ClientType, error) {
	return s.clientTypeRepo.FindAll()
}

func (s *catalogService) CreateClientType(req ClientTypeRequest) (*model.ClientType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrCatalogNameRequired
	}
	clientType := &model.ClientType{
		Name:        name,
		Coefficient: req.Coefficient,
		Description: req.Description,
	}
	if err := s.clientTypeRepo.Create(clientType); err != nil {
		return nil, err
	}
	return clientType, nil
}

func (s *catalogService) UpdateClientType(id uuid.UUID, req ClientTypeRequest) (*model.ClientType, error) {
	clientType, err := s.clientTypeRepo.FindByID(id)
	if err != nil {
		return nil, ErrClientTypeMissing
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		clientType.Name = name
	}
	clientType.Coefficient = req.Coefficient
	clientType.Description = req.Description
	if err := s.clientTypeRepo.Update(clientType); err != nil {
		return nil, err
	}
	return clientType, nil
}

func (s *catalogService) DeleteClientType(id uuid.UUID) error {
	if _, err := s.clientTypeRepo.FindByID(id); err != nil {
		return ErrClientTypeMissing
	}
	return s.clientTypeRepo.Delete(id)
}

// --- Margins ---

func (s *catalogService) ListMargins(activeOnly bool) ([]model.Margin, error) {
	if activeOnly {
		return s.marginRepo.FindActive()
	}
	return s.marginRepo.FindAll()
}

func (s *catalogService) CreateMargin(req MarginRequest) (*model.Margin, error) {
	// 1. Reject a duplicate percentage among live rows
	if existing, err := s.marginRepo.FindByPercentage(req.Percentage); err == nil && existing != nil {
		return nil, ErrDuplicateMargin
	}

	// 2. Create
	margin := &model.Margin{Percentage: req.Percentage, IsActive: true}
	if req.IsActive != nil {
		margin.IsActive = *req.IsActive
	}
	if err := s.marginRepo.Create(margin); err != nil {
		return nil, err
	}
	return margin, nil
}

func (s *catalogService) UpdateMargin(id uuid.UUID, req MarginRequest) (*model.Margin, error) {
	margin, err := s.marginRepo.FindByID(id)
	if err != nil {
		return nil, ErrMarginNotFound
	}

	// Changing the percentage must not collide with another live row
	if req.Percentage != margin.Percentage {
		if existing, err := s.marginRepo.FindByPercentage(req.Percentage); err == nil && existing != nil && existing.ID != id {
			return nil, ErrDuplicateMargin
		}
		margin.Percentage = req.Percentage
	}
	if req.IsActive != nil {
		margin.IsActive = *req.IsActive
	}

	if err := s.marginRepo.Update(margin); err != nil {
		return nil, err
	}
	return margin, nil
}

func (s *catalogService) DeleteMargin(id uuid.UUID) error {
	if _, err := s.marginRepo.FindByID(id); err != nil {
		return ErrMarginNotFound
	}
	return s.marginRepo.Delete(id)
}

// --- Project types ---

func (s *catalogService) ListProjectTypes() ([]model.ProjectType, error) {
	return s.projectTypeRepo.FindAll()
}

func (s *catalogService) CreateProjectType(req ProjectTypeRequest) (*model.ProjectType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrCatalogNameRequired
	}
	if !validComplexity(req.ComplexityLevel) {
		return nil, ErrInvalidComplexity
	}
	projectType := &model.ProjectType{
		Name:            name,
		Description:     req.Description,
		ComplexityLevel: req.ComplexityLevel,
	}
	if err := s.projectTypeRepo.Create(projectType); err != nil {
		return nil, err
	}
	return projectType, nil
}

func (s *catalogService) UpdateProjectType(id uuid.UUID, req ProjectTypeRequest) (*model.ProjectType, error) {
	projectType, err := s.projectTypeRepo.FindByID(id)
	if err != nil {
		return nil, ErrProjectTypeMissing
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		projectType.Name = name
	}
	projectType.Description = req.Description
	if req.ComplexityLevel != "" {
		if !validComplexity(req.ComplexityLevel) {
			return nil, ErrInvalidComplexity
		}
		projectType.ComplexityLevel = req.ComplexityLevel
	}
	if err := s.projectTypeRepo.Update(projectType); err != nil {
		return nil, err
	}
	return projectType, nil
}

func (s *catalogService) DeleteProjectType(id uuid.UUID) error {
	if _, err := s.projectTypeRepo.FindByID(id); err != nil {
		return ErrProjectTypeMissing
	}
	return s.projectTypeRepo.Delete(id)
}

func validComplexity(level model.ComplexityLevel) bool {
	switch level {
	case model.ComplexityLow, model.ComplexityMedium, model.ComplexityHigh:
		return true
	}
	return false
}
