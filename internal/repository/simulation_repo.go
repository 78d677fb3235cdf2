package repository

import (
	"time"

	"go-pricing-sim/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SimulationFilter narrows the history listing. Non-admin callers are
// always restricted to their own records at query level, regardless of
// any other filter.
type SimulationFilter struct {
	AuthorID     *uuid.UUID
	IsAdmin      bool
	StartDate    *time.Time
	EndDate      *time.Time
	ClientTypeID *uuid.UUID
	Search       string
	Limit        int
}

type SimulationRepository interface {
	Create(simulation *model.Simulation) error
	FindByID(id uuid.UUID) (*model.Simulation, error)
	List(filter SimulationFilter) ([]model.Simulation, error)
}

type simulationRepo struct {
	db *gorm.DB
}

func NewSimulationRepo(db *gorm.DB) SimulationRepository {
	return &simulationRepo{db}
}

func (r *simulationRepo) Create(simulation *model.Simulation) error {
	return r.db.Create(simulation).Error
}

func (r *simulationRepo) FindByID(id uuid.UUID) (*model.Simulation, error) {
	var simulation model.Simulation
	if err := r.db.First(&simulation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &simulation, nil
}

func (r *simulationRepo) List(filter SimulationFilter) ([]model.Simulation, error) {
	query := r.db.Model(&model.Simulation{}).Order("created_at DESC")

	// Access control lives here: only admins see other authors.
	if !filter.IsAdmin && filter.AuthorID != nil {
		query = query.Where("created_by_id = ?", *filter.AuthorID)
	}

	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}
	if filter.ClientTypeID != nil {
		query = query.Where("client_type->>'id' = ?", filter.ClientTypeID.String())
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("client_name ILIKE ? OR project_type->>'name' ILIKE ?", like, like)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var simulations []model.Simulation
	if err := query.Find(&simulations).Error; err != nil {
		return nil, err
	}
	return simulations, nil
}
