package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pricing-sim/internal/model"
	"go-pricing-sim/internal/permission"
	"go-pricing-sim/internal/pricing"
	"go-pricing-sim/internal/repository"
)

// --- in-memory stubs ---

type stubSimulationRepo struct {
	created    []*model.Simulation
	createErr  error
	records    []model.Simulation
	lastFilter repository.SimulationFilter
}

func (s *stubSimulationRepo) Create(simulation *model.Simulation) error {
	if s.createErr != nil {
		return s.createErr
	}
	if simulation.ID == uuid.Nil {
		simulation.ID = uuid.New()
	}
	s.created = append(s.created, simulation)
	s.records = append(s.records, *simulation)
	return nil
}

func (s *stubSimulationRepo) FindByID(id uuid.UUID) (*model.Simulation, error) {
	for i := range s.records {
		if s.records[i].ID == id {
			record := s.records[i]
			return &record, nil
		}
	}
	return nil, errors.New("record not found")
}

func (s *stubSimulationRepo) List(filter repository.SimulationFilter) ([]model.Simulation, error) {
	s.lastFilter = filter
	if !filter.IsAdmin && filter.AuthorID != nil {
		var own []model.Simulation
		for _, record := range s.records {
			if record.CreatedByID != nil && *record.CreatedByID == *filter.AuthorID {
				own = append(own, record)
			}
		}
		return own, nil
	}
	return s.records, nil
}

type stubRateRepo struct {
	rates []model.DailyRate
}

func (s *stubRateRepo) FindAll() ([]model.DailyRate, error) { return s.rates, nil }
func (s *stubRateRepo) FindActive() ([]model.DailyRate, error) {
	var active []model.DailyRate
	for _, rate := range s.rates {
		if rate.IsActive {
			active = append(active, rate)
		}
	}
	return active, nil
}
func (s *stubRateRepo) FindByID(id uuid.UUID) (*model.DailyRate, error) {
	for i := range s.rates {
		if s.rates[i].ID == id {
			return &s.rates[i], nil
		}
	}
	return nil, errors.New("record not found")
}
func (s *stubRateRepo) Create(rate *model.DailyRate) error {
	if rate.ID == uuid.Nil {
		rate.ID = uuid.New()
	}
	s.rates = append(s.rates, *rate)
	return nil
}
func (s *stubRateRepo) Update(rate *model.DailyRate) error {
	for i := range s.rates {
		if s.rates[i].ID == rate.ID {
			s.rates[i] = *rate
			return nil
		}
	}
	return errors.New("record not found")
}
func (s *stubRateRepo) Delete(id uuid.UUID) error          { return nil }

type stubClientTypeRepo struct {
	types []model.ClientType
}

func (s *stubClientTypeRepo) FindAll() ([]model.ClientType, error) { return s.types, nil }
func (s *stubClientTypeRepo) FindByID(id uuid.UUID) (*model.ClientType, error) {
	for i := range s.types {
		if s.types[i].ID == id {
			clientType := s.types[i]
			return &clientType, nil
		}
	}
	return nil, errors.New("record not found")
}
func (s *stubClientTypeRepo) Create(clientType *model.ClientType) error { return nil }
func (s *stubClientTypeRepo) Update(clientType *model.ClientType) error { return nil }
func (s *stubClientTypeRepo) Delete(id uuid.UUID) error                 { return nil }

type stubProjectTypeRepo struct {
	types []model.ProjectType
}

func (s *stubProjectTypeRepo) FindAll() ([]model.ProjectType, error) { return s.types, nil }
func (s *stubProjectTypeRepo) FindByID(id uuid.UUID) (*model.ProjectType, error) {
	for i := range s.types {
		if s.types[i].ID == id {
			projectType := s.types[i]
			return &projectType, nil
		}
	}
	return nil, errors.New("record not found")
}
func (s *stubProjectTypeRepo) Create(projectType *model.ProjectType) error { return nil }
func (s *stubProjectTypeRepo) Update(projectType *model.ProjectType) error { return nil }
func (s *stubProjectTypeRepo) Delete(id uuid.UUID) error                   { return nil }

type stubUsageRepo struct {
	entries []model.UsageEntry
}

func (s *stubUsageRepo) Create(entry *model.UsageEntry) error {
	s.entries = append(s.entries, *entry)
	return nil
}
func (s *stubUsageRepo) FindRecent(limit int) ([]model.UsageEntry, error) { return s.entries, nil }

// --- fixtures ---

type fixture struct {
	service     SimulationService
	simulations *stubSimulationRepo
	rates       *stubRateRepo
	clientTypes *stubClientTypeRepo
	margins     *stubMarginRepo
	projects    *stubProjectTypeRepo
	usage       *stubUsageRepo

	devRate     model.DailyRate
	clientType  model.ClientType
	margin      model.Margin
	projectType model.ProjectType
	author      model.User
}

func newFixture() *fixture {
	f := &fixture{
		simulations: &stubSimulationRepo{},
		rates:       &stubRateRepo{},
		clientTypes: &stubClientTypeRepo{},
		margins:     &stubMarginRepo{},
		projects:    &stubProjectTypeRepo{},
		usage:       &stubUsageRepo{},
	}

	f.devRate = model.DailyRate{
		BaseModel: model.BaseModel{ID: uuid.New()},
		RoleName:  "Développeur",
		DailyRate: 350000, HourlyRate: 43750, IsActive: true,
	}
	f.rates.rates = []model.DailyRate{f.devRate}

	f.clientType = model.ClientType{
		BaseModel: model.BaseModel{ID: uuid.New()},
		Name:      "Grande Entreprise", Coefficient: 1.2,
	}
	f.clientTypes.types = []model.ClientType{f.clientType}

	f.margin = model.Margin{
		BaseModel:  model.BaseModel{ID: uuid.New()},
		Percentage: 40, IsActive: true,
	}
	f.margins.margins = []model.Margin{f.margin}

	f.projectType = model.ProjectType{
		BaseModel: model.BaseModel{ID: uuid.New()},
		Name:      "Application Web", ComplexityLevel: model.ComplexityHigh,
	}
	f.projects.types = []model.ProjectType{f.projectType}

	f.author = model.User{
		BaseModel: model.BaseModel{ID: uuid.New()},
		Email:     "cp@agence.local", FullName: "Chef Projet",
	}

	f.service = NewSimulationService(f.simulations, f.rates, f.clientTypes, f.margins, f.projects, f.usage, nil)
	return f
}

func (f *fixture) validRequest() CalculationRequest {
	return CalculationRequest{
		ClientName:    "ACME",
		Units:         map[uuid.UUID]float64{f.devRate.ID: 10},
		Mode:          pricing.ModeDaily,
		ClientTypeID:  &f.clientType.ID,
		ProjectTypeID: &f.projectType.ID,
		MarginID:      &f.margin.ID,
	}
}

// --- commit ---

func TestCommit_PersistsComputedRecord(t *testing.T) {
	f := newFixture()

	simulation, err := f.service.Commit(&f.author, f.validRequest())
	require.NoError(t, err)
	require.NotNil(t, simulation)

	assert.InDelta(t, 3500000, simulation.InternalCost, 1e-9)
	assert.InDelta(t, 4200000, simulation.CostAfterCoefficient, 1e-9)
	assert.InDelta(t, 5880000, simulation.RecommendedPrice, 1e-9)
	assert.Equal(t, 40.0, simulation.MarginPercent)

	require.Len(t, f.simulations.created, 1)
	assert.Equal(t, f.author.ID, *simulation.CreatedByID)
	assert.Equal(t, "Chef Projet", simulation.CreatedByName)
}

func TestCommit_RequiresClientName(t *testing.T) {
	f := newFixture()
	req := f.validRequest()
	req.ClientName = "   "

	_, err := f.service.Commit(&f.author, req)
	assert.ErrorIs(t, err, ErrClientNameRequired)
	assert.Empty(t, f.simulations.created)
}

func TestCommit_RequiresSelections(t *testing.T) {
	f := newFixture()

	req := f.validRequest()
	req.ClientTypeID = nil
	_, err := f.service.Commit(&f.author, req)
	assert.ErrorIs(t, err, ErrClientTypeRequired)

	req = f.validRequest()
	req.ProjectTypeID = nil
	_, err = f.service.Commit(&f.author, req)
	assert.ErrorIs(t, err, ErrProjectTypeRequired)

	req = f.validRequest()
	req.MarginID = nil
	_, err = f.service.Commit(&f.author, req)
	assert.ErrorIs(t, err, ErrMarginRequired)

	assert.Empty(t, f.simulations.created)
}

func TestCommit_RejectsInactiveMargin(t *testing.T) {
	f := newFixture()
	f.margins.margins[0].IsActive = false

	_, err := f.service.Commit(&f.author, f.validRequest())
	assert.ErrorIs(t, err, ErrMarginUnavailable)
	assert.Empty(t, f.simulations.created)
}

func TestCommit_RejectsZeroCost(t *testing.T) {
	f := newFixture()
	req := f.validRequest()
	req.Units = map[uuid.UUID]float64{}

	_, err := f.service.Commit(&f.author, req)
	assert.ErrorIs(t, err, ErrNothingToPrice)
	assert.Empty(t, f.simulations.created, "rejected commit must not reach the store")
}

func TestCommit_NormalizesHoursToDays(t *testing.T) {
	f := newFixture()
	req := f.validRequest()
	req.Mode = pricing.ModeHourly
	req.Units = map[uuid.UUID]float64{f.devRate.ID: 80} // 10 days

	simulation, err := f.service.Commit(&f.author, req)
	require.NoError(t, err)

	require.Len(t, simulation.WorkItems, 1)
	assert.Equal(t, 10.0, simulation.WorkItems[0].Days)
	assert.InDelta(t, 3500000, simulation.InternalCost, 1e-6, "80 hours must price like 10 days")
}

func TestCommit_SnapshotsByValue(t *testing.T) {
	f := newFixture()

	simulation, err := f.service.Commit(&f.author, f.validRequest())
	require.NoError(t, err)

	// Mutate the live catalogs after commit
	f.clientTypes.types[0].Coefficient = 9.9
	f.rates.rates[0].DailyRate = 1

	stored, err := f.simulations.FindByID(simulation.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.2, stored.ClientType.Coefficient)
	assert.Equal(t, 350000.0, stored.WorkItems[0].DailyRate)
	assert.Equal(t, "Application Web", stored.ProjectType.Name)
}

func TestCommit_StoreFailureReturnsNoRecord(t *testing.T) {
	f := newFixture()
	f.simulations.createErr = errors.New("connection reset")

	simulation, err := f.service.Commit(&f.author, f.validRequest())
	assert.Error(t, err)
	assert.Nil(t, simulation)
	assert.Empty(t, f.usage.entries, "no activity entry for a failed commit")
}

func TestCommit_RecordsUsageEntry(t *testing.T) {
	f := newFixture()

	_, err := f.service.Commit(&f.author, f.validRequest())
	require.NoError(t, err)

	require.Len(t, f.usage.entries, 1)
	assert.Equal(t, "simulation_created", f.usage.entries[0].Action)
	assert.Equal(t, f.author.ID, f.usage.entries[0].UserID)
}

// --- preview ---

func TestPreview_EmptySelectionIsValidZero(t *testing.T) {
	f := newFixture()

	response, err := f.service.Preview(CalculationRequest{Mode: pricing.ModeDaily})
	require.NoError(t, err)
	assert.Zero(t, response.Result.InternalCost)
	assert.Nil(t, response.Justification)
}

func TestPreview_BuildsJustification(t *testing.T) {
	f := newFixture()
	req := f.validRequest()

	response, err := f.service.Preview(req)
	require.NoError(t, err)
	assert.NotEmpty(t, response.Justification)
	assert.Equal(t, 10.0, response.TotalDays)
}

// --- list and get ---

func TestList_NonAdminRestrictedToOwnRecords(t *testing.T) {
	f := newFixture()
	_, err := f.service.Commit(&f.author, f.validRequest())
	require.NoError(t, err)

	other := model.User{BaseModel: model.BaseModel{ID: uuid.New()}, FullName: "Autre"}
	results, err := f.service.List(&other, permission.Set{model.PermCreateSimulations: true}, HistoryRequest{})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.False(t, f.simulations.lastFilter.IsAdmin)

	own, err := f.service.List(&f.author, permission.Set{}, HistoryRequest{})
	require.NoError(t, err)
	assert.Len(t, own, 1)
}

func TestList_ViewAllSeesEverything(t *testing.T) {
	f := newFixture()
	_, err := f.service.Commit(&f.author, f.validRequest())
	require.NoError(t, err)

	other := model.User{BaseModel: model.BaseModel{ID: uuid.New()}}
	results, err := f.service.List(&other, permission.Set{model.PermViewAllSimulations: true}, HistoryRequest{})
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.True(t, f.simulations.lastFilter.IsAdmin)
}

func TestGet_ForbiddenForOtherAuthors(t *testing.T) {
	f := newFixture()
	simulation, err := f.service.Commit(&f.author, f.validRequest())
	require.NoError(t, err)

	other := model.User{BaseModel: model.BaseModel{ID: uuid.New()}}
	_, err = f.service.Get(&other, permission.Set{}, simulation.ID)
	assert.ErrorIs(t, err, ErrSimulationForbidden)

	got, err := f.service.Get(&other, permission.Set{model.PermViewAllSimulations: true}, simulation.ID)
	require.NoError(t, err)
	assert.Equal(t, simulation.ID, got.ID)

	got, err = f.service.Get(&f.author, permission.Set{}, simulation.ID)
	require.NoError(t, err)
	assert.Equal(t, simulation.ID, got.ID)
}
