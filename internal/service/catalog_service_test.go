package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pricing-sim/internal/model"
)

type stubMarginRepo struct {
	margins []model.Margin
}

func (s *stubMarginRepo) FindAll() ([]model.Margin, error) { return s.margins, nil }
func (s *stubMarginRepo) FindActive() ([]model.Margin, error) {
	var active []model.Margin
	for _, margin := range s.margins {
		if margin.IsActive {
			active = append(active, margin)
		}
	}
	return active, nil
}
func (s *stubMarginRepo) FindByID(id uuid.UUID) (*model.Margin, error) {
	for i := range s.margins {
		if s.margins[i].ID == id {
			margin := s.margins[i]
			return &margin, nil
		}
	}
	return nil, errors.New("record not found")
}
func (s *stubMarginRepo) FindByPercentage(percentage int) (*model.Margin, error) {
	for i := range s.margins {
		if s.margins[i].Percentage == percentage {
			margin := s.margins[i]
			return &margin, nil
		}
	}
	return nil, errors.New("record not found")
}
func (s *stubMarginRepo) Create(margin *model.Margin) error {
	if margin.ID == uuid.Nil {
		margin.ID = uuid.New()
	}
	s.margins = append(s.margins, *margin)
	return nil
}
func (s *stubMarginRepo) Update(margin *model.Margin) error {
	for i := range s.margins {
		if s.margins[i].ID == margin.ID {
			s.margins[i] = *margin
			return nil
		}
	}
	return errors.New("record not found")
}
func (s *stubMarginRepo) Delete(id uuid.UUID) error { return nil }

func newCatalogService() (*stubRateRepo, *stubMarginRepo, CatalogService) {
	rates := &stubRateRepo{}
	margins := &stubMarginRepo{}
	svc := NewCatalogService(rates, &stubClientTypeRepo{}, margins, &stubProjectTypeRepo{})
	return rates, margins, svc
}

func TestCreateRate_DerivesHourlyFromDaily(t *testing.T) {
	_, _, svc := newCatalogService()

	rate, err := svc.CreateRate(RateRequest{RoleName: "Designer", DailyRate: 250000})
	require.NoError(t, err)
	assert.Equal(t, 31250.0, rate.HourlyRate)
	assert.True(t, rate.IsActive)
}

func TestCreateRate_DerivedHourlyIsRounded(t *testing.T) {
	_, _, svc := newCatalogService()

	rate, err := svc.CreateRate(RateRequest{RoleName: "Assistant", DailyRate: 100})
	require.NoError(t, err)
	assert.Equal(t, 13.0, rate.HourlyRate, "100/8 = 12.5 rounds to 13")
}

func TestCreateRate_ExplicitHourlyWins(t *testing.T) {
	_, _, svc := newCatalogService()

	hourly := 40000.0
	rate, err := svc.CreateRate(RateRequest{RoleName: "Développeur", DailyRate: 350000, HourlyRate: &hourly})
	require.NoError(t, err)
	assert.Equal(t, 40000.0, rate.HourlyRate)
}

func TestUpdateRate_KeepsExplicitHourlyOnDailyEdit(t *testing.T) {
	_, _, svc := newCatalogService()

	hourly := 40000.0
	created, err := svc.CreateRate(RateRequest{RoleName: "Développeur", DailyRate: 350000, HourlyRate: &hourly})
	require.NoError(t, err)

	updated, err := svc.UpdateRate(created.ID, RateRequest{RoleName: "Développeur", DailyRate: 400000})
	require.NoError(t, err)
	assert.Equal(t, 400000.0, updated.DailyRate)
	assert.Equal(t, 40000.0, updated.HourlyRate, "explicit hourly is not recomputed")
}

func TestCreateMargin_RejectsDuplicatePercentage(t *testing.T) {
	_, margins, svc := newCatalogService()

	_, err := svc.CreateMargin(MarginRequest{Percentage: 40})
	require.NoError(t, err)
	require.Len(t, margins.margins, 1)

	_, err = svc.CreateMargin(MarginRequest{Percentage: 40})
	assert.ErrorIs(t, err, ErrDuplicateMargin)
	assert.Len(t, margins.margins, 1, "duplicate must not be stored")
}

func TestUpdateMargin_RejectsCollidingPercentage(t *testing.T) {
	_, margins, svc := newCatalogService()

	first, err := svc.CreateMargin(MarginRequest{Percentage: 30})
	require.NoError(t, err)
	_, err = svc.CreateMargin(MarginRequest{Percentage: 40})
	require.NoError(t, err)

	_, err = svc.UpdateMargin(first.ID, MarginRequest{Percentage: 40})
	assert.ErrorIs(t, err, ErrDuplicateMargin)

	// Keeping its own percentage while toggling activity is fine
	active := false
	updated, err := svc.UpdateMargin(first.ID, MarginRequest{Percentage: 30, IsActive: &active})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Len(t, margins.margins, 2)
}

func TestCreateProjectType_ValidatesComplexity(t *testing.T) {
	_, _, svc := newCatalogService()

	_, err := svc.CreateProjectType(ProjectTypeRequest{Name: "Refonte", ComplexityLevel: "extreme"})
	assert.ErrorIs(t, err, ErrInvalidComplexity)

	projectType, err := svc.CreateProjectType(ProjectTypeRequest{Name: "Refonte", ComplexityLevel: model.ComplexityMedium})
	require.NoError(t, err)
	assert.Equal(t, model.ComplexityMedium, projectType.ComplexityLevel)
}

func TestCreateRate_RequiresName(t *testing.T) {
	_, _, svc := newCatalogService()

	_, err := svc.CreateRate(RateRequest{RoleName: "  ", DailyRate: 100000})
	assert.ErrorIs(t, err, ErrCatalogNameRequired)
}
