package pricing_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pricing-sim/internal/model"
	"go-pricing-sim/internal/pricing"
)

func highComplexity() *model.ProjectType {
	pt := &model.ProjectType{Name: "Application Web", ComplexityLevel: model.ComplexityHigh}
	pt.ID = uuid.New()
	return pt
}

func TestJustification_NilWhenNoCost(t *testing.T) {
	dev := newRate("Développeur", 350000, 43750, true)
	in := pricing.Input{
		Rates:         []model.DailyRate{dev},
		Units:         map[uuid.UUID]float64{},
		Mode:          pricing.ModeDaily,
		ClientType:    coefficient(1.2),
		MarginPercent: 40,
	}
	res := pricing.Compute(in)

	lines := pricing.Justification(res, in.ClientType, highComplexity(), in.Rates, in.Units, in.Mode)
	assert.Nil(t, lines)
}

func TestJustification_AllOptionalSentencesPresent(t *testing.T) {
	dev := newRate("Développeur", 350000, 43750, true)
	pm := newRate("Chef de Projet", 400000, 50000, true)
	in := pricing.Input{
		Rates:         []model.DailyRate{dev, pm},
		Units:         map[uuid.UUID]float64{dev.ID: 10, pm.ID: 2},
		Mode:          pricing.ModeDaily,
		ClientType:    coefficient(1.2),
		MarginPercent: 40,
	}
	res := pricing.Compute(in)

	lines := pricing.Justification(res, in.ClientType, highComplexity(), in.Rates, in.Units, in.Mode)
	require.Len(t, lines, 6)

	assert.Contains(t, lines[0], "2 profils")
	assert.Contains(t, lines[0], "Développeur")
	assert.Contains(t, lines[1], "complexité élevée")
	assert.Contains(t, lines[2], "coefficient")
	assert.Contains(t, lines[3], "12 jours")
	assert.Contains(t, lines[4], "40%")
	assert.Contains(t, lines[5], "équilibre")
}

func TestJustification_MinimalInputs_OnlyMandatorySentences(t *testing.T) {
	dev := newRate("Développeur", 350000, 43750, true)
	in := pricing.Input{
		Rates: []model.DailyRate{dev},
		Units: map[uuid.UUID]float64{dev.ID: 1},
		Mode:  pricing.ModeDaily,
	}
	res := pricing.Compute(in)

	// No project type, neutral coefficient, zero margin: roles sentence,
	// total investment, closing sentence.
	lines := pricing.Justification(res, nil, nil, in.Rates, in.Units, in.Mode)
	require.Len(t, lines, 3)
}

func TestJustification_NeutralCoefficientOmitted(t *testing.T) {
	dev := newRate("Développeur", 350000, 43750, true)
	in := pricing.Input{
		Rates:      []model.DailyRate{dev},
		Units:      map[uuid.UUID]float64{dev.ID: 5},
		Mode:       pricing.ModeDaily,
		ClientType: coefficient(1.0),
	}
	res := pricing.Compute(in)

	lines := pricing.Justification(res, in.ClientType, nil, in.Rates, in.Units, in.Mode)
	for _, line := range lines {
		assert.NotContains(t, line, "coefficient")
	}
}

func TestJustification_DiscountFraming(t *testing.T) {
	dev := newRate("Développeur", 350000, 43750, true)
	ong := coefficient(0.85)
	in := pricing.Input{
		Rates:      []model.DailyRate{dev},
		Units:      map[uuid.UUID]float64{dev.ID: 5},
		Mode:       pricing.ModeDaily,
		ClientType: ong,
	}
	res := pricing.Compute(in)

	lines := pricing.Justification(res, ong, nil, in.Rates, in.Units, in.Mode)
	var found bool
	for _, line := range lines {
		if strings.Contains(line, "préférentiel") {
			found = true
		}
	}
	assert.True(t, found, "discount coefficient should use preferential framing")
}

func TestJustification_MarginTiers(t *testing.T) {
	dev := newRate("Développeur", 350000, 43750, true)

	run := func(margin float64) []string {
		in := pricing.Input{
			Rates:         []model.DailyRate{dev},
			Units:         map[uuid.UUID]float64{dev.ID: 5},
			Mode:          pricing.ModeDaily,
			MarginPercent: margin,
		}
		return pricing.Justification(pricing.Compute(in), nil, nil, in.Rates, in.Units, in.Mode)
	}

	assert.Contains(t, strings.Join(run(50), " "), "confortable")
	assert.Contains(t, strings.Join(run(40), " "), "saine")
	assert.Contains(t, strings.Join(run(30), " "), "compétitif")
}

func TestJustification_HourlyUnitsExpressedInDays(t *testing.T) {
	dev := newRate("Développeur", 350000, 43750, true)
	in := pricing.Input{
		Rates: []model.DailyRate{dev},
		Units: map[uuid.UUID]float64{dev.ID: 80},
		Mode:  pricing.ModeHourly,
	}
	res := pricing.Compute(in)

	lines := pricing.Justification(res, nil, nil, in.Rates, in.Units, in.Mode)
	require.NotEmpty(t, lines)
	// 80 hours shown as 10 days, never as 80
	joined := strings.Join(lines, " ")
	assert.Contains(t, joined, "10 jours")
	assert.NotContains(t, joined, "80")
}

func TestFormatFCFA_GroupsThousands(t *testing.T) {
	assert.Equal(t, "5 880 000 FCFA", pricing.FormatFCFA(5880000))
	assert.Equal(t, "950 FCFA", pricing.FormatFCFA(950))
	assert.Equal(t, "0 FCFA", pricing.FormatFCFA(0))
}
