package pricing

import (
	"github.com/google/uuid"

	"go-pricing-sim/internal/model"
)

// HoursPerDay converts between the two calculation modes.
const HoursPerDay = 8.0

// Mode says whether work units are entered and interpreted as days or hours.
type Mode string

const (
	ModeDaily  Mode = "daily"
	ModeHourly Mode = "hourly"
)

// Input groups everything the engine needs for one computation. The
// engine owns no state: catalogs are passed in, never pulled from
// ambient context.
type Input struct {
	// Rates is the rate catalog. Only active entries contribute.
	Rates []model.DailyRate

	// Units is the consumption per rate id, expressed in Mode units.
	// Entries whose id is inactive or absent from Rates are ignored,
	// even if a stale value is present.
	Units map[uuid.UUID]float64

	Mode Mode

	// ClientType is the selected coefficient; nil means neutral (1.0).
	ClientType *model.ClientType

	// MarginPercent is the selected markup; zero means no margin.
	MarginPercent float64
}

// Result is the computed pricing breakdown.
type Result struct {
	InternalCost         float64 `json:"internal_cost"`
	Coefficient          float64 `json:"coefficient"`
	CostAfterCoefficient float64 `json:"cost_after_coefficient"`
	MarginPercent        float64 `json:"margin_percent"`
	RecommendedPrice     float64 `json:"recommended_price"`

	// TotalUnits sums the counted unit values, in Mode units.
	TotalUnits float64 `json:"total_units"`
}

// Compute derives the recommended price from rates, units, coefficient
// and margin. It cannot fail: missing selections fall back to neutral
// values and a zero-unit input yields a valid zero-valued result.
// Rejecting an empty computation is the commit workflow's job.
func Compute(in Input) Result {
	var internalCost, totalUnits float64
	for _, rate := range in.Rates {
		if !rate.IsActive {
			continue
		}
		units := in.Units[rate.ID]
		if units <= 0 {
			continue
		}
		unitRate := rate.DailyRate
		if in.Mode == ModeHourly {
			unitRate = rate.HourlyRate
		}
		internalCost += units * unitRate
		totalUnits += units
	}

	coefficient := 1.0
	if in.ClientType != nil && in.ClientType.Coefficient > 0 {
		coefficient = in.ClientType.Coefficient
	}
	costAfterCoefficient := internalCost * coefficient

	margin := in.MarginPercent
	if margin < 0 {
		margin = 0
	}
	recommendedPrice := costAfterCoefficient * (1 + margin/100)

	return Result{
		InternalCost:         internalCost,
		Coefficient:          coefficient,
		CostAfterCoefficient: costAfterCoefficient,
		MarginPercent:        margin,
		RecommendedPrice:     recommendedPrice,
		TotalUnits:           totalUnits,
	}
}

// ConvertUnits translates every nonzero unit value between modes. The
// conversion is exact (no rounding, no truncation); round-tripping is
// stable up to floating-point precision.
func ConvertUnits(units map[uuid.UUID]float64, from, to Mode) map[uuid.UUID]float64 {
	converted := make(map[uuid.UUID]float64, len(units))
	for id, value := range units {
		converted[id] = ConvertValue(value, from, to)
	}
	return converted
}

// ConvertValue translates a single unit value between modes.
func ConvertValue(value float64, from, to Mode) float64 {
	if from == to || value == 0 {
		return value
	}
	if from == ModeDaily && to == ModeHourly {
		return value * HoursPerDay
	}
	return value / HoursPerDay
}

// DaysOf expresses a unit total in days regardless of the entry mode.
func DaysOf(units float64, mode Mode) float64 {
	if mode == ModeHourly {
		return units / HoursPerDay
	}
	return units
}
