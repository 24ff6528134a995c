package planner

import (
	"math"
	"strings"

	"finplan/pkg/types"
)

// Goal types.
const (
	GoalGold     = "gold"
	GoalProperty = "property"
)

// MaxHorizonMonths bounds plan length.
const MaxHorizonMonths = 600

// planInput is a validated PlanRequest.
type planInput struct {
	goal        string
	horizon     int
	capacity    float64
	existing    float64
	targetValue float64
	targetGrams float64
	targetSqft  float64
	locality    string
	bhk         float64
	oneTime     float64
	cutPct      float64
	cutMonths   int
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func nonNegative(field string, v float64) error {
	if !finite(v) || v < 0 {
		return ErrValidation(field, "must be a non-negative number")
	}
	return nil
}

func validatePlan(req types.PlanRequest) (planInput, error) {
	in := planInput{goal: strings.ToLower(strings.TrimSpace(req.GoalType))}
	if in.goal == "" {
		in.goal = GoalGold
	}
	if in.goal != GoalGold && in.goal != GoalProperty {
		return in, ErrValidation("goal_type", "must be %q or %q", GoalGold, GoalProperty)
	}

	switch {
	case req.HorizonMonths != 0:
		in.horizon = req.HorizonMonths
	case req.DurationYears != 0:
		if !finite(req.DurationYears) {
			return in, ErrValidation("duration_years", "must be a number")
		}
		m := math.Round(req.DurationYears * 12)
		if m < 1 || m > MaxHorizonMonths {
			return in, ErrValidation("duration_years", "must be between 1 and %d months", MaxHorizonMonths)
		}
		// Fractional years round to the nearest month.
		in.horizon = int(m)
	default:
		return in, ErrValidation("horizon_months", "horizon_months or duration_years is required")
	}
	if in.horizon <= 0 || in.horizon > MaxHorizonMonths {
		return in, ErrValidation("horizon_months", "must be between 1 and %d months", MaxHorizonMonths)
	}

	if !finite(req.MonthlyIncome) || req.MonthlyIncome <= 0 {
		return in, ErrValidation("monthly_income", "must be a positive number")
	}
	in.capacity = req.MonthlyIncome

	for _, f := range []struct {
		name string
		v    float64
	}{
		{"existing_savings", req.ExistingSavings},
		{"target_value", req.TargetValue},
		{"target_grams", req.TargetGrams},
		{"target_sqft", req.TargetSqft},
		{"BHK", req.BHK},
	} {
		if err := nonNegative(f.name, f.v); err != nil {
			return in, err
		}
	}
	in.existing = req.ExistingSavings
	in.targetValue = req.TargetValue
	in.targetGrams = req.TargetGrams
	in.targetSqft = req.TargetSqft
	in.bhk = req.BHK
	in.locality = strings.TrimSpace(req.Locality)

	switch in.goal {
	case GoalGold:
		if in.targetValue == 0 && in.targetGrams == 0 {
			return in, ErrValidation("target_value", "target_value or target_grams must be positive")
		}
	case GoalProperty:
		if in.targetValue == 0 && in.targetSqft == 0 {
			return in, ErrValidation("target_value", "target_value or target_sqft must be positive")
		}
		if in.targetValue == 0 {
			if in.locality == "" {
				return in, ErrValidation("Locality", "is required with target_sqft")
			}
			if in.bhk != math.Trunc(in.bhk) {
				return in, ErrValidation("BHK", "must be a whole number")
			}
		}
	}

	if e := req.Emergency; e != nil {
		if err := nonNegative("emergency.one_time", e.OneTime); err != nil {
			return in, err
		}
		if err := nonNegative("emergency.income_reduction_pct", e.IncomeReductionPct); err != nil {
			return in, err
		}
		if e.IncomeReductionPct > 100 {
			return in, ErrValidation("emergency.income_reduction_pct", "must not exceed 100")
		}
		if e.RecoveryMonths < 0 {
			return in, ErrValidation("emergency.recovery_months", "must be non-negative")
		}
		in.oneTime = e.OneTime
		in.cutPct = e.IncomeReductionPct
		in.cutMonths = e.RecoveryMonths
	}
	return in, nil
}

func validateProperty(req types.PropertyRequest) error {
	if !finite(req.Area) || req.Area <= 0 {
		return ErrValidation("area", "must be a positive number")
	}
	if !finite(req.Bedrooms) || req.Bedrooms < 0 || req.Bedrooms != math.Trunc(req.Bedrooms) {
		return ErrValidation("bedrooms", "must be a non-negative whole number")
	}
	if strings.TrimSpace(req.Location) == "" {
		return ErrValidation("location", "is required")
	}
	return nil
}
