// Package planner turns requests into savings plans and property estimates
// using whatever model set it is handed. It keeps no state between calls.
package planner

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"finplan/internal/model"
	"finplan/internal/registry"
	"finplan/pkg/types"
)

// Models is the read-only view of a model set. *manager.ModelSet satisfies it.
type Models interface {
	Forecaster() model.Forecaster
	Regressor() model.Regressor
	Classifier() model.Classifier
	Version() string
}

const dateLayout = "2006-01-02"

// GenerateSavingsPlan validates req and builds a month-by-month plan starting
// the month after now. No model is called for an invalid request.
func GenerateSavingsPlan(req types.PlanRequest, set Models, now time.Time) (types.Plan, error) {
	in, err := validatePlan(req)
	if err != nil {
		return types.Plan{}, err
	}
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	plan := types.Plan{
		PlanID:          uuid.NewString(),
		GoalType:        in.goal,
		ForecastUsed:    "none",
		ModelVersion:    set.Version(),
		HorizonMonths:   in.horizon,
		ExistingSavings: round2(in.existing),
	}
	var notes []string
	var prices []float64

	switch in.goal {
	case GoalGold:
		f := set.Forecaster()
		if f == nil {
			return types.Plan{}, ErrModelUnavailable(registry.RoleForecaster)
		}
		prices, err = f.Forecast(start, in.horizon)
		if err != nil {
			return types.Plan{}, ErrPrediction(registry.RoleForecaster, err)
		}
		if len(prices) != in.horizon {
			return types.Plan{}, ErrPrediction(registry.RoleForecaster, fmt.Errorf("got %d prices for %d months", len(prices), in.horizon))
		}
		if err := checkPrices(prices); err != nil {
			return types.Plan{}, ErrPrediction(registry.RoleForecaster, err)
		}
		plan.ForecastUsed = f.Name()
		plan.TargetValueINR = in.targetValue
		if plan.TargetValueINR == 0 {
			plan.TargetValueINR = in.targetGrams * prices[len(prices)-1]
		}
		notes = append(notes, fmt.Sprintf("Gold price per gram projected with the %s forecaster: %s now, %s by %s.",
			f.Name(), inr(prices[0]), inr(prices[len(prices)-1]), start.AddDate(0, in.horizon-1, 0).Format("Jan 2006")))

	case GoalProperty:
		plan.TargetValueINR = in.targetValue
		if plan.TargetValueINR == 0 {
			est, tier, err := estimate(set, model.PropertyFeatures{Area: in.targetSqft, Bedrooms: in.bhk, Location: in.locality})
			if err != nil {
				return types.Plan{}, err
			}
			plan.TargetValueINR = est
			if tier != "" {
				notes = append(notes, fmt.Sprintf("A %.0f sqft %.0f BHK in %s is estimated at %s (%s).", in.targetSqft, in.bhk, in.locality, inr(est), tier))
			}
		}
		if f := set.Forecaster(); f != nil {
			if p, err := f.Forecast(start, in.horizon); err == nil && len(p) > 0 && checkPrices(p) == nil {
				g := round2((p[len(p)-1]/p[0] - 1) * 100)
				plan.ProjectedGrowthPct = &g
				plan.ForecastUsed = f.Name()
				notes = append(notes, fmt.Sprintf("The %s trend projects a %.1f%% price change over %d months; the target may move accordingly.", f.Name(), g, in.horizon))
			}
		}
		if plan.ProjectedGrowthPct == nil {
			notes = append(notes, "No price trend was available; the target assumes today's prices.")
		}
	}
	if !finite(plan.TargetValueINR) || plan.TargetValueINR <= 0 {
		return types.Plan{}, ErrPrediction(registry.RoleRegressor, fmt.Errorf("target value %g is not positive", plan.TargetValueINR))
	}

	caps := capacities(in)
	goal := plan.TargetValueINR + in.oneTime
	shortfall := math.Max(0, goal-in.existing)
	amounts, feasible := schedule(shortfall, caps)

	plan.TargetValueINR = round2(plan.TargetValueINR)
	plan.RequiredMonthlySaving = round2(shortfall / float64(in.horizon))
	plan.Feasible = feasible
	plan.Timeline = timeline(start, in.existing, goal, amounts, prices)

	notes = append(notes, affordabilityNote(plan.RequiredMonthlySaving, in.capacity, shortfall, caps, feasible))
	if in.oneTime > 0 || (in.cutPct > 0 && in.cutMonths > 0) {
		notes = append(notes, emergencyNote(in))
	}
	plan.Confidence = notes
	return plan, nil
}

// checkPrices rejects forecasts that cannot price a gram of gold.
func checkPrices(prices []float64) error {
	for i, p := range prices {
		if !finite(p) || p <= 0 {
			return fmt.Errorf("month %d price %g is not a positive number", i+1, p)
		}
	}
	return nil
}

// capacities is the contribution ceiling for each month after any emergency
// income cut.
func capacities(in planInput) []float64 {
	caps := make([]float64, in.horizon)
	for i := range caps {
		caps[i] = in.capacity
		if i < in.cutMonths {
			caps[i] = in.capacity * (1 - in.cutPct/100)
		}
	}
	return caps
}

// schedule spreads total over the months as evenly as the per-month caps
// allow. When total exceeds the sum of caps every month saves at capacity and
// the plan is infeasible.
func schedule(total float64, caps []float64) ([]float64, bool) {
	out := make([]float64, len(caps))
	var sum float64
	for _, c := range caps {
		sum += c
	}
	if total > sum+1e-6 {
		copy(out, caps)
		return out, false
	}
	order := make([]int, len(caps))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return caps[order[a]] < caps[order[b]] })
	remaining := total
	for k, i := range order {
		level := remaining / float64(len(order)-k)
		amt := math.Min(caps[i], level)
		out[i] = amt
		remaining -= amt
	}
	return out, true
}

func timeline(start time.Time, existing, goal float64, amounts, prices []float64) []types.TimelineEntry {
	out := make([]types.TimelineEntry, len(amounts))
	saved := existing
	var grams float64
	if len(prices) > 0 {
		grams = existing / prices[0]
	}
	for i, a := range amounts {
		saved += a
		e := types.TimelineEntry{
			Date:             start.AddDate(0, i, 0).Format(dateLayout),
			MonthlyAmountINR: round2(a),
			CumulativeSaved:  round2(saved),
			ProgressPercent:  round2(math.Min(100, saved/goal*100)),
		}
		if len(prices) > 0 {
			bought := a / prices[i]
			grams += bought
			e.PredictedPricePerGram = round2(prices[i])
			e.GramsBought = round4(bought)
			e.CumulativeGrams = round4(grams)
		}
		out[i] = e
	}
	return out
}

func affordabilityNote(required, capacity, shortfall float64, caps []float64, feasible bool) string {
	switch {
	case shortfall == 0:
		return "Existing savings already cover the goal."
	case !feasible:
		var sum float64
		for _, c := range caps {
			sum += c
		}
		return fmt.Sprintf("Saving at full capacity still leaves %s short; extend the horizon or lower the target.", inr(shortfall-sum))
	case required > capacity*0.8:
		return fmt.Sprintf("Required saving of %s/month uses %.0f%% of your %s capacity; little room for surprises.", inr(required), required/capacity*100, inr(capacity))
	default:
		return fmt.Sprintf("Required saving of %s/month fits within your %s monthly capacity.", inr(required), inr(capacity))
	}
}

func emergencyNote(in planInput) string {
	var parts []string
	if in.oneTime > 0 {
		parts = append(parts, fmt.Sprintf("a one-time expense of %s is added to the goal", inr(in.oneTime)))
	}
	if in.cutPct > 0 && in.cutMonths > 0 {
		months := in.cutMonths
		if months > in.horizon {
			months = in.horizon
		}
		parts = append(parts, fmt.Sprintf("capacity drops %.0f%% for the first %d month(s)", in.cutPct, months))
	}
	return "Emergency scenario: " + strings.Join(parts, " and ") + "."
}

func inr(v float64) string { return fmt.Sprintf("₹%.0f", v) }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*1e4) / 1e4 }
