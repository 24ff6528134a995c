// Package model defines the capability interfaces the rest of the system
// programs against, and the small learners that implement them.
//
// Nothing outside this package depends on a learner's internal shape: the
// lifecycle manager and the planner only see Forecaster, Regressor and
// Classifier.
package model

import "time"

// Forecaster projects a monthly price series.
type Forecaster interface {
	// Forecast returns the predicted price per gram for each of the months
	// months starting at start's calendar month.
	Forecast(start time.Time, months int) ([]float64, error)
	// Name identifies the forecasting method in plan output.
	Name() string
}

// Regressor produces a continuous price estimate for a property.
type Regressor interface {
	Predict(PropertyFeatures) (float64, error)
}

// Classifier produces a discrete tier label for a property.
type Classifier interface {
	Classify(PropertyFeatures) (string, error)
}

// PropertyFeatures are the inputs both property models consume.
type PropertyFeatures struct {
	Area     float64
	Bedrooms float64
	Location string
}

// Price tiers produced by the classifier.
const (
	TierBudget  = "budget"
	TierMid     = "mid-tier"
	TierPremium = "premium"
)
