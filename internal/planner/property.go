package planner

import (
	"fmt"
	"strings"

	"finplan/internal/model"
	"finplan/internal/registry"
	"finplan/pkg/types"
)

// PredictProperty estimates a property's price and tier.
func PredictProperty(req types.PropertyRequest, set Models) (types.PropertyEstimate, error) {
	if err := validateProperty(req); err != nil {
		return types.PropertyEstimate{}, err
	}
	if set.Classifier() == nil {
		return types.PropertyEstimate{}, ErrModelUnavailable(registry.RoleClassifier)
	}
	f := model.PropertyFeatures{Area: req.Area, Bedrooms: req.Bedrooms, Location: strings.TrimSpace(req.Location)}
	price, tier, err := estimate(set, f)
	if err != nil {
		return types.PropertyEstimate{}, err
	}
	return types.PropertyEstimate{PriceEstimate: round2(price), Tier: tier, ModelVersion: set.Version()}, nil
}

// estimate runs the regressor and, when present, the classifier.
func estimate(set Models, f model.PropertyFeatures) (float64, string, error) {
	reg := set.Regressor()
	if reg == nil {
		return 0, "", ErrModelUnavailable(registry.RoleRegressor)
	}
	price, err := reg.Predict(f)
	if err != nil {
		return 0, "", ErrPrediction(registry.RoleRegressor, err)
	}
	if !finite(price) || price <= 0 {
		return 0, "", ErrPrediction(registry.RoleRegressor, fmt.Errorf("estimate %g is not a positive price", price))
	}
	var tier string
	if cls := set.Classifier(); cls != nil {
		tier, err = cls.Classify(f)
		if err != nil {
			return 0, "", ErrPrediction(registry.RoleClassifier, err)
		}
	}
	return price, tier, nil
}
