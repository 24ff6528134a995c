package model

import (
	"fmt"
	"math"
	"strings"
)

const (
	numFeatures = 3
	// locationSmoothing weights the global mean against a location's own mean.
	locationSmoothing = 10.0
)

// PropertySample is one labelled training row.
type PropertySample struct {
	Features PropertyFeatures
	Price    float64
	Tier     string
}

// LocationEncoder maps a location to its smoothed mean price per square foot.
type LocationEncoder struct {
	Global float64            `json:"global"`
	Means  map[string]float64 `json:"means"`
}

func locationKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// fitLocationEncoder computes per-location target means shrunk toward the
// global price per square foot.
func fitLocationEncoder(rows []PropertySample) LocationEncoder {
	sums := map[string]float64{}
	counts := map[string]float64{}
	var total float64
	for _, r := range rows {
		ppsf := r.Price / r.Features.Area
		total += ppsf
		k := locationKey(r.Features.Location)
		sums[k] += ppsf
		counts[k]++
	}
	enc := LocationEncoder{Means: make(map[string]float64, len(sums))}
	if len(rows) > 0 {
		enc.Global = total / float64(len(rows))
	}
	for k, s := range sums {
		enc.Means[k] = (s + locationSmoothing*enc.Global) / (counts[k] + locationSmoothing)
	}
	return enc
}

// Encode returns the location's value, falling back to the global mean.
func (e LocationEncoder) Encode(location string) float64 {
	if v, ok := e.Means[locationKey(location)]; ok {
		return v
	}
	return e.Global
}

func (e LocationEncoder) vector(f PropertyFeatures) []float64 {
	return []float64{f.Area, f.Bedrooms, e.Encode(f.Location)}
}

func (e LocationEncoder) validate() error {
	if !finite(e.Global) {
		return fmt.Errorf("location encoder: global mean is not finite")
	}
	for k, v := range e.Means {
		if !finite(v) {
			return fmt.Errorf("location encoder: mean for %q is not finite", k)
		}
	}
	return nil
}

func checkSamples(rows []PropertySample) error {
	if len(rows) == 0 {
		return fmt.Errorf("no training rows")
	}
	for i, r := range rows {
		f := r.Features
		if !finite(f.Area) || f.Area <= 0 {
			return fmt.Errorf("row %d: area must be positive", i)
		}
		if !finite(f.Bedrooms) || f.Bedrooms < 0 {
			return fmt.Errorf("row %d: bedrooms must be non-negative", i)
		}
		if !finite(r.Price) || r.Price <= 0 {
			return fmt.Errorf("row %d: price must be positive", i)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
