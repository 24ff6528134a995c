package model

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
)

// KindTrendForecaster identifies TrendForecaster artifacts.
const KindTrendForecaster = "forecaster/trend-seasonal"

// minSeasonalMonths is the history needed before seasonal offsets are fitted.
const minSeasonalMonths = 24

// PricePoint is one observed gold price per gram.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// TrendForecaster models monthly prices as a linear trend on the month index
// plus a fixed offset per calendar month.
type TrendForecaster struct {
	AnchorYear  int         `json:"anchor_year"`
	AnchorMonth int         `json:"anchor_month"`
	Intercept   float64     `json:"intercept"`
	Slope       float64     `json:"slope"`
	Seasonal    [12]float64 `json:"seasonal"`
	Months      int         `json:"months"`
	LastPrice   float64     `json:"last_price"`
}

func (*TrendForecaster) Kind() string { return KindTrendForecaster }

func (*TrendForecaster) Name() string { return "trend-seasonal" }

func monthKey(t time.Time) int { return t.Year()*12 + int(t.Month()) - 1 }

// Forecast implements Forecaster.
func (f *TrendForecaster) Forecast(start time.Time, months int) ([]float64, error) {
	if months <= 0 {
		return nil, fmt.Errorf("forecast horizon must be positive, got %d", months)
	}
	anchor := f.AnchorYear*12 + f.AnchorMonth - 1
	first := monthKey(start)
	out := make([]float64, months)
	for i := range out {
		key := first + i
		cal := ((key % 12) + 12) % 12
		v := f.Intercept + f.Slope*float64(key-anchor) + f.Seasonal[cal]
		if !finite(v) || v <= 0 {
			return nil, fmt.Errorf("forecast for %04d-%02d is not a positive price (%g)", key/12, cal+1, v)
		}
		out[i] = v
	}
	return out, nil
}

// FitTrendForecaster averages points per calendar month and fits the trend
// and seasonal offsets. At least two distinct months are required.
func FitTrendForecaster(points []PricePoint) (*TrendForecaster, error) {
	byMonth := map[int][]float64{}
	for _, p := range points {
		if !finite(p.Price) || p.Price <= 0 {
			return nil, fmt.Errorf("price on %s must be positive", p.Date.Format("2006-01-02"))
		}
		k := monthKey(p.Date)
		byMonth[k] = append(byMonth[k], p.Price)
	}
	if len(byMonth) < 2 {
		return nil, errors.New("need at least two months of prices")
	}
	keys := make([]int, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	anchor := keys[0]
	xs := make(stats.Float64Data, len(keys))
	ys := make(stats.Float64Data, len(keys))
	for i, k := range keys {
		m, _ := stats.Mean(byMonth[k])
		xs[i] = float64(k - anchor)
		ys[i] = m
	}
	cov, err := stats.Covariance(xs, ys)
	if err != nil {
		return nil, fmt.Errorf("covariance: %w", err)
	}
	vx, err := stats.SampleVariance(xs)
	if err != nil || vx == 0 {
		return nil, fmt.Errorf("month index has no variance")
	}
	slope := cov / vx
	mx, _ := xs.Mean()
	my, _ := ys.Mean()

	f := &TrendForecaster{
		AnchorYear:  anchor / 12,
		AnchorMonth: anchor%12 + 1,
		Slope:       slope,
		Intercept:   my - slope*mx,
		Months:      len(keys),
		LastPrice:   ys[len(ys)-1],
	}
	if len(keys) >= minSeasonalMonths {
		var resid [12][]float64
		for i, k := range keys {
			r := ys[i] - (f.Intercept + f.Slope*xs[i])
			resid[k%12] = append(resid[k%12], r)
		}
		var sum float64
		var n int
		for c := range resid {
			if len(resid[c]) == 0 {
				continue
			}
			f.Seasonal[c], _ = stats.Mean(resid[c])
			sum += f.Seasonal[c]
			n++
		}
		// centre the offsets so the trend carries the level
		if n > 0 {
			mean := sum / float64(n)
			for c := range resid {
				if len(resid[c]) > 0 {
					f.Seasonal[c] -= mean
				}
			}
		}
	}
	return f, nil
}

func (f *TrendForecaster) validate() error {
	if f.AnchorMonth < 1 || f.AnchorMonth > 12 {
		return fmt.Errorf("anchor month %d out of range", f.AnchorMonth)
	}
	if !finite(f.Intercept) || !finite(f.Slope) {
		return errors.New("trend coefficients are not finite")
	}
	for _, s := range f.Seasonal {
		if !finite(s) {
			return errors.New("seasonal offsets are not finite")
		}
	}
	return nil
}
