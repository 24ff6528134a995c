package model

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finplan/internal/store"
)

func monthly(start time.Time, n int, price func(i int) float64) []PricePoint {
	out := make([]PricePoint, 0, n*2)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, i, 0)
		// two observations per month, averaged by the fit
		out = append(out, PricePoint{Date: d, Price: price(i) - 1}, PricePoint{Date: d.AddDate(0, 0, 10), Price: price(i) + 1})
	}
	return out
}

func TestTrendForecasterRecoversLinearTrend(t *testing.T) {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	f, err := FitTrendForecaster(monthly(start, 12, func(i int) float64 { return 5000 + 50*float64(i) }))
	require.NoError(t, err)
	assert.InDelta(t, 50, f.Slope, 1e-6)
	assert.Equal(t, 2020, f.AnchorYear)
	assert.Equal(t, 1, f.AnchorMonth)
	assert.Equal(t, 12, f.Months)

	got, err := f.Forecast(time.Date(2021, time.January, 15, 0, 0, 0, 0, time.UTC), 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.InDelta(t, 5600, got[0], 1e-6)
	assert.InDelta(t, 5650, got[1], 1e-6)
	assert.InDelta(t, 5700, got[2], 1e-6)
}

func TestTrendForecasterSeasonality(t *testing.T) {
	start := time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)
	bump := func(i int) float64 {
		if i%12 == 5 {
			return 240
		}
		return -240.0 / 11
	}
	f, err := FitTrendForecaster(monthly(start, 48, func(i int) float64 { return 4000 + 10*float64(i) + bump(i) }))
	require.NoError(t, err)
	assert.InDelta(t, 10, f.Slope, 0.5)
	assert.Greater(t, f.Seasonal[5], 200.0)

	got, err := f.Forecast(time.Date(2022, time.May, 1, 0, 0, 0, 0, time.UTC), 3)
	require.NoError(t, err)
	assert.Greater(t, got[1], got[0]+100, "june should carry the seasonal bump")
	assert.Greater(t, got[1], got[2]+100)
}

func TestTrendForecasterErrors(t *testing.T) {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	_, err := FitTrendForecaster(nil)
	assert.Error(t, err)
	_, err = FitTrendForecaster([]PricePoint{{Date: start, Price: 1}, {Date: start.AddDate(0, 0, 3), Price: 2}})
	assert.Error(t, err, "single month")
	_, err = FitTrendForecaster([]PricePoint{{Date: start, Price: -1}, {Date: start.AddDate(0, 1, 0), Price: 2}})
	assert.Error(t, err)

	// steep decline eventually forecasts non-positive prices
	f, err := FitTrendForecaster(monthly(start, 6, func(i int) float64 { return 1000 - 100*float64(i) }))
	require.NoError(t, err)
	_, err = f.Forecast(start.AddDate(0, 6, 0), 24)
	assert.Error(t, err)
	_, err = f.Forecast(start, 0)
	assert.Error(t, err)
}

func propertyRows() []PropertySample {
	locs := []struct {
		name string
		ppsf float64
	}{{"Andheri", 20000}, {"Thane", 9000}, {"Panvel", 5000}}
	var rows []PropertySample
	for li, l := range locs {
		for i := 0; i < 40; i++ {
			area := 500 + float64((i*37+li*11)%30)*50
			bhk := float64(1 + i%4)
			price := area*l.ppsf + bhk*100000
			rows = append(rows, PropertySample{
				Features: PropertyFeatures{Area: area, Bedrooms: bhk, Location: l.name},
				Price:    price,
			})
		}
	}
	return rows
}

func TestGBMRegressorFits(t *testing.T) {
	rows := propertyRows()
	m, err := FitGBMRegressor(rows, GBMParams{Rounds: 80, LearningRate: 0.2, MaxDepth: 4, MinLeaf: 2})
	require.NoError(t, err)
	require.NotEmpty(t, m.Trees)

	var absErr, base float64
	for _, r := range rows {
		p, err := m.Predict(r.Features)
		require.NoError(t, err)
		absErr += math.Abs(p - r.Price)
		base += math.Abs(m.Init - r.Price)
	}
	assert.Less(t, absErr, base*0.2, "boosting should beat the mean by a wide margin")

	hi, err := m.Predict(PropertyFeatures{Area: 1200, Bedrooms: 3, Location: "andheri "})
	require.NoError(t, err)
	lo, err := m.Predict(PropertyFeatures{Area: 1200, Bedrooms: 3, Location: "Panvel"})
	require.NoError(t, err)
	assert.Greater(t, hi, lo)

	_, err = m.Predict(PropertyFeatures{Area: 1200, Bedrooms: 3, Location: "Nowhere"})
	assert.NoError(t, err, "unknown locations use the global mean")
	_, err = m.Predict(PropertyFeatures{Area: math.NaN()})
	assert.Error(t, err)
}

func TestGBMRegressorRejectsBadRows(t *testing.T) {
	_, err := FitGBMRegressor(nil, GBMParams{})
	assert.Error(t, err)
	_, err = FitGBMRegressor([]PropertySample{{Features: PropertyFeatures{Area: 0}, Price: 1}}, GBMParams{})
	assert.Error(t, err)
	_, err = FitGBMRegressor([]PropertySample{{Features: PropertyFeatures{Area: 10}, Price: 0}}, GBMParams{})
	assert.Error(t, err)
}

func labelled(rows []PropertySample) []PropertySample {
	for i := range rows {
		switch {
		case rows[i].Price < 6e6:
			rows[i].Tier = TierBudget
		case rows[i].Price < 15e6:
			rows[i].Tier = TierMid
		default:
			rows[i].Tier = TierPremium
		}
	}
	return rows
}

func TestGBMClassifierFits(t *testing.T) {
	rows := labelled(propertyRows())
	m, err := FitGBMClassifier(rows, GBMParams{Rounds: 40, LearningRate: 0.3, MaxDepth: 3, MinLeaf: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{TierBudget, TierMid, TierPremium}, m.Classes)

	correct := 0
	for _, r := range rows {
		got, err := m.Classify(r.Features)
		require.NoError(t, err)
		if got == r.Tier {
			correct++
		}
	}
	assert.GreaterOrEqual(t, float64(correct)/float64(len(rows)), 0.85)

	p := softmax(m.scores(m.Encoder.vector(rows[0].Features)))
	var sum float64
	for _, v := range p {
		sum += v
	}
	assert.InDelta(t, 1, sum, 1e-9)
}

func TestGBMClassifierSingleClass(t *testing.T) {
	rows := propertyRows()[:5]
	for i := range rows {
		rows[i].Tier = TierMid
	}
	m, err := FitGBMClassifier(rows, GBMParams{})
	require.NoError(t, err)
	got, err := m.Classify(PropertyFeatures{Area: 900, Bedrooms: 2, Location: "x"})
	require.NoError(t, err)
	assert.Equal(t, TierMid, got)

	rows[0].Tier = ""
	_, err = FitGBMClassifier(rows, GBMParams{})
	assert.Error(t, err)
}

func TestDecodersRoundTripThroughStore(t *testing.T) {
	dir := t.TempDir()
	s := store.New(Decoders())

	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	fc, err := FitTrendForecaster(monthly(start, 30, func(i int) float64 { return 5000 + 20*float64(i) }))
	require.NoError(t, err)
	reg, err := FitGBMRegressor(propertyRows(), GBMParams{Rounds: 10})
	require.NoError(t, err)
	cls, err := FitGBMClassifier(labelled(propertyRows()), GBMParams{Rounds: 10})
	require.NoError(t, err)

	probe := PropertyFeatures{Area: 1100, Bedrooms: 2, Location: "Thane"}
	for _, m := range []store.Persistable{fc, reg, cls} {
		path := fmt.Sprintf("%s/%s.pkl", dir, m.Kind()[:5])
		_, err := s.Save(path, m)
		require.NoError(t, err)
		h, err := s.Load(path)
		require.NoError(t, err)
		assert.Equal(t, m.Kind(), h.Kind)

		switch want := m.(type) {
		case *TrendForecaster:
			got := h.Model.(Forecaster)
			a, _ := want.Forecast(start, 6)
			b, err := got.Forecast(start, 6)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		case *GBMRegressor:
			a, _ := want.Predict(probe)
			b, err := h.Model.(Regressor).Predict(probe)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		case *GBMClassifier:
			a, _ := want.Classify(probe)
			b, err := h.Model.(Classifier).Classify(probe)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		}
	}
}

func TestDecodersRejectMalformedPayloads(t *testing.T) {
	dec := Decoders()
	cases := map[string]string{
		KindTrendForecaster: `{"anchor_year":2020,"anchor_month":13}`,
		KindGBMRegressor:    `{"init":1,"learning_rate":0.1,"trees":[{"v":1,"l":{"v":0}}]}`,
		KindGBMClassifier:   `{"classes":["a","b"],"init":[0]}`,
	}
	for kind, payload := range cases {
		_, err := dec[kind]([]byte(payload))
		assert.Error(t, err, kind)
	}
	_, err := dec[KindGBMRegressor]([]byte(`{"trees":[{"f":7,"t":1,"v":0,"l":{"v":1},"r":{"v":2}}]}`))
	assert.Error(t, err, "feature index out of range")
}
