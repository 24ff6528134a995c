package training

import (
	"math"
	"math/rand"
	"sort"

	"github.com/montanaflynn/stats"

	"finplan/internal/model"
)

// meanAbsError is the mean absolute difference between want and got.
func meanAbsError(want, got []float64) float64 {
	d := make(stats.Float64Data, len(want))
	for i := range want {
		d[i] = math.Abs(want[i] - got[i])
	}
	m, _ := d.Mean()
	return m
}

// rSquared is the coefficient of determination of got against want.
func rSquared(want, got []float64) float64 {
	mean, _ := stats.Mean(want)
	var ssRes, ssTot float64
	for i := range want {
		ssRes += (want[i] - got[i]) * (want[i] - got[i])
		ssTot += (want[i] - mean) * (want[i] - mean)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

func accuracy(want, got []string) float64 {
	if len(want) == 0 {
		return 0
	}
	hit := 0
	for i := range want {
		if want[i] == got[i] {
			hit++
		}
	}
	return float64(hit) / float64(len(want))
}

// subsample shuffles rows with seed and keeps at most n of them.
func subsample(rows []model.PropertySample, n int, seed int64) []model.PropertySample {
	out := append([]model.PropertySample(nil), rows...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// split holds out the last fifth of rows for evaluation. Tiny datasets are
// evaluated in-sample.
func split(rows []model.PropertySample) (train, test []model.PropertySample) {
	if len(rows) < 10 {
		return rows, rows
	}
	cut := len(rows) * 4 / 5
	return rows[:cut], rows[cut:]
}

// labelTiers keeps dataset labels when every row has one and otherwise
// assigns budget/mid-tier/premium by price tertile.
func labelTiers(rows []model.PropertySample) []model.PropertySample {
	labelled := true
	prices := make(stats.Float64Data, len(rows))
	for i, r := range rows {
		prices[i] = r.Price
		if r.Tier == "" {
			labelled = false
		}
	}
	if labelled {
		return rows
	}
	lo, _ := stats.Percentile(prices, 100.0/3)
	hi, _ := stats.Percentile(prices, 200.0/3)
	out := make([]model.PropertySample, len(rows))
	for i, r := range rows {
		switch {
		case r.Price <= lo:
			r.Tier = model.TierBudget
		case r.Price <= hi:
			r.Tier = model.TierMid
		default:
			r.Tier = model.TierPremium
		}
		out[i] = r
	}
	return out
}

// monthCut returns the first month key of the holdout window: the last 20%
// of distinct months, at least one.
func monthCut(points []model.PricePoint) (int, bool) {
	seen := map[int]bool{}
	for _, p := range points {
		seen[p.Date.Year()*12+int(p.Date.Month())-1] = true
	}
	if len(seen) < 5 {
		return 0, false
	}
	keys := make([]int, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	hold := len(keys) / 5
	if hold < 1 {
		hold = 1
	}
	return keys[len(keys)-hold], true
}
