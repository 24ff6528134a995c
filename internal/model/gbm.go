package model

import (
	"errors"
	"fmt"
	"math"
)

// KindGBMRegressor identifies GBMRegressor artifacts.
const KindGBMRegressor = "regressor/gbm"

// GBMParams controls boosting for both property models.
type GBMParams struct {
	Rounds       int
	LearningRate float64
	MaxDepth     int
	MinLeaf      int
}

// DefaultGBMParams are used for any zero field.
var DefaultGBMParams = GBMParams{Rounds: 60, LearningRate: 0.1, MaxDepth: 3, MinLeaf: 5}

func (p GBMParams) withDefaults() GBMParams {
	if p.Rounds <= 0 {
		p.Rounds = DefaultGBMParams.Rounds
	}
	if p.LearningRate <= 0 || p.LearningRate > 1 {
		p.LearningRate = DefaultGBMParams.LearningRate
	}
	if p.MaxDepth <= 0 {
		p.MaxDepth = DefaultGBMParams.MaxDepth
	}
	if p.MinLeaf <= 0 {
		p.MinLeaf = DefaultGBMParams.MinLeaf
	}
	return p
}

func (p GBMParams) tree() treeParams { return treeParams{maxDepth: p.MaxDepth, minLeaf: p.MinLeaf} }

// GBMRegressor is a squared-loss gradient boosted tree ensemble.
type GBMRegressor struct {
	Init         float64         `json:"init"`
	LearningRate float64         `json:"learning_rate"`
	Trees        []*treeNode     `json:"trees"`
	Encoder      LocationEncoder `json:"encoder"`
}

func (*GBMRegressor) Kind() string { return KindGBMRegressor }

// Predict implements Regressor.
func (m *GBMRegressor) Predict(f PropertyFeatures) (float64, error) {
	if !finite(f.Area) || !finite(f.Bedrooms) {
		return 0, errors.New("features must be finite")
	}
	x := m.Encoder.vector(f)
	y := m.Init
	for _, t := range m.Trees {
		y += m.LearningRate * t.predict(x)
	}
	if !finite(y) {
		return 0, fmt.Errorf("prediction is not finite")
	}
	return y, nil
}

// FitGBMRegressor fits a regressor on price.
func FitGBMRegressor(rows []PropertySample, p GBMParams) (*GBMRegressor, error) {
	if err := checkSamples(rows); err != nil {
		return nil, err
	}
	p = p.withDefaults()
	enc := fitLocationEncoder(rows)
	X := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	idx := make([]int, len(rows))
	for i, r := range rows {
		X[i] = enc.vector(r.Features)
		y[i] = r.Price
		idx[i] = i
	}
	m := &GBMRegressor{Init: meanAt(y, idx), LearningRate: p.LearningRate, Encoder: enc}
	pred := make([]float64, len(rows))
	resid := make([]float64, len(rows))
	for i := range pred {
		pred[i] = m.Init
	}
	for r := 0; r < p.Rounds; r++ {
		for i := range resid {
			resid[i] = y[i] - pred[i]
		}
		t := fitTree(X, resid, idx, p.tree(), 0)
		if t.leaf() && math.Abs(t.Value) < 1e-9 {
			break
		}
		m.Trees = append(m.Trees, t)
		for i := range pred {
			pred[i] += p.LearningRate * t.predict(X[i])
		}
	}
	return m, nil
}

func (m *GBMRegressor) validate() error {
	if !finite(m.Init) || !finite(m.LearningRate) {
		return errors.New("regressor coefficients are not finite")
	}
	for i, t := range m.Trees {
		if err := t.validate(numFeatures); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return m.Encoder.validate()
}
