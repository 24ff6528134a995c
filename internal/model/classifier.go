package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// KindGBMClassifier identifies GBMClassifier artifacts.
const KindGBMClassifier = "classifier/gbm"

// GBMClassifier is a softmax gradient boosted classifier. Each round holds
// one tree per class.
type GBMClassifier struct {
	Classes      []string        `json:"classes"`
	Init         []float64       `json:"init"`
	LearningRate float64         `json:"learning_rate"`
	Rounds       [][]*treeNode   `json:"rounds"`
	Encoder      LocationEncoder `json:"encoder"`
}

func (*GBMClassifier) Kind() string { return KindGBMClassifier }

func (m *GBMClassifier) scores(x []float64) []float64 {
	s := append([]float64(nil), m.Init...)
	for _, round := range m.Rounds {
		for k, t := range round {
			s[k] += m.LearningRate * t.predict(x)
		}
	}
	return s
}

// Classify implements Classifier.
func (m *GBMClassifier) Classify(f PropertyFeatures) (string, error) {
	if len(m.Classes) == 0 {
		return "", errors.New("classifier has no classes")
	}
	if !finite(f.Area) || !finite(f.Bedrooms) {
		return "", errors.New("features must be finite")
	}
	s := m.scores(m.Encoder.vector(f))
	best := 0
	for k := range s {
		if !finite(s[k]) {
			return "", fmt.Errorf("score for %q is not finite", m.Classes[k])
		}
		if s[k] > s[best] {
			best = k
		}
	}
	return m.Classes[best], nil
}

// FitGBMClassifier fits a classifier on each row's Tier. Rows must all be
// labelled.
func FitGBMClassifier(rows []PropertySample, p GBMParams) (*GBMClassifier, error) {
	if err := checkSamples(rows); err != nil {
		return nil, err
	}
	p = p.withDefaults()
	counts := map[string]int{}
	for i, r := range rows {
		if r.Tier == "" {
			return nil, fmt.Errorf("row %d has no tier label", i)
		}
		counts[r.Tier]++
	}
	classes := make([]string, 0, len(counts))
	for c := range counts {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	label := make(map[string]int, len(classes))
	for k, c := range classes {
		label[c] = k
	}

	K, n := len(classes), len(rows)
	enc := fitLocationEncoder(rows)
	m := &GBMClassifier{Classes: classes, Init: make([]float64, K), LearningRate: p.LearningRate, Encoder: enc}
	for k, c := range classes {
		m.Init[k] = math.Log(float64(counts[c]) / float64(n))
	}
	if K == 1 {
		return m, nil
	}

	X := make([][]float64, n)
	y := make([]int, n)
	idx := make([]int, n)
	F := make([][]float64, n)
	for i, r := range rows {
		X[i] = enc.vector(r.Features)
		y[i] = label[r.Tier]
		idx[i] = i
		F[i] = append([]float64(nil), m.Init...)
	}
	resid := make([]float64, n)
	probs := make([][]float64, n)
	for r := 0; r < p.Rounds; r++ {
		for i := range F {
			probs[i] = softmax(F[i])
		}
		round := make([]*treeNode, K)
		for k := 0; k < K; k++ {
			for i := range resid {
				t := 0.0
				if y[i] == k {
					t = 1
				}
				resid[i] = t - probs[i][k]
			}
			round[k] = fitTree(X, resid, idx, p.tree(), 0)
		}
		m.Rounds = append(m.Rounds, round)
		for i := range F {
			for k, t := range round {
				F[i][k] += p.LearningRate * t.predict(X[i])
			}
		}
	}
	return m, nil
}

func softmax(s []float64) []float64 {
	out := make([]float64, len(s))
	if len(s) == 0 {
		return out
	}
	hi := s[0]
	for _, v := range s[1:] {
		if v > hi {
			hi = v
		}
	}
	var sum float64
	for k, v := range s {
		out[k] = math.Exp(v - hi)
		sum += out[k]
	}
	for k := range out {
		out[k] /= sum
	}
	return out
}

func (m *GBMClassifier) validate() error {
	if len(m.Classes) == 0 {
		return errors.New("classifier has no classes")
	}
	if len(m.Init) != len(m.Classes) {
		return fmt.Errorf("classifier has %d priors for %d classes", len(m.Init), len(m.Classes))
	}
	for r, round := range m.Rounds {
		if len(round) != len(m.Classes) {
			return fmt.Errorf("round %d has %d trees for %d classes", r, len(round), len(m.Classes))
		}
		for _, t := range round {
			if err := t.validate(numFeatures); err != nil {
				return fmt.Errorf("round %d: %w", r, err)
			}
		}
	}
	return m.Encoder.validate()
}
