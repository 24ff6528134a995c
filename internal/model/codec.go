package model

import (
	"encoding/json"
	"fmt"

	"finplan/internal/store"
)

type validator interface{ validate() error }

func decodeInto[T validator](payload json.RawMessage, v T) (any, error) {
	if err := json.Unmarshal(payload, v); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if err := v.validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Decoders is the kind table the model store is built with.
func Decoders() map[string]store.Decoder {
	return map[string]store.Decoder{
		KindTrendForecaster: func(p json.RawMessage) (any, error) { return decodeInto(p, &TrendForecaster{}) },
		KindGBMRegressor:    func(p json.RawMessage) (any, error) { return decodeInto(p, &GBMRegressor{}) },
		KindGBMClassifier:   func(p json.RawMessage) (any, error) { return decodeInto(p, &GBMClassifier{}) },
	}
}
