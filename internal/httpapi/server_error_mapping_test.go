package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"finplan/internal/manager"
	"finplan/internal/planner"
	"finplan/internal/registry"
	"finplan/internal/training"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", planner.ErrValidation("monthly_income", "must be positive"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("plan: %w", planner.ErrValidation("horizon_months", "too long")), http.StatusBadRequest},
		{"model unavailable", planner.ErrModelUnavailable(registry.RoleRegressor), http.StatusServiceUnavailable},
		{"prediction", planner.ErrPrediction(registry.RoleForecaster, errors.New("nan")), http.StatusInternalServerError},
		{"train busy", training.ErrBusy("models/.train.lock"), http.StatusConflict},
		{"artifacts locked", manager.ErrArtifactsLocked("models"), http.StatusConflict},
		{"train failure", training.ErrTrainingFailure("regressor", errors.New("x")), http.StatusInternalServerError},
		{"train data", training.ErrTrainingData("gold.csv", errors.New("no rows")), http.StatusUnprocessableEntity},
		{"reload after train", training.ErrReloadAfterTrain(errors.New("corrupt")), http.StatusInternalServerError},
		{"http error", mockHTTPError{code: http.StatusTeapot, msg: "teapot"}, http.StatusTeapot},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusFor(tc.err); got != tc.want {
				t.Fatalf("statusFor(%v)=%d want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestHTTPErrorFromService(t *testing.T) {
	svc := &mockService{reloadErr: mockHTTPError{code: http.StatusConflict, msg: "reload in progress"}}
	rr := postJSON(t, NewMux(svc), "/api/models/reload", `{}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("want 409, got %d", rr.Code)
	}
	if e := decodeError(t, rr); e.Error != "reload in progress" {
		t.Fatalf("unexpected error: %+v", e)
	}
}

func TestModelUnavailableFromService(t *testing.T) {
	svc := &mockService{estErr: planner.ErrModelUnavailable(registry.RoleClassifier)}
	rr := postJSON(t, NewMux(svc), "/api/property_predict", `{"area":1000,"bedrooms":2,"location":"X"}`)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", rr.Code)
	}
}
