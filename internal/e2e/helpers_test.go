package e2e

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"finplan/internal/httpapi"
	"finplan/internal/llm"
	"finplan/internal/manager"
	"finplan/internal/model"
	"finplan/internal/registry"
	"finplan/internal/service"
	"finplan/internal/store"
	"finplan/internal/training"
)

type flatForecaster struct{}

func (flatForecaster) Forecast(start time.Time, months int) ([]float64, error) {
	out := make([]float64, months)
	for i := range out {
		out[i] = 6000
	}
	return out, nil
}
func (flatForecaster) Name() string { return "flat" }

type fixedRegressor struct{}

func (fixedRegressor) Predict(model.PropertyFeatures) (float64, error) { return 5000000, nil }

type fixedClassifier struct{}

func (fixedClassifier) Classify(model.PropertyFeatures) (string, error) { return model.TierMid, nil }

// staticModels serves one in-memory set and never reloads.
type staticModels struct{ set *manager.ModelSet }

func (s staticModels) Current() *manager.ModelSet { return s.set }
func (s staticModels) Ready() bool                { return s.set.Complete() }
func (s staticModels) Dir() string                { return "" }
func (s staticModels) Status() manager.LoadReport {
	return manager.LoadReport{State: manager.StateReady, Version: s.set.Version()}
}
func (s staticModels) ReloadWith(string, manager.ReloadOptions) (manager.LoadReport, error) {
	return s.Status(), nil
}

// newStubServer serves the API over fixed stub models and a chat proxy
// without an API key.
func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	set := manager.NewModelSet(flatForecaster{}, fixedRegressor{}, fixedClassifier{})
	advisor := llm.NewProxy(nil, llm.ProxyConfig{})
	svc := service.New(staticModels{set: set}, nil, advisor)
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv
}

func goldCSV(months int) string {
	var b strings.Builder
	b.WriteString("date,price\n")
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < months; i++ {
		fmt.Fprintf(&b, "%s,%.2f\n", start.AddDate(0, i, 0).Format("2006-01-02"), 5000+40*float64(i))
	}
	return b.String()
}

func propertyCSV(rows int) string {
	var b strings.Builder
	b.WriteString("area,bedrooms,location,price\n")
	locs := []struct {
		name string
		ppsf float64
	}{{"Bandra", 25000}, {"Powai", 14000}, {"Virar", 5000}}
	for i := 0; i < rows; i++ {
		l := locs[i%3]
		area := 500 + float64((i*37)%20)*50
		fmt.Fprintf(&b, "%.0f,%d,%s,%.0f\n", area, 1+i%3, l.name, area*l.ppsf)
	}
	return b.String()
}

type liveEnv struct {
	srv    *httptest.Server
	mgr    *manager.Manager
	models string
	data   string
}

// newLiveServer wires the real store, manager and trainer over temp dirs
// seeded with small datasets. No models are loaded until training runs.
func newLiveServer(t *testing.T) *liveEnv {
	t.Helper()
	root := t.TempDir()
	env := &liveEnv{models: filepath.Join(root, "models"), data: filepath.Join(root, "data")}
	if err := os.MkdirAll(env.data, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(env.data, registry.GoldDataFile), goldCSV(36))
	writeFile(t, filepath.Join(env.data, registry.PropertyDataFile), propertyCSV(90))

	st := store.New(model.Decoders())
	env.mgr = manager.New(manager.Config{Dir: env.models, Loader: st, Logger: zerolog.Nop()})
	trainer := training.New(training.Config{
		ModelsDir: env.models,
		DataDir:   env.data,
		Params:    model.GBMParams{Rounds: 15, MaxDepth: 3, MinLeaf: 2},
		Seed:      11,
		Logger:    zerolog.Nop(),
	}, st, env.mgr)
	svc := service.New(env.mgr, trainer, llm.NewProxy(nil, llm.ProxyConfig{}))
	env.srv = httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(env.srv.Close)
	return env
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
