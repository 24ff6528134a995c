package manager

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"finplan/internal/model"
	"finplan/internal/registry"
	"finplan/internal/store"
)

// Stub models carry the name of the directory they were loaded from so tests
// can tell which reload produced them.
type stubForecaster struct{ tag string }

func (s stubForecaster) Forecast(start time.Time, months int) ([]float64, error) {
	out := make([]float64, months)
	for i := range out {
		out[i] = 6000
	}
	return out, nil
}
func (stubForecaster) Name() string { return "stub" }

type stubRegressor struct{ tag string }

func (stubRegressor) Predict(model.PropertyFeatures) (float64, error) { return 5e6, nil }

type stubClassifier struct{ tag string }

func (stubClassifier) Classify(model.PropertyFeatures) (string, error) { return model.TierMid, nil }

func tagOf(v any) string {
	switch s := v.(type) {
	case stubForecaster:
		return s.tag
	case stubRegressor:
		return s.tag
	case stubClassifier:
		return s.tag
	}
	return ""
}

// fakeLoader is an instrumented Loader: per-file delays and failures, keyed
// by base file name.
type fakeLoader struct {
	mu     sync.Mutex
	delays map[string]time.Duration
	fail   map[string]error
	calls  int
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{delays: map[string]time.Duration{}, fail: map[string]error{}}
}

func (l *fakeLoader) setFail(file string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err == nil {
		delete(l.fail, file)
		return
	}
	l.fail[file] = err
}

func (l *fakeLoader) Load(path string) (store.Handle, error) {
	base := filepath.Base(path)
	tag := filepath.Base(filepath.Dir(path))
	l.mu.Lock()
	l.calls++
	d, err := l.delays[base], l.fail[base]
	l.mu.Unlock()
	if d > 0 {
		time.Sleep(d)
	}
	if err != nil {
		return store.Handle{}, store.ErrCorruptArtifact(path, err)
	}
	info := store.ArtifactInfo{Path: path, Kind: "stub", Checksum: tag + "/" + base, Size: 1024}
	var mdl any
	switch base {
	case registry.DefaultForecasterFile:
		mdl = stubForecaster{tag: tag}
	case registry.DefaultRegressorFile:
		mdl = stubRegressor{tag: tag}
	case registry.DefaultClassifierFile:
		mdl = stubClassifier{tag: tag}
	default:
		return store.Handle{}, errors.New("unexpected file " + base)
	}
	return store.Handle{Kind: "stub", Model: mdl, Info: info}, nil
}

func newTestManager(l Loader, dir string) (*Manager, *MemoryPublisher) {
	pub := NewMemoryPublisher()
	m := New(Config{Dir: dir, Loader: l, Publisher: pub})
	return m, pub
}

// loaderFunc adapts a function returning a bare model to Loader.
type loaderFunc func(path string) (any, error)

func (f loaderFunc) Load(path string) (store.Handle, error) {
	mdl, err := f(path)
	if err != nil {
		return store.Handle{}, err
	}
	return store.Handle{Kind: "stub", Model: mdl, Info: store.ArtifactInfo{Path: path, Checksum: "x"}}, nil
}
