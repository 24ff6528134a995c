// Package training fits the three models from the CSV datasets, writes them
// as artifacts and asks the lifecycle manager to publish them.
package training

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"finplan/internal/manager"
	"finplan/internal/model"
	"finplan/internal/registry"
	"finplan/internal/store"
)

// DefaultSampleSize caps the property rows used per run.
const DefaultSampleSize = 50000

// Saver writes artifacts. *store.Store satisfies it.
type Saver interface {
	Save(path string, m store.Persistable) (store.ArtifactInfo, error)
}

// Reloader publishes freshly written artifacts. *manager.Manager satisfies it.
type Reloader interface {
	ReloadWith(dir string, opts manager.ReloadOptions) (manager.LoadReport, error)
}

// Config holds the orchestrator's inputs.
type Config struct {
	ModelsDir         string
	DataDir           string
	Names             registry.Names
	Params            model.GBMParams
	Seed              int64
	DefaultSampleSize int
	Logger            zerolog.Logger
}

// Result reports what a run produced.
type Result struct {
	GoldMAE            float64
	GoldMonths         int
	PropertyMAE        float64
	PropertyR2         float64
	ClassifierAccuracy float64
	RowsUsed           int
	Artifacts          []store.ArtifactInfo
	Version            string
	Elapsed            time.Duration
}

// Orchestrator runs training. Runs are serialized by a lock file in the
// models directory, so separate processes exclude each other too.
type Orchestrator struct {
	cfg      Config
	saver    Saver
	reloader Reloader
	log      zerolog.Logger
	running  atomic.Bool
}

// New constructs an Orchestrator.
func New(cfg Config, saver Saver, reloader Reloader) *Orchestrator {
	if cfg.DefaultSampleSize <= 0 {
		cfg.DefaultSampleSize = DefaultSampleSize
	}
	return &Orchestrator{cfg: cfg, saver: saver, reloader: reloader, log: cfg.Logger}
}

// TrainAll fits every model, persists the artifacts and reloads. sampleSize
// <= 0 uses the configured default. If the reload fails the result is still
// returned together with a reload-after-train error.
func (o *Orchestrator) TrainAll(ctx context.Context, sampleSize int) (res Result, err error) {
	start := time.Now()
	defer func() {
		res.Elapsed = time.Since(start)
		observeRun(err, res.Elapsed)
	}()
	if sampleSize <= 0 {
		sampleSize = o.cfg.DefaultSampleSize
	}

	layout, err := registry.Resolve(o.cfg.ModelsDir, o.cfg.Names)
	if err != nil {
		return res, err
	}
	goldPath, propPath, err := registry.DataPaths(o.cfg.DataDir)
	if err != nil {
		return res, ErrTrainingData(o.cfg.DataDir, err)
	}
	unlock, err := o.lock(layout.Dir)
	if err != nil {
		return res, err
	}
	defer unlock()

	gold, err := readGold(goldPath)
	if err != nil {
		return res, err
	}
	props, err := readProperty(propPath)
	if err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	o.log.Info().Int("gold_points", len(gold)).Int("property_rows", len(props)).Int("sample_size", sampleSize).Msg("training started")

	sample := labelTiers(subsample(props, sampleSize, o.cfg.Seed))
	train, test := split(sample)
	res.RowsUsed = len(sample)

	var (
		fc  *model.TrendForecaster
		reg *model.GBMRegressor
		cls *model.GBMClassifier
	)
	var eg errgroup.Group
	eg.Go(func() error {
		var err error
		fc, res.GoldMAE, res.GoldMonths, err = fitGold(gold)
		return err
	})
	eg.Go(func() error {
		var err error
		reg, err = model.FitGBMRegressor(train, o.cfg.Params)
		if err != nil {
			return ErrTrainingFailure("regressor", err)
		}
		want, got := make([]float64, len(test)), make([]float64, len(test))
		for i, r := range test {
			want[i] = r.Price
			if got[i], err = reg.Predict(r.Features); err != nil {
				return ErrTrainingFailure("regressor", err)
			}
		}
		res.PropertyMAE = meanAbsError(want, got)
		res.PropertyR2 = rSquared(want, got)
		return nil
	})
	eg.Go(func() error {
		var err error
		cls, err = model.FitGBMClassifier(train, o.cfg.Params)
		if err != nil {
			return ErrTrainingFailure("classifier", err)
		}
		want, got := make([]string, len(test)), make([]string, len(test))
		for i, r := range test {
			want[i] = r.Tier
			if got[i], err = cls.Classify(r.Features); err != nil {
				return ErrTrainingFailure("classifier", err)
			}
		}
		res.ClassifierAccuracy = accuracy(want, got)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	for _, a := range []struct {
		role registry.Role
		m    store.Persistable
	}{
		{registry.RoleForecaster, fc},
		{registry.RoleRegressor, reg},
		{registry.RoleClassifier, cls},
	} {
		info, err := o.saver.Save(layout.Path(a.role), a.m)
		if err != nil {
			return res, err
		}
		res.Artifacts = append(res.Artifacts, info)
		o.log.Info().Str("role", string(a.role)).Str("path", info.Path).Str("size", info.HumanSize()).Msg("artifact written")
	}

	// The exclusive lock is still held here, so no other reload can observe
	// the directory between the first and last Save.
	rep, err := o.reloader.ReloadWith(layout.Dir, manager.ReloadOptions{LockHeld: true})
	if err != nil {
		o.log.Error().Err(err).Msg("reload after training failed; artifacts left on disk")
		return res, ErrReloadAfterTrain(err)
	}
	res.Version = rep.Version
	o.log.Info().
		Float64("gold_mae", res.GoldMAE).
		Float64("property_mae", res.PropertyMAE).
		Float64("property_r2", res.PropertyR2).
		Float64("classifier_accuracy", res.ClassifierAccuracy).
		Str("version", res.Version).
		Msg("training finished")
	return res, nil
}

// lock takes the in-process guard and the lock file, failing fast if either
// is held.
func (o *Orchestrator) lock(dir string) (func(), error) {
	path := filepath.Join(dir, registry.LockFile)
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrBusy(path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		o.running.Store(false)
		return nil, fmt.Errorf("create models dir: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		o.running.Store(false)
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		o.running.Store(false)
		return nil, ErrBusy(path)
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			o.log.Warn().Err(err).Str("lock", path).Msg("unlock failed")
		}
		o.running.Store(false)
	}, nil
}

// fitGold measures holdout error on the most recent months, then fits the
// artifact on the full history.
func fitGold(points []model.PricePoint) (*model.TrendForecaster, float64, int, error) {
	var mae float64
	if cut, ok := monthCut(points); ok {
		var train, test []model.PricePoint
		for _, p := range points {
			if p.Date.Year()*12+int(p.Date.Month())-1 < cut {
				train = append(train, p)
			} else {
				test = append(test, p)
			}
		}
		f, err := model.FitTrendForecaster(train)
		if err != nil {
			return nil, 0, 0, ErrTrainingFailure("forecaster", err)
		}
		want := make([]float64, len(test))
		got := make([]float64, len(test))
		for i, p := range test {
			pred, err := f.Forecast(p.Date, 1)
			if err != nil {
				return nil, 0, 0, ErrTrainingFailure("forecaster", err)
			}
			want[i], got[i] = p.Price, pred[0]
		}
		mae = meanAbsError(want, got)
	}
	f, err := model.FitTrendForecaster(points)
	if err != nil {
		return nil, 0, 0, ErrTrainingFailure("forecaster", err)
	}
	return f, mae, f.Months, nil
}
