package manager

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"finplan/internal/model"
	"finplan/internal/registry"
	"finplan/internal/store"
)

// Manager holds the active ModelSet.
type Manager struct {
	active atomic.Pointer[ModelSet]

	// reloadMu serializes reloads. Readers never take it.
	reloadMu sync.Mutex

	loader Loader
	names  registry.Names
	pub    EventPublisher
	log    zerolog.Logger
	now    func() time.Time

	// statusMu guards the fields below. It is never held while loading.
	statusMu   sync.RWMutex
	dir        string
	lastRoles  []RoleStatus
	lastReload time.Time
	lastErr    string

	reloads  atomic.Int64
	failures atomic.Int64
}

// New constructs a Manager with an empty active set.
func New(cfg Config) *Manager {
	m := &Manager{
		loader: cfg.Loader,
		names:  cfg.Names,
		pub:    cfg.Publisher,
		log:    cfg.Logger,
		now:    cfg.Now,
		dir:    cfg.Dir,
	}
	if m.pub == nil {
		m.pub = noopPublisher{}
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.active.Store(&ModelSet{})
	return m
}

// Current returns the active set. It never blocks and never returns nil.
func (m *Manager) Current() *ModelSet { return m.active.Load() }

// Ready reports whether a complete set is active.
func (m *Manager) Ready() bool { return m.Current().Complete() }

// Dir returns the directory of the last load attempt.
func (m *Manager) Dir() string {
	m.statusMu.RLock()
	defer m.statusMu.RUnlock()
	return m.dir
}

// LoadAll loads every role from dir without touching the active set. When
// any role fails the error is a *PartialModelSetError and the returned set
// holds only the roles that loaded.
func (m *Manager) LoadAll(dir string) (*ModelSet, LoadReport, error) {
	set, roles, err := m.load(dir, false)
	rep := LoadReport{Dir: dir, Roles: roles, LoadedAt: set.loadedAt, Version: set.version, State: set.state()}
	if set.Empty() && err != nil {
		rep.State = StateError
	}
	if err != nil {
		rep.LastError = err.Error()
	}
	return set, rep, err
}

// load reads every role from dir under the shared side of the training
// lock. lockHeld skips the lock for a caller that already holds the
// exclusive side.
func (m *Manager) load(dir string, lockHeld bool) (*ModelSet, []RoleStatus, error) {
	if m.loader == nil {
		return &ModelSet{}, nil, fmt.Errorf("manager has no loader")
	}
	layout, err := registry.Resolve(dir, m.names)
	if err != nil {
		return &ModelSet{}, nil, err
	}
	if !lockHeld {
		unlock, err := m.readLock(layout.Dir)
		if err != nil {
			return &ModelSet{}, nil, err
		}
		defer unlock()
	}
	set := &ModelSet{infos: map[registry.Role]store.ArtifactInfo{}}
	roles := make([]RoleStatus, 0, len(registry.Roles))
	failed := map[registry.Role]error{}
	for _, role := range registry.Roles {
		rs := RoleStatus{Role: role, Path: layout.Path(role)}
		start := time.Now()
		h, err := m.loader.Load(rs.Path)
		if err == nil {
			err = set.assign(role, h)
		}
		rs.Duration = time.Since(start)
		loadSeconds.WithLabelValues(string(role)).Observe(rs.Duration.Seconds())
		if err != nil {
			rs.Err = err
			failed[role] = err
			m.log.Warn().Str("role", string(role)).Str("path", rs.Path).Err(err).Msg("model load failed")
		} else {
			rs.Loaded = true
			rs.Info = h.Info
			m.log.Debug().Str("role", string(role)).Str("kind", h.Kind).Str("checksum", h.Info.Version()).Msg("model loaded")
		}
		roles = append(roles, rs)
	}
	set.loadedAt = m.now()
	set.version = setVersion(set.infos)
	if len(failed) > 0 {
		return set, roles, newPartialModelSetError(failed)
	}
	return set, roles, nil
}

// assign type-checks h against the capability role requires.
func (s *ModelSet) assign(role registry.Role, h store.Handle) error {
	var ok bool
	switch role {
	case registry.RoleForecaster:
		s.forecaster, ok = h.Model.(model.Forecaster)
	case registry.RoleRegressor:
		s.regressor, ok = h.Model.(model.Regressor)
	case registry.RoleClassifier:
		s.classifier, ok = h.Model.(model.Classifier)
	}
	if !ok {
		return fmt.Errorf("artifact kind %q cannot serve as %s", h.Kind, role)
	}
	s.infos[role] = h.Info
	return nil
}

// ReloadOptions tunes a reload.
type ReloadOptions struct {
	// AcceptPartial publishes a set with missing roles as long as one role
	// loaded. Missing roles stay nil; they are never filled from the old set.
	AcceptPartial bool
	// LockHeld is set by a caller that already holds the exclusive training
	// lock on dir, so the load does not wait on itself.
	LockHeld bool
}

// Reload loads dir (or the last directory when dir is "") and publishes the
// result only if every role loaded. On failure the previous set stays active.
func (m *Manager) Reload(dir string) (LoadReport, error) {
	return m.ReloadWith(dir, ReloadOptions{})
}

// ReloadWith is Reload with options. An accepted partial set is published
// and reported as degraded with a nil error.
func (m *Manager) ReloadWith(dir string, opts ReloadOptions) (LoadReport, error) {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()

	if dir == "" {
		dir = m.Dir()
	}
	m.pub.Publish(Event{Name: EventReloadStart, Dir: dir, Fields: map[string]any{"accept_partial": opts.AcceptPartial}})
	start := time.Now()
	set, roles, err := m.load(dir, opts.LockHeld)
	elapsed := time.Since(start)
	m.reloads.Inc()

	published := err == nil || (opts.AcceptPartial && !set.Empty())
	if published {
		m.active.Store(set)
		activeInfo.Reset()
		activeInfo.WithLabelValues(set.version).Set(float64(set.count()))
	}

	var result string
	switch {
	case err == nil:
		result = "ready"
		m.pub.Publish(Event{Name: EventReloadReady, Dir: dir, Fields: map[string]any{"version": set.version, "elapsed": elapsed}})
		m.log.Info().Str("event", EventReloadReady).Str("dir", dir).Str("version", set.version).Dur("elapsed", elapsed).Msg("models reloaded")
	case published:
		result = "partial"
		m.pub.Publish(Event{Name: EventReloadPartial, Dir: dir, Fields: map[string]any{"version": set.version, "failed": FailedRoles(err)}})
		m.log.Warn().Str("event", EventReloadPartial).Str("dir", dir).Str("version", set.version).Err(err).Msg("partial model set published")
	default:
		result = "failed"
		m.failures.Inc()
		m.pub.Publish(Event{Name: EventReloadFailed, Dir: dir, Fields: map[string]any{"error": err.Error()}})
		m.log.Error().Str("event", EventReloadFailed).Str("dir", dir).Err(err).Msg("reload failed; previous models stay active")
	}
	reloadsTotal.WithLabelValues(result).Inc()

	m.statusMu.Lock()
	m.dir = dir
	m.lastRoles = roles
	m.lastReload = m.now()
	if err != nil {
		m.lastErr = err.Error()
	} else {
		m.lastErr = ""
	}
	m.statusMu.Unlock()

	rep := m.Status()
	if published {
		return rep, nil
	}
	return rep, err
}

// Startup performs the initial load under policy. Strict returns any load
// error. Degraded publishes whatever loaded, logs the rest and returns nil;
// the report then shows degraded, or error when nothing loaded.
func (m *Manager) Startup(dir string, policy StartupPolicy) (LoadReport, error) {
	switch policy {
	case PolicyStrict:
		return m.Reload(dir)
	case PolicyDegraded, "":
		rep, err := m.ReloadWith(dir, ReloadOptions{AcceptPartial: true})
		if err != nil {
			m.log.Error().Err(err).Str("dir", dir).Msg("no models loaded; serving without predictions")
		}
		return rep, nil
	}
	return m.Status(), fmt.Errorf("unknown startup policy %q", policy)
}
