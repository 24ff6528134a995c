package manager

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"finplan/internal/model"
	"finplan/internal/registry"
	"finplan/internal/store"
)

// State summarises the active model set.
type State string

const (
	StateReady    State = "ready"
	StateDegraded State = "degraded"
	StateError    State = "error"
	StateEmpty    State = "empty"
)

// ModelSet is an immutable snapshot of the three role models. A nil role is
// only possible in a set published with AcceptPartial or at startup under the
// degraded policy.
type ModelSet struct {
	forecaster model.Forecaster
	regressor  model.Regressor
	classifier model.Classifier
	infos      map[registry.Role]store.ArtifactInfo
	loadedAt   time.Time
	version    string
}

// NewModelSet builds a set from in-memory models. Intended for fixtures and
// tests; artifacts loaded from disk go through the Manager.
func NewModelSet(f model.Forecaster, r model.Regressor, c model.Classifier) *ModelSet {
	return &ModelSet{forecaster: f, regressor: r, classifier: c, loadedAt: time.Now(), version: "static"}
}

func (s *ModelSet) Forecaster() model.Forecaster { return s.forecaster }
func (s *ModelSet) Regressor() model.Regressor   { return s.regressor }
func (s *ModelSet) Classifier() model.Classifier { return s.classifier }
func (s *ModelSet) LoadedAt() time.Time          { return s.loadedAt }

// Version identifies the artifacts in the set; empty for the empty set.
func (s *ModelSet) Version() string { return s.version }

// Info returns provenance for role when it was loaded from disk.
func (s *ModelSet) Info(role registry.Role) (store.ArtifactInfo, bool) {
	i, ok := s.infos[role]
	return i, ok
}

// Has reports whether role is populated.
func (s *ModelSet) Has(role registry.Role) bool {
	switch role {
	case registry.RoleForecaster:
		return s.forecaster != nil
	case registry.RoleRegressor:
		return s.regressor != nil
	case registry.RoleClassifier:
		return s.classifier != nil
	}
	return false
}

func (s *ModelSet) count() int {
	n := 0
	for _, r := range registry.Roles {
		if s.Has(r) {
			n++
		}
	}
	return n
}

// Complete reports whether every role is populated.
func (s *ModelSet) Complete() bool { return s.count() == len(registry.Roles) }

// Partial reports whether some but not all roles are populated.
func (s *ModelSet) Partial() bool { n := s.count(); return n > 0 && n < len(registry.Roles) }

// Empty reports whether no role is populated.
func (s *ModelSet) Empty() bool { return s.count() == 0 }

func (s *ModelSet) state() State {
	switch {
	case s.Complete():
		return StateReady
	case s.Partial():
		return StateDegraded
	}
	return StateEmpty
}

// setVersion hashes the per-role checksums in role order.
func setVersion(infos map[registry.Role]store.ArtifactInfo) string {
	if len(infos) == 0 {
		return ""
	}
	h := sha256.New()
	for _, r := range registry.Roles {
		h.Write([]byte(r))
		h.Write([]byte{':'})
		if i, ok := infos[r]; ok {
			h.Write([]byte(i.Checksum))
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// RoleStatus is the outcome of loading one role.
type RoleStatus struct {
	Role     registry.Role
	Path     string
	Loaded   bool
	Info     store.ArtifactInfo
	Err      error
	Duration time.Duration
}

// LoadReport describes a load attempt or, from Status, the manager as a whole.
type LoadReport struct {
	State      State
	Dir        string
	Version    string
	Roles      []RoleStatus
	LoadedAt   time.Time
	LastReload time.Time
	LastError  string
	Reloads    int64
	Failures   int64
}

// Role returns the status entry for role.
func (r LoadReport) Role(role registry.Role) (RoleStatus, bool) {
	for _, rs := range r.Roles {
		if rs.Role == role {
			return rs, true
		}
	}
	return RoleStatus{}, false
}
