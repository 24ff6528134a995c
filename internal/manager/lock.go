package manager

import (
	"path/filepath"

	"github.com/gofrs/flock"

	"finplan/internal/registry"
)

// readLock takes the shared side of the training lock in dir. Training holds
// the exclusive side while it rewrites artifacts, so a held lock means the
// directory may contain a mix of old and new files.
func (m *Manager) readLock(dir string) (func(), error) {
	fl := flock.New(filepath.Join(dir, registry.LockFile))
	ok, err := fl.TryRLock()
	if err != nil {
		// Missing or read-only directories cannot be written by training either.
		m.log.Debug().Str("dir", dir).Err(err).Msg("artifact lock unavailable; loading unlocked")
		return func() {}, nil
	}
	if !ok {
		return nil, ErrArtifactsLocked(dir)
	}
	return func() { _ = fl.Unlock() }, nil
}
