package manager

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"finplan/internal/registry"
)

// PartialModelSetError reports that one or more roles failed to load.
// Roles that loaded are listed in the accompanying LoadReport.
type PartialModelSetError struct {
	failed map[registry.Role]error
	merr   *multierror.Error
}

func newPartialModelSetError(failed map[registry.Role]error) *PartialModelSetError {
	roles := make([]string, 0, len(failed))
	for r := range failed {
		roles = append(roles, string(r))
	}
	sort.Strings(roles)
	var merr *multierror.Error
	for _, r := range roles {
		merr = multierror.Append(merr, fmt.Errorf("%s: %w", r, failed[registry.Role(r)]))
	}
	merr.ErrorFormat = func(errs []error) string {
		parts := make([]string, len(errs))
		for i, e := range errs {
			parts[i] = e.Error()
		}
		return fmt.Sprintf("%d model(s) failed to load: %s", len(errs), strings.Join(parts, "; "))
	}
	return &PartialModelSetError{failed: failed, merr: merr}
}

func (e *PartialModelSetError) Error() string { return e.merr.Error() }

func (e *PartialModelSetError) Unwrap() error { return e.merr.ErrorOrNil() }

// FailedRoles lists the roles that did not load, sorted.
func (e *PartialModelSetError) FailedRoles() []registry.Role {
	out := make([]registry.Role, 0, len(e.failed))
	for r := range e.failed {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Reason returns the load error for role, or nil if it loaded.
func (e *PartialModelSetError) Reason(role registry.Role) error { return e.failed[role] }

// IsPartialModelSet reports whether err is (or wraps) a PartialModelSetError.
func IsPartialModelSet(err error) bool {
	var pe *PartialModelSetError
	return errors.As(err, &pe)
}

// FailedRoles extracts the failed roles from err, if it is a partial load.
func FailedRoles(err error) []registry.Role {
	var pe *PartialModelSetError
	if errors.As(err, &pe) {
		return pe.FailedRoles()
	}
	return nil
}

type artifactsLockedError struct{ dir string }

func (e *artifactsLockedError) Error() string {
	return fmt.Sprintf("artifacts in %s are being written by a training run", e.dir)
}

// ErrArtifactsLocked reports that a training run holds the lock on dir.
func ErrArtifactsLocked(dir string) error { return &artifactsLockedError{dir: dir} }

// IsArtifactsLocked reports whether err is (or wraps) a locked-directory error.
func IsArtifactsLocked(err error) bool {
	var le *artifactsLockedError
	return errors.As(err, &le)
}
