package manager

import (
	"finplan/pkg/types"
)

// Status describes the active set together with the outcome of the most
// recent reload attempt.
func (m *Manager) Status() LoadReport {
	cur := m.Current()
	m.statusMu.RLock()
	rep := LoadReport{
		Dir:        m.dir,
		Version:    cur.version,
		LoadedAt:   cur.loadedAt,
		LastReload: m.lastReload,
		LastError:  m.lastErr,
	}
	rep.Roles = make([]RoleStatus, len(m.lastRoles))
	copy(rep.Roles, m.lastRoles)
	m.statusMu.RUnlock()

	rep.Reloads = m.reloads.Load()
	rep.Failures = m.failures.Load()
	rep.State = cur.state()
	if rep.State == StateEmpty && rep.LastError != "" {
		rep.State = StateError
	}
	return rep
}

// API projects the report onto the wire type served by /api/models/status.
func (r LoadReport) API() types.ModelStatus {
	out := types.ModelStatus{
		State:          string(r.State),
		Dir:            r.Dir,
		Version:        r.Version,
		LastError:      r.LastError,
		Reloads:        r.Reloads,
		ReloadFailures: r.Failures,
		Roles:          make([]types.ModelRoleStatus, 0, len(r.Roles)),
	}
	if !r.LoadedAt.IsZero() {
		out.LoadedAt = r.LoadedAt.UTC().Format(timeLayout)
	}
	if !r.LastReload.IsZero() {
		out.LastReload = r.LastReload.UTC().Format(timeLayout)
	}
	for _, rs := range r.Roles {
		s := types.ModelRoleStatus{Role: string(rs.Role), Path: rs.Path, Loaded: rs.Loaded}
		if rs.Loaded {
			s.Kind = rs.Info.Kind
			s.Checksum = rs.Info.Checksum
			s.Size = rs.Info.HumanSize()
		}
		if rs.Err != nil {
			s.Error = rs.Err.Error()
		}
		out.Roles = append(out.Roles, s)
	}
	return out
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
