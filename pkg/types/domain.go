package types

// ModelRoleStatus is the load outcome of one model role.
type ModelRoleStatus struct {
	// example: regressor
	Role string `json:"role" example:"regressor"`
	// example: /srv/models/property_gbm_model.pkl
	Path   string `json:"path" example:"/srv/models/property_gbm_model.pkl"`
	Loaded bool   `json:"loaded" example:"true"`
	// example: regressor/gbm
	Kind     string `json:"kind,omitempty" example:"regressor/gbm"`
	Checksum string `json:"checksum,omitempty"`
	// example: 1.2MB
	Size  string `json:"size,omitempty" example:"1.2MB"`
	Error string `json:"error,omitempty"`
}

// ModelStatus is served by GET /api/models/status.
type ModelStatus struct {
	// One of ready, degraded, error, empty.
	// example: ready
	State string `json:"state" example:"ready"`
	Dir   string `json:"dir"`
	// example: 9a0b1c2d3e4f
	Version        string            `json:"version,omitempty" example:"9a0b1c2d3e4f"`
	LoadedAt       string            `json:"loaded_at,omitempty"`
	LastReload     string            `json:"last_reload,omitempty"`
	LastError      string            `json:"last_error,omitempty"`
	Reloads        int64             `json:"reloads"`
	ReloadFailures int64             `json:"reload_failures"`
	Roles          []ModelRoleStatus `json:"roles"`
}
