package manager

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"finplan/internal/registry"
	"finplan/internal/store"
)

// StartupPolicy decides what happens when the initial load is incomplete.
type StartupPolicy string

const (
	// PolicyStrict fails startup unless every role loaded.
	PolicyStrict StartupPolicy = "strict"
	// PolicyDegraded publishes whatever loaded and keeps serving.
	PolicyDegraded StartupPolicy = "degraded"
)

// DefaultStartupPolicy applies when none is configured.
const DefaultStartupPolicy = PolicyDegraded

// ParseStartupPolicy accepts "strict" or "degraded"; empty means the default.
func ParseStartupPolicy(s string) (StartupPolicy, error) {
	switch StartupPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultStartupPolicy, nil
	case PolicyStrict:
		return PolicyStrict, nil
	case PolicyDegraded:
		return PolicyDegraded, nil
	}
	return "", fmt.Errorf("unknown startup policy %q (want strict or degraded)", s)
}

// Loader reads one artifact. *store.Store satisfies it.
type Loader interface {
	Load(path string) (store.Handle, error)
}

// Config encapsulates all tunables for Manager construction.
type Config struct {
	// Dir is the models directory used when Reload is called with "".
	Dir       string
	Names     registry.Names
	Loader    Loader
	Publisher EventPublisher
	Logger    zerolog.Logger
	// Now is used for timestamps; defaults to time.Now.
	Now func() time.Time
}
