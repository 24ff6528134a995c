package httpapi

import "time"

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// trainTimeout bounds a /api/train_all request. Zero means no extra timeout.
var trainTimeout time.Duration

// SetTrainTimeout sets the training request timeout (0 disables).
func SetTrainTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	trainTimeout = d
}

// staticDir is served at / when non-empty.
var staticDir string

// SetStaticDir sets the directory holding the frontend assets.
func SetStaticDir(dir string) { staticDir = dir }

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
