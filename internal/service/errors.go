package service

import (
	"net/http"

	"finplan/internal/registry"
)

// statusError carries an HTTP status for the gateway.
type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string   { return e.msg }
func (e *statusError) StatusCode() int { return e.code }

var errTrainingDisabled error = &statusError{code: http.StatusServiceUnavailable, msg: "training is not configured"}

func roleNames(roles []registry.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
