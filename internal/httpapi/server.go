package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"finplan/internal/common/fsutil"
	"finplan/internal/llm"
	"finplan/internal/training"
	"finplan/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	PlanGoal(ctx context.Context, req types.PlanRequest) (types.Plan, error)
	PredictProperty(ctx context.Context, req types.PropertyRequest) (types.PropertyEstimate, error)
	Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, int)
	TrainAll(ctx context.Context, req types.TrainRequest) (types.TrainResponse, error)
	ModelStatus() types.ModelStatus
	ReloadModels(ctx context.Context, req types.ReloadRequest) (types.ModelStatus, error)
	Ready() bool
}

var errEmptyBody = errors.New("empty body")

// decodeJSON enforces the JSON content type and body limit, then decodes
// into v. When allowEmpty is set, a missing body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) bool {
	if status, msg := readJSON(w, r, v, allowEmpty); status != 0 {
		writeJSONError(w, status, msg)
		return false
	}
	return true
}

// readJSON decodes the request body into v. A non-zero status reports why
// the body was rejected; the caller decides how to render it.
func readJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) (int, string) {
	ct := r.Header.Get("Content-Type")
	if ct == "" && allowEmpty && r.ContentLength <= 0 {
		return 0, ""
	}
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		return http.StatusUnsupportedMediaType, "Content-Type must be application/json"
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		err = errEmptyBody
		if allowEmpty {
			return 0, ""
		}
	}
	if err != nil {
		// Oversized bodies are reported the same way to avoid leaking limits.
		return http.StatusBadRequest, "invalid JSON body"
	}
	return 0, ""
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/plan_goal", func(w http.ResponseWriter, r *http.Request) {
			var req types.PlanRequest
			if !decodeJSON(w, r, &req, false) {
				return
			}
			start := time.Now()
			logDebug(r, "plan_goal", map[string]any{"goal_type": req.GoalType, "horizon_months": req.HorizonMonths})
			plan, err := svc.PlanGoal(r.Context(), req)
			if err != nil {
				status := statusFor(err)
				writeJSONError(w, status, err.Error())
				logEnd(r, "plan_goal", status, start, err)
				return
			}
			writeJSON(w, http.StatusOK, plan)
			logEnd(r, "plan_goal", http.StatusOK, start, nil)
		})

		r.Post("/property_predict", func(w http.ResponseWriter, r *http.Request) {
			var req types.PropertyRequest
			if !decodeJSON(w, r, &req, false) {
				return
			}
			start := time.Now()
			est, err := svc.PredictProperty(r.Context(), req)
			if err != nil {
				status := statusFor(err)
				writeJSONError(w, status, err.Error())
				logEnd(r, "property_predict", status, start, err)
				return
			}
			writeJSON(w, http.StatusOK, est)
			logEnd(r, "property_predict", http.StatusOK, start, nil)
		})

		r.Post("/chat", func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			var req types.ChatRequest
			// The chat contract is always {answer}, even for unreadable input.
			if status, msg := readJSON(w, r, &req, false); status != 0 {
				chatAdvisoriesTotal.WithLabelValues(strconv.Itoa(http.StatusBadRequest)).Inc()
				writeJSON(w, http.StatusBadRequest, types.ChatResponse{Answer: llm.AdvisoryBadRequest})
				logEnd(r, "chat", http.StatusBadRequest, start, errors.New(msg))
				return
			}
			joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
			defer cancel()
			resp, status := svc.Chat(joinedCtx, req)
			if status == 0 {
				status = http.StatusOK
			}
			chatAdvisoriesTotal.WithLabelValues(strconv.Itoa(status)).Inc()
			writeJSON(w, status, resp)
			logEnd(r, "chat", status, start, nil)
		})

		r.Post("/train_all", func(w http.ResponseWriter, r *http.Request) {
			var req types.TrainRequest
			if !decodeJSON(w, r, &req, true) {
				return
			}
			start := time.Now()
			// Shutdown cancels training as well as client disconnects.
			ctx, cancel := joinContexts(serverBaseCtx, r.Context())
			defer cancel()
			if trainTimeout > 0 {
				var cancelT context.CancelFunc
				ctx, cancelT = context.WithTimeout(ctx, trainTimeout)
				defer cancelT()
			}
			resp, err := svc.TrainAll(ctx, req)
			if err != nil {
				if r.Context().Err() != nil {
					return
				}
				status := statusFor(err)
				if training.IsReloadAfterTrain(err) {
					// The fit succeeded; keep its metrics next to the error.
					writeJSON(w, status, types.TrainErrorResponse{TrainResponse: resp, Error: err.Error(), Code: status})
				} else {
					writeJSONError(w, status, err.Error())
				}
				logEnd(r, "train_all", status, start, err)
				return
			}
			writeJSON(w, http.StatusOK, resp)
			logEnd(r, "train_all", http.StatusOK, start, nil)
		})

		r.Get("/models/status", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, svc.ModelStatus())
		})

		r.Post("/models/reload", func(w http.ResponseWriter, r *http.Request) {
			var req types.ReloadRequest
			if !decodeJSON(w, r, &req, true) {
				return
			}
			start := time.Now()
			st, err := svc.ReloadModels(r.Context(), req)
			if err != nil {
				status := statusFor(err)
				writeJSONError(w, status, err.Error())
				logEnd(r, "reload", status, start, err)
				return
			}
			writeJSON(w, http.StatusOK, st)
			logEnd(r, "reload", http.StatusOK, start, nil)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(svc.ModelStatus().State))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	if staticDir != "" {
		if fsutil.PathExists(staticDir) {
			r.Handle("/*", http.FileServer(http.Dir(staticDir)))
		} else {
			zlog.Warn().Str("dir", staticDir).Msg("static directory not found; frontend disabled")
		}
	}

	return r
}
