// Package service adapts the model manager, planner, trainer and chat proxy
// to the HTTP API.
package service

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"finplan/internal/llm"
	"finplan/internal/manager"
	"finplan/internal/planner"
	"finplan/internal/training"
	"finplan/pkg/types"
)

// Models is the subset of *manager.Manager the service needs.
type Models interface {
	Current() *manager.ModelSet
	Ready() bool
	Dir() string
	Status() manager.LoadReport
	ReloadWith(dir string, opts manager.ReloadOptions) (manager.LoadReport, error)
}

// Trainer runs a training pass. *training.Orchestrator satisfies it.
type Trainer interface {
	TrainAll(ctx context.Context, sampleSize int) (training.Result, error)
}

// Advisor answers chat questions. *llm.Proxy satisfies it.
type Advisor interface {
	Ask(ctx context.Context, query string, extra map[string]any) llm.Reply
}

// Service implements httpapi.Service.
type Service struct {
	models  Models
	trainer Trainer
	advisor Advisor
	log     zerolog.Logger
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the clock used to anchor plan timelines.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// New wires the service. trainer and advisor may be nil; the matching
// endpoints then report that the feature is unavailable.
func New(models Models, trainer Trainer, advisor Advisor, opts ...Option) *Service {
	s := &Service{models: models, trainer: trainer, advisor: advisor, log: zerolog.Nop(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// PlanGoal builds a savings plan against the model set active at call time.
func (s *Service) PlanGoal(ctx context.Context, req types.PlanRequest) (types.Plan, error) {
	set := s.models.Current()
	plan, err := planner.GenerateSavingsPlan(req, set, s.now())
	if err != nil {
		return types.Plan{}, err
	}
	s.log.Debug().Str("plan_id", plan.PlanID).Str("goal_type", plan.GoalType).Str("version", plan.ModelVersion).Msg("plan generated")
	return plan, nil
}

// PredictProperty estimates a price and tier.
func (s *Service) PredictProperty(ctx context.Context, req types.PropertyRequest) (types.PropertyEstimate, error) {
	return planner.PredictProperty(req, s.models.Current())
}

// Chat forwards the question to the advisor. The returned status is the one
// the gateway should answer with.
func (s *Service) Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, int) {
	if s.advisor == nil {
		return types.ChatResponse{Answer: llm.AdvisoryNoKey}, http.StatusBadRequest
	}
	reply := s.advisor.Ask(ctx, req.Query, req.Context)
	return types.ChatResponse{Answer: reply.Answer}, reply.Status
}

// TrainAll retrains every model and reloads. When the reload fails the
// response still carries the metrics and the error is returned alongside.
func (s *Service) TrainAll(ctx context.Context, req types.TrainRequest) (types.TrainResponse, error) {
	if s.trainer == nil {
		return types.TrainResponse{}, errTrainingDisabled
	}
	res, err := s.trainer.TrainAll(ctx, req.SampleSize)
	resp := trainResponse(res)
	if err != nil {
		if training.IsReloadAfterTrain(err) {
			resp.ReloadError = err.Error()
		}
		return resp, err
	}
	return resp, nil
}

func trainResponse(res training.Result) types.TrainResponse {
	out := types.TrainResponse{
		GoldMAE:            res.GoldMAE,
		PropertyMAE:        res.PropertyMAE,
		PropertyR2:         res.PropertyR2,
		ClassifierAccuracy: res.ClassifierAccuracy,
		RowsUsed:           res.RowsUsed,
		ModelVersion:       res.Version,
		Artifacts:          make([]string, 0, len(res.Artifacts)),
	}
	for _, a := range res.Artifacts {
		out.Artifacts = append(out.Artifacts, a.Path)
	}
	return out
}

// ModelStatus reports the active set and the last reload outcome.
func (s *Service) ModelStatus() types.ModelStatus { return s.models.Status().API() }

// ReloadModels reloads from the current models directory.
func (s *Service) ReloadModels(ctx context.Context, req types.ReloadRequest) (types.ModelStatus, error) {
	_, err := s.models.ReloadWith(s.models.Dir(), manager.ReloadOptions{AcceptPartial: req.AcceptPartial})
	if err != nil {
		s.log.Warn().Err(err).Strs("failed_roles", roleNames(manager.FailedRoles(err))).Msg("reload rejected")
	}
	return s.models.Status().API(), err
}

// Ready reports whether a complete model set is active.
func (s *Service) Ready() bool { return s.models.Ready() }
