package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Advisory texts returned instead of errors.
const (
	AdvisoryNoKey       = "⚠️ No GROQ_API_KEY configured. Add it to the environment or .env file to enable the advisor."
	AdvisoryEmptyQuery  = "Please enter a question for the advisor."
	AdvisoryBadRequest  = "The advisor could not read that request. Send JSON with a text \"query\" field."
	AdvisoryNoResponse  = "No response received from the advisor."
	AdvisoryRateLimited = "⚠️ The advisor is receiving too many questions right now. Please try again in a minute."
	advisoryFailedFmt   = "⚠️ Advisor call failed: %v"
)

const (
	systemPrompt = "You are a professional Indian financial advisor."
	temperature  = 0.25
	maxTokens    = 500
)

// Reply is an answer plus the HTTP status the gateway should use.
type Reply struct {
	Answer string
	Status int
}

// ProxyConfig configures a Proxy.
type ProxyConfig struct {
	// APIKey empty disables the upstream call.
	APIKey string
	Model  string
	// RatePerMinute limits upstream calls; 0 disables the limiter.
	RatePerMinute int
	Logger        zerolog.Logger
}

// Proxy turns a user question into an upstream chat call and never returns
// an error: failures become advisories with a matching status.
type Proxy struct {
	client  Client
	cfg     ProxyConfig
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewProxy builds a Proxy over client.
func NewProxy(client Client, cfg ProxyConfig) *Proxy {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	p := &Proxy{client: client, cfg: cfg, log: cfg.Logger}
	if cfg.RatePerMinute > 0 {
		p.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.RatePerMinute)
	}
	return p
}

// Configured reports whether an API key is set.
func (p *Proxy) Configured() bool { return p.cfg.APIKey != "" }

// Ask answers query with optional context.
func (p *Proxy) Ask(ctx context.Context, query string, extra map[string]any) Reply {
	query = strings.TrimSpace(query)
	if query == "" {
		return Reply{Answer: AdvisoryEmptyQuery, Status: http.StatusBadRequest}
	}
	if !p.Configured() || p.client == nil {
		return Reply{Answer: AdvisoryNoKey, Status: http.StatusBadRequest}
	}
	if p.limiter != nil && !p.limiter.Allow() {
		p.log.Warn().Msg("chat rate limit exceeded")
		return Reply{Answer: AdvisoryRateLimited, Status: http.StatusTooManyRequests}
	}
	msgs := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: BuildPrompt(query, extra)},
	}
	start := time.Now()
	answer, err := p.client.Complete(ctx, msgs, Params{Model: p.cfg.Model, Temperature: temperature, MaxTokens: maxTokens})
	if err != nil {
		p.log.Error().Err(err).Str("model", p.cfg.Model).Dur("elapsed", time.Since(start)).Msg("chat completion failed")
		return Reply{Answer: fmt.Sprintf(advisoryFailedFmt, err), Status: http.StatusInternalServerError}
	}
	p.log.Debug().Str("model", p.cfg.Model).Dur("elapsed", time.Since(start)).Int("answer_len", len(answer)).Msg("chat completion")
	if strings.TrimSpace(answer) == "" {
		return Reply{Answer: AdvisoryNoResponse, Status: http.StatusOK}
	}
	return Reply{Answer: answer, Status: http.StatusOK}
}

// BuildPrompt renders the user turn: the question, the context as indented
// JSON and the answer guidelines.
func BuildPrompt(query string, extra map[string]any) string {
	if extra == nil {
		extra = map[string]any{}
	}
	ctxJSON, err := json.MarshalIndent(extra, "", "  ")
	if err != nil {
		ctxJSON = []byte("{}")
	}
	var b strings.Builder
	b.WriteString("You are a friendly, knowledgeable Indian financial assistant.\n")
	b.WriteString("User's question: " + query + "\n")
	b.WriteString("Context: " + string(ctxJSON) + "\n\n")
	b.WriteString("Provide a clear, concise financial suggestion.\n")
	b.WriteString("Use ₹ (INR) for all currency values and include 2–3 actionable tips if possible.\n")
	return b.String()
}
