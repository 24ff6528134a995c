package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	answer string
	err    error
	calls  int
	msgs   []Message
	params Params
}

func (f *fakeClient) Complete(_ context.Context, msgs []Message, p Params) (string, error) {
	f.calls++
	f.msgs, f.params = msgs, p
	return f.answer, f.err
}

func TestAskWithoutKeyReturnsAdvisory(t *testing.T) {
	fc := &fakeClient{answer: "hi"}
	p := NewProxy(fc, ProxyConfig{Logger: zerolog.Nop()})
	r := p.Ask(context.Background(), "Should I buy gold?", nil)
	assert.Equal(t, http.StatusBadRequest, r.Status)
	assert.NotEmpty(t, r.Answer)
	assert.Zero(t, fc.calls)
}

func TestAskEmptyQuery(t *testing.T) {
	fc := &fakeClient{}
	r := NewProxy(fc, ProxyConfig{APIKey: "k"}).Ask(context.Background(), "   ", nil)
	assert.Equal(t, http.StatusBadRequest, r.Status)
	assert.Equal(t, AdvisoryEmptyQuery, r.Answer)
	assert.Zero(t, fc.calls)
}

func TestAskBuildsPrompt(t *testing.T) {
	fc := &fakeClient{answer: "Start a gold SIP of ₹5,000."}
	p := NewProxy(fc, ProxyConfig{APIKey: "k"})
	r := p.Ask(context.Background(), "How do I save?", map[string]any{"monthly_income": 40000})
	assert.Equal(t, http.StatusOK, r.Status)
	assert.Equal(t, fc.answer, r.Answer)

	require.Len(t, fc.msgs, 2)
	assert.Equal(t, "system", fc.msgs[0].Role)
	assert.Contains(t, fc.msgs[0].Content, "Indian financial advisor")
	assert.Contains(t, fc.msgs[1].Content, "How do I save?")
	assert.Contains(t, fc.msgs[1].Content, "\"monthly_income\": 40000")
	assert.Contains(t, fc.msgs[1].Content, "₹")
	assert.Equal(t, Params{Model: DefaultModel, Temperature: 0.25, MaxTokens: 500}, fc.params)
}

func TestAskDegradesGracefully(t *testing.T) {
	fc := &fakeClient{err: errors.New("connection reset")}
	r := NewProxy(fc, ProxyConfig{APIKey: "k"}).Ask(context.Background(), "q", nil)
	assert.Equal(t, http.StatusInternalServerError, r.Status)
	assert.Contains(t, r.Answer, "connection reset")

	fc = &fakeClient{answer: "  "}
	r = NewProxy(fc, ProxyConfig{APIKey: "k"}).Ask(context.Background(), "q", nil)
	assert.Equal(t, http.StatusOK, r.Status)
	assert.Equal(t, AdvisoryNoResponse, r.Answer)
}

func TestAskRateLimited(t *testing.T) {
	fc := &fakeClient{answer: "ok"}
	p := NewProxy(fc, ProxyConfig{APIKey: "k", RatePerMinute: 2})
	assert.Equal(t, http.StatusOK, p.Ask(context.Background(), "q", nil).Status)
	assert.Equal(t, http.StatusOK, p.Ask(context.Background(), "q", nil).Status)
	r := p.Ask(context.Background(), "q", nil)
	assert.Equal(t, http.StatusTooManyRequests, r.Status)
	assert.Equal(t, 2, fc.calls)
}

func TestOpenAIClientComplete(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" Invest monthly. "},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL+"/openai/v1/", "secret", time.Second, time.Second)
	out, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, Params{Model: "m", Temperature: 0.25, MaxTokens: 500})
	require.NoError(t, err)
	assert.Equal(t, "Invest monthly.", out)
	assert.Equal(t, "m", got.Model)
	assert.Equal(t, 500, got.MaxTokens)
	assert.False(t, got.Stream)
}

func TestOpenAIClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer empty":
			_, _ = w.Write([]byte(`{"choices":[]}`))
		case "Bearer slow":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{}`))
		default:
			http.Error(w, `{"error":"invalid key"}`, http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	_, err := NewOpenAIClient(srv.URL, "bad", time.Second, 0).Complete(context.Background(), nil, Params{})
	require.Error(t, err)
	assert.True(t, IsUpstream(err))
	assert.True(t, strings.Contains(err.Error(), "401"))

	out, err := NewOpenAIClient(srv.URL, "empty", time.Second, 0).Complete(context.Background(), nil, Params{})
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = NewOpenAIClient(srv.URL, "slow", 20*time.Millisecond, 0).Complete(context.Background(), nil, Params{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
