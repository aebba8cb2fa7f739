package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alexanderramin/glucoffee/internal/logger"
)

func testConfig(provider, endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Provider = provider
	cfg.Endpoint = endpoint
	cfg.APIKey = "test-key"
	return cfg
}

func withTimeout(cfg LLMConfig, ms int) LLMConfig {
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskRecommend: {Temperature: 0.7, MaxTokens: 256, TimeoutMs: ms},
	}
	return cfg
}

func recommend(t *testing.T, g TextGenerator) (*GenerateResponse, error) {
	t.Helper()
	return g.Generate(context.Background(), GenerateRequest{
		Task:         TaskRecommend,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})
}

func TestOllamaClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "system prompt", req.System)
		assert.Equal(t, "user prompt", req.Prompt)
		assert.Equal(t, 0.7, req.Options.Temperature)

		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "Drink less sugar."})
	}))
	defer srv.Close()

	resp, err := recommend(t, NewOllamaClient(testConfig(ProviderOllama, srv.URL), NoopObserver{}))

	require.NoError(t, err)
	assert.Equal(t, "Drink less sugar.", resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestOllamaClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := withTimeout(testConfig(ProviderOllama, srv.URL), 50)
	cfg.MaxRetries = 0

	_, err := recommend(t, NewOllamaClient(cfg, NoopObserver{}))
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaClient_Generate_Unavailable(t *testing.T) {
	cfg := withTimeout(testConfig(ProviderOllama, "http://127.0.0.1:1"), 1000)
	cfg.MaxRetries = 0

	_, err := recommend(t, NewOllamaClient(cfg, NoopObserver{}))
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestOllamaClient_Generate_RetryOnServerError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
			return
		}
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer srv.Close()

	cfg := testConfig(ProviderOllama, srv.URL)
	cfg.MaxRetries = 1

	resp, err := recommend(t, NewOllamaClient(cfg, NoopObserver{}))
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestOllamaClient_Generate_RetryAfterTimeout(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			time.Sleep(150 * time.Millisecond)
		}
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer srv.Close()

	cfg := withTimeout(testConfig(ProviderOllama, srv.URL), 50)
	cfg.MaxRetries = 1

	resp, err := recommend(t, NewOllamaClient(cfg, NoopObserver{}))
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestOllamaClient_Generate_PersistentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := testConfig(ProviderOllama, srv.URL)
	cfg.MaxRetries = 2

	_, err := recommend(t, NewOllamaClient(cfg, NoopObserver{}))
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestOllamaClient_Generate_BadRequestNotRetried(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad request"))
	}))
	defer srv.Close()

	cfg := testConfig(ProviderOllama, srv.URL)
	cfg.MaxRetries = 3

	_, err := recommend(t, NewOllamaClient(cfg, NoopObserver{}))
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestOllamaClient_Generate_EmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "  "})
	}))
	defer srv.Close()

	cfg := testConfig(ProviderOllama, srv.URL)
	cfg.MaxRetries = 0

	_, err := recommend(t, NewOllamaClient(cfg, NoopObserver{}))
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOllamaClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, NewOllamaClient(testConfig(ProviderOllama, srv.URL), nil).Available(context.Background()))
	assert.False(t, NewOllamaClient(testConfig(ProviderOllama, "http://127.0.0.1:1"), nil).Available(context.Background()))
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user prompt", req.Contents[0].Parts[0].Text)
		require.NotNil(t, req.SystemInstruction)
		assert.Equal(t, "system prompt", req.SystemInstruction.Parts[0].Text)
		assert.Equal(t, 1024, req.GenerationConfig.MaxOutputTokens)

		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hello "},{"text":"Sari"}]}}],"modelVersion":"gemini-2.0-flash-001"}`))
	}))
	defer srv.Close()

	resp, err := recommend(t, NewGeminiClient(testConfig(ProviderGemini, srv.URL), nil))
	require.NoError(t, err)
	assert.Equal(t, "Hello Sari", resp.Text)
	assert.Equal(t, "gemini-2.0-flash-001", resp.Model)
}

func TestGeminiClient_Generate_MissingKey(t *testing.T) {
	var called atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called.Store(true)
	}))
	defer srv.Close()

	cfg := testConfig(ProviderGemini, srv.URL)
	cfg.APIKey = ""

	_, err := recommend(t, NewGeminiClient(cfg, nil))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, called.Load())
}

func TestGeminiClient_Generate_RejectedKey(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	cfg := testConfig(ProviderGemini, srv.URL)
	cfg.MaxRetries = 3

	_, err := recommend(t, NewGeminiClient(cfg, nil))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestGeminiClient_Generate_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	cfg := testConfig(ProviderGemini, srv.URL)
	cfg.MaxRetries = 0

	_, err := recommend(t, NewGeminiClient(cfg, nil))
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestNew_SelectsProvider(t *testing.T) {
	g, err := New(testConfig(ProviderOllama, "http://x"), nil)
	require.NoError(t, err)
	assert.IsType(t, &OllamaClient{}, g)

	g, err = New(testConfig(ProviderGemini, "http://x"), nil)
	require.NoError(t, err)
	assert.IsType(t, &GeminiClient{}, g)

	_, err = New(testConfig("openai", "http://x"), nil)
	assert.Error(t, err)

	cfg := testConfig(ProviderGemini, "http://x")
	cfg.Enabled = false
	_, err = New(cfg, nil)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestObserver_ReportsOutcome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

	_, err := recommend(t, NewOllamaClient(testConfig(ProviderOllama, srv.URL), obs))
	require.NoError(t, err)
	assert.Equal(t, TaskRecommend, captured.Task)
	assert.Equal(t, ProviderOllama, captured.Provider)
	assert.Equal(t, "llama3.2", captured.Model)
	assert.Equal(t, 1, captured.Attempts)
	assert.True(t, captured.Success)
}

func TestObserver_TimeoutErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := withTimeout(testConfig(ProviderOllama, srv.URL), 50)
	cfg.MaxRetries = 0

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}
	_, err := recommend(t, NewOllamaClient(cfg, obs))

	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, captured.Success)
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
}

func TestLogObserver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	obs := NewLogObserver(logger.FromZap(zap.New(core)))

	obs.OnCallComplete(LLMCallEvent{Task: TaskRecommend, Provider: ProviderGemini, Model: "m", Attempts: 1, Success: true})
	obs.OnCallComplete(LLMCallEvent{Task: TaskRecommend, Provider: ProviderGemini, Model: "m", Attempts: 2, ErrorCode: "TIMEOUT"})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "err:TIMEOUT", entries[1].ContextMap()["status"])
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }
