package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// GenerateRequest holds the parameters for a generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of a generation call. Text is opaque.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// TextGenerator turns a prompt into free text.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// New returns the generator for cfg.Provider, or ErrDisabled when generation
// is switched off.
func New(cfg LLMConfig, observer Observer) (TextGenerator, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	cfg.applyProviderDefaults()
	switch cfg.Provider {
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	case ProviderGemini, "":
		return NewGeminiClient(cfg, observer), nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
}

// statusError is a non-200 answer from the provider.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("status %d: %s", e.Code, strings.TrimSpace(body))
}

// attemptFunc performs one HTTP round trip and returns the generated text
// and reported model.
type attemptFunc func(ctx context.Context) (text, model string, err error)

// caller runs attempts with retries and reports one event per call.
type caller struct {
	cfg      LLMConfig
	observer Observer
}

func (c caller) run(ctx context.Context, task TaskType, attempt attemptFunc) (*GenerateResponse, error) {
	start := time.Now()
	timeout := time.Duration(c.cfg.TaskTimeout(task)) * time.Millisecond
	attempts := 1 + c.cfg.MaxRetries

	var lastErr error
	tried := 0
	for i := 0; i < attempts; i++ {
		tried++
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		text, model, err := attempt(attemptCtx)
		timedOut := errors.Is(attemptCtx.Err(), context.DeadlineExceeded)
		cancel()

		if err == nil {
			if strings.TrimSpace(text) == "" {
				err = ErrEmptyResponse
			} else {
				if model == "" {
					model = c.cfg.Model
				}
				latency := time.Since(start).Milliseconds()
				c.report(task, latency, tried, nil)
				return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
			}
		}
		if timedOut {
			err = ErrTimeout
		}
		lastErr = err

		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}

	final := classify(ctx, lastErr)
	c.report(task, time.Since(start).Milliseconds(), tried, final)
	return nil, final
}

func (c caller) report(task TaskType, latency int64, attempts int, err error) {
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Provider:  c.cfg.Provider,
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Attempts:  attempts,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
}

func retryable(err error) bool {
	var se *statusError
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return false
	case errors.As(err, &se):
		return se.Code >= 500 || se.Code == http.StatusTooManyRequests
	default:
		return true
	}
}

// classify maps the last attempt error to one of the package sentinels.
func classify(ctx context.Context, err error) error {
	var se *statusError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, ErrTimeout):
		return ErrTimeout
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, ctx.Err())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrEmptyResponse):
		return err
	case errors.As(err, &se) && (se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden):
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	case errors.As(err, &se) && se.Code >= 500:
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

// postJSON sends body and decodes a 200 answer into out.
func postJSON(ctx context.Context, hc *http.Client, url string, headers map[string]string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := hc.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return &statusError{Code: httpResp.StatusCode, Body: string(respBody)}
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, ErrServiceUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}

func taskParams(cfg LLMConfig, req GenerateRequest) (float64, int) {
	tc := cfg.Tasks[req.Task]
	temp, maxTok := tc.Temperature, tc.MaxTokens
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return temp, maxTok
}
