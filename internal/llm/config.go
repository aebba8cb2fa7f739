package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of generation being performed.
type TaskType string

const (
	TaskRecommend TaskType = "recommend"
)

// Provider names.
const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

const (
	defaultOllamaEndpoint = "http://localhost:11434"
	defaultOllamaModel    = "llama3.2"
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel    = "gemini-2.0-flash"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the text generation subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   string
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns the built-in configuration: Gemini, enabled, no key.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    true,
		Provider:   ProviderGemini,
		TimeoutMs:  30000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskRecommend: {Temperature: 0.7, MaxTokens: 1024, TimeoutMs: 30000},
		},
	}
}

// LoadConfig reads configuration from environment variables, falling back to
// defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("GLUCOFFEE_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("GLUCOFFEE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("GLUCOFFEE_LLM_PROVIDER"))); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("GLUCOFFEE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("GLUCOFFEE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GLUCOFFEE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
			tc := cfg.Tasks[TaskRecommend]
			tc.TimeoutMs = n
			cfg.Tasks[TaskRecommend] = tc
		}
	}
	if v := os.Getenv("GLUCOFFEE_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GOOGLE_API_KEY")
	}

	cfg.applyProviderDefaults()
	return cfg
}

func (c *LLMConfig) applyProviderDefaults() {
	switch c.Provider {
	case ProviderOllama:
		if c.Endpoint == "" {
			c.Endpoint = defaultOllamaEndpoint
		}
		if c.Model == "" {
			c.Model = defaultOllamaModel
		}
	default:
		if c.Endpoint == "" {
			c.Endpoint = defaultGeminiEndpoint
		}
		if c.Model == "" {
			c.Model = defaultGeminiModel
		}
	}
}

// TaskTimeout returns the effective per-attempt timeout in milliseconds.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
