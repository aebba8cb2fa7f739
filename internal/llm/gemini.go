package llm

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	cfg    LLMConfig
	http   *http.Client
	caller caller
}

func NewGeminiClient(cfg LLMConfig, observer Observer) *GeminiClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	cfg.Provider = ProviderGemini
	cfg.applyProviderDefaults()
	return &GeminiClient{
		cfg:    cfg,
		http:   newHTTPClient(),
		caller: caller{cfg: cfg, observer: observer},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	ModelVersion string `json:"modelVersion"`
}

func (c *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := taskParams(c.cfg, req)
	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.UserPrompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     temp,
			MaxOutputTokens: maxTok,
		},
	}
	if req.SystemPrompt != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.SystemPrompt}}}
	}
	endpoint := c.cfg.Endpoint + "/models/" + url.PathEscape(c.cfg.Model) + ":generateContent"

	return c.caller.run(ctx, req.Task, func(ctx context.Context) (string, string, error) {
		if c.cfg.APIKey == "" {
			return "", "", ErrInvalidCredentials
		}
		var resp geminiResponse
		headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}
		if err := postJSON(ctx, c.http, endpoint, headers, body, &resp); err != nil {
			return "", "", err
		}
		return resp.text(), resp.ModelVersion, nil
	})
}

func (r geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
