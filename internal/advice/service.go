package advice

import (
	"context"
	"errors"

	"github.com/alexanderramin/glucoffee/internal/llm"
)

// Source tells where a recommendation's text came from.
type Source string

const (
	SourceGenerated     Source = "generated"
	SourceDeterministic Source = "deterministic"
)

// Recommendation is display text plus, when generation failed, a non-fatal
// warning naming the failure.
type Recommendation struct {
	Text    string
	Source  Source
	Model   string
	Warning string
	Err     error
}

// Service produces recommendations from summaries. It never touches a record.
type Service interface {
	Recommend(ctx context.Context, s Summary) Recommendation
}

type service struct {
	gen llm.TextGenerator
}

// NewService returns a Service. A nil generator, or one reporting
// llm.ErrDisabled, yields deterministic advice without a warning.
func NewService(gen llm.TextGenerator) Service {
	return &service{gen: gen}
}

func (s *service) Recommend(ctx context.Context, sum Summary) Recommendation {
	if s.gen == nil {
		return Recommendation{Text: DeterministicAdvice(sum), Source: SourceDeterministic}
	}

	resp, err := s.gen.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskRecommend,
		SystemPrompt: systemPrompt,
		UserPrompt:   BuildPrompt(sum),
	})
	if errors.Is(err, llm.ErrDisabled) {
		return Recommendation{Text: DeterministicAdvice(sum), Source: SourceDeterministic}
	}
	if err != nil {
		return Recommendation{
			Text:    DeterministicAdvice(sum),
			Source:  SourceDeterministic,
			Warning: warningFor(err),
			Err:     err,
		}
	}
	return Recommendation{Text: resp.Text, Source: SourceGenerated, Model: resp.Model}
}

func warningFor(err error) string {
	switch {
	case errors.Is(err, llm.ErrInvalidCredentials):
		return "AI recommendation unavailable: the API key is missing or was rejected (set GEMINI_API_KEY)."
	case errors.Is(err, llm.ErrTimeout):
		return "AI recommendation unavailable: the request timed out."
	case errors.Is(err, llm.ErrServiceUnavailable):
		return "AI recommendation unavailable: the service could not be reached."
	default:
		return "AI recommendation unavailable: " + err.Error() + "."
	}
}
