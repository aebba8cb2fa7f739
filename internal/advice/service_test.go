package advice

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/llm"
)

type fakeGenerator struct {
	text string
	err  error
	last llm.GenerateRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Text: f.text, Model: "fake-model"}, nil
}

func sampleSummary() Summary {
	return Summary{
		Name: "Budi",
		Risk: &RiskSection{Score: 16, Level: domain.RiskHigh, Age: "55-64 years", BMI: "over 30 kg/m²"},
		Consumption: &ConsumptionSection{
			TodayTotal: 45, TodayBand: domain.BandApproaching, RemainingQuota: 5,
			QuotaUsedPct: 90, WeeklyAverage: 30, WindowDays: 7, DailyLimit: 50,
		},
	}
}

func TestRecommend_ReturnsGeneratedText(t *testing.T) {
	gen := &fakeGenerator{text: "Drink less caramel."}
	rec := NewService(gen).Recommend(context.Background(), sampleSummary())

	assert.Equal(t, SourceGenerated, rec.Source)
	assert.Equal(t, "Drink less caramel.", rec.Text)
	assert.Equal(t, "fake-model", rec.Model)
	assert.Empty(t, rec.Warning)
	assert.Equal(t, llm.TaskRecommend, gen.last.Task)
	assert.Contains(t, gen.last.UserPrompt, "Budi")
	assert.NotEmpty(t, gen.last.SystemPrompt)
}

func TestRecommend_FallsBackWithWarning(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"credentials", llm.ErrInvalidCredentials, "API key"},
		{"timeout", llm.ErrTimeout, "timed out"},
		{"unavailable", fmt.Errorf("wrapped: %w", llm.ErrServiceUnavailable), "could not be reached"},
		{"other", llm.ErrEmptyResponse, "no text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := NewService(&fakeGenerator{err: tc.err}).Recommend(context.Background(), sampleSummary())

			assert.Equal(t, SourceDeterministic, rec.Source)
			assert.Contains(t, rec.Warning, tc.want)
			assert.ErrorIs(t, rec.Err, tc.err)
			assert.Equal(t, DeterministicAdvice(sampleSummary()), rec.Text)
		})
	}
}

func TestRecommend_DisabledIsQuiet(t *testing.T) {
	rec := NewService(nil).Recommend(context.Background(), sampleSummary())
	assert.Equal(t, SourceDeterministic, rec.Source)
	assert.Empty(t, rec.Warning)

	rec = NewService(&fakeGenerator{err: llm.ErrDisabled}).Recommend(context.Background(), sampleSummary())
	assert.Equal(t, SourceDeterministic, rec.Source)
	assert.Empty(t, rec.Warning)
	assert.NoError(t, rec.Err)
}

func TestDeterministicAdvice_Bands(t *testing.T) {
	s := sampleSummary()
	text := DeterministicAdvice(s)
	assert.Contains(t, text, "Hi Budi")
	assert.Contains(t, text, "FINDRISC score is 16 (High risk)")
	assert.Contains(t, text, "only 5.0 g remains")

	s.Consumption.TodayBand = domain.BandExceeded
	s.Consumption.TodayTotal = 62
	assert.Contains(t, DeterministicAdvice(s), "12.0 g over the 50 g limit")

	s.Consumption.TodayBand = domain.BandSafe
	s.Consumption.TodayTotal = 10
	s.Consumption.RemainingQuota = 40
	assert.Contains(t, DeterministicAdvice(s), "40.0 g of quota left")
}

func TestDeterministicAdvice_PromptsForMissingData(t *testing.T) {
	s := sampleSummary()
	s.Risk = nil
	assert.Contains(t, DeterministicAdvice(s), "Take the FINDRISC test")

	s = sampleSummary()
	s.Consumption = nil
	text := DeterministicAdvice(s)
	assert.Contains(t, text, "Log your coffee")
	require.NotContains(t, text, "quota")
}
