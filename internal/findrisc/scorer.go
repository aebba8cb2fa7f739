package findrisc

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/glucoffee/internal/domain"
)

// Answers maps question key to the selected option key. The stamped
// assessment keeps the option labels instead, for display and prompting.
type Answers map[string]string

// Result is a scored questionnaire that has not been stamped yet.
type Result struct {
	Score      int
	Level      domain.RiskLevel
	RawAnswers map[string]string
}

// Assessment stamps the result and returns the record section to persist.
func (r Result) Assessment(now time.Time) domain.RiskAssessment {
	score := r.Score
	updated := now
	raw := make(map[string]string, len(r.RawAnswers))
	for k, v := range r.RawAnswers {
		raw[k] = v
	}
	return domain.RiskAssessment{
		Score:       &score,
		RiskLevel:   r.Level,
		LastUpdated: &updated,
		RawAnswers:  raw,
	}
}

// Score validates answers and sums the selected points. Every question must be
// answered exactly once with a known option key.
func Score(answers Answers) (Result, error) {
	if err := Validate(answers); err != nil {
		return Result{}, err
	}

	res := Result{RawAnswers: make(map[string]string, len(Questions))}
	for _, q := range Questions {
		opt, _ := q.Option(answers[q.Key])
		res.Score += opt.Points
		res.RawAnswers[q.Key] = opt.Label
	}
	res.Level = Classify(res.Score)
	return res, nil
}

// Validate checks answers against the question table.
func Validate(answers Answers) error {
	var unknown []string
	for key := range answers {
		if _, ok := questionIndex[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown question(s) %s", domain.ErrInvalidAnswer, strings.Join(unknown, ", "))
	}

	for _, q := range Questions {
		sel, ok := answers[q.Key]
		if !ok || sel == "" {
			return fmt.Errorf("%w: question %q is unanswered", domain.ErrInvalidAnswer, q.Key)
		}
		if _, ok := q.Option(sel); !ok {
			return fmt.Errorf("%w: %q is not an option for %q", domain.ErrInvalidAnswer, sel, q.Key)
		}
	}
	return nil
}

// Classify maps a score to its tier. Boundary values belong to the higher tier.
func Classify(score int) domain.RiskLevel {
	switch {
	case score < 7:
		return domain.RiskLow
	case score < 12:
		return domain.RiskSlightlyElevated
	case score < 15:
		return domain.RiskModerate
	case score < 20:
		return domain.RiskHigh
	default:
		return domain.RiskVeryHigh
	}
}
