package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/glucoffee/internal/app"
	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/findrisc"
	"github.com/alexanderramin/glucoffee/internal/store"
)

type assessmentService struct {
	records  store.RecordStore
	policy   Policy
	observer UseCaseObserver
}

func NewAssessmentService(records store.RecordStore, policy Policy, observers ...UseCaseObserver) AssessmentService {
	return &assessmentService{
		records:  records,
		policy:   policy,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Submit scores the answers and replaces the stored assessment wholesale.
// Invalid answers never reach the store.
func (s *assessmentService) Submit(ctx context.Context, userKey string, answers findrisc.Answers, now time.Time) (status *app.AssessmentStatus, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user": userKey}
	defer func() { observe(ctx, s.observer, "submit-findrisc", startedAt, fields, err) }()

	result, err := findrisc.Score(answers)
	if err != nil {
		return nil, err
	}
	fields["score"] = result.Score
	fields["risk_level"] = string(result.Level)

	assessment := result.Assessment(now)
	err = s.records.Update(ctx, userKey, func(rec *domain.Record) error {
		if err := requireProfile(rec); err != nil {
			return err
		}
		rec.Assessment = assessment
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("saving assessment: %w", err)
	}

	st := buildAssessmentStatus(assessment, now, s.policy.StaleAfterDays)
	return &st, nil
}

func (s *assessmentService) Status(ctx context.Context, userKey string, now time.Time) (*app.AssessmentStatus, error) {
	rec, err := s.records.Load(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("loading assessment: %w", err)
	}
	st := buildAssessmentStatus(rec.Assessment, now, s.policy.StaleAfterDays)
	return &st, nil
}
