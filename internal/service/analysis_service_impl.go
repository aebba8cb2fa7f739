package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/glucoffee/internal/advice"
	"github.com/alexanderramin/glucoffee/internal/app"
	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/ledger"
	"github.com/alexanderramin/glucoffee/internal/logger"
	"github.com/alexanderramin/glucoffee/internal/store"
)

const nothingToSummarizeGuidance = "Take the FINDRISC test or log a coffee first, then come back for a personal analysis."

type analysisService struct {
	records  store.RecordStore
	advisor  advice.Service
	offline  advice.Service
	policy   Policy
	log      *logger.Logger
	observer UseCaseObserver
}

// NewAnalysisService wires the analysis use case. advisor may wrap a nil
// generator; requests with UseGenerator=false always get deterministic advice.
func NewAnalysisService(
	records store.RecordStore,
	advisor advice.Service,
	policy Policy,
	log *logger.Logger,
	observers ...UseCaseObserver,
) AnalysisService {
	if advisor == nil {
		advisor = advice.NewService(nil)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &analysisService{
		records:  records,
		advisor:  advisor,
		offline:  advice.NewService(nil),
		policy:   policy,
		log:      log,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *analysisService) Analyze(ctx context.Context, userKey string, req app.AnalysisRequest) (resp *app.AnalysisResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user": userKey, "period": string(req.Period)}
	defer func() { observe(ctx, s.observer, "analyze", startedAt, fields, err) }()

	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}
	if req.Period == "" {
		req.Period = ledger.Last7Days
	}
	if req.Sort == "" {
		req.Sort = ledger.Newest
	}

	rec, err := s.records.Load(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("loading record: %w", err)
	}
	if err = requireProfile(rec); err != nil {
		return nil, err
	}

	limits := s.policy.Limits
	agg := ledger.Summarize(rec.Events, now, s.policy.WindowDays, limits)
	entries := ledger.History(rec.Events, now, req.Period, req.Sort)

	resp = &app.AnalysisResponse{
		Profile:    rec.Profile,
		Assessment: buildAssessmentStatus(rec.Assessment, now, s.policy.StaleAfterDays),
		Aggregates: agg,
		Period:     req.Period,
		Stats:      ledger.ComputeStats(rec.Events, now, req.Period, limits),
		Days:       ledger.GroupByDay(entries, req.Sort, limits),
	}

	if agg.Skipped > 0 {
		s.log.Warn("skipped malformed consumption events", "user", userKey, "count", agg.Skipped)
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("%d malformed history entries were skipped.", agg.Skipped))
	}
	if resp.Assessment.State == domain.AssessmentStale {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf(
			"Your FINDRISC result is %d days old; consider retaking the test.", resp.Assessment.DaysSince))
	}

	summary, err := advice.Summarize(rec.Profile, &rec.Assessment, &agg)
	if errors.Is(err, domain.ErrNothingToSummarize) {
		resp.Guidance = nothingToSummarizeGuidance
		fields["summarized"] = false
		return resp, nil
	}
	if err != nil {
		return nil, err
	}
	resp.Summary = &summary

	advisor := s.offline
	if req.UseGenerator {
		advisor = s.advisor
	}
	recommendation := advisor.Recommend(ctx, summary)
	resp.Recommendation = &recommendation
	fields["source"] = string(recommendation.Source)
	if recommendation.Warning != "" {
		resp.Warnings = append(resp.Warnings, recommendation.Warning)
	}
	return resp, nil
}
