package app

import (
	"context"
	"time"

	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/findrisc"
	"github.com/alexanderramin/glucoffee/internal/sugar"
)

type ProfileUseCase interface {
	Setup(ctx context.Context, userKey, name string, now time.Time) (*domain.UserProfile, error)
	Get(ctx context.Context, userKey string) (*domain.UserProfile, error)
	Reset(ctx context.Context, userKey string) error
}

type AssessmentUseCase interface {
	Submit(ctx context.Context, userKey string, answers findrisc.Answers, now time.Time) (*AssessmentStatus, error)
	Status(ctx context.Context, userKey string, now time.Time) (*AssessmentStatus, error)
}

type ConsumptionUseCase interface {
	Log(ctx context.Context, userKey string, order sugar.Order, now time.Time) (*LogResult, error)
	Today(ctx context.Context, userKey string, now time.Time) (*TodayView, error)
}

type AnalysisUseCase interface {
	Analyze(ctx context.Context, userKey string, req AnalysisRequest) (*AnalysisResponse, error)
}
