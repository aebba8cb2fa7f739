package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/glucoffee/internal/domain"
)

// ErrNotFound is returned when a user key has no stored row.
var ErrNotFound = errors.New("not found")

type ProfileRepo interface {
	Get(ctx context.Context, userKey string) (domain.UserProfile, error)
	Upsert(ctx context.Context, userKey string, p domain.UserProfile) error
}

type AssessmentRepo interface {
	Get(ctx context.Context, userKey string) (domain.RiskAssessment, error)
	Replace(ctx context.Context, userKey string, a domain.RiskAssessment) error
}

type ConsumptionRepo interface {
	List(ctx context.Context, userKey string) ([]domain.ConsumptionEvent, error)
	ReplaceAll(ctx context.Context, userKey string, events []domain.ConsumptionEvent) error
}
