package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/store"
)

type profileService struct {
	records  store.RecordStore
	observer UseCaseObserver
}

func NewProfileService(records store.RecordStore, observers ...UseCaseObserver) ProfileService {
	return &profileService{
		records:  records,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Setup creates the profile on first use. An existing profile is returned
// unchanged.
func (s *profileService) Setup(ctx context.Context, userKey, name string, now time.Time) (profile *domain.UserProfile, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user": userKey}
	defer func() { observe(ctx, s.observer, "setup-profile", startedAt, fields, err) }()

	candidate, err := domain.NewUserProfile(name, now)
	if err != nil {
		return nil, err
	}

	var result domain.UserProfile
	err = s.records.Update(ctx, userKey, func(rec *domain.Record) error {
		if rec.Profile.IsSetUp() {
			result = rec.Profile
			fields["existing"] = true
			return nil
		}
		rec.Profile = candidate
		result = candidate
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("setting up profile: %w", err)
	}
	return &result, nil
}

func (s *profileService) Get(ctx context.Context, userKey string) (*domain.UserProfile, error) {
	rec, err := s.records.Load(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return &rec.Profile, nil
}

// Reset discards the whole record: profile, assessment and history.
func (s *profileService) Reset(ctx context.Context, userKey string) (err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "reset", startedAt, map[string]any{"user": userKey}, err) }()

	if err = s.records.Save(ctx, userKey, domain.NewRecord()); err != nil {
		return fmt.Errorf("resetting record: %w", err)
	}
	return nil
}
