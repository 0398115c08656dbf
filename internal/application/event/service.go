package event

import (
	"context"
	"fmt"
	"time"

	"github.com/weekly-events/api/internal/domain"
)

type Service interface {
	ListUpcoming(ctx context.Context, asOf time.Time) ([]domain.EventWithCount, error)
	Register(ctx context.Context, userID, eventID string) (registrationsCount int, err error)
}

type eventStore interface {
	Get(ctx context.Context, eventID string) (*domain.Event, error)
	ListUpcoming(ctx context.Context, asOf time.Time) ([]domain.Event, error)
}

type registrationStore interface {
	Insert(ctx context.Context, reg *domain.Registration) error
	CountByEvent(ctx context.Context, eventID string) (int, error)
}

type service struct {
	eventRepo        eventStore
	registrationRepo registrationStore
}

func NewService(eventRepo eventStore, registrationRepo registrationStore) Service {
	return &service{eventRepo: eventRepo, registrationRepo: registrationRepo}
}

// ListUpcoming returns events starting at or after asOf, ascending by start
// time, annotated with their registration counts. Counts reflect store state
// at query time; an in-flight Register is not guaranteed to be visible.
func (s *service) ListUpcoming(ctx context.Context, asOf time.Time) ([]domain.EventWithCount, error) {
	events, err := s.eventRepo.ListUpcoming(ctx, asOf)
	if err != nil {
		return nil, err
	}
	out := make([]domain.EventWithCount, 0, len(events))
	for _, e := range events {
		count, err := s.registrationRepo.CountByEvent(ctx, e.EventID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.EventWithCount{Event: e, RegistrationsCount: count})
	}
	return out, nil
}

// Register admits a user to an event. The capacity check and the insert are
// separate store calls, so concurrent registrations can overshoot capacity by
// the number of requests in flight. Duplicates cannot: the conditional insert
// is the authoritative guard for the (user, event) pair. A single
// increment-with-ceiling update on the event item would close the capacity
// race, at the cost of denormalizing a counter the read path recomputes.
func (s *service) Register(ctx context.Context, userID, eventID string) (int, error) {
	e, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return 0, err
	}

	count, err := s.registrationRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if count >= e.Capacity {
		return 0, fmt.Errorf("capacity %d reached: %w", e.Capacity, domain.ErrEventFull)
	}

	reg := &domain.Registration{
		UserID:    userID,
		EventID:   eventID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.registrationRepo.Insert(ctx, reg); err != nil {
		return 0, err
	}

	// Re-read after the insert so the caller sees a count that includes its
	// own write, not a value derived from the pre-check.
	after, err := s.registrationRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return after, nil
}
