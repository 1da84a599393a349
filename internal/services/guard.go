package services

import (
	"context"
	"fmt"
	"time"

	"seminarbooking/internal/domain"
)

type registrationGuard struct {
	registrationRepo domain.RegistrationRepository
	statistics       domain.StatisticsCalculator
	sessions         domain.SessionResolver
	now              domain.Clock
}

// NewRegistrationGuard creates a RegistrationGuard. A nil clock defaults to
// time.Now.
func NewRegistrationGuard(
	registrationRepo domain.RegistrationRepository,
	statistics domain.StatisticsCalculator,
	sessions domain.SessionResolver,
	now domain.Clock,
) domain.RegistrationGuard {
	if now == nil {
		now = time.Now
	}
	return &registrationGuard{
		registrationRepo: registrationRepo,
		statistics:       statistics,
		sessions:         sessions,
		now:              now,
	}
}

func (g *registrationGuard) AssertBookableKind(event *domain.Event) error {
	switch event.Kind {
	case domain.KindSingleEvent, domain.KindEventDate:
		return nil
	case domain.KindTopic:
		return fmt.Errorf("%w: topic %s", domain.ErrInvalidEventKind, event.ID)
	}
	return fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidEventKind, event.Kind)
}

// IsRegistrationPossibleAtAnyTime answers "could this event ever be booked",
// independent of the current date: registration must be enabled, topics are
// out, and an event date without its topic is structurally invalid.
func (g *registrationGuard) IsRegistrationPossibleAtAnyTime(event *domain.Event) bool {
	switch event.Kind {
	case domain.KindTopic:
		return false
	case domain.KindEventDate:
		if event.TopicID == "" {
			return false
		}
	case domain.KindSingleEvent:
	}
	return event.RegistrationRequired
}

// IsRegistrationPossibleByDate answers whether the registration window is
// open right now: the event must not have started yet, the registration
// start (if any) must have passed, and the deadline (if any) must still be in
// the future. An event with no dates configured at all is never bookable.
func (g *registrationGuard) IsRegistrationPossibleByDate(event *domain.Event) bool {
	if event.Start == nil && event.RegistrationStart == nil && event.RegistrationDeadline == nil {
		return false
	}
	now := g.now()
	if event.Start != nil && !event.Start.After(now) {
		return false
	}
	if event.RegistrationStart != nil && event.RegistrationStart.After(now) {
		return false
	}
	if event.RegistrationDeadline != nil && !event.RegistrationDeadline.After(now) {
		return false
	}
	return true
}

// MarkRegistrationOpen applies the date predicate to each event and caches
// the result on it, so list views can gray out closed events without
// recomputing per render.
func (g *registrationGuard) MarkRegistrationOpen(events []*domain.Event) {
	for _, event := range events {
		open := g.IsRegistrationPossibleByDate(event)
		event.RegistrationOpen = &open
	}
}

func (g *registrationGuard) IsFreeFromConflicts(ctx context.Context, event *domain.Event, userID string) (bool, error) {
	if event.AllowMultipleRegistrations {
		return true, nil
	}
	exists, err := g.registrationRepo.ExistsByEventAndUser(ctx, event.ID, userID)
	if err != nil {
		return false, fmt.Errorf("check existing registration: %w", err)
	}
	return !exists, nil
}

func (g *registrationGuard) UserIDFromSession(ctx context.Context) (string, bool) {
	if userID, ok := g.sessions.AuthenticatedUserID(ctx); ok {
		return userID, true
	}
	return g.sessions.OneTimeAccountUserID(ctx)
}

// Vacancies returns the remaining regular seats for a bookable event,
// enriching statistics on first use. An event with no limit and no offline
// registrations is unbounded without touching the repository.
func (g *registrationGuard) Vacancies(ctx context.Context, event *domain.Event) (int, bool, error) {
	if err := g.AssertBookableKind(event); err != nil {
		return 0, false, err
	}
	if event.MaxRegistrations == 0 && event.OfflineRegistrations == 0 {
		return 0, false, nil
	}
	if event.Stats == nil {
		if err := g.statistics.EnrichWithStatistics(ctx, event); err != nil {
			return 0, false, fmt.Errorf("enrich statistics: %w", err)
		}
	}
	if event.Stats == nil {
		return 0, false, fmt.Errorf("%w: event %s", domain.ErrMissingStatistics, event.ID)
	}
	vacancies, limited := event.Stats.Vacancies()
	return vacancies, limited, nil
}
