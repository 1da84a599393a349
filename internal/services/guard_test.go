package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"seminarbooking/internal/domain"
)

type mockSessionResolver struct {
	authenticated string
	oneTime       string
}

func (m *mockSessionResolver) AuthenticatedUserID(ctx context.Context) (string, bool) {
	return m.authenticated, m.authenticated != ""
}

func (m *mockSessionResolver) OneTimeAccountUserID(ctx context.Context) (string, bool) {
	return m.oneTime, m.oneTime != ""
}

func fixedClock(t time.Time) domain.Clock {
	return func() time.Time { return t }
}

func newTestGuard(repo *mockRegistrationRepo, sessions domain.SessionResolver, now time.Time) domain.RegistrationGuard {
	return NewRegistrationGuard(repo, NewStatisticsService(repo), sessions, fixedClock(now))
}

func TestRegistrationGuard_AssertBookableKind(t *testing.T) {
	guard := newTestGuard(&mockRegistrationRepo{}, &mockSessionResolver{}, time.Now())

	if err := guard.AssertBookableKind(&domain.Event{ID: "e1", Kind: domain.KindSingleEvent}); err != nil {
		t.Errorf("single event: unexpected error %v", err)
	}
	if err := guard.AssertBookableKind(&domain.Event{ID: "e2", Kind: domain.KindEventDate}); err != nil {
		t.Errorf("event date: unexpected error %v", err)
	}
	if err := guard.AssertBookableKind(&domain.Event{ID: "e3", Kind: domain.KindTopic}); !errors.Is(err, domain.ErrInvalidEventKind) {
		t.Errorf("topic: expected ErrInvalidEventKind, got %v", err)
	}
}

func TestRegistrationGuard_IsRegistrationPossibleAtAnyTime(t *testing.T) {
	guard := newTestGuard(&mockRegistrationRepo{}, &mockSessionResolver{}, time.Now())

	tests := []struct {
		name  string
		event *domain.Event
		want  bool
	}{
		{"topic never", &domain.Event{Kind: domain.KindTopic, RegistrationRequired: true}, false},
		{"registration disabled", &domain.Event{Kind: domain.KindSingleEvent, RegistrationRequired: false}, false},
		{"single event enabled", &domain.Event{Kind: domain.KindSingleEvent, RegistrationRequired: true}, true},
		{"date without topic is invalid", &domain.Event{Kind: domain.KindEventDate, RegistrationRequired: true}, false},
		{"date with topic", &domain.Event{Kind: domain.KindEventDate, TopicID: "t1", RegistrationRequired: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := guard.IsRegistrationPossibleAtAnyTime(tt.event); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRegistrationGuard_IsRegistrationPossibleByDate(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	guard := newTestGuard(&mockRegistrationRepo{}, &mockSessionResolver{}, now)

	tests := []struct {
		name  string
		event *domain.Event
		want  bool
	}{
		{"no dates at all means never bookable", &domain.Event{}, false},
		{"future start only", &domain.Event{Start: &future}, true},
		{"start already passed", &domain.Event{Start: &past}, false},
		{"start exactly now", &domain.Event{Start: &now}, false},
		{"registration not yet open", &domain.Event{Start: &future, RegistrationStart: &future}, false},
		{"registration start passed", &domain.Event{Start: &future, RegistrationStart: &past}, true},
		{"registration start exactly now", &domain.Event{Start: &future, RegistrationStart: &now}, true},
		{"deadline still open", &domain.Event{Start: &future, RegistrationDeadline: &future}, true},
		{"deadline passed", &domain.Event{Start: &future, RegistrationDeadline: &past}, false},
		{"deadline exactly now", &domain.Event{Start: &future, RegistrationDeadline: &now}, false},
		{"deadline open but event started", &domain.Event{Start: &past, RegistrationDeadline: &future}, false},
		{"deadline only", &domain.Event{RegistrationDeadline: &future}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := guard.IsRegistrationPossibleByDate(tt.event); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRegistrationGuard_MarkRegistrationOpen(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	guard := newTestGuard(&mockRegistrationRepo{}, &mockSessionResolver{}, now)

	open := &domain.Event{ID: "e1", Start: &future}
	closed := &domain.Event{ID: "e2", Start: &past}
	guard.MarkRegistrationOpen([]*domain.Event{open, closed})

	if open.RegistrationOpen == nil || !*open.RegistrationOpen {
		t.Error("expected e1 marked open")
	}
	if closed.RegistrationOpen == nil || *closed.RegistrationOpen {
		t.Error("expected e2 marked closed")
	}
}

func TestRegistrationGuard_IsFreeFromConflicts(t *testing.T) {
	repo := &mockRegistrationRepo{existing: map[string]bool{"e1:u1": true}}
	guard := newTestGuard(repo, &mockSessionResolver{}, time.Now())
	ctx := context.Background()

	free, err := guard.IsFreeFromConflicts(ctx, &domain.Event{ID: "e1", Kind: domain.KindSingleEvent}, "u1")
	if err != nil || free {
		t.Errorf("existing registration: expected (false, nil), got (%v, %v)", free, err)
	}
	free, err = guard.IsFreeFromConflicts(ctx, &domain.Event{ID: "e1", Kind: domain.KindSingleEvent}, "u2")
	if err != nil || !free {
		t.Errorf("no registration: expected (true, nil), got (%v, %v)", free, err)
	}
	free, err = guard.IsFreeFromConflicts(ctx, &domain.Event{ID: "e1", Kind: domain.KindSingleEvent, AllowMultipleRegistrations: true}, "u1")
	if err != nil || !free {
		t.Errorf("multiple allowed: expected (true, nil), got (%v, %v)", free, err)
	}
}

func TestRegistrationGuard_UserIDFromSession(t *testing.T) {
	tests := []struct {
		name     string
		sessions *mockSessionResolver
		want     string
		wantOK   bool
	}{
		{"authenticated wins over one-time", &mockSessionResolver{authenticated: "u1", oneTime: "g1"}, "u1", true},
		{"one-time fallback", &mockSessionResolver{oneTime: "g1"}, "g1", true},
		{"no identity", &mockSessionResolver{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := newTestGuard(&mockRegistrationRepo{}, tt.sessions, time.Now())
			got, ok := guard.UserIDFromSession(context.Background())
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}

func TestRegistrationGuard_Vacancies(t *testing.T) {
	ctx := context.Background()

	t.Run("topic fails", func(t *testing.T) {
		guard := newTestGuard(&mockRegistrationRepo{}, &mockSessionResolver{}, time.Now())
		_, _, err := guard.Vacancies(ctx, &domain.Event{ID: "e1", Kind: domain.KindTopic})
		if !errors.Is(err, domain.ErrInvalidEventKind) {
			t.Fatalf("expected ErrInvalidEventKind, got %v", err)
		}
	})

	t.Run("unbounded without limit or offline registrations", func(t *testing.T) {
		repo := &mockRegistrationRepo{}
		guard := newTestGuard(repo, &mockSessionResolver{}, time.Now())
		event := &domain.Event{ID: "e1", Kind: domain.KindSingleEvent}
		vacancies, limited, err := guard.Vacancies(ctx, event)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if limited {
			t.Errorf("expected unbounded, got %d", vacancies)
		}
		if repo.regularCalls != 0 {
			t.Error("expected no repository call for an unbounded event")
		}
	})

	t.Run("limit 10 offline 5 leaves 5", func(t *testing.T) {
		repo := &mockRegistrationRepo{regularByEvent: map[string]int{}, waitingByEvent: map[string]int{}}
		guard := newTestGuard(repo, &mockSessionResolver{}, time.Now())
		event := &domain.Event{ID: "e1", Kind: domain.KindSingleEvent, MaxRegistrations: 10, OfflineRegistrations: 5}
		vacancies, limited, err := guard.Vacancies(ctx, event)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !limited || vacancies != 5 {
			t.Errorf("expected (5, true), got (%d, %v)", vacancies, limited)
		}
	})

	t.Run("repeated calls reuse cached statistics", func(t *testing.T) {
		repo := &mockRegistrationRepo{regularByEvent: map[string]int{"e1": 3}, waitingByEvent: map[string]int{}}
		guard := newTestGuard(repo, &mockSessionResolver{}, time.Now())
		event := &domain.Event{ID: "e1", Kind: domain.KindSingleEvent, MaxRegistrations: 10}
		if _, _, err := guard.Vacancies(ctx, event); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, _, err := guard.Vacancies(ctx, event); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.regularCalls != 1 {
			t.Errorf("expected one count query, got %d", repo.regularCalls)
		}
	})

	t.Run("full event reports zero", func(t *testing.T) {
		repo := &mockRegistrationRepo{regularByEvent: map[string]int{"e1": 10}, waitingByEvent: map[string]int{}}
		guard := newTestGuard(repo, &mockSessionResolver{}, time.Now())
		event := &domain.Event{ID: "e1", Kind: domain.KindSingleEvent, MaxRegistrations: 10}
		vacancies, limited, err := guard.Vacancies(ctx, event)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !limited || vacancies != 0 {
			t.Errorf("expected (0, true), got (%d, %v)", vacancies, limited)
		}
	})
}
