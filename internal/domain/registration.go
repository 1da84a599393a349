package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for the registration pipeline. All of them signal a broken
// precondition in the calling code and are never recovered internally.
var (
	ErrNoUserInSession      = errors.New("no user in session")
	ErrUserNotFound         = errors.New("user not found")
	ErrNoEvent              = errors.New("registration has no event")
	ErrNotPersisted         = errors.New("registration is not persisted")
	ErrPriceTierUnavailable = errors.New("price tier not available for this event")
	// ErrMissingStatistics indicates statistics were still unset after an
	// enrichment attempt. This is an internal invariant violation, not a
	// condition callers are expected to handle.
	ErrMissingStatistics = errors.New("statistics missing after enrichment")
)

// AttendeeInput is one entry of the free-form additional-attendee payload a
// registrant submits alongside their own registration. Name is mandatory,
// email optional; entries of any other shape are dropped on parse.
type AttendeeInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Registration is the aggregate built up by the registration service across
// its processing steps and persisted as a whole.
// swagger:model Registration
type Registration struct {
	ID            string    `json:"id"`
	Event         *Event    `json:"event,omitempty"`
	User          *User     `json:"user,omitempty"`
	Seats         int       `json:"seats"`
	Tier          PriceTier `json:"price_tier"`
	TotalPrice    float64   `json:"total_price"`
	OnWaitingList bool      `json:"on_waiting_list"`
	StoragePID    int64     `json:"storage_pid"`

	// AttendeesPayload is the raw JSON list of name/email pairs as submitted.
	// It is parsed leniently; malformed payloads degrade to zero attendees.
	AttendeesPayload string `json:"attendees_payload,omitempty"`

	// AdditionalAttendees holds the user records materialized from
	// AttendeesPayload. They are persisted together with the registration.
	AdditionalAttendees []*User `json:"additional_attendees,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRegistration returns a Registration for the given seat count and price
// tier. Event, user, and placement are attached by the registration service.
func NewRegistration(seats int, tier PriceTier) *Registration {
	return &Registration{Seats: seats, Tier: tier}
}

// RegistrationRepository defines storage operations for registrations,
// including the live seat counts the statistics calculator is built on.
type RegistrationRepository interface {
	// Create inserts the registration and its additional-attendee links and
	// assigns the generated ID to reg.
	Create(ctx context.Context, reg *Registration) error
	CountRegularByEvent(ctx context.Context, eventID string) (int, error)
	CountWaitingListByEvent(ctx context.Context, eventID string) (int, error)
	ExistsByEventAndUser(ctx context.Context, eventID, userID string) (bool, error)
}

// StatisticsCalculator lazily attaches seat statistics to events.
type StatisticsCalculator interface {
	// EnrichWithStatistics computes and caches event.Stats. Calling it again
	// on the same instance is a no-op; topics are skipped entirely.
	EnrichWithStatistics(ctx context.Context, event *Event) error
}

// RegistrationGuard exposes the independent eligibility predicates callers
// compose; there is deliberately no single "can register" decision hiding
// the individual answers.
type RegistrationGuard interface {
	// AssertBookableKind fails with ErrInvalidEventKind unless the event is a
	// single event or an event date.
	AssertBookableKind(event *Event) error
	// IsRegistrationPossibleAtAnyTime answers whether the event could ever be
	// booked, independent of the current date.
	IsRegistrationPossibleAtAnyTime(event *Event) bool
	// IsRegistrationPossibleByDate answers whether the registration window is
	// open right now.
	IsRegistrationPossibleByDate(event *Event) bool
	// MarkRegistrationOpen bulk-applies the date predicate over events,
	// caching each result on Event.RegistrationOpen.
	MarkRegistrationOpen(events []*Event)
	// IsFreeFromConflicts reports whether the user may register given any
	// existing registration of theirs for the event.
	IsFreeFromConflicts(ctx context.Context, event *Event, userID string) (bool, error)
	// UserIDFromSession resolves the acting identity. An authenticated
	// session wins over a one-time account.
	UserIDFromSession(ctx context.Context) (string, bool)
	// Vacancies returns the remaining regular seats. limited is false when
	// the event has no ceiling. Topics fail with ErrInvalidEventKind.
	Vacancies(ctx context.Context, event *Event) (vacancies int, limited bool, err error)
}

// RegistrationService builds one registration through five steps, callable
// independently and in order.
type RegistrationService interface {
	EnrichWithMetadata(ctx context.Context, reg *Registration, event *Event) error
	CalculateTotalPrice(reg *Registration) error
	CreateAdditionalAttendees(reg *Registration, storagePID int64)
	Persist(ctx context.Context, reg *Registration) error
	SendEmails(ctx context.Context, reg *Registration) error
}
