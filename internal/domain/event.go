package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidEventKind is returned when a non-bookable event kind (a topic)
// is passed to an operation that only accepts bookable events.
var ErrInvalidEventKind = errors.New("event kind is not bookable")

// EventKind distinguishes the event variants. The set is closed: code that
// branches on it switches over all three constants.
type EventKind string

const (
	// KindTopic is a template definition. Topics are never directly bookable;
	// bookable instances are single events or event dates.
	KindTopic EventKind = "topic"
	// KindSingleEvent is a standalone bookable event.
	KindSingleEvent EventKind = "single"
	// KindEventDate is a dated bookable instance derived from a topic.
	KindEventDate EventKind = "date"
)

// Event represents a seminar occurrence (or a topic template).
// swagger:model Event
type Event struct {
	ID      string    `json:"id"`
	Kind    EventKind `json:"kind"`
	Title   string    `json:"title"`
	TopicID string    `json:"topic_id,omitempty"` // set on event dates only

	RegistrationRequired       bool `json:"registration_required"`
	AllowMultipleRegistrations bool `json:"allow_multiple_registrations"`
	WaitingList                bool `json:"waiting_list"`
	MaxRegistrations           int  `json:"max_registrations"` // 0 = unlimited
	MinRegistrations           int  `json:"min_registrations"`
	OfflineRegistrations       int  `json:"offline_registrations"`

	Start                *time.Time `json:"start,omitempty"`
	End                  *time.Time `json:"end,omitempty"`
	RegistrationStart    *time.Time `json:"registration_start,omitempty"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`

	// Price is the standard price; zero means the event is free. The other
	// tiers are optional and tracked by presence, so a configured 0.0 stays
	// distinguishable from "not configured".
	Price                 float64    `json:"price"`
	EarlyBirdPrice        *float64   `json:"early_bird_price,omitempty"`
	SpecialPrice          *float64   `json:"special_price,omitempty"`
	SpecialEarlyBirdPrice *float64   `json:"special_early_bird_price,omitempty"`
	EarlyBirdDeadline     *time.Time `json:"early_bird_deadline,omitempty"`

	// RegistrationsCount is the denormalized counter maintained by the event
	// repository, refreshed after every persisted registration. It is a
	// separate cache from Stats.
	RegistrationsCount int `json:"registrations_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Stats is the lazily computed seat statistics snapshot. It lives only as
	// long as this in-memory Event and must not be reused across requests.
	Stats *Statistics `json:"-"`

	// RegistrationOpen caches the by-date eligibility result when the date
	// predicate is bulk-applied over a collection of events. Request-scoped
	// like Stats.
	RegistrationOpen *bool `json:"-"`
}

// IsBookableKind reports whether this event variant can be registered for at
// all. Topics are templates and never bookable.
func (e *Event) IsBookableKind() bool {
	switch e.Kind {
	case KindSingleEvent, KindEventDate:
		return true
	case KindTopic:
		return false
	}
	return false
}

// EventRepository defines storage operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// RefreshRegistrationCounter recomputes the denormalized
	// registrations_count column for the event from the registrations table.
	RefreshRegistrationCounter(ctx context.Context, eventID string) error
}
