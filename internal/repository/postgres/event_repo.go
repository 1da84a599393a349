package postgres

import (
	"context"
	"database/sql"
	"errors"

	"seminarbooking/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns an EventRepository backed by the given database
// handle.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

const eventColumns = `id, kind, title, topic_id, registration_required, allow_multiple_registrations,
		waiting_list, max_registrations, min_registrations, offline_registrations,
		start_at, end_at, registration_start, registration_deadline,
		price, early_bird_price, special_price, special_early_bird_price, early_bird_deadline,
		registrations_count, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (kind, title, topic_id, registration_required, allow_multiple_registrations,
			waiting_list, max_registrations, min_registrations, offline_registrations,
			start_at, end_at, registration_start, registration_deadline,
			price, early_bird_price, special_price, special_early_bird_price, early_bird_deadline,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		string(event.Kind), event.Title, nullString(event.TopicID),
		event.RegistrationRequired, event.AllowMultipleRegistrations,
		event.WaitingList, event.MaxRegistrations, event.MinRegistrations, event.OfflineRegistrations,
		nullTime(event.Start), nullTime(event.End),
		nullTime(event.RegistrationStart), nullTime(event.RegistrationDeadline),
		event.Price, nullFloat(event.EarlyBirdPrice), nullFloat(event.SpecialPrice),
		nullFloat(event.SpecialEarlyBirdPrice), nullTime(event.EarlyBirdDeadline),
		event.CreatedAt, event.UpdatedAt).
		Scan(&event.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event := &domain.Event{}
	var (
		kind                string
		topicID             sql.NullString
		startAt, endAt      sql.NullTime
		regStart, regDeadln sql.NullTime
		earlyBird, special  sql.NullFloat64
		specialEarlyBird    sql.NullFloat64
		earlyBirdDeadline   sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &kind, &event.Title, &topicID,
		&event.RegistrationRequired, &event.AllowMultipleRegistrations,
		&event.WaitingList, &event.MaxRegistrations, &event.MinRegistrations, &event.OfflineRegistrations,
		&startAt, &endAt, &regStart, &regDeadln,
		&event.Price, &earlyBird, &special, &specialEarlyBird, &earlyBirdDeadline,
		&event.RegistrationsCount, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	event.Kind = domain.EventKind(kind)
	if topicID.Valid {
		event.TopicID = topicID.String
	}
	event.Start = timePtr(startAt)
	event.End = timePtr(endAt)
	event.RegistrationStart = timePtr(regStart)
	event.RegistrationDeadline = timePtr(regDeadln)
	event.EarlyBirdPrice = floatPtr(earlyBird)
	event.SpecialPrice = floatPtr(special)
	event.SpecialEarlyBirdPrice = floatPtr(specialEarlyBird)
	event.EarlyBirdDeadline = timePtr(earlyBirdDeadline)
	return event, nil
}

func (r *eventRepository) RefreshRegistrationCounter(ctx context.Context, eventID string) error {
	query := `
		UPDATE events
		SET registrations_count = (
			SELECT COUNT(*) FROM registrations WHERE event_id = $1
		), updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, eventID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
