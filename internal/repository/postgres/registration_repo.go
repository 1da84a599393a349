package postgres

import (
	"context"
	"database/sql"

	"seminarbooking/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

// NewRegistrationRepository returns a RegistrationRepository backed by the
// given database handle.
func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (event_id, user_id, seats, price_tier, total_price, on_waiting_list, storage_pid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		reg.Event.ID, reg.User.ID, reg.Seats, string(reg.Tier), reg.TotalPrice,
		reg.OnWaitingList, reg.StoragePID, reg.CreatedAt, reg.UpdatedAt).
		Scan(&reg.ID)
	if err != nil {
		return err
	}

	linkQuery := `
		INSERT INTO registration_attendees (registration_id, user_id)
		VALUES ($1, $2)
	`
	for _, attendee := range reg.AdditionalAttendees {
		if _, err := r.DB.ExecContext(ctx, linkQuery, reg.ID, attendee.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *registrationRepository) CountRegularByEvent(ctx context.Context, eventID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM registrations
		WHERE event_id = $1 AND on_waiting_list = false
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *registrationRepository) CountWaitingListByEvent(ctx context.Context, eventID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM registrations
		WHERE event_id = $1 AND on_waiting_list = true
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *registrationRepository) ExistsByEventAndUser(ctx context.Context, eventID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM registrations WHERE event_id = $1 AND user_id = $2
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
