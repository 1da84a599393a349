package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"seminarbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "kind", "title", "topic_id", "registration_required", "allow_multiple_registrations",
		"waiting_list", "max_registrations", "min_registrations", "offline_registrations",
		"start_at", "end_at", "registration_start", "registration_deadline",
		"price", "early_bird_price", "special_price", "special_early_bird_price", "early_bird_deadline",
		"registrations_count", "created_at", "updated_at",
	})
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success with nullable fields set", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, kind, title, topic_id`).
			WithArgs("ev-1").
			WillReturnRows(eventRows().AddRow(
				"ev-1", "date", "Go Workshop", "topic-1", true, false,
				true, 10, 2, 5,
				start, nil, nil, deadline,
				100.0, 90.0, nil, nil, deadline,
				3, createdAt, createdAt,
			))

		repo := NewEventRepository(db)
		event, err := repo.GetByID(ctx, "ev-1")
		require.NoError(t, err)
		require.Equal(t, "ev-1", event.ID)
		require.Equal(t, domain.KindEventDate, event.Kind)
		require.Equal(t, "topic-1", event.TopicID)
		require.Equal(t, 10, event.MaxRegistrations)
		require.Equal(t, 5, event.OfflineRegistrations)
		require.NotNil(t, event.Start)
		require.Equal(t, start, *event.Start)
		require.Nil(t, event.End)
		require.Nil(t, event.RegistrationStart)
		require.NotNil(t, event.RegistrationDeadline)
		require.Equal(t, 100.0, event.Price)
		require.NotNil(t, event.EarlyBirdPrice)
		require.Equal(t, 90.0, *event.EarlyBirdPrice)
		require.Nil(t, event.SpecialPrice)
		require.Equal(t, 3, event.RegistrationsCount)
		require.Nil(t, event.Stats)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, kind, title, topic_id`).
			WithArgs("ev-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.GetByID(ctx, "ev-missing")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestEventRepository_RefreshRegistrationCounter(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE events`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(db)
		require.NoError(t, repo.RefreshRegistrationCounter(ctx, "ev-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown event", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE events`).
			WithArgs("ev-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(db)
		err = repo.RefreshRegistrationCounter(ctx, "ev-missing")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO events`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-1"))

	repo := NewEventRepository(db)
	event := &domain.Event{
		Kind:                 domain.KindSingleEvent,
		Title:                "Go Workshop",
		RegistrationRequired: true,
		MaxRegistrations:     10,
		Price:                100,
		CreatedAt:            createdAt,
		UpdatedAt:            createdAt,
	}
	require.NoError(t, repo.Create(ctx, event))
	require.Equal(t, "ev-1", event.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
