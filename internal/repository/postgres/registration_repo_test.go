package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"seminarbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRegistrationRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		reg     *domain.Registration
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success without attendees",
			reg: &domain.Registration{
				Event:      &domain.Event{ID: "ev-1"},
				User:       &domain.User{ID: "u-1"},
				Seats:      2,
				Tier:       domain.TierStandard,
				TotalPrice: 200,
				StoragePID: 17,
				CreatedAt:  createdAt,
				UpdatedAt:  createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO registrations`).
					WithArgs("ev-1", "u-1", 2, "standard", 200.0, false, int64(17), createdAt, createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("reg-1"))
			},
			wantID: "reg-1",
		},
		{
			name: "success links additional attendees",
			reg: &domain.Registration{
				Event:               &domain.Event{ID: "ev-1"},
				User:                &domain.User{ID: "u-1"},
				Seats:               1,
				Tier:                domain.TierEarlyBird,
				TotalPrice:          90,
				OnWaitingList:       true,
				CreatedAt:           createdAt,
				UpdatedAt:           createdAt,
				AdditionalAttendees: []*domain.User{{ID: "att-1"}, {ID: "att-2"}},
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO registrations`).
					WithArgs("ev-1", "u-1", 1, "early_bird", 90.0, true, int64(0), createdAt, createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("reg-2"))
				mock.ExpectExec(`INSERT INTO registration_attendees`).
					WithArgs("reg-2", "att-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO registration_attendees`).
					WithArgs("reg-2", "att-2").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantID: "reg-2",
		},
		{
			name: "db error",
			reg: &domain.Registration{
				Event:     &domain.Event{ID: "ev-1"},
				User:      &domain.User{ID: "u-1"},
				Seats:     1,
				Tier:      domain.TierStandard,
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO registrations`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRegistrationRepository(db)
			err = repo.Create(ctx, tt.reg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.reg.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_Counts(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := NewRegistrationRepository(db)

	regular, err := repo.CountRegularByEvent(ctx, "ev-1")
	require.NoError(t, err)
	require.Equal(t, 7, regular)

	waiting, err := repo.CountWaitingListByEvent(ctx, "ev-1")
	require.NoError(t, err)
	require.Equal(t, 3, waiting)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_ExistsByEventAndUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		rows *sqlmock.Rows
		want bool
	}{
		{name: "exists", rows: sqlmock.NewRows([]string{"exists"}).AddRow(true), want: true},
		{name: "does not exist", rows: sqlmock.NewRows([]string{"exists"}).AddRow(false), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs("ev-1", "u-1").
				WillReturnRows(tt.rows)

			repo := NewRegistrationRepository(db)
			got, err := repo.ExistsByEventAndUser(ctx, "ev-1", "u-1")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
