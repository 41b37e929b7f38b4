package postgres

import (
	"context"
	"database/sql"
	"testing"

	"eventcatalog/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

const testEventID = "11111111-1111-1111-1111-111111111111"

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO bookings \(id, event_id, email, created_at, updated_at\)`).
					WithArgs("b-1", testEventID, "ada@example.com", testNow, testNow).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "duplicate pair",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO bookings`).
					WillReturnError(&pq.Error{Code: codeUniqueViolation, Constraint: constraintBookingEventEmail})
			},
			wantErr: domain.ErrDuplicateBooking,
		},
		{
			name: "event missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO bookings`).
					WillReturnError(&pq.Error{Code: codeForeignKeyViolation, Constraint: constraintBookingEventFK})
			},
			wantErr: domain.ErrReferenceNotFound,
		},
		{
			name: "malformed event id",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO bookings`).
					WillReturnError(&pq.Error{Code: codeInvalidText})
			},
			wantErr: domain.ErrReferenceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			b := domain.NewBooking(testEventID, "ada@example.com", testNow, testNow)
			b.ID = "b-1"
			err = NewBookingRepository(db).Create(ctx, b)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_GetByEventAndEmail(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "event_id", "email", "created_at", "updated_at"}

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, email, created_at, updated_at FROM bookings WHERE event_id = \$1 AND email = \$2`).
			WithArgs(testEventID, "ada@example.com").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("b-1", testEventID, "ada@example.com", testNow, testNow))

		b, err := NewBookingRepository(db).GetByEventAndEmail(ctx, testEventID, "ada@example.com")
		require.NoError(t, err)
		require.Equal(t, "b-1", b.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM bookings WHERE event_id`).WillReturnError(sql.ErrNoRows)

		_, err = NewBookingRepository(db).GetByEventAndEmail(ctx, testEventID, "ada@example.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "event_id", "email", "created_at", "updated_at"}

	t.Run("rows", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM bookings WHERE event_id = \$1 ORDER BY created_at DESC`).
			WithArgs(testEventID).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("b-2", testEventID, "bo@example.com", testNow, testNow).
				AddRow("b-1", testEventID, "ada@example.com", testNow, testNow))

		got, err := NewBookingRepository(db).ListByEventID(ctx, testEventID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "bo@example.com", got[0].Email)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM bookings`).WillReturnRows(sqlmock.NewRows(cols))

		got, err := NewBookingRepository(db).ListByEventID(ctx, testEventID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})
}
