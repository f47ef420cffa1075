package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/flightservices/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationRepository_CreateWithPassenger(t *testing.T) {
	mock := newMock(t)
	repo := NewReservationRepository(mock)

	p := &domain.Passenger{FirstName: "Sarah", LastName: "Connor", MiddleName: "J", Email: "sarah@test.com", Phone: "555-4444"}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM flights WHERE id=\\$1 FOR KEY SHARE").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery("INSERT INTO passengers").
		WithArgs("Sarah", "Connor", "J", "sarah@test.com", "555-4444").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs(int64(1), int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectCommit()

	res, err := repo.CreateWithPassenger(context.Background(), 1, p)
	require.NoError(t, err)
	assert.Equal(t, domain.Reservation{ID: 100, FlightID: 1, PassengerID: 10}, *res)
	assert.Equal(t, int64(10), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_CreateWithPassengerMissingFlight(t *testing.T) {
	mock := newMock(t)
	repo := NewReservationRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM flights WHERE id=\\$1 FOR KEY SHARE").
		WithArgs(int64(9999)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	res, err := repo.CreateWithPassenger(context.Background(), 9999, &domain.Passenger{FirstName: "Sarah"})
	assert.Nil(t, res)
	assert.True(t, domain.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_CreateWithPassengerRollsBackOnReservationFailure(t *testing.T) {
	mock := newMock(t)
	repo := NewReservationRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM flights").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery("INSERT INTO passengers").
		WithArgs("Sarah", "Connor", "", "sarah@example.com", "555").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs(int64(1), int64(10)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	passenger := &domain.Passenger{FirstName: "Sarah", LastName: "Connor", Email: "sarah@example.com", Phone: "555"}
	res, err := repo.CreateWithPassenger(context.Background(), 1, passenger)
	assert.Nil(t, res)
	assert.ErrorContains(t, err, "insert reservation")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_CreateMapsForeignKeyViolation(t *testing.T) {
	mock := newMock(t)
	repo := NewReservationRepository(mock)

	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs(int64(1), int64(55)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "reservations_passenger_id_fkey"})

	err := repo.Create(context.Background(), &domain.Reservation{FlightID: 1, PassengerID: 55})
	var nf domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "passenger", nf.Resource)
	assert.Equal(t, int64(55), nf.ID)
}

func TestReservationRepository_ListAndDelete(t *testing.T) {
	mock := newMock(t)
	repo := NewReservationRepository(mock)
	ctx := context.Background()

	mock.ExpectQuery("SELECT id, flight_id, passenger_id FROM reservations ORDER BY id").
		WillReturnRows(pgxmock.NewRows([]string{"id", "flight_id", "passenger_id"}).
			AddRow(int64(1), int64(1), int64(1)).
			AddRow(int64(2), int64(1), int64(2)))
	mock.ExpectExec("DELETE FROM reservations WHERE id").
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM reservations WHERE id").
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Delete(ctx, 2))
	assert.True(t, domain.IsNotFound(repo.Delete(ctx, 2)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
