package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightservices/internal/domain"
)

type ReservationRepository interface {
	List(ctx context.Context) ([]domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) error
	Update(ctx context.Context, reservation *domain.Reservation) error
	Delete(ctx context.Context, id int64) error
	// CreateWithPassenger inserts a new passenger and a reservation for them on
	// flightID atomically. A missing flight yields NotFoundError and writes nothing.
	CreateWithPassenger(ctx context.Context, flightID int64, passenger *domain.Passenger) (*domain.Reservation, error)
}

type PGReservationRepository struct {
	db DB
}

func NewReservationRepository(db DB) ReservationRepository {
	return &PGReservationRepository{db: db}
}

func (r *PGReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT id, flight_id, passenger_id FROM reservations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.FlightID, &res.PassengerID); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *PGReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var res domain.Reservation
	err := r.db.QueryRow(ctx, `SELECT id, flight_id, passenger_id FROM reservations WHERE id=$1`, id).
		Scan(&res.ID, &res.FlightID, &res.PassengerID)
	if err != nil {
		return nil, notFound(err, "reservation", id)
	}
	return &res, nil
}

func (r *PGReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	err := insertReservation(ctx, r.db, reservation)
	return referenceError(err, reservation)
}

func (r *PGReservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	err := r.db.QueryRow(ctx, `UPDATE reservations SET flight_id=$1, passenger_id=$2 WHERE id=$3 RETURNING id`,
		reservation.FlightID, reservation.PassengerID, reservation.ID).
		Scan(&reservation.ID)
	if err != nil {
		return referenceError(notFound(err, "reservation", reservation.ID), reservation)
	}
	return nil
}

func (r *PGReservationRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "reservation", ID: id}
	}
	return nil
}

func (r *PGReservationRepository) CreateWithPassenger(ctx context.Context, flightID int64, passenger *domain.Passenger) (*domain.Reservation, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the flight row so a concurrent delete cannot slip in before commit.
	var lockedID int64
	if err := tx.QueryRow(ctx, `SELECT id FROM flights WHERE id=$1 FOR KEY SHARE`, flightID).Scan(&lockedID); err != nil {
		return nil, notFound(err, "flight", flightID)
	}

	if err := insertPassenger(ctx, tx, passenger); err != nil {
		return nil, fmt.Errorf("insert passenger: %w", err)
	}

	reservation := &domain.Reservation{FlightID: lockedID, PassengerID: passenger.ID}
	if err := insertReservation(ctx, tx, reservation); err != nil {
		return nil, fmt.Errorf("insert reservation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return reservation, nil
}

func insertReservation(ctx context.Context, q queryRower, reservation *domain.Reservation) error {
	return q.QueryRow(ctx, `INSERT INTO reservations (flight_id, passenger_id) VALUES ($1, $2) RETURNING id`,
		reservation.FlightID, reservation.PassengerID).
		Scan(&reservation.ID)
}

// referenceError turns a foreign key violation into a NotFoundError naming the
// side that vanished.
func referenceError(err error, reservation *domain.Reservation) error {
	pgErr, ok := asPgError(err)
	if !ok || pgErr.Code != pgForeignKeyViolation {
		return err
	}
	if pgErr.ConstraintName == "reservations_passenger_id_fkey" {
		return domain.NotFoundError{Resource: "passenger", ID: reservation.PassengerID}
	}
	return domain.NotFoundError{Resource: "flight", ID: reservation.FlightID}
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
