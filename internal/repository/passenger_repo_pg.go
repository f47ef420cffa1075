package repository

import (
	"context"

	"github.com/Domenick1991/flightservices/internal/domain"
	"github.com/jackc/pgx/v5"
)

type PassengerRepository interface {
	List(ctx context.Context) ([]domain.Passenger, error)
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	Create(ctx context.Context, passenger *domain.Passenger) error
	Update(ctx context.Context, passenger *domain.Passenger) error
	Delete(ctx context.Context, id int64) error
}

type PGPassengerRepository struct {
	db DB
}

func NewPassengerRepository(db DB) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

const passengerColumns = `id, first_name, last_name, middle_name, email, phone`

func (r *PGPassengerRepository) List(ctx context.Context) ([]domain.Passenger, error) {
	rows, err := r.db.Query(ctx, `SELECT `+passengerColumns+` FROM passengers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		p, err := scanPassenger(rows)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, *p)
	}
	return passengers, rows.Err()
}

func (r *PGPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	p, err := scanPassenger(r.db.QueryRow(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err, "passenger", id)
	}
	return p, nil
}

func (r *PGPassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	return insertPassenger(ctx, r.db, passenger)
}

func (r *PGPassengerRepository) Update(ctx context.Context, passenger *domain.Passenger) error {
	err := r.db.QueryRow(ctx, `UPDATE passengers SET
		first_name=$1, last_name=$2, middle_name=$3, email=$4, phone=$5
		WHERE id=$6
		RETURNING id`,
		passenger.FirstName, passenger.LastName, passenger.MiddleName, passenger.Email, passenger.Phone, passenger.ID).
		Scan(&passenger.ID)
	return notFound(err, "passenger", passenger.ID)
}

// Delete removes the passenger and every reservation held by them in one transaction.
func (r *PGPassengerRepository) Delete(ctx context.Context, id int64) error {
	return deleteWithReservations(ctx, r.db, "passenger", "passengers", "passenger_id", id)
}

// queryRower is satisfied by both the pool and an open transaction.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertPassenger(ctx context.Context, q queryRower, passenger *domain.Passenger) error {
	return q.QueryRow(ctx, `INSERT INTO passengers (first_name, last_name, middle_name, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		passenger.FirstName, passenger.LastName, passenger.MiddleName, passenger.Email, passenger.Phone).
		Scan(&passenger.ID)
}

func scanPassenger(row pgx.Row) (*domain.Passenger, error) {
	var p domain.Passenger
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.MiddleName, &p.Email, &p.Phone); err != nil {
		return nil, err
	}
	return &p, nil
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
