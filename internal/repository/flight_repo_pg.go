package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightservices/internal/domain"
	"github.com/jackc/pgx/v5"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Find(ctx context.Context, q domain.FlightQuery) ([]domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db DB
}

func NewFlightRepository(db DB) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, operating_airlines, departure_city, arrival_city, date_of_departure, estimated_time_of_departure::text`

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	f, err := scanFlight(row)
	if err != nil {
		return nil, notFound(err, "flight", id)
	}
	return f, nil
}

func (r *PGFlightRepository) Find(ctx context.Context, q domain.FlightQuery) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE departure_city=$1 AND arrival_city=$2 AND date_of_departure=$3::date
		ORDER BY id`, q.DepartureCity, q.ArrivalCity, q.DateOfDeparture.Time())
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights
		(flight_number, operating_airlines, departure_city, arrival_city, date_of_departure, estimated_time_of_departure)
		VALUES ($1, $2, $3, $4, $5::date, $6::time)
		RETURNING id`,
		flight.FlightNumber, flight.OperatingAirlines, flight.DepartureCity, flight.ArrivalCity,
		flight.DateOfDeparture.Time(), flight.EstimatedTimeOfDeparture.String()).
		Scan(&flight.ID)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `UPDATE flights SET
		flight_number=$1, operating_airlines=$2, departure_city=$3, arrival_city=$4,
		date_of_departure=$5::date, estimated_time_of_departure=$6::time
		WHERE id=$7
		RETURNING id`,
		flight.FlightNumber, flight.OperatingAirlines, flight.DepartureCity, flight.ArrivalCity,
		flight.DateOfDeparture.Time(), flight.EstimatedTimeOfDeparture.String(), flight.ID).
		Scan(&flight.ID)
	return notFound(err, "flight", flight.ID)
}

// Delete removes the flight and every reservation on it in one transaction.
func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	return deleteWithReservations(ctx, r.db, "flight", "flights", "flight_id", id)
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var (
		f          domain.Flight
		departure  time.Time
		clockValue string
	)
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.OperatingAirlines, &f.DepartureCity, &f.ArrivalCity, &departure, &clockValue); err != nil {
		return nil, err
	}
	clock, err := domain.ParseTimeOfDay(clockValue)
	if err != nil {
		return nil, fmt.Errorf("flight %d: %w", f.ID, err)
	}
	f.DateOfDeparture = domain.DateOf(departure)
	f.EstimatedTimeOfDeparture = clock
	return &f, nil
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
