package repository

import (
	"context"
	"fmt"
)

// Reservations reference flights and passengers without ON DELETE CASCADE;
// the repositories remove dependents inside the deleting transaction.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS flights (
		id BIGSERIAL PRIMARY KEY,
		flight_number VARCHAR(20) NOT NULL,
		operating_airlines TEXT NOT NULL,
		departure_city TEXT NOT NULL,
		arrival_city TEXT NOT NULL,
		date_of_departure DATE NOT NULL,
		estimated_time_of_departure TIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS flights_route_idx ON flights (departure_city, arrival_city, date_of_departure)`,
	`CREATE TABLE IF NOT EXISTS passengers (
		id BIGSERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		middle_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		phone TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGSERIAL PRIMARY KEY,
		flight_id BIGINT NOT NULL REFERENCES flights (id),
		passenger_id BIGINT NOT NULL REFERENCES passengers (id)
	)`,
	`CREATE INDEX IF NOT EXISTS reservations_flight_idx ON reservations (flight_id)`,
	`CREATE INDEX IF NOT EXISTS reservations_passenger_idx ON reservations (passenger_id)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(150) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS auth_tokens (
		key VARCHAR(40) PRIMARY KEY,
		user_id BIGINT NOT NULL UNIQUE REFERENCES users (id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
