package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightservices/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// notFound maps pgx.ErrNoRows onto a domain NotFoundError and passes other errors through.
func notFound(err error, resource string, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, ID: id}
	}
	return err
}

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// deleteWithReservations removes a flight or passenger row together with the
// reservations pointing at it. The row is locked first so no reservation can
// reference it between the two deletes.
func deleteWithReservations(ctx context.Context, db DB, resource, table, column string, id int64) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var lockedID int64
	if err := tx.QueryRow(ctx, `SELECT id FROM `+table+` WHERE id=$1 FOR UPDATE`, id).Scan(&lockedID); err != nil {
		return notFound(err, resource, id)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM reservations WHERE `+column+`=$1`, id); err != nil {
		return fmt.Errorf("delete reservations of %s %d: %w", resource, id, err)
	}
	cmd, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE id=$1`, id)
	if err != nil {
		if pgErr, ok := asPgError(err); ok && pgErr.Code == pgForeignKeyViolation {
			return domain.ConflictError{Resource: resource, Msg: fmt.Sprintf("%s %d is still referenced by a reservation", resource, id), Err: err}
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: resource, ID: id}
	}
	return tx.Commit(ctx)
}
