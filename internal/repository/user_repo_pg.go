package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightservices/internal/domain"
)

type UserRepository interface {
	// CreateWithToken inserts the user and its API token in one transaction.
	CreateWithToken(ctx context.Context, user *domain.User, tokenKey string) (*domain.Token, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByToken(ctx context.Context, key string) (*domain.User, error)
	// TokenFor returns the user's token, storing candidateKey first when the
	// user has none.
	TokenFor(ctx context.Context, userID int64, candidateKey string) (*domain.Token, error)
}

type PGUserRepository struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) CreateWithToken(ctx context.Context, user *domain.User, tokenKey string) (*domain.Token, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `INSERT INTO users (username, password_hash, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`, user.Username, user.PasswordHash, user.IsActive).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if pgErr, ok := asPgError(err); ok && pgErr.Code == pgUniqueViolation {
			return nil, domain.ConflictError{Resource: "user", Msg: fmt.Sprintf("username %q is taken", user.Username), Err: err}
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	token := &domain.Token{Key: tokenKey, UserID: user.ID}
	if err := tx.QueryRow(ctx, `INSERT INTO auth_tokens (key, user_id) VALUES ($1, $2) RETURNING created_at`,
		token.Key, token.UserID).Scan(&token.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return token, nil
}

func (r *PGUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `SELECT id, username, password_hash, is_active, created_at FROM users WHERE username=$1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, notFound(err, "user", 0)
	}
	return &u, nil
}

func (r *PGUserRepository) GetByToken(ctx context.Context, key string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `SELECT u.id, u.username, u.password_hash, u.is_active, u.created_at
		FROM auth_tokens t JOIN users u ON u.id = t.user_id
		WHERE t.key=$1`, key).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, notFound(err, "token", 0)
	}
	return &u, nil
}

func (r *PGUserRepository) TokenFor(ctx context.Context, userID int64, candidateKey string) (*domain.Token, error) {
	// The no-op update makes RETURNING yield the existing row on conflict.
	token := &domain.Token{UserID: userID}
	err := r.db.QueryRow(ctx, `INSERT INTO auth_tokens (key, user_id) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING key, created_at`, candidateKey, userID).
		Scan(&token.Key, &token.CreatedAt)
	if err != nil {
		return nil, notFound(err, "user", userID)
	}
	return token, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
