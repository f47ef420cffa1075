package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/Domenick1991/flightservices/internal/domain"
	"github.com/Domenick1991/flightservices/internal/repository"
	"github.com/Domenick1991/flightservices/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	// Register creates an account and issues its token in the same transaction.
	Register(ctx context.Context, input Credentials) (*domain.User, *domain.Token, error)
	// ObtainToken exchanges valid credentials for the account's persistent token.
	ObtainToken(ctx context.Context, input Credentials) (string, error)
	// Authenticate resolves a token key to an active user.
	Authenticate(ctx context.Context, key string) (*domain.User, error)
}

type Credentials struct {
	Username string `json:"username" validate:"required,notblank,max=150"`
	Password string `json:"password" validate:"required"`
}

type AuthService struct {
	users      repository.UserRepository
	bcryptCost int
}

func NewAuthService(users repository.UserRepository, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, bcryptCost: bcryptCost}
}

func (s *AuthService) Register(ctx context.Context, input Credentials) (*domain.User, *domain.Token, error) {
	if err := validation.Struct(input); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	token, err := s.users.CreateWithToken(ctx, user, NewTokenKey())
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

func (s *AuthService) ObtainToken(ctx context.Context, input Credentials) (string, error) {
	if err := validation.Struct(input); err != nil {
		return "", err
	}

	user, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if !user.IsActive {
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	token, err := s.users.TokenFor(ctx, user.ID, NewTokenKey())
	if err != nil {
		return "", err
	}
	return token.Key, nil
}

func (s *AuthService) Authenticate(ctx context.Context, key string) (*domain.User, error) {
	if key == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.users.GetByToken(ctx, key)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// NewTokenKey returns a fresh 32 character hex token key.
func NewTokenKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

var _ AuthUseCase = (*AuthService)(nil)
