package passengers

import (
	"context"

	"github.com/Domenick1991/flightservices/internal/domain"
	"github.com/Domenick1991/flightservices/internal/repository"
	"github.com/Domenick1991/flightservices/internal/validation"
)

type PassengerUseCase interface {
	List(ctx context.Context) ([]domain.Passenger, error)
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	Create(ctx context.Context, input PassengerInput) (*domain.Passenger, error)
	Replace(ctx context.Context, id int64, input PassengerInput) (*domain.Passenger, error)
	Delete(ctx context.Context, id int64) error
}

// PassengerInput fields are free-form; only presence is checked.
type PassengerInput struct {
	FirstName  string `json:"firstName" validate:"required,notblank"`
	LastName   string `json:"lastName" validate:"required,notblank"`
	MiddleName string `json:"middleName"`
	Email      string `json:"email" validate:"required,notblank"`
	Phone      string `json:"phone" validate:"required,notblank"`
}

func (in PassengerInput) Passenger() domain.Passenger {
	return domain.Passenger{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		MiddleName: in.MiddleName,
		Email:      in.Email,
		Phone:      in.Phone,
	}
}

type PassengerService struct {
	repo repository.PassengerRepository
}

func NewPassengerService(repo repository.PassengerRepository) *PassengerService {
	return &PassengerService{repo: repo}
}

func (s *PassengerService) List(ctx context.Context) ([]domain.Passenger, error) {
	return s.repo.List(ctx)
}

func (s *PassengerService) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PassengerService) Create(ctx context.Context, input PassengerInput) (*domain.Passenger, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	p := input.Passenger()
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PassengerService) Replace(ctx context.Context, id int64, input PassengerInput) (*domain.Passenger, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	p := input.Passenger()
	p.ID = id
	if err := s.repo.Update(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the passenger together with their reservations.
func (s *PassengerService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

var _ PassengerUseCase = (*PassengerService)(nil)
