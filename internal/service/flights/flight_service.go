package flights

import (
	"context"

	"github.com/Domenick1991/flightservices/internal/domain"
	"github.com/Domenick1991/flightservices/internal/repository"
	"github.com/Domenick1991/flightservices/internal/validation"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, input FlightInput) (*domain.Flight, error)
	Replace(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
	Find(ctx context.Context, input FindFlightsInput) ([]domain.Flight, error)
}

// FlightInput is the writable representation of a flight. Dates and times stay
// strings until validation so that format errors are reported per field.
type FlightInput struct {
	FlightNumber             string `json:"flightNumber" validate:"required,alphanum,max=20"`
	OperatingAirlines        string `json:"operatingAirLines" validate:"required,notblank"`
	DepartureCity            string `json:"departureCity" validate:"required,notblank"`
	ArrivalCity              string `json:"arrivalCity" validate:"required,notblank"`
	DateOfDeparture          string `json:"dateOfDeparture" validate:"required,datetime=2006-01-02"`
	EstimatedTimeOfDeparture string `json:"estimatedTimeOfDeparture" validate:"required,timeofday"`
}

type FindFlightsInput struct {
	DepartureCity   string `json:"departureCity" validate:"required,notblank"`
	ArrivalCity     string `json:"arrivalCity" validate:"required,notblank"`
	DateOfDeparture string `json:"dateOfDeparture" validate:"required,datetime=2006-01-02"`
}

type FlightService struct {
	repo repository.FlightRepository
}

func NewFlightService(repo repository.FlightRepository) *FlightService {
	return &FlightService{repo: repo}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	return s.repo.List(ctx)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input FlightInput) (*domain.Flight, error) {
	flight, err := input.toFlight()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	return flight, nil
}

func (s *FlightService) Replace(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error) {
	flight, err := input.toFlight()
	if err != nil {
		return nil, err
	}
	flight.ID = id
	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, err
	}
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Find returns flights matching all three criteria exactly.
func (s *FlightService) Find(ctx context.Context, input FindFlightsInput) ([]domain.Flight, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	date, err := domain.ParseDate(input.DateOfDeparture)
	if err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, domain.FlightQuery{
		DepartureCity:   input.DepartureCity,
		ArrivalCity:     input.ArrivalCity,
		DateOfDeparture: date,
	})
}

func (in FlightInput) toFlight() (*domain.Flight, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	date, err := domain.ParseDate(in.DateOfDeparture)
	if err != nil {
		return nil, err
	}
	clock, err := domain.ParseTimeOfDay(in.EstimatedTimeOfDeparture)
	if err != nil {
		return nil, err
	}
	return &domain.Flight{
		FlightNumber:             in.FlightNumber,
		OperatingAirlines:        in.OperatingAirlines,
		DepartureCity:            in.DepartureCity,
		ArrivalCity:              in.ArrivalCity,
		DateOfDeparture:          date,
		EstimatedTimeOfDeparture: clock,
	}, nil
}

var _ FlightUseCase = (*FlightService)(nil)
