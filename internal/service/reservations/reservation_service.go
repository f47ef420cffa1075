package reservations

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/Domenick1991/flightservices/internal/domain"
	"github.com/Domenick1991/flightservices/internal/kafka"
	"github.com/Domenick1991/flightservices/internal/repository"
	"github.com/Domenick1991/flightservices/internal/service/passengers"
	"github.com/Domenick1991/flightservices/internal/validation"
)

const (
	EventReservationCreated = "reservation_created"
	EventReservationDeleted = "reservation_deleted"
)

type ReservationUseCase interface {
	List(ctx context.Context) ([]domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Create(ctx context.Context, input ReservationInput) (*domain.Reservation, error)
	Replace(ctx context.Context, id int64, input ReservationInput) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
	SaveReservation(ctx context.Context, input SaveReservationInput) (*domain.Reservation, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// ReservationInput links existing rows by id.
type ReservationInput struct {
	FlightID    int64 `json:"flight" validate:"required,gt=0"`
	PassengerID int64 `json:"passanger" validate:"required,gt=0"`
}

// SaveReservationInput books a flight for a passenger that does not exist yet.
type SaveReservationInput struct {
	FlightID int64 `json:"flightId" validate:"required,gt=0"`
	passengers.PassengerInput
}

type ReservationService struct {
	reservations repository.ReservationRepository
	flights      repository.FlightRepository
	passengers   repository.PassengerRepository
	producer     Producer
	eventsTopic  string
}

type ReservationServiceOption func(*ReservationService)

// WithEvents publishes reservation changes to topic once they are committed.
func WithEvents(producer Producer, topic string) ReservationServiceOption {
	return func(s *ReservationService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func NewReservationService(
	reservations repository.ReservationRepository,
	flights repository.FlightRepository,
	passengers repository.PassengerRepository,
	opts ...ReservationServiceOption,
) *ReservationService {
	service := &ReservationService{
		reservations: reservations,
		flights:      flights,
		passengers:   passengers,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.reservations.List(ctx)
}

func (s *ReservationService) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.reservations.GetByID(ctx, id)
}

func (s *ReservationService) Create(ctx context.Context, input ReservationInput) (*domain.Reservation, error) {
	flight, passenger, err := s.resolve(ctx, input)
	if err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{FlightID: flight.ID, PassengerID: passenger.ID}
	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, err
	}

	s.publish(ctx, EventReservationCreated, reservation, flight, passenger)
	return reservation, nil
}

func (s *ReservationService) Replace(ctx context.Context, id int64, input ReservationInput) (*domain.Reservation, error) {
	if _, err := s.reservations.GetByID(ctx, id); err != nil {
		return nil, err
	}
	flight, passenger, err := s.resolve(ctx, input)
	if err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{ID: id, FlightID: flight.ID, PassengerID: passenger.ID}
	if err := s.reservations.Update(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *ReservationService) Delete(ctx context.Context, id int64) error {
	current, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reservations.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, EventReservationDeleted, current, nil, nil)
	return nil
}

// SaveReservation creates a new passenger from the payload and reserves the
// given flight for them. Both rows are written in one transaction; an unknown
// flight is reported as NotFound and nothing is written.
func (s *ReservationService) SaveReservation(ctx context.Context, input SaveReservationInput) (*domain.Reservation, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	passenger := input.Passenger()
	reservation, err := s.reservations.CreateWithPassenger(ctx, flight.ID, &passenger)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EventReservationCreated, reservation, flight, &passenger)
	return reservation, nil
}

// resolve validates input and loads both referenced rows, reporting every
// missing reference as a field error.
func (s *ReservationService) resolve(ctx context.Context, input ReservationInput) (*domain.Flight, *domain.Passenger, error) {
	if err := validation.Struct(input); err != nil {
		return nil, nil, err
	}

	verr := domain.NewValidationError()
	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		if !domain.IsNotFound(err) {
			return nil, nil, err
		}
		verr.Add("flight", invalidReference(input.FlightID))
	}
	passenger, err := s.passengers.GetByID(ctx, input.PassengerID)
	if err != nil {
		if !domain.IsNotFound(err) {
			return nil, nil, err
		}
		verr.Add("passanger", invalidReference(input.PassengerID))
	}
	if err := verr.OrNil(); err != nil {
		return nil, nil, err
	}
	return flight, passenger, nil
}

func invalidReference(id int64) string {
	return fmt.Sprintf("invalid pk %q - object does not exist", strconv.FormatInt(id, 10))
}

func (s *ReservationService) publish(ctx context.Context, eventType string, r *domain.Reservation, f *domain.Flight, p *domain.Passenger) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.ReservationEvent{
		Type:          eventType,
		ReservationID: r.ID,
		FlightID:      r.FlightID,
		PassengerID:   r.PassengerID,
		OccurredAt:    time.Now().UTC(),
	}
	if f != nil {
		event.FlightNumber = f.FlightNumber
	}
	if p != nil {
		event.Email = p.Email
		event.FirstName = p.FirstName
		event.LastName = p.LastName
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, strconv.FormatInt(r.ID, 10), event); err != nil {
		log.Printf("WARNING: publish %s for reservation %d: %v", eventType, r.ID, err)
	}
}

var _ ReservationUseCase = (*ReservationService)(nil)
