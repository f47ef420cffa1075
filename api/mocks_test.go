package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/Domenick1991/flightservices/internal/domain"
	"github.com/Domenick1991/flightservices/internal/ratelimit"
	"github.com/Domenick1991/flightservices/internal/service/auth"
	"github.com/Domenick1991/flightservices/internal/service/flights"
	"github.com/Domenick1991/flightservices/internal/service/passengers"
	"github.com/Domenick1991/flightservices/internal/service/reservations"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, input flights.FlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Replace(ctx context.Context, id int64, input flights.FlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFlightUseCase) Find(ctx context.Context, input flights.FindFlightsInput) ([]domain.Flight, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

type MockPassengerUseCase struct {
	mock.Mock
}

func (m *MockPassengerUseCase) List(ctx context.Context) ([]domain.Passenger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

func (m *MockPassengerUseCase) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerUseCase) Create(ctx context.Context, input passengers.PassengerInput) (*domain.Passenger, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerUseCase) Replace(ctx context.Context, id int64, input passengers.PassengerInput) (*domain.Passenger, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerUseCase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockReservationUseCase struct {
	mock.Mock
}

func (m *MockReservationUseCase) List(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) Create(ctx context.Context, input reservations.ReservationInput) (*domain.Reservation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) Replace(ctx context.Context, id int64, input reservations.ReservationInput) (*domain.Reservation, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReservationUseCase) SaveReservation(ctx context.Context, input reservations.SaveReservationInput) (*domain.Reservation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, input auth.Credentials) (*domain.User, *domain.Token, error) {
	args := m.Called(ctx, input)
	var (
		user  *domain.User
		token *domain.Token
	)
	if v := args.Get(0); v != nil {
		user = v.(*domain.User)
	}
	if v := args.Get(1); v != nil {
		token = v.(*domain.Token)
	}
	return user, token, args.Error(2)
}

func (m *MockAuthUseCase) ObtainToken(ctx context.Context, input auth.Credentials) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockAuthUseCase) Authenticate(ctx context.Context, key string) (*domain.User, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Allow(ctx context.Context, key string) (ratelimit.Result, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(ratelimit.Result), args.Error(1)
}

const testToken = "0123456789abcdef0123456789abcdef"

type testAPI struct {
	flights      *MockFlightUseCase
	passengers   *MockPassengerUseCase
	reservations *MockReservationUseCase
	auth         *MockAuthUseCase
	limiter      *MockLimiter
}

// newTestAPI builds the router over mocks. testToken authenticates as "alice".
func newTestAPI(withLimiter bool) (*testAPI, http.Handler) {
	gin.SetMode(gin.TestMode)
	t := &testAPI{
		flights:      &MockFlightUseCase{},
		passengers:   &MockPassengerUseCase{},
		reservations: &MockReservationUseCase{},
		auth:         &MockAuthUseCase{},
		limiter:      &MockLimiter{},
	}
	t.auth.On("Authenticate", mock.Anything, testToken).
		Return(&domain.User{ID: 1, Username: "alice", IsActive: true}, nil).Maybe()
	t.auth.On("Authenticate", mock.Anything, mock.Anything).
		Return(nil, domain.ErrUnauthorized).Maybe()

	opts := RouterOptions{}
	if withLimiter {
		opts.Limiter = t.limiter
	}
	return t, NewRouter(Services{
		Flights:      t.flights,
		Passengers:   t.passengers,
		Reservations: t.reservations,
		Auth:         t.auth,
	}, opts)
}

func doRequest(h http.Handler, method, path, body string, authorized bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Token "+testToken)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
