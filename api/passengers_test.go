package api

import (
	"net/http"
	"testing"

	"github.com/Domenick1991/flightservices/internal/domain"
	"github.com/Domenick1991/flightservices/internal/service/passengers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPassengerRoutes_Create(t *testing.T) {
	m, h := newTestAPI(false)
	input := passengers.PassengerInput{FirstName: "John", LastName: "Doe", Email: "john@doe.com", Phone: "123"}
	m.passengers.On("Create", mock.Anything, input).
		Return(&domain.Passenger{ID: 7, FirstName: "John", LastName: "Doe", Email: "john@doe.com", Phone: "123"}, nil)

	w := doRequest(h, http.MethodPost, "/flightServices/passanger/",
		`{"firstName": "John", "lastName": "Doe", "email": "john@doe.com", "phone": "123"}`, true)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id": 7, "firstName": "John", "lastName": "Doe", "middleName": "", "email": "john@doe.com", "phone": "123"}`, w.Body.String())
	m.passengers.AssertExpectations(t)
}

func TestPassengerRoutes_ListAndGet(t *testing.T) {
	m, h := newTestAPI(false)
	p := domain.Passenger{ID: 1, FirstName: "Ann"}
	m.passengers.On("List", mock.Anything).Return([]domain.Passenger{p}, nil)
	m.passengers.On("GetByID", mock.Anything, int64(1)).Return(&p, nil)

	w := doRequest(h, http.MethodGet, "/flightServices/passanger/", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"firstName":"Ann"`)

	w = doRequest(h, http.MethodGet, "/flightServices/passanger/1/", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	m.passengers.AssertExpectations(t)
}

func TestPassengerRoutes_ReplaceMissing(t *testing.T) {
	m, h := newTestAPI(false)
	m.passengers.On("Replace", mock.Anything, int64(5), mock.Anything).
		Return(nil, domain.NotFoundError{Resource: "passenger", ID: 5})

	w := doRequest(h, http.MethodPut, "/flightServices/passanger/5/",
		`{"firstName": "John", "lastName": "Doe", "email": "john@doe.com", "phone": "123"}`, true)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPassengerRoutes_Delete(t *testing.T) {
	m, h := newTestAPI(false)
	m.passengers.On("Delete", mock.Anything, int64(2)).Return(nil)

	w := doRequest(h, http.MethodDelete, "/flightServices/passanger/2/", "", true)

	assert.Equal(t, http.StatusNoContent, w.Code)
	m.passengers.AssertExpectations(t)
}
