package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightservices/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights/", h.list)
	router.POST("/flights/", h.create)
	router.GET("/flights/:id/", h.get)
	router.PUT("/flights/:id/", h.replace)
	router.DELETE("/flights/:id/", h.delete)
	router.POST("/findFlights/", h.find)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var input flights.FlightInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadBody(c, err)
		return
	}
	flight, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input flights.FlightInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadBody(c, err)
		return
	}
	flight, err := h.service.Replace(c.Request.Context(), id, input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// find answers 200 with an empty array when nothing matches.
func (h *FlightHandler) find(c *gin.Context) {
	var input flights.FindFlightsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadBody(c, err)
		return
	}
	found, err := h.service.Find(c.Request.Context(), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// pathID parses the :id segment and answers 404 when it is not a positive
// integer, since no record can live under such a path.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusNotFound, "not found", nil)
		return 0, false
	}
	return id, true
}
