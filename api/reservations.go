package api

import (
	"net/http"

	"github.com/Domenick1991/flightservices/internal/service/reservations"
	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	service reservations.ReservationUseCase
}

func NewReservationHandler(service reservations.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.GET("/reservation/", h.list)
	router.POST("/reservation/", h.create)
	router.GET("/reservation/:id/", h.get)
	router.PUT("/reservation/:id/", h.replace)
	router.DELETE("/reservation/:id/", h.delete)
	router.POST("/saveReservation/", h.save)
}

func (h *ReservationHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReservationHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ReservationHandler) create(c *gin.Context) {
	var input reservations.ReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadBody(c, err)
		return
	}
	r, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *ReservationHandler) replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input reservations.ReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadBody(c, err)
		return
	}
	r, err := h.service.Replace(c.Request.Context(), id, input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ReservationHandler) delete(c *gin.Context) {
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

// save creates the passenger and its reservation on an existing flight in a
// single transaction and answers with the new reservation.
func (h *ReservationHandler) save(c *gin.Context) {
	var input reservations.SaveReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadBody(c, err)
		return
	}
	r, err := h.service.SaveReservation(c.Request.Context(), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}
