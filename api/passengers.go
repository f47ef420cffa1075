package api

import (
	"net/http"

	"github.com/Domenick1991/flightservices/internal/service/passengers"
	"github.com/gin-gonic/gin"
)

type PassengerHandler struct {
	service passengers.PassengerUseCase
}

func NewPassengerHandler(service passengers.PassengerUseCase) *PassengerHandler {
	return &PassengerHandler{service: service}
}

func (h *PassengerHandler) Register(router *gin.RouterGroup) {
	router.GET("/passanger/", h.list)
	router.POST("/passanger/", h.create)
	router.GET("/passanger/:id/", h.get)
	router.PUT("/passanger/:id/", h.replace)
	router.DELETE("/passanger/:id/", h.delete)
}

func (h *PassengerHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PassengerHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PassengerHandler) create(c *gin.Context) {
	var input passengers.PassengerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadBody(c, err)
		return
	}
	p, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PassengerHandler) replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input passengers.PassengerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadBody(c, err)
		return
	}
	p, err := h.service.Replace(c.Request.Context(), id, input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// delete also removes the passenger's reservations.
func (h *PassengerHandler) delete(c *gin.Context) {
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
