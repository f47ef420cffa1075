package api

import (
	"net/http"

	"github.com/Domenick1991/flightservices/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service auth.AuthUseCase
}

func NewAuthHandler(service auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.obtainToken)
}

// obtainToken exchanges a username and password for the account's token.
func (h *AuthHandler) obtainToken(c *gin.Context) {
	var input auth.Credentials
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadBody(c, err)
		return
	}
	token, err := h.service.ObtainToken(c.Request.Context(), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
