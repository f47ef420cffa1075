package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"reflect"

	"github.com/Domenick1991/flightservices/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError writes {"error": msg[, "fields": ...][, "request_id": ...]} and
// stops the handler chain.
func respondError(c *gin.Context, status int, msg string, fields map[string][]string) {
	body := gin.H{"error": msg}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	if reqID := GetRequestID(c); reqID != "" {
		body["request_id"] = reqID
	}
	c.AbortWithStatusJSON(status, body)
}

// respondDomainError maps service errors onto HTTP statuses.
func respondDomainError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, "validation failed", verr.Fields)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrUnauthorized):
		respondUnauthorized(c)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, err.Error(), nil)
	default:
		log.Printf("[HTTP] request_id=%s method=%s path=%s internal error: %v",
			GetRequestID(c), c.Request.Method, c.Request.URL.Path, err)
		respondError(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

func respondUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Token")
	respondError(c, http.StatusUnauthorized, domain.ErrUnauthorized.Error(), nil)
}

// respondBadBody answers a body that could not be decoded. A value of the wrong
// JSON type is reported against its field like any other validation failure.
func respondBadBody(c *gin.Context, err error) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		verr := domain.NewValidationError()
		verr.Add(typeErr.Field, "expected "+jsonKind(typeErr.Type.Kind())+", got "+typeErr.Value)
		respondDomainError(c, verr)
		return
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		respondError(c, http.StatusBadRequest, "malformed request body: invalid JSON", nil)
		return
	}
	respondError(c, http.StatusBadRequest, "malformed request body", nil)
}

func jsonKind(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
