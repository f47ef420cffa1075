package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightservices/internal/ratelimit"
	"github.com/Domenick1991/flightservices/internal/service/auth"
	"github.com/Domenick1991/flightservices/internal/service/flights"
	"github.com/Domenick1991/flightservices/internal/service/passengers"
	"github.com/Domenick1991/flightservices/internal/service/reservations"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

const docsSpecPath = "/openapi.yaml"

type Services struct {
	Flights      flights.FlightUseCase
	Passengers   passengers.PassengerUseCase
	Reservations reservations.ReservationUseCase
	Auth         auth.AuthUseCase
}

type RouterOptions struct {
	CORSAllowedOrigins []string
	// DocsFile is the OpenAPI document served under /docs. Empty disables docs.
	DocsFile string
	// Limiter throttles the token endpoint. Nil disables throttling.
	Limiter ratelimit.Limiter
}

func NewRouter(s Services, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger())

	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if opts.DocsFile != "" {
		r.StaticFile(docsSpecPath, opts.DocsFile)
		r.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(docsSpecPath))))
	}

	NewAuthHandler(s.Auth).Register(r.Group("/api-token-auth", RateLimit(opts.Limiter)))

	protected := r.Group("/flightServices", TokenAuth(s.Auth))
	NewFlightHandler(s.Flights).Register(protected)
	NewPassengerHandler(s.Passengers).Register(protected)
	NewReservationHandler(s.Reservations).Register(protected)

	return r
}
