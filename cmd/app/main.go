package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightservices/api"
	"github.com/Domenick1991/flightservices/config"
	"github.com/Domenick1991/flightservices/internal/bootstrap"
	"github.com/Domenick1991/flightservices/internal/kafka"
	"github.com/Domenick1991/flightservices/internal/ratelimit"
	"github.com/Domenick1991/flightservices/internal/repository"
	"github.com/Domenick1991/flightservices/internal/service/auth"
	"github.com/Domenick1991/flightservices/internal/service/flights"
	"github.com/Domenick1991/flightservices/internal/service/passengers"
	"github.com/Domenick1991/flightservices/internal/service/reservations"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.HTTP.GinMode != "" {
		gin.SetMode(cfg.HTTP.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	flightRepo := repository.NewFlightRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	var reservationOpts []reservations.ReservationServiceOption
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.Printf("WARNING: kafka unavailable, reservation events will be dropped: %v", err)
		}
		reservationOpts = append(reservationOpts, reservations.WithEvents(producer, cfg.Kafka.ReservationsTopic))
	}

	opts := api.RouterOptions{
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		DocsFile:           cfg.HTTP.DocsFile,
	}
	if cfg.RateLimit.Enabled {
		client := ratelimit.NewRedisClient(cfg.Redis)
		defer client.Close()
		opts.Limiter = ratelimit.NewRedisLimiter(client, cfg.RateLimit)
	}

	router := api.NewRouter(api.Services{
		Flights:      flights.NewFlightService(flightRepo),
		Passengers:   passengers.NewPassengerService(passengerRepo),
		Reservations: reservations.NewReservationService(reservationRepo, flightRepo, passengerRepo, reservationOpts...),
		Auth:         auth.NewAuthService(userRepo, cfg.Auth.BcryptCost),
	}, opts)

	if err := bootstrap.Run(ctx, cfg.HTTP, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
