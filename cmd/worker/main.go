package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightservices/config"
	"github.com/Domenick1991/flightservices/internal/email"
	"github.com/Domenick1991/flightservices/internal/kafka"
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
	if !cfg.Kafka.Enabled() {
		log.Fatalf("worker needs kafka.brokers and kafka.reservations_topic")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.ReservationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender(cfg.SMTP)

	log.Printf("[worker] consuming topic=%s group=%s", cfg.Kafka.ReservationsTopic, cfg.Kafka.GroupID)
	err = consumer.Consume(ctx, kafka.ReservationHandler(func(ctx context.Context, event kafka.ReservationEvent) error {
		if err := emailSender.Send(ctx, event); err != nil {
			// A bad address must not stall the partition.
			log.Printf("[worker] notify reservation=%d error: %v", event.ReservationID, err)
		}
		return nil
	}))
	if err != nil {
		log.Fatalf("consumer stopped: %v", err)
	}
	log.Printf("[worker] shutting down")
}
