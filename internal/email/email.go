package email

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Domenick1991/flightservices/config"
	"github.com/Domenick1991/flightservices/internal/kafka"
	"gopkg.in/gomail.v2"
)

// Sender notifies passengers about reservation events. Without an SMTP host it
// only logs the message it would have sent.
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSender(cfg config.SMTPConfig) *Sender {
	s := &Sender{from: cfg.From}
	if cfg.Host != "" {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return s
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	if event.Email == "" {
		return nil
	}
	subject, body := compose(event)

	if s.dialer == nil {
		log.Printf("[email] to=%s subject=%q (smtp disabled)", event.Email, subject)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", event.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", event.Email, err)
	}
	log.Printf("[email] sent to=%s reservation=%d", event.Email, event.ReservationID)
	return nil
}

func compose(event kafka.ReservationEvent) (subject, body string) {
	name := strings.TrimSpace(event.FirstName + " " + event.LastName)
	if name == "" {
		name = "passenger"
	}
	flight := event.FlightNumber
	if flight == "" {
		flight = fmt.Sprintf("#%d", event.FlightID)
	}

	switch event.Type {
	case "reservation_deleted":
		subject = fmt.Sprintf("Reservation %d cancelled", event.ReservationID)
		body = fmt.Sprintf("Dear %s,\n\nyour reservation %d on flight %s has been cancelled.\n", name, event.ReservationID, flight)
	default:
		subject = fmt.Sprintf("Reservation %d confirmed", event.ReservationID)
		body = fmt.Sprintf("Dear %s,\n\nyour seat on flight %s is reserved under reservation %d.\n", name, flight, event.ReservationID)
	}
	return subject, body
}
