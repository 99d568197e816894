package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/nats-io/nats.go"
)

// Subjects published by the portal
const (
	SubjectApplicationSubmitted = "portal.applications.submitted"
	SubjectUserRegistered       = "portal.users.registered"
)

// ApplicationSubmitted is published after an application row is stored
type ApplicationSubmitted struct {
	ApplicationID uint      `json:"application_id"`
	UserID        *uint     `json:"user_id,omitempty"`
	UniversityID  uint      `json:"university_id"`
	CourseID      uint      `json:"course_id"`
	Intake        string    `json:"intake"`
	Year          int       `json:"year"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// UserRegistered is published after a new account is stored
type UserRegistered struct {
	UserID       uint      `json:"user_id"`
	Username     string    `json:"username"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Publisher emits domain events. Publishing is best effort: a failure is
// logged by callers and never fails the originating request.
type Publisher interface {
	Publish(ctx context.Context, subject string, event interface{}) error
	Close()
}

// NATSPublisher publishes JSON events on a NATS connection
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to the NATS server at url
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("uni-portal"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warnf("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Infof("NATS reconnected to %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// Publish encodes event as JSON and publishes it on subject
func (p *NATSPublisher) Publish(ctx context.Context, subject string, event interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", subject, err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}

// NoopPublisher drops every event; used when NATS is not configured
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NoopPublisher) Close()                                             {}

// New returns a NATS publisher when url is set, otherwise a NoopPublisher
func New(url string) (Publisher, error) {
	if url == "" {
		return NoopPublisher{}, nil
	}
	return NewNATSPublisher(url)
}
