// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package events publishes catalog domain events to NATS as JSON messages.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"intex/internal/models"
)

// SubjectRegistrationCreated is published after a registration is stored.
const SubjectRegistrationCreated = "registration.created"

// Publisher emits domain events.
type Publisher interface {
	PublishRegistrationCreated(r *models.Registration, course *models.Course, session *models.Session) error
}

// RegistrationCreatedEvent is the payload of SubjectRegistrationCreated.
type RegistrationCreatedEvent struct {
	EventType      string    `json:"event_type"`
	RegistrationID uuid.UUID `json:"registration_id"`
	SessionID      uuid.UUID `json:"session_id"`
	CourseID       uuid.UUID `json:"course_id"`
	CourseTitle    string    `json:"course_title"`
	StartDate      time.Time `json:"start_date"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewRegistrationCreated builds the event payload for a stored registration.
func NewRegistrationCreated(r *models.Registration, course *models.Course, session *models.Session) RegistrationCreatedEvent {
	return RegistrationCreatedEvent{
		EventType:      SubjectRegistrationCreated,
		RegistrationID: r.ID,
		SessionID:      session.ID,
		CourseID:       course.ID,
		CourseTitle:    course.Title,
		StartDate:      session.StartDate,
		FullName:       r.FullName,
		Email:          r.Email,
		CreatedAt:      r.CreatedAt,
	}
}

// conn is the part of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NatsPublisher publishes events on a NATS connection.
type NatsPublisher struct {
	conn conn
}

// NewNatsPublisher connects to the NATS server at url.
func NewNatsPublisher(url string) (*NatsPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("intex"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NatsPublisher{conn: nc}, nil
}

// PublishRegistrationCreated publishes a registration.created event.
func (p *NatsPublisher) PublishRegistrationCreated(r *models.Registration, course *models.Course, session *models.Session) error {
	data, err := json.Marshal(NewRegistrationCreated(r, course, session))
	if err != nil {
		return fmt.Errorf("marshal %s: %w", SubjectRegistrationCreated, err)
	}
	if err := p.conn.Publish(SubjectRegistrationCreated, data); err != nil {
		return fmt.Errorf("publish %s: %w", SubjectRegistrationCreated, err)
	}
	slog.Debug("event published", "subject", SubjectRegistrationCreated, "registration_id", r.ID)
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NatsPublisher) Close() error {
	return p.conn.Drain()
}
