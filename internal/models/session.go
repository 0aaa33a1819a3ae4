// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus represents the scheduling state of a course session.
type SessionStatus string

const (
	SessionStatusUpcoming  SessionStatus = "upcoming"
	SessionStatusCompleted SessionStatus = "completed"
)

// Session is a scheduled offering of a course.
type Session struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	CourseID   uuid.UUID     `db:"course_id" json:"course_id"`
	StartDate  time.Time     `db:"start_date" json:"start_date"`
	EndDate    time.Time     `db:"end_date" json:"end_date"`
	Location   string        `db:"location" json:"location"`
	LocationAr string        `db:"location_ar" json:"location_ar,omitempty"`
	Capacity   int           `db:"capacity" json:"capacity"`
	Status     SessionStatus `db:"status" json:"status"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`

	// Derived by the aggregation layer from registration counts.
	RegistrationCount int `db:"-" json:"registration_count"`
	SeatsLeft         int `db:"-" json:"seats_left"`
}

// IsUpcoming reports whether the session is scheduled and starts on or
// after the given day.
func (s *Session) IsUpcoming(today time.Time) bool {
	return s.Status == SessionStatusUpcoming && !s.StartDate.Before(today)
}

// IsFull reports whether every seat is taken. A zero capacity means the
// session has no seat limit.
func (s *Session) IsFull() bool {
	return s.Capacity > 0 && s.RegistrationCount >= s.Capacity
}
