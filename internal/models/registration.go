// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus tracks whether a registration has been paid for.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Registration is an attendee's request to join a session, submitted through
// the public registration form.
type Registration struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	SessionID     uuid.UUID     `db:"session_id" json:"session_id"`
	FullName      string        `db:"full_name" json:"full_name"`
	Email         string        `db:"email" json:"email"`
	Phone         string        `db:"phone" json:"phone"`
	Company       string        `db:"company" json:"company,omitempty"`
	JobTitle      string        `db:"job_title" json:"job_title,omitempty"`
	Country       string        `db:"country" json:"country,omitempty"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	PaymentAmount float64       `db:"payment_amount" json:"payment_amount"`
	Notes         string        `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}
