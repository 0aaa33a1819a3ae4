// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"intex/internal/gateway"
	"intex/internal/models"
)

// RegistrationInput is the public registration form.
type RegistrationInput struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	FullName  string `json:"full_name" validate:"required,max=200"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"required,max=40"`
	Company   string `json:"company" validate:"max=200"`
	JobTitle  string `json:"job_title" validate:"max=200"`
	Country   string `json:"country" validate:"omitempty,iso3166_1_alpha2"`
	Notes     string `json:"notes" validate:"max=2000"`
}

func (in *RegistrationInput) trim() {
	in.SessionID = strings.TrimSpace(in.SessionID)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Company = strings.TrimSpace(in.Company)
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.Country = strings.ToUpper(strings.TrimSpace(in.Country))
	in.Notes = strings.TrimSpace(in.Notes)
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid session identifier"
	case "iso3166_1_alpha2":
		return "must be a two-letter country code"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

func (s *Service) validateInput(in RegistrationInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("validate registration: %w", err)
	}
	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

// Register validates the form, checks that the session is upcoming, belongs
// to an active course and has seats left, then stores the registration with
// the course's effective price as the amount due. A registration.created
// event is published when a publisher is configured; a publish failure is
// logged and does not fail the registration.
func (s *Service) Register(ctx context.Context, in RegistrationInput) (*models.Registration, error) {
	in.trim()
	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	sessionID := uuid.MustParse(in.SessionID)

	sess, err := s.gw.SessionByID(ctx, sessionID)
	if errors.Is(err, gateway.ErrNotFound) {
		return nil, ErrSessionUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opRegister, err)
	}
	if !sess.IsUpcoming(s.Today()) {
		return nil, ErrSessionUnavailable
	}

	course, err := s.gw.CourseByID(ctx, sess.CourseID)
	if errors.Is(err, gateway.ErrNotFound) {
		return nil, ErrSessionUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opRegister, err)
	}
	if !course.IsActive() {
		return nil, ErrSessionUnavailable
	}

	counts, err := s.gw.RegistrationCounts(ctx, []uuid.UUID{sess.ID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opRegister, err)
	}
	setSeats(sess, counts[sess.ID])
	if sess.IsFull() {
		return nil, ErrSessionFull
	}

	created, err := s.gw.CreateRegistration(ctx, &models.Registration{
		SessionID:     sess.ID,
		FullName:      in.FullName,
		Email:         in.Email,
		Phone:         in.Phone,
		Company:       in.Company,
		JobTitle:      in.JobTitle,
		Country:       in.Country,
		PaymentStatus: models.PaymentStatusPending,
		PaymentAmount: course.EffectivePrice(),
		Notes:         in.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opRegister, err)
	}

	slog.Info("registration created",
		"registration_id", created.ID,
		"session_id", sess.ID,
		"course", course.Slug,
	)

	if s.events != nil {
		if err := s.events.PublishRegistrationCreated(created, course, sess); err != nil {
			slog.Warn("registration event not published", "registration_id", created.ID, "error", err)
		}
	}
	return created, nil
}
