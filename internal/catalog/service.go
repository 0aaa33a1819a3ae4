// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog composes gateway rows into the nested view models the
// site renders: the category tree, course lists with their upcoming
// sessions, course and category detail pages, the schedule table, the
// registration form and the display records.
//
// Read operations never fail in shape. A failed primary query yields an
// empty result (or a placeholder for single-entity lookups), is reported
// to the Notifier and is also returned as the error so callers can tell a
// degraded result from an empty one. A failed sub-fetch (one category's
// subcategories, one course's sessions) is logged and degrades only that
// part of the result.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"intex/internal/events"
	"intex/internal/gateway"
	"intex/internal/markdown"
)

// View limits.
const (
	FeaturedLimit        = 6
	ListSessionLimit     = 3
	FeaturedSessionLimit = 1
	// AllSessions attaches every upcoming session.
	AllSessions = 0
)

// maxFanout bounds concurrent gateway calls per aggregation.
const maxFanout = 16

// ImageResolver maps stored image references to public URLs.
type ImageResolver interface {
	ResolveImage(ref string) string
}

// Service is the aggregation layer. It is safe for concurrent use; every
// call builds a fresh result.
type Service struct {
	gw       gateway.Gateway
	now      func() time.Time
	loc      *time.Location
	notifier Notifier
	images   ImageResolver
	render   func(string) (string, error)
	events   events.Publisher
	validate *validator.Validate
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source used to decide which sessions are upcoming.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the time zone whose calendar day counts as "today".
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithNotifier sets the sink for transient notices.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithImageResolver resolves image references on every returned record.
func WithImageResolver(r ImageResolver) Option {
	return func(s *Service) { s.images = r }
}

// WithMarkdown replaces the Markdown renderer.
func WithMarkdown(render func(string) (string, error)) Option {
	return func(s *Service) { s.render = render }
}

// WithPublisher publishes registration events.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

// New creates a Service over gw.
func New(gw gateway.Gateway, opts ...Option) *Service {
	s := &Service{
		gw:       gw,
		now:      time.Now,
		loc:      time.UTC,
		notifier: discard{},
		render:   markdown.ToHTML,
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current calendar day in the configured location, as
// midnight UTC so it compares directly with DATE columns.
func (s *Service) Today() time.Time {
	t := s.now().In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// degrade reports a failed primary query.
func (s *Service) degrade(ctx context.Context, op string, err error) {
	if ctx.Err() != nil {
		slog.Debug("catalog query canceled", "op", op, "error", err)
		return
	}
	if errors.Is(err, gateway.ErrNotFound) {
		slog.Debug("catalog lookup not found", "op", op, "error", err)
		return
	}
	slog.Warn("catalog query failed", "op", op, "error", err)
	if gateway.IsTransport(err) {
		s.notifier.Notify(Notice{Op: op, Message: noticeMessage(op), At: s.now()})
	}
}

func (s *Service) image(ref string) string {
	if s.images == nil {
		return ref
	}
	return s.images.ResolveImage(ref)
}

func (s *Service) markdown(op, source string) string {
	out, err := s.render(source)
	if err != nil {
		slog.Warn("markdown render failed", "op", op, "error", err)
		return ""
	}
	return out
}
