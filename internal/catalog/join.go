// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"intex/internal/gateway"
	"intex/internal/models"
)

// attachSessions fetches the upcoming sessions of every course concurrently
// and attaches them with seat counts. limit caps the sessions per course;
// AllSessions attaches all of them. Each fetch writes only its own slot, and
// a failed fetch leaves that course with an empty, non-nil list. It reports
// false when any fetch failed.
func (s *Service) attachSessions(ctx context.Context, courses []models.Course, limit int) bool {
	today := s.Today()

	var failed atomic.Bool
	var g errgroup.Group
	g.SetLimit(maxFanout)
	for i := range courses {
		c := &courses[i]
		g.Go(func() error {
			sessions, err := s.gw.Sessions(ctx, gateway.SessionQuery{
				CourseID: c.ID,
				Status:   models.SessionStatusUpcoming,
				From:     today,
				Limit:    limit,
			})
			if err != nil {
				slog.Warn("session fetch failed", "course_id", c.ID, "error", err)
				failed.Store(true)
				sessions = []models.Session{}
			}
			c.Sessions = sessions
			return nil
		})
	}
	_ = g.Wait()

	seats := s.attachSeats(ctx, courses)
	return seats && !failed.Load()
}

// attachSeats fills RegistrationCount and SeatsLeft on every attached
// session with one batched count query. On failure counts stay zero and it
// reports false.
func (s *Service) attachSeats(ctx context.Context, courses []models.Course) bool {
	var ids []uuid.UUID
	for _, c := range courses {
		for _, sess := range c.Sessions {
			ids = append(ids, sess.ID)
		}
	}
	if len(ids) == 0 {
		return true
	}

	counts, err := s.gw.RegistrationCounts(ctx, ids)
	if err != nil {
		slog.Warn("registration count fetch failed", "sessions", len(ids), "error", err)
		counts = map[uuid.UUID]int{}
	}
	for i := range courses {
		for j := range courses[i].Sessions {
			setSeats(&courses[i].Sessions[j], counts[courses[i].Sessions[j].ID])
		}
	}
	return err == nil
}

// setSeats records the registration count. SeatsLeft is zero for sessions
// without a capacity limit.
func setSeats(sess *models.Session, count int) {
	sess.RegistrationCount = count
	sess.SeatsLeft = max(sess.Capacity-count, 0)
}

// attachSubcategories fetches every category's subcategories concurrently.
// A failed fetch leaves that category with an empty, non-nil list and the
// call reports false.
func (s *Service) attachSubcategories(ctx context.Context, cats []models.Category) bool {
	var failed atomic.Bool
	var g errgroup.Group
	g.SetLimit(maxFanout)
	for i := range cats {
		c := &cats[i]
		g.Go(func() error {
			subs, err := s.gw.Subcategories(ctx, c.ID)
			if err != nil {
				slog.Warn("subcategory fetch failed", "category_id", c.ID, "error", err)
				failed.Store(true)
				subs = []models.Subcategory{}
			}
			for j := range subs {
				subs[j].Image = s.image(subs[j].Image)
			}
			c.Subcategories = subs
			return nil
		})
	}
	_ = g.Wait()
	return !failed.Load()
}

func (s *Service) decorateCourses(courses []models.Course) {
	for i := range courses {
		courses[i].Image = s.image(courses[i].Image)
		courses[i].Brochure = s.image(courses[i].Brochure)
	}
}
