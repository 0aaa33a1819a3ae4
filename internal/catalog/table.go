// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"intex/internal/gateway"
	"intex/internal/models"
)

// TableRow is one line of the schedule table: a course paired with one of
// its sessions. A course without sessions has one row with no session.
type TableRow struct {
	CourseID        uuid.UUID  `json:"course_id"`
	CourseTitle     string     `json:"course_title"`
	CourseSlug      string     `json:"course_slug"`
	CategoryName    string     `json:"category_name"`
	SubcategoryName string     `json:"subcategory_name"`
	Duration        string     `json:"duration"`
	Price           float64    `json:"price"`
	SessionID       *uuid.UUID `json:"session_id,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Location        string     `json:"location"`
	SeatsLeft       int        `json:"seats_left"`
}

// CourseTable pivots courses and their attached sessions into rows ordered
// by start date, then course title. Rows without a session sort last.
func CourseTable(courses []models.Course) []TableRow {
	rows := make([]TableRow, 0, len(courses))
	for _, c := range courses {
		base := TableRow{
			CourseID:        c.ID,
			CourseTitle:     c.Title,
			CourseSlug:      c.Slug,
			CategoryName:    c.CategoryName,
			SubcategoryName: c.SubcategoryName,
			Duration:        c.Duration,
			Price:           c.EffectivePrice(),
		}
		if len(c.Sessions) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, sess := range c.Sessions {
			row := base
			id, start, end := sess.ID, sess.StartDate, sess.EndDate
			row.SessionID = &id
			row.StartDate = &start
			row.EndDate = &end
			row.Location = sess.Location
			row.SeatsLeft = sess.SeatsLeft
			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case a.StartDate == nil && b.StartDate == nil:
			return lessTitle(a.CourseTitle, b.CourseTitle)
		case a.StartDate == nil:
			return false
		case b.StartDate == nil:
			return true
		case !a.StartDate.Equal(*b.StartDate):
			return a.StartDate.Before(*b.StartDate)
		default:
			return lessTitle(a.CourseTitle, b.CourseTitle)
		}
	})
	return rows
}

func lessTitle(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// Schedule returns the schedule table of every active course with all of
// its upcoming sessions, with display fields in lang.
func (s *Service) Schedule(ctx context.Context, lang models.Lang) ([]TableRow, error) {
	courses, err := s.courseList(ctx, opSchedule, gateway.CourseQuery{Order: gateway.OrderTitle}, AllSessions)
	for i := range courses {
		courses[i] = courses[i].Localize(lang)
	}
	return CourseTable(courses), err
}
