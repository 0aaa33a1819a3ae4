// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"intex/internal/gateway"
	"intex/internal/models"
	"intex/internal/slug"
)

// PlaceholderCourse is returned in place of a course that could not be
// loaded. Every slice is empty and non-nil.
func PlaceholderCourse() models.Course {
	return models.Course{Sessions: []models.Session{}}
}

// IsPlaceholder reports whether c is a PlaceholderCourse.
func IsPlaceholder(c models.Course) bool {
	return c.ID == uuid.Nil
}

// courseList runs one active-course query and attaches up to sessionLimit
// upcoming sessions to each result. The list is returned with ErrPartial
// when a session or seat count fetch failed.
func (s *Service) courseList(ctx context.Context, op string, q gateway.CourseQuery, sessionLimit int) ([]models.Course, error) {
	q.Status = models.CourseStatusActive
	courses, err := s.gw.Courses(ctx, q)
	if err != nil {
		s.degrade(ctx, op, err)
		return []models.Course{}, fmt.Errorf("%s: %w", op, err)
	}
	s.decorateCourses(courses)
	if !s.attachSessions(ctx, courses, sessionLimit) {
		return courses, fmt.Errorf("%s: %w", op, ErrPartial)
	}
	return courses, nil
}

// ListCourses returns every active course, featured first then by title,
// each with up to ListSessionLimit upcoming sessions.
func (s *Service) ListCourses(ctx context.Context) ([]models.Course, error) {
	return s.courseList(ctx, opListCourses, gateway.CourseQuery{}, ListSessionLimit)
}

// FeaturedCourses returns up to FeaturedLimit active featured courses by
// title, each with its next upcoming session.
func (s *Service) FeaturedCourses(ctx context.Context) ([]models.Course, error) {
	return s.courseList(ctx, opFeaturedCourses, gateway.CourseQuery{
		FeaturedOnly: true,
		Order:        gateway.OrderTitle,
		Limit:        FeaturedLimit,
	}, FeaturedSessionLimit)
}

// CoursesByCategory returns the active courses of one category.
func (s *Service) CoursesByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Course, error) {
	return s.courseList(ctx, opCoursesByCategory, gateway.CourseQuery{CategoryID: categoryID}, ListSessionLimit)
}

// CoursesBySubcategory returns the active courses of one subcategory.
func (s *Service) CoursesBySubcategory(ctx context.Context, subcategoryID uuid.UUID) ([]models.Course, error) {
	return s.courseList(ctx, opCoursesBySubcat, gateway.CourseQuery{SubcategoryID: subcategoryID}, ListSessionLimit)
}

// SearchCourses matches text case-insensitively against title, short
// description and description. A blank query returns an empty list
// without touching the gateway.
func (s *Service) SearchCourses(ctx context.Context, text string) ([]models.Course, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []models.Course{}, nil
	}
	return s.courseList(ctx, opSearchCourses, gateway.CourseQuery{
		Search: text,
		Order:  gateway.OrderTitle,
	}, ListSessionLimit)
}

// CourseBySlug returns one course with every upcoming session and its
// description rendered to HTML. Draft courses are not found. On failure a
// PlaceholderCourse is returned together with the error. A course whose
// sessions or seat counts failed is returned with ErrPartial.
func (s *Service) CourseBySlug(ctx context.Context, courseSlug string) (models.Course, error) {
	c, err := s.gw.CourseBySlug(ctx, slug.Normalize(courseSlug))
	if err == nil && !c.IsActive() {
		err = fmt.Errorf("%s: %w", gateway.OpCourseBySlug, gateway.ErrNotFound)
	}
	if err != nil {
		s.degrade(ctx, opCourseBySlug, err)
		return PlaceholderCourse(), fmt.Errorf("%s: %w", opCourseBySlug, err)
	}

	courses := []models.Course{*c}
	s.decorateCourses(courses)
	whole := s.attachSessions(ctx, courses, AllSessions)

	course := courses[0]
	course.DescriptionHTML = s.markdown(opCourseBySlug, course.Description)
	if !whole {
		return course, fmt.Errorf("%s: %w", opCourseBySlug, ErrPartial)
	}
	return course, nil
}
