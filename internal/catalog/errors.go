// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"errors"
	"sort"
	"strings"
)

// Aggregation names used in logs and notices.
const (
	opListCategories    = "list_categories"
	opListCourses       = "list_courses"
	opFeaturedCourses   = "featured_courses"
	opCoursesByCategory = "courses_by_category"
	opCoursesBySubcat   = "courses_by_subcategory"
	opSearchCourses     = "search_courses"
	opCourseBySlug      = "course_by_slug"
	opCategoryBySlug    = "category_by_slug"
	opSubcategoryBySlug = "subcategory_by_slug"
	opSchedule          = "schedule"
	opSiteContent       = "site_content"
	opPageBySlug        = "page_by_slug"
	opRegister          = "register"
)

var (
	// ErrSessionUnavailable means the session does not exist, is not
	// upcoming or belongs to a course that is not active.
	ErrSessionUnavailable = errors.New("session is not open for registration")

	// ErrSessionFull means every seat of the session is taken.
	ErrSessionFull = errors.New("session is full")

	// ErrPartial means a view was assembled but a secondary fetch failed
	// and its list was left empty. The returned value is usable but must
	// not be cached.
	ErrPartial = errors.New("partial result")
)

// IsPartial reports whether err marks a usable but incomplete view.
func IsPartial(err error) bool {
	return errors.Is(err, ErrPartial)
}

// ValidationError lists invalid registration fields by their JSON name.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + " " + e.Fields[name]
	}
	return "invalid registration: " + strings.Join(parts, "; ")
}
