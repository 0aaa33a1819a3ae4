// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package gateway translates catalog queries into calls against the backing
// store and returns raw, unjoined rows. Foreign-key display names (category
// and subcategory of a course) are expanded by the store; every other join
// is the aggregation layer's job.
//
// Calls are independent and stateless. No transaction spans several calls,
// so a multi-step fetch can observe data that changed in between.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"intex/internal/models"
)

var (
	// ErrNotFound is returned when a single-row lookup yields no row.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for an empty slug or a nil identifier.
	ErrInvalidInput = errors.New("invalid input")
)

// TransportError reports that a call to the backing store could not complete.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Operation names, shared by every implementation for logging and fault injection.
const (
	OpCategories         = "categories"
	OpCategoryBySlug     = "category_by_slug"
	OpSubcategories      = "subcategories"
	OpSubcategoryBySlug  = "subcategory_by_slug"
	OpCourses            = "courses"
	OpCourseBySlug       = "course_by_slug"
	OpCourseByID         = "course_by_id"
	OpSessions           = "sessions"
	OpSessionByID        = "session_by_id"
	OpRegistrationCounts = "registration_counts"
	OpCreateRegistration = "create_registration"
	OpSliders            = "sliders"
	OpPartners           = "partners"
	OpCompanyInfo        = "company_info"
	OpCustomPageBySlug   = "custom_page_by_slug"
)

// CourseOrder selects the sort order of a course list.
type CourseOrder int

const (
	// OrderFeaturedTitle sorts featured courses first, then by title.
	OrderFeaturedTitle CourseOrder = iota
	// OrderTitle sorts by title only.
	OrderTitle
)

// CourseQuery filters a course list. Zero values mean "no constraint".
type CourseQuery struct {
	Status        models.CourseStatus
	CategoryID    uuid.UUID
	SubcategoryID uuid.UUID
	FeaturedOnly  bool
	// Search is a case-insensitive substring matched against the title,
	// the short description and the full description.
	Search string
	Order  CourseOrder
	Limit  int
}

// SessionQuery filters the sessions of one course. Results are always
// ordered by ascending start date.
type SessionQuery struct {
	CourseID uuid.UUID
	Status   models.SessionStatus
	// From excludes sessions starting before this instant when non-zero.
	From  time.Time
	Limit int
}

// Gateway is the read/write capability the aggregation layer depends on.
// List methods return an empty, non-nil slice when nothing matches.
type Gateway interface {
	Categories(ctx context.Context) ([]models.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	Subcategories(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error)
	SubcategoryBySlug(ctx context.Context, categoryID uuid.UUID, slug string) (*models.Subcategory, error)

	Courses(ctx context.Context, q CourseQuery) ([]models.Course, error)
	CourseBySlug(ctx context.Context, slug string) (*models.Course, error)
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)

	Sessions(ctx context.Context, q SessionQuery) ([]models.Session, error)
	SessionByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	RegistrationCounts(ctx context.Context, sessionIDs []uuid.UUID) (map[uuid.UUID]int, error)
	CreateRegistration(ctx context.Context, r *models.Registration) (*models.Registration, error)

	Sliders(ctx context.Context) ([]models.Slider, error)
	Partners(ctx context.Context) ([]models.Partner, error)
	CompanyInfo(ctx context.Context) (*models.CompanyInfo, error)
	CustomPageBySlug(ctx context.Context, slug string) (*models.CustomPage, error)
}

// DefaultTimeout bounds a single gateway call when none is configured.
const DefaultTimeout = 5 * time.Second
