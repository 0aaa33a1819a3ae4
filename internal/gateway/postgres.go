// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"intex/internal/models"
)

// Postgres implements Gateway on a PostgreSQL database.
type Postgres struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewPostgres wraps an open *sql.DB (pgx stdlib driver) in a Gateway.
// Each call is bounded by timeout; zero selects DefaultTimeout.
func NewPostgres(db *sql.DB, timeout time.Duration) *Postgres {
	return NewPostgresX(sqlx.NewDb(db, "pgx"), timeout)
}

// NewPostgresX is like NewPostgres but takes an existing *sqlx.DB.
func NewPostgresX(db *sqlx.DB, timeout time.Duration) *Postgres {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Postgres{db: db, timeout: timeout}
}

const categoryColumns = `id, name, name_ar, slug, image, sort_order, created_at, updated_at`

const subcategoryColumns = `id, category_id, name, name_ar, slug, image, created_at, updated_at`

const courseColumns = `
	c.id, c.title, c.title_ar, c.slug, c.short_description, c.description,
	c.price, c.discount_price, c.duration, c.level, c.status, c.featured,
	c.category_id, c.subcategory_id, c.image, c.brochure, c.created_at, c.updated_at,
	cat.name AS category_name, cat.name_ar AS category_name_ar, cat.slug AS category_slug,
	COALESCE(sub.name, '') AS subcategory_name,
	COALESCE(sub.name_ar, '') AS subcategory_name_ar,
	COALESCE(sub.slug, '') AS subcategory_slug`

const courseFrom = `
	FROM courses c
	JOIN categories cat ON cat.id = c.category_id
	LEFT JOIN subcategories sub ON sub.id = c.subcategory_id`

const sessionColumns = `id, course_id, start_date, end_date, location, location_ar, capacity, status, created_at`

// withTimeout derives the per-call context.
func (p *Postgres) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.timeout)
}

// fail classifies a driver error: "no rows" becomes ErrNotFound, everything
// else a TransportError.
func fail(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return &TransportError{Op: op, Err: err}
}

// Categories returns every category ordered by name. Names compare
// case-insensitively in byte order so both backends agree.
func (p *Postgres) Categories(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	items := []models.Category{}
	err := p.db.SelectContext(ctx, &items,
		`SELECT `+categoryColumns+` FROM categories ORDER BY lower(name) COLLATE "C", id`)
	if err != nil {
		return nil, fail(OpCategories, err)
	}
	return items, nil
}

// CategoryBySlug retrieves a single category.
func (p *Postgres) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, fmt.Errorf("%s: %w", OpCategoryBySlug, ErrInvalidInput)
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var c models.Category
	err := p.db.GetContext(ctx, &c,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	if err != nil {
		return nil, fail(OpCategoryBySlug, err)
	}
	return &c, nil
}

// Subcategories returns the subcategories of one category ordered by name.
func (p *Postgres) Subcategories(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	if categoryID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", OpSubcategories, ErrInvalidInput)
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	items := []models.Subcategory{}
	err := p.db.SelectContext(ctx, &items,
		`SELECT `+subcategoryColumns+` FROM subcategories WHERE category_id = $1 ORDER BY lower(name) COLLATE "C", id`,
		categoryID)
	if err != nil {
		return nil, fail(OpSubcategories, err)
	}
	return items, nil
}

// SubcategoryBySlug retrieves a subcategory scoped to its parent category.
func (p *Postgres) SubcategoryBySlug(ctx context.Context, categoryID uuid.UUID, slug string) (*models.Subcategory, error) {
	if categoryID == uuid.Nil || strings.TrimSpace(slug) == "" {
		return nil, fmt.Errorf("%s: %w", OpSubcategoryBySlug, ErrInvalidInput)
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var s models.Subcategory
	err := p.db.GetContext(ctx, &s,
		`SELECT `+subcategoryColumns+` FROM subcategories WHERE category_id = $1 AND slug = $2`,
		categoryID, slug)
	if err != nil {
		return nil, fail(OpSubcategoryBySlug, err)
	}
	return &s, nil
}

// where accumulates positional filter clauses.
type where struct {
	clauses []string
	args    []any
}

// add appends a clause whose %d verbs are all replaced by the new
// argument's position.
func (w *where) add(clause string, arg any) {
	w.args = append(w.args, arg)
	n := len(w.args)
	w.clauses = append(w.clauses, strings.ReplaceAll(clause, "%d", fmt.Sprint(n)))
}

func (w *where) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// likePattern escapes LIKE metacharacters and wraps the text in wildcards.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// Courses returns the courses matching q, with category and subcategory
// names expanded.
func (p *Postgres) Courses(ctx context.Context, q CourseQuery) ([]models.Course, error) {
	var w where
	if q.Status != "" {
		w.add("c.status = $%d", q.Status)
	}
	if q.CategoryID != uuid.Nil {
		w.add("c.category_id = $%d", q.CategoryID)
	}
	if q.SubcategoryID != uuid.Nil {
		w.add("c.subcategory_id = $%d", q.SubcategoryID)
	}
	if q.FeaturedOnly {
		w.add("c.featured = $%d", true)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		w.add("(c.title ILIKE $%d OR c.short_description ILIKE $%d OR c.description ILIKE $%d)", likePattern(s))
	}

	query := `SELECT ` + courseColumns + courseFrom + w.sql()
	switch q.Order {
	case OrderTitle:
		query += ` ORDER BY lower(c.title) COLLATE "C", c.id`
	default:
		query += ` ORDER BY c.featured DESC, lower(c.title) COLLATE "C", c.id`
	}
	if q.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, q.Limit)
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	items := []models.Course{}
	if err := p.db.SelectContext(ctx, &items, query, w.args...); err != nil {
		return nil, fail(OpCourses, err)
	}
	return items, nil
}

// CourseBySlug retrieves one course by its unique slug, regardless of status.
func (p *Postgres) CourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, fmt.Errorf("%s: %w", OpCourseBySlug, ErrInvalidInput)
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var c models.Course
	err := p.db.GetContext(ctx, &c,
		`SELECT `+courseColumns+courseFrom+` WHERE c.slug = $1`, slug)
	if err != nil {
		return nil, fail(OpCourseBySlug, err)
	}
	return &c, nil
}

// CourseByID retrieves one course by ID, regardless of status.
func (p *Postgres) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", OpCourseByID, ErrInvalidInput)
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var c models.Course
	err := p.db.GetContext(ctx, &c,
		`SELECT `+courseColumns+courseFrom+` WHERE c.id = $1`, id)
	if err != nil {
		return nil, fail(OpCourseByID, err)
	}
	return &c, nil
}

// Sessions returns the sessions of one course ordered by start date.
func (p *Postgres) Sessions(ctx context.Context, q SessionQuery) ([]models.Session, error) {
	if q.CourseID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", OpSessions, ErrInvalidInput)
	}

	var w where
	w.add("course_id = $%d", q.CourseID)
	if q.Status != "" {
		w.add("status = $%d", q.Status)
	}
	if !q.From.IsZero() {
		w.add("start_date >= $%d", q.From)
	}

	query := `SELECT ` + sessionColumns + ` FROM sessions` + w.sql() + ` ORDER BY start_date, id`
	if q.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, q.Limit)
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	items := []models.Session{}
	if err := p.db.SelectContext(ctx, &items, query, w.args...); err != nil {
		return nil, fail(OpSessions, err)
	}
	return items, nil
}

// SessionByID retrieves a single session.
func (p *Postgres) SessionByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", OpSessionByID, ErrInvalidInput)
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var s models.Session
	err := p.db.GetContext(ctx, &s, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	if err != nil {
		return nil, fail(OpSessionByID, err)
	}
	return &s, nil
}

// RegistrationCounts returns the number of registrations per session.
// Sessions without registrations are absent from the map.
func (p *Postgres) RegistrationCounts(ctx context.Context, sessionIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return counts, nil
	}

	query, args, err := sqlx.In(
		`SELECT session_id, COUNT(*) AS count FROM registrations WHERE session_id IN (?) GROUP BY session_id`,
		sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OpRegistrationCounts, ErrInvalidInput)
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var rows []struct {
		SessionID uuid.UUID `db:"session_id"`
		Count     int       `db:"count"`
	}
	if err := p.db.SelectContext(ctx, &rows, p.db.Rebind(query), args...); err != nil {
		return nil, fail(OpRegistrationCounts, err)
	}
	for _, r := range rows {
		counts[r.SessionID] = r.Count
	}
	return counts, nil
}

// CreateRegistration inserts a registration and returns it with its
// generated ID and timestamp.
func (p *Postgres) CreateRegistration(ctx context.Context, r *models.Registration) (*models.Registration, error) {
	if r == nil || r.SessionID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", OpCreateRegistration, ErrInvalidInput)
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	result := *r
	if result.PaymentStatus == "" {
		result.PaymentStatus = models.PaymentStatusPending
	}
	err := p.db.QueryRowxContext(ctx, `
		INSERT INTO registrations (session_id, full_name, email, phone, company, job_title,
		                           country, payment_status, payment_amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`, result.SessionID, result.FullName, result.Email, result.Phone, result.Company, result.JobTitle,
		result.Country, result.PaymentStatus, result.PaymentAmount, result.Notes,
	).Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		return nil, &TransportError{Op: OpCreateRegistration, Err: err}
	}
	return &result, nil
}

// Sliders returns the active sliders in display order.
func (p *Postgres) Sliders(ctx context.Context) ([]models.Slider, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	items := []models.Slider{}
	err := p.db.SelectContext(ctx, &items, `
		SELECT id, title, title_ar, subtitle, subtitle_ar, image, link, sort_order, active
		FROM sliders WHERE active = TRUE ORDER BY sort_order, title`)
	if err != nil {
		return nil, fail(OpSliders, err)
	}
	return items, nil
}

// Partners returns every partner in display order.
func (p *Postgres) Partners(ctx context.Context) ([]models.Partner, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	items := []models.Partner{}
	err := p.db.SelectContext(ctx, &items, `
		SELECT id, name, logo, website, sort_order
		FROM partners ORDER BY sort_order, name`)
	if err != nil {
		return nil, fail(OpPartners, err)
	}
	return items, nil
}

// CompanyInfo returns the single company-info row.
func (p *Postgres) CompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var info models.CompanyInfo
	err := p.db.GetContext(ctx, &info, `
		SELECT name, name_ar, email, phone, address, address_ar, about, about_ar,
		       facebook, linkedin, twitter, instagram
		FROM company_info ORDER BY id LIMIT 1`)
	if err != nil {
		return nil, fail(OpCompanyInfo, err)
	}
	return &info, nil
}

// CustomPageBySlug retrieves a published static page.
func (p *Postgres) CustomPageBySlug(ctx context.Context, slug string) (*models.CustomPage, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, fmt.Errorf("%s: %w", OpCustomPageBySlug, ErrInvalidInput)
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var page models.CustomPage
	err := p.db.GetContext(ctx, &page, `
		SELECT id, title, title_ar, slug, body, body_ar, published, updated_at
		FROM custom_pages WHERE slug = $1 AND published = TRUE`, slug)
	if err != nil {
		return nil, fail(OpCustomPageBySlug, err)
	}
	return &page, nil
}
