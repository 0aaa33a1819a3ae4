// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package gateway

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"intex/internal/models"
)

// Memory is an in-process Gateway with the same filter, order and limit
// semantics as Postgres. It backs the "memory" backend mode and the tests.
// Returned rows are copies; callers can never mutate the stored data.
type Memory struct {
	mu            sync.RWMutex
	categories    map[uuid.UUID]models.Category
	subcategories map[uuid.UUID]models.Subcategory
	courses       map[uuid.UUID]models.Course
	sessions      map[uuid.UUID]models.Session
	registrations []models.Registration
	sliders       []models.Slider
	partners      []models.Partner
	company       *models.CompanyInfo
	pages         map[string]models.CustomPage

	faults map[faultKey]error
	calls  map[string]int
	delay  time.Duration
	now    func() time.Time
}

// faultKey targets an operation, optionally narrowed to one argument
// (category ID for subcategories, course ID for sessions, a slug...).
type faultKey struct {
	op  string
	key string
}

// NewMemory returns an empty in-memory gateway.
func NewMemory() *Memory {
	return &Memory{
		categories:    make(map[uuid.UUID]models.Category),
		subcategories: make(map[uuid.UUID]models.Subcategory),
		courses:       make(map[uuid.UUID]models.Course),
		sessions:      make(map[uuid.UUID]models.Session),
		pages:         make(map[string]models.CustomPage),
		faults:        make(map[faultKey]error),
		calls:         make(map[string]int),
		now:           time.Now,
	}
}

// FailOn makes op return err. An empty key fails every call to op; a
// non-empty key fails only calls whose argument matches it.
// A nil err clears the fault.
func (m *Memory) FailOn(op, key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := faultKey{op: op, key: key}
	if err == nil {
		delete(m.faults, k)
		return
	}
	m.faults[k] = err
}

// SetDelay makes every call wait d (or until ctx is done) before answering.
func (m *Memory) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Calls returns how many times op was invoked.
func (m *Memory) Calls(op string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[op]
}

// TotalCalls returns the number of calls across all operations.
func (m *Memory) TotalCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

// enter records the call, honors the configured delay and context, and
// returns any injected fault as a TransportError.
func (m *Memory) enter(ctx context.Context, op, key string) error {
	m.mu.Lock()
	m.calls[op]++
	delay := m.delay
	err, ok := m.faults[faultKey{op: op, key: key}]
	if !ok {
		err, ok = m.faults[faultKey{op: op}]
	}
	m.mu.Unlock()

	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return &TransportError{Op: op, Err: ctx.Err()}
		case <-t.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if ok {
		return &TransportError{Op: op, Err: err}
	}
	return nil
}

// PutCategory inserts or replaces a category.
func (m *Memory) PutCategory(c models.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.Subcategories = nil
	m.categories[c.ID] = c
}

// PutSubcategory inserts or replaces a subcategory.
func (m *Memory) PutSubcategory(s models.Subcategory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subcategories[s.ID] = s
}

// PutCourse inserts or replaces a course. Expanded and virtual fields are
// discarded; they are recomputed on read.
func (m *Memory) PutCourse(c models.Course) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.CategoryName, c.CategoryNameAr, c.CategorySlug = "", "", ""
	c.SubcategoryName, c.SubcategoryNameAr, c.SubcategorySlug = "", "", ""
	c.DescriptionHTML = ""
	c.Sessions = nil
	m.courses[c.ID] = c
}

// PutSession inserts or replaces a session.
func (m *Memory) PutSession(s models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.RegistrationCount, s.SeatsLeft = 0, 0
	m.sessions[s.ID] = s
}

// PutSlider appends a slider.
func (m *Memory) PutSlider(s models.Slider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sliders = append(m.sliders, s)
}

// PutPartner appends a partner.
func (m *Memory) PutPartner(p models.Partner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.partners = append(m.partners, p)
}

// SetCompanyInfo replaces the company-info row.
func (m *Memory) SetCompanyInfo(info models.CompanyInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.company = &info
}

// PutCustomPage inserts or replaces a page by slug.
func (m *Memory) PutCustomPage(p models.CustomPage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.BodyHTML = ""
	m.pages[p.Slug] = p
}

// Registrations returns a copy of every stored registration.
func (m *Memory) Registrations() []models.Registration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Registration(nil), m.registrations...)
}

// Categories returns every category ordered by name.
func (m *Memory) Categories(ctx context.Context) ([]models.Category, error) {
	if err := m.enter(ctx, OpCategories, ""); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool {
		return lessByName(items[i].Name, items[j].Name, items[i].ID, items[j].ID)
	})
	return items, nil
}

// CategoryBySlug retrieves a single category.
func (m *Memory) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, fmt.Errorf("%s: %w", OpCategoryBySlug, ErrInvalidInput)
	}
	if err := m.enter(ctx, OpCategoryBySlug, slug); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", OpCategoryBySlug, ErrNotFound)
}

// Subcategories returns the subcategories of one category ordered by name.
func (m *Memory) Subcategories(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	if categoryID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", OpSubcategories, ErrInvalidInput)
	}
	if err := m.enter(ctx, OpSubcategories, categoryID.String()); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := []models.Subcategory{}
	for _, s := range m.subcategories {
		if s.CategoryID == categoryID {
			items = append(items, s)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return lessByName(items[i].Name, items[j].Name, items[i].ID, items[j].ID)
	})
	return items, nil
}

// SubcategoryBySlug retrieves a subcategory scoped to its parent category.
func (m *Memory) SubcategoryBySlug(ctx context.Context, categoryID uuid.UUID, slug string) (*models.Subcategory, error) {
	if categoryID == uuid.Nil || strings.TrimSpace(slug) == "" {
		return nil, fmt.Errorf("%s: %w", OpSubcategoryBySlug, ErrInvalidInput)
	}
	if err := m.enter(ctx, OpSubcategoryBySlug, slug); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.subcategories {
		if s.CategoryID == categoryID && s.Slug == slug {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", OpSubcategoryBySlug, ErrNotFound)
}

// expand fills the foreign-key display names of a course. Callers hold mu.
func (m *Memory) expand(c models.Course) models.Course {
	if c.SubcategoryID != nil {
		id := *c.SubcategoryID
		c.SubcategoryID = &id
	}
	if c.DiscountPrice != nil {
		v := *c.DiscountPrice
		c.DiscountPrice = &v
	}
	if cat, ok := m.categories[c.CategoryID]; ok {
		c.CategoryName, c.CategoryNameAr, c.CategorySlug = cat.Name, cat.NameAr, cat.Slug
	}
	if c.SubcategoryID != nil {
		if sub, ok := m.subcategories[*c.SubcategoryID]; ok {
			c.SubcategoryName, c.SubcategoryNameAr, c.SubcategorySlug = sub.Name, sub.NameAr, sub.Slug
		}
	}
	return c
}

// Courses returns the courses matching q. Courses whose category is
// missing are skipped, matching the inner join in Postgres.
func (m *Memory) Courses(ctx context.Context, q CourseQuery) ([]models.Course, error) {
	if err := m.enter(ctx, OpCourses, ""); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(q.Search))
	items := []models.Course{}
	for _, c := range m.courses {
		if _, ok := m.categories[c.CategoryID]; !ok {
			continue
		}
		if q.Status != "" && c.Status != q.Status {
			continue
		}
		if q.CategoryID != uuid.Nil && c.CategoryID != q.CategoryID {
			continue
		}
		if q.SubcategoryID != uuid.Nil && (c.SubcategoryID == nil || *c.SubcategoryID != q.SubcategoryID) {
			continue
		}
		if q.FeaturedOnly && !c.Featured {
			continue
		}
		if needle != "" && !containsFold(needle, c.Title, c.ShortDescription, c.Description) {
			continue
		}
		items = append(items, m.expand(c))
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if q.Order == OrderFeaturedTitle && a.Featured != b.Featured {
			return a.Featured
		}
		return lessByName(a.Title, b.Title, a.ID, b.ID)
	})
	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}
	return items, nil
}

// CourseBySlug retrieves one course by its unique slug, regardless of status.
func (m *Memory) CourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, fmt.Errorf("%s: %w", OpCourseBySlug, ErrInvalidInput)
	}
	if err := m.enter(ctx, OpCourseBySlug, slug); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.courses {
		if c.Slug == slug {
			if _, ok := m.categories[c.CategoryID]; !ok {
				break
			}
			expanded := m.expand(c)
			return &expanded, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", OpCourseBySlug, ErrNotFound)
}

// CourseByID retrieves one course by ID, regardless of status.
func (m *Memory) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", OpCourseByID, ErrInvalidInput)
	}
	if err := m.enter(ctx, OpCourseByID, id.String()); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.courses[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", OpCourseByID, ErrNotFound)
	}
	if _, ok := m.categories[c.CategoryID]; !ok {
		return nil, fmt.Errorf("%s: %w", OpCourseByID, ErrNotFound)
	}
	expanded := m.expand(c)
	return &expanded, nil
}

// Sessions returns the sessions of one course ordered by start date.
func (m *Memory) Sessions(ctx context.Context, q SessionQuery) ([]models.Session, error) {
	if q.CourseID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", OpSessions, ErrInvalidInput)
	}
	if err := m.enter(ctx, OpSessions, q.CourseID.String()); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := []models.Session{}
	for _, s := range m.sessions {
		if s.CourseID != q.CourseID {
			continue
		}
		if q.Status != "" && s.Status != q.Status {
			continue
		}
		if !q.From.IsZero() && s.StartDate.Before(q.From) {
			continue
		}
		items = append(items, s)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].StartDate.Equal(items[j].StartDate) {
			return items[i].StartDate.Before(items[j].StartDate)
		}
		return items[i].ID.String() < items[j].ID.String()
	})
	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}
	return items, nil
}

// SessionByID retrieves a single session.
func (m *Memory) SessionByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", OpSessionByID, ErrInvalidInput)
	}
	if err := m.enter(ctx, OpSessionByID, id.String()); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", OpSessionByID, ErrNotFound)
	}
	return &s, nil
}

// RegistrationCounts returns the number of registrations per session.
func (m *Memory) RegistrationCounts(ctx context.Context, sessionIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return counts, nil
	}
	if err := m.enter(ctx, OpRegistrationCounts, ""); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := make(map[uuid.UUID]bool, len(sessionIDs))
	for _, id := range sessionIDs {
		wanted[id] = true
	}
	for _, r := range m.registrations {
		if wanted[r.SessionID] {
			counts[r.SessionID]++
		}
	}
	return counts, nil
}

// CreateRegistration stores a registration with a fresh ID and timestamp.
func (m *Memory) CreateRegistration(ctx context.Context, r *models.Registration) (*models.Registration, error) {
	if r == nil || r.SessionID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", OpCreateRegistration, ErrInvalidInput)
	}
	if err := m.enter(ctx, OpCreateRegistration, r.SessionID.String()); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[r.SessionID]; !ok {
		return nil, &TransportError{Op: OpCreateRegistration, Err: fmt.Errorf("foreign key violation: session %s", r.SessionID)}
	}
	result := *r
	result.ID = uuid.New()
	result.CreatedAt = m.now()
	if result.PaymentStatus == "" {
		result.PaymentStatus = models.PaymentStatusPending
	}
	m.registrations = append(m.registrations, result)
	return &result, nil
}

// Sliders returns the active sliders in display order.
func (m *Memory) Sliders(ctx context.Context) ([]models.Slider, error) {
	if err := m.enter(ctx, OpSliders, ""); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := []models.Slider{}
	for _, s := range m.sliders {
		if s.Active {
			items = append(items, s)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortOrder != items[j].SortOrder {
			return items[i].SortOrder < items[j].SortOrder
		}
		return items[i].Title < items[j].Title
	})
	return items, nil
}

// Partners returns every partner in display order.
func (m *Memory) Partners(ctx context.Context) ([]models.Partner, error) {
	if err := m.enter(ctx, OpPartners, ""); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := append([]models.Partner{}, m.partners...)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortOrder != items[j].SortOrder {
			return items[i].SortOrder < items[j].SortOrder
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// CompanyInfo returns the company-info row.
func (m *Memory) CompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	if err := m.enter(ctx, OpCompanyInfo, ""); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.company == nil {
		return nil, fmt.Errorf("%s: %w", OpCompanyInfo, ErrNotFound)
	}
	info := *m.company
	return &info, nil
}

// CustomPageBySlug retrieves a published static page.
func (m *Memory) CustomPageBySlug(ctx context.Context, slug string) (*models.CustomPage, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, fmt.Errorf("%s: %w", OpCustomPageBySlug, ErrInvalidInput)
	}
	if err := m.enter(ctx, OpCustomPageBySlug, slug); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.pages[slug]
	if !ok || !p.Published {
		return nil, fmt.Errorf("%s: %w", OpCustomPageBySlug, ErrNotFound)
	}
	return &p, nil
}

// lessByName orders case-insensitively by name with the ID as tie-break.
func lessByName(a, b string, idA, idB uuid.UUID) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return idA.String() < idB.String()
}

// containsFold reports whether any of the fields contains the lowercase needle.
func containsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
