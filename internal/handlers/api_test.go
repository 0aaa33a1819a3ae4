// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"intex/internal/catalog"
	"intex/internal/gateway"
	"intex/internal/handlers"
	"intex/internal/models"
	"intex/internal/router"
	"intex/internal/sitecache"
)

var testToday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type testServer struct {
	handler http.Handler
	mem     *gateway.Memory
	site    *sitecache.Context
}

// newTestServer serves the demo catalog through the real router. The site
// cache is loaded unless skipLoad is set.
func newTestServer(t *testing.T, skipLoad bool) *testServer {
	t.Helper()
	mem := gateway.NewDemoMemory(testToday)
	svc := catalog.New(mem, catalog.WithClock(func() time.Time { return testToday.Add(9 * time.Hour) }))
	site := sitecache.New(svc)
	if !skipLoad {
		site.Load(context.Background())
	}
	return &testServer{handler: router.New(handlers.New(site), nil), mem: mem, site: site}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}

func (s *testServer) sessionOf(t *testing.T, courseSlug string) models.Session {
	t.Helper()
	ctx := context.Background()
	course, err := s.mem.CourseBySlug(ctx, courseSlug)
	if err != nil {
		t.Fatalf("CourseBySlug(%q): %v", courseSlug, err)
	}
	sessions, err := s.mem.Sessions(ctx, gateway.SessionQuery{
		CourseID: course.ID, Status: models.SessionStatusUpcoming, From: testToday,
	})
	if err != nil || len(sessions) == 0 {
		t.Fatalf("no upcoming session for %q: %v", courseSlug, err)
	}
	return sessions[0]
}

func TestHealth(t *testing.T) {
	t.Run("before load", func(t *testing.T) {
		s := newTestServer(t, true)
		rr := s.do(t, http.MethodGet, "/health", "")
		if rr.Code != http.StatusServiceUnavailable {
			t.Errorf("status: got %d, want 503", rr.Code)
		}
	})

	t.Run("after load", func(t *testing.T) {
		s := newTestServer(t, false)
		rr := s.do(t, http.MethodGet, "/health", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		body := decode[map[string]string](t, rr)
		if body["status"] != "ok" || body["state"] != "ready" {
			t.Errorf("body = %v", body)
		}
	})
}

type bootstrap struct {
	State      string            `json:"state"`
	Categories []models.Category `json:"categories"`
	Courses    []models.Course   `json:"courses"`
	Featured   []models.Course   `json:"featured"`
	Notices    []catalog.Notice  `json:"notices"`
}

func TestBootstrap(t *testing.T) {
	s := newTestServer(t, false)

	rr := s.do(t, http.MethodGet, "/api/bootstrap", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content-type: got %q", ct)
	}
	if !strings.Contains(rr.Body.String(), `"notices":[]`) {
		t.Errorf("notices should encode as an empty list: %s", rr.Body.String())
	}

	b := decode[bootstrap](t, rr)
	if b.State != "ready" {
		t.Errorf("state = %q, want ready", b.State)
	}
	if len(b.Categories) != 4 || len(b.Courses) != 9 || len(b.Featured) != 6 {
		t.Errorf("got %d categories, %d courses, %d featured; want 4, 9, 6",
			len(b.Categories), len(b.Courses), len(b.Featured))
	}
}

func TestBootstrapArabic(t *testing.T) {
	s := newTestServer(t, false)

	rr := s.do(t, http.MethodGet, "/api/bootstrap?lang=ar", "")
	if got := rr.Header().Get("Content-Language"); got != "ar" {
		t.Errorf("Content-Language = %q, want ar", got)
	}
	b := decode[bootstrap](t, rr)
	if b.Categories[0].Name != "المالية" {
		t.Errorf("first category = %q, want المالية", b.Categories[0].Name)
	}

	// The shared snapshot keeps its English names.
	if got := s.site.Snapshot().Categories[0].Name; got != "Finance" {
		t.Errorf("snapshot category mutated to %q", got)
	}
}

func TestCourseDetail(t *testing.T) {
	s := newTestServer(t, false)

	rr := s.do(t, http.MethodGet, "/api/courses/advanced-leadership-skills", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	c := decode[models.Course](t, rr)
	if c.Title != "Advanced Leadership Skills" {
		t.Errorf("title = %q", c.Title)
	}
	if len(c.Sessions) != 2 || c.Sessions[0].Location != "Riyadh" {
		t.Errorf("sessions = %+v, want Riyadh first of 2", c.Sessions)
	}
	if !strings.Contains(c.DescriptionHTML, "<h2") {
		t.Errorf("description not rendered: %q", c.DescriptionHTML)
	}

	ar := decode[models.Course](t, s.do(t, http.MethodGet, "/api/courses/advanced-leadership-skills?lang=ar", ""))
	if ar.Title != "مهارات القيادة المتقدمة" || ar.Sessions[0].Location != "الرياض" {
		t.Errorf("arabic course = %q at %q", ar.Title, ar.Sessions[0].Location)
	}
}

func TestCourseDetailPlaceholder(t *testing.T) {
	s := newTestServer(t, false)

	for _, slug := range []string{"no-such-course", "board-governance-masterclass"} {
		rr := s.do(t, http.MethodGet, "/api/courses/"+slug, "")
		if rr.Code != http.StatusNotFound {
			t.Errorf("%s: status %d, want 404", slug, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), `"sessions":[]`) {
			t.Errorf("%s: placeholder body missing empty sessions: %s", slug, rr.Body.String())
		}
		if c := decode[models.Course](t, rr); c.ID != uuid.Nil {
			t.Errorf("%s: placeholder has id %s", slug, c.ID)
		}
	}
}

func TestCourseDetailBackendDown(t *testing.T) {
	s := newTestServer(t, false)
	s.mem.FailOn(gateway.OpCourseBySlug, "", errors.New("connection refused"))

	rr := s.do(t, http.MethodGet, "/api/courses/advanced-leadership-skills", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want 503", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"sessions":[]`) {
		t.Errorf("placeholder body missing empty sessions: %s", rr.Body.String())
	}

	s.mem.FailOn(gateway.OpCategoryBySlug, "", errors.New("connection refused"))
	if rr := s.do(t, http.MethodGet, "/api/categories/leadership", ""); rr.Code != http.StatusServiceUnavailable {
		t.Errorf("category: status %d, want 503", rr.Code)
	}
}

func TestCourseDetailWithoutSessions(t *testing.T) {
	s := newTestServer(t, false)
	s.mem.FailOn(gateway.OpSessions, "", errors.New("connection reset"))

	rr := s.do(t, http.MethodGet, "/api/courses/advanced-leadership-skills", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	c := decode[models.Course](t, rr)
	if c.Title != "Advanced Leadership Skills" || c.Sessions == nil || len(c.Sessions) != 0 {
		t.Errorf("course = %q with sessions %v, want the course with none", c.Title, c.Sessions)
	}
}

func TestAcceptLanguage(t *testing.T) {
	s := newTestServer(t, false)

	tests := []struct {
		header string
		want   string
	}{
		{header: "ar-SA,ar;q=0.9,en;q=0.8", want: "ar"},
		{header: "en-GB,en;q=0.9,ar;q=0.5", want: "en"},
		{header: "fr-FR,fr;q=0.9", want: "en"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/courses/advanced-leadership-skills", nil)
		req.Header.Set("Accept-Language", tt.header)
		rr := httptest.NewRecorder()
		s.handler.ServeHTTP(rr, req)

		if got := rr.Header().Get("Content-Language"); got != tt.want {
			t.Errorf("%q: Content-Language = %q, want %q", tt.header, got, tt.want)
		}
		c := decode[models.Course](t, rr)
		if tt.want == "ar" && c.Title != "مهارات القيادة المتقدمة" {
			t.Errorf("%q: title = %q, want Arabic", tt.header, c.Title)
		}
	}

	// ?lang= wins over the header.
	req := httptest.NewRequest(http.MethodGet, "/api/categories?lang=en", nil)
	req.Header.Set("Accept-Language", "ar")
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	if got := rr.Header().Get("Content-Language"); got != "en" {
		t.Errorf("Content-Language = %q, want en", got)
	}
}

func TestCourseLists(t *testing.T) {
	s := newTestServer(t, false)

	tests := []struct {
		target string
		want   int
	}{
		{"/api/courses", 9},
		{"/api/courses/featured", 6},
		{"/api/courses/search?q=leadership", 1},
		{"/api/courses/search?q=", 0},
		{"/api/courses/search?q=nothing+matches+this", 0},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rr := s.do(t, http.MethodGet, tt.target, "")
			if rr.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200", rr.Code)
			}
			if got := decode[[]models.Course](t, rr); len(got) != tt.want {
				t.Errorf("got %d courses, want %d", len(got), tt.want)
			}
		})
	}
}

func TestCourseListsServeSnapshot(t *testing.T) {
	s := newTestServer(t, false)
	before := s.mem.Calls(gateway.OpCourses)

	s.do(t, http.MethodGet, "/api/courses", "")
	s.do(t, http.MethodGet, "/api/courses/featured", "")
	s.do(t, http.MethodGet, "/api/categories", "")

	if got := s.mem.Calls(gateway.OpCourses); got != before {
		t.Errorf("list endpoints queried the gateway %d times", got-before)
	}
}

func TestSearchFailureIsEmpty(t *testing.T) {
	s := newTestServer(t, false)
	s.mem.FailOn(gateway.OpCourses, "", errors.New("connection reset"))

	rr := s.do(t, http.MethodGet, "/api/courses/search?q=agile", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Errorf("body = %s, want []", rr.Body.String())
	}
}

func TestCategoryDetail(t *testing.T) {
	s := newTestServer(t, false)

	rr := s.do(t, http.MethodGet, "/api/categories/leadership", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	d := decode[catalog.CategoryDetail](t, rr)
	if d.Category.Slug != "leadership" || len(d.Category.Subcategories) != 2 {
		t.Errorf("category = %q with %d subcategories", d.Category.Slug, len(d.Category.Subcategories))
	}
	if len(d.Courses) != 3 {
		t.Errorf("got %d courses, want 3 active leadership courses", len(d.Courses))
	}

	if rr := s.do(t, http.MethodGet, "/api/categories/no-such-category", ""); rr.Code != http.StatusNotFound {
		t.Errorf("unknown category: status %d, want 404", rr.Code)
	}
}

func TestSubcategoryDetail(t *testing.T) {
	s := newTestServer(t, false)

	rr := s.do(t, http.MethodGet, "/api/categories/leadership/team-management?lang=ar", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	d := decode[catalog.SubcategoryDetail](t, rr)
	if d.Subcategory.Name != "إدارة الفرق" {
		t.Errorf("subcategory name = %q", d.Subcategory.Name)
	}
	if len(d.Courses) != 1 || d.Courses[0].Slug != "managing-remote-teams" {
		t.Errorf("courses = %+v", d.Courses)
	}

	if rr := s.do(t, http.MethodGet, "/api/categories/finance/agile", ""); rr.Code != http.StatusNotFound {
		t.Errorf("subcategory under the wrong category: status %d, want 404", rr.Code)
	}
}

func TestTable(t *testing.T) {
	s := newTestServer(t, false)

	rows := decode[[]catalog.TableRow](t, s.do(t, http.MethodGet, "/api/courses/table", ""))
	if len(rows) != 18 {
		t.Fatalf("got %d rows, want 18", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].StartDate.Before(*rows[i-1].StartDate) {
			t.Fatalf("rows %d and %d out of date order", i-1, i)
		}
	}
}

func TestSiteAndPages(t *testing.T) {
	s := newTestServer(t, false)

	site := decode[catalog.SiteContent](t, s.do(t, http.MethodGet, "/api/site?lang=ar", ""))
	if len(site.Sliders) != 2 || len(site.Partners) != 2 {
		t.Errorf("got %d sliders, %d partners", len(site.Sliders), len(site.Partners))
	}
	if site.Company.Name != "إنتكس للتدريب" {
		t.Errorf("company name = %q", site.Company.Name)
	}

	rr := s.do(t, http.MethodGet, "/api/pages/about", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("about: status %d, want 200", rr.Code)
	}
	if page := decode[models.CustomPage](t, rr); !strings.Contains(page.BodyHTML, "<h1") {
		t.Errorf("body not rendered: %q", page.BodyHTML)
	}

	if rr := s.do(t, http.MethodGet, "/api/pages/terms", ""); rr.Code != http.StatusNotFound {
		t.Errorf("unpublished page: status %d, want 404", rr.Code)
	}
}

func TestRegister(t *testing.T) {
	s := newTestServer(t, false)
	sess := s.sessionOf(t, "advanced-leadership-skills")

	body := `{"session_id":"` + sess.ID.String() + `","full_name":"Layla Hassan",` +
		`"email":"Layla@Example.com","phone":"+971500000000","country":"ae"}`
	rr := s.do(t, http.MethodPost, "/api/registrations", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (%s)", rr.Code, rr.Body.String())
	}
	reg := decode[models.Registration](t, rr)
	if reg.PaymentAmount != 2100 || reg.Email != "layla@example.com" || reg.Country != "AE" {
		t.Errorf("registration = %+v", reg)
	}
	if reg.PaymentStatus != models.PaymentStatusPending {
		t.Errorf("payment status = %q", reg.PaymentStatus)
	}
}

func TestRegisterErrors(t *testing.T) {
	s := newTestServer(t, false)
	sess := s.sessionOf(t, "pmp-exam-bootcamp")
	valid := func(sessionID string) string {
		return `{"session_id":"` + sessionID + `","full_name":"A","email":"a@example.com","phone":"1"}`
	}

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{"session_id":`, http.StatusBadRequest},
		{"missing fields", `{"session_id":"` + sess.ID.String() + `"}`, http.StatusBadRequest},
		{"unknown session", valid(uuid.NewString()), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(t, http.MethodPost, "/api/registrations", tt.body)
			if rr.Code != tt.status {
				t.Errorf("status: got %d, want %d (%s)", rr.Code, tt.status, rr.Body.String())
			}
		})
	}

	t.Run("field messages", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/api/registrations", `{"session_id":"`+sess.ID.String()+`"}`)
		body := decode[struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}](t, rr)
		for _, field := range []string{"full_name", "email", "phone"} {
			if body.Fields[field] == "" {
				t.Errorf("no message for %s: %v", field, body.Fields)
			}
		}
	})

	t.Run("store unavailable", func(t *testing.T) {
		s.mem.FailOn(gateway.OpCreateRegistration, "", errors.New("connection reset"))
		defer s.mem.FailOn(gateway.OpCreateRegistration, "", nil)

		rr := s.do(t, http.MethodPost, "/api/registrations", valid(sess.ID.String()))
		if rr.Code != http.StatusServiceUnavailable {
			t.Errorf("status: got %d, want 503", rr.Code)
		}
	})
}

func TestRegisterSessionFull(t *testing.T) {
	s := newTestServer(t, false)
	sess := s.sessionOf(t, "agile-project-delivery")
	sess.Capacity = 1
	s.mem.PutSession(sess)

	body := `{"session_id":"` + sess.ID.String() + `","full_name":"A","email":"a@example.com","phone":"1"}`
	if rr := s.do(t, http.MethodPost, "/api/registrations", body); rr.Code != http.StatusCreated {
		t.Fatalf("first registration: status %d", rr.Code)
	}
	rr := s.do(t, http.MethodPost, "/api/registrations", body)
	if rr.Code != http.StatusConflict {
		t.Errorf("status: got %d, want 409", rr.Code)
	}
	if body := decode[map[string]string](t, rr); body["error"] != catalog.ErrSessionFull.Error() {
		t.Errorf("error = %q", body["error"])
	}
}
