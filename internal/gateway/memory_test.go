// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"intex/internal/models"
)

var testToday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestMemoryCategoriesOrderedByName(t *testing.T) {
	m := NewMemory()
	for _, name := range []string{"Project Management", "finance", "Leadership"} {
		m.PutCategory(models.Category{ID: uuid.New(), Name: name, Slug: name})
	}

	got, err := m.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	want := []string{"finance", "Leadership", "Project Management"}
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("categories[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestMemoryEmptyListsAreNonNil(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	cats, err := m.Categories(ctx)
	if err != nil || cats == nil {
		t.Errorf("Categories = %v, %v; want empty non-nil", cats, err)
	}
	subs, err := m.Subcategories(ctx, uuid.New())
	if err != nil || subs == nil {
		t.Errorf("Subcategories = %v, %v; want empty non-nil", subs, err)
	}
	courses, err := m.Courses(ctx, CourseQuery{})
	if err != nil || courses == nil {
		t.Errorf("Courses = %v, %v; want empty non-nil", courses, err)
	}
	sessions, err := m.Sessions(ctx, SessionQuery{CourseID: uuid.New()})
	if err != nil || sessions == nil {
		t.Errorf("Sessions = %v, %v; want empty non-nil", sessions, err)
	}
}

func TestMemoryNotFound(t *testing.T) {
	m := NewDemoMemory(testToday)
	ctx := context.Background()

	if _, err := m.CourseBySlug(ctx, "no-such-course"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CourseBySlug: got %v, want ErrNotFound", err)
	}
	if _, err := m.CategoryBySlug(ctx, "no-such-category"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CategoryBySlug: got %v, want ErrNotFound", err)
	}
	if _, err := m.SessionByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("SessionByID: got %v, want ErrNotFound", err)
	}
	if _, err := m.CustomPageBySlug(ctx, "terms"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unpublished page: got %v, want ErrNotFound", err)
	}
	if _, err := m.CompanyInfo(ctx); err != nil {
		t.Errorf("CompanyInfo: %v", err)
	}
}

func TestMemoryInvalidInput(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.CourseBySlug(ctx, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("blank slug: got %v, want ErrInvalidInput", err)
	}
	if _, err := m.Subcategories(ctx, uuid.Nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil category ID: got %v, want ErrInvalidInput", err)
	}
	if _, err := m.Sessions(ctx, SessionQuery{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil course ID: got %v, want ErrInvalidInput", err)
	}
	if m.TotalCalls() != 0 {
		t.Errorf("invalid input reached the store: %d calls", m.TotalCalls())
	}
}

func TestMemoryCoursesFilterAndOrder(t *testing.T) {
	m := NewDemoMemory(testToday)
	ctx := context.Background()

	active, err := m.Courses(ctx, CourseQuery{Status: models.CourseStatusActive})
	if err != nil {
		t.Fatalf("Courses: %v", err)
	}
	if len(active) != 9 {
		t.Fatalf("got %d active courses, want 9", len(active))
	}
	seenNonFeatured := false
	for i, c := range active {
		if c.Status != models.CourseStatusActive {
			t.Errorf("course %q has status %q", c.Title, c.Status)
		}
		if c.CategoryName == "" || c.CategorySlug == "" {
			t.Errorf("course %q: category name not expanded", c.Title)
		}
		if !c.Featured {
			seenNonFeatured = true
		} else if seenNonFeatured {
			t.Errorf("featured course %q after a non-featured one", c.Title)
		}
		if i > 0 && active[i-1].Featured == c.Featured && active[i-1].Title > c.Title {
			t.Errorf("titles out of order: %q before %q", active[i-1].Title, c.Title)
		}
	}

	limited, err := m.Courses(ctx, CourseQuery{Status: models.CourseStatusActive, FeaturedOnly: true, Order: OrderTitle, Limit: 3})
	if err != nil {
		t.Fatalf("Courses: %v", err)
	}
	if len(limited) != 3 {
		t.Fatalf("got %d courses, want 3", len(limited))
	}
	for _, c := range limited {
		if !c.Featured {
			t.Errorf("non-featured course %q returned", c.Title)
		}
	}
}

func TestMemoryCoursesSearch(t *testing.T) {
	m := NewDemoMemory(testToday)
	ctx := context.Background()

	tests := []struct {
		search string
		want   int
	}{
		{search: "LEADERSHIP", want: 1},       // title match, case-insensitive
		{search: "mock exams", want: 1},       // short description
		{search: "who should attend", want: 10}, // full description, drafts included without a status filter
		{search: "nothing matches this", want: 0},
	}

	for _, tt := range tests {
		got, err := m.Courses(ctx, CourseQuery{Search: tt.search})
		if err != nil {
			t.Fatalf("Courses(%q): %v", tt.search, err)
		}
		if len(got) != tt.want {
			t.Errorf("Courses(%q) returned %d, want %d", tt.search, len(got), tt.want)
		}
	}
}

func TestMemorySessionsFilter(t *testing.T) {
	m := NewDemoMemory(testToday)
	ctx := context.Background()

	course, err := m.CourseBySlug(ctx, "advanced-leadership-skills")
	if err != nil {
		t.Fatalf("CourseBySlug: %v", err)
	}

	all, err := m.Sessions(ctx, SessionQuery{CourseID: course.ID})
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d sessions, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].StartDate.Before(all[i-1].StartDate) {
			t.Errorf("sessions not ordered by start date")
		}
	}

	upcoming, err := m.Sessions(ctx, SessionQuery{
		CourseID: course.ID, Status: models.SessionStatusUpcoming, From: testToday, Limit: 1,
	})
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(upcoming) != 1 {
		t.Fatalf("got %d sessions, want 1", len(upcoming))
	}
	if want := testToday.AddDate(0, 0, 14); !upcoming[0].StartDate.Equal(want) {
		t.Errorf("first upcoming session starts %v, want %v", upcoming[0].StartDate, want)
	}
}

func TestMemoryFaultInjection(t *testing.T) {
	m := NewDemoMemory(testToday)
	ctx := context.Background()
	boom := errors.New("connection reset")

	cats, _ := m.Categories(ctx)
	target := cats[0].ID
	m.FailOn(OpSubcategories, target.String(), boom)

	if _, err := m.Subcategories(ctx, target); !IsTransport(err) || !errors.Is(err, boom) {
		t.Errorf("targeted fault: got %v, want TransportError wrapping %v", err, boom)
	}
	if _, err := m.Subcategories(ctx, cats[1].ID); err != nil {
		t.Errorf("sibling category should not fail: %v", err)
	}

	m.FailOn(OpSubcategories, target.String(), nil)
	if _, err := m.Subcategories(ctx, target); err != nil {
		t.Errorf("cleared fault still fires: %v", err)
	}
	if got := m.Calls(OpSubcategories); got != 3 {
		t.Errorf("Calls(%s) = %d, want 3", OpSubcategories, got)
	}
}

func TestMemoryDelayHonorsContext(t *testing.T) {
	m := NewDemoMemory(testToday)
	m.SetDelay(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.Categories(ctx)
	if !IsTransport(err) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got %v, want TransportError wrapping DeadlineExceeded", err)
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	m := NewDemoMemory(testToday)
	ctx := context.Background()

	first, _ := m.CourseBySlug(ctx, "advanced-leadership-skills")
	first.Title = "mutated"
	*first.DiscountPrice = 1

	second, _ := m.CourseBySlug(ctx, "advanced-leadership-skills")
	if second.Title != "Advanced Leadership Skills" {
		t.Errorf("stored title mutated: %q", second.Title)
	}
	if *second.DiscountPrice != 2100 {
		t.Errorf("stored discount mutated: %v", *second.DiscountPrice)
	}
}

func TestMemoryRegistrations(t *testing.T) {
	m := NewDemoMemory(testToday)
	ctx := context.Background()

	course, _ := m.CourseBySlug(ctx, "pmp-exam-bootcamp")
	sessions, _ := m.Sessions(ctx, SessionQuery{CourseID: course.ID})

	for i := 0; i < 2; i++ {
		r, err := m.CreateRegistration(ctx, &models.Registration{SessionID: sessions[0].ID, FullName: "A", Email: "a@example.com"})
		if err != nil {
			t.Fatalf("CreateRegistration: %v", err)
		}
		if r.ID == uuid.Nil || r.CreatedAt.IsZero() || r.PaymentStatus != models.PaymentStatusPending {
			t.Errorf("registration defaults not applied: %+v", r)
		}
	}

	counts, err := m.RegistrationCounts(ctx, []uuid.UUID{sessions[0].ID, sessions[1].ID})
	if err != nil {
		t.Fatalf("RegistrationCounts: %v", err)
	}
	if counts[sessions[0].ID] != 2 || counts[sessions[1].ID] != 0 {
		t.Errorf("counts = %v", counts)
	}

	if _, err := m.CreateRegistration(ctx, &models.Registration{SessionID: uuid.New()}); !IsTransport(err) {
		t.Errorf("unknown session: got %v, want TransportError", err)
	}
}

func TestMemoryCourseByID(t *testing.T) {
	m := NewDemoMemory(testToday)
	ctx := context.Background()

	bySlug, _ := m.CourseBySlug(ctx, "board-governance-masterclass")
	byID, err := m.CourseByID(ctx, bySlug.ID)
	if err != nil {
		t.Fatalf("CourseByID: %v", err)
	}
	if byID.Slug != bySlug.Slug || byID.Status != models.CourseStatusDraft {
		t.Errorf("CourseByID returned %q (%s)", byID.Slug, byID.Status)
	}
	if _, err := m.CourseByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown ID: got %v, want ErrNotFound", err)
	}
}
