// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package gateway

import (
	"time"

	"github.com/google/uuid"

	"intex/internal/models"
	"intex/internal/slug"
)

// Dataset is a full set of rows, used to seed the memory backend and the
// development database.
type Dataset struct {
	Categories    []models.Category
	Subcategories []models.Subcategory
	Courses       []models.Course
	Sessions      []models.Session
	Sliders       []models.Slider
	Partners      []models.Partner
	Company       models.CompanyInfo
	Pages         []models.CustomPage
}

// Load inserts every row of d.
func (m *Memory) Load(d Dataset) {
	for _, c := range d.Categories {
		m.PutCategory(c)
	}
	for _, s := range d.Subcategories {
		m.PutSubcategory(s)
	}
	for _, c := range d.Courses {
		m.PutCourse(c)
	}
	for _, s := range d.Sessions {
		m.PutSession(s)
	}
	for _, s := range d.Sliders {
		m.PutSlider(s)
	}
	for _, p := range d.Partners {
		m.PutPartner(p)
	}
	m.SetCompanyInfo(d.Company)
	for _, p := range d.Pages {
		m.PutCustomPage(p)
	}
}

// demoNamespace derives stable IDs so a reseeded database keeps its URLs.
var demoNamespace = uuid.MustParse("6f1c2e0a-93b4-4d1e-8a61-2f7d3c5b9e10")

func demoID(name string) uuid.UUID {
	return uuid.NewSHA1(demoNamespace, []byte(name))
}

// Demo returns the demonstration catalog. Session dates are relative to
// today so that the upcoming sessions stay upcoming.
func Demo(today time.Time) Dataset {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	at := func(days int) time.Time { return day.AddDate(0, 0, days) }
	price := func(v float64) *float64 { return &v }

	var d Dataset

	type sub struct{ name, nameAr string }
	cats := []struct {
		name, nameAr string
		subs         []sub
	}{
		{"Leadership", "القيادة", []sub{{"Executive Leadership", "القيادة التنفيذية"}, {"Team Management", "إدارة الفرق"}}},
		{"Finance", "المالية", []sub{{"Accounting", "المحاسبة"}, {"Financial Analysis", "التحليل المالي"}}},
		{"Project Management", "إدارة المشاريع", []sub{{"Agile", "أجايل"}, {"PMP Preparation", "التحضير لشهادة PMP"}}},
		{"Human Resources", "الموارد البشرية", nil},
	}
	for i, c := range cats {
		cs := slug.Generate(c.name)
		d.Categories = append(d.Categories, models.Category{
			ID: demoID("category/" + cs), Name: c.name, NameAr: c.nameAr, Slug: cs,
			Image: "categories/" + cs + ".jpg", SortOrder: i,
		})
		for _, s := range c.subs {
			ss := slug.Generate(s.name)
			d.Subcategories = append(d.Subcategories, models.Subcategory{
				ID: demoID("subcategory/" + cs + "/" + ss), CategoryID: demoID("category/" + cs),
				Name: s.name, NameAr: s.nameAr, Slug: ss, Image: "subcategories/" + ss + ".jpg",
			})
		}
	}

	type course struct {
		title, titleAr, category, subcategory string
		short, level, duration                string
		price                                 float64
		discount                              *float64
		featured                              bool
		status                                models.CourseStatus
	}
	courses := []course{
		{"Advanced Leadership Skills", "مهارات القيادة المتقدمة", "leadership", "executive-leadership",
			"Lead high-performing teams through change.", "Advanced", "5 days", 2500, price(2100), true, models.CourseStatusActive},
		{"Strategic Thinking for Executives", "التفكير الاستراتيجي للمديرين", "leadership", "executive-leadership",
			"Build long-range strategy and make it stick.", "Advanced", "3 days", 1900, nil, false, models.CourseStatusActive},
		{"Managing Remote Teams", "إدارة الفرق عن بعد", "leadership", "team-management",
			"Practical habits for distributed teams.", "Intermediate", "2 days", 900, nil, true, models.CourseStatusActive},
		{"IFRS Essentials", "أساسيات المعايير الدولية", "finance", "accounting",
			"Apply international reporting standards with confidence.", "Intermediate", "4 days", 1600, nil, true, models.CourseStatusActive},
		{"Financial Modelling in Excel", "النمذجة المالية باستخدام إكسل", "finance", "financial-analysis",
			"Forecasts, valuation and scenario analysis.", "Advanced", "3 days", 1400, price(1250), false, models.CourseStatusActive},
		{"Agile Project Delivery", "إدارة المشاريع بمنهجية أجايل", "project-management", "agile",
			"Scrum and Kanban for delivery teams.", "Beginner", "2 days", 800, nil, true, models.CourseStatusActive},
		{"PMP Exam Bootcamp", "معسكر التحضير لاختبار PMP", "project-management", "pmp-preparation",
			"Thirty-five contact hours and mock exams.", "Intermediate", "5 days", 2200, nil, true, models.CourseStatusActive},
		{"Talent Acquisition Fundamentals", "أساسيات استقطاب المواهب", "human-resources", "",
			"Structured interviewing and employer branding.", "Beginner", "2 days", 700, nil, true, models.CourseStatusActive},
		{"Compensation and Benefits", "التعويضات والمزايا", "human-resources", "",
			"Design fair, competitive pay structures.", "Intermediate", "3 days", 1100, nil, true, models.CourseStatusActive},
		{"Board Governance Masterclass", "ورشة حوكمة مجالس الإدارة", "leadership", "executive-leadership",
			"Not yet published.", "Advanced", "1 day", 3000, nil, true, models.CourseStatusDraft},
	}
	for _, c := range courses {
		cs := slug.Generate(c.title)
		course := models.Course{
			ID: demoID("course/" + cs), Title: c.title, TitleAr: c.titleAr, Slug: cs,
			ShortDescription: c.short,
			Description: "## Overview\n\n" + c.short + "\n\n## Who should attend\n\n" +
				"- Managers and team leads\n- Specialists moving into " + c.level + " roles\n",
			Price: c.price, DiscountPrice: c.discount, Duration: c.duration, Level: c.level,
			Status: c.status, Featured: c.featured, CategoryID: demoID("category/" + c.category),
			Image: "courses/" + cs + ".jpg",
		}
		if c.subcategory != "" {
			id := demoID("subcategory/" + c.category + "/" + c.subcategory)
			course.SubcategoryID = &id
		}
		d.Courses = append(d.Courses, course)

		// Two upcoming sessions, one completed session in the past.
		for i, offset := range []int{36, 14} {
			loc, locAr := "Dubai", "دبي"
			if i == 1 {
				loc, locAr = "Riyadh", "الرياض"
			}
			d.Sessions = append(d.Sessions, models.Session{
				ID: demoID("session/" + cs + "/" + loc), CourseID: course.ID,
				StartDate: at(offset), EndDate: at(offset + 4), Location: loc, LocationAr: locAr,
				Capacity: 20, Status: models.SessionStatusUpcoming,
			})
		}
		d.Sessions = append(d.Sessions, models.Session{
			ID: demoID("session/" + cs + "/past"), CourseID: course.ID,
			StartDate: at(-30), EndDate: at(-26), Location: "Cairo", LocationAr: "القاهرة",
			Capacity: 20, Status: models.SessionStatusCompleted,
		})
	}

	d.Sliders = []models.Slider{
		{ID: demoID("slider/1"), Title: "Grow your leaders", TitleAr: "طوّر قادتك", Subtitle: "Executive programs across the region",
			SubtitleAr: "برامج تنفيذية في المنطقة", Image: "sliders/leaders.jpg", Link: "/categories/leadership", SortOrder: 1, Active: true},
		{ID: demoID("slider/2"), Title: "Certified project managers", TitleAr: "مديرو مشاريع معتمدون", Subtitle: "PMP bootcamps every month",
			SubtitleAr: "معسكرات PMP كل شهر", Image: "sliders/pmp.jpg", Link: "/courses/pmp-exam-bootcamp", SortOrder: 2, Active: true},
	}
	d.Partners = []models.Partner{
		{ID: demoID("partner/pmi"), Name: "PMI", Logo: "partners/pmi.png", Website: "https://www.pmi.org", SortOrder: 1},
		{ID: demoID("partner/acca"), Name: "ACCA", Logo: "partners/acca.png", Website: "https://www.accaglobal.com", SortOrder: 2},
	}
	d.Company = models.CompanyInfo{
		Name: "Intex Training", NameAr: "إنتكس للتدريب", Email: "info@intex.local", Phone: "+971 4 000 0000",
		Address: "Business Bay, Dubai", AddressAr: "الخليج التجاري، دبي",
		About: "Professional training for organizations across the Middle East.", AboutAr: "تدريب احترافي للمؤسسات في الشرق الأوسط.",
	}
	d.Pages = []models.CustomPage{
		{ID: demoID("page/about"), Title: "About us", TitleAr: "من نحن", Slug: "about",
			Body: "# About us\n\nWe have delivered corporate training since 2009.", BodyAr: "# من نحن\n\nنقدم التدريب المؤسسي منذ عام 2009.", Published: true},
		{ID: demoID("page/terms"), Title: "Terms", Slug: "terms", Body: "# Terms\n\nDraft.", Published: false},
	}
	return d
}

// NewDemoMemory returns a memory gateway preloaded with Demo(today).
func NewDemoMemory(today time.Time) *Memory {
	m := NewMemory()
	m.Load(Demo(today))
	return m
}
