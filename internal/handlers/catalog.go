// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API served to the catalog front end.
// Read endpoints always answer with a well-formed body; when a detail view
// cannot be loaded the placeholder is returned with status 404, or 503 when
// the backend could not be reached.
package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"intex/internal/catalog"
	"intex/internal/gateway"
	"intex/internal/models"
	"intex/internal/sitecache"
)

// API groups the catalog handlers around one site cache.
type API struct {
	site *sitecache.Context
}

// New creates the handler group.
func New(site *sitecache.Context) *API {
	return &API{site: site}
}

type healthBody struct {
	Status string `json:"status"`
	State  string `json:"state"`
}

// Health reports liveness and the site cache state. Degraded is still 200;
// only a cache that never loaded is reported as unavailable.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	state := a.site.State()
	status := http.StatusOK
	body := healthBody{Status: "ok", State: state.String()}
	if state == sitecache.StateUninitialized || state == sitecache.StateLoading {
		status = http.StatusServiceUnavailable
		body.Status = "starting"
	}
	writeJSON(w, status, body)
}

type bootstrapBody struct {
	State      string            `json:"state"`
	LoadedAt   time.Time         `json:"loaded_at"`
	Categories []models.Category `json:"categories"`
	Courses    []models.Course   `json:"courses"`
	Featured   []models.Course   `json:"featured"`
	Notices    []catalog.Notice  `json:"notices"`
}

// Bootstrap returns the shared snapshot: the category tree, the course
// list and the featured courses, plus any recent notices.
func (a *API) Bootstrap(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)
	snap := a.site.Snapshot()
	setLanguage(w, lang)
	writeJSON(w, http.StatusOK, bootstrapBody{
		State:      a.site.State().String(),
		LoadedAt:   snap.LoadedAt,
		Categories: localizeCategories(snap.Categories, lang),
		Courses:    localizeCourses(snap.Courses, lang),
		Featured:   localizeCourses(snap.Featured, lang),
		Notices:    a.site.Notices(),
	})
}

// Categories returns the category tree from the snapshot.
func (a *API) Categories(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)
	setLanguage(w, lang)
	writeJSON(w, http.StatusOK, localizeCategories(a.site.Snapshot().Categories, lang))
}

// Category returns one category with its subcategories and courses.
func (a *API) Category(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)
	detail, err := a.site.CategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	detail.Category = localizeCategory(detail.Category, lang)
	detail.Courses = localizeCourses(detail.Courses, lang)

	setLanguage(w, lang)
	writeJSON(w, readStatus(err), detail)
}

// Subcategory returns one subcategory of a category with its courses.
func (a *API) Subcategory(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)
	detail, err := a.site.SubcategoryBySlug(r.Context(), chi.URLParam(r, "slug"), chi.URLParam(r, "subSlug"))
	detail.Category = localizeCategory(detail.Category, lang)
	detail.Subcategory.Name = detail.Subcategory.DisplayName(lang)
	detail.Courses = localizeCourses(detail.Courses, lang)

	setLanguage(w, lang)
	writeJSON(w, readStatus(err), detail)
}

// Courses returns every active course from the snapshot.
func (a *API) Courses(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)
	setLanguage(w, lang)
	writeJSON(w, http.StatusOK, localizeCourses(a.site.Snapshot().Courses, lang))
}

// Featured returns the featured courses from the snapshot.
func (a *API) Featured(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)
	setLanguage(w, lang)
	writeJSON(w, http.StatusOK, localizeCourses(a.site.Snapshot().Featured, lang))
}

// Search returns the active courses matching ?q=. A failed search answers
// 200 with an empty list.
func (a *API) Search(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)
	courses, _ := a.site.Search(r.Context(), r.URL.Query().Get("q"))
	setLanguage(w, lang)
	writeJSON(w, http.StatusOK, localizeCourses(courses, lang))
}

// Table returns one row per upcoming session, ordered by start date.
func (a *API) Table(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)
	rows, _ := a.site.Service().Schedule(r.Context(), lang)
	setLanguage(w, lang)
	writeJSON(w, http.StatusOK, rows)
}

// Course returns one course with every upcoming session.
func (a *API) Course(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)
	course, err := a.site.CourseBySlug(r.Context(), chi.URLParam(r, "slug"))
	setLanguage(w, lang)
	writeJSON(w, readStatus(err), course.Localize(lang))
}

// readStatus maps a detail lookup error to a status. The body is the view
// or its placeholder in every case; a partial view is still a 200.
func readStatus(err error) int {
	switch {
	case err == nil, catalog.IsPartial(err):
		return http.StatusOK
	case gateway.IsTransport(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusNotFound
	}
}
