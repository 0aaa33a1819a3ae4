// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Site returns sliders, partners and company details.
func (a *API) Site(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)
	sc := a.site.Service().SiteContent(r.Context())
	setLanguage(w, lang)
	writeJSON(w, http.StatusOK, localizeSite(sc, lang))
}

// Page returns a published custom page rendered in the requested language.
func (a *API) Page(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)
	page, err := a.site.Service().PageBySlug(r.Context(), chi.URLParam(r, "slug"), lang)
	setLanguage(w, lang)
	writeJSON(w, readStatus(err), page)
}
