// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"intex/internal/catalog"
	"intex/internal/models"
)

// The localize helpers return copies. Values from the site cache snapshot
// are shared between requests and must not be written to.

func localizeCourses(courses []models.Course, lang models.Lang) []models.Course {
	if lang != models.LangArabic {
		return courses
	}
	out := make([]models.Course, len(courses))
	for i, c := range courses {
		out[i] = c.Localize(lang)
	}
	return out
}

func localizeCategory(c models.Category, lang models.Lang) models.Category {
	if lang != models.LangArabic {
		return c
	}
	c.Name = c.DisplayName(lang)
	if len(c.Subcategories) > 0 {
		subs := make([]models.Subcategory, len(c.Subcategories))
		for i, s := range c.Subcategories {
			s.Name = s.DisplayName(lang)
			subs[i] = s
		}
		c.Subcategories = subs
	}
	return c
}

func localizeCategories(cats []models.Category, lang models.Lang) []models.Category {
	if lang != models.LangArabic {
		return cats
	}
	out := make([]models.Category, len(cats))
	for i, c := range cats {
		out[i] = localizeCategory(c, lang)
	}
	return out
}

func localizeSite(sc catalog.SiteContent, lang models.Lang) catalog.SiteContent {
	if lang != models.LangArabic {
		return sc
	}
	sliders := make([]models.Slider, len(sc.Sliders))
	for i, s := range sc.Sliders {
		s.Title = lang.Pick(s.Title, s.TitleAr)
		s.Subtitle = lang.Pick(s.Subtitle, s.SubtitleAr)
		sliders[i] = s
	}
	sc.Sliders = sliders

	c := sc.Company
	c.Name = lang.Pick(c.Name, c.NameAr)
	c.Address = lang.Pick(c.Address, c.AddressAr)
	c.About = lang.Pick(c.About, c.AboutAr)
	sc.Company = c
	return sc
}
