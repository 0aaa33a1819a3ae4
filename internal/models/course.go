// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CourseStatus represents the publishing state of a course.
type CourseStatus string

const (
	CourseStatusDraft  CourseStatus = "draft"
	CourseStatusActive CourseStatus = "active"
)

// Course is a training offering. Category and subcategory names are expanded
// from the foreign keys by the gateway; sessions are fetched separately and
// attached by the aggregation layer.
type Course struct {
	ID               uuid.UUID    `db:"id" json:"id"`
	Title            string       `db:"title" json:"title"`
	TitleAr          string       `db:"title_ar" json:"title_ar,omitempty"`
	Slug             string       `db:"slug" json:"slug"`
	ShortDescription string       `db:"short_description" json:"short_description"`
	Description      string       `db:"description" json:"description"`
	Price            float64      `db:"price" json:"price"`
	DiscountPrice    *float64     `db:"discount_price" json:"discount_price,omitempty"`
	Duration         string       `db:"duration" json:"duration"`
	Level            string       `db:"level" json:"level"`
	Status           CourseStatus `db:"status" json:"status"`
	Featured         bool         `db:"featured" json:"featured"`
	CategoryID       uuid.UUID    `db:"category_id" json:"category_id"`
	SubcategoryID    *uuid.UUID   `db:"subcategory_id" json:"subcategory_id,omitempty"`
	Image            string       `db:"image" json:"image"`
	Brochure         string       `db:"brochure" json:"brochure,omitempty"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at" json:"updated_at"`

	// Expanded from foreign keys.
	CategoryName      string `db:"category_name" json:"category_name"`
	CategoryNameAr    string `db:"category_name_ar" json:"category_name_ar,omitempty"`
	CategorySlug      string `db:"category_slug" json:"category_slug"`
	SubcategoryName   string `db:"subcategory_name" json:"subcategory_name"`
	SubcategoryNameAr string `db:"subcategory_name_ar" json:"subcategory_name_ar,omitempty"`
	SubcategorySlug   string `db:"subcategory_slug" json:"subcategory_slug"`

	// Virtual fields populated by the aggregation layer.
	DescriptionHTML string    `db:"-" json:"description_html"`
	Sessions        []Session `db:"-" json:"sessions"`
}

// IsActive returns true if the course is visible on the public site.
func (c *Course) IsActive() bool {
	return c.Status == CourseStatusActive
}

// EffectivePrice returns the discount price when one is set and lower than
// the list price, otherwise the list price.
func (c *Course) EffectivePrice() float64 {
	if c.DiscountPrice != nil && *c.DiscountPrice >= 0 && *c.DiscountPrice < c.Price {
		return *c.DiscountPrice
	}
	return c.Price
}

// DisplayTitle returns the title in the requested language.
func (c *Course) DisplayTitle(lang Lang) string {
	return lang.Pick(c.Title, c.TitleAr)
}

// Localize returns a copy of the course with display fields switched to the
// requested language. English is returned unchanged.
func (c Course) Localize(lang Lang) Course {
	if lang != LangArabic {
		return c
	}
	c.Title = lang.Pick(c.Title, c.TitleAr)
	c.CategoryName = lang.Pick(c.CategoryName, c.CategoryNameAr)
	c.SubcategoryName = lang.Pick(c.SubcategoryName, c.SubcategoryNameAr)
	if len(c.Sessions) > 0 {
		sessions := make([]Session, len(c.Sessions))
		for i, s := range c.Sessions {
			s.Location = lang.Pick(s.Location, s.LocationAr)
			sessions[i] = s
		}
		c.Sessions = sessions
	}
	return c
}
