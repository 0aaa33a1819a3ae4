// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and the view models handed to the presentation layer.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a top-level grouping of courses. Courses reference a category
// by ID; the category never owns them.
type Category struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	NameAr    string    `db:"name_ar" json:"name_ar,omitempty"`
	Slug      string    `db:"slug" json:"slug"`
	Image     string    `db:"image" json:"image"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Virtual field populated by the aggregation layer, ordered by name.
	Subcategories []Subcategory `db:"-" json:"subcategories"`
}

// DisplayName returns the name in the requested language.
func (c *Category) DisplayName(lang Lang) string {
	return lang.Pick(c.Name, c.NameAr)
}

// Subcategory belongs to exactly one Category. The in-memory value only
// holds the parent's ID, not a pointer to it.
type Subcategory struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CategoryID uuid.UUID `db:"category_id" json:"category_id"`
	Name       string    `db:"name" json:"name"`
	NameAr     string    `db:"name_ar" json:"name_ar,omitempty"`
	Slug       string    `db:"slug" json:"slug"`
	Image      string    `db:"image" json:"image"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayName returns the name in the requested language.
func (s *Subcategory) DisplayName(lang Lang) string {
	return lang.Pick(s.Name, s.NameAr)
}
