// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Slider is a landing-page carousel entry.
type Slider struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	TitleAr    string    `db:"title_ar" json:"title_ar,omitempty"`
	Subtitle   string    `db:"subtitle" json:"subtitle"`
	SubtitleAr string    `db:"subtitle_ar" json:"subtitle_ar,omitempty"`
	Image      string    `db:"image" json:"image"`
	Link       string    `db:"link" json:"link"`
	SortOrder  int       `db:"sort_order" json:"sort_order"`
	Active     bool      `db:"active" json:"active"`
}

// Partner is a client or accreditation logo shown on the site.
type Partner struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Logo      string    `db:"logo" json:"logo"`
	Website   string    `db:"website" json:"website"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
}

// CompanyInfo holds the contact details shown in the header and footer.
// There is a single row.
type CompanyInfo struct {
	Name      string `db:"name" json:"name"`
	NameAr    string `db:"name_ar" json:"name_ar,omitempty"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone"`
	Address   string `db:"address" json:"address"`
	AddressAr string `db:"address_ar" json:"address_ar,omitempty"`
	About     string `db:"about" json:"about"`
	AboutAr   string `db:"about_ar" json:"about_ar,omitempty"`
	Facebook  string `db:"facebook" json:"facebook,omitempty"`
	LinkedIn  string `db:"linkedin" json:"linkedin,omitempty"`
	Twitter   string `db:"twitter" json:"twitter,omitempty"`
	Instagram string `db:"instagram" json:"instagram,omitempty"`
}

// CustomPage is a static page such as "About" or "Terms". Body is Markdown.
type CustomPage struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	TitleAr   string    `db:"title_ar" json:"title_ar,omitempty"`
	Slug      string    `db:"slug" json:"slug"`
	Body      string    `db:"body" json:"body"`
	BodyAr    string    `db:"body_ar" json:"body_ar,omitempty"`
	Published bool      `db:"published" json:"published"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Rendered by the aggregation layer.
	BodyHTML string `db:"-" json:"body_html"`
}
