// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"intex/internal/gateway"
)

// Seed loads the demo catalog when the categories table is empty.
// Everything is inserted in one transaction.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	d := gateway.Demo(time.Now().UTC())

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	if err := seedDataset(tx, d); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo catalog",
		"categories", len(d.Categories),
		"courses", len(d.Courses),
		"sessions", len(d.Sessions),
	)
	return nil
}

func seedDataset(tx *sql.Tx, d gateway.Dataset) error {
	for _, c := range d.Categories {
		if _, err := tx.Exec(`
			INSERT INTO categories (id, name, name_ar, slug, image, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, c.ID, c.Name, c.NameAr, c.Slug, c.Image, c.SortOrder); err != nil {
			return fmt.Errorf("seed insert category %s: %w", c.Slug, err)
		}
	}
	for _, s := range d.Subcategories {
		if _, err := tx.Exec(`
			INSERT INTO subcategories (id, category_id, name, name_ar, slug, image)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, s.ID, s.CategoryID, s.Name, s.NameAr, s.Slug, s.Image); err != nil {
			return fmt.Errorf("seed insert subcategory %s: %w", s.Slug, err)
		}
	}
	for _, c := range d.Courses {
		if _, err := tx.Exec(`
			INSERT INTO courses (id, title, title_ar, slug, short_description, description,
				price, discount_price, duration, level, status, featured,
				category_id, subcategory_id, image, brochure)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		`, c.ID, c.Title, c.TitleAr, c.Slug, c.ShortDescription, c.Description,
			c.Price, c.DiscountPrice, c.Duration, c.Level, string(c.Status), c.Featured,
			c.CategoryID, c.SubcategoryID, c.Image, c.Brochure); err != nil {
			return fmt.Errorf("seed insert course %s: %w", c.Slug, err)
		}
	}
	for _, s := range d.Sessions {
		if _, err := tx.Exec(`
			INSERT INTO sessions (id, course_id, start_date, end_date, location, location_ar, capacity, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, s.ID, s.CourseID, s.StartDate, s.EndDate, s.Location, s.LocationAr, s.Capacity, string(s.Status)); err != nil {
			return fmt.Errorf("seed insert session: %w", err)
		}
	}
	for _, s := range d.Sliders {
		if _, err := tx.Exec(`
			INSERT INTO sliders (id, title, title_ar, subtitle, subtitle_ar, image, link, sort_order, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, s.ID, s.Title, s.TitleAr, s.Subtitle, s.SubtitleAr, s.Image, s.Link, s.SortOrder, s.Active); err != nil {
			return fmt.Errorf("seed insert slider: %w", err)
		}
	}
	for _, p := range d.Partners {
		if _, err := tx.Exec(`
			INSERT INTO partners (id, name, logo, website, sort_order)
			VALUES ($1, $2, $3, $4, $5)
		`, p.ID, p.Name, p.Logo, p.Website, p.SortOrder); err != nil {
			return fmt.Errorf("seed insert partner %s: %w", p.Name, err)
		}
	}

	ci := d.Company
	if _, err := tx.Exec(`
		INSERT INTO company_info (name, name_ar, email, phone, address, address_ar, about, about_ar,
			facebook, linkedin, twitter, instagram)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, ci.Name, ci.NameAr, ci.Email, ci.Phone, ci.Address, ci.AddressAr, ci.About, ci.AboutAr,
		ci.Facebook, ci.LinkedIn, ci.Twitter, ci.Instagram); err != nil {
		return fmt.Errorf("seed insert company info: %w", err)
	}

	for _, p := range d.Pages {
		if _, err := tx.Exec(`
			INSERT INTO custom_pages (id, title, title_ar, slug, body, body_ar, published)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, p.ID, p.Title, p.TitleAr, p.Slug, p.Body, p.BodyAr, p.Published); err != nil {
			return fmt.Errorf("seed insert page %s: %w", p.Slug, err)
		}
	}
	return nil
}
