// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"intex/internal/models"
	"intex/internal/slug"
)

// CategoryDetail is a category page: the category with its subcategories
// and its active courses.
type CategoryDetail struct {
	Category models.Category `json:"category"`
	Courses  []models.Course `json:"courses"`
}

// SubcategoryDetail is a subcategory page.
type SubcategoryDetail struct {
	Category    models.Category    `json:"category"`
	Subcategory models.Subcategory `json:"subcategory"`
	Courses     []models.Course    `json:"courses"`
}

// placeholderCategory has empty fields and an empty subcategory list.
func placeholderCategory() models.Category {
	return models.Category{Subcategories: []models.Subcategory{}}
}

// PlaceholderCategoryDetail is returned when a category cannot be loaded.
func PlaceholderCategoryDetail() CategoryDetail {
	return CategoryDetail{Category: placeholderCategory(), Courses: []models.Course{}}
}

// PlaceholderSubcategoryDetail is returned when a subcategory cannot be loaded.
func PlaceholderSubcategoryDetail() SubcategoryDetail {
	return SubcategoryDetail{Category: placeholderCategory(), Courses: []models.Course{}}
}

// ListCategories returns the two-level category tree in name order. A
// category whose subcategories cannot be fetched is kept with an empty list
// and the tree is returned with ErrPartial.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	cats, err := s.gw.Categories(ctx)
	if err != nil {
		s.degrade(ctx, opListCategories, err)
		return []models.Category{}, fmt.Errorf("%s: %w", opListCategories, err)
	}
	for i := range cats {
		cats[i].Image = s.image(cats[i].Image)
	}
	if !s.attachSubcategories(ctx, cats) {
		return cats, fmt.Errorf("%s: %w", opListCategories, ErrPartial)
	}
	return cats, nil
}

// CategoryBySlug returns a category page. Subcategories and courses are
// fetched concurrently; either failing degrades to an empty list and the
// page is returned with ErrPartial.
func (s *Service) CategoryBySlug(ctx context.Context, categorySlug string) (CategoryDetail, error) {
	cat, err := s.gw.CategoryBySlug(ctx, slug.Normalize(categorySlug))
	if err != nil {
		s.degrade(ctx, opCategoryBySlug, err)
		return PlaceholderCategoryDetail(), fmt.Errorf("%s: %w", opCategoryBySlug, err)
	}
	cat.Image = s.image(cat.Image)

	cats := []models.Category{*cat}
	var (
		courses    []models.Course
		subsOK     bool
		coursesErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		subsOK = s.attachSubcategories(ctx, cats)
		return nil
	})
	g.Go(func() error {
		courses, coursesErr = s.CoursesByCategory(ctx, cat.ID)
		return nil
	})
	_ = g.Wait()

	detail := CategoryDetail{Category: cats[0], Courses: courses}
	if !subsOK || coursesErr != nil {
		// A failed course query has already been reported by courseList.
		return detail, fmt.Errorf("%s: %w", opCategoryBySlug, ErrPartial)
	}
	return detail, nil
}

// SubcategoryBySlug returns a subcategory page. The subcategory must belong
// to the category named by categorySlug.
func (s *Service) SubcategoryBySlug(ctx context.Context, categorySlug, subcategorySlug string) (SubcategoryDetail, error) {
	fail := func(err error) (SubcategoryDetail, error) {
		s.degrade(ctx, opSubcategoryBySlug, err)
		return PlaceholderSubcategoryDetail(), fmt.Errorf("%s: %w", opSubcategoryBySlug, err)
	}

	cat, err := s.gw.CategoryBySlug(ctx, slug.Normalize(categorySlug))
	if err != nil {
		return fail(err)
	}
	sub, err := s.gw.SubcategoryBySlug(ctx, cat.ID, slug.Normalize(subcategorySlug))
	if err != nil {
		return fail(err)
	}

	cat.Image = s.image(cat.Image)
	cat.Subcategories = []models.Subcategory{}
	sub.Image = s.image(sub.Image)

	courses, err := s.CoursesBySubcategory(ctx, sub.ID)
	detail := SubcategoryDetail{Category: *cat, Subcategory: *sub, Courses: courses}
	if err != nil {
		return detail, fmt.Errorf("%s: %w", opSubcategoryBySlug, ErrPartial)
	}
	return detail, nil
}
