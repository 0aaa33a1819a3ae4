// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"intex/internal/models"
	"intex/internal/slug"
)

// SiteContent is the chrome shared by every page: landing sliders, partner
// logos and company contact details.
type SiteContent struct {
	Sliders  []models.Slider    `json:"sliders"`
	Partners []models.Partner   `json:"partners"`
	Company  models.CompanyInfo `json:"company"`
}

// SiteContent fetches the display records concurrently. Each part degrades
// independently to an empty value.
func (s *Service) SiteContent(ctx context.Context) SiteContent {
	out := SiteContent{Sliders: []models.Slider{}, Partners: []models.Partner{}}

	var g errgroup.Group
	g.Go(func() error {
		sliders, err := s.gw.Sliders(ctx)
		if err != nil {
			slog.Warn("slider fetch failed", "op", opSiteContent, "error", err)
			return nil
		}
		for i := range sliders {
			sliders[i].Image = s.image(sliders[i].Image)
		}
		out.Sliders = sliders
		return nil
	})
	g.Go(func() error {
		partners, err := s.gw.Partners(ctx)
		if err != nil {
			slog.Warn("partner fetch failed", "op", opSiteContent, "error", err)
			return nil
		}
		for i := range partners {
			partners[i].Logo = s.image(partners[i].Logo)
		}
		out.Partners = partners
		return nil
	})
	g.Go(func() error {
		info, err := s.gw.CompanyInfo(ctx)
		if err != nil {
			slog.Warn("company info fetch failed", "op", opSiteContent, "error", err)
			return nil
		}
		out.Company = *info
		return nil
	})
	_ = g.Wait()

	return out
}

// PlaceholderPage is returned when a page cannot be loaded.
func PlaceholderPage() models.CustomPage {
	return models.CustomPage{}
}

// PageBySlug returns a published custom page with its body rendered in lang.
func (s *Service) PageBySlug(ctx context.Context, pageSlug string, lang models.Lang) (models.CustomPage, error) {
	page, err := s.gw.CustomPageBySlug(ctx, slug.Normalize(pageSlug))
	if err != nil {
		s.degrade(ctx, opPageBySlug, err)
		return PlaceholderPage(), fmt.Errorf("%s: %w", opPageBySlug, err)
	}
	page.Title = lang.Pick(page.Title, page.TitleAr)
	page.BodyHTML = s.markdown(opPageBySlug, lang.Pick(page.Body, page.BodyAr))
	return *page, nil
}
