// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported display language.
type Lang string

const (
	LangEnglish Lang = "en"
	LangArabic  Lang = "ar"
)

// ParseLang maps a ?lang= value or an Accept-Language header to a supported
// language. Entries are ranked by quality and matched on their base
// language; ties go to the earlier entry. Anything unrecognized or
// malformed falls back to English.
func ParseLang(s string) Lang {
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil {
		return LangEnglish
	}
	for _, tag := range tags {
		switch base, _ := tag.Base(); base.String() {
		case "ar":
			return LangArabic
		case "en":
			return LangEnglish
		}
	}
	return LangEnglish
}

// Pick returns the Arabic text when Arabic is selected and a translation
// exists, otherwise the English text.
func (l Lang) Pick(en, ar string) string {
	if l == LangArabic && strings.TrimSpace(ar) != "" {
		return ar
	}
	return en
}

// IsRTL reports whether the language is written right-to-left.
func (l Lang) IsRTL() bool {
	return l == LangArabic
}
