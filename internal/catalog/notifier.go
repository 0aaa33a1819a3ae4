// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import "time"

// Notice is a transient, user-facing report of a degraded result.
type Notice struct {
	Op      string    `json:"op"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier receives notices. Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notice) { f(n) }

type discard struct{}

func (discard) Notify(Notice) {}

var noticeMessages = map[string]string{
	opListCategories:  "Categories could not be loaded. Please try again shortly.",
	opListCourses:     "Courses could not be loaded. Please try again shortly.",
	opFeaturedCourses: "Featured courses could not be loaded.",
	opCourseBySlug:    "This course could not be loaded.",
	opCategoryBySlug:  "This category could not be loaded.",
	opSearchCourses:   "Search is temporarily unavailable.",
}

func noticeMessage(op string) string {
	if m, ok := noticeMessages[op]; ok {
		return m
	}
	return "Some content could not be loaded."
}
