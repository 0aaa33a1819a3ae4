// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"strings"
	"testing"
)

func newTestClient(t *testing.T, publicURL string) *Client {
	t.Helper()
	c, err := New("https://s3.example.com/", "eu-central", "key", "secret", "intex-public", publicURL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewWithoutCredentials(t *testing.T) {
	c, err := New("", "", "", "", "", "")
	if c != nil || err != nil {
		t.Errorf("New with empty config = %v, %v; want nil, nil", c, err)
	}
	if _, err := New("https://s3.example.com", "", "k", "s", "", ""); err == nil {
		t.Error("expected error for missing bucket")
	}
}

func TestFileURL(t *testing.T) {
	c := newTestClient(t, "")
	if got, want := c.FileURL("courses/a.jpg"), "https://s3.example.com/intex-public/courses/a.jpg"; got != want {
		t.Errorf("FileURL = %q, want %q", got, want)
	}

	cdn := newTestClient(t, "https://cdn.example.com/")
	if got, want := cdn.FileURL("/courses/a.jpg"), "https://cdn.example.com/courses/a.jpg"; got != want {
		t.Errorf("FileURL with CDN = %q, want %q", got, want)
	}
}

func TestResolveImage(t *testing.T) {
	c := newTestClient(t, "https://cdn.example.com")
	tests := []struct {
		ref  string
		want string
	}{
		{"", ""},
		{"courses/pmp.jpg", "https://cdn.example.com/courses/pmp.jpg"},
		{"https://images.example.org/x.png", "https://images.example.org/x.png"},
		{"http://legacy.example.org/x.png", "http://legacy.example.org/x.png"},
		{"/static/placeholder.png", "/static/placeholder.png"},
	}
	for _, tt := range tests {
		if got := c.ResolveImage(tt.ref); got != tt.want {
			t.Errorf("ResolveImage(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestExtractKey(t *testing.T) {
	c := newTestClient(t, "https://cdn.example.com")

	for _, u := range []string{
		"https://cdn.example.com/courses/a.jpg",
		"https://s3.example.com/intex-public/courses/a.jpg",
	} {
		key, ok := c.ExtractKey(u)
		if !ok || key != "courses/a.jpg" {
			t.Errorf("ExtractKey(%q) = %q, %v", u, key, ok)
		}
	}
	if _, ok := c.ExtractKey("https://elsewhere.example.com/a.jpg"); ok {
		t.Error("foreign URL should not match")
	}
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("/brochures/", "Course Outline.PDF")
	if !strings.HasPrefix(key, "brochures/") || !strings.HasSuffix(key, ".pdf") {
		t.Errorf("ObjectKey = %q", key)
	}
	if ObjectKey("brochures", "a.pdf") == ObjectKey("brochures", "a.pdf") {
		t.Error("ObjectKey should be unique per call")
	}
	if strings.Contains(ObjectKey("", "logo.png"), "/") {
		t.Error("empty prefix should not add a separator")
	}
}
