// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sitecache

import (
	"sync"

	"intex/internal/catalog"
)

// DefaultNoticeCapacity is the number of notices kept by NewNotices(0).
const DefaultNoticeCapacity = 20

// Notices is a bounded ring of recent transient notices. It implements
// catalog.Notifier.
type Notices struct {
	mu    sync.Mutex
	buf   []catalog.Notice
	next  int
	full  bool
	total int
}

// NewNotices creates a ring holding up to capacity notices.
func NewNotices(capacity int) *Notices {
	if capacity <= 0 {
		capacity = DefaultNoticeCapacity
	}
	return &Notices{buf: make([]catalog.Notice, capacity)}
}

// Notify records n, evicting the oldest notice when the ring is full.
func (r *Notices) Notify(n catalog.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.next] = n
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.full = true
	}
	r.total++
}

// Recent returns the retained notices, oldest first.
func (r *Notices) Recent() []catalog.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([]catalog.Notice{}, r.buf[:r.next]...)
	}
	out := make([]catalog.Notice, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	return append(out, r.buf[:r.next]...)
}

// Total returns the number of notices ever recorded.
func (r *Notices) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}
