// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sitecache holds the process-wide view-model state: the category
// tree, the active course list and the featured subset, loaded once at
// startup and swapped atomically on refresh. On-demand lookups go through
// the catalog service, optionally behind a shared view cache.
package sitecache

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"intex/internal/cache"
	"intex/internal/catalog"
	"intex/internal/models"
	"intex/internal/slug"
)

// State is the lifecycle of the snapshot.
type State int32

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	// StateDegraded is ready, but at least one list failed on the last
	// cycle and is empty or carried over from the previous snapshot.
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// Snapshot is one fetch cycle's result. It is never modified after it is
// published; readers must not modify it either.
type Snapshot struct {
	Categories []models.Category `json:"categories"`
	Courses    []models.Course   `json:"courses"`
	Featured   []models.Course   `json:"featured"`
	LoadedAt   time.Time         `json:"loaded_at"`
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		Categories: []models.Category{},
		Courses:    []models.Course{},
		Featured:   []models.Course{},
	}
}

// ViewStore is a shared cache for on-demand lookups.
type ViewStore interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, v any)
}

// Context is the view-model cache. It is safe for concurrent use.
type Context struct {
	svc     *catalog.Service
	views   ViewStore
	notices *Notices
	now     func() time.Time

	snap  atomic.Pointer[Snapshot]
	state atomic.Int32

	once      sync.Once
	refreshMu sync.Mutex
}

// Option configures a Context.
type Option func(*Context)

// WithViewStore caches on-demand lookups in vs.
func WithViewStore(vs ViewStore) Option {
	return func(c *Context) { c.views = vs }
}

// WithNotices shares the notice ring given to the catalog service.
func WithNotices(n *Notices) Option {
	return func(c *Context) { c.notices = n }
}

// WithClock sets the time source for Snapshot.LoadedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Context) { c.now = now }
}

// New creates an uninitialized Context over svc.
func New(svc *catalog.Service, opts ...Option) *Context {
	c := &Context{svc: svc, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.notices == nil {
		c.notices = NewNotices(DefaultNoticeCapacity)
	}
	return c
}

// Service returns the underlying catalog service.
func (c *Context) Service() *catalog.Service {
	return c.svc
}

// State returns the current lifecycle state.
func (c *Context) State() State {
	return State(c.state.Load())
}

// Snapshot returns the current snapshot, or an empty one before the first
// cycle completes.
func (c *Context) Snapshot() *Snapshot {
	if s := c.snap.Load(); s != nil {
		return s
	}
	return emptySnapshot()
}

// Notices returns the recent transient notices, oldest first.
func (c *Context) Notices() []catalog.Notice {
	return c.notices.Recent()
}

// Load runs the first fetch cycle. Only the first call fetches; concurrent
// callers wait for it to finish.
func (c *Context) Load(ctx context.Context) *Snapshot {
	c.loadOnce(ctx)
	return c.Snapshot()
}

// Refresh runs another fetch cycle and publishes its snapshot. Cycles are
// serialized; readers keep the previous snapshot until the swap.
func (c *Context) Refresh(ctx context.Context) *Snapshot {
	if !c.loadOnce(ctx) {
		c.cycle(ctx)
	}
	return c.Snapshot()
}

// loadOnce reports whether this call ran the first cycle.
func (c *Context) loadOnce(ctx context.Context) bool {
	ran := false
	c.once.Do(func() {
		c.state.Store(int32(StateLoading))
		c.cycle(ctx)
		ran = true
	})
	return ran
}

// Run refreshes every interval until ctx is done. A zero interval disables
// periodic refresh.
func (c *Context) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Refresh(ctx)
		}
	}
}

// cycle fetches the three lists concurrently and publishes them. A list
// whose fetch failed keeps its value from the previous snapshot, if any.
func (c *Context) cycle(ctx context.Context) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	start := time.Now()
	prev := c.snap.Load()
	next := emptySnapshot()
	var failed atomic.Bool

	var g errgroup.Group
	g.Go(func() error {
		cats, err := c.svc.ListCategories(ctx)
		if err != nil {
			failed.Store(true)
			if prev != nil {
				cats = prev.Categories
			}
		}
		next.Categories = cats
		return nil
	})
	g.Go(func() error {
		courses, err := c.svc.ListCourses(ctx)
		if err != nil {
			failed.Store(true)
			if prev != nil {
				courses = prev.Courses
			}
		}
		next.Courses = courses
		return nil
	})
	g.Go(func() error {
		featured, err := c.svc.FeaturedCourses(ctx)
		if err != nil {
			failed.Store(true)
			if prev != nil {
				featured = prev.Featured
			}
		}
		next.Featured = featured
		return nil
	})
	_ = g.Wait()

	if ctx.Err() != nil && prev != nil {
		slog.Debug("site cache refresh canceled, keeping previous snapshot")
		return
	}

	next.LoadedAt = c.now()
	c.snap.Store(next)

	state := StateReady
	if failed.Load() {
		state = StateDegraded
	}
	c.state.Store(int32(state))

	slog.Info("site cache loaded",
		"state", state.String(),
		"categories", len(next.Categories),
		"courses", len(next.Courses),
		"featured", len(next.Featured),
		"duration", time.Since(start),
	)
}

// lookup serves key from the view store, or fetches and stores it. Failed
// and partial fetches are returned as is and never stored.
func lookup[T any](ctx context.Context, c *Context, key string, fetch func() (T, error)) (T, error) {
	if c.views != nil {
		var cached T
		if c.views.Get(ctx, key, &cached) {
			return cached, nil
		}
	}
	v, err := fetch()
	if err == nil && c.views != nil {
		c.views.Set(ctx, key, v)
	}
	return v, err
}

// CourseBySlug returns a course detail view.
func (c *Context) CourseBySlug(ctx context.Context, courseSlug string) (models.Course, error) {
	s := slug.Normalize(courseSlug)
	return lookup(ctx, c, cache.CourseKey(s), func() (models.Course, error) {
		return c.svc.CourseBySlug(ctx, s)
	})
}

// CategoryBySlug returns a category detail view.
func (c *Context) CategoryBySlug(ctx context.Context, categorySlug string) (catalog.CategoryDetail, error) {
	s := slug.Normalize(categorySlug)
	return lookup(ctx, c, cache.CategoryKey(s), func() (catalog.CategoryDetail, error) {
		return c.svc.CategoryBySlug(ctx, s)
	})
}

// SubcategoryBySlug returns a subcategory detail view.
func (c *Context) SubcategoryBySlug(ctx context.Context, categorySlug, subcategorySlug string) (catalog.SubcategoryDetail, error) {
	cs, ss := slug.Normalize(categorySlug), slug.Normalize(subcategorySlug)
	return lookup(ctx, c, cache.SubcategoryKey(cs, ss), func() (catalog.SubcategoryDetail, error) {
		return c.svc.SubcategoryBySlug(ctx, cs, ss)
	})
}

// Search returns search results. Blank queries return an empty list
// without a lookup.
func (c *Context) Search(ctx context.Context, query string) ([]models.Course, error) {
	key := cache.SearchKey(query)
	if key == cache.SearchKey("") {
		return []models.Course{}, nil
	}
	return lookup(ctx, c, key, func() ([]models.Course, error) {
		return c.svc.SearchCourses(ctx, query)
	})
}
