// Package catalog owns the course, category and bookmark collections.
//
// A Catalog is the single root of application state. Every mutation is
// applied in memory and then committed to the store, one key per collection,
// best-effort. There is no transaction across keys.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/MrSnakeDoc/learntube/internal/domain"
	"github.com/MrSnakeDoc/learntube/internal/logger"
	"github.com/MrSnakeDoc/learntube/internal/store"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrCategoryExists  = errors.New("category already exists")
	ErrCategoryInUse   = errors.New("category is still used by courses")
	ErrEmptyName       = errors.New("category name is empty")
	ErrIncompleteDraft = errors.New("title and video url are required")
	ErrInvalidDraft    = errors.New("invalid draft")
)

// ViewCache stores rendered views. Implemented by store/redis.ViewCache.
type ViewCache interface {
	Get(ctx context.Context, fingerprint string) ([]byte, error)
	Put(ctx context.Context, fingerprint string, view []byte) error
	Flush(ctx context.Context) error
}

// Options configures a Catalog. Store and Log are required.
type Options struct {
	Store store.Store
	Log   logger.Logger
	// Seed replaces DefaultSeed as the fallback for absent keys.
	Seed *Seed
	// Cache is optional.
	Cache ViewCache
	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string
}

// Catalog holds the in-memory collections and commits them to the store.
type Catalog struct {
	mu         sync.RWMutex
	courses    []domain.Course
	categories []domain.Category
	bookmarks  domain.BookmarkSet
	revision   uint64
	lastReload time.Time

	store store.Store
	log   logger.Logger
	seed  Seed
	cache ViewCache
	views singleflight.Group
	now   func() time.Time
	newID func() string
}

// New builds an empty Catalog. Call Reload to populate it.
func New(opts Options) *Catalog {
	c := &Catalog{
		store: opts.Store,
		log:   opts.Log,
		seed:  DefaultSeed(),
		cache: opts.Cache,
		now:   opts.Now,
		newID: opts.NewID,
	}
	if opts.Seed != nil {
		c.seed = opts.Seed.Clone()
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	return c
}

// Reload replaces the in-memory collections with the stored ones.
// Each key falls back to the seed independently. The write lock is held
// from the first read to the swap so a mutation committed meanwhile cannot
// be overwritten by stale data.
func (c *Catalog) Reload(ctx context.Context) {
	seed := c.seed.Clone()

	c.mu.Lock()
	defer c.mu.Unlock()

	courses := store.Load(ctx, c.store, store.KeyCourses, seed.Courses, c.log)
	categories := store.Load(ctx, c.store, store.KeyCategories, seed.Categories, c.log)
	bookmarks := store.Load(ctx, c.store, store.KeyBookmarks, seed.Bookmarks, c.log)

	// A stored JSON null decodes to nil.
	if courses == nil {
		courses = seed.Courses
	}
	if categories == nil {
		categories = seed.Categories
	}
	if bookmarks == nil {
		bookmarks = domain.BookmarkSet{}
	}

	c.courses = courses
	c.categories = categories
	c.bookmarks = bookmarks
	c.revision++
	c.lastReload = c.now()

	c.flushViews(ctx)

	c.log.Info("catalog loaded",
		logger.Int("courses", len(courses)),
		logger.Int("categories", len(categories)),
		logger.Int("bookmarks", len(bookmarks)))
}

// Courses returns a copy of the collection in stored order.
func (c *Catalog) Courses() []domain.Course {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return domain.CloneCourses(c.courses)
}

// Course returns the course with id.
func (c *Catalog) Course(id string) (domain.Course, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.courses[i].Clone(), true
	}
	return domain.Course{}, false
}

// Categories returns a copy of the category list.
func (c *Catalog) Categories() []domain.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]domain.Category(nil), c.categories...)
}

// Bookmarks returns a copy of the bookmark set.
func (c *Catalog) Bookmarks() domain.BookmarkSet {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append(domain.BookmarkSet{}, c.bookmarks...)
}

// IsBookmarked reports whether id is in the bookmark set.
func (c *Catalog) IsBookmarked(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.bookmarks.Has(id)
}

// CategoryCount pairs a category with the number of courses referencing it.
type CategoryCount struct {
	domain.Category
	Courses int `json:"courses"`
}

// CategoriesWithCounts returns every category and its course count.
func (c *Catalog) CategoriesWithCounts() []CategoryCount {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]CategoryCount, len(c.categories))
	for i, cat := range c.categories {
		out[i] = CategoryCount{Category: cat, Courses: c.countByCategory(cat.Name)}
	}
	return out
}

// CourseCountByCategory returns how many courses reference name.
func (c *Catalog) CourseCountByCategory(name string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.countByCategory(name)
}

// Overview summarises the catalog.
type Overview struct {
	Courses    int       `json:"courses"`
	Categories int       `json:"categories"`
	Bookmarks  int       `json:"bookmarks"`
	Revision   uint64    `json:"revision"`
	LastReload time.Time `json:"lastReload"`
}

// Overview returns collection sizes.
func (c *Catalog) Overview() Overview {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Overview{
		Courses:    len(c.courses),
		Categories: len(c.categories),
		Bookmarks:  len(c.bookmarks),
		Revision:   c.revision,
		LastReload: c.lastReload,
	}
}

// View derives the filtered and sorted course list.
// When a cache is configured, rendered views are reused until the next commit.
func (c *Catalog) View(ctx context.Context, f Filter) []domain.Course {
	c.mu.RLock()
	fingerprint := f.Fingerprint() + "-" + strconv.FormatUint(c.revision, 10)
	courses := c.courses
	bookmarks := c.bookmarks
	c.mu.RUnlock()

	if view, ok := c.cachedView(ctx, fingerprint); ok {
		return view
	}

	// Collections are replaced, never modified in place, so reading the
	// captured slices outside the lock is safe.
	v, _, _ := c.views.Do(fingerprint, func() (any, error) {
		view := Apply(courses, bookmarks, f)
		c.storeView(ctx, fingerprint, view)
		return view, nil
	})
	return domain.CloneCourses(v.([]domain.Course))
}

func (c *Catalog) cachedView(ctx context.Context, fingerprint string) ([]domain.Course, bool) {
	if c.cache == nil {
		return nil, false
	}
	data, err := c.cache.Get(ctx, fingerprint)
	if err != nil {
		c.log.Warn("view cache read failed", logger.Error(err))
		return nil, false
	}
	if data == nil {
		return nil, false
	}
	var view []domain.Course
	if err := json.Unmarshal(data, &view); err != nil {
		c.log.Warn("cached view is corrupt", logger.Error(err))
		return nil, false
	}
	return view, true
}

func (c *Catalog) storeView(ctx context.Context, fingerprint string, view []domain.Course) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := c.cache.Put(ctx, fingerprint, data); err != nil {
		c.log.Warn("view cache write failed", logger.Error(err))
	}
}

func (c *Catalog) flushViews(ctx context.Context) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Flush(ctx); err != nil {
		c.log.Warn("view cache flush failed", logger.Error(err))
	}
}

// indexOf must be called with c.mu held.
func (c *Catalog) indexOf(id string) int {
	for i, course := range c.courses {
		if course.ID == id {
			return i
		}
	}
	return -1
}

// countByCategory must be called with c.mu held.
func (c *Catalog) countByCategory(name string) int {
	n := 0
	for _, course := range c.courses {
		if course.Category == name {
			n++
		}
	}
	return n
}
