package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/learntube/internal/domain"
	"github.com/MrSnakeDoc/learntube/internal/logger"
	"github.com/MrSnakeDoc/learntube/internal/store"
)

// collection names a stored key touched by a mutation.
type collection int

const (
	coursesKey collection = iota
	categoriesKey
	bookmarksKey
)

// SaveResult reports what SaveCourse changed.
type SaveResult struct {
	Course domain.Course `json:"course"`
	// Created is false when an existing course was replaced.
	Created bool `json:"created"`
	// NewCategory is set when the course introduced an unknown category.
	NewCategory *domain.Category `json:"newCategory,omitempty"`
}

// SaveCourse adds or replaces a course.
//
// A course whose id already exists replaces it in place. Otherwise it is
// prepended. A non-empty category name that matches no category exactly
// creates one first.
func (c *Catalog) SaveCourse(ctx context.Context, course domain.Course) (SaveResult, error) {
	if strings.TrimSpace(course.ID) == "" {
		return SaveResult{}, fmt.Errorf("%w: missing id", ErrInvalidDraft)
	}
	course = course.Clone()

	c.mu.Lock()
	defer c.mu.Unlock()

	res := SaveResult{Course: course}
	touched := []collection{coursesKey}

	if course.Category != "" {
		if _, ok := domain.FindCategoryByName(c.categories, course.Category); !ok {
			cat := domain.Category{ID: c.newID(), Name: course.Category, Icon: domain.DefaultCategoryIcon}
			c.categories = append(append([]domain.Category(nil), c.categories...), cat)
			res.NewCategory = &cat
			touched = append(touched, categoriesKey)
		}
	}

	courses := make([]domain.Course, 0, len(c.courses)+1)
	if i := c.indexOf(course.ID); i >= 0 {
		courses = append(courses, c.courses...)
		courses[i] = course
	} else {
		courses = append(courses, course)
		courses = append(courses, c.courses...)
		res.Created = true
	}
	c.courses = courses

	c.commit(ctx, touched...)

	c.log.Info("course saved",
		logger.String("id", course.ID),
		logger.Bool("created", res.Created))
	return res, nil
}

// DeleteCourse removes a course and its bookmark.
// It reports whether anything changed. Unknown ids are a no-op.
func (c *Catalog) DeleteCourse(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	var touched []collection

	if i := c.indexOf(id); i >= 0 {
		courses := make([]domain.Course, 0, len(c.courses)-1)
		courses = append(courses, c.courses[:i]...)
		courses = append(courses, c.courses[i+1:]...)
		c.courses = courses
		touched = append(touched, coursesKey)
	}
	if c.bookmarks.Has(id) {
		c.bookmarks = c.bookmarks.Without(id)
		touched = append(touched, bookmarksKey)
	}

	if len(touched) == 0 {
		return false
	}
	c.commit(ctx, touched...)

	c.log.Info("course deleted", logger.String("id", id))
	return true
}

// ToggleBookmark adds id to the bookmark set when absent and removes it when
// present. It returns the new state.
//
// Adding requires the course to exist. A dangling bookmark can always be removed.
func (c *Catalog) ToggleBookmark(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.bookmarks.Has(id) && c.indexOf(id) < 0 {
		return false, fmt.Errorf("course %q: %w", id, ErrNotFound)
	}

	var saved bool
	c.bookmarks, saved = c.bookmarks.Toggle(id)
	c.commit(ctx, bookmarksKey)
	return saved, nil
}

// AddCategory appends a category. Names are trimmed and must be unique,
// ignoring case. An empty icon uses domain.DefaultCategoryIcon.
func (c *Catalog) AddCategory(ctx context.Context, name, icon string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, ErrEmptyName
	}
	if icon = strings.TrimSpace(icon); icon == "" {
		icon = domain.DefaultCategoryIcon
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if domain.HasCategoryFold(c.categories, name) {
		return domain.Category{}, fmt.Errorf("%q: %w", name, ErrCategoryExists)
	}

	cat := domain.Category{ID: c.newID(), Name: name, Icon: icon}
	c.categories = append(append([]domain.Category(nil), c.categories...), cat)
	c.commit(ctx, categoriesKey)

	c.log.Info("category added", logger.String("name", name))
	return cat, nil
}

// RenameCategory renames the category with id and rewrites every course that
// referenced the old name. It returns the number of courses rewritten.
func (c *Catalog) RenameCategory(ctx context.Context, id, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.categoryIndex(id)
	if i < 0 {
		return 0, fmt.Errorf("category %q: %w", id, ErrNotFound)
	}
	old := c.categories[i].Name
	if old == name {
		return 0, nil
	}

	categories := append([]domain.Category(nil), c.categories...)
	categories[i].Name = name
	c.categories = categories

	n := c.renameInCourses(map[string]string{old: name})
	touched := []collection{categoriesKey}
	if n > 0 {
		touched = append(touched, coursesKey)
	}
	c.commit(ctx, touched...)

	c.log.Info("category renamed",
		logger.String("from", old),
		logger.String("to", name),
		logger.Int("courses", n))
	return n, nil
}

// RemoveCategory deletes the category with id. Courses are never modified:
// while some still reference the name, removal is refused with
// ErrCategoryInUse unless force is set, in which case they keep the
// orphaned name.
func (c *Catalog) RemoveCategory(ctx context.Context, id string, force bool) (domain.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.categoryIndex(id)
	if i < 0 {
		return domain.Category{}, fmt.Errorf("category %q: %w", id, ErrNotFound)
	}
	cat := c.categories[i]

	if n := c.countByCategory(cat.Name); n > 0 && !force {
		return domain.Category{}, fmt.Errorf("%q is used by %d course(s): %w", cat.Name, n, ErrCategoryInUse)
	}

	categories := make([]domain.Category, 0, len(c.categories)-1)
	categories = append(categories, c.categories[:i]...)
	categories = append(categories, c.categories[i+1:]...)
	c.categories = categories
	c.commit(ctx, categoriesKey)

	c.log.Info("category removed", logger.String("name", cat.Name), logger.Bool("forced", force))
	return cat, nil
}

// ReplaceCategories saves an edited category list in one step.
//
// Entries keep their id across edits; an id whose name changed cascades the
// rename to courses. Entries without id get a fresh one, empty icons the
// default icon. Blank names are rejected.
func (c *Catalog) ReplaceCategories(ctx context.Context, list []domain.Category) ([]domain.Category, int, error) {
	next := make([]domain.Category, 0, len(list))
	for _, cat := range list {
		cat.Name = strings.TrimSpace(cat.Name)
		if cat.Name == "" {
			return nil, 0, ErrEmptyName
		}
		if cat.Icon = strings.TrimSpace(cat.Icon); cat.Icon == "" {
			cat.Icon = domain.DefaultCategoryIcon
		}
		next = append(next, cat)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	renames := make(map[string]string)
	for i := range next {
		if next[i].ID == "" {
			next[i].ID = c.newID()
			continue
		}
		if j := c.categoryIndex(next[i].ID); j >= 0 && c.categories[j].Name != next[i].Name {
			renames[c.categories[j].Name] = next[i].Name
		}
	}

	c.categories = next
	touched := []collection{categoriesKey}
	n := c.renameInCourses(renames)
	if n > 0 {
		touched = append(touched, coursesKey)
	}
	c.commit(ctx, touched...)

	c.log.Info("categories replaced",
		logger.Int("categories", len(next)),
		logger.Int("renames", len(renames)),
		logger.Int("courses", n))
	return append([]domain.Category(nil), next...), n, nil
}

// renameInCourses applies renames in a single pass, so swaps are safe.
// Must be called with c.mu held.
func (c *Catalog) renameInCourses(renames map[string]string) int {
	if len(renames) == 0 {
		return 0
	}

	n := 0
	courses := make([]domain.Course, len(c.courses))
	for i, course := range c.courses {
		if to, ok := renames[course.Category]; ok {
			course.Category = to
			n++
		}
		courses[i] = course
	}
	if n > 0 {
		c.courses = courses
	}
	return n
}

// categoryIndex must be called with c.mu held.
func (c *Catalog) categoryIndex(id string) int {
	for i, cat := range c.categories {
		if cat.ID == id {
			return i
		}
	}
	return -1
}

// commit persists the touched collections and invalidates cached views.
// Must be called with c.mu held.
func (c *Catalog) commit(ctx context.Context, touched ...collection) {
	values := make(map[string]any, len(touched))
	for _, col := range touched {
		switch col {
		case coursesKey:
			values[store.KeyCourses] = c.courses
		case categoriesKey:
			values[store.KeyCategories] = c.categories
		case bookmarksKey:
			values[store.KeyBookmarks] = c.bookmarks
		}
	}
	store.SaveMany(ctx, c.store, values, c.log)
	c.revision++
	c.flushViews(ctx)
}
