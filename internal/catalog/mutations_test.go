package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/MrSnakeDoc/learntube/internal/domain"
	"github.com/MrSnakeDoc/learntube/internal/store"
	"github.com/MrSnakeDoc/learntube/internal/store/memory"
)

func TestSaveCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("new course is prepended", func(t *testing.T) {
		c := newTestCatalog(t, memory.New())
		res, err := c.SaveCourse(ctx, domain.Course{ID: "n", Title: "New", Category: "Design"})
		if err != nil {
			t.Fatalf("SaveCourse() error = %v", err)
		}
		if !res.Created || res.NewCategory != nil {
			t.Errorf("unexpected result %+v", res)
		}
		if got := ids(c.Courses()); !equalIDs(got, []string{"n", "1", "2"}) {
			t.Errorf("courses = %v", got)
		}
	})

	t.Run("existing id is replaced in place", func(t *testing.T) {
		c := newTestCatalog(t, memory.New())
		res, err := c.SaveCourse(ctx, domain.Course{ID: "2", Title: "Python, revised", Category: "Data Science"})
		if err != nil {
			t.Fatalf("SaveCourse() error = %v", err)
		}
		if res.Created {
			t.Error("replacement reported as created")
		}
		courses := c.Courses()
		if got := ids(courses); !equalIDs(got, []string{"1", "2"}) {
			t.Errorf("courses = %v", got)
		}
		if courses[1].Title != "Python, revised" {
			t.Errorf("title = %q", courses[1].Title)
		}
	})

	t.Run("unknown category is synthesized", func(t *testing.T) {
		c := newTestCatalog(t, memory.New())
		res, err := c.SaveCourse(ctx, domain.Course{ID: "n", Title: "Cooking 101", Category: "Cooking"})
		if err != nil {
			t.Fatalf("SaveCourse() error = %v", err)
		}
		if res.NewCategory == nil {
			t.Fatal("expected a new category")
		}
		if res.NewCategory.Icon != domain.DefaultCategoryIcon || res.NewCategory.ID != "gen-1" {
			t.Errorf("new category = %+v", *res.NewCategory)
		}
		cats := c.Categories()
		if cats[len(cats)-1].Name != "Cooking" {
			t.Errorf("category should be appended, got %+v", cats)
		}
	})

	t.Run("category match is case sensitive", func(t *testing.T) {
		c := newTestCatalog(t, memory.New())
		res, _ := c.SaveCourse(ctx, domain.Course{ID: "n", Title: "x", Category: "design"})
		if res.NewCategory == nil {
			t.Error("a name differing only by case is a new category on save")
		}
	})

	t.Run("empty category creates nothing", func(t *testing.T) {
		c := newTestCatalog(t, memory.New())
		res, _ := c.SaveCourse(ctx, domain.Course{ID: "n", Title: "x"})
		if res.NewCategory != nil || len(c.Categories()) != 6 {
			t.Error("empty category must not create one")
		}
	})

	t.Run("missing id is rejected", func(t *testing.T) {
		c := newTestCatalog(t, memory.New())
		if _, err := c.SaveCourse(ctx, domain.Course{Title: "x"}); !errors.Is(err, ErrInvalidDraft) {
			t.Errorf("error = %v, want ErrInvalidDraft", err)
		}
	})
}

func TestDeleteCourse(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, memory.New())

	if _, err := c.ToggleBookmark(ctx, "1"); err != nil {
		t.Fatalf("ToggleBookmark() error = %v", err)
	}

	if !c.DeleteCourse(ctx, "1") {
		t.Fatal("DeleteCourse() reported no change")
	}
	if _, ok := c.Course("1"); ok {
		t.Error("course still present")
	}
	if c.IsBookmarked("1") {
		t.Error("bookmark still present")
	}

	before := c.Overview().Revision
	if c.DeleteCourse(ctx, "1") {
		t.Error("deleting twice should be a no-op")
	}
	if c.Overview().Revision != before {
		t.Error("no-op delete should not commit")
	}
}

func TestToggleBookmark(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, memory.New())

	saved, err := c.ToggleBookmark(ctx, "2")
	if err != nil || !saved {
		t.Fatalf("first toggle = %v, %v", saved, err)
	}
	saved, err = c.ToggleBookmark(ctx, "2")
	if err != nil || saved {
		t.Fatalf("second toggle = %v, %v", saved, err)
	}
	if len(c.Bookmarks()) != 0 {
		t.Errorf("toggling twice should restore the set, got %v", c.Bookmarks())
	}

	if _, err := c.ToggleBookmark(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("bookmarking an unknown course: error = %v, want ErrNotFound", err)
	}
}

func TestToggleBookmarkRemovesDangling(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	_ = s.Set(ctx, store.KeyBookmarks, []byte(`["gone"]`))
	c := newTestCatalog(t, s)

	saved, err := c.ToggleBookmark(ctx, "gone")
	if err != nil || saved {
		t.Errorf("ToggleBookmark() = %v, %v; want false, nil", saved, err)
	}
}

func TestAddCategory(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, memory.New())

	cat, err := c.AddCategory(ctx, "  Photography ", "")
	if err != nil {
		t.Fatalf("AddCategory() error = %v", err)
	}
	if cat.Name != "Photography" || cat.Icon != domain.DefaultCategoryIcon {
		t.Errorf("category = %+v", cat)
	}

	for _, name := range []string{"photography", "WEB DEVELOPMENT"} {
		if _, err := c.AddCategory(ctx, name, "x"); !errors.Is(err, ErrCategoryExists) {
			t.Errorf("AddCategory(%q) error = %v, want ErrCategoryExists", name, err)
		}
	}
	if _, err := c.AddCategory(ctx, "   ", ""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name error = %v, want ErrEmptyName", err)
	}
	if got := len(c.Categories()); got != 7 {
		t.Errorf("categories = %d, want 7", got)
	}
}

func TestRenameCategoryCascades(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, memory.New())

	for _, course := range []domain.Course{
		{ID: "d1", Title: "Figma", Category: "Design"},
		{ID: "d2", Title: "Color theory", Category: "Design"},
		{ID: "o1", Title: "Other", Category: "Designers"},
	} {
		if _, err := c.SaveCourse(ctx, course); err != nil {
			t.Fatalf("SaveCourse() error = %v", err)
		}
	}

	n, err := c.RenameCategory(ctx, "3", "UX")
	if err != nil {
		t.Fatalf("RenameCategory() error = %v", err)
	}
	if n != 2 {
		t.Errorf("rewritten = %d, want 2", n)
	}

	for _, course := range c.Courses() {
		switch course.ID {
		case "d1", "d2":
			if course.Category != "UX" {
				t.Errorf("%s category = %q, want UX", course.ID, course.Category)
			}
		case "o1":
			if course.Category != "Designers" {
				t.Errorf("unrelated course changed to %q", course.Category)
			}
		case "1":
			if course.Category != "Web Development" {
				t.Errorf("unrelated course changed to %q", course.Category)
			}
		}
	}

	if _, err := c.RenameCategory(ctx, "missing", "X"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if _, err := c.RenameCategory(ctx, "3", " "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("error = %v, want ErrEmptyName", err)
	}
}

func TestRemoveCategory(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, memory.New())

	if _, err := c.RemoveCategory(ctx, "1", false); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("error = %v, want ErrCategoryInUse", err)
	}
	if len(c.Categories()) != 6 {
		t.Fatal("refused removal must not change categories")
	}

	removed, err := c.RemoveCategory(ctx, "1", true)
	if err != nil {
		t.Fatalf("forced RemoveCategory() error = %v", err)
	}
	if removed.Name != "Web Development" {
		t.Errorf("removed = %+v", removed)
	}
	course, _ := c.Course("1")
	if course.Category != "Web Development" {
		t.Error("courses keep the orphaned name after removal")
	}
	got := ids(Apply(c.Courses(), nil, Filter{Category: "Web Development"}))
	if !equalIDs(got, []string{"1"}) {
		t.Errorf("orphaned name should still filter, got %v", got)
	}

	if _, err := c.RemoveCategory(ctx, "3", false); err != nil {
		t.Errorf("unused category should be removable, got %v", err)
	}
}

func TestReplaceCategories(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, memory.New())

	// swap the two names in use
	list := []domain.Category{
		{ID: "1", Name: "Data Science", Icon: "🌐"},
		{ID: "2", Name: "Web Development", Icon: "📊"},
		{Name: "Robotics"},
	}
	got, n, err := c.ReplaceCategories(ctx, list)
	if err != nil {
		t.Fatalf("ReplaceCategories() error = %v", err)
	}
	if n != 2 {
		t.Errorf("rewritten = %d, want 2", n)
	}
	if len(got) != 3 || got[2].ID != "gen-1" || got[2].Icon != domain.DefaultCategoryIcon {
		t.Errorf("categories = %+v", got)
	}

	react, _ := c.Course("1")
	python, _ := c.Course("2")
	if react.Category != "Data Science" || python.Category != "Web Development" {
		t.Errorf("renames not applied as a swap: %q, %q", react.Category, python.Category)
	}

	if _, _, err := c.ReplaceCategories(ctx, []domain.Category{{ID: "1", Name: ""}}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("error = %v, want ErrEmptyName", err)
	}
	if len(c.Categories()) != 3 {
		t.Error("rejected replacement must not change categories")
	}
}
