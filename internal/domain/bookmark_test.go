package domain

import "testing"

func TestBookmarkSetToggle(t *testing.T) {
	var set BookmarkSet

	set, on := set.Toggle("a")
	if !on || !set.Has("a") {
		t.Fatalf("Toggle(a) on empty set should add it, got %v", set)
	}

	set, on = set.Toggle("b")
	if !on || len(set) != 2 {
		t.Fatalf("Toggle(b) should add it, got %v", set)
	}

	set, on = set.Toggle("a")
	if on || set.Has("a") {
		t.Fatalf("Toggle(a) twice should remove it, got %v", set)
	}
	if !slicesEqual(set, []string{"b"}) {
		t.Errorf("set = %v, want [b]", set)
	}
}

func TestBookmarkSetToggleTwiceIsIdentity(t *testing.T) {
	original := BookmarkSet{"x", "y", "z"}

	for _, id := range []string{"y", "new"} {
		once, _ := original.Toggle(id)
		twice, _ := once.Toggle(id)
		if id == "new" && !slicesEqual(twice, original) {
			t.Errorf("toggling %q twice = %v, want %v", id, twice, original)
		}
		if len(twice) != len(original) {
			t.Errorf("toggling %q twice changed the size: %v", id, twice)
		}
		for _, v := range original {
			if !twice.Has(v) {
				t.Errorf("toggling %q twice lost %q", id, v)
			}
		}
	}

	if !slicesEqual(original, []string{"x", "y", "z"}) {
		t.Errorf("Toggle mutated the receiver: %v", original)
	}
}

func TestBookmarkSetWithout(t *testing.T) {
	set := BookmarkSet{"a", "b", "c"}

	if got := set.Without("b"); !slicesEqual(got, []string{"a", "c"}) {
		t.Errorf("Without(b) = %v", got)
	}
	if got := set.Without("missing"); !slicesEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Without(missing) = %v", got)
	}
}
