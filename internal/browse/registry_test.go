package browse

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRegistryGet(t *testing.T) {
	r := NewRegistry(time.Hour)
	defer r.Close()

	fresh := r.Get("")
	if _, err := uuid.Parse(fresh.ID); err != nil {
		t.Fatalf("generated id %q is not a uuid", fresh.ID)
	}
	if again := r.Get(fresh.ID); again != fresh {
		t.Error("same id should return the same session")
	}
	if forged := r.Get("../../etc"); forged.ID == "../../etc" {
		t.Error("malformed ids must be replaced")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistrySweep(t *testing.T) {
	r := NewRegistry(time.Hour)
	defer r.Close()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	old := r.Get("")
	now = now.Add(20 * time.Minute)
	recent := r.Get("")
	now = now.Add(15 * time.Minute)

	if removed := r.Sweep(30 * time.Minute); removed != 1 {
		t.Fatalf("Sweep() = %d, want 1", removed)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}

	// a swept id comes back as a new session
	if again := r.Get(old.ID); again == old {
		t.Error("swept session was returned again")
	}
	if again := r.Get(recent.ID); again != recent {
		t.Error("recent session was swept")
	}
}
