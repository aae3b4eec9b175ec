package domain

import (
	"testing"
	"time"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input   string
		want    Difficulty
		wantErr bool
	}{
		{input: "", want: Beginner},
		{input: "beginner", want: Beginner},
		{input: " Intermediate ", want: Intermediate},
		{input: "ADVANCED", want: Advanced},
		{input: "expert", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDifficulty(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDifficulty(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCourseAddedAt(t *testing.T) {
	tests := []struct {
		name string
		date string
		want time.Time
	}{
		{name: "calendar date", date: "2024-02-10", want: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", date: "2024-02-10T08:00:00Z", want: time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)},
		{name: "garbage", date: "last week", want: time.Time{}},
		{name: "empty", date: "", want: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Course{DateAdded: tt.date}.AddedAt()
			if !got.Equal(tt.want) {
				t.Errorf("AddedAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCourseCloneDoesNotShareSkills(t *testing.T) {
	c := Course{ID: "1", Skills: []string{"Go"}}
	cp := c.Clone()
	cp.Skills[0] = "Rust"

	if c.Skills[0] != "Go" {
		t.Errorf("Clone() shares the skills slice")
	}
}

func TestHasCategoryFold(t *testing.T) {
	cats := []Category{{ID: "1", Name: "Design"}}

	if !HasCategoryFold(cats, "design") {
		t.Error("HasCategoryFold should ignore case")
	}
	if _, ok := FindCategoryByName(cats, "design"); ok {
		t.Error("FindCategoryByName should be case-sensitive")
	}
}
