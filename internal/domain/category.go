package domain

import "strings"

// DefaultCategoryIcon is used for user-created categories.
const DefaultCategoryIcon = "📁"

// Category is a named grouping with a display icon.
// Courses reference it by Name, never by ID.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// FindCategoryByName does an exact, case-sensitive lookup.
func FindCategoryByName(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// HasCategoryFold reports whether a category with name exists, ignoring case.
func HasCategoryFold(categories []Category, name string) bool {
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}
