package store

const (
	// KeyPrefix namespaces every key written by learntube.
	KeyPrefix = "learntube:"

	// KeyCourses holds the JSON array of courses
	KeyCourses = KeyPrefix + "courses"
	// KeyBookmarks holds the JSON array of bookmarked course IDs
	KeyBookmarks = KeyPrefix + "bookmarks"
	// KeyCategories holds the JSON array of categories
	KeyCategories = KeyPrefix + "categories"

	// KeyPrefixView is the prefix for cached catalog views
	KeyPrefixView = KeyPrefix + "view:"
)

// ViewKey returns the cache key for a view fingerprint
func ViewKey(fingerprint string) string {
	return KeyPrefixView + fingerprint
}
