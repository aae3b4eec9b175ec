package catalog

import "github.com/MrSnakeDoc/learntube/internal/domain"

// Seed is the catalog used when a stored collection is absent or corrupt.
type Seed struct {
	Courses    []domain.Course
	Categories []domain.Category
	Bookmarks  domain.BookmarkSet
}

// Clone deep-copies the seed so callers can hand it out as a default.
func (s Seed) Clone() Seed {
	return Seed{
		Courses:    domain.CloneCourses(s.Courses),
		Categories: append([]domain.Category(nil), s.Categories...),
		Bookmarks:  append(domain.BookmarkSet(nil), s.Bookmarks...),
	}
}

// DefaultSeed returns the compiled-in catalog.
func DefaultSeed() Seed {
	return Seed{
		Categories: []domain.Category{
			{ID: "1", Name: "Web Development", Icon: "🌐"},
			{ID: "2", Name: "Data Science", Icon: "📊"},
			{ID: "3", Name: "Design", Icon: "🎨"},
			{ID: "4", Name: "Business", Icon: "💼"},
			{ID: "5", Name: "Marketing", Icon: "📈"},
			{ID: "6", Name: "Personal Development", Icon: "🌱"},
		},
		Courses: []domain.Course{
			{
				ID:           "1",
				Title:        "React.js Full Course 2024",
				ChannelName:  "FreeCodeCamp",
				ChannelURL:   "https://www.youtube.com/@freecodecamp",
				Description:  "Master React.js from scratch. Learn components, hooks, and context API with hands-on projects.",
				ThumbnailURL: "https://picsum.photos/seed/react/800/450",
				VideoURL:     "https://www.youtube.com/watch?v=bMknfKXIFA8",
				Skills:       []string{"React", "JavaScript", "Frontend"},
				Category:     "Web Development",
				Difficulty:   domain.Beginner,
				Rating:       4.9,
				DateAdded:    "2024-01-15",
			},
			{
				ID:           "2",
				Title:        "Python for Data Science",
				ChannelName:  "Programming with Mosh",
				ChannelURL:   "https://www.youtube.com/@programmingwithmosh",
				Description:  "Learn Python programming for data analysis and visualization. Perfect for beginners entering AI.",
				ThumbnailURL: "https://picsum.photos/seed/python/800/450",
				VideoURL:     "https://www.youtube.com/watch?v=rfscVS0vtbw",
				Skills:       []string{"Python", "Pandas", "Data Analysis"},
				Category:     "Data Science",
				Difficulty:   domain.Beginner,
				Rating:       4.8,
				DateAdded:    "2024-02-10",
			},
		},
		Bookmarks: domain.BookmarkSet{},
	}
}
