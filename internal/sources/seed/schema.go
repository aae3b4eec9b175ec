package seed

// CourseEntry is one course in the seed file.
type CourseEntry struct {
	ID                  string   `yaml:"id"`
	Title               string   `yaml:"title"`
	ChannelName         string   `yaml:"channelName"`
	ChannelURL          string   `yaml:"channelUrl"`
	ChannelThumbnailURL string   `yaml:"channelThumbnailUrl"`
	Description         string   `yaml:"description"`
	ThumbnailURL        string   `yaml:"thumbnailUrl"`
	VideoURL            string   `yaml:"videoUrl"`
	Skills              []string `yaml:"skills"`
	Difficulty          string   `yaml:"difficulty"`
	Rating              *float64 `yaml:"rating"`
	DateAdded           string   `yaml:"dateAdded"`
}

// CategoryEntry groups the courses filed under one category.
type CategoryEntry struct {
	ID      string        `yaml:"id"`
	Name    string        `yaml:"name"`
	Icon    string        `yaml:"icon"`
	Courses []CourseEntry `yaml:"courses"`
}

// File is the root structure of the seed YAML.
//
//	categories:
//	  - name: Web Development
//	    icon: 🌐
//	    courses:
//	      - title: React.js Full Course 2024
//	        videoUrl: https://www.youtube.com/watch?v=bMknfKXIFA8
//	bookmarks: []
type File struct {
	Categories []CategoryEntry `yaml:"categories"`
	Bookmarks  []string        `yaml:"bookmarks"`
}
