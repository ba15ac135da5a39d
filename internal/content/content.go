package content

import "time"

// Collection names a group of documents sharing a schema and route namespace.
// The value doubles as the directory name under the content root and as the
// first segment of every route in the collection.
type Collection string

const (
	Posts    Collection = "posts"
	Projects Collection = "projects"
)

// Collections lists every known collection in route order.
var Collections = []Collection{Posts, Projects}

// Valid reports whether c is a known collection.
func (c Collection) Valid() bool {
	return c == Posts || c == Projects
}

// TeamMember attributes a project to a person.
type TeamMember struct {
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Avatar   string `yaml:"avatar"`
	LinkedIn string `yaml:"linkedIn"`
}

// Document is a single parsed content file. The metadata fields are validated
// at parse time; Body is the raw markdown after the front matter block and is
// never interpreted here.
type Document struct {
	Slug       string
	Collection Collection
	SourcePath string

	Title       string
	Summary     string
	PublishedAt time.Time
	Images      []string

	// Tag classifies posts; empty for projects.
	Tag string
	// Team attributes projects; nil for posts.
	Team []TeamMember

	Body string
}

// Permalink returns the canonical site-relative route for the document.
func (d *Document) Permalink() string {
	return "/" + string(d.Collection) + "/" + d.Slug + "/"
}
