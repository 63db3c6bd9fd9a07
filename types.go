package folio

import "github.com/eringen/folio/markdown"

// Post is the page record stored in SQLite and rendered by templates.
//
// Cover holds the front-matter value as the content pipeline produced it
// (any accepted CoverShape). Records returned by Resolve carry the
// flattened form.
type Post struct {
	Slug       string
	Title      string
	Subtitle   string
	Date       string
	Tags       []string
	Cover      any
	ShowToc    bool
	Body       string
	Excerpt    string
	TimeToRead int
	Link       string
	Published  bool

	// SourcePath is the Markdown file the post was loaded from. Not persisted.
	SourcePath string
}

// CoverImage returns the canonical cover for p, or nil when it has none.
func (p Post) CoverImage() *Cover {
	return CoverFromMap(FlattenCover(p.Cover))
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
	JSONLD      string
}

// CommentsConfig is everything the comments embed receives.
type CommentsConfig struct {
	Shortname  string
	Identifier string
	Title      string
	URL        string
}

// PostPage is the fully resolved view model for a single post.
type PostPage struct {
	Meta     PageMeta
	SiteName string
	Post     Post
	Cover    *Cover
	Doc      markdown.Document
	Comments CommentsConfig
	Prev     *Post
	Next     *Post
	Footer   Footer
}

// IndexPage lists posts, newest first.
type IndexPage struct {
	Meta      PageMeta
	SiteName  string
	Posts     []Post
	ActiveTag string
	Tags      []string
	Footer    Footer
}
