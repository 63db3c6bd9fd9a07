package folio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/eringen/folio/markdown"
)

const (
	excerptLength  = 140
	wordsPerMinute = 265
	dateLayout     = "2006-01-02"
)

var (
	// ErrMissingTitle is returned for a post without a title.
	ErrMissingTitle = errors.New("post has no title")
	// ErrMissingSlug is returned when neither slug nor title yield a slug.
	ErrMissingSlug = errors.New("post has no slug")
	// ErrDuplicateSlug is returned when two files claim the same slug.
	ErrDuplicateSlug = errors.New("duplicate slug")
)

// yamlFront decodes with yaml.v3 so nested maps come out as map[string]any.
var yamlFront = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

type postFrontMatter struct {
	Slug      string   `yaml:"slug"`
	Title     string   `yaml:"title"`
	Subtitle  string   `yaml:"subtitle"`
	Date      yamlDate `yaml:"date"`
	Tags      []string `yaml:"tags"`
	Cover     any      `yaml:"cover"`
	ShowToc   bool     `yaml:"showToc"`
	Published *bool    `yaml:"published"`
}

// yamlDate accepts both quoted dates and YAML timestamps.
type yamlDate string

func (d *yamlDate) UnmarshalYAML(value *yaml.Node) error {
	var t time.Time
	if err := value.Decode(&t); err == nil {
		*d = yamlDate(t.Format(dateLayout))
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*d = yamlDate(strings.TrimSpace(s))
	return nil
}

// ParsePost reads one Markdown document with YAML front matter. modTime
// supplies the date when the front matter has none.
func ParsePost(r io.Reader, modTime time.Time) (Post, error) {
	var fm postFrontMatter
	body, err := frontmatter.Parse(r, &fm, yamlFront)
	if err != nil {
		return Post{}, fmt.Errorf("parse front matter: %w", err)
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		return Post{}, ErrMissingTitle
	}
	slug := strings.Trim(strings.TrimSpace(fm.Slug), "/")
	if i := strings.LastIndexByte(slug, '/'); i >= 0 {
		slug = slug[i+1:]
	}
	// The slug names an output directory; "." and ".." must not survive.
	slug = Slugify(slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return Post{}, ErrMissingSlug
	}

	date := string(fm.Date)
	if date == "" {
		date = modTime.Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return Post{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", date, err)
	}

	doc, err := markdown.Render(string(body))
	if err != nil {
		return Post{}, fmt.Errorf("render body: %w", err)
	}

	published := true
	if fm.Published != nil {
		published = *fm.Published
	}
	return Post{
		Slug:       slug,
		Title:      title,
		Subtitle:   strings.TrimSpace(fm.Subtitle),
		Date:       date,
		Tags:       FilterEmpty(fm.Tags),
		Cover:      fm.Cover,
		ShowToc:    fm.ShowToc,
		Body:       string(body),
		Excerpt:    Excerpt(doc.Text, excerptLength),
		TimeToRead: TimeToRead(doc.Text),
		Link:       postLink(slug),
		Published:  published,
	}, nil
}

// ParsePostFile reads the post at path.
func ParsePostFile(path string) (Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return Post{}, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return Post{}, err
	}
	p, err := ParsePost(f, info.ModTime())
	if err != nil {
		return Post{}, fmt.Errorf("%s: %w", path, err)
	}
	p.SourcePath = path
	return p, nil
}

// LoadContent parses every .md and .mdx file under dir and returns the posts
// ordered by date descending.
func LoadContent(dir string) ([]Post, error) {
	var posts []Post
	seen := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".mdx":
		default:
			return nil
		}
		p, err := ParsePostFile(path)
		if err != nil {
			return err
		}
		if prev, ok := seen[p.Slug]; ok {
			return fmt.Errorf("%w %q in %s and %s", ErrDuplicateSlug, p.Slug, prev, path)
		}
		seen[p.Slug] = path
		posts = append(posts, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	SortPosts(posts)
	return posts, nil
}

// SortPosts orders posts by date descending, then slug.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Slug < posts[j].Slug
	})
}

// Excerpt prunes text to at most n runes on a word boundary, appending "…"
// when anything was cut.
func Excerpt(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:n])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// TimeToRead estimates reading minutes for text, never less than one.
func TimeToRead(text string) int {
	words := len(strings.Fields(text))
	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

func postLink(slug string) string {
	return "/blog/" + slug + "/"
}
