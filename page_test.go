package folio

import (
	"errors"
	"strings"
	"testing"
)

func TestNewPostPage(t *testing.T) {
	cfg := SiteConfig{Name: "Blog", URL: "https://blog.example.com", DisqusShortname: "blog"}
	post := samplePost("hello", "2024-01-15", true)
	post.Cover = map[string]any{"credit": "Jane", "img": map[string]any{"sharp": map[string]any{"src": "/public/covers/hello.jpg"}}}
	older := samplePost("older", "2023-12-01", true)

	page, err := NewPostPage(cfg, Resolved{Post: &post, Prev: &older}, Footer{Copyright: "Jane"})
	if err != nil {
		t.Fatalf("NewPostPage: %v", err)
	}
	if page.Cover == nil || page.Cover.Src != "/public/covers/hello.jpg" || page.Cover.Credit != "Jane" {
		t.Errorf("Cover = %+v", page.Cover)
	}
	if page.Meta.Image != "https://blog.example.com/public/covers/hello.jpg" {
		t.Errorf("Meta.Image = %q", page.Meta.Image)
	}
	if page.Meta.URL != "https://blog.example.com/blog/hello/" || page.Comments.URL != page.Meta.URL {
		t.Errorf("URLs = %q / %q", page.Meta.URL, page.Comments.URL)
	}
	if page.Comments.Identifier != "hello" || page.Comments.Shortname != "blog" {
		t.Errorf("Comments = %+v", page.Comments)
	}
	if page.Prev == nil || page.Prev.Slug != "older" || page.Next != nil {
		t.Errorf("Prev/Next = %v / %v", page.Prev, page.Next)
	}
	if len(page.Doc.Headings) != 1 || page.Doc.Headings[0].ID != "heading" {
		t.Errorf("Headings = %+v", page.Doc.Headings)
	}
	if page.Footer.Year == 0 {
		t.Error("footer year not set")
	}
	if !strings.Contains(page.Meta.JSONLD, `"BlogPosting"`) {
		t.Errorf("JSONLD = %s", page.Meta.JSONLD)
	}
}

func TestNewPostPageMissingPost(t *testing.T) {
	_, err := NewPostPage(SiteConfig{}, Resolved{}, Footer{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Hello World", "hello-world"},
		{"  Go & You: Part 2 ", "go-you-part-2"},
		{"---", ""},
		{"trailing!", "trailing"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	if got := BuildURL("https://x.test", "blog", "a"); got != "https://x.test/blog/a/" {
		t.Errorf("BuildURL = %q", got)
	}
	if got := AbsoluteURL("https://x.test/", "https://cdn.test/a.jpg"); got != "https://cdn.test/a.jpg" {
		t.Errorf("AbsoluteURL passthrough = %q", got)
	}
}
