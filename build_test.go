package folio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

// stubViews renders one line per page so build output is easy to assert on.
func stubViews() ViewFuncs {
	text := func(format string, args ...any) templ.Component {
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := fmt.Fprintf(w, format, args...)
			return err
		})
	}
	slugOf := func(p *Post) string {
		if p == nil {
			return "-"
		}
		return p.Slug
	}
	return ViewFuncs{
		Index: func(page IndexPage) templ.Component {
			return text("index %d", len(page.Posts))
		},
		Post: func(page PostPage) templ.Component {
			return text("post %s prev=%s next=%s logos=%d", page.Post.Slug, slugOf(page.Prev), slugOf(page.Next), len(page.Footer.Logos))
		},
		NotFound:    func() templ.Component { return text("not found") },
		ServerError: func() templ.Component { return text("server error") },
	}
}

func setupSite(t *testing.T) SiteConfig {
	t.Helper()
	root := t.TempDir()
	cfg := SiteConfig{
		Name:         "Test Blog",
		URL:          "https://blog.example.com",
		DatabasePath: filepath.Join(root, "folio.db"),
		ContentDir:   filepath.Join(root, "content"),
		StaticDir:    filepath.Join(root, "public"),
		OutputDir:    filepath.Join(root, "dist"),
	}
	posts := filepath.Join(cfg.ContentDir, "posts")
	writeTestFile(t, filepath.Join(posts, "one.md"), "---\ntitle: One\ndate: 2024-01-01\n---\nFirst.\n")
	writeTestFile(t, filepath.Join(posts, "two.md"), "---\ntitle: Two\ndate: 2024-02-01\n---\nSecond.\n")
	writeTestFile(t, filepath.Join(posts, "three.md"), "---\ntitle: Three\ndate: 2024-03-01\n---\nThird.\n")
	writeTestFile(t, filepath.Join(posts, "draft.md"), "---\ntitle: Draft\ndate: 2024-04-01\npublished: false\n---\nLater.\n")
	writeTestFile(t, filepath.Join(cfg.ContentDir, "footer", "footer.yaml"), "copyright: Jane\npoweredBy:\n  - title: Go\n    url: https://go.dev\n")
	writeTestFile(t, filepath.Join(cfg.ContentDir, "footer", "logos", "go.svg"), "<svg/>")
	writeTestFile(t, filepath.Join(cfg.StaticDir, "styles.css"), "body{}")
	return cfg
}

func readOut(t *testing.T, cfg SiteConfig, rel string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(cfg.OutputDir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(b)
}

func TestBuildWritesSite(t *testing.T) {
	cfg := setupSite(t)
	store, err := NewStore(cfg.DatabasePath)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	stats, err := NewBuilder(cfg, store, stubViews(), nil).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if stats.Posts != 3 {
		t.Errorf("stats.Posts = %d, want 3", stats.Posts)
	}

	// Date-descending order is three, two, one: prev is older, next is newer.
	if got := readOut(t, cfg, "blog/two/index.html"); got != "post two prev=one next=three logos=1" {
		t.Errorf("two = %q", got)
	}
	if got := readOut(t, cfg, "blog/three/index.html"); got != "post three prev=two next=- logos=1" {
		t.Errorf("three = %q", got)
	}
	if got := readOut(t, cfg, "blog/one/index.html"); got != "post one prev=- next=two logos=1" {
		t.Errorf("one = %q", got)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "blog", "draft")); !os.IsNotExist(err) {
		t.Errorf("draft was rendered: %v", err)
	}
	if got := readOut(t, cfg, "index.html"); got != "index 3" {
		t.Errorf("index = %q", got)
	}
	if got := readOut(t, cfg, "404.html"); got != "not found" {
		t.Errorf("404 = %q", got)
	}
	if feed := readOut(t, cfg, "feed.xml"); !strings.Contains(feed, "https://blog.example.com/blog/three/") {
		t.Errorf("feed missing post link:\n%s", feed)
	}
	if sm := readOut(t, cfg, "sitemap.xml"); strings.Contains(sm, "/blog/draft/") {
		t.Errorf("sitemap lists draft:\n%s", sm)
	}
	readOut(t, cfg, "public/styles.css")
	readOut(t, cfg, "public/footer/logos/go.svg")
}

func TestBuildFailsOnFooterMismatch(t *testing.T) {
	cfg := setupSite(t)
	writeTestFile(t, filepath.Join(cfg.ContentDir, "footer", "logos", "extra.svg"), "<svg/>")
	store, err := NewStore(cfg.DatabasePath)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	_, err = NewBuilder(cfg, store, stubViews(), nil).Build(context.Background())
	if err == nil || !strings.Contains(err.Error(), ErrFooterMismatch.Error()) {
		t.Fatalf("Build err = %v, want footer mismatch", err)
	}
}
