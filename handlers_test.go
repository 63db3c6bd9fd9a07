package folio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func setupTestApp(t *testing.T) *App {
	t.Helper()
	cfg := setupSite(t)
	a := New(cfg, stubViews())
	store, err := NewStore(cfg.DatabasePath)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	a.Store = store
	a.Cache = NewPostCache(store, cfg.PostCacheTTL)
	if err := a.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func get(a *App, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandlePost(t *testing.T) {
	a := setupTestApp(t)

	rec := get(a, "/blog/two/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "post two prev=one next=three logos=1" {
		t.Errorf("body = %q", got)
	}
}

func TestHandlePostHidesDrafts(t *testing.T) {
	a := setupTestApp(t)

	for _, target := range []string{"/blog/draft/", "/blog/missing/"} {
		rec := get(a, target)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", target, rec.Code)
		}
		if rec.Body.String() != "not found" {
			t.Errorf("%s: body = %q", target, rec.Body.String())
		}
	}
}

func TestHandleHomeAndFeeds(t *testing.T) {
	a := setupTestApp(t)

	if rec := get(a, "/"); rec.Code != http.StatusOK || rec.Body.String() != "index 3" {
		t.Errorf("home = %d %q", rec.Code, rec.Body.String())
	}
	rec := get(a, "/feed.xml")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Header().Get("Content-Type"), "rss") {
		t.Errorf("feed = %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if rec := get(a, "/sitemap.xml"); !strings.Contains(rec.Body.String(), "/blog/one/") {
		t.Errorf("sitemap = %s", rec.Body.String())
	}
	if rec := get(a, "/blog"); rec.Code != http.StatusMovedPermanently {
		t.Errorf("/blog status = %d, want 301", rec.Code)
	}
}

func TestReloadPicksUpNewPosts(t *testing.T) {
	a := setupTestApp(t)
	writeTestFile(t, a.Config.postsDir()+"/four.md", "---\ntitle: Four\ndate: 2024-03-15\n---\nFourth.\n")

	if err := a.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if rec := get(a, "/blog/four/"); rec.Body.String() != "post four prev=three next=- logos=1" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestReloadKeepsStoreOnFooterMismatch(t *testing.T) {
	a := setupTestApp(t)
	writeTestFile(t, a.Config.postsDir()+"/four.md", "---\ntitle: Four\ndate: 2024-03-15\n---\nFourth.\n")
	writeTestFile(t, a.Config.footerDir()+"/logos/extra.svg", "<svg/>")

	err := a.Reload(context.Background())
	if !errors.Is(err, ErrFooterMismatch) {
		t.Fatalf("Reload err = %v, want ErrFooterMismatch", err)
	}
	if _, err := a.Store.GetPostAny("four"); !errors.Is(err, ErrNotFound) {
		t.Errorf("store was re-indexed despite footer error: %v", err)
	}
	if got := len(a.currentFooter().Logos); got != 1 {
		t.Errorf("footer logos = %d, want the previous 1", got)
	}
}
