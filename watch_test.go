package folio

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

// waitForPost polls the cache until slug is listed or the deadline passes.
func waitForPost(t *testing.T, a *App, slug string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		posts, err := a.Cache.ListPosts("")
		if err != nil {
			t.Fatalf("ListPosts: %v", err)
		}
		for _, p := range posts {
			if p.Slug == slug {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("post %q never appeared after a content change", slug)
}

func TestWatchContentReloads(t *testing.T) {
	a := setupTestApp(t)

	stop, err := a.watchContent(context.Background())
	if err != nil {
		t.Fatalf("watchContent: %v", err)
	}
	stopped := false
	defer func() {
		if !stopped {
			stop()
		}
	}()

	posts := a.Config.postsDir()
	writeTestFile(t, filepath.Join(posts, "four.md"), "---\ntitle: Four\ndate: 2024-03-15\n---\nFourth.\n")
	waitForPost(t, a, "four")

	// A directory created after startup gets its own watch.
	writeTestFile(t, filepath.Join(posts, "series", "part-one.md"), "---\ntitle: Part One\ndate: 2024-03-20\n---\nOne.\n")
	waitForPost(t, a, "part-one")
	time.Sleep(2 * reloadDebounce)
	writeTestFile(t, filepath.Join(posts, "series", "part-two.md"), "---\ntitle: Part Two\ndate: 2024-03-21\n---\nTwo.\n")
	waitForPost(t, a, "part-two")

	stopped = true
	done := make(chan struct{})
	go func() {
		stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stop did not return")
	}
}

func TestWatchContentMissingDir(t *testing.T) {
	a := New(SiteConfig{ContentDir: filepath.Join(t.TempDir(), "absent")}, stubViews())
	if _, err := a.watchContent(context.Background()); err == nil {
		t.Fatal("watchContent on a missing directory should fail")
	}
}
