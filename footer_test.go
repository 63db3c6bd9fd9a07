package folio

import (
	"errors"
	"path/filepath"
	"testing"
)

func threeSponsors() FooterConfig {
	return FooterConfig{
		Copyright:  "Jane Doe",
		SourceNote: `Source on <a href="https://github.com/x/y">GitHub</a>`,
		PoweredBy: []Sponsor{
			{Title: "Gatsby", URL: "https://gatsbyjs.org"},
			{Title: "Netlify", URL: "https://netlify.com"},
			{Title: "GitHub", URL: "https://github.com"},
		},
	}
}

func TestJoinFooterPositional(t *testing.T) {
	logos := []string{"1-gatsby.svg", "2-netlify.svg", "3-github.svg"}
	f, err := JoinFooter(threeSponsors(), logos)
	if err != nil {
		t.Fatalf("JoinFooter: %v", err)
	}
	if len(f.Logos) != 3 {
		t.Fatalf("Logos = %d, want 3", len(f.Logos))
	}
	for i, l := range f.Logos {
		if want := LogoURLPrefix + logos[i]; l.Src != want {
			t.Errorf("Logos[%d].Src = %q, want %q", i, l.Src, want)
		}
		if want := threeSponsors().PoweredBy[i].URL; l.URL != want {
			t.Errorf("Logos[%d].URL = %q, want %q", i, l.URL, want)
		}
	}
}

func TestJoinFooterCountMismatch(t *testing.T) {
	_, err := JoinFooter(threeSponsors(), []string{"a.svg", "b.svg"})
	if !errors.Is(err, ErrFooterMismatch) {
		t.Errorf("err = %v, want ErrFooterMismatch", err)
	}
}

func TestJoinFooterByKey(t *testing.T) {
	cfg := threeSponsors()
	cfg.PoweredBy[0].Logo = "gatsby"
	cfg.PoweredBy[1].Logo = "netlify.svg"
	cfg.PoweredBy[2].Logo = "github"
	// Sorted order differs from sponsor order; keys win.
	f, err := JoinFooter(cfg, []string{"github.svg", "gatsby.png", "netlify.svg", "unused.svg"})
	if err != nil {
		t.Fatalf("JoinFooter: %v", err)
	}
	want := []string{"gatsby.png", "netlify.svg", "github.svg"}
	for i, l := range f.Logos {
		if l.Src != LogoURLPrefix+want[i] {
			t.Errorf("Logos[%d].Src = %q, want %q", i, l.Src, LogoURLPrefix+want[i])
		}
	}

	cfg.PoweredBy[2].Logo = "gitlab"
	if _, err := JoinFooter(cfg, []string{"github.svg", "gatsby.png", "netlify.svg"}); !errors.Is(err, ErrFooterMismatch) {
		t.Errorf("unknown key: err = %v, want ErrFooterMismatch", err)
	}
}

func TestLoadFooter(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "footer.yaml"), `copyright: Jane Doe
sourceNote: 'Code on <a href="https://github.com">GitHub</a>'
poweredBy:
  - title: Gatsby
    url: https://gatsbyjs.org
  - title: Netlify
    url: https://netlify.com
`)
	writeTestFile(t, filepath.Join(dir, "logos", "b-netlify.svg"), "<svg/>")
	writeTestFile(t, filepath.Join(dir, "logos", "a-gatsby.svg"), "<svg/>")
	writeTestFile(t, filepath.Join(dir, "logos", ".DS_Store"), "")

	f, err := LoadFooter(dir)
	if err != nil {
		t.Fatalf("LoadFooter: %v", err)
	}
	if f.Copyright != "Jane Doe" {
		t.Errorf("Copyright = %q", f.Copyright)
	}
	if len(f.Logos) != 2 || f.Logos[0].Src != LogoURLPrefix+"a-gatsby.svg" || f.Logos[1].Title != "Netlify" {
		t.Errorf("Logos = %+v", f.Logos)
	}
}

func TestLoadFooterMissingIsEmpty(t *testing.T) {
	f, err := LoadFooter(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFooter: %v", err)
	}
	if len(f.Logos) != 0 || f.Copyright != "" {
		t.Errorf("LoadFooter(empty dir) = %+v, want zero footer", f)
	}
}
