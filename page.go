package folio

import (
	"fmt"
	"time"

	"github.com/eringen/folio/markdown"
)

// DisqusConfig builds the comments embed parameters for p.
func DisqusConfig(cfg SiteConfig, p Post) CommentsConfig {
	return CommentsConfig{
		Shortname:  cfg.DisqusShortname,
		Identifier: p.Slug,
		Title:      p.Title,
		URL:        BuildURL(cfg.URL, "blog", p.Slug),
	}
}

// NewPostPage turns resolved records into the post view model. It returns
// ErrNotFound when the current post is absent.
func NewPostPage(cfg SiteConfig, r Resolved, footer Footer) (PostPage, error) {
	if r.Post == nil {
		return PostPage{}, ErrNotFound
	}
	post := *r.Post
	doc, err := markdown.Render(post.Body)
	if err != nil {
		return PostPage{}, fmt.Errorf("render %q: %w", post.Slug, err)
	}
	cover := post.CoverImage()
	meta := PageMeta{
		Title:       post.Title,
		Description: post.Excerpt,
		URL:         BuildURL(cfg.URL, "blog", post.Slug),
		OGType:      "article",
		JSONLD:      BlogPostingJsonLD(post, cover, cfg),
	}
	if cover != nil {
		meta.Image = AbsoluteURL(cfg.URL, cover.Src)
	}
	return PostPage{
		Meta:     meta,
		SiteName: cfg.Name,
		Post:     post,
		Cover:    cover,
		Doc:      doc,
		Comments: DisqusConfig(cfg, post),
		Prev:     r.Prev,
		Next:     r.Next,
		Footer:   withYear(footer),
	}, nil
}

// NewIndexPage builds the post listing view model.
func NewIndexPage(cfg SiteConfig, posts []Post, activeTag string, tags []string, footer Footer) IndexPage {
	return IndexPage{
		Meta: PageMeta{
			Title:       cfg.Name,
			Description: cfg.Description,
			URL:         BuildURL(cfg.URL),
			OGType:      "website",
			JSONLD:      WebsiteJsonLD(cfg),
		},
		SiteName:  cfg.Name,
		Posts:     posts,
		ActiveTag: activeTag,
		Tags:      tags,
		Footer:    withYear(footer),
	}
}

func withYear(f Footer) Footer {
	if f.Year == 0 {
		f.Year = time.Now().Year()
	}
	return f
}
