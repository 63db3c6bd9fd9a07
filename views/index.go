package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/folio"
)

// Index lists posts newest first with a tag filter bar.
func Index(p folio.IndexPage) templ.Component {
	body := component(func(h *htmlWriter) {
		h.open("main", "post-list")
		if len(p.Tags) > 0 {
			h.raw(`<nav class="tags" aria-label="Tags">`)
			for _, t := range p.Tags {
				h.raw("<a")
				class := "tag"
				if t == p.ActiveTag {
					class += " active"
				}
				h.attr("class", class)
				h.href("href", tagURL(t))
				h.raw(">")
				h.text(t)
				h.raw("</a>")
			}
			h.raw("</nav>")
		}
		if len(p.Posts) == 0 {
			h.open("p", "empty")
			h.text("No posts yet.")
			h.close("p")
		}
		for _, post := range p.Posts {
			h.open("article", "post-card")
			h.raw("<h2><a")
			h.href("href", post.Link)
			h.raw(">")
			h.text(post.Title)
			h.raw("</a></h2>")
			h.render(PostMeta(post))
			if post.Excerpt != "" {
				h.raw("<p>")
				h.text(post.Excerpt)
				h.raw("</p>")
			}
			h.close("article")
		}
		h.close("main")
	})
	return Global(p.Meta, p.SiteName, p.Footer, body)
}
