package views

import (
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
	"github.com/eringen/folio/markdown"
)

const postLabel = "post"

// PostPage renders a full post: title block, meta strip, optional table of
// contents, body, comments and prev/next navigation.
func PostPage(p folio.PostPage) templ.Component {
	body := component(func(h *htmlWriter) {
		h.render(PageTitle(p.Cover, PostTitle(p.Post.Title, p.Post.Subtitle), PostMeta(p.Post)))
		h.open("div", "page-body")
		if p.Post.ShowToc {
			h.render(Toc(p.Doc.Outline(2, 4)))
		}
		h.raw("<main>")
		h.render(markdown.Markdown(p.Doc))
		h.raw("</main>")
		h.render(Comments(p.Comments))
		h.render(PrevNext(p.Prev, p.Next, postLabel))
		h.close("div")
	})
	return Global(p.Meta, p.SiteName, p.Footer, body)
}

// PostTitle renders the title and, when present, the subtitle beneath it.
func PostTitle(title, subtitle string) templ.Component {
	return component(func(h *htmlWriter) {
		if subtitle == "" {
			h.raw("<h1>")
			h.text(title)
			h.raw("</h1>")
			return
		}
		h.open("div", "post-title")
		h.raw("<h1>")
		h.text(title)
		h.raw("</h1><hr/><h2>")
		h.text(subtitle)
		h.raw("</h2>")
		h.close("div")
	})
}

// PageTitle is the header band; the cover, when set, is shown behind it
// with its credit.
func PageTitle(cover *folio.Cover, children ...templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("header", "page-title")
		if cover != nil {
			h.raw(`<img class="cover"`)
			h.href("src", cover.Src)
			h.attr("alt", cover.Alt)
			if cover.Width > 0 && cover.Height > 0 {
				h.attr("width", strconv.Itoa(cover.Width))
				h.attr("height", strconv.Itoa(cover.Height))
			}
			h.raw(` fetchpriority="high" decoding="async"/>`)
		}
		for _, c := range children {
			h.render(c)
		}
		if cover != nil && cover.Credit != "" {
			h.open("p", "cover-credit")
			h.text("Photo: ")
			if cover.URL != "" {
				h.raw("<a")
				h.href("href", cover.URL)
				h.raw(">")
				h.text(cover.Credit)
				h.raw("</a>")
			} else {
				h.text(cover.Credit)
			}
			h.close("p")
		}
		h.close("header")
	})
}

// PostMeta renders date, tags and reading time.
func PostMeta(p folio.Post) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("div", "post-meta")
		if p.Date != "" {
			h.raw("<time")
			h.attr("datetime", p.Date)
			h.raw(">")
			h.text(formatDate(p.Date))
			h.raw("</time>")
		}
		if len(p.Tags) > 0 {
			h.open("span", "tags")
			for i, t := range p.Tags {
				if i > 0 {
					h.text(", ")
				}
				h.raw("<a")
				h.href("href", tagURL(t))
				h.raw(">")
				h.text(t)
				h.raw("</a>")
			}
			h.close("span")
		}
		h.open("span", "time-to-read")
		h.text(strconv.Itoa(p.TimeToRead) + " min read")
		h.close("span")
		if !p.Published {
			h.open("span", "draft")
			h.text("Draft")
			h.close("span")
		}
		h.close("div")
	})
}

// Toc renders the table of contents. It is always present when called,
// even for a body without headings.
func Toc(headings []markdown.Heading) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<nav class="toc" aria-label="Table of contents">`)
		h.open("p", "toc-title")
		h.text("Contents")
		h.close("p")
		if len(headings) > 0 {
			h.raw("<ul>")
			for _, hd := range headings {
				h.open("li", "toc-h"+strconv.Itoa(hd.Level))
				h.raw("<a")
				h.attr("href", "#"+hd.ID)
				h.raw(">")
				h.text(hd.Text)
				h.raw("</a></li>")
			}
			h.raw("</ul>")
		}
		h.raw("</nav>")
	})
}

func formatDate(d string) string {
	t, err := time.Parse("2006-01-02", d)
	if err != nil {
		return d
	}
	return t.Format("Jan 2, 2006")
}
