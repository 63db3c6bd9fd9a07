package views

import (
	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/folio"
)

var titleCase = cases.Title(language.English)

// PrevNext links to the neighbouring pages. Each side is optional; with
// neither there is no nav at all. label names the page kind ("post").
func PrevNext(prev, next *folio.Post, label string) templ.Component {
	return component(func(h *htmlWriter) {
		if prev == nil && next == nil {
			return
		}
		h.raw(`<nav class="prev-next"`)
		h.attr("aria-label", titleCase.String(label)+" navigation")
		h.raw(">")
		link := func(p *folio.Post, rel, caption string) {
			h.raw("<a")
			h.attr("class", rel)
			h.attr("rel", rel)
			h.href("href", p.Link)
			h.raw("><span>")
			h.text(titleCase.String(caption + " " + label))
			h.raw("</span><strong>")
			h.text(p.Title)
			h.raw("</strong></a>")
		}
		if prev != nil {
			link(prev, "prev", "previous")
		}
		if next != nil {
			link(next, "next", "next")
		}
		h.raw("</nav>")
	})
}
