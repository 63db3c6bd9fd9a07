package views

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"

	"github.com/eringen/folio"
)

var sourceNotePolicy = bluemonday.UGCPolicy()

// Footer renders copyright, the sanitized source note and one linked logo
// per sponsor.
func Footer(f folio.Footer) templ.Component {
	return component(func(h *htmlWriter) {
		if f.Year == 0 && f.Copyright == "" && f.SourceNote == "" && len(f.Logos) == 0 {
			return
		}
		h.open("footer", "site-footer")
		h.open("p", "copyright")
		h.text("© " + strconv.Itoa(f.Year))
		if f.Copyright != "" {
			h.text(" - " + f.Copyright)
		}
		h.close("p")
		if f.SourceNote != "" {
			h.open("div", "source-note")
			h.raw(sourceNotePolicy.Sanitize(f.SourceNote))
			h.close("div")
		}
		if len(f.Logos) > 0 {
			h.open("div", "powered-by")
			h.text("Powered by")
			for _, l := range f.Logos {
				h.raw("<a")
				h.href("href", l.URL)
				h.raw("><img")
				h.href("src", l.Src)
				h.attr("alt", l.Title)
				h.raw(` height="28"/></a>`)
			}
			h.close("div")
		}
		h.close("footer")
	})
}
