package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/folio"
)

// Global is the page shell: <head> metadata, site header, body, footer.
func Global(meta folio.PageMeta, siteName string, footer folio.Footer, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		title := siteName
		if meta.Title != "" && meta.Title != siteName {
			title = meta.Title + " | " + siteName
		}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		h.raw("<title>")
		h.text(title)
		h.raw("</title>")
		if meta.Description != "" {
			h.raw(`<meta name="description"`)
			h.attr("content", meta.Description)
			h.raw("/>")
		}
		if meta.URL != "" {
			h.raw(`<link rel="canonical"`)
			h.href("href", meta.URL)
			h.raw("/>")
		}
		writeOpenGraph(h, meta, siteName)
		h.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml"/>`)
		h.raw(`<link rel="stylesheet" href="/public/style.css"/>`)
		if meta.JSONLD != "" {
			// encoding/json escapes <, > and & so the payload cannot end the script.
			h.raw(`<script type="application/ld+json">`)
			h.raw(meta.JSONLD)
			h.raw("</script>")
		}
		h.raw("</head><body>")
		h.raw(`<header class="site-header"><a href="/" class="site-name">`)
		h.text(siteName)
		h.raw("</a></header>")
		h.render(body)
		h.render(Footer(footer))
		h.raw("</body></html>")
	})
}

func writeOpenGraph(h *htmlWriter, meta folio.PageMeta, siteName string) {
	prop := func(name, value string) {
		if value == "" {
			return
		}
		h.raw("<meta")
		h.attr("property", name)
		h.attr("content", value)
		h.raw("/>")
	}
	prop("og:site_name", siteName)
	prop("og:title", meta.Title)
	prop("og:description", meta.Description)
	prop("og:type", meta.OGType)
	prop("og:url", meta.URL)
	prop("og:image", meta.Image)
}
