package views

import (
	"encoding/json"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
)

// Comments embeds the Disqus thread for one page. Nothing is rendered
// without a shortname.
func Comments(cfg folio.CommentsConfig) templ.Component {
	return component(func(h *htmlWriter) {
		if cfg.Shortname == "" {
			return
		}
		page, err := json.Marshal(map[string]string{
			"identifier": cfg.Identifier,
			"title":      cfg.Title,
			"url":        cfg.URL,
		})
		if err != nil {
			h.err = err
			return
		}
		src, err := json.Marshal("https://" + cfg.Shortname + ".disqus.com/embed.js")
		if err != nil {
			h.err = err
			return
		}
		h.raw(`<section class="comments"`)
		h.attr("data-shortname", cfg.Shortname)
		h.attr("data-identifier", cfg.Identifier)
		h.raw(`><div id="disqus_thread"></div><script>`)
		h.raw("var disqus_config=function(){var p=" + string(page) +
			";this.page.identifier=p.identifier;this.page.title=p.title;this.page.url=p.url;};")
		h.raw("(function(){var d=document,s=d.createElement('script');s.src=" + string(src) +
			";s.setAttribute('data-timestamp',+new Date());(d.head||d.body).appendChild(s);})();")
		h.raw("</script></section>")
	})
}
