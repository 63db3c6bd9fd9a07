package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/folio"
)

func errorPage(title, message string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/><title>`)
		h.text(title)
		h.raw(`</title><link rel="stylesheet" href="/public/style.css"/></head><body>`)
		h.open("main", "error-page")
		h.raw("<h1>")
		h.text(title)
		h.raw("</h1><p>")
		h.text(message)
		h.raw(`</p><a href="/">Back to all posts</a>`)
		h.close("main")
		h.raw("</body></html>")
	})
}

// NotFound is the 404 page.
func NotFound() templ.Component {
	return errorPage("Page not found", "There is no post at this address.")
}

// ServerError is the 500 page.
func ServerError() templ.Component {
	return errorPage("Something went wrong", "The page could not be rendered. Please try again later.")
}

// AdminLogin is the draft preview login form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	body := component(func(h *htmlWriter) {
		h.open("main", "admin-login")
		h.raw("<h1>Preview drafts</h1>")
		if showError {
			h.raw(`<p class="error" role="alert">Wrong password.</p>`)
		}
		h.raw(`<form method="post" action="/admin/login/">`)
		h.raw(`<input type="hidden" name="_csrf"`)
		h.attr("value", csrfToken)
		h.raw("/>")
		h.raw(`<label>Password <input type="password" name="password" autocomplete="current-password" required/></label>`)
		h.raw(`<button type="submit">Log in</button></form>`)
		h.close("main")
	})
	return Global(folio.PageMeta{Title: "Log in"}, "Admin", folio.Footer{}, body)
}

// Funcs returns the default view set for folio.New and folio.NewBuilder.
func Funcs() folio.ViewFuncs {
	return folio.ViewFuncs{
		Index:       Index,
		Post:        PostPage,
		AdminLogin:  AdminLogin,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}
