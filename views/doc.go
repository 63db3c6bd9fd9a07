// Package views holds the default templ components for folio: the post
// page and its parts (title block, meta strip, table of contents, comments,
// prev/next links), the footer, the index and error pages.
package views
