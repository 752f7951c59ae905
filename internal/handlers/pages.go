// Package handlers holds the shared layout view models.
package handlers

import (
	"html/template"

	"vitrineshop.org/vitrine-web/internal/nav"
	"vitrineshop.org/vitrine-web/internal/seo"
)

// PageData is the view model every full page hands to the shared layout.
type PageData struct {
	Title     string
	Path      string
	Nav       []nav.RenderedItem
	SEO       seo.Meta
	JSONLD    []template.JS
	Analytics Analytics

	// BadgeCount is the live cart item count shown in the header.
	BadgeCount int
	// Search is the active catalog search term, echoed into the search box.
	Search string

	// Per-page view model payloads
	Catalog any
	Product any
	Cart    any
}
