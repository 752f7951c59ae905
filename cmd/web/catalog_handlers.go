package main

import (
	"html/template"
	"net/http"

	"vitrineshop.org/vitrine-web/internal/seo"
)

// HomeHandler renders the catalog page.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	view := buildCatalogView(r)

	vm := pageData(r, pageTitle(view))
	vm.Catalog = view
	vm.SEO.Title = vm.Title + " | Vitrine"
	vm.SEO.Description = "Browse the product catalog, search as you type, and build your cart."
	vm.SEO.Canonical = absoluteURL(r)
	vm.JSONLD = append(vm.JSONLD, template.JS(seo.JSON(seo.WebSite("Vitrine", absoluteURL(r), "/?q="))))

	renderPage(w, r, "home", vm)
}

// ProductGridFrag renders the product grid + pagination fragment for page,
// search, or viewport changes.
func ProductGridFrag(w http.ResponseWriter, r *http.Request) {
	view := buildCatalogView(r)
	push := "/"
	if view.Query != "" {
		push = push + "?" + view.Query
	}
	w.Header().Set("HX-Push-Url", push)
	renderTemplate(w, r, "frag_product_grid", view)
}

func pageTitle(view CatalogView) string {
	if view.Search != "" {
		return "Search: " + view.Search
	}
	return "Catalog"
}
