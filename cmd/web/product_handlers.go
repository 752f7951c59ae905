package main

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vitrineshop.org/vitrine-web/internal/catalog"
	mw "vitrineshop.org/vitrine-web/internal/middleware"
	"vitrineshop.org/vitrine-web/internal/richtext"
	"vitrineshop.org/vitrine-web/internal/seo"
)

// ProductView is the detail page view model.
type ProductView struct {
	ProductCard
	Images      []string
	Stock       int
	Description template.HTML
}

// ProductHandler renders the product detail page.
func ProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		mw.WriteError(w, r, http.StatusNotFound, "unknown product")
		return
	}
	p, err := catalogClient.Get(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		mw.WriteError(w, r, http.StatusNotFound, "unknown product")
		return
	}
	if err != nil {
		mw.WriteError(w, r, http.StatusBadGateway, "catalog unavailable")
		return
	}

	view := ProductView{
		ProductCard: productCard(p),
		Images:      p.Images,
		Stock:       p.Stock,
		Description: richtext.Description(p.Description),
	}

	vm := pageData(r, p.Title)
	vm.Product = view
	vm.SEO.Title = p.Title + " | Vitrine"
	vm.SEO.Description = p.Description
	vm.SEO.Canonical = absoluteURL(r)
	vm.JSONLD = append(vm.JSONLD, template.JS(seo.JSON(seo.Product(
		p.Title, p.Description, absoluteURL(r), p.Thumbnail,
		seo.Offer{Price: p.EffectivePrice(), Currency: "USD", InStock: p.InStock()},
		p.Rating,
	))))

	renderPage(w, r, "product", vm)
}

// CartAddHandler merges the requested units into the cart, one awaited add
// per unit, and responds with the refreshed badge fragment.
func CartAddHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil || id < 1 {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid product id")
		return
	}
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil || qty < 1 {
		qty = 1
	}

	p, err := catalogClient.Get(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		mw.WriteError(w, r, http.StatusNotFound, "unknown product")
		return
	}
	if err != nil {
		mw.WriteError(w, r, http.StatusBadGateway, "catalog unavailable")
		return
	}

	if _, err := cartSvc.AddN(r.Context(), p, qty); err != nil {
		mw.WriteError(w, r, http.StatusInternalServerError, "could not update cart")
		return
	}
	CartBadgeFrag(w, r)
}
