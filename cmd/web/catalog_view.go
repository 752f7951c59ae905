package main

import (
	"net/http"
	"net/url"
	"strconv"

	"vitrineshop.org/vitrine-web/internal/catalog"
	"vitrineshop.org/vitrine-web/internal/format"
	handlersPkg "vitrineshop.org/vitrine-web/internal/handlers"
	"vitrineshop.org/vitrine-web/internal/nav"
)

// ProductCard is the grid view model for one product.
type ProductCard struct {
	ID            int
	Title         string
	Brand         string
	Category      string
	Rating        float64
	Thumbnail     string
	Price         string
	OriginalPrice string
	HasDiscount   bool
	DiscountLabel string
	InStock       bool
}

// PageItem is one pagination control: a page number or an ellipsis.
type PageItem struct {
	Num     int
	Dots    bool
	Current bool
}

// CatalogView is the catalog page / grid fragment view model.
type CatalogView struct {
	Search     string
	Loading    bool
	Total      int
	Products   []ProductCard
	Page       int
	TotalPages int
	Pages      []PageItem
	Width      int
	PageSize   int
	// Query is the canonical query string for history push, without "?".
	Query string
}

// buildCatalogView resolves the page size from the reported viewport width,
// runs the catalog query for the requested page and search term, and shapes
// the result for rendering.
func buildCatalogView(r *http.Request) CatalogView {
	q := r.URL.Query()
	search := q.Get("q")
	page, _ := strconv.Atoi(q.Get("page"))
	width, err := strconv.Atoi(q.Get("w"))
	if err != nil || width <= 0 {
		width = cfg.DefaultWidth
	}
	pageSize := pageSizer.Resolve(width)

	ctrl := catalog.NewController(catalogClient, pageSize)
	ctrl.SetSearch(search)
	ctrl.SetPage(page)
	ctrl.Refresh(r.Context())

	pag := ctrl.Pagination()
	products := ctrl.Products()

	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, productCard(p))
	}

	return CatalogView{
		Search:     search,
		Loading:    ctrl.Loading(),
		Total:      pag.Total,
		Products:   cards,
		Page:       pag.Page,
		TotalPages: pag.TotalPages,
		Pages:      paginationWindow(pag.Page, pag.TotalPages),
		Width:      width,
		PageSize:   pageSize,
		Query:      catalogQuery(search, pag.Page, q.Get("w")),
	}
}

func productCard(p catalog.Product) ProductCard {
	return ProductCard{
		ID:            p.ID,
		Title:         p.Title,
		Brand:         p.Brand,
		Category:      p.Category,
		Rating:        p.Rating,
		Thumbnail:     p.Thumbnail,
		Price:         format.Price(p.EffectivePrice()),
		OriginalPrice: format.Price(p.Price),
		HasDiscount:   p.Discount > 0,
		DiscountLabel: "-" + format.Percent(p.Discount),
		InStock:       p.InStock(),
	}
}

func catalogQuery(search string, page int, width string) string {
	v := url.Values{}
	if search != "" {
		v.Set("q", search)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if width != "" {
		v.Set("w", width)
	}
	return v.Encode()
}

// paginationWindow builds the visible page controls: first and last page
// always shown, two neighbors either side of the current page, ellipsis for
// the gaps.
func paginationWindow(page, totalPages int) []PageItem {
	if totalPages <= 1 {
		return nil
	}
	const delta = 2

	items := []PageItem{{Num: 1, Current: page == 1}}
	start := page - delta
	if start < 2 {
		start = 2
	}
	end := page + delta
	if end > totalPages-1 {
		end = totalPages - 1
	}
	if start > 2 {
		items = append(items, PageItem{Dots: true})
	}
	for i := start; i <= end; i++ {
		items = append(items, PageItem{Num: i, Current: i == page})
	}
	if end < totalPages-1 {
		items = append(items, PageItem{Dots: true})
	}
	items = append(items, PageItem{Num: totalPages, Current: page == totalPages})
	return items
}

// pageData assembles the shared layout view model.
func pageData(r *http.Request, title string) handlersPkg.PageData {
	return handlersPkg.PageData{
		Title:      title,
		Path:       r.URL.Path,
		Nav:        nav.Build(r.URL.Path),
		Analytics:  handlersPkg.LoadAnalyticsFromEnv(),
		BadgeCount: badge.Items(),
		Search:     r.URL.Query().Get("q"),
	}
}

// absoluteURL reconstructs the request URL for canonical links.
func absoluteURL(r *http.Request) string {
	scheme := "https"
	if r.TLS == nil {
		if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
			scheme = fwd
		} else {
			scheme = "http"
		}
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
