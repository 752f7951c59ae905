package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"vitrineshop.org/vitrine-web/internal/catalog"
	"vitrineshop.org/vitrine-web/internal/config"
)

// fakeCatalogServer serves a dummyjson-shaped catalog of 37 products.
func fakeCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	const total = 37
	product := func(i int) catalog.Product {
		p := catalog.Product{
			ID:       i,
			Title:    "Product " + strconv.Itoa(i),
			Brand:    "Acme",
			Category: "gadgets",
			Price:    float64(10 + i),
			Stock:    5,
			Rating:   4.2,
		}
		if i == 1 {
			p.Title = "Phone One"
			p.Discount = 10
			p.Description = "A **great** phone."
			p.Images = []string{"http://img/1.jpg"}
		}
		return p
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		switch {
		case r.URL.Path == "/products":
			page := catalog.Page{Total: total}
			for i := skip + 1; i <= total && i <= skip+limit; i++ {
				page.Products = append(page.Products, product(i))
			}
			json.NewEncoder(w).Encode(page)
		case r.URL.Path == "/products/search":
			q := strings.ToLower(r.URL.Query().Get("q"))
			page := catalog.Page{}
			for i := 1; i <= total; i++ {
				p := product(i)
				if strings.Contains(strings.ToLower(p.Title), q) {
					page.Products = append(page.Products, p)
				}
			}
			page.Total = len(page.Products)
			if skip < len(page.Products) {
				end := skip + limit
				if end > len(page.Products) {
					end = len(page.Products)
				}
				page.Products = page.Products[skip:end]
			} else {
				page.Products = nil
			}
			json.NewEncoder(w).Encode(page)
		case strings.HasPrefix(r.URL.Path, "/products/"):
			id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/products/"))
			if err != nil || id < 1 || id > total {
				http.NotFound(w, r)
				return
			}
			json.NewEncoder(w).Encode(product(id))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newTestRouter wires the app against a fake catalog and a throwaway state
// dir, with the artificial delays collapsed so tests run fast.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	devMode = true
	srv := fakeCatalogServer(t)

	c, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	c.CatalogBaseURL = srv.URL
	c.StateDir = t.TempDir()
	c.TemplatesDir = "../../templates"
	c.PublicDir = "../../public"
	c.DebounceWindow = 5 * time.Millisecond
	c.WriteDelay = 0
	c.CheckoutDelay = time.Millisecond

	if err := initApp(c); err != nil {
		t.Fatalf("initApp: %v", err)
	}
	if _, err := parseTemplates(); err != nil {
		t.Fatalf("parseTemplates: %v", err)
	}
	return newRouter()
}

func get(t *testing.T, h http.Handler, target string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, h http.Handler, target, form string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t)
	rec := get(t, srv, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
}

func TestHomeRendersCatalog(t *testing.T) {
	srv := newTestRouter(t)
	rec := get(t, srv, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Found 37 products") {
		t.Fatalf("expected total count in body; body=%s", body)
	}
	if !strings.Contains(body, "Phone One") {
		t.Fatalf("expected first product on page 1; body=%s", body)
	}
	// Default width 1300 resolves to 8 cards per page.
	if got := strings.Count(body, `<li class="card">`); got != 8 {
		t.Fatalf("expected 8 product cards, got %d", got)
	}
}

func TestViewportWidthControlsPageSize(t *testing.T) {
	srv := newTestRouter(t)

	for _, tc := range []struct {
		width string
		cards int
	}{
		{"1300", 8},
		{"1250", 6},
		{"1000", 4},
		{"800", 3},
		{"600", 2},
		{"400", 8},
	} {
		rec := get(t, srv, "/?w="+tc.width, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("w=%s: expected 200, got %d", tc.width, rec.Code)
		}
		if got := strings.Count(rec.Body.String(), `<li class="card">`); got != tc.cards {
			t.Fatalf("w=%s: expected %d cards, got %d", tc.width, tc.cards, got)
		}
	}
}

func TestProductGridFragmentPushesURL(t *testing.T) {
	srv := newTestRouter(t)
	rec := get(t, srv, "/products/grid?page=2&w=1300", map[string]string{"HX-Request": "true"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("HX-Push-Url"); got != "/?page=2&w=1300" {
		t.Fatalf("expected HX-Push-Url /?page=2&w=1300, got %q", got)
	}
	// Page 2 of 8 starts at product 9.
	if !strings.Contains(rec.Body.String(), "Product 9") {
		t.Fatalf("expected page 2 products in fragment; body=%s", rec.Body.String())
	}
}

func TestOutOfRangePageClampsToLast(t *testing.T) {
	srv := newTestRouter(t)
	rec := get(t, srv, "/products/grid?page=99&w=1300", map[string]string{"HX-Request": "true"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// 37 products at 8 per page is 5 pages; the last holds products 33-37.
	body := rec.Body.String()
	if !strings.Contains(body, "Product 37") {
		t.Fatalf("expected last page products; body=%s", body)
	}
	if got := rec.Header().Get("HX-Push-Url"); !strings.Contains(got, "page=5") {
		t.Fatalf("expected pushed URL clamped to page 5, got %q", got)
	}
}

func TestSearchFiltersCatalog(t *testing.T) {
	srv := newTestRouter(t)
	rec := get(t, srv, "/?q=phone", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Found 1 products") {
		t.Fatalf("expected filtered total; body=%s", body)
	}
	if !strings.Contains(body, "Phone One") {
		t.Fatalf("expected matching product; body=%s", body)
	}
}

func TestProductPageRenders(t *testing.T) {
	srv := newTestRouter(t)
	rec := get(t, srv, "/products/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Phone One") {
		t.Fatalf("expected product title; body=%s", body)
	}
	// Markdown description renders as HTML.
	if !strings.Contains(body, "<strong>great</strong>") {
		t.Fatalf("expected rendered description; body=%s", body)
	}
	if !strings.Contains(body, "In stock: 5") {
		t.Fatalf("expected stock line; body=%s", body)
	}
}

func TestProductPageNotFound(t *testing.T) {
	srv := newTestRouter(t)
	rec := get(t, srv, "/products/999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAddToCartUpdatesBadge(t *testing.T) {
	srv := newTestRouter(t)

	rec := postForm(t, srv, "/cart/items", "id=1&qty=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "2" {
		t.Fatalf("expected badge '2', got %q", got)
	}

	// A second add for the same product merges into the existing line.
	rec = postForm(t, srv, "/cart/items", "id=1&qty=1")
	if got := strings.TrimSpace(rec.Body.String()); got != "3" {
		t.Fatalf("expected badge '3', got %q", got)
	}

	rec = get(t, srv, "/cart/badge", map[string]string{"HX-Request": "true"})
	if got := strings.TrimSpace(rec.Body.String()); got != "3" {
		t.Fatalf("expected polled badge '3', got %q", got)
	}
}

func TestCartPageShowsLines(t *testing.T) {
	srv := newTestRouter(t)
	postForm(t, srv, "/cart/items", "id=1&qty=2")

	rec := get(t, srv, "/cart", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Phone One") {
		t.Fatalf("expected line title in cart; body=%s", body)
	}
	if !strings.Contains(body, "Total (2 items)") {
		t.Fatalf("expected total line; body=%s", body)
	}
}

func TestSetQuantityAndRemove(t *testing.T) {
	srv := newTestRouter(t)
	postForm(t, srv, "/cart/items", "id=1&qty=1")

	rec := postForm(t, srv, "/cart/items/1", "qty=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Total (5 items)") {
		t.Fatalf("expected quantity 5 reflected; body=%s", rec.Body.String())
	}

	// Quantity 0 removes the line.
	rec = postForm(t, srv, "/cart/items/1", "qty=0")
	if !strings.Contains(rec.Body.String(), "Your cart is empty") {
		t.Fatalf("expected empty cart after zeroing; body=%s", rec.Body.String())
	}

	postForm(t, srv, "/cart/items", "id=2&qty=1")
	req := httptest.NewRequest(http.MethodDelete, "/cart/items/2", nil)
	req.Header.Set("HX-Request", "true")
	del := httptest.NewRecorder()
	srv.ServeHTTP(del, req)
	if del.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", del.Code)
	}
	if !strings.Contains(del.Body.String(), "Your cart is empty") {
		t.Fatalf("expected empty cart after remove; body=%s", del.Body.String())
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	srv := newTestRouter(t)
	postForm(t, srv, "/cart/items", "id=1&qty=2")

	// Without the confirm field the cart stays as it was.
	rec := postForm(t, srv, "/cart/clear", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Total (2 items)") {
		t.Fatalf("expected cart unchanged without confirmation; body=%s", rec.Body.String())
	}

	rec = postForm(t, srv, "/cart/clear", "confirm=yes")
	if !strings.Contains(rec.Body.String(), "Your cart is empty") {
		t.Fatalf("expected cleared cart; body=%s", rec.Body.String())
	}
}

func TestCheckoutPlacesOrderAndClears(t *testing.T) {
	srv := newTestRouter(t)
	postForm(t, srv, "/cart/items", "id=1&qty=2")

	rec := postForm(t, srv, "/cart/checkout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Order placed") {
		t.Fatalf("expected confirmation; body=%s", body)
	}
	if !strings.Contains(body, "ord_") {
		t.Fatalf("expected order id; body=%s", body)
	}

	after := get(t, srv, "/cart", nil)
	if !strings.Contains(after.Body.String(), "Your cart is empty") {
		t.Fatalf("expected empty cart after checkout; body=%s", after.Body.String())
	}
}

func TestSuggestFragment(t *testing.T) {
	srv := newTestRouter(t)
	rec := get(t, srv, "/search/suggest?q=phone", map[string]string{"HX-Request": "true"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Phone One") {
		t.Fatalf("expected suggestion in panel; body=%s", rec.Body.String())
	}
}

func TestSuggestEmptyQueryRendersNothing(t *testing.T) {
	srv := newTestRouter(t)
	rec := get(t, srv, "/search/suggest?q=", map[string]string{"HX-Request": "true"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "suggestion-list") {
		t.Fatalf("expected empty panel; body=%s", rec.Body.String())
	}
}

func TestAssetsServeCSS(t *testing.T) {
	srv := newTestRouter(t)
	rec := get(t, srv, "/assets/app.css", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/css") {
		t.Fatalf("expected css content type, got %q", got)
	}
}
