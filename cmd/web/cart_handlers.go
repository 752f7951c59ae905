package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vitrineshop.org/vitrine-web/internal/format"
	mw "vitrineshop.org/vitrine-web/internal/middleware"
)

// CartHandler renders the cart page.
func CartHandler(w http.ResponseWriter, r *http.Request) {
	view := buildCartView(cartSvc.State())

	vm := pageData(r, "Cart")
	vm.Cart = view
	vm.SEO.Title = "Cart | Vitrine"
	vm.SEO.Description = "Review your cart, adjust quantities, and place your order."
	vm.SEO.Canonical = absoluteURL(r)

	renderPage(w, r, "cart", vm)
}

// CartBadgeFrag renders the live item-count badge.
func CartBadgeFrag(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "frag_cart_badge", BadgeView{Count: badge.Items()})
}

// CartSetQuantityHandler sets a line's quantity. A quantity below 1 removes
// the line.
func CartSetQuantityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid quantity")
		return
	}
	state, err := cartSvc.SetQuantity(r.Context(), id, qty)
	if err != nil {
		mw.WriteError(w, r, http.StatusInternalServerError, "could not update cart")
		return
	}
	renderTemplate(w, r, "frag_cart_table", buildCartView(state))
}

// CartRemoveHandler drops a line from the cart.
func CartRemoveHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid product id")
		return
	}
	state, err := cartSvc.Remove(r.Context(), id)
	if err != nil {
		mw.WriteError(w, r, http.StatusInternalServerError, "could not update cart")
		return
	}
	renderTemplate(w, r, "frag_cart_table", buildCartView(state))
}

// CartClearHandler empties the cart, but only when the explicit confirmation
// field is present; declining leaves the persisted state untouched.
func CartClearHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	if r.FormValue("confirm") != "yes" {
		renderTemplate(w, r, "frag_cart_table", buildCartView(cartSvc.State()))
		return
	}
	state, err := cartSvc.Clear(r.Context())
	if err != nil {
		mw.WriteError(w, r, http.StatusInternalServerError, "could not clear cart")
		return
	}
	renderTemplate(w, r, "frag_cart_table", buildCartView(state))
}

// CheckoutView reports a placed order.
type CheckoutView struct {
	OrderID string
	Items   int
	Total   string
}

// CartCheckoutHandler places the order through the order service and, on
// success, renders the confirmation over the emptied cart.
func CartCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	conf, err := cartSvc.Checkout(r.Context())
	if err != nil {
		mw.WriteError(w, r, http.StatusBadGateway, "checkout failed, your cart is unchanged")
		return
	}
	renderTemplate(w, r, "frag_checkout_done", CheckoutView{
		OrderID: conf.OrderID,
		Items:   conf.Items,
		Total:   format.Price(conf.TotalPrice),
	})
}
