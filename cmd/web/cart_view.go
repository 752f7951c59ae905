package main

import (
	"vitrineshop.org/vitrine-web/internal/cart"
	"vitrineshop.org/vitrine-web/internal/format"
)

// CartLineView is one cart row shaped for rendering.
type CartLineView struct {
	ID            int
	Title         string
	Brand         string
	Thumbnail     string
	Quantity      int
	UnitPrice     string
	OriginalPrice string
	HasDiscount   bool
	Subtotal      string
}

// CartView is the cart page / table fragment view model.
type CartView struct {
	Lines      []CartLineView
	Empty      bool
	TotalItems int
	TotalPrice string
}

// buildCartView shapes a cart state for rendering.
func buildCartView(state cart.State) CartView {
	lines := make([]CartLineView, 0, len(state))
	for _, l := range state {
		lines = append(lines, CartLineView{
			ID:            l.ID,
			Title:         l.Title,
			Brand:         l.Brand,
			Thumbnail:     l.Thumbnail,
			Quantity:      l.Quantity,
			UnitPrice:     format.Price(l.UnitPrice()),
			OriginalPrice: format.Price(l.Price),
			HasDiscount:   l.Discount > 0,
			Subtotal:      format.Price(l.Subtotal()),
		})
	}
	return CartView{
		Lines:      lines,
		Empty:      len(lines) == 0,
		TotalItems: state.TotalItems(),
		TotalPrice: format.Price(state.TotalPrice()),
	}
}

// BadgeView is the header badge fragment view model.
type BadgeView struct {
	Count int
}
