// Package cart holds the shopping cart document and the mutations allowed
// on it. State transitions are value-semantic: each returns a fresh State so
// a transition is atomic with respect to the snapshot it was derived from.
package cart

import "vitrineshop.org/vitrine-web/internal/catalog"

// Line is one product entry in the cart: the display snapshot of the
// product plus a quantity of at least 1. A cart holds at most one line per
// product id.
type Line struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Brand     string  `json:"brand"`
	Price     float64 `json:"price"`
	Discount  float64 `json:"discount"`
	Thumbnail string  `json:"thumbnail"`
	Quantity  int     `json:"quantity"`
}

// UnitPrice returns the discount-adjusted price for one unit.
func (l Line) UnitPrice() float64 {
	if l.Discount > 0 {
		return l.Price * (1 - l.Discount/100)
	}
	return l.Price
}

// Subtotal returns the discount-adjusted price for the whole line.
func (l Line) Subtotal() float64 { return l.UnitPrice() * float64(l.Quantity) }

// State is the ordered sequence of cart lines. The zero value is the empty
// cart.
type State []Line

// LineFromProduct snapshots the product fields a cart line displays.
func LineFromProduct(p catalog.Product) Line {
	return Line{
		ID:        p.ID,
		Title:     p.Title,
		Brand:     p.Brand,
		Price:     p.Price,
		Discount:  p.Discount,
		Thumbnail: p.Thumbnail,
		Quantity:  1,
	}
}

// Find returns the line for a product id, if present.
func (s State) Find(id int) (Line, bool) {
	for _, l := range s {
		if l.ID == id {
			return l, true
		}
	}
	return Line{}, false
}

// Add merges one unit of the product into the cart: an existing line gains
// quantity, otherwise a new line with quantity 1 is appended.
func (s State) Add(p catalog.Product) State {
	next := make(State, len(s))
	copy(next, s)
	for i := range next {
		if next[i].ID == p.ID {
			next[i].Quantity++
			return next
		}
	}
	return append(next, LineFromProduct(p))
}

// SetQuantity sets the quantity for a product's line. A quantity below 1 is
// treated as removal, not as an error.
func (s State) SetQuantity(id, quantity int) State {
	if quantity < 1 {
		return s.Remove(id)
	}
	next := make(State, len(s))
	copy(next, s)
	for i := range next {
		if next[i].ID == id {
			next[i].Quantity = quantity
		}
	}
	return next
}

// Remove filters out the line for the product id.
func (s State) Remove(id int) State {
	next := make(State, 0, len(s))
	for _, l := range s {
		if l.ID != id {
			next = append(next, l)
		}
	}
	return next
}

// Clear returns the empty cart.
func (s State) Clear() State { return State{} }

// TotalItems is the sum of line quantities.
func (s State) TotalItems() int {
	total := 0
	for _, l := range s {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the discount-adjusted sum over all lines.
func (s State) TotalPrice() float64 {
	total := 0.0
	for _, l := range s {
		total += l.Subtotal()
	}
	return total
}
