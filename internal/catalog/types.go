// Package catalog talks to the remote product catalog and owns the
// query/pagination state the storefront renders from.
package catalog

// Product is a catalog entry as served by the remote source. It is
// read-only from our side; the catalog owns it.
type Product struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Discount    float64  `json:"discount"`
	Stock       int      `json:"stock"`
	Rating      float64  `json:"rating"`
	Thumbnail   string   `json:"thumbnail"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
}

// EffectivePrice returns the discount-adjusted unit price.
func (p Product) EffectivePrice() float64 {
	if p.Discount > 0 {
		return p.Price * (1 - p.Discount/100)
	}
	return p.Price
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool { return p.Stock >= 1 }

// Page is one slice of a paginated catalog listing.
type Page struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}
