// Package viewport maps a client-reported viewport width to the number of
// product cards shown per page.
package viewport

// Breakpoint pairs a lower width bound with a page size.
type Breakpoint struct {
	MinWidth int
	PageSize int
}

// Resolver is a step function over an ordered, descending breakpoint table.
type Resolver struct {
	Breakpoints []Breakpoint
	// Fallback applies below the narrowest breakpoint. The shipped table
	// falls back to the widest tier's value; kept as documented behavior.
	Fallback int
}

// Default returns the shipped breakpoint table.
func Default() Resolver {
	return Resolver{
		Breakpoints: []Breakpoint{
			{MinWidth: 1280, PageSize: 8},
			{MinWidth: 1200, PageSize: 6},
			{MinWidth: 992, PageSize: 4},
			{MinWidth: 768, PageSize: 3},
			{MinWidth: 576, PageSize: 2},
		},
		Fallback: 8,
	}
}

// Resolve returns the page size for the given viewport width. Pure; callers
// re-resolve whenever the reported width changes rather than caching.
func (r Resolver) Resolve(width int) int {
	for _, bp := range r.Breakpoints {
		if width > bp.MinWidth {
			return bp.PageSize
		}
	}
	return r.Fallback
}
