package catalog

import (
	"context"
	"log"
	"sync"
)

// Pagination describes the current slice of the listing.
type Pagination struct {
	Page       int
	TotalPages int
	Total      int
}

// Controller composes the page cursor and search term into catalog queries
// and holds the resulting product list. Concurrent refreshes are tagged with
// a monotonically increasing sequence; only the latest-issued request may
// publish its result, so an out-of-order arrival never overwrites a newer
// page.
type Controller struct {
	client *Client

	mu         sync.Mutex
	page       int
	pageSize   int
	search     string
	seq        uint64
	products   []Product
	pagination Pagination
	loading    bool
}

// NewController returns a controller starting at page 1 of an unfiltered
// listing. A non-positive page size is raised to 1.
func NewController(client *Client, pageSize int) *Controller {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Controller{
		client:     client,
		page:       1,
		pageSize:   pageSize,
		pagination: Pagination{Page: 1, TotalPages: 1},
	}
}

// SetPage moves the cursor, clamped to [1, totalPages] once a total is
// known. An out-of-range page is never allowed to produce a negative or
// past-the-end skip.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = c.clampLocked(page)
}

// SetSearch replaces the search term and rewinds to page 1.
func (c *Controller) SetSearch(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if query == c.search {
		return
	}
	c.search = query
	c.page = 1
}

// SetPageSize changes the number of items per page and rewinds to page 1,
// since offsets computed for the old size would be out of range.
func (c *Controller) SetPageSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if size < 1 || size == c.pageSize {
		return
	}
	c.pageSize = size
	c.page = 1
}

// Refresh issues the catalog query for the current page, size and search
// term. On success the product list and pagination are replaced as a unit;
// on transport failure the error is logged and the previous list stays,
// rendering as "no result" for a first load. Refresh never panics the
// serving path. When the fetched total reveals the cursor was past the end,
// the page is clamped and the in-range slice fetched once more.
func (c *Controller) Refresh(ctx context.Context) {
	for attempt := 0; attempt < 2; attempt++ {
		c.mu.Lock()
		c.loading = true
		c.seq++
		seq := c.seq
		page, size, search := c.page, c.pageSize, c.search
		c.mu.Unlock()

		skip := size * (page - 1)
		var (
			result Page
			err    error
		)
		if search != "" {
			result, err = c.client.Search(ctx, search, size, skip)
		} else {
			result, err = c.client.List(ctx, size, skip)
		}

		c.mu.Lock()
		if seq != c.seq {
			// A newer request was issued while this one was in flight.
			c.mu.Unlock()
			return
		}
		c.loading = false
		if err != nil {
			log.Printf("catalog: refresh page=%d size=%d q=%q: %v", page, size, search, err)
			c.mu.Unlock()
			return
		}
		totalPages := (result.Total + size - 1) / size
		c.products = result.Products
		c.pagination = Pagination{Page: page, TotalPages: totalPages, Total: result.Total}
		clamped := c.clampLocked(page)
		if clamped != page {
			c.page = clamped
			c.pagination.Page = clamped
			c.mu.Unlock()
			continue
		}
		c.page = clamped
		c.pagination.Page = clamped
		c.mu.Unlock()
		return
	}
}

// Products returns the last successfully fetched product list.
func (c *Controller) Products() []Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products
}

// Pagination returns the pagination computed from the last successful fetch.
func (c *Controller) Pagination() Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

// Loading reports whether a refresh is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Search returns the active search term.
func (c *Controller) Search() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// PageSize returns the active page size.
func (c *Controller) PageSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageSize
}

func (c *Controller) clampLocked(page int) int {
	if page < 1 {
		return 1
	}
	if max := c.pagination.TotalPages; c.pagination.Total > 0 && page > max {
		if max < 1 {
			max = 1
		}
		return max
	}
	return page
}
