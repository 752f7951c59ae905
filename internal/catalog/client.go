package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 8 * time.Second

// ErrNotFound is returned when the catalog has no product for an id.
var ErrNotFound = errors.New("catalog: product not found")

// Client issues read-only queries against the remote catalog source.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a catalog client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// List fetches one unfiltered page of the catalog.
func (c *Client) List(ctx context.Context, limit, skip int) (Page, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	var page Page
	if err := c.get(ctx, "/products", q, &page); err != nil {
		return Page{}, err
	}
	return page, nil
}

// Search fetches one page of products matching the query text.
func (c *Client) Search(ctx context.Context, query string, limit, skip int) (Page, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	var page Page
	if err := c.get(ctx, "/products/search", q, &page); err != nil {
		return Page{}, err
	}
	return page, nil
}

// Get fetches a single product by id.
func (c *Client) Get(ctx context.Context, id int) (Product, error) {
	var p Product
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), nil, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("catalog: %s status %d: %s", path, resp.StatusCode, drainError(resp.Body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog: %s: decode: %w", path, err)
	}
	return nil
}

func drainError(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
