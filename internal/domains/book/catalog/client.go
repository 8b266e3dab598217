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

	"bookstore-storefront/internal/domains/book/model"
	"bookstore-storefront/pkg/metrics"
)

const (
	endpointList   = "list"
	endpointSearch = "search"
	endpointDetail = "detail"

	maxBodyBytes = 8 << 20
)

// HTTPClient talks to the catalog over HTTP. Every request carries a
// cache-busting "_t" parameter and no-cache headers so an intermediary
// never serves stale stock figures.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.StorefrontMetrics
	now        func() time.Time
}

// NewHTTPClient creates a catalog client rooted at baseURL
// (e.g. "http://catalog:3000").
func NewHTTPClient(baseURL string, timeout time.Duration, m *metrics.StorefrontMetrics) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
		now:        time.Now,
	}
}

// ListBooks - GET /api/books
func (c *HTTPClient) ListBooks(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := c.getJSON(ctx, endpointList, "/api/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// SearchBooks - GET /api/books/search?q=<term>
func (c *HTTPClient) SearchBooks(ctx context.Context, term string) ([]model.Book, error) {
	var books []model.Book
	q := url.Values{"q": {term}}
	if err := c.getJSON(ctx, endpointSearch, "/api/books/search", q, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook - GET /api/books/:id
func (c *HTTPClient) GetBook(ctx context.Context, id string) (*model.Book, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.ErrInvalidBookID
	}
	var book model.Book
	if err := c.getJSON(ctx, endpointDetail, "/api/books/"+url.PathEscape(id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint, path string, query url.Values, dest interface{}) (err error) {
	start := c.now()
	defer func() {
		c.metrics.ObserveCatalogFetch(endpoint, c.now().Sub(start))
		if err != nil && !errors.Is(err, model.ErrBookNotFound) {
			c.metrics.IncCatalogFailure(endpoint)
		}
	}()

	if query == nil {
		query = url.Values{}
	}
	query.Set("_t", strconv.FormatInt(c.now().UnixMilli(), 10))
	target := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", model.ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && endpoint == endpointDetail {
		return model.ErrBookNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status %d from %s", model.ErrCatalogUnavailable, resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", model.ErrCatalogUnavailable, err)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: decode %s: %v", model.ErrCatalogUnavailable, path, err)
	}
	return nil
}
