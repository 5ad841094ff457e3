// Package fetcher downloads marketplace feeds and turns their entries into listings.
package fetcher

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"partsalert/internal/model"
)

const (
	defaultUserAgent = "partsalert/1.0"
	maxBodySize      = 5 * 1024 * 1024
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher downloads and parses RSS and Atom feeds.
type Fetcher struct {
	client    HTTPClient
	timeout   time.Duration
	userAgent string
}

// New creates a Fetcher with the given HTTP client.
func New(client HTTPClient) *Fetcher {
	return &Fetcher{
		client:    client,
		timeout:   30 * time.Second,
		userAgent: defaultUserAgent,
	}
}

// WithUserAgent overrides the User-Agent header sent with feed requests.
func (f *Fetcher) WithUserAgent(ua string) *Fetcher {
	if ua != "" {
		f.userAgent = ua
	}
	return f
}

// WithTimeout overrides the per-request timeout.
func (f *Fetcher) WithTimeout(d time.Duration) *Fetcher {
	if d > 0 {
		f.timeout = d
	}
	return f
}

// Fetch downloads and parses the feed at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	parser := gofeed.NewParser()
	feed, err := parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}

// FetchListings downloads the feed at url and returns its entries as listings.
func (f *Fetcher) FetchListings(ctx context.Context, url string) ([]model.Listing, error) {
	feed, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return Listings(feed.Items), nil
}

// ListingID returns the entry's id, falling back to its link.
func ListingID(item *gofeed.Item) string {
	return cmp.Or(item.GUID, item.Link)
}

// Listings converts feed items to listings, keeping feed order.
func Listings(items []*gofeed.Item) []model.Listing {
	listings := make([]model.Listing, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		listings = append(listings, model.Listing{
			ID:    ListingID(item),
			Title: item.Title,
			Link:  item.Link,
		})
	}
	return listings
}
