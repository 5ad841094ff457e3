package fetcher

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mmcdole/gofeed"

	"partsalert/internal/model"
)

type mockTransport struct {
	body       string
	statusCode int
	err        error
	lastReq    *http.Request
}

func (m *mockTransport) Do(req *http.Request) (*http.Response, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &http.Response{
		StatusCode: m.statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(m.body)),
	}, nil
}

func loadFixture(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test-only fixture loading
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return string(data)
}

func TestFetch(t *testing.T) {
	xml := loadFixture(t, "../../testdata/primary.xml")

	tests := []struct {
		name      string
		transport *mockTransport
		wantTitle string
		wantItems int
		wantErr   bool
	}{
		{
			name:      "successful fetch",
			transport: &mockTransport{body: xml, statusCode: 200},
			wantTitle: "bapcsalescanada",
			wantItems: 4,
		},
		{
			name:      "http error status",
			transport: &mockTransport{body: "too many requests", statusCode: 429},
			wantErr:   true,
		},
		{
			name:      "network error",
			transport: &mockTransport{err: io.ErrUnexpectedEOF},
			wantErr:   true,
		},
		{
			name:      "invalid xml",
			transport: &mockTransport{body: "not xml at all", statusCode: 200},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.transport)
			feed, err := f.Fetch(context.Background(), "https://example.com/.rss")

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.wantTitle, feed.Title); diff != "" {
				t.Errorf("title mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantItems, len(feed.Items)); diff != "" {
				t.Errorf("item count mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFetchSetsUserAgent(t *testing.T) {
	tr := &mockTransport{body: loadFixture(t, "../../testdata/primary.xml"), statusCode: 200}
	f := New(tr).WithUserAgent("linux:partsalert:v1 (by /u/someone)")

	if _, err := f.Fetch(context.Background(), "https://example.com/.rss"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff("linux:partsalert:v1 (by /u/someone)", tr.lastReq.Header.Get("User-Agent")); diff != "" {
		t.Errorf("user agent mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchListings(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
		want    []model.Listing
	}{
		{
			name:    "atom entries",
			fixture: "../../testdata/primary.xml",
			want: []model.Listing{
				{ID: "t3_a1", Title: "[GPU] RTX 3070 $450", Link: "http://x/a1"},
				{ID: "t3_a2", Title: "[CPU Bundle] Ryzen 5800X3D + [Mobo] B550 = $550", Link: "http://x/a2"},
				{ID: "t3_a3", Title: "[Keyboard] Keychron Q1 $99", Link: "http://x/a3"},
				{ID: "t3_a4", Title: "[PSU] Corsair RM1000x 1000W $169", Link: "http://x/a4"},
			},
		},
		{
			name:    "rss items with link fallback",
			fixture: "../../testdata/secondary.xml",
			want: []model.Listing{
				{ID: "s1", Title: "[CAN-ON] [W] RTX 4090 [H] RTX 5070 Ti", Link: "http://y/s1"},
				{ID: "s2", Title: "[CAN-BC] [H] PayPal [W] RTX 5090", Link: "http://y/s2"},
				{ID: "http://y/s3", Title: "[CAN-AB] [H] Corsair HX1000i 1000W PSU [W] Cash", Link: "http://y/s3"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(&mockTransport{body: loadFixture(t, tt.fixture), statusCode: 200})
			got, err := f.FetchListings(context.Background(), "https://example.com/.rss")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("listings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListingID(t *testing.T) {
	tests := []struct {
		name string
		item *gofeed.Item
		want string
	}{
		{name: "with guid", item: &gofeed.Item{GUID: "t3_abc", Link: "https://x/abc"}, want: "t3_abc"},
		{name: "without guid uses link", item: &gofeed.Item{Link: "https://x/abc"}, want: "https://x/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ListingID(tt.item)); diff != "" {
				t.Errorf("ListingID mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
