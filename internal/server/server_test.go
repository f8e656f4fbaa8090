package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/julienpequegnot/feedlens/internal/feed"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	pipeline := feed.NewPipeline(feed.NewFetcher(time.Second, "test"), log)
	srv := httptest.NewServer(New(pipeline, log).Router([]string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, rawURL string, into any) int {
	t.Helper()
	resp, err := http.Get(rawURL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if into != nil {
		if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)
	var body map[string]string
	if status := getJSON(t, srv.URL+"/v1/health", &body); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected healthy, got %q", body["status"])
	}
}

func TestFeedEndpointMissingURL(t *testing.T) {
	srv := testServer(t)
	var body map[string]string
	if status := getJSON(t, srv.URL+"/v1/feed", &body); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["error"] == "" {
		t.Error("expected a structured error payload")
	}
}

func TestFeedEndpointInvalidURL(t *testing.T) {
	srv := testServer(t)
	if status := getJSON(t, srv.URL+"/v1/feed?url="+url.QueryEscape("not a url"), nil); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestFeedEndpointSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(`<rss version="2.0"><channel><title>API Feed</title>
<item><title>A</title><link>https://ex.com/a</link>
<pubDate>Mon, 01 Jan 2024 00:00:00 GMT</pubDate><description>hi</description></item>
</channel></rss>`))
	}))
	defer upstream.Close()

	srv := testServer(t)
	var result feed.FeedResult
	status := getJSON(t, srv.URL+"/v1/feed?url="+url.QueryEscape(upstream.URL+"/feed.xml"), &result)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if result.FeedTitle != "API Feed" {
		t.Errorf("expected feed title API Feed, got %q", result.FeedTitle)
	}
	if len(result.Articles) != 1 || result.Articles[0].PubDate != "2024-01-01T00:00:00.000Z" {
		t.Errorf("unexpected articles: %+v", result.Articles)
	}
}

func TestFeedEndpointUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	srv := testServer(t)
	if status := getJSON(t, srv.URL+"/v1/feed?url="+url.QueryEscape(upstream.URL), nil); status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", status)
	}
}

func TestFeedEndpointNoFeedDiscoverable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<html><body>just a page</body></html>`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	srv := testServer(t)
	if status := getJSON(t, srv.URL+"/v1/feed?url="+url.QueryEscape(upstream.URL+"/"), nil); status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", status)
	}
}

func TestDiscoverEndpoint(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<link rel="alternate" type="application/rss+xml" href="/feed.xml">`))
	}))
	defer upstream.Close()

	srv := testServer(t)
	var result feed.DiscoverResult
	status := getJSON(t, srv.URL+"/v1/discover?url="+url.QueryEscape(upstream.URL+"/page"), &result)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(result.Feeds) != 1 {
		t.Fatalf("expected 1 feed, got %d", len(result.Feeds))
	}
	if result.Feeds[0].URL != upstream.URL+"/feed.xml" {
		t.Errorf("expected resolved feed URL, got %q", result.Feeds[0].URL)
	}
	if result.Feeds[0].Source != feed.SourceHTMLLink {
		t.Errorf("expected html-link source, got %q", result.Feeds[0].Source)
	}
}

func TestDiscoverEndpointMissingURL(t *testing.T) {
	srv := testServer(t)
	if status := getJSON(t, srv.URL+"/v1/discover?url=%20%20", nil); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for whitespace url, got %d", status)
	}
}

func TestStatusForTaxonomy(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{feed.ErrMissingParameter, http.StatusBadRequest},
		{feed.ErrInvalidURL, http.StatusBadRequest},
		{feed.ErrNoFeed, http.StatusUnprocessableEntity},
		{&feed.UpstreamHTTPError{Status: 500}, http.StatusBadGateway},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v): expected %d, got %d", tc.err, tc.want, got)
		}
	}
}
