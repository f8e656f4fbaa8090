package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestIsFeedMIME(t *testing.T) {
	cases := []struct {
		mime string
		want bool
	}{
		{"application/rss+xml", true},
		{"application/atom+xml", true},
		{"application/feed+json", true},
		{"application/x-atom+xml", true},
		{"application/rdf+xml", true},
		{"text/xml", true},
		{"Text/XML; charset=utf-8", true},
		{"text/html", false},
		{"application/json", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isFeedMIME(tc.mime); got != tc.want {
			t.Errorf("isFeedMIME(%q): expected %v, got %v", tc.mime, tc.want, got)
		}
	}
}

func TestSniffFeedBody(t *testing.T) {
	cases := []struct {
		name string
		body string
		want bool
	}{
		{"xml declaration", `<?xml version="1.0"?><rss version="2.0"></rss>`, true},
		{"bare rss root", `<rss version="2.0"><channel></channel></rss>`, true},
		{"bare atom root", `<feed xmlns="http://www.w3.org/2005/Atom"></feed>`, true},
		{"rdf root", `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"></rdf:RDF>`, true},
		{"leading whitespace", "\n\n  <?xml version=\"1.0\"?><rss></rss>", true},
		{"html page", `<!DOCTYPE html><html></html>`, false},
		{"plain text", "hello there", false},
		{"empty", "", false},
		{"rss mentioned too late", strings.Repeat("a", 600) + "<rss>", false},
	}
	for _, tc := range cases {
		if got := sniffFeedBody(tc.body); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestProbeHeadSettlesDeclaredFeeds(t *testing.T) {
	var gets int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets++
		}
		w.Header().Set("Content-Type", "application/atom+xml")
	}))
	defer srv.Close()

	d := NewDiscoverer(NewFetcher(time.Second, "test"))
	if !d.probe(context.Background(), srv.URL+"/atom.xml") {
		t.Fatal("expected probe to classify the candidate as a feed")
	}
	if gets != 0 {
		t.Errorf("expected no GET after a conclusive HEAD, got %d", gets)
	}
}

func TestProbeFallsBackToGetSniffing(t *testing.T) {
	// Misconfigured server: feeds served as text/plain. HEAD cannot settle
	// it, the GET body can.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"></rss>`))
	}))
	defer srv.Close()

	d := NewDiscoverer(NewFetcher(time.Second, "test"))
	if !d.probe(context.Background(), srv.URL+"/feed") {
		t.Error("expected content sniffing to classify the body as a feed")
	}
}

func TestProbeRejectsNonFeeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html><html></html>`))
	}))
	defer srv.Close()

	d := NewDiscoverer(NewFetcher(time.Second, "test"))
	if d.probe(context.Background(), srv.URL+"/feed") {
		t.Error("expected an html page to be rejected")
	}
}

func TestProbeRejectsErrorStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	d := NewDiscoverer(NewFetcher(time.Second, "test"))
	if d.probe(context.Background(), srv.URL+"/feed") {
		t.Error("expected a 404 candidate to be rejected")
	}
}

func TestProbeAllKeepsCandidateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/b" || r.URL.Path == "/d" {
			w.Header().Set("Content-Type", "application/rss+xml")
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	d := NewDiscoverer(NewFetcher(time.Second, "test"))
	candidates := []string{srv.URL + "/a", srv.URL + "/b", srv.URL + "/c", srv.URL + "/d"}
	hits := d.probeAll(context.Background(), candidates)

	want := []string{srv.URL + "/b", srv.URL + "/d"}
	if len(hits) != len(want) {
		t.Fatalf("expected %d hits, got %d: %v", len(want), len(hits), hits)
	}
	for i, w := range want {
		if hits[i] != w {
			t.Errorf("hit %d: expected %q, got %q", i, w, hits[i])
		}
	}
}
