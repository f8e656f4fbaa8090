package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/clbanning/mxj/v2"
)

// An HTML page that auto-discovery leads to is fetched at most once more; a
// page whose discovered feed is itself HTML is not chased further.
const maxDiscoveryHops = 1

// Pipeline ties the fetcher, discoverer and normalizer together: fetch a
// URL, normalise it if it is a feed, or run discovery once and follow the
// first candidate if it turns out to be an HTML page. Pipelines hold no
// per-request state and are safe for concurrent use.
type Pipeline struct {
	fetcher    *Fetcher
	discoverer *Discoverer
	normalizer *Normalizer
	log        *slog.Logger
}

func NewPipeline(fetcher *Fetcher, log *slog.Logger) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		discoverer: NewDiscoverer(fetcher),
		normalizer: NewNormalizer(),
		log:        log,
	}
}

// ValidateURL trims and validates a caller-supplied URL string.
func ValidateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrMissingParameter
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", ErrInvalidURL
	}
	return raw, nil
}

// Fetch runs the feed pipeline for a validated URL and returns its canonical
// article list.
func (p *Pipeline) Fetch(ctx context.Context, feedURL string) (*FeedResult, error) {
	return p.fetch(ctx, feedURL, 0)
}

func (p *Pipeline) fetch(ctx context.Context, feedURL string, hops int) (*FeedResult, error) {
	resp, err := p.fetcher.Get(ctx, feedURL, acceptFeed)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &UpstreamHTTPError{Status: resp.Status}
	}

	if looksLikeHTML(resp.ContentType, resp.Body) {
		if hops >= maxDiscoveryHops {
			return nil, ErrNoFeed
		}
		found := p.discoverer.Discover(ctx, feedURL, resp.Body)
		if len(found.Feeds) == 0 {
			return nil, ErrNoFeed
		}
		next := found.Feeds[0].URL
		p.log.Info("html page encountered, following discovered feed", "page", feedURL, "feed", next)
		return p.fetch(ctx, next, hops+1)
	}

	tree, err := mxj.NewMapXml([]byte(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return p.normalizer.Normalize(tree, DetectFormat(tree), feedURL), nil
}

// Discover fetches a page and returns every candidate feed found on it,
// without following any of them.
func (p *Pipeline) Discover(ctx context.Context, pageURL string) (*DiscoverResult, error) {
	resp, err := p.fetcher.Get(ctx, pageURL, acceptHTML)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &UpstreamHTTPError{Status: resp.Status}
	}
	return p.discoverer.Discover(ctx, pageURL, resp.Body), nil
}

func looksLikeHTML(contentType, body string) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	head := strings.TrimSpace(body)
	if len(head) > 15 {
		head = head[:15]
	}
	return strings.HasPrefix(strings.ToLower(head), "<!doctype")
}
