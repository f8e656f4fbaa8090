// internal/feed/discover.go
package feed

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// Conventional feed locations, probed when a page declares no alternate
// links. Probe results keep this order.
var probePaths = []string{
	"/feed",
	"/feed.xml",
	"/rss",
	"/rss.xml",
	"/atom.xml",
	"/index.xml",
	"/feed/index.xml",
	"/blog/feed",
	"/blog/rss",
}

// MIME types accepted as feed declarations, compared after lower-casing and
// stripping any parameter suffix.
var feedMIMETypes = map[string]bool{
	"application/rss+xml":    true,
	"application/atom+xml":   true,
	"application/feed+json":  true,
	"application/x-atom+xml": true,
	"application/rdf+xml":    true,
	"text/xml":               true,
}

var linkTagRe = regexp.MustCompile(`(?is)<link\b[^>]*>`)

// One pattern per attribute of interest; values may be double-quoted,
// single-quoted, or unquoted.
var attrRes = map[string]*regexp.Regexp{}

func init() {
	for _, name := range []string{"rel", "type", "href", "title"} {
		attrRes[name] = regexp.MustCompile(
			fmt.Sprintf(`(?i)(?:^|\s)%s\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`, name))
	}
}

func tagAttr(tag, name string) string {
	m := attrRes[name].FindStringSubmatch(tag)
	if m == nil {
		return ""
	}
	for _, group := range m[1:] {
		if group != "" {
			return group
		}
	}
	return ""
}

// ExtractFeedLinks scans raw HTML for link tags declaring a feed alternate
// and returns them in document order. No DOM is built; a tolerant token scan
// over the single tag shape of interest is enough, and survives the broken
// markup real pages ship.
func ExtractFeedLinks(page, baseURL string) []DiscoveredFeed {
	var feeds []DiscoveredFeed
	for _, tag := range linkTagRe.FindAllString(page, -1) {
		if !strings.Contains(strings.ToLower(tagAttr(tag, "rel")), "alternate") {
			continue
		}
		mimeType := tagAttr(tag, "type")
		if !isFeedMIME(mimeType) {
			continue
		}
		href := tagAttr(tag, "href")
		if href == "" {
			continue
		}
		title := tagAttr(tag, "title")
		if title == "" {
			title = mimeType
		}
		feeds = append(feeds, DiscoveredFeed{
			URL:    resolveHref(baseURL, href),
			Title:  title,
			Type:   mimeType,
			Source: SourceHTMLLink,
		})
	}
	return feeds
}

func isFeedMIME(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return feedMIMETypes[mimeType]
}

// resolveHref resolves href against base, handling relative,
// protocol-relative, and absolute references. A reference that cannot be
// parsed is returned as-is rather than failing the extraction.
func resolveHref(base, href string) string {
	href = strings.TrimSpace(href)
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

// Discoverer locates candidate feed endpoints for an HTML page: declared
// alternate links first, conventional-path probing only when the page
// declares none.
type Discoverer struct {
	fetcher *Fetcher
}

func NewDiscoverer(fetcher *Fetcher) *Discoverer {
	return &Discoverer{fetcher: fetcher}
}

// Discover inspects a fetched page and returns every candidate found.
// Candidate URLs are deduplicated; probe failures are absorbed per
// candidate and never abort the discovery.
func (d *Discoverer) Discover(ctx context.Context, pageURL, page string) *DiscoverResult {
	result := &DiscoverResult{URL: pageURL, Feeds: []DiscoveredFeed{}}
	seen := map[string]bool{}

	for _, f := range ExtractFeedLinks(page, pageURL) {
		if seen[f.URL] {
			continue
		}
		seen[f.URL] = true
		result.Feeds = append(result.Feeds, f)
	}
	if len(result.Feeds) > 0 {
		return result
	}

	origin := originOf(pageURL)
	if origin == "" {
		return result
	}
	var candidates []string
	for _, p := range probePaths {
		candidate := origin + p
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		candidates = append(candidates, candidate)
	}

	for _, hit := range d.probeAll(ctx, candidates) {
		result.Feeds = append(result.Feeds, DiscoveredFeed{
			URL:   hit,
			Title: lastPathSegment(hit),
			// Probing cannot tell the exact subtype apart without parsing.
			Type:   "application/rss+xml",
			Source: SourceProbe,
		})
	}
	return result
}

func originOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func lastPathSegment(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil {
		return feedURL
	}
	return path.Base(u.Path)
}
