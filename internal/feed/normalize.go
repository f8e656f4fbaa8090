package feed

import (
	"time"

	"github.com/araddon/dateparse"
)

// Root shapes the XML parser can hand us.
const (
	FormatRSS  = "rss"
	FormatAtom = "feed"
)

const (
	snippetLimit  = 300
	snippetMarker = "..."
	pubDateLayout = "2006-01-02T15:04:05.000Z"
)

// Normalizer maps a generic parsed XML tree onto the canonical article
// schema, absorbing the structural differences between RSS 2.0 and Atom 1.0:
// item location, link representation, date field names, and content fields.
type Normalizer struct {
	now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// DetectFormat reports which root shape a parsed tree carries, or "" when
// the document is neither RSS nor Atom.
func DetectFormat(tree map[string]any) string {
	if _, ok := tree[FormatRSS]; ok {
		return FormatRSS
	}
	if _, ok := tree[FormatAtom]; ok {
		return FormatAtom
	}
	return ""
}

// Normalize produces the canonical FeedResult for a parsed feed document.
// requestURL is used as the feed title when the document declares none.
// Items missing a link or a title are dropped rather than failing the feed.
func (n *Normalizer) Normalize(tree map[string]any, format, requestURL string) *FeedResult {
	var container map[string]any
	var rawItems any
	switch format {
	case FormatRSS:
		container = childMap(childMap(tree, FormatRSS), "channel")
		rawItems = container["item"]
	case FormatAtom:
		container = childMap(tree, FormatAtom)
		rawItems = container["entry"]
	}

	title := Text(container["title"])
	if title == "" {
		title = requestURL
	}

	result := &FeedResult{FeedTitle: title, Articles: []Article{}}
	for _, item := range asList(rawItems) {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if a, ok := n.article(m); ok {
			result.Articles = append(result.Articles, a)
		}
	}
	return result
}

func (n *Normalizer) article(item map[string]any) (Article, bool) {
	title := Text(item["title"])
	link := extractLink(item["link"])
	if title == "" || link == "" {
		return Article{}, false
	}

	// RSS carries full content in the content-module extension element,
	// which the parser exposes without its namespace prefix.
	content := firstText(item, "content:encoded", "encoded", "content", "description")

	return Article{
		ID:             link,
		Title:          title,
		Link:           link,
		PubDate:        n.pubDate(item),
		ContentSnippet: snippet(content),
		Content:        content,
	}, true
}

// pubDate extracts the publish timestamp, trying the RSS field first and the
// Atom fields after it. Text that fails to parse as a date is replaced by
// the processing time so the output field is always a valid timestamp.
func (n *Normalizer) pubDate(item map[string]any) string {
	raw := firstText(item, "pubDate", "published", "updated")
	ts, err := dateparse.ParseAny(raw)
	if raw == "" || err != nil {
		ts = n.now()
	}
	return ts.UTC().Format(pubDateLayout)
}

// extractLink handles the three link shapes found in the wild: a bare string
// (RSS), a single element with an href attribute (Atom), and an array of
// link elements (Atom with multiple relations). In the array case the first
// entry whose rel is "alternate" or unset wins.
func extractLink(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any:
		for _, entry := range val {
			l := asLeaf(entry)
			if rel, ok := l.attr("rel"); ok && rel != "alternate" {
				continue
			}
			return hrefOf(l)
		}
		return ""
	default:
		return hrefOf(asLeaf(v))
	}
}

func hrefOf(l leaf) string {
	if href, ok := l.attr("href"); ok {
		return href
	}
	return l.text
}

func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLimit {
		return content
	}
	return string(runes[:snippetLimit]) + snippetMarker
}

// firstText returns the extracted text of the first listed key that yields a
// non-empty string.
func firstText(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := Text(m[key]); s != "" {
			return s
		}
	}
	return ""
}

// childMap descends one level, tolerating absent or non-map children.
func childMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	child, _ := m[key].(map[string]any)
	return child
}

// asList normalises an absent, single, or repeated element to a slice.
func asList(v any) []any {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		return val
	default:
		return []any{v}
	}
}
