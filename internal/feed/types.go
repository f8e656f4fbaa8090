package feed

// Article is one normalised feed entry. The same shape is produced whether
// the upstream document was RSS 2.0 or Atom 1.0.
type Article struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Link           string `json:"link"`
	PubDate        string `json:"pubDate"`
	ContentSnippet string `json:"contentSnippet"`
	Content        string `json:"content"`
}

// FeedResult is the canonical article list for one feed document.
type FeedResult struct {
	FeedTitle string    `json:"feedTitle"`
	Articles  []Article `json:"articles"`
}

// DiscoveredFeed source values.
const (
	SourceHTMLLink = "html-link"
	SourceProbe    = "probe"
)

// DiscoveredFeed is one candidate feed endpoint found on an HTML page,
// either declared by the page itself or located by probing.
type DiscoveredFeed struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	Source string `json:"source"`
}

// DiscoverResult holds every candidate found for one inspected page.
// Feed URLs are unique within a result.
type DiscoverResult struct {
	URL   string           `json:"url"`
	Feeds []DiscoveredFeed `json:"feeds"`
}
