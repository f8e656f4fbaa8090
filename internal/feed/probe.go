package feed

import (
	"context"
	"strings"
	"sync"

	"github.com/mmcdole/gofeed"
)

// How much of a probed body is inspected when the server's declared type is
// not trustworthy.
const sniffLimit = 512

// probeAll checks every candidate concurrently and returns the ones that
// serve a feed, in candidate order. The whole batch is awaited before any
// classification is reported; there is no early exit.
func (d *Discoverer) probeAll(ctx context.Context, candidates []string) []string {
	hits := make([]bool, len(candidates))
	var wg sync.WaitGroup
	for i, candidate := range candidates {
		wg.Add(1)
		go func(i int, candidate string) {
			defer wg.Done()
			hits[i] = d.probe(ctx, candidate)
		}(i, candidate)
	}
	wg.Wait()

	var out []string
	for i, hit := range hits {
		if hit {
			out = append(out, candidates[i])
		}
	}
	return out
}

// probe classifies one candidate URL. A cheap HEAD settles it when the
// server declares a feed type; otherwise a GET decides on the declared type
// or, failing that, on the body itself. Any error means "not a feed".
func (d *Discoverer) probe(ctx context.Context, candidate string) bool {
	if head, err := d.fetcher.Head(ctx, candidate); err == nil && head.OK() && isFeedMIME(head.ContentType) {
		return true
	}

	resp, err := d.fetcher.Get(ctx, candidate, acceptFeed)
	if err != nil || !resp.OK() {
		return false
	}
	if isFeedMIME(resp.ContentType) {
		return true
	}
	return sniffFeedBody(resp.Body)
}

// sniffFeedBody recognises feed documents served under a wrong content type
// by looking at the first few hundred characters: an XML declaration, or a
// root element of a known feed dialect.
func sniffFeedBody(body string) bool {
	head := strings.TrimSpace(body)
	if len(head) > sniffLimit {
		head = head[:sniffLimit]
	}
	if strings.HasPrefix(head, "<?xml") {
		return true
	}
	switch gofeed.DetectFeedType(strings.NewReader(head)) {
	case gofeed.FeedTypeRSS, gofeed.FeedTypeAtom, gofeed.FeedTypeJSON:
		return true
	}
	return false
}
