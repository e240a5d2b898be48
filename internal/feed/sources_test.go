package feed

// In-memory page sources used across the walker, enumerator, and aggregator
// tests. Both count their fetches so tests can assert the short-circuit
// property: once the walker terminates, the count stops increasing.

import (
	"context"
	"iter"
	"strconv"
	"strings"
	"testing"
)

type fakeFeedSource struct {
	pages   []FeedPage
	fetches int
	failOn  int // 1-based fetch number that returns err; 0 = never
	err     error
}

// pagedFeed builds a source serving the given pages in order, wiring cursors
// between them. The last page carries no cursor.
func pagedFeed(pages ...[]RawItem) *fakeFeedSource {
	src := &fakeFeedSource{}
	for i, items := range pages {
		cursor := ""
		if i < len(pages)-1 {
			cursor = "p" + strconv.Itoa(i+1)
		}
		src.pages = append(src.pages, FeedPage{Items: items, Cursor: cursor})
	}
	return src
}

func (f *fakeFeedSource) FetchFeedPage(_ context.Context, _ string, _ int, cursor string) (FeedPage, error) {
	f.fetches++
	if f.failOn != 0 && f.fetches >= f.failOn {
		return FeedPage{}, f.err
	}
	idx := 0
	if cursor != "" {
		idx, _ = strconv.Atoi(strings.TrimPrefix(cursor, "p"))
	}
	if idx >= len(f.pages) {
		return FeedPage{}, nil
	}
	return f.pages[idx], nil
}

type fakeFollowSource struct {
	pages   []FollowsPage
	fetches int
	failOn  int
	err     error
}

func pagedFollows(pages ...[]Follow) *fakeFollowSource {
	src := &fakeFollowSource{}
	for i, follows := range pages {
		cursor := ""
		if i < len(pages)-1 {
			cursor = "p" + strconv.Itoa(i+1)
		}
		src.pages = append(src.pages, FollowsPage{Follows: follows, Cursor: cursor, Success: true})
	}
	return src
}

func (f *fakeFollowSource) FetchFollowsPage(_ context.Context, _ string, _ int, cursor string) (FollowsPage, error) {
	f.fetches++
	if f.failOn != 0 && f.fetches >= f.failOn {
		return FollowsPage{}, f.err
	}
	idx := 0
	if cursor != "" {
		idx, _ = strconv.Atoi(strings.TrimPrefix(cursor, "p"))
	}
	if idx >= len(f.pages) {
		return FollowsPage{}, nil
	}
	return f.pages[idx], nil
}

// perActorFeedSource routes fetches to a distinct fake per actor, for
// aggregation tests with several follows.
type perActorFeedSource struct {
	feeds map[string]*fakeFeedSource
}

func (p *perActorFeedSource) FetchFeedPage(ctx context.Context, actor string, limit int, cursor string) (FeedPage, error) {
	src, ok := p.feeds[actor]
	if !ok {
		return FeedPage{}, nil
	}
	return src.FetchFeedPage(ctx, actor, limit, cursor)
}

func (p *perActorFeedSource) totalFetches() int {
	total := 0
	for _, src := range p.feeds {
		total += src.fetches
	}
	return total
}

func item(uri, createdAt string) RawItem {
	return RawItem{URI: uri, Text: "post " + uri, CreatedAt: createdAt}
}

func drainPosts(t *testing.T, seq iter.Seq2[Post, error]) ([]Post, error) {
	t.Helper()
	var posts []Post
	for post, err := range seq {
		if err != nil {
			return posts, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func drainFollows(t *testing.T, seq iter.Seq2[Follow, error]) ([]Follow, error) {
	t.Helper()
	var follows []Follow
	for follow, err := range seq {
		if err != nil {
			return follows, err
		}
		follows = append(follows, follow)
	}
	return follows, nil
}

func mustWindow(t *testing.T, day string, offset int) Window {
	t.Helper()
	window, err := ComputeWindow(day, offset)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return window
}
