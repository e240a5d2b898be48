// Package feed retrieves the daily posts of every account a Bluesky actor
// follows.
//
// This package enables bskytldr to:
// - Enumerate who an actor follows, across all pages
// - Walk an author feed and stop as soon as it leaves the target day
// - Extract hyperlinks from rich-text facets
// - Assemble a per-author, chronologically sorted result
//
// All network access goes through the FollowSource and FeedSource ports, so
// the package itself never touches a transport.
package feed

import (
	"context"
	"time"
)

// Follow is one account the source actor follows.
type Follow struct {
	DID    string `json:"did"`
	Handle string `json:"handle"`
}

// Post is a single post authored within the target window.
type Post struct {
	URI       string    `json:"uri"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	IsRepost  bool      `json:"is_repost"`
	Links     []string  `json:"links,omitempty"`
}

// AuthorFeed is one follow's handle plus their posts for the day, sorted
// ascending by creation time.
type AuthorFeed struct {
	Handle string `json:"handle"`
	Posts  []Post `json:"posts"`
}

// Result maps each followed DID to that author's daily feed. Order preserves
// the sequence in which follows were discovered, for deterministic output.
type Result struct {
	Follows map[string]AuthorFeed `json:"follows"`
	Order   []string              `json:"-"`
}

// ReasonRepost is the upstream type tag marking a feed item as a repost.
const ReasonRepost = "app.bsky.feed.defs#reasonRepost"

// RawItem is one feed entry as delivered by a FeedSource, before validation.
// CreatedAt is the upstream RFC 3339 string; the walker parses and validates
// it.
type RawItem struct {
	URI       string
	Text      string
	CreatedAt string
	Reason    string
	Facets    []Facet
}

// Facet is a span-level rich-text annotation attached to post text.
type Facet struct {
	Features []Feature
}

// Feature is a single annotation feature. Type carries the upstream type tag
// (link, mention, tag); URI is set for link features.
type Feature struct {
	Type string
	URI  string
}

// FeedPage is one page of an author feed, newest first.
type FeedPage struct {
	Items []RawItem
	// Cursor continues pagination; empty means the feed is exhausted.
	Cursor string
}

// FollowsPage is one page of an actor's follows.
type FollowsPage struct {
	Follows []Follow
	Cursor  string
	// Success mirrors the upstream response flag; a page delivered with
	// Success false aborts enumeration even without a transport error.
	Success bool
}

// FeedSource fetches author feed pages. An empty cursor requests the first
// page.
type FeedSource interface {
	FetchFeedPage(ctx context.Context, actor string, limit int, cursor string) (FeedPage, error)
}

// FollowSource fetches follow pages. An empty cursor requests the first page.
type FollowSource interface {
	FetchFollowsPage(ctx context.Context, actor string, limit int, cursor string) (FollowsPage, error)
}
