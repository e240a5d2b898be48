package feed

import (
	"context"
	"fmt"
	"iter"
	"time"

	"go.uber.org/zap"
)

// DailyPosts walks an author's feed, newest first, and yields the posts
// created within the window. The sequence is lazy: pages are fetched on
// demand, and the walk stops for good at the first item older than the
// window, without touching the rest of its page or requesting another one.
//
// Items that fail shape validation are skipped with an informational log
// entry. A fetch failure yields a single error wrapping ErrFeedRetrieval and
// ends the sequence. Each call starts a fresh walk.
func (s *Service) DailyPosts(ctx context.Context, actor string, window Window) iter.Seq2[Post, error] {
	return func(yield func(Post, error) bool) {
		cursor := ""
		for {
			if err := ctx.Err(); err != nil {
				yield(Post{}, fmt.Errorf("%w: %w", ErrFeedRetrieval, err))
				return
			}

			page, err := s.feeds.FetchFeedPage(ctx, actor, s.feedBatch, cursor)
			if err != nil {
				yield(Post{}, fmt.Errorf("%w: %w", ErrFeedRetrieval, err))
				return
			}

			for _, item := range page.Items {
				createdAt, err := validateItem(item)
				if err != nil {
					s.log.Info("skipping malformed feed item",
						zap.String("actor", actor),
						zap.String("uri", item.URI),
						zap.Error(err))
					continue
				}

				// Feeds arrive reverse-chronological, so the first item
				// older than the window proves no later item can match.
				if createdAt.Before(window.Start) {
					return
				}
				if createdAt.After(window.End) {
					continue
				}

				post := Post{
					URI:       item.URI,
					Content:   item.Text,
					CreatedAt: createdAt,
					IsRepost:  item.Reason == ReasonRepost,
					Links:     ExtractLinks(item.Facets),
				}
				if !yield(post, nil) {
					return
				}
			}

			if page.Cursor == "" {
				return
			}
			cursor = page.Cursor
		}
	}
}

// validateItem checks the shape of a raw feed item and parses its creation
// time.
func validateItem(item RawItem) (time.Time, error) {
	if item.URI == "" {
		return time.Time{}, fmt.Errorf("missing uri")
	}
	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad createdAt %q: %w", item.CreatedAt, err)
	}
	return createdAt, nil
}
