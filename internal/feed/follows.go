package feed

import (
	"context"
	"fmt"
	"iter"
)

// Follows yields every account the actor follows, paginating until the
// upstream cursor is exhausted. Unlike a feed walk there is no early
// termination: follow lists carry no chronological cutoff.
//
// A transport failure, or a page delivered with its success flag unset,
// yields a single error wrapping ErrFollowRetrieval and ends the sequence.
func (s *Service) Follows(ctx context.Context, actor string) iter.Seq2[Follow, error] {
	return func(yield func(Follow, error) bool) {
		cursor := ""
		for {
			if err := ctx.Err(); err != nil {
				yield(Follow{}, fmt.Errorf("%w: %w", ErrFollowRetrieval, err))
				return
			}

			page, err := s.follows.FetchFollowsPage(ctx, actor, s.followBatch, cursor)
			if err != nil {
				yield(Follow{}, fmt.Errorf("%w: %w", ErrFollowRetrieval, err))
				return
			}
			if !page.Success {
				yield(Follow{}, fmt.Errorf("%w: upstream reported failure for %q", ErrFollowRetrieval, actor))
				return
			}

			for _, follow := range page.Follows {
				if !yield(follow, nil) {
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
