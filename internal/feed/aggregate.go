package feed

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Aggregate retrieves, for every account the actor follows, the posts
// authored on the target day and returns them grouped per author.
//
// day is an 8-digit YYYYMMDD string; offsetHours shifts the day boundaries
// to a fixed UTC offset. Follows are drained completely before any feed is
// walked; each author's posts are sorted ascending by creation time. Any
// enumeration or walk failure aborts the whole run — no partial result is
// returned.
func (s *Service) Aggregate(ctx context.Context, actor, day string, offsetHours int) (*Result, error) {
	window, err := ComputeWindow(day, offsetHours)
	if err != nil {
		return nil, err
	}

	result := &Result{Follows: make(map[string]AuthorFeed)}
	for follow, err := range s.Follows(ctx, actor) {
		if err != nil {
			return nil, err
		}
		if _, seen := result.Follows[follow.DID]; seen {
			continue
		}
		result.Follows[follow.DID] = AuthorFeed{Handle: follow.Handle, Posts: []Post{}}
		result.Order = append(result.Order, follow.DID)
	}
	s.log.Debug("follows enumerated",
		zap.String("actor", actor),
		zap.Int("count", len(result.Order)))

	// Author walks are independent, so they may run in a bounded pool. Only
	// the result map is shared: one guarded write per completed author.
	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)

	for _, did := range result.Order {
		group.Go(func() error {
			posts := make([]Post, 0, s.feedBatch)
			for post, err := range s.DailyPosts(groupCtx, did, window) {
				if err != nil {
					return err
				}
				posts = append(posts, post)
			}

			// The walk yields newest first; present the day in reading
			// order. Stable, so same-instant posts keep arrival order.
			sort.SliceStable(posts, func(i, j int) bool {
				return posts[i].CreatedAt.Before(posts[j].CreatedAt)
			})

			mu.Lock()
			entry := result.Follows[did]
			entry.Posts = posts
			result.Follows[did] = entry
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
