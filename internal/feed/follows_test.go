package feed

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// TestFollows_PaginatesToExhaustion verifies every page is fetched and every
// follow yielded: unlike a feed walk there is no early termination.
func TestFollows_PaginatesToExhaustion(t *testing.T) {
	src := pagedFollows(
		[]Follow{{DID: "did:plc:a", Handle: "alice.bsky.social"}, {DID: "did:plc:b", Handle: "bob.bsky.social"}},
		[]Follow{{DID: "did:plc:c", Handle: "carol.bsky.social"}},
	)
	service := NewService(src, pagedFeed())

	follows, err := drainFollows(t, service.Follows(context.Background(), "did:plc:me"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(follows) != 3 {
		t.Fatalf("expected 3 follows, got %d", len(follows))
	}
	if src.fetches != 2 {
		t.Errorf("expected 2 page fetches, got %d", src.fetches)
	}
	if follows[2].Handle != "carol.bsky.social" {
		t.Errorf("expected follows in page order, got %v", follows)
	}
}

// TestFollows_UpstreamFailureFlagAborts documents the explicit failure flag:
// a page delivered with Success false aborts enumeration even though the
// transport succeeded.
func TestFollows_UpstreamFailureFlagAborts(t *testing.T) {
	src := pagedFollows([]Follow{{DID: "did:plc:a", Handle: "alice.bsky.social"}})
	src.pages[0].Success = false
	service := NewService(src, pagedFeed())

	_, err := drainFollows(t, service.Follows(context.Background(), "did:plc:me"))
	if !errors.Is(err, ErrFollowRetrieval) {
		t.Fatalf("expected ErrFollowRetrieval, got %v", err)
	}
}

// TestFollows_TransportErrorAborts verifies transport errors wrap
// ErrFollowRetrieval with the cause preserved.
func TestFollows_TransportErrorAborts(t *testing.T) {
	cause := fmt.Errorf("dial timeout")
	src := pagedFollows([]Follow{{DID: "did:plc:a"}})
	src.failOn = 1
	src.err = cause
	service := NewService(src, pagedFeed())

	_, err := drainFollows(t, service.Follows(context.Background(), "did:plc:me"))
	if !errors.Is(err, ErrFollowRetrieval) {
		t.Fatalf("expected ErrFollowRetrieval, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("cause should be preserved, got %v", err)
	}
}

// TestFollows_MidEnumerationFailure verifies a failure on a later page still
// aborts, after earlier pages were yielded.
func TestFollows_MidEnumerationFailure(t *testing.T) {
	src := pagedFollows(
		[]Follow{{DID: "did:plc:a", Handle: "alice.bsky.social"}},
		[]Follow{{DID: "did:plc:b", Handle: "bob.bsky.social"}},
	)
	src.failOn = 2
	src.err = fmt.Errorf("server hiccup")
	service := NewService(src, pagedFeed())

	follows, err := drainFollows(t, service.Follows(context.Background(), "did:plc:me"))
	if !errors.Is(err, ErrFollowRetrieval) {
		t.Fatalf("expected ErrFollowRetrieval, got %v", err)
	}
	if len(follows) != 1 {
		t.Errorf("first page should have been yielded before the failure, got %d follows", len(follows))
	}
}

// TestFollows_EmptyList yields nothing for an actor following nobody.
func TestFollows_EmptyList(t *testing.T) {
	service := NewService(pagedFollows([]Follow{}), pagedFeed())

	follows, err := drainFollows(t, service.Follows(context.Background(), "did:plc:me"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(follows) != 0 {
		t.Errorf("expected no follows, got %v", follows)
	}
}
