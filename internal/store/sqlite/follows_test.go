package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/mylists/mylists-server/internal/store"
)

func TestFollowLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")
	carol := mustCreateUser(t, s, "carol")

	for _, id := range []string{bob.ID, carol.ID} {
		if err := s.Follow(ctx, id, alice.ID); err != nil {
			t.Fatalf("Follow(%s): %v", id, err)
		}
	}
	if err := s.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Follow: %v", err)
	}

	if err := s.Follow(ctx, bob.ID, alice.ID); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("duplicate follow: expected ErrAlreadyExists, got %v", err)
	}
	if err := s.Follow(ctx, bob.ID, "usr-ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("follow unknown user: expected ErrNotFound, got %v", err)
	}

	following, err := s.IsFollowing(ctx, bob.ID, alice.ID)
	if err != nil || !following {
		t.Errorf("IsFollowing(bob, alice): got %v, %v", following, err)
	}
	following, err = s.IsFollowing(ctx, alice.ID, carol.ID)
	if err != nil || following {
		t.Errorf("IsFollowing(alice, carol): got %v, %v", following, err)
	}

	followers, err := s.ListFollowers(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListFollowers: %v", err)
	}
	if len(followers) != 2 || followers[0].Username != "bob" || followers[1].Username != "carol" {
		t.Errorf("ListFollowers: got %d users", len(followers))
	}

	follows, err := s.ListFollows(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListFollows: %v", err)
	}
	if len(follows) != 1 || follows[0].ID != bob.ID {
		t.Errorf("ListFollows: got %d users", len(follows))
	}

	nFollowers, nFollows, err := s.CountFollows(ctx, alice.ID)
	if err != nil {
		t.Fatalf("CountFollows: %v", err)
	}
	if nFollowers != 2 || nFollows != 1 {
		t.Errorf("CountFollows: got (%d, %d), want (2, 1)", nFollowers, nFollows)
	}

	if err := s.Unfollow(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("Unfollow: %v", err)
	}
	if err := s.Unfollow(ctx, bob.ID, alice.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second unfollow: expected ErrNotFound, got %v", err)
	}
}

func TestFollow_Self(t *testing.T) {
	s := newTestStore(t)

	alice := mustCreateUser(t, s, "alice")
	if err := s.Follow(context.Background(), alice.ID, alice.ID); err == nil {
		t.Error("expected error following oneself")
	}
}
