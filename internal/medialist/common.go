package medialist

import (
	"context"
	"fmt"

	"github.com/mylists/mylists-server/internal/domain"
)

// IDStore reads the media ids of a list.
type IDStore interface {
	CountListEntries(ctx context.Context, mediaType domain.MediaType, userID string) (int, error)
	ListMediaIDs(ctx context.Context, mediaType domain.MediaType, userID string) ([]int64, error)
}

// Common is what a viewer's list shares with another user's list.
type Common struct {
	TotalMedia int
	IDs        []int64 // ascending
}

// CommonMedia counts the owner's list and intersects it with the viewer's.
// Nothing is read when the viewer is the owner. The scans are not taken
// from one snapshot, so the result can be off by concurrent list changes.
func CommonMedia(ctx context.Context, s IDStore, mediaType domain.MediaType, viewerID, ownerID string) (*Common, error) {
	c := &Common{IDs: []int64{}}
	if viewerID == ownerID {
		return c, nil
	}

	total, err := s.CountListEntries(ctx, mediaType, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count owner list: %w", err)
	}
	c.TotalMedia = total

	viewerIDs, err := s.ListMediaIDs(ctx, mediaType, viewerID)
	if err != nil {
		return nil, fmt.Errorf("scan viewer list: %w", err)
	}
	if len(viewerIDs) == 0 {
		return c, nil
	}
	ownerIDs, err := s.ListMediaIDs(ctx, mediaType, ownerID)
	if err != nil {
		return nil, fmt.Errorf("scan owner list: %w", err)
	}

	c.IDs = Intersect(viewerIDs, ownerIDs)
	return c, nil
}

// Intersect returns the values of b also in a, in b's order, without duplicates.
func Intersect(a, b []int64) []int64 {
	set := make(map[int64]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	out := []int64{}
	for _, id := range b {
		if _, ok := set[id]; ok {
			out = append(out, id)
			delete(set, id)
		}
	}
	return out
}
