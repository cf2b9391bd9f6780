package sqlite

import (
	"context"

	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/store"
)

// Follow records that followerID follows followedID.
// Returns store.ErrAlreadyExists if the edge exists and store.ErrNotFound
// if either user does not.
func (s *Store) Follow(ctx context.Context, followerID, followedID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO followers (follower_id, followed_id, created_at) VALUES (?, ?, ?)`,
		followerID, followedID, formatTime(timeNow()))
	switch {
	case isUniqueViolation(err):
		return store.ErrAlreadyExists
	case isForeignKeyViolation(err):
		return store.ErrNotFound
	}
	return err
}

// Unfollow removes a follow edge.
// Returns store.ErrNotFound if followerID did not follow followedID.
func (s *Store) Unfollow(ctx context.Context, followerID, followedID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM followers WHERE follower_id = ? AND followed_id = ?`, followerID, followedID)
	if err != nil {
		return err
	}
	return expectOne(result)
}

// IsFollowing reports whether followerID follows followedID.
func (s *Store) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM followers WHERE follower_id = ? AND followed_id = ?`,
		followerID, followedID).Scan(&n)
	return n > 0, err
}

// ListFollowers returns the users following userID, by username.
func (s *Store) ListFollowers(ctx context.Context, userID string) ([]*domain.User, error) {
	return s.listUsers(ctx, `
		SELECT `+prefixColumns("u", userColumns)+`
		FROM followers f JOIN users u ON u.id = f.follower_id
		WHERE f.followed_id = ?
		ORDER BY u.username`, userID)
}

// ListFollows returns the users userID follows, by username.
func (s *Store) ListFollows(ctx context.Context, userID string) ([]*domain.User, error) {
	return s.listUsers(ctx, `
		SELECT `+prefixColumns("u", userColumns)+`
		FROM followers f JOIN users u ON u.id = f.followed_id
		WHERE f.follower_id = ?
		ORDER BY u.username`, userID)
}

// CountFollows returns how many users follow userID and how many it follows.
func (s *Store) CountFollows(ctx context.Context, userID string) (followers, follows int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM followers WHERE followed_id = ?),
			(SELECT COUNT(*) FROM followers WHERE follower_id = ?)`,
		userID, userID).Scan(&followers, &follows)
	return followers, follows, err
}

func (s *Store) listUsers(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
