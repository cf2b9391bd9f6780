package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/store"
)

// makeTestSession creates a session for userID, creating the user first.
func makeTestSession(t *testing.T, s *Store, sessionID, username string) *domain.Session {
	t.Helper()

	ctx := context.Background()
	userID := "usr-" + username
	if _, err := s.GetUser(ctx, userID); errors.Is(err, store.ErrNotFound) {
		mustCreateUser(t, s, username)
	}

	now := time.Now()
	return &domain.Session{
		ID:               sessionID,
		UserID:           userID,
		RefreshTokenHash: "hash-" + sessionID,
		ExpiresAt:        now.Add(30 * 24 * time.Hour),
		CreatedAt:        now,
		LastSeenAt:       now,
		IPAddress:        "192.168.1.100",
		UserAgent:        "Mozilla/5.0",
	}
}

func TestCreateAndGetSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess := makeTestSession(t, s, "ses-1", "alice")
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := s.GetSessionByRefreshToken(ctx, "hash-ses-1")
	if err != nil {
		t.Fatalf("GetSessionByRefreshToken: %v", err)
	}

	if got.ID != sess.ID {
		t.Errorf("ID: got %q, want %q", got.ID, sess.ID)
	}
	if got.UserID != sess.UserID {
		t.Errorf("UserID: got %q, want %q", got.UserID, sess.UserID)
	}
	if got.IPAddress != sess.IPAddress {
		t.Errorf("IPAddress: got %q, want %q", got.IPAddress, sess.IPAddress)
	}
	if got.UserAgent != sess.UserAgent {
		t.Errorf("UserAgent: got %q, want %q", got.UserAgent, sess.UserAgent)
	}
	if !got.ExpiresAt.Equal(sess.ExpiresAt) {
		t.Errorf("ExpiresAt: got %v, want %v", got.ExpiresAt, sess.ExpiresAt)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSessionByRefreshToken(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateSession_Duplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess := makeTestSession(t, s, "ses-dup", "bob")
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	err := s.CreateSession(ctx, sess)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUpdateSession_RotatesToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess := makeTestSession(t, s, "ses-rot", "carol")
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	sess.RefreshTokenHash = "hash-rotated"
	sess.ExpiresAt = sess.ExpiresAt.Add(time.Hour)
	sess.Touch()
	if err := s.UpdateSession(ctx, sess); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}

	if _, err := s.GetSessionByRefreshToken(ctx, "hash-ses-rot"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("old token: expected ErrNotFound, got %v", err)
	}
	got, err := s.GetSessionByRefreshToken(ctx, "hash-rotated")
	if err != nil {
		t.Fatalf("GetSessionByRefreshToken(new): %v", err)
	}
	if !got.ExpiresAt.Equal(sess.ExpiresAt) {
		t.Errorf("ExpiresAt: got %v, want %v", got.ExpiresAt, sess.ExpiresAt)
	}
}

func TestUpdateSession_NotFound(t *testing.T) {
	s := newTestStore(t)

	sess := makeTestSession(t, s, "ses-ghost", "dave")
	if err := s.UpdateSession(context.Background(), sess); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess := makeTestSession(t, s, "ses-del", "erin")
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if err := s.DeleteSession(ctx, "ses-del"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if err := s.DeleteSession(ctx, "ses-del"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()

	expired1 := makeTestSession(t, s, "ses-exp-1", "frank")
	expired1.ExpiresAt = now.Add(-2 * time.Hour)

	expired2 := makeTestSession(t, s, "ses-exp-2", "frank")
	expired2.ExpiresAt = now.Add(-1 * time.Hour)

	valid := makeTestSession(t, s, "ses-valid", "frank")
	valid.ExpiresAt = now.Add(24 * time.Hour)

	for _, sess := range []*domain.Session{expired1, expired2, valid} {
		if err := s.CreateSession(ctx, sess); err != nil {
			t.Fatalf("CreateSession(%s): %v", sess.ID, err)
		}
	}

	deleted, err := s.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if deleted != 2 {
		t.Errorf("DeleteExpiredSessions: deleted %d, want 2", deleted)
	}

	if _, err := s.GetSessionByRefreshToken(ctx, "hash-ses-valid"); err != nil {
		t.Errorf("valid session removed: %v", err)
	}
}

func TestSessions_CascadeOnUserDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess := makeTestSession(t, s, "ses-cascade", "gina")
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, sess.UserID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := s.GetSessionByRefreshToken(ctx, "hash-ses-cascade"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected session removed with its user, got %v", err)
	}
}
