package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/store"
)

// makeTestUser creates a domain.User with sensible defaults for testing.
func makeTestUser(id, username, email string) *domain.User {
	now := time.Now()
	return &domain.User{
		Entity: domain.Entity{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     username,
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$ZmFrZQ$ZmFrZWhhc2g",
		Role:         domain.RoleUser,
		LastSeen:     now,
	}
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := makeTestUser("usr-1", "Alice", "Alice@Example.com")
	user.Role = domain.RoleAdmin
	user.AddFeeling = true

	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUser(ctx, "usr-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}

	if got.Username != "Alice" {
		t.Errorf("Username: got %q, want %q", got.Username, "Alice")
	}
	if got.Email != user.Email {
		t.Errorf("Email: got %q, want %q", got.Email, user.Email)
	}
	if got.PasswordHash != user.PasswordHash {
		t.Errorf("PasswordHash: got %q, want %q", got.PasswordHash, user.PasswordHash)
	}
	if got.Role != domain.RoleAdmin {
		t.Errorf("Role: got %q, want %q", got.Role, domain.RoleAdmin)
	}
	if !got.AddFeeling {
		t.Error("AddFeeling: expected true")
	}
	if got.Private {
		t.Error("Private: expected false")
	}
	for _, mt := range domain.MediaTypes {
		if v, ok := got.Views[mt]; !ok || v != 0 {
			t.Errorf("Views[%s]: got %d (present %v), want 0", mt, v, ok)
		}
	}

	// Timestamps should round-trip through RFC3339Nano.
	if !got.CreatedAt.Equal(user.CreatedAt) {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, user.CreatedAt)
	}
	if !got.LastSeen.Equal(user.LastSeen) {
		t.Errorf("LastSeen: got %v, want %v", got.LastSeen, user.LastSeen)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetUser(ctx, "nonexistent")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var storeErr *store.Error
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected *store.Error, got %T: %v", err, err)
	}
	if storeErr.Code != store.ErrNotFound.Code {
		t.Errorf("expected status %d, got %d", store.ErrNotFound.Code, storeErr.Code)
	}
}

func TestGetUserByUsername_IgnoresCase(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "Bob")

	got, err := s.GetUserByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.ID != "usr-Bob" {
		t.Errorf("ID: got %q, want %q", got.ID, "usr-Bob")
	}

	if _, err := s.GetUserByUsername(ctx, "robert"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := makeTestUser("usr-1", "carol", "Carol@Example.com")
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUserByEmail(ctx, "  carol@example.COM ")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != "usr-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "usr-1")
	}
}

func TestCreateUser_Duplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("usr-1", "dave", "dave@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	tests := []struct {
		name string
		user *domain.User
	}{
		{"same id", makeTestUser("usr-1", "other", "other@example.com")},
		{"same username other case", makeTestUser("usr-2", "DAVE", "other@example.com")},
		{"same email other case", makeTestUser("usr-3", "other", "DAVE@example.com")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreateUser(ctx, tt.user)
			if !errors.Is(err, store.ErrAlreadyExists) {
				t.Errorf("expected ErrAlreadyExists, got %v", err)
			}
		})
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, s, "erin")

	user.Private = true
	user.AddFeeling = true
	user.Email = "erin@new.example.com"
	user.Touch()
	if err := s.UpdateUser(ctx, user); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	got, err := s.GetUserByEmail(ctx, "erin@new.example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if !got.Private || !got.AddFeeling {
		t.Errorf("flags not updated: private=%v add_feeling=%v", got.Private, got.AddFeeling)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateUser(context.Background(), makeTestUser("ghost", "ghost", "ghost@example.com"))
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIncrementViews(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, s, "frank")

	for i := 0; i < 2; i++ {
		if err := s.IncrementProfileViews(ctx, user.ID); err != nil {
			t.Fatalf("IncrementProfileViews: %v", err)
		}
	}
	if err := s.IncrementListViews(ctx, user.ID, domain.MediaBooks); err != nil {
		t.Fatalf("IncrementListViews: %v", err)
	}

	got, err := s.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.ProfileViews != 2 {
		t.Errorf("ProfileViews: got %d, want 2", got.ProfileViews)
	}
	if got.Views[domain.MediaBooks] != 1 {
		t.Errorf("Views[books]: got %d, want 1", got.Views[domain.MediaBooks])
	}
	if got.Views[domain.MediaSeries] != 0 {
		t.Errorf("Views[series]: got %d, want 0", got.Views[domain.MediaSeries])
	}

	if err := s.IncrementProfileViews(ctx, "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
