package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mylists/mylists-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustCreateUser inserts a user named username with id "usr-<username>".
func mustCreateUser(t *testing.T, s *Store, username string) *domain.User {
	t.Helper()
	u := makeTestUser("usr-"+username, username, username+"@example.com")
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return u
}

// mustCreateMedia inserts a catalog entry and returns it with its id set.
func mustCreateMedia(t *testing.T, s *Store, m *domain.Media) *domain.Media {
	t.Helper()
	if err := s.CreateMedia(context.Background(), m); err != nil {
		t.Fatalf("CreateMedia(%s): %v", m.Name, err)
	}
	return m
}

// mustAddEntry lists media for userID with a status.
func mustAddEntry(t *testing.T, s *Store, userID string, m *domain.Media, status domain.Status) *domain.ListEntry {
	t.Helper()
	e := domain.NewListEntry(userID, m, status, time.Now())
	if err := s.CreateListEntry(context.Background(), e); err != nil {
		t.Fatalf("CreateListEntry(%s): %v", m.Name, err)
	}
	return e
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	err = s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	// Verify every table of every family exists.
	tables := []string{"users", "sessions", "followers"}
	for _, f := range s.families {
		tables = append(tables, f.media, f.list, f.genre, f.labels)
		if f.epsPerSeason != "" {
			tables = append(tables, f.epsPerSeason)
		}
		for _, tag := range f.tags {
			tables = append(tables, tag.table)
		}
	}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpen_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	mustCreateUser(t, s, "alice")
	s.Close()

	s, err = Open(dbPath, logger)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s.Close()

	if _, err := s.GetUserByUsername(context.Background(), "alice"); err != nil {
		t.Fatalf("GetUserByUsername after reopen: %v", err)
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestFamily_UnknownMediaType(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.family("podcasts"); err == nil {
		t.Fatal("expected error for unknown media type")
	}
}

func TestPrefixColumns(t *testing.T) {
	got := prefixColumns("u", "id, name,\n\temail")
	want := "u.id, u.name, u.email"
	if got != want {
		t.Errorf("prefixColumns: got %q, want %q", got, want)
	}
}

func TestPlaceholders(t *testing.T) {
	for n, want := range map[int]string{0: "", 1: "?", 3: "?, ?, ?"} {
		if got := placeholders(n); got != want {
			t.Errorf("placeholders(%d): got %q, want %q", n, got, want)
		}
	}
}

func TestWhereBuilder(t *testing.T) {
	where, args := newWhereBuilder().build()
	if where != "1=1" || len(args) != 0 {
		t.Errorf("empty builder: got %q %v", where, args)
	}

	where, args = newWhereBuilder().
		add("l.user_id = ?", "usr-1").
		addAny(nil).
		addAny([]string{"a LIKE ?", "b LIKE ?"}, "%x%", "%x%").
		addNotIn("m.id", nil).
		addNotIn("m.id", []int64{4, 5}).
		build()

	wantWhere := "l.user_id = ? AND (a LIKE ? OR b LIKE ?) AND m.id NOT IN (?, ?)"
	if where != wantWhere {
		t.Errorf("where: got %q, want %q", where, wantWhere)
	}
	if fmt.Sprint(args) != "[usr-1 %x% %x% 4 5]" {
		t.Errorf("args: got %v", args)
	}
}

func TestContainsPattern(t *testing.T) {
	if got := containsPattern("100%_a\\b"); got != `%100\%\_a\\b%` {
		t.Errorf("containsPattern: got %q", got)
	}
}
