package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, created_at, updated_at, username, email, password_hash, role,
	private, add_feeling, profile_views,
	series_views, anime_views, movies_views, games_views, books_views, last_seen`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User

	var (
		createdAt  string
		updatedAt  string
		role       string
		private    int
		addFeeling int
		lastSeen   string
		views      [5]int
	)

	err := scanner.Scan(
		&u.ID,
		&createdAt,
		&updatedAt,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&role,
		&private,
		&addFeeling,
		&u.ProfileViews,
		&views[0],
		&views[1],
		&views[2],
		&views[3],
		&views[4],
		&lastSeen,
	)
	if err != nil {
		return nil, err
	}

	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if u.LastSeen, err = parseTime(lastSeen); err != nil {
		return nil, err
	}

	u.Role = domain.Role(role)
	u.Private = private != 0
	u.AddFeeling = addFeeling != 0

	// Column order follows domain.MediaTypes.
	u.Views = make(map[domain.MediaType]int, len(domain.MediaTypes))
	for i, mt := range domain.MediaTypes {
		u.Views[mt] = views[i]
	}

	return &u, nil
}

// CreateUser inserts a new user.
// Returns store.ErrAlreadyExists if the id, username or email is taken.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (
			id, created_at, updated_at, username, email, email_lower, password_hash, role,
			private, add_feeling, profile_views, last_seen
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
		user.Username,
		user.Email,
		strings.ToLower(strings.TrimSpace(user.Email)),
		user.PasswordHash,
		string(user.Role),
		boolToInt(user.Private),
		boolToInt(user.AddFeeling),
		user.ProfileViews,
		formatTime(user.LastSeen),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (s *Store) getUserWhere(ctx context.Context, where string, arg any) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser retrieves a user by ID.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getUserWhere(ctx, "id = ?", id)
}

// GetUserByUsername retrieves a user by username, ignoring case.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getUserWhere(ctx, "username = ?", username)
}

// GetUserByEmail retrieves a user by email, ignoring case and surrounding spaces.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUserWhere(ctx, "email_lower = ?", strings.ToLower(strings.TrimSpace(email)))
}

// UpdateUser writes the mutable account fields. View counters are only
// changed through the Increment methods.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			updated_at = ?,
			email = ?,
			email_lower = ?,
			password_hash = ?,
			role = ?,
			private = ?,
			add_feeling = ?,
			last_seen = ?
		WHERE id = ?`,
		formatTime(user.UpdatedAt),
		user.Email,
		strings.ToLower(strings.TrimSpace(user.Email)),
		user.PasswordHash,
		string(user.Role),
		boolToInt(user.Private),
		boolToInt(user.AddFeeling),
		formatTime(user.LastSeen),
		user.ID,
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	return expectOne(result)
}

// IncrementProfileViews bumps the profile view counter of a user.
func (s *Store) IncrementProfileViews(ctx context.Context, userID string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET profile_views = profile_views + 1 WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return expectOne(result)
}

// IncrementListViews bumps the view counter of one of a user's lists.
func (s *Store) IncrementListViews(ctx context.Context, userID string, mediaType domain.MediaType) error {
	f, err := s.family(mediaType)
	if err != nil {
		return err
	}
	col := string(f.mediaType) + "_views"
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET `+col+` = `+col+` + 1 WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return expectOne(result)
}
