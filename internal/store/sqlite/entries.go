package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/store"
)

// listColumns is the ordered list of list-table columns shared by every
// media type. Progress columns follow them, in tableFamily.progressColumns order.
const listColumns = `user_id, media_id, status, favorite, score, feeling, comment,
	redo, total, completion_date, added_at`

func (f *tableFamily) selectListColumns(alias string) string {
	cols := listColumns
	if len(f.progressColumns) > 0 {
		cols += ", " + strings.Join(f.progressColumns, ", ")
	}
	if alias == "" {
		return cols
	}
	return prefixColumns(alias, cols)
}

// listDest returns the scan destinations of selectListColumns and the
// function finishing the entry once scanned.
func (f *tableFamily) listDest(e *domain.ListEntry) ([]any, func() error) {
	var (
		status         string
		favorite       int
		score          sql.NullFloat64
		feeling        sql.NullInt64
		comment        sql.NullString
		completionDate sql.NullString
		addedAt        string
	)

	dest := []any{
		&e.UserID, &e.MediaID, &status, &favorite, &score, &feeling, &comment,
		&e.Redo, &e.Total, &completionDate, &addedAt,
	}
	for _, col := range f.progressColumns {
		dest = append(dest, progressField(e, col))
	}

	return dest, func() error {
		var err error
		e.MediaType = f.mediaType
		e.Status = domain.Status(status)
		e.Favorite = favorite != 0
		if score.Valid {
			v := score.Float64
			e.Score = &v
		}
		if feeling.Valid {
			v := int(feeling.Int64)
			e.Feeling = &v
		}
		if comment.Valid {
			v := comment.String
			e.Comment = &v
		}
		if e.CompletionDate, err = parseNullableTime(completionDate); err != nil {
			return err
		}
		e.AddedAt, err = parseTime(addedAt)
		return err
	}
}

func (f *tableFamily) listValues(e *domain.ListEntry) []any {
	var score sql.NullFloat64
	if e.Score != nil {
		score = sql.NullFloat64{Float64: *e.Score, Valid: true}
	}
	var feeling sql.NullInt64
	if e.Feeling != nil {
		feeling = sql.NullInt64{Int64: int64(*e.Feeling), Valid: true}
	}

	values := []any{
		e.UserID, e.MediaID, string(e.Status), boolToInt(e.Favorite), score, feeling,
		nullableString(e.Comment), e.Redo, e.Total, nullTimeString(e.CompletionDate),
		formatTime(e.AddedAt),
	}
	for _, col := range f.progressColumns {
		values = append(values, *progressField(e, col))
	}
	return values
}

// CreateListEntry adds a media to a user's list.
// Returns store.ErrAlreadyExists if the media is already listed and
// store.ErrNotFound if the user or media does not exist.
func (s *Store) CreateListEntry(ctx context.Context, entry *domain.ListEntry) (err error) {
	f, err := s.family(entry.MediaType)
	if err != nil {
		return err
	}
	defer func(start time.Time) { observe("create_entry", f.list, start, err) }(time.Now())

	if entry.AddedAt.IsZero() {
		entry.AddedAt = timeNow()
	}

	values := f.listValues(entry)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO `+f.list+` (`+f.selectListColumns("")+`) VALUES (`+placeholders(len(values))+`)`,
		values...)
	switch {
	case isUniqueViolation(err):
		return store.ErrAlreadyExists
	case isForeignKeyViolation(err):
		return store.ErrNotFound
	}
	return err
}

// GetListEntry retrieves the entry of mediaID in userID's list.
// Returns store.ErrNotFound if the media is not listed.
func (s *Store) GetListEntry(ctx context.Context, mediaType domain.MediaType, userID string, mediaID int64) (*domain.ListEntry, error) {
	f, err := s.family(mediaType)
	if err != nil {
		return nil, err
	}

	var e domain.ListEntry
	dest, finish := f.listDest(&e)
	err = s.db.QueryRowContext(ctx,
		`SELECT `+f.selectListColumns("")+` FROM `+f.list+` WHERE user_id = ? AND media_id = ?`,
		userID, mediaID).Scan(dest...)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateListEntry overwrites every mutable column of an entry.
// Returns store.ErrNotFound if the media is not listed.
func (s *Store) UpdateListEntry(ctx context.Context, entry *domain.ListEntry) (err error) {
	f, err := s.family(entry.MediaType)
	if err != nil {
		return err
	}
	defer func(start time.Time) { observe("update_entry", f.list, start, err) }(time.Now())

	set := []string{
		"status = ?", "favorite = ?", "score = ?", "feeling = ?", "comment = ?",
		"redo = ?", "total = ?", "completion_date = ?",
	}
	for _, col := range f.progressColumns {
		set = append(set, col+" = ?")
	}

	// listValues starts with user_id, media_id and ends with added_at before
	// the progress columns.
	values := f.listValues(entry)
	args := append([]any{}, values[2:10]...)
	args = append(args, values[11:]...)
	args = append(args, entry.UserID, entry.MediaID)

	result, err := s.db.ExecContext(ctx,
		`UPDATE `+f.list+` SET `+strings.Join(set, ", ")+` WHERE user_id = ? AND media_id = ?`,
		args...)
	if err != nil {
		return err
	}
	return expectOne(result)
}

// DeleteListEntry removes a media from a user's list along with its labels.
// Returns store.ErrNotFound if the media is not listed.
func (s *Store) DeleteListEntry(ctx context.Context, mediaType domain.MediaType, userID string, mediaID int64) error {
	f, err := s.family(mediaType)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.ExecContext(ctx,
		`DELETE FROM `+f.list+` WHERE user_id = ? AND media_id = ?`, userID, mediaID)
	if err != nil {
		return err
	}
	if err := expectOne(result); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM `+f.labels+` WHERE user_id = ? AND media_id = ?`, userID, mediaID); err != nil {
		return fmt.Errorf("delete labels: %w", err)
	}
	return tx.Commit()
}

// CountListEntries returns the number of media in a user's list.
func (s *Store) CountListEntries(ctx context.Context, mediaType domain.MediaType, userID string) (int, error) {
	f, err := s.family(mediaType)
	if err != nil {
		return 0, err
	}
	var n int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+f.list+` WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

// ListMediaIDs returns the ids of every media in a user's list, ascending.
func (s *Store) ListMediaIDs(ctx context.Context, mediaType domain.MediaType, userID string) (ids []int64, err error) {
	f, err := s.family(mediaType)
	if err != nil {
		return nil, err
	}
	defer func(start time.Time) { observe("list_media_ids", f.list, start, err) }(time.Now())

	rows, err := s.db.QueryContext(ctx,
		`SELECT media_id FROM `+f.list+` WHERE user_id = ? ORDER BY media_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
