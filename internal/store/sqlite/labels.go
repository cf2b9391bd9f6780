package sqlite

import (
	"context"
	"fmt"

	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/store"
)

// AddLabel puts a media of userID's list under a label.
// Returns store.ErrNotFound if the media is not listed and
// store.ErrAlreadyExists if it already carries the label.
func (s *Store) AddLabel(ctx context.Context, mediaType domain.MediaType, userID string, mediaID int64, label string) error {
	f, err := s.family(mediaType)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO `+f.labels+` (user_id, media_id, label)
		SELECT user_id, media_id, ? FROM `+f.list+` WHERE user_id = ? AND media_id = ?`,
		label, userID, mediaID)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	return expectOne(result)
}

// RemoveLabel takes a media out of a label.
// Returns store.ErrNotFound if the media did not carry the label.
func (s *Store) RemoveLabel(ctx context.Context, mediaType domain.MediaType, userID string, mediaID int64, label string) error {
	f, err := s.family(mediaType)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM `+f.labels+` WHERE user_id = ? AND media_id = ? AND label = ?`,
		userID, mediaID, label)
	if err != nil {
		return err
	}
	return expectOne(result)
}

// RenameLabel renames a label and returns how many media it held. Renaming
// onto an existing label merges the two.
// Returns store.ErrNotFound if the label does not exist.
func (s *Store) RenameLabel(ctx context.Context, mediaType domain.MediaType, userID, oldName, newName string) (int, error) {
	f, err := s.family(mediaType)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var n int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+f.labels+` WHERE user_id = ? AND label = ?`,
		userID, oldName).Scan(&n); err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, store.ErrNotFound
	}

	// Rows already carrying newName are left in place and the duplicates removed.
	if _, err := tx.ExecContext(ctx,
		`UPDATE OR IGNORE `+f.labels+` SET label = ? WHERE user_id = ? AND label = ?`,
		newName, userID, oldName); err != nil {
		return 0, fmt.Errorf("rename label: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM `+f.labels+` WHERE user_id = ? AND label = ?`, userID, oldName); err != nil {
		return 0, fmt.Errorf("drop merged label: %w", err)
	}

	return n, tx.Commit()
}

// DeleteLabel removes a label from every media of a list and returns how
// many media it held.
// Returns store.ErrNotFound if the label does not exist.
func (s *Store) DeleteLabel(ctx context.Context, mediaType domain.MediaType, userID, label string) (int, error) {
	f, err := s.family(mediaType)
	if err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM `+f.labels+` WHERE user_id = ? AND label = ?`, userID, label)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, store.ErrNotFound
	}
	return int(n), nil
}

// ListLabels returns the labels of a list with their media counts, by name.
func (s *Store) ListLabels(ctx context.Context, mediaType domain.MediaType, userID string) ([]domain.Label, error) {
	f, err := s.family(mediaType)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT label, COUNT(*) FROM `+f.labels+`
		WHERE user_id = ?
		GROUP BY label
		ORDER BY label`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []domain.Label{}
	for rows.Next() {
		var l domain.Label
		if err := rows.Scan(&l.Name, &l.MediaCount); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// ListLabelMedia returns the media under a label, by name.
func (s *Store) ListLabelMedia(ctx context.Context, mediaType domain.MediaType, userID, label string) ([]domain.MediaSummary, error) {
	f, err := s.family(mediaType)
	if err != nil {
		return nil, err
	}

	return s.mediaSummaries(ctx, mediaType, `
		SELECT m.id, m.name, m.image_cover
		FROM `+f.labels+` lb JOIN `+f.media+` m ON m.id = lb.media_id
		WHERE lb.user_id = ? AND lb.label = ?
		ORDER BY m.name`, userID, label)
}

func (s *Store) mediaSummaries(ctx context.Context, mediaType domain.MediaType, query string, args ...any) ([]domain.MediaSummary, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.MediaSummary{}
	for rows.Next() {
		var (
			ms    domain.MediaSummary
			cover string
		)
		if err := rows.Scan(&ms.MediaID, &ms.MediaName, &cover); err != nil {
			return nil, err
		}
		ms.MediaCover = mediaType.CoverURL(cover)
		out = append(out, ms)
	}
	return out, rows.Err()
}
