package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/store"
	"github.com/mylists/mylists-server/internal/textfold"
)

// mediaColumns is the ordered list of catalog columns shared by every media
// table. Type-specific columns follow them, in tableFamily.mediaColumns order.
const mediaColumns = `id, name, original_name, release_date, vote_average, popularity,
	image_cover, api_id, lock_status, last_update`

func (f *tableFamily) selectMediaColumns() string {
	cols := mediaColumns
	if len(f.mediaColumns) > 0 {
		cols += ", " + strings.Join(f.mediaColumns, ", ")
	}
	return cols
}

func (f *tableFamily) scanMedia(scanner interface{ Scan(dest ...any) error }) (*domain.Media, error) {
	m := domain.Media{Type: f.mediaType}

	var (
		originalName sql.NullString
		releaseDate  sql.NullString
		voteAverage  sql.NullFloat64
		popularity   sql.NullFloat64
		apiID        sql.NullInt64
		lockStatus   int
		lastUpdate   string
	)

	dest := []any{
		&m.ID, &m.Name, &originalName, &releaseDate, &voteAverage, &popularity,
		&m.ImageCover, &apiID, &lockStatus, &lastUpdate,
	}
	apply := make([]func(), 0, len(f.mediaColumns))
	for _, col := range f.mediaColumns {
		d, fn := mediaColumnDest(&m, col)
		dest = append(dest, d)
		apply = append(apply, fn)
	}

	if err := scanner.Scan(dest...); err != nil {
		return nil, err
	}
	for _, fn := range apply {
		fn()
	}

	var err error
	if m.LastUpdate, err = parseTime(lastUpdate); err != nil {
		return nil, err
	}
	m.OriginalName = originalName.String
	m.ReleaseDate = releaseDate.String
	m.VoteAverage = voteAverage.Float64
	m.Popularity = popularity.Float64
	m.APIID = apiID.Int64
	m.LockStatus = lockStatus != 0

	return &m, nil
}

// searchFolded is the folded text matched by list searches besides the tag tables.
func searchFolded(m *domain.Media) string {
	return textfold.Join(append([]string{m.Name, m.OriginalName}, m.SecondaryNames()...)...)
}

// CreateMedia inserts a catalog entry with its genres, seasons and tags,
// and sets media.ID.
func (s *Store) CreateMedia(ctx context.Context, media *domain.Media) (err error) {
	f, err := s.family(media.Type)
	if err != nil {
		return err
	}
	defer func(start time.Time) { observe("create_media", f.media, start, err) }(time.Now())

	if media.LastUpdate.IsZero() {
		media.LastUpdate = timeNow()
	}
	if media.ImageCover == "" {
		media.ImageCover = "default.jpg"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	cols := []string{
		"name", "original_name", "release_date", "vote_average", "popularity",
		"image_cover", "api_id", "lock_status", "last_update", "search_folded",
	}
	args := []any{
		media.Name,
		nullString(media.OriginalName),
		nullString(media.ReleaseDate),
		media.VoteAverage,
		media.Popularity,
		media.ImageCover,
		nullInt64(media.APIID),
		boolToInt(media.LockStatus),
		formatTime(media.LastUpdate),
		searchFolded(media),
	}
	for _, col := range f.mediaColumns {
		cols = append(cols, col)
		args = append(args, mediaColumnValue(media, col))
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO `+f.media+` (`+strings.Join(cols, ", ")+`) VALUES (`+placeholders(len(cols))+`)`,
		args...)
	if err != nil {
		return fmt.Errorf("insert media: %w", err)
	}
	if media.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("media id: %w", err)
	}

	for _, g := range media.Genres {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO `+f.genre+` (media_id, genre) VALUES (?, ?)`, media.ID, g); err != nil {
			return fmt.Errorf("insert genre: %w", err)
		}
	}

	if f.epsPerSeason != "" {
		for i, eps := range media.EpsPerSeason {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO `+f.epsPerSeason+` (media_id, season, episodes) VALUES (?, ?, ?)`,
				media.ID, i+1, eps); err != nil {
				return fmt.Errorf("insert season: %w", err)
			}
		}
	}

	for _, tag := range f.tags {
		for _, name := range media.TagNames(tag.kind) {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO `+tag.table+` (media_id, name, name_folded) VALUES (?, ?, ?)`,
				media.ID, name, textfold.Fold(name)); err != nil {
				return fmt.Errorf("insert %s: %w", tag.kind, err)
			}
		}
	}

	return tx.Commit()
}

// GetMedia retrieves a catalog entry with its genres, seasons and tags.
// Returns store.ErrNotFound if the media does not exist.
func (s *Store) GetMedia(ctx context.Context, mediaType domain.MediaType, id int64) (*domain.Media, error) {
	f, err := s.family(mediaType)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+f.selectMediaColumns()+` FROM `+f.media+` WHERE id = ?`, id)
	m, err := f.scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if m.Genres, err = s.queryStrings(ctx,
		`SELECT genre FROM `+f.genre+` WHERE media_id = ? ORDER BY rowid`, id); err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}

	if f.epsPerSeason != "" {
		eps, err := s.episodesPerSeason(ctx, f, []int64{id})
		if err != nil {
			return nil, err
		}
		m.EpsPerSeason = eps[id]
	}

	for _, tag := range f.tags {
		names, err := s.queryStrings(ctx,
			`SELECT name FROM `+tag.table+` WHERE media_id = ? ORDER BY rowid`, id)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", tag.kind, err)
		}
		switch tag.kind {
		case domain.TagNetwork:
			m.Networks = names
		case domain.TagActor:
			m.Actors = names
		case domain.TagCompany:
			m.Companies = names
		case domain.TagPlatform:
			m.Platforms = names
		case domain.TagAuthor:
			m.Authors = names
		}
	}

	return m, nil
}

// episodesPerSeason loads the season breakdown of several TV media at once.
func (s *Store) episodesPerSeason(ctx context.Context, f *tableFamily, ids []int64) (map[int64][]int, error) {
	out := make(map[int64][]int, len(ids))
	if f.epsPerSeason == "" || len(ids) == 0 {
		return out, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT media_id, episodes FROM `+f.epsPerSeason+`
		WHERE media_id IN (`+placeholders(len(ids))+`)
		ORDER BY media_id, season`, args...)
	if err != nil {
		return nil, fmt.Errorf("load episodes per season: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			mediaID  int64
			episodes int
		)
		if err := rows.Scan(&mediaID, &episodes); err != nil {
			return nil, err
		}
		out[mediaID] = append(out[mediaID], episodes)
	}
	return out, rows.Err()
}

func (s *Store) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
