package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/store"
)

// favoritesSample bounds the favorites returned with list aggregates.
const favoritesSample = 10

// ListAggregates reads the figures list statistics are built from.
func (s *Store) ListAggregates(ctx context.Context, mediaType domain.MediaType, userID string) (agg *store.ListAggregates, err error) {
	f, err := s.family(mediaType)
	if err != nil {
		return nil, err
	}
	defer func(start time.Time) { observe("list_aggregates", f.list, start, err) }(time.Now())

	agg = &store.ListAggregates{StatusCounts: make(map[domain.Status]int)}

	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM `+f.list+` WHERE user_id = ? GROUP BY status`, userID)
	if err != nil {
		return nil, fmt.Errorf("count statuses: %w", err)
	}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err = rows.Scan(&status, &n); err != nil {
			rows.Close()
			return nil, err
		}
		agg.StatusCounts[domain.Status(status)] = n
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT score, feeling FROM `+f.list+`
		WHERE user_id = ? AND (score IS NOT NULL OR feeling IS NOT NULL)`, userID)
	if err != nil {
		return nil, fmt.Errorf("load metrics: %w", err)
	}
	for rows.Next() {
		var (
			score   sql.NullFloat64
			feeling sql.NullInt64
		)
		if err = rows.Scan(&score, &feeling); err != nil {
			rows.Close()
			return nil, err
		}
		if score.Valid {
			agg.Scores = append(agg.Scores, score.Float64)
		}
		if feeling.Valid {
			agg.Feelings = append(agg.Feelings, int(feeling.Int64))
		}
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	specific := "total"
	if mediaType == domain.MediaGames {
		specific = "playtime"
	}
	if err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(`+specific+`), 0),
		       COALESCE(SUM(favorite), 0)
		FROM `+f.list+` WHERE user_id = ?`, userID).Scan(&agg.SpecificTotal, &agg.TotalFavorites); err != nil {
		return nil, fmt.Errorf("sum totals: %w", err)
	}

	if agg.TotalFavorites > 0 {
		agg.Favorites, err = s.mediaSummaries(ctx, mediaType, `
			SELECT m.id, m.name, m.image_cover
			FROM `+f.list+` l JOIN `+f.media+` m ON m.id = l.media_id
			WHERE l.user_id = ? AND l.favorite = 1
			ORDER BY m.name
			LIMIT ?`, userID, favoritesSample)
		if err != nil {
			return nil, fmt.Errorf("load favorites: %w", err)
		}
	}

	return agg, nil
}
