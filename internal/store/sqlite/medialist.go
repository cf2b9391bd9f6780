package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/store"
	"github.com/mylists/mylists-server/internal/textfold"
)

const defaultPerPage = 36

// sortExpressions maps sort fields to the SQL expression they order by.
var sortExpressions = map[store.SortField]string{
	store.SortTitle:       "m.name",
	store.SortReleaseDate: "m.release_date",
	store.SortVoteAverage: "m.vote_average",
	store.SortHasComment:  "(l.comment IS NOT NULL AND l.comment <> '')",
	store.SortScore:       "l.score",
	store.SortFeeling:     "l.feeling",
}

// orderClause renders the primary ordering followed by the title tie-break.
// Missing values sort last in both directions.
func orderClause(o store.Order) (string, error) {
	expr, ok := sortExpressions[o.Field]
	if !ok {
		return "", fmt.Errorf("unknown sort field %d", o.Field)
	}
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	return expr + " " + dir + " NULLS LAST, m.name ASC", nil
}

// listWhere builds the filter of a list query over the list table l joined
// with the catalog table m.
func (f *tableFamily) listWhere(q store.ListQuery) (string, []any) {
	wb := newWhereBuilder().add("l.user_id = ?", q.OwnerID)

	if q.Mode == store.ListSearch {
		pattern := textfold.ContainsPattern(q.Term)
		clauses := []string{`m.search_folded LIKE ? ESCAPE '\'`}
		args := []any{pattern}
		for _, tag := range f.tags {
			clauses = append(clauses, `EXISTS (SELECT 1 FROM `+tag.table+` t
				WHERE t.media_id = m.id AND t.name_folded LIKE ? ESCAPE '\')`)
			args = append(args, pattern)
		}
		wb.addAny(clauses, args...)
		return wb.build()
	}

	switch q.Status {
	case "", domain.StatusAll:
	case domain.StatusFavorite:
		wb.add("l.favorite = 1")
	default:
		wb.add("l.status = ?", string(q.Status))
	}

	if q.Genre != "" && q.Genre != domain.GenreAll {
		wb.add(`EXISTS (SELECT 1 FROM `+f.genre+` g
			WHERE g.media_id = m.id AND g.genre LIKE ? ESCAPE '\')`, containsPattern(q.Genre))
	}

	if f.mediaType == domain.MediaMovies && q.Lang != "" && q.Lang != domain.LangAll {
		wb.add(`m.original_language LIKE ? ESCAPE '\'`, containsPattern(q.Lang))
	}

	wb.addNotIn("m.id", q.ExcludeIDs)
	return wb.build()
}

// QueryMediaList returns one page of a user's list and the number of rows
// matching the query across all pages. Each media appears at most once.
func (s *Store) QueryMediaList(ctx context.Context, q store.ListQuery) (page *store.ListPage, err error) {
	f, err := s.family(q.MediaType)
	if err != nil {
		return nil, err
	}
	defer func(start time.Time) {
		observe("query_"+q.Mode.String(), f.list, start, err)
	}(time.Now())

	order := "m.name ASC"
	if q.Mode == store.ListItems {
		if order, err = orderClause(q.Order); err != nil {
			return nil, err
		}
	}
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	pageNum := q.Page
	if pageNum < 1 {
		pageNum = 1
	}

	where, args := f.listWhere(q)
	from := ` FROM ` + f.list + ` l JOIN ` + f.media + ` m ON m.id = l.media_id WHERE ` + where

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // read-only

	page = &store.ListPage{}
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*)`+from, args...).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("count list: %w", err)
	}
	if page.Total == 0 {
		return page, nil
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT `+f.selectListColumns("l")+`, m.name, m.image_cover`+from+
			` ORDER BY `+order+` LIMIT ? OFFSET ?`,
		append(args, perPage, (pageNum-1)*perPage)...)
	if err != nil {
		return nil, fmt.Errorf("query list: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var row store.ListRow
		dest, finish := f.listDest(&row.ListEntry)
		dest = append(dest, &row.MediaName, &row.ImageCover)
		if err = rows.Scan(dest...); err != nil {
			return nil, err
		}
		if err = finish(); err != nil {
			return nil, err
		}
		page.Rows = append(page.Rows, row)
		ids = append(ids, row.MediaID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	if f.epsPerSeason != "" {
		var eps map[int64][]int
		if eps, err = s.episodesPerSeason(ctx, f, ids); err != nil {
			return nil, err
		}
		for i := range page.Rows {
			page.Rows[i].EpsPerSeason = eps[page.Rows[i].MediaID]
		}
	}

	return page, nil
}
