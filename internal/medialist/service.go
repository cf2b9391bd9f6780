// Package medialist resolves and runs media list queries: one page of a
// user's list of one media type, filtered and sorted, with the media it
// shares with the viewer's list.
package medialist

import (
	"context"
	"log/slog"
	"time"

	"github.com/mylists/mylists-server/internal/domain"
	domainerrors "github.com/mylists/mylists-server/internal/errors"
	"github.com/mylists/mylists-server/internal/metrics"
	"github.com/mylists/mylists-server/internal/store"
)

// PerPage is the number of rows in a list page.
const PerPage = 36

// Store is the persistence the list query needs.
type Store interface {
	IDStore
	QueryMediaList(ctx context.Context, q store.ListQuery) (*store.ListPage, error)
}

// Service runs list queries.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a list query service.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Query returns one page of owner's list as seen by viewer. The caller has
// already checked that viewer may see the list. Invalid parameters fail
// before any store access, except a page past the last one which is only
// known once the rows are counted. mediaType is checked again here for
// callers that did not parse it.
func (s *Service) Query(ctx context.Context, viewer, owner *domain.User, mediaType domain.MediaType, p Params) (result *Result, err error) {
	start := time.Now()
	mode := store.ListItems
	rows := 0
	defer func() {
		outcome := "ok"
		switch {
		case domainerrors.Is(err, domainerrors.ErrValidation):
			outcome = "invalid"
		case err != nil:
			outcome = "error"
		}
		metrics.RecordListQuery(string(mediaType), mode.String(), outcome, rows, time.Since(start))
	}()

	if _, err := domain.ParseMediaType(string(mediaType)); err != nil {
		return nil, invalidParam("media_type", "This media type does not exist.")
	}

	vocab := NewVocabulary(mediaType, owner.AddFeeling)
	f, err := ResolveFilter(mediaType, p, vocab)
	if err != nil {
		return nil, err
	}
	mode = f.Mode

	common, err := CommonMedia(ctx, s.store, mediaType, viewer.ID, owner.ID)
	if err != nil {
		return nil, domainerrors.Internal("failed to compare lists").WithCause(err)
	}

	q := store.ListQuery{
		Mode:      f.Mode,
		MediaType: mediaType,
		OwnerID:   owner.ID,
		Page:      f.Page,
		PerPage:   PerPage,
	}
	if f.Mode == store.ListSearch {
		q.Term = f.Search
	} else {
		q.Status = f.Status
		q.Genre = f.Genre
		q.Lang = f.Lang
		q.Order = f.Order
		if !f.ShowCommon {
			q.ExcludeIDs = common.IDs
		}
	}

	page, err := s.store.QueryMediaList(ctx, q)
	if err != nil {
		return nil, domainerrors.Internal("failed to load list").WithCause(err)
	}

	pages := pageCount(page.Total, PerPage)
	if f.Page > max(1, pages) {
		return nil, invalidParam("page", msgInvalidPage)
	}
	rows = len(page.Rows)

	s.logger.Debug("list query",
		"viewer_id", viewer.ID,
		"user_id", owner.ID,
		"media_type", mediaType,
		"mode", f.Mode.String(),
		"total", page.Total,
	)

	return &Result{
		MediaData: MediaData{
			MediaList:  newRows(mediaType, page.Rows),
			TotalMedia: common.TotalMedia,
			CommonIDs:  common.IDs,
		},
		Pagination: Pagination{
			Search:     f.Search,
			Sorting:    f.Sorting,
			Status:     f.Status,
			Genre:      f.Genre,
			Lang:       f.Lang,
			Page:       f.Page,
			Pages:      pages,
			Total:      page.Total,
			AllStatus:  vocab.Statuses,
			AllGenres:  vocab.Genres,
			AllSorting: vocab.Sorting.Names(),
		},
	}, nil
}
