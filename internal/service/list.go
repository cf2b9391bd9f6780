package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mylists/mylists-server/internal/domain"
	domainerrors "github.com/mylists/mylists-server/internal/errors"
	"github.com/mylists/mylists-server/internal/store"
)

// ListService adds, updates and removes media of a user's own lists.
type ListService struct {
	store  store.Store
	logger *slog.Logger
}

// NewListService creates a new list entry service.
func NewListService(store store.Store, logger *slog.Logger) *ListService {
	return &ListService{
		store:  store,
		logger: logger,
	}
}

// AddMediaRequest adds a media with a status. An empty status takes the
// media type's default.
type AddMediaRequest struct {
	MediaID int64  `json:"media_id"`
	Status  string `json:"status,omitempty"`
}

// AddMedia adds a catalog media to user's list.
func (s *ListService) AddMedia(ctx context.Context, user *domain.User, mediaType domain.MediaType, req AddMediaRequest) (*domain.ListEntry, error) {
	status := domain.Status(req.Status)
	if status == "" {
		status = mediaType.DefaultStatus()
	}
	if !mediaType.HasStatus(status) {
		return nil, domainerrors.ValidationWithDetails("This status does not exist.", map[string]string{"status": string(status)})
	}

	media, err := s.getMedia(ctx, mediaType, req.MediaID)
	if err != nil {
		return nil, err
	}

	entry := domain.NewListEntry(user.ID, media, status, time.Now())
	if err := s.store.CreateListEntry(ctx, entry); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Validation("this media is already in your list")
		}
		return nil, fmt.Errorf("create entry: %w", err)
	}

	s.logger.Info("media added",
		"user_id", user.ID, "media_type", mediaType, "media_id", media.ID, "status", status)
	return entry, nil
}

// RemoveMedia removes a media from user's list.
func (s *ListService) RemoveMedia(ctx context.Context, user *domain.User, mediaType domain.MediaType, mediaID int64) error {
	if err := s.store.DeleteListEntry(ctx, mediaType, user.ID, mediaID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("this media is not in your list")
		}
		return fmt.Errorf("delete entry: %w", err)
	}

	s.logger.Info("media removed", "user_id", user.ID, "media_type", mediaType, "media_id", mediaID)
	return nil
}

// UpdateEntryRequest changes a list entry. Nil fields are kept. Metric is a
// 0-10 score, or a 0-5 feeling for users rating with feelings; ClearMetric
// removes it.
type UpdateEntryRequest struct {
	Status      *string  `json:"status,omitempty"`
	Favorite    *bool    `json:"favorite,omitempty"`
	Metric      *float64 `json:"metric,omitempty"`
	ClearMetric bool     `json:"clear_metric,omitempty"`
	Redo        *int     `json:"redo,omitempty"`
	Comment     *string  `json:"comment,omitempty"`
	Season      *int     `json:"season,omitempty"`
	Episode     *int     `json:"episode,omitempty"`
	Page        *int     `json:"page,omitempty"`
	Playtime    *int     `json:"playtime,omitempty"` // hours
}

// UpdateEntry applies req to the entry of mediaID in user's list. Changes
// are applied in field order, status first.
func (s *ListService) UpdateEntry(ctx context.Context, user *domain.User, mediaType domain.MediaType, mediaID int64, req UpdateEntryRequest) (*domain.ListEntry, error) {
	media, err := s.getMedia(ctx, mediaType, mediaID)
	if err != nil {
		return nil, err
	}

	entry, err := s.store.GetListEntry(ctx, mediaType, user.ID, mediaID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("this media is not in your list")
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	if err := applyUpdate(entry, media, user.AddFeeling, req); err != nil {
		return nil, err
	}

	if err := s.store.UpdateListEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}

	s.logger.Info("entry updated", "user_id", user.ID, "media_type", mediaType, "media_id", mediaID)
	return entry, nil
}

func applyUpdate(e *domain.ListEntry, media *domain.Media, usesFeeling bool, req UpdateEntryRequest) error {
	var errs []error
	if req.Status != nil {
		errs = append(errs, e.ApplyStatus(media, domain.Status(*req.Status)))
	}
	if req.Favorite != nil {
		e.Favorite = *req.Favorite
	}
	if req.ClearMetric {
		errs = append(errs, e.SetMetric(usesFeeling, nil))
	} else if req.Metric != nil {
		errs = append(errs, e.SetMetric(usesFeeling, req.Metric))
	}
	if req.Redo != nil {
		errs = append(errs, e.SetRedo(media, *req.Redo))
	}
	if req.Comment != nil {
		e.SetComment(*req.Comment)
	}
	if req.Season != nil {
		errs = append(errs, e.SetSeason(media, *req.Season))
	}
	if req.Episode != nil {
		errs = append(errs, e.SetEpisode(media, *req.Episode))
	}
	if req.Page != nil {
		errs = append(errs, e.SetPage(media, *req.Page))
	}
	if req.Playtime != nil {
		errs = append(errs, e.SetPlaytime(media, *req.Playtime))
	}

	if err := errors.Join(errs...); err != nil {
		return domainerrors.Validation(err.Error()).WithCause(err)
	}
	return nil
}

func (s *ListService) getMedia(ctx context.Context, mediaType domain.MediaType, mediaID int64) (*domain.Media, error) {
	media, err := s.store.GetMedia(ctx, mediaType, mediaID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Validationf("%s %d does not exist", mediaType, mediaID)
		}
		return nil, fmt.Errorf("get media: %w", err)
	}
	return media, nil
}
