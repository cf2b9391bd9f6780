package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mylists/mylists-server/internal/domain"
	domainerrors "github.com/mylists/mylists-server/internal/errors"
	"github.com/mylists/mylists-server/internal/store"
)

// UserService handles profiles, follows, view counters and settings.
type UserService struct {
	store  store.Store
	stats  *StatsService
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, stats *StatsService, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		stats:  stats,
		logger: logger,
	}
}

// CheckAuthorization resolves the user viewer wants to look at. The admin
// account is only visible to admins.
func (s *UserService) CheckAuthorization(ctx context.Context, viewer *domain.User, username string) (*domain.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("user %q not found", username)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user.Username == domain.AdminUsername && !viewer.IsAdmin() {
		return nil, domainerrors.Forbidden("you cannot view this user")
	}
	return user, nil
}

// countsView reports whether a visit by viewer bumps owner's view counters.
func countsView(viewer, owner *domain.User) bool {
	return !viewer.IsAdmin() && viewer.ID != owner.ID
}

// RecordListView bumps the view counter of owner's list of mediaType.
// Failures are logged and otherwise ignored.
func (s *UserService) RecordListView(ctx context.Context, viewer, owner *domain.User, mediaType domain.MediaType) {
	if !countsView(viewer, owner) {
		return
	}
	if err := s.store.IncrementListViews(ctx, owner.ID, mediaType); err != nil {
		s.logger.Warn("failed to count list view", "user_id", owner.ID, "media_type", mediaType, "error", err)
	}
}

// ListSummary is the profile overview of one list.
type ListSummary struct {
	MediaType    domain.MediaType     `json:"media_type"`
	TotalMedia   int                  `json:"total_media"`
	StatusCounts []domain.StatusCount `json:"status_count"`
	MeanMetric   float64              `json:"mean_metric"`
	Views        int                  `json:"views"`
}

// Profile is a user page.
type Profile struct {
	User        *domain.User  `json:"user"`
	Followers   int           `json:"followers_count"`
	Follows     int           `json:"follows_count"`
	IsFollowing bool          `json:"is_following"`
	Lists       []ListSummary `json:"lists"`
}

// GetProfile builds the profile of username as seen by viewer and counts
// the visit.
func (s *UserService) GetProfile(ctx context.Context, viewer *domain.User, username string) (*Profile, error) {
	user, err := s.CheckAuthorization(ctx, viewer, username)
	if err != nil {
		return nil, err
	}

	if countsView(viewer, user) {
		if err := s.store.IncrementProfileViews(ctx, user.ID); err != nil {
			s.logger.Warn("failed to count profile view", "user_id", user.ID, "error", err)
		} else {
			user.ProfileViews++
		}
	}

	p := &Profile{User: user}
	if p.Followers, p.Follows, err = s.store.CountFollows(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("count follows: %w", err)
	}
	if viewer.ID != user.ID {
		if p.IsFollowing, err = s.store.IsFollowing(ctx, viewer.ID, user.ID); err != nil {
			return nil, fmt.Errorf("check follow: %w", err)
		}
	}

	for _, mt := range domain.MediaTypes {
		stats, err := s.stats.ListStats(ctx, user, mt)
		if err != nil {
			return nil, err
		}
		p.Lists = append(p.Lists, ListSummary{
			MediaType:    mt,
			TotalMedia:   stats.TotalMedia,
			StatusCounts: stats.StatusCounts,
			MeanMetric:   stats.MeanMetric,
			Views:        user.Views[mt],
		})
	}

	return p, nil
}

// Follow makes viewer follow username. Following twice is a no-op.
func (s *UserService) Follow(ctx context.Context, viewer *domain.User, username string) error {
	user, err := s.CheckAuthorization(ctx, viewer, username)
	if err != nil {
		return err
	}
	if user.ID == viewer.ID {
		return domainerrors.Validation("you cannot follow yourself")
	}

	err = s.store.Follow(ctx, viewer.ID, user.ID)
	if err != nil && !errors.Is(err, store.ErrAlreadyExists) {
		return fmt.Errorf("follow: %w", err)
	}

	s.logger.Info("user followed", "user_id", viewer.ID, "followed_id", user.ID)
	return nil
}

// Unfollow stops viewer following username. Unfollowing twice is a no-op.
func (s *UserService) Unfollow(ctx context.Context, viewer *domain.User, username string) error {
	user, err := s.CheckAuthorization(ctx, viewer, username)
	if err != nil {
		return err
	}

	err = s.store.Unfollow(ctx, viewer.ID, user.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("unfollow: %w", err)
	}

	s.logger.Info("user unfollowed", "user_id", viewer.ID, "followed_id", user.ID)
	return nil
}

// Followers returns the users following username.
func (s *UserService) Followers(ctx context.Context, viewer *domain.User, username string) ([]*domain.User, error) {
	user, err := s.CheckAuthorization(ctx, viewer, username)
	if err != nil {
		return nil, err
	}
	return s.store.ListFollowers(ctx, user.ID)
}

// Follows returns the users username follows.
func (s *UserService) Follows(ctx context.Context, viewer *domain.User, username string) ([]*domain.User, error) {
	user, err := s.CheckAuthorization(ctx, viewer, username)
	if err != nil {
		return nil, err
	}
	return s.store.ListFollows(ctx, user.ID)
}

// SettingsRequest holds the account settings to change. Nil fields are kept.
type SettingsRequest struct {
	Private    *bool `json:"private,omitempty"`
	AddFeeling *bool `json:"add_feeling,omitempty"`
}

// UpdateSettings changes the settings of user.
func (s *UserService) UpdateSettings(ctx context.Context, user *domain.User, req SettingsRequest) (*domain.User, error) {
	if req.Private != nil {
		user.Private = *req.Private
	}
	if req.AddFeeling != nil {
		user.AddFeeling = *req.AddFeeling
	}
	user.Touch()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("settings updated", "user_id", user.ID, "private", user.Private, "add_feeling", user.AddFeeling)
	return user, nil
}
