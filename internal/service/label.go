package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mylists/mylists-server/internal/domain"
	domainerrors "github.com/mylists/mylists-server/internal/errors"
	"github.com/mylists/mylists-server/internal/store"
	"github.com/mylists/mylists-server/internal/validation"
)

// LabelService manages user-defined labels inside lists.
type LabelService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewLabelService creates a new label service.
func NewLabelService(store store.Store, logger *slog.Logger) *LabelService {
	return &LabelService{
		store:     store,
		validator: validation.New(),
		logger:    logger,
	}
}

type labelName struct {
	Label string `json:"label" validate:"label"`
}

func (s *LabelService) validateName(name string) error {
	return s.validator.Validate(labelName{Label: name})
}

// AddToLabel puts a media of user's list under a label, creating the label
// if needed.
func (s *LabelService) AddToLabel(ctx context.Context, user *domain.User, mediaType domain.MediaType, mediaID int64, label string) error {
	if err := s.validateName(label); err != nil {
		return err
	}

	err := s.store.AddLabel(ctx, mediaType, user.ID, mediaID, label)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.Validation("this media is not in your list")
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.AlreadyExists("this media already has this label")
	case err != nil:
		return fmt.Errorf("add label: %w", err)
	}

	s.logger.Info("media labeled", "user_id", user.ID, "media_type", mediaType, "media_id", mediaID, "label", label)
	return nil
}

// RemoveFromLabel takes a media out of a label.
func (s *LabelService) RemoveFromLabel(ctx context.Context, user *domain.User, mediaType domain.MediaType, mediaID int64, label string) error {
	err := s.store.RemoveLabel(ctx, mediaType, user.ID, mediaID, label)
	if errors.Is(err, store.ErrNotFound) {
		return domainerrors.NotFound("this media does not have this label")
	}
	if err != nil {
		return fmt.Errorf("remove label: %w", err)
	}
	return nil
}

// RenameLabel renames one of user's labels and returns how many media it holds.
func (s *LabelService) RenameLabel(ctx context.Context, user *domain.User, mediaType domain.MediaType, oldName, newName string) (int, error) {
	if err := s.validateName(newName); err != nil {
		return 0, err
	}

	n, err := s.store.RenameLabel(ctx, mediaType, user.ID, oldName, newName)
	if errors.Is(err, store.ErrNotFound) {
		return 0, domainerrors.NotFoundf("label %q not found", oldName)
	}
	if err != nil {
		return 0, fmt.Errorf("rename label: %w", err)
	}

	s.logger.Info("label renamed", "user_id", user.ID, "media_type", mediaType, "from", oldName, "to", newName)
	return n, nil
}

// DeleteLabel removes one of user's labels and returns how many media it held.
func (s *LabelService) DeleteLabel(ctx context.Context, user *domain.User, mediaType domain.MediaType, label string) (int, error) {
	n, err := s.store.DeleteLabel(ctx, mediaType, user.ID, label)
	if errors.Is(err, store.ErrNotFound) {
		return 0, domainerrors.NotFoundf("label %q not found", label)
	}
	if err != nil {
		return 0, fmt.Errorf("delete label: %w", err)
	}

	s.logger.Info("label deleted", "user_id", user.ID, "media_type", mediaType, "label", label)
	return n, nil
}

// ListLabels returns owner's labels of a list.
func (s *LabelService) ListLabels(ctx context.Context, owner *domain.User, mediaType domain.MediaType) ([]domain.Label, error) {
	return s.store.ListLabels(ctx, mediaType, owner.ID)
}

// ListLabelMedia returns the media under one of owner's labels.
func (s *LabelService) ListLabelMedia(ctx context.Context, owner *domain.User, mediaType domain.MediaType, label string) ([]domain.MediaSummary, error) {
	return s.store.ListLabelMedia(ctx, mediaType, owner.ID, label)
}
