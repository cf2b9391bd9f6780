package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/service"
)

func (s *Server) registerEntryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "addMedia",
		Method:        http.MethodPost,
		Path:          "/api/v1/entries/{media_type}",
		Summary:       "Add media to list",
		Description:   "Adds a catalog media to the caller's list. Without a status the media type's default is used.",
		Tags:          []string{"Entries"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateEntry",
		Method:      http.MethodPatch,
		Path:        "/api/v1/entries/{media_type}/{media_id}",
		Summary:     "Update list entry",
		Description: "Changes status, favorite, rating, redo count, comment or progress of a list entry",
		Tags:        []string{"Entries"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeMedia",
		Method:      http.MethodDelete,
		Path:        "/api/v1/entries/{media_type}/{media_id}",
		Summary:     "Remove media from list",
		Tags:        []string{"Entries"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "addToLabel",
		Method:      http.MethodPut,
		Path:        "/api/v1/entries/{media_type}/{media_id}/labels/{label}",
		Summary:     "Add media to label",
		Description: "Puts a media of the caller's list under a label, creating the label if needed",
		Tags:        []string{"Labels"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddToLabel)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFromLabel",
		Method:      http.MethodDelete,
		Path:        "/api/v1/entries/{media_type}/{media_id}/labels/{label}",
		Summary:     "Remove media from label",
		Tags:        []string{"Labels"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveFromLabel)
}

// === DTOs ===

// AddMediaInput wraps the add request for Huma.
type AddMediaInput struct {
	MediaType string `path:"media_type" doc:"Media type"`
	Body      service.AddMediaRequest
}

// EntryInput selects an entry of the caller's list.
type EntryInput struct {
	MediaType string `path:"media_type" doc:"Media type"`
	MediaID   int64  `path:"media_id" doc:"Catalog media ID"`
}

// UpdateEntryInput wraps the update request for Huma.
type UpdateEntryInput struct {
	EntryInput
	Body service.UpdateEntryRequest
}

// EntryLabelInput selects a label of an entry.
type EntryLabelInput struct {
	EntryInput
	Label string `path:"label" doc:"Label name"`
}

// EntryOutput wraps a list entry for Huma.
type EntryOutput struct {
	Body *domain.ListEntry
}

// === Handlers ===

func (s *Server) handleAddMedia(ctx context.Context, input *AddMediaInput) (*EntryOutput, error) {
	user, mt, err := s.entryCaller(ctx, input.MediaType)
	if err != nil {
		return nil, err
	}

	entry, err := s.services.List.AddMedia(ctx, user, mt, input.Body)
	if err != nil {
		return nil, err
	}
	return &EntryOutput{Body: entry}, nil
}

func (s *Server) handleUpdateEntry(ctx context.Context, input *UpdateEntryInput) (*EntryOutput, error) {
	user, mt, err := s.entryCaller(ctx, input.MediaType)
	if err != nil {
		return nil, err
	}

	entry, err := s.services.List.UpdateEntry(ctx, user, mt, input.MediaID, input.Body)
	if err != nil {
		return nil, err
	}
	return &EntryOutput{Body: entry}, nil
}

func (s *Server) handleRemoveMedia(ctx context.Context, input *EntryInput) (*MessageOutput, error) {
	user, mt, err := s.entryCaller(ctx, input.MediaType)
	if err != nil {
		return nil, err
	}

	if err := s.services.List.RemoveMedia(ctx, user, mt, input.MediaID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Media removed from your list"}}, nil
}

func (s *Server) handleAddToLabel(ctx context.Context, input *EntryLabelInput) (*MessageOutput, error) {
	user, mt, err := s.entryCaller(ctx, input.MediaType)
	if err != nil {
		return nil, err
	}

	if err := s.services.Label.AddToLabel(ctx, user, mt, input.MediaID, input.Label); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Media added to " + input.Label}}, nil
}

func (s *Server) handleRemoveFromLabel(ctx context.Context, input *EntryLabelInput) (*MessageOutput, error) {
	user, mt, err := s.entryCaller(ctx, input.MediaType)
	if err != nil {
		return nil, err
	}

	if err := s.services.Label.RemoveFromLabel(ctx, user, mt, input.MediaID, input.Label); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Media removed from " + input.Label}}, nil
}

// entryCaller returns the authenticated user and the media type their
// request works on.
func (s *Server) entryCaller(ctx context.Context, mediaType string) (*domain.User, domain.MediaType, error) {
	user, err := GetUser(ctx)
	if err != nil {
		return nil, "", err
	}
	mt, err := parseMediaType(mediaType)
	if err != nil {
		return nil, "", err
	}
	return user, mt, nil
}
