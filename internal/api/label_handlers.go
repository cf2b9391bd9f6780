package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerLabelRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "renameLabel",
		Method:      http.MethodPatch,
		Path:        "/api/v1/labels/{media_type}/{label}",
		Summary:     "Rename label",
		Description: "Renames one of the caller's labels. Renaming onto an existing label merges them.",
		Tags:        []string{"Labels"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRenameLabel)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteLabel",
		Method:      http.MethodDelete,
		Path:        "/api/v1/labels/{media_type}/{label}",
		Summary:     "Delete label",
		Description: "Deletes one of the caller's labels. The media stay in the list.",
		Tags:        []string{"Labels"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteLabel)
}

// LabelInput selects one of the caller's labels.
type LabelInput struct {
	MediaType string `path:"media_type" doc:"Media type"`
	Label     string `path:"label" doc:"Label name"`
}

// RenameLabelInput wraps the rename request for Huma.
type RenameLabelInput struct {
	LabelInput
	Body struct {
		Name string `json:"name" doc:"New label name"`
	}
}

// LabelChange reports the label affected by a rename or delete.
type LabelChange struct {
	Name       string `json:"name"`
	MediaCount int    `json:"media_count" doc:"Media carried by the label before the change"`
}

// LabelChangeOutput wraps a label change for Huma.
type LabelChangeOutput struct {
	Body LabelChange
}

func (s *Server) handleRenameLabel(ctx context.Context, input *RenameLabelInput) (*LabelChangeOutput, error) {
	user, mt, err := s.entryCaller(ctx, input.MediaType)
	if err != nil {
		return nil, err
	}

	n, err := s.services.Label.RenameLabel(ctx, user, mt, input.Label, input.Body.Name)
	if err != nil {
		return nil, err
	}
	return &LabelChangeOutput{Body: LabelChange{Name: input.Body.Name, MediaCount: n}}, nil
}

func (s *Server) handleDeleteLabel(ctx context.Context, input *LabelInput) (*LabelChangeOutput, error) {
	user, mt, err := s.entryCaller(ctx, input.MediaType)
	if err != nil {
		return nil, err
	}

	n, err := s.services.Label.DeleteLabel(ctx, user, mt, input.Label)
	if err != nil {
		return nil, err
	}
	return &LabelChangeOutput{Body: LabelChange{Name: input.Label, MediaCount: n}}, nil
}
