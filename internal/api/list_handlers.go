package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mylists/mylists-server/internal/domain"
	domainerrors "github.com/mylists/mylists-server/internal/errors"
	"github.com/mylists/mylists-server/internal/medialist"
)

func (s *Server) registerListRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getMediaList",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists/{media_type}/{username}",
		Summary:     "Get media list",
		Description: "Returns one page of a user's list, filtered, searched and sorted. " +
			"Pages hold 36 entries. Media also present in the caller's list are reported in common_ids, " +
			"or hidden when show_common is false.",
		Tags:     []string{"Lists"},
		Security: []map[string][]string{{"bearer": {}}},
	}, s.handleGetMediaList)

	huma.Register(s.api, huma.Operation{
		OperationID: "getListStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists/{media_type}/{username}/stats",
		Summary:     "Get list statistics",
		Description: "Returns status counts, rating distribution and favorites of a user's list",
		Tags:        []string{"Lists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetListStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "listLabels",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists/{media_type}/{username}/labels",
		Summary:     "List labels",
		Description: "Returns the labels of a user's list with their media counts",
		Tags:        []string{"Labels"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListLabels)

	huma.Register(s.api, huma.Operation{
		OperationID: "listLabelMedia",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists/{media_type}/{username}/labels/{label}",
		Summary:     "List media in label",
		Tags:        []string{"Labels"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListLabelMedia)
}

// === DTOs ===

// ListInput selects a user's list.
type ListInput struct {
	MediaType string `path:"media_type" doc:"Media type: series, anime, movies, games or books"`
	Username  string `path:"username" doc:"List owner"`
}

// MediaListInput carries the list query parameters.
type MediaListInput struct {
	ListInput
	Search     string `query:"search" doc:"Free-text search; only used with status Search"`
	Sorting    string `query:"sorting" doc:"Sort key name, e.g. 'Title A-Z'"`
	Status     string `query:"status" doc:"Status, or All, Favorite or Search"`
	ShowCommon string `query:"show_common" doc:"'false' hides media also in the caller's list"`
	Genre      string `query:"genre" doc:"Genre filter, All for none"`
	Lang       string `query:"lang" doc:"Original language filter (movies only), All for none"`
	Page       int    `query:"page" default:"1" doc:"1-based page"`
}

// MediaListResponse is one page of a list with its owner.
type MediaListResponse struct {
	UserData   UserResponse         `json:"user_data"`
	MediaType  domain.MediaType     `json:"media_type"`
	MediaData  medialist.MediaData  `json:"media_data"`
	Pagination medialist.Pagination `json:"pagination"`
}

// MediaListOutput wraps the list page for Huma.
type MediaListOutput struct {
	Body MediaListResponse
}

// StatsOutput wraps list statistics for Huma.
type StatsOutput struct {
	Body *domain.ListStats
}

// LabelsOutput wraps label names for Huma.
type LabelsOutput struct {
	Body []domain.Label
}

// LabelMediaInput selects one label of a user's list.
type LabelMediaInput struct {
	ListInput
	Label string `path:"label" doc:"Label name"`
}

// MediaSummariesOutput wraps media references for Huma.
type MediaSummariesOutput struct {
	Body []domain.MediaSummary
}

// === Handlers ===

// resolveList authenticates the caller and resolves the list owner.
func (s *Server) resolveList(ctx context.Context, in ListInput) (viewer, owner *domain.User, mt domain.MediaType, err error) {
	viewer, err = GetUser(ctx)
	if err != nil {
		return nil, nil, "", err
	}
	mt, err = parseMediaType(in.MediaType)
	if err != nil {
		return nil, nil, "", err
	}
	owner, err = s.services.User.CheckAuthorization(ctx, viewer, in.Username)
	if err != nil {
		return nil, nil, "", err
	}
	return viewer, owner, mt, nil
}

func (s *Server) handleGetMediaList(ctx context.Context, input *MediaListInput) (*MediaListOutput, error) {
	viewer, owner, mt, err := s.resolveList(ctx, input.ListInput)
	if err != nil {
		return nil, err
	}

	result, err := s.services.MediaList.Query(ctx, viewer, owner, mt, medialist.Params{
		Search:     input.Search,
		Sorting:    input.Sorting,
		Status:     input.Status,
		Genre:      input.Genre,
		Lang:       input.Lang,
		ShowCommon: input.ShowCommon,
		Page:       input.Page,
	})
	if err != nil {
		return nil, err
	}

	// Only answered requests count as a view.
	s.services.User.RecordListView(ctx, viewer, owner, mt)

	return &MediaListOutput{Body: MediaListResponse{
		UserData:   mapUser(owner, owner.ID == viewer.ID),
		MediaType:  mt,
		MediaData:  result.MediaData,
		Pagination: result.Pagination,
	}}, nil
}

func (s *Server) handleGetListStats(ctx context.Context, input *ListInput) (*StatsOutput, error) {
	_, owner, mt, err := s.resolveList(ctx, *input)
	if err != nil {
		return nil, err
	}

	stats, err := s.services.Stats.ListStats(ctx, owner, mt)
	if err != nil {
		return nil, err
	}
	return &StatsOutput{Body: stats}, nil
}

func (s *Server) handleListLabels(ctx context.Context, input *ListInput) (*LabelsOutput, error) {
	_, owner, mt, err := s.resolveList(ctx, *input)
	if err != nil {
		return nil, err
	}

	labels, err := s.services.Label.ListLabels(ctx, owner, mt)
	if err != nil {
		return nil, err
	}
	return &LabelsOutput{Body: labels}, nil
}

func (s *Server) handleListLabelMedia(ctx context.Context, input *LabelMediaInput) (*MediaSummariesOutput, error) {
	_, owner, mt, err := s.resolveList(ctx, input.ListInput)
	if err != nil {
		return nil, err
	}

	media, err := s.services.Label.ListLabelMedia(ctx, owner, mt, input.Label)
	if err != nil {
		return nil, err
	}
	return &MediaSummariesOutput{Body: media}, nil
}

func parseMediaType(s string) (domain.MediaType, error) {
	mt, err := domain.ParseMediaType(s)
	if err != nil {
		return "", domainerrors.ValidationWithDetails("This media type does not exist.",
			map[string]string{"media_type": s}).WithCause(err)
	}
	return mt, nil
}
