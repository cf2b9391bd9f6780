package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get current user",
		Description: "Returns the authenticated user's account",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateSettings",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/me/settings",
		Summary:     "Update settings",
		Description: "Changes profile privacy and the rating system",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateSettings)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{username}",
		Summary:     "Get profile",
		Description: "Returns a user's profile with a summary of each list. Counts as a profile view.",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFollowers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{username}/followers",
		Summary:     "List followers",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListFollowers)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFollows",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{username}/follows",
		Summary:     "List followed users",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListFollows)

	huma.Register(s.api, huma.Operation{
		OperationID: "followUser",
		Method:      http.MethodPut,
		Path:        "/api/v1/users/{username}/follow",
		Summary:     "Follow user",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleFollow)

	huma.Register(s.api, huma.Operation{
		OperationID: "unfollowUser",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/{username}/follow",
		Summary:     "Unfollow user",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUnfollow)
}

// === DTOs ===

// UsernameInput selects a user by name.
type UsernameInput struct {
	Username string `path:"username" doc:"Username"`
}

// SettingsInput wraps the settings request for Huma.
type SettingsInput struct {
	Body service.SettingsRequest
}

// ProfileResponse is a user page.
type ProfileResponse struct {
	User        UserResponse          `json:"user"`
	Followers   int                   `json:"followers_count"`
	Follows     int                   `json:"follows_count"`
	IsFollowing bool                  `json:"is_following" doc:"Whether the caller follows this user"`
	Lists       []service.ListSummary `json:"lists"`
}

// ProfileOutput wraps the profile response for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

// UsersOutput wraps a list of users for Huma.
type UsersOutput struct {
	Body []UserResponse
}

// === Handlers ===

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	user, err := GetUser(ctx)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: mapUser(user, true)}, nil
}

func (s *Server) handleUpdateSettings(ctx context.Context, input *SettingsInput) (*UserOutput, error) {
	user, err := GetUser(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := s.services.User.UpdateSettings(ctx, user, input.Body)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: mapUser(updated, true)}, nil
}

func (s *Server) handleGetProfile(ctx context.Context, input *UsernameInput) (*ProfileOutput, error) {
	viewer, err := GetUser(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.User.GetProfile(ctx, viewer, input.Username)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: ProfileResponse{
		User:        mapUser(profile.User, profile.User.ID == viewer.ID),
		Followers:   profile.Followers,
		Follows:     profile.Follows,
		IsFollowing: profile.IsFollowing,
		Lists:       profile.Lists,
	}}, nil
}

func (s *Server) handleListFollowers(ctx context.Context, input *UsernameInput) (*UsersOutput, error) {
	viewer, err := GetUser(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.services.User.Followers(ctx, viewer, input.Username)
	if err != nil {
		return nil, err
	}
	return &UsersOutput{Body: mapUsers(users, viewer)}, nil
}

func (s *Server) handleListFollows(ctx context.Context, input *UsernameInput) (*UsersOutput, error) {
	viewer, err := GetUser(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.services.User.Follows(ctx, viewer, input.Username)
	if err != nil {
		return nil, err
	}
	return &UsersOutput{Body: mapUsers(users, viewer)}, nil
}

func (s *Server) handleFollow(ctx context.Context, input *UsernameInput) (*MessageOutput, error) {
	viewer, err := GetUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.User.Follow(ctx, viewer, input.Username); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "You are now following " + input.Username}}, nil
}

func (s *Server) handleUnfollow(ctx context.Context, input *UsernameInput) (*MessageOutput, error) {
	viewer, err := GetUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.User.Unfollow(ctx, viewer, input.Username); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "You no longer follow " + input.Username}}, nil
}

func mapUsers(users []*domain.User, viewer *domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, mapUser(u, u.ID == viewer.ID))
	}
	return out
}
