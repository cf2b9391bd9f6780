package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mylists/mylists-server/internal/domain"
)

func TestProfileAndFollows(t *testing.T) {
	ts := setupTestServer(t)
	aliceToken, _ := ts.registerAndLogin(t, "alice")
	bobToken, bob := ts.registerAndLogin(t, "bob")

	resp := ts.api.Put("/api/v1/users/bob/follow", bearer(aliceToken))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// Following twice is a no-op.
	resp = ts.api.Put("/api/v1/users/bob/follow", bearer(aliceToken))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/users/bob", bearer(aliceToken))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	profile := decode[ProfileResponse](t, resp.Body.Bytes())
	assert.Equal(t, bob.ID, profile.Data.User.ID)
	assert.Empty(t, profile.Data.User.Email)
	assert.Equal(t, 1, profile.Data.User.ProfileViews)
	assert.Equal(t, 1, profile.Data.Followers)
	assert.Equal(t, 0, profile.Data.Follows)
	assert.True(t, profile.Data.IsFollowing)
	assert.Len(t, profile.Data.Lists, len(domain.MediaTypes))

	resp = ts.api.Get("/api/v1/users/bob/followers", bearer(bobToken))
	require.Equal(t, http.StatusOK, resp.Code)
	followers := decode[[]UserResponse](t, resp.Body.Bytes())
	require.Len(t, followers.Data, 1)
	assert.Equal(t, "alice", followers.Data[0].Username)

	resp = ts.api.Get("/api/v1/users/alice/follows", bearer(bobToken))
	require.Equal(t, http.StatusOK, resp.Code)
	follows := decode[[]UserResponse](t, resp.Body.Bytes())
	require.Len(t, follows.Data, 1)
	assert.Equal(t, "bob", follows.Data[0].Username)
	assert.Equal(t, "bob@example.com", follows.Data[0].Email)

	resp = ts.api.Delete("/api/v1/users/bob/follow", bearer(aliceToken))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/users/bob", bearer(bobToken))
	require.Equal(t, http.StatusOK, resp.Code)
	profile = decode[ProfileResponse](t, resp.Body.Bytes())
	assert.Equal(t, 0, profile.Data.Followers)
	assert.False(t, profile.Data.IsFollowing)
	assert.Equal(t, "bob@example.com", profile.Data.User.Email)
}

func TestFollow_Errors(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerAndLogin(t, "alice")
	ts.registerAndLogin(t, domain.AdminUsername)

	resp := ts.api.Put("/api/v1/users/alice/follow", bearer(token))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Put("/api/v1/users/ghost/follow", bearer(token))
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get("/api/v1/users/admin", bearer(token))
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestUpdateSettings(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerAndLogin(t, "alice")

	resp := ts.api.Patch("/api/v1/users/me/settings", map[string]any{"add_feeling": true}, bearer(token))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	updated := decode[UserResponse](t, resp.Body.Bytes())
	assert.True(t, updated.Data.AddFeeling)
	assert.False(t, updated.Data.Private)

	resp = ts.api.Get("/api/v1/users/me", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)
	me := decode[UserResponse](t, resp.Body.Bytes())
	assert.True(t, me.Data.AddFeeling)

	// The sorting vocabulary follows the rating system.
	resp = ts.api.Get("/api/v1/lists/movies/alice?status=All", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	list := decode[MediaListResponse](t, resp.Body.Bytes())
	assert.NotEmpty(t, list.Data.Pagination.AllSorting)
}
