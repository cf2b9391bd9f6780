package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mylists/mylists-server/internal/domain"
	domainerrors "github.com/mylists/mylists-server/internal/errors"
)

func TestUserService_CheckAuthorization(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	alice := ts.createUser(t, "alice", domain.RoleUser)
	root := ts.createUser(t, domain.AdminUsername, domain.RoleAdmin)

	owner, err := ts.users.CheckAuthorization(ctx, alice, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, owner.ID)

	_, err = ts.users.CheckAuthorization(ctx, alice, "nobody")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = ts.users.CheckAuthorization(ctx, alice, domain.AdminUsername)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	owner, err = ts.users.CheckAuthorization(ctx, root, domain.AdminUsername)
	require.NoError(t, err)
	assert.Equal(t, root.ID, owner.ID)
}

func TestUserService_RecordListView(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	alice := ts.createUser(t, "alice", domain.RoleUser)
	bob := ts.createUser(t, "bob", domain.RoleUser)
	admin := ts.createUser(t, "boss", domain.RoleAdmin)

	ts.users.RecordListView(ctx, bob, alice, domain.MediaAnime)
	ts.users.RecordListView(ctx, bob, alice, domain.MediaAnime)
	ts.users.RecordListView(ctx, alice, alice, domain.MediaAnime)
	ts.users.RecordListView(ctx, admin, alice, domain.MediaAnime)

	stored, err := ts.store.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Views[domain.MediaAnime])
	assert.Equal(t, 0, stored.Views[domain.MediaSeries])
}

func TestUserService_GetProfile(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	alice := ts.createUser(t, "alice", domain.RoleUser)
	bob := ts.createUser(t, "bob", domain.RoleUser)

	m := ts.createMedia(t, &domain.Media{Type: domain.MediaMovies, Name: "Heat"})
	_, err := ts.lists.AddMedia(ctx, alice, domain.MediaMovies, AddMediaRequest{MediaID: m.ID, Status: "Completed"})
	require.NoError(t, err)
	require.NoError(t, ts.users.Follow(ctx, bob, "alice"))

	profile, err := ts.users.GetProfile(ctx, bob, "alice")
	require.NoError(t, err)

	assert.Equal(t, 1, profile.User.ProfileViews)
	assert.Equal(t, 1, profile.Followers)
	assert.Equal(t, 0, profile.Follows)
	assert.True(t, profile.IsFollowing)
	require.Len(t, profile.Lists, len(domain.MediaTypes))
	for _, l := range profile.Lists {
		if l.MediaType == domain.MediaMovies {
			assert.Equal(t, 1, l.TotalMedia)
		} else {
			assert.Equal(t, 0, l.TotalMedia)
		}
	}

	own, err := ts.users.GetProfile(ctx, alice, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, own.User.ProfileViews)
	assert.False(t, own.IsFollowing)
}

func TestUserService_Follow(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	alice := ts.createUser(t, "alice", domain.RoleUser)
	bob := ts.createUser(t, "bob", domain.RoleUser)

	require.NoError(t, ts.users.Follow(ctx, alice, "bob"))
	require.NoError(t, ts.users.Follow(ctx, alice, "bob"))

	follows, err := ts.users.Follows(ctx, alice, "alice")
	require.NoError(t, err)
	require.Len(t, follows, 1)
	assert.Equal(t, bob.ID, follows[0].ID)

	followers, err := ts.users.Followers(ctx, alice, "bob")
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, alice.ID, followers[0].ID)

	require.NoError(t, ts.users.Unfollow(ctx, alice, "bob"))
	require.NoError(t, ts.users.Unfollow(ctx, alice, "bob"))

	follows, err = ts.users.Follows(ctx, alice, "alice")
	require.NoError(t, err)
	assert.Empty(t, follows)

	err = ts.users.Follow(ctx, alice, "alice")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestUserService_UpdateSettings(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	alice := ts.createUser(t, "alice", domain.RoleUser)

	updated, err := ts.users.UpdateSettings(ctx, alice, SettingsRequest{AddFeeling: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.AddFeeling)
	assert.False(t, updated.Private)

	stored, err := ts.store.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, stored.AddFeeling)
}
