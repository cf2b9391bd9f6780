package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_IsAdmin(t *testing.T) {
	tests := []struct {
		role    Role
		admin   bool
		manager bool
	}{
		{RoleAdmin, true, true},
		{RoleManager, false, true},
		{RoleUser, false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			u := &User{Role: tt.role}
			assert.Equal(t, tt.admin, u.IsAdmin())
			assert.Equal(t, tt.manager, u.IsManager())
		})
	}
}

func TestParseMediaType(t *testing.T) {
	for _, mt := range MediaTypes {
		got, err := ParseMediaType(string(mt))
		assert.NoError(t, err)
		assert.Equal(t, mt, got)
	}

	_, err := ParseMediaType("podcasts")
	assert.Error(t, err)

	_, err = ParseMediaType("Series")
	assert.Error(t, err, "media types are case sensitive")
}

func TestMediaType_StatusChoices(t *testing.T) {
	got := MediaMovies.StatusChoices()
	assert.Equal(t, []Status{
		StatusAll, StatusCompleted, StatusPlanToWatch, StatusFavorite, StatusStats, StatusLabels,
	}, got)

	// Returned slices are copies.
	got[1] = "Mutated"
	assert.Equal(t, StatusCompleted, MediaMovies.Statuses()[0])
}

func TestMediaType_DefaultStatus(t *testing.T) {
	assert.Equal(t, StatusWatching, MediaSeries.DefaultStatus())
	assert.Equal(t, StatusWatching, MediaAnime.DefaultStatus())
	assert.Equal(t, StatusCompleted, MediaMovies.DefaultStatus())
	assert.Equal(t, StatusCompleted, MediaGames.DefaultStatus())
	assert.Equal(t, StatusCompleted, MediaBooks.DefaultStatus())

	for _, mt := range MediaTypes {
		assert.True(t, mt.HasStatus(mt.DefaultStatus()), "%s default status must be storable", mt)
	}
}

func TestMediaType_Genres(t *testing.T) {
	for _, mt := range MediaTypes {
		genres := mt.Genres()
		if assert.NotEmpty(t, genres) {
			assert.Equal(t, GenreAll, genres[0])
		}
	}
}

func TestMediaType_CoverURL(t *testing.T) {
	assert.Equal(t, "/static/covers/anime_covers/abc.jpg", MediaAnime.CoverURL("abc.jpg"))
	assert.Equal(t, "/static/covers/books_covers/default.jpg", MediaBooks.CoverURL("default.jpg"))
}
