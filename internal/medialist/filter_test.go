package medialist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mylists/mylists-server/internal/domain"
	domainerrors "github.com/mylists/mylists-server/internal/errors"
	"github.com/mylists/mylists-server/internal/store"
)

func TestResolveFilter_Defaults(t *testing.T) {
	tests := []struct {
		mediaType domain.MediaType
		status    domain.Status
	}{
		{domain.MediaSeries, domain.StatusWatching},
		{domain.MediaAnime, domain.StatusWatching},
		{domain.MediaMovies, domain.StatusCompleted},
		{domain.MediaGames, domain.StatusCompleted},
		{domain.MediaBooks, domain.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(string(tt.mediaType), func(t *testing.T) {
			f, err := ResolveFilter(tt.mediaType, Params{Page: 1}, NewVocabulary(tt.mediaType, false))
			require.NoError(t, err)

			assert.Equal(t, store.ListItems, f.Mode)
			assert.Equal(t, tt.status, f.Status)
			assert.Equal(t, DefaultSorting, f.Sorting)
			assert.Equal(t, store.Order{Field: store.SortTitle}, f.Order)
			assert.Equal(t, domain.GenreAll, f.Genre)
			assert.Equal(t, domain.LangAll, f.Lang)
			assert.True(t, f.ShowCommon)
			assert.Equal(t, 1, f.Page)
		})
	}
}

func TestResolveFilter_AcceptedValues(t *testing.T) {
	vocab := NewVocabulary(domain.MediaGames, true)

	for _, status := range []string{"All", "Playing", "Multiplayer", "Favorite", "Stats", "Labels"} {
		f, err := ResolveFilter(domain.MediaGames, Params{Status: status, Page: 1}, vocab)
		require.NoError(t, err, status)
		assert.Equal(t, domain.Status(status), f.Status)
	}

	f, err := ResolveFilter(domain.MediaGames, Params{
		Sorting: "Score IGDB -", Genre: "Unknown Genre", ShowCommon: "false", Page: 3,
	}, vocab)
	require.NoError(t, err)
	assert.Equal(t, store.Order{Field: store.SortVoteAverage}, f.Order)
	assert.Equal(t, "Unknown Genre", f.Genre, "genres are not validated")
	assert.False(t, f.ShowCommon)
	assert.Equal(t, 3, f.Page)
}

func TestResolveFilter_Search(t *testing.T) {
	vocab := NewVocabulary(domain.MediaBooks, false)

	f, err := ResolveFilter(domain.MediaBooks, Params{Status: "Search", Search: "  dune ", Page: 1}, vocab)
	require.NoError(t, err)
	assert.Equal(t, store.ListSearch, f.Mode)
	assert.Equal(t, "dune", f.Search)

	// A search term alone does not switch modes.
	f, err = ResolveFilter(domain.MediaBooks, Params{Search: "dune", Page: 1}, vocab)
	require.NoError(t, err)
	assert.Equal(t, store.ListItems, f.Mode)
}

func TestResolveFilter_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		mediaType domain.MediaType
		params    Params
		param     string
		message   string
	}{
		{"unknown status", domain.MediaSeries, Params{Status: "Nonexistent", Page: 1}, "status", msgUnknownStatus},
		{"status of another type", domain.MediaMovies, Params{Status: "Watching", Page: 1}, "status", msgUnknownStatus},
		{"status case", domain.MediaSeries, Params{Status: "completed", Page: 1}, "status", msgUnknownStatus},
		{"unknown sorting", domain.MediaSeries, Params{Sorting: "Popularity", Page: 1}, "sorting", msgUnknownSorting},
		{"rating of another type", domain.MediaBooks, Params{Sorting: "Score TMDB +", Page: 1}, "sorting", msgUnknownSorting},
		{"page zero", domain.MediaSeries, Params{Page: 0}, "page", msgInvalidPage},
		{"negative page", domain.MediaSeries, Params{Page: -2}, "page", msgInvalidPage},
		{"blank search", domain.MediaSeries, Params{Status: "Search", Search: "  ", Page: 1}, "search", msgMissingSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ResolveFilter(tt.mediaType, tt.params, NewVocabulary(tt.mediaType, false))
			require.Error(t, err)
			assert.Nil(t, f)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
			assert.Equal(t, tt.message, domainErr.Message)
			assert.Equal(t, map[string]string{tt.param: tt.message}, domainErr.Details)
		})
	}
}

func TestResolveFilter_StatusCheckedBeforeSorting(t *testing.T) {
	_, err := ResolveFilter(domain.MediaSeries, Params{Status: "Nope", Sorting: "Nope", Page: 1},
		NewVocabulary(domain.MediaSeries, false))

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Contains(t, domainErr.Details, "status")
}
