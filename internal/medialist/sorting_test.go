package medialist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mylists/mylists-server/internal/domain"
	"github.com/mylists/mylists-server/internal/store"
)

func TestSortingTable_Names(t *testing.T) {
	tests := []struct {
		mediaType domain.MediaType
		rating    string
	}{
		{domain.MediaSeries, "Score TMDB"},
		{domain.MediaAnime, "Score TMDB"},
		{domain.MediaMovies, "Score TMDB"},
		{domain.MediaGames, "Score IGDB"},
		{domain.MediaBooks, "Rating"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mediaType), func(t *testing.T) {
			names := NewSortingTable(tt.mediaType, false).Names()
			assert.Equal(t, []string{
				"Title A-Z", "Title Z-A", "Release Date +", "Release Date -",
				tt.rating + " +", tt.rating + " -", "Comments", "Score +", "Score -",
			}, names)
		})
	}
}

func TestSortingTable_MetricFollowsPreference(t *testing.T) {
	order, ok := NewSortingTable(domain.MediaAnime, false).Lookup("Score +")
	require.True(t, ok)
	assert.Equal(t, store.Order{Field: store.SortScore, Desc: true}, order)

	order, ok = NewSortingTable(domain.MediaAnime, true).Lookup("Score -")
	require.True(t, ok)
	assert.Equal(t, store.Order{Field: store.SortFeeling}, order)
}

func TestSortingTable_Lookup(t *testing.T) {
	table := NewSortingTable(domain.MediaMovies, false)

	order, ok := table.Lookup(DefaultSorting)
	require.True(t, ok)
	assert.Equal(t, store.Order{Field: store.SortTitle}, order)

	order, ok = table.Lookup("Release Date +")
	require.True(t, ok)
	assert.True(t, order.Desc, "newest first")

	order, ok = table.Lookup("Comments")
	require.True(t, ok)
	assert.Equal(t, store.Order{Field: store.SortHasComment, Desc: true}, order)

	_, ok = table.Lookup("Score IGDB +")
	assert.False(t, ok)
	_, ok = table.Lookup("title a-z")
	assert.False(t, ok)
}
