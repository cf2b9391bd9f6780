package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeries() *Media {
	return &Media{
		ID:            7,
		Type:          MediaSeries,
		Name:          "Test Series",
		TotalEpisodes: 22,
		EpsPerSeason:  []int{10, 12},
	}
}

func TestNewListEntry_TV(t *testing.T) {
	now := time.Now()
	media := testSeries()

	tests := []struct {
		status  Status
		season  int
		episode int
		total   int
		done    bool
	}{
		{StatusWatching, 1, 1, 1, false},
		{StatusCompleted, 2, 12, 22, true},
		{StatusPlanToWatch, 1, 0, 0, false},
		{StatusRandom, 1, 0, 0, false},
		{StatusDropped, 1, 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			e := NewListEntry("user-1", media, tt.status, now)
			assert.Equal(t, tt.status, e.Status)
			assert.Equal(t, tt.season, e.CurrentSeason)
			assert.Equal(t, tt.episode, e.LastEpisodeWatched)
			assert.Equal(t, tt.total, e.Total)
			assert.Equal(t, tt.done, e.CompletionDate != nil)
		})
	}
}

func TestNewListEntry_Movie(t *testing.T) {
	media := &Media{ID: 1, Type: MediaMovies}

	e := NewListEntry("user-1", media, StatusCompleted, time.Now())
	assert.Equal(t, 1, e.Total)

	e = NewListEntry("user-1", media, StatusPlanToWatch, time.Now())
	assert.Equal(t, 0, e.Total)
}

func TestListEntry_ApplyStatusResetsRedo(t *testing.T) {
	media := testSeries()
	e := NewListEntry("user-1", media, StatusCompleted, time.Now())
	require.NoError(t, e.SetRedo(media, 2))
	assert.Equal(t, 66, e.Total)

	require.NoError(t, e.ApplyStatus(media, StatusOnHold))
	assert.Equal(t, 0, e.Redo)
	assert.Equal(t, StatusOnHold, e.Status)

	err := e.ApplyStatus(media, StatusPlaying)
	assert.True(t, errors.Is(err, ErrInvalidValue), "games status is not valid for series")
}

func TestListEntry_SetRedo(t *testing.T) {
	media := testSeries()
	e := NewListEntry("user-1", media, StatusWatching, time.Now())

	assert.ErrorIs(t, e.SetRedo(media, 1), ErrInvalidValue, "redo requires Completed")

	require.NoError(t, e.ApplyStatus(media, StatusCompleted))
	assert.ErrorIs(t, e.SetRedo(media, 11), ErrInvalidValue)
	assert.ErrorIs(t, e.SetRedo(media, -1), ErrInvalidValue)
	require.NoError(t, e.SetRedo(media, 10))
	assert.Equal(t, 22*11, e.Total)

	game := &Media{ID: 3, Type: MediaGames}
	g := NewListEntry("user-1", game, StatusCompleted, time.Now())
	assert.ErrorIs(t, g.SetRedo(game, 1), ErrUnsupported)
}

func TestListEntry_SetMetric(t *testing.T) {
	e := &ListEntry{}
	score := 7.5
	require.NoError(t, e.SetMetric(false, &score))
	require.NotNil(t, e.Score)
	assert.Equal(t, 7.5, *e.Score)

	tooHigh := 10.5
	assert.ErrorIs(t, e.SetMetric(false, &tooHigh), ErrInvalidValue)

	feeling := 4.0
	require.NoError(t, e.SetMetric(true, &feeling))
	require.NotNil(t, e.Feeling)
	assert.Equal(t, 4, *e.Feeling)

	half := 2.5
	assert.ErrorIs(t, e.SetMetric(true, &half), ErrInvalidValue)

	require.NoError(t, e.SetMetric(false, nil))
	assert.Nil(t, e.Score)
	assert.Nil(t, e.Feeling)
}

func TestListEntry_SeasonAndEpisode(t *testing.T) {
	media := testSeries()
	e := NewListEntry("user-1", media, StatusWatching, time.Now())

	require.NoError(t, e.SetSeason(media, 2))
	assert.Equal(t, 11, e.Total)

	require.NoError(t, e.SetEpisode(media, 5))
	assert.Equal(t, 15, e.Total)

	assert.ErrorIs(t, e.SetEpisode(media, 13), ErrInvalidValue)
	assert.ErrorIs(t, e.SetSeason(media, 3), ErrInvalidValue)
	assert.ErrorIs(t, e.SetPage(media, 10), ErrUnsupported)
}

func TestListEntry_SetPlaytime(t *testing.T) {
	game := &Media{ID: 3, Type: MediaGames}
	e := NewListEntry("user-1", game, StatusPlaying, time.Now())

	require.NoError(t, e.SetPlaytime(game, 12))
	assert.Equal(t, 720, e.Playtime)
	assert.ErrorIs(t, e.SetPlaytime(game, -1), ErrInvalidValue)
}

func TestListEntry_SetComment(t *testing.T) {
	e := &ListEntry{}
	e.SetComment("great")
	require.NotNil(t, e.Comment)
	assert.Equal(t, "great", *e.Comment)

	e.SetComment("")
	assert.Nil(t, e.Comment)
}
